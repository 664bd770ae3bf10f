package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/ports/driven"
	"github.com/custodia-labs/waymark/internal/core/ports/driving"
)

// Ensure ConnectorService implements the interface.
var _ driving.ConnectorService = (*ConnectorService)(nil)

// ConnectorService manages vertical connector records.
type ConnectorService struct {
	connectorStore driven.ConnectorStore
}

// NewConnectorService creates a new connector service.
func NewConnectorService(connectorStore driven.ConnectorStore) *ConnectorService {
	return &ConnectorService{connectorStore: connectorStore}
}

// Create adds a connector. A shared group may hold at most one record
// per floor.
func (s *ConnectorService) Create(ctx context.Context, connector domain.VerticalConnector) (*domain.VerticalConnector, error) {
	if s.connectorStore == nil {
		return nil, domain.ErrNotImplemented
	}
	connector.Name = strings.TrimSpace(connector.Name)
	connector.SharedID = strings.TrimSpace(connector.SharedID)
	if connector.ID == "" {
		connector.ID = uuid.NewString()
	}
	if connector.CreatedAt.IsZero() {
		connector.CreatedAt = time.Now().UTC()
	}
	if err := s.check(ctx, connector); err != nil {
		return nil, err
	}
	if err := s.connectorStore.Save(ctx, connector); err != nil {
		return nil, fmt.Errorf("saving connector: %w", err)
	}
	return &connector, nil
}

// Update replaces an existing connector.
func (s *ConnectorService) Update(ctx context.Context, connector domain.VerticalConnector) error {
	if s.connectorStore == nil {
		return domain.ErrNotImplemented
	}
	if connector.ID == "" {
		return domain.ErrInvalidInput
	}
	if _, err := s.connectorStore.Get(ctx, connector.ID); err != nil {
		return err
	}
	if err := s.check(ctx, connector); err != nil {
		return err
	}
	return s.connectorStore.Save(ctx, connector)
}

func (s *ConnectorService) check(ctx context.Context, connector domain.VerticalConnector) error {
	if err := validateInput(connector); err != nil {
		return err
	}
	if err := validateShape(connector.Shape); err != nil {
		return err
	}
	existing, err := s.connectorStore.List(ctx)
	if err != nil {
		return fmt.Errorf("listing connectors: %w", err)
	}
	if other := domain.FindGroupMember(existing, connector.SharedID, connector.FloorID); other != nil && other.ID != connector.ID {
		return fmt.Errorf("%w: %q on floor %s", domain.ErrDuplicateConnectorFloor, connector.SharedID, connector.FloorID)
	}
	return nil
}

// Delete removes a connector.
func (s *ConnectorService) Delete(ctx context.Context, id string) error {
	if s.connectorStore == nil {
		return domain.ErrNotImplemented
	}
	if _, err := s.connectorStore.Get(ctx, id); err != nil {
		return err
	}
	return s.connectorStore.Delete(ctx, id)
}

// List returns the connectors on floorID; empty means all.
func (s *ConnectorService) List(ctx context.Context, floorID string) ([]domain.VerticalConnector, error) {
	if s.connectorStore == nil {
		return nil, domain.ErrNotImplemented
	}
	connectors, err := s.connectorStore.List(ctx)
	if err != nil {
		return nil, err
	}
	if floorID == "" {
		return connectors, nil
	}
	return domain.ConnectorsOnFloor(connectors, floorID), nil
}

// Group returns every record of a shared group.
func (s *ConnectorService) Group(ctx context.Context, sharedID string) ([]domain.VerticalConnector, error) {
	if s.connectorStore == nil {
		return nil, domain.ErrNotImplemented
	}
	connectors, err := s.connectorStore.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.SharedGroup(connectors, sharedID), nil
}

// Detect returns the connector on floorID hit by a click at p, or nil.
// It applies the same hit-testing as drawing, without a pending decision
// or a last interacted connector.
func (s *ConnectorService) Detect(
	ctx context.Context,
	floorID string,
	p domain.Point,
	canvas domain.CanvasSize,
) (*domain.VerticalConnector, error) {
	if s.connectorStore == nil {
		return nil, domain.ErrNotImplemented
	}
	if floorID == "" {
		return nil, domain.ErrNoFloorSelected
	}
	connectors, err := s.connectorStore.List(ctx)
	if err != nil {
		return nil, err
	}
	floor := &domain.Floor{ID: floorID}
	return NewConnectorDetector(canvas).Detect(p, floor, connectors, "", false), nil
}
