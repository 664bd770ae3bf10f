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
	"github.com/custodia-labs/waymark/internal/logger"
)

// Ensure BuildingService implements the interface.
var _ driving.BuildingService = (*BuildingService)(nil)

// BuildingService manages buildings and floors.
type BuildingService struct {
	buildingStore  driven.BuildingStore
	connectorStore driven.ConnectorStore
}

// NewBuildingService creates a new building service. The connector
// store may be nil, in which case floor removal leaves connectors behind.
func NewBuildingService(buildingStore driven.BuildingStore, connectorStore driven.ConnectorStore) *BuildingService {
	return &BuildingService{
		buildingStore:  buildingStore,
		connectorStore: connectorStore,
	}
}

// Create adds a new building with no floors.
func (s *BuildingService) Create(ctx context.Context, name string) (*domain.Building, error) {
	if s.buildingStore == nil {
		return nil, domain.ErrNotImplemented
	}
	now := time.Now().UTC()
	building := domain.Building{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Floors:    []domain.Floor{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validateInput(building); err != nil {
		return nil, err
	}
	if err := s.buildingStore.Save(ctx, building); err != nil {
		return nil, fmt.Errorf("saving building: %w", err)
	}
	return &building, nil
}

// Get retrieves a building by ID.
func (s *BuildingService) Get(ctx context.Context, id string) (*domain.Building, error) {
	if s.buildingStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.buildingStore.Get(ctx, id)
}

// Resolve finds a building by ID or, failing that, by case-insensitive name.
func (s *BuildingService) Resolve(ctx context.Context, ref string) (*domain.Building, error) {
	if s.buildingStore == nil {
		return nil, domain.ErrNotImplemented
	}
	if b, err := s.buildingStore.Get(ctx, ref); err == nil {
		return b, nil
	}
	buildings, err := s.buildingStore.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range buildings {
		if strings.EqualFold(buildings[i].Name, ref) {
			return &buildings[i], nil
		}
	}
	return nil, fmt.Errorf("building %q: %w", ref, domain.ErrNotFound)
}

// List returns all buildings.
func (s *BuildingService) List(ctx context.Context) ([]domain.Building, error) {
	if s.buildingStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.buildingStore.List(ctx)
}

// Delete removes a building, its floors and their connectors.
func (s *BuildingService) Delete(ctx context.Context, id string) error {
	if s.buildingStore == nil {
		return domain.ErrNotImplemented
	}
	building, err := s.buildingStore.Get(ctx, id)
	if err != nil {
		return err
	}
	for i := range building.Floors {
		s.removeFloorConnectors(ctx, building.Floors[i].ID)
	}
	return s.buildingStore.Delete(ctx, id)
}

// AddFloor appends a floor to a building.
func (s *BuildingService) AddFloor(ctx context.Context, buildingID, label, imageURL string) (*domain.Floor, error) {
	if s.buildingStore == nil {
		return nil, domain.ErrNotImplemented
	}
	building, err := s.buildingStore.Get(ctx, buildingID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	floor := domain.Floor{
		ID:         uuid.NewString(),
		BuildingID: building.ID,
		Label:      strings.TrimSpace(label),
		ImageURL:   imageURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := validateInput(floor); err != nil {
		return nil, err
	}
	if building.FloorByLabel(floor.Label) != nil {
		return nil, fmt.Errorf("floor %q: %w", floor.Label, domain.ErrAlreadyExists)
	}

	building.Floors = append(building.Floors, floor)
	building.UpdatedAt = now
	if err := s.buildingStore.Save(ctx, *building); err != nil {
		return nil, fmt.Errorf("saving building: %w", err)
	}
	return &floor, nil
}

// RemoveFloor removes a floor and its connectors.
func (s *BuildingService) RemoveFloor(ctx context.Context, buildingID, floorID string) error {
	if s.buildingStore == nil {
		return domain.ErrNotImplemented
	}
	building, err := s.buildingStore.Get(ctx, buildingID)
	if err != nil {
		return err
	}
	if !building.HasFloor(floorID) {
		return fmt.Errorf("floor %s: %w", floorID, domain.ErrNotFound)
	}

	floors := make([]domain.Floor, 0, len(building.Floors)-1)
	for i := range building.Floors {
		if building.Floors[i].ID != floorID {
			floors = append(floors, building.Floors[i])
		}
	}
	building.Floors = floors
	building.UpdatedAt = time.Now().UTC()
	if err := s.buildingStore.Save(ctx, *building); err != nil {
		return fmt.Errorf("saving building: %w", err)
	}
	s.removeFloorConnectors(ctx, floorID)
	return nil
}

// ReorderFloors sets the floor order.
func (s *BuildingService) ReorderFloors(ctx context.Context, buildingID string, floorIDs []string) error {
	if s.buildingStore == nil {
		return domain.ErrNotImplemented
	}
	building, err := s.buildingStore.Get(ctx, buildingID)
	if err != nil {
		return err
	}
	if len(floorIDs) != len(building.Floors) {
		return fmt.Errorf("%w: expected %d floors, got %d", domain.ErrInvalidInput, len(building.Floors), len(floorIDs))
	}

	reordered := make([]domain.Floor, 0, len(floorIDs))
	seen := make(map[string]bool, len(floorIDs))
	for _, id := range floorIDs {
		floor := building.FloorByID(id)
		if floor == nil || seen[id] {
			return fmt.Errorf("%w: floor %s", domain.ErrInvalidInput, id)
		}
		seen[id] = true
		reordered = append(reordered, *floor)
	}
	building.Floors = reordered
	building.UpdatedAt = time.Now().UTC()
	return s.buildingStore.Save(ctx, *building)
}

func (s *BuildingService) removeFloorConnectors(ctx context.Context, floorID string) {
	if s.connectorStore == nil {
		return
	}
	if err := s.connectorStore.DeleteByFloor(ctx, floorID); err != nil {
		logger.Warn("removing connectors of floor %s: %v", floorID, err)
	}
}
