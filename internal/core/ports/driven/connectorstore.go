package driven

import (
	"context"

	"github.com/custodia-labs/waymark/internal/core/domain"
)

// ConnectorStore persists per-floor vertical connector records.
type ConnectorStore interface {
	// Save stores or updates a connector.
	Save(ctx context.Context, connector domain.VerticalConnector) error

	// Get retrieves a connector by ID.
	Get(ctx context.Context, id string) (*domain.VerticalConnector, error)

	// Delete removes a connector.
	Delete(ctx context.Context, id string) error

	// DeleteByFloor removes every connector drawn on the floor.
	DeleteByFloor(ctx context.Context, floorID string) error

	// List returns all connectors in creation order.
	List(ctx context.Context) ([]domain.VerticalConnector, error)
}
