package driving

import (
	"context"

	"github.com/custodia-labs/waymark/internal/core/domain"
)

// TagService manages tagged locations.
type TagService interface {
	// Create adds a tag. An empty FloorID makes the tag global.
	Create(ctx context.Context, tag domain.Tag) (*domain.Tag, error)

	// Update replaces an existing tag.
	Update(ctx context.Context, tag domain.Tag) error

	// List returns the tags visible on floorID; empty means all.
	List(ctx context.Context, floorID string) ([]domain.Tag, error)

	// Delete removes a tag and clears path references to it.
	Delete(ctx context.Context, id string) error

	// SetColor changes a tag colour.
	SetColor(ctx context.Context, id, color string) error
}

// ConnectorService manages per-floor vertical connector records.
type ConnectorService interface {
	// Create adds a connector, enforcing one record per floor per shared group.
	Create(ctx context.Context, connector domain.VerticalConnector) (*domain.VerticalConnector, error)

	// Update replaces an existing connector.
	Update(ctx context.Context, connector domain.VerticalConnector) error

	// Delete removes a connector.
	Delete(ctx context.Context, id string) error

	// List returns the connectors on floorID; empty means all.
	List(ctx context.Context, floorID string) ([]domain.VerticalConnector, error)

	// Group returns every record of a shared group.
	Group(ctx context.Context, sharedID string) ([]domain.VerticalConnector, error)

	// Detect returns the connector on floorID hit by a click at p, or nil.
	Detect(ctx context.Context, floorID string, p domain.Point, canvas domain.CanvasSize) (*domain.VerticalConnector, error)
}
