package driven

import (
	"context"

	"github.com/custodia-labs/waymark/internal/core/domain"
)

// BuildingStore persists buildings together with their ordered floors.
type BuildingStore interface {
	// Save stores or updates a building. The floor list is replaced
	// wholesale and its order becomes the stored floor order.
	Save(ctx context.Context, building domain.Building) error

	// Get retrieves a building by ID, floors included.
	Get(ctx context.Context, id string) (*domain.Building, error)

	// Delete removes a building and its floors.
	Delete(ctx context.Context, id string) error

	// List returns all buildings in creation order.
	List(ctx context.Context) ([]domain.Building, error)
}
