package driving

import (
	"context"

	"github.com/custodia-labs/waymark/internal/core/domain"
)

// BuildingService manages buildings and their ordered floors.
type BuildingService interface {
	// Create adds a new building with no floors.
	Create(ctx context.Context, name string) (*domain.Building, error)

	// Get retrieves a building by ID.
	Get(ctx context.Context, id string) (*domain.Building, error)

	// Resolve finds a building by ID or, failing that, by case-insensitive name.
	Resolve(ctx context.Context, ref string) (*domain.Building, error)

	// List returns all buildings.
	List(ctx context.Context) ([]domain.Building, error)

	// Delete removes a building, its floors and their connectors.
	Delete(ctx context.Context, id string) error

	// AddFloor appends a floor to a building.
	AddFloor(ctx context.Context, buildingID, label, imageURL string) (*domain.Floor, error)

	// RemoveFloor removes a floor and its connectors.
	RemoveFloor(ctx context.Context, buildingID, floorID string) error

	// ReorderFloors sets the floor order. floorIDs must name every floor once.
	ReorderFloors(ctx context.Context, buildingID string, floorIDs []string) error
}
