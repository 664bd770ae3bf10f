package driven

import (
	"context"

	"github.com/custodia-labs/waymark/internal/core/domain"
)

// PathStore persists navigation paths, including their segments.
type PathStore interface {
	// Save stores or updates a path.
	Save(ctx context.Context, path domain.Path) error

	// Get retrieves a path by ID.
	Get(ctx context.Context, id string) (*domain.Path, error)

	// Delete removes a path.
	Delete(ctx context.Context, id string) error

	// List returns all paths in creation order.
	List(ctx context.Context) ([]domain.Path, error)
}
