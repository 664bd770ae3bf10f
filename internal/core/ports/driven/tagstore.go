package driven

import (
	"context"

	"github.com/custodia-labs/waymark/internal/core/domain"
)

// TagStore persists tagged locations.
type TagStore interface {
	// Save stores or updates a tag.
	Save(ctx context.Context, tag domain.Tag) error

	// Get retrieves a tag by ID.
	Get(ctx context.Context, id string) (*domain.Tag, error)

	// Delete removes a tag.
	Delete(ctx context.Context, id string) error

	// List returns all tags in creation order.
	List(ctx context.Context) ([]domain.Tag, error)
}
