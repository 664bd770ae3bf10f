package driven

import (
	"context"

	"github.com/custodia-labs/waymark/internal/core/domain"
)

// EditorStateStore persists the selection and mode of the editor
// between sessions.
type EditorStateStore interface {
	// Load returns the saved state, or the zero state when none exists.
	Load(ctx context.Context) (domain.EditorState, error)

	// Save replaces the saved state.
	Save(ctx context.Context, state domain.EditorState) error
}
