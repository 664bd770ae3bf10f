package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/ports/driven"
)

// Ensure EditorStateStore implements the interface.
var _ driven.EditorStateStore = (*EditorStateStore)(nil)

// EditorStateStore is an in-memory implementation of driven.EditorStateStore.
type EditorStateStore struct {
	mu    sync.RWMutex
	state domain.EditorState
}

// NewEditorStateStore creates a new in-memory editor state store.
func NewEditorStateStore() *EditorStateStore {
	return &EditorStateStore{}
}

// Load returns the saved state.
func (s *EditorStateStore) Load(_ context.Context) (domain.EditorState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, nil
}

// Save replaces the saved state.
func (s *EditorStateStore) Save(_ context.Context, state domain.EditorState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	return nil
}
