package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/ports/driven"
)

// Ensure PathStore implements the interface.
var _ driven.PathStore = (*PathStore)(nil)

// PathStore is an in-memory implementation of driven.PathStore.
type PathStore struct {
	mu    sync.RWMutex
	paths map[string]domain.Path
	order order
}

// NewPathStore creates a new in-memory path store.
func NewPathStore() *PathStore {
	return &PathStore{
		paths: make(map[string]domain.Path),
	}
}

// Save stores or updates a path.
func (s *PathStore) Save(_ context.Context, path domain.Path) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths[path.ID] = path.Clone()
	s.order.add(path.ID)
	return nil
}

// Get retrieves a path by ID.
func (s *PathStore) Get(_ context.Context, id string) (*domain.Path, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	path, ok := s.paths[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	path = path.Clone()
	return &path, nil
}

// Delete removes a path.
func (s *PathStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.paths, id)
	s.order.remove(id)
	return nil
}

// List returns all paths in creation order.
func (s *PathStore) List(_ context.Context) ([]domain.Path, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Path, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.paths[id].Clone())
	}
	return result, nil
}
