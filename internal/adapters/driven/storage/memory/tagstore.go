package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/ports/driven"
)

// Ensure TagStore implements the interface.
var _ driven.TagStore = (*TagStore)(nil)

// TagStore is an in-memory implementation of driven.TagStore.
type TagStore struct {
	mu    sync.RWMutex
	tags  map[string]domain.Tag
	order order
}

// NewTagStore creates a new in-memory tag store.
func NewTagStore() *TagStore {
	return &TagStore{
		tags: make(map[string]domain.Tag),
	}
}

// Save stores or updates a tag.
func (s *TagStore) Save(_ context.Context, tag domain.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[tag.ID] = tag
	s.order.add(tag.ID)
	return nil
}

// Get retrieves a tag by ID.
func (s *TagStore) Get(_ context.Context, id string) (*domain.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tag, ok := s.tags[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &tag, nil
}

// Delete removes a tag.
func (s *TagStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tags, id)
	s.order.remove(id)
	return nil
}

// List returns all tags in creation order.
func (s *TagStore) List(_ context.Context) ([]domain.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Tag, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.tags[id])
	}
	return result, nil
}
