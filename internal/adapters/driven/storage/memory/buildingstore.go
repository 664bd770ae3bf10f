package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/ports/driven"
)

// Ensure BuildingStore implements the interface.
var _ driven.BuildingStore = (*BuildingStore)(nil)

// BuildingStore is an in-memory implementation of driven.BuildingStore.
type BuildingStore struct {
	mu        sync.RWMutex
	buildings map[string]domain.Building
	order     order
}

// NewBuildingStore creates a new in-memory building store.
func NewBuildingStore() *BuildingStore {
	return &BuildingStore{
		buildings: make(map[string]domain.Building),
	}
}

// Save stores or updates a building.
func (s *BuildingStore) Save(_ context.Context, building domain.Building) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buildings[building.ID] = cloneBuilding(building)
	s.order.add(building.ID)
	return nil
}

// Get retrieves a building by ID.
func (s *BuildingStore) Get(_ context.Context, id string) (*domain.Building, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	building, ok := s.buildings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	building = cloneBuilding(building)
	return &building, nil
}

// Delete removes a building.
func (s *BuildingStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buildings, id)
	s.order.remove(id)
	return nil
}

// List returns all buildings in creation order.
func (s *BuildingStore) List(_ context.Context) ([]domain.Building, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Building, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, cloneBuilding(s.buildings[id]))
	}
	return result, nil
}

func cloneBuilding(b domain.Building) domain.Building {
	if b.Floors != nil {
		b.Floors = append([]domain.Floor(nil), b.Floors...)
	}
	return b
}
