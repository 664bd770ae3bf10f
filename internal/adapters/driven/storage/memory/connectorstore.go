package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/ports/driven"
)

// Ensure ConnectorStore implements the interface.
var _ driven.ConnectorStore = (*ConnectorStore)(nil)

// ConnectorStore is an in-memory implementation of driven.ConnectorStore.
type ConnectorStore struct {
	mu         sync.RWMutex
	connectors map[string]domain.VerticalConnector
	order      order
}

// NewConnectorStore creates a new in-memory connector store.
func NewConnectorStore() *ConnectorStore {
	return &ConnectorStore{
		connectors: make(map[string]domain.VerticalConnector),
	}
}

// Save stores or updates a connector.
func (s *ConnectorStore) Save(_ context.Context, connector domain.VerticalConnector) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connectors[connector.ID] = connector
	s.order.add(connector.ID)
	return nil
}

// Get retrieves a connector by ID.
func (s *ConnectorStore) Get(_ context.Context, id string) (*domain.VerticalConnector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	connector, ok := s.connectors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &connector, nil
}

// Delete removes a connector.
func (s *ConnectorStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.connectors, id)
	s.order.remove(id)
	return nil
}

// DeleteByFloor removes every connector on the floor.
func (s *ConnectorStore) DeleteByFloor(_ context.Context, floorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, connector := range s.connectors {
		if connector.FloorID == floorID {
			delete(s.connectors, id)
			s.order.remove(id)
		}
	}
	return nil
}

// List returns all connectors in creation order.
func (s *ConnectorStore) List(_ context.Context) ([]domain.VerticalConnector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.VerticalConnector, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.connectors[id])
	}
	return result, nil
}
