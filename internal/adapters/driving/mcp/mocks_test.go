package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/waymark/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/services"
)

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.Settings
	err      error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) SetCanvas(_, _ float64) error {
	return m.err
}

func (m *mockSettingsService) SetStorage(_ domain.StorageBackend) error {
	return m.err
}

func (m *mockSettingsService) SetPrompt(_ domain.PromptStyle) error {
	return m.err
}

func (m *mockSettingsService) Validate() error {
	return m.err
}

// newTestServer builds a server over seeded in-memory stores:
// building hq with floors f1 and f2 joined by a lift, and annex with
// floor a1.
func newTestServer(t *testing.T) (*Server, services.EditorStores) {
	t.Helper()
	ctx := context.Background()

	stores := services.EditorStores{
		Buildings:  memory.NewBuildingStore(),
		Tags:       memory.NewTagStore(),
		Connectors: memory.NewConnectorStore(),
		Paths:      memory.NewPathStore(),
		State:      memory.NewEditorStateStore(),
	}

	require.NoError(t, stores.Buildings.Save(ctx, domain.Building{
		ID: "hq", Name: "HQ", Floors: []domain.Floor{
			{ID: "f1", BuildingID: "hq", Label: "Ground"},
			{ID: "f2", BuildingID: "hq", Label: "Level 2"},
		},
	}))
	require.NoError(t, stores.Buildings.Save(ctx, domain.Building{
		ID: "annex", Name: "Annex", Floors: []domain.Floor{
			{ID: "a1", BuildingID: "annex", Label: "Ground"},
		},
	}))

	for _, c := range []domain.VerticalConnector{
		{
			ID: "lift-f1", Name: "Lift", Type: domain.ConnectorElevator, FloorID: "f1",
			Position: domain.Point{X: 0.5, Y: 0.5}, Shape: domain.CircleShape(0.02), SharedID: "lift",
		},
		{
			ID: "lift-f2", Name: "Lift", Type: domain.ConnectorElevator, FloorID: "f2",
			Position: domain.Point{X: 0.5, Y: 0.5}, Shape: domain.CircleShape(0.02), SharedID: "lift",
		},
	} {
		require.NoError(t, stores.Connectors.Save(ctx, c))
	}

	for _, p := range []domain.Path{
		{
			ID: "p-lobby", Name: "Door to Lobby", Source: "Door", Destination: "Lobby",
			FloorID: "f1", IsPublished: true,
			Points: []domain.Point{{X: 0.1, Y: 0.1}, {X: 0.2, Y: 0.2}},
		},
		{
			ID: "p-draft", Name: "Door to Cafe", Source: "Door", Destination: "Cafe",
			FloorID: "f1", Points: []domain.Point{{X: 0.3, Y: 0.3}},
		},
		{
			ID: "p-office", Name: "Lobby to Office", Source: "Lobby", Destination: "Office",
			IsMultiFloor: true, IsPublished: true, SourceFloorID: "f1", DestinationFloorID: "f2",
			Segments: []domain.PathSegment{
				{ID: "s1", FloorID: "f1", Points: []domain.Point{{X: 0.2, Y: 0.2}, {X: 0.5, Y: 0.5}}, ConnectorID: "lift-f1"},
				{ID: "s2", FloorID: "f2", Points: []domain.Point{{X: 0.5, Y: 0.5}, {X: 0.8, Y: 0.8}}},
			},
		},
		{
			ID: "p-annex", Name: "Gate to Shop", Source: "Gate", Destination: "Shop",
			FloorID: "a1", IsPublished: true, Points: []domain.Point{{X: 0.4, Y: 0.4}},
		},
	} {
		require.NoError(t, stores.Paths.Save(ctx, p))
	}

	ports := &Ports{
		Editor:     services.NewEditor(stores, nil, domain.DefaultCanvasSize),
		Connectors: services.NewConnectorService(stores.Connectors),
		Settings:   services.NewSettingsService(memory.NewConfigStore()),
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server, stores
}
