package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/waymark/internal/adapters/driven/prompt"
	"github.com/custodia-labs/waymark/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/waymark/internal/core/domain"
)

// testMap is a two-building fixture. HQ has three floors; the main
// elevator serves F1 and F2 and the stairs serve all three.
type testMap struct {
	building domain.Building
	annex    domain.Building
	floors   []domain.Floor

	lift1, lift2              domain.VerticalConnector
	stairs1, stairs2, stairs3 domain.VerticalConnector
	lonely                    domain.VerticalConnector

	stores   EditorStores
	prompter *prompt.ScriptedPrompter
}

func newTestMap() *testMap {
	floors := []domain.Floor{
		{ID: "f1", BuildingID: "hq", Label: "Ground"},
		{ID: "f2", BuildingID: "hq", Label: "First"},
		{ID: "f3", BuildingID: "hq", Label: "Second"},
	}
	m := &testMap{
		building: domain.Building{ID: "hq", Name: "HQ", Floors: floors},
		annex:    domain.Building{ID: "annex", Name: "Annex", Floors: []domain.Floor{{ID: "a1", BuildingID: "annex", Label: "Ground"}}},
		floors:   floors,
		lift1: domain.VerticalConnector{
			ID: "lift-f1", Name: "Main Elevator", Type: domain.ConnectorElevator, FloorID: "f1",
			Position: domain.Point{X: 0.5, Y: 0.5}, Shape: domain.CircleShape(0.02), SharedID: "lift",
		},
		lift2: domain.VerticalConnector{
			ID: "lift-f2", Name: "Main Elevator", Type: domain.ConnectorElevator, FloorID: "f2",
			Position: domain.Point{X: 0.5, Y: 0.6}, Shape: domain.CircleShape(0.02), SharedID: "lift",
		},
		stairs1: domain.VerticalConnector{
			ID: "stairs-f1", Name: "East Stairs", Type: domain.ConnectorStairs, FloorID: "f1",
			Position: domain.Point{X: 0.9, Y: 0.1}, Shape: domain.RectShape(0.02, 0.03), SharedID: "stairs",
		},
		stairs2: domain.VerticalConnector{
			ID: "stairs-f2", Name: "East Stairs", Type: domain.ConnectorStairs, FloorID: "f2",
			Position: domain.Point{X: 0.9, Y: 0.15}, Shape: domain.RectShape(0.02, 0.03), SharedID: "stairs",
		},
		stairs3: domain.VerticalConnector{
			ID: "stairs-f3", Name: "East Stairs", Type: domain.ConnectorStairs, FloorID: "f3",
			Position: domain.Point{X: 0.9, Y: 0.2}, Shape: domain.RectShape(0.02, 0.03), SharedID: "stairs",
		},
		lonely: domain.VerticalConnector{
			ID: "ramp-f1", Name: "Service Ramp", Type: domain.ConnectorRamp, FloorID: "f1",
			Position: domain.Point{X: 0.1, Y: 0.9}, Shape: domain.CircleShape(0.01), SharedID: "ramp",
		},
		prompter: prompt.NewScriptedPrompter(true, ""),
	}
	m.stores = EditorStores{
		Buildings:  memory.NewBuildingStore(),
		Tags:       memory.NewTagStore(),
		Connectors: memory.NewConnectorStore(),
		Paths:      memory.NewPathStore(),
		State:      memory.NewEditorStateStore(),
	}
	return m
}

func (m *testMap) connectors() []domain.VerticalConnector {
	return []domain.VerticalConnector{m.lift1, m.lift2, m.stairs1, m.stairs2, m.stairs3, m.lonely}
}

// seed writes the fixture into the stores.
func (m *testMap) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, m.stores.Buildings.Save(ctx, m.building))
	require.NoError(t, m.stores.Buildings.Save(ctx, m.annex))
	for _, c := range m.connectors() {
		require.NoError(t, m.stores.Connectors.Save(ctx, c))
	}
	require.NoError(t, m.stores.Tags.Save(ctx, domain.Tag{
		ID: "t-lobby", Name: "Lobby", FloorID: "f1", Shape: domain.CircleShape(0.02),
	}))
	require.NoError(t, m.stores.Tags.Save(ctx, domain.Tag{
		ID: "t-office", Name: "Office 201", FloorID: "f2", Shape: domain.RectShape(0.1, 0.1),
	}))
	require.NoError(t, m.stores.Tags.Save(ctx, domain.Tag{
		ID: "t-exit", Name: "Exit", Shape: domain.CircleShape(0.01),
	}))
}

// editor returns a loaded editor with HQ selected on the ground floor.
func (m *testMap) editor(t *testing.T) *Editor {
	t.Helper()
	m.seed(t)
	e := NewEditor(m.stores, m.prompter, domain.DefaultCanvasSize)
	ctx := context.Background()
	e.Load(ctx)
	require.NoError(t, e.SelectBuilding(ctx, "hq"))
	return e
}

func pt(x, y float64) domain.Point {
	return domain.Point{X: x, Y: y}
}
