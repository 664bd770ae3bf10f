package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/waymark/internal/adapters/driven/prompt"
	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/ports/driven"
)

func TestConnectorInteraction_SingleFloorAutoSelected(t *testing.T) {
	m := newTestMap()
	p := prompt.NewScriptedPrompter(true, "")
	r := NewConnectorInteraction(p)

	result := r.Resolve(context.Background(), m.lift1, &m.building, &m.floors[0], m.connectors())

	assert.True(t, result.ShouldProceed)
	assert.Equal(t, "First", result.ChosenFloorLabel)
	require.Len(t, result.AvailableFloors, 1)
	assert.Equal(t, "f2", result.TargetFloor().ID)
	assert.Len(t, p.Confirms(), 1)
	assert.Empty(t, p.Choices(), "no choice is asked when only one floor matches")
}

func TestConnectorInteraction_ChoosesAmongFloors(t *testing.T) {
	m := newTestMap()
	p := prompt.NewScriptedPrompter(true, "second")
	r := NewConnectorInteraction(p)

	result := r.Resolve(context.Background(), m.stairs1, &m.building, &m.floors[0], m.connectors())

	assert.True(t, result.ShouldProceed)
	assert.Equal(t, "Second", result.ChosenFloorLabel, "label is matched case-insensitively")
	assert.Equal(t, []string{"First", "Second"}, domain.FloorLabels(result.AvailableFloors))
	require.Len(t, p.Choices(), 1)
	assert.Equal(t, []string{"First", "Second"}, p.Choices()[0])
}

func TestConnectorInteraction_Declined(t *testing.T) {
	m := newTestMap()
	p := prompt.NewScriptedPrompter(false, "")
	r := NewConnectorInteraction(p)

	result := r.Resolve(context.Background(), m.stairs1, &m.building, &m.floors[0], m.connectors())

	assert.False(t, result.ShouldProceed)
	assert.Len(t, result.AvailableFloors, 2, "floors are reported on decline")
	assert.Nil(t, result.TargetFloor())
}

func TestConnectorInteraction_NoMatchingConnector(t *testing.T) {
	m := newTestMap()
	p := prompt.NewScriptedPrompter(true, "")
	r := NewConnectorInteraction(p)

	result := r.Resolve(context.Background(), m.lonely, &m.building, &m.floors[0], m.connectors())

	assert.False(t, result.ShouldProceed)
	assert.Empty(t, result.AvailableFloors)
	assert.Empty(t, p.Confirms())
	notices := p.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, driven.NoticeWarning, notices[0].Level)
	assert.Contains(t, notices[0].Message, "Service Ramp")
}

func TestConnectorInteraction_MatchOutsideBuilding(t *testing.T) {
	m := newTestMap()
	p := prompt.NewScriptedPrompter(true, "")
	r := NewConnectorInteraction(p)
	stray := domain.VerticalConnector{ID: "ramp-x", FloorID: "elsewhere", SharedID: "ramp"}

	result := r.Resolve(context.Background(), m.lonely, &m.building, &m.floors[0], append(m.connectors(), stray))

	assert.False(t, result.ShouldProceed)
	assert.Empty(t, result.AvailableFloors)
	require.Len(t, p.Notices(), 1)
	assert.Equal(t, "No other floors available for this connector.", p.Notices()[0].Message)
}

func TestConnectorInteraction_UnknownLabel(t *testing.T) {
	m := newTestMap()
	p := prompt.NewScriptedPrompter(true, "Roof")
	r := NewConnectorInteraction(p)

	result := r.Resolve(context.Background(), m.stairs1, &m.building, &m.floors[0], m.connectors())

	assert.False(t, result.ShouldProceed)
	assert.Len(t, result.AvailableFloors, 2)
	require.Len(t, p.Notices(), 1)
	assert.Contains(t, p.Notices()[0].Message, `"Roof" not found`)
}

func TestConnectorInteraction_CancelledChoice(t *testing.T) {
	m := newTestMap()
	p := prompt.NewScriptedPrompter(true, "   ")
	r := NewConnectorInteraction(p)

	result := r.Resolve(context.Background(), m.stairs1, &m.building, &m.floors[0], m.connectors())

	assert.False(t, result.ShouldProceed)
	assert.Len(t, result.AvailableFloors, 2)
	assert.Empty(t, p.Notices())
}

func TestConnectorInteraction_PrompterError(t *testing.T) {
	m := newTestMap()
	p := prompt.NewScriptedPrompter(true, "First")
	p.Err = errors.New("dialog closed")
	r := NewConnectorInteraction(p)

	result := r.Resolve(context.Background(), m.lift1, &m.building, &m.floors[0], m.connectors())

	assert.False(t, result.ShouldProceed)
	assert.Len(t, result.AvailableFloors, 1)
}

func TestConnectorInteraction_NilPrompterDeclines(t *testing.T) {
	m := newTestMap()
	r := NewConnectorInteraction(nil)

	result := r.Resolve(context.Background(), m.lift1, &m.building, &m.floors[0], m.connectors())

	assert.False(t, result.ShouldProceed)
	assert.Len(t, result.AvailableFloors, 1)
}

func TestConnectorInteraction_NoBuildingOrFloor(t *testing.T) {
	m := newTestMap()
	p := prompt.NewScriptedPrompter(true, "")
	r := NewConnectorInteraction(p)

	assert.Equal(t, InteractionResult{}, r.Resolve(context.Background(), m.lift1, nil, &m.floors[0], m.connectors()))
	assert.Equal(t, InteractionResult{}, r.Resolve(context.Background(), m.lift1, &m.building, nil, m.connectors()))
	assert.Empty(t, p.Confirms())
}

func TestConnectorInteraction_NumericFloorLabels(t *testing.T) {
	floors := []domain.Floor{
		{ID: "n1", BuildingID: "tower", Label: "1"},
		{ID: "n2", BuildingID: "tower", Label: "2"},
		{ID: "n3", BuildingID: "tower", Label: "3"},
	}
	building := domain.Building{ID: "tower", Name: "Tower", Floors: floors}
	var connectors []domain.VerticalConnector
	for _, f := range floors {
		connectors = append(connectors, domain.VerticalConnector{
			ID: "lift-" + f.ID, Name: "Lift", Type: domain.ConnectorElevator, FloorID: f.ID,
			Position: domain.Point{X: 0.5, Y: 0.5}, Shape: domain.CircleShape(0.02), SharedID: "lift",
		})
	}

	tests := []struct {
		name    string
		typed   string
		proceed bool
		chosen  string
		notice  string
	}{
		{"typed label is taken literally", "3", true, "3", ""},
		{"current floor is not offered", "2", false, "", `Floor "2" not found`},
		{"unknown number", "7", false, "", `Floor "7" not found`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := prompt.NewLinePrompter(strings.NewReader("y\n"+tt.typed+"\n"), &out)
			r := NewConnectorInteraction(p)

			result := r.Resolve(context.Background(), connectors[1], &building, &floors[1], connectors)

			assert.Equal(t, tt.proceed, result.ShouldProceed)
			assert.Equal(t, tt.chosen, result.ChosenFloorLabel)
			assert.Equal(t, []string{"1", "3"}, domain.FloorLabels(result.AvailableFloors))
			if tt.notice != "" {
				assert.Contains(t, out.String(), tt.notice)
			} else {
				assert.NotContains(t, out.String(), "not found")
			}
		})
	}
}
