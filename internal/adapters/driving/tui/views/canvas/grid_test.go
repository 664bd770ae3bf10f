package canvas

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/waymark/internal/core/domain"
)

func TestGrid_Cell(t *testing.T) {
	g := Grid{Cols: 10, Rows: 5}

	tests := []struct {
		name     string
		p        domain.Point
		col, row int
	}{
		{"origin", domain.Point{X: 0, Y: 0}, 0, 0},
		{"centre", domain.Point{X: 0.5, Y: 0.5}, 5, 2},
		{"far corner clamps", domain.Point{X: 1, Y: 1}, 9, 4},
		{"out of range clamps", domain.Point{X: -0.2, Y: 1.4}, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row := g.Cell(tt.p)
			assert.Equal(t, tt.col, col)
			assert.Equal(t, tt.row, row)
		})
	}
}

func TestGrid_PointRoundTrips(t *testing.T) {
	g := Grid{Cols: 40, Rows: 20}

	for _, c := range [][2]int{{0, 0}, {12, 7}, {39, 19}} {
		col, row := g.Cell(g.Point(c[0], c[1]))
		assert.Equal(t, c[0], col)
		assert.Equal(t, c[1], row)
	}
}

func TestGrid_Point_CellCentre(t *testing.T) {
	g := Grid{Cols: 4, Rows: 2}

	p := g.Point(1, 0)

	assert.InDelta(t, 0.375, p.X, 1e-9)
	assert.InDelta(t, 0.25, p.Y, 1e-9)
}

func TestFrame_LineHorizontal(t *testing.T) {
	f := NewFrame(Grid{Cols: 10, Rows: 3})

	f.Line(domain.Point{X: 0.05, Y: 0.5}, domain.Point{X: 0.55, Y: 0.5}, '-', lipgloss.NewStyle())

	for col := 0; col <= 5; col++ {
		assert.Equal(t, '-', f.RuneAt(col, 1), "col %d", col)
	}
	assert.Equal(t, ' ', f.RuneAt(6, 1))
}

func TestFrame_LineDiagonal(t *testing.T) {
	f := NewFrame(Grid{Cols: 4, Rows: 4})

	f.Line(domain.Point{X: 0.9, Y: 0.9}, domain.Point{X: 0.1, Y: 0.1}, '\\', lipgloss.NewStyle())

	for i := 0; i < 4; i++ {
		assert.Equal(t, '\\', f.RuneAt(i, i))
	}
}

func TestFrame_PolylineMarksVertices(t *testing.T) {
	f := NewFrame(Grid{Cols: 10, Rows: 10})
	points := []domain.Point{{X: 0.05, Y: 0.05}, {X: 0.55, Y: 0.05}, {X: 0.55, Y: 0.55}}

	f.Polyline(points, '.', 'o', lipgloss.NewStyle())

	assert.Equal(t, 'o', f.RuneAt(0, 0))
	assert.Equal(t, '.', f.RuneAt(3, 0))
	assert.Equal(t, 'o', f.RuneAt(5, 0))
	assert.Equal(t, '.', f.RuneAt(5, 3))
	assert.Equal(t, 'o', f.RuneAt(5, 5))
}

func TestFrame_LabelClipped(t *testing.T) {
	f := NewFrame(Grid{Cols: 6, Rows: 1})

	f.Label(domain.Point{X: 0.4, Y: 0}, "Lobby", lipgloss.NewStyle())

	assert.Equal(t, 'L', f.RuneAt(3, 0))
	assert.Equal(t, 'b', f.RuneAt(5, 0))
}

func TestFrame_SetOutsideIgnored(t *testing.T) {
	f := NewFrame(Grid{Cols: 2, Rows: 2})

	f.Set(5, 5, 'x', lipgloss.NewStyle())
	f.Set(-1, 0, 'x', lipgloss.NewStyle())

	assert.Equal(t, ' ', f.RuneAt(5, 5))
	assert.Equal(t, "  \n  ", f.Render())
}

func TestFrame_Highlight(t *testing.T) {
	f := NewFrame(Grid{Cols: 3, Rows: 1})
	f.Set(0, 0, 'E', lipgloss.NewStyle())

	f.Highlight(0, 0, '+', lipgloss.NewStyle())
	f.Highlight(2, 0, '+', lipgloss.NewStyle())

	assert.Equal(t, 'E', f.RuneAt(0, 0))
	assert.Equal(t, '+', f.RuneAt(2, 0))
}

func TestFrame_RenderRows(t *testing.T) {
	f := NewFrame(Grid{Cols: 5, Rows: 3})

	lines := strings.Split(f.Render(), "\n")

	assert.Len(t, lines, 3)
	assert.Equal(t, "     ", lines[0])
}

func TestConnectorGlyph(t *testing.T) {
	assert.Equal(t, 'E', connectorGlyph(domain.ConnectorElevator))
	assert.Equal(t, 'S', connectorGlyph(domain.ConnectorStairs))
	assert.Equal(t, 'X', connectorGlyph(domain.ConnectorEscalator))
	assert.Equal(t, 'R', connectorGlyph(domain.ConnectorRamp))
	assert.Equal(t, '?', connectorGlyph(domain.ConnectorType("lift")))
}
