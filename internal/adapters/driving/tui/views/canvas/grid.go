package canvas

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/waymark/internal/core/domain"
)

// Grid maps normalised map coordinates onto a character grid.
type Grid struct {
	Cols int
	Rows int
}

// Cell returns the grid cell containing p, clamped to the grid.
func (g Grid) Cell(p domain.Point) (col, row int) {
	col = clamp(int(p.X*float64(g.Cols)), 0, g.Cols-1)
	row = clamp(int(p.Y*float64(g.Rows)), 0, g.Rows-1)
	return col, row
}

// Point returns the normalised centre of a cell.
func (g Grid) Point(col, row int) domain.Point {
	return domain.Point{
		X: (float64(clamp(col, 0, g.Cols-1)) + 0.5) / float64(g.Cols),
		Y: (float64(clamp(row, 0, g.Rows-1)) + 0.5) / float64(g.Rows),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type cell struct {
	r     rune
	style lipgloss.Style
	set   bool
}

// Frame is a character raster of the map. Later draws overwrite earlier ones.
type Frame struct {
	grid  Grid
	cells [][]cell
}

// NewFrame creates an empty frame.
func NewFrame(g Grid) *Frame {
	cells := make([][]cell, g.Rows)
	for i := range cells {
		cells[i] = make([]cell, g.Cols)
	}
	return &Frame{grid: g, cells: cells}
}

// Set draws r at a cell. Cells outside the grid are ignored.
func (f *Frame) Set(col, row int, r rune, style lipgloss.Style) {
	if row < 0 || row >= f.grid.Rows || col < 0 || col >= f.grid.Cols {
		return
	}
	f.cells[row][col] = cell{r: r, style: style, set: true}
}

// Plot draws r at the cell containing p.
func (f *Frame) Plot(p domain.Point, r rune, style lipgloss.Style) {
	col, row := f.grid.Cell(p)
	f.Set(col, row, r, style)
}

// Line draws r on every cell between a and b.
func (f *Frame) Line(a, b domain.Point, r rune, style lipgloss.Style) {
	x0, y0 := f.grid.Cell(a)
	x1, y1 := f.grid.Cell(b)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		f.Set(x0, y0, r, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Polyline draws the segments between consecutive points, then marks
// each point with vertex.
func (f *Frame) Polyline(points []domain.Point, line, vertex rune, style lipgloss.Style) {
	for i := 1; i < len(points); i++ {
		f.Line(points[i-1], points[i], line, style)
	}
	for _, p := range points {
		f.Plot(p, vertex, style)
	}
}

// Label writes text starting one cell right of p, clipped to the row.
func (f *Frame) Label(p domain.Point, text string, style lipgloss.Style) {
	col, row := f.grid.Cell(p)
	for i, r := range []rune(text) {
		f.Set(col+1+i, row, r, style)
	}
}

// RuneAt returns the rune drawn at a cell, or a space.
func (f *Frame) RuneAt(col, row int) rune {
	if row < 0 || row >= f.grid.Rows || col < 0 || col >= f.grid.Cols {
		return ' '
	}
	if c := f.cells[row][col]; c.set {
		return c.r
	}
	return ' '
}

// Highlight restyles a cell, drawing fallback if it is empty.
func (f *Frame) Highlight(col, row int, fallback rune, style lipgloss.Style) {
	r := f.RuneAt(col, row)
	if r == ' ' {
		r = fallback
	}
	f.Set(col, row, r, style)
}

// Render returns the frame as styled text, one line per row.
func (f *Frame) Render() string {
	var b strings.Builder
	for row := range f.cells {
		if row > 0 {
			b.WriteByte('\n')
		}
		for _, c := range f.cells[row] {
			if !c.set {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// connectorGlyph returns the marker drawn for a connector type.
func connectorGlyph(t domain.ConnectorType) rune {
	switch t {
	case domain.ConnectorElevator:
		return 'E'
	case domain.ConnectorStairs:
		return 'S'
	case domain.ConnectorEscalator:
		return 'X'
	case domain.ConnectorRamp:
		return 'R'
	default:
		return '?'
	}
}
