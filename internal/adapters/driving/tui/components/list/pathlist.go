// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/waymark/internal/core/domain"
)

// PathList displays saved paths in a navigable list.
type PathList struct {
	paths    []domain.Path
	floors   []domain.Floor
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewPathList creates a new path list component.
func NewPathList(s *styles.Styles) *PathList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &PathList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the path list.
func (r *PathList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *PathList) Update(msg tea.Msg) (*PathList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the path list.
func (r *PathList) View() string {
	if len(r.paths) == 0 {
		return r.styles.Muted.Render("No paths")
	}

	lines := make([]string, 0, len(r.paths)*2+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Paths (%d)", len(r.paths))), "")

	// Each path takes two lines
	visibleCount := (r.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.paths) {
		end = len(r.paths)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderPath(i, &r.paths[i]))
	}

	return strings.Join(lines, "\n")
}

func (r *PathList) renderPath(index int, p *domain.Path) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	name := p.Name
	if name == "" {
		name = domain.PathName(p.Source, p.Destination)
	}
	maxNameLen := r.width - 16
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	status := "draft"
	if p.IsPublished {
		status = "published"
	}

	var nameLine string
	if index == r.selected {
		nameLine = r.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxNameLen, name, status))
	} else {
		nameLine = r.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxNameLen, name)) +
			r.styles.PathStyle(p.Color, p.IsPublished).Render(status)
	}

	return nameLine + "\n" + r.styles.Muted.Render("    "+r.describe(p))
}

func (r *PathList) describe(p *domain.Path) string {
	if !p.IsMultiFloor {
		floor := "all floors"
		if p.FloorID != "" {
			floor = r.floorLabel(p.FloorID)
		}
		return fmt.Sprintf("%s, %d points", floor, len(p.Points))
	}
	labels := make([]string, 0, len(p.Segments))
	for i := range p.Segments {
		labels = append(labels, r.floorLabel(p.Segments[i].FloorID))
	}
	return fmt.Sprintf("%s, %d points", strings.Join(labels, " > "), p.PointCount())
}

func (r *PathList) floorLabel(id string) string {
	for i := range r.floors {
		if r.floors[i].ID == id {
			return r.floors[i].Label
		}
	}
	return id
}

// SetPaths updates the list. floors are used to label floor ids.
func (r *PathList) SetPaths(paths []domain.Path, floors []domain.Floor) {
	r.paths = paths
	r.floors = floors
	if r.selected >= len(paths) {
		r.selected = 0
	}
}

// Paths returns the current paths.
func (r *PathList) Paths() []domain.Path {
	return r.paths
}

// Selected returns the index of the selected path.
func (r *PathList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *PathList) SetSelected(index int) {
	if index >= 0 && index < len(r.paths) {
		r.selected = index
	}
}

// SelectedPath returns the currently selected path, or nil if none.
func (r *PathList) SelectedPath() *domain.Path {
	if len(r.paths) == 0 || r.selected < 0 || r.selected >= len(r.paths) {
		return nil
	}
	return &r.paths[r.selected]
}

// MoveUp moves selection up.
func (r *PathList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *PathList) MoveDown() {
	if r.selected < len(r.paths)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *PathList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of paths.
func (r *PathList) Count() int {
	return len(r.paths)
}

// IsEmpty returns whether the list is empty.
func (r *PathList) IsEmpty() bool {
	return len(r.paths) == 0
}
