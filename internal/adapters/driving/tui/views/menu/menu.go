// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/waymark/internal/core/domain"
)

// Item is one menu entry. Entries without a view quit the app.
type Item struct {
	Label string
	Hint  string
	View  messages.ViewType
	Quit  bool
}

// Selection is the editor context shown above the menu.
type Selection struct {
	Building string
	Floor    string
	Mode     domain.EditorMode
	Paths    int
}

// View is the main menu.
type View struct {
	styles    *styles.Styles
	items     []Item
	selected  int
	selection Selection
	width     int
	height    int
	ready     bool
}

// NewView creates the menu.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Map", Hint: "draw and edit paths on the selected floor", View: messages.ViewCanvas},
			{Label: "Paths", Hint: "publish, recolour, route or delete paths", View: messages.ViewPaths},
			{Label: "Settings", Hint: "canvas size, storage and prompts", View: messages.ViewSettings},
			{Label: "Help", Hint: "key bindings", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// Init implements tea.Model.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetSelection updates the editor context line.
func (v *View) SetSelection(sel Selection) {
	v.selection = sel
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			return v, v.activate(v.selected)

		case "q":
			return v, tea.Quit
		}

		// 1-9 jump straight to an entry.
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			idx := int(key[0] - '1')
			if idx < len(v.items) {
				v.selected = idx
				return v, v.activate(idx)
			}
		}
	}

	return v, nil
}

func (v *View) activate(idx int) tea.Cmd {
	item := v.items[idx]
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Waymark"))
	b.WriteString("\n\n")
	b.WriteString(muted.Render(v.selectionLine()))
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor := "  "
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
		if i == v.selected {
			cursor = "> "
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
		}

		line := fmt.Sprintf("%s%d %s", cursor, i+1, style.Render(item.Label))
		if item.Hint != "" && i == v.selected {
			line += "  " + muted.Render(item.Hint)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(muted.Render("[j/k] Navigate  [1-5/Enter] Select  [q] Quit"))

	return b.String()
}

func (v *View) selectionLine() string {
	sel := v.selection
	if sel.Building == "" {
		return "No building selected. Create one with: waymark building create <name>"
	}
	floor := sel.Floor
	if floor == "" {
		floor = "no floor"
	}
	return fmt.Sprintf("%s / %s | %s mode | %d paths", sel.Building, floor, sel.Mode, sel.Paths)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
