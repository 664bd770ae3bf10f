// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/styles"
)

// LocationInput wraps a bubbles textinput for entering a path endpoint.
// Known location names are offered as tab completions.
type LocationInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewLocationInput creates a new location input with the given label.
func NewLocationInput(s *styles.Styles, label string) *LocationInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Tag name or free text..."
	ti.CharLimit = 128
	ti.Width = 40
	ti.ShowSuggestions = true

	return &LocationInput{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     40,
	}
}

// Init initialises the input.
func (l *LocationInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (l *LocationInput) Update(msg tea.Msg) (*LocationInput, tea.Cmd) {
	var cmd tea.Cmd
	l.textinput, cmd = l.textinput.Update(msg)
	return l, cmd
}

// View renders the labelled input.
func (l *LocationInput) View() string {
	label := l.styles.Title.Render(l.label + ": ")
	input := l.styles.InputField.Render(l.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// Value returns the trimmed input value.
func (l *LocationInput) Value() string {
	return strings.TrimSpace(l.textinput.Value())
}

// SetValue sets the input value.
func (l *LocationInput) SetValue(value string) {
	l.textinput.SetValue(value)
}

// SetLocations sets the names offered as completions.
func (l *LocationInput) SetLocations(names []string) {
	l.textinput.SetSuggestions(names)
}

// Focus sets focus on the input.
func (l *LocationInput) Focus() tea.Cmd {
	return l.textinput.Focus()
}

// Blur removes focus from the input.
func (l *LocationInput) Blur() {
	l.textinput.Blur()
}

// Focused returns whether the input is focused.
func (l *LocationInput) Focused() bool {
	return l.textinput.Focused()
}

// SetWidth sets the width of the input.
func (l *LocationInput) SetWidth(width int) {
	l.width = width
	// Account for label and padding
	inputWidth := width - len(l.label) - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	l.textinput.Width = inputWidth
}

// Width returns the current width.
func (l *LocationInput) Width() int {
	return l.width
}

// Reset clears the input.
func (l *LocationInput) Reset() {
	l.textinput.Reset()
}
