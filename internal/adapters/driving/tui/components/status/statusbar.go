// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateBusy    State = "busy"
	StateDrawing State = "drawing"
	StateNotice  State = "notice"
	StateWarning State = "warning"
	StateError   State = "error"
	StateHelp    State = "help"
)

// Location is the building, floor and mode shown on the left.
type Location struct {
	Building string
	Floor    string
	Mode     string
	Points   int
}

// Bar displays editor status and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	location Location
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is mostly passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the location and state.
func (s *Bar) renderLeft() string {
	var parts []string
	if s.location.Building != "" {
		parts = append(parts, s.location.Building)
	}
	if s.location.Floor != "" {
		parts = append(parts, s.location.Floor)
	}
	if s.location.Mode != "" {
		parts = append(parts, "["+s.location.Mode+"]")
	}
	where := s.styles.Normal.Render(strings.Join(parts, " / "))

	var what string
	switch s.state {
	case StateBusy:
		what = s.styles.Warning.Render("Waiting for answer...")
	case StateDrawing:
		what = s.styles.Success.Render(fmt.Sprintf("%d points", s.location.Points))
	case StateNotice:
		what = s.styles.Success.Render(s.message)
	case StateWarning:
		what = s.styles.Warning.Render(s.message)
	case StateError:
		if s.message != "" {
			what = s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		} else {
			what = s.styles.Error.Render("Error")
		}
	case StateHelp:
		what = s.styles.Normal.Render("Help")
	case StateReady:
		what = s.styles.Muted.Render("Ready")
	}

	if len(parts) == 0 {
		return what
	}
	return where + "  " + what
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == StateDrawing {
		bindings = s.keymap.CanvasHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetLocation sets the building, floor and mode shown.
func (s *Bar) SetLocation(loc Location) {
	s.location = loc
}

// Location returns the displayed location.
func (s *Bar) Location() Location {
	return s.location
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar state and message. The location is kept.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
