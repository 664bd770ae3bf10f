// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up, Down, Left and Right move the selection or the canvas cursor.
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Cancel cancels the current operation.
	Cancel key.Binding

	// Place clicks the canvas at the cursor.
	Place key.Binding

	// Undo removes the last placed point.
	Undo key.Binding

	// Design toggles design mode.
	Design key.Binding

	// MultiFloor starts a multi-floor path.
	MultiFloor key.Binding

	// Preview toggles preview mode.
	Preview key.Binding

	// Save opens the save form for the drawn path.
	Save key.Binding

	// Clear discards the unsaved path.
	Clear key.Binding

	// NextFloor and PrevFloor cycle through the building's floors.
	NextFloor key.Binding
	PrevFloor key.Binding

	// Edit loads the selected path for editing.
	Edit key.Binding

	// Delete removes the selected path.
	Delete key.Binding

	// Publish toggles publication of the selected path.
	Publish key.Binding

	// PublishAll publishes every non-empty path.
	PublishAll key.Binding

	// Yes and No answer a confirm dialog.
	Yes key.Binding
	No  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Place: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "place point"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "ctrl+z"),
			key.WithHelp("u", "undo"),
		),
		Design: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "design"),
		),
		MultiFloor: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "multi-floor"),
		),
		Preview: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "preview"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear"),
		),
		NextFloor: key.NewBinding(
			key.WithKeys("tab", "]"),
			key.WithHelp("tab", "next floor"),
		),
		PrevFloor: key.NewBinding(
			key.WithKeys("shift+tab", "["),
			key.WithHelp("shift+tab", "prev floor"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete", "D"),
			key.WithHelp("D", "delete"),
		),
		Publish: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "publish"),
		),
		PublishAll: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "publish all"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "no"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// CanvasHelp returns keybindings for the canvas view.
func (k *KeyMap) CanvasHelp() []key.Binding {
	return []key.Binding{k.Place, k.Undo, k.Design, k.MultiFloor, k.Save, k.NextFloor, k.Back}
}

// PathsHelp returns keybindings for the path list.
func (k *KeyMap) PathsHelp() []key.Binding {
	return []key.Binding{k.Select, k.Edit, k.Publish, k.PublishAll, k.Delete, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Select},
		{k.Place, k.Undo, k.Clear, k.Save},
		{k.Design, k.MultiFloor, k.Preview, k.NextFloor, k.PrevFloor},
		{k.Edit, k.Publish, k.PublishAll, k.Delete},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
