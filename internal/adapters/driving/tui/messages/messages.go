// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/ports/driven"
	"github.com/custodia-labs/waymark/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewCanvas is the map canvas where paths are drawn.
	ViewCanvas
	// ViewPaths lists saved paths.
	ViewPaths
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings is the settings configuration view.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewCanvas:
		return "canvas"
	case ViewPaths:
		return "paths"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// EditorLoaded signals the editor finished loading stored data.
type EditorLoaded struct{}

// EditorChanged signals the editing session changed outside the canvas,
// e.g. a path was loaded for editing from the path list.
type EditorChanged struct {
	Err error
}

// ClickCompleted carries the outcome of a canvas click.
type ClickCompleted struct {
	Result driving.ClickResult
	Err    error
}

// PathSaved signals the drawn path was saved.
type PathSaved struct {
	Path *domain.Path
	Err  error
}

// PathsChanged signals a path list operation finished.
type PathsChanged struct {
	Message string
	Err     error
}

// RouteSelected carries the route chosen for preview.
type RouteSelected struct {
	Route *driving.RouteView
	Err   error
}

// Answer is the user's reply to a dialog request.
type Answer struct {
	// Confirmed is the reply to a confirm dialog.
	Confirmed bool

	// Choice is the picked option; empty means cancelled.
	Choice string
}

// ConfirmRequested asks the UI to show a yes/no dialog. The UI must send
// exactly one Answer on Reply.
type ConfirmRequested struct {
	Message string
	Reply   chan<- Answer
}

// ChoiceRequested asks the UI to show a pick-one dialog. The UI must
// send exactly one Answer on Reply.
type ChoiceRequested struct {
	Message string
	Options []string
	Reply   chan<- Answer
}

// NoticePosted carries a notice raised while handling a click.
type NoticePosted struct {
	Level   driven.NoticeLevel
	Message string
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.Settings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
