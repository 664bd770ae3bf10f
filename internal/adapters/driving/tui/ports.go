// Package tui provides an interactive terminal user interface for waymark.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/waymark/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Editor is the editing session drawn on the canvas.
	Editor driving.EditorService

	// Settings manages application settings.
	Settings driving.SettingsService

	// Prompter must be the same prompter the editor was built with so
	// connector decisions reach the dialog.
	Prompter *DialogPrompter
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(editor driving.EditorService, settings driving.SettingsService, prompter *DialogPrompter) *Ports {
	return &Ports{
		Editor:   editor,
		Settings: settings,
		Prompter: prompter,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Editor == nil {
		return ErrMissingEditorService
	}
	if p.Prompter == nil {
		return ErrMissingPrompter
	}
	return nil
}
