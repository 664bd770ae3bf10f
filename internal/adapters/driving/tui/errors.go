package tui

import "errors"

// ErrMissingEditorService is returned when the editor service is not provided.
var ErrMissingEditorService = errors.New("tui: editor service is required")

// ErrMissingPrompter is returned when the dialog prompter is not provided.
var ErrMissingPrompter = errors.New("tui: dialog prompter is required")

// ErrPrompterDetached is returned when a dialog is requested before the
// prompter is attached to a running program.
var ErrPrompterDetached = errors.New("tui: dialog prompter is not attached")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
