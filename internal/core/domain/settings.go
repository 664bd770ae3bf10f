package domain

import "fmt"

// StorageBackend selects the persistence adapter.
type StorageBackend string

const (
	StorageSQLite StorageBackend = "sqlite"
	StorageMemory StorageBackend = "memory"
)

// PromptStyle selects how connector decisions are asked.
type PromptStyle string

const (
	// PromptAuto uses the dialog UI on a terminal and plain lines otherwise.
	PromptAuto PromptStyle = "auto"

	// PromptDialog always uses the dialog UI.
	PromptDialog PromptStyle = "dialog"

	// PromptLine always uses plain line prompts.
	PromptLine PromptStyle = "line"
)

// Settings holds the user-configurable options.
type Settings struct {
	Canvas  CanvasSize
	Storage StorageBackend
	Prompt  PromptStyle
	Verbose bool
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Canvas:  DefaultCanvasSize,
		Storage: StorageSQLite,
		Prompt:  PromptAuto,
	}
}

// Validate checks that the settings are usable.
func (s *Settings) Validate() error {
	if !s.Canvas.IsValid() {
		return fmt.Errorf("%w: canvas size %.0fx%.0f", ErrInvalidInput, s.Canvas.Width, s.Canvas.Height)
	}
	switch s.Storage {
	case StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("%w: storage backend %q", ErrInvalidInput, s.Storage)
	}
	switch s.Prompt {
	case PromptAuto, PromptDialog, PromptLine:
	default:
		return fmt.Errorf("%w: prompt style %q", ErrInvalidInput, s.Prompt)
	}
	return nil
}
