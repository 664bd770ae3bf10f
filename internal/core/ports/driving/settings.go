package driving

import "github.com/custodia-labs/waymark/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the current settings, defaults filled in.
	Get() (*domain.Settings, error)

	// SetCanvas sets the logical canvas used for hit-testing.
	SetCanvas(width, height float64) error

	// SetStorage sets the persistence backend.
	SetStorage(backend domain.StorageBackend) error

	// SetPrompt sets how connector decisions are asked.
	SetPrompt(style domain.PromptStyle) error

	// Validate checks that the settings are usable.
	Validate() error
}
