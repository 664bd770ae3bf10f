package services

import (
	"fmt"

	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/ports/driven"
	"github.com/custodia-labs/waymark/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyCanvasWidth    = "canvas.width"
	keyCanvasHeight   = "canvas.height"
	keyStorageBackend = "storage.backend"
	keyEditorPrompt   = "editor.prompt"
	keyLogVerbose     = "log.verbose"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()
	if s.configStore == nil {
		return &defaults, nil
	}

	settings := &domain.Settings{
		Canvas: domain.CanvasSize{
			Width:  s.getFloat(keyCanvasWidth, defaults.Canvas.Width),
			Height: s.getFloat(keyCanvasHeight, defaults.Canvas.Height),
		},
		Storage: s.getStorage(defaults.Storage),
		Prompt:  s.getPrompt(defaults.Prompt),
		Verbose: s.getBool(keyLogVerbose, defaults.Verbose),
	}
	return settings, nil
}

// SetCanvas updates the logical canvas size.
func (s *SettingsService) SetCanvas(width, height float64) error {
	canvas := domain.CanvasSize{Width: width, Height: height}
	if !canvas.IsValid() {
		return fmt.Errorf("%w: canvas size %.0fx%.0f", domain.ErrInvalidInput, width, height)
	}
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := s.configStore.Set(keyCanvasWidth, width); err != nil {
		return fmt.Errorf("save canvas width: %w", err)
	}
	if err := s.configStore.Set(keyCanvasHeight, height); err != nil {
		return fmt.Errorf("save canvas height: %w", err)
	}
	return nil
}

// SetStorage updates the persistence backend.
func (s *SettingsService) SetStorage(backend domain.StorageBackend) error {
	switch backend {
	case domain.StorageSQLite, domain.StorageMemory:
	default:
		return fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, backend)
	}
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := s.configStore.Set(keyStorageBackend, string(backend)); err != nil {
		return fmt.Errorf("save storage backend: %w", err)
	}
	return nil
}

// SetPrompt updates how connector decisions are asked.
func (s *SettingsService) SetPrompt(style domain.PromptStyle) error {
	switch style {
	case domain.PromptAuto, domain.PromptDialog, domain.PromptLine:
	default:
		return fmt.Errorf("%w: prompt style %q", domain.ErrInvalidInput, style)
	}
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := s.configStore.Set(keyEditorPrompt, string(style)); err != nil {
		return fmt.Errorf("save prompt style: %w", err)
	}
	return nil
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStorage(defaultVal domain.StorageBackend) domain.StorageBackend {
	switch backend := domain.StorageBackend(s.configStore.GetString(keyStorageBackend)); backend {
	case domain.StorageSQLite, domain.StorageMemory:
		return backend
	default:
		return defaultVal
	}
}

func (s *SettingsService) getPrompt(defaultVal domain.PromptStyle) domain.PromptStyle {
	switch style := domain.PromptStyle(s.configStore.GetString(keyEditorPrompt)); style {
	case domain.PromptAuto, domain.PromptDialog, domain.PromptLine:
		return style
	default:
		return defaultVal
	}
}
