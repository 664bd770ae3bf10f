package mcp

import (
	"github.com/custodia-labs/waymark/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Editor holds the map collections, selection and display state.
	Editor driving.EditorService

	// Connectors answers hit-tests for detect_connector.
	Connectors driving.ConnectorService

	// Settings supplies the logical canvas. Optional; the default canvas
	// is used without it.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Editor == nil {
		return ErrMissingEditorService
	}
	// Connectors and Settings are optional
	return nil
}
