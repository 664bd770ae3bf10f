// Package mcp provides an MCP (Model Context Protocol) server adapter for Waymark.
// It lets assistants inspect buildings, paths and connectors of a wayfinding map.
package mcp

import "errors"

var (
	// ErrMissingEditorService is returned when the editor service is not provided.
	ErrMissingEditorService = errors.New("mcp: editor service is required")

	// ErrConnectorsUnavailable is returned by connector tools when no
	// connector service is configured.
	ErrConnectorsUnavailable = errors.New("mcp: connector service not configured")
)
