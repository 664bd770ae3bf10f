package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/waymark/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/services"
)

func TestNewServer(t *testing.T) {
	t.Run("nil editor service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingEditorService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, _ := newTestServer(t)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	editor := services.NewEditor(services.EditorStores{}, nil, domain.DefaultCanvasSize)

	t.Run("nil editor service returns error", func(t *testing.T) {
		ports := &Ports{}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingEditorService)
	})

	t.Run("editor only is valid", func(t *testing.T) {
		ports := &Ports{Editor: editor}
		err := ports.Validate()
		assert.NoError(t, err)
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Editor:     editor,
			Connectors: services.NewConnectorService(memory.NewConnectorStore()),
			Settings:   &mockSettingsService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})
}
