package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUICmd_Exists(t *testing.T) {
	// Verify the tui command is registered
	assert.NotNil(t, findCommand(rootCmd, "tui"), "tui command should be registered")
}

func TestTUICmd_ShortDescription(t *testing.T) {
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_LongDescription(t *testing.T) {
	assert.Contains(t, tuiCmd.Long, "interactive terminal user interface")
	assert.Contains(t, tuiCmd.Long, "Controls:")
}

func TestTUICmd_HelpOutput(t *testing.T) {
	out, err := execute(t, "tui", "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "interactive terminal user interface")
	assert.Contains(t, out, "multi-floor path")
}

func TestTUICmd_ErrorsWithoutEditor(t *testing.T) {
	SetServices(nil)

	_, err := execute(t, "tui")

	assert.ErrorIs(t, err, errEditorNotConfigured)
}
