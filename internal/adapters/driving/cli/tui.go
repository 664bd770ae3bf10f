package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/waymark/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for waymark.

The TUI shows the selected floor as a character grid. Move the cursor
and place points to draw paths; connector questions open as dialogs.

Controls:
  ↑/k, ↓/j, ←/h, →/l - Move the cursor
  Space/Enter        - Place a point
  d                  - Toggle design mode
  m                  - Start a multi-floor path
  p                  - Toggle preview mode
  [ / ]              - Previous / next floor
  u                  - Undo
  s                  - Save the path
  Esc                - Back / Cancel
  ?                  - Toggle help
  q                  - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if editorFactory == nil {
		return errEditorNotConfigured
	}

	// Connector questions become dialogs inside the program.
	prompter := tui.NewDialogPrompter()
	ports := tui.NewPorts(editorFactory(prompter), settingsService, prompter)

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
