// Package cli provides the cobra command tree for waymark.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/waymark/internal/core/ports/driven"
	"github.com/custodia-labs/waymark/internal/core/ports/driving"
	"github.com/custodia-labs/waymark/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Options are the global flags shared by every command.
type Options struct {
	Verbose   bool
	ConfigDir string
	DataDir   string
}

// Services holds the core services the commands drive.
type Services struct {
	Buildings  driving.BuildingService
	Tags       driving.TagService
	Connectors driving.ConnectorService
	Settings   driving.SettingsService

	// NewEditor opens an editing session that asks connector questions
	// through the given prompter.
	NewEditor func(p driven.Prompter) driving.EditorService

	// Prompter answers connector questions for commands that do not
	// bring their own.
	Prompter driven.Prompter

	// Config is watched by long-running commands.
	Config driven.ConfigStore

	// Close releases storage. May be nil.
	Close func() error
}

// Wiring builds the services for the given options.
type Wiring func(opts Options) (*Services, error)

var (
	opts   Options
	wiring Wiring

	buildingService  driving.BuildingService
	tagService       driving.TagService
	connectorService driving.ConnectorService
	settingsService  driving.SettingsService
	editorFactory    func(p driven.Prompter) driving.EditorService
	defaultPrompter  driven.Prompter
	configStore      driven.ConfigStore
	closeServices    func() error
)

var rootCmd = &cobra.Command{
	Use:   "waymark",
	Short: "Wayfinding map editor",
	Long: `waymark edits wayfinding maps: buildings with ordered floors, tagged
locations, vertical connectors and navigation paths that may cross floors.

Paths are drawn by placing points on a floor. Placing a point on an
elevator, stairwell, escalator or ramp offers to continue the path on
another floor served by the same connector.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".waymark")

	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", base, "configuration directory")
	rootCmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", filepath.Join(base, "data"), "data directory")
}

// SetWiring installs the function that builds services before a command runs.
func SetWiring(w Wiring) {
	wiring = w
}

// SetServices installs services directly, bypassing the wiring function.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	buildingService = s.Buildings
	tagService = s.Tags
	connectorService = s.Connectors
	settingsService = s.Settings
	editorFactory = s.NewEditor
	defaultPrompter = s.Prompter
	configStore = s.Config
	closeServices = s.Close
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(_ *cobra.Command, _ []string) error {
	if opts.Verbose {
		logger.SetVerbose(true)
	}
	if wiring == nil {
		return nil
	}
	s, err := wiring(opts)
	if err != nil {
		return fmt.Errorf("initialising services: %w", err)
	}
	SetServices(s)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	closeServices = nil
	return err
}

var errEditorNotConfigured = errors.New("editor not configured")

// newEditor opens a loaded editing session.
func newEditor(cmd *cobra.Command, p driven.Prompter) (driving.EditorService, error) {
	if editorFactory == nil {
		return nil, errEditorNotConfigured
	}
	if p == nil {
		p = defaultPrompter
	}
	editor := editorFactory(p)
	editor.Load(cmd.Context())
	return editor, nil
}
