package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/waymark/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the canvas size, storage backend and prompt style.

Use subcommands to change one setting or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsCanvasCmd = &cobra.Command{
	Use:   "canvas [width] [height]",
	Short: "Set the logical canvas size",
	Long: `Set the logical canvas that normalised points are scaled into when
measuring distances, e.g. for connector hit-testing. Default 1200x800.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsCanvas,
}

var settingsStorageCmd = &cobra.Command{
	Use:   "storage [backend]",
	Short: "Set the storage backend",
	Long: `Set the storage backend.

Available backends:
  sqlite - persist to a database in the data directory
  memory - keep everything in memory until the program exits`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsStorage,
}

var settingsPromptCmd = &cobra.Command{
	Use:   "prompt [style]",
	Short: "Set how connector questions are asked",
	Long: `Set how connector questions are asked.

Available styles:
  auto   - dialogs in the terminal UI, line prompts elsewhere
  dialog - always use dialogs
  line   - always use line prompts`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsPrompt,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsCanvasCmd)
	settingsCmd.AddCommand(settingsStorageCmd)
	settingsCmd.AddCommand(settingsPromptCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsServiceNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Canvas]")
	cmd.Printf("  Size: %s x %s\n", formatFloat(settings.Canvas.Width), formatFloat(settings.Canvas.Height))
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage)
	cmd.Println()

	cmd.Println("[Editor]")
	cmd.Printf("  Prompt: %s\n", settings.Prompt)
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  Verbose: %t\n", settings.Verbose)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'waymark settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsServiceNotConfigured
	}
	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Waymark Settings Wizard")
	cmd.Println("=======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Canvas
	cmd.Println("Step 1: Canvas Size")
	cmd.Println("-------------------")
	width := readFloat(cmd, reader, "Width", current.Canvas.Width)
	height := readFloat(cmd, reader, "Height", current.Canvas.Height)
	if err := settingsService.SetCanvas(width, height); err != nil {
		return fmt.Errorf("failed to set canvas: %w", err)
	}
	cmd.Printf("Set canvas to %s x %s\n\n", formatFloat(width), formatFloat(height))

	// Step 2: Storage
	cmd.Println("Step 2: Storage Backend")
	cmd.Println("-----------------------")
	backends := []domain.StorageBackend{domain.StorageSQLite, domain.StorageMemory}
	for i, b := range backends {
		cmd.Printf("  %d. %s\n", i+1, b)
	}
	cmd.Print("\nEnter choice [1]: ")
	backend := backends[parseChoice(readLine(reader), len(backends), 1)-1]
	if err := settingsService.SetStorage(backend); err != nil {
		return fmt.Errorf("failed to set storage: %w", err)
	}
	cmd.Printf("Set storage to: %s\n\n", backend)

	// Step 3: Prompt style
	cmd.Println("Step 3: Prompt Style")
	cmd.Println("--------------------")
	styles := []domain.PromptStyle{domain.PromptAuto, domain.PromptDialog, domain.PromptLine}
	for i, s := range styles {
		cmd.Printf("  %d. %s\n", i+1, s)
	}
	cmd.Print("\nEnter choice [1]: ")
	style := styles[parseChoice(readLine(reader), len(styles), 1)-1]
	if err := settingsService.SetPrompt(style); err != nil {
		return fmt.Errorf("failed to set prompt style: %w", err)
	}
	cmd.Printf("Set prompt style to: %s\n\n", style)

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}
	return nil
}

func runSettingsCanvas(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsServiceNotConfigured
	}

	width, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("%w: width %q", domain.ErrInvalidInput, args[0])
	}
	height, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("%w: height %q", domain.ErrInvalidInput, args[1])
	}

	if err := settingsService.SetCanvas(width, height); err != nil {
		return fmt.Errorf("failed to set canvas: %w", err)
	}

	cmd.Printf("Canvas set to: %s x %s\n", formatFloat(width), formatFloat(height))
	return nil
}

func runSettingsStorage(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsServiceNotConfigured
	}

	backend := domain.StorageBackend(strings.ToLower(args[0]))
	if err := settingsService.SetStorage(backend); err != nil {
		return fmt.Errorf("failed to set storage: %w", err)
	}

	cmd.Printf("Storage set to: %s\n", backend)
	if backend == domain.StorageMemory {
		cmd.Println("\nNote: memory storage keeps nothing between invocations.")
	}
	return nil
}

func runSettingsPrompt(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsServiceNotConfigured
	}

	style := domain.PromptStyle(strings.ToLower(args[0]))
	if err := settingsService.SetPrompt(style); err != nil {
		return fmt.Errorf("failed to set prompt style: %w", err)
	}

	cmd.Printf("Prompt style set to: %s\n", style)
	return nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func readFloat(cmd *cobra.Command, reader *bufio.Reader, label string, defaultVal float64) float64 {
	cmd.Printf("%s [%s]: ", label, formatFloat(defaultVal))
	input := readLine(reader)
	if input == "" {
		return defaultVal
	}
	val, err := strconv.ParseFloat(input, 64)
	if err != nil || val <= 0 {
		cmd.Printf("Invalid value, keeping %s\n", formatFloat(defaultVal))
		return defaultVal
	}
	return val
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
