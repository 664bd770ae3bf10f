package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/waymark/internal/core/domain"
)

var (
	selectPreview bool
	selectReset   bool
	locationsAll  bool
)

var selectCmd = &cobra.Command{
	Use:   "select [building] [floor]",
	Short: "Show or change the selected building and floor",
	Long: `Show or change the editor selection. The selection is remembered
between invocations and scopes path list, path draw and locations.

Selecting a building selects its lowest floor unless a floor is given.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runSelect,
}

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List location names usable as path endpoints",
	Long: `List tag names and existing path endpoints. By default only tags
visible on the selected floor are included; --all includes every tag.`,
	Args: cobra.NoArgs,
	RunE: runLocations,
}

func init() {
	selectCmd.Flags().BoolVar(&selectPreview, "preview", false, "toggle preview mode")
	selectCmd.Flags().BoolVar(&selectReset, "reset", false, "return to the default mode")
	rootCmd.AddCommand(selectCmd)

	locationsCmd.Flags().BoolVar(&locationsAll, "all", false, "include tags on every floor")
	rootCmd.AddCommand(locationsCmd)
}

func runSelect(cmd *cobra.Command, args []string) error {
	editor, err := newEditor(cmd, nil)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if len(args) > 0 {
		b, err := resolveBuilding(ctx, args[0])
		if err != nil {
			return err
		}
		if err := editor.SelectBuilding(ctx, b.ID); err != nil {
			return err
		}
		if len(args) == 2 {
			f, err := resolveFloor(b, args[1])
			if err != nil {
				return err
			}
			if err := editor.SelectFloor(ctx, f.ID); err != nil {
				return err
			}
		}
	}

	if selectReset {
		editor.ResetModes(ctx)
	}
	if selectPreview {
		editor.TogglePreviewMode(ctx)
	}

	b := editor.SelectedBuilding()
	if b == nil {
		cmd.Println("No building selected.")
		return nil
	}
	floor := "none"
	if f := editor.SelectedFloor(); f != nil {
		floor = f.Label
	}
	cmd.Printf("Building: %s\n", b.Name)
	cmd.Printf("Floor: %s\n", floor)
	cmd.Printf("Mode: %s\n", editor.Mode())
	if len(b.Floors) > 0 {
		cmd.Printf("Floors: %s\n", strings.Join(domain.FloorLabels(b.Floors), ", "))
	}
	return nil
}

func runLocations(cmd *cobra.Command, _ []string) error {
	editor, err := newEditor(cmd, nil)
	if err != nil {
		return err
	}

	names := editor.AvailableLocations(!locationsAll)
	if len(names) == 0 {
		cmd.Println("No locations. Add tags with: waymark tag add <name> --at x,y")
		return nil
	}

	for _, name := range names {
		cmd.Printf("  %s\n", name)
	}
	return nil
}
