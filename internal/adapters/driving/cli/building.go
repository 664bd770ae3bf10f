package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var floorImageURL string

var buildingCmd = &cobra.Command{
	Use:   "building",
	Short: "Manage buildings",
	Long:  `Create, inspect and delete buildings. Floors are managed with the floor command.`,
}

var buildingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all buildings",
	Args:  cobra.NoArgs,
	RunE:  runBuildingList,
}

var buildingCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a building",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuildingCreate,
}

var buildingShowCmd = &cobra.Command{
	Use:   "show [building]",
	Short: "Show a building and its floors",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuildingShow,
}

var buildingDeleteCmd = &cobra.Command{
	Use:   "delete [building]",
	Short: "Delete a building, its floors and their connectors",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuildingDelete,
}

var floorCmd = &cobra.Command{
	Use:   "floor",
	Short: "Manage the floors of a building",
}

var floorAddCmd = &cobra.Command{
	Use:   "add [building] [label]",
	Short: "Append a floor to a building",
	Args:  cobra.ExactArgs(2),
	RunE:  runFloorAdd,
}

var floorRemoveCmd = &cobra.Command{
	Use:   "remove [building] [floor]",
	Short: "Remove a floor and its connectors",
	Args:  cobra.ExactArgs(2),
	RunE:  runFloorRemove,
}

var floorReorderCmd = &cobra.Command{
	Use:   "reorder [building] [floor...]",
	Short: "Set the floor order, lowest first",
	Long: `Set the display order of a building's floors. Every floor must be
named exactly once, by id or label, lowest floor first.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runFloorReorder,
}

func init() {
	buildingCmd.AddCommand(buildingListCmd)
	buildingCmd.AddCommand(buildingCreateCmd)
	buildingCmd.AddCommand(buildingShowCmd)
	buildingCmd.AddCommand(buildingDeleteCmd)
	rootCmd.AddCommand(buildingCmd)

	floorAddCmd.Flags().StringVar(&floorImageURL, "image", "", "floor-plan image URL")
	floorCmd.AddCommand(floorAddCmd)
	floorCmd.AddCommand(floorRemoveCmd)
	floorCmd.AddCommand(floorReorderCmd)
	rootCmd.AddCommand(floorCmd)
}

func runBuildingList(cmd *cobra.Command, _ []string) error {
	if buildingService == nil {
		return errBuildingServiceNotConfigured
	}

	buildings, err := buildingService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list buildings: %w", err)
	}

	if len(buildings) == 0 {
		cmd.Println("No buildings. Create one with: waymark building create <name>")
		return nil
	}

	cmd.Println("Buildings:")
	for i := range buildings {
		cmd.Printf("  %s  %s (%d floors)\n", buildings[i].ID, buildings[i].Name, len(buildings[i].Floors))
	}
	return nil
}

func runBuildingCreate(cmd *cobra.Command, args []string) error {
	if buildingService == nil {
		return errBuildingServiceNotConfigured
	}

	b, err := buildingService.Create(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to create building: %w", err)
	}

	cmd.Printf("Created building %q (%s)\n", b.Name, b.ID)
	return nil
}

func runBuildingShow(cmd *cobra.Command, args []string) error {
	b, err := resolveBuilding(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cmd.Printf("Building: %s\n", b.Name)
	cmd.Printf("  ID: %s\n", b.ID)
	cmd.Printf("  Created: %s\n", b.CreatedAt.Format("2006-01-02 15:04"))
	cmd.Println()

	if len(b.Floors) == 0 {
		cmd.Println("No floors. Add one with: waymark floor add <building> <label>")
		return nil
	}

	cmd.Println("Floors (lowest first):")
	for i := range b.Floors {
		f := b.Floors[i]
		cmd.Printf("  %d. %s  %s\n", i+1, f.Label, f.ID)
		if f.ImageURL != "" {
			cmd.Printf("     Image: %s\n", f.ImageURL)
		}
	}
	return nil
}

func runBuildingDelete(cmd *cobra.Command, args []string) error {
	b, err := resolveBuilding(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if err := buildingService.Delete(cmd.Context(), b.ID); err != nil {
		return fmt.Errorf("failed to delete building: %w", err)
	}

	cmd.Printf("Deleted building %q\n", b.Name)
	return nil
}

func runFloorAdd(cmd *cobra.Command, args []string) error {
	b, err := resolveBuilding(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	f, err := buildingService.AddFloor(cmd.Context(), b.ID, args[1], floorImageURL)
	if err != nil {
		return fmt.Errorf("failed to add floor: %w", err)
	}

	cmd.Printf("Added floor %q to %q (%s)\n", f.Label, b.Name, f.ID)
	return nil
}

func runFloorRemove(cmd *cobra.Command, args []string) error {
	b, err := resolveBuilding(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	f, err := resolveFloor(b, args[1])
	if err != nil {
		return err
	}

	if err := buildingService.RemoveFloor(cmd.Context(), b.ID, f.ID); err != nil {
		return fmt.Errorf("failed to remove floor: %w", err)
	}

	cmd.Printf("Removed floor %q from %q\n", f.Label, b.Name)
	return nil
}

func runFloorReorder(cmd *cobra.Command, args []string) error {
	b, err := resolveBuilding(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(args)-1)
	for _, ref := range args[1:] {
		f, err := resolveFloor(b, ref)
		if err != nil {
			return err
		}
		ids = append(ids, f.ID)
	}

	if err := buildingService.ReorderFloors(cmd.Context(), b.ID, ids); err != nil {
		return fmt.Errorf("failed to reorder floors: %w", err)
	}

	cmd.Printf("Reordered floors of %q\n", b.Name)
	return nil
}
