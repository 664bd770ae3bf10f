package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/waymark/internal/core/domain"
)

var (
	tagFloor    string
	tagBuilding string
	tagAt       string
	tagRadius   float64
	tagRect     string
	tagCategory string
	tagColor    string
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tagged locations",
	Long: `Tags name locations of interest and can be used as path endpoints.
A tag without a floor applies to every floor.`,
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags",
	Long:  `List tags. With --floor, only tags visible on that floor id are listed, global tags included.`,
	Args:  cobra.NoArgs,
	RunE:  runTagList,
}

var tagAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagAdd,
}

var tagDeleteCmd = &cobra.Command{
	Use:   "delete [tag-id]",
	Short: "Delete a tag and clear path references to it",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagDelete,
}

var tagColorCmd = &cobra.Command{
	Use:   "color [tag-id] [color]",
	Short: "Set a tag colour",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagColor,
}

func init() {
	tagListCmd.Flags().StringVar(&tagFloor, "floor", "", "only list tags visible on this floor id")

	tagAddCmd.Flags().StringVar(&tagBuilding, "building", "", "building owning --floor")
	tagAddCmd.Flags().StringVar(&tagFloor, "floor", "", "floor id or label; omit for a global tag")
	tagAddCmd.Flags().StringVar(&tagAt, "at", "", "position as x,y in 0..1 (required)")
	tagAddCmd.Flags().Float64Var(&tagRadius, "radius", 0.03, "circle radius, relative to canvas width")
	tagAddCmd.Flags().StringVar(&tagRect, "rect", "", "rectangle as w,h instead of a circle")
	tagAddCmd.Flags().StringVar(&tagCategory, "category", "", "category, e.g. office")
	tagAddCmd.Flags().StringVar(&tagColor, "color", "", "display colour")
	_ = tagAddCmd.MarkFlagRequired("at")

	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagDeleteCmd)
	tagCmd.AddCommand(tagColorCmd)
	rootCmd.AddCommand(tagCmd)
}

func runTagList(cmd *cobra.Command, _ []string) error {
	if tagService == nil {
		return errTagServiceNotConfigured
	}

	tags, err := tagService.List(cmd.Context(), tagFloor)
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}

	if len(tags) == 0 {
		cmd.Println("No tags found.")
		return nil
	}

	var buildings []domain.Building
	if buildingService != nil {
		buildings, _ = buildingService.List(cmd.Context())
	}

	cmd.Println("Tags:")
	for i := range tags {
		t := tags[i]
		where := "all floors"
		if !t.IsGlobal() {
			where = floorLabel(buildings, t.FloorID)
		}
		line := fmt.Sprintf("  %s  %s on %s at %s", t.ID, t.Name, where, t.Position)
		if t.Category != "" {
			line += fmt.Sprintf(" [%s]", t.Category)
		}
		cmd.Println(line)
	}
	return nil
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	if tagService == nil {
		return errTagServiceNotConfigured
	}

	floorID := ""
	if tagFloor != "" {
		if tagBuilding == "" {
			return fmt.Errorf("%w: --floor needs --building", domain.ErrInvalidInput)
		}
		b, err := resolveBuilding(cmd.Context(), tagBuilding)
		if err != nil {
			return err
		}
		f, err := resolveFloor(b, tagFloor)
		if err != nil {
			return err
		}
		floorID = f.ID
	}

	pos, err := parsePoint(tagAt)
	if err != nil {
		return err
	}
	shape, err := parseShape(tagRadius, tagRect)
	if err != nil {
		return err
	}

	t, err := tagService.Create(cmd.Context(), domain.Tag{
		Name:     args[0],
		Category: tagCategory,
		Shape:    shape,
		FloorID:  floorID,
		Color:    tagColor,
		Position: pos,
	})
	if err != nil {
		return fmt.Errorf("failed to add tag: %w", err)
	}

	cmd.Printf("Added tag %q (%s)\n", t.Name, t.ID)
	return nil
}

func runTagDelete(cmd *cobra.Command, args []string) error {
	if tagService == nil {
		return errTagServiceNotConfigured
	}

	if err := tagService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	cmd.Printf("Deleted tag %s\n", args[0])
	return nil
}

func runTagColor(cmd *cobra.Command, args []string) error {
	if tagService == nil {
		return errTagServiceNotConfigured
	}

	if err := tagService.SetColor(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set tag colour: %w", err)
	}

	cmd.Printf("Tag %s colour set to %s\n", args[0], args[1])
	return nil
}
