package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/waymark/internal/adapters/driven/prompt"
	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/ports/driven"
	"github.com/custodia-labs/waymark/internal/core/ports/driving"
)

var (
	pathListAll  bool
	pathListJSON bool

	drawBuilding    string
	drawFloor       string
	drawMultiFloor  bool
	drawPoints      []string
	drawDrags       []string
	drawSource      string
	drawDestination string
	drawEdit        string
	drawYes         bool
	drawToFloor     string

	publishAll   bool
	routeSegment int
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Draw and manage navigation paths",
}

var pathListCmd = &cobra.Command{
	Use:   "list",
	Short: "List paths relevant to the selected floor",
	Args:  cobra.NoArgs,
	RunE:  runPathList,
}

var pathShowCmd = &cobra.Command{
	Use:   "show [path-id]",
	Short: "Show a path and its points",
	Args:  cobra.ExactArgs(1),
	RunE:  runPathShow,
}

var pathDrawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Draw a path by placing points",
	Long: `Draw a path by placing points on the selected floor, then save it.

Points are given in normalised coordinates, 0,0 top-left and 1,1
bottom-right. In a multi-floor path, a point placed on a vertical
connector asks whether to continue on another floor; the path then
continues from the matching connector on that floor.

Examples:
  # Single-floor path
  waymark path draw --building HQ --floor Ground --point 0.1,0.1 --point 0.4,0.2 \
    --source Lobby --destination "Office 201"

  # Multi-floor path through the main elevator, answering prompts up front
  waymark path draw --multi-floor --point 0.1,0.1 --point 0.5,0.5 --point 0.8,0.3 \
    --yes --to-floor "Level 2" --source Lobby --destination "Office 201"

  # Move the second point of an existing path
  waymark path draw --edit <path-id> --drag 1:0.45,0.25`,
	Args: cobra.NoArgs,
	RunE: runPathDraw,
}

var pathDeleteCmd = &cobra.Command{
	Use:   "delete [path-id]",
	Short: "Delete a path",
	Args:  cobra.ExactArgs(1),
	RunE:  runPathDelete,
}

var pathPublishCmd = &cobra.Command{
	Use:   "publish [path-id]",
	Short: "Publish a path, or every path with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPathPublish,
}

var pathUnpublishCmd = &cobra.Command{
	Use:   "unpublish [path-id]",
	Short: "Unpublish a path",
	Args:  cobra.ExactArgs(1),
	RunE:  runPathUnpublish,
}

var pathColorCmd = &cobra.Command{
	Use:   "color [path-id] [color]",
	Short: "Set a path colour",
	Args:  cobra.ExactArgs(2),
	RunE:  runPathColor,
}

var pathRouteCmd = &cobra.Command{
	Use:   "route [path-id]",
	Short: "Show the route to animate for a path",
	Long: `Select a path for animation and print the points shown on its floor.
For a multi-floor path, --segment picks the segment (1-based).`,
	Args: cobra.ExactArgs(1),
	RunE: runPathRoute,
}

var pathVisibleCmd = &cobra.Command{
	Use:   "visible",
	Short: "List the paths drawn on the selected floor in the current mode",
	Args:  cobra.NoArgs,
	RunE:  runPathVisible,
}

func init() {
	pathListCmd.Flags().BoolVar(&pathListAll, "all", false, "list paths on every floor")
	pathListCmd.Flags().BoolVar(&pathListJSON, "json", false, "output paths as JSON")

	pathDrawCmd.Flags().StringVar(&drawBuilding, "building", "", "select this building first")
	pathDrawCmd.Flags().StringVar(&drawFloor, "floor", "", "start on this floor (id or label)")
	pathDrawCmd.Flags().BoolVar(&drawMultiFloor, "multi-floor", false, "allow the path to cross floors")
	pathDrawCmd.Flags().StringArrayVar(&drawPoints, "point", nil, "place a point at x,y (repeatable)")
	pathDrawCmd.Flags().StringArrayVar(&drawDrags, "drag", nil, "move point i to x,y as i:x,y (with --edit)")
	pathDrawCmd.Flags().StringVar(&drawSource, "source", "", "source location name")
	pathDrawCmd.Flags().StringVar(&drawDestination, "destination", "", "destination location name")
	pathDrawCmd.Flags().StringVar(&drawEdit, "edit", "", "edit an existing path instead of drawing a new one")
	pathDrawCmd.Flags().BoolVarP(&drawYes, "yes", "y", false, "accept every floor switch without asking")
	pathDrawCmd.Flags().StringVar(&drawToFloor, "to-floor", "", "floor to pick when a connector serves several")

	pathPublishCmd.Flags().BoolVar(&publishAll, "all", false, "publish every path with points")
	pathRouteCmd.Flags().IntVar(&routeSegment, "segment", 0, "segment of a multi-floor path, 1-based")

	pathCmd.AddCommand(pathListCmd)
	pathCmd.AddCommand(pathShowCmd)
	pathCmd.AddCommand(pathDrawCmd)
	pathCmd.AddCommand(pathDeleteCmd)
	pathCmd.AddCommand(pathPublishCmd)
	pathCmd.AddCommand(pathUnpublishCmd)
	pathCmd.AddCommand(pathColorCmd)
	pathCmd.AddCommand(pathRouteCmd)
	pathCmd.AddCommand(pathVisibleCmd)
	rootCmd.AddCommand(pathCmd)
}

func runPathList(cmd *cobra.Command, _ []string) error {
	editor, err := newEditor(cmd, nil)
	if err != nil {
		return err
	}

	floorID := ""
	if f := editor.SelectedFloor(); f != nil && !pathListAll {
		floorID = f.ID
	}
	var paths []domain.Path
	for _, p := range editor.Paths() {
		if pathListAll || p.RelevantTo(floorID) {
			paths = append(paths, p)
		}
	}

	if pathListJSON {
		data, err := json.MarshalIndent(paths, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal paths: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(paths) == 0 {
		cmd.Println("No paths found.")
		return nil
	}

	cmd.Println("Paths:")
	for i := range paths {
		cmd.Printf("  %s  %s\n", paths[i].ID, describePath(editor.Buildings(), &paths[i]))
	}
	return nil
}

func describePath(buildings []domain.Building, p *domain.Path) string {
	status := "draft"
	if p.IsPublished {
		status = "published"
	}
	floors := "all floors"
	if ids := p.FloorIDs(); len(ids) > 0 {
		labels := make([]string, len(ids))
		for i, id := range ids {
			labels[i] = floorLabel(buildings, id)
		}
		floors = strings.Join(labels, " > ")
	}
	return fmt.Sprintf("%s [%s] %s, %d points", p.Name, status, floors, p.PointCount())
}

func runPathShow(cmd *cobra.Command, args []string) error {
	editor, err := newEditor(cmd, nil)
	if err != nil {
		return err
	}

	p := domain.FindPath(editor.Paths(), args[0])
	if p == nil {
		return fmt.Errorf("path %s: %w", args[0], domain.ErrNotFound)
	}
	buildings := editor.Buildings()

	cmd.Printf("Path: %s\n", p.Name)
	cmd.Printf("  ID: %s\n", p.ID)
	cmd.Printf("  Source: %s\n", p.Source)
	cmd.Printf("  Destination: %s\n", p.Destination)
	cmd.Printf("  Published: %t\n", p.IsPublished)
	if p.Color != "" {
		cmd.Printf("  Colour: %s\n", p.Color)
	}
	if p.SourceTagID != "" || p.DestinationTagID != "" {
		cmd.Printf("  Tags: %s -> %s\n", p.SourceTagID, p.DestinationTagID)
	}

	if !p.IsMultiFloor {
		where := "all floors"
		if p.FloorID != "" {
			where = floorLabel(buildings, p.FloorID)
		}
		cmd.Printf("  Floor: %s\n", where)
		cmd.Printf("  Points: %s\n", formatPoints(p.Points))
		return nil
	}

	cmd.Printf("  Floors: %s to %s\n", floorLabel(buildings, p.SourceFloorID), floorLabel(buildings, p.DestinationFloorID))
	for i := range p.Segments {
		s := p.Segments[i]
		cmd.Printf("  Segment %d on %s: %s\n", i+1, floorLabel(buildings, s.FloorID), formatPoints(s.Points))
		if s.ConnectorID != "" {
			cmd.Printf("    via connector %s\n", s.ConnectorID)
		}
	}
	return nil
}

// drawPrompter answers connector questions from flags when any are given.
func drawPrompter() driven.Prompter {
	if drawYes || drawToFloor != "" {
		return prompt.NewScriptedPrompter(true, drawToFloor)
	}
	return nil
}

//nolint:gocognit,gocyclo // sequential drawing steps
func runPathDraw(cmd *cobra.Command, _ []string) error {
	editor, err := newEditor(cmd, drawPrompter())
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if drawBuilding != "" {
		b, err := resolveBuilding(ctx, drawBuilding)
		if err != nil {
			return err
		}
		if err := editor.SelectBuilding(ctx, b.ID); err != nil {
			return err
		}
	}
	if drawFloor != "" {
		b := editor.SelectedBuilding()
		if b == nil {
			return domain.ErrNoBuildingSelected
		}
		f, err := resolveFloor(b, drawFloor)
		if err != nil {
			return err
		}
		if err := editor.SelectFloor(ctx, f.ID); err != nil {
			return err
		}
	}

	points := make([]domain.Point, 0, len(drawPoints))
	for _, s := range drawPoints {
		p, err := parsePoint(s)
		if err != nil {
			return err
		}
		points = append(points, p)
	}

	if editor.Mode() == domain.ModePreview {
		editor.ResetModes(ctx)
	}
	switch {
	case drawEdit != "":
		if err := editor.EditPath(ctx, drawEdit); err != nil {
			return err
		}
	case drawMultiFloor:
		if err := editor.StartMultiFloorPath(ctx); err != nil {
			return err
		}
	default:
		if err := editor.EnterDesignMode(ctx); err != nil {
			return err
		}
	}

	for _, d := range drawDrags {
		index, p, err := parseDrag(d)
		if err != nil {
			return err
		}
		if err := editor.DragPoint(index, p); err != nil {
			return fmt.Errorf("drag %q: %w", d, err)
		}
	}

	for i, p := range points {
		result, err := editor.Click(ctx, p)
		if err != nil {
			return fmt.Errorf("point %d %s: %w", i+1, p, err)
		}
		reportClick(cmd, result)
	}

	source, destination := drawSource, drawDestination
	if selected := editor.SelectedPath(); selected != nil {
		if source == "" {
			source = selected.Source
		}
		if destination == "" {
			destination = selected.Destination
		}
	}
	if source == "" || destination == "" {
		return fmt.Errorf("%w: --source and --destination are required", domain.ErrInvalidInput)
	}

	saved, err := editor.SavePath(ctx, source, destination)
	if err != nil {
		return fmt.Errorf("failed to save path: %w", err)
	}

	cmd.Printf("Saved %s\n", saved.ID)
	cmd.Printf("  %s\n", describePath(editor.Buildings(), saved))
	return nil
}

func reportClick(cmd *cobra.Command, result driving.ClickResult) {
	switch {
	case result.Switched && result.Floor != nil:
		cmd.Printf("  %s: continuing on %s\n", result.Connector.Name, result.Floor.Label)
	case result.Connector != nil:
		cmd.Printf("  %s: staying on this floor\n", result.Connector.Name)
	}
}

// parseDrag reads "i:x,y" with a 0-based point index.
func parseDrag(s string) (int, domain.Point, error) {
	idx, at, ok := strings.Cut(s, ":")
	if !ok {
		return 0, domain.Point{}, fmt.Errorf("%w: drag %q must be i:x,y", domain.ErrInvalidInput, s)
	}
	index, err := strconv.Atoi(strings.TrimSpace(idx))
	if err != nil {
		return 0, domain.Point{}, fmt.Errorf("%w: drag index %q", domain.ErrInvalidInput, idx)
	}
	p, err := parsePoint(at)
	if err != nil {
		return 0, domain.Point{}, err
	}
	return index, p, nil
}

func runPathDelete(cmd *cobra.Command, args []string) error {
	editor, err := newEditor(cmd, nil)
	if err != nil {
		return err
	}

	if err := editor.DeletePath(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete path: %w", err)
	}

	cmd.Printf("Deleted path %s\n", args[0])
	return nil
}

func runPathPublish(cmd *cobra.Command, args []string) error {
	if publishAll == (len(args) == 1) {
		return fmt.Errorf("%w: give a path id or --all", domain.ErrInvalidInput)
	}
	editor, err := newEditor(cmd, nil)
	if err != nil {
		return err
	}

	if publishAll {
		n, err := editor.PublishAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to publish paths: %w", err)
		}
		cmd.Printf("Published %d paths\n", n)
		return nil
	}

	if err := editor.SetPublished(cmd.Context(), args[0], true); err != nil {
		return fmt.Errorf("failed to publish path: %w", err)
	}
	cmd.Printf("Published path %s\n", args[0])
	return nil
}

func runPathUnpublish(cmd *cobra.Command, args []string) error {
	editor, err := newEditor(cmd, nil)
	if err != nil {
		return err
	}

	if err := editor.SetPublished(cmd.Context(), args[0], false); err != nil {
		return fmt.Errorf("failed to unpublish path: %w", err)
	}

	cmd.Printf("Unpublished path %s\n", args[0])
	return nil
}

func runPathColor(cmd *cobra.Command, args []string) error {
	editor, err := newEditor(cmd, nil)
	if err != nil {
		return err
	}

	if err := editor.SetPathColor(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set path colour: %w", err)
	}

	cmd.Printf("Path %s colour set to %s\n", args[0], args[1])
	return nil
}

func runPathRoute(cmd *cobra.Command, args []string) error {
	editor, err := newEditor(cmd, nil)
	if err != nil {
		return err
	}

	route, err := editor.SelectRoute(cmd.Context(), args[0], routeSegment-1)
	if err != nil {
		return fmt.Errorf("failed to select route: %w", err)
	}
	if route == nil {
		return errors.New("no route selected")
	}

	cmd.Printf("Route: %s\n", route.Path.Name)
	if route.SegmentCount > 0 {
		cmd.Printf("  Segment %d of %d\n", route.SegmentIndex+1, route.SegmentCount)
	}
	where := "all floors"
	if route.FloorID != "" {
		where = floorLabel(editor.Buildings(), route.FloorID)
	}
	cmd.Printf("  Floor: %s\n", where)
	cmd.Printf("  Points: %s\n", formatPoints(route.Points))
	return nil
}

func runPathVisible(cmd *cobra.Command, _ []string) error {
	editor, err := newEditor(cmd, nil)
	if err != nil {
		return err
	}

	where := "no floor selected"
	if f := editor.SelectedFloor(); f != nil {
		where = f.Label
	}
	cmd.Printf("Mode: %s, floor: %s\n", editor.Mode(), where)

	visible := editor.VisiblePaths()
	if len(visible) == 0 {
		cmd.Println("No paths visible.")
		return nil
	}
	for i := range visible {
		cmd.Printf("  %s  %s\n", visible[i].ID, describePath(editor.Buildings(), &visible[i]))
	}
	return nil
}
