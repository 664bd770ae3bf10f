package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/waymark/internal/core/domain"
)

var (
	connectorName   string
	connectorType   string
	connectorAt     string
	connectorRadius float64
	connectorRect   string
	connectorShared string
	connectorFloor  string
)

var connectorCmd = &cobra.Command{
	Use:   "connector",
	Short: "Manage vertical connectors",
	Long: `Manage elevators, stairs, escalators and ramps. Each physical connector
has one record per floor it serves; records of the same connector share
a shared id, and a shared group holds at most one record per floor.`,
}

var connectorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List connectors",
	Args:  cobra.NoArgs,
	RunE:  runConnectorList,
}

var connectorAddCmd = &cobra.Command{
	Use:   "add [building] [floor]",
	Short: "Add a connector record to a floor",
	Long: `Add a connector record to a floor.

Examples:
  # An elevator serving two floors
  waymark connector add HQ Ground --name "Main Elevator" --type elevator --at 0.5,0.5 --shared main-elev
  waymark connector add HQ "Level 2" --name "Main Elevator" --type elevator --at 0.5,0.5 --shared main-elev`,
	Args: cobra.ExactArgs(2),
	RunE: runConnectorAdd,
}

var connectorDeleteCmd = &cobra.Command{
	Use:   "delete [connector-id]",
	Short: "Delete a connector record",
	Args:  cobra.ExactArgs(1),
	RunE:  runConnectorDelete,
}

var connectorGroupCmd = &cobra.Command{
	Use:   "group [shared-id]",
	Short: "Show every record of a shared connector",
	Args:  cobra.ExactArgs(1),
	RunE:  runConnectorGroup,
}

func init() {
	connectorListCmd.Flags().StringVar(&connectorFloor, "floor", "", "only list connectors on this floor id")

	connectorAddCmd.Flags().StringVar(&connectorName, "name", "", "display name (required)")
	connectorAddCmd.Flags().StringVar(&connectorType, "type", string(domain.ConnectorElevator),
		"elevator, stairs, escalator or ramp")
	connectorAddCmd.Flags().StringVar(&connectorAt, "at", "", "position as x,y in 0..1 (required)")
	connectorAddCmd.Flags().Float64Var(&connectorRadius, "radius", 0.02, "circle radius, relative to canvas width")
	connectorAddCmd.Flags().StringVar(&connectorRect, "rect", "", "rectangle as w,h instead of a circle")
	connectorAddCmd.Flags().StringVar(&connectorShared, "shared", "", "shared id grouping records of one connector")
	_ = connectorAddCmd.MarkFlagRequired("name")
	_ = connectorAddCmd.MarkFlagRequired("at")

	connectorCmd.AddCommand(connectorListCmd)
	connectorCmd.AddCommand(connectorAddCmd)
	connectorCmd.AddCommand(connectorDeleteCmd)
	connectorCmd.AddCommand(connectorGroupCmd)
	rootCmd.AddCommand(connectorCmd)
}

func runConnectorList(cmd *cobra.Command, _ []string) error {
	if connectorService == nil {
		return errConnectorServiceNotConfigured
	}

	connectors, err := connectorService.List(cmd.Context(), connectorFloor)
	if err != nil {
		return fmt.Errorf("failed to list connectors: %w", err)
	}

	if len(connectors) == 0 {
		cmd.Println("No connectors found.")
		return nil
	}

	printConnectors(cmd, connectors)
	return nil
}

func runConnectorAdd(cmd *cobra.Command, args []string) error {
	if connectorService == nil {
		return errConnectorServiceNotConfigured
	}
	b, err := resolveBuilding(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	f, err := resolveFloor(b, args[1])
	if err != nil {
		return err
	}

	ctype, err := domain.ParseConnectorType(connectorType)
	if err != nil {
		return err
	}
	pos, err := parsePoint(connectorAt)
	if err != nil {
		return err
	}
	shape, err := parseShape(connectorRadius, connectorRect)
	if err != nil {
		return err
	}
	shared := connectorShared
	if shared == "" {
		shared = uuid.NewString()
	}

	c, err := connectorService.Create(cmd.Context(), domain.VerticalConnector{
		Name:     connectorName,
		Type:     ctype,
		FloorID:  f.ID,
		Position: pos,
		Shape:    shape,
		SharedID: shared,
	})
	if err != nil {
		return fmt.Errorf("failed to add connector: %w", err)
	}

	cmd.Printf("Added %s %q on %s (%s, shared %s)\n", c.Type, c.Name, f.Label, c.ID, c.SharedID)
	return nil
}

func runConnectorDelete(cmd *cobra.Command, args []string) error {
	if connectorService == nil {
		return errConnectorServiceNotConfigured
	}

	if err := connectorService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete connector: %w", err)
	}

	cmd.Printf("Deleted connector %s\n", args[0])
	return nil
}

func runConnectorGroup(cmd *cobra.Command, args []string) error {
	if connectorService == nil {
		return errConnectorServiceNotConfigured
	}

	group, err := connectorService.Group(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load connector group: %w", err)
	}

	if len(group) == 0 {
		cmd.Printf("No connectors share id %q.\n", args[0])
		return nil
	}

	cmd.Printf("%s %q serves %d floors:\n", group[0].Type, group[0].Name, len(group))
	printConnectors(cmd, group)
	return nil
}

func printConnectors(cmd *cobra.Command, connectors []domain.VerticalConnector) {
	var buildings []domain.Building
	if buildingService != nil {
		buildings, _ = buildingService.List(cmd.Context())
	}
	for i := range connectors {
		c := connectors[i]
		cmd.Printf("  %s  %-9s %s on %s at %s (shared %s)\n",
			c.ID, c.Type, c.Name, floorLabel(buildings, c.FloorID), c.Position, c.SharedID)
	}
}
