package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/waymark/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/ports/driven"
	"github.com/custodia-labs/waymark/internal/core/ports/driving"
	"github.com/custodia-labs/waymark/internal/core/services"
)

// setupTestServices installs services over in-memory stores seeded with
// building hq: floors f1 "Ground" and f2 "Level 2" joined by a lift at
// the centre, and a Lobby tag on f1. Services are removed when the test
// ends.
func setupTestServices(t *testing.T) services.EditorStores {
	t.Helper()
	ctx := context.Background()

	stores := services.EditorStores{
		Buildings:  memory.NewBuildingStore(),
		Tags:       memory.NewTagStore(),
		Connectors: memory.NewConnectorStore(),
		Paths:      memory.NewPathStore(),
		State:      memory.NewEditorStateStore(),
	}

	require.NoError(t, stores.Buildings.Save(ctx, domain.Building{
		ID: "hq", Name: "HQ", Floors: []domain.Floor{
			{ID: "f1", BuildingID: "hq", Label: "Ground"},
			{ID: "f2", BuildingID: "hq", Label: "Level 2"},
		},
	}))
	for _, c := range []domain.VerticalConnector{
		{
			ID: "lift-f1", Name: "Main Elevator", Type: domain.ConnectorElevator, FloorID: "f1",
			Position: domain.Point{X: 0.5, Y: 0.5}, Shape: domain.CircleShape(0.02), SharedID: "lift",
		},
		{
			ID: "lift-f2", Name: "Main Elevator", Type: domain.ConnectorElevator, FloorID: "f2",
			Position: domain.Point{X: 0.5, Y: 0.5}, Shape: domain.CircleShape(0.02), SharedID: "lift",
		},
	} {
		require.NoError(t, stores.Connectors.Save(ctx, c))
	}
	require.NoError(t, stores.Tags.Save(ctx, domain.Tag{
		ID: "t-lobby", Name: "Lobby", FloorID: "f1",
		Position: domain.Point{X: 0.1, Y: 0.1}, Shape: domain.CircleShape(0.03),
	}))

	settings := services.NewSettingsService(memory.NewConfigStore())
	SetServices(&Services{
		Buildings:  services.NewBuildingService(stores.Buildings, stores.Connectors),
		Tags:       services.NewTagService(stores.Tags, stores.Paths),
		Connectors: services.NewConnectorService(stores.Connectors),
		Settings:   settings,
		NewEditor: func(p driven.Prompter) driving.EditorService {
			return services.NewEditor(stores, p, domain.DefaultCanvasSize)
		},
	})
	t.Cleanup(func() { SetServices(nil) })

	return stores
}

// execute runs the root command with args and returns everything it
// printed. Flags are reset first since cobra keeps their values between
// runs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace([]string{})
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// findCommand returns the subcommand of parent named name, or nil.
func findCommand(parent *cobra.Command, name string) *cobra.Command {
	for _, c := range parent.Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}
