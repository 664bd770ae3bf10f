package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/waymark/internal/adapters/driving/mcp"
	"github.com/custodia-labs/waymark/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server exposes the map read-only: buildings, paths visible on a floor,
connector hit-testing and route selection for animation.

By default, the server communicates over stdio using JSON-RPC. Use --port
to start an HTTP server instead.

The configuration file is watched while the server runs, so canvas
changes made with 'waymark settings canvas' apply without a restart.

Examples:
  # Stdio mode (default)
  waymark mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  waymark mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if editorFactory == nil {
		return errEditorNotConfigured
	}

	ports := &mcp.Ports{
		// The server never draws, so connector questions are never asked.
		Editor:     editorFactory(nil),
		Connectors: connectorService,
		Settings:   settingsService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if configStore != nil {
		err := configStore.Watch(ctx, func() {
			logger.Info("configuration changed, reloaded %s", configStore.Path())
		})
		if err != nil {
			logger.Warn("not watching configuration: %v", err)
		}
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
