package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gate-discovery/internal/adapters/driving/mcp"
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

Tools:
  list_extensions   repositories tagged with gate-extension
  list_go_modules   repositories whose go.mod requires Gate
  clear_cache       drop cached discovery results

Resources:
  gate://extensions, gate://go-modules, gate://go-modules/{owner}

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  gate-discovery mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  gate-discovery mcp serve --port 8081`,
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
	if discoveryService == nil {
		return errors.New("discovery service not configured")
	}

	ports := &mcp.Ports{
		Discovery: discoveryService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		httpServer, err := server.ListenHTTP(fmt.Sprintf(":%d", port))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://%s\n", httpServer.Addr())
		return httpServer.Serve(cmd.Context())
	}

	return server.Run(cmd.Context())
}
