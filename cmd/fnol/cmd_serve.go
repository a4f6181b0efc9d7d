package main

import (
	"context"

	"github.com/spf13/cobra"

	"fnol/internal/logging"
	mcpserver "fnol/internal/mcp"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing the claim tools
(process_claim, process_text, route_fields, describe_config) to an agent or
editor. Logs go to stderr.

The server watches its parent process and exits when the parent goes away.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	p, cfg, err := buildPipeline()
	if err != nil {
		return err
	}
	srv := mcpserver.NewServer(p, cfg, version)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mcpserver.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting fnol MCP server over stdio (parent watchdog active)")
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
