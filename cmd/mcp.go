package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/xmazu/envsample/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server (stdio) for AI/IDE integration",
	Long:  `Run the Model Context Protocol server on stdio. Exposes example_sync (update the template), example_check (report drift without writing), source_keys (key names only), and the audit tools. Source values are never returned.`,
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	return mcpserver.Run(context.Background())
}
