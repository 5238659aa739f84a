package cmd

import (
	"github.com/huangsam/mcpcensus/internal/catalog"
	"github.com/huangsam/mcpcensus/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [catalog]",
	Short: "Start the mcpcensus MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents query the catalog analysis via standard tools.

Tools: get_report, get_completeness, get_insights, get_top_servers`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, catalog.OpenSource, version)
	},
}
