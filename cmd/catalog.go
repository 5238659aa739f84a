package cmd

import (
	"github.com/huangsam/mcpcensus/core"
	"github.com/huangsam/mcpcensus/internal/catalog"
	"github.com/huangsam/mcpcensus/internal/contract"
	"github.com/spf13/cobra"
)

// catalogCmd focused on the catalog database itself.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the catalog database",
	Long: `Inspect the MCP server catalog database.

Subcommands:
  status - Show connection info and row counts per table`,
}

// catalogStatusCmd shows catalog status.
var catalogStatusCmd = &cobra.Command{
	Use:   "status [catalog]",
	Short: "Display catalog connection details and table sizes",
	Long: `Show the catalog backend, whether it is reachable and how many rows each table holds.

Examples:
  # Check the default SQLite catalog
  mcpcensus catalog status

  # Check a PostgreSQL catalog
  MCPCENSUS_CATALOG_BACKEND=postgresql MCPCENSUS_CATALOG_DB_CONNECT="host=... dbname=..." mcpcensus catalog status`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCatalogStatus(rootCtx, cfg, catalog.OpenSource, historyManager); err != nil {
			contract.LogFatal("Failed to get catalog status", err)
		}
	},
}
