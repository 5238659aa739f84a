package cmd

import (
	"github.com/huangsam/mcpcensus/core"
	"github.com/huangsam/mcpcensus/internal/catalog"
	"github.com/huangsam/mcpcensus/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd prints the full catalog report.
var reportCmd = &cobra.Command{
	Use:   "report [catalog]",
	Short: "Show the full catalog report and write it as Markdown.",
	Long: `Analyze every table of the MCP server catalog and print a sectioned report.

The report covers:
- General stats and install-config coverage (npm, Docker, none)
- GitHub health score tiers and commit activity
- Popularity: stars, forks, watchers, contributors and the top servers
- Project quality: README, LICENSE, archived and forked repositories
- Data completeness of every tracked field
- Key insights derived from the numbers above

A Markdown copy is written to --document-dir as db-analysis-YYYY-MM-DD.md.

Examples:
  # Analyze the default SQLite catalog
  mcpcensus report

  # Analyze a specific catalog file with emoji headers
  mcpcensus report ./data/mcp_servers.db --emoji yes

  # Pin the reference date so reruns are reproducible
  mcpcensus report --as-of 2025-06-01

  # Render the report as HTML
  mcpcensus report --output html --output-file report.html`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg, catalog.OpenSource, historyManager); err != nil {
			contract.LogFatal("Cannot run catalog report", err)
		}
	},
}

// completenessCmd prints the completeness rows.
var completenessCmd = &cobra.Command{
	Use:   "completeness [catalog]",
	Short: "Show how many servers carry each tracked field.",
	Long: `Measure the presence of every tracked catalog field over all servers.

Rows are sorted by percentage, highest first, and limited by --limit (default 20).

Examples:
  # Show the 10 most complete fields
  mcpcensus completeness --limit 10

  # Export every row to CSV
  mcpcensus completeness --limit 1000 --output csv --output-file completeness.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompleteness(rootCtx, cfg, catalog.OpenSource, historyManager); err != nil {
			contract.LogFatal("Cannot run completeness analysis", err)
		}
	},
}

// insightsCmd prints the rule-based insights.
var insightsCmd = &cobra.Command{
	Use:   "insights [catalog]",
	Short: "Show rule-based insights about the catalog.",
	Long: `Derive short warnings and highlights from the catalog summaries.

Thresholds can be tuned in .mcpcensus.yaml under the insights key.

Examples:
  mcpcensus insights
  mcpcensus insights --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteInsights(rootCtx, cfg, catalog.OpenSource, historyManager); err != nil {
			contract.LogFatal("Cannot run insights analysis", err)
		}
	},
}

// topCmd prints the servers with the most stars.
var topCmd = &cobra.Command{
	Use:   "top [catalog]",
	Short: "Show the servers with the most GitHub stars.",
	Long: `Rank cataloged servers by GitHub stars (default 10, see --limit).

Examples:
  mcpcensus top
  mcpcensus top --limit 25 --output csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTop(rootCtx, cfg, catalog.OpenSource, historyManager); err != nil {
			contract.LogFatal("Cannot rank servers", err)
		}
	},
}
