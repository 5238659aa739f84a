// Package core has core logic for building, recording and printing catalog reports.
package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/mcpcensus/internal/contract"
	"github.com/huangsam/mcpcensus/internal/outwriter"
	"github.com/huangsam/mcpcensus/schema"
)

// ExecutorFunc defines the function signature for executing the catalog commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, opener contract.CatalogOpener, mgr contract.HistoryManager) error

// ExecuteReport builds the full report and prints it to stdout.
// It serves as the main entry point for the 'report' command.
func ExecuteReport(ctx context.Context, cfg *contract.Config, opener contract.CatalogOpener, mgr contract.HistoryManager) error {
	start := time.Now()
	report, err := runAnalysis(ctx, cfg, opener, mgr, start)
	if err != nil {
		return err
	}

	ow := outwriter.NewOutWriter()
	if err := ow.WriteReport(report, cfg, time.Since(start)); err != nil {
		return err
	}

	path, err := ow.WriteDocument(report, cfg)
	if err != nil {
		return err
	}
	if path != "" {
		_, _ = fmt.Fprintf(os.Stderr, "📝 Wrote document to %s\n", path)
	}
	return nil
}

// ExecuteCompleteness prints the completeness rows, limited to the configured count.
func ExecuteCompleteness(ctx context.Context, cfg *contract.Config, opener contract.CatalogOpener, mgr contract.HistoryManager) error {
	report, err := runAnalysis(ctx, cfg, opener, mgr, time.Now())
	if err != nil {
		return err
	}
	rows := report.Completeness
	rows = rows[:min(len(rows), cfg.LimitOr(contract.DefaultCompletenessLimit))]
	return outwriter.NewOutWriter().WriteCompleteness(rows, cfg)
}

// ExecuteInsights prints the insights derived from the catalog.
func ExecuteInsights(ctx context.Context, cfg *contract.Config, opener contract.CatalogOpener, mgr contract.HistoryManager) error {
	report, err := runAnalysis(ctx, cfg, opener, mgr, time.Now())
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteInsights(report.Insights, cfg)
}

// ExecuteTop prints the servers with the most stars.
// The ranking comes straight from the database, so no run is recorded.
func ExecuteTop(ctx context.Context, cfg *contract.Config, opener contract.CatalogOpener, _ contract.HistoryManager) error {
	source, err := openCatalog(cfg, opener)
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	if !shouldSuppressHeader(ctx) {
		logReportHeader(cfg, cfg.ReferenceTime(time.Now()).Format(contract.DateTimeFormat))
	}

	top, err := source.TopServersByStars(ctx, cfg.LimitOr(contract.DefaultTopLimit))
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteTop(top, cfg)
}

// ExecuteCatalogStatus prints the catalog connection and its table sizes.
func ExecuteCatalogStatus(ctx context.Context, cfg *contract.Config, opener contract.CatalogOpener, _ contract.HistoryManager) error {
	source, err := openCatalog(cfg, opener)
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	status, err := source.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get catalog status: %w", err)
	}
	return outwriter.NewOutWriter().WriteCatalogStatus(status, cfg)
}

// GetReport builds the report for an open catalog without printing anything.
// It is used by the MCP server, where stdout carries the protocol.
func GetReport(ctx context.Context, cfg *contract.Config, source contract.CatalogSource) (*schema.Report, error) {
	return analyzeCatalog(withSuppressHeader(ctx), cfg, source, time.Now())
}

// openCatalog opens the configured catalog.
func openCatalog(cfg *contract.Config, opener contract.CatalogOpener) (contract.CatalogSource, error) {
	source, err := opener(cfg.CatalogBackend, cfg.ResolvedCatalogDBConnect())
	if err != nil {
		return nil, fmt.Errorf("cannot open catalog: %w", err)
	}
	return source, nil
}

// runAnalysis opens the catalog, builds the report and records the run.
func runAnalysis(ctx context.Context, cfg *contract.Config, opener contract.CatalogOpener, mgr contract.HistoryManager, start time.Time) (*schema.Report, error) {
	source, err := openCatalog(cfg, opener)
	if err != nil {
		return nil, err
	}
	defer func() { _ = source.Close() }()

	report, err := analyzeCatalog(ctx, cfg, source, start)
	if err != nil {
		return nil, err
	}
	recordRun(cfg, mgr, start, report)
	return report, nil
}

// analyzeCatalog loads a snapshot and builds the report from it.
func analyzeCatalog(ctx context.Context, cfg *contract.Config, source contract.CatalogSource, start time.Time) (*schema.Report, error) {
	asOf := cfg.ReferenceTime(start)
	if !shouldSuppressHeader(ctx) {
		logReportHeader(cfg, asOf.Format(contract.DateTimeFormat))
	}

	snap, err := source.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return BuildReport(ctx, snap, ReportOptions{Now: asOf, Thresholds: cfg.Thresholds})
}
