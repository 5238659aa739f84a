// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/mcpcensus/schema"
)

// CatalogSource defines the read operations over an MCP server catalog.
// This allows the core analysis logic to be tested without a real database.
type CatalogSource interface {
	// --- Record Sets ---

	// Servers returns every row of the servers table.
	Servers(ctx context.Context) ([]schema.ServerRecord, error)

	// VcsInfo returns every row of the github_info table.
	VcsInfo(ctx context.Context) ([]schema.VcsInfoRecord, error)

	// PackageInfo returns every row of the npm_info table.
	PackageInfo(ctx context.Context) ([]schema.PackageRegistryInfoRecord, error)

	// PackageConfigs returns every row of the mcp_config_npm table.
	PackageConfigs(ctx context.Context) ([]schema.PackageInstallConfigRecord, error)

	// ContainerConfigs returns every row of the mcp_config_docker table.
	ContainerConfigs(ctx context.Context) ([]schema.ContainerInstallConfigRecord, error)

	// Tools returns every row of the tools table.
	Tools(ctx context.Context) ([]schema.ToolRecord, error)

	// --- Aggregate Reads ---

	// TopServersByStars returns the servers with the most stars, ranked by the database.
	TopServersByStars(ctx context.Context, limit int) ([]schema.TopServer, error)

	// LoadSnapshot reads all record sets for a single run.
	LoadSnapshot(ctx context.Context) (*schema.Snapshot, error)

	// Status returns connection details and per-table row counts.
	Status(ctx context.Context) (schema.CatalogStatus, error)

	// Close closes the underlying connection
	Close() error
}

// CatalogOpener opens a catalog for a backend and connection string.
type CatalogOpener func(backend schema.DatabaseBackend, connStr string) (CatalogSource, error)

// HistoryManager defines the interface for managing the history store.
// This allows the history layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for tracking analysis runs over time.
type HistoryStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalServers, insightCount int) error

	// RecordCompleteness stores the completeness rows computed by a run
	RecordCompleteness(runID int64, rows []schema.CompletenessRow) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns retrieves all runs in ascending run ID order
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllCompleteness retrieves all completeness rows in ascending run ID order
	GetAllCompleteness() ([]schema.CompletenessRecord, error)

	// Close closes the underlying connection
	Close() error
}
