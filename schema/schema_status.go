package schema

import "time"

// CatalogStatus represents the status of the catalog database.
type CatalogStatus struct {
	Backend    string           `json:"backend" yaml:"backend"`
	Connected  bool             `json:"connected" yaml:"connected"`
	TableSizes map[string]int64 `json:"table_sizes" yaml:"table_sizes"`
}

// HistoryStatus represents the status of the history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the mcpcensus_runs table.
type RunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int64
	TotalServers  *int64
	InsightCount  *int64
	ConfigParams  *string
}

// CompletenessRecord represents a row from the mcpcensus_completeness table.
type CompletenessRecord struct {
	RunID        int64
	TableName    string
	FieldName    string
	PresentCount int64
	TotalCount   int64
	Percentage   float64
}
