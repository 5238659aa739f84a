// Package parquet exports run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/mcpcensus/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single analysis run with metadata.
// This struct maps to the mcpcensus_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// TotalServers is the number of servers in the catalog at run time (nullable)
	TotalServers *int64 `parquet:"total_servers,optional,snappy"`

	// InsightCount is the number of insights the run produced (nullable)
	InsightCount *int64 `parquet:"insight_count,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// CompletenessSnapshot is the presence ratio of one tracked field in one run.
// This struct maps to the mcpcensus_completeness database table.
type CompletenessSnapshot struct {
	RunID        int64   `parquet:"run_id,snappy"`
	TableName    string  `parquet:"table_name,dict,snappy"`
	FieldName    string  `parquet:"field_name,dict,snappy"`
	PresentCount int64   `parquet:"present_count,snappy"`
	TotalCount   int64   `parquet:"total_count,snappy"`
	Percentage   float64 `parquet:"percentage,snappy"`
}

// writeParquet writes rows of T to outputPath using the schema inferred from T's struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteCompletenessParquet writes a slice of CompletenessSnapshot structs to a Parquet file.
func WriteCompletenessParquet(data []CompletenessSnapshot, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalServers:  record.TotalServers,
			InsightCount:  record.InsightCount,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertCompletenessRecords converts schema.CompletenessRecord to CompletenessSnapshot for Parquet export.
func ConvertCompletenessRecords(records []schema.CompletenessRecord) []CompletenessSnapshot {
	result := make([]CompletenessSnapshot, len(records))
	for i, record := range records {
		result[i] = CompletenessSnapshot{
			RunID:        record.RunID,
			TableName:    record.TableName,
			FieldName:    record.FieldName,
			PresentCount: record.PresentCount,
			TotalCount:   record.TotalCount,
			Percentage:   record.Percentage,
		}
	}
	return result
}
