package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/mcpcensus/internal/contract"
	"github.com/huangsam/mcpcensus/internal/parquet"
)

// Parquet file suffixes appended to the export prefix.
const (
	runsExportSuffix         = ".runs.parquet"
	completenessExportSuffix = ".completeness.parquet"
)

// ExecuteHistoryExport exports the global history store to Parquet files.
func ExecuteHistoryExport(w io.Writer, outputFile string) error {
	return ExportHistory(w, Manager.GetHistoryStore(), outputFile)
}

// ExportHistory writes every run and completeness row of store to
// <outputFile>.runs.parquet and <outputFile>.completeness.parquet.
func ExportHistory(w io.Writer, store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return ErrNoHistory
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return ErrNoHistory
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total completeness records: %d\n", status.TableSizes[completenessTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	completeness, err := store.GetAllCompleteness()
	if err != nil {
		return fmt.Errorf("failed to retrieve completeness rows: %w", err)
	}

	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetCompleteness := parquet.ConvertCompletenessRecords(completeness)

	runsFile := outputFile + runsExportSuffix
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	completenessFile := outputFile + completenessExportSuffix
	if err := parquet.WriteCompletenessParquet(parquetCompleteness, completenessFile); err != nil {
		return fmt.Errorf("failed to write completeness rows: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d completeness records to: %s\n", len(parquetCompleteness), completenessFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet files can be used with:")
	_, _ = fmt.Fprintln(w, "  - DuckDB")
	_, _ = fmt.Fprintln(w, "  - Pandas (via pyarrow)")
	_, _ = fmt.Fprintln(w, "  - Apache Spark")
	_, _ = fmt.Fprintln(w, "  - Any other Parquet-compatible tool")

	return nil
}
