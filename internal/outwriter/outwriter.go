// Package outwriter has output and writer logic.
package outwriter

import (
	"io"
	"time"

	"github.com/huangsam/mcpcensus/internal/contract"
	"github.com/huangsam/mcpcensus/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// write sends a result to stdout or the configured output file.
func (ow *OutWriter) write(cfg *contract.Config, fs formatSet) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeFormat(w, cfg, fs)
	}, "Wrote "+string(cfg.Output))
}

// WriteReport prints the full report using the configured output format.
func (ow *OutWriter) WriteReport(report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	return ow.write(cfg, reportFormats(report, cfg, duration))
}

// WriteCompleteness prints completeness rows using the configured output format.
func (ow *OutWriter) WriteCompleteness(rows []schema.CompletenessRow, cfg *contract.Config) error {
	return ow.write(cfg, completenessFormats(rows, cfg))
}

// WriteInsights prints insights using the configured output format.
func (ow *OutWriter) WriteInsights(insights []schema.Insight, cfg *contract.Config) error {
	return ow.write(cfg, insightFormats(insights))
}

// WriteTop prints the ranking by stars using the configured output format.
func (ow *OutWriter) WriteTop(servers []schema.TopServer, cfg *contract.Config) error {
	return ow.write(cfg, topFormats(servers, cfg))
}

// WriteCatalogStatus prints the catalog status using the configured output format.
func (ow *OutWriter) WriteCatalogStatus(status schema.CatalogStatus, cfg *contract.Config) error {
	return ow.write(cfg, catalogStatusFormats(status, cfg))
}

// WriteDocument writes the Markdown document under cfg.DocumentDir and returns its path.
// An empty DocumentDir disables the document.
func (ow *OutWriter) WriteDocument(report *schema.Report, cfg *contract.Config) (string, error) {
	if cfg.DocumentDir == "" {
		return "", nil
	}
	return writeReportDocument(report, cfg, cfg.DocumentDir)
}
