package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/mcpcensus/internal/contract"
	"github.com/huangsam/mcpcensus/schema"
	"github.com/olekukonko/tablewriter/tw"
)

// formatSet holds the renderers of one result for every output mode.
type formatSet struct {
	title     string
	data      any
	csvHeader []string
	csvRows   func(*csv.Writer) error
	text      func(io.Writer) error
	markdown  func() string
}

// writeFormat dispatches a result based on the output format configured.
func writeFormat(w io.Writer, cfg *contract.Config, fs formatSet) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, fs.data); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.YAMLOut:
		if err := writeYAML(w, fs.data); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVWithHeader(w, fs.csvHeader, fs.csvRows); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.MarkdownOut:
		if _, err := io.WriteString(w, fs.markdown()); err != nil {
			return fmt.Errorf("error writing Markdown output: %w", err)
		}
	case schema.HTMLOut:
		if err := renderHTML(w, fs.title, fs.markdown()); err != nil {
			return fmt.Errorf("error writing HTML output: %w", err)
		}
	default:
		// Default to human-readable table
		return fs.text(w)
	}
	return nil
}

// completenessCSVHeader is shared by the report and completeness CSV outputs.
var completenessCSVHeader = []string{"rank", "table", "field", "present_count", "total_count", "percentage", "label", "description"}

// writeCompletenessCSVRows writes one CSV record per completeness row.
func writeCompletenessCSVRows(w *csv.Writer, rows []schema.CompletenessRow) error {
	for _, r := range schema.EnrichCompleteness(rows) {
		rec := []string{
			strconv.Itoa(r.Rank),
			r.Table,
			r.Field,
			strconv.Itoa(r.PresentCount),
			strconv.Itoa(r.TotalCount),
			formatNumber(r.Percentage),
			r.Label,
			r.Description,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// reportFormats builds the renderers of the full report.
func reportFormats(report *schema.Report, cfg *contract.Config, duration time.Duration) formatSet {
	return formatSet{
		title:     documentTitle,
		data:      report,
		csvHeader: completenessCSVHeader,
		csvRows: func(w *csv.Writer) error {
			return writeCompletenessCSVRows(w, report.Completeness)
		},
		text: func(w io.Writer) error {
			return writeReportText(w, report, cfg, duration)
		},
		markdown: func() string {
			return buildReportMarkdown(report, cfg)
		},
	}
}

// completenessFormats builds the renderers of the completeness rows.
func completenessFormats(rows []schema.CompletenessRow, cfg *contract.Config) formatSet {
	p := newPrinter(cfg)
	headers := []string{"#", "Table", "Field", "Present", "Total", "%", "Description"}
	build := func(st styler, descWidth int) [][]string {
		data := make([][]string, 0, len(rows))
		for i, r := range rows {
			desc := r.Description
			if descWidth > 0 {
				desc = contract.TruncateText(desc, descWidth)
			}
			data = append(data, []string{
				strconv.Itoa(i + 1),
				r.Table,
				r.Field,
				formatCount(p, r.PresentCount),
				formatCount(p, r.TotalCount),
				st.percentage(r.Percentage),
				desc,
			})
		}
		return data
	}

	return formatSet{
		title:     "Data Completeness",
		data:      schema.EnrichCompleteness(rows),
		csvHeader: completenessCSVHeader,
		csvRows: func(w *csv.Writer) error {
			return writeCompletenessCSVRows(w, rows)
		},
		text: func(w io.Writer) error {
			st := styler{enabled: cfg.UseColors}
			if err := renderTable(w, headers, tw.AlignLeft, build(st, GetMaxTextColumnWidth(cfg, 60))); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Showing %d tracked fields\n", len(rows))
			return err
		},
		markdown: func() string {
			var b strings.Builder
			b.WriteString("# Data Completeness\n\n")
			writeMarkdownTable(&b, headers, build(styler{}, 0))
			return b.String()
		},
	}
}

// insightFormats builds the renderers of the insight list.
func insightFormats(insights []schema.Insight) formatSet {
	return formatSet{
		title:     "Key Insights",
		data:      insights,
		csvHeader: []string{"rule", "level", "message"},
		csvRows: func(w *csv.Writer) error {
			for _, in := range insights {
				if err := w.Write([]string{string(in.Rule), string(in.Level), in.Message}); err != nil {
					return err
				}
			}
			return nil
		},
		text: func(w io.Writer) error {
			if len(insights) == 0 {
				_, err := fmt.Fprintln(w, "No insights for this catalog.")
				return err
			}
			for _, in := range insights {
				if _, err := fmt.Fprintf(w, "  %s\n", in.Message); err != nil {
					return err
				}
			}
			return nil
		},
		markdown: func() string {
			var b strings.Builder
			b.WriteString("# Key Insights\n\n")
			for _, in := range insights {
				fmt.Fprintf(&b, "- %s\n", in.Message)
			}
			return b.String()
		},
	}
}

// topFormats builds the renderers of the ranking by stars.
func topFormats(servers []schema.TopServer, cfg *contract.Config) formatSet {
	p := newPrinter(cfg)
	headers := []string{"#", "Name", "Stars", "GitHub URL"}

	return formatSet{
		title:     "Top Servers by Stars",
		data:      schema.EnrichTopServers(servers),
		csvHeader: []string{"rank", "name", "stars", "github_url"},
		csvRows: func(w *csv.Writer) error {
			for i, s := range servers {
				url := ""
				if s.URL != nil {
					url = *s.URL
				}
				if err := w.Write([]string{strconv.Itoa(i + 1), s.Name, strconv.Itoa(s.Stars), url}); err != nil {
					return err
				}
			}
			return nil
		},
		text: func(w io.Writer) error {
			rows := topServerRows(servers, p, GetMaxTextColumnWidth(cfg, topTableFixedWidth))
			if err := renderTable(w, headers, tw.AlignLeft, rows); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Showing top %d servers by stars\n", len(servers))
			return err
		},
		markdown: func() string {
			var b strings.Builder
			b.WriteString("# Top Servers by Stars\n\n")
			writeMarkdownTable(&b, headers, topServerRows(servers, p, 0))
			return b.String()
		},
	}
}

// catalogStatusFormats builds the renderers of the catalog status.
func catalogStatusFormats(status schema.CatalogStatus, cfg *contract.Config) formatSet {
	p := newPrinter(cfg)
	rows := make([][]string, 0, len(schema.AllCatalogTables))
	for _, table := range schema.AllCatalogTables {
		if count, ok := status.TableSizes[table]; ok {
			rows = append(rows, []string{table, formatCount(p, int(count))})
		}
	}

	return formatSet{
		title:     "Catalog Status",
		data:      status,
		csvHeader: []string{"table", "rows"},
		csvRows: func(w *csv.Writer) error {
			for _, table := range schema.AllCatalogTables {
				if count, ok := status.TableSizes[table]; ok {
					if err := w.Write([]string{table, strconv.FormatInt(count, 10)}); err != nil {
						return err
					}
				}
			}
			return nil
		},
		text: func(w io.Writer) error {
			if _, err := fmt.Fprintf(w, "Catalog Backend: %s\nConnected: %t\n", status.Backend, status.Connected); err != nil {
				return err
			}
			if !status.Connected {
				return nil
			}
			return renderTable(w, []string{"Table", "Rows"}, tw.AlignLeft, rows)
		},
		markdown: func() string {
			var b strings.Builder
			b.WriteString("# Catalog Status\n\n")
			fmt.Fprintf(&b, "- Backend: %s\n- Connected: %t\n\n", status.Backend, status.Connected)
			writeMarkdownTable(&b, []string{"Table", "Rows"}, rows)
			return b.String()
		},
	}
}
