package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/mcpcensus/core/algo"
	"github.com/huangsam/mcpcensus/internal/contract"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeYAML is a generic YAML encoder that handles indentation consistently.
func writeYAML(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// newTable creates a table writer with the shared alignment.
func newTable(w io.Writer, headers []string, align tw.Align) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = align
	})
	return table
}

// renderTable fills and renders a table in one step.
func renderTable(w io.Writer, headers []string, align tw.Align, data [][]string) error {
	table := newTable(w, headers, align)
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// newPrinter returns a printer for locale-aware counts.
func newPrinter(cfg *contract.Config) *message.Printer {
	tag := cfg.Locale
	if tag == language.Und {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// formatCount formats an integer with the locale's digit grouping.
func formatCount(p *message.Printer, n int) string {
	return p.Sprintf("%d", n)
}

// formatNumber formats a float in its shortest form.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatPercent formats a percentage in its shortest form with a % suffix.
func formatPercent(v float64) string {
	return formatNumber(v) + "%"
}

// percentOf formats count as a percentage of total.
func percentOf(count, total int) string {
	return formatPercent(algo.Percentage(count, total))
}

// styler applies console emphasis when colors are enabled.
type styler struct {
	enabled bool
}

// sprint wraps text with c when colors are enabled.
func (s styler) sprint(c *color.Color, text string) string {
	if !s.enabled {
		return text
	}
	return c.Sprint(text)
}

// percentage colors a percentage by its completeness label.
func (s styler) percentage(p float64) string {
	text := formatPercent(p)
	if !s.enabled {
		return text
	}
	return contract.GetColorPercentage(p, text)
}

// sectionTitle builds a section heading with an optional emoji prefix.
func sectionTitle(cfg *contract.Config, emoji, title string) string {
	if cfg.UseEmojis && emoji != "" {
		return emoji + " " + title
	}
	return title
}

// markdownEscaper escapes characters that break Markdown table cells.
var markdownEscaper = strings.NewReplacer("|", `\|`, "\n", " ", "\r", " ")

// mdCell escapes text for a Markdown table cell.
func mdCell(text string) string {
	return markdownEscaper.Replace(text)
}
