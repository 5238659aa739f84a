package outwriter

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"github.com/huangsam/mcpcensus/internal/contract"
	"github.com/huangsam/mcpcensus/schema"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown document strings.
const (
	documentTitle  = "MCP Server Catalog Analysis"
	documentFooter = "*Report generated automatically by mcpcensus*"
)

// markdownRenderer converts Markdown to HTML with GitHub Flavored Markdown tables.
var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// writeMarkdownTable writes a pipe table.
func writeMarkdownTable(b *strings.Builder, headers []string, rows [][]string) {
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = mdCell(h)
	}
	b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat("---|", len(headers)) + "\n")
	for _, row := range rows {
		for i, cell := range row {
			cells[i] = mdCell(cell)
		}
		b.WriteString("| " + strings.Join(cells[:len(row)], " | ") + " |\n")
	}
}

// writeMarkdownSections writes sections as Markdown headings, tables and lists.
func writeMarkdownSections(b *strings.Builder, sections []reportSection, cfg *contract.Config) {
	for _, section := range sections {
		level := "##"
		if section.sub {
			level = "###"
		}
		fmt.Fprintf(b, "%s %s\n\n", level, sectionTitle(cfg, section.emoji, section.title))
		if len(section.headers) > 0 {
			writeMarkdownTable(b, section.headers, section.rows)
			b.WriteString("\n")
		}
		for _, line := range section.lines {
			fmt.Fprintf(b, "- %s\n", line)
		}
		if len(section.lines) > 0 {
			b.WriteString("\n")
		}
	}
}

// buildReportMarkdown renders the full report document. Every completeness row is listed.
func buildReportMarkdown(report *schema.Report, cfg *contract.Config) string {
	view := reportView{
		style:     styler{},
		printer:   newPrinter(cfg),
		languages: true,
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", documentTitle)
	fmt.Fprintf(&b, "**Date:** %s\n\n", report.GeneratedAt.UTC().Format(contract.DateTimeFormat))
	b.WriteString("---\n\n")
	writeMarkdownSections(&b, buildReportSections(report, cfg, view), cfg)
	b.WriteString("---\n\n")
	b.WriteString(documentFooter + "\n")
	return b.String()
}

// renderHTML converts Markdown into a standalone HTML page.
func renderHTML(w io.Writer, title, markdown string) error {
	var body bytes.Buffer
	if err := markdownRenderer.Convert([]byte(markdown), &body); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	_, err := fmt.Fprintf(w,
		"<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s</body>\n</html>\n",
		html.EscapeString(title), body.String())
	return err
}

// writeReportDocument writes the Markdown document to its dated path under dir.
func writeReportDocument(report *schema.Report, cfg *contract.Config, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create document directory %s: %w", dir, err)
	}
	path := contract.DocumentFilePath(dir, report.GeneratedAt)
	if err := os.WriteFile(path, []byte(buildReportMarkdown(report, cfg)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write document %s: %w", path, err)
	}
	return path, nil
}
