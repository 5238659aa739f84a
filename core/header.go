package core

import (
	"fmt"
	"path/filepath"

	"github.com/huangsam/mcpcensus/internal/contract"
	"github.com/huangsam/mcpcensus/schema"
)

// catalogName returns a short label for the catalog being analyzed.
func catalogName(cfg *contract.Config) string {
	if cfg.CatalogBackend == schema.SQLiteBackend {
		name := filepath.Base(cfg.ResolvedCatalogDBConnect())
		if name != "" && name != "." {
			return name
		}
	}
	return string(cfg.CatalogBackend)
}

// logReportHeader prints a concise, 2-line header before a run.
// Machine formats skip it so stdout stays parseable.
func logReportHeader(cfg *contract.Config, asOf string) {
	if cfg.Output != schema.TextOut {
		return
	}

	// Line 1: The catalog summary (Name and Backend)
	fmt.Printf("🔎 Catalog: %s (Backend: %s)\n", catalogName(cfg), cfg.CatalogBackend)

	// Line 2: The reference time for activity buckets
	fmt.Printf("📅 As of: %s\n", asOf)
}
