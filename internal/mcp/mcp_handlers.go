package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/mcpcensus/core"
	"github.com/huangsam/mcpcensus/internal/contract"
	"github.com/huangsam/mcpcensus/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	opener  contract.CatalogOpener
}

// configFor clones the base config and applies the catalog_path argument.
func (h *toolHandler) configFor(request mcp.CallToolRequest) *contract.Config {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("catalog_path", ""); p != "" {
		cfg.CatalogBackend = schema.SQLiteBackend
		cfg.CatalogDBConnect = p
	}
	return cfg
}

// openCatalog opens the catalog named by cfg.
func (h *toolHandler) openCatalog(cfg *contract.Config) (contract.CatalogSource, error) {
	source, err := h.opener(cfg.CatalogBackend, cfg.ResolvedCatalogDBConnect())
	if err != nil {
		return nil, fmt.Errorf("cannot open catalog: %w", err)
	}
	return source, nil
}

// buildReport opens the catalog and builds the report for one tool call.
func (h *toolHandler) buildReport(ctx context.Context, cfg *contract.Config) (*schema.Report, error) {
	source, err := h.openCatalog(cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = source.Close() }()
	return core.GetReport(ctx, cfg, source)
}

func jsonResult(data any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := h.buildReport(ctx, h.configFor(request))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleGetCompleteness(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", contract.DefaultCompletenessLimit)
	if limit < 1 {
		return mcp.NewToolResultError(fmt.Sprintf("limit must be at least 1 (received %d)", limit)), nil
	}

	report, err := h.buildReport(ctx, h.configFor(request))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	rows := report.Completeness[:min(len(report.Completeness), limit)]
	return jsonResult(schema.EnrichCompleteness(rows))
}

func (h *toolHandler) handleGetInsights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := h.buildReport(ctx, h.configFor(request))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(report.Insights)
}

func (h *toolHandler) handleGetTopServers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", contract.DefaultTopLimit)
	if limit < 1 || limit > MaxTopLimit {
		return mcp.NewToolResultError(fmt.Sprintf("limit must be between 1 and %d (received %d)", MaxTopLimit, limit)), nil
	}

	source, err := h.openCatalog(h.configFor(request))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defer func() { _ = source.Close() }()

	top, err := source.TopServersByStars(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}
	return jsonResult(schema.EnrichTopServers(top))
}
