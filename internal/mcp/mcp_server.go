// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/mcpcensus/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MaxTopLimit is the largest ranking the get_top_servers tool returns.
const MaxTopLimit = 100

// NewMCPServer initializes and configures the mcpcensus MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, opener contract.CatalogOpener, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"mcpcensus",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		opener:  opener,
	}

	catalogPath := mcp.WithString("catalog_path", mcp.Description("Path to a SQLite catalog database (defaults to the configured catalog)."))

	// --- 1. Tool: get_report ---
	s.AddTool(mcp.NewTool("get_report",
		mcp.WithDescription("Analyze the MCP server catalog and return the full report: install configs, health, activity, popularity, quality, completeness and insights."),
		catalogPath,
	), h.handleGetReport)

	// --- 2. Tool: get_completeness ---
	s.AddTool(mcp.NewTool("get_completeness",
		mcp.WithDescription("Return how many servers carry each tracked catalog field, sorted by percentage."),
		catalogPath,
		mcp.WithNumber("limit", mcp.Description("Limit the number of rows returned. Defaults to 20.")),
	), h.handleGetCompleteness)

	// --- 3. Tool: get_insights ---
	s.AddTool(mcp.NewTool("get_insights",
		mcp.WithDescription("Return rule-based insights about the catalog (missing configs, poor health, stale or archived repositories, licenses, languages)."),
		catalogPath,
	), h.handleGetInsights)

	// --- 4. Tool: get_top_servers ---
	s.AddTool(mcp.NewTool("get_top_servers",
		mcp.WithDescription("Return the cataloged servers with the most GitHub stars."),
		catalogPath,
		mcp.WithNumber("limit", mcp.Description("Number of servers to return, between 1 and 100. Defaults to 10.")),
	), h.handleGetTopServers)

	return s
}

// StartMCPServer starts the mcpcensus MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, opener contract.CatalogOpener, version string) error {
	s := NewMCPServer(baseCfg, opener, version)
	return server.ServeStdio(s)
}
