package mcp_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/huangsam/mcpcensus/internal/catalog"
	"github.com/huangsam/mcpcensus/internal/catalog/catalogtest"
	"github.com/huangsam/mcpcensus/internal/contract"
	mcp_internal "github.com/huangsam/mcpcensus/internal/mcp"
	"github.com/huangsam/mcpcensus/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func baseConfig(catalogPath string) *contract.Config {
	return &contract.Config{
		CatalogBackend:   schema.SQLiteBackend,
		CatalogDBConnect: catalogPath,
		Output:           schema.JSONOut,
		Locale:           language.English,
		AsOf:             catalogtest.FixtureAsOf,
		HistoryBackend:   schema.NoneBackend,
		Thresholds:       schema.DefaultInsightThresholds(),
	}
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServer_Tools(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(""), catalog.OpenSource, "test")
	for _, name := range []string{"get_report", "get_completeness", "get_insights", "get_top_servers"} {
		assert.NotNil(t, s.GetTool(name), "Tool %s should exist", name)
	}
	assert.Nil(t, s.GetTool("unknown_tool"))
}

func TestMCPServerHandlers_Fixture(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(catalogtest.NewSQLiteCatalog(t)), catalog.OpenSource, "test")

	t.Run("get_report", func(t *testing.T) {
		res := callTool(t, s, "get_report", nil)
		require.False(t, res.IsError, resultText(t, res))

		var report schema.Report
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &report))
		assert.Equal(t, 10, report.Configs.TotalServers)
		assert.Equal(t, 2, report.Health.Excellent)
		assert.Len(t, report.Insights, 5)
	})

	t.Run("get_completeness with limit", func(t *testing.T) {
		res := callTool(t, s, "get_completeness", map[string]any{"limit": 3.0})
		require.False(t, res.IsError, resultText(t, res))

		var rows []schema.EnrichedCompletenessRow
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &rows))
		require.Len(t, rows, 3)
		assert.Equal(t, "total_tools", rows[0].Field)
		assert.Equal(t, "High", rows[0].Label)
	})

	t.Run("get_completeness default limit", func(t *testing.T) {
		res := callTool(t, s, "get_completeness", nil)
		var rows []schema.EnrichedCompletenessRow
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &rows))
		assert.Len(t, rows, contract.DefaultCompletenessLimit)
	})

	t.Run("get_insights", func(t *testing.T) {
		res := callTool(t, s, "get_insights", nil)
		var insights []schema.Insight
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &insights))
		require.Len(t, insights, 5)
		assert.Equal(t, schema.PoorHealthRule, insights[0].Rule)
	})

	t.Run("get_top_servers", func(t *testing.T) {
		res := callTool(t, s, "get_top_servers", map[string]any{"limit": 2.0})
		require.False(t, res.IsError, resultText(t, res))

		var top []schema.EnrichedTopServer
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &top))
		require.Len(t, top, 2)
		assert.Equal(t, "server-04", top[0].Name)
		assert.Equal(t, 1, top[0].Rank)
	})
}

func TestMCPServerHandlers_CatalogPath(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig("/nonexistent/catalog.db"), catalog.OpenSource, "test")

	res := callTool(t, s, "get_report", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "cannot open catalog")

	res = callTool(t, s, "get_report", map[string]any{"catalog_path": catalogtest.NewSQLiteCatalog(t)})
	require.False(t, res.IsError, resultText(t, res))
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	opener := func(schema.DatabaseBackend, string) (contract.CatalogSource, error) {
		return nil, errors.New("should not be opened")
	}
	s := mcp_internal.NewMCPServer(baseConfig(""), opener, "test")

	tests := []struct {
		name string
		tool string
		args map[string]any
		want string
	}{
		{"top limit zero", "get_top_servers", map[string]any{"limit": 0.0}, "limit must be between 1 and 100"},
		{"top limit too large", "get_top_servers", map[string]any{"limit": 101.0}, "limit must be between 1 and 100"},
		{"completeness negative limit", "get_completeness", map[string]any{"limit": -1.0}, "limit must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, s, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, resultText(t, res), tt.want)
		})
	}
}

func TestMCPServerHandlers_SourceErrors(t *testing.T) {
	source := &catalog.MockCatalogSource{}
	source.On("LoadSnapshot", mock.Anything).Return(nil, errors.New("no such table: servers"))
	source.On("TopServersByStars", mock.Anything, 10).Return(nil, errors.New("no such table: github_info"))
	source.On("Close").Return(nil)
	opener := func(schema.DatabaseBackend, string) (contract.CatalogSource, error) { return source, nil }
	s := mcp_internal.NewMCPServer(baseConfig(""), opener, "test")

	res := callTool(t, s, "get_insights", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "analysis failed")

	res = callTool(t, s, "get_top_servers", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "ranking failed")

	source.AssertNumberOfCalls(t, "Close", 2)
}
