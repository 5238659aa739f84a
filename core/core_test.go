package core

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/mcpcensus/internal/catalog"
	"github.com/huangsam/mcpcensus/internal/catalog/catalogtest"
	"github.com/huangsam/mcpcensus/internal/contract"
	"github.com/huangsam/mcpcensus/internal/history"
	"github.com/huangsam/mcpcensus/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

// testConfig returns a JSON config that writes to a temporary file.
func testConfig(t *testing.T, catalogPath string) *contract.Config {
	t.Helper()
	return &contract.Config{
		CatalogBackend:   schema.SQLiteBackend,
		CatalogDBConnect: catalogPath,
		Output:           schema.JSONOut,
		OutputFile:       filepath.Join(t.TempDir(), "out"),
		Width:            120,
		Locale:           language.English,
		AsOf:             catalogtest.FixtureAsOf,
		HistoryBackend:   schema.NoneBackend,
		Thresholds:       schema.DefaultInsightThresholds(),
	}
}

func readOutput(t *testing.T, cfg *contract.Config) []byte {
	t.Helper()
	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	return data
}

// noHistory returns a manager without a store.
func noHistory() *history.MockHistoryManager {
	mgr := &history.MockHistoryManager{}
	mgr.On("GetHistoryStore").Return(nil)
	return mgr
}

func failingOpener(_ schema.DatabaseBackend, _ string) (contract.CatalogSource, error) {
	return nil, errors.New("connection refused")
}

func TestExecuteReport_JSON(t *testing.T) {
	cfg := testConfig(t, catalogtest.NewSQLiteCatalog(t))
	mgr := noHistory()

	require.NoError(t, ExecuteReport(context.Background(), cfg, catalog.OpenSource, mgr))

	var report schema.Report
	require.NoError(t, json.Unmarshal(readOutput(t, cfg), &report))
	assert.Equal(t, 10, report.Configs.TotalServers)
	assert.Equal(t, 6, report.Configs.WithNoConfig)
	assert.Len(t, report.Insights, 5)
	assert.Len(t, report.Completeness, 20)
	assert.True(t, report.GeneratedAt.Equal(catalogtest.FixtureAsOf))
	mgr.AssertExpectations(t)
}

func TestExecuteReport_TextWithDocument(t *testing.T) {
	cfg := testConfig(t, catalogtest.NewSQLiteCatalog(t))
	cfg.Output = schema.TextOut
	cfg.DocumentDir = filepath.Join(t.TempDir(), "docs")

	require.NoError(t, ExecuteReport(context.Background(), cfg, catalog.OpenSource, noHistory()))

	text := string(readOutput(t, cfg))
	assert.Contains(t, text, "GENERAL STATS")
	assert.Contains(t, text, "Analysis completed in")

	doc, err := os.ReadFile(filepath.Join(cfg.DocumentDir, "db-analysis-2025-06-01.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(doc), "# MCP Server Catalog Analysis"))
	assert.Contains(t, string(doc), "Report generated automatically by mcpcensus")
}

func TestExecuteReport_RecordsHistory(t *testing.T) {
	cfg := testConfig(t, catalogtest.NewSQLiteCatalog(t))

	store := &history.MockHistoryStore{}
	store.On("BeginRun", mock.Anything, mock.Anything).Return(int64(7), nil)
	store.On("RecordCompleteness", int64(7), mock.MatchedBy(func(rows []schema.CompletenessRow) bool {
		return len(rows) == 20
	})).Return(nil)
	store.On("EndRun", int64(7), mock.Anything, 10, 5).Return(nil)
	mgr := &history.MockHistoryManager{}
	mgr.On("GetHistoryStore").Return(store)

	require.NoError(t, ExecuteReport(context.Background(), cfg, catalog.OpenSource, mgr))
	store.AssertExpectations(t)
}

func TestExecuteReport_HistoryFailureIsNotFatal(t *testing.T) {
	cfg := testConfig(t, catalogtest.NewSQLiteCatalog(t))

	store := &history.MockHistoryStore{}
	store.On("BeginRun", mock.Anything, mock.Anything).Return(int64(0), errors.New("disk full"))
	mgr := &history.MockHistoryManager{}
	mgr.On("GetHistoryStore").Return(store)

	require.NoError(t, ExecuteReport(context.Background(), cfg, catalog.OpenSource, mgr))
	store.AssertNotCalled(t, "RecordCompleteness")
	store.AssertNotCalled(t, "EndRun")
}

func TestExecuteReport_SQLiteHistory(t *testing.T) {
	cfg := testConfig(t, catalogtest.NewSQLiteCatalog(t))

	store, err := history.NewHistoryStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	mgr := &history.MockHistoryManager{}
	mgr.On("GetHistoryStore").Return(store)

	require.NoError(t, ExecuteReport(context.Background(), cfg, catalog.OpenSource, mgr))
	require.NoError(t, ExecuteInsights(context.Background(), cfg, catalog.OpenSource, mgr))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.NotNil(t, runs[0].TotalServers)
	assert.Equal(t, int64(10), *runs[0].TotalServers)
	require.NotNil(t, runs[0].InsightCount)
	assert.Equal(t, int64(5), *runs[0].InsightCount)

	rows, err := store.GetAllCompleteness()
	require.NoError(t, err)
	assert.Len(t, rows, 40)
}

func TestExecuteCompleteness(t *testing.T) {
	catalogPath := catalogtest.NewSQLiteCatalog(t)

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default limit", 0, 20},
		{"explicit limit", 5, 5},
		{"limit above row count", 500, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, catalogPath)
			cfg.ResultLimit = tt.limit
			require.NoError(t, ExecuteCompleteness(context.Background(), cfg, catalog.OpenSource, noHistory()))

			var rows []schema.EnrichedCompletenessRow
			require.NoError(t, json.Unmarshal(readOutput(t, cfg), &rows))
			require.Len(t, rows, tt.want)
			assert.Equal(t, 1, rows[0].Rank)
			assert.Equal(t, "total_tools", rows[0].Field)
		})
	}
}

func TestExecuteInsights(t *testing.T) {
	cfg := testConfig(t, catalogtest.NewSQLiteCatalog(t))
	require.NoError(t, ExecuteInsights(context.Background(), cfg, catalog.OpenSource, noHistory()))

	var insights []schema.Insight
	require.NoError(t, json.Unmarshal(readOutput(t, cfg), &insights))
	require.Len(t, insights, 5)
	assert.Equal(t, schema.PoorHealthRule, insights[0].Rule)
	assert.Equal(t, schema.LanguagesRule, insights[4].Rule)
}

func TestExecuteTop(t *testing.T) {
	cfg := testConfig(t, catalogtest.NewSQLiteCatalog(t))
	cfg.ResultLimit = 3

	require.NoError(t, ExecuteTop(context.Background(), cfg, catalog.OpenSource, nil))

	var top []schema.EnrichedTopServer
	require.NoError(t, json.Unmarshal(readOutput(t, cfg), &top))
	require.Len(t, top, 3)
	assert.Equal(t, "server-04", top[0].Name)
	assert.Equal(t, 12000, top[0].Stars)
	assert.Equal(t, 3, top[2].Rank)
}

func TestExecuteTop_DefaultLimitWithMock(t *testing.T) {
	cfg := testConfig(t, "")
	source := &catalog.MockCatalogSource{}
	source.On("TopServersByStars", mock.Anything, contract.DefaultTopLimit).Return([]schema.TopServer{{Name: "a", Stars: 1}}, nil)
	source.On("Close").Return(nil)
	opener := func(schema.DatabaseBackend, string) (contract.CatalogSource, error) { return source, nil }

	require.NoError(t, ExecuteTop(context.Background(), cfg, opener, nil))
	source.AssertExpectations(t)
}

func TestExecuteCatalogStatus(t *testing.T) {
	cfg := testConfig(t, catalogtest.NewSQLiteCatalog(t))
	require.NoError(t, ExecuteCatalogStatus(context.Background(), cfg, catalog.OpenSource, nil))

	var status schema.CatalogStatus
	require.NoError(t, json.Unmarshal(readOutput(t, cfg), &status))
	assert.True(t, status.Connected)
	assert.Equal(t, int64(10), status.TableSizes[schema.ServersTable])
}

func TestExecute_OpenFailure(t *testing.T) {
	executors := map[string]ExecutorFunc{
		"report":       ExecuteReport,
		"completeness": ExecuteCompleteness,
		"insights":     ExecuteInsights,
		"top":          ExecuteTop,
		"status":       ExecuteCatalogStatus,
	}
	for name, exec := range executors {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig(t, "")
			err := exec(context.Background(), cfg, failingOpener, noHistory())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "cannot open catalog")
		})
	}
}

func TestExecuteReport_LoadFailureClosesSource(t *testing.T) {
	cfg := testConfig(t, "")
	source := &catalog.MockCatalogSource{}
	source.On("LoadSnapshot", mock.Anything).Return(nil, errors.New("no such table: servers"))
	source.On("Close").Return(nil)
	opener := func(schema.DatabaseBackend, string) (contract.CatalogSource, error) { return source, nil }

	mgr := &history.MockHistoryManager{}
	err := ExecuteReport(context.Background(), cfg, opener, mgr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load catalog")
	source.AssertExpectations(t)
	mgr.AssertNotCalled(t, "GetHistoryStore")
}

func TestGetReport(t *testing.T) {
	cfg := testConfig(t, "")
	source := &catalog.MockCatalogSource{}
	source.On("LoadSnapshot", mock.Anything).Return(&schema.Snapshot{
		Servers: []schema.ServerRecord{{ID: "1", Name: "one"}, {ID: "2", Name: "two"}},
		PackageConfigs: []schema.PackageInstallConfigRecord{
			{ID: "c1", ServerID: "1", Command: "npx"},
		},
	}, nil)

	report, err := GetReport(context.Background(), cfg, source)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Configs.TotalServers)
	assert.Equal(t, 1, report.Configs.WithPackageConfig)
	assert.Equal(t, 50.0, report.Configs.NoConfigPercentage)
	source.AssertNotCalled(t, "Close")
}
