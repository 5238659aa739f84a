package history

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/mcpcensus/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, dbPath, table string) bool {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestClearHistory_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath, ""))
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is fine
	assert.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath, ""))
}

func TestClearHistory_Errors(t *testing.T) {
	assert.Error(t, ClearHistory(schema.SQLiteBackend, "", ""))
	assert.NoError(t, ClearHistory(schema.NoneBackend, "", ""))
	assert.Error(t, ClearHistory(schema.DatabaseBackend("oracle"), "", ""))
}

func TestMigrateHistory_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))
	assert.True(t, tableExists(t, dbPath, runsTable))
	assert.True(t, tableExists(t, dbPath, completenessTable))
	assert.True(t, tableExists(t, dbPath, migrationsTable))

	// Already at latest
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))

	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 1))
	assert.True(t, tableExists(t, dbPath, runsTable))
	assert.False(t, tableExists(t, dbPath, completenessTable))

	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 0))
	assert.False(t, tableExists(t, dbPath, runsTable))
}

func TestMigrateHistory_StoreCompatible(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))

	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	assert.NoError(t, store.RecordCompleteness(runID, sampleRows()))
}

func TestMigrateHistory_Unsupported(t *testing.T) {
	assert.Error(t, MigrateHistory(schema.NoneBackend, "", -1))
	assert.Error(t, MigrateHistory(schema.DatabaseBackend("oracle"), "", -1))
}

func TestExportHistory(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	runID, err := store.BeginRun(start, map[string]any{"limit": 20})
	require.NoError(t, err)
	require.NoError(t, store.RecordCompleteness(runID, sampleRows()))
	require.NoError(t, store.EndRun(runID, start.Add(time.Second), 10, 5))

	prefix := filepath.Join(t.TempDir(), "census")
	var buf bytes.Buffer
	require.NoError(t, ExportHistory(&buf, store, prefix))

	for _, suffix := range []string{runsExportSuffix, completenessExportSuffix} {
		info, err := os.Stat(prefix + suffix)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.Contains(t, buf.String(), "Exported 1 runs to:")
	assert.Contains(t, buf.String(), "Exported 3 completeness records to:")
}

func TestExportHistory_NoData(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	var buf bytes.Buffer
	err = ExportHistory(&buf, store, filepath.Join(t.TempDir(), "census"))
	assert.ErrorIs(t, err, ErrNoHistory)

	err = ExportHistory(&buf, nil, "census")
	assert.ErrorIs(t, err, ErrNoHistory)

	err = ExportHistory(&buf, store, "")
	assert.ErrorContains(t, err, "--output-file")
}

func TestExportHistory_StatusError(t *testing.T) {
	store := &MockHistoryStore{}
	store.On("GetStatus").Return(schema.HistoryStatus{}, assert.AnError)

	var buf bytes.Buffer
	err := ExportHistory(&buf, store, "census")
	assert.ErrorIs(t, err, assert.AnError)
	store.AssertExpectations(t)
}

func TestExportHistory_RunsError(t *testing.T) {
	store := &MockHistoryStore{}
	store.On("GetStatus").Return(schema.HistoryStatus{Backend: "mysql", Connected: true, TotalRuns: 1}, nil)
	store.On("GetAllRuns").Return(nil, assert.AnError)

	var buf bytes.Buffer
	err := ExportHistory(&buf, store, "census")
	assert.ErrorIs(t, err, assert.AnError)
	store.AssertNotCalled(t, "GetAllCompleteness")
}

func TestPrintHistoryStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintHistoryStatus(&buf, schema.HistoryStatus{Backend: "none"})
	assert.Equal(t, "History Backend: none\nConnected: false\n", buf.String())

	buf.Reset()
	PrintHistoryStatus(&buf, schema.HistoryStatus{
		Backend:       "sqlite",
		Connected:     true,
		TotalRuns:     2,
		LastRunID:     2,
		LastRunTime:   time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC),
		OldestRunTime: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		TableSizes:    map[string]int64{runsTable: 2, completenessTable: 40},
	})
	out := buf.String()
	assert.Contains(t, out, "Last Run ID: 2\n")
	assert.Contains(t, out, "Last Run: 2025-06-02 08:00:00\n")
	assert.Contains(t, out, "Oldest Run: 2025-06-01 08:00:00\n")
	assert.Contains(t, out, "  mcpcensus_completeness: 40 rows\n  mcpcensus_runs: 2 rows\n")
}

func TestManager_GetHistoryStore(t *testing.T) {
	mgr := &StoreManager{}
	assert.Nil(t, mgr.GetHistoryStore())

	store := &MockHistoryStore{}
	mgr.history = store
	assert.Same(t, store, mgr.GetHistoryStore())
}
