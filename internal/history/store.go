package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/mcpcensus/internal/contract"
	"github.com/huangsam/mcpcensus/schema"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetHistoryDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... dbname=...", err)
		}

	case schema.NoneBackend:
		return &HistoryStoreImpl{backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database file is accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables creates the run tracking tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{completenessTable, getCreateCompletenessQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for mcpcensus_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms BIGINT,
				total_servers INT,
				insight_count INT,
				config_params TEXT
			)
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms BIGINT,
				total_servers INT,
				insight_count INT,
				config_params TEXT
			)
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_servers INTEGER,
				insight_count INTEGER,
				config_params TEXT
			)
		`, quotedTableName)
	}
}

// getCreateCompletenessQuery returns the CREATE TABLE query for mcpcensus_completeness.
func getCreateCompletenessQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(completenessTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				table_name VARCHAR(64) NOT NULL,
				field_name VARCHAR(64) NOT NULL,
				present_count BIGINT NOT NULL,
				total_count BIGINT NOT NULL,
				percentage DOUBLE NOT NULL,
				PRIMARY KEY (run_id, table_name, field_name)
			)
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				table_name TEXT NOT NULL,
				field_name TEXT NOT NULL,
				present_count BIGINT NOT NULL,
				total_count BIGINT NOT NULL,
				percentage DOUBLE PRECISION NOT NULL,
				PRIMARY KEY (run_id, table_name, field_name)
			)
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				table_name TEXT NOT NULL,
				field_name TEXT NOT NULL,
				present_count INTEGER NOT NULL,
				total_count INTEGER NOT NULL,
				percentage REAL NOT NULL,
				PRIMARY KEY (run_id, table_name, field_name)
			)
		`, quotedTableName)
	}
}

// placeholders returns n bind parameters in the backend's dialect.
func (hs *HistoryStoreImpl) placeholders(n int) []string {
	result := make([]string, n)
	for i := range result {
		if hs.backend == schema.PostgreSQLBackend {
			result[i] = fmt.Sprintf("$%d", i+1)
		} else {
			result[i] = "?"
		}
	}
	return result
}

// disabled reports whether the store is a no-op.
func (hs *HistoryStoreImpl) disabled() bool {
	return hs.backend == schema.NoneBackend || hs.db == nil
}

// BeginRun creates a new run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	if hs.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)
	p := hs.placeholders(2)
	query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (%s, %s)`, quotedTableName, p[0], p[1])
	args := []any{formatTime(startTime, hs.backend), string(configJSON)}

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		err = hs.db.QueryRow(query+" RETURNING run_id", args...).Scan(&runID)
	default: // SQLite and MySQL
		var result sql.Result
		result, err = hs.db.Exec(query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	return runID, nil
}

// EndRun updates the run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, totalServers, insightCount int) error {
	if hs.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)
	p := hs.placeholders(5)

	var startTimeStr string
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, p[0])
	if err := hs.db.QueryRow(query, runID).Scan(&startTimeStr); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	startTime, err := parseStoredTime(startTimeStr)
	if err != nil {
		return fmt.Errorf("failed to parse start_time: %w", err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	updateQuery := fmt.Sprintf(
		`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_servers = %s, insight_count = %s WHERE run_id = %s`,
		quotedTableName, p[0], p[1], p[2], p[3], p[4],
	)
	if _, err := hs.db.Exec(updateQuery, formatTime(endTime, hs.backend), durationMs, totalServers, insightCount, runID); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	return nil
}

// RecordCompleteness stores the completeness rows of a run in one transaction.
func (hs *HistoryStoreImpl) RecordCompleteness(runID int64, rows []schema.CompletenessRow) error {
	if hs.disabled() || len(rows) == 0 {
		return nil
	}

	p := hs.placeholders(6)
	query := fmt.Sprintf(
		`INSERT INTO %s (run_id, table_name, field_name, present_count, total_count, percentage) VALUES (%s, %s, %s, %s, %s, %s)`,
		quoteTableName(completenessTable, hs.backend), p[0], p[1], p[2], p[3], p[4], p[5],
	)

	tx, err := hs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare completeness insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range rows {
		if _, err := stmt.Exec(runID, row.Table, row.Field, row.PresentCount, row.TotalCount, row.Percentage); err != nil {
			return fmt.Errorf("failed to insert completeness for %s.%s: %w", row.Table, row.Field, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit completeness rows: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.disabled() {
		return status, nil
	}

	quotedRuns := quoteTableName(runsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRuns)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var lastRunTimeStr string
		lastRunQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quotedRuns)
		if err := hs.db.QueryRow(lastRunQuery).Scan(&status.LastRunID, &lastRunTimeStr); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		lastRunTime, err := parseStoredTime(lastRunTimeStr)
		if err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		status.LastRunTime = lastRunTime

		var oldestRunTimeStr string
		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quotedRuns)
		if err := hs.db.QueryRow(oldestRunQuery).Scan(&oldestRunTimeStr); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		oldestRunTime, err := parseStoredTime(oldestRunTimeStr)
		if err != nil {
			return status, fmt.Errorf("failed to parse oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRunTime
	}

	for _, table := range allHistoryTables {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))
		if err := hs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns retrieves all runs from the store.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(
		"SELECT run_id, start_time, end_time, run_duration_ms, total_servers, insight_count, config_params FROM %s ORDER BY run_id",
		quoteTableName(runsTable, hs.backend),
	)
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		var startTimeStr string
		var endTimeStr, configParams sql.NullString
		var durationMs, totalServers, insightCount sql.NullInt64
		if err := rows.Scan(&record.RunID, &startTimeStr, &endTimeStr, &durationMs, &totalServers, &insightCount, &configParams); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		if record.StartTime, err = parseStoredTime(startTimeStr); err != nil {
			return nil, fmt.Errorf("failed to parse start_time of run %d: %w", record.RunID, err)
		}
		if endTimeStr.Valid {
			endTime, err := parseStoredTime(endTimeStr.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse end_time of run %d: %w", record.RunID, err)
			}
			record.EndTime = &endTime
		}
		record.RunDurationMs = int64Ptr(durationMs)
		record.TotalServers = int64Ptr(totalServers)
		record.InsightCount = int64Ptr(insightCount)
		if configParams.Valid {
			record.ConfigParams = &configParams.String
		}

		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return results, nil
}

// GetAllCompleteness retrieves all completeness rows from the store.
func (hs *HistoryStoreImpl) GetAllCompleteness() ([]schema.CompletenessRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(
		"SELECT run_id, table_name, field_name, present_count, total_count, percentage FROM %s ORDER BY run_id, table_name, field_name",
		quoteTableName(completenessTable, hs.backend),
	)
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query completeness: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.CompletenessRecord
	for rows.Next() {
		var record schema.CompletenessRecord
		if err := rows.Scan(&record.RunID, &record.TableName, &record.FieldName, &record.PresentCount, &record.TotalCount, &record.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan completeness: %w", err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate completeness: %w", err)
	}

	return results, nil
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}
