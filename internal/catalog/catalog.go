// Package catalog reads MCP server catalog snapshots from SQLite, MySQL or PostgreSQL.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/mcpcensus/internal/contract"
	"github.com/huangsam/mcpcensus/schema"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// ErrUnsupportedBackend is returned when a catalog is opened with an unknown backend.
var ErrUnsupportedBackend = errors.New("unsupported catalog backend")

// Reader implements the CatalogSource interface over a database/sql connection.
type Reader struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.CatalogSource = &Reader{} // Compile-time check

// Open connects to a catalog with the specified backend.
// SQLite catalogs are opened read-only.
func Open(backend schema.DatabaseBackend, connStr string) (*Reader, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = schema.DefaultCatalogDBPath
		}
		if _, statErr := os.Stat(dbPath); statErr != nil {
			return nil, fmt.Errorf("catalog database not found at %q: %w", dbPath, statErr)
		}
		db, err = sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite catalog at %q: %w", dbPath, err)
		}
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL catalog: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL catalog: %w. Check connection string format: host=... dbname=...", err)
		}

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s catalog: %w", backend, err)
	}

	return &Reader{db: db, backend: backend}, nil
}

// OpenSource opens a catalog as a contract.CatalogSource.
func OpenSource(backend schema.DatabaseBackend, connStr string) (contract.CatalogSource, error) {
	return Open(backend, connStr)
}

var _ contract.CatalogOpener = OpenSource // Compile-time check

// NewReader wraps an existing connection.
func NewReader(db *sql.DB, backend schema.DatabaseBackend) *Reader {
	return &Reader{db: db, backend: backend}
}

// Backend returns the backend the reader is connected to.
func (r *Reader) Backend() schema.DatabaseBackend {
	return r.backend
}

// Close closes the underlying connection.
func (r *Reader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// placeholder returns the bind parameter syntax for the n-th argument.
func (r *Reader) placeholder(n int) string {
	if r.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// flagColumn returns a select expression that yields a 0/1 integer for a flag column.
func (r *Reader) flagColumn(col string) string {
	if r.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("CAST(%s AS INTEGER)", col)
	}
	return col
}

// queryRows runs a query and scans each row with scan.
func queryRows[T any](ctx context.Context, db *sql.DB, table, query string, scan func(*sql.Rows) (T, error), args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	results := []T{}
	for rows.Next() {
		record, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", table, err)
	}
	return results, nil
}

// Status returns connection details and per-table row counts.
func (r *Reader) Status(ctx context.Context) (schema.CatalogStatus, error) {
	status := schema.CatalogStatus{
		Backend:    string(r.backend),
		Connected:  r.db != nil,
		TableSizes: make(map[string]int64),
	}
	if r.db == nil {
		return status, nil
	}

	for _, table := range schema.AllCatalogTables {
		var count int64
		row := r.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}

// LoadSnapshot reads every catalog table for a single run.
func (r *Reader) LoadSnapshot(ctx context.Context) (*schema.Snapshot, error) {
	snap := &schema.Snapshot{}
	var err error

	if snap.Servers, err = r.Servers(ctx); err != nil {
		return nil, err
	}
	if snap.VcsInfo, err = r.VcsInfo(ctx); err != nil {
		return nil, err
	}
	if snap.PackageInfo, err = r.PackageInfo(ctx); err != nil {
		return nil, err
	}
	if snap.PackageConfigs, err = r.PackageConfigs(ctx); err != nil {
		return nil, err
	}
	if snap.ContainerConfigs, err = r.ContainerConfigs(ctx); err != nil {
		return nil, err
	}
	if snap.Tools, err = r.Tools(ctx); err != nil {
		return nil, err
	}
	return snap, nil
}
