// Package catalogtest builds small catalog databases for tests.
package catalogtest

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/mcpcensus/schema"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite" // SQLite driver
)

// FixtureAsOf is the reference time the seeded last-commit values are relative to.
var FixtureAsOf = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// CreateTables creates the six catalog tables for a backend.
func CreateTables(ctx context.Context, db *sql.DB, backend schema.DatabaseBackend) error {
	commitType, flagType := "TEXT", "INTEGER"
	switch backend {
	case schema.MySQLBackend:
		commitType, flagType = "DATETIME", "TINYINT(1)"
	case schema.PostgreSQLBackend:
		commitType, flagType = "TIMESTAMP", "BOOLEAN"
	}

	statements := []string{
		`CREATE TABLE servers (
			id VARCHAR(64) PRIMARY KEY,
			slug VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			display_name TEXT,
			tagline TEXT,
			short_description TEXT,
			logo_url TEXT,
			homepage_url TEXT,
			creator_name TEXT,
			install_count INTEGER,
			favorite_count INTEGER,
			tools_count INTEGER,
			status VARCHAR(32),
			created_at TEXT,
			updated_at TEXT
		)`,
		fmt.Sprintf(`CREATE TABLE github_info (
			id VARCHAR(64) PRIMARY KEY,
			server_id VARCHAR(64) NOT NULL,
			github_url TEXT,
			github_stars INTEGER,
			github_forks INTEGER,
			github_watchers INTEGER,
			contributors_count INTEGER,
			github_last_commit %s,
			commit_frequency INTEGER,
			github_health_score INTEGER,
			primary_language VARCHAR(64),
			license VARCHAR(64),
			has_readme %s,
			has_license %s,
			has_contributing %s,
			has_code_of_conduct %s,
			is_archived %s,
			is_disabled %s,
			is_fork %s
		)`, commitType, flagType, flagType, flagType, flagType, flagType, flagType, flagType),
		`CREATE TABLE npm_info (
			id VARCHAR(64) PRIMARY KEY,
			server_id VARCHAR(64) NOT NULL,
			npm_package VARCHAR(255),
			npm_version VARCHAR(64),
			npm_downloads_weekly INTEGER,
			npm_downloads_monthly INTEGER
		)`,
		`CREATE TABLE mcp_config_npm (
			id VARCHAR(64) PRIMARY KEY,
			server_id VARCHAR(64) NOT NULL,
			command TEXT
		)`,
		`CREATE TABLE mcp_config_docker (
			id VARCHAR(64) PRIMARY KEY,
			server_id VARCHAR(64) NOT NULL,
			docker_image TEXT
		)`,
		`CREATE TABLE tools (
			id VARCHAR(64) PRIMARY KEY,
			server_id VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create catalog table: %w", err)
		}
	}
	return nil
}

// insert adds one row using the bind syntax of the backend.
func insert(ctx context.Context, db *sql.DB, backend schema.DatabaseBackend, table string, cols []string, values ...any) error {
	marks := make([]string, len(cols))
	for i := range cols {
		if backend == schema.PostgreSQLBackend {
			marks[i] = fmt.Sprintf("$%d", i+1)
		} else {
			marks[i] = "?"
		}
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), strings.Join(marks, ", "))
	if _, err := db.ExecContext(ctx, query, values...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}

// vcsRow is one seeded github_info row. Nil pointers are stored as NULL.
type vcsRow struct {
	server       string
	stars        any
	forks        any
	watchers     any
	contributors any
	daysAgo      int // < 0 stores NULL
	frequency    any
	health       any
	language     any
	license      any
	readme       int
	hasLicense   int
	archived     int
	fork         int
}

var vcsRows = []vcsRow{
	{server: "s01", stars: 1500, forks: 100, watchers: 50, contributors: 12, daysAgo: 10, frequency: 5, health: 90,
		language: "TypeScript", license: "MIT", readme: 1, hasLicense: 1},
	{server: "s02", stars: 250, forks: 20, daysAgo: 200, frequency: 1, health: 90,
		language: "TypeScript", license: "Apache-2.0", readme: 1, hasLicense: 1},
	{server: "s03", stars: 50, daysAgo: 400, health: 50, language: "Python", readme: 1, archived: 1},
	{server: "s04", stars: 12000, daysAgo: -1, health: 30, language: "Go", fork: 1},
	{server: "s05", daysAgo: -1},
	{server: "s06", stars: 5, daysAgo: -1},
	{server: "s07", daysAgo: -1},
}

// Seed inserts the ten-server fixture catalog.
//
// Seven servers have VCS info with health scores 90, 90, 50, 30 and three
// unknown, and last commits 10, 200 and 400 days before FixtureAsOf. Three
// servers have an npm config, one has a Docker config, and four servers
// define twenty tools between them.
func Seed(ctx context.Context, db *sql.DB, backend schema.DatabaseBackend) error {
	flag := func(v int) any {
		if backend == schema.PostgreSQLBackend {
			return v == 1
		}
		return v
	}
	commit := func(days int) any {
		if days < 0 {
			return nil
		}
		t := FixtureAsOf.AddDate(0, 0, -days)
		if backend == schema.SQLiteBackend {
			return t.Format(time.DateTime)
		}
		return t
	}
	nullable := func(s string, ok bool) any {
		if !ok {
			return nil
		}
		return s
	}

	serverCols := []string{"id", "slug", "name", "display_name", "tagline", "short_description", "logo_url",
		"homepage_url", "creator_name", "install_count", "favorite_count", "tools_count", "status"}
	for i := 1; i <= 10; i++ {
		id := fmt.Sprintf("s%02d", i)
		name := fmt.Sprintf("server-%02d", i)
		if err := insert(ctx, db, backend, schema.ServersTable, serverCols,
			id, name, name,
			"Server "+id,
			nullable("tagline "+id, i <= 5),
			nullable("description "+id, i <= 8),
			nil,
			nullable("https://example.com/"+id, i <= 3),
			"creator-"+id,
			i*10, i, 0, "published",
		); err != nil {
			return err
		}
	}

	vcsCols := []string{"id", "server_id", "github_url", "github_stars", "github_forks", "github_watchers",
		"contributors_count", "github_last_commit", "commit_frequency", "github_health_score", "primary_language",
		"license", "has_readme", "has_license", "has_contributing", "has_code_of_conduct", "is_archived",
		"is_disabled", "is_fork"}
	for _, row := range vcsRows {
		if err := insert(ctx, db, backend, schema.VcsInfoTable, vcsCols,
			"gh-"+row.server, row.server, "https://github.com/example/"+row.server,
			row.stars, row.forks, row.watchers, row.contributors, commit(row.daysAgo), row.frequency,
			row.health, row.language, row.license,
			flag(row.readme), flag(row.hasLicense), flag(0), flag(0), flag(row.archived), flag(0), flag(row.fork),
		); err != nil {
			return err
		}
	}

	npmCols := []string{"id", "server_id", "npm_package", "npm_version", "npm_downloads_weekly", "npm_downloads_monthly"}
	for i, server := range []string{"s01", "s02", "s03"} {
		var weekly any
		if i < 2 {
			weekly = (i + 1) * 1000
		}
		if err := insert(ctx, db, backend, schema.PackageInfoTable, npmCols,
			"npm-"+server, server, "@example/"+server, "1.0.0", weekly, nil); err != nil {
			return err
		}
		if err := insert(ctx, db, backend, schema.PackageConfigTable, []string{"id", "server_id", "command"},
			"cfg-"+server, server, "npx"); err != nil {
			return err
		}
	}

	if err := insert(ctx, db, backend, schema.ContainerConfigTable, []string{"id", "server_id", "docker_image"},
		"docker-s04", "s04", "example/s04:latest"); err != nil {
		return err
	}

	toolCounts := []struct {
		server string
		count  int
	}{{"s01", 8}, {"s02", 6}, {"s03", 4}, {"s04", 2}}
	for _, tc := range toolCounts {
		for j := range tc.count {
			id := fmt.Sprintf("tool-%s-%d", tc.server, j)
			if err := insert(ctx, db, backend, schema.ToolsTable, []string{"id", "server_id", "name"},
				id, tc.server, id); err != nil {
				return err
			}
		}
	}

	return nil
}

// NewSQLiteCatalog writes the seeded fixture catalog to a temporary SQLite file and returns its path.
func NewSQLiteCatalog(t testing.TB) string {
	t.Helper()
	return newSQLite(t, true)
}

// NewEmptySQLiteCatalog writes a catalog with tables but no rows and returns its path.
func NewEmptySQLiteCatalog(t testing.TB) string {
	t.Helper()
	return newSQLite(t, false)
}

func newSQLite(t testing.TB, seed bool) string {
	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	require.NoError(t, CreateTables(ctx, db, schema.SQLiteBackend))
	if seed {
		require.NoError(t, Seed(ctx, db, schema.SQLiteBackend))
	}
	return path
}
