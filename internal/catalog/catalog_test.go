package catalog_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/huangsam/mcpcensus/internal/catalog"
	"github.com/huangsam/mcpcensus/core/algo"
	"github.com/huangsam/mcpcensus/internal/catalog/catalogtest"
	"github.com/huangsam/mcpcensus/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openFixture(t *testing.T) *catalog.Reader {
	t.Helper()
	reader, err := catalog.Open(schema.SQLiteBackend, catalogtest.NewSQLiteCatalog(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = reader.Close() })
	return reader
}

func TestOpenErrors(t *testing.T) {
	t.Run("unsupported backend", func(t *testing.T) {
		_, err := catalog.Open(schema.NoneBackend, "")
		assert.ErrorIs(t, err, catalog.ErrUnsupportedBackend)
	})

	t.Run("missing sqlite file", func(t *testing.T) {
		_, err := catalog.Open(schema.SQLiteBackend, filepath.Join(t.TempDir(), "nope.db"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "catalog database not found")
	})
}

func TestRecordSets(t *testing.T) {
	ctx := context.Background()
	reader := openFixture(t)
	assert.Equal(t, schema.SQLiteBackend, reader.Backend())

	servers, err := reader.Servers(ctx)
	require.NoError(t, err)
	require.Len(t, servers, 10)
	assert.Equal(t, "server-01", servers[0].Name)
	require.NotNil(t, servers[0].Tagline)
	assert.Nil(t, servers[9].Tagline)
	assert.Nil(t, servers[0].LogoURL)
	assert.Equal(t, 10, servers[0].InstallCount)

	vcs, err := reader.VcsInfo(ctx)
	require.NoError(t, err)
	require.Len(t, vcs, 7)
	assert.Equal(t, 1500, *vcs[0].Stars)
	assert.Equal(t, 90, *vcs[0].HealthScore)
	assert.Equal(t, 5.0, *vcs[0].CommitFrequency)
	assert.True(t, schema.IsFlagSet(vcs[0].HasLicense))
	assert.Equal(t, "2025-05-22 00:00:00", *vcs[0].LastCommit)
	assert.Nil(t, vcs[4].Stars)
	assert.Nil(t, vcs[4].LastCommit)
	assert.True(t, schema.IsFlagSet(vcs[2].IsArchived))

	pkgs, err := reader.PackageInfo(ctx)
	require.NoError(t, err)
	require.Len(t, pkgs, 3)
	assert.Nil(t, pkgs[2].DownloadsWeekly)
	assert.Nil(t, pkgs[0].DownloadsMonthly)

	npmConfigs, err := reader.PackageConfigs(ctx)
	require.NoError(t, err)
	assert.Len(t, npmConfigs, 3)

	dockerConfigs, err := reader.ContainerConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, dockerConfigs, 1)
	assert.Equal(t, "example/s04:latest", dockerConfigs[0].Image)

	tools, err := reader.Tools(ctx)
	require.NoError(t, err)
	assert.Len(t, tools, 20)
}

func TestLoadSnapshot(t *testing.T) {
	snap, err := openFixture(t).LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Servers, 10)
	assert.Len(t, snap.VcsInfo, 7)
	assert.Len(t, snap.PackageInfo, 3)
	assert.Len(t, snap.PackageConfigs, 3)
	assert.Len(t, snap.ContainerConfigs, 1)
	assert.Len(t, snap.Tools, 20)
}

func TestLoadSnapshotEmptyCatalog(t *testing.T) {
	reader, err := catalog.Open(schema.SQLiteBackend, catalogtest.NewEmptySQLiteCatalog(t))
	require.NoError(t, err)
	defer func() { _ = reader.Close() }()

	snap, err := reader.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, snap.Servers)
	assert.Empty(t, snap.Servers)
	assert.Empty(t, snap.Tools)
}

func TestTopServersByStars(t *testing.T) {
	reader := openFixture(t)

	top, err := reader.TopServersByStars(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "server-04", top[0].Name)
	assert.Equal(t, 12000, top[0].Stars)
	assert.Equal(t, "server-01", top[1].Name)
	assert.Equal(t, "server-02", top[2].Name)
	require.NotNil(t, top[0].URL)
	assert.Equal(t, "https://github.com/example/s04", *top[0].URL)

	all, err := reader.TopServersByStars(context.Background(), 100)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestTopServersByStarsTies(t *testing.T) {
	ctx := context.Background()
	path := catalogtest.NewEmptySQLiteCatalog(t)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	// VCS IDs run opposite to insertion order so ties cannot fall back to rowid.
	for _, row := range [][]string{{"srv-x", "gh-3"}, {"srv-y", "gh-2"}, {"srv-z", "gh-1"}} {
		_, err = db.ExecContext(ctx, "INSERT INTO servers (id, slug, name) VALUES (?, ?, ?)", row[0], row[0], row[0])
		require.NoError(t, err)
		_, err = db.ExecContext(ctx, "INSERT INTO github_info (id, server_id, github_stars) VALUES (?, ?, 100)", row[1], row[0])
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	reader, err := catalog.Open(schema.SQLiteBackend, path)
	require.NoError(t, err)
	defer func() { _ = reader.Close() }()

	top, err := reader.TopServersByStars(ctx, 10)
	require.NoError(t, err)
	names := make([]string, len(top))
	for i, s := range top {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"srv-z", "srv-y", "srv-x"}, names)

	snap, err := reader.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, top, algo.RankByStars(snap, 10))
}

func TestStatus(t *testing.T) {
	status, err := openFixture(t).Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(10), status.TableSizes[schema.ServersTable])
	assert.Equal(t, int64(7), status.TableSizes[schema.VcsInfoTable])
	assert.Equal(t, int64(20), status.TableSizes[schema.ToolsTable])
	assert.Len(t, status.TableSizes, len(schema.AllCatalogTables))
}

func TestOpenSource(t *testing.T) {
	source, err := catalog.OpenSource(schema.SQLiteBackend, catalogtest.NewSQLiteCatalog(t))
	require.NoError(t, err)
	defer func() { _ = source.Close() }()

	top, err := source.TopServersByStars(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}
