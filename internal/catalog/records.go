package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/huangsam/mcpcensus/schema"
)

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func intPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}

// Servers returns every row of the servers table.
func (r *Reader) Servers(ctx context.Context) ([]schema.ServerRecord, error) {
	query := fmt.Sprintf(`SELECT id, slug, name, display_name, tagline, short_description, logo_url,
		homepage_url, creator_name, install_count, favorite_count, tools_count, status, created_at, updated_at
		FROM %s ORDER BY id`, schema.ServersTable)

	return queryRows(ctx, r.db, schema.ServersTable, query, func(rows *sql.Rows) (schema.ServerRecord, error) {
		var rec schema.ServerRecord
		var slug, status, displayName, tagline, shortDesc, logoURL, homepageURL, creatorName, createdAt, updatedAt sql.NullString
		var installs, favorites, tools sql.NullInt64
		err := rows.Scan(&rec.ID, &slug, &rec.Name, &displayName, &tagline, &shortDesc, &logoURL,
			&homepageURL, &creatorName, &installs, &favorites, &tools, &status, &createdAt, &updatedAt)
		if err != nil {
			return rec, err
		}
		rec.Slug = slug.String
		rec.Status = status.String
		rec.DisplayName = stringPtr(displayName)
		rec.Tagline = stringPtr(tagline)
		rec.ShortDescription = stringPtr(shortDesc)
		rec.LogoURL = stringPtr(logoURL)
		rec.HomepageURL = stringPtr(homepageURL)
		rec.CreatorName = stringPtr(creatorName)
		rec.InstallCount = int(installs.Int64)
		rec.FavoriteCount = int(favorites.Int64)
		rec.ToolsCount = int(tools.Int64)
		rec.CreatedAt = stringPtr(createdAt)
		rec.UpdatedAt = stringPtr(updatedAt)
		return rec, nil
	})
}

// VcsInfo returns every row of the github_info table.
func (r *Reader) VcsInfo(ctx context.Context) ([]schema.VcsInfoRecord, error) {
	query := fmt.Sprintf(`SELECT id, server_id, github_url, github_stars, github_forks, github_watchers,
		contributors_count, github_last_commit, commit_frequency, github_health_score, primary_language, license,
		%s, %s, %s, %s, %s, %s, %s
		FROM %s ORDER BY id`,
		r.flagColumn("has_readme"), r.flagColumn("has_license"), r.flagColumn("has_contributing"),
		r.flagColumn("has_code_of_conduct"), r.flagColumn("is_archived"), r.flagColumn("is_disabled"),
		r.flagColumn("is_fork"), schema.VcsInfoTable)

	return queryRows(ctx, r.db, schema.VcsInfoTable, query, func(rows *sql.Rows) (schema.VcsInfoRecord, error) {
		var rec schema.VcsInfoRecord
		var url, lastCommit, language, license sql.NullString
		var stars, forks, watchers, contributors, health sql.NullInt64
		var frequency sql.NullFloat64
		var readme, hasLicense, contributing, conduct, archived, disabled, fork sql.NullInt64
		err := rows.Scan(&rec.ID, &rec.ServerID, &url, &stars, &forks, &watchers,
			&contributors, &lastCommit, &frequency, &health, &language, &license,
			&readme, &hasLicense, &contributing, &conduct, &archived, &disabled, &fork)
		if err != nil {
			return rec, err
		}
		rec.URL = stringPtr(url)
		rec.Stars = intPtr(stars)
		rec.Forks = intPtr(forks)
		rec.Watchers = intPtr(watchers)
		rec.ContributorsCount = intPtr(contributors)
		rec.LastCommit = stringPtr(lastCommit)
		rec.CommitFrequency = floatPtr(frequency)
		rec.HealthScore = intPtr(health)
		rec.PrimaryLanguage = stringPtr(language)
		rec.License = stringPtr(license)
		rec.HasReadme = intPtr(readme)
		rec.HasLicense = intPtr(hasLicense)
		rec.HasContributing = intPtr(contributing)
		rec.HasCodeOfConduct = intPtr(conduct)
		rec.IsArchived = intPtr(archived)
		rec.IsDisabled = intPtr(disabled)
		rec.IsFork = intPtr(fork)
		return rec, nil
	})
}

// PackageInfo returns every row of the npm_info table.
func (r *Reader) PackageInfo(ctx context.Context) ([]schema.PackageRegistryInfoRecord, error) {
	query := fmt.Sprintf(`SELECT id, server_id, npm_package, npm_version, npm_downloads_weekly, npm_downloads_monthly
		FROM %s ORDER BY id`, schema.PackageInfoTable)

	return queryRows(ctx, r.db, schema.PackageInfoTable, query, func(rows *sql.Rows) (schema.PackageRegistryInfoRecord, error) {
		var rec schema.PackageRegistryInfoRecord
		var pkg, version sql.NullString
		var weekly, monthly sql.NullInt64
		if err := rows.Scan(&rec.ID, &rec.ServerID, &pkg, &version, &weekly, &monthly); err != nil {
			return rec, err
		}
		rec.Package = pkg.String
		rec.Version = version.String
		rec.DownloadsWeekly = intPtr(weekly)
		rec.DownloadsMonthly = intPtr(monthly)
		return rec, nil
	})
}

// PackageConfigs returns every row of the mcp_config_npm table.
func (r *Reader) PackageConfigs(ctx context.Context) ([]schema.PackageInstallConfigRecord, error) {
	query := fmt.Sprintf(`SELECT id, server_id, command FROM %s ORDER BY id`, schema.PackageConfigTable)

	return queryRows(ctx, r.db, schema.PackageConfigTable, query, func(rows *sql.Rows) (schema.PackageInstallConfigRecord, error) {
		var rec schema.PackageInstallConfigRecord
		var command sql.NullString
		if err := rows.Scan(&rec.ID, &rec.ServerID, &command); err != nil {
			return rec, err
		}
		rec.Command = command.String
		return rec, nil
	})
}

// ContainerConfigs returns every row of the mcp_config_docker table.
func (r *Reader) ContainerConfigs(ctx context.Context) ([]schema.ContainerInstallConfigRecord, error) {
	query := fmt.Sprintf(`SELECT id, server_id, docker_image FROM %s ORDER BY id`, schema.ContainerConfigTable)

	return queryRows(ctx, r.db, schema.ContainerConfigTable, query, func(rows *sql.Rows) (schema.ContainerInstallConfigRecord, error) {
		var rec schema.ContainerInstallConfigRecord
		var image sql.NullString
		if err := rows.Scan(&rec.ID, &rec.ServerID, &image); err != nil {
			return rec, err
		}
		rec.Image = image.String
		return rec, nil
	})
}

// Tools returns every row of the tools table.
func (r *Reader) Tools(ctx context.Context) ([]schema.ToolRecord, error) {
	query := fmt.Sprintf(`SELECT id, server_id, name FROM %s ORDER BY id`, schema.ToolsTable)

	return queryRows(ctx, r.db, schema.ToolsTable, query, func(rows *sql.Rows) (schema.ToolRecord, error) {
		var rec schema.ToolRecord
		var name sql.NullString
		if err := rows.Scan(&rec.ID, &rec.ServerID, &name); err != nil {
			return rec, err
		}
		rec.Name = name.String
		return rec, nil
	})
}

// TopServersByStars returns the servers with the most stars, ranked by the database.
// Ties are ordered by VCS record ID, matching the order LoadSnapshot reads them in.
func (r *Reader) TopServersByStars(ctx context.Context, limit int) ([]schema.TopServer, error) {
	query := fmt.Sprintf(`SELECT s.name, gh.github_stars, gh.github_url
		FROM %s s
		JOIN %s gh ON gh.server_id = s.id
		WHERE gh.github_stars IS NOT NULL
		ORDER BY gh.github_stars DESC, gh.id
		LIMIT %s`, schema.ServersTable, schema.VcsInfoTable, r.placeholder(1))

	return queryRows(ctx, r.db, "top servers", query, func(rows *sql.Rows) (schema.TopServer, error) {
		var top schema.TopServer
		var url sql.NullString
		if err := rows.Scan(&top.Name, &top.Stars, &url); err != nil {
			return top, err
		}
		top.URL = stringPtr(url)
		return top, nil
	}, limit)
}
