package agg

import (
	"github.com/huangsam/mcpcensus/core/algo"
	"github.com/huangsam/mcpcensus/schema"
)

// fieldCheck counts the records of one tracked field.
type fieldCheck struct {
	table       string
	field       string
	description string
	count       func(snap *schema.Snapshot) int
}

// countServers counts servers whose text field is non-empty.
func countServers(field func(*schema.ServerRecord) *string) func(*schema.Snapshot) int {
	return func(snap *schema.Snapshot) int {
		n := 0
		for i := range snap.Servers {
			if schema.HasText(field(&snap.Servers[i])) {
				n++
			}
		}
		return n
	}
}

// countVcs counts VCS records matching present.
func countVcs(present func(*schema.VcsInfoRecord) bool) func(*schema.Snapshot) int {
	return func(snap *schema.Snapshot) int {
		n := 0
		for i := range snap.VcsInfo {
			if present(&snap.VcsInfo[i]) {
				n++
			}
		}
		return n
	}
}

var completenessChecks = []fieldCheck{
	{schema.ServersTable, "display_name", "Servers with display name",
		countServers(func(s *schema.ServerRecord) *string { return s.DisplayName })},
	{schema.ServersTable, "tagline", "Servers with tagline",
		countServers(func(s *schema.ServerRecord) *string { return s.Tagline })},
	{schema.ServersTable, "short_description", "Servers with description",
		countServers(func(s *schema.ServerRecord) *string { return s.ShortDescription })},
	{schema.ServersTable, "logo_url", "Servers with logo",
		countServers(func(s *schema.ServerRecord) *string { return s.LogoURL })},
	{schema.ServersTable, "homepage_url", "Servers with homepage",
		countServers(func(s *schema.ServerRecord) *string { return s.HomepageURL })},
	{schema.ServersTable, "creator_name", "Servers with creator name",
		countServers(func(s *schema.ServerRecord) *string { return s.CreatorName })},
	{schema.VcsInfoTable, "linked", "Servers with GitHub info",
		func(snap *schema.Snapshot) int { return len(snap.VcsInfo) }},
	{schema.VcsInfoTable, "github_stars", "Servers with GitHub stars data",
		countVcs(func(r *schema.VcsInfoRecord) bool { return r.Stars != nil })},
	{schema.VcsInfoTable, "github_last_commit", "Servers with last commit data",
		countVcs(func(r *schema.VcsInfoRecord) bool { return schema.HasText(r.LastCommit) })},
	{schema.VcsInfoTable, "commit_frequency", "Servers with commit frequency",
		countVcs(func(r *schema.VcsInfoRecord) bool { return r.CommitFrequency != nil })},
	{schema.VcsInfoTable, "license", "Servers with license",
		countVcs(func(r *schema.VcsInfoRecord) bool { return schema.HasText(r.License) })},
	{schema.VcsInfoTable, "primary_language", "Servers with primary language",
		countVcs(func(r *schema.VcsInfoRecord) bool { return schema.HasText(r.PrimaryLanguage) })},
	{schema.VcsInfoTable, "github_health_score", "Servers with health score",
		countVcs(func(r *schema.VcsInfoRecord) bool { return r.HealthScore != nil })},
	{schema.VcsInfoTable, "contributors_count", "Servers with contributors data",
		countVcs(func(r *schema.VcsInfoRecord) bool { return r.ContributorsCount != nil })},
	{schema.PackageInfoTable, "npm_package", "Servers with NPM package info",
		func(snap *schema.Snapshot) int { return len(snap.PackageInfo) }},
	{schema.PackageInfoTable, "npm_downloads_weekly", "Servers with NPM weekly downloads",
		func(snap *schema.Snapshot) int {
			n := 0
			for _, p := range snap.PackageInfo {
				if p.DownloadsWeekly != nil {
					n++
				}
			}
			return n
		}},
	{schema.PackageConfigTable, "config", "Servers with NPM config",
		func(snap *schema.Snapshot) int { return len(snap.PackageConfigs) }},
	{schema.ContainerConfigTable, "config", "Servers with Docker config",
		func(snap *schema.Snapshot) int { return len(snap.ContainerConfigs) }},
	{schema.ToolsTable, "tools", "Servers with MCP tools defined",
		func(snap *schema.Snapshot) int { return distinctToolServers(snap.Tools) }},
	{schema.ToolsTable, "total_tools", "Total MCP tools in database",
		func(snap *schema.Snapshot) int { return len(snap.Tools) }},
}

// AggregateCompleteness measures how many servers carry each tracked field.
// The denominator is always the server count. Rows come back sorted by
// percentage in descending order.
func AggregateCompleteness(snap *schema.Snapshot) []schema.CompletenessRow {
	total := len(snap.Servers)
	rows := make([]schema.CompletenessRow, 0, len(completenessChecks))
	for _, check := range completenessChecks {
		present := check.count(snap)
		rows = append(rows, schema.CompletenessRow{
			Table:        check.table,
			Field:        check.field,
			PresentCount: present,
			TotalCount:   total,
			Percentage:   algo.Percentage(present, total),
			Description:  check.description,
		})
	}
	algo.SortCompleteness(rows)
	return rows
}
