package outwriter

import (
	"time"

	"github.com/huangsam/mcpcensus/internal/contract"
	"github.com/huangsam/mcpcensus/schema"
	"golang.org/x/text/language"
)

func strPtr(s string) *string { return &s }

// testConfig returns a plain text config that does not depend on the terminal.
func testConfig() *contract.Config {
	return &contract.Config{
		Output:         schema.TextOut,
		Width:          120,
		Locale:         language.English,
		HistoryBackend: schema.NoneBackend,
	}
}

// testReport mirrors a small ten-server catalog.
func testReport() *schema.Report {
	return &schema.Report{
		GeneratedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Configs: schema.ConfigCoverage{
			TotalServers:        10,
			WithPackageConfig:   3,
			WithContainerConfig: 1,
			WithNoConfig:        6,
			WithVcsInfo:         7,
			WithTools:           4,
			TotalTools:          20,
			PackagePercentage:   30,
			ContainerPercentage: 10,
			NoConfigPercentage:  60,
		},
		Health: schema.HealthDistribution{Excellent: 2, Medium: 1, Poor: 1, Unknown: 3},
		Activity: schema.ActivitySummary{
			LessThan1Month:        1,
			MoreThan6Months:       2,
			NoData:                4,
			AvgCommitFrequency:    3,
			MedianCommitFrequency: 3,
		},
		Popularity: schema.PopularitySummary{
			Stars:            schema.FieldSummary{Average: 2761, Median: 250},
			Forks:            schema.FieldSummary{Average: 60, Median: 60},
			StarDistribution: schema.StarDistribution{UpTo100: 4, UpTo1K: 1, UpTo10K: 1, Above10K: 1},
			TopByStars: []schema.TopServer{
				{Name: "s04", Stars: 12000, URL: strPtr("https://github.com/acme/s04")},
				{Name: "s01", Stars: 1500, URL: strPtr("https://github.com/acme/s01")},
				{Name: "s02", Stars: 250},
			},
		},
		Quality: schema.QualitySummary{
			HasReadme:  3,
			HasLicense: 2,
			IsArchived: 1,
			IsFork:     1,
			Languages: []schema.LanguageCount{
				{Language: "Python", Count: 1},
				{Language: "TypeScript", Count: 2},
				{Language: "Go", Count: 1},
			},
		},
		Completeness: []schema.CompletenessRow{
			{Table: "tools", Field: "total_tools", PresentCount: 20, TotalCount: 10, Percentage: 200, Description: "Total MCP tools in database"},
			{Table: "servers", Field: "display_name", PresentCount: 10, TotalCount: 10, Percentage: 100, Description: "Servers with display name"},
			{Table: "servers", Field: "tagline", PresentCount: 5, TotalCount: 10, Percentage: 50, Description: "Servers with tagline"},
			{Table: "servers", Field: "logo_url", PresentCount: 0, TotalCount: 10, Percentage: 0, Description: "Servers with logo"},
		},
		Insights: []schema.Insight{
			{Rule: schema.PoorHealthRule, Level: schema.WarningLevel, Message: "🔴 1 servers have a POOR health score (<40)"},
			{Rule: schema.LicenseRule, Level: schema.WarningLevel, Message: "⚖️  Only 2 servers (20%) have a LICENSE"},
		},
	}
}
