package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/mcpcensus/core/agg"
	"github.com/huangsam/mcpcensus/core/algo"
	"github.com/huangsam/mcpcensus/internal/contract"
	"github.com/huangsam/mcpcensus/schema"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/message"
)

// documentLanguagesLimit is the number of languages listed in the Markdown document.
const documentLanguagesLimit = 10

// healthThresholds is the display threshold of each health tier.
var healthThresholds = map[schema.HealthTier]string{
	schema.ExcellentTier: ">=80",
	schema.GoodTier:      ">=60",
	schema.MediumTier:    ">=40",
	schema.PoorTier:      "<40",
	schema.UnknownTier:   "null",
}

// reportSection is one titled block of the report. It holds a table, a list of lines, or both.
type reportSection struct {
	emoji   string
	title   string
	sub     bool
	headers []string
	rows    [][]string
	lines   []string
}

// reportView controls how report sections are built for a target format.
type reportView struct {
	style             styler
	printer           *message.Printer
	completenessLimit int // 0 lists every row
	languages         bool
	urlWidth          int // 0 disables truncation
}

// buildReportSections lays out the report in its fixed section order.
func buildReportSections(report *schema.Report, cfg *contract.Config, view reportView) []reportSection {
	p := view.printer
	st := view.style
	configs := report.Configs
	withVcs := configs.WithVcsInfo

	sections := []reportSection{
		{
			emoji:   "📊",
			title:   "General Stats",
			headers: []string{"Metric", "Value"},
			rows: [][]string{
				{"Total servers", formatCount(p, configs.TotalServers)},
				{"With GitHub info", fmt.Sprintf("%s (%s)", formatCount(p, withVcs), percentOf(withVcs, configs.TotalServers))},
				{"With tools", fmt.Sprintf("%s servers / %s tools", formatCount(p, configs.WithTools), formatCount(p, configs.TotalTools))},
			},
		},
		{
			emoji:   "🔧",
			title:   "Install Configs",
			headers: []string{"Config type", "Count", "%"},
			rows: [][]string{
				{"Package (npm)", formatCount(p, configs.WithPackageConfig), formatPercent(configs.PackagePercentage)},
				{"Container (docker)", formatCount(p, configs.WithContainerConfig), formatPercent(configs.ContainerPercentage)},
				{"No config", formatCount(p, configs.WithNoConfig), formatPercent(configs.NoConfigPercentage)},
			},
		},
	}

	health := reportSection{
		emoji:   "⭐",
		title:   "Health Score (0-100)",
		headers: []string{"Tier", "Threshold", "Count", "%"},
	}
	for _, tier := range schema.AllHealthTiers {
		label := string(tier)
		if st.enabled {
			label = contract.GetColorTier(tier)
		}
		count := report.Health.Count(tier)
		health.rows = append(health.rows, []string{label, healthThresholds[tier], formatCount(p, count), percentOf(count, withVcs)})
	}
	sections = append(sections, health)

	activity := report.Activity
	sections = append(sections, reportSection{
		emoji:   "🚀",
		title:   "Recent Activity",
		headers: []string{"Metric", "Value"},
		rows: [][]string{
			{"Commit frequency (avg)", formatNumber(activity.AvgCommitFrequency) + " commits/30d"},
			{"Commit frequency (median)", formatNumber(activity.MedianCommitFrequency) + " commits/30d"},
			{"Last commit < 1 month", formatCount(p, activity.LessThan1Month) + " servers"},
			{"Last commit < 3 months", formatCount(p, activity.LessThan3Months) + " servers"},
			{"Last commit < 6 months", formatCount(p, activity.LessThan6Months) + " servers"},
			{"Last commit > 6 months", formatCount(p, activity.MoreThan6Months) + " servers"},
			{"No commit data", formatCount(p, activity.NoData) + " servers"},
		},
	})

	pop := report.Popularity
	sections = append(sections, reportSection{
		emoji:   "🌟",
		title:   "Popularity",
		headers: []string{"Metric", "Average", "Median"},
		rows: [][]string{
			{"GitHub stars", formatNumber(pop.Stars.Average), formatNumber(pop.Stars.Median)},
			{"GitHub forks", formatNumber(pop.Forks.Average), formatNumber(pop.Forks.Median)},
			{"GitHub watchers", formatNumber(pop.Watchers.Average), formatNumber(pop.Watchers.Median)},
			{"Contributors", formatNumber(pop.Contributors.Average), formatNumber(pop.Contributors.Median)},
		},
	})

	stars := reportSection{emoji: "📊", title: "Stars Distribution", sub: true, headers: []string{"Range", "Count", "%"}}
	for _, bucket := range schema.AllStarBuckets {
		count := pop.StarDistribution.Count(bucket)
		stars.rows = append(stars.rows, []string{string(bucket), formatCount(p, count), percentOf(count, withVcs)})
	}
	sections = append(sections, stars)

	top := reportSection{
		emoji:   "🏆",
		title:   fmt.Sprintf("Top %d Servers by Stars", agg.TopServersLimit),
		sub:     true,
		headers: []string{"#", "Name", "Stars", "GitHub URL"},
	}
	top.rows = topServerRows(pop.TopByStars, p, view.urlWidth)
	sections = append(sections, top)

	q := report.Quality
	sections = append(sections, reportSection{
		emoji:   "✅",
		title:   "Project Quality",
		headers: []string{"Indicator", "Count", "%"},
		rows: [][]string{
			{"Has README", formatCount(p, q.HasReadme), percentOf(q.HasReadme, withVcs)},
			{"Has LICENSE", formatCount(p, q.HasLicense), percentOf(q.HasLicense, withVcs)},
			{"Has CONTRIBUTING", formatCount(p, q.HasContributing), percentOf(q.HasContributing, withVcs)},
			{"Has CODE_OF_CONDUCT", formatCount(p, q.HasCodeOfConduct), percentOf(q.HasCodeOfConduct, withVcs)},
			{"Archived", formatCount(p, q.IsArchived), percentOf(q.IsArchived, withVcs)},
			{"Disabled", formatCount(p, q.IsDisabled), percentOf(q.IsDisabled, withVcs)},
			{"Fork", formatCount(p, q.IsFork), percentOf(q.IsFork, withVcs)},
		},
	})

	if view.languages {
		langs := reportSection{emoji: "💻", title: "Primary Languages", sub: true, headers: []string{"Language", "Count", "%"}}
		for _, lang := range algo.RankLanguages(q.Languages, documentLanguagesLimit) {
			langs.rows = append(langs.rows, []string{lang.Language, formatCount(p, lang.Count), percentOf(lang.Count, withVcs)})
		}
		sections = append(sections, langs)
	}

	completeness := reportSection{
		emoji:   "📈",
		title:   "Data Completeness",
		headers: []string{"Table", "Field", "Present", "Total", "%"},
	}
	rows := report.Completeness
	if view.completenessLimit > 0 {
		rows = rows[:min(len(rows), view.completenessLimit)]
		completeness.title = fmt.Sprintf("Data Completeness (Top %d)", view.completenessLimit)
	}
	for _, row := range rows {
		completeness.rows = append(completeness.rows, []string{
			row.Table,
			row.Field,
			formatCount(p, row.PresentCount),
			formatCount(p, row.TotalCount),
			st.percentage(row.Percentage),
		})
	}
	sections = append(sections, completeness)

	insights := reportSection{emoji: "💡", title: "Key Insights", lines: report.InsightMessages()}
	if len(insights.lines) == 0 {
		insights.lines = []string{"No insights for this catalog."}
	}
	sections = append(sections, insights)

	return sections
}

// topServerRows builds the ranking table rows. A missing URL renders as N/A.
func topServerRows(servers []schema.TopServer, p *message.Printer, urlWidth int) [][]string {
	rows := make([][]string, 0, len(servers))
	for i, s := range servers {
		url := "N/A"
		if s.URL != nil && *s.URL != "" {
			url = *s.URL
		}
		if urlWidth > 0 {
			url = contract.TruncateText(url, urlWidth)
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), s.Name, formatCount(p, s.Stars), url})
	}
	return rows
}

// topTableFixedWidth is the width of the rank, name and stars columns.
const topTableFixedWidth = 45

// writeSectionsText renders report sections as console tables.
func writeSectionsText(w io.Writer, sections []reportSection, cfg *contract.Config, st styler) error {
	for _, section := range sections {
		title := strings.ToUpper(sectionTitle(cfg, section.emoji, section.title))
		if _, err := fmt.Fprintf(w, "\n%s\n", st.sprint(contract.HeaderColor, title)); err != nil {
			return err
		}
		if len(section.headers) > 0 {
			if err := renderTable(w, section.headers, tw.AlignLeft, section.rows); err != nil {
				return err
			}
		}
		for _, line := range section.lines {
			if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeReportText writes the full console report.
func writeReportText(w io.Writer, report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	st := styler{enabled: cfg.UseColors}
	view := reportView{
		style:             st,
		printer:           newPrinter(cfg),
		completenessLimit: cfg.LimitOr(contract.DefaultCompletenessLimit),
		urlWidth:          GetMaxTextColumnWidth(cfg, topTableFixedWidth),
	}
	if err := writeSectionsText(w, buildReportSections(report, cfg, view), cfg, st); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\nReport generated at %s\n", report.GeneratedAt.UTC().Format(contract.DateTimeFormat)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Analysis completed in %v. History backend: %s\n", duration, cfg.HistoryBackend); err != nil {
		return err
	}
	return nil
}
