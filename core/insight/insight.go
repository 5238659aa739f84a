// Package insight derives rule-based observations from catalog summaries.
package insight

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/mcpcensus/core/algo"
	"github.com/huangsam/mcpcensus/schema"
)

// Thresholds configures when each rule fires.
type Thresholds = schema.InsightThresholds

// Inputs are the summaries the rules read.
type Inputs struct {
	Configs  schema.ConfigCoverage
	Health   schema.HealthDistribution
	Activity schema.ActivitySummary
	Quality  schema.QualitySummary
}

// rule emits at most one insight.
type rule struct {
	id    schema.InsightRule
	level schema.InsightLevel
	eval  func(in *Inputs, th *Thresholds) (string, bool)
}

var rules = []rule{
	{schema.NoConfigRule, schema.WarningLevel, noConfig},
	{schema.PoorHealthRule, schema.WarningLevel, poorHealth},
	{schema.StaleRule, schema.WarningLevel, stale},
	{schema.ArchivedRule, schema.WarningLevel, archived},
	{schema.LicenseRule, schema.WarningLevel, license},
	{schema.ExcellentHealthRule, schema.PositiveLevel, excellentHealth},
	{schema.ActiveRule, schema.PositiveLevel, active},
	{schema.LanguagesRule, schema.InfoLevel, languages},
}

// Generate evaluates every rule in order and returns the insights that fired.
func Generate(in Inputs, th Thresholds) []schema.Insight {
	insights := make([]schema.Insight, 0, len(rules))
	for _, r := range rules {
		if msg, ok := r.eval(&in, &th); ok {
			insights = append(insights, schema.Insight{Rule: r.id, Level: r.level, Message: msg})
		}
	}
	return insights
}

// FormatPercent renders a percentage in its shortest form.
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func total(in *Inputs) float64 {
	return float64(in.Configs.TotalServers)
}

func noConfig(in *Inputs, th *Thresholds) (string, bool) {
	n := in.Configs.WithNoConfig
	if float64(n) <= total(in)*th.NoConfigRatio {
		return "", false
	}
	return fmt.Sprintf("⚠️  %d servers (%s%%) have NO install configuration (npm/Docker)",
		n, FormatPercent(in.Configs.NoConfigPercentage)), true
}

func poorHealth(in *Inputs, _ *Thresholds) (string, bool) {
	if in.Health.Poor == 0 {
		return "", false
	}
	return fmt.Sprintf("🔴 %d servers have a POOR health score (<40)", in.Health.Poor), true
}

func stale(in *Inputs, _ *Thresholds) (string, bool) {
	if in.Activity.MoreThan6Months == 0 {
		return "", false
	}
	return fmt.Sprintf("⏰ %d servers have had NO commit in over 6 months", in.Activity.MoreThan6Months), true
}

func archived(in *Inputs, _ *Thresholds) (string, bool) {
	if in.Quality.IsArchived == 0 {
		return "", false
	}
	return fmt.Sprintf("📦 %d servers are ARCHIVED on GitHub", in.Quality.IsArchived), true
}

func license(in *Inputs, th *Thresholds) (string, bool) {
	n := in.Quality.HasLicense
	if float64(n) >= total(in)*th.LicenseRatio {
		return "", false
	}
	return fmt.Sprintf("⚖️  Only %d servers (%s%%) have a LICENSE",
		n, FormatPercent(algo.Percentage(n, in.Configs.TotalServers))), true
}

func excellentHealth(in *Inputs, th *Thresholds) (string, bool) {
	n := in.Health.Excellent
	if float64(n) <= total(in)*th.ExcellentRatio {
		return "", false
	}
	return fmt.Sprintf("✅ %d servers (%s%%) have an EXCELLENT health score (≥80)",
		n, FormatPercent(algo.Percentage(n, in.Configs.TotalServers))), true
}

func active(in *Inputs, th *Thresholds) (string, bool) {
	n := in.Activity.LessThan1Month
	if float64(n) <= total(in)*th.ActiveRatio {
		return "", false
	}
	return fmt.Sprintf("🚀 %d servers are ACTIVE (commit in the last month)", n), true
}

func languages(in *Inputs, th *Thresholds) (string, bool) {
	top := algo.RankLanguages(in.Quality.Languages, th.TopLanguages)
	if len(top) == 0 {
		return "", false
	}
	parts := make([]string, len(top))
	for i, l := range top {
		parts[i] = fmt.Sprintf("%s (%d)", l.Language, l.Count)
	}
	return "💻 Top languages: " + strings.Join(parts, ", "), true
}
