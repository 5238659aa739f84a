package schema

import "time"

// ConfigCoverage summarizes which servers ship an install config, VCS info and tools.
// WithNoConfig is total minus package minus container and is never clamped.
type ConfigCoverage struct {
	TotalServers        int     `json:"total_servers" yaml:"total_servers"`
	WithPackageConfig   int     `json:"with_package_config" yaml:"with_package_config"`
	WithContainerConfig int     `json:"with_container_config" yaml:"with_container_config"`
	WithNoConfig        int     `json:"with_no_config" yaml:"with_no_config"`
	WithVcsInfo         int     `json:"with_vcs_info" yaml:"with_vcs_info"`
	WithTools           int     `json:"with_tools" yaml:"with_tools"`
	TotalTools          int     `json:"total_tools" yaml:"total_tools"`
	PackagePercentage   float64 `json:"package_percentage" yaml:"package_percentage"`
	ContainerPercentage float64 `json:"container_percentage" yaml:"container_percentage"`
	NoConfigPercentage  float64 `json:"no_config_percentage" yaml:"no_config_percentage"`
}

// HealthDistribution partitions VCS records by health tier.
type HealthDistribution struct {
	Unknown   int `json:"unknown" yaml:"unknown"`
	Excellent int `json:"excellent" yaml:"excellent"`
	Good      int `json:"good" yaml:"good"`
	Medium    int `json:"medium" yaml:"medium"`
	Poor      int `json:"poor" yaml:"poor"`
}

// Count returns the number of records in the given tier.
func (h HealthDistribution) Count(tier HealthTier) int {
	switch tier {
	case ExcellentTier:
		return h.Excellent
	case GoodTier:
		return h.Good
	case MediumTier:
		return h.Medium
	case PoorTier:
		return h.Poor
	default:
		return h.Unknown
	}
}

// Total returns the number of records across all tiers.
func (h HealthDistribution) Total() int {
	return h.Unknown + h.Excellent + h.Good + h.Medium + h.Poor
}

// ActivitySummary buckets VCS records by days since the last commit.
type ActivitySummary struct {
	LessThan1Month        int     `json:"last_commit_lt_1_month" yaml:"last_commit_lt_1_month"`
	LessThan3Months       int     `json:"last_commit_lt_3_months" yaml:"last_commit_lt_3_months"`
	LessThan6Months       int     `json:"last_commit_lt_6_months" yaml:"last_commit_lt_6_months"`
	MoreThan6Months       int     `json:"last_commit_gt_6_months" yaml:"last_commit_gt_6_months"`
	NoData                int     `json:"no_last_commit_data" yaml:"no_last_commit_data"`
	AvgCommitFrequency    float64 `json:"avg_commit_frequency" yaml:"avg_commit_frequency"`
	MedianCommitFrequency float64 `json:"median_commit_frequency" yaml:"median_commit_frequency"`
}

// FieldSummary holds the average and median of one nullable numeric field.
type FieldSummary struct {
	Average float64 `json:"average" yaml:"average"`
	Median  float64 `json:"median" yaml:"median"`
}

// StarDistribution is the fixed-width star-count histogram.
type StarDistribution struct {
	UpTo100  int `json:"0-100" yaml:"0-100"`
	UpTo1K   int `json:"100-1000" yaml:"100-1000"`
	UpTo10K  int `json:"1000-10000" yaml:"1000-10000"`
	Above10K int `json:">10000" yaml:">10000"`
}

// Count returns the number of records in the given bucket.
func (d StarDistribution) Count(bucket StarBucket) int {
	switch bucket {
	case Stars0To100:
		return d.UpTo100
	case Stars100To1K:
		return d.UpTo1K
	case Stars1KTo10K:
		return d.UpTo10K
	default:
		return d.Above10K
	}
}

// TopServer is one entry of the ranking by stars.
type TopServer struct {
	Name  string  `json:"name" yaml:"name"`
	Stars int     `json:"stars" yaml:"stars"`
	URL   *string `json:"github_url" yaml:"github_url"`
}

// PopularitySummary holds popularity statistics, the star histogram and the top servers.
type PopularitySummary struct {
	Stars            FieldSummary     `json:"stars" yaml:"stars"`
	Forks            FieldSummary     `json:"forks" yaml:"forks"`
	Watchers         FieldSummary     `json:"watchers" yaml:"watchers"`
	Contributors     FieldSummary     `json:"contributors" yaml:"contributors"`
	StarDistribution StarDistribution `json:"stars_distribution" yaml:"stars_distribution"`
	TopByStars       []TopServer      `json:"top_by_stars" yaml:"top_by_stars"`
}

// LanguageCount is one entry of the primary language histogram.
type LanguageCount struct {
	Language string `json:"language" yaml:"language"`
	Count    int    `json:"count" yaml:"count"`
}

// QualitySummary counts repository hygiene flags and primary languages.
// Languages keeps first-seen order.
type QualitySummary struct {
	HasReadme        int             `json:"has_readme" yaml:"has_readme"`
	HasLicense       int             `json:"has_license" yaml:"has_license"`
	HasContributing  int             `json:"has_contributing" yaml:"has_contributing"`
	HasCodeOfConduct int             `json:"has_code_of_conduct" yaml:"has_code_of_conduct"`
	IsArchived       int             `json:"is_archived" yaml:"is_archived"`
	IsDisabled       int             `json:"is_disabled" yaml:"is_disabled"`
	IsFork           int             `json:"is_fork" yaml:"is_fork"`
	Languages        []LanguageCount `json:"primary_languages" yaml:"primary_languages"`
}

// CompletenessRow is the presence ratio of one tracked field over all servers.
type CompletenessRow struct {
	Table        string  `json:"table" yaml:"table"`
	Field        string  `json:"field" yaml:"field"`
	PresentCount int     `json:"present_count" yaml:"present_count"`
	TotalCount   int     `json:"total_count" yaml:"total_count"`
	Percentage   float64 `json:"percentage" yaml:"percentage"`
	Description  string  `json:"description" yaml:"description"`
}

// Insight is one rule-derived line about the catalog.
type Insight struct {
	Rule    InsightRule  `json:"rule" yaml:"rule"`
	Level   InsightLevel `json:"level" yaml:"level"`
	Message string       `json:"message" yaml:"message"`
}

// Report is the full result of one analysis run.
type Report struct {
	GeneratedAt  time.Time          `json:"generated_at" yaml:"generated_at"`
	Configs      ConfigCoverage     `json:"config_stats" yaml:"config_stats"`
	Health       HealthDistribution `json:"health_score_distribution" yaml:"health_score_distribution"`
	Activity     ActivitySummary    `json:"activity" yaml:"activity"`
	Popularity   PopularitySummary  `json:"popularity" yaml:"popularity"`
	Quality      QualitySummary     `json:"quality" yaml:"quality"`
	Completeness []CompletenessRow  `json:"completeness" yaml:"completeness"`
	Insights     []Insight          `json:"insights" yaml:"insights"`
}

// InsightMessages returns the rendered insight lines in rule order.
func (r *Report) InsightMessages() []string {
	messages := make([]string, len(r.Insights))
	for i, in := range r.Insights {
		messages[i] = in.Message
	}
	return messages
}
