package schema

// InsightThresholds holds the ratios and sizes the insight rules compare against.
// Ratios are fractions of the total server count in [0, 1].
type InsightThresholds struct {
	NoConfigRatio  float64 `json:"no_config_ratio"`
	LicenseRatio   float64 `json:"license_ratio"`
	ExcellentRatio float64 `json:"excellent_ratio"`
	ActiveRatio    float64 `json:"active_ratio"`
	TopLanguages   int     `json:"top_languages"`
}

// DefaultInsightThresholds returns the stock thresholds.
func DefaultInsightThresholds() InsightThresholds {
	return InsightThresholds{
		NoConfigRatio:  0.8,
		LicenseRatio:   0.8,
		ExcellentRatio: 0.5,
		ActiveRatio:    0.3,
		TopLanguages:   3,
	}
}
