package contract

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/mcpcensus/schema"
	"golang.org/x/text/language"
)

// Default values for configuration.
const (
	DefaultCompletenessLimit = 20
	DefaultTopLimit          = 10
	MaxResultLimit           = 1000
	DefaultLocale            = "en"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// InsightsRawInput holds insight threshold overrides from the YAML config file.
type InsightsRawInput struct {
	NoConfigRatio  *float64 `mapstructure:"no-config-ratio"`
	LicenseRatio   *float64 `mapstructure:"license-ratio"`
	ExcellentRatio *float64 `mapstructure:"excellent-ratio"`
	ActiveRatio    *float64 `mapstructure:"active-ratio"`
	TopLanguages   *int     `mapstructure:"top-languages"`
}

// Config holds the runtime configuration for a run.
// This struct remains the "final, validated" config.
type Config struct {
	CatalogBackend   schema.DatabaseBackend
	CatalogDBConnect string // Path for sqlite, DSN otherwise

	ResultLimit int // 0 means the command default
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	DocumentDir string
	Locale      language.Tag
	AsOf        time.Time // Reference time for activity buckets (zero = run start)

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	Thresholds schema.InsightThresholds

	UseEmojis bool // Enable emojis in section headers
	UseColors bool // Enable colored percentages in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	CatalogPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	CatalogBackend   string `mapstructure:"catalog-backend"`
	CatalogDBConnect string `mapstructure:"catalog-db-connect"`
	OutputFile       string `mapstructure:"output-file"`
	Limit            int    `mapstructure:"limit"`
	Output           string `mapstructure:"output"`
	Width            int    `mapstructure:"width"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`
	Locale           string `mapstructure:"locale"`
	AsOf             string `mapstructure:"as-of"`

	// --- Fields from reportCmd.Flags() ---
	DocumentDir string `mapstructure:"document-dir"`

	// --- Insight thresholds from config file ---
	Insights InsightsRawInput `mapstructure:"insights"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// LimitOr returns the configured result limit, or def when none was given.
func (c *Config) LimitOr(def int) int {
	if c.ResultLimit > 0 {
		return c.ResultLimit
	}
	return def
}

// ReferenceTime returns the time activity buckets are measured from.
func (c *Config) ReferenceTime(runStart time.Time) time.Time {
	if c.AsOf.IsZero() {
		return runStart.UTC()
	}
	return c.AsOf.UTC()
}

// ResolvedCatalogDBConnect returns the catalog connection string with the SQLite default applied.
func (c *Config) ResolvedCatalogDBConnect() string {
	if c.CatalogDBConnect == "" && c.CatalogBackend == schema.SQLiteBackend {
		return schema.DefaultCatalogDBPath
	}
	return c.CatalogDBConnect
}

// ConfigParams returns the settings recorded alongside a history run.
func (c *Config) ConfigParams() map[string]any {
	params := map[string]any{
		"catalog_backend": string(c.CatalogBackend),
		"output":          string(c.Output),
		"limit":           c.ResultLimit,
		"locale":          c.Locale.String(),
		"thresholds":      c.Thresholds,
	}
	if !c.AsOf.IsZero() {
		params["as_of"] = c.AsOf.Format(DateTimeFormat)
	}
	return params
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processAsOf(cfg, input); err != nil {
		return err
	}
	if err := processInsightThresholds(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates catalog and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Catalog Backend Validation ---
	cfg.CatalogBackend = schema.DatabaseBackend(strings.ToLower(input.CatalogBackend))
	if cfg.CatalogBackend == "" {
		cfg.CatalogBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidCatalogBackends[cfg.CatalogBackend]; !ok {
		return fmt.Errorf("invalid catalog backend '%s'. must be sqlite, mysql, postgresql", input.CatalogBackend)
	}
	cfg.CatalogDBConnect = input.CatalogDBConnect
	if input.CatalogPathStr != "" {
		cfg.CatalogDBConnect = input.CatalogPathStr
	}
	if err := ValidateDatabaseConnectionString(cfg.CatalogBackend, cfg.CatalogDBConnect); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidHistoryBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("history: %w", err)
	}

	// Catalog and history cannot share a SQLite file
	if cfg.CatalogBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		historyPath := cfg.HistoryDBConnect
		if historyPath == "" {
			historyPath = GetHistoryDBFilePath()
		}
		catalogPath, err := filepath.Abs(cfg.ResolvedCatalogDBConnect())
		if err != nil {
			return err
		}
		historyPath, err = filepath.Abs(historyPath)
		if err != nil {
			return err
		}
		if catalogPath == historyPath {
			return fmt.Errorf("catalog and history storage must use different SQLite database files. Both resolve to %q", catalogPath)
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-backend fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.DocumentDir = input.DocumentDir

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 1 and %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Width Validation ---
	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}

	// --- 3. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, yaml, csv, markdown, html", input.Output)
	}

	// --- 4. Locale Validation ---
	locale := input.Locale
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("invalid locale '%s': %w", input.Locale, err)
	}
	cfg.Locale = tag

	return nil
}

// processAsOf parses the reference time used for activity buckets.
// It accepts a plain date or an RFC3339 timestamp.
func processAsOf(cfg *Config, input *ConfigRawInput) error {
	cfg.AsOf = time.Time{}
	value := strings.TrimSpace(input.AsOf)
	if value == "" {
		return nil
	}
	if t, err := time.Parse(DateTimeFormat, value); err == nil {
		cfg.AsOf = t.UTC()
		return nil
	}
	t, err := time.ParseInLocation(time.DateOnly, value, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid --as-of value '%s'. Expected YYYY-MM-DD or RFC3339: %w", value, err)
	}
	cfg.AsOf = t
	return nil
}

// processInsightThresholds applies config file overrides on top of the default thresholds.
func processInsightThresholds(cfg *Config, input *ConfigRawInput) error {
	th := schema.DefaultInsightThresholds()

	ratios := []struct {
		name  string
		value *float64
		dest  *float64
	}{
		{"no-config-ratio", input.Insights.NoConfigRatio, &th.NoConfigRatio},
		{"license-ratio", input.Insights.LicenseRatio, &th.LicenseRatio},
		{"excellent-ratio", input.Insights.ExcellentRatio, &th.ExcellentRatio},
		{"active-ratio", input.Insights.ActiveRatio, &th.ActiveRatio},
	}
	for _, r := range ratios {
		if r.value == nil {
			continue
		}
		if *r.value < 0.0 || *r.value > 1.0 {
			return fmt.Errorf("insight threshold %s must be between 0.0 and 1.0 (received %.2f)", r.name, *r.value)
		}
		*r.dest = *r.value
	}

	if input.Insights.TopLanguages != nil {
		if *input.Insights.TopLanguages < 1 {
			return fmt.Errorf("insight threshold top-languages must be at least 1 (received %d)", *input.Insights.TopLanguages)
		}
		th.TopLanguages = *input.Insights.TopLanguages
	}

	cfg.Thresholds = th
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
