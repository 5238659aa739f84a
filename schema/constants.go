package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents a database backend for the catalog or the history store.
	DatabaseBackend string

	// HealthTier represents a bucket of the repository health score.
	HealthTier string

	// StarBucket represents a bucket of the star-count histogram.
	StarBucket string

	// InsightLevel represents the tone of an insight line.
	InsightLevel string

	// InsightRule identifies the rule that produced an insight.
	InsightRule string
)

// All output modes supported.
const (
	TextOut     OutputMode = "text" // default
	JSONOut     OutputMode = "json"
	YAMLOut     OutputMode = "yaml"
	CSVOut      OutputMode = "csv"
	MarkdownOut OutputMode = "markdown"
	HTMLOut     OutputMode = "html"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Health tiers, evaluated greatest lower bound first.
const (
	UnknownTier   HealthTier = "unknown"
	ExcellentTier HealthTier = "excellent" // >= 80
	GoodTier      HealthTier = "good"      // >= 60
	MediumTier    HealthTier = "medium"    // >= 40
	PoorTier      HealthTier = "poor"      // < 40
)

// Star-count buckets. Each upper edge is inclusive.
const (
	Stars0To100   StarBucket = "0-100"
	Stars100To1K  StarBucket = "100-1000"
	Stars1KTo10K  StarBucket = "1000-10000"
	StarsAbove10K StarBucket = ">10000"
)

// Insight levels.
const (
	WarningLevel  InsightLevel = "warning"
	PositiveLevel InsightLevel = "positive"
	InfoLevel     InsightLevel = "info"
)

// Insight rules in evaluation order.
const (
	NoConfigRule        InsightRule = "no_config"
	PoorHealthRule      InsightRule = "poor_health"
	StaleRule           InsightRule = "stale"
	ArchivedRule        InsightRule = "archived"
	LicenseRule         InsightRule = "license"
	ExcellentHealthRule InsightRule = "excellent_health"
	ActiveRule          InsightRule = "active"
	LanguagesRule       InsightRule = "languages"
)

// Catalog table names.
const (
	ServersTable          = "servers"
	VcsInfoTable          = "github_info"
	PackageInfoTable      = "npm_info"
	PackageConfigTable    = "mcp_config_npm"
	ContainerConfigTable  = "mcp_config_docker"
	ToolsTable            = "tools"
	DefaultCatalogDBPath  = "data/mcp_servers.db"
	DefaultDocumentDir    = "reports"
	DocumentFilePrefix    = "db-analysis-"
	DocumentFileExtension = ".md"
)

// AllCatalogTables lists the catalog tables in load order.
var AllCatalogTables = []string{
	ServersTable,
	VcsInfoTable,
	PackageInfoTable,
	PackageConfigTable,
	ContainerConfigTable,
	ToolsTable,
}

// AllHealthTiers lists the health tiers in display order.
var AllHealthTiers = []HealthTier{ExcellentTier, GoodTier, MediumTier, PoorTier, UnknownTier}

// AllStarBuckets lists the star buckets in ascending order.
var AllStarBuckets = []StarBucket{Stars0To100, Stars100To1K, Stars1KTo10K, StarsAbove10K}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:     {},
	JSONOut:     {},
	YAMLOut:     {},
	CSVOut:      {},
	MarkdownOut: {},
	HTMLOut:     {},
}

// ValidCatalogBackends lists the backends a catalog can be read from.
var ValidCatalogBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}

// ValidHistoryBackends lists the backends the history store can use.
var ValidHistoryBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
