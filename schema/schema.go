// Package schema has configs, models and global variables for all parts of mcpcensus.
package schema

// ServerRecord is one cataloged MCP server from the servers table.
type ServerRecord struct {
	ID               string  `json:"id"`
	Slug             string  `json:"slug"`
	Name             string  `json:"name"`
	DisplayName      *string `json:"display_name"`
	Tagline          *string `json:"tagline"`
	ShortDescription *string `json:"short_description"`
	LogoURL          *string `json:"logo_url"`
	HomepageURL      *string `json:"homepage_url"`
	CreatorName      *string `json:"creator_name"`
	InstallCount     int     `json:"install_count"`
	FavoriteCount    int     `json:"favorite_count"`
	ToolsCount       int     `json:"tools_count"`
	Status           string  `json:"status"`
	CreatedAt        *string `json:"created_at"`
	UpdatedAt        *string `json:"updated_at"`
}

// VcsInfoRecord is the source-control metadata linked to at most one server.
// Flags are stored as 0/1 integers and count as set only when equal to 1.
type VcsInfoRecord struct {
	ID                string   `json:"id"`
	ServerID          string   `json:"server_id"`
	URL               *string  `json:"github_url"`
	Stars             *int     `json:"github_stars"`
	Forks             *int     `json:"github_forks"`
	Watchers          *int     `json:"github_watchers"`
	ContributorsCount *int     `json:"contributors_count"`
	LastCommit        *string  `json:"github_last_commit"`
	CommitFrequency   *float64 `json:"commit_frequency"`
	HealthScore       *int     `json:"github_health_score"`
	PrimaryLanguage   *string  `json:"primary_language"`
	License           *string  `json:"license"`
	HasReadme         *int     `json:"has_readme"`
	HasLicense        *int     `json:"has_license"`
	HasContributing   *int     `json:"has_contributing"`
	HasCodeOfConduct  *int     `json:"has_code_of_conduct"`
	IsArchived        *int     `json:"is_archived"`
	IsDisabled        *int     `json:"is_disabled"`
	IsFork            *int     `json:"is_fork"`
}

// PackageRegistryInfoRecord is the npm registry metadata linked to at most one server.
type PackageRegistryInfoRecord struct {
	ID               string `json:"id"`
	ServerID         string `json:"server_id"`
	Package          string `json:"npm_package"`
	Version          string `json:"npm_version"`
	DownloadsWeekly  *int   `json:"npm_downloads_weekly"`
	DownloadsMonthly *int   `json:"npm_downloads_monthly"`
}

// PackageInstallConfigRecord is an npm-based install config. Only its presence is measured.
type PackageInstallConfigRecord struct {
	ID       string `json:"id"`
	ServerID string `json:"server_id"`
	Command  string `json:"command"`
}

// ContainerInstallConfigRecord is a Docker-based install config. Only its presence is measured.
type ContainerInstallConfigRecord struct {
	ID       string `json:"id"`
	ServerID string `json:"server_id"`
	Image    string `json:"docker_image"`
}

// ToolRecord is one MCP tool exposed by a server.
type ToolRecord struct {
	ID       string `json:"id"`
	ServerID string `json:"server_id"`
	Name     string `json:"name"`
}

// Snapshot holds every record set read from the catalog for a single run.
type Snapshot struct {
	Servers          []ServerRecord
	VcsInfo          []VcsInfoRecord
	PackageInfo      []PackageRegistryInfoRecord
	PackageConfigs   []PackageInstallConfigRecord
	ContainerConfigs []ContainerInstallConfigRecord
	Tools            []ToolRecord
}

// IsFlagSet reports whether a 0/1 flag column holds exactly 1.
func IsFlagSet(flag *int) bool {
	return flag != nil && *flag == 1
}

// HasText reports whether a nullable text column holds a non-empty value.
func HasText(s *string) bool {
	return s != nil && *s != ""
}
