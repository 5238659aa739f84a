// Package agg has aggregation logic for MCP server catalog snapshots.
package agg

import (
	"github.com/huangsam/mcpcensus/core/algo"
	"github.com/huangsam/mcpcensus/schema"
)

// AggregateConfigs counts install configs, VCS info and tools across the catalog.
// The no-config count subtracts package and container configs from the total
// and can go negative when a server has both.
func AggregateConfigs(snap *schema.Snapshot) schema.ConfigCoverage {
	total := len(snap.Servers)
	withPackage := len(snap.PackageConfigs)
	withContainer := len(snap.ContainerConfigs)
	withNoConfig := total - withPackage - withContainer

	return schema.ConfigCoverage{
		TotalServers:        total,
		WithPackageConfig:   withPackage,
		WithContainerConfig: withContainer,
		WithNoConfig:        withNoConfig,
		WithVcsInfo:         len(snap.VcsInfo),
		WithTools:           distinctToolServers(snap.Tools),
		TotalTools:          len(snap.Tools),
		PackagePercentage:   algo.Percentage(withPackage, total),
		ContainerPercentage: algo.Percentage(withContainer, total),
		NoConfigPercentage:  algo.Percentage(withNoConfig, total),
	}
}

// distinctToolServers returns how many servers define at least one tool.
func distinctToolServers(tools []schema.ToolRecord) int {
	seen := make(map[string]struct{}, len(tools))
	for _, t := range tools {
		seen[t.ServerID] = struct{}{}
	}
	return len(seen)
}
