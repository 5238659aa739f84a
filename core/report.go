package core

import (
	"context"
	"sync"
	"time"

	"github.com/huangsam/mcpcensus/core/agg"
	"github.com/huangsam/mcpcensus/core/insight"
	"github.com/huangsam/mcpcensus/schema"
)

// ReportOptions controls how a report is built from a snapshot.
type ReportOptions struct {
	Now        time.Time // Reference time for activity buckets and GeneratedAt
	Thresholds schema.InsightThresholds
}

// BuildReport runs every aggregator over the snapshot and derives the insights.
// The aggregators only read the snapshot, so they run in parallel.
func BuildReport(ctx context.Context, snap *schema.Snapshot, opts ReportOptions) (*schema.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if snap == nil {
		snap = &schema.Snapshot{}
	}
	now := opts.Now.UTC()

	report := &schema.Report{GeneratedAt: now}

	var wg sync.WaitGroup
	wg.Go(func() { report.Configs = agg.AggregateConfigs(snap) })
	wg.Go(func() { report.Health = agg.AggregateHealth(snap.VcsInfo) })
	wg.Go(func() { report.Activity = agg.AggregateActivity(snap.VcsInfo, now) })
	wg.Go(func() { report.Popularity = agg.AggregatePopularity(snap) })
	wg.Go(func() { report.Quality = agg.AggregateQuality(snap.VcsInfo) })
	wg.Go(func() { report.Completeness = agg.AggregateCompleteness(snap) })
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.Insights = insight.Generate(insight.Inputs{
		Configs:  report.Configs,
		Health:   report.Health,
		Activity: report.Activity,
		Quality:  report.Quality,
	}, opts.Thresholds)

	return report, nil
}
