package agg

import (
	"github.com/huangsam/mcpcensus/core/algo"
	"github.com/huangsam/mcpcensus/schema"
)

// TopServersLimit is the size of the ranking by stars in a report.
const TopServersLimit = 10

// BucketStars maps a star count to its histogram bucket. Upper edges are inclusive.
func BucketStars(stars int) schema.StarBucket {
	switch {
	case stars <= 100:
		return schema.Stars0To100
	case stars <= 1000:
		return schema.Stars100To1K
	case stars <= 10000:
		return schema.Stars1KTo10K
	default:
		return schema.StarsAbove10K
	}
}

// summarize returns the average and median of the present values of one column.
func summarize(records []schema.VcsInfoRecord, field func(*schema.VcsInfoRecord) *int) schema.FieldSummary {
	values := algo.PresentInts(records, field)
	return schema.FieldSummary{Average: algo.Average(values), Median: algo.Median(values)}
}

// AggregatePopularity summarizes stars, forks, watchers and contributors,
// builds the star histogram and ranks the top servers by stars.
func AggregatePopularity(snap *schema.Snapshot) schema.PopularitySummary {
	records := snap.VcsInfo

	var dist schema.StarDistribution
	for _, r := range records {
		stars := 0
		if r.Stars != nil {
			stars = *r.Stars
		}
		switch BucketStars(stars) {
		case schema.Stars0To100:
			dist.UpTo100++
		case schema.Stars100To1K:
			dist.UpTo1K++
		case schema.Stars1KTo10K:
			dist.UpTo10K++
		default:
			dist.Above10K++
		}
	}

	return schema.PopularitySummary{
		Stars:            summarize(records, func(r *schema.VcsInfoRecord) *int { return r.Stars }),
		Forks:            summarize(records, func(r *schema.VcsInfoRecord) *int { return r.Forks }),
		Watchers:         summarize(records, func(r *schema.VcsInfoRecord) *int { return r.Watchers }),
		Contributors:     summarize(records, func(r *schema.VcsInfoRecord) *int { return r.ContributorsCount }),
		StarDistribution: dist,
		TopByStars:       algo.RankByStars(snap, TopServersLimit),
	}
}
