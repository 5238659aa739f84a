package agg

import "github.com/huangsam/mcpcensus/schema"

// ClassifyHealth maps a nullable health score to its tier.
func ClassifyHealth(score *int) schema.HealthTier {
	switch {
	case score == nil:
		return schema.UnknownTier
	case *score >= 80:
		return schema.ExcellentTier
	case *score >= 60:
		return schema.GoodTier
	case *score >= 40:
		return schema.MediumTier
	default:
		return schema.PoorTier
	}
}

// AggregateHealth partitions VCS records by health tier.
func AggregateHealth(records []schema.VcsInfoRecord) schema.HealthDistribution {
	var dist schema.HealthDistribution
	for _, r := range records {
		switch ClassifyHealth(r.HealthScore) {
		case schema.ExcellentTier:
			dist.Excellent++
		case schema.GoodTier:
			dist.Good++
		case schema.MediumTier:
			dist.Medium++
		case schema.PoorTier:
			dist.Poor++
		default:
			dist.Unknown++
		}
	}
	return dist
}
