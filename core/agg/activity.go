package agg

import (
	"strings"
	"time"

	"github.com/huangsam/mcpcensus/core/algo"
	"github.com/huangsam/mcpcensus/schema"
)

// commitLayouts are tried in order when parsing last-commit timestamps.
var commitLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	time.DateOnly,
}

// ParseCommitTime parses a stored last-commit value. Values without a zone are read as UTC.
func ParseCommitTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range commitLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DaysSince returns the whole days between t and now, truncated toward zero.
func DaysSince(now, t time.Time) int {
	return int(now.Sub(t).Hours() / 24)
}

// AggregateActivity buckets VCS records by days since their last commit
// and summarizes commit frequency over records that report one.
func AggregateActivity(records []schema.VcsInfoRecord, now time.Time) schema.ActivitySummary {
	var summary schema.ActivitySummary
	frequencies := make([]float64, 0, len(records))

	for _, r := range records {
		if r.CommitFrequency != nil {
			frequencies = append(frequencies, *r.CommitFrequency)
		}

		if r.LastCommit == nil {
			summary.NoData++
			continue
		}
		committed, ok := ParseCommitTime(*r.LastCommit)
		if !ok {
			summary.NoData++
			continue
		}

		switch days := DaysSince(now, committed); {
		case days < 30:
			summary.LessThan1Month++
		case days < 90:
			summary.LessThan3Months++
		case days < 180:
			summary.LessThan6Months++
		default:
			summary.MoreThan6Months++
		}
	}

	summary.AvgCommitFrequency = algo.Average(frequencies)
	summary.MedianCommitFrequency = algo.Median(frequencies)
	return summary
}
