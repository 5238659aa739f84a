package agg

import (
	"fmt"
	"testing"

	"github.com/huangsam/mcpcensus/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketStars(t *testing.T) {
	tests := []struct {
		stars    int
		expected schema.StarBucket
	}{
		{0, schema.Stars0To100},
		{100, schema.Stars0To100},
		{101, schema.Stars100To1K},
		{1000, schema.Stars100To1K},
		{1001, schema.Stars1KTo10K},
		{10000, schema.Stars1KTo10K},
		{10001, schema.StarsAbove10K},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.stars), func(t *testing.T) {
			assert.Equal(t, tt.expected, BucketStars(tt.stars))
		})
	}
}

func TestAggregatePopularity(t *testing.T) {
	snap := &schema.Snapshot{}
	for i := range 15 {
		id := fmt.Sprintf("s%02d", i)
		snap.Servers = append(snap.Servers, schema.ServerRecord{ID: id, Name: "server-" + id})
		snap.VcsInfo = append(snap.VcsInfo, schema.VcsInfoRecord{
			ServerID: id,
			Stars:    intPtr(i * 1000),
			Forks:    intPtr(i),
		})
	}
	snap.Servers = append(snap.Servers, schema.ServerRecord{ID: "null", Name: "no-stars"})
	snap.VcsInfo = append(snap.VcsInfo, schema.VcsInfoRecord{ServerID: "null", Watchers: intPtr(7)})

	pop := AggregatePopularity(snap)

	t.Run("top ten by stars", func(t *testing.T) {
		require.Len(t, pop.TopByStars, TopServersLimit)
		assert.Equal(t, "server-s14", pop.TopByStars[0].Name)
		assert.Equal(t, 14000, pop.TopByStars[0].Stars)
		assert.Equal(t, "server-s05", pop.TopByStars[9].Name)
		for i := 1; i < len(pop.TopByStars); i++ {
			assert.GreaterOrEqual(t, pop.TopByStars[i-1].Stars, pop.TopByStars[i].Stars)
		}
	})

	t.Run("histogram treats null stars as zero", func(t *testing.T) {
		// 0 and null, 1000, 2000..10000, 11000..14000
		assert.Equal(t, 2, pop.StarDistribution.UpTo100)
		assert.Equal(t, 1, pop.StarDistribution.UpTo1K)
		assert.Equal(t, 9, pop.StarDistribution.UpTo10K)
		assert.Equal(t, 4, pop.StarDistribution.Above10K)
		assert.Equal(t, 4, pop.StarDistribution.Count(schema.StarsAbove10K))
	})

	t.Run("fields are filtered independently", func(t *testing.T) {
		assert.InDelta(t, 7000.0, pop.Stars.Average, 1e-9)
		assert.InDelta(t, 7000.0, pop.Stars.Median, 1e-9)
		assert.InDelta(t, 7.0, pop.Forks.Average, 1e-9)
		assert.InDelta(t, 7.0, pop.Watchers.Average, 1e-9)
		assert.Zero(t, pop.Contributors.Average)
	})
}
