package algo

import (
	"testing"

	"github.com/huangsam/mcpcensus/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

func TestRankByStars(t *testing.T) {
	snap := &schema.Snapshot{
		Servers: []schema.ServerRecord{
			{ID: "a", Name: "alpha"},
			{ID: "b", Name: "beta"},
			{ID: "c", Name: "gamma"},
			{ID: "d", Name: "delta"},
		},
		VcsInfo: []schema.VcsInfoRecord{
			{ServerID: "a", Stars: intPtr(10), URL: strPtr("https://github.com/x/alpha")},
			{ServerID: "b", Stars: nil},
			{ServerID: "c", Stars: intPtr(300)},
			{ServerID: "d", Stars: intPtr(10)},
			{ServerID: "orphan", Stars: intPtr(9999)},
		},
	}

	t.Run("drops null stars and orphans", func(t *testing.T) {
		top := RankByStars(snap, 10)
		require.Len(t, top, 3)
		assert.Equal(t, "gamma", top[0].Name)
		assert.Equal(t, 300, top[0].Stars)
		assert.Nil(t, top[0].URL)
	})

	t.Run("ties keep record order", func(t *testing.T) {
		top := RankByStars(snap, 10)
		assert.Equal(t, "alpha", top[1].Name)
		assert.Equal(t, "delta", top[2].Name)
		assert.Equal(t, "https://github.com/x/alpha", *top[1].URL)
	})

	t.Run("limit truncates", func(t *testing.T) {
		assert.Len(t, RankByStars(snap, 2), 2)
		assert.Empty(t, RankByStars(snap, 0))
	})
}

func TestRankLanguages(t *testing.T) {
	langs := []schema.LanguageCount{
		{Language: "Go", Count: 2},
		{Language: "TypeScript", Count: 5},
		{Language: "Python", Count: 2},
		{Language: "Rust", Count: 1},
	}

	top := RankLanguages(langs, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "TypeScript", top[0].Language)
	assert.Equal(t, "Go", top[1].Language)
	assert.Equal(t, "Python", top[2].Language)

	// input order is untouched
	assert.Equal(t, "Go", langs[0].Language)
	assert.Len(t, RankLanguages(langs, 10), 4)
}

func TestSortCompleteness(t *testing.T) {
	rows := []schema.CompletenessRow{
		{Field: "a", Percentage: 10},
		{Field: "b", Percentage: 90},
		{Field: "c", Percentage: 10},
		{Field: "d", Percentage: 100},
	}
	SortCompleteness(rows)

	fields := make([]string, len(rows))
	for i, r := range rows {
		fields[i] = r.Field
	}
	assert.Equal(t, []string{"d", "b", "a", "c"}, fields)
}
