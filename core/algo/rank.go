package algo

import (
	"sort"

	"github.com/huangsam/mcpcensus/schema"
)

// RankByStars joins VCS info to servers by server ID, keeps rows with a star
// count and returns the top 'limit' entries by stars in descending order.
// Ties keep the VCS record order.
func RankByStars(snap *schema.Snapshot, limit int) []schema.TopServer {
	names := make(map[string]string, len(snap.Servers))
	for _, s := range snap.Servers {
		names[s.ID] = s.Name
	}

	ranked := make([]schema.TopServer, 0, len(snap.VcsInfo))
	for _, gh := range snap.VcsInfo {
		if gh.Stars == nil {
			continue
		}
		name, ok := names[gh.ServerID]
		if !ok {
			continue
		}
		ranked = append(ranked, schema.TopServer{Name: name, Stars: *gh.Stars, URL: gh.URL})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Stars > ranked[j].Stars
	})
	if limit >= 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}

// RankLanguages sorts languages by count in descending order and returns
// the top 'limit' entries. Ties keep first-seen order. The input is not modified.
func RankLanguages(langs []schema.LanguageCount, limit int) []schema.LanguageCount {
	ranked := make([]schema.LanguageCount, len(langs))
	copy(ranked, langs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if limit >= 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}

// SortCompleteness sorts rows by percentage in descending order, in place.
func SortCompleteness(rows []schema.CompletenessRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Percentage > rows[j].Percentage
	})
}
