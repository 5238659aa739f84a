package agg

import "github.com/huangsam/mcpcensus/schema"

// AggregateQuality counts hygiene flags set to exactly 1 and builds the
// primary language histogram in first-seen order.
func AggregateQuality(records []schema.VcsInfoRecord) schema.QualitySummary {
	var summary schema.QualitySummary
	index := make(map[string]int)

	for _, r := range records {
		if schema.IsFlagSet(r.HasReadme) {
			summary.HasReadme++
		}
		if schema.IsFlagSet(r.HasLicense) {
			summary.HasLicense++
		}
		if schema.IsFlagSet(r.HasContributing) {
			summary.HasContributing++
		}
		if schema.IsFlagSet(r.HasCodeOfConduct) {
			summary.HasCodeOfConduct++
		}
		if schema.IsFlagSet(r.IsArchived) {
			summary.IsArchived++
		}
		if schema.IsFlagSet(r.IsDisabled) {
			summary.IsDisabled++
		}
		if schema.IsFlagSet(r.IsFork) {
			summary.IsFork++
		}

		if !schema.HasText(r.PrimaryLanguage) {
			continue
		}
		lang := *r.PrimaryLanguage
		if i, ok := index[lang]; ok {
			summary.Languages[i].Count++
			continue
		}
		index[lang] = len(summary.Languages)
		summary.Languages = append(summary.Languages, schema.LanguageCount{Language: lang, Count: 1})
	}

	if summary.Languages == nil {
		summary.Languages = []schema.LanguageCount{}
	}
	return summary
}
