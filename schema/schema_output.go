package schema

// EnrichedTopServer adds presentation data to a TopServer.
type EnrichedTopServer struct {
	Rank int `json:"rank" yaml:"rank"`
	TopServer
}

// EnrichedCompletenessRow adds presentation data to a CompletenessRow.
type EnrichedCompletenessRow struct {
	Rank  int    `json:"rank" yaml:"rank"`
	Label string `json:"label" yaml:"label"`
	CompletenessRow
}

// GetCompletenessLabel returns a plain text label for a completeness percentage.
func GetCompletenessLabel(percentage float64) string {
	switch {
	case percentage >= 80:
		return "High"
	case percentage >= 50:
		return "Medium"
	default:
		return "Low"
	}
}

// EnrichTopServers adds rank to a list of top servers.
func EnrichTopServers(servers []TopServer) []EnrichedTopServer {
	output := make([]EnrichedTopServer, len(servers))
	for i, s := range servers {
		output[i] = EnrichedTopServer{Rank: i + 1, TopServer: s}
	}
	return output
}

// EnrichCompleteness adds rank and label to a list of completeness rows.
func EnrichCompleteness(rows []CompletenessRow) []EnrichedCompletenessRow {
	output := make([]EnrichedCompletenessRow, len(rows))
	for i, r := range rows {
		output[i] = EnrichedCompletenessRow{
			Rank:            i + 1,
			Label:           GetCompletenessLabel(r.Percentage),
			CompletenessRow: r,
		}
	}
	return output
}
