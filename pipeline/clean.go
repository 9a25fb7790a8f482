package pipeline

import (
	"go-crimewatch/neighborhoods"
	"go-crimewatch/types"
	"sort"
	"time"
)

// MalformedRecord carries a record that failed normalization together
// with its error, so a bad row can be inspected by an operator instead of
// vanishing or aborting the batch.
type MalformedRecord struct {
	Record types.RawIncident `json:"record"`
	Err    error             `json:"-"`
	Reason string            `json:"reason"`
}

// Clean runs the full cleaning and enrichment pass over one fetched batch:
// normalize and derive every record, keep start <= instant < end, keep
// exact category matches, join against the community reference table on
// the normalized area-code key, drop rows without an incident id, and
// stable-sort ascending by instant (ties keep input order).
//
// Records whose timestamp parses against no known layout are reported in
// the malformed slice and excluded from the result; the rest of the batch
// still flows. An empty result with total 0 is a normal outcome, not an
// error.
func Clean(records []types.RawIncident, table *neighborhoods.Table, category string, start, end time.Time) ([]types.JoinedIncident, int, []MalformedRecord) {
	joined := make([]types.JoinedIncident, 0, len(records))
	var malformed []MalformedRecord

	for _, raw := range records {
		n, err := Normalize(raw)
		if err != nil {
			malformed = append(malformed, MalformedRecord{
				Record: raw,
				Err:    err,
				Reason: err.Error(),
			})
			continue
		}
		enriched := Derive(n)

		if enriched.Instant.Before(start) || !enriched.Instant.Before(end) {
			continue
		}
		if enriched.Raw.PrimaryType != category {
			continue
		}
		// Rows without a source identifier are join artifacts, not
		// incidents.
		if enriched.Raw.ID == "" {
			continue
		}

		row := types.JoinedIncident{EnrichedIncident: enriched}
		if table != nil {
			if rec, ok := table.ByAreaCode(enriched.Raw.CommunityArea); ok {
				row.AreaCode = rec.AreaCode
				row.Community = rec.Community
			}
		}
		joined = append(joined, row)
	}

	sort.SliceStable(joined, func(i, j int) bool {
		return joined[i].Instant.Before(joined[j].Instant)
	})

	return joined, len(joined), malformed
}
