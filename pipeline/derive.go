package pipeline

import "go-crimewatch/types"

// Half-open [From,To) hour buckets, evaluated in order. There is no
// overlap, so order only acts as a tie-break safeguard.
var timeOfDayBuckets = []struct {
	From, To int
	Label    string
}{
	{0, 4, "12am to 4am"},
	{4, 8, "4am to 8am"},
	{8, 12, "8am to 12pm"},
	{12, 16, "12pm to 4pm"},
	{16, 20, "4pm to 8pm"},
	{20, 24, "8pm to 12am"},
}

// BucketOrder returns the canonical time-of-day bucket labels in display
// order. Consumers of the time-of-day view order by this, since grouping
// order is not guaranteed to match.
func BucketOrder() []string {
	out := make([]string, 0, len(timeOfDayBuckets))
	for _, b := range timeOfDayBuckets {
		out = append(out, b.Label)
	}
	return out
}

// TimeOfDayLabel maps an hour in [0,24) to exactly one bucket label.
// Out-of-range hours return "".
func TimeOfDayLabel(hour int) string {
	for _, b := range timeOfDayBuckets {
		if hour >= b.From && hour < b.To {
			return b.Label
		}
	}
	return ""
}

// Derive computes the calendar fields and the time-of-day bucket from the
// normalized instant. Fields are read from the instant as-is.
func Derive(n types.NormalizedIncident) types.EnrichedIncident {
	return types.EnrichedIncident{
		NormalizedIncident: n,
		Hour:               n.Instant.Hour(),
		Day:                n.Instant.Day(),
		Month:              int(n.Instant.Month()),
		Year:               n.Instant.Year(),
		TimeOfDay:          TimeOfDayLabel(n.Instant.Hour()),
	}
}
