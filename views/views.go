// Package views holds the read-only projections behind each dashboard
// chart. Every view is a pure function over a cleaned []JoinedIncident
// and returns plain rows ready for JSON hand-off to the front end.
package views

import (
	"go-crimewatch/pipeline"
	"go-crimewatch/types"
	"math"
	"sort"
	"strconv"
)

type MonthlyCount struct {
	Month int `json:"month"`
	Count int `json:"count"`
}

// MonthlyCounts groups incidents by month. Months absent from the data
// are omitted, not zero-filled; rows come back in ascending month order.
func MonthlyCounts(rows []types.JoinedIncident) []MonthlyCount {
	counts := make(map[int]int)
	for _, r := range rows {
		counts[r.Month]++
	}

	out := make([]MonthlyCount, 0, len(counts))
	for month, count := range counts {
		out = append(out, MonthlyCount{Month: month, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

type ArrestRatioRow struct {
	Arrest     bool    `json:"arrest"`
	Count      int     `json:"count"`
	Ratio      float64 `json:"ratio"`
	Percentage float64 `json:"percentage"`
}

// ArrestRatio counts arrests against non-arrests. Percentages are the
// ratio rounded to two decimal places; only arrest values present in the
// data produce a row. An empty input yields no rows.
func ArrestRatio(rows []types.JoinedIncident) []ArrestRatioRow {
	var arrested, released int
	for _, r := range rows {
		if r.Arrest {
			arrested++
		} else {
			released++
		}
	}
	total := arrested + released
	if total == 0 {
		return []ArrestRatioRow{}
	}

	out := make([]ArrestRatioRow, 0, 2)
	for _, v := range []struct {
		arrest bool
		count  int
	}{{true, arrested}, {false, released}} {
		if v.count == 0 {
			continue
		}
		ratio := float64(v.count) / float64(total)
		out = append(out, ArrestRatioRow{
			Arrest:     v.arrest,
			Count:      v.count,
			Ratio:      ratio,
			Percentage: round2(ratio * 100),
		})
	}
	return out
}

type TimeOfDayCount struct {
	TimeOfDay string `json:"time_of_day"`
	Count     int    `json:"count"`
}

// TimeOfDayCounts groups incidents by their time-of-day bucket, emitted
// in the canonical bucket order. Buckets with no incidents are omitted.
func TimeOfDayCounts(rows []types.JoinedIncident) []TimeOfDayCount {
	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.TimeOfDay]++
	}

	out := make([]TimeOfDayCount, 0, len(counts))
	for _, label := range pipeline.BucketOrder() {
		if c, ok := counts[label]; ok {
			out = append(out, TimeOfDayCount{TimeOfDay: label, Count: c})
		}
	}
	return out
}

type LocationShare struct {
	LocationDescription string  `json:"location_description"`
	Count               int     `json:"count"`
	Share               float64 `json:"share"`
}

// LocationBreakdown counts incidents per distinct location description
// with each value's share of the total, ordered by count descending and
// name ascending on ties for deterministic output.
func LocationBreakdown(rows []types.JoinedIncident) []LocationShare {
	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.Raw.LocationDescription]++
	}
	total := len(rows)

	out := make([]LocationShare, 0, len(counts))
	for loc, count := range counts {
		out = append(out, LocationShare{
			LocationDescription: loc,
			Count:               count,
			Share:               float64(count) / float64(total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].LocationDescription < out[j].LocationDescription
	})
	return out
}

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinates extracts the valid (lat, lon) pairs for the map. Rows with
// a missing or unparseable coordinate are excluded per row; geographic
// plotting is best-effort.
func Coordinates(rows []types.JoinedIncident) []Coordinate {
	out := make([]Coordinate, 0, len(rows))
	for _, r := range rows {
		lat, err := strconv.ParseFloat(r.Raw.Latitude, 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(r.Raw.Longitude, 64)
		if err != nil {
			continue
		}
		out = append(out, Coordinate{Latitude: lat, Longitude: lon})
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
