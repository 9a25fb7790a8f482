package pipeline

import (
	"testing"
	"time"

	"go-crimewatch/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeOfDayLabelTotalAndExclusive(t *testing.T) {
	// Every hour in [0,24) maps to exactly one of the six buckets.
	seen := make(map[string]int)
	for hour := 0; hour < 24; hour++ {
		label := TimeOfDayLabel(hour)
		require.NotEmpty(t, label, "hour %d has no bucket", hour)
		seen[label]++
	}
	assert.Len(t, seen, 6)
	for label, hours := range seen {
		assert.Equal(t, 4, hours, "bucket %q covers %d hours", label, hours)
	}
}

func TestTimeOfDayLabelBoundaries(t *testing.T) {
	// Boundary hours belong to the bucket that starts at that hour.
	cases := map[int]string{
		0:  "12am to 4am",
		4:  "4am to 8am",
		8:  "8am to 12pm",
		12: "12pm to 4pm",
		16: "4pm to 8pm",
		20: "8pm to 12am",
		23: "8pm to 12am",
	}
	for hour, want := range cases {
		assert.Equal(t, want, TimeOfDayLabel(hour), "hour %d", hour)
	}
}

func TestTimeOfDayLabelOutOfRange(t *testing.T) {
	assert.Empty(t, TimeOfDayLabel(-1))
	assert.Empty(t, TimeOfDayLabel(24))
}

func TestBucketOrder(t *testing.T) {
	assert.Equal(t, []string{
		"12am to 4am", "4am to 8am", "8am to 12pm",
		"12pm to 4pm", "4pm to 8pm", "8pm to 12am",
	}, BucketOrder())
}

func TestDeriveCalendarFields(t *testing.T) {
	n := types.NormalizedIncident{
		Raw:     types.RawIncident{ID: "1"},
		Instant: time.Date(2023, 6, 15, 14, 30, 0, 0, time.UTC),
	}

	e := Derive(n)
	assert.Equal(t, 14, e.Hour)
	assert.Equal(t, 15, e.Day)
	assert.Equal(t, 6, e.Month)
	assert.Equal(t, 2023, e.Year)
	assert.Equal(t, "12pm to 4pm", e.TimeOfDay)
}
