package pipeline

import (
	"fmt"
	"go-crimewatch/types"
	"strconv"
	"strings"
	"time"
)

// The source mixes date formats: the SODA API emits floating ISO
// timestamps (with or without milliseconds) while CSV exports of the same
// dataset carry the portal's legacy 12-hour form. Parsing tries each
// layout in order and keeps the instant exactly as written, no timezone
// conversion.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"01/02/2006 03:04:05 PM",
	"2006-01-02 15:04:05",
}

// MalformedTimestampError reports a record whose date field matches no
// known layout. The record is surfaced, never silently coerced or dropped.
type MalformedTimestampError struct {
	ID  string
	Raw string
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("incident %s: timestamp %q matches no known format", e.ID, e.Raw)
}

// Normalize parses a raw incident into its typed form. It is a pure
// per-record transform: it never filters, and a bad timestamp comes back
// as a *MalformedTimestampError for the caller to handle.
func Normalize(raw types.RawIncident) (types.NormalizedIncident, error) {
	instant, err := parseTimestamp(raw.Date)
	if err != nil {
		return types.NormalizedIncident{}, &MalformedTimestampError{ID: raw.ID, Raw: raw.Date}
	}

	// The arrest flag is delivered as text ("true"/"false"); anything
	// unrecognized counts as no arrest.
	arrest, _ := strconv.ParseBool(strings.ToLower(strings.TrimSpace(raw.Arrest)))

	return types.NormalizedIncident{
		Raw:     raw,
		Instant: instant,
		Arrest:  arrest,
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no layout matched %q", s)
}
