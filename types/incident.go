package types

import "time"

// RawIncident is one row exactly as the SODA endpoint delivers it.
// Every field arrives as text regardless of its logical type, including
// the arrest flag and the coordinates.
type RawIncident struct {
	ID                  string `json:"id"`
	CaseNumber          string `json:"case_number"`
	Block               string `json:"block"`
	PrimaryType         string `json:"primary_type"`
	Description         string `json:"description"`
	LocationDescription string `json:"location_description"`
	Arrest              string `json:"arrest"`
	Date                string `json:"date"`
	CommunityArea       string `json:"community_area"`
	FBICode             string `json:"fbi_code"`
	Year                string `json:"year"`
	Latitude            string `json:"latitude"`
	Longitude           string `json:"longitude"`
}

// NormalizedIncident is a RawIncident after the typed parse step: the date
// string becomes an absolute instant and the arrest flag becomes a bool.
type NormalizedIncident struct {
	Raw     RawIncident `json:"raw"`
	Instant time.Time   `json:"instant"`
	Arrest  bool        `json:"arrest"`
}

// EnrichedIncident adds the calendar fields and the time-of-day bucket
// derived from the instant.
type EnrichedIncident struct {
	NormalizedIncident
	Hour      int    `json:"hour"`
	Day       int    `json:"day"`
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	TimeOfDay string `json:"time_of_day"`
}

// JoinedIncident is an EnrichedIncident merged with its community-area
// reference row. AreaCode and Community stay empty when the incident's
// area code has no match in the reference table; the incident itself
// still survives the join.
type JoinedIncident struct {
	EnrichedIncident
	AreaCode  string `json:"area_code"`
	Community string `json:"community"`
}
