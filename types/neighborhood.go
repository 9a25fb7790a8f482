package types

// NeighborhoodRecord is one row of the static community reference table.
// AreaCode is held as a normalized string so a code written "5", "05" or
// "5.0" joins against the same key the incidents carry.
type NeighborhoodRecord struct {
	Community string `json:"community"`
	AreaCode  string `json:"area_code"`
}
