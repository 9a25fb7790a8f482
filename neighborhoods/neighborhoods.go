package neighborhoods

import (
	"encoding/csv"
	"fmt"
	"go-crimewatch/types"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// NotFoundError means a community name selected by the caller is missing
// from the reference table. Names are sourced from this same table, so a
// miss indicates reference-data drift rather than user error.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("community %q not found in reference table", e.Name)
}

// Table is the community reference set, loaded once at startup and
// read-only afterwards.
type Table struct {
	records []types.NeighborhoodRecord
	byCode  map[string]types.NeighborhoodRecord
}

// NewTable builds a Table from reference records, normalizing every area
// code into its string join key. The first record wins on duplicate codes.
func NewTable(records []types.NeighborhoodRecord) *Table {
	t := &Table{
		records: make([]types.NeighborhoodRecord, 0, len(records)),
		byCode:  make(map[string]types.NeighborhoodRecord, len(records)),
	}
	for _, rec := range records {
		rec.AreaCode = NormalizeAreaKey(rec.AreaCode)
		t.records = append(t.records, rec)
		if _, exists := t.byCode[rec.AreaCode]; !exists {
			t.byCode[rec.AreaCode] = rec
		}
	}
	return t
}

// LoadCSV reads the community reference table from a CSV file with a
// header row and (Community, Community Area) columns.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening communities file: %w", err)
	}
	defer f.Close()

	csvReader := csv.NewReader(f)

	// skip the header
	if _, err := csvReader.Read(); err != nil {
		return nil, fmt.Errorf("reading communities header: %w", err)
	}

	var records []types.NeighborhoodRecord
	for {
		rec, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading communities row: %w", err)
		}
		if len(rec) != 2 {
			log.Printf("Skipping communities row with %d fields, expected 2: %v", len(rec), rec)
			continue
		}
		records = append(records, types.NeighborhoodRecord{
			Community: strings.TrimSpace(rec[0]),
			AreaCode:  rec[1],
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("communities file %s has no data rows", path)
	}
	return NewTable(records), nil
}

// ResolveAreaCode returns the area code of the first record whose display
// name exactly equals name.
func (t *Table) ResolveAreaCode(name string) (string, error) {
	for _, rec := range t.records {
		if rec.Community == name {
			return rec.AreaCode, nil
		}
	}
	return "", &NotFoundError{Name: name}
}

// ByAreaCode looks a record up by its normalized area code.
func (t *Table) ByAreaCode(code string) (types.NeighborhoodRecord, bool) {
	rec, ok := t.byCode[NormalizeAreaKey(code)]
	return rec, ok
}

// Records returns the reference rows in table order.
func (t *Table) Records() []types.NeighborhoodRecord {
	return t.records
}

// NormalizeAreaKey collapses the representations an area code shows up in
// ("5", " 5", "05", "5.0") into one string join key. Values that are not
// numeric-looking are only trimmed.
func NormalizeAreaKey(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}
