package pipeline

import (
	"testing"
	"time"

	"go-crimewatch/neighborhoods"
	"go-crimewatch/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func makeRaw(id, ts, category, area string) types.RawIncident {
	return types.RawIncident{
		ID:            id,
		CaseNumber:    "HX" + id,
		PrimaryType:   category,
		Date:          ts,
		CommunityArea: area,
	}
}

func hydeParkTable() *neighborhoods.Table {
	return neighborhoods.NewTable([]types.NeighborhoodRecord{
		{Community: "Hyde Park", AreaCode: "5"},
	})
}

func TestCleanSingleMatch(t *testing.T) {
	records := []types.RawIncident{
		makeRaw("100", "2023-06-15T14:30:00", "THEFT", "5"),
	}

	rows, total, malformed := Clean(records, hydeParkTable(), "THEFT", date("2023-01-01"), date("2024-01-01"))
	require.Empty(t, malformed)
	require.Equal(t, 1, total)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "12pm to 4pm", row.TimeOfDay)
	assert.Equal(t, 6, row.Month)
	assert.Equal(t, "Hyde Park", row.Community)
	assert.Equal(t, "5", row.AreaCode)
}

func TestCleanWindowExcludesIncident(t *testing.T) {
	records := []types.RawIncident{
		makeRaw("100", "2023-06-15T14:30:00", "THEFT", "5"),
	}

	rows, total, malformed := Clean(records, hydeParkTable(), "THEFT", date("2022-01-01"), date("2022-12-31"))
	assert.Empty(t, malformed)
	assert.Equal(t, 0, total)
	assert.Empty(t, rows)
}

func TestCleanWindowBoundaries(t *testing.T) {
	records := []types.RawIncident{
		makeRaw("at-start", "2023-01-01T00:00:00", "THEFT", "5"),
		makeRaw("at-end", "2024-01-01T00:00:00", "THEFT", "5"),
		makeRaw("just-before-end", "2023-12-31T23:59:59", "THEFT", "5"),
	}

	rows, total, _ := Clean(records, hydeParkTable(), "THEFT", date("2023-01-01"), date("2024-01-01"))
	require.Equal(t, 2, total)
	// inclusive lower bound, exclusive upper bound
	assert.Equal(t, "at-start", rows[0].Raw.ID)
	assert.Equal(t, "just-before-end", rows[1].Raw.ID)
}

func TestCleanMalformedRowSurfacesAndBatchContinues(t *testing.T) {
	records := []types.RawIncident{
		makeRaw("good-1", "2023-03-01T08:00:00", "THEFT", "5"),
		makeRaw("bad", "not-a-date", "THEFT", "5"),
		makeRaw("good-2", "2023-04-01T21:00:00", "THEFT", "5"),
	}

	rows, total, malformed := Clean(records, hydeParkTable(), "THEFT", date("2023-01-01"), date("2024-01-01"))
	require.Len(t, malformed, 1)
	assert.Equal(t, "bad", malformed[0].Record.ID)
	assert.Error(t, malformed[0].Err)
	assert.NotEmpty(t, malformed[0].Reason)

	require.Equal(t, 2, total)
	assert.Equal(t, "good-1", rows[0].Raw.ID)
	assert.Equal(t, "good-2", rows[1].Raw.ID)
}

func TestCleanCategoryMatchIsExact(t *testing.T) {
	records := []types.RawIncident{
		makeRaw("1", "2023-06-15T14:30:00", "THEFT", "5"),
		makeRaw("2", "2023-06-15T14:30:00", "theft", "5"),
		makeRaw("3", "2023-06-15T14:30:00", "MOTOR VEHICLE THEFT", "5"),
	}

	rows, total, _ := Clean(records, hydeParkTable(), "THEFT", date("2023-01-01"), date("2024-01-01"))
	require.Equal(t, 1, total)
	assert.Equal(t, "1", rows[0].Raw.ID)
}

func TestCleanZeroCategoryMatchesIsNotAnError(t *testing.T) {
	records := []types.RawIncident{
		makeRaw("1", "2023-06-15T14:30:00", "THEFT", "5"),
	}

	rows, total, malformed := Clean(records, hydeParkTable(), "HOMICIDE", date("2023-01-01"), date("2024-01-01"))
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	assert.Equal(t, 0, total)
	assert.Empty(t, malformed)
}

func TestCleanJoinKeyTypeCoercion(t *testing.T) {
	// A numeric-looking area code joins regardless of representation.
	records := []types.RawIncident{
		makeRaw("1", "2023-06-15T14:30:00", "THEFT", "5"),
		makeRaw("2", "2023-06-16T14:30:00", "THEFT", "5.0"),
		makeRaw("3", "2023-06-17T14:30:00", "THEFT", " 5"),
		makeRaw("4", "2023-06-18T14:30:00", "THEFT", "05"),
	}

	rows, total, _ := Clean(records, hydeParkTable(), "THEFT", date("2023-01-01"), date("2024-01-01"))
	require.Equal(t, 4, total)
	for _, row := range rows {
		assert.Equal(t, "Hyde Park", row.Community, "incident %s", row.Raw.ID)
	}
}

func TestCleanUnmatchedAreaSurvivesWithoutNeighborhood(t *testing.T) {
	records := []types.RawIncident{
		makeRaw("1", "2023-06-15T14:30:00", "THEFT", "99"),
	}

	rows, total, _ := Clean(records, hydeParkTable(), "THEFT", date("2023-01-01"), date("2024-01-01"))
	require.Equal(t, 1, total)
	assert.Empty(t, rows[0].Community)
	assert.Empty(t, rows[0].AreaCode)
}

func TestCleanDropsRowsWithoutID(t *testing.T) {
	records := []types.RawIncident{
		makeRaw("", "2023-06-15T14:30:00", "THEFT", "5"),
		makeRaw("1", "2023-06-16T14:30:00", "THEFT", "5"),
	}

	rows, total, _ := Clean(records, hydeParkTable(), "THEFT", date("2023-01-01"), date("2024-01-01"))
	require.Equal(t, 1, total)
	assert.Equal(t, "1", rows[0].Raw.ID)
}

func TestCleanSortsAscendingAndStable(t *testing.T) {
	// Source order is date DESC; output must be ascending with ties
	// keeping input order.
	records := []types.RawIncident{
		makeRaw("late", "2023-09-01T10:00:00", "THEFT", "5"),
		makeRaw("tie-a", "2023-05-01T10:00:00", "THEFT", "5"),
		makeRaw("tie-b", "2023-05-01T10:00:00", "THEFT", "5"),
		makeRaw("early", "2023-02-01T10:00:00", "THEFT", "5"),
	}

	rows, _, _ := Clean(records, hydeParkTable(), "THEFT", date("2023-01-01"), date("2024-01-01"))
	require.Len(t, rows, 4)
	assert.Equal(t, "early", rows[0].Raw.ID)
	assert.Equal(t, "tie-a", rows[1].Raw.ID)
	assert.Equal(t, "tie-b", rows[2].Raw.ID)
	assert.Equal(t, "late", rows[3].Raw.ID)

	for i := 1; i < len(rows); i++ {
		assert.False(t, rows[i].Instant.Before(rows[i-1].Instant))
	}
}

func TestCleanDeterministic(t *testing.T) {
	records := []types.RawIncident{
		makeRaw("b", "2023-05-01T10:00:00", "THEFT", "5"),
		makeRaw("a", "2023-05-01T10:00:00", "THEFT", "5"),
		makeRaw("c", "2023-04-01T10:00:00", "THEFT", "5"),
	}

	first, firstTotal, _ := Clean(records, hydeParkTable(), "THEFT", date("2023-01-01"), date("2024-01-01"))
	second, secondTotal, _ := Clean(records, hydeParkTable(), "THEFT", date("2023-01-01"), date("2024-01-01"))

	require.Equal(t, firstTotal, secondTotal)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Raw.ID, second[i].Raw.ID)
	}
}

func TestCleanNilTable(t *testing.T) {
	records := []types.RawIncident{
		makeRaw("1", "2023-06-15T14:30:00", "THEFT", "5"),
	}

	rows, total, _ := Clean(records, nil, "THEFT", date("2023-01-01"), date("2024-01-01"))
	require.Equal(t, 1, total)
	assert.Empty(t, rows[0].Community)
}
