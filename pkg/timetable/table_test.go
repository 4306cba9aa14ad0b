package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw ...string) []time.Time {
	t.Helper()
	parsed, err := ParseTimestamps(raw)
	require.NoError(t, err)
	return parsed
}

func TestNewRejectsMisalignedColumn(t *testing.T) {
	ts := mustParse(t, "2016-08-01T00:00:10Z", "2016-08-01T00:00:11Z")

	_, err := New(ts, Column{Name: "a", Values: []float64{1}})
	assert.Error(t, err)
}

func TestParseTimestampsReportsBadInput(t *testing.T) {
	_, err := ParseTimestamps([]string{"2016-08-01T00:00:10Z", "not-a-timestamp"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "index 1")
}

func TestAppendAlignedSameGrid(t *testing.T) {
	ts := mustParse(t, "2020-01-01T00:00:00Z")
	table, err := New(ts, Column{Name: "first", Values: []float64{1.5}})
	require.NoError(t, err)

	err = table.AppendAligned(Column{Name: "second", Values: []float64{2.5}})
	require.NoError(t, err)

	assert.Equal(t, 1, table.NumRows())
	assert.Equal(t, []string{"first", "second"}, table.ColumnNames())
	second, ok := table.Column("second")
	require.True(t, ok)
	assert.Equal(t, []float64{2.5}, second.Values)
}

func TestAppendAlignedRejectsDifferentGrid(t *testing.T) {
	ts := mustParse(t, "2020-01-01T00:00:00Z", "2020-01-01T00:01:00Z")
	table, err := New(ts, Column{Name: "first", Values: []float64{1, 2}})
	require.NoError(t, err)

	err = table.AppendAligned(Column{Name: "second", Values: []float64{3}})
	assert.Error(t, err)
	assert.Equal(t, 1, table.NumColumns())
}

func TestSortByTimestampKeepsColumnsAligned(t *testing.T) {
	ts := mustParse(t, "2020-01-01T00:02:00Z", "2020-01-01T00:00:00Z", "2020-01-01T00:01:00Z")
	table, err := New(ts, Column{Name: "v", Values: []float64{2, 0, 1}})
	require.NoError(t, err)

	table.SortByTimestamp()

	v, _ := table.Column("v")
	assert.Equal(t, []float64{0, 1, 2}, v.Values)
	assert.True(t, table.Timestamps[0].Before(table.Timestamps[1]))
	assert.True(t, table.Timestamps[1].Before(table.Timestamps[2]))
}

func TestMergeNearestMatchesWithinTolerance(t *testing.T) {
	left, err := New(
		mustParse(t, "2020-01-01T00:00:00Z", "2020-01-01T00:01:00Z"),
		Column{Name: "a", Values: []float64{1, 2}},
	)
	require.NoError(t, err)
	right, err := New(
		mustParse(t, "2020-01-01T00:00:10Z", "2020-01-01T00:01:05Z"),
		Column{Name: "b", Values: []float64{10, 20}},
	)
	require.NoError(t, err)

	left.MergeNearest(right, 30*time.Second)

	assert.Equal(t, 2, left.NumRows())
	a, _ := left.Column("a")
	b, _ := left.Column("b")
	assert.Equal(t, []float64{1, 2}, a.Values)
	assert.Equal(t, []float64{10, 20}, b.Values)
}

func TestMergeNearestDisjointGridsKeepsBothSides(t *testing.T) {
	left, err := New(
		mustParse(t, "2020-01-01T00:00:00Z", "2020-01-01T00:10:00Z"),
		Column{Name: "a", Values: []float64{1, 2}},
	)
	require.NoError(t, err)
	right, err := New(
		mustParse(t, "2020-01-01T00:05:00Z", "2020-01-01T00:15:00Z"),
		Column{Name: "b", Values: []float64{10, 20}},
	)
	require.NoError(t, err)

	left.MergeNearest(right, 30*time.Second)

	// No pair of timestamps is within 30s, so every row survives on its own.
	require.Equal(t, 4, left.NumRows())
	a, _ := left.Column("a")
	b, _ := left.Column("b")
	assert.Equal(t, float64(1), a.Values[0])
	assert.True(t, IsMissing(b.Values[0]))
	assert.True(t, IsMissing(a.Values[1]))
	assert.Equal(t, float64(10), b.Values[1])
	assert.Equal(t, float64(2), a.Values[2])
	assert.True(t, IsMissing(b.Values[2]))
	assert.True(t, IsMissing(a.Values[3]))
	assert.Equal(t, float64(20), b.Values[3])

	for i := 1; i < left.NumRows(); i++ {
		assert.True(t, left.Timestamps[i-1].Before(left.Timestamps[i]))
	}
}

func TestMergeNearestTailRowsAreKept(t *testing.T) {
	left, err := New(
		mustParse(t, "2020-01-01T00:00:00Z"),
		Column{Name: "a", Values: []float64{1}},
	)
	require.NoError(t, err)
	right, err := New(
		mustParse(t, "2020-01-01T00:00:05Z", "2020-01-01T01:00:00Z", "2020-01-01T02:00:00Z"),
		Column{Name: "b", Values: []float64{10, 20, 30}},
	)
	require.NoError(t, err)

	left.MergeNearest(right, 30*time.Second)

	require.Equal(t, 3, left.NumRows())
	a, _ := left.Column("a")
	b, _ := left.Column("b")
	assert.Equal(t, []float64{10, 20, 30}, b.Values)
	assert.Equal(t, float64(1), a.Values[0])
	assert.True(t, IsMissing(a.Values[1]))
	assert.True(t, IsMissing(a.Values[2]))
}
