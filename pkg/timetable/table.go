package timetable

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/araddon/dateparse"
)

// Missing returns the marker stored in cells that have no value for a row,
// e.g. when a nearest-timestamp join finds no partner within the tolerance.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether a cell holds the missing marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Column is one named value column, aligned row-for-row with the table's
// timestamp column.
type Column struct {
	Name   string
	Values []float64
}

// Table is a timestamp-indexed set of value columns. Columns keep the order
// in which they were added.
type Table struct {
	Timestamps []time.Time
	Columns    []Column
}

// New builds a table from a timestamp column and one or more value columns.
// Every column must have exactly one value per timestamp.
func New(timestamps []time.Time, cols ...Column) (*Table, error) {
	for _, c := range cols {
		if len(c.Values) != len(timestamps) {
			return nil, fmt.Errorf("timetable: column %s has %d values for %d timestamps", c.Name, len(c.Values), len(timestamps))
		}
	}
	return &Table{Timestamps: timestamps, Columns: cols}, nil
}

// ParseTimestamps converts the API's ISO-8601 instants into time values,
// preserving order.
func ParseTimestamps(raw []string) ([]time.Time, error) {
	parsed := make([]time.Time, len(raw))
	for i, s := range raw {
		ts, err := dateparse.ParseAny(s)
		if err != nil {
			return nil, fmt.Errorf("timetable: bad timestamp %q at index %d: %w", s, i, err)
		}
		parsed[i] = ts
	}
	return parsed, nil
}

func (t *Table) NumRows() int {
	return len(t.Timestamps)
}

func (t *Table) NumColumns() int {
	return len(t.Columns)
}

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column, or false when the table has no such column.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// AppendAligned adds columns that share the table's timestamp grid, as
// produced by aggregate queries over a fixed interval and search span.
func (t *Table) AppendAligned(cols ...Column) error {
	for _, c := range cols {
		if len(c.Values) != len(t.Timestamps) {
			return fmt.Errorf("timetable: column %s has %d rows, table has %d", c.Name, len(c.Values), len(t.Timestamps))
		}
	}
	t.Columns = append(t.Columns, cols...)
	return nil
}

// SortByTimestamp orders rows ascending, keeping every column aligned with
// the timestamp column. The sort is stable.
func (t *Table) SortByTimestamp() {
	order := make([]int, len(t.Timestamps))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return t.Timestamps[order[a]].Before(t.Timestamps[order[b]])
	})

	sorted := make([]time.Time, len(order))
	for i, src := range order {
		sorted[i] = t.Timestamps[src]
	}
	t.Timestamps = sorted

	for ci, c := range t.Columns {
		values := make([]float64, len(order))
		for i, src := range order {
			values[i] = c.Values[src]
		}
		t.Columns[ci].Values = values
	}
}

// MergeNearest joins another table's columns into this one by matching
// timestamps within the tolerance. Rows with no partner on the other side are
// kept, with the missing marker filling the columns that have no value there.
// Both tables must already be sorted ascending.
func (t *Table) MergeNearest(other *Table, tolerance time.Duration) {
	left := t.Timestamps
	right := other.Timestamps

	merged := make([]time.Time, 0, len(left)+len(right))
	leftIdx := make([]int, 0, len(left)+len(right))
	rightIdx := make([]int, 0, len(left)+len(right))

	i, j := 0, 0
	for i < len(left) && j < len(right) {
		delta := left[i].Sub(right[j])
		if delta < 0 {
			delta = -delta
		}
		switch {
		case delta <= tolerance:
			merged = append(merged, left[i])
			leftIdx = append(leftIdx, i)
			rightIdx = append(rightIdx, j)
			i++
			j++
		case left[i].Before(right[j]):
			merged = append(merged, left[i])
			leftIdx = append(leftIdx, i)
			rightIdx = append(rightIdx, -1)
			i++
		default:
			merged = append(merged, right[j])
			leftIdx = append(leftIdx, -1)
			rightIdx = append(rightIdx, j)
			j++
		}
	}
	for ; i < len(left); i++ {
		merged = append(merged, left[i])
		leftIdx = append(leftIdx, i)
		rightIdx = append(rightIdx, -1)
	}
	for ; j < len(right); j++ {
		merged = append(merged, right[j])
		leftIdx = append(leftIdx, -1)
		rightIdx = append(rightIdx, j)
	}

	columns := make([]Column, 0, len(t.Columns)+len(other.Columns))
	for _, c := range t.Columns {
		columns = append(columns, remap(c, leftIdx))
	}
	for _, c := range other.Columns {
		columns = append(columns, remap(c, rightIdx))
	}

	t.Timestamps = merged
	t.Columns = columns
}

func remap(c Column, sources []int) Column {
	values := make([]float64, len(sources))
	for i, src := range sources {
		if src < 0 {
			values[i] = Missing()
		} else {
			values[i] = c.Values[src]
		}
	}
	return Column{Name: c.Name, Values: values}
}
