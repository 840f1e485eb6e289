// SPDX-License-Identifier: MIT
// Package attr: Table is an in-memory Store.
package attr

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Table is an in-memory Store with one row per live ref. Rows may be sparse.
//
// Column creation must not race with row writes; writes to distinct rows may
// run concurrently.
type Table struct {
	names []string
	index map[string]int
	rows  []*TableRow // indexed by ref, nil for gaps
	count int
}

// TableRow is a Row of a Table.
type TableRow struct {
	values []float64
}

// SetValue implements Row. Writes to unknown columns are ignored.
func (r *TableRow) SetValue(col int, v float64) {
	if col >= 0 && col < len(r.values) {
		r.values[col] = v
	}
}

// Value implements Row. Unknown columns read as Missing.
func (r *TableRow) Value(col int) float64 {
	if col < 0 || col >= len(r.values) {
		return Missing
	}

	return r.values[col]
}

// NewTable returns a table with a row for each of refs.
func NewTable(refs []int) *Table {
	t := &Table{index: make(map[string]int)}
	for _, ref := range refs {
		t.AddRow(ref)
	}

	return t
}

// AddRow adds a row for ref with every cell Missing. Adding an existing or
// negative ref is a no-op.
func (t *Table) AddRow(ref int) {
	if ref < 0 {
		return
	}
	for len(t.rows) <= ref {
		t.rows = append(t.rows, nil)
	}
	if t.rows[ref] != nil {
		return
	}
	vals := make([]float64, len(t.names))
	for i := range vals {
		vals[i] = Missing
	}
	t.rows[ref] = &TableRow{values: vals}
	t.count++
}

// RemoveRow deletes the row of ref, leaving a gap.
func (t *Table) RemoveRow(ref int) {
	if ref >= 0 && ref < len(t.rows) && t.rows[ref] != nil {
		t.rows[ref] = nil
		t.count--
	}
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.count }

// InsertOrResetColumn implements Store.
func (t *Table) InsertOrResetColumn(name string) int {
	if i, ok := t.index[name]; ok {
		for _, r := range t.rows {
			if r != nil {
				r.values[i] = Missing
			}
		}
		return i
	}
	i := len(t.names)
	t.names = append(t.names, name)
	t.index[name] = i
	for _, r := range t.rows {
		if r != nil {
			r.values = append(r.values, Missing)
		}
	}

	return i
}

// ColumnIndex implements Store.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// ColumnCount implements Store.
func (t *Table) ColumnCount() int { return len(t.names) }

// ColumnName implements Store.
func (t *Table) ColumnName(i int) string {
	if i < 0 || i >= len(t.names) {
		return ""
	}

	return t.names[i]
}

// Row implements Store.
func (t *Table) Row(ref int) (Row, bool) {
	if ref < 0 || ref >= len(t.rows) || t.rows[ref] == nil {
		return nil, false
	}

	return t.rows[ref], true
}

// ForEachRow implements Store.
func (t *Table) ForEachRow(fn func(ref int, r Row) bool) {
	for ref, r := range t.rows {
		if r != nil && !fn(ref, r) {
			return
		}
	}
}

// Column returns the values of col by ref, Missing for gaps.
func (t *Table) Column(col int) ([]float64, error) {
	if col < 0 || col >= len(t.names) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownColumn, col)
	}
	out := make([]float64, len(t.rows))
	for ref, r := range t.rows {
		out[ref] = Missing
		if r != nil {
			out[ref] = r.values[col]
		}
	}

	return out, nil
}

// Stats summarises the written cells of one column.
type Stats struct {
	Count                  int
	Min, Max, Mean, StdDev float64
}

// ColumnStats summarises every cell of col that is not Missing.
// A column without values yields a zero Stats.
func (t *Table) ColumnStats(col int) (Stats, error) {
	if col < 0 || col >= len(t.names) {
		return Stats{}, fmt.Errorf("%w: %d", ErrUnknownColumn, col)
	}
	vals := make([]float64, 0, t.count)
	for _, r := range t.rows {
		if r != nil && r.values[col] != Missing {
			vals = append(vals, r.values[col])
		}
	}
	if len(vals) == 0 {
		return Stats{}, nil
	}
	s := Stats{Count: len(vals), Min: floats.Min(vals), Max: floats.Max(vals)}
	if len(vals) == 1 {
		s.Mean = vals[0]
		return s, nil
	}
	s.Mean, s.StdDev = stat.MeanStdDev(vals, nil)

	return s, nil
}
