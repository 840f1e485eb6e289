// SPDX-License-Identifier: MIT
// Package attr defines the columnar attribute store consumed by analyses.
package attr

import "errors"

// Missing is the value of a cell that was never written since its column
// was created or reset.
const Missing = -1.0

// Sentinel errors for attribute tables and snapshots.
var (
	// ErrUnknownColumn indicates a column index outside the table.
	ErrUnknownColumn = errors.New("attr: unknown column")

	// ErrNoSnapshot indicates no snapshot is stored under the requested name.
	ErrNoSnapshot = errors.New("attr: snapshot not found")

	// ErrBadSnapshot indicates a stored snapshot could not be decoded.
	ErrBadSnapshot = errors.New("attr: malformed snapshot")
)

// Store is a columnar table keyed by spatial entity ref. Analyses only
// create or reset columns and write cells; row lifecycle belongs to the owner.
type Store interface {
	// InsertOrResetColumn creates the named column, or resets every cell of an
	// existing one to Missing, and returns its index.
	InsertOrResetColumn(name string) int
	// ColumnIndex looks a column up by name.
	ColumnIndex(name string) (int, bool)
	// ColumnCount returns the number of columns.
	ColumnCount() int
	// ColumnName returns the name of column i.
	ColumnName(i int) string
	// Row returns the row of ref, or false if the store has none.
	Row(ref int) (Row, bool)
	// ForEachRow calls fn for every row in ascending ref order until fn
	// returns false.
	ForEachRow(fn func(ref int, r Row) bool)
}

// Row is one entity's cells. Distinct rows may be written concurrently.
type Row interface {
	SetValue(col int, v float64)
	Value(col int) float64
}
