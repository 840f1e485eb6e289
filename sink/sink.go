// SPDX-License-Identifier: MIT
// Package sink writes analysis output into an attribute store and records
// which columns an analysis touched.
package sink

import (
	"github.com/katalvlaran/depthlath/attr"
)

// Result describes the outcome of one analysis run. Columns lists every
// column the run created or reset, in first-creation order. An incomplete
// run (Completed == false) may still have written some of them.
type Result struct {
	Completed bool
	Columns   []string
}

// Sink tracks the columns one analysis writes. Column creation is not safe
// for concurrent use; Set on distinct refs is.
type Sink struct {
	store   attr.Store
	columns []string
	seen    map[string]bool
}

// New returns a Sink over store.
func New(store attr.Store) *Sink {
	return &Sink{store: store, seen: make(map[string]bool)}
}

// EnsureColumn creates or resets the named column and returns its handle.
// Calling it twice with the same name resets the column again and records
// the name once.
func (s *Sink) EnsureColumn(name string) int {
	col := s.store.InsertOrResetColumn(name)
	if !s.seen[name] {
		s.seen[name] = true
		s.columns = append(s.columns, name)
	}

	return col
}

// Set writes v into column col of ref's row. Returns false if the store has
// no row for ref.
func (s *Sink) Set(col, ref int, v float64) bool {
	row, ok := s.store.Row(ref)
	if !ok {
		return false
	}
	row.SetValue(col, v)

	return true
}

// Columns returns the touched column names in first-creation order.
func (s *Sink) Columns() []string {
	return append([]string(nil), s.columns...)
}

// Result builds the run descriptor.
func (s *Sink) Result(completed bool) Result {
	return Result{Completed: completed, Columns: s.Columns()}
}
