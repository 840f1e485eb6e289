// Package attr provides the attribute store analyses write into.
//
// Store and Row are the interfaces analyses consume: they create or reset
// named columns and write one float64 per entity row. Table is the in-memory
// implementation used by the CLI, examples and tests. Fresh or reset cells
// read as Missing (-1).
//
// ColumnStats summarises a column with gonum. SaveSnapshot and LoadSnapshot
// persist a Table in an embedded badger database: column names under
// "attr/<name>/columns" and one little-endian float64 vector per row under
// "attr/<name>/row/<big-endian ref>".
package attr
