// Package connectivity provides the read-only adjacency models walked by the
// traversal engine and the local metric calculators.
//
// What
//
//   - PointGrid: a rectangular grid of floor points addressed by row-major
//     ref y*Width + x. NewVisibilityGrid links every pair of open cells with a
//     clear line of sight (supercover walk between cell centres), optionally
//     within a visual radius, or plain Conn4/Conn8 neighbours.
//   - SegmentGraph: street segments with two ends. Each end carries a list of
//     directed angular connections (neighbour, travel direction, cost in [0,1)).
//   - LineGraph: the undirected intersection graph of an axial map.
//
// PointGrid and LineGraph implement Adjacency; SegmentGraph implements it as
// well, exposing the deduplicated union of both ends for topological walks.
//
// Refs and gaps
//
//	Every model tracks its live refs in a roaring bitmap. Removed entities
//	leave gaps: Valid(ref) is false and Neighbors(ref) is empty. Refs()
//	always lists live refs in ascending order.
//
// Editing
//
//	AddPoint, Link, Join, Connect and the Remove* methods are the only
//	mutators. Models are not safe for concurrent mutation, and must not be
//	edited while a traversal is running. Concurrent readers are fine, with
//	the exception of PointGrid.Nearest which builds its k-d tree lazily.
//
// Complexity
//
//   - NewVisibilityGrid: O(P²·L) time (P open cells, L sight-line length).
//   - Neighbors/Forward/Backward: O(1).
//   - Nearest: O(P log P) after an edit, O(log P) expected otherwise.
//
// Errors
//
//   - ErrEmptyGrid, ErrNonRectangular: malformed cell input.
//   - ErrBadDimensions: non-positive size.
//   - ErrUnknownRef: reference outside the model or already removed.
//   - ErrSelfLink, ErrBadDirection, ErrBadCost, ErrBadLength: rejected edits.
package connectivity
