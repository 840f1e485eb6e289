// Package metrics turns connectivity and walk output into per-entity values.
//
// Local measures (Local): control, controllability and clustering read only
// the neighbourhood of one entity. Global measures (DepthSummary) condense
// the depth distribution of one walk into mean depth, integration (HH,
// P-value, Tekl, angular) and entropy. ChoiceAccumulator sums walk trees into
// choice (betweenness) counts.
//
// Degenerate inputs never divide by zero: they produce Missing (-1).
// Nothing here mutates a graph.
package metrics
