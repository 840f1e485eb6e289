// Package analysis runs the fixed set of spatial-network analyses over a
// connectivity model and writes their results into an attribute store.
//
// What
//
//   - SegmentTulip: all-origins angular sweep per radius writing choice,
//     normalised choice, integration, mean depth, node count and total depth.
//   - SegmentTulipShortestPath, SegmentMetricShortestPath,
//     SegmentTopologicalShortestPath, VisualShortestPath: point-to-point
//     routes between exactly two selected entities. The origin's order is
//     the hop count and the destination's is 0; entities off the route
//     hold -1.
//   - AxialLocal: connectivity, control and controllability of every line.
//   - VisualLocal, VisualGlobal: per-point local and depth-distribution
//     measures, split over a worker pool.
//   - VisualDepth: step depth from every selected point seeded together.
//
// Running
//
//	rc, _ := analysis.NewRunContext(ctx, table, analysis.WithSelection(a, b))
//	res, err := analysis.Execute(path, rc)
//
// Execute wraps Run in a span and records the run counter and duration
// histogram on the global OpenTelemetry providers. Nothing is exported
// unless the caller installs providers.
//
// Outcomes
//
//   - Completed: every column in Result.Columns was fully written.
//   - Incomplete, nil error: the selection was unusable. Nothing was written.
//   - progress.ErrCancelled (wrapped): a cancellation was observed. Columns
//     already touched stay in Result.Columns and rows finished before the
//     observation keep their values.
package analysis
