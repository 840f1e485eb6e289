// Package traverse walks connectivity models from one or more origins and
// records depth, predecessor and finalization order for every reached entity.
//
// What
//
//   - Angular: tulip-bin ordered walk over a SegmentGraph accumulating
//     angular cost. Direction aware: a segment finalized while travelling
//     Forward explores its forward end, Backward its backward end, and an
//     origin explores both.
//   - Step: breadth-first step depth over any Adjacency (visibility grids,
//     axial maps, topological segment walks).
//   - Metric: lazy decrease-key heap walk over segment lengths.
//   - PathTo / PathOrder: predecessor-chain reconstruction and
//     steps-remaining numbering for point-to-point queries.
//
// Every entity is finalized at most once per walk. Angular records are
// pushed without deduplication and only the first pop counts; the
// predecessor of a segment is the one it was first discovered from.
//
// Reuse
//
//	AngularWalker and StepWalker keep their buffers between runs, so an
//	all-origins sweep allocates once per worker instead of once per origin.
//	Results are overwritten by the next Run.
//
// Options
//
//   - WithResolution(n):  tulip bin count (default tulip.FullResolution).
//   - WithRand(r):        tie-break stream for shared bins.
//   - WithTarget(ref):    stop once ref is finalized.
//   - WithRadius(r):      prune discoveries deeper than r.
//   - WithPoller(p):      cooperative cancellation, ticked per finalization.
//   - WithOnFinalize(fn): hook on every finalization.
//
// Errors
//
//   - ErrNilGraph, ErrOptionViolation: bad arguments.
//   - ErrBadOrigin: empty origin set or an origin that is not live.
//   - ErrUnreachable, ErrCycle: PathTo failures.
//   - progress.ErrCancelled (wrapped): the poller observed a cancellation.
//
// Complexity
//
//   - Angular: O(V + E) pushes/pops plus one bin scan per level.
//   - Step:    O(V + E).
//   - Metric:  O((V + E) log V).
package traverse
