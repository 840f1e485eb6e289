// Package tulip implements the "tulip" bin scheduler used by angular
// traversals: a fixed, cyclic array of buckets that approximates a
// min-priority queue by quantizing angular cost.
//
// What
//
//   - Push(offset, rec) drops a record offset bins ahead of the current bin,
//     modulo the resolution. Offsets come from Offset(cost), which maps a
//     cost of 1 (a full reversal) onto half of the array.
//   - Pop() walks forward through empty bins, counting one level per bin,
//     and removes a uniformly random record from the first non-empty one.
//
// Why
//
//	Angular costs live in [0,1), so the spread of pending depths is bounded.
//	Bucketing them gives near-Dijkstra ordering at O(1) amortized push/pop
//	instead of O(log n) heap operations. Random selection within a bin
//	breaks ties between geometrically equal routes without favouring
//	insertion order.
//
// Determinism
//
//	Results are reproducible up to the seed of the random source. NewRand(0)
//	and a nil source both use a fixed default seed; Streams gives each
//	keyed walk (one per sweep radius) its own source.
//
// Resolutions
//
//   - HalfResolution (513): point-to-point angular shortest path.
//   - FullResolution (1024): all-origins angular integration and choice.
//
// Errors
//
//   - ErrBadResolution if fewer than two bins are requested.
package tulip
