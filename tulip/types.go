// SPDX-License-Identifier: MIT
// Package tulip defines the traversal record, resolutions and sentinel errors
// of the angular bin scheduler.
package tulip

import (
	"errors"

	"github.com/katalvlaran/depthlath/connectivity"
)

// Sentinel errors for bin scheduler construction.
var (
	// ErrBadResolution indicates fewer than two bins were requested.
	ErrBadResolution = errors.New("tulip: resolution must be at least 2")
)

const (
	// HalfResolution is the bin count used for point-to-point angular paths.
	HalfResolution = 513
	// FullResolution is the bin count used for all-origins angular sweeps.
	FullResolution = 1024
)

// SegmentData is the transient record of one discovery of a segment.
// Records are created on push and consumed on pop; they never outlive a run.
type SegmentData struct {
	Ref   int                    // discovered segment
	Pred  int                    // finalized segment it was reached from, -1 for an origin
	Dir   connectivity.Direction // travel direction along Ref; Both for origins
	Depth float64                // accumulated angular cost from the origin
	Gen   int                    // traversal generation the record belongs to
}
