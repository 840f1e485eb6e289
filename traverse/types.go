// SPDX-License-Identifier: MIT
// Package traverse defines options, results and sentinel errors shared by
// the angular, step and metric walkers.
package traverse

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/depthlath/progress"
	"github.com/katalvlaran/depthlath/tulip"
)

// Sentinel errors for traversal execution.
var (
	// ErrNilGraph is returned if a nil connectivity model is passed.
	ErrNilGraph = errors.New("traverse: graph is nil")

	// ErrBadOrigin is returned when the origin set is empty or names an
	// entity that is not live.
	ErrBadOrigin = errors.New("traverse: origin not found")

	// ErrUnreachable is returned by PathTo when the destination was not finalized.
	ErrUnreachable = errors.New("traverse: destination not reached")

	// ErrCycle is returned by PathTo when predecessor links loop.
	ErrCycle = errors.New("traverse: predecessor links form a cycle")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("traverse: invalid option supplied")
)

// noTarget marks the absence of a stop target.
const noTarget = -1

// Option configures a walker via functional arguments. Invalid values are
// recorded and surfaced as ErrOptionViolation when the walker is built.
type Option func(*Options)

// Options holds parameters and callbacks shared by all walkers. Fields that
// do not apply to a walker are ignored by it.
type Options struct {
	// Resolution is the tulip bin count (angular walkers only).
	Resolution int

	// Rand breaks ties within a tulip bin (angular walkers only).
	Rand *rand.Rand

	// Target stops the walk once this ref is finalized; -1 disables.
	Target int

	// Radius, if > 0, prunes discoveries whose depth would exceed it:
	// accumulated angular cost, step count or metric distance.
	Radius float64

	// Poller is ticked once per finalization; a cancellation aborts the walk.
	Poller *progress.Poller

	// OnFinalize is called with every finalized ref and its depth.
	OnFinalize func(ref int, depth float64)

	err error
}

// DefaultOptions returns Options with FullResolution bins, the default
// deterministic tie-break stream, no target, no radius and no hooks.
func DefaultOptions() Options {
	return Options{
		Resolution: tulip.FullResolution,
		Target:     noTarget,
		OnFinalize: func(int, float64) {},
	}
}

// WithResolution sets the tulip bin count. Fewer than 2 bins → ErrOptionViolation.
func WithResolution(n int) Option {
	return func(o *Options) {
		if n < 2 {
			o.err = fmt.Errorf("%w: resolution %d", ErrOptionViolation, n)
			return
		}
		o.Resolution = n
	}
}

// WithRand sets the tie-break source. A nil source keeps the default.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		if r != nil {
			o.Rand = r
		}
	}
}

// WithTarget stops the walk as soon as ref is finalized.
func WithTarget(ref int) Option {
	return func(o *Options) {
		if ref < 0 {
			o.err = fmt.Errorf("%w: target %d", ErrOptionViolation, ref)
			return
		}
		o.Target = ref
	}
}

// WithRadius limits the walk to depth r.
//
//	r > 0: limit to r
//	r == 0: explicit no limit
//	r < 0: invalid option → ErrOptionViolation
func WithRadius(r float64) Option {
	return func(o *Options) {
		if r < 0 {
			o.err = fmt.Errorf("%w: radius cannot be negative (%v)", ErrOptionViolation, r)
			return
		}
		o.Radius = r
	}
}

// WithPoller ticks p on every finalization.
func WithPoller(p *progress.Poller) Option {
	return func(o *Options) { o.Poller = p }
}

// WithOnFinalize registers a callback run on every finalization.
func WithOnFinalize(fn func(ref int, depth float64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnFinalize = fn
		}
	}
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}

// within reports whether depth d respects the radius.
func (o *Options) within(d float64) bool {
	return o.Radius <= 0 || d <= o.Radius
}
