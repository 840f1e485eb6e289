// SPDX-License-Identifier: MIT
// Package analysis defines the run context, options and sentinel errors
// shared by every analysis.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/depthlath/attr"
	"github.com/katalvlaran/depthlath/progress"
	"github.com/katalvlaran/depthlath/sink"
	"github.com/katalvlaran/depthlath/tulip"
)

// Sentinel errors for analysis construction.
var (
	// ErrNilGraph is returned when an analysis is built without a model.
	ErrNilGraph = errors.New("analysis: graph is nil")

	// ErrNilStore is returned when a run context has no attribute store.
	ErrNilStore = errors.New("analysis: attribute store is nil")

	// ErrOptionViolation is returned when an invalid option is supplied.
	ErrOptionViolation = errors.New("analysis: invalid option supplied")
)

// Analysis is one named computation that writes columns into a store.
//
// Run returns Completed == false with a nil error when the selection is
// unusable, and a wrapped progress.ErrCancelled when a cancellation was
// observed. Columns already written stay in place in both cases.
type Analysis interface {
	Name() string
	Run(rc *RunContext) (sink.Result, error)
}

// RunContext carries everything one run needs. It is never shared between
// concurrent runs.
type RunContext struct {
	Ctx          context.Context
	ID           uuid.UUID
	Store        attr.Store
	Comm         progress.Communicator // may be nil
	Rand         *rand.Rand
	Logger       zerolog.Logger
	Selection    []int
	PollInterval time.Duration
}

// RunOption configures a RunContext.
type RunOption func(*RunContext)

// WithComm attaches a progress/cancellation channel.
func WithComm(c progress.Communicator) RunOption {
	return func(rc *RunContext) { rc.Comm = c }
}

// WithSeed sets the tie-break stream from a seed (0 selects the default seed).
func WithSeed(seed int64) RunOption {
	return func(rc *RunContext) { rc.Rand = tulip.NewRand(seed) }
}

// WithLogger sets the run logger.
func WithLogger(l zerolog.Logger) RunOption {
	return func(rc *RunContext) { rc.Logger = l }
}

// WithSelection sets the selected entity refs.
func WithSelection(refs ...int) RunOption {
	return func(rc *RunContext) { rc.Selection = append([]int(nil), refs...) }
}

// WithPollInterval sets the wall time between cancellation polls; 0 polls
// on every tick, a negative value keeps the default.
func WithPollInterval(d time.Duration) RunOption {
	return func(rc *RunContext) {
		if d >= 0 {
			rc.PollInterval = d
		}
	}
}

// NewRunContext builds a run over store with a fresh ID, a no-op logger, the
// default tie-break stream and progress.DefaultInterval.
// Returns ErrNilStore if store is nil.
func NewRunContext(ctx context.Context, store attr.Store, opts ...RunOption) (*RunContext, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if ctx == nil {
		ctx = context.Background()
	}
	rc := &RunContext{
		Ctx:          ctx,
		ID:           uuid.New(),
		Store:        store,
		Rand:         tulip.NewRand(0),
		Logger:       zerolog.Nop(),
		PollInterval: progress.DefaultInterval,
	}
	for _, opt := range opts {
		opt(rc)
	}

	return rc, nil
}

// poller returns a fresh Poller over the run's context and communicator.
func (rc *RunContext) poller() *progress.Poller {
	return progress.NewPoller(rc.Ctx, rc.Comm, rc.PollInterval)
}

// NewLogger returns a timestamped zerolog logger at Info, or Debug if debug.
func NewLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// TulipOptions configures SegmentTulip.
type TulipOptions struct {
	// Resolution is the tulip bin count.
	Resolution int
	// Radii lists the angular radii to sweep; 0 means unlimited ("n").
	Radii []float64
	// Choice enables choice accumulation.
	Choice bool
	// Origins restricts the sweep to these refs; nil sweeps every live segment.
	Origins []int

	err error
}

// TulipOption configures SegmentTulip via functional arguments.
type TulipOption func(*TulipOptions)

// DefaultTulipOptions returns a single unlimited radius at FullResolution
// with choice enabled.
func DefaultTulipOptions() TulipOptions {
	return TulipOptions{
		Resolution: tulip.FullResolution,
		Radii:      []float64{0},
		Choice:     true,
	}
}

// WithTulipResolution sets the bin count. Fewer than 2 bins → ErrOptionViolation.
func WithTulipResolution(n int) TulipOption {
	return func(o *TulipOptions) {
		if n < 2 {
			o.err = fmt.Errorf("%w: resolution %d", ErrOptionViolation, n)
			return
		}
		o.Resolution = n
	}
}

// WithRadii replaces the radius list. Negative radii → ErrOptionViolation;
// an empty list keeps the default.
func WithRadii(radii ...float64) TulipOption {
	return func(o *TulipOptions) {
		if len(radii) == 0 {
			return
		}
		for _, r := range radii {
			if r < 0 {
				o.err = fmt.Errorf("%w: radius %v", ErrOptionViolation, r)
				return
			}
		}
		o.Radii = append([]float64(nil), radii...)
	}
}

// WithChoice toggles choice accumulation.
func WithChoice(on bool) TulipOption {
	return func(o *TulipOptions) { o.Choice = on }
}

// WithOrigins restricts the sweep to refs.
func WithOrigins(refs ...int) TulipOption {
	return func(o *TulipOptions) { o.Origins = append([]int(nil), refs...) }
}

// VGAOptions configures the parallel visibility analyses.
type VGAOptions struct {
	// Workers is the number of partitions processed concurrently.
	Workers int
	// ForceCommOnOneThread lets only worker 0 talk to the communicator.
	ForceCommOnOneThread bool
	// StepRadius limits global walks to this many steps; 0 means unlimited.
	StepRadius int
	// SameOwnerClustering restricts clustering to neighbours sharing the
	// origin's owner tag.
	SameOwnerClustering bool

	err error
}

// VGAOption configures VisualLocal and VisualGlobal.
type VGAOption func(*VGAOptions)

// DefaultVGAOptions uses GOMAXPROCS workers, unlimited radius and lets
// every worker poll the communicator.
func DefaultVGAOptions() VGAOptions {
	return VGAOptions{Workers: runtime.GOMAXPROCS(0)}
}

// WithWorkers sets the worker count. n < 1 → ErrOptionViolation.
func WithWorkers(n int) VGAOption {
	return func(o *VGAOptions) {
		if n < 1 {
			o.err = fmt.Errorf("%w: workers %d", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithCommOnOneThread toggles ForceCommOnOneThread.
func WithCommOnOneThread(on bool) VGAOption {
	return func(o *VGAOptions) { o.ForceCommOnOneThread = on }
}

// WithStepRadius limits global walks. r < 0 → ErrOptionViolation.
func WithStepRadius(r int) VGAOption {
	return func(o *VGAOptions) {
		if r < 0 {
			o.err = fmt.Errorf("%w: step radius %d", ErrOptionViolation, r)
			return
		}
		o.StepRadius = r
	}
}

// WithSameOwnerClustering toggles owner-restricted clustering.
func WithSameOwnerClustering(on bool) VGAOption {
	return func(o *VGAOptions) { o.SameOwnerClustering = on }
}
