// SPDX-License-Identifier: MIT
// Package progress defines the progress/cancellation channel consumed by
// traversals and analyses.
package progress

import (
	"errors"
	"time"
)

// ErrCancelled is returned when a run observes a cancellation request,
// either from the Communicator or from its context.
var ErrCancelled = errors.New("progress: analysis cancelled")

// DefaultInterval is the wall time between two Communicator polls.
const DefaultInterval = 500 * time.Millisecond

// Kind tags a progress message.
type Kind int

const (
	// NumSteps announces how many top-level steps (e.g. radii) a run has.
	NumSteps Kind = iota
	// CurrentStep reports the 1-based step being worked on.
	CurrentStep
	// NumRecords announces how many records (origins) the current step has.
	NumRecords
	// CurrentRecord reports how many records have been processed.
	CurrentRecord
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case NumSteps:
		return "num-steps"
	case CurrentStep:
		return "current-step"
	case NumRecords:
		return "num-records"
	case CurrentRecord:
		return "current-record"
	default:
		return "unknown"
	}
}

// Communicator is the caller side of the progress channel. Implementations
// need not be safe for concurrent use; see Shared.
type Communicator interface {
	PostMessage(kind Kind, value int)
	IsCancelled() bool
}
