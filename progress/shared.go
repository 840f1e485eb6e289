// SPDX-License-Identifier: MIT
// Package progress: Shared funnels a single Communicator between workers.
package progress

import (
	"sync"
	"sync/atomic"
)

// Shared lets parallel workers use one Communicator that is not assumed
// to be thread-safe.
//
// With oneThread set, only worker 0 ever calls the Communicator; the other
// workers see cancellation through an atomic flag that worker 0 raises.
// Otherwise every worker calls through a mutex. Any worker may Cancel the
// run, which also stops the others.
type Shared struct {
	comm      Communicator
	oneThread bool
	mu        sync.Mutex
	cancelled atomic.Bool
	done      atomic.Int64
}

// NewShared wraps comm (which may be nil).
func NewShared(comm Communicator, oneThread bool) *Shared {
	return &Shared{comm: comm, oneThread: oneThread}
}

// Worker returns the Communicator view for worker id.
func (s *Shared) Worker(id int) Communicator {
	return &workerComm{s: s, id: id}
}

// Cancel raises the shared cancellation flag.
func (s *Shared) Cancel() { s.cancelled.Store(true) }

// Cancelled reports whether any worker observed a cancellation.
func (s *Shared) Cancelled() bool { return s.cancelled.Load() }

// Done adds n finished records to the shared counter and returns the total.
func (s *Shared) Done(n int) int { return int(s.done.Add(int64(n))) }

// Post sends a message outside of the workers, e.g. NumRecords before they start.
func (s *Shared) Post(kind Kind, value int) {
	if s.comm == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comm.PostMessage(kind, value)
}

type workerComm struct {
	s  *Shared
	id int
}

func (w *workerComm) direct() bool { return !w.s.oneThread || w.id == 0 }

func (w *workerComm) PostMessage(kind Kind, value int) {
	if w.s.comm == nil || !w.direct() {
		return
	}
	if kind == CurrentRecord {
		value = int(w.s.done.Load())
	}
	w.s.mu.Lock()
	defer w.s.mu.Unlock()
	w.s.comm.PostMessage(kind, value)
}

func (w *workerComm) IsCancelled() bool {
	if w.s.cancelled.Load() {
		return true
	}
	if w.s.comm == nil || !w.direct() {
		return false
	}
	w.s.mu.Lock()
	c := w.s.comm.IsCancelled()
	w.s.mu.Unlock()
	if c {
		w.s.cancelled.Store(true)
	}

	return c
}
