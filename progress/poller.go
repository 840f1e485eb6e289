// SPDX-License-Identifier: MIT
// Package progress: Poller rate-limits Communicator calls inside hot loops.
package progress

import (
	"context"
	"fmt"
	"time"
)

// Poller checks for cancellation at a bounded wall-time interval.
//
// Context cancellation is checked on every tick because it is cheap; the
// Communicator, which may be slow or remote, is consulted at most once per
// interval. An interval of 0 polls on every tick. Once cancellation is
// observed the Poller latches and every later tick fails.
//
// A Poller belongs to one goroutine.
type Poller struct {
	ctx      context.Context
	comm     Communicator
	interval time.Duration
	last     time.Time
	stopped  bool
}

// NewPoller returns a Poller over ctx and comm. Both may be nil.
// A negative interval selects DefaultInterval.
func NewPoller(ctx context.Context, comm Communicator, interval time.Duration) *Poller {
	if interval < 0 {
		interval = DefaultInterval
	}

	return &Poller{ctx: ctx, comm: comm, interval: interval}
}

// Tick reports record as the current progress when the interval has elapsed
// and returns ErrCancelled once a cancellation has been seen.
func (p *Poller) Tick(record int) error {
	if p == nil {
		return nil
	}
	if p.stopped {
		return ErrCancelled
	}
	if p.ctx != nil {
		if err := p.ctx.Err(); err != nil {
			p.stopped = true
			return fmt.Errorf("%w: %v", ErrCancelled, err)
		}
	}
	if p.comm == nil {
		return nil
	}
	if p.interval > 0 {
		now := time.Now()
		if !p.last.IsZero() && now.Sub(p.last) < p.interval {
			return nil
		}
		p.last = now
	}
	if p.comm.IsCancelled() {
		p.stopped = true
		return ErrCancelled
	}
	p.comm.PostMessage(CurrentRecord, record)

	return nil
}

// Post forwards a message to the Communicator, if any, without rate limiting.
func (p *Poller) Post(kind Kind, value int) {
	if p == nil || p.comm == nil {
		return
	}
	p.comm.PostMessage(kind, value)
}

// Cancelled reports whether the Poller has observed a cancellation.
func (p *Poller) Cancelled() bool {
	return p != nil && p.stopped
}
