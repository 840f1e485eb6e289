// SPDX-License-Identifier: MIT
// Package progress: Bar renders progress messages as a terminal progress bar.
package progress

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Bar is a Communicator backed by schollz/progressbar. It is cancelled only
// through Cancel, typically from a signal handler.
type Bar struct {
	bar         *progressbar.ProgressBar
	description string
	steps       atomic.Int64
	cancelled   atomic.Bool
}

// NewBar renders to w with the given description.
func NewBar(w io.Writer, description string) *Bar {
	return &Bar{
		description: description,
		bar: progressbar.NewOptions(1,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription(description),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		),
	}
}

// PostMessage implements Communicator.
func (b *Bar) PostMessage(kind Kind, value int) {
	switch kind {
	case NumSteps:
		b.steps.Store(int64(value))
	case CurrentStep:
		b.bar.Describe(fmt.Sprintf("%s [%d/%d]", b.description, value, b.steps.Load()))
	case NumRecords:
		b.bar.Reset()
		b.bar.ChangeMax(value)
	case CurrentRecord:
		_ = b.bar.Set(value)
	}
}

// IsCancelled implements Communicator.
func (b *Bar) IsCancelled() bool { return b.cancelled.Load() }

// Cancel requests cancellation of the running analysis.
func (b *Bar) Cancel() { b.cancelled.Store(true) }

// Finish completes the bar.
func (b *Bar) Finish() error { return b.bar.Finish() }
