// Package progress carries progress reports and cooperative cancellation
// between a running analysis and its caller.
//
// The caller supplies a Communicator (or nil). Traversals never call it
// directly; they Tick a Poller, which checks the run's context on every tick
// and asks the Communicator at most once per interval (DefaultInterval,
// 500ms). A cancellation seen either way surfaces as ErrCancelled, which
// callers tell apart from ordinary failures with errors.Is.
//
// Parallel analyses wrap the Communicator in Shared and hand each worker its
// own view. Bar adapts a terminal progress bar for the CLI.
package progress
