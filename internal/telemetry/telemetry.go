// Package telemetry wraps github.com/go-logr/logr behind the small
// surface the rest of the ambient stack needs, with a no-op default so
// callers that never configure a backend still work.
package telemetry

import "github.com/go-logr/logr"

// Logger is the logging facade used by cmd/simrunner, cmd/simserver, and
// internal/api. It is a thin
// value-type wrapper over logr.Logger rather than a bespoke interface, so
// any backend (zapr, stdr, testr) plugs in without an adapter.
type Logger struct {
	logr.Logger
}

// NoOp returns a Logger that discards everything, generalizing
// colonycore's noopLogger from an ad hoc interface to logr's own
// logr.Discard(), which satisfies the same "never panics, never writes"
// contract.
func NoOp() Logger {
	return Logger{Logger: logr.Discard()}
}

// New wraps an existing logr.Logger (e.g. one backed by zapr or stdr).
func New(l logr.Logger) Logger {
	return Logger{Logger: l}
}

// WithRun returns a Logger tagged with the given run identifier, so every
// line an orchestrator run emits can be correlated across a parameter
// sweep.
func (l Logger) WithRun(runID string) Logger {
	return Logger{Logger: l.Logger.WithValues("run_id", runID)}
}
