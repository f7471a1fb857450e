package runner

import (
	"log/slog"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// WithMaxSteps caps the number of generations of a run. Zero means unbounded.
func WithMaxSteps(n int) Option {
	return func(r *Runner) {
		r.MaxSteps = n
	}
}

// WithObserver registers a callback invoked with every generation, the
// initial one included.
func WithObserver(fn Observer) Option {
	return func(r *Runner) {
		r.Observer = fn
	}
}

// WithReportID fixes the ID of the produced report instead of generating one.
func WithReportID(id string) Option {
	return func(r *Runner) {
		r.ReportID = id
	}
}
