package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/machine"
	"github.com/google/uuid"
)

// Observer receives the snapshots of a generation right after it was produced.
type Observer func(generation int, timelines []domain.TimelineSnapshot)

// Runner handles the execution loop of a machine.
type Runner struct {
	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// MaxSteps bounds the number of generations. Zero disables the bound.
	MaxSteps int

	// Observer, if set, sees every generation.
	Observer Observer

	// ReportID overrides the generated report ID.
	ReportID string
}

// NewRunner creates a Runner with an unbounded budget and a silent logger.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts m on input and steps it until a timeline accepts or none is
// running.
//
// When the budget is exhausted or ctx is cancelled the returned report holds
// the last complete generation with Halted set to false, alongside the error.
// Configuration errors from Start return a nil report.
func (r *Runner) Run(ctx context.Context, m *machine.Machine, input string) (*domain.RunReport, error) {
	logger := r.logger()
	report := &domain.RunReport{
		ID:        r.ReportID,
		MachineID: m.Name(),
		Input:     input,
		StartedAt: time.Now(),
	}
	if report.ID == "" {
		report.ID = uuid.NewString()
	}

	if err := m.Start(ctx, input); err != nil {
		return nil, err
	}
	r.observe(m)

	for m.IsRunning() && !m.ShouldHalt() {
		if r.MaxSteps > 0 && m.Generation() >= r.MaxSteps {
			logger.Warn("step budget exhausted", "machine", m.Name(), "input", input, "steps", m.Generation())
			return r.finish(report, m, false), fmt.Errorf("%s: %w after %d steps", m.Name(), domain.ErrStepBudget, m.Generation())
		}
		if err := m.Step(ctx); err != nil {
			logger.Debug("run interrupted", "machine", m.Name(), "steps", m.Generation(), "err", err)
			return r.finish(report, m, false), err
		}
		r.observe(m)
	}

	// The machine is already halting here, so Run takes no further step and
	// only closes the run (log line and OnRunHalt hook).
	if _, err := m.Run(ctx); err != nil {
		return r.finish(report, m, false), err
	}
	return r.finish(report, m, true), nil
}

func (r *Runner) observe(m *machine.Machine) {
	if r.Observer != nil {
		r.Observer(m.Generation(), m.Snapshots())
	}
}

func (r *Runner) finish(report *domain.RunReport, m *machine.Machine, halted bool) *domain.RunReport {
	report.Result = m.Result()
	report.Steps = m.Generation()
	report.Halted = halted
	report.Timelines = m.Snapshots()
	for i := range report.Timelines {
		if report.Timelines[i].Status == domain.StatusAccepted {
			acc := report.Timelines[i]
			report.Accepted = &acc
			break
		}
	}
	report.FinishedAt = time.Now()
	return report
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}
