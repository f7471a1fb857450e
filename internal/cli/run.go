package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/runner"
)

// RunOptions contains all the configuration for the run and trace commands.
type RunOptions struct {
	GlobalOptions
	Source   string
	Input    string
	MaxSteps int
	JSON     bool
	Trace    bool
	// Diff makes JSON trace lines carry only what changed per timeline.
	Diff     bool
	Quiet    bool
	Out      io.Writer
}

// traceLine is one JSON line of a trace.
type traceLine struct {
	Generation int                       `json:"generation"`
	Timelines  []domain.TimelineSnapshot `json:"timelines,omitempty"`
	Changes    []domain.SnapshotDiff     `json:"changes,omitempty"`
}

// Run executes a machine from a definition file and prints its report.
// A run interrupted by Ctrl+C prints the last generation and returns the
// report without error.
func Run(ctx context.Context, opts RunOptions) (*domain.RunReport, error) {
	logger, closeLog, err := createLogger(opts.GlobalOptions)
	if err != nil {
		return nil, err
	}
	defer closeLog()

	engine, err := createEngine(opts.Source, opts.MaxSteps, opts.Debug, logger)
	if err != nil {
		return nil, err
	}

	signals := runner.NewSignalManager(ctx)
	defer signals.Stop()

	interactive := tui.IsTerminal(opts.Out) && !opts.JSON
	if interactive && !opts.Quiet {
		tui.PrintBanner(opts.Out)
	}

	var observer runner.Observer
	if opts.Trace {
		enc := json.NewEncoder(opts.Out)
		var prev []domain.TimelineSnapshot
		observer = func(gen int, tls []domain.TimelineSnapshot) {
			if opts.JSON && opts.Diff {
				_ = enc.Encode(traceLine{Generation: gen, Changes: diffGeneration(prev, tls)})
				prev = tls
				return
			}
			if opts.JSON {
				_ = enc.Encode(traceLine{Generation: gen, Timelines: tls})
				return
			}
			fmt.Fprint(opts.Out, tui.TraceGeneration(gen, tls))
		}
	}

	report, runErr := engine.Trace(signals.Context(), opts.Input, observer)
	if report == nil {
		return nil, runErr
	}
	if err := printReport(opts, report, interactive); err != nil {
		return report, err
	}
	if runErr != nil && isInterrupted(runErr) && !opts.JSON && !opts.Quiet {
		printSystemMessage(opts.Out, "Interrupted at generation %d.", report.Steps)
	}
	return report, handleExecutionError(runErr)
}

// diffGeneration compares timelines slot by slot with the previous generation.
func diffGeneration(prev, next []domain.TimelineSnapshot) []domain.SnapshotDiff {
	var changes []domain.SnapshotDiff
	for i := range next {
		var old *domain.TimelineSnapshot
		if i < len(prev) {
			old = &prev[i]
		}
		if d := domain.Diff(old, &next[i]); d != nil {
			changes = append(changes, *d)
		}
	}
	return changes
}

func printReport(opts RunOptions, report *domain.RunReport, interactive bool) error {
	if opts.JSON {
		enc := json.NewEncoder(opts.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	md := tui.ReportMarkdown(report)
	if interactive {
		rendered, err := tui.NewRenderer()(md)
		if err == nil {
			md = rendered
		}
	}
	_, err := fmt.Fprint(opts.Out, md)
	return err
}
