package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/automata/internal/presentation/graph"
)

// GraphOptions configures the graph command.
type GraphOptions struct {
	GlobalOptions
	Source string
	// Input, when set, runs the machine first and highlights the states of
	// its last generation.
	Input    *string
	MaxSteps int
	Out      io.Writer
}

// Graph prints the Mermaid flowchart of a machine.
func Graph(ctx context.Context, opts GraphOptions) error {
	logger, closeLog, err := createLogger(opts.GlobalOptions)
	if err != nil {
		return err
	}
	defer closeLog()

	engine, err := createEngine(opts.Source, opts.MaxSteps, opts.Debug, logger)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if opts.Input != nil {
		report, err := engine.Run(ctx, *opts.Input)
		if report == nil {
			return err
		}
		if err != nil {
			logger.Warn("run interrupted, highlighting its last generation", "err", err)
		}
		overlay = graph.OverlayFromReport(report)
	}

	_, err = fmt.Fprint(opts.Out, graph.GenerateMermaid(engine.Definition(), overlay))
	return err
}
