package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/automata"
)

// createEngine initializes an automata engine with standard CLI conventions.
func createEngine(source string, maxSteps int, debug bool, logger *slog.Logger) (*automata.Engine, error) {
	opts := []automata.Option{
		automata.WithLogger(logger),
		automata.WithMaxSteps(maxSteps),
	}
	if debug {
		opts = append(opts, automata.WithLifecycleHooks(createDebugHooks(logger)))
	}

	engine, err := automata.New(source, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}
