package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
)

// GlobalOptions are the persistent flags of every command.
type GlobalOptions struct {
	ConfigPath string
	Debug      bool
	LogFile    string
}

// createLogger configures the application logger.
// Without --debug or --log-file the CLI stays silent on stderr.
func createLogger(opts GlobalOptions) (*slog.Logger, func(), error) {
	level := logging.Level(opts.Debug)
	if opts.LogFile != "" {
		logger, closer, err := logging.NewWithFile(level, opts.LogFile)
		if err != nil {
			return nil, nil, err
		}
		return logger, func() { _ = closer.Close() }, nil
	}
	if opts.Debug {
		return logging.New(level), func() {}, nil
	}
	return logging.NewNop(), func() {}, nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.Debug("Run Start", "machine", e.Machine, "input", e.Input)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("Generation", "generation", e.Generation, "running", e.Running, "vanished", e.Vanished)
		},
		OnRunHalt: func(ctx context.Context, e *domain.RunEvent) {
			logger.Debug("Run Halt", "result", e.Result, "steps", e.Steps)
		},
	}
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

// handleExecutionError keeps Ctrl+C from turning into a failure exit code.
func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}
