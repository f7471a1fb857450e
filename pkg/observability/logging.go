package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
)

// LogHooks audits runs: starts and halts at info level, generations at debug.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.InfoContext(ctx, "run_start", "machine", e.Machine, "input", e.Input)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step",
				"machine", e.Machine,
				"generation", e.Generation,
				"running", e.Running,
				"accepted", e.Accepted,
				"rejected", e.Rejected,
				"vanished", e.Vanished,
			)
		},
		OnRunHalt: func(ctx context.Context, e *domain.RunEvent) {
			logger.InfoContext(ctx, "run_halt",
				"machine", e.Machine,
				"input", e.Input,
				"result", e.Result,
				"steps", e.Steps,
			)
		},
	}
}
