/*
Package runner drives a compiled machine from Start to a halting generation.

The engine itself never bounds a run: a machine whose timelines loop keeps
stepping until its context is cancelled. The runner is the caller-side loop
that adds what frontends need around that contract: an optional step budget,
a per-generation observer for traces, and a domain.RunReport at the end.

# Usage

	r := runner.NewRunner(
		runner.WithMaxSteps(1000),
		runner.WithObserver(func(gen int, timelines []domain.TimelineSnapshot) {
			fmt.Println(gen, len(timelines))
		}),
	)

	report, err := r.Run(ctx, m, "0011")
	if errors.Is(err, domain.ErrStepBudget) {
		// report still holds the last generation
	}
*/
package runner
