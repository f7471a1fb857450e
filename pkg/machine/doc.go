/*
Package machine is the execution engine of the automata module.

A Machine owns a graph of named States, each carrying one primitive command and a table of
trigger -> successor transitions, plus the memory templates (stacks, queues, tapes) that seed
every run. Because a trigger may map to several successors, one step can fork a computation
into many independent Timelines. The machine advances all of them generation by generation
until one accepts or none is left running.

# Usage

	m := machine.New()
	a, _ := machine.NewState("A", domain.CommandScan, "")
	m.AddState(a)
	_ = m.AddStateTransition("A", "1", "accept")

	if err := m.Start(ctx, "1"); err != nil {
		return err
	}
	result, err := m.Run(ctx)

Rejection and acceptance are outcomes, not errors: inspect the returned domain.Result or the
status of each Timeline. Errors are reserved for configuration problems and cancellation.
*/
package machine
