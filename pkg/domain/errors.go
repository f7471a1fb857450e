package domain

import "errors"

// Configuration errors. They are returned at construction time and abort the build.
var (
	// ErrUnknownState is returned when a transition names a state that was never added.
	ErrUnknownState = errors.New("unknown state")

	// ErrMissingMemory is returned when READ, WRITE or MOVE_* is declared without a memory name.
	ErrMissingMemory = errors.New("command requires a memory name")

	// ErrDuplicateState is returned when two states are declared with the same name.
	ErrDuplicateState = errors.New("duplicate state")

	// ErrUnknownMemory is returned when a state is bound to a memory that was never added.
	ErrUnknownMemory = errors.New("unknown memory")

	// ErrMemoryKind is returned when a state is bound to a memory of the wrong kind
	// (e.g. READ on a tape, MOVE_LEFT on a stack).
	ErrMemoryKind = errors.New("memory kind does not support command")

	// ErrUnknownCommand is returned when a command name cannot be parsed.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrNoStates is returned when a run is started on a machine without states.
	ErrNoStates = errors.New("machine has no states")
)

// Runtime errors.
var (
	// ErrNotStarted is returned when stepping a machine before Start.
	ErrNotStarted = errors.New("machine not started")

	// ErrStepBudget is returned by callers that cap the number of generations of a run.
	ErrStepBudget = errors.New("step budget exhausted")
)

// Lookup errors of the loaders and stores.
var (
	// ErrMachineNotFound is returned when a definition ID cannot be found by a loader.
	ErrMachineNotFound = errors.New("machine not found")

	// ErrReportNotFound is returned when a run report ID cannot be found in the store.
	ErrReportNotFound = errors.New("report not found")
)
