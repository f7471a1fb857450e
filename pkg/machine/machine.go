package machine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/memory"
)

// Machine is a non-deterministic automaton: a graph of states, the memory
// templates cloned into every run, and the timelines of the current run.
type Machine struct {
	name    string
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	initial string

	states   map[string]*State
	order    []string
	memories map[string]memory.Memory

	started    bool
	// stale is set when the graph or the memories change after Start.
	stale      bool
	input      string
	generation int
	timelines  []*Timeline
}

// New creates an empty machine.
func New(opts ...Option) *Machine {
	m := &Machine{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		states:   make(map[string]*State),
		memories: make(map[string]memory.Memory),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the label set with WithName.
func (m *Machine) Name() string { return m.name }

// AddState registers s under its name. The first state added becomes the
// initial state; adding a state with a known name replaces it.
func (m *Machine) AddState(s *State) {
	if _, ok := m.states[s.name]; !ok {
		m.order = append(m.order, s.name)
	}
	if m.initial == "" {
		m.initial = s.name
	}
	m.states[s.name] = s
	m.stale = m.started
}

// AddStateTransition appends next to the successors of trigger in the named
// state. The successor itself is checked later by Validate, so states may be
// wired before they are declared.
func (m *Machine) AddStateTransition(name, trigger, next string) error {
	s, ok := m.states[name]
	if !ok {
		return fmt.Errorf("add transition %s -(%s)-> %s: %w: %s", name, trigger, next, domain.ErrUnknownState, name)
	}
	s.AddTransition(trigger, next)
	m.stale = m.started
	return nil
}

// AddMemory registers a memory template. Every run starts from a clone of it.
func (m *Machine) AddMemory(name string, mem memory.Memory) {
	m.memories[name] = memory.Clone(mem)
	m.stale = m.started
}

// State returns the registered state called name.
func (m *Machine) State(name string) (*State, bool) {
	s, ok := m.states[name]
	return s, ok
}

// StateNames returns the registered state names in insertion order.
func (m *Machine) StateNames() []string {
	return append([]string(nil), m.order...)
}

// InitialState returns the name of the state every run starts in.
func (m *Machine) InitialState() string { return m.initial }

// Memories returns clones of the registered memory templates.
func (m *Machine) Memories() map[string]memory.Memory {
	return memory.CloneAll(m.memories)
}

// Validate checks the whole graph and reports every problem it finds.
func (m *Machine) Validate() error {
	if len(m.states) == 0 {
		return domain.ErrNoStates
	}
	var errs []error
	if tpl, ok := m.memories[domain.InputMemory]; ok {
		if _, isTape := tpl.(*memory.Tape); !isTape {
			errs = append(errs, fmt.Errorf("memory %q: %w: reserved for the input tape, got %s",
				domain.InputMemory, domain.ErrMemoryKind, tpl.Kind()))
		}
	}
	for _, name := range m.order {
		s := m.states[name]
		if !s.command.IsValid() {
			errs = append(errs, fmt.Errorf("state %s: %w: %q", name, domain.ErrUnknownCommand, s.command))
			continue
		}
		if err := m.validateMemory(s); err != nil {
			errs = append(errs, err)
		}
		for _, trigger := range s.order {
			for _, next := range s.table[trigger] {
				if _, ok := m.states[next]; ok || domain.IsTerminalName(next) {
					continue
				}
				errs = append(errs, fmt.Errorf("state %s on %q: %w: %s", name, trigger, domain.ErrUnknownState, next))
			}
		}
	}
	return errors.Join(errs...)
}

func (m *Machine) validateMemory(s *State) error {
	if !s.command.RequiresMemory() {
		return nil
	}
	if s.memory == domain.InputMemory {
		return fmt.Errorf("state %s: %w: %q is reserved for the input tape", s.name, domain.ErrUnknownMemory, s.memory)
	}
	mem, ok := m.memories[s.memory]
	if !ok {
		return fmt.Errorf("state %s: %w: %s", s.name, domain.ErrUnknownMemory, s.memory)
	}
	switch {
	case s.command.IsMove():
		if _, ok := mem.(*memory.Tape); !ok {
			return fmt.Errorf("state %s: %w: %s on %s %s", s.name, domain.ErrMemoryKind, s.command, mem.Kind(), s.memory)
		}
	default:
		if _, ok := mem.(memory.Store); !ok {
			return fmt.Errorf("state %s: %w: %s on %s %s", s.name, domain.ErrMemoryKind, s.command, mem.Kind(), s.memory)
		}
	}
	return nil
}

// Start validates the machine and seeds a single running timeline in the
// initial state. On a configuration error the previous run is left untouched.
func (m *Machine) Start(ctx context.Context, input string) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("start %s: %w", m.label(), err)
	}

	mems := memory.CloneAll(m.memories)
	var in *memory.Tape
	if tpl, ok := mems[domain.InputMemory].(*memory.Tape); ok {
		in = tpl
		delete(mems, domain.InputMemory)
	} else {
		in = memory.NewTape(string(domain.Blank) + input)
	}
	out := memory.NewTape(string(domain.Blank))

	m.input = input
	m.generation = 0
	m.timelines = []*Timeline{spawn(m.initial, in, out, mems)}
	m.started = true
	m.stale = false

	m.logger.Debug("run started", "machine", m.label(), "input", input, "initial", m.initial)
	if m.hooks.OnRunStart != nil {
		m.hooks.OnRunStart(ctx, &domain.RunEvent{
			EventBase: m.event(domain.EventRunStart),
			Input:     input,
		})
	}
	return nil
}

// Timelines returns the timelines of the current generation.
func (m *Machine) Timelines() []*Timeline {
	return append([]*Timeline(nil), m.timelines...)
}

// Generation returns the number of steps taken since Start.
func (m *Machine) Generation() int { return m.generation }

// Input returns the input of the current run.
func (m *Machine) Input() string { return m.input }

// AcceptedTimeline returns the first accepted timeline, if any.
func (m *Machine) AcceptedTimeline() (*Timeline, bool) {
	for _, tl := range m.timelines {
		if tl.status == domain.StatusAccepted {
			return tl, true
		}
	}
	return nil, false
}

// IsRunning reports whether at least one timeline can still be stepped.
func (m *Machine) IsRunning() bool {
	for _, tl := range m.timelines {
		if tl.status == domain.StatusRunning {
			return true
		}
	}
	return false
}

// ShouldHalt reports whether some timeline has accepted.
func (m *Machine) ShouldHalt() bool {
	_, ok := m.AcceptedTimeline()
	return ok
}

// Status aggregates the timelines: accepted wins, then running, else rejected.
func (m *Machine) Status() domain.Status {
	switch {
	case m.ShouldHalt():
		return domain.StatusAccepted
	case m.IsRunning():
		return domain.StatusRunning
	}
	return domain.StatusRejected
}

// Result is the verdict of the current generation.
func (m *Machine) Result() domain.Result {
	if m.ShouldHalt() {
		return domain.ResultAccepted
	}
	return domain.ResultRejected
}

// Snapshots renders every timeline of the current generation.
func (m *Machine) Snapshots() []domain.TimelineSnapshot {
	out := make([]domain.TimelineSnapshot, 0, len(m.timelines))
	for i, tl := range m.timelines {
		out = append(out, tl.Snapshot(i))
	}
	return out
}

func (m *Machine) label() string {
	if m.name == "" {
		return "machine"
	}
	return m.name
}

func (m *Machine) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, Machine: m.name}
}
