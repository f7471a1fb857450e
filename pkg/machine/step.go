package machine

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/memory"
)

type outcomeKind int

const (
	// vanished: the timeline produced no successor and leaves the generation.
	vanished outcomeKind = iota
	// halted: no trigger matched; the timeline stays, marked REJECTED.
	halted
	// branched: one or more successor timelines.
	branched
)

type outcome struct {
	kind      outcomeKind
	timelines []*Timeline
}

// Step advances every running timeline by one command.
//
// The first successor of a timeline takes its slot; extra successors are
// appended after all slots. Accepted timelines are carried forward as they are
// and rejected ones are dropped before stepping.
//
// A graph changed since Start is validated again first; a configuration error
// leaves the current generation as it is.
func (m *Machine) Step(ctx context.Context) error {
	if !m.started {
		return domain.ErrNotStarted
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.stale {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("step %s: %w", m.label(), err)
		}
		m.stale = false
	}

	var slots, extra []*Timeline
	lost := 0
	for _, tl := range m.timelines {
		switch tl.status {
		case domain.StatusRejected:
			continue
		case domain.StatusAccepted:
			slots = append(slots, tl)
			continue
		}
		res := m.stepTimeline(tl)
		switch res.kind {
		case vanished:
			lost++
		case halted:
			slots = append(slots, res.timelines[0])
		case branched:
			slots = append(slots, res.timelines[0])
			extra = append(extra, res.timelines[1:]...)
		}
	}
	m.timelines = append(slots, extra...)
	m.generation++

	ev := m.stepEvent(lost)
	m.logger.Debug("generation stepped",
		"machine", m.label(),
		"generation", ev.Generation,
		"running", ev.Running,
		"accepted", ev.Accepted,
		"rejected", ev.Rejected,
		"vanished", lost,
	)
	if m.hooks.OnStep != nil {
		m.hooks.OnStep(ctx, ev)
	}
	return nil
}

// Run steps until a timeline accepts or none is running. It never bounds the
// number of generations: a looping machine runs until ctx is cancelled.
func (m *Machine) Run(ctx context.Context) (domain.Result, error) {
	if !m.started {
		return domain.ResultRejected, domain.ErrNotStarted
	}
	for m.IsRunning() && !m.ShouldHalt() {
		if err := m.Step(ctx); err != nil {
			return m.Result(), err
		}
	}

	result := m.Result()
	m.logger.Info("run halted", "machine", m.label(), "input", m.input, "result", result, "steps", m.generation)
	if m.hooks.OnRunHalt != nil {
		m.hooks.OnRunHalt(ctx, &domain.RunEvent{
			EventBase: m.event(domain.EventRunHalt),
			Input:     m.input,
			Result:    result,
			Steps:     m.generation,
		})
	}
	return result, nil
}

func (m *Machine) stepEvent(lost int) *domain.StepEvent {
	ev := &domain.StepEvent{
		EventBase:  m.event(domain.EventStep),
		Generation: m.generation,
		Vanished:   lost,
	}
	for _, tl := range m.timelines {
		switch tl.status {
		case domain.StatusRunning:
			ev.Running++
		case domain.StatusAccepted:
			ev.Accepted++
		case domain.StatusRejected:
			ev.Rejected++
		}
	}
	return ev
}

func (m *Machine) stepTimeline(tl *Timeline) outcome {
	s := m.states[tl.state]
	m.logger.Debug("dispatch", "state", s.name, "command", s.command)

	switch s.command {
	case domain.CommandScan, domain.CommandScanRight:
		return m.scan(tl, s, domain.Right)
	case domain.CommandScanLeft:
		return m.scan(tl, s, domain.Left)
	case domain.CommandRead:
		return m.read(tl, s)
	case domain.CommandPrint:
		return m.print(tl, s)
	case domain.CommandWrite:
		return m.write(tl, s)
	}
	if d, ok := s.command.Direction(); ok {
		return m.move(tl, s, d)
	}
	return outcome{kind: vanished}
}

func (m *Machine) scan(tl *Timeline, s *State, d domain.Direction) outcome {
	in := tl.InputTape()
	sym := in.Move(d)
	return follow(tl, s.successors(string(sym)), in, tl.OutputTape(), tl.Memories())
}

func (m *Machine) read(tl *Timeline, s *State) outcome {
	mems := tl.Memories()
	store, ok := mems[s.memory].(memory.Store)
	if !ok {
		// Memories added after Start are not part of running timelines.
		return reject(tl)
	}
	sym, ok := store.Pop()
	if !ok {
		return reject(tl)
	}
	return follow(tl, s.successors(string(sym)), tl.InputTape(), tl.OutputTape(), mems)
}

func (m *Machine) print(tl *Timeline, s *State) outcome {
	in := tl.InputTape()
	mems := tl.Memories()

	var next []*Timeline
	for _, trigger := range s.order {
		out := tl.OutputTape()
		out.Write(domain.Symbol(trigger))
		out.MoveRight()
		for _, name := range s.table[trigger] {
			next = append(next, spawn(name, in, out, mems))
		}
	}
	return branch(next)
}

func (m *Machine) write(tl *Timeline, s *State) outcome {
	if _, ok := tl.memories[s.memory].(memory.Store); !ok {
		return reject(tl)
	}
	in := tl.InputTape()
	out := tl.OutputTape()

	var next []*Timeline
	for _, trigger := range s.order {
		mems := tl.Memories()
		mems[s.memory].(memory.Store).Push(domain.Symbol(trigger))
		for _, name := range s.table[trigger] {
			next = append(next, spawn(name, in, out, mems))
		}
	}
	return branch(next)
}

func (m *Machine) move(tl *Timeline, s *State, d domain.Direction) outcome {
	moved := tl.Memories()
	tape, ok := moved[s.memory].(*memory.Tape)
	if !ok {
		return reject(tl)
	}
	sym := tape.Move(d)
	in := tl.InputTape()
	out := tl.OutputTape()

	var next []*Timeline
	for _, trigger := range s.order {
		expected, write := SplitMoveTrigger(trigger)
		if expected != sym {
			continue
		}
		mems := memory.CloneAll(moved)
		mems[s.memory].(*memory.Tape).Write(write)
		for _, name := range s.table[trigger] {
			next = append(next, spawn(name, in, out, mems))
		}
	}
	if len(next) == 0 {
		return reject(tl)
	}
	return branch(next)
}

// SplitMoveTrigger splits a MOVE trigger "expected/write" on its first slash.
// Without a slash the cell is rewritten with the symbol it already holds.
func SplitMoveTrigger(trigger string) (expected, write domain.Symbol) {
	exp, wr, ok := strings.Cut(trigger, "/")
	if !ok {
		return domain.Symbol(trigger), domain.Symbol(trigger)
	}
	return domain.Symbol(exp), domain.Symbol(wr)
}

// follow builds the successors of a read-style command. With no matching
// trigger the timeline itself is rejected.
func follow(tl *Timeline, names []string, in, out *memory.Tape, mems map[string]memory.Memory) outcome {
	if len(names) == 0 {
		return reject(tl)
	}
	next := make([]*Timeline, 0, len(names))
	for _, name := range names {
		next = append(next, spawn(name, in, out, mems))
	}
	return outcome{kind: branched, timelines: next}
}

func reject(tl *Timeline) outcome {
	tl.setStatus(domain.StatusRejected)
	return outcome{kind: halted, timelines: []*Timeline{tl}}
}

func branch(next []*Timeline) outcome {
	if len(next) == 0 {
		return outcome{kind: vanished}
	}
	return outcome{kind: branched, timelines: next}
}

// spawn is the only place where the terminal names turn into a status.
func spawn(name string, in, out *memory.Tape, mems map[string]memory.Memory) *Timeline {
	tl := newTimeline(name, in, out, mems)
	switch name {
	case domain.AcceptState:
		tl.setStatus(domain.StatusAccepted)
	case domain.RejectState:
		tl.setStatus(domain.StatusRejected)
	}
	return tl
}
