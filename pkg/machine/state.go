package machine

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// Transition is a snapshot of one row of a state's transition table.
type Transition struct {
	Trigger string
	Next    []string
}

// State is a named node of the machine graph.
type State struct {
	name    string
	command domain.Command
	memory  string

	// order keeps triggers in insertion order; it decides the order of the
	// timelines a step produces.
	order []string
	table map[string][]string
}

// NewState creates a state. Commands that operate on a memory (READ, WRITE and
// the MOVE family) must name one.
func NewState(name string, cmd domain.Command, memoryName string) (*State, error) {
	if cmd.RequiresMemory() && memoryName == "" {
		return nil, fmt.Errorf("state %s: %w: %s", name, domain.ErrMissingMemory, cmd)
	}
	return &State{
		name:    name,
		command: cmd,
		memory:  memoryName,
		table:   make(map[string][]string),
	}, nil
}

func (s *State) Name() string            { return s.name }
func (s *State) Command() domain.Command { return s.command }

// Memory returns the name of the bound memory, empty when the command needs none.
func (s *State) Memory() string { return s.memory }

// AddTransition appends next to the successors of trigger. Repeating a trigger
// adds another successor instead of replacing it.
func (s *State) AddTransition(trigger, next string) {
	if _, ok := s.table[trigger]; !ok {
		s.order = append(s.order, trigger)
	}
	s.table[trigger] = append(s.table[trigger], next)
}

// Next returns a copy of the successors of trigger. An empty result means the
// trigger is rejected.
func (s *State) Next(trigger string) []string {
	return append([]string(nil), s.table[trigger]...)
}

// Transitions returns a copy of the whole table in trigger insertion order.
func (s *State) Transitions() []Transition {
	out := make([]Transition, 0, len(s.order))
	for _, trigger := range s.order {
		out = append(out, Transition{Trigger: trigger, Next: s.Next(trigger)})
	}
	return out
}

// successors returns the live table row; engine use only.
func (s *State) successors(trigger string) []string {
	return s.table[trigger]
}
