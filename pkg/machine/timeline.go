package machine

import (
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/memory"
)

// Timeline is one hypothetical execution of a machine.
//
// Every accessor returns a clone: callers can mutate what they get without
// corrupting the timeline.
type Timeline struct {
	state    string
	input    *memory.Tape
	output   *memory.Tape
	memories map[string]memory.Memory
	status   domain.Status
}

// newTimeline takes ownership of the carriers as they are. Callers decide what
// is shared and what is cloned.
func newTimeline(state string, input, output *memory.Tape, memories map[string]memory.Memory) *Timeline {
	return &Timeline{
		state:    state,
		input:    input,
		output:   output,
		memories: memories,
		status:   domain.StatusRunning,
	}
}

func (t *Timeline) CurrentState() string   { return t.state }
func (t *Timeline) Status() domain.Status { return t.status }

func (t *Timeline) InputTape() *memory.Tape  { return t.input.Clone() }
func (t *Timeline) OutputTape() *memory.Tape { return t.output.Clone() }

// Memories returns a clone of every bound memory.
func (t *Timeline) Memories() map[string]memory.Memory {
	return memory.CloneAll(t.memories)
}

// Memory returns a clone of a single memory.
func (t *Timeline) Memory(name string) (memory.Memory, bool) {
	m, ok := t.memories[name]
	if !ok {
		return nil, false
	}
	return memory.Clone(m), true
}

func (t *Timeline) setStatus(s domain.Status) {
	t.status = s
}

// Snapshot renders the timeline without cloning it.
func (t *Timeline) Snapshot(index int) domain.TimelineSnapshot {
	snap := domain.TimelineSnapshot{
		Index:  index,
		State:  t.state,
		Status: t.status,
		Input:  t.input.String(),
		Output: t.output.Render(false),
	}
	if len(t.memories) > 0 {
		snap.Memories = make(map[string]string, len(t.memories))
		for name, m := range t.memories {
			snap.Memories[name] = m.String()
		}
	}
	return snap
}
