package domain

import "fmt"

// MemoryKind names the data structure backing a declared memory.
type MemoryKind string

const (
	MemoryStack  MemoryKind = "STACK"
	MemoryQueue  MemoryKind = "QUEUE"
	MemoryTape   MemoryKind = "TAPE"
	MemoryTape2D MemoryKind = "2D_TAPE"
)

// ParseMemoryKind validates a memory kind name.
func ParseMemoryKind(s string) (MemoryKind, error) {
	switch k := MemoryKind(s); k {
	case MemoryStack, MemoryQueue, MemoryTape, MemoryTape2D:
		return k, nil
	}
	return "", fmt.Errorf("unknown memory kind %q", s)
}

// IsTape reports whether the kind is a 1D or 2D tape.
func (k MemoryKind) IsTape() bool {
	return k == MemoryTape || k == MemoryTape2D
}

// Definition is the declarative form of a machine.
// Parsers and loaders produce it; the compiler turns it into a runnable machine.
type Definition struct {
	ID          string       `json:"id" yaml:"id" mapstructure:"id"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Memories    []MemoryDecl `json:"memories,omitempty" yaml:"memories,omitempty" mapstructure:"memories"`
	States      []StateDecl  `json:"states" yaml:"states" mapstructure:"states"`
}

// MemoryDecl declares a named memory template.
type MemoryDecl struct {
	Kind MemoryKind `json:"kind" yaml:"kind" mapstructure:"kind"`
	Name string     `json:"name" yaml:"name" mapstructure:"name"`

	// Content seeds the template: the cells of a tape, or the symbols of a
	// stack/queue in push order.
	Content string `json:"content,omitempty" yaml:"content,omitempty" mapstructure:"content"`
}

// StateDecl declares a state, its command and its outgoing transitions.
// The first declared state is the initial state.
type StateDecl struct {
	Name        string           `json:"name" yaml:"name" mapstructure:"name"`
	Command     Command          `json:"command,omitempty" yaml:"command,omitempty" mapstructure:"command"`
	Memory      string           `json:"memory,omitempty" yaml:"memory,omitempty" mapstructure:"memory"`
	Transitions []TransitionDecl `json:"transitions,omitempty" yaml:"transitions,omitempty" mapstructure:"transitions"`
}

// TransitionDecl is a single trigger -> successor edge.
type TransitionDecl struct {
	Trigger string `json:"trigger" yaml:"trigger" mapstructure:"trigger"`
	To      string `json:"to" yaml:"to" mapstructure:"to"`
}

// StateNames returns the declared state names in declaration order.
func (d *Definition) StateNames() []string {
	names := make([]string, 0, len(d.States))
	for _, s := range d.States {
		names = append(names, s.Name)
	}
	return names
}
