package compiler

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/machine"
	"github.com/aretw0/automata/pkg/memory"
)

// Build turns a definition into a validated machine.
func Build(def *domain.Definition, opts ...machine.Option) (*machine.Machine, error) {
	if def == nil {
		return nil, fmt.Errorf("build: %w", domain.ErrNoStates)
	}
	m := machine.New(append([]machine.Option{machine.WithName(def.ID)}, opts...)...)

	for _, decl := range def.Memories {
		mem, err := memory.New(decl.Kind, decl.Content)
		if err != nil {
			return nil, fmt.Errorf("memory %s: %w", decl.Name, err)
		}
		m.AddMemory(decl.Name, mem)
	}

	// 1. Register every state so transitions can point forward.
	seen := make(map[string]bool, len(def.States))
	for _, decl := range def.States {
		if seen[decl.Name] {
			return nil, fmt.Errorf("invalid machine %s: state %s: %w", def.ID, decl.Name, domain.ErrDuplicateState)
		}
		seen[decl.Name] = true
		s, err := machine.NewState(decl.Name, decl.Command, decl.Memory)
		if err != nil {
			return nil, err
		}
		m.AddState(s)
	}

	// 2. Wire the transitions in declaration order.
	for _, decl := range def.States {
		for _, t := range decl.Transitions {
			if err := m.AddStateTransition(decl.Name, t.Trigger, t.To); err != nil {
				return nil, err
			}
		}
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid machine %s: %w", def.ID, err)
	}
	return m, nil
}

// Compile parses a file and builds its machine in one go.
func Compile(name string, data []byte, opts ...machine.Option) (*domain.Definition, *machine.Machine, error) {
	def, err := ParseFile(name, data)
	if err != nil {
		return nil, nil, err
	}
	m, err := Build(def, opts...)
	if err != nil {
		return def, nil, err
	}
	return def, m, nil
}
