package dsl

import (
	"fmt"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/machine"
)

// Builder manages the machine construction.
type Builder struct {
	id       string
	memories []domain.MemoryDecl
	order    []string
	states   map[string]*StateBuilder
}

// New creates a new machine builder.
func New(id string) *Builder {
	return &Builder{
		id:     id,
		states: make(map[string]*StateBuilder),
	}
}

// Stack declares a stack seeded with content (pushed left to right).
func (b *Builder) Stack(name, content string) *Builder {
	return b.memory(domain.MemoryStack, name, content)
}

// Queue declares a queue seeded with content.
func (b *Builder) Queue(name, content string) *Builder {
	return b.memory(domain.MemoryQueue, name, content)
}

// Tape declares a one-row tape holding content, head on its first cell.
func (b *Builder) Tape(name, content string) *Builder {
	return b.memory(domain.MemoryTape, name, content)
}

// Tape2D declares a tape meant to grow in both axes.
func (b *Builder) Tape2D(name, content string) *Builder {
	return b.memory(domain.MemoryTape2D, name, content)
}

func (b *Builder) memory(kind domain.MemoryKind, name, content string) *Builder {
	b.memories = append(b.memories, domain.MemoryDecl{Kind: kind, Name: name, Content: content})
	return b
}

// State creates a state in the machine.
// If the state already exists, it returns the existing builder.
// The first state created is the initial state.
func (b *Builder) State(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{
		decl: domain.StateDecl{Name: name},
	}
	b.states[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Definition returns the declarative form of the machine.
func (b *Builder) Definition() domain.Definition {
	def := domain.Definition{
		ID:       b.id,
		Memories: append([]domain.MemoryDecl(nil), b.memories...),
		States:   make([]domain.StateDecl, 0, len(b.order)),
	}
	for _, name := range b.order {
		def.States = append(def.States, b.states[name].Build())
	}
	return def
}

// Machine compiles the definition into a runnable machine.
func (b *Builder) Machine(opts ...machine.Option) (*machine.Machine, error) {
	def := b.Definition()
	return compiler.Build(&def, opts...)
}

// Build compiles the machine into a MemoryLoader holding a single definition.
func (b *Builder) Build() (*memory.Loader, error) {
	loader, err := memory.NewFromDefinitions(b.Definition())
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
