package memory

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Memory is any carrier a machine can bind to a state by name.
// The set of implementations is closed: Tape, Stack and Queue.
type Memory interface {
	Kind() domain.MemoryKind
	String() string
	clone() Memory
}

// Store is a Memory that symbols can be pushed to and popped from (Stack, Queue).
type Store interface {
	Memory
	Push(s domain.Symbol)
	Pop() (domain.Symbol, bool)
	Peek() (domain.Symbol, bool)
	Len() int
	IsEmpty() bool
}

// Clone returns an independent copy of m.
func Clone(m Memory) Memory {
	if m == nil {
		return nil
	}
	return m.clone()
}

// CloneAll returns a new map holding an independent copy of every memory.
func CloneAll(src map[string]Memory) map[string]Memory {
	dst := make(map[string]Memory, len(src))
	for name, m := range src {
		dst[name] = Clone(m)
	}
	return dst
}

// New builds an empty (or seeded) memory of the given kind.
// For tapes, content becomes the cells of the first row; for stacks and queues
// each character of content is pushed in order.
func New(kind domain.MemoryKind, content string) (Memory, error) {
	switch kind {
	case domain.MemoryTape:
		return NewTape(content), nil
	case domain.MemoryTape2D:
		return NewTape2D(content), nil
	case domain.MemoryStack:
		return NewStack(symbols(content)...), nil
	case domain.MemoryQueue:
		return NewQueue(symbols(content)...), nil
	}
	return nil, fmt.Errorf("unknown memory kind %q", kind)
}

func symbols(content string) []domain.Symbol {
	content = strings.TrimSpace(content)
	out := make([]domain.Symbol, 0, len(content))
	for _, r := range content {
		out = append(out, domain.Symbol(r))
	}
	return out
}
