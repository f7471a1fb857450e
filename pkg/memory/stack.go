package memory

import (
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Stack is a LIFO sequence of symbols.
type Stack struct {
	items []domain.Symbol
}

// NewStack creates a stack holding items, the last one on top.
func NewStack(items ...domain.Symbol) *Stack {
	return &Stack{items: append([]domain.Symbol(nil), items...)}
}

// Kind implements Memory.
func (s *Stack) Kind() domain.MemoryKind { return domain.MemoryStack }

// Push places sym on top of the stack.
func (s *Stack) Push(sym domain.Symbol) {
	s.items = append(s.items, sym)
}

// Pop removes and returns the top symbol. ok is false when the stack is empty.
func (s *Stack) Pop() (sym domain.Symbol, ok bool) {
	if len(s.items) == 0 {
		return "", false
	}
	sym = s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return sym, true
}

// Peek returns the top symbol without removing it.
func (s *Stack) Peek() (domain.Symbol, bool) {
	if len(s.items) == 0 {
		return "", false
	}
	return s.items[len(s.items)-1], true
}

// IsEmpty reports whether the stack holds no symbols.
func (s *Stack) IsEmpty() bool { return len(s.items) == 0 }

// Len returns the number of symbols in the stack.
func (s *Stack) Len() int { return len(s.items) }

// Clone returns a stack with its own backing storage.
func (s *Stack) Clone() *Stack {
	return NewStack(s.items...)
}

func (s *Stack) clone() Memory { return s.Clone() }

// String lists the symbols from bottom to top.
func (s *Stack) String() string {
	return join(s.items)
}

func join(items []domain.Symbol) string {
	var sb strings.Builder
	for _, it := range items {
		sb.WriteString(string(it))
	}
	return sb.String()
}
