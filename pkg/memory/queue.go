package memory

import "github.com/aretw0/automata/pkg/domain"

// Queue is a FIFO sequence of symbols: Pop always returns the oldest pushed symbol.
type Queue struct {
	items []domain.Symbol
}

// NewQueue creates a queue holding items, the first one at the head.
func NewQueue(items ...domain.Symbol) *Queue {
	return &Queue{items: append([]domain.Symbol(nil), items...)}
}

// Kind implements Memory.
func (q *Queue) Kind() domain.MemoryKind { return domain.MemoryQueue }

// Push appends sym at the tail.
func (q *Queue) Push(sym domain.Symbol) {
	q.items = append(q.items, sym)
}

// Pop removes and returns the head symbol. ok is false when the queue is empty.
func (q *Queue) Pop() (sym domain.Symbol, ok bool) {
	if len(q.items) == 0 {
		return "", false
	}
	sym = q.items[0]
	q.items[0] = ""
	q.items = q.items[1:]
	return sym, true
}

// Peek returns the head symbol without removing it.
func (q *Queue) Peek() (domain.Symbol, bool) {
	if len(q.items) == 0 {
		return "", false
	}
	return q.items[0], true
}

// IsEmpty reports whether the queue holds no symbols.
func (q *Queue) IsEmpty() bool { return len(q.items) == 0 }

// Len returns the number of symbols in the queue.
func (q *Queue) Len() int { return len(q.items) }

// Clone returns a queue with its own backing storage.
func (q *Queue) Clone() *Queue {
	return NewQueue(q.items...)
}

func (q *Queue) clone() Memory { return q.Clone() }

// String lists the symbols from head to tail.
func (q *Queue) String() string {
	return join(q.items)
}
