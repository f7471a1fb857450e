package memory

import (
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Tape is an auto-expanding grid of cells with a read/write head.
// The occupied region is always a solid rectangle: moving past an edge grows
// the whole edge, never a single cell.
type Tape struct {
	cells []cell
	head  int
	kind  domain.MemoryKind
}

// NewTape builds a single-row tape, one cell per character of input, with the
// head on the first cell. Surrounding white space is ignored; an empty input
// yields a single blank cell.
func NewTape(input string) *Tape {
	t := &Tape{kind: domain.MemoryTape}

	prev := noCell
	for _, r := range strings.TrimSpace(input) {
		idx := t.alloc(domain.Symbol(r))
		if prev != noCell {
			t.join(prev, idx, domain.Right)
		}
		prev = idx
	}
	if len(t.cells) == 0 {
		t.alloc(domain.Blank)
	}
	t.head = 0
	return t
}

// NewTape2D is NewTape for a tape declared as two dimensional.
func NewTape2D(input string) *Tape {
	t := NewTape(input)
	t.kind = domain.MemoryTape2D
	return t
}

// Kind implements Memory.
func (t *Tape) Kind() domain.MemoryKind {
	return t.kind
}

// CurrentSymbol returns the symbol under the head.
func (t *Tape) CurrentSymbol() domain.Symbol {
	return t.cells[t.head].symbol
}

// Write overwrites the symbol under the head and returns it.
func (t *Tape) Write(s domain.Symbol) domain.Symbol {
	t.cells[t.head].symbol = s
	return t.CurrentSymbol()
}

// MoveLeft is Move(domain.Left).
func (t *Tape) MoveLeft() domain.Symbol { return t.Move(domain.Left) }

// MoveRight is Move(domain.Right).
func (t *Tape) MoveRight() domain.Symbol { return t.Move(domain.Right) }

// MoveUp is Move(domain.Up).
func (t *Tape) MoveUp() domain.Symbol { return t.Move(domain.Up) }

// MoveDown is Move(domain.Down).
func (t *Tape) MoveDown() domain.Symbol { return t.Move(domain.Down) }

// Move moves the head one cell in direction d and returns the symbol now under it.
//
// When the head sits on the edge of the grid in direction d, a blank cell is
// created and the rest of that edge is filled along the orthogonal axis, so the
// grid stays rectangular.
func (t *Tape) Move(d domain.Direction) domain.Symbol {
	prev := t.head
	if next := t.neighbour(prev, d); next != noCell {
		t.head = next
		return t.CurrentSymbol()
	}

	back := d.Opposite()
	t.head = t.alloc(domain.Blank)
	t.join(t.head, prev, back)

	for _, check := range d.Orthogonal() {
		p := prev
		for t.neighbour(p, check) != noCell {
			n := t.alloc(domain.Blank)
			t.join(n, t.neighbour(p, check), back)
			t.join(n, t.neighbour(p, d), check.Opposite())
			p = t.neighbour(n, back)
		}
	}

	return t.CurrentSymbol()
}

// origin walks to the top-left-most reachable cell.
func (t *Tape) origin() int {
	c := t.head
	for t.neighbour(c, domain.Left) != noCell {
		c = t.neighbour(c, domain.Left)
	}
	for t.neighbour(c, domain.Up) != noCell {
		c = t.neighbour(c, domain.Up)
	}
	return c
}

// Render prints the grid top to bottom, each row left to right, separated by
// newlines. When printBlank is false every blank symbol is removed.
func (t *Tape) Render(printBlank bool) string {
	var sb strings.Builder
	for row := t.origin(); row != noCell; row = t.neighbour(row, domain.Down) {
		for c := row; c != noCell; c = t.neighbour(c, domain.Right) {
			sb.WriteString(string(t.cells[c].symbol))
		}
		sb.WriteByte('\n')
	}

	out := strings.TrimSuffix(sb.String(), "\n")
	if !printBlank {
		out = strings.ReplaceAll(out, string(domain.Blank), "")
	}
	return out
}

// String renders the grid including blanks.
func (t *Tape) String() string {
	return t.Render(true)
}

// Clone returns an independent tape with the same topology and symbols, the
// head placed on the copy of the current cell.
//
// The grid is walked depth first from the head. visited holds the cells whose
// links were already wired in the copy; mapped holds the copy of each original
// cell, so no cell is ever duplicated regardless of the walk order.
func (t *Tape) Clone() *Tape {
	c := &Tape{
		cells: make([]cell, 0, len(t.cells)),
		kind:  t.kind,
	}

	mapped := make([]int, len(t.cells))
	for i := range mapped {
		mapped[i] = noCell
	}
	visited := make([]bool, len(t.cells))

	copyOf := func(orig int) int {
		if mapped[orig] == noCell {
			mapped[orig] = c.alloc(t.cells[orig].symbol)
		}
		return mapped[orig]
	}

	c.head = copyOf(t.head)
	stack := []int{t.head}
	for len(stack) > 0 {
		orig := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[orig] {
			continue
		}
		visited[orig] = true

		dup := copyOf(orig)
		for _, d := range domain.Directions {
			n := t.neighbour(orig, d)
			if n == noCell {
				continue
			}
			c.join(dup, copyOf(n), d)
			if !visited[n] {
				stack = append(stack, n)
			}
		}
	}

	return c
}

func (t *Tape) clone() Memory {
	return t.Clone()
}

// Size returns the number of columns and rows of the grid.
func (t *Tape) Size() (width, height int) {
	o := t.origin()
	for c := o; c != noCell; c = t.neighbour(c, domain.Right) {
		width++
	}
	for c := o; c != noCell; c = t.neighbour(c, domain.Down) {
		height++
	}
	return width, height
}
