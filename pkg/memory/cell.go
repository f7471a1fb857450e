package memory

import "github.com/aretw0/automata/pkg/domain"

// noCell marks an unset neighbour link.
const noCell = -1

// cell is a node of the tape grid. Neighbour links are indices into the owning
// tape's arena, indexed by domain.Direction.
type cell struct {
	symbol domain.Symbol
	links  [4]int
}

func newCell(s domain.Symbol) cell {
	return cell{
		symbol: s,
		links:  [4]int{noCell, noCell, noCell, noCell},
	}
}

// alloc appends a cell to the arena and returns its index.
func (t *Tape) alloc(s domain.Symbol) int {
	t.cells = append(t.cells, newCell(s))
	return len(t.cells) - 1
}

// join links a to b so that b is the neighbour of a in direction d.
// Links are always mutual.
func (t *Tape) join(a, b int, d domain.Direction) {
	t.cells[a].links[d] = b
	t.cells[b].links[d.Opposite()] = a
}

func (t *Tape) neighbour(c int, d domain.Direction) int {
	return t.cells[c].links[d]
}
