package domain

import "fmt"

// Symbol is the content of a single tape cell or memory slot.
type Symbol string

// Blank occupies every cell that was never explicitly written.
const Blank Symbol = "Ø"

// IsBlank reports whether s is the reserved blank symbol.
func (s Symbol) IsBlank() bool {
	return s == Blank
}

func (s Symbol) String() string {
	return string(s)
}

// Direction is one of the four orthogonal head movements.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Directions lists every direction in the order neighbour links are visited.
var Directions = [4]Direction{Left, Right, Up, Down}

// Opposite returns the direction pointing back where d came from.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	default:
		return Up
	}
}

// Orthogonal returns the two directions of the axis perpendicular to d.
func (d Direction) Orthogonal() [2]Direction {
	if d == Left || d == Right {
		return [2]Direction{Up, Down}
	}
	return [2]Direction{Left, Right}
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}
