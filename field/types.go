package field

import "fmt"

// MaxSize is the largest grid size whose 4N perimeter slots can all hold
// distinct byte values.
const MaxSize = 64

// Mirror is the orientation of one interior cell.
type Mirror uint8

const (
	// MirrorUnset is the zero value. A validated field never holds it.
	MirrorUnset Mirror = iota
	// Empty is transparent and never rotates.
	Empty
	// Forward is '/'.
	Forward
	// Backward is '\'.
	Backward
	// Straight is '-', a pass-through that still rotates.
	Straight
)

// ParseMirror maps a definition symbol to its orientation.
// Only '/', '\\', '-' and ' ' are recognized.
func ParseMirror(ch byte) (Mirror, bool) {
	switch ch {
	case '/':
		return Forward, true
	case '\\':
		return Backward, true
	case '-':
		return Straight, true
	case ' ':
		return Empty, true
	}
	return MirrorUnset, false
}

// Symbol returns the definition symbol for m, or '?' for MirrorUnset.
func (m Mirror) Symbol() byte {
	switch m {
	case Forward:
		return '/'
	case Backward:
		return '\\'
	case Straight:
		return '-'
	case Empty:
		return ' '
	}
	return '?'
}

// Valid reports whether m is one of the four legal orientations.
func (m Mirror) Valid() bool {
	return m >= Empty && m <= Straight
}

// Rotate returns the orientation after one traversal:
// Forward → Straight → Backward → Forward. Empty is fixed.
func (m Mirror) Rotate() Mirror {
	switch m {
	case Forward:
		return Straight
	case Straight:
		return Backward
	case Backward:
		return Forward
	}
	return m
}

// Deflect returns the travel direction after entering a cell with
// orientation m while moving in direction d.
func (m Mirror) Deflect(d Direction) Direction {
	switch m {
	case Forward:
		switch d {
		case Down:
			return Left
		case Left:
			return Down
		case Right:
			return Up
		case Up:
			return Right
		}
	case Backward:
		switch d {
		case Down:
			return Right
		case Left:
			return Up
		case Right:
			return Down
		case Up:
			return Left
		}
	}
	return d
}

func (m Mirror) String() string {
	switch m {
	case Empty:
		return "Empty"
	case Forward:
		return "Forward"
	case Backward:
		return "Backward"
	case Straight:
		return "Straight"
	case MirrorUnset:
		return "Unset"
	}
	return fmt.Sprintf("Mirror(%d)", uint8(m))
}

// Direction is a unit step on the grid.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// numDirections sizes the per-node link table.
const numDirections = 4

// Opposite returns the reverse of d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	}
	return Left
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Node identifies a cell or a perimeter slot inside one Field.
type Node int

// NoNode marks a missing link.
const NoNode Node = -1

// Field is one mirror grid plus its perimeter ring.
// Mirror orientations and slot values are mutable; slot positions and
// links are fixed once Link has run.
type Field struct {
	size      int
	mirrors   []Mirror
	perimeter []byte
	links     [][numDirections]Node
	linked    bool
}
