package entity

import (
	"errors"
	"fmt"
)

// ErrUnsupportedDirection is returned for direction codes other than the
// four cardinal ones.
var ErrUnsupportedDirection = errors.New("unsupported direction")

// Direction is a cardinal facing. The values are the blueprint codes.
type Direction int

const (
	North Direction = 0
	East  Direction = 2
	South Direction = 4
	West  Direction = 6
)

// Unset is the direction of an entity whose placement records none. The
// game omits the code for north-facing entities, so the two are the same.
const Unset = North

// DirectionFromCode maps a blueprint direction code to a Direction. A nil
// code means the placement carried no direction.
func DirectionFromCode(code *int) (Direction, error) {
	if code == nil {
		return Unset, nil
	}
	switch d := Direction(*code); d {
	case North, East, South, West:
		return d, nil
	}
	return Unset, fmt.Errorf("%w: code %d", ErrUnsupportedDirection, *code)
}

// Opposes reports whether two facings point head-on at each other.
func (d Direction) Opposes(other Direction) bool {
	switch d {
	case East:
		return other == West
	case West:
		return other == East
	case South:
		return other == North
	case North:
		return other == South
	}
	return false
}

// Front is the unit offset a belt facing d moves items toward.
func (d Direction) Front() Offset {
	switch d {
	case East:
		return Offset{1, 0}
	case South:
		return Offset{0, 1}
	case West:
		return Offset{-1, 0}
	default:
		return Offset{0, -1}
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Offset is a relative cell displacement.
type Offset struct {
	DX, DY int
}

// Neg returns the opposite displacement.
func (o Offset) Neg() Offset { return Offset{-o.DX, -o.DY} }

// Scale multiplies both components by k.
func (o Offset) Scale(k int) Offset { return Offset{o.DX * k, o.DY * k} }

// Position is an integer grid cell.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Add returns the cell displaced by o.
func (p Position) Add(o Offset) Position {
	return Position{p.X + o.DX, p.Y + o.DY}
}

func (p Position) String() string {
	return fmt.Sprintf("[%d, %d]", p.X, p.Y)
}
