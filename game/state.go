// Package game defines the board types for classic Snake.
//
// A board is a square Field of cells. The outer ring is permanently Wall and
// the interior holds Empty, SnakeBody and Apple cells. Coordinates follow
// screen conventions: (0,0) is top-left and Y grows downward.
package game

import "fmt"

// Point is a board coordinate or a displacement between two coordinates.
type Point struct {
	X int
	Y int
}

// Add returns p offset by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Neg returns the opposite displacement.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is one of the four unit moves a snake head can make.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every valid direction in declaration order.
var Directions = [...]Direction{Up, Down, Left, Right}

// Vector returns the unit displacement for d.
func (d Direction) Vector() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	case Right:
		return Point{X: 1, Y: 0}
	}
	panic(fmt.Sprintf("game: invalid direction %d", uint8(d)))
}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	panic(fmt.Sprintf("game: invalid direction %d", uint8(d)))
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
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// Cell is the state of a single board square.
// The set is closed: any value outside the four constants is corruption.
type Cell uint8

const (
	Empty Cell = iota
	Wall
	SnakeBody
	Apple
)

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case SnakeBody:
		return "snake"
	case Apple:
		return "apple"
	default:
		return fmt.Sprintf("cell(%d)", uint8(c))
	}
}

// glyph is the single-byte form used by Field.String.
func (c Cell) glyph() byte {
	switch c {
	case Empty:
		return '.'
	case Wall:
		return '#'
	case SnakeBody:
		return 'o'
	case Apple:
		return '*'
	default:
		return '?'
	}
}
