// Package rules implements the single-player Snake state machine.
//
// A Snake owns its game.Field outright. Callers steer it with direction
// commands, advance it one step per Tick, and read the board back through
// the read-only game.View returned by Field.
package rules

import (
	"fmt"
	"math/rand"

	"github.com/brensch/snake/game"
)

// MinSize is the smallest field that fits the two starting segments at
// (size/2, size/2) and (size/2, size/2+1) inside the walls.
const MinSize = 5

// InitialDirection is the heading of a fresh snake.
const InitialDirection = game.Up

// Status is the outcome of one Tick.
type Status uint8

const (
	Continue Status = iota
	GameOver
)

func (s Status) String() string {
	if s == Continue {
		return "continue"
	}
	return "game_over"
}

type Snake struct {
	direction     game.Direction
	lastDirection game.Direction
	body          []game.Point
	field         *game.Field

	over   bool
	won    bool
	ticks  int
	apples int
}

// NewSnake creates a field of the given size, seeds a two-segment snake in
// the middle heading up, and places the first apple.
func NewSnake(size int, rng *rand.Rand) (*Snake, error) {
	if size < MinSize {
		return nil, fmt.Errorf("new snake size=%d (min %d): %w", size, MinSize, game.ErrFieldTooSmall)
	}
	field, err := game.NewField(size, rng)
	if err != nil {
		return nil, fmt.Errorf("new snake: %w", err)
	}
	s := &Snake{field: field}
	s.Restart()
	return s, nil
}

// Restart wipes the interior and starts a fresh game. It always succeeds.
func (s *Snake) Restart() bool {
	s.field.ClearInterior()
	s.direction = InitialDirection
	s.lastDirection = InitialDirection
	s.over = false
	s.won = false
	s.ticks = 0
	s.apples = 0

	mid := s.field.Size() / 2
	s.body = append(s.body[:0], game.Point{X: mid, Y: mid}, game.Point{X: mid, Y: mid + 1})
	for _, p := range s.body {
		s.field.Set(p, game.SnakeBody)
	}
	s.placeApple()
	return true
}

// Up, Down, Left and Right steer the snake; see MoveCommand.
func (s *Snake) Up()    { s.MoveCommand(game.Up) }
func (s *Snake) Down()  { s.MoveCommand(game.Down) }
func (s *Snake) Left()  { s.MoveCommand(game.Left) }
func (s *Snake) Right() { s.MoveCommand(game.Right) }

// MoveCommand sets the heading for the next move unless d would reverse the
// last applied move. Commands between two moves overwrite each other.
func (s *Snake) MoveCommand(d game.Direction) {
	s.Steer(d)
}

// Steer is MoveCommand that reports whether d was accepted.
func (s *Snake) Steer(d game.Direction) bool {
	if s.lastDirection.Vector().Add(d.Vector()) == (game.Point{}) {
		return false
	}
	s.direction = d
	return true
}

// Tick advances one step.
func (s *Snake) Tick() Status {
	if s.Move() {
		return Continue
	}
	return GameOver
}

// Move advances the snake by one cell and reports whether the game goes on.
// It returns false on a wall or body collision (state untouched) and when
// the snake has just filled the whole interior. Once false has been
// returned, further moves keep returning false until Restart.
func (s *Snake) Move() bool {
	if s.over {
		return false
	}

	next := s.body[0].Add(s.direction.Vector())
	switch s.field.At(next) {
	case game.Empty:
		s.advance()
		return true

	case game.Apple:
		s.body = append(s.body, s.body[len(s.body)-1])
		s.advance()
		s.apples++
		if len(s.body) < s.field.Interior() {
			s.placeApple()
			return true
		}
		s.over = true
		s.won = true
		return false

	case game.Wall:
		s.over = true
		return false

	case game.SnakeBody:
		if next == s.body[len(s.body)-1] {
			s.advance()
			return true
		}
		s.over = true
		return false

	default:
		panic(fmt.Sprintf("rules: corrupt cell %v at %v", s.field.At(next), next))
	}
}

// advance commits the current heading without looking at what is ahead.
// While growing, the tail has been duplicated so the cell it clears is
// re-marked by the shift below.
func (s *Snake) advance() {
	s.lastDirection = s.direction
	s.ticks++

	tail := s.body[len(s.body)-1]
	if s.field.At(tail) != game.Apple {
		s.field.Set(tail, game.Empty)
	}
	for i := len(s.body) - 1; i > 0; i-- {
		s.body[i] = s.body[i-1]
		s.field.Set(s.body[i], game.SnakeBody)
	}
	s.body[0] = s.body[0].Add(s.direction.Vector())
	s.field.Set(s.body[0], game.SnakeBody)
}

func (s *Snake) placeApple() {
	if _, err := s.field.PlaceApple(); err != nil {
		// The win check in Move keeps at least one free cell here.
		panic(fmt.Sprintf("rules: place apple with body len %d: %v", len(s.body), err))
	}
}

// Field exposes the board for rendering.
func (s *Snake) Field() game.View { return s.field }

// Body returns a copy of the segments, head first.
func (s *Snake) Body() []game.Point {
	out := make([]game.Point, len(s.body))
	copy(out, s.body)
	return out
}

func (s *Snake) Head() game.Point { return s.body[0] }
func (s *Snake) Tail() game.Point { return s.body[len(s.body)-1] }
func (s *Snake) Len() int         { return len(s.body) }

func (s *Snake) Direction() game.Direction     { return s.direction }
func (s *Snake) LastDirection() game.Direction { return s.lastDirection }

// Over reports whether the last Move ended the game.
func (s *Snake) Over() bool { return s.over }

// Won reports whether the game ended with the interior full of snake.
func (s *Snake) Won() bool { return s.won }

// Ticks counts successful moves since the last restart.
func (s *Snake) Ticks() int { return s.ticks }

// Apples counts apples eaten since the last restart.
func (s *Snake) Apples() int { return s.apples }
