// field.go implements the board grid and apple spawning.

package game

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// MinFieldSize is the smallest side length that still leaves an interior.
const MinFieldSize = 3

var (
	ErrFieldTooSmall = errors.New("field too small")
	ErrFieldFull     = errors.New("field full")
)

// View is read-only access to a board, handed to renderers.
type View interface {
	Size() int
	CellAt(x, y int) Cell
	At(p Point) Cell
}

// Field is a square grid of cells whose border is always Wall.
type Field struct {
	size  int
	cells []Cell // row-major: index = y*size + x
	rng   *rand.Rand
}

var _ View = (*Field)(nil)

// NewField builds a size×size board with a Wall border and an Empty interior.
// If rng is nil a time-seeded source is used.
func NewField(size int, rng *rand.Rand) (*Field, error) {
	if size < MinFieldSize {
		return nil, fmt.Errorf("new field size=%d (min %d): %w", size, MinFieldSize, ErrFieldTooSmall)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	f := &Field{
		size:  size,
		cells: make([]Cell, size*size),
		rng:   rng,
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if f.isBorder(x, y) {
				f.cells[y*size+x] = Wall
			}
		}
	}
	return f, nil
}

func (f *Field) Size() int { return f.size }

// CellAt returns the state at (x, y). Anything outside the grid reads as Wall.
func (f *Field) CellAt(x, y int) Cell {
	if !f.inBounds(x, y) {
		return Wall
	}
	return f.cells[y*f.size+x]
}

func (f *Field) At(p Point) Cell {
	return f.CellAt(p.X, p.Y)
}

// Set writes an interior cell. Border and out-of-range writes panic: the
// border is immutable and callers only ever target interior squares.
func (f *Field) Set(p Point, c Cell) {
	if !f.inBounds(p.X, p.Y) || f.isBorder(p.X, p.Y) {
		panic(fmt.Sprintf("game: write %v to non-interior cell %v", c, p))
	}
	if c > Apple {
		panic(fmt.Sprintf("game: invalid cell state %d", uint8(c)))
	}
	f.cells[p.Y*f.size+p.X] = c
}

// ClearInterior resets every non-border cell to Empty.
func (f *Field) ClearInterior() {
	for y := 1; y < f.size-1; y++ {
		for x := 1; x < f.size-1; x++ {
			f.cells[y*f.size+x] = Empty
		}
	}
}

// Interior is the number of non-border cells, (size-2)².
func (f *Field) Interior() int {
	n := f.size - 2
	return n * n
}

// Count returns how many cells currently hold c.
func (f *Field) Count(c Cell) int {
	n := 0
	for _, v := range f.cells {
		if v == c {
			n++
		}
	}
	return n
}

// PlaceApple stamps an Apple on a uniformly random Empty interior cell.
//
// It rejection-samples interior coordinates, which is fast while the board
// is sparse. After a bounded number of misses it samples from the explicit
// free-cell list instead, so a nearly full board costs one scan rather than
// an unbounded retry loop. A board with no Empty interior cell returns
// ErrFieldFull.
func (f *Field) PlaceApple() (Point, error) {
	span := f.size - 2
	attempts := 4 * f.Interior()
	for i := 0; i < attempts; i++ {
		p := Point{X: 1 + f.rng.Intn(span), Y: 1 + f.rng.Intn(span)}
		if f.At(p) == Empty {
			f.Set(p, Apple)
			return p, nil
		}
	}

	free := f.freeCells()
	if len(free) == 0 {
		return Point{}, ErrFieldFull
	}
	p := free[f.rng.Intn(len(free))]
	f.Set(p, Apple)
	return p, nil
}

func (f *Field) freeCells() []Point {
	free := make([]Point, 0, f.Interior())
	for y := 1; y < f.size-1; y++ {
		for x := 1; x < f.size-1; x++ {
			if f.cells[y*f.size+x] == Empty {
				free = append(free, Point{X: x, Y: y})
			}
		}
	}
	return free
}

// String renders the board one row per line, top row first.
func (f *Field) String() string {
	var sb strings.Builder
	sb.Grow(f.size * (f.size + 1))
	for y := 0; y < f.size; y++ {
		for x := 0; x < f.size; x++ {
			sb.WriteByte(f.cells[y*f.size+x].glyph())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (f *Field) inBounds(x, y int) bool {
	return x >= 0 && x < f.size && y >= 0 && y < f.size
}

func (f *Field) isBorder(x, y int) bool {
	return x == 0 || y == 0 || x == f.size-1 || y == f.size-1
}
