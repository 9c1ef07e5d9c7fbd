package model

import (
	"crypto/md5"
	"fmt"

	"github.com/pkg/errors"
)

// DefaultAliveProbability is the chance a cell comes up alive on Randomize
const DefaultAliveProbability = 0.5

var (
	ErrInvalidDimension   = errors.New("invalid grid dimension")
	ErrOutOfBounds        = errors.New("coordinate out of bounds")
	ErrInvalidProbability = errors.New("probability must be within [0, 1]")
)

// CellState is the binary state of a single cell
type CellState bool

const (
	Dead  CellState = false
	Alive CellState = true
)

// Flip returns the opposite state
func (s CellState) Flip() CellState {
	return !s
}

func (s CellState) String() string {
	if s {
		return "alive"
	}
	return "dead"
}

// RandomSource yields uniform values in [0, 1). *math/rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// Grid is a fixed-size board of cells addressed by (y, x)
type Grid struct {
	rows  int
	cols  int
	cells [][]CellState
}

// NewGrid creates an all-dead grid with the specified dimensions
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimension, "[NewGrid] rows: %d, cols: %d", rows, cols)
	}
	return newGrid(rows, cols), nil
}

// NewGridLike creates an all-dead grid with the same dimensions as g
func NewGridLike(g *Grid) *Grid {
	return newGrid(g.rows, g.cols)
}

func newGrid(rows, cols int) *Grid {
	cells := make([][]CellState, rows)
	for i := range cells {
		cells[i] = make([]CellState, cols)
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: cells,
	}
}

// Rows returns the number of rows of the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns of the grid
func (g *Grid) Cols() int {
	return g.cols
}

// InBounds reports whether (y, x) addresses a cell of the grid
func (g *Grid) InBounds(y, x int) bool {
	return y >= 0 && y < g.rows && x >= 0 && x < g.cols
}

func (g *Grid) checkBounds(op string, y, x int) error {
	if !g.InBounds(y, x) {
		return errors.Wrapf(ErrOutOfBounds, "[%s] (y: %d, x: %d) outside %dx%d", op, y, x, g.rows, g.cols)
	}
	return nil
}

// Get returns the state of a cell
func (g *Grid) Get(y, x int) (CellState, error) {
	if err := g.checkBounds("Get", y, x); err != nil {
		return Dead, err
	}
	return g.cells[y][x], nil
}

// Set sets the state of a cell
func (g *Grid) Set(y, x int, state CellState) error {
	if err := g.checkBounds("Set", y, x); err != nil {
		return err
	}
	g.cells[y][x] = state
	return nil
}

// Toggle flips a cell between alive and dead
func (g *Grid) Toggle(y, x int) error {
	if err := g.checkBounds("Toggle", y, x); err != nil {
		return err
	}
	g.cells[y][x] = g.cells[y][x].Flip()
	return nil
}

// At reads a cell without bounds checking; callers must stay within InBounds
func (g *Grid) At(y, x int) CellState {
	return g.cells[y][x]
}

// Put writes a cell without bounds checking; callers must stay within InBounds
func (g *Grid) Put(y, x int, state CellState) {
	g.cells[y][x] = state
}

// IsAnyAlive reports whether at least one cell is alive
func (g *Grid) IsAnyAlive() bool {
	for y := range g.rows {
		for x := range g.cols {
			if g.cells[y][x] {
				return true
			}
		}
	}
	return false
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for y := range g.rows {
		for x := range g.cols {
			if g.cells[y][x] {
				count++
			}
		}
	}
	return
}

// Clear kills every cell
func (g *Grid) Clear() {
	for y := range g.rows {
		for x := range g.cols {
			g.cells[y][x] = Dead
		}
	}
}

// reset resizes and clears the grid. Only the pool calls it; a live grid never changes size.
func (g *Grid) reset(rows, cols int) {
	g.rows = rows
	g.cols = cols

	if len(g.cells) != rows {
		g.cells = make([][]CellState, rows)
	}
	for i := range g.cells {
		if len(g.cells[i]) != cols {
			g.cells[i] = make([]CellState, cols)
		} else {
			clear(g.cells[i])
		}
	}
}

// Randomize replaces every cell, each alive with probability p
func (g *Grid) Randomize(src RandomSource, p float64) error {
	if p < 0 || p > 1 {
		return errors.Wrapf(ErrInvalidProbability, "[Randomize] p: %v", p)
	}
	for y := range g.rows {
		for x := range g.cols {
			g.cells[y][x] = CellState(src.Float64() < p)
		}
	}
	return nil
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	c := newGrid(g.rows, g.cols)
	for y := range g.rows {
		copy(c.cells[y], g.cells[y])
	}
	return c
}

// Equal reports whether both grids have the same dimensions and cells
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for y := range g.rows {
		for x := range g.cols {
			if g.cells[y][x] != other.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// Hash returns an MD5 digest of the current grid state
func (g *Grid) Hash() string {
	h := md5.New()
	for y := range g.rows {
		for x := range g.cols {
			if g.cells[y][x] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
