package model

import (
	"sort"

	"github.com/pkg/errors"
)

// Coord addresses a cell by row and column
type Coord struct {
	Y int `yaml:"y"`
	X int `yaml:"x"`
}

var (
	// DefaultSeedPattern is drawn onto the board when a session starts
	DefaultSeedPattern = []Coord{
		{5, 5}, {5, 6}, {5, 7},
		{6, 5},
		{7, 5}, {7, 7},
		{8, 7}, {8, 6},
	}

	// Blinker is a period-2 oscillator, horizontal phase
	Blinker = []Coord{{0, 0}, {0, 1}, {0, 2}}

	// Block is a 2x2 still life
	Block = []Coord{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

	// Glider travels one cell diagonally every four generations
	Glider = []Coord{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
)

// Patterns maps the names accepted on the command line and in config files
var Patterns = map[string][]Coord{
	"default": DefaultSeedPattern,
	"blinker": Blinker,
	"block":   Block,
	"glider":  Glider,
}

// PatternNames returns the registered pattern names in sorted order
func PatternNames() []string {
	names := make([]string, 0, len(Patterns))
	for name := range Patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupPattern returns a registered pattern by name
func LookupPattern(name string) ([]Coord, error) {
	p, ok := Patterns[name]
	if !ok {
		return nil, errors.Errorf("[LookupPattern] unknown pattern: %+v", name)
	}
	return p, nil
}

// Offset returns a copy of pattern shifted by (dy, dx)
func Offset(pattern []Coord, dy, dx int) []Coord {
	out := make([]Coord, len(pattern))
	for i, c := range pattern {
		out[i] = Coord{Y: c.Y + dy, X: c.X + dx}
	}
	return out
}

// ApplyPattern marks every coordinate of pattern alive.
// Nothing is written if any coordinate falls outside the grid.
func (g *Grid) ApplyPattern(pattern []Coord) error {
	for _, c := range pattern {
		if err := g.checkBounds("ApplyPattern", c.Y, c.X); err != nil {
			return err
		}
	}
	for _, c := range pattern {
		g.cells[c.Y][c.X] = Alive
	}
	return nil
}
