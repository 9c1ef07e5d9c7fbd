package rules

import "github.com/sheikhrachel/go-life/model"

const (
	// MaxNeighbors is the size of the Moore neighborhood
	MaxNeighbors = 8

	survivalMin = 2
	survivalMax = 3
	birth       = 3
)

/*
Next applies Conway's B3/S23 rule to a single cell.

A live cell with fewer than two or more than three live neighbors dies,
a dead cell with exactly three live neighbors is born, and every other
cell keeps its state.
*/
func Next(state model.CellState, neighbors int) model.CellState {
	switch {
	case state == model.Alive && (neighbors < survivalMin || neighbors > survivalMax):
		return model.Dead
	case state == model.Dead && neighbors == birth:
		return model.Alive
	default:
		return state
	}
}
