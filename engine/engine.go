// Package engine derives the next generation of a grid.
//
// Every function here treats its input grid as a read-only snapshot and
// writes the next generation into a separate grid, so all cells are evaluated
// against the same generation.
package engine

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/rules"
)

// CountLiveNeighbors counts living cells in the Moore neighborhood of (y, x).
// Positions off the grid count as dead; edges do not wrap.
func CountLiveNeighbors(g *model.Grid, y, x int) int {
	count := 0

	minY := max(0, y-1)
	maxY := min(g.Rows()-1, y+1)
	minX := max(0, x-1)
	maxX := min(g.Cols()-1, x+1)

	for ny := minY; ny <= maxY; ny++ {
		for nx := minX; nx <= maxX; nx++ {
			if ny == y && nx == x {
				continue
			}
			if g.At(ny, nx) == model.Alive {
				count++
			}
		}
	}

	return count
}

// Step returns a new grid holding the next generation of g
func Step(g *model.Grid) *model.Grid {
	next := model.NewGridLike(g)
	stepRows(g, next, 0, g.Rows())
	return next
}

// StepPooled is Step with the output grid taken from pool.
// Return the previous generation with model.GridToPool once it is no longer displayed.
func StepPooled(g *model.Grid, pool *model.GridPool) *model.Grid {
	if pool == nil {
		return Step(g)
	}
	next := pool.GetLike(g)
	stepRows(g, next, 0, g.Rows())
	return next
}

// StepParallel computes the next generation with row bands evaluated concurrently.
// workers <= 0 uses one worker per CPU. The result is identical to Step.
func StepParallel(ctx context.Context, g *model.Grid, workers int) (*model.Grid, error) {
	next := model.NewGridLike(g)

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		eg, egCtx     = errgroup.WithContext(ctx)
		rows          = g.Rows()
		rowsPerWorker = (rows + workers - 1) / workers // Ceiling division
	)

	for i := range workers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, rows)
		)
		if startRow >= rows {
			break
		}

		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			stepRows(g, next, startRow, endRow)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, errors.Wrap(err, "[StepParallel] generation aborted")
	}

	return next, nil
}

// stepRows fills rows [startRow, endRow) of next from g. next must start all dead.
func stepRows(g, next *model.Grid, startRow, endRow int) {
	for y := startRow; y < endRow; y++ {
		for x := range g.Cols() {
			if rules.Next(g.At(y, x), CountLiveNeighbors(g, y, x)) == model.Alive {
				next.Put(y, x, model.Alive)
			}
		}
	}
}
