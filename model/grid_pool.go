package model

import (
	"sync"

	"github.com/pkg/errors"
)

// GridToPool returns a grid to the pool for reuse
func GridToPool(grid *Grid, pool *GridPool) {
	if pool == nil || grid == nil {
		return
	}

	pool.Put(grid)
}

// GridPool recycles generation buffers between steps
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() any {
				return &Grid{}
			},
		},
	}
}

// Get retrieves an all-dead grid of the given size from the pool
func (p *GridPool) Get(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimension, "[GridPool.Get] rows: %d, cols: %d", rows, cols)
	}
	g := p.pool.Get().(*Grid)
	g.reset(rows, cols)
	return g, nil
}

// GetLike retrieves an all-dead grid with the same dimensions as g
func (p *GridPool) GetLike(g *Grid) *Grid {
	next := p.pool.Get().(*Grid)
	next.reset(g.rows, g.cols)
	return next
}

// Put hands a grid back; the caller must not touch it afterwards
func (p *GridPool) Put(g *Grid) {
	p.pool.Put(g)
}
