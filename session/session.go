// Package session owns the single live grid and the controls a front end
// drives it with: edits while idle, start/stop, and one step per timer tick.
package session

import (
	"context"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/engine"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

var (
	ErrEmptyGrid = errors.New("grid has no living cells; set up the grid before starting")
	ErrRunning   = errors.New("simulation is running; stop it before editing the grid")
)

// Renderer is called with the current grid after every state change
type Renderer interface {
	Render(g *model.Grid)
}

// RenderFunc adapts a plain function to Renderer
type RenderFunc func(g *model.Grid)

func (f RenderFunc) Render(g *model.Grid) { f(g) }

// Session is not safe for concurrent use; a single front end goroutine drives it.
type Session struct {
	config     utils.Config
	grid       *model.Grid
	renderer   Renderer
	rng        model.RandomSource
	pool       *model.GridPool
	running    bool
	generation int
	stats      *utils.Stats
}

// New creates a session with the configured grid and seed pattern drawn, and renders it once.
// A nil renderer discards frames; a nil src seeds math/rand from config.Seed or the clock.
func New(config utils.Config, renderer Renderer, src model.RandomSource) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "[session.New] invalid config")
	}

	grid, err := model.NewGrid(config.Rows, config.Cols)
	if err != nil {
		return nil, errors.Wrap(err, "[session.New] failed to create grid")
	}
	if err = grid.ApplyPattern(config.InitialPattern()); err != nil {
		return nil, errors.Wrap(err, "[session.New] seed pattern does not fit the grid")
	}

	if renderer == nil {
		renderer = RenderFunc(func(*model.Grid) {})
	}
	if src == nil {
		seed := config.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		src = rand.New(rand.NewSource(seed))
	}

	var pool *model.GridPool
	if config.UseMemoryPool {
		pool = model.NewGridPool()
	}

	s := &Session{
		config:   config,
		grid:     grid,
		renderer: renderer,
		rng:      src,
		pool:     pool,
		stats:    utils.NewStats(),
	}
	s.render()
	return s, nil
}

// Grid returns the live grid. It is replaced on every step, so do not keep it across calls.
func (s *Session) Grid() *model.Grid {
	return s.grid
}

// Running reports whether continuous simulation is active
func (s *Session) Running() bool {
	return s.running
}

// Generation returns the number of steps since the last start
func (s *Session) Generation() int {
	return s.generation
}

// Stats returns the counters for the current run
func (s *Session) Stats() *utils.Stats {
	return s.stats
}

func (s *Session) render() {
	s.renderer.Render(s.grid)
}

// Toggle flips one cell while the simulation is idle
func (s *Session) Toggle(y, x int) error {
	if s.running {
		return errors.Wrap(ErrRunning, "[Toggle]")
	}
	if err := s.grid.Toggle(y, x); err != nil {
		return err
	}
	s.render()
	return nil
}

// Randomize refills the grid with the configured alive probability while idle
func (s *Session) Randomize() error {
	if s.running {
		return errors.Wrap(ErrRunning, "[Randomize]")
	}
	if err := s.grid.Randomize(s.rng, s.config.AliveProbability); err != nil {
		return err
	}
	s.render()
	return nil
}

// Clear replaces the grid with an empty one while idle
func (s *Session) Clear() error {
	if s.running {
		return errors.Wrap(ErrRunning, "[Clear]")
	}
	s.resetGrid()
	s.render()
	return nil
}

func (s *Session) resetGrid() {
	var grid *model.Grid
	if s.pool != nil {
		grid = s.pool.GetLike(s.grid)
	} else {
		grid = model.NewGridLike(s.grid)
	}
	model.GridToPool(s.grid, s.pool)
	s.grid = grid
}

// Start begins continuous simulation. It refuses to run on an empty grid.
func (s *Session) Start() error {
	if s.running {
		return nil
	}
	if !s.grid.IsAnyAlive() {
		return errors.Wrap(ErrEmptyGrid, "[Start]")
	}
	s.running = true
	s.generation = 0
	s.stats = utils.NewStats()
	return nil
}

// Stop halts continuous simulation and leaves an empty grid behind
func (s *Session) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.resetGrid()
	s.render()
}

// StartStop flips between running and idle
func (s *Session) StartStop() error {
	if s.running {
		s.Stop()
		return nil
	}
	return s.Start()
}

// Tick advances one generation if running. The caller owns the timer.
func (s *Session) Tick(ctx context.Context) error {
	if !s.running {
		return nil
	}
	return s.advance(ctx)
}

func (s *Session) advance(ctx context.Context) error {
	start := time.Now()

	next, err := s.next(ctx)
	if err != nil {
		return err
	}

	model.GridToPool(s.grid, s.pool)
	s.grid = next
	s.generation++
	s.stats.Update(s.generation, s.grid.CountLivingCells(), time.Since(start))
	s.render()
	return nil
}

func (s *Session) next(ctx context.Context) (*model.Grid, error) {
	switch {
	case s.config.Parallel:
		return engine.StepParallel(ctx, s.grid, s.config.Workers)
	case s.pool != nil:
		return engine.StepPooled(s.grid, s.pool), nil
	default:
		return engine.Step(s.grid), nil
	}
}

// RunResult summarises a headless run
type RunResult struct {
	Generations int
	Population  int
	// Settled is set when the grid stopped changing or entered a period-2 cycle
	Settled bool
}

// Run steps up to generations times, stopping early when the grid settles or ctx is cancelled.
// With a non-nil tick each generation waits for the next value on it; nil steps back to back.
// The grid must have living cells, as with Start.
func (s *Session) Run(ctx context.Context, generations int, tick <-chan time.Time) (RunResult, error) {
	if err := s.Start(); err != nil {
		return RunResult{}, err
	}
	defer func() { s.running = false }()

	var detector settleDetector
	detector.observe(s.grid)
	for range generations {
		if tick != nil {
			select {
			case <-ctx.Done():
			case <-tick:
			}
		}
		if err := ctx.Err(); err != nil {
			return s.result(false), errors.Wrap(err, "[Run] cancelled")
		}
		if err := s.advance(ctx); err != nil {
			return s.result(false), err
		}
		if detector.observe(s.grid) {
			return s.result(true), nil
		}
	}
	return s.result(false), nil
}

// settleDetector remembers the last two generations to spot a fixed point or a period-2 cycle
type settleDetector struct {
	prev, prev2 string
}

// observe records g and reports whether it repeats one of the two generations before it
func (d *settleDetector) observe(g *model.Grid) bool {
	current := g.Hash()
	settled := current == d.prev || current == d.prev2
	d.prev2, d.prev = d.prev, current
	return settled
}

func (s *Session) result(settled bool) RunResult {
	return RunResult{
		Generations: s.generation,
		Population:  s.grid.CountLivingCells(),
		Settled:     settled,
	}
}
