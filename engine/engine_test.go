package engine_test

import (
	"context"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sheikhrachel/go-life/engine"
	"github.com/sheikhrachel/go-life/model"
)

func newGrid(rows, cols int, pattern ...model.Coord) *model.Grid {
	g, err := model.NewGrid(rows, cols)
	Expect(err).NotTo(HaveOccurred())
	Expect(g.ApplyPattern(pattern)).To(Succeed())
	return g
}

func randomGrid(rows, cols int, seed int64) *model.Grid {
	g := newGrid(rows, cols)
	Expect(g.Randomize(rand.New(rand.NewSource(seed)), 0.4)).To(Succeed())
	return g
}

var _ = Describe("CountLiveNeighbors", func() {
	It("counts only the three in-bounds neighbors of a corner", func() {
		g := newGrid(30, 30)
		Expect(g.Randomize(rand.New(rand.NewSource(7)), 1)).To(Succeed())

		Expect(engine.CountLiveNeighbors(g, 0, 0)).To(Equal(3))
		Expect(engine.CountLiveNeighbors(g, 29, 29)).To(Equal(3))
		Expect(engine.CountLiveNeighbors(g, 0, 15)).To(Equal(5))
		Expect(engine.CountLiveNeighbors(g, 15, 15)).To(Equal(8))
	})

	It("does not wrap around edges", func() {
		g := newGrid(5, 5, model.Coord{Y: 0, X: 4}, model.Coord{Y: 4, X: 0}, model.Coord{Y: 4, X: 4})
		Expect(engine.CountLiveNeighbors(g, 0, 0)).To(Equal(0))
	})

	It("excludes the cell itself", func() {
		g := newGrid(3, 3, model.Coord{Y: 1, X: 1})
		Expect(engine.CountLiveNeighbors(g, 1, 1)).To(Equal(0))
		Expect(engine.CountLiveNeighbors(g, 0, 0)).To(Equal(1))
	})

	It("stays within [0, 8] on random grids", func() {
		for seed := int64(1); seed <= 5; seed++ {
			g := randomGrid(12, 17, seed)
			for y := range g.Rows() {
				for x := range g.Cols() {
					n := engine.CountLiveNeighbors(g, y, x)
					Expect(n).To(BeNumerically(">=", 0))
					Expect(n).To(BeNumerically("<=", 8))
				}
			}
		}
	})

	It("does not modify the grid", func() {
		g := randomGrid(10, 10, 3)
		before := g.Clone()
		for y := range g.Rows() {
			for x := range g.Cols() {
				engine.CountLiveNeighbors(g, y, x)
			}
		}
		Expect(g.Equal(before)).To(BeTrue())
	})
})

var _ = Describe("Step", func() {
	It("keeps the dimensions", func() {
		g := randomGrid(7, 13, 1)
		next := engine.Step(g)
		Expect(next.Rows()).To(Equal(7))
		Expect(next.Cols()).To(Equal(13))
	})

	It("returns a new grid and leaves the input untouched", func() {
		g := randomGrid(15, 15, 2)
		before := g.Clone()
		next := engine.Step(g)
		Expect(next).NotTo(BeIdenticalTo(g))
		Expect(g.Equal(before)).To(BeTrue())
	})

	It("keeps an empty grid empty", func() {
		g := newGrid(30, 30)
		Expect(engine.Step(g).IsAnyAlive()).To(BeFalse())
	})

	It("leaves a block unchanged", func() {
		g := newGrid(30, 30, model.Offset(model.Block, 10, 10)...)
		Expect(engine.Step(g).Equal(g)).To(BeTrue())
	})

	It("leaves a block in the corner unchanged", func() {
		g := newGrid(30, 30, model.Block...)
		Expect(engine.Step(g).Equal(g)).To(BeTrue())
	})

	It("oscillates a blinker with period two", func() {
		horizontal := newGrid(30, 30, model.Offset(model.Blinker, 15, 14)...)
		vertical := newGrid(30, 30,
			model.Coord{Y: 14, X: 15}, model.Coord{Y: 15, X: 15}, model.Coord{Y: 16, X: 15})

		once := engine.Step(horizontal)
		Expect(once.Equal(vertical)).To(BeTrue())
		Expect(engine.Step(once).Equal(horizontal)).To(BeTrue())
	})

	It("moves a glider one cell diagonally every four generations", func() {
		g := newGrid(20, 20, model.Offset(model.Glider, 2, 2)...)
		want := newGrid(20, 20, model.Offset(model.Glider, 3, 3)...)
		for range 4 {
			g = engine.Step(g)
		}
		Expect(g.Equal(want)).To(BeTrue())
	})

	It("is deterministic", func() {
		a := randomGrid(20, 20, 9)
		b := a.Clone()
		Expect(engine.Step(a).Equal(engine.Step(b))).To(BeTrue())
	})

	It("kills a lone cell on a 1x1 grid", func() {
		g := newGrid(1, 1, model.Coord{})
		Expect(engine.Step(g).IsAnyAlive()).To(BeFalse())
	})
})

var _ = Describe("StepParallel", func() {
	DescribeTable("matches Step",
		func(rows, cols, workers int) {
			g := randomGrid(rows, cols, int64(rows*cols+workers))
			next, err := engine.StepParallel(context.Background(), g, workers)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.Equal(engine.Step(g))).To(BeTrue())
		},
		Entry("one worker", 30, 30, 1),
		Entry("uneven bands", 31, 17, 4),
		Entry("more workers than rows", 3, 9, 8),
		Entry("one per CPU", 30, 30, 0),
	)

	It("fails when the context is already cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := engine.StepParallel(ctx, randomGrid(10, 10, 1), 2)
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("StepPooled", func() {
	It("matches Step across reused buffers", func() {
		pool := model.NewGridPool()
		g := randomGrid(16, 16, 4)
		ref := g.Clone()

		for range 5 {
			next := engine.StepPooled(g, pool)
			ref = engine.Step(ref)
			Expect(next.Equal(ref)).To(BeTrue())
			model.GridToPool(g, pool)
			g = next
		}
	})

	It("falls back to Step without a pool", func() {
		g := newGrid(30, 30, model.Offset(model.Blinker, 5, 5)...)
		next := engine.StepPooled(g, nil)
		Expect(next.Equal(engine.Step(g))).To(BeTrue())
	})
})
