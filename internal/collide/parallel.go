package collide

import (
	"runtime"
	"sync"

	"github.com/san-kum/verletsim/internal/grid"
	"github.com/san-kum/verletsim/internal/particle"
)

// Colour classes are (x mod 3, y mod 2). A cell reaches x-1..x+1 and y..y+1
// through itself and its forward neighbours, so two cells of one class never
// reach a common cell.
const (
	colourCols = 3
	colourRows = 2
	colours    = colourCols * colourRows
)

// minCellsPerWorker keeps tiny classes on the calling goroutine.
const minCellsPerWorker = 64

// Parallel resolves collisions with the cells of each colour class handled
// concurrently. It is not safe for concurrent use; create one per world.
type Parallel struct {
	workers int
	classes [colours][]grid.Cell
}

// NewParallel returns a resolver using up to workers goroutines.
// workers <= 0 selects runtime.NumCPU().
func NewParallel(workers int) *Parallel {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Parallel{workers: workers}
}

// Workers returns the goroutine limit.
func (p *Parallel) Workers() int { return p.workers }

// Resolve runs one resolution pass. Every candidate pair is visited exactly
// once, as with the sequential Resolve, but pairs inside one class may be
// handled in a different order.
func (p *Parallel) Resolve(ps []particle.Particle, g *grid.Grid) Stats {
	for k := range p.classes {
		p.classes[k] = p.classes[k][:0]
	}
	for _, c := range g.Cells() {
		k := colourOf(c)
		p.classes[k] = append(p.classes[k], c)
	}

	var (
		mu    sync.Mutex
		total Stats
	)
	for k := range p.classes {
		cells := p.classes[k]
		ParallelFor(len(cells), minCellsPerWorker, p.workers, func(start, end int) {
			var st Stats
			visit := func(i, j int) {
				st.Checks++
				if ResolvePair(ps, i, j) {
					st.Corrections++
				}
			}
			for _, c := range cells[start:end] {
				cellPairs(g, c, visit)
			}
			mu.Lock()
			total.Add(st)
			mu.Unlock()
		})
	}
	return total
}

// ResolveParallel is a one-shot Parallel.Resolve. Worlds that step
// repeatedly should keep a Parallel so its class lists are reused.
func ResolveParallel(ps []particle.Particle, g *grid.Grid, workers int) Stats {
	return NewParallel(workers).Resolve(ps, g)
}

func colourOf(c grid.Cell) int {
	x := ((c.X % colourCols) + colourCols) % colourCols
	y := ((c.Y % colourRows) + colourRows) % colourRows
	return y*colourCols + x
}

// ParallelFor executes fn over [0, n) split into at most workers chunks of at
// least minChunk items. Small ranges run on the calling goroutine.
func ParallelFor(n, minChunk, workers int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
