// Package grid provides the uniform spatial hash used as collision
// broad-phase. The grid is sparse: only occupied cells have an entry, so
// particle positions are unbounded.
package grid

import (
	"math"

	"github.com/san-kum/verletsim/internal/particle"
	"gonum.org/v1/gonum/spatial/r2"
)

const bucketCapacity = 8

// Cell is an integer cell coordinate.
type Cell struct {
	X, Y int
}

// Forward lists the neighbour offsets scanned from every cell: right,
// bottom-right, bottom and bottom-left. For any two adjacent cells exactly one
// of them reaches the other through this set.
var Forward = [4]Cell{
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 0, Y: 1},
	{X: -1, Y: 1},
}

// Add returns c offset by d.
func (c Cell) Add(d Cell) Cell {
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

// CellOf returns the cell containing pos.
func CellOf(pos r2.Vec, size float64) Cell {
	return Cell{
		X: int(math.Floor(pos.X / size)),
		Y: int(math.Floor(pos.Y / size)),
	}
}

// Grid maps occupied cells to the indices of the particles inside them.
// It is rebuilt from scratch every substep.
type Grid struct {
	size    float64
	buckets map[Cell][]int
	cells   []Cell
	free    [][]int
}

// New returns an empty grid with the given cell size.
func New(cellSize float64) *Grid {
	return &Grid{
		size:    cellSize,
		buckets: make(map[Cell][]int),
	}
}

// CellSize returns the edge length of a cell.
func (g *Grid) CellSize() float64 { return g.size }

// Len returns the number of occupied cells.
func (g *Grid) Len() int { return len(g.cells) }

// Cells returns the occupied cells in the order they were first filled.
// The slice is owned by the grid and valid until the next Rebuild.
func (g *Grid) Cells() []Cell { return g.cells }

// Bucket returns the particle indices in c in ascending order, or nil.
func (g *Grid) Bucket(c Cell) []int { return g.buckets[c] }

// Reset drops every entry. Bucket storage is kept for reuse.
func (g *Grid) Reset() {
	for _, c := range g.cells {
		g.free = append(g.free, g.buckets[c][:0])
	}
	clear(g.buckets)
	g.cells = g.cells[:0]
}

// Insert appends index i to the bucket of the cell containing pos.
func (g *Grid) Insert(i int, pos r2.Vec) {
	c := CellOf(pos, g.size)
	b, ok := g.buckets[c]
	if !ok {
		b = g.bucket()
		g.cells = append(g.cells, c)
	}
	g.buckets[c] = append(b, i)
}

// Rebuild clears the grid and indexes every particle by its position.
func (g *Grid) Rebuild(ps []particle.Particle) {
	g.Reset()
	for i := range ps {
		g.Insert(i, ps[i].Pos)
	}
}

func (g *Grid) bucket() []int {
	if n := len(g.free); n > 0 {
		b := g.free[n-1]
		g.free = g.free[:n-1]
		return b
	}
	return make([]int, 0, bucketCapacity)
}
