package collide

import (
	"cmp"
	"slices"

	"github.com/san-kum/verletsim/internal/grid"
	"github.com/san-kum/verletsim/internal/particle"
)

// Stats counts the work done by one resolver pass.
type Stats struct {
	Checks      int
	Corrections int
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Checks += o.Checks
	s.Corrections += o.Corrections
}

// Pairs calls visit once for every candidate pair in g.
func Pairs(g *grid.Grid, visit func(i, j int)) {
	for _, c := range g.Cells() {
		cellPairs(g, c, visit)
	}
}

func cellPairs(g *grid.Grid, c grid.Cell, visit func(i, j int)) {
	bucket := g.Bucket(c)

	for a := 0; a < len(bucket); a++ {
		for b := a + 1; b < len(bucket); b++ {
			visit(bucket[a], bucket[b])
		}
	}

	for _, d := range grid.Forward {
		nb := g.Bucket(c.Add(d))
		if len(nb) == 0 {
			continue
		}
		for _, i := range bucket {
			for _, j := range nb {
				visit(i, j)
			}
		}
	}
}

// ResolvePair separates particles i and j of ps if they overlap. The slice is
// split at the larger index so the two particles are reached through
// disjoint views.
func ResolvePair(ps []particle.Particle, i, j int) bool {
	lo, hi := i, j
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return false
	}
	left, right := ps[:hi], ps[hi:]
	return left[lo].Collide(&right[0])
}

// Resolve runs one grid-based resolution pass over ps. g must have been
// rebuilt from ps.
func Resolve(ps []particle.Particle, g *grid.Grid) Stats {
	var st Stats
	Pairs(g, func(i, j int) {
		st.Checks++
		if ResolvePair(ps, i, j) {
			st.Corrections++
		}
	})
	return st
}

// BruteForce runs one all-pairs resolution pass over ps.
func BruteForce(ps []particle.Particle) Stats {
	var st Stats
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			st.Checks++
			left, right := ps[:j], ps[j:]
			if left[i].Collide(&right[0]) {
				st.Corrections++
			}
		}
	}
	return st
}

// Overlapping returns the overlapping pairs among the grid candidates as
// (lo, hi) index pairs in ascending order. ps is not modified.
func Overlapping(ps []particle.Particle, g *grid.Grid) [][2]int {
	var out [][2]int
	Pairs(g, func(i, j int) {
		if ps[i].Overlap(&ps[j]) > 0 {
			out = append(out, ordered(i, j))
		}
	})
	sortPairs(out)
	return out
}

// OverlappingBrute is Overlapping without the broad-phase.
func OverlappingBrute(ps []particle.Particle) [][2]int {
	var out [][2]int
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			if ps[i].Overlap(&ps[j]) > 0 {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}

// MaxOverlap returns the deepest interpenetration among the grid candidates.
func MaxOverlap(ps []particle.Particle, g *grid.Grid) float64 {
	worst := 0.0
	Pairs(g, func(i, j int) {
		worst = max(worst, ps[i].Overlap(&ps[j]))
	})
	return worst
}

func ordered(i, j int) [2]int {
	if i > j {
		return [2]int{j, i}
	}
	return [2]int{i, j}
}

func sortPairs(ps [][2]int) {
	slices.SortFunc(ps, func(a, b [2]int) int {
		if c := cmp.Compare(a[0], b[0]); c != 0 {
			return c
		}
		return cmp.Compare(a[1], b[1])
	})
}
