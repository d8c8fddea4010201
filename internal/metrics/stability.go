package metrics

import (
	"github.com/san-kum/verletsim/internal/collide"
	"github.com/san-kum/verletsim/internal/grid"
	"github.com/san-kum/verletsim/internal/sim"
)

// Containment is the fraction of frames in which every particle's disk lay
// inside the box, allowing tolerance of slack on each wall. Collision
// corrections run after the wall pass, so a small slack is expected in
// dense piles.
type Containment struct {
	name       string
	tolerance  float64
	violations int
	samples    int
}

func NewContainment(tolerance float64) *Containment {
	return &Containment{
		name:      "containment",
		tolerance: tolerance,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(f sim.Frame) {
	c.samples++
	tol := c.tolerance
	for i := range f.Particles {
		p := &f.Particles[i]
		if p.Pos.X < p.Radius-tol || p.Pos.X > f.Width-p.Radius+tol ||
			p.Pos.Y < p.Radius-tol || p.Pos.Y > f.Height-p.Radius+tol {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}

// Overlap is the mean over frames of the deepest interpenetration left after
// the frame's last collision pass.
type Overlap struct {
	name    string
	grid    *grid.Grid
	sum     float64
	worst   float64
	samples int
}

func NewOverlap(cellSize float64) *Overlap {
	return &Overlap{
		name: "overlap",
		grid: grid.New(cellSize),
	}
}

func (o *Overlap) Name() string {
	return o.name
}

func (o *Overlap) Observe(f sim.Frame) {
	o.grid.Rebuild(f.Particles)
	d := collide.MaxOverlap(f.Particles, o.grid)
	o.sum += d
	o.worst = max(o.worst, d)
	o.samples++
}

func (o *Overlap) Value() float64 {
	if o.samples == 0 {
		return 0
	}
	return o.sum / float64(o.samples)
}

// Worst returns the deepest overlap seen in any frame.
func (o *Overlap) Worst() float64 { return o.worst }

func (o *Overlap) Reset() {
	o.sum = 0
	o.worst = 0
	o.samples = 0
}

// Default is the metric set attached to headless runs.
func Default(cellSize float64) []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewSettling(),
		NewMaxSpeed(),
		NewContainment(0.5),
		NewOverlap(cellSize),
	}
}
