package particle

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// Gravity is the downward acceleration applied by Update when gravity is
	// enabled. Screen coordinates grow downward.
	Gravity = 100.0

	// WallDamping scales the reflected velocity component after a wall hit.
	WallDamping = 0.5
)

// Particle is a disk with unit mass. Radius is fixed at creation.
type Particle struct {
	Pos    r2.Vec
	Prev   r2.Vec
	Force  r2.Vec
	Radius float64
}

// View is the read-only record handed to renderers.
type View struct {
	Pos    r2.Vec
	Radius float64
	Speed  float64
}

// New returns a particle at pos whose implicit velocity is vel.
func New(pos, vel r2.Vec, radius float64) Particle {
	return Particle{
		Pos:    pos,
		Prev:   r2.Sub(pos, vel),
		Radius: radius,
	}
}

// ApplyForce accumulates f until the next Update.
func (p *Particle) ApplyForce(f r2.Vec) {
	p.Force.X += f.X
	p.Force.Y += f.Y
}

// Update advances the particle by one Verlet step of length dt and clears the
// accumulated force.
func (p *Particle) Update(dt float64, gravity bool) {
	if gravity {
		p.Force.Y += Gravity
	}

	dt2 := dt * dt
	vx := p.Pos.X - p.Prev.X
	vy := p.Pos.Y - p.Prev.Y

	next := r2.Vec{
		X: p.Pos.X + vx + p.Force.X*dt2,
		Y: p.Pos.Y + vy + p.Force.Y*dt2,
	}

	p.Prev = p.Pos
	p.Pos = next
	p.Force = r2.Vec{}
}

// WallConstrain keeps the disk inside [0,width]x[0,height]. An axis that
// crossed a wall is clamped and its implicit velocity is reflected and
// damped by moving Prev.
func (p *Particle) WallConstrain(width, height float64) {
	// floor
	if p.Pos.Y+p.Radius > height {
		p.Pos.Y = height - p.Radius
		p.Prev.Y = p.Pos.Y + (p.Pos.Y-p.Prev.Y)*WallDamping
	}
	// ceiling
	if p.Pos.Y-p.Radius < 0 {
		p.Pos.Y = p.Radius
		p.Prev.Y = p.Pos.Y + (p.Pos.Y-p.Prev.Y)*WallDamping
	}
	if p.Pos.X+p.Radius > width {
		p.Pos.X = width - p.Radius
		p.Prev.X = p.Pos.X + (p.Pos.X-p.Prev.X)*WallDamping
	}
	if p.Pos.X-p.Radius < 0 {
		p.Pos.X = p.Radius
		p.Prev.X = p.Pos.X + (p.Pos.X-p.Prev.X)*WallDamping
	}
}

// Calm discards the implicit velocity.
func (p *Particle) Calm() {
	p.Prev = p.Pos
}

// Velocity returns the displacement over the last step.
func (p *Particle) Velocity() r2.Vec {
	return r2.Sub(p.Pos, p.Prev)
}

// Speed returns |Pos - Prev|.
func (p *Particle) Speed() float64 {
	return r2.Norm(r2.Sub(p.Pos, p.Prev))
}

// View returns the rendering record for p.
func (p *Particle) View() View {
	return View{Pos: p.Pos, Radius: p.Radius, Speed: p.Speed()}
}

// Overlap returns how deep p and q interpenetrate, or zero if they do not.
// Coincident centres report zero: there is no direction to separate along.
func (p *Particle) Overlap(q *Particle) float64 {
	dx := p.Pos.X - q.Pos.X
	dy := p.Pos.Y - q.Pos.Y
	d2 := dx*dx + dy*dy
	minDist := p.Radius + q.Radius
	if !(d2 > 0 && d2 < minDist*minDist) {
		return 0
	}
	return minDist - math.Sqrt(d2)
}

// Collide pushes p and q apart along the line between their centres so that
// they end up exactly touching. Each moves half the overlap regardless of
// radius. It reports whether a correction was applied.
func (p *Particle) Collide(q *Particle) bool {
	dx := p.Pos.X - q.Pos.X
	dy := p.Pos.Y - q.Pos.Y
	d2 := dx*dx + dy*dy
	minDist := p.Radius + q.Radius

	if !(d2 > 0 && d2 < minDist*minDist) {
		return false
	}

	dist := math.Sqrt(d2)
	half := (minDist - dist) * 0.5 / dist
	cx, cy := dx*half, dy*half

	p.Pos.X += cx
	p.Pos.Y += cy
	q.Pos.X -= cx
	q.Pos.Y -= cy
	return true
}

// Inside reports whether the whole disk lies within [0,width]x[0,height].
func (p *Particle) Inside(width, height float64) bool {
	return p.Pos.X >= p.Radius && p.Pos.X <= width-p.Radius &&
		p.Pos.Y >= p.Radius && p.Pos.Y <= height-p.Radius
}

// IsValid reports whether every coordinate is finite.
func (p *Particle) IsValid() bool {
	for _, v := range [...]float64{p.Pos.X, p.Pos.Y, p.Prev.X, p.Prev.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
