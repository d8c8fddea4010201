package sim

import (
	"log/slog"
	"math/rand"
	"runtime"

	"github.com/san-kum/verletsim/internal/collide"
	"github.com/san-kum/verletsim/internal/grid"
	"github.com/san-kum/verletsim/internal/particle"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	DefaultCellSize  = 14.0
	DefaultSubsteps  = 4
	ReducedSubsteps  = 2
	LoadThreshold    = 80000
	DefaultCapacity  = 5000
	integrateMinWork = 4096
)

// Options configures a World.
type Options struct {
	Seed     int64
	Gravity  bool
	CellSize float64
	// Workers > 1 integrates and resolves collisions on that many goroutines.
	// Zero or less means one per CPU.
	Workers  int
	Substeps SubstepPolicy
	Spawn    SpawnOptions
	Pointer  PointerOptions
	Wind     WindOptions
	Logger   *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Seed:     1,
		Gravity:  true,
		CellSize: DefaultCellSize,
		Workers:  1,
		Substeps: SubstepPolicy{Count: DefaultSubsteps, Reduced: ReducedSubsteps, Threshold: LoadThreshold},
		Spawn: SpawnOptions{
			Radius:   Range{Min: 2, Max: 7},
			Velocity: Range{Min: -2, Max: 2},
			Band:     100,
		},
		Pointer: PointerOptions{Radius: 100, Force: 3000, Scale: 20, Epsilon: 0.1},
		Wind:    WindOptions{Strength: 40, Scale: 0.01, Speed: 0.2},
	}
}

// World is the particle population plus everything needed to step it.
type World struct {
	opts      Options
	particles []particle.Particle
	grid      *grid.Grid
	parallel  *collide.Parallel
	wind      *Wind
	windOn    bool
	gravity   bool
	rng       *rand.Rand
	log       *slog.Logger

	time         float64
	frame        int
	lastSubsteps int
}

func NewWorld(opts Options) *World {
	if opts.CellSize <= 0 {
		opts.CellSize = DefaultCellSize
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	w := &World{
		opts:      opts,
		particles: make([]particle.Particle, 0, DefaultCapacity),
		grid:      grid.New(opts.CellSize),
		wind:      NewWind(opts.Seed, opts.Wind),
		windOn:    opts.Wind.Enabled,
		gravity:   opts.Gravity,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		log:       logger,
	}
	if opts.Workers > 1 {
		w.parallel = collide.NewParallel(opts.Workers)
	}
	return w
}

func (w *World) Options() Options { return w.opts }
func (w *World) Len() int         { return len(w.particles) }
func (w *World) Time() float64    { return w.time }
func (w *World) Frame() int       { return w.frame }
func (w *World) Gravity() bool    { return w.gravity }
func (w *World) Wind() bool       { return w.windOn }

// Particles exposes the population for read-only use. The slice is valid
// until the next event or Step.
func (w *World) Particles() []particle.Particle { return w.particles }

// Add appends p unchanged.
func (w *World) Add(p particle.Particle) {
	w.particles = append(w.particles, p)
}

// SpawnWith appends one particle at pos with velocity components and radius
// drawn from the given ranges.
func (w *World) SpawnWith(pos r2.Vec, vel, radius Range) {
	v := r2.Vec{X: vel.sample(w.rng), Y: vel.sample(w.rng)}
	w.Add(particle.New(pos, v, radius.sample(w.rng)))
}

// Spawn appends one particle at pos using the configured spawn ranges.
func (w *World) Spawn(pos r2.Vec) {
	w.SpawnWith(pos, w.opts.Spawn.Velocity, w.opts.Spawn.Radius)
}

// SpawnBand drops n particles at random points in the top band of a world
// of the given width.
func (w *World) SpawnBand(n int, width float64) {
	band := Range{Max: w.opts.Spawn.Band}
	across := Range{Max: width}
	for i := 0; i < n; i++ {
		w.Spawn(r2.Vec{X: across.sample(w.rng), Y: band.sample(w.rng)})
	}
	w.log.Debug("spawned band", "count", n, "population", len(w.particles))
}

// Clear removes every particle.
func (w *World) Clear() {
	w.log.Info("population cleared", "removed", len(w.particles))
	clear(w.particles)
	w.particles = w.particles[:0]
	w.grid.Reset()
}

func (w *World) SetGravity(on bool) {
	if w.gravity != on {
		w.log.Info("gravity", "enabled", on)
	}
	w.gravity = on
}

func (w *World) ToggleGravity() { w.SetGravity(!w.gravity) }

func (w *World) SetWind(on bool) {
	if w.windOn != on {
		w.log.Info("wind", "enabled", on)
	}
	w.windOn = on
}

func (w *World) ToggleWind() { w.SetWind(!w.windOn) }

// CalmAll discards the velocity of every particle.
func (w *World) CalmAll() {
	for i := range w.particles {
		w.particles[i].Calm()
	}
}

// ApplyPointerForce pushes particles away from at. Particles closer than
// the configured radius (but further than epsilon) receive a force of
// Scale*Force/dist along the direction from at to the particle. It returns
// how many particles were pushed.
func (w *World) ApplyPointerForce(at r2.Vec) int {
	o := w.opts.Pointer
	pushed := 0
	for i := range w.particles {
		p := &w.particles[i]
		d := r2.Sub(p.Pos, at)
		dist := r2.Norm(d)
		if dist >= o.Radius || dist <= o.Epsilon {
			continue
		}
		strength := o.Scale * o.Force / dist
		p.ApplyForce(r2.Scale(strength/dist, d))
		pushed++
	}
	return pushed
}

// Substeps returns the substep count the next Step will use.
func (w *World) Substeps() int {
	return w.opts.Substeps.For(len(w.particles))
}

// Step advances the world by one frame of frameDt inside a width x height box.
func (w *World) Step(frameDt, width, height float64) FrameStats {
	n := w.Substeps()
	if n != w.lastSubsteps {
		if w.lastSubsteps != 0 {
			w.log.Info("substeps changed", "from", w.lastSubsteps, "to", n, "population", len(w.particles))
		}
		w.lastSubsteps = n
	}

	sub := frameDt / float64(n)
	st := FrameStats{
		Frame:     w.frame,
		Substeps:  n,
		SubDt:     sub,
		Particles: len(w.particles),
	}

	for s := 0; s < n; s++ {
		w.substep(sub, width, height, &st.Collide)
	}

	w.time += frameDt
	w.frame++
	st.Time = w.time
	st.Cells = w.grid.Len()
	return st
}

func (w *World) substep(dt, width, height float64, st *collide.Stats) {
	ps := w.particles
	if len(ps) == 0 {
		w.grid.Reset()
		return
	}

	if w.windOn {
		for i := range ps {
			ps[i].ApplyForce(w.wind.Force(ps[i].Pos, w.time))
		}
	}

	collide.ParallelFor(len(ps), integrateMinWork, w.opts.Workers, func(start, end int) {
		for i := start; i < end; i++ {
			ps[i].Update(dt, w.gravity)
			ps[i].WallConstrain(width, height)
		}
	})

	w.grid.Rebuild(ps)
	if w.parallel != nil {
		st.Add(w.parallel.Resolve(ps, w.grid))
	} else {
		st.Add(collide.Resolve(ps, w.grid))
	}
}

// Range calls fn with the rendering view of every particle in index order.
func (w *World) Range(fn func(i int, v particle.View)) {
	for i := range w.particles {
		fn(i, w.particles[i].View())
	}
}

// Views appends the view of every particle to dst and returns it.
func (w *World) Views(dst []particle.View) []particle.View {
	for i := range w.particles {
		dst = append(dst, w.particles[i].View())
	}
	return dst
}

// Summarize computes kinetic energy (unit mass, per-substep displacement as
// velocity), mean and max implicit speed of the population.
func (w *World) Summarize() Summary {
	return Summarize(w.particles)
}

func Summarize(ps []particle.Particle) Summary {
	var s Summary
	if len(ps) == 0 {
		return s
	}
	total := 0.0
	for i := range ps {
		v := ps[i].Velocity()
		sp2 := r2.Norm2(v)
		s.KineticEnergy += 0.5 * sp2
		sp := ps[i].Speed()
		total += sp
		s.MaxSpeed = max(s.MaxSpeed, sp)
	}
	s.MeanSpeed = total / float64(len(ps))
	return s
}
