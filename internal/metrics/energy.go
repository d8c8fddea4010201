package metrics

import (
	"math"

	"github.com/san-kum/verletsim/internal/sim"
)

// KineticEnergy is the mean over frames of the population's kinetic energy,
// taking each particle's last substep displacement as its velocity.
type KineticEnergy struct {
	name    string
	samples int
	total   float64
	last    float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(f sim.Frame) {
	e.last = sim.Summarize(f.Particles).KineticEnergy
	e.total += e.last
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

// Last returns the energy of the most recent frame.
func (e *KineticEnergy) Last() float64 { return e.last }

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.last = 0
	e.samples = 0
}

// Settling reports how far the energy fell over the run, as the ratio of the
// final frame's energy to the peak seen. A pile at rest tends to zero.
type Settling struct {
	name  string
	peak  float64
	final float64
	seen  bool
}

func NewSettling() *Settling {
	return &Settling{name: "settling"}
}

func (s *Settling) Name() string { return s.name }

func (s *Settling) Observe(f sim.Frame) {
	ke := sim.Summarize(f.Particles).KineticEnergy
	s.peak = math.Max(s.peak, ke)
	s.final = ke
	s.seen = true
}

func (s *Settling) Value() float64 {
	if !s.seen || s.peak == 0 {
		return 0
	}
	return s.final / s.peak
}

func (s *Settling) Reset() {
	s.peak = 0
	s.final = 0
	s.seen = false
}

// MaxSpeed is the largest implicit speed seen in any frame.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(f sim.Frame) {
	for i := range f.Particles {
		m.max = math.Max(m.max, f.Particles[i].Speed())
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }
