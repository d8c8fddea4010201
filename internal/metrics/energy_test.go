package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/verletsim/internal/particle"
	"github.com/san-kum/verletsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

func frameOf(w, h float64, ps ...particle.Particle) sim.Frame {
	return sim.Frame{Particles: ps, Width: w, Height: h}
}

func moving(x, y, vx, vy, r float64) particle.Particle {
	return particle.New(r2.Vec{X: x, Y: y}, r2.Vec{X: vx, Y: vy}, r)
}

func TestKineticEnergy(t *testing.T) {
	m := NewKineticEnergy()

	m.Observe(frameOf(100, 100, moving(10, 10, 3, 4, 2)))
	if math.Abs(m.Value()-12.5) > 1e-9 {
		t.Errorf("expected energy 12.5, got %f", m.Value())
	}

	m.Observe(frameOf(100, 100, moving(10, 10, 0, 0, 2)))
	if math.Abs(m.Value()-6.25) > 1e-9 {
		t.Errorf("expected mean energy 6.25, got %f", m.Value())
	}
	if m.Last() != 0 {
		t.Errorf("expected last energy 0, got %f", m.Last())
	}
}

func TestKineticEnergyReset(t *testing.T) {
	m := NewKineticEnergy()
	m.Observe(frameOf(100, 100, moving(10, 10, 1, 1, 2)))
	m.Reset()

	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}

func TestSettling(t *testing.T) {
	m := NewSettling()
	if m.Value() != 0 {
		t.Errorf("expected 0 before any frame, got %f", m.Value())
	}

	m.Observe(frameOf(100, 100, moving(10, 10, 4, 0, 2)))
	m.Observe(frameOf(100, 100, moving(10, 10, 2, 0, 2)))
	if math.Abs(m.Value()-0.25) > 1e-9 {
		t.Errorf("expected ratio 0.25, got %f", m.Value())
	}
}

func TestMaxSpeed(t *testing.T) {
	m := NewMaxSpeed()
	m.Observe(frameOf(100, 100, moving(10, 10, 3, 4, 2), moving(50, 50, 1, 0, 2)))
	m.Observe(frameOf(100, 100, moving(10, 10, 1, 1, 2)))

	if math.Abs(m.Value()-5) > 1e-9 {
		t.Errorf("expected max speed 5, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}
