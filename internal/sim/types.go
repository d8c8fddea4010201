package sim

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/verletsim/internal/collide"
	"github.com/san-kum/verletsim/internal/particle"
)

// Range is a closed interval sampled uniformly.
type Range struct {
	Min, Max float64
}

func (r Range) sample(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// SubstepPolicy picks the number of substeps per frame. Above Threshold
// particles the world drops to Reduced substeps to keep frame time bounded.
type SubstepPolicy struct {
	Count     int
	Reduced   int
	Threshold int
}

// For returns the substep count for a population of n.
func (p SubstepPolicy) For(n int) int {
	if p.Threshold > 0 && n > p.Threshold && p.Reduced > 0 {
		return p.Reduced
	}
	return max(p.Count, 1)
}

type SpawnOptions struct {
	Radius   Range
	Velocity Range
	// Band is the height of the strip at the top of the world that seed
	// particles are dropped into.
	Band float64
}

type PointerOptions struct {
	Radius  float64
	Force   float64
	Scale   float64
	Epsilon float64
}

type WindOptions struct {
	Enabled  bool
	Strength float64
	Scale    float64
	Speed    float64
}

// FrameStats describes one call to World.Step.
type FrameStats struct {
	Frame     int
	Time      float64
	Substeps  int
	SubDt     float64
	Particles int
	Cells     int
	Collide   collide.Stats
}

// Frame is what metrics and observers see after each step. Particles is the
// live population and must not be modified or retained.
type Frame struct {
	Stats         FrameStats
	Particles     []particle.Particle
	Width, Height float64
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

// RunConfig parameterises a headless run.
type RunConfig struct {
	Frames        int
	FrameDt       float64
	Width, Height float64
	ValidateState bool
}

// Summary aggregates per-frame observables.
type Summary struct {
	KineticEnergy float64
	MeanSpeed     float64
	MaxSpeed      float64
}

type Result struct {
	Frames   []FrameStats
	Summary  []Summary
	Metrics  map[string]float64
	Errors   []error
	Final    []particle.Particle
}

type SimError struct {
	Frame   int
	Time    float64
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %s", e.Frame, e.Time, e.Message)
}

func (e SimError) Unwrap() error { return ErrInvalidState }
