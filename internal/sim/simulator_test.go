package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/verletsim/internal/particle"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	testW  = 400.0
	testH  = 300.0
	testDt = 1.0 / 60
)

func newTestWorld(n int) *World {
	w := NewWorld(DefaultOptions())
	w.SpawnBand(n, testW)
	return w
}

func TestRunnerRun(t *testing.T) {
	w := newTestWorld(50)
	r := NewRunner(w)

	result, err := r.Run(context.Background(), RunConfig{Frames: 30, FrameDt: testDt, Width: testW, Height: testH})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Frames) != 30 {
		t.Errorf("expected 30 frames, got %d", len(result.Frames))
	}
	if len(result.Summary) != 30 {
		t.Errorf("expected 30 summaries, got %d", len(result.Summary))
	}
	if len(result.Final) != 50 {
		t.Errorf("expected 50 final particles, got %d", len(result.Final))
	}
	for i, st := range result.Frames {
		if st.Frame != i {
			t.Errorf("frame %d: index %d", i, st.Frame)
		}
		if st.Substeps != DefaultSubsteps {
			t.Errorf("frame %d: expected %d substeps, got %d", i, DefaultSubsteps, st.Substeps)
		}
	}

	last := result.Frames[len(result.Frames)-1]
	if math.Abs(last.Time-30*testDt) > 1e-9 {
		t.Errorf("expected time %.4f, got %.4f", 30*testDt, last.Time)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	r := NewRunner(newTestWorld(1))

	tests := []struct {
		name string
		cfg  RunConfig
	}{
		{"zero dt", RunConfig{Frames: 10, FrameDt: 0, Width: testW, Height: testH}},
		{"negative dt", RunConfig{Frames: 10, FrameDt: -0.1, Width: testW, Height: testH}},
		{"zero frames", RunConfig{Frames: 0, FrameDt: testDt, Width: testW, Height: testH}},
		{"zero width", RunConfig{Frames: 10, FrameDt: testDt, Width: 0, Height: testH}},
		{"negative height", RunConfig{Frames: 10, FrameDt: testDt, Width: testW, Height: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Run(context.Background(), tt.cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

type frameCounter struct {
	frames    int
	particles int
}

func (c *frameCounter) Name() string { return "frames" }
func (c *frameCounter) Observe(f Frame) {
	c.frames++
	c.particles = len(f.Particles)
}
func (c *frameCounter) Value() float64 { return float64(c.frames) }
func (c *frameCounter) Reset()         { *c = frameCounter{} }

type observerFunc func(Frame)

func (f observerFunc) OnFrame(fr Frame) { f(fr) }

func TestRunnerMetricsAndObservers(t *testing.T) {
	r := NewRunner(newTestWorld(20))

	metric := &frameCounter{frames: 99}
	r.AddMetric(metric)

	seen := 0
	r.AddObserver(observerFunc(func(f Frame) {
		if f.Width != testW || f.Height != testH {
			t.Errorf("observer got box %gx%g", f.Width, f.Height)
		}
		seen++
	}))

	result, err := r.Run(context.Background(), RunConfig{Frames: 12, FrameDt: testDt, Width: testW, Height: testH})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if got := result.Metrics["frames"]; got != 12 {
		t.Errorf("expected metric 12 (reset before run), got %v", got)
	}
	if metric.particles != 20 {
		t.Errorf("metric saw %d particles, want 20", metric.particles)
	}
	if seen != 12 {
		t.Errorf("observer called %d times, want 12", seen)
	}
}

func TestRunnerCancelled(t *testing.T) {
	r := NewRunner(newTestWorld(10))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := r.Run(ctx, RunConfig{Frames: 100, FrameDt: testDt, Width: testW, Height: testH})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(result.Frames) != 0 {
		t.Errorf("expected no frames after cancel, got %d", len(result.Frames))
	}
	if len(result.Final) != 10 {
		t.Errorf("expected final population 10, got %d", len(result.Final))
	}
}

func TestRunnerValidateState(t *testing.T) {
	w := NewWorld(DefaultOptions())
	w.Add(particle.New(r2.Vec{X: math.NaN(), Y: 10}, r2.Vec{}, 3))
	r := NewRunner(w)

	result, err := r.Run(context.Background(), RunConfig{
		Frames: 10, FrameDt: testDt, Width: testW, Height: testH, ValidateState: true,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(result.Errors))
	}
	if !errors.Is(result.Errors[0], ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", result.Errors[0])
	}
	if len(result.Frames) != 1 {
		t.Errorf("expected run to stop after 1 frame, got %d", len(result.Frames))
	}
}

func TestRunWithCallback(t *testing.T) {
	r := NewRunner(newTestWorld(10))

	calls := 0
	err := r.RunWithCallback(context.Background(), RunConfig{FrameDt: testDt, Width: testW, Height: testH},
		func(st FrameStats) bool {
			calls++
			return calls < 5
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 5 {
		t.Errorf("expected 5 callbacks, got %d", calls)
	}
	if r.World().Frame() != 5 {
		t.Errorf("expected world at frame 5, got %d", r.World().Frame())
	}

	err = r.RunWithCallback(context.Background(), RunConfig{FrameDt: 0, Width: testW, Height: testH},
		func(FrameStats) bool { return true })
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSubstepPolicy(t *testing.T) {
	p := DefaultOptions().Substeps

	tests := []struct {
		n    int
		want int
	}{
		{0, 4},
		{1000, 4},
		{80000, 4},
		{80001, 2},
		{200000, 2},
	}
	for _, tt := range tests {
		if got := p.For(tt.n); got != tt.want {
			t.Errorf("For(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}

	if got := (SubstepPolicy{}).For(10); got != 1 {
		t.Errorf("zero policy: got %d substeps, want 1", got)
	}
}

func TestSummarize(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("empty summary = %+v", s)
	}

	ps := []particle.Particle{
		particle.New(r2.Vec{X: 10, Y: 10}, r2.Vec{X: 3, Y: 4}, 2),
		particle.New(r2.Vec{X: 50, Y: 10}, r2.Vec{}, 2),
	}
	s := Summarize(ps)
	if math.Abs(s.KineticEnergy-12.5) > 1e-9 {
		t.Errorf("kinetic energy = %v, want 12.5", s.KineticEnergy)
	}
	if math.Abs(s.MaxSpeed-5) > 1e-9 {
		t.Errorf("max speed = %v, want 5", s.MaxSpeed)
	}
	if math.Abs(s.MeanSpeed-2.5) > 1e-9 {
		t.Errorf("mean speed = %v, want 2.5", s.MeanSpeed)
	}
}
