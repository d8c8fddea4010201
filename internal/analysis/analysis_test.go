package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/verletsim/internal/particle"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestDominantFrequency(t *testing.T) {
	const (
		n  = 256
		dt = 1.0 / 60
	)
	series := make([]float64, n)
	for i := range series {
		series[i] = 5 + math.Sin(2*math.Pi*8*float64(i)/n)
	}

	freq, power := DominantFrequency(series, dt)
	want := 8 / (n * dt)
	if math.Abs(freq-want) > 1e-9 {
		t.Errorf("expected %.4f Hz, got %.4f", want, freq)
	}
	if power <= 0 {
		t.Errorf("expected positive power, got %f", power)
	}
}

func TestDominantFrequencyDegenerate(t *testing.T) {
	flat := make([]float64, 64)
	for i := range flat {
		flat[i] = 3
	}
	tests := []struct {
		name   string
		series []float64
		dt     float64
	}{
		{"empty", nil, 0.1},
		{"single", []float64{1}, 0.1},
		{"flat", flat, 0.1},
		{"zero dt", []float64{1, 2, 1, 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if f, p := DominantFrequency(tt.series, tt.dt); f != 0 || p != 0 {
				t.Errorf("expected 0, 0, got %f, %f", f, p)
			}
		})
	}
}

func TestPowerSpectrumLength(t *testing.T) {
	ps := PowerSpectrum(make([]float64, 100))
	if len(ps) != 50 {
		t.Errorf("expected 50 bins, got %d", len(ps))
	}
	if PowerSpectrum([]float64{1}) != nil {
		t.Error("expected nil spectrum for one sample")
	}
}

func TestSettleFrame(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
		frac   float64
		want   int
	}{
		{"settles after rebound", []float64{1, 10, 5, 0.4, 2, 0.3, 0.2}, 0.1, 5},
		{"never settles", []float64{1, 2, 3}, 0.1, -1},
		{"empty", nil, 0.1, -1},
		{"already settled", []float64{0, 0, 0}, 0.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SettleFrame(tt.series, tt.frac); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestParseAxis(t *testing.T) {
	a, err := ParseAxis("vy")
	if err != nil || a != AxisVY {
		t.Errorf("expected vy, got %q, %v", a, err)
	}
	if _, err := ParseAxis("mass"); !errors.Is(err, ErrUnknownAxis) {
		t.Errorf("expected ErrUnknownAxis, got %v", err)
	}
}

func TestPortrait(t *testing.T) {
	ps := []particle.Particle{
		particle.New(r2.Vec{X: 10, Y: 20}, r2.Vec{X: 1, Y: -2}, 3),
		particle.New(r2.Vec{X: 30, Y: 40}, r2.Vec{X: -1, Y: 2}, 4),
	}

	p := Portrait(ps, AxisX, AxisVY)
	if len(p.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(p.Points))
	}
	if p.Points[0] != (r2.Vec{X: 10, Y: -2}) || p.Points[1] != (r2.Vec{X: 30, Y: 2}) {
		t.Errorf("unexpected points %v", p.Points)
	}

	r := Portrait(ps, AxisR, AxisSpeed)
	if r.Points[1].X != 4 || math.Abs(r.Points[1].Y-math.Sqrt(5)) > 1e-12 {
		t.Errorf("unexpected radius/speed point %v", r.Points[1])
	}
}

func TestPortraitASCII(t *testing.T) {
	ps := []particle.Particle{
		particle.New(r2.Vec{X: -5, Y: -5}, r2.Vec{}, 1),
		particle.New(r2.Vec{X: 5, Y: 5}, r2.Vec{}, 1),
	}
	out := Portrait(ps, AxisX, AxisY).ASCII(21, 11)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 11 {
		t.Fatalf("expected 11 rows, got %d", len(lines))
	}
	if strings.Count(out, "•") != 2 {
		t.Errorf("expected 2 points, got:\n%s", out)
	}
	if !strings.Contains(out, "│") || !strings.Contains(out, "─") {
		t.Errorf("expected both zero axes, got:\n%s", out)
	}

	var empty *PhasePortrait
	if empty.ASCII(10, 10) != "" {
		t.Error("expected empty output for nil portrait")
	}
}
