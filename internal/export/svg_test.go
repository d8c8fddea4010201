package export

import (
	"strings"
	"testing"

	"github.com/san-kum/verletsim/internal/particle"
	"github.com/san-kum/verletsim/internal/viz"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestParticlesToSVG(t *testing.T) {
	ps := []particle.Particle{
		particle.New(r2.Vec{X: 10, Y: 20}, r2.Vec{}, 3),
		particle.New(r2.Vec{X: 50, Y: 60}, r2.Vec{X: 10}, 4),
	}
	svg := ParticlesToSVG(ps, 200, 100)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("not a complete svg document")
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 circles, got %d", n)
	}
	if !strings.Contains(svg, `cx="10.00" cy="20.00" r="3.00" fill="#00ffff"`) {
		t.Error("resting particle should be cyan")
	}
	if !strings.Contains(svg, `fill="#ff0000"`) {
		t.Error("fast particle should be red")
	}
	if !strings.Contains(svg, `width="200" height="100"`) {
		t.Error("missing document size")
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 2) != "" {
		t.Error("nil canvas should give empty output")
	}

	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	svg := CanvasToSVG(c, 2)

	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(svg, `width="8" height="8"`) {
		t.Error("unexpected document size")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("single point should give empty output")
	}

	svg := SeriesToSVG([]float64{0, 1, 4, 9}, 100, 50, "#00ff00")
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("missing stroke colour")
	}
	if n := strings.Count(svg, " L"); n != 3 {
		t.Errorf("expected 3 line segments, got %d", n)
	}

	flat := SeriesToSVG([]float64{2, 2, 2}, 100, 50, "#fff")
	if strings.Contains(flat, "NaN") {
		t.Error("flat series produced NaN")
	}
}
