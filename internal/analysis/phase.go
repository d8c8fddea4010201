package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/verletsim/internal/particle"
	"gonum.org/v1/gonum/spatial/r2"
)

var ErrUnknownAxis = errors.New("analysis: unknown axis")

// Axis names one per-particle quantity. Velocities are displacements over
// the last substep.
type Axis string

const (
	AxisX     Axis = "x"
	AxisY     Axis = "y"
	AxisVX    Axis = "vx"
	AxisVY    Axis = "vy"
	AxisSpeed Axis = "speed"
	AxisR     Axis = "radius"
)

var Axes = []Axis{AxisX, AxisY, AxisVX, AxisVY, AxisSpeed, AxisR}

func (a Axis) value(p *particle.Particle) float64 {
	switch a {
	case AxisX:
		return p.Pos.X
	case AxisY:
		return p.Pos.Y
	case AxisVX:
		return p.Velocity().X
	case AxisVY:
		return p.Velocity().Y
	case AxisSpeed:
		return p.Speed()
	default:
		return p.Radius
	}
}

func ParseAxis(s string) (Axis, error) {
	for _, a := range Axes {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q (available: %v)", ErrUnknownAxis, s, Axes)
}

// PhasePortrait is the population scattered over two axes.
type PhasePortrait struct {
	X, Y   Axis
	Points []r2.Vec
}

func Portrait(ps []particle.Particle, x, y Axis) *PhasePortrait {
	portrait := &PhasePortrait{
		X:      x,
		Y:      y,
		Points: make([]r2.Vec, len(ps)),
	}
	for i := range ps {
		portrait.Points[i] = r2.Vec{X: x.value(&ps[i]), Y: y.value(&ps[i])}
	}
	return portrait
}

// ASCII draws the portrait on a width x height character grid with a 10%
// margin, adding zero axes when they fall inside the plot.
func (portrait *PhasePortrait) ASCII(width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	lo, hi := portrait.Points[0], portrait.Points[0]
	for _, p := range portrait.Points {
		lo.X, hi.X = min(lo.X, p.X), max(hi.X, p.X)
		lo.Y, hi.Y = min(lo.Y, p.Y), max(hi.Y, p.Y)
	}

	span := r2.Sub(hi, lo)
	if span.X == 0 {
		span.X = 1
	}
	if span.Y == 0 {
		span.Y = 1
	}
	pad := r2.Scale(0.1, span)
	lo = r2.Sub(lo, pad)
	hi = r2.Add(hi, pad)
	span = r2.Sub(hi, lo)

	col := func(x float64) int { return int((x - lo.X) / span.X * float64(width-1)) }
	row := func(y float64) int { return height - 1 - int((y-lo.Y)/span.Y*float64(height-1)) }

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range portrait.Points {
		c, r := col(p.X), row(p.Y)
		if r >= 0 && r < height && c >= 0 && c < width {
			canvas[r][c] = '•'
		}
	}

	if lo.X <= 0 && hi.X >= 0 {
		c := col(0)
		for r := 0; r < height; r++ {
			if canvas[r][c] == ' ' {
				canvas[r][c] = '│'
			}
		}
	}
	if lo.Y <= 0 && hi.Y >= 0 {
		r := row(0)
		for c := 0; c < width; c++ {
			if canvas[r][c] == ' ' {
				canvas[r][c] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, line := range canvas {
		sb.WriteString(string(line))
		sb.WriteRune('\n')
	}
	return sb.String()
}
