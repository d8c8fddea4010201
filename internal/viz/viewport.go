package viz

import (
	"github.com/san-kum/verletsim/internal/particle"
	"gonum.org/v1/gonum/spatial/r2"
)

// Viewport maps a width x height world onto a canvas, stretching each axis
// independently.
type Viewport struct {
	World  r2.Vec
	canvas *Canvas
}

func NewViewport(world r2.Vec, canvas *Canvas) Viewport {
	return Viewport{World: world, canvas: canvas}
}

// ToSub converts a world position to canvas sub-pixels.
func (v Viewport) ToSub(p r2.Vec) (int, int) {
	sx := p.X / v.World.X * float64(v.canvas.SubWidth())
	sy := p.Y / v.World.Y * float64(v.canvas.SubHeight())
	return int(sx), int(sy)
}

// FromCell converts a terminal cell (relative to the canvas origin) to the
// world position at the cell's centre.
func (v Viewport) FromCell(col, row int) r2.Vec {
	return r2.Vec{
		X: (float64(col) + 0.5) / float64(v.canvas.Width) * v.World.X,
		Y: (float64(row) + 0.5) / float64(v.canvas.Height) * v.World.Y,
	}
}

// Radius converts a world radius to sub-pixels along x.
func (v Viewport) Radius(r float64) float64 {
	return r / v.World.X * float64(v.canvas.SubWidth())
}

// Draw clears the canvas and draws every view.
func (v Viewport) Draw(views []particle.View) {
	v.canvas.Clear()
	for _, p := range views {
		x, y := v.ToSub(p.Pos)
		v.canvas.Disk(x, y, v.Radius(p.Radius), p.Speed)
	}
}
