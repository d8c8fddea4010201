package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/verletsim/internal/particle"
	"github.com/san-kum/verletsim/internal/sim"
	"github.com/san-kum/verletsim/internal/viz"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer draws headless runs straight to a terminal with plain ANSI
// escapes. It is a sim.Observer and drops frames beyond its frame rate.
type LiveRenderer struct {
	out       io.Writer
	name      string
	frameRate int
	lastFrame time.Time
	canvas    *viz.Canvas
	views     []particle.View
	now       func() time.Time
}

func NewLiveRenderer(out io.Writer, name string, frameRate int) *LiveRenderer {
	return &LiveRenderer{
		out:       out,
		name:      name,
		frameRate: max(frameRate, 1),
		canvas:    viz.NewCanvas(width, height),
		now:       time.Now,
	}
}

func (r *LiveRenderer) OnFrame(f sim.Frame) {
	now := r.now()
	if now.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = now

	r.views = r.views[:0]
	for i := range f.Particles {
		r.views = append(r.views, f.Particles[i].View())
	}
	viz.NewViewport(r2.Vec{X: f.Width, Y: f.Height}, r.canvas).Draw(r.views)

	r.render(f)
}

func (r *LiveRenderer) render(f sim.Frame) {
	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "  %s  frame=%d  t=%.2fs\n", r.name, f.Stats.Frame, f.Stats.Time)
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas.Grid {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	fmt.Fprintf(&b, "  particles=%d substeps=%d cells=%d checks=%d corrections=%d\n",
		f.Stats.Particles, f.Stats.Substeps, f.Stats.Cells, f.Stats.Collide.Checks, f.Stats.Collide.Corrections)

	io.WriteString(r.out, b.String())
}

func (r *LiveRenderer) Start() { io.WriteString(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { io.WriteString(r.out, showCursor) }
