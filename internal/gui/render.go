package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/verletsim/internal/palette"
)

func (a *App) drawParticles() {
	a.Views = a.World.Views(a.Views[:0])
	for _, v := range a.Views {
		r, g, b, al := palette.RGBA8(palette.Speed(v.Speed), 255)
		rl.DrawCircleV(rl.NewVector2(float32(v.Pos.X), float32(v.Pos.Y)), float32(v.Radius), rl.NewColor(r, g, b, al))
	}
}

func (a *App) DrawHUD() {
	fps := a.FPS.Value()
	r, g, b, al := palette.RGBA8(palette.FPS(fps), 255)
	rl.DrawText(fmt.Sprintf("FPS: %.1f | Particles: %d", fps, a.World.Len()), 10, 10, 24, rl.NewColor(r, g, b, al))

	gravity, wind := "off", "off"
	if a.World.Gravity() {
		gravity = "on"
	}
	if a.World.Wind() {
		wind = "on"
	}
	status := fmt.Sprintf("substeps %d | cells %d | checks %d | gravity %s | wind %s",
		a.Last.Substeps, a.Last.Cells, a.Last.Collide.Checks, gravity, wind)
	if a.Paused {
		status = "PAUSED | " + status
	}
	rl.DrawText(status, 10, 40, 14, ColText)

	rl.DrawText("[1] +100  [LMB] SPAWN  [P] PUSH  [G] GRAVITY  [C] CALM  [R] RESET  [W] WIND  [H] HUD  [Q] QUIT",
		10, a.Opts.Height-20, 12, ColTextDim)
}

// DrawTelemetry plots the kinetic energy history in the top right corner.
func (a *App) DrawTelemetry() {
	if len(a.Energy) < 2 {
		return
	}

	width, height := int32(240), int32(50)
	rectX, rectY := a.Opts.Width-width-10, int32(10)

	minVal, maxVal := a.Energy[0], a.Energy[0]
	for _, v := range a.Energy {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Energy))
	for i, val := range a.Energy {
		px := float32(rectX) + float32(i)/float32(len(a.Energy))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("KE %.2e", a.Energy[len(a.Energy)-1]), rectX, rectY+height+4, 12, ColText)
}
