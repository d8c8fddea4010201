package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/verletsim/internal/particle"
	"github.com/san-kum/verletsim/internal/sim"
	"github.com/san-kum/verletsim/internal/viz"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	title      = "verletsim"
	targetFPS  = 60
	spawnBatch = 100
	// alpha of the black veil drawn over the previous frame
	trailAlpha = 25
	historyLen = 240
)

var (
	ColVeil    = rl.NewColor(0, 0, 0, trailAlpha)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
)

type Options struct {
	Width, Height int32
	FrameDt       float64
}

type App struct {
	World   *sim.World
	Opts    Options
	FPS     *viz.FPSMeter
	Views   []particle.View
	Last    sim.FrameStats
	Energy  []float64
	Paused  bool
	HideHUD bool
}

func initWindow(o Options) {
	rl.InitWindow(o.Width, o.Height, title)
	rl.SetTargetFPS(targetFPS)
	rl.SetExitKey(rl.KeyEscape)
}

func NewApp(w *sim.World, opts Options) *App {
	return &App{
		World:  w,
		Opts:   opts,
		FPS:    viz.NewFPSMeter(targetFPS),
		Energy: make([]float64, 0, historyLen),
	}
}

// Run opens the window and blocks until it is closed.
func Run(w *sim.World, opts Options) {
	initWindow(opts)
	defer rl.CloseWindow()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	rl.EndDrawing()

	NewApp(w, opts).RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		a.Update()
		a.Draw()
	}
}

func (a *App) mouse() r2.Vec {
	m := rl.GetMousePosition()
	return r2.Vec{X: float64(m.X), Y: float64(m.Y)}
}

// Update applies this frame's input to the world and steps it.
func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyOne) {
		a.World.SpawnBand(spawnBatch, float64(a.Opts.Width))
	}
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		a.World.Spawn(a.mouse())
	}
	if rl.IsKeyDown(rl.KeyP) {
		a.World.ApplyPointerForce(a.mouse())
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.World.Clear()
		a.Energy = a.Energy[:0]
	}
	if rl.IsKeyPressed(rl.KeyG) {
		a.World.ToggleGravity()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.World.CalmAll()
	}
	if rl.IsKeyPressed(rl.KeyW) {
		a.World.ToggleWind()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Paused = !a.Paused
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.HideHUD = !a.HideHUD
	}

	a.FPS.Observe(float64(rl.GetFPS()))

	if a.Paused {
		return
	}
	a.Last = a.World.Step(a.Opts.FrameDt, float64(a.Opts.Width), float64(a.Opts.Height))
	a.Energy = append(a.Energy, a.World.Summarize().KineticEnergy)
	if len(a.Energy) > historyLen {
		a.Energy = a.Energy[1:]
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.DrawRectangle(0, 0, a.Opts.Width, a.Opts.Height, ColVeil)

	a.drawParticles()
	if !a.HideHUD {
		a.DrawHUD()
		a.DrawTelemetry()
	}

	rl.EndDrawing()
}
