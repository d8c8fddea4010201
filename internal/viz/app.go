package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/verletsim/internal/particle"
	"github.com/san-kum/verletsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	minCols         = 20
	minRows         = 6
	statsCols       = 42
	historyCapacity = 600
	spawnBatch      = 100
	pushFrames      = 12
	gifPath         = "verletsim.gif"

	// the canvas starts below the title line and inside its border
	canvasLeft = 1
	canvasTop  = 2
)

type TickMsg time.Time

// Options describes the box the world lives in and the frame pacing.
type Options struct {
	Width, Height float64
	FrameDt       float64
	Threshold     int
}

// Model is the terminal front-end. It owns the frame loop, so it is the only
// caller of the world's event methods.
type Model struct {
	world   *sim.World
	opts    Options
	canvas  *Canvas
	fps     *FPSMeter
	rec     *Recorder
	theme   Theme
	views   []particle.View
	last    sim.FrameStats
	energy  []float64
	checks  []float64
	pointer r2.Vec
	hasPtr  bool

	running   bool
	mouseDown bool
	pushLeft  int
	recording bool
	showHelp  bool
	message   string
}

func NewModel(w *sim.World, opts Options) Model {
	canvas := NewCanvas(defaultCols, defaultRows)
	return Model{
		world:   w,
		opts:    opts,
		canvas:  canvas,
		fps:     NewFPSMeter(int(1/opts.FrameDt + 0.5)),
		rec:     &Recorder{},
		theme:   Themes[0],
		energy:  make([]float64, 0, historyCapacity),
		checks:  make([]float64, 0, historyCapacity),
		running: true,
	}
}

// Run starts the terminal front-end and blocks until the user quits.
func Run(w *sim.World, opts Options) error {
	p := tea.NewProgram(NewModel(w, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Duration(m.opts.FrameDt*float64(time.Second)), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) World() *sim.World { return m.world }
func (m Model) Running() bool     { return m.running }

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.frame(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.recording {
			m.stopRecording()
		}
		return m, tea.Quit
	case "1":
		m.world.SpawnBand(spawnBatch, m.opts.Width)
	case " ":
		m.world.Spawn(m.target())
	case "p":
		m.pushLeft = pushFrames
	case "g":
		m.world.ToggleGravity()
	case "c":
		m.world.CalmAll()
	case "r":
		m.world.Clear()
		m.energy = m.energy[:0]
		m.checks = m.checks[:0]
	case "w":
		m.world.ToggleWind()
	case "s":
		m.running = !m.running
	case "t":
		m.theme = NextTheme(m.theme)
	case "v":
		if m.recording {
			m.stopRecording()
		} else {
			m.recording = true
			m.rec.Reset()
			m.message = "recording"
		}
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) stopRecording() {
	m.recording = false
	if err := m.rec.Save(gifPath); err != nil {
		m.message = "gif: " + err.Error()
	} else {
		m.message = fmt.Sprintf("saved %d frames to %s", m.rec.Len(), gifPath)
	}
	m.rec.Reset()
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	col, row := msg.X-canvasLeft, msg.Y-canvasTop
	inside := col >= 0 && row >= 0 && col < m.canvas.Width && row < m.canvas.Height
	if inside {
		m.pointer = NewViewport(m.box(), m.canvas).FromCell(col, row)
		m.hasPtr = true
	}

	if msg.Button != tea.MouseButtonLeft {
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		m.mouseDown = inside
		if inside {
			m.world.Spawn(m.pointer)
		}
	case tea.MouseActionRelease:
		m.mouseDown = false
	}
}

// target is the last pointer position, or the middle of the box.
func (m *Model) target() r2.Vec {
	if m.hasPtr {
		return m.pointer
	}
	return r2.Scale(0.5, m.box())
}

func (m *Model) box() r2.Vec {
	return r2.Vec{X: m.opts.Width, Y: m.opts.Height}
}

func (m *Model) resize(w, h int) {
	cols := max(w-statsCols-canvasLeft*2, minCols)
	rows := max(h-canvasTop-2, minRows)
	if cols != m.canvas.Width || rows != m.canvas.Height {
		m.canvas = NewCanvas(cols, rows)
	}
}

// frame runs one tick of the loop: held inputs, physics, history.
func (m *Model) frame(now time.Time) {
	m.fps.Tick(now)

	if m.mouseDown {
		m.world.Spawn(m.pointer)
	}
	if m.pushLeft > 0 {
		m.world.ApplyPointerForce(m.target())
		m.pushLeft--
	}

	if m.running {
		m.last = m.world.Step(m.opts.FrameDt, m.opts.Width, m.opts.Height)
		m.energy = pushHistory(m.energy, m.world.Summarize().KineticEnergy)
		m.checks = pushHistory(m.checks, float64(m.last.Collide.Checks))
	}

	m.views = m.world.Views(m.views[:0])
	NewViewport(m.box(), m.canvas).Draw(m.views)

	if m.recording {
		m.rec.Capture(m.canvas)
	}
}

func pushHistory(h []float64, v float64) []float64 {
	if len(h) >= historyCapacity {
		copy(h, h[1:])
		h = h[:len(h)-1]
	}
	return append(h, v)
}

// View renders the TUI interface.
func (m Model) View() string {
	title := GradientText("VERLETSIM", m.theme.TitleFrom, m.theme.TitleTo)
	box := canvasStyle.
		BorderForeground(m.theme.Border).
		BorderBackground(m.theme.Background).
		Render(strings.TrimSuffix(m.canvas.Colored(), "\n"))
	left := title + "\n" + box

	main := lipgloss.JoinHorizontal(lipgloss.Top, left, statsStyle.BorderForeground(m.theme.Muted).Render(m.stats()))
	if m.showHelp {
		return main + "\n" + help()
	}
	return main
}

func (m Model) stats() string {
	var s strings.Builder

	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	if m.recording {
		status += " " + StatusRecording.Render("● REC")
	}
	s.WriteString(status + "\n\n")

	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + value + "\n")
	}
	row("FPS", FPSText(m.fps.Value()))
	row("Particles", MetricValue.Render(fmt.Sprintf("%d", m.world.Len())))
	row("Substeps", MetricValue.Render(fmt.Sprintf("%d", m.world.Substeps())))
	row("Cells", MetricValue.Render(fmt.Sprintf("%d", m.last.Cells)))
	row("Checks", MetricValue.Render(fmt.Sprintf("%d", m.last.Collide.Checks)))
	row("Time", MetricValue.Render(fmt.Sprintf("%.2fs", m.world.Time())))
	row("Gravity", onOff(m.world.Gravity()))
	row("Wind", onOff(m.world.Wind()))

	if m.opts.Threshold > 0 {
		load := float64(m.world.Len()) / float64(m.opts.Threshold)
		row("Load", ProgressBar(load, 16))
	}

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}
	if len(m.checks) > 0 {
		s.WriteString("\n" + MetricLabel.Render("Pairs") + SparklineChart(m.checks, 24) + "\n")
	}

	if m.message != "" {
		s.WriteString("\n" + Subtle.Render(m.message) + "\n")
	}
	s.WriteString("\n" + Separator(30) + "\n")
	s.WriteString(KeyHint.Render("1:+100 SP/click:spawn P:push\nG:gravity C:calm R:reset W:wind\nS:pause T:theme V:gif ?:help Q:quit"))
	return s.String()
}

func onOff(on bool) string {
	if on {
		return StatusRunning.Render("on")
	}
	return Subtle.Render("off")
}

func help() string {
	return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  1        - Drop 100 particles       ║
║  Space    - Spawn at the pointer     ║
║  Click    - Spawn while held         ║
║  P        - Push away from pointer   ║
║  G        - Toggle gravity           ║
║  C        - Calm every particle      ║
║  R        - Remove every particle    ║
║  W        - Toggle wind              ║
║  S        - Pause/Resume             ║
║  T        - Cycle themes             ║
║  V        - Toggle GIF recording     ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
}
