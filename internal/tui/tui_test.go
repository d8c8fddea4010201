package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/verletsim/internal/particle"
	"github.com/san-kum/verletsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Launcher, keys ...string) (Launcher, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(Launcher)
	}
	return m, cmd
}

func TestLauncherPicksPreset(t *testing.T) {
	m := NewLauncher()
	if len(m.presets) == 0 {
		t.Fatal("no presets listed")
	}

	m, _ = send(m, "enter")
	if m.state != stateConfig || m.cfg == nil {
		t.Fatal("enter should open the config screen")
	}
	start := m.cfg.InitialParticles

	m, _ = send(m, "right")
	if m.cfg.InitialParticles != start+100 {
		t.Errorf("right should add 100 particles, got %d", m.cfg.InitialParticles)
	}

	m, cmd := send(m, "s")
	if m.Chosen() == nil {
		t.Fatal("s should choose the config")
	}
	if cmd == nil {
		t.Fatal("s should quit")
	}
}

func TestLauncherEdit(t *testing.T) {
	m := NewLauncher()
	m, _ = send(m, "enter", "down", "enter")
	if !m.editing {
		t.Fatal("enter should start editing")
	}
	m.editBuf = ""
	m, _ = send(m, "3", "x", "2", "0", "enter")
	if m.cfg.Width != 320 {
		t.Errorf("expected width 320, got %g", m.cfg.Width)
	}
}

func TestLauncherRejectsInvalid(t *testing.T) {
	m := NewLauncher()
	m, _ = send(m, "enter", "down", "enter")
	m.editBuf = ""
	m, _ = send(m, "-", "1", "enter", "s")

	if m.Chosen() != nil {
		t.Error("invalid config should not be chosen")
	}
	if m.err == nil {
		t.Error("expected a validation error")
	}
	if !strings.Contains(m.View(), "invalid") {
		t.Error("view should show the error")
	}
}

func TestLauncherQuit(t *testing.T) {
	m := NewLauncher()
	_, cmd := send(m, "q")
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestLiveRendererRateLimit(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, "test", 10)

	clock := time.Unix(100, 0)
	r.now = func() time.Time { return clock }

	f := sim.Frame{
		Particles: []particle.Particle{particle.New(r2.Vec{X: 50, Y: 50}, r2.Vec{}, 5)},
		Width:     100,
		Height:    100,
	}

	r.OnFrame(f)
	first := buf.Len()
	if first == 0 {
		t.Fatal("first frame should render")
	}

	clock = clock.Add(50 * time.Millisecond)
	r.OnFrame(f)
	if buf.Len() != first {
		t.Error("frame inside the rate limit should be dropped")
	}

	clock = clock.Add(60 * time.Millisecond)
	r.OnFrame(f)
	if buf.Len() == first {
		t.Error("frame after the interval should render")
	}
	if !strings.Contains(buf.String(), "test  frame=0") {
		t.Error("header missing")
	}
}
