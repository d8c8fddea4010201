package viz

import (
	"math"
	"testing"
	"time"
)

func TestFPSMeterConverges(t *testing.T) {
	m := NewFPSMeter(60)

	if got := m.Observe(30); got != 30 {
		t.Errorf("first sample should seed the meter, got %v", got)
	}
	for range 300 {
		m.Observe(60)
	}
	if math.Abs(m.Value()-60) > 0.1 {
		t.Errorf("expected ~60, got %v", m.Value())
	}
}

func TestFPSMeterTick(t *testing.T) {
	m := NewFPSMeter(60)
	now := time.Now()

	if m.Tick(now) != 0 {
		t.Error("first tick has no interval")
	}
	got := m.Tick(now.Add(20 * time.Millisecond))
	if math.Abs(got-50) > 1e-9 {
		t.Errorf("expected 50 fps, got %v", got)
	}
	if m.Tick(now.Add(20*time.Millisecond)) != got {
		t.Error("zero interval should not change the readout")
	}
}

func TestRecorder(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Plot(1, 1, 2)

	var r Recorder
	r.Capture(c)
	r.Capture(c)
	if r.Len() != 2 {
		t.Fatalf("expected 2 frames, got %d", r.Len())
	}

	path := t.TempDir() + "/out.gif"
	if err := r.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	r.Reset()
	if r.Len() != 0 {
		t.Error("reset should drop frames")
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("missing").Name != Themes[0].Name {
		t.Error("unknown theme should fall back to the first")
	}
	seen := map[string]bool{}
	th := Themes[0]
	for range Themes {
		seen[th.Name] = true
		th = NextTheme(th)
	}
	if len(seen) != len(Themes) || th.Name != Themes[0].Name {
		t.Error("NextTheme should cycle through every theme")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("ThemeNames length mismatch")
	}
}
