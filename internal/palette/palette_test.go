package palette

import (
	"math"
	"testing"
)

func TestSpeed(t *testing.T) {
	tests := []struct {
		name    string
		speed   float64
		r, g, b float64
	}{
		{"rest", 0, 0, 1, 1},
		{"saturated", 5, 1, 0, 0},
		{"beyond", 50, 1, 0, 0},
		{"quarter", 2.5, 0.125, 0.5625, 0.875},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Speed(tt.speed)
			if math.Abs(c.R-tt.r) > 1e-9 || math.Abs(c.G-tt.g) > 1e-9 || math.Abs(c.B-tt.b) > 1e-9 {
				t.Errorf("Speed(%v) = (%v, %v, %v), want (%v, %v, %v)", tt.speed, c.R, c.G, c.B, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestSpeedMonotoneRed(t *testing.T) {
	prev := -1.0
	for s := 0.0; s <= 6; s += 0.1 {
		r := Speed(s).R
		if r < prev {
			t.Fatalf("red channel fell at speed %v", s)
		}
		prev = r
	}
}

func TestFPS(t *testing.T) {
	if FPS(60) != Good {
		t.Error("60 fps should be good")
	}
	if FPS(55) != Warn || FPS(31) != Warn {
		t.Error("31..55 fps should warn")
	}
	if FPS(30) != Bad || FPS(0) != Bad {
		t.Error("30 fps and below should be bad")
	}
}

func TestHex(t *testing.T) {
	if got := Hex(100); got != "#ff0000" {
		t.Errorf("Hex(100) = %s, want #ff0000", got)
	}
	if got := Hex(0); got != "#00ffff" {
		t.Errorf("Hex(0) = %s, want #00ffff", got)
	}
}

func TestRGBA8(t *testing.T) {
	r, g, b, a := RGBA8(Speed(0), 200)
	if r != 0 || g != 255 || b != 255 || a != 200 {
		t.Errorf("RGBA8 = %d,%d,%d,%d", r, g, b, a)
	}
}

func TestFade(t *testing.T) {
	c := Fade(Speed(0), 1)
	if c.R > 1e-6 || c.G > 1e-6 || c.B > 1e-6 {
		t.Errorf("full fade should be black, got %v", c)
	}
}
