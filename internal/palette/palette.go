// Package palette maps simulation quantities to display colours.
package palette

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// SpeedScale is the squared speed at which Speed saturates to pure red.
const SpeedScale = 25.0

var (
	Good = colorful.Color{R: 0, G: 0.894, B: 0.188}
	Warn = colorful.Color{R: 0.992, G: 0.976, B: 0}
	Bad  = colorful.Color{R: 0.902, G: 0.161, B: 0.216}
)

// Speed colours a particle by its implicit speed: blue at rest, green in
// between, red when fast.
func Speed(speed float64) colorful.Color {
	n := math.Min(speed*speed/SpeedScale, 1)
	r := math.Pow(n, 1.5)
	g := (1 - n) * (1 - n)
	return colorful.Color{R: r, G: g, B: 1 - r}
}

// FPS picks the HUD colour for a frame rate.
func FPS(fps float64) colorful.Color {
	switch {
	case fps > 55:
		return Good
	case fps > 30:
		return Warn
	default:
		return Bad
	}
}

// Hex is Speed(speed) as "#rrggbb".
func Hex(speed float64) string {
	return Speed(speed).Clamped().Hex()
}

// RGBA8 returns c as 8-bit channels with the given alpha.
func RGBA8(c colorful.Color, alpha uint8) (r, g, b, a uint8) {
	r, g, b = c.Clamped().RGB255()
	return r, g, b, alpha
}

// Fade blends c towards black by t in [0,1], in HCL space.
func Fade(c colorful.Color, t float64) colorful.Color {
	return c.BlendHcl(colorful.Color{}, t).Clamped()
}
