package sim

import (
	"math"

	"github.com/aquilax/go-perlin"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	windAlpha  = 2.0
	windBeta   = 2.0
	windOctave = 3
)

// Wind is a smooth, slowly changing flow field. The noise value at
// (x, y, t) picks the direction; the magnitude is constant.
type Wind struct {
	noise    *perlin.Perlin
	strength float64
	scale    float64
	speed    float64
}

func NewWind(seed int64, o WindOptions) *Wind {
	return &Wind{
		noise:    perlin.NewPerlin(windAlpha, windBeta, windOctave, seed),
		strength: o.Strength,
		scale:    o.Scale,
		speed:    o.Speed,
	}
}

// Force returns the wind force at pos at time t.
func (w *Wind) Force(pos r2.Vec, t float64) r2.Vec {
	n := w.noise.Noise3D(pos.X*w.scale, pos.Y*w.scale, t*w.speed)
	angle := (n + 1) * math.Pi
	return r2.Vec{
		X: math.Cos(angle) * w.strength,
		Y: math.Sin(angle) * w.strength,
	}
}
