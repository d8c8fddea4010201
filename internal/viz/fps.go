package viz

import (
	"time"

	"github.com/charmbracelet/harmonica"
)

// FPSMeter turns raw frame intervals into a steady readout by chasing the
// instantaneous rate with a critically damped spring.
type FPSMeter struct {
	spring harmonica.Spring
	value  float64
	vel    float64
	last   time.Time
}

func NewFPSMeter(fps int) *FPSMeter {
	return &FPSMeter{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

// Tick records a frame at now and returns the smoothed rate.
func (m *FPSMeter) Tick(now time.Time) float64 {
	if !m.last.IsZero() {
		if dt := now.Sub(m.last).Seconds(); dt > 0 {
			m.Observe(1 / dt)
		}
	}
	m.last = now
	return m.value
}

// Observe feeds one instantaneous rate sample.
func (m *FPSMeter) Observe(fps float64) float64 {
	if m.value == 0 && m.vel == 0 {
		m.value = fps
		return m.value
	}
	m.value, m.vel = m.spring.Update(m.value, m.vel, fps)
	return m.value
}

func (m *FPSMeter) Value() float64 { return m.value }
