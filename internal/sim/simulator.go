package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/verletsim/internal/particle"
)

// Runner steps a World headlessly for a fixed number of frames, feeding
// metrics and observers after every frame.
type Runner struct {
	world     *World
	metrics   []Metric
	observers []Observer
	log       *slog.Logger
}

func NewRunner(w *World) *Runner {
	return &Runner{
		world:     w,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       w.log,
	}
}

func (r *Runner) World() *World { return r.world }

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Frames:  make([]FrameStats, 0, cfg.Frames),
		Summary: make([]Summary, 0, cfg.Frames),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	r.log.Info("run started", "frames", cfg.Frames, "particles", r.world.Len(),
		"width", cfg.Width, "height", cfg.Height)

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			r.finish(result)
			return result, ctx.Err()
		default:
		}

		st := r.world.Step(cfg.FrameDt, cfg.Width, cfg.Height)
		result.Frames = append(result.Frames, st)
		result.Summary = append(result.Summary, r.world.Summarize())

		if cfg.ValidateState {
			if idx := firstInvalid(r.world.particles); idx >= 0 {
				err := SimError{
					Frame:   st.Frame,
					Time:    st.Time,
					Message: fmt.Sprintf("particle %d has a non-finite coordinate", idx),
				}
				r.log.Error("invalid state", "frame", st.Frame, "particle", idx)
				result.Errors = append(result.Errors, err)
				break
			}
		}

		f := Frame{Stats: st, Particles: r.world.particles, Width: cfg.Width, Height: cfg.Height}
		for _, m := range r.metrics {
			m.Observe(f)
		}
		for _, obs := range r.observers {
			obs.OnFrame(f)
		}
	}

	r.finish(result)
	r.log.Info("run finished", "frames", len(result.Frames), "errors", len(result.Errors))
	return result, nil
}

func (r *Runner) finish(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Final = append([]particle.Particle(nil), r.world.particles...)
}

// RunWithCallback steps until cfg.Frames frames have run, the context is
// cancelled or callback returns false. Frames <= 0 runs until stopped.
func (r *Runner) RunWithCallback(ctx context.Context, cfg RunConfig, callback func(FrameStats) bool) error {
	if cfg.FrameDt <= 0 || cfg.Width <= 0 || cfg.Height <= 0 {
		return validateConfig(cfg)
	}

	for i := 0; cfg.Frames <= 0 || i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		st := r.world.Step(cfg.FrameDt, cfg.Width, cfg.Height)
		if cfg.ValidateState {
			if idx := firstInvalid(r.world.particles); idx >= 0 {
				return SimError{Frame: st.Frame, Time: st.Time, Message: fmt.Sprintf("particle %d has a non-finite coordinate", idx)}
			}
		}
		if !callback(st) {
			return nil
		}
	}
	return nil
}

func validateConfig(cfg RunConfig) error {
	if cfg.FrameDt <= 0 {
		return fmt.Errorf("%w: frame dt must be positive, got %f", ErrInvalidConfig, cfg.FrameDt)
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidConfig, cfg.Frames)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: world must have positive size, got %gx%g", ErrInvalidConfig, cfg.Width, cfg.Height)
	}
	return nil
}

func firstInvalid(ps []particle.Particle) int {
	for i := range ps {
		if !ps[i].IsValid() {
			return i
		}
	}
	return -1
}
