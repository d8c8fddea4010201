package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/san-kum/verletsim/internal/config"
	"github.com/san-kum/verletsim/internal/metrics"
	"github.com/san-kum/verletsim/internal/optim"
	"github.com/san-kum/verletsim/internal/sim"
	"github.com/san-kum/verletsim/internal/storage"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyScenario = errors.New("automation: scenario has no steps")
	ErrUnknownParam  = errors.New("automation: unknown sweep parameter")
)

// Scenario is a scripted sequence of headless runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or the defaults) and overrides the
// fields that are set.
type ScenarioStep struct {
	Preset    string `yaml:"preset"`
	Frames    int    `yaml:"frames"`
	Particles int    `yaml:"particles"`
	Seed      int64  `yaml:"seed"`
	Workers   int    `yaml:"workers"`
	Gravity   *bool  `yaml:"gravity"`
	Wind      *bool  `yaml:"wind"`
	SaveAs    string `yaml:"save_as"`
}

// Options controls where scenario output goes. Store may be nil.
type Options struct {
	Logger *slog.Logger
	Store  *storage.Store
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

type StepResult struct {
	Step   int
	Config *config.Config
	Result *sim.Result
	RunID  string
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("automation: parse scenario: %w", err)
	}
	if len(scenario.Steps) == 0 {
		return nil, ErrEmptyScenario
	}
	return &scenario, nil
}

// Config resolves the step into a validated run configuration.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		p, err := config.GetPreset(s.Preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if s.Frames > 0 {
		cfg.Frames = s.Frames
	}
	if s.Particles > 0 {
		cfg.InitialParticles = s.Particles
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.Workers != 0 {
		cfg.Workers = s.Workers
	}
	if s.Gravity != nil {
		cfg.Gravity = *s.Gravity
	}
	if s.Wind != nil {
		cfg.Wind.Enabled = *s.Wind
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sim.Result, error) {
	runner := sim.NewRunner(cfg.NewWorld(logger))
	for _, m := range metrics.Default(cfg.CellSize) {
		runner.AddMetric(m)
	}
	return runner.Run(ctx, cfg.RunConfig())
}

// RunScenario executes the steps in order. Steps with SaveAs are written to
// opts.Store when one is given.
func RunScenario(ctx context.Context, scenario *Scenario, opts Options) ([]StepResult, error) {
	log := opts.logger()
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		log.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "preset", step.Preset)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := run(ctx, cfg, log)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: i + 1, Config: cfg, Result: result}
		if step.SaveAs != "" && opts.Store != nil {
			if sr.RunID, err = opts.Store.Save(step.SaveAs, cfg, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep runs Base once per evenly spaced value of Param.
type ParameterSweep struct {
	Base     *config.Config
	Param    string
	Min, Max float64
	NumSteps int
}

type SweepResult struct {
	Value     float64
	Particles int
	Checks    int
	Elapsed   time.Duration
	Metrics   map[string]float64
}

// SweepParams lists the names ParameterSweep.Param accepts.
var SweepParams = []string{"particles", "cell_size", "workers", "wind_strength", "frame_dt"}

// ApplyParam sets the sweepable parameter name on cfg.
func ApplyParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "particles":
		cfg.InitialParticles = int(v)
	case "cell_size":
		cfg.CellSize = v
	case "workers":
		cfg.Workers = int(v)
	case "wind_strength":
		cfg.Wind.Strength = v
	case "frame_dt":
		cfg.FrameDt = v
	default:
		return fmt.Errorf("%w: %q (available: %v)", ErrUnknownParam, name, SweepParams)
	}
	return nil
}

func (s *ParameterSweep) values() []float64 {
	if s.NumSteps < 2 {
		return []float64{s.Min}
	}
	step := (s.Max - s.Min) / float64(s.NumSteps-1)
	vals := make([]float64, s.NumSteps)
	for i := range vals {
		vals[i] = s.Min + float64(i)*step
	}
	return vals
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, opts Options) ([]SweepResult, error) {
	log := opts.logger()
	vals := sweep.values()
	results := make([]SweepResult, 0, len(vals))

	for i, v := range vals {
		cfg := *sweep.Base
		if err := ApplyParam(&cfg, sweep.Param, v); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return results, fmt.Errorf("sweep %s=%g: %w", sweep.Param, v, err)
		}

		start := time.Now()
		result, err := run(ctx, &cfg, log)
		if err != nil {
			return results, err
		}

		checks := 0
		for _, f := range result.Frames {
			checks += f.Collide.Checks
		}
		results = append(results, SweepResult{
			Value:     v,
			Particles: len(result.Final),
			Checks:    checks,
			Elapsed:   time.Since(start),
			Metrics:   result.Metrics,
		})

		log.Info("sweep", "step", i+1, "of", len(vals), sweep.Param, v)
	}

	return results, nil
}

// Evaluator scores one grid-search candidate by running base with the
// candidate's parameters applied. Besides the run metrics it reports
// "seconds" of wall time and "checks" summed over all frames.
func Evaluator(base *config.Config, opts Options) optim.Evaluate {
	log := opts.logger()
	return func(ctx context.Context, params map[string]float64) (map[string]float64, error) {
		cfg := *base
		for name, v := range params {
			if err := ApplyParam(&cfg, name, v); err != nil {
				return nil, err
			}
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}

		start := time.Now()
		result, err := run(ctx, &cfg, log)
		if err != nil {
			return nil, err
		}

		out := make(map[string]float64, len(result.Metrics)+2)
		for k, v := range result.Metrics {
			out[k] = v
		}
		out["seconds"] = time.Since(start).Seconds()
		checks := 0
		for _, f := range result.Frames {
			checks += f.Collide.Checks
		}
		out["checks"] = float64(checks)
		log.Debug("candidate", "params", params, "seconds", out["seconds"])
		return out, nil
	}
}

type MonteCarloConfig struct {
	Base      *config.Config
	NumTrials int
	Seed      int64
}

// MonteCarloResult records one trial. A trial is stable when the state
// stayed finite and every particle stayed inside the box on every frame.
type MonteCarloResult struct {
	TrialID int
	Seed    int64
	Stable  bool
	Metrics map[string]float64
}

// RunMonteCarlo repeats Base with a fresh spawn seed per trial.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, opts Options) ([]MonteCarloResult, error) {
	log := opts.logger()
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for trial := 0; trial < cfg.NumTrials; trial++ {
		c := *cfg.Base
		c.Seed = rng.Int63()

		result, err := run(ctx, &c, log)
		if err != nil {
			return results, err
		}

		results = append(results, MonteCarloResult{
			TrialID: trial,
			Seed:    c.Seed,
			Stable:  len(result.Errors) == 0 && result.Metrics["containment"] == 1,
			Metrics: result.Metrics,
		})

		if (trial+1)%10 == 0 {
			log.Info("monte carlo", "done", trial+1, "of", cfg.NumTrials)
		}
	}

	return results, nil
}

func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
