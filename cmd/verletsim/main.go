package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/verletsim/internal/analysis"
	"github.com/san-kum/verletsim/internal/automation"
	"github.com/san-kum/verletsim/internal/collide"
	"github.com/san-kum/verletsim/internal/config"
	"github.com/san-kum/verletsim/internal/export"
	"github.com/san-kum/verletsim/internal/grid"
	"github.com/san-kum/verletsim/internal/gui"
	"github.com/san-kum/verletsim/internal/metrics"
	"github.com/san-kum/verletsim/internal/optim"
	"github.com/san-kum/verletsim/internal/particle"
	"github.com/san-kum/verletsim/internal/sim"
	"github.com/san-kum/verletsim/internal/storage"
	"github.com/san-kum/verletsim/internal/tui"
	"github.com/san-kum/verletsim/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	preset     string

	seed      int64
	frames    int
	particles int
	workers   int
	width     float64
	height    float64
	gravity   bool
	wind      bool

	live      bool
	frameRate int
	jsonOut   string

	particlesCSV bool

	outFile string
	series  string
	braille bool

	benchSizes []int
	benchBrute int

	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	trials     int

	xAxis string
	yAxis string

	tuneCells   []float64
	tuneWorkers []int
	tuneMetric  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "verletsim",
		Short: "verlet particle sandbox",
		RunE:  runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".verletsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 1, "random seed")
	rootCmd.PersistentFlags().IntVar(&particles, "particles", 1, "initial particle count")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 1, "collision workers")
	rootCmd.PersistentFlags().Float64Var(&width, "width", config.DefaultWidth, "world width")
	rootCmd.PersistentFlags().Float64Var(&height, "height", config.DefaultHeight, "world height")
	rootCmd.PersistentFlags().BoolVar(&gravity, "gravity", true, "start with gravity on")
	rootCmd.PersistentFlags().BoolVar(&wind, "wind", false, "start with wind on")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the simulation in a window",
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the simulation in the terminal",
		RunE:  runTUI,
	}

	runCmd := &cobra.Command{
		Use:   "run [name]",
		Short: "run a headless simulation and store it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to simulate")
	runCmd.Flags().BoolVar(&live, "live", false, "print a status line while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 10, "status line refresh rate")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "also export the run to this JSON file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().BoolVar(&particlesCSV, "particles", false, "export the final population instead of frame stats")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [run_id]",
		Short: "render a stored run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshotRun,
	}
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	snapshotCmd.Flags().StringVar(&series, "series", "", "plot a frame series instead (energy, speed, checks)")
	snapshotCmd.Flags().BoolVar(&braille, "braille", false, "render through the terminal canvas")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "compare the grid resolver with all-pairs",
		RunE:  benchResolvers,
	}
	benchCmd.Flags().IntSliceVar(&benchSizes, "sizes", []int{500, 2000, 8000, 32000}, "population sizes")
	benchCmd.Flags().IntVar(&benchBrute, "brute-max", 8000, "largest population timed with all-pairs")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario of headless runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter over headless runs",
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames per run")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "particles", fmt.Sprintf("parameter to sweep %v", automation.SweepParams))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 500, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 4000, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	montecarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "repeat a run over random spawn seeds",
		RunE:  runMonteCarlo,
	}
	montecarloCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames per trial")
	montecarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency and settling analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of the final population",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&xAxis, "x-axis", "y", fmt.Sprintf("quantity on the x-axis %v", analysis.Axes))
	phaseCmd.Flags().StringVar(&yAxis, "y-axis", "vy", fmt.Sprintf("quantity on the y-axis %v", analysis.Axes))

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid-search cell size and workers",
		RunE:  tuneRun,
	}
	tuneCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames per candidate")
	tuneCmd.Flags().Float64SliceVar(&tuneCells, "cells", []float64{14, 20, 28}, "cell sizes to try")
	tuneCmd.Flags().IntSliceVar(&tuneWorkers, "worker-counts", []int{1, 2, 4}, "worker counts to try")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "seconds", "metric to minimise")

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, listCmd, plotCmd, exportCSVCmd, snapshotCmd, benchCmd, presetsCmd,
		scenarioCmd, sweepCmd, montecarloCmd, analyzeCmd, phaseCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("bad --log-level %q: %w", logLevel, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}

// loadConfig resolves preset, then file, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("particles") {
		cfg.InitialParticles = particles
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("gravity") {
		cfg.Gravity = gravity
	}
	if flags.Changed("wind") {
		cfg.Wind.Enabled = wind
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	gui.Run(cfg.NewWorld(logger), gui.Options{
		Width:   int32(cfg.Width),
		Height:  int32(cfg.Height),
		FrameDt: cfg.FrameDt,
	})
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	var cfg *config.Config
	if preset == "" && configFile == "" {
		cfg, err = tui.Pick()
		if err != nil {
			return err
		}
		if cfg == nil {
			return nil
		}
	} else if cfg, err = loadConfig(cmd); err != nil {
		return err
	}

	return viz.Run(cfg.NewWorld(logger), viz.Options{
		Width:     cfg.Width,
		Height:    cfg.Height,
		FrameDt:   cfg.FrameDt,
		Threshold: cfg.Substeps.Threshold,
	})
}

func runHeadless(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	name := preset
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		name = "run"
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.NewRunner(cfg.NewWorld(logger))
	for _, m := range metrics.Default(cfg.CellSize) {
		runner.AddMetric(m)
	}

	var renderer *tui.LiveRenderer
	if live {
		renderer = tui.NewLiveRenderer(os.Stdout, name, frameRate)
		runner.AddObserver(renderer)
		renderer.Start()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s: %d particles, %d frames\n", name, cfg.InitialParticles, cfg.Frames)
	start := time.Now()
	result, err := runner.Run(ctx, cfg.RunConfig())
	if renderer != nil {
		renderer.Stop()
		fmt.Println()
	}
	if err != nil && result == nil {
		return err
	}
	elapsed := time.Since(start)

	runID, saveErr := st.Save(name, cfg, result)
	if saveErr != nil {
		return saveErr
	}
	if jsonOut != "" {
		if err := storage.ExportJSON(jsonOut, name, cfg.RunConfig(), result); err != nil {
			return err
		}
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(result.Frames))
	fmt.Printf("particles: %d\n", len(result.Final))
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for n := range result.Metrics {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Printf("  %s: %.6f\n", n, result.Metrics[n])
	}

	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tFRAMES\tPARTICLES\tBOX\tGRAVITY\tWIND")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.0fx%.0f\t%v\t%v\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.FinalParticles,
			run.Width, run.Height,
			run.Gravity,
			run.Wind,
		)
	}

	return w.Flush()
}

func frameSeries(name string, frames []sim.FrameStats, summary []sim.Summary) ([]float64, string, error) {
	switch name {
	case "energy":
		data := make([]float64, len(summary))
		for i, s := range summary {
			data[i] = s.KineticEnergy
		}
		return data, "kinetic energy", nil
	case "speed":
		data := make([]float64, len(summary))
		for i, s := range summary {
			data[i] = s.MaxSpeed
		}
		return data, "max speed", nil
	case "checks":
		data := make([]float64, len(frames))
		for i, f := range frames {
			data[i] = float64(f.Collide.Checks)
		}
		return data, "pair checks per frame", nil
	}
	return nil, "", fmt.Errorf("unknown series %q (energy, speed, checks)", name)
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, summary, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("name: %s\n", meta.Name)
	fmt.Printf("frames: %d\n\n", len(frames))

	for _, s := range []string{"energy", "speed", "checks"} {
		data, caption, err := frameSeries(s, frames, summary)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	if particlesCSV {
		ps, err := st.LoadParticles(runID)
		if err != nil {
			return err
		}
		w := csv.NewWriter(os.Stdout)
		if err := storage.WriteParticles(w, ps); err != nil {
			return err
		}
		w.Flush()
		return w.Error()
	}

	frames, summary, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.WriteFramesTo(os.Stdout, frames, summary)
}

func snapshotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	var svg string
	switch {
	case series != "":
		frames, summary, err := st.LoadFrames(runID)
		if err != nil {
			return err
		}
		data, _, err := frameSeries(series, frames, summary)
		if err != nil {
			return err
		}
		svg = export.SeriesToSVG(data, 800, 240, "#4ade80")
	case braille:
		ps, err := st.LoadParticles(runID)
		if err != nil {
			return err
		}
		canvas := viz.NewCanvas(100, 40)
		views := make([]particle.View, len(ps))
		for i := range ps {
			views[i] = ps[i].View()
		}
		viz.NewViewport(r2.Vec{X: meta.Width, Y: meta.Height}, canvas).Draw(views)
		svg = export.CanvasToSVG(canvas, 4)
	default:
		ps, err := st.LoadParticles(runID)
		if err != nil {
			return err
		}
		svg = export.ParticlesToSVG(ps, meta.Width, meta.Height)
	}

	if outFile == "" {
		_, err := fmt.Print(svg)
		return err
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

// benchResolvers settles each population for a second, then times one
// resolver pass per strategy on identical copies.
func benchResolvers(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tSTRATEGY\tCHECKS\tCORRECTIONS\tTIME")

	for _, n := range benchSizes {
		opts := cfg.Options(nil)
		world := sim.NewWorld(opts)
		world.SpawnBand(n, cfg.Width)
		for i := 0; i < 60; i++ {
			world.Step(cfg.FrameDt, cfg.Width, cfg.Height)
		}
		base := world.Particles()

		g := grid.New(cfg.CellSize)
		par := collide.NewParallel(cfg.Workers)

		strategies := []struct {
			name string
			fn   func(ps []particle.Particle) collide.Stats
		}{
			{"grid", func(ps []particle.Particle) collide.Stats {
				g.Rebuild(ps)
				return collide.Resolve(ps, g)
			}},
			{"grid-parallel", func(ps []particle.Particle) collide.Stats {
				g.Rebuild(ps)
				return par.Resolve(ps, g)
			}},
			{"all-pairs", collide.BruteForce},
		}

		for _, s := range strategies {
			if s.name == "all-pairs" && n > benchBrute {
				fmt.Fprintf(w, "%d\t%s\t-\t-\tskipped\n", n, s.name)
				continue
			}
			ps := append([]particle.Particle(nil), base...)
			start := time.Now()
			st := s.fn(ps)
			elapsed := time.Since(start)
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%v\n", n, s.name, st.Checks, st.Corrections, elapsed)
		}
	}

	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("scenario %s: %d steps\n", sc.Name, len(sc.Steps))
	results, err := automation.RunScenario(ctx, sc, automation.Options{Logger: logger, Store: st})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tPARTICLES\tFRAMES\tENERGY\tCONTAINMENT\tRUN")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%.3f\t%.3f\t%s\n",
			r.Step,
			len(r.Result.Final),
			len(r.Result.Frames),
			r.Result.Metrics["kinetic_energy"],
			r.Result.Metrics["containment"],
			r.RunID,
		)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(context.Background(), &automation.ParameterSweep{
		Base:     cfg,
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
	}, automation.Options{Logger: logger})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPARTICLES\tCHECKS\tTIME\tOVERLAP\tCONTAINMENT\n", sweepParam)
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%d\t%d\t%v\t%.4f\t%.3f\n",
			r.Value, r.Particles, r.Checks, r.Elapsed,
			r.Metrics["overlap"], r.Metrics["containment"])
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunMonteCarlo(context.Background(), &automation.MonteCarloConfig{
		Base:      cfg,
		NumTrials: trials,
		Seed:      cfg.Seed,
	}, automation.Options{Logger: logger})
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("trials: %d\n", len(results))
	fmt.Printf("stable: %d\n", stable)
	fmt.Printf("unstable: %d\n", unstable)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, summary, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to analyze")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("frames: %d\n\n", len(frames))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERIES\tDOMINANT HZ\tPOWER\tSETTLED AT")
	for _, s := range []string{"energy", "speed", "checks"} {
		data, caption, err := frameSeries(s, frames, summary)
		if err != nil {
			return err
		}
		hz, power := analysis.DominantFrequency(data, meta.FrameDt)
		settled := "never"
		if i := analysis.SettleFrame(data, 0.05); i >= 0 {
			settled = fmt.Sprintf("frame %d", frames[i].Frame)
		}
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%s\n", caption, hz, power, settled)
	}
	return w.Flush()
}

func phasePlot(cmd *cobra.Command, args []string) error {
	x, err := analysis.ParseAxis(xAxis)
	if err != nil {
		return err
	}
	y, err := analysis.ParseAxis(yAxis)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	ps, err := st.LoadParticles(args[0])
	if err != nil {
		return err
	}
	if len(ps) == 0 {
		return fmt.Errorf("no particles in run")
	}

	fmt.Printf("phase portrait: %s vs %s (%d particles)\n\n", y, x, len(ps))
	fmt.Print(analysis.Portrait(ps, x, y).ASCII(80, 24))
	return nil
}

func tuneRun(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	workerVals := make([]float64, len(tuneWorkers))
	for i, n := range tuneWorkers {
		workerVals[i] = float64(n)
	}
	g := optim.NewGridSearch([]string{"cell_size", "workers"}, [][]float64{tuneCells, workerVals})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("tuning over %d candidates, minimising %s\n", g.Size(), tuneMetric)
	params, best, err := g.Search(ctx, automation.Evaluator(cfg, automation.Options{Logger: logger}), tuneMetric)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.6f\n", tuneMetric, best)
	fmt.Printf("  cell_size: %g\n", params["cell_size"])
	fmt.Printf("  workers: %g\n", params["workers"])
	return nil
}
