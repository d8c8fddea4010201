package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/san-kum/verletsim/internal/config"
	"github.com/san-kum/verletsim/internal/particle"
	"github.com/san-kum/verletsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	metadataFile  = "metadata.json"
	framesFile    = "frames.csv"
	particlesFile = "particles.csv"
)

var ErrMalformed = errors.New("storage: malformed record")

var (
	frameHeader = []string{
		"frame", "time", "substeps", "sub_dt", "particles", "cells",
		"checks", "corrections", "kinetic_energy", "mean_speed", "max_speed",
	}
	particleHeader = []string{"x", "y", "prev_x", "prev_y", "radius"}
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Timestamp      time.Time          `json:"timestamp"`
	Seed           int64              `json:"seed"`
	FrameDt        float64            `json:"frame_dt"`
	Frames         int                `json:"frames"`
	Width          float64            `json:"width"`
	Height         float64            `json:"height"`
	Gravity        bool               `json:"gravity"`
	Wind           bool               `json:"wind"`
	CellSize       float64            `json:"cell_size"`
	Particles      int                `json:"particles"`
	FinalParticles int                `json:"final_particles"`
	Metrics        map[string]float64 `json:"metrics"`
	Errors         []string           `json:"errors,omitempty"`
}

// Save writes a run under a fresh ID and returns that ID.
func (s *Store) Save(name string, cfg *config.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Name:           name,
		Timestamp:      now,
		Seed:           cfg.Seed,
		FrameDt:        cfg.FrameDt,
		Frames:         len(result.Frames),
		Width:          cfg.Width,
		Height:         cfg.Height,
		Gravity:        cfg.Gravity,
		Wind:           cfg.Wind.Enabled,
		CellSize:       cfg.CellSize,
		Particles:      cfg.InitialParticles,
		FinalParticles: len(result.Final),
		Metrics:        result.Metrics,
	}
	for _, err := range result.Errors {
		meta.Errors = append(meta.Errors, err.Error())
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, framesFile), func(w *csv.Writer) error {
		return WriteFrames(w, result.Frames, result.Summary)
	}); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, particlesFile), func(w *csv.Writer) error {
		return WriteParticles(w, result.Final)
	}); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	slices.SortFunc(runs, func(a, b RunMetadata) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads back the per-frame statistics of a run.
func (s *Store) LoadFrames(runID string) ([]sim.FrameStats, []sim.Summary, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, nil, err
	}

	frames := make([]sim.FrameStats, 0, len(records))
	summary := make([]sim.Summary, 0, len(records))
	for line, rec := range records {
		if len(rec) != len(frameHeader) {
			return nil, nil, fmt.Errorf("%w: frames line %d has %d fields", ErrMalformed, line+2, len(rec))
		}
		p := fieldParser{rec: rec}
		st := sim.FrameStats{
			Frame:     p.int(0),
			Time:      p.float(1),
			Substeps:  p.int(2),
			SubDt:     p.float(3),
			Particles: p.int(4),
			Cells:     p.int(5),
		}
		st.Collide.Checks = p.int(6)
		st.Collide.Corrections = p.int(7)
		sum := sim.Summary{
			KineticEnergy: p.float(8),
			MeanSpeed:     p.float(9),
			MaxSpeed:      p.float(10),
		}
		if p.err != nil {
			return nil, nil, fmt.Errorf("%w: frames line %d: %v", ErrMalformed, line+2, p.err)
		}
		frames = append(frames, st)
		summary = append(summary, sum)
	}
	return frames, summary, nil
}

// LoadParticles reads back the final population of a run.
func (s *Store) LoadParticles(runID string) ([]particle.Particle, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, particlesFile))
	if err != nil {
		return nil, err
	}

	ps := make([]particle.Particle, 0, len(records))
	for line, rec := range records {
		if len(rec) != len(particleHeader) {
			return nil, fmt.Errorf("%w: particles line %d has %d fields", ErrMalformed, line+2, len(rec))
		}
		p := fieldParser{rec: rec}
		q := particle.Particle{
			Pos:    r2.Vec{X: p.float(0), Y: p.float(1)},
			Prev:   r2.Vec{X: p.float(2), Y: p.float(3)},
			Radius: p.float(4),
		}
		if p.err != nil {
			return nil, fmt.Errorf("%w: particles line %d: %v", ErrMalformed, line+2, p.err)
		}
		ps = append(ps, q)
	}
	return ps, nil
}

// WriteFrames writes a header and one row per frame. summary may be shorter
// than frames; missing columns are written as zero.
func WriteFrames(w *csv.Writer, frames []sim.FrameStats, summary []sim.Summary) error {
	if err := w.Write(frameHeader); err != nil {
		return err
	}
	for i, st := range frames {
		var sum sim.Summary
		if i < len(summary) {
			sum = summary[i]
		}
		row := []string{
			strconv.Itoa(st.Frame),
			formatFloat(st.Time),
			strconv.Itoa(st.Substeps),
			formatFloat(st.SubDt),
			strconv.Itoa(st.Particles),
			strconv.Itoa(st.Cells),
			strconv.Itoa(st.Collide.Checks),
			strconv.Itoa(st.Collide.Corrections),
			formatFloat(sum.KineticEnergy),
			formatFloat(sum.MeanSpeed),
			formatFloat(sum.MaxSpeed),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func WriteParticles(w *csv.Writer, ps []particle.Particle) error {
	if err := w.Write(particleHeader); err != nil {
		return err
	}
	for i := range ps {
		p := &ps[i]
		row := []string{
			formatFloat(p.Pos.X),
			formatFloat(p.Pos.Y),
			formatFloat(p.Prev.X),
			formatFloat(p.Prev.Y),
			formatFloat(p.Radius),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteFramesTo writes the frame table to any writer, flushing at the end.
func WriteFramesTo(out io.Writer, frames []sim.FrameStats, summary []sim.Summary) error {
	w := csv.NewWriter(out)
	if err := WriteFrames(w, frames, summary); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, fill func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := fill(w); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// readCSV returns the records after the header line.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]string{}, nil
	}
	return records[1:], nil
}

type fieldParser struct {
	rec []string
	err error
}

func (p *fieldParser) float(i int) float64 {
	v, err := strconv.ParseFloat(p.rec[i], 64)
	if err != nil && p.err == nil {
		p.err = err
	}
	return v
}

func (p *fieldParser) int(i int) int {
	v, err := strconv.Atoi(p.rec[i])
	if err != nil && p.err == nil {
		p.err = err
	}
	return v
}
