package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/verletsim/internal/sim"
)

type ExportData struct {
	Name     string             `json:"name"`
	FrameDt  float64            `json:"frame_dt"`
	Width    float64            `json:"width"`
	Height   float64            `json:"height"`
	Frames   int                `json:"frames"`
	Time     []float64          `json:"time"`
	Checks   []int              `json:"checks"`
	Energy   []float64          `json:"kinetic_energy"`
	MaxSpeed []float64          `json:"max_speed"`
	Metrics  map[string]float64 `json:"metrics"`
}

func newExportData(name string, cfg sim.RunConfig, result *sim.Result) ExportData {
	data := ExportData{
		Name:     name,
		FrameDt:  cfg.FrameDt,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Frames:   len(result.Frames),
		Time:     make([]float64, len(result.Frames)),
		Checks:   make([]int, len(result.Frames)),
		Energy:   make([]float64, len(result.Summary)),
		MaxSpeed: make([]float64, len(result.Summary)),
		Metrics:  result.Metrics,
	}
	for i, st := range result.Frames {
		data.Time[i] = st.Time
		data.Checks[i] = st.Collide.Checks
	}
	for i, s := range result.Summary {
		data.Energy[i] = s.KineticEnergy
		data.MaxSpeed[i] = s.MaxSpeed
	}
	return data
}

func ExportJSON(path, name string, cfg sim.RunConfig, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return EncodeJSON(file, name, cfg, result)
}

func EncodeJSON(w io.Writer, name string, cfg sim.RunConfig, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(name, cfg, result))
}
