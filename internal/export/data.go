package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/san-kum/diffscale/internal/sim"
)

var ErrNoData = errors.New("no data to export")

// CSVHeader is the first row written by WriteCSV.
var CSVHeader = []string{"index", "radius_nm", "diffusion_time_s", "improvement_factor"}

// WriteCSV writes one row per sample.
func WriteCSV(w io.Writer, series sim.Series) error {
	if series.Len() == 0 {
		return ErrNoData
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for i := 0; i < series.Len(); i++ {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(series.Radii[i], 'g', 10, 64),
			strconv.FormatFloat(series.DiffusionTimes[i], 'e', 6, 64),
			strconv.FormatFloat(series.ImprovementFactors[i], 'e', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type ReportConfig struct {
	MinSize              float64 `json:"min_size_nm"`
	MaxSize              float64 `json:"max_size_nm"`
	DiffusionCoefficient float64 `json:"diffusion_coefficient"`
	BaselineSize         float64 `json:"baseline_size_nm"`
	BaselineTime         float64 `json:"baseline_time_s"`
}

type Point struct {
	Radius        float64 `json:"radius_nm"`
	DiffusionTime float64 `json:"diffusion_time_s"`
	Improvement   float64 `json:"improvement_factor"`
}

// Report is the JSON document written by WriteJSON.
type Report struct {
	Config   ReportConfig `json:"config"`
	Steps    int          `json:"steps"`
	Complete bool         `json:"complete"`
	Points   []Point      `json:"points"`
}

// NewReport pairs a sweep configuration with its samples. total is the
// length of the radius sequence the series was taken from.
func NewReport(cfg sim.Config, series sim.Series, total int) Report {
	r := Report{
		Config: ReportConfig{
			MinSize:              cfg.MinSize,
			MaxSize:              cfg.MaxSize,
			DiffusionCoefficient: cfg.DiffusionCoefficient,
			BaselineSize:         cfg.BaselineSize,
			BaselineTime:         cfg.BaselineTime(),
		},
		Steps:    series.Len(),
		Complete: total > 0 && series.Len() == total,
		Points:   make([]Point, series.Len()),
	}
	for i := range r.Points {
		s := series.At(i)
		r.Points[i] = Point{Radius: s.Radius, DiffusionTime: s.DiffusionTime, Improvement: s.Improvement}
	}
	return r
}

func WriteJSON(w io.Writer, report Report) error {
	if len(report.Points) == 0 {
		return ErrNoData
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
