package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/san-kum/diffscale/internal/config"
	"github.com/san-kum/diffscale/internal/sim"
	"github.com/san-kum/diffscale/internal/viz"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrUnknownFormat = errors.New("unknown image format")

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// FormatForPath picks the image format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".svg":
		return FormatSVG, nil
	}
	return "", fmt.Errorf("%w: %q (want .png or .svg)", ErrUnknownFormat, path)
}

// ChartOptions controls WriteChart.
type ChartOptions struct {
	Mode   string
	Format Format
	Width  int
	Height int
	Theme  viz.Theme
}

func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Mode:   config.ChartDiffusion,
		Format: FormatPNG,
		Width:  1000,
		Height: 600,
		Theme:  viz.ThemeClassic,
	}
}

// WriteChart renders the series on log-log axes. Both axes carry log10
// values with decade ticks labelled in linear units.
func WriteChart(w io.Writer, series sim.Series, cfg sim.Config, opts ChartOptions) error {
	if series.Len() < 2 {
		return fmt.Errorf("%w: a chart needs at least 2 points, have %d", ErrNoData, series.Len())
	}

	legend, yName := viz.ChartLabels(opts.Mode, cfg.DiffusionCoefficient, cfg.BaselineSize)
	data := viz.ChartData(series, opts.Mode)
	lineColor := opts.Theme.Diffusion
	if opts.Mode == config.ChartImprovement {
		lineColor = opts.Theme.Improvement
	}

	xs := log10s(series.Radii)
	ys := log10s(data)
	color := hexColor(lineColor)

	graph := chart.Chart{
		Title:      "Diffusion Time Scaling (t = L²/D)",
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  "Particle Radius (nm)",
			Range: decadeRange(xs),
			Ticks: decadeTicks(xs),
		},
		YAxis: chart.YAxis{
			Name:  yName,
			Range: decadeRange(ys),
			Ticks: decadeTicks(ys),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    legend,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: color,
					StrokeWidth: 2,
					FillColor:   color.WithAlpha(40),
					DotColor:    color,
					DotWidth:    2,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	switch opts.Format {
	case FormatPNG:
		return graph.Render(chart.PNG, w)
	case FormatSVG:
		return graph.Render(chart.SVG, w)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
}

func log10s(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = math.Log10(v)
	}
	return out
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	lo, hi = math.Floor(lo), math.Ceil(hi)
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

func decadeRange(values []float64) *chart.ContinuousRange {
	lo, hi := bounds(values)
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

// decadeTicks labels every power of ten spanned by values.
func decadeTicks(values []float64) []chart.Tick {
	lo, hi := bounds(values)
	ticks := make([]chart.Tick, 0, int(hi-lo)+1)
	for e := lo; e <= hi; e++ {
		ticks = append(ticks, chart.Tick{Value: e, Label: fmt.Sprintf("%g", math.Pow(10, e))})
	}
	return ticks
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
