package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/diffscale/internal/config"
	"github.com/san-kum/diffscale/internal/sim"
)

// ChartLabels returns the legend and y-axis title for a chart mode.
func ChartLabels(mode string, d, baselineSize float64) (legend, yAxis string) {
	if mode == config.ChartImprovement {
		return fmt.Sprintf("Improvement vs %.1f µm Baseline", baselineSize/1000), "Improvement Factor"
	}
	return fmt.Sprintf("Diffusion Time (D = %s m²/s)", FormatCoefficient(d)), "Diffusion Time (s)"
}

// FormatCoefficient prints D with a single significant digit, e.g. "1e-14".
func FormatCoefficient(d float64) string {
	s := fmt.Sprintf("%.0e", d)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok || len(exp) < 2 {
		return s
	}
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + exp[:1] + digits
}

// ChartData picks the dataset for a mode.
func ChartData(series sim.Series, mode string) []float64 {
	if mode == config.ChartImprovement {
		return series.ImprovementFactors
	}
	return series.DiffusionTimes
}

// RenderChart plots log10 of the selected dataset. The sweep is already
// log-spaced in radius, so plotting against the sample index gives a
// log-log chart.
func RenderChart(series sim.Series, mode string, d, baselineSize float64, width, height int) string {
	legend, yAxis := ChartLabels(mode, d, baselineSize)
	data := ChartData(series, mode)

	if len(data) < 2 {
		var b strings.Builder
		b.WriteString(legend + "\n")
		for i := 0; i < height; i++ {
			b.WriteString("\n")
		}
		b.WriteString("  waiting for data, press space to start\n")
		return b.String()
	}

	logs := make([]float64, len(data))
	for i, v := range data {
		logs[i] = math.Log10(v)
	}

	graph := asciigraph.Plot(logs,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(1),
		asciigraph.Caption(fmt.Sprintf("%s  [log10 %s]", legend, yAxis)),
	)

	first, last := series.Radii[0], series.Radii[len(series.Radii)-1]
	axis := fmt.Sprintf("radius %s nm → %s nm (log)", formatRadius(first), formatRadius(last))
	return graph + "\n" + axis + "\n"
}

func formatRadius(r float64) string {
	return fmt.Sprintf("%.3g", r)
}
