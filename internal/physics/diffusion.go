package physics

import "fmt"

const (
	// NanometersToMeters converts a radius in nm to m.
	NanometersToMeters = 1e-9

	// RadiusSteps is the number of intervals in a radius sweep; a sweep
	// holds RadiusSteps+1 radii.
	RadiusSteps = 100
)

// DiffusionTime returns t = L²/D in seconds for a particle of the given
// radius in nm diffusing with coefficient d in m²/s.
func DiffusionTime(radiusNm, d float64) float64 {
	r := radiusNm * NanometersToMeters
	return (r * r) / d
}

// ImprovementFactor is the ratio of the baseline particle's diffusion time
// to the current particle's, (baseline/radius)² for this model.
func ImprovementFactor(radiusNm, baselineNm, d float64) float64 {
	baseline := DiffusionTime(baselineNm, d)
	return baseline / DiffusionTime(radiusNm, d)
}

// FormatTime renders a duration in seconds with the largest unit that
// keeps the value readable, from µs up to hours.
func FormatTime(seconds float64) string {
	switch {
	case seconds < 0.001:
		return fmt.Sprintf("%.2f µs", seconds*1e6)
	case seconds < 1:
		return fmt.Sprintf("%.2f ms", seconds*1000)
	case seconds < 60:
		return fmt.Sprintf("%.2f s", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.2f min", seconds/60)
	default:
		return fmt.Sprintf("%.2f hr", seconds/3600)
	}
}
