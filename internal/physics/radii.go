package physics

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// GenerateRadii returns RadiusSteps+1 radii spaced uniformly in log10
// between minNm and maxNm, both ends included. Callers validate
// 0 < minNm < maxNm.
func GenerateRadii(minNm, maxNm float64) []float64 {
	radii := make([]float64, RadiusSteps+1)
	floats.Span(radii, math.Log10(minNm), math.Log10(maxNm))
	for i, exp := range radii {
		radii[i] = math.Pow(10, exp)
	}
	return radii
}
