package physics

import (
	"math"
	"testing"
)

func TestGenerateRadii(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
	}{
		{"default", 1, 1000},
		{"narrow", 500, 1000},
		{"wide", 0.1, 10000},
		{"sub-nm", 0.1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			radii := GenerateRadii(tt.min, tt.max)

			if len(radii) != RadiusSteps+1 {
				t.Fatalf("expected %d radii, got %d", RadiusSteps+1, len(radii))
			}
			if math.Abs(radii[0]-tt.min)/tt.min > 1e-9 {
				t.Errorf("first radius = %v, want %v", radii[0], tt.min)
			}
			if math.Abs(radii[RadiusSteps]-tt.max)/tt.max > 1e-9 {
				t.Errorf("last radius = %v, want %v", radii[RadiusSteps], tt.max)
			}
			for i := 1; i < len(radii); i++ {
				if radii[i] <= radii[i-1] {
					t.Fatalf("radii not strictly increasing at %d: %v <= %v", i, radii[i], radii[i-1])
				}
			}
		})
	}
}

func TestGenerateRadiiLogUniform(t *testing.T) {
	radii := GenerateRadii(1, 1000)
	want := math.Pow(10, 0.03)
	for i := 1; i < len(radii); i++ {
		ratio := radii[i] / radii[i-1]
		if math.Abs(ratio-want) > 1e-9 {
			t.Fatalf("ratio at %d = %v, want %v", i, ratio, want)
		}
	}
	if math.Abs(radii[50]-math.Pow(10, 1.5)) > 1e-9 {
		t.Errorf("midpoint = %v, want 10^1.5", radii[50])
	}
}

func TestGenerateRadiiDeterministic(t *testing.T) {
	a := GenerateRadii(2, 800)
	b := GenerateRadii(2, 800)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("radius %d differs between calls: %v vs %v", i, a[i], b[i])
		}
	}
}
