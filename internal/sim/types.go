package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/diffscale/internal/physics"
)

// ErrInvalidConfig is returned by Config.Validate and New.
var ErrInvalidConfig = errors.New("sim: invalid sweep configuration")

// Phase is the stepper's lifecycle state.
type Phase int

const (
	Idle Phase = iota
	Running
	Paused
	Complete
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Config is the part of the configuration the sweep reads. Sizes are in nm,
// DiffusionCoefficient in m²/s.
type Config struct {
	MinSize              float64
	MaxSize              float64
	DiffusionCoefficient float64
	BaselineSize         float64
}

// Validate checks that the formula is defined over the whole sweep. Range
// limits for user input live in the config package.
func (c Config) Validate() error {
	if c.MinSize <= 0 {
		return fmt.Errorf("%w: min size must be positive, got %g", ErrInvalidConfig, c.MinSize)
	}
	if c.MaxSize <= c.MinSize {
		return fmt.Errorf("%w: max size %g must exceed min size %g", ErrInvalidConfig, c.MaxSize, c.MinSize)
	}
	if c.DiffusionCoefficient <= 0 {
		return fmt.Errorf("%w: diffusion coefficient must be positive, got %g", ErrInvalidConfig, c.DiffusionCoefficient)
	}
	if c.BaselineSize <= 0 {
		return fmt.Errorf("%w: baseline size must be positive, got %g", ErrInvalidConfig, c.BaselineSize)
	}
	return nil
}

// BaselineTime is the diffusion time of the baseline particle in seconds.
func (c Config) BaselineTime() float64 {
	return physics.DiffusionTime(c.BaselineSize, c.DiffusionCoefficient)
}

// Sample is the data point computed by one tick.
type Sample struct {
	Index         int
	Radius        float64
	DiffusionTime float64
	Improvement   float64
}

// Series holds the sweep results as parallel slices indexed by step.
type Series struct {
	Radii              []float64
	DiffusionTimes     []float64
	ImprovementFactors []float64
}

func (s Series) Len() int { return len(s.Radii) }

func (s *Series) add(sample Sample) {
	s.Radii = append(s.Radii, sample.Radius)
	s.DiffusionTimes = append(s.DiffusionTimes, sample.DiffusionTime)
	s.ImprovementFactors = append(s.ImprovementFactors, sample.Improvement)
}

func (s *Series) clear() {
	s.Radii = s.Radii[:0]
	s.DiffusionTimes = s.DiffusionTimes[:0]
	s.ImprovementFactors = s.ImprovementFactors[:0]
}

// Clone returns a copy that shares no memory with s.
func (s Series) Clone() Series {
	return Series{
		Radii:              append([]float64(nil), s.Radii...),
		DiffusionTimes:     append([]float64(nil), s.DiffusionTimes...),
		ImprovementFactors: append([]float64(nil), s.ImprovementFactors...),
	}
}

// At returns the i-th entry as a Sample.
func (s Series) At(i int) Sample {
	return Sample{
		Index:         i,
		Radius:        s.Radii[i],
		DiffusionTime: s.DiffusionTimes[i],
		Improvement:   s.ImprovementFactors[i],
	}
}

// Observer is notified after every completed tick.
type Observer interface {
	OnSample(s Sample)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Sample)

func (f ObserverFunc) OnSample(s Sample) { f(s) }
