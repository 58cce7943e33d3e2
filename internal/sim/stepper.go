package sim

import (
	"context"

	"github.com/san-kum/diffscale/internal/physics"
)

// Stepper walks a radius sweep one point per tick. It is not safe for
// concurrent use; the owner drives it from a single goroutine.
type Stepper struct {
	cfg       Config
	pending   *Config
	radii     []float64
	series    Series
	index     int
	phase     Phase
	observers []Observer
}

// New validates cfg and returns an Idle stepper with its radii generated.
func New(cfg Config) (*Stepper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Stepper{cfg: cfg, observers: make([]Observer, 0)}
	s.Reset()
	return s, nil
}

func (s *Stepper) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Stepper) Config() Config { return s.cfg }
func (s *Stepper) Phase() Phase   { return s.phase }
func (s *Stepper) Running() bool  { return s.phase == Running }
func (s *Stepper) Index() int     { return s.index }

// Len is the number of radii in the sweep.
func (s *Stepper) Len() int { return len(s.radii) }

// Radii returns a copy of the radius sequence.
func (s *Stepper) Radii() []float64 { return append([]float64(nil), s.radii...) }

// Series returns a copy of the results so far.
func (s *Stepper) Series() Series { return s.series.Clone() }

// Latest returns the most recent sample, if any.
func (s *Stepper) Latest() (Sample, bool) {
	if s.series.Len() == 0 {
		return Sample{}, false
	}
	return s.series.At(s.series.Len() - 1), true
}

// CurrentRadius is the radius at the cursor, clamped to the last one, or
// the configured minimum before any radii exist.
func (s *Stepper) CurrentRadius() float64 {
	if len(s.radii) == 0 {
		return s.cfg.MinSize
	}
	i := s.index
	if i > len(s.radii)-1 {
		i = len(s.radii) - 1
	}
	return s.radii[i]
}

// Start begins or resumes the sweep. A completed sweep must be reset first.
func (s *Stepper) Start() {
	switch s.phase {
	case Idle, Paused:
		if len(s.radii) == 0 {
			s.radii = physics.GenerateRadii(s.cfg.MinSize, s.cfg.MaxSize)
		}
		s.phase = Running
	}
}

// Pause freezes the cursor and keeps the series.
func (s *Stepper) Pause() {
	if s.phase == Running {
		s.phase = Paused
	}
}

// Toggle starts when not running and pauses when running.
func (s *Stepper) Toggle() {
	if s.Running() {
		s.Pause()
		return
	}
	s.Start()
}

// Reset returns to Idle, clears the series and regenerates the radii,
// applying any configuration deferred by SetConfig.
func (s *Stepper) Reset() {
	if s.pending != nil {
		s.cfg = *s.pending
		s.pending = nil
	}
	s.phase = Idle
	s.index = 0
	s.series.clear()
	s.radii = physics.GenerateRadii(s.cfg.MinSize, s.cfg.MaxSize)
}

// SetConfig replaces the configuration. When the sweep is not running it
// resets immediately; otherwise the change is applied by the next Reset so
// a running series never mixes two configurations.
func (s *Stepper) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if s.Running() {
		s.pending = &cfg
		return nil
	}
	s.cfg = cfg
	s.pending = nil
	s.Reset()
	return nil
}

// Pending reports whether a configuration change awaits the next Reset.
func (s *Stepper) Pending() bool { return s.pending != nil }

// Tick computes the point at the cursor, appends it and advances. It is a
// no-op returning false unless the stepper is Running.
func (s *Stepper) Tick() (Sample, bool) {
	if s.phase != Running {
		return Sample{}, false
	}
	if s.index >= len(s.radii) {
		s.phase = Complete
		return Sample{}, false
	}

	r := s.radii[s.index]
	d := s.cfg.DiffusionCoefficient
	sample := Sample{
		Index:         s.index,
		Radius:        r,
		DiffusionTime: physics.DiffusionTime(r, d),
		Improvement:   physics.ImprovementFactor(r, s.cfg.BaselineSize, d),
	}

	s.series.add(sample)
	s.index++
	if s.index >= len(s.radii) {
		s.phase = Complete
	}

	for _, o := range s.observers {
		o.OnSample(sample)
	}
	return sample, true
}

// Run starts the stepper and advances it once per tick of t until the sweep
// completes or ctx is done, in which case it pauses and returns ctx.Err().
func (s *Stepper) Run(ctx context.Context, t Ticker) (Series, error) {
	defer t.Stop()

	s.Start()
	for s.Running() {
		select {
		case <-ctx.Done():
			s.Pause()
			return s.Series(), ctx.Err()
		case <-t.C():
			s.Tick()
		}
	}
	return s.Series(), nil
}
