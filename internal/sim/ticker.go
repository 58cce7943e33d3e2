package sim

import "time"

// Ticker is the frame signal that drives a Stepper.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// FrameTicker fires at a fixed frame rate.
type FrameTicker struct {
	t *time.Ticker
}

func NewFrameTicker(fps int) *FrameTicker {
	if fps <= 0 {
		fps = 60
	}
	return &FrameTicker{t: time.NewTicker(time.Second / time.Duration(fps))}
}

func (f *FrameTicker) C() <-chan time.Time { return f.t.C }
func (f *FrameTicker) Stop()               { f.t.Stop() }

type immediateTicker struct {
	c chan time.Time
}

// Immediate returns a Ticker that is always ready, for headless sweeps.
func Immediate() Ticker {
	c := make(chan time.Time)
	close(c)
	return immediateTicker{c: c}
}

func (i immediateTicker) C() <-chan time.Time { return i.c }
func (i immediateTicker) Stop()               {}
