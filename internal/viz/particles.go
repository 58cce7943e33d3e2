package viz

import (
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/diffscale/internal/physics"
)

// Visual constants are in reference pixels of a 400px-tall canvas and are
// scaled to the actual canvas when drawn.
const (
	referenceHeight = 400.0
	maxVisualRadius = 60.0
	minVisualRadius = 10.0
	baselineFactor  = 0.8
	baseSpeed       = 0.003
	gridSpacing     = 40.0
	ringCount       = 3
	ringTravel      = 100.0
	ringGap         = 30.0
	ringBaseAlpha   = 0.5
	ringAlphaStep   = 0.15
)

// Particle is one of the two drawn particles.
type Particle struct {
	X, Y     float64
	Radius   float64
	Progress float64
	Speed    float64
	Color    string

	shown, velocity float64
}

// Shown is the eased radius actually drawn.
func (p *Particle) Shown() float64 { return p.shown }

// Ring is one expanding diffusion wave around a particle.
type Ring struct {
	Radius float64
	Alpha  float64
}

// Rings returns the visible diffusion waves for the particle's progress.
func (p *Particle) Rings() []Ring {
	rings := make([]Ring, 0, ringCount)
	for i := 0; i < ringCount; i++ {
		alpha := math.Max(0, ringBaseAlpha-p.Progress-float64(i)*ringAlphaStep)
		if alpha <= 0 {
			continue
		}
		rings = append(rings, Ring{
			Radius: p.shown + p.Progress*ringTravel + float64(i)*ringGap,
			Alpha:  alpha,
		})
	}
	return rings
}

func (p *Particle) advance() {
	p.Progress += p.Speed
	if p.Progress > 1 {
		p.Progress = 0
	}
}

// Particles animates the baseline particle next to the current one.
type Particles struct {
	Baseline Particle
	Current  Particle
	spring   harmonica.Spring
}

func NewParticles(fps int, t Theme) *Particles {
	p := &Particles{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
	p.SetTheme(t)
	return p
}

func (p *Particles) SetTheme(t Theme) {
	p.Baseline.Color = t.Baseline
	p.Current.Color = t.Current
}

// Layout places the particles at a quarter and three quarters of the
// canvas width, vertically centred. Units are reference pixels.
func (p *Particles) Layout(width, height float64) {
	p.Baseline.X, p.Baseline.Y = width*0.25, height/2
	p.Current.X, p.Current.Y = width*0.75, height/2
}

// Fit lays the particles out for the canvas size.
func (p *Particles) Fit(c *Canvas) {
	scale := float64(c.PixelHeight()) / referenceHeight
	p.Layout(float64(c.PixelWidth())/scale, referenceHeight)
}

// Update derives size and speed from the latest metrics. The baseline is
// drawn at a fixed size and speed; the current particle scales with its
// radius and moves faster as its diffusion time drops.
func (p *Particles) Update(currentRadius, baselineSize, d float64) {
	baselineTime := physics.DiffusionTime(baselineSize, d)
	currentTime := physics.DiffusionTime(currentRadius, d)

	p.Baseline.Radius = maxVisualRadius * baselineFactor
	p.Baseline.Speed = baseSpeed

	sizeRatio := currentRadius / baselineSize
	p.Current.Radius = math.Max(minVisualRadius, maxVisualRadius*sizeRatio*2)
	p.Current.Speed = baseSpeed * math.Sqrt(baselineTime/currentTime)
}

// Advance moves both wave animations one frame.
func (p *Particles) Advance() {
	p.Baseline.advance()
	p.Current.advance()
}

// Ease moves the drawn radii one frame toward their targets.
func (p *Particles) Ease() {
	for _, q := range []*Particle{&p.Baseline, &p.Current} {
		q.shown, q.velocity = p.spring.Update(q.shown, q.velocity, q.Radius)
	}
}

// Snap jumps the drawn radii to their targets.
func (p *Particles) Snap() {
	for _, q := range []*Particle{&p.Baseline, &p.Current} {
		q.shown, q.velocity = q.Radius, 0
	}
}

func (p *Particles) ResetProgress() {
	p.Baseline.Progress = 0
	p.Current.Progress = 0
}

// Draw renders the grid, both particles and, while running, their waves.
// The reference layout is scaled so its height matches the canvas.
func (p *Particles) Draw(c *Canvas, t Theme, running bool) {
	c.Clear()
	scale := float64(c.PixelHeight()) / referenceHeight

	step := int(math.Round(gridSpacing * scale))
	if step >= 2 {
		for x := 0; x < c.PixelWidth(); x += step {
			c.DrawLine(x, 0, x, c.PixelHeight()-1, t.Grid)
		}
		for y := 0; y < c.PixelHeight(); y += step {
			c.DrawLine(0, y, c.PixelWidth()-1, y, t.Grid)
		}
	}

	for _, q := range []*Particle{&p.Baseline, &p.Current} {
		cx := int(math.Round(q.X * scale))
		cy := int(math.Round(q.Y * scale))
		if running {
			for _, ring := range q.Rings() {
				r := int(math.Round(ring.Radius * scale))
				c.DrawCircle(cx, cy, r, fade(q.Color, t.Background, ring.Alpha))
			}
		}
		r := int(math.Round(q.shown * scale))
		c.FillCircle(cx, cy, r, fade(q.Color, t.Background, 0.7))
		c.DrawCircle(cx, cy, r, q.Color)
	}
}

// Labels returns a line of the canvas width with each particle's label
// centred above it.
func (p *Particles) Labels(c *Canvas, baselineSize, currentRadius float64) string {
	line := make([]rune, c.Width)
	for i := range line {
		line[i] = ' '
	}
	scale := float64(c.PixelHeight()) / referenceHeight
	place := func(q *Particle, text string) {
		col := int(math.Round(q.X*scale)) / 2
		start := col - len([]rune(text))/2
		for i, r := range []rune(text) {
			if j := start + i; j >= 0 && j < len(line) {
				line[j] = r
			}
		}
	}
	place(&p.Baseline, BaselineLabel(baselineSize))
	place(&p.Current, CurrentLabel(currentRadius))
	return string(line)
}

func BaselineLabel(baselineSize float64) string {
	return fmt.Sprintf("Baseline (%.1f µm)", baselineSize/1000)
}

func CurrentLabel(radius float64) string {
	return fmt.Sprintf("Current (%.1f nm)", radius)
}

// fade blends color toward background; alpha 1 keeps color unchanged.
func fade(color, background string, alpha float64) string {
	c, err := colorful.Hex(color)
	if err != nil {
		return color
	}
	bg, err := colorful.Hex(background)
	if err != nil {
		return color
	}
	return bg.BlendRgb(c, alpha).Clamped().Hex()
}
