package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/diffscale/internal/sim"
	"github.com/san-kum/diffscale/internal/viz"
)

// Braille dot-to-bit mapping
var dotBits = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot in
// its cell's colour.
func CanvasToSVG(canvas *viz.Canvas, scale float64, background, fallback string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.PixelWidth()) * scale
	height := float64(canvas.PixelHeight()) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			color := canvas.Colors[row][col]
			if color == "" {
				color = fallback
			}

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotBits[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, color))
					}
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// Snapshot draws the particle comparison for radius, as the live view shows
// it mid-sweep, and returns it as SVG.
func Snapshot(cfg sim.Config, radius float64, theme viz.Theme, width, height int, scale float64) string {
	canvas := viz.NewCanvas(width, height)
	particles := viz.NewParticles(60, theme)
	particles.Fit(canvas)
	particles.Update(radius, cfg.BaselineSize, cfg.DiffusionCoefficient)
	particles.Snap()
	particles.Draw(canvas, theme, true)
	return CanvasToSVG(canvas, scale, theme.Background, theme.Text)
}
