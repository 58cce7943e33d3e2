package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title     lipgloss.Style
	running   lipgloss.Style
	paused    lipgloss.Style
	panel     lipgloss.Style
	stats     lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	selected  lipgloss.Style
	help      lipgloss.Style
	key       lipgloss.Style
	errorLine lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Accent)),
		running: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Current)),
		paused:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Baseline)),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Grid)).
			Padding(0, 1),
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color(t.Grid)).
			Padding(0, 2).
			Width(36),
		label:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)).Width(14),
		value:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)).Bold(true),
		selected:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true),
		help:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)).MarginTop(1),
		key:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true),
		errorLine: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Error)).Bold(true),
	}
}

// keyHints renders "key action" pairs separated by two spaces.
func (s styles) keyHints(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, s.key.Render(pairs[i])+" "+s.help.UnsetMarginTop().Render(pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

// ProgressBar renders a filled/empty bar for a fraction in [0, 1].
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
