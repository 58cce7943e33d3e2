package viz

// Theme defines color scheme for the TUI. Colours are "#rrggbb" so they can
// be blended as well as handed to lipgloss.
type Theme struct {
	Name        string
	Background  string
	Grid        string
	Text        string
	Muted       string
	Accent      string
	Baseline    string
	Current     string
	Diffusion   string
	Improvement string
	Error       string
}

// Available themes
var (
	// ThemeClassic is dark slate with red/green particles.
	ThemeClassic = Theme{
		Name:        "classic",
		Background:  "#111827",
		Grid:        "#374151",
		Text:        "#f9fafb",
		Muted:       "#9ca3af",
		Accent:      "#14b8a6",
		Baseline:    "#ef4444",
		Current:     "#10b981",
		Diffusion:   "#3b82f6",
		Improvement: "#8b5cf6",
		Error:       "#f87171",
	}

	ThemeRetroGreen = Theme{
		Name:        "retro",
		Background:  "#001100",
		Grid:        "#003300",
		Text:        "#00ff00",
		Muted:       "#005500",
		Accent:      "#88ff88",
		Baseline:    "#ffff00",
		Current:     "#00ff00",
		Diffusion:   "#00cc00",
		Improvement: "#88ff88",
		Error:       "#ff0000",
	}

	ThemeMinimal = Theme{
		Name:        "minimal",
		Background:  "#000000",
		Grid:        "#222222",
		Text:        "#ffffff",
		Muted:       "#888888",
		Accent:      "#0088ff",
		Baseline:    "#cccccc",
		Current:     "#ffffff",
		Diffusion:   "#0088ff",
		Improvement: "#ffaa00",
		Error:       "#ff0000",
	}

	// All available themes
	Themes = []Theme{
		ThemeClassic,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
