package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name   string
	Major  lipgloss.Color
	Minor  lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
}

// Available themes
var (
	ThemeSlate = Theme{
		Name:   "slate",
		Major:  lipgloss.Color("#b4becd"), // major contour grey-blue
		Minor:  lipgloss.Color("#5c6470"),
		Accent: lipgloss.Color("#86b7ff"),
		Text:   lipgloss.Color("#e6e9ee"),
		Muted:  lipgloss.Color("#666a73"),
	}

	ThemeTopo = Theme{
		Name:   "topo",
		Major:  lipgloss.Color("#c08a4a"), // survey-map brown
		Minor:  lipgloss.Color("#7a6a4f"),
		Accent: lipgloss.Color("#6fbf73"),
		Text:   lipgloss.Color("#f2ead8"),
		Muted:  lipgloss.Color("#8c8273"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Major:  lipgloss.Color("#00ff00"), // Green phosphor
		Minor:  lipgloss.Color("#006600"),
		Accent: lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Major:  lipgloss.Color("#ffffff"),
		Minor:  lipgloss.Color("#888888"),
		Accent: lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
	}

	// All available themes
	Themes = []Theme{
		ThemeSlate,
		ThemeTopo,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to slate.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeSlate
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
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
