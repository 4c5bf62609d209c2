package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Theme defines the preview colors. Chart colors are ANSI because
// asciigraph renders its own escape codes.
type Theme struct {
	Name        string
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Text        lipgloss.Color
	Temperature asciigraph.AnsiColor
	Humidity    asciigraph.AnsiColor
}

var (
	ThemeDefault = Theme{
		Name:        "default",
		Primary:     lipgloss.Color("86"),
		Muted:       lipgloss.Color("240"),
		Text:        lipgloss.Color("252"),
		Temperature: asciigraph.Red,
		Humidity:    asciigraph.Blue,
	}

	ThemeRetroGreen = Theme{
		Name:        "retro",
		Primary:     lipgloss.Color("#00ff00"),
		Muted:       lipgloss.Color("#005500"),
		Text:        lipgloss.Color("#88ff88"),
		Temperature: asciigraph.Green,
		Humidity:    asciigraph.DarkGreen,
	}

	ThemeSunset = Theme{
		Name:        "sunset",
		Primary:     lipgloss.Color("#ff6b6b"),
		Muted:       lipgloss.Color("#8b6b8c"),
		Text:        lipgloss.Color("#fff5f5"),
		Temperature: asciigraph.Orange,
		Humidity:    asciigraph.Violet,
	}

	Themes = []Theme{ThemeDefault, ThemeRetroGreen, ThemeSunset}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDefault
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}
