package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/verletsim/internal/palette"
)

// Theme colours the chrome around the particle canvas. Particle colours
// always come from the speed palette.
type Theme struct {
	Name       string
	TitleFrom  string
	TitleTo    string
	Border     lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
}

// speedTheme takes its title gradient from the particle palette so the
// header matches the slowest and fastest particles on screen.
func speedTheme(name string, slow, fast float64, border, muted, bg string) Theme {
	return Theme{
		Name:       name,
		TitleFrom:  palette.Hex(slow),
		TitleTo:    palette.Hex(fast),
		Border:     lipgloss.Color(border),
		Muted:      lipgloss.Color(muted),
		Background: lipgloss.Color(bg),
	}
}

var Themes = []Theme{
	speedTheme("thermal", 0, 5, "#3a3f58", "#6b7089", "#08090d"),
	speedTheme("glacier", 0, 2.5, "#2f5d7c", "#5f8fae", "#04111b"),
	speedTheme("ember", 3, 5, "#6e3326", "#a0634f", "#160805"),
	{
		Name:       "mono",
		TitleFrom:  "#d0d0d0",
		TitleTo:    "#707070",
		Border:     lipgloss.Color("#505050"),
		Muted:      lipgloss.Color("#808080"),
		Background: lipgloss.Color("#000000"),
	},
}

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	if i := themeIndex(name); i >= 0 {
		return Themes[i]
	}
	return Themes[0]
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	return Themes[(themeIndex(t.Name)+1)%len(Themes)]
}

func themeIndex(name string) int {
	for i, th := range Themes {
		if th.Name == name {
			return i
		}
	}
	return -1
}

func ThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for _, th := range Themes {
		names = append(names, th.Name)
	}
	return names
}
