package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for rendered output.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var (
	ThemeNeon = Theme{
		Name:      "neon",
		Primary:   lipgloss.Color("#00ffff"),
		Secondary: lipgloss.Color("#ff00ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666688"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffaa00"),
		Error:     lipgloss.Color("#ff4444"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#00ccff"),
		Secondary: lipgloss.Color("#0088cc"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#406080"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffcc00"),
		Error:     lipgloss.Color("#ff6666"),
	}

	ThemePlain = Theme{Name: "plain"}
)

var themes = map[string]Theme{
	"neon":  ThemeNeon,
	"ocean": ThemeOcean,
	"plain": ThemePlain,
}

var CurrentTheme = ThemeNeon

// SetTheme switches the current theme by name and rebuilds the styles.
// Unknown names leave the theme unchanged and return false.
func SetTheme(name string) bool {
	t, ok := themes[name]
	if !ok {
		return false
	}
	CurrentTheme = t
	rebuildStyles()
	return true
}

func ThemeNames() []string {
	return []string{"neon", "ocean", "plain"}
}
