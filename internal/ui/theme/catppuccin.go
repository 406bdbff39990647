package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Yellow   = lipgloss.Color("#f9e2af")
	Red      = lipgloss.Color("#f38ba8")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Bad   = lipgloss.NewStyle().Foreground(Red)

	Clock = lipgloss.NewStyle().Foreground(Text).Bold(true).Padding(1, 4).
		BorderStyle(lipgloss.ThickBorder()).BorderForeground(Lavender)
)

// KindColor maps a block kind to its accent.
func KindColor(kind string) lipgloss.Color {
	switch kind {
	case "PREP":
		return Yellow
	case "WORK":
		return Peach
	case "REST":
		return Green
	default:
		return Sapphire
	}
}

func Kind(kind string) string {
	return lipgloss.NewStyle().Foreground(KindColor(kind)).Bold(true).Render(kind)
}
