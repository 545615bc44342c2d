package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the terminal styles for each screen element
type Styles struct {
	App      lipgloss.Style
	Title    lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Baku     lipgloss.Style
	Response lipgloss.Style
	Level    lipgloss.Style
	Bar      lipgloss.Style
	BarEmpty lipgloss.Style
	Overlay  lipgloss.Style
	Footer   lipgloss.Style
	Dot      lipgloss.Style
	DotOn    lipgloss.Style
}

var (
	night    = lipgloss.Color("#7b6cd9")
	dream    = lipgloss.Color("#c9b8ff")
	ash      = lipgloss.Color("#6c6f85")
	moonglow = lipgloss.Color("#f5e0a3")
)

// DefaultStyles returns the night-sky palette
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Foreground(night).
			Bold(true).
			MarginBottom(1),
		Body: lipgloss.NewStyle().
			Foreground(dream),
		Muted: lipgloss.NewStyle().
			Foreground(ash),
		Baku: lipgloss.NewStyle().
			Foreground(dream).
			Bold(true).
			MarginBottom(1),
		Response: lipgloss.NewStyle().
			Foreground(dream).
			Italic(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(night).
			Padding(0, 1).
			Width(60),
		Level: lipgloss.NewStyle().
			Foreground(moonglow).
			Bold(true),
		Bar: lipgloss.NewStyle().
			Foreground(night),
		BarEmpty: lipgloss.NewStyle().
			Foreground(ash),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(moonglow).
			Foreground(moonglow).
			Padding(1, 4).
			Bold(true),
		Footer: lipgloss.NewStyle().
			Foreground(ash).
			MarginTop(1),
		Dot: lipgloss.NewStyle().
			Foreground(ash),
		DotOn: lipgloss.NewStyle().
			Foreground(night),
	}
}
