package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText     = lipgloss.Color("#cdd6f4")
	colorMuted    = lipgloss.Color("#7f849c")
	colorMantle   = lipgloss.Color("#181825")
	colorSurface0 = lipgloss.Color("#313244")
	colorSurface1 = lipgloss.Color("#45475a")
	colorSuccess  = lipgloss.Color("#a6e3a1")
	colorError    = lipgloss.Color("#f38ba8")
	colorPeach    = lipgloss.Color("#fab387")
	colorLavender = lipgloss.Color("#b4befe")
)

type styles struct {
	accent lipgloss.Color

	header     lipgloss.Style
	headerMeta lipgloss.Style
	statusBar  lipgloss.Style
	statusErr  lipgloss.Style
	hintKey    lipgloss.Style
	hintDesc   lipgloss.Style

	key        lipgloss.Style
	keySpecial lipgloss.Style
	keyCursor  lipgloss.Style
	keyActive  lipgloss.Style
	keyPending lipgloss.Style
	keyPressed lipgloss.Style

	textPane   lipgloss.Style
	pickerBox  lipgloss.Style
	pickerSel  lipgloss.Style
	pickerItem lipgloss.Style
	pickerMeta lipgloss.Style
}

func newStyles(accent string) styles {
	ac := lipgloss.Color(accent)
	return styles{
		accent: ac,

		header:     lipgloss.NewStyle().Foreground(ac).Bold(true),
		headerMeta: lipgloss.NewStyle().Foreground(colorMuted),
		statusBar:  lipgloss.NewStyle().Foreground(colorSuccess).Background(colorMantle),
		statusErr:  lipgloss.NewStyle().Foreground(colorError).Background(colorMantle),
		hintKey:    lipgloss.NewStyle().Foreground(ac).Bold(true),
		hintDesc:   lipgloss.NewStyle().Foreground(colorMuted),

		key:        lipgloss.NewStyle().Background(colorSurface0).Foreground(colorText).Align(lipgloss.Center),
		keySpecial: lipgloss.NewStyle().Background(colorMantle).Foreground(colorMuted).Align(lipgloss.Center),
		keyCursor:  lipgloss.NewStyle().Background(ac).Foreground(colorMantle).Bold(true).Align(lipgloss.Center),
		keyActive:  lipgloss.NewStyle().Background(colorSurface1).Foreground(colorPeach).Bold(true).Align(lipgloss.Center),
		keyPending: lipgloss.NewStyle().Background(colorLavender).Foreground(colorMantle).Bold(true).Align(lipgloss.Center),
		keyPressed: lipgloss.NewStyle().Background(colorPeach).Foreground(colorMantle).Bold(true).Align(lipgloss.Center),

		textPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1),
		pickerBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ac).
			Padding(0, 1),
		pickerSel:  lipgloss.NewStyle().Foreground(ac).Bold(true),
		pickerItem: lipgloss.NewStyle().Foreground(colorText),
		pickerMeta: lipgloss.NewStyle().Foreground(colorMuted),
	}
}
