package console

import "github.com/charmbracelet/lipgloss"

var (
	colorSuccess = lipgloss.Color("#00D787")
	colorError   = lipgloss.Color("#FF5F87")
	colorInfo    = lipgloss.Color("#5FAFFF")
	colorMuted   = lipgloss.Color("#888888")
	colorAccent  = lipgloss.Color("#AF87FF")
)

var (
	styleTitle    = lipgloss.NewStyle().Foreground(colorInfo).Bold(true)
	styleQuestion = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleMuted    = lipgloss.NewStyle().Foreground(colorMuted)
	styleSuccess  = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	styleError    = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	styleBold     = lipgloss.NewStyle().Bold(true)

	styleHeader = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorInfo).
			Padding(0, 1)
)
