package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Primary   = lipgloss.Color("#4ECDC4")
	InStock   = lipgloss.Color("#95E1A3")
	OutStock  = lipgloss.Color("#FF6B6B")
	TextMuted = lipgloss.Color("#888888")
	Surface   = lipgloss.Color("#16213e")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	ListStyle = lipgloss.NewStyle().
			Padding(1, 2)

	ItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	ItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	InStockStyle  = lipgloss.NewStyle().Foreground(InStock)
	OutStockStyle = lipgloss.NewStyle().Foreground(OutStock)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)
