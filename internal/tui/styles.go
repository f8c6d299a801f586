package tui

import "github.com/charmbracelet/lipgloss"

// Page styles.
//
//nolint:gochecknoglobals // Shared render styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	ZoneActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(detailLabelWidth)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))
)
