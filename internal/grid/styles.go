package grid

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by Model.
type Styles struct {
	Header         lipgloss.Style
	Cell           lipgloss.Style
	Hover          lipgloss.Style
	Focused        lipgloss.Style
	FocusedControl lipgloss.Style
	Separator      lipgloss.Style
	Fallback       lipgloss.Style
}

// DefaultStyles returns the default grid styles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")),
		Cell: lipgloss.NewStyle(),
		Hover: lipgloss.NewStyle().
			Background(lipgloss.Color("236")),
		Focused: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")),
		FocusedControl: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Underline(true),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		Fallback: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true),
	}
}
