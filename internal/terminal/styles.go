package terminal

import "github.com/charmbracelet/lipgloss"

// Styles contains the lipgloss styles for launcher status output.
type Styles struct {
	Header  lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Dim     lipgloss.Style
}

// DefaultStyles returns the default status styles.
func DefaultStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
