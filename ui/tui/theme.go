package tui

import "github.com/charmbracelet/lipgloss"

type theme struct {
	Title   lipgloss.Style
	User    lipgloss.Style
	Advisor lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Input   lipgloss.Style
	Footer  lipgloss.Style
}

func defaultTheme() theme {
	primary := lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	subtle := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	info := lipgloss.AdaptiveColor{Light: "#4B56FD", Dark: "#6C8CFF"}
	warning := lipgloss.AdaptiveColor{Light: "#FFA500", Dark: "#FF851B"}
	danger := lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF4136"}

	return theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(primary).
			Padding(0, 1),
		User:    lipgloss.NewStyle().Bold(true),
		Advisor: lipgloss.NewStyle().Foreground(primary),
		Info:    lipgloss.NewStyle().Foreground(info).Italic(true),
		Warning: lipgloss.NewStyle().Foreground(warning).Italic(true),
		Error:   lipgloss.NewStyle().Foreground(danger),
		Input: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().Foreground(subtle),
	}
}
