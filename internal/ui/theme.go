package ui

import "github.com/charmbracelet/lipgloss"

type theme struct {
	title    lipgloss.Style
	accent   lipgloss.Style
	label    lipgloss.Style
	errorMsg lipgloss.Style
	success  lipgloss.Style
	help     lipgloss.Style
	border   lipgloss.Style
}

func newTheme(dark bool) theme {
	if dark {
		return theme{
			title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f472b6")),
			accent:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f3f4f6")),
			label:    lipgloss.NewStyle().Foreground(lipgloss.Color("#d1d5db")),
			errorMsg: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f87171")),
			success:  lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")),
			help:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")).Italic(true),
			border: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#f472b6")).
				Padding(0, 1),
		}
	}

	return theme{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ec4899")),
		accent:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#111827")),
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")),
		errorMsg: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#dc2626")),
		success:  lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a")),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")).Italic(true),
		border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#ec4899")).
			Padding(0, 1),
	}
}
