package ui

import "github.com/charmbracelet/lipgloss"

var (
	brandPink = lipgloss.Color("#DB2777")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(brandPink)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)
