package ui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	contextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("110"))

	scaleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	gridLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	gridMajorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246")).
			Bold(true)

	gridLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("247"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))
)
