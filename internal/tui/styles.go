package tui

import "github.com/charmbracelet/lipgloss"

// Styles for the interactive editor
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7B61FF")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#73F59F")).
			Bold(true)

	unselectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7B61FF"))

	statusOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#73F59F"))

	statusErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F25D94"))

	flagOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#73F59F"))

	flagOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)
