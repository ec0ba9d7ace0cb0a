package ui

import "github.com/charmbracelet/lipgloss"

// Color palette: default text everywhere, one accent for titles and
// identifiers, muted gray for secondary info. Status is carried by
// unicode symbols rather than color.
var (
	// Accent style for collection and entry titles.
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#7AA2F7"))

	// Muted style for secondary info and hints.
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis and section headers.
	Bold = lipgloss.NewStyle().Bold(true)
)
