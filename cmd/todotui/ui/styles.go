package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// palette
var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#6C6C6C"}
	colorDone   = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#66BB6A"}
	colorUrgent = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#EF5350"}
)

var (
	focusedStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	blurredStyle = lipgloss.NewStyle().Foreground(colorMuted)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorAccent).
			Bold(true).
			Padding(0, 1)

	openCountStyle = lipgloss.NewStyle().Foreground(colorUrgent)
	doneCountStyle = lipgloss.NewStyle().Foreground(colorDone)

	helpKeyStyle  = lipgloss.NewStyle().Foreground(colorAccent)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorMuted)

	statusMessageStyle = lipgloss.NewStyle().Foreground(colorDone).Render
	errorMessageStyle  = lipgloss.NewStyle().Foreground(colorUrgent).Render

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

// todoTableStyles underlines the header and highlights the cursor row in the
// accent colour.
func todoTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorMuted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorAccent).
		Bold(false)
	return s
}

// helpLine renders "key desc" pairs.
func helpLine(pairs ...string) string {
	out := ""
	for i := 0; i+1 < len(pairs); i += 2 {
		if out != "" {
			out += helpDescStyle.Render("  ·  ")
		}
		out += helpKeyStyle.Render(pairs[i]) + " " + helpDescStyle.Render(pairs[i+1])
	}
	return out
}
