// Package view renders controller state as terminal text. Every function is
// a pure function of its input; nothing here talks to the network.
package view

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
)

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted  = ac("240", "245")
	colorAccent = ac("27", "62")
	colorError  = ac("160", "203")
	colorDone   = ac("28", "114")

	priorityColors = map[models.Priority]lipgloss.TerminalColor{
		models.PriorityHigh:   ac("160", "203"),
		models.PriorityMedium: ac("136", "221"),
		models.PriorityLow:    ac("28", "114"),
	}

	titleStyle   = lipgloss.NewStyle().Bold(true)
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Foreground(colorMuted)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	tagStyle     = lipgloss.NewStyle().Foreground(colorAccent)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	okStyle      = lipgloss.NewStyle().Foreground(colorDone)
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)
)

// PriorityBadge is the coloured priority label shown on cards.
func PriorityBadge(p models.Priority) string {
	color, ok := priorityColors[p]
	if !ok {
		color = colorMuted
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render("[" + string(p) + "]")
}
