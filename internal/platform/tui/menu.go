package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cybergrid/internal/level"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51")).
			MarginBottom(1)
	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	levelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const menuTitle = "C Y B E R G R I D   R U N N E R"

// menuView renders the level picker with the selected level highlighted.
func menuView(selected, width int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(centerText(menuTitle, width)))
	b.WriteString("\n")

	for _, cfg := range level.All() {
		line := fmt.Sprintf("%d  %-12s %3d nodes %3d drones %5dms",
			cfg.Number, cfg.Name, cfg.Items, cfg.Drones, cfg.DroneMoveDelay.Milliseconds())
		if cfg.Number == selected {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString(levelStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("collect every data node; drones take 3 hits"))
	b.WriteString("\n")
	return b.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
