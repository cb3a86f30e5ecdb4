package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cybergrid/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:    lipgloss.NewStyle(),
	core.ColorGrid:       lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
	core.ColorRunner:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
	core.ColorNode:       lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	core.ColorDrone:      lipgloss.NewStyle().Foreground(lipgloss.Color("201")),
	core.ColorHealthHigh: lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	core.ColorHealthMid:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	core.ColorHealthLow:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	core.ColorProjectile: lipgloss.NewStyle().Foreground(lipgloss.Color("87")),
	core.ColorHUD:        lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
	core.ColorNotice:     lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorOverlay:    lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
	core.ColorDim:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
