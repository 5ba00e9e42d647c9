package panels

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/cryptoscope/tui/styles"
)

// card wraps body in a bordered box of the given outer width.
func card(title, body string, width int) string {
	inner := width - 2
	if inner < 10 {
		inner = 10
	}
	content := body
	if title != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, styles.RenderTitle(title, false), body)
	}
	return styles.PanelStyle.Width(inner).Render(content)
}

// chips renders words as inline tags wrapped to width.
func chips(words []string, style lipgloss.Style, width int) string {
	if len(words) == 0 {
		return styles.MutedStyle.Render("none")
	}
	var lines []string
	var line []string
	lineWidth := 0
	for _, w := range words {
		chip := style.Render(w)
		cw := lipgloss.Width(chip)
		if lineWidth > 0 && lineWidth+1+cw > width {
			lines = append(lines, strings.Join(line, " "))
			line, lineWidth = nil, 0
		}
		line = append(line, chip)
		if lineWidth > 0 {
			lineWidth++
		}
		lineWidth += cw
	}
	lines = append(lines, strings.Join(line, " "))
	return strings.Join(lines, "\n")
}

// columns lays blocks side by side with equal widths, or stacks them when
// the terminal is too narrow.
func columns(width, minCol int, render func(colWidth int) []string) string {
	n := len(render(minCol))
	if n == 0 {
		return ""
	}
	if width/n < minCol {
		return lipgloss.JoinVertical(lipgloss.Left, render(width)...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, render(width/n)...)
}
