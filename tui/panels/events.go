package panels

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/cryptoscope/internal/analysis"
	"github.com/zappabad/cryptoscope/tui/styles"
)

func eventList(events []analysis.Event, width int) string {
	if len(events) == 0 {
		return styles.MutedStyle.Render("None reported")
	}
	items := make([]string, len(events))
	for i, e := range events {
		item := lipgloss.NewStyle().Width(width).Render(e.Description)
		if e.Source != "" {
			item += "\n" + styles.MutedStyle.Render("Source: "+e.Source)
		}
		items[i] = item
	}
	return strings.Join(items, "\n\n")
}

// CatalystsRisks renders catalysts and risks in two columns.
func CatalystsRisks(catalysts, risks []analysis.Event, width int) string {
	return columns(width, 30, func(w int) []string {
		return []string{
			card("🚀 Catalysts", eventList(catalysts, w-6), w),
			card("🛡 Risks", eventList(risks, w-6), w),
		}
	})
}
