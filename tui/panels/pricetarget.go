package panels

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/cryptoscope/internal/analysis"
	"github.com/zappabad/cryptoscope/internal/format"
	"github.com/zappabad/cryptoscope/tui/styles"
)

// FormatTarget renders a price target as "$75,000", or "TBD" when the
// target is missing or zero.
func FormatTarget(v *float64) string {
	return format.Target(v)
}

// PriceTile renders one price target card.
func PriceTile(title, timeframe string, value *float64, width int) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.MutedStyle.Render(timeframe),
		styles.LabelStyle.Render(title),
		styles.ValueStyle.Render(FormatTarget(value)),
	)
	return card("", body, width)
}

// PriceTargets renders the four target tiles.
func PriceTargets(pt analysis.PriceTargets, width int) string {
	return columns(width, 22, func(w int) []string {
		return []string{
			PriceTile("Short Term Dip Target", "24h", pt.ShortTermDipTarget, w),
			PriceTile("Short Term Range", "24-48h", pt.ShortTermDipTargetRange, w),
			PriceTile("Mid Term Target", "1-2 weeks", pt.MidTermTarget, w),
			PriceTile("Long Term Target", "1-3 months", pt.LongTermTarget, w),
		}
	})
}
