package panels

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/cryptoscope/internal/analysis"
	"github.com/zappabad/cryptoscope/internal/format"
	"github.com/zappabad/cryptoscope/tui/styles"
)

// FormatPercent renders a 0-100 value as "65%".
func FormatPercent(v float64) string {
	return format.Percent(v)
}

// SentimentCard renders the sentiment breakdown and keywords.
func SentimentCard(sa analysis.SentimentAnalysis, width int) string {
	stat := func(value float64, label string, style lipgloss.Style) string {
		return lipgloss.NewStyle().Width((width-6)/3).Align(lipgloss.Center).Render(
			lipgloss.JoinVertical(lipgloss.Center,
				style.Render(FormatPercent(value)),
				styles.LabelStyle.Render(label),
			),
		)
	}
	breakdown := lipgloss.JoinHorizontal(lipgloss.Top,
		stat(sa.PositivePercentage, "Positive", styles.PositiveStyle),
		stat(sa.NeutralPercentage, "Neutral", styles.NeutralStyle),
		stat(sa.NegativePercentage, "Negative", styles.NegativeStyle),
	)

	body := lipgloss.JoinVertical(lipgloss.Left,
		breakdown,
		"",
		styles.LabelStyle.Render("Positive Keywords"),
		chips(sa.PositiveKeywords, styles.ChipStyle, width-6),
		"",
		styles.LabelStyle.Render("Negative Keywords"),
		chips(sa.NegativeKeywords, styles.NegativeChipStyle, width-6),
	)
	return card("👍 Sentiment Analysis", body, width)
}

func sentimentTag(s analysis.Sentiment) string {
	switch s.Normalized() {
	case analysis.SentimentPositive:
		return styles.PositiveStyle.Render("Positive")
	case analysis.SentimentNegative:
		return styles.NegativeStyle.Render("Negative")
	default:
		return styles.NeutralStyle.Render("Neutral")
	}
}
