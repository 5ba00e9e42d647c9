package panels

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/cryptoscope/internal/analysis"
	"github.com/zappabad/cryptoscope/tui/styles"
)

// TrendsCard renders tweet volume, narratives and related coins.
func TrendsCard(t analysis.Trends, width int) string {
	volume := t.TweetVolumeChange
	if volume == "" {
		volume = "n/a"
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.LabelStyle.Render("Tweet Volume"),
		styles.ValueStyle.Render(volume),
		"",
		styles.LabelStyle.Render("Emerging Narratives"),
		chips(t.EmergingNarratives, styles.ChipStyle, width-6),
		"",
		styles.LabelStyle.Render("Related Coins"),
		chips(t.RelatedCoins, styles.ChipStyle, width-6),
	)
	return card("📈 Market Trends", body, width)
}
