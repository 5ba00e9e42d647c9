package panels

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/zappabad/cryptoscope/internal/analysis"
	"github.com/zappabad/cryptoscope/tui/styles"
)

// Hyperlink renders label as a clickable OSC 8 link to url.
func Hyperlink(url, label string) string {
	return termenv.Hyperlink(url, styles.LinkStyle.Render(label))
}

// TweetView renders a single tweet.
func TweetView(t analysis.Tweet, width int) string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.RowStyle.Bold(true).Render(t.User),
		" ",
		styles.MutedStyle.Render(t.Handle),
		"  ",
		sentimentTag(t.Sentiment),
	)
	lines := []string{
		header,
		lipgloss.NewStyle().Width(width - 6).Render(t.Tweet),
	}
	if t.Link != "" {
		lines = append(lines, Hyperlink(t.Link, "↗ View Tweet"))
	}
	return card("", strings.Join(lines, "\n"), width)
}

// TweetList renders tweets one under another.
func TweetList(tweets []analysis.Tweet, width int) string {
	if len(tweets) == 0 {
		return styles.MutedStyle.Render("No tweets")
	}
	views := make([]string, len(tweets))
	for i, t := range tweets {
		views[i] = TweetView(t, width)
	}
	return lipgloss.JoinVertical(lipgloss.Left, views...)
}
