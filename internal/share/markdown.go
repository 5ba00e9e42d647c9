package share

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/zappabad/cryptoscope/internal/analysis"
	"github.com/zappabad/cryptoscope/internal/format"
)

const maxMessageLen = 4090

// FormatMarkdown renders a digest of r for a Telegram message.
func FormatMarkdown(r *analysis.AnalysisResult) string {
	esc := func(s string) string { return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s) }
	sa := r.SentimentAnalysis

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *%s (%s)*\n", esc(r.Coin), esc(r.Ticker))
	if r.Date != "" {
		fmt.Fprintf(&b, "🗓 %s\n", esc(r.Date))
	}
	b.WriteString("\n")

	if r.Summary != "" {
		fmt.Fprintf(&b, "💬 *Summary:* %s\n\n", esc(r.Summary))
	}

	fmt.Fprintf(&b, "😊 *Positive:* %s\n", format.Percent(sa.PositivePercentage))
	fmt.Fprintf(&b, "😐 *Neutral:* %s\n", format.Percent(sa.NeutralPercentage))
	fmt.Fprintf(&b, "😟 *Negative:* %s\n\n", format.Percent(sa.NegativePercentage))

	pt := r.PriceTargets
	b.WriteString("🎯 *Price Targets*\n")
	fmt.Fprintf(&b, "Short-term dip: %s\n", esc(format.Target(pt.ShortTermDipTarget)))
	fmt.Fprintf(&b, "Dip range: %s\n", esc(format.Target(pt.ShortTermDipTargetRange)))
	fmt.Fprintf(&b, "Mid-term: %s\n", esc(format.Target(pt.MidTermTarget)))
	fmt.Fprintf(&b, "Long-term: %s\n", esc(format.Target(pt.LongTermTarget)))

	writeEvents(&b, "🚀 *Catalysts*", r.Catalysts, esc)
	writeEvents(&b, "⚠️ *Risks*", r.Risks, esc)

	if len(r.Trends.EmergingNarratives) > 0 {
		fmt.Fprintf(&b, "\n📈 *Narratives:* %s\n", esc(strings.Join(r.Trends.EmergingNarratives, ", ")))
	}

	out := b.String()
	if len(out) > maxMessageLen {
		out = truncate(out, maxMessageLen)
	}
	return out
}

func writeEvents(b *strings.Builder, title string, events []analysis.Event, esc func(string) string) {
	if len(events) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", title)
	for _, e := range events {
		if e.Source != "" {
			fmt.Fprintf(b, "• %s (%s)\n", esc(e.Description), esc(e.Source))
		} else {
			fmt.Fprintf(b, "• %s\n", esc(e.Description))
		}
	}
}

// truncate cuts s at the last line break that fits in n bytes.
func truncate(s string, n int) string {
	cut := s[:n]
	if i := strings.LastIndexByte(cut, '\n'); i > 0 {
		cut = cut[:i+1]
	}
	return cut + "…"
}
