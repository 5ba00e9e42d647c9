package panels

import (
	"strings"

	"github.com/zappabad/cryptoscope/tui/styles"
)

// SourceList renders source URLs as links.
func SourceList(urls []string, width int) string {
	if len(urls) == 0 {
		return card("Sources", styles.MutedStyle.Render("No sources"), width)
	}
	lines := make([]string, len(urls))
	for i, u := range urls {
		lines[i] = Hyperlink(u, u)
	}
	return card("Sources", strings.Join(lines, "\n"), width)
}
