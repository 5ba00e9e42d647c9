package panels

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/cryptoscope/internal/analysis"
	"github.com/zappabad/cryptoscope/tui/styles"
)

// Tab is a dashboard section.
type Tab int

const (
	TabOverview Tab = iota
	TabSentiment
	TabSocial
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabSentiment:
		return "Sentiment Analysis"
	case TabSocial:
		return "Social Insights"
	}
	return ""
}

var dashboardIDs atomic.Uint64

// DashboardKeys are the dashboard key bindings.
var DashboardKeys = struct {
	Overview, Sentiment, Social key.Binding
	NextTab, PrevTab            key.Binding
	Dismiss, Refresh            key.Binding
	Share, Export               key.Binding
}{
	Overview:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "overview")),
	Sentiment: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "sentiment")),
	Social:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "social")),
	NextTab:   key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab/→", "next tab")),
	PrevTab:   key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab/←", "prev tab")),
	Dismiss:   key.NewBinding(key.WithKeys("esc", "x"), key.WithHelp("esc/x", "close")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Share:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share")),
	Export:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
}

// DashboardPanel shows one analysis result across three tabs.
type DashboardPanel struct {
	id     uint64
	result *analysis.AnalysisResult

	activeTab Tab

	// Refresh is cosmetic: a spinner for refreshDelay. The timer goroutine
	// is bound to ctx, which Close cancels.
	refreshing    bool
	refreshDelay  time.Duration
	refreshGen    uint64
	refreshCancel context.CancelFunc
	ctx           context.Context
	cancel        context.CancelFunc

	spinner  spinner.Model
	viewport viewport.Model

	width  int
	height int
}

// NewDashboardPanel creates a dashboard for result.
func NewDashboardPanel(result *analysis.AnalysisResult, refreshDelay time.Duration) *DashboardPanel {
	ctx, cancel := context.WithCancel(context.Background())

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.ValueStyle

	p := &DashboardPanel{
		id:           dashboardIDs.Add(1),
		result:       result,
		activeTab:    TabOverview,
		refreshDelay: refreshDelay,
		ctx:          ctx,
		cancel:       cancel,
		spinner:      s,
		viewport:     viewport.New(80, 20),
		width:        80,
		height:       24,
	}
	p.syncContent()
	return p
}

// Init initializes the panel.
func (p *DashboardPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *DashboardPanel) Update(msg tea.Msg) (*DashboardPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DashboardKeys.Overview):
			p.SetTab(TabOverview)
		case key.Matches(msg, DashboardKeys.Sentiment):
			p.SetTab(TabSentiment)
		case key.Matches(msg, DashboardKeys.Social):
			p.SetTab(TabSocial)
		case key.Matches(msg, DashboardKeys.NextTab):
			p.SetTab((p.activeTab + 1) % tabCount)
		case key.Matches(msg, DashboardKeys.PrevTab):
			p.SetTab((p.activeTab + tabCount - 1) % tabCount)
		case key.Matches(msg, DashboardKeys.Dismiss):
			return p, emit(DismissMsg{})
		case key.Matches(msg, DashboardKeys.Refresh):
			return p, p.Refresh()
		case key.Matches(msg, DashboardKeys.Share):
			return p, emit(ShareMsg{Result: p.result})
		case key.Matches(msg, DashboardKeys.Export):
			return p, emit(ExportMsg{Result: p.result})
		default:
			var cmd tea.Cmd
			p.viewport, cmd = p.viewport.Update(msg)
			return p, cmd
		}

	case RefreshDoneMsg:
		if msg.Dashboard == p.id && msg.Gen == p.refreshGen {
			p.refreshing = false
			p.refreshCancel = nil
		}

	case spinner.TickMsg:
		if !p.refreshing {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		p.viewport, cmd = p.viewport.Update(msg)
		return p, cmd
	}
	return p, nil
}

// Refresh shows the refresh indicator for the refresh delay. A pending
// refresh is restarted. The result is never touched.
func (p *DashboardPanel) Refresh() tea.Cmd {
	if p.refreshCancel != nil {
		p.refreshCancel()
	}
	ctx, cancel := context.WithCancel(p.ctx)
	p.refreshCancel = cancel
	p.refreshGen++
	p.refreshing = true

	return tea.Batch(p.spinner.Tick, waitRefresh(ctx, p.refreshDelay, p.id, p.refreshGen))
}

// waitRefresh returns RefreshDoneMsg after delay, or nil once ctx is done.
func waitRefresh(ctx context.Context, delay time.Duration, dashboard, gen uint64) tea.Cmd {
	return func() tea.Msg {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-t.C:
			return RefreshDoneMsg{Dashboard: dashboard, Gen: gen}
		case <-ctx.Done():
			return nil
		}
	}
}

// Close cancels any pending refresh. Call it when the dashboard goes away.
func (p *DashboardPanel) Close() {
	p.cancel()
	p.refreshing = false
	p.refreshCancel = nil
}

// SetTab switches the visible tab and scrolls to the top.
func (p *DashboardPanel) SetTab(t Tab) {
	if t == p.activeTab {
		return
	}
	p.activeTab = t
	p.syncContent()
	p.viewport.GotoTop()
}

// ActiveTab returns the visible tab.
func (p *DashboardPanel) ActiveTab() Tab {
	return p.activeTab
}

// Refreshing reports whether the refresh indicator is showing.
func (p *DashboardPanel) Refreshing() bool {
	return p.refreshing
}

// Result returns the displayed analysis.
func (p *DashboardPanel) Result() *analysis.AnalysisResult {
	return p.result
}

// SetSize sets the panel dimensions.
func (p *DashboardPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.viewport.Width = width
	p.viewport.Height = max(height-lipgloss.Height(p.header())-2, 3)
	p.syncContent()
}

func (p *DashboardPanel) syncContent() {
	p.viewport.SetContent(RenderTab(p.result, p.activeTab, p.width))
}

// View renders the panel.
func (p *DashboardPanel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, p.header(), "", p.viewport.View())
}

func (p *DashboardPanel) header() string {
	r := p.result
	title := lipgloss.JoinVertical(lipgloss.Left,
		styles.BrandStyle.Render("✕  "+r.Coin+" ("+r.Ticker+")"),
		styles.LabelStyle.Render("🕒 "+r.Date+" • 🌐 Market Analysis"),
	)

	refresh := styles.StatusBarKeyStyle.Render("[r]") + " Refresh"
	if p.refreshing {
		refresh = p.spinner.View() + " Refreshing…"
	}
	actions := strings.Join([]string{
		refresh,
		styles.StatusBarKeyStyle.Render("[s]") + " Share",
		styles.StatusBarKeyStyle.Render("[e]") + " Export",
	}, "   ")

	gap := p.width - lipgloss.Width(title) - lipgloss.Width(actions)
	if gap < 2 {
		gap = 2
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, title, strings.Repeat(" ", gap), actions)

	tabs := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		label := []string{"📊 ", "👍 ", "💬 "}[t] + t.String()
		if t == p.activeTab {
			tabs = append(tabs, styles.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, styles.TabStyle.Render(label))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, "", lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// RenderTab renders the body of tab for r at the given width.
func RenderTab(r *analysis.AnalysisResult, tab Tab, width int) string {
	if width < 40 {
		width = 40
	}
	switch tab {
	case TabSentiment:
		sa := r.SentimentAnalysis
		examples := columns(width, 36, func(w int) []string {
			return []string{
				lipgloss.JoinVertical(lipgloss.Left, styles.LabelStyle.Render("Positive Examples"), TweetList(sa.Examples.Positive, w)),
				lipgloss.JoinVertical(lipgloss.Left, styles.LabelStyle.Render("Negative Examples"), TweetList(sa.Examples.Negative, w)),
			}
		})
		top := columns(width, 36, func(w int) []string {
			return []string{SentimentCard(sa, w), TrendsCard(r.Trends, w)}
		})
		return lipgloss.JoinVertical(lipgloss.Left,
			top,
			card("Example Tweets", examples, width),
		)

	case TabSocial:
		return lipgloss.JoinVertical(lipgloss.Left,
			card("💬 Key Tweets", TweetList(r.KeyTweets, width-4), width),
			SourceList(r.SourceURLs, width),
		)

	default:
		summary := lipgloss.NewStyle().Width(width - 6).Render(r.Summary)
		return lipgloss.JoinVertical(lipgloss.Left,
			card("Summary", summary, width),
			PriceTargets(r.PriceTargets, width),
			CatalystsRisks(r.Catalysts, r.Risks, width),
		)
	}
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// DismissMsg asks the controller to close the dashboard.
type DismissMsg struct{}

// ShareMsg asks for the result to be shared.
type ShareMsg struct {
	Result *analysis.AnalysisResult
}

// ExportMsg asks for the result to be exported.
type ExportMsg struct {
	Result *analysis.AnalysisResult
}

// RefreshDoneMsg ends a refresh started by the dashboard with the given id.
type RefreshDoneMsg struct {
	Dashboard uint64
	Gen       uint64
}
