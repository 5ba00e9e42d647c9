package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/cryptoscope/internal/analysis"
	"github.com/zappabad/cryptoscope/internal/history"
	"github.com/zappabad/cryptoscope/internal/lookup"
	"github.com/zappabad/cryptoscope/internal/share"
	"github.com/zappabad/cryptoscope/pkg/logger"
	"github.com/zappabad/cryptoscope/tui/panels"
	"github.com/zappabad/cryptoscope/tui/styles"
)

const historyShown = 5

// Options configures the root model.
type Options struct {
	Lookup        lookup.Lookup
	History       *history.History
	Share         *share.Service // nil disables share and export
	Suggestions   []string
	RefreshDelay  time.Duration
	LookupTimeout time.Duration
	Logger        *logger.Logger
}

// Model is the main TUI application model.
type Model struct {
	controller *Controller
	history    *history.History
	share      *share.Service
	logger     *logger.Logger

	refreshDelay  time.Duration
	lookupTimeout time.Duration

	// Panels
	searchPanel    *panels.SearchPanel
	dashboardPanel *panels.DashboardPanel

	loading spinner.Model

	// Window dimensions
	width  int
	height int

	// Status
	statusMsg string
	ready     bool
}

type lookupResultMsg struct {
	seq    uint64
	result *analysis.AnalysisResult
	err    error
}

type actionResultMsg struct {
	message string
}

// NewModel creates a new TUI model.
func NewModel(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.RefreshDelay <= 0 {
		opts.RefreshDelay = time.Second
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.ValueStyle

	return &Model{
		controller:    NewController(opts.Lookup, opts.History),
		history:       opts.History,
		share:         opts.Share,
		logger:        opts.Logger.Named("tui"),
		refreshDelay:  opts.RefreshDelay,
		lookupTimeout: opts.LookupTimeout,
		searchPanel:   panels.NewSearchPanel(opts.Suggestions),
		loading:       s,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.searchPanel.Init()
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Close()
			return m, tea.Quit
		}
		if msg.String() == "q" && m.controller.Phase() != PhaseSearch {
			m.Close()
			return m, tea.Quit
		}
		switch m.controller.Phase() {
		case PhaseLoading:
			if msg.String() == "esc" {
				m.controller.Dismiss()
				m.enterSearch()
			}
			return m, nil
		case PhaseFailed:
			switch msg.String() {
			case "r":
				return m, m.retry()
			case "esc":
				m.controller.Back()
				m.enterSearch()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updatePanelSizes()
		m.ready = true
		return m, nil

	case panels.SubmitMsg:
		return m, m.submit(msg.Query)

	case lookupResultMsg:
		return m, m.complete(msg)

	case panels.DismissMsg:
		m.closeDashboard()
		m.controller.Dismiss()
		m.enterSearch()
		return m, nil

	case panels.ShareMsg:
		return m, m.shareResult(msg.Result)

	case panels.ExportMsg:
		return m, m.exportResult(msg.Result)

	case actionResultMsg:
		m.statusMsg = msg.message
		return m, nil

	case spinner.TickMsg:
		if m.controller.Phase() == PhaseLoading && msg.ID == m.loading.ID() {
			var cmd tea.Cmd
			m.loading, cmd = m.loading.Update(msg)
			return m, cmd
		}
	}

	m.updateActivePanel(msg, &cmds)

	return m, tea.Batch(cmds...)
}

func (m *Model) updateActivePanel(msg tea.Msg, cmds *[]tea.Cmd) {
	var cmd tea.Cmd

	switch m.controller.Phase() {
	case PhaseSearch:
		m.searchPanel, cmd = m.searchPanel.Update(msg)
	case PhaseDashboard:
		if m.dashboardPanel != nil {
			m.dashboardPanel, cmd = m.dashboardPanel.Update(msg)
		}
	}

	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) submit(query string) tea.Cmd {
	seq := m.controller.Begin(query)
	m.statusMsg = ""
	m.searchPanel.SetBanner("")
	m.logger.Debug("Submitting query", logger.StringField("query", query))
	return tea.Batch(m.loading.Tick, m.runLookup(seq, query))
}

func (m *Model) retry() tea.Cmd {
	return m.submit(m.controller.Query())
}

func (m *Model) runLookup(seq uint64, query string) tea.Cmd {
	l := m.controller.Lookup()
	timeout := m.lookupTimeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		res, err := l.Lookup(ctx, query)
		return lookupResultMsg{seq: seq, result: res, err: err}
	}
}

func (m *Model) complete(msg lookupResultMsg) tea.Cmd {
	if !m.controller.Complete(msg.seq, msg.result, msg.err) {
		m.logger.Debug("Ignoring stale lookup result")
		return nil
	}

	m.refreshHistory()
	switch m.controller.Phase() {
	case PhaseDashboard:
		m.closeDashboard()
		m.dashboardPanel = panels.NewDashboardPanel(m.controller.Result(), m.refreshDelay)
		m.updatePanelSizes()
		return m.dashboardPanel.Init()

	case PhaseSearch:
		m.logger.Warn("Lookup rejected", logger.StringField("query", m.controller.Query()), logger.ErrorField(msg.err))
		m.searchPanel.SetBanner(msg.err.Error())
		m.searchPanel.Reset()

	case PhaseFailed:
		m.logger.Error("Lookup failed", logger.StringField("query", m.controller.Query()), logger.ErrorField(msg.err))
	}
	return nil
}

func (m *Model) shareResult(r *analysis.AnalysisResult) tea.Cmd {
	svc := m.share
	return func() tea.Msg {
		if svc == nil {
			return actionResultMsg{message: "✗ " + share.ErrSharingDisabled.Error()}
		}
		if err := svc.Share(r); err != nil {
			if errors.Is(err, share.ErrSharingDisabled) {
				return actionResultMsg{message: "✗ " + err.Error()}
			}
			return actionResultMsg{message: "✗ Share failed: " + err.Error()}
		}
		return actionResultMsg{message: "✓ Shared " + r.Ticker + " analysis"}
	}
}

func (m *Model) exportResult(r *analysis.AnalysisResult) tea.Cmd {
	svc := m.share
	return func() tea.Msg {
		if svc == nil {
			return actionResultMsg{message: "✗ Export is not configured"}
		}
		path, err := svc.Export(r)
		if err != nil {
			return actionResultMsg{message: "✗ Export failed: " + err.Error()}
		}
		return actionResultMsg{message: "✓ Exported to " + path}
	}
}

func (m *Model) enterSearch() {
	m.statusMsg = ""
	if err := m.controller.LastErr(); err != nil {
		m.searchPanel.SetBanner(err.Error())
	} else {
		m.searchPanel.SetBanner("")
	}
	m.searchPanel.Reset()
	m.refreshHistory()
}

func (m *Model) refreshHistory() {
	if m.history != nil {
		m.searchPanel.SetRecent(m.history.Recent(historyShown))
	}
}

func (m *Model) closeDashboard() {
	if m.dashboardPanel != nil {
		m.dashboardPanel.Close()
		m.dashboardPanel = nil
	}
}

// Close releases the dashboard's pending timers.
func (m *Model) Close() {
	m.closeDashboard()
}

// Controller exposes the state holder.
func (m *Model) Controller() *Controller {
	return m.controller
}

func (m *Model) updatePanelSizes() {
	bodyHeight := m.height - 1
	m.searchPanel.SetSize(m.width, bodyHeight)
	if m.dashboardPanel != nil {
		m.dashboardPanel.SetSize(m.width, bodyHeight)
	}
}

// View renders the UI.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var body string
	switch m.controller.Phase() {
	case PhaseLoading:
		body = m.renderCentered(lipgloss.JoinVertical(lipgloss.Center,
			m.loading.View()+" Analyzing "+styles.ValueStyle.Render(m.controller.Query())+"…",
			styles.MutedStyle.Render("Gathering tweets, news and market data"),
		))
	case PhaseFailed:
		body = m.renderCentered(lipgloss.JoinVertical(lipgloss.Center,
			styles.ErrorBannerStyle.Render("Analysis temporarily unavailable"),
			"",
			styles.LabelStyle.Render(errorText(m.controller.LastErr())),
			"",
			styles.RenderKey("r", "retry")+"   "+styles.RenderKey("esc", "back to search"),
		))
	case PhaseDashboard:
		body = m.dashboardPanel.View()
	default:
		body = m.searchPanel.View()
	}

	body = lipgloss.NewStyle().Height(max(m.height-1, 0)).MaxHeight(max(m.height-1, 0)).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

func (m *Model) renderCentered(s string) string {
	return lipgloss.Place(m.width, max(m.height-1, 0), lipgloss.Center, lipgloss.Center, s)
}

func (m *Model) renderStatusBar() string {
	var help []string
	switch m.controller.Phase() {
	case PhaseSearch:
		help = []string{styles.RenderKey("enter", "analyze"), styles.RenderKey("↑↓", "select"), styles.RenderKey("ctrl+c", "quit")}
	case PhaseLoading:
		help = []string{styles.RenderKey("esc", "cancel"), styles.RenderKey("q", "quit")}
	case PhaseFailed:
		help = []string{styles.RenderKey("r", "retry"), styles.RenderKey("esc", "back"), styles.RenderKey("q", "quit")}
	case PhaseDashboard:
		help = []string{
			helpFor(panels.DashboardKeys.Overview, panels.DashboardKeys.Sentiment, panels.DashboardKeys.Social),
			helpFor(panels.DashboardKeys.NextTab),
			helpFor(panels.DashboardKeys.Dismiss),
			styles.RenderKey("q", "quit"),
		}
	}

	helpStr := ""
	for i, h := range help {
		if i > 0 {
			helpStr += " │ "
		}
		helpStr += h
	}

	status := ""
	if m.statusMsg != "" {
		status = " │ " + m.statusMsg
	}

	return styles.StatusBarStyle.Width(m.width).Render(helpStr + status)
}

func helpFor(bindings ...key.Binding) string {
	if len(bindings) == 1 {
		h := bindings[0].Help()
		return styles.RenderKey(h.Key, h.Desc)
	}
	keys := ""
	for i, b := range bindings {
		if i > 0 {
			keys += "/"
		}
		keys += b.Help().Key
	}
	return styles.RenderKey(keys, "tabs")
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
