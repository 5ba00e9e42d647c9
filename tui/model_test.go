package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zappabad/cryptoscope/internal/analysis"
	"github.com/zappabad/cryptoscope/internal/catalog"
	"github.com/zappabad/cryptoscope/internal/history"
	"github.com/zappabad/cryptoscope/internal/lookup"
	"github.com/zappabad/cryptoscope/internal/share"
	"github.com/zappabad/cryptoscope/pkg/logger"
	"github.com/zappabad/cryptoscope/tui/panels"
)

var suggestions = []string{"Bitcoin Analysis", "Ethereum Trends", "DeFi Projects", "NFT Market"}

// collect runs cmd and any batched commands, returning the non-nil messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// send feeds msg to m and then the application messages its commands
// produce, until nothing is left. Spinner ticks are dropped.
func send(m *Model, msg tea.Msg) {
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		_, cmd := m.Update(next)
		for _, out := range collect(cmd) {
			switch out.(type) {
			case lookupResultMsg, panels.SubmitMsg, panels.DismissMsg,
				panels.ShareMsg, panels.ExportMsg, actionResultMsg:
				queue = append(queue, out)
			}
		}
	}
}

// firstMsg runs cmd without waiting on anything slower than a key press.
func firstMsg(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(l lookup.Lookup, svc *share.Service) *Model {
	m := NewModel(Options{
		Lookup:        l,
		History:       history.New(5),
		Share:         svc,
		Suggestions:   suggestions,
		RefreshDelay:  10 * time.Millisecond,
		LookupTimeout: time.Second,
		Logger:        logger.NewNop(),
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func TestTypedQueryShowsDashboard(t *testing.T) {
	m := newTestModel(lookup.NewFixture(), nil)
	defer m.Close()

	m.Update(press("B"))
	m.searchPanel.SetValue("Bitcoin")
	send(m, press("enter"))

	c := m.Controller()
	assert.Equal(t, PhaseDashboard, c.Phase())
	assert.True(t, c.Submitted())
	require.NotNil(t, m.dashboardPanel)
	assert.Contains(t, m.View(), "Bitcoin (BTC)")
}

func TestSuggestionMatchesTypedText(t *testing.T) {
	typed := &stubLookup{result: analysis.Fixture}
	picked := &stubLookup{result: analysis.Fixture}

	a := newTestModel(typed, nil)
	defer a.Close()
	a.searchPanel.SetValue("Ethereum Trends")
	send(a, press("enter"))

	b := newTestModel(picked, nil)
	defer b.Close()
	send(b, press("down"))
	send(b, press("down"))
	send(b, press("enter"))

	assert.Equal(t, typed.calls(), picked.calls())
	assert.Equal(t, a.Controller().Phase(), b.Controller().Phase())
	assert.Equal(t, a.Controller().Submitted(), b.Controller().Submitted())
	assert.Equal(t, a.Controller().Query(), b.Controller().Query())
	assert.Equal(t, a.Controller().Result(), b.Controller().Result())
}

func TestDismissReturnsToSearch(t *testing.T) {
	m := newTestModel(lookup.NewFixture(), nil)

	send(m, panels.SubmitMsg{Query: "Bitcoin Analysis"})
	require.Equal(t, PhaseDashboard, m.Controller().Phase())

	send(m, press("esc"))
	assert.Equal(t, PhaseSearch, m.Controller().Phase())
	assert.False(t, m.Controller().Submitted())
	assert.Nil(t, m.Controller().Result())
	assert.Nil(t, m.dashboardPanel)
	assert.Contains(t, m.View(), "Recent Analyses")
}

func TestNotFoundShowsBanner(t *testing.T) {
	l := lookup.NewResolving(catalog.New(catalog.DefaultAssets()), lookup.DefaultSamples())
	m := newTestModel(l, nil)

	send(m, panels.SubmitMsg{Query: "Stock Market"})

	assert.Equal(t, PhaseSearch, m.Controller().Phase())
	assert.Contains(t, m.searchPanel.Banner(), `no analysis found for "Stock Market"`)
	assert.Contains(t, m.View(), "Stock Market")
}

func TestSuggestionsReachDashboard(t *testing.T) {
	l := lookup.NewResolving(catalog.New(catalog.DefaultAssets()), lookup.DefaultSamples())

	for _, q := range suggestions {
		t.Run(q, func(t *testing.T) {
			m := newTestModel(l, nil)
			defer m.Close()

			send(m, panels.SubmitMsg{Query: q})
			assert.Equal(t, PhaseDashboard, m.Controller().Phase())
			assert.NoError(t, m.Controller().LastErr())
			require.NotNil(t, m.dashboardPanel)
		})
	}
}

func TestTransientShowsRetry(t *testing.T) {
	stub := &stubLookup{err: analysis.Transient("Bitcoin", errors.New("timeout"))}
	m := newTestModel(stub, nil)
	defer m.Close()

	send(m, panels.SubmitMsg{Query: "Bitcoin"})
	require.Equal(t, PhaseFailed, m.Controller().Phase())
	assert.Contains(t, m.View(), "retry")

	stub.err = nil
	stub.result = analysis.Fixture
	send(m, press("r"))
	assert.Equal(t, PhaseDashboard, m.Controller().Phase())
	assert.Equal(t, []string{"Bitcoin", "Bitcoin"}, stub.calls())
}

func TestFailedBackKeepsError(t *testing.T) {
	stub := &stubLookup{err: analysis.Transient("Bitcoin", errors.New("timeout"))}
	m := newTestModel(stub, nil)

	send(m, panels.SubmitMsg{Query: "Bitcoin"})
	send(m, press("esc"))

	assert.Equal(t, PhaseSearch, m.Controller().Phase())
	assert.Contains(t, m.searchPanel.Banner(), "timeout")
}

func TestLookupAfterDismissIsIgnored(t *testing.T) {
	m := newTestModel(lookup.NewFixture(), nil)

	_, cmd := m.Update(panels.SubmitMsg{Query: "Bitcoin Analysis"})
	require.Equal(t, PhaseLoading, m.Controller().Phase())

	send(m, press("esc"))
	require.Equal(t, PhaseSearch, m.Controller().Phase())

	for _, out := range collect(cmd) {
		if res, ok := out.(lookupResultMsg); ok {
			m.Update(res)
		}
	}
	assert.Equal(t, PhaseSearch, m.Controller().Phase())
	assert.Nil(t, m.Controller().Result())
	assert.Nil(t, m.dashboardPanel)
}

func TestShareWithoutNotifier(t *testing.T) {
	svc := share.NewService(nil, share.NewExporter(t.TempDir()), logger.NewNop())
	m := newTestModel(lookup.NewFixture(), svc)
	defer m.Close()

	send(m, panels.SubmitMsg{Query: "Bitcoin"})
	send(m, press("s"))
	assert.Contains(t, m.statusMsg, share.ErrSharingDisabled.Error())

	send(m, press("e"))
	assert.Contains(t, m.statusMsg, "Exported to")
	assert.Contains(t, m.statusMsg, "BTC-")
}

func TestQuitClosesDashboard(t *testing.T) {
	m := newTestModel(lookup.NewFixture(), nil)

	send(m, panels.SubmitMsg{Query: "Bitcoin"})
	require.NotNil(t, m.dashboardPanel)

	_, cmd := m.Update(press("q"))
	assert.Nil(t, m.dashboardPanel)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestQTypesIntoSearch(t *testing.T) {
	m := newTestModel(lookup.NewFixture(), nil)

	_, cmd := m.Update(press("q"))
	assert.Equal(t, "q", m.searchPanel.Value())
	assert.NotEqual(t, tea.QuitMsg{}, firstMsg(cmd))
	assert.Equal(t, PhaseSearch, m.Controller().Phase())
}

func TestRunLookupHonoursTimeout(t *testing.T) {
	slow := lookup.Func(func(ctx context.Context, q string) (*analysis.AnalysisResult, error) {
		<-ctx.Done()
		return nil, analysis.Transient(q, ctx.Err())
	})
	m := newTestModel(slow, nil)
	m.lookupTimeout = 10 * time.Millisecond

	send(m, panels.SubmitMsg{Query: "Bitcoin"})
	assert.Equal(t, PhaseFailed, m.Controller().Phase())
	assert.ErrorIs(t, m.Controller().LastErr(), context.DeadlineExceeded)
}
