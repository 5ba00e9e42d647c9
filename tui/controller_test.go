package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zappabad/cryptoscope/internal/analysis"
	"github.com/zappabad/cryptoscope/internal/catalog"
	"github.com/zappabad/cryptoscope/internal/history"
	"github.com/zappabad/cryptoscope/internal/lookup"
)

// stubLookup records queries and answers with a fixed outcome.
type stubLookup struct {
	mu      sync.Mutex
	queries []string
	result  func() *analysis.AnalysisResult
	err     error
}

func (s *stubLookup) Lookup(_ context.Context, query string) (*analysis.AnalysisResult, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.result(), nil
}

func (s *stubLookup) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

func TestSubmitWithFixtureAlwaysSucceeds(t *testing.T) {
	for _, q := range []string{"Bitcoin Analysis", "anything at all", "", "NFT Market"} {
		c := NewController(lookup.NewFixture(), nil)

		require.NoError(t, c.SubmitQuery(context.Background(), q))
		assert.True(t, c.Submitted(), q)
		assert.Equal(t, PhaseDashboard, c.Phase(), q)
		require.NotNil(t, c.Result(), q)
		assert.NoError(t, c.Result().Validate(), q)
	}
}

func TestDismissIsIdempotent(t *testing.T) {
	c := NewController(lookup.NewFixture(), nil)
	require.NoError(t, c.SubmitQuery(context.Background(), "Bitcoin Analysis"))

	c.Dismiss()
	first := *c
	c.Dismiss()

	assert.False(t, c.Submitted())
	assert.Nil(t, c.Result())
	assert.Equal(t, PhaseSearch, c.Phase())
	assert.Empty(t, c.Query())
	assert.NoError(t, c.LastErr())
	assert.Equal(t, first.submitted, c.submitted)
	assert.Equal(t, first.result, c.result)
	assert.Equal(t, first.phase, c.phase)
}

func TestNotFoundReturnsToSearch(t *testing.T) {
	l := lookup.NewResolving(catalog.New(catalog.DefaultAssets()), lookup.DefaultSamples())
	c := NewController(l, nil)

	err := c.SubmitQuery(context.Background(), "Stock Market")
	require.ErrorIs(t, err, analysis.ErrNotFound)
	assert.False(t, c.Submitted())
	assert.Nil(t, c.Result())
	assert.Equal(t, PhaseSearch, c.Phase())
	assert.ErrorIs(t, c.LastErr(), analysis.ErrNotFound)
	assert.Contains(t, c.LastErr().Error(), `no analysis found for "Stock Market"`)
}

func TestMalformedReturnsToSearch(t *testing.T) {
	bad := analysis.Fixture()
	bad.Ticker = ""
	l := lookup.Func(func(ctx context.Context, q string) (*analysis.AnalysisResult, error) {
		return nil, analysis.Malformed(q, bad.Validate())
	})
	c := NewController(l, nil)

	err := c.SubmitQuery(context.Background(), "Bitcoin")
	require.ErrorIs(t, err, analysis.ErrMalformed)
	assert.Equal(t, PhaseSearch, c.Phase())
	assert.False(t, c.Submitted())
	assert.Contains(t, c.LastErr().Error(), "ticker")
}

func TestTransientShowsFailureAndRetries(t *testing.T) {
	stub := &stubLookup{err: analysis.Transient("Bitcoin", errors.New("upstream down"))}
	c := NewController(stub, nil)

	err := c.SubmitQuery(context.Background(), "Bitcoin")
	require.ErrorIs(t, err, analysis.ErrTransient)
	assert.Equal(t, PhaseFailed, c.Phase())
	assert.True(t, c.Submitted())
	assert.Nil(t, c.Result())

	stub.err = nil
	stub.result = analysis.Fixture
	require.NoError(t, c.Retry(context.Background()))
	assert.Equal(t, PhaseDashboard, c.Phase())
	assert.Equal(t, []string{"Bitcoin", "Bitcoin"}, stub.calls())
}

func TestRetryOutsideFailedPhaseDoesNothing(t *testing.T) {
	stub := &stubLookup{result: analysis.Fixture}
	c := NewController(stub, nil)

	require.NoError(t, c.Retry(context.Background()))
	assert.Empty(t, stub.calls())
	assert.Equal(t, PhaseSearch, c.Phase())
}

func TestStaleCompletionIsIgnored(t *testing.T) {
	c := NewController(lookup.NewFixture(), nil)

	seq := c.Begin("Bitcoin Analysis")
	c.Dismiss()

	assert.False(t, c.Complete(seq, analysis.Fixture(), nil))
	assert.False(t, c.Submitted())
	assert.Nil(t, c.Result())
	assert.Equal(t, PhaseSearch, c.Phase())
}

func TestSupersededCompletionIsIgnored(t *testing.T) {
	c := NewController(lookup.NewFixture(), nil)

	first := c.Begin("Bitcoin")
	second := c.Begin("Ethereum")

	assert.False(t, c.Complete(first, analysis.Fixture(), nil))
	assert.Equal(t, PhaseLoading, c.Phase())
	assert.True(t, c.Complete(second, analysis.Fixture(), nil))
	assert.Equal(t, PhaseDashboard, c.Phase())
}

func TestNilResultIsMalformed(t *testing.T) {
	c := NewController(lookup.NewFixture(), nil)

	seq := c.Begin("Bitcoin")
	require.True(t, c.Complete(seq, nil, nil))
	assert.Equal(t, PhaseSearch, c.Phase())
	assert.ErrorIs(t, c.LastErr(), analysis.ErrMalformed)
}

func TestSubmissionsAreRecorded(t *testing.T) {
	h := history.New(5)
	l := lookup.NewResolving(catalog.New(catalog.DefaultAssets()), lookup.DefaultSamples())
	c := NewController(l, h)

	require.NoError(t, c.SubmitQuery(context.Background(), "Ethereum Trends"))
	c.Dismiss()
	require.Error(t, c.SubmitQuery(context.Background(), "Stock Market"))

	got := h.Recent(5)
	require.Len(t, got, 2)
	assert.Equal(t, "Stock Market", got[0].Query)
	assert.True(t, got[0].Failed)
	assert.Equal(t, "Ethereum Trends", got[1].Query)
	assert.Equal(t, "ETH", got[1].Ticker)
}
