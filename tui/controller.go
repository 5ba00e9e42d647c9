package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/zappabad/cryptoscope/internal/analysis"
	"github.com/zappabad/cryptoscope/internal/history"
	"github.com/zappabad/cryptoscope/internal/lookup"
)

// Phase is the screen the controller is on.
type Phase int

const (
	PhaseSearch Phase = iota
	PhaseLoading
	PhaseDashboard
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseSearch:
		return "search"
	case PhaseLoading:
		return "loading"
	case PhaseDashboard:
		return "dashboard"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// Controller owns the submitted/result state of the application. It is not
// safe for concurrent use; the Bubble Tea loop is its only caller.
type Controller struct {
	lookup  lookup.Lookup
	history *history.History

	submitted bool
	result    *analysis.AnalysisResult
	phase     Phase
	query     string
	lastErr   error

	// seq identifies the lookup in flight. Completions for other values
	// are stale.
	seq uint64

	now func() time.Time
}

// NewController creates a controller in its initial state. h may be nil.
func NewController(l lookup.Lookup, h *history.History) *Controller {
	return &Controller{
		lookup:  l,
		history: h,
		phase:   PhaseSearch,
		now:     time.Now,
	}
}

// Begin marks text as submitted and returns the seq that its completion
// must carry.
func (c *Controller) Begin(text string) uint64 {
	c.seq++
	c.submitted = true
	c.result = nil
	c.query = text
	c.lastErr = nil
	c.phase = PhaseLoading
	return c.seq
}

// Complete applies the outcome of lookup seq. It reports false and changes
// nothing when seq is stale.
func (c *Controller) Complete(seq uint64, res *analysis.AnalysisResult, err error) bool {
	if seq != c.seq || c.phase != PhaseLoading {
		return false
	}

	if err == nil && res == nil {
		err = analysis.Malformed(c.query, errors.New("empty result"))
	}
	if err == nil {
		c.result = res
		c.phase = PhaseDashboard
		c.record(res.Ticker, false)
		return true
	}

	c.lastErr = err
	c.record("", true)
	switch analysis.KindOf(err) {
	case analysis.KindNotFound, analysis.KindMalformed:
		c.submitted = false
		c.phase = PhaseSearch
	default:
		c.phase = PhaseFailed
	}
	return true
}

// SubmitQuery runs the lookup for text synchronously.
func (c *Controller) SubmitQuery(ctx context.Context, text string) error {
	seq := c.Begin(text)
	res, err := c.lookup.Lookup(ctx, text)
	c.Complete(seq, res, err)
	return err
}

// Retry re-submits the last query. It does nothing outside the failed phase.
func (c *Controller) Retry(ctx context.Context) error {
	if c.phase != PhaseFailed {
		return nil
	}
	return c.SubmitQuery(ctx, c.query)
}

// Dismiss returns to the initial state. Any lookup in flight becomes stale.
func (c *Controller) Dismiss() {
	c.seq++
	c.submitted = false
	c.result = nil
	c.query = ""
	c.lastErr = nil
	c.phase = PhaseSearch
}

// Back leaves the failed or loading phase for the search screen while
// keeping the error for display.
func (c *Controller) Back() {
	err := c.lastErr
	c.Dismiss()
	c.lastErr = err
}

func (c *Controller) record(ticker string, failed bool) {
	if c.history == nil || strings.TrimSpace(c.query) == "" {
		return
	}
	c.history.Add(history.Entry{
		Query:  c.query,
		Ticker: ticker,
		Failed: failed,
		At:     c.now(),
	})
}

// Lookup returns the lookup used for submissions.
func (c *Controller) Lookup() lookup.Lookup { return c.lookup }

func (c *Controller) Submitted() bool                  { return c.submitted }
func (c *Controller) Result() *analysis.AnalysisResult { return c.result }
func (c *Controller) Phase() Phase                     { return c.phase }
func (c *Controller) Query() string                    { return c.query }
func (c *Controller) LastErr() error                   { return c.lastErr }
