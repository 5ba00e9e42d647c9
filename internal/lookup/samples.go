package lookup

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/zappabad/cryptoscope/internal/analysis"
	"github.com/zappabad/cryptoscope/internal/catalog"
)

//go:embed samples.json
var embeddedSamples []byte

// Samples serves canned analyses keyed by ticker. It backs the offline
// catalog mode.
type Samples struct {
	byTicker map[string]analysis.AnalysisResult
}

// NewSamples loads samples from r, a JSON array of AnalysisResult.
func NewSamples(r io.Reader) (*Samples, error) {
	var results []analysis.AnalysisResult
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode samples: %w", err)
	}

	s := &Samples{byTicker: make(map[string]analysis.AnalysisResult, len(results))}
	for _, res := range results {
		if err := res.Validate(); err != nil {
			return nil, fmt.Errorf("sample %s: %w", res.Ticker, err)
		}
		s.byTicker[strings.ToUpper(res.Ticker)] = res
	}
	return s, nil
}

// DefaultSamples returns the samples compiled into the binary.
func DefaultSamples() *Samples {
	s, err := NewSamples(bytes.NewReader(embeddedSamples))
	if err != nil {
		panic(err)
	}
	return s
}

// Tickers lists the tickers with a sample.
func (s *Samples) Tickers() []string {
	out := make([]string, 0, len(s.byTicker))
	for t := range s.byTicker {
		out = append(out, t)
	}
	return out
}

// Analyze returns a deep copy of the sample for asset.
func (s *Samples) Analyze(ctx context.Context, asset catalog.Asset) (*analysis.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, ok := s.byTicker[strings.ToUpper(asset.Ticker)]
	if !ok {
		return nil, fmt.Errorf("no sample for %s: %w", asset.Ticker, analysis.ErrNotFound)
	}
	return clone(&res)
}

// clone deep-copies a result through JSON so cached values never share
// slices or price pointers with callers.
func clone(r *analysis.AnalysisResult) (*analysis.AnalysisResult, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var out analysis.AnalysisResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
