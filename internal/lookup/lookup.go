package lookup

import (
	"context"
	"strings"

	"github.com/zappabad/cryptoscope/internal/analysis"
	"github.com/zappabad/cryptoscope/internal/catalog"
)

// Lookup maps a free-text query to an analysis. Errors are *analysis.LookupError
// values classified as NotFound, Transient or Malformed.
type Lookup interface {
	Lookup(ctx context.Context, query string) (*analysis.AnalysisResult, error)
}

// Func adapts a plain function to Lookup.
type Func func(ctx context.Context, query string) (*analysis.AnalysisResult, error)

func (f Func) Lookup(ctx context.Context, query string) (*analysis.AnalysisResult, error) {
	return f(ctx, query)
}

// AssetAnalyzer produces an analysis for an already resolved asset.
type AssetAnalyzer interface {
	Analyze(ctx context.Context, asset catalog.Asset) (*analysis.AnalysisResult, error)
}

// Normalize canonicalises a query for cache keys: trimmed, lowercased and
// with inner whitespace collapsed.
func Normalize(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// Fixture ignores the query and always returns the built-in demo result.
type Fixture struct{}

// NewFixture returns the demo lookup.
func NewFixture() *Fixture {
	return &Fixture{}
}

func (f *Fixture) Lookup(ctx context.Context, query string) (*analysis.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, analysis.Transient(query, err)
	}
	return analysis.Fixture(), nil
}

// Resolving resolves the query against a catalog and hands the asset to an
// analyzer. Unknown queries fail with NotFound unless topics are enabled;
// results that do not pass validation fail with Malformed.
type Resolving struct {
	catalog  *catalog.Catalog
	analyzer AssetAnalyzer
	topics   bool
}

// NewResolving creates a catalog-backed lookup.
func NewResolving(c *catalog.Catalog, analyzer AssetAnalyzer) *Resolving {
	return &Resolving{catalog: c, analyzer: analyzer}
}

// WithTopics makes queries that name no known asset go to the analyzer as
// free-form topics instead of failing.
func (r *Resolving) WithTopics() *Resolving {
	r.topics = true
	return r
}

func (r *Resolving) Lookup(ctx context.Context, query string) (*analysis.AnalysisResult, error) {
	asset, err := r.catalog.Resolve(query)
	if err != nil && r.topics {
		asset, err = catalog.Topic(query)
	}
	if err != nil {
		return nil, analysis.NotFound(query)
	}

	result, err := r.analyzer.Analyze(ctx, asset)
	if err != nil {
		return nil, classify(query, err)
	}
	if err := result.Validate(); err != nil {
		return nil, analysis.Malformed(query, err)
	}
	return result, nil
}

// classify keeps an existing classification and otherwise treats the error
// as transient.
func classify(query string, err error) error {
	switch analysis.KindOf(err) {
	case analysis.KindNotFound:
		return analysis.NotFound(query)
	case analysis.KindMalformed:
		return analysis.Malformed(query, err)
	default:
		return analysis.Transient(query, err)
	}
}
