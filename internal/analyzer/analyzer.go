package analyzer

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zappabad/cryptoscope/internal/analysis"
	"github.com/zappabad/cryptoscope/internal/catalog"
	"github.com/zappabad/cryptoscope/internal/source/brave"
	"github.com/zappabad/cryptoscope/internal/synth"
	"github.com/zappabad/cryptoscope/pkg/logger"
)

// TweetSearcher returns tweet text relevant to a prompt.
type TweetSearcher interface {
	Search(ctx context.Context, prompt string) ([]string, error)
}

// LinkSearcher returns web and news links for a query.
type LinkSearcher interface {
	Search(ctx context.Context, query string) ([]brave.Result, error)
}

// Synthesizer turns collected coverage into an analysis.
type Synthesizer interface {
	Synthesize(ctx context.Context, in synth.Input) (*analysis.AnalysisResult, error)
}

// Config tunes the pipeline.
type Config struct {
	// MaxSourceURLs caps the links copied into the result.
	MaxSourceURLs int
}

// DefaultConfig returns the default pipeline settings.
func DefaultConfig() Config {
	return Config{MaxSourceURLs: 10}
}

// Analyzer collects tweets and links for an asset concurrently and asks the
// synthesizer for the final result.
type Analyzer struct {
	cfg    Config
	tweets TweetSearcher
	links  LinkSearcher
	synth  Synthesizer
	log    *logger.Logger
	now    func() time.Time
}

// New creates an analyzer.
func New(cfg Config, tweets TweetSearcher, links LinkSearcher, s Synthesizer, log *logger.Logger) *Analyzer {
	return &Analyzer{
		cfg:    cfg,
		tweets: tweets,
		links:  links,
		synth:  s,
		log:    log.Named("analyzer"),
		now:    time.Now,
	}
}

// Analyze runs the pipeline for asset. Tweet search failures are transient.
// Link search failures only leave the result without sources. An asset with
// no coverage at all is reported as not found.
func (a *Analyzer) Analyze(ctx context.Context, asset catalog.Asset) (*analysis.AnalysisResult, error) {
	start := a.now()
	log := a.log.With(logger.StringField("ticker", asset.Ticker))

	var (
		tweets []string
		links  []brave.Result
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tweets, err = a.tweets.Search(gctx, tweetPrompt(asset))
		if err != nil {
			return fmt.Errorf("tweet search failed: %w: %w", analysis.ErrTransient, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		links, err = a.links.Search(gctx, linkQuery(asset))
		if err != nil {
			log.Warn("Link search failed, continuing without sources", logger.ErrorField(err))
			links = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("Coverage collection failed", logger.ErrorField(err))
		return nil, err
	}

	if len(tweets) == 0 && len(links) == 0 {
		return nil, fmt.Errorf("no coverage for %s: %w", asset.Ticker, analysis.ErrNotFound)
	}

	sources := make([]string, 0, len(links))
	for _, l := range links {
		sources = append(sources, l.String())
	}
	date := start.Format("2006-01-02")

	result, err := a.synth.Synthesize(ctx, synth.Input{
		Coin:    asset.Name,
		Ticker:  asset.Ticker,
		Date:    date,
		Tweets:  tweets,
		Sources: sources,
		Topic:   asset.Topic,
	})
	if err != nil {
		log.Error("Synthesis failed", logger.ErrorField(err))
		return nil, err
	}

	result.Coin = asset.Name
	result.Ticker = asset.Ticker
	result.Date = date
	result.SourceURLs = sourceURLs(links, a.cfg.MaxSourceURLs)

	log.Info("Analysis complete",
		logger.IntField("tweets", len(tweets)),
		logger.IntField("links", len(links)),
		logger.DurationField("took", a.now().Sub(start)),
	)
	return result, nil
}

func tweetPrompt(asset catalog.Asset) string {
	if asset.Topic {
		return fmt.Sprintf("What is the sentiment around %s in crypto on Twitter?", asset.Name)
	}
	return fmt.Sprintf("What is the sentiment around %s ($%s) on Twitter?", asset.Name, asset.Ticker)
}

func linkQuery(asset catalog.Asset) string {
	if asset.Topic {
		return asset.Name + " crypto"
	}
	return asset.Name
}

// sourceURLs returns the distinct http(s) URLs of links, at most limit.
func sourceURLs(links []brave.Result, limit int) []string {
	seen := make(map[string]bool, len(links))
	out := make([]string, 0, len(links))
	for _, l := range links {
		if limit > 0 && len(out) == limit {
			break
		}
		if seen[l.URL] || !analysis.IsHTTPURL(l.URL) {
			continue
		}
		seen[l.URL] = true
		out = append(out, l.URL)
	}
	return out
}
