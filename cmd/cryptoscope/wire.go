package main

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/genai"

	"github.com/zappabad/cryptoscope/internal/analyzer"
	"github.com/zappabad/cryptoscope/internal/catalog"
	"github.com/zappabad/cryptoscope/internal/config"
	"github.com/zappabad/cryptoscope/internal/lookup"
	"github.com/zappabad/cryptoscope/internal/share"
	"github.com/zappabad/cryptoscope/internal/source/brave"
	"github.com/zappabad/cryptoscope/internal/source/datura"
	"github.com/zappabad/cryptoscope/internal/synth"
	"github.com/zappabad/cryptoscope/pkg/logger"
	"github.com/zappabad/cryptoscope/pkg/redis"
)

// loadConfig reads the config file and applies the --mode override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if lookupMode != "" {
		cfg.Lookup.Mode = lookupMode
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// buildLookup assembles the lookup for cfg.Lookup.Mode, wrapped in the
// cache tiers when caching is enabled. The returned closer releases
// connections opened on the way.
func buildLookup(ctx context.Context, cfg *config.Config, log *logger.Logger) (lookup.Lookup, io.Closer, error) {
	var (
		l      lookup.Lookup
		closer io.Closer = nopCloser{}
	)

	switch cfg.Lookup.Mode {
	case config.ModeFixture:
		l = lookup.NewFixture()

	case config.ModeCatalog:
		l = lookup.NewResolving(catalog.New(catalog.DefaultAssets()), lookup.DefaultSamples())

	case config.ModeRemote:
		l = lookup.NewRemote(cfg.Lookup.RemoteURL, cfg.Lookup.Timeout)

	case config.ModeLive:
		a, err := buildAnalyzer(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		l = lookup.NewResolving(catalog.New(catalog.DefaultAssets()), a).WithTopics()

	default:
		return nil, nil, fmt.Errorf("unknown lookup mode %q", cfg.Lookup.Mode)
	}

	// The fixture is constant; caching it buys nothing.
	if !cfg.Cache.Enabled || cfg.Lookup.Mode == config.ModeFixture {
		return l, closer, nil
	}

	stores := []lookup.Store{lookup.NewMemoryStore(cfg.Cache.TTL, cfg.Cache.CleanupInterval)}
	if rc := cfg.Cache.Redis; rc.Enabled {
		client, err := redis.NewClient(redis.Config{
			Host:     rc.Host,
			Port:     rc.Port,
			Password: rc.Password,
			DB:       rc.DB,
			PoolSize: rc.PoolSize,
		})
		if err != nil {
			log.Warn("Redis cache unavailable, using memory only", logger.ErrorField(err))
		} else {
			stores = append(stores, lookup.NewRedisStore(client, rc.Prefix, cfg.Cache.TTL))
			closer = client
		}
	}
	return lookup.NewCached(l, log, stores...).WithTimeout(cfg.Lookup.Timeout), closer, nil
}

// buildAnalyzer wires the live pipeline: Datura tweets, Brave links and the
// Gemini synthesizer.
func buildAnalyzer(ctx context.Context, cfg *config.Config, log *logger.Logger) (*analyzer.Analyzer, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	gemini := synth.NewGemini(genaiClient, synth.Config{
		APIKey:              cfg.Gemini.APIKey,
		Model:               cfg.Gemini.Model,
		MaxRequestPerMinute: cfg.Gemini.MaxRequestPerMinute,
	}, log)

	braveCfg := brave.DefaultConfig()
	braveCfg.APIKey = cfg.Brave.APIKey
	braveCfg.BaseURL = cfg.Brave.BaseURL
	braveCfg.Freshness = cfg.Brave.Freshness
	braveCfg.WebResults = cfg.Brave.WebResults
	braveCfg.NewsResults = cfg.Brave.NewsResults
	braveCfg.MaxRequestPerMinute = cfg.Brave.MaxRequestPerMinute

	daturaCfg := datura.DefaultConfig()
	daturaCfg.APIKey = cfg.Datura.APIKey
	daturaCfg.URL = cfg.Datura.URL
	daturaCfg.Model = cfg.Datura.Model
	daturaCfg.DateFilter = cfg.Datura.DateFilter
	daturaCfg.Tools = cfg.Datura.Tools
	daturaCfg.MaxRequestPerMinute = cfg.Datura.MaxRequestPerMinute

	return analyzer.New(
		analyzer.DefaultConfig(),
		datura.NewClient(daturaCfg, log),
		brave.NewClient(braveCfg, log),
		synth.New(gemini, log),
		log,
	), nil
}

// buildShare returns the share service. Sharing stays disabled without a
// Telegram token; export always works.
func buildShare(cfg *config.Config, log *logger.Logger) *share.Service {
	var notifier share.Notifier
	if cfg.Telegram.BotToken != "" {
		n, err := share.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			log.Warn("Telegram sharing unavailable", logger.ErrorField(err))
		} else {
			notifier = n
		}
	}
	return share.NewService(notifier, share.NewExporter(cfg.Export.Dir), log)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
