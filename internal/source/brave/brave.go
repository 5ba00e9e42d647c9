package brave

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/zappabad/cryptoscope/pkg/logger"
	"github.com/zappabad/cryptoscope/pkg/ratelimit"
)

// Config holds the Brave Search settings.
type Config struct {
	APIKey              string
	BaseURL             string
	Freshness           string
	WebResults          int
	NewsResults         int
	MaxRequestPerMinute int
	Timeout             time.Duration
}

// DefaultConfig returns the settings used by the analyzer: the last day of
// results, five web links and twenty news links.
func DefaultConfig() Config {
	return Config{
		BaseURL:             "https://api.search.brave.com",
		Freshness:           "pd",
		WebResults:          5,
		NewsResults:         20,
		MaxRequestPerMinute: 30,
		Timeout:             30 * time.Second,
	}
}

// Result is a single search hit.
type Result struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// String renders the hit the way it is fed to the synthesizer.
func (r Result) String() string {
	return r.Title + " - " + r.URL
}

type webResponse struct {
	Web struct {
		Results []Result `json:"results"`
	} `json:"web"`
}

type newsResponse struct {
	Results []Result `json:"results"`
}

// Client talks to the Brave Search API.
type Client struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
	log     *logger.Logger
}

// NewClient creates a Brave Search client.
func NewClient(cfg Config, log *logger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Client{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: ratelimit.NewRequestLimiter(cfg.MaxRequestPerMinute),
		log:     log.Named("brave"),
	}
}

// Web returns up to cfg.WebResults web hits for query.
func (c *Client) Web(ctx context.Context, query string) ([]Result, error) {
	var resp webResponse
	if err := c.get(ctx, "/res/v1/web/search", query, c.cfg.WebResults, &resp); err != nil {
		return nil, err
	}
	return head(resp.Web.Results, c.cfg.WebResults), nil
}

// News returns up to cfg.NewsResults news hits for query.
func (c *Client) News(ctx context.Context, query string) ([]Result, error) {
	var resp newsResponse
	if err := c.get(ctx, "/res/v1/news/search", query, c.cfg.NewsResults, &resp); err != nil {
		return nil, err
	}
	return head(resp.Results, c.cfg.NewsResults), nil
}

// Search runs the web and news searches and returns web hits first.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	web, err := c.Web(ctx, query)
	if err != nil {
		return nil, err
	}
	news, err := c.News(ctx, query)
	if err != nil {
		return nil, err
	}
	return append(web, news...), nil
}

func (c *Client) get(ctx context.Context, path, query string, count int, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for request limit: %w", err)
	}

	q := url.Values{}
	q.Set("q", query)
	if c.cfg.Freshness != "" {
		q.Set("freshness", c.cfg.Freshness)
	}
	if count > 0 {
		q.Set("count", strconv.Itoa(count))
	}
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.cfg.APIKey)

	start := time.Now()
	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	c.log.Debug("Brave search",
		logger.StringField("path", path),
		logger.StringField("query", query),
		logger.IntField("status", res.StatusCode),
		logger.DurationField("took", time.Since(start)),
	)

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return fmt.Errorf("brave api error (status %d): %s", res.StatusCode, string(body))
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response failed: %w", err)
	}
	return nil
}

func head(results []Result, n int) []Result {
	if n > 0 && len(results) > n {
		return results[:n]
	}
	return results
}
