package datura

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/zappabad/cryptoscope/pkg/logger"
	"github.com/zappabad/cryptoscope/pkg/ratelimit"
)

// MinWords is the shortest stream chunk kept. Shorter chunks are progress
// markers and fragments rather than tweet text.
const MinWords = 3

// Config holds the Datura search settings.
type Config struct {
	APIKey              string
	URL                 string
	Model               string
	DateFilter          string
	Tools               []string
	MaxRequestPerMinute int
	Timeout             time.Duration
}

// DefaultConfig searches Twitter over the past day.
func DefaultConfig() Config {
	return Config{
		URL:                 "https://apis.datura.ai/desearch/ai/search",
		Model:               "ORBIT",
		DateFilter:          "PAST_24_HOURS",
		Tools:               []string{"Twitter Search"},
		MaxRequestPerMinute: 10,
		Timeout:             90 * time.Second,
	}
}

// Request is the search request body.
type Request struct {
	DateFilter    string   `json:"date_filter"`
	Model         string   `json:"model"`
	Prompt        string   `json:"prompt"`
	ResponseOrder string   `json:"response_order"`
	Streaming     bool     `json:"streaming"`
	Tools         []string `json:"tools"`
}

type chunk struct {
	Content any `json:"content"`
}

// Client calls the Datura AI search endpoint.
type Client struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
	log     *logger.Logger
}

// NewClient creates a Datura client.
func NewClient(cfg Config, log *logger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Client{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: ratelimit.NewRequestLimiter(cfg.MaxRequestPerMinute),
		log:     log.Named("datura"),
	}
}

// Search streams the answer for prompt and returns the kept text chunks.
func (c *Client) Search(ctx context.Context, prompt string) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	body, err := json.Marshal(Request{
		DateFilter:    c.cfg.DateFilter,
		Model:         c.cfg.Model,
		Prompt:        prompt,
		ResponseOrder: "SUMMARY_FIRST",
		Streaming:     true,
		Tools:         c.cfg.Tools,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Authorization", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return nil, fmt.Errorf("datura api error (status %d): %s", res.StatusCode, string(msg))
	}

	contents, skipped, err := ParseStream(res.Body)
	if skipped > 0 {
		c.log.Warn("Skipped undecodable stream lines", logger.IntField("count", skipped))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stream: %w", err)
	}
	c.log.Debug("Datura search done", logger.StringField("prompt", prompt), logger.IntField("chunks", len(contents)))
	return contents, nil
}

// ParseStream reads server-sent event lines and returns the string contents
// of "data:" events with at least MinWords words. Lines that are not data
// events are ignored; data events that are not JSON are counted in skipped.
func ParseStream(r io.Reader) (contents []string, skipped int, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		payload, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		payload = strings.TrimSpace(payload)
		if payload == "" || payload == "[DONE]" {
			continue
		}

		var ch chunk
		if err := json.Unmarshal([]byte(payload), &ch); err != nil {
			skipped++
			continue
		}
		text, ok := ch.Content.(string)
		if !ok || len(strings.Fields(text)) < MinWords {
			continue
		}
		contents = append(contents, text)
	}
	return contents, skipped, sc.Err()
}
