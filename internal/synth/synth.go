package synth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/zappabad/cryptoscope/internal/analysis"
	"github.com/zappabad/cryptoscope/pkg/logger"
	"github.com/zappabad/cryptoscope/pkg/ratelimit"
)

// ErrEmptyResponse is returned when the model answers without text.
var ErrEmptyResponse = errors.New("no content found in Gemini response")

// Generator turns a prompt into model text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config holds the Gemini settings.
type Config struct {
	APIKey              string
	Model               string
	MaxRequestPerMinute int
}

// Gemini generates JSON answers with the Gemini API.
type Gemini struct {
	client         *genai.Client
	model          string
	requestLimiter *rate.Limiter
	log            *logger.Logger
}

// NewGemini wraps an existing genai client.
func NewGemini(client *genai.Client, cfg Config, log *logger.Logger) *Gemini {
	return &Gemini{
		client:         client,
		model:          cfg.Model,
		requestLimiter: ratelimit.NewRequestLimiter(cfg.MaxRequestPerMinute),
		log:            log.Named("gemini"),
	}
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if err := g.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		g.log.Error("Failed to generate content", logger.ErrorField(err), logger.StringField("model", g.model))
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	g.log.Debug("Gemini response", logger.StringField("model", g.model), logger.DurationField("took", time.Since(start)))

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}

// Synthesizer asks a Generator for an AnalysisResult.
type Synthesizer struct {
	gen Generator
	log *logger.Logger
}

// New creates a synthesizer on top of gen.
func New(gen Generator, log *logger.Logger) *Synthesizer {
	return &Synthesizer{gen: gen, log: log.Named("synth")}
}

// Synthesize builds the prompt for in and parses the answer. Parse failures
// match analysis.ErrMalformed; generator failures are returned as is.
func (s *Synthesizer) Synthesize(ctx context.Context, in Input) (*analysis.AnalysisResult, error) {
	text, err := s.gen.Generate(ctx, BuildPrompt(in))
	if err != nil {
		return nil, err
	}
	result, err := ParseResponse(text)
	if err != nil {
		s.log.Error("Failed to parse synthesized analysis", logger.ErrorField(err), logger.StringField("response", text))
		return nil, err
	}
	return result, nil
}

// ParseResponse decodes model text into an AnalysisResult. Markdown code
// fences and prose around the JSON object are ignored.
func ParseResponse(text string) (*analysis.AnalysisResult, error) {
	raw := strings.TrimSpace(text)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON object in response", analysis.ErrMalformed)
	}

	var result analysis.AnalysisResult
	if err := json.Unmarshal([]byte(raw[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal analysis: %w", analysis.ErrMalformed, err)
	}
	return &result, nil
}
