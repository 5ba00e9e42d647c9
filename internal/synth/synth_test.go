package synth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/cryptoscope/internal/analysis"
	"github.com/zappabad/cryptoscope/pkg/logger"
)

type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(Input{
		Coin:    "Dogecoin",
		Ticker:  "DOGE",
		Date:    "2024-03-14",
		Tweets:  []string{"Whales moved a billion DOGE overnight"},
		Sources: []string{"Doge rallies - https://news.example/1"},
	})

	assert.Contains(t, p, "Dogecoin (DOGE)")
	assert.Contains(t, p, "1. Whales moved a billion DOGE overnight")
	assert.Contains(t, p, "1. Doge rallies - https://news.example/1")
	assert.Contains(t, p, `"date": "2024-03-14"`)
	assert.Contains(t, p, "+25% in last 24h")
	assert.NotContains(t, p, "%!")
	assert.NotContains(t, p, "market segment")
}

func TestBuildPromptForTopic(t *testing.T) {
	p := BuildPrompt(Input{
		Coin:   "DeFi",
		Ticker: "DEFI",
		Date:   "2024-03-14",
		Tweets: []string{"TVL is back above 100B"},
		Topic:  true,
	})

	assert.Contains(t, p, "coverage of the DeFi segment of the crypto market")
	assert.NotContains(t, p, "DeFi (DEFI)")
	assert.Contains(t, p, `"ticker": "DEFI"`)
	assert.Contains(t, p, "Omit priceTargets")
	assert.NotContains(t, p, "%!")
}

func TestBuildPromptWithoutCoverage(t *testing.T) {
	p := BuildPrompt(Input{Coin: "Toncoin", Ticker: "TON"})
	assert.Contains(t, p, "(no tweets found)")
	assert.Contains(t, p, "(no web or news results)")
}

func TestParseResponse(t *testing.T) {
	raw, err := json.Marshal(analysis.Fixture())
	require.NoError(t, err)

	for name, text := range map[string]string{
		"plain":  string(raw),
		"fenced": "```json\n" + string(raw) + "\n```",
		"prose":  "Here is the analysis:\n" + string(raw) + "\nLet me know if you need more.",
	} {
		t.Run(name, func(t *testing.T) {
			res, err := ParseResponse(text)
			require.NoError(t, err)
			assert.Equal(t, analysis.Fixture(), res)
		})
	}
}

func TestParseResponseMalformed(t *testing.T) {
	for _, text := range []string{"", "I cannot help with that", "{\"coin\": ", "```json\n[1,2]\n```"} {
		_, err := ParseResponse(text)
		assert.ErrorIs(t, err, analysis.ErrMalformed, text)
	}
}

func TestSynthesize(t *testing.T) {
	raw, err := json.Marshal(analysis.Fixture())
	require.NoError(t, err)

	var prompt string
	s := New(generatorFunc(func(_ context.Context, p string) (string, error) {
		prompt = p
		return string(raw), nil
	}), logger.NewNop())

	res, err := s.Synthesize(context.Background(), Input{Coin: "Bitcoin", Ticker: "BTC"})
	require.NoError(t, err)
	assert.Equal(t, "BTC", res.Ticker)
	assert.Contains(t, prompt, "Bitcoin (BTC)")
}

func TestSynthesizePassesGeneratorErrors(t *testing.T) {
	boom := errors.New("quota exhausted")
	s := New(generatorFunc(func(context.Context, string) (string, error) {
		return "", boom
	}), logger.NewNop())

	_, err := s.Synthesize(context.Background(), Input{})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, analysis.ErrMalformed)
}
