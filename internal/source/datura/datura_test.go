package datura

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/cryptoscope/pkg/logger"
)

const stream = `event: start
data: {"type":"start","content":"ok"}

data: {"type":"text","content":"Dogecoin holders are excited about payments"}
data: {"type":"text","content":"two words"}
data: {"type":"tweets","content":[{"id":"1"}]}
data: not json at all
data: {"type":"text","content":"  Whales moved   a billion DOGE overnight  "}
: keep-alive
data: [DONE]
`

func TestParseStreamKeepsLongDataContents(t *testing.T) {
	contents, skipped, err := ParseStream(strings.NewReader(stream))
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, []string{
		"Dogecoin holders are excited about payments",
		"  Whales moved   a billion DOGE overnight  ",
	}, contents)
}

func TestParseStreamEmpty(t *testing.T) {
	contents, skipped, err := ParseStream(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Empty(t, contents)
}

func TestSearchSendsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "dt_key", r.Header.Get("Authorization"))

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, Request{
			DateFilter:    "PAST_24_HOURS",
			Model:         "ORBIT",
			Prompt:        "Dogecoin sentiment",
			ResponseOrder: "SUMMARY_FIRST",
			Streaming:     true,
			Tools:         []string{"Twitter Search"},
		}, req)

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, stream)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.APIKey = "dt_key"
	cfg.URL = srv.URL
	cfg.MaxRequestPerMinute = 0

	contents, err := NewClient(cfg, logger.NewNop()).Search(context.Background(), "Dogecoin sentiment")
	require.NoError(t, err)
	assert.Len(t, contents, 2)
}

func TestSearchReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.URL = srv.URL
	_, err := NewClient(cfg, logger.NewNop()).Search(context.Background(), "btc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
