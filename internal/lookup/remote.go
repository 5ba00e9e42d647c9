package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zappabad/cryptoscope/internal/analysis"
)

// Remote queries a CryptoScope API server.
type Remote struct {
	baseURL string
	client  *http.Client
}

// NewRemote creates a lookup against the API at baseURL, e.g. http://localhost:8080.
func NewRemote(baseURL string, timeout time.Duration) *Remote {
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (r *Remote) Lookup(ctx context.Context, query string) (*analysis.AnalysisResult, error) {
	endpoint := r.baseURL + "/api/v1/analysis?" + url.Values{"query": {query}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, analysis.Transient(query, fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, analysis.Transient(query, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, analysis.Transient(query, fmt.Errorf("failed to read response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusBadRequest:
		return nil, analysis.NotFound(query)
	case resp.StatusCode == http.StatusInternalServerError:
		return nil, analysis.Malformed(query, remoteError(resp.StatusCode, body))
	default:
		return nil, analysis.Transient(query, remoteError(resp.StatusCode, body))
	}

	var result analysis.AnalysisResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, analysis.Malformed(query, fmt.Errorf("failed to decode analysis: %w", err))
	}
	if err := result.Validate(); err != nil {
		return nil, analysis.Malformed(query, err)
	}
	return &result, nil
}

func remoteError(status int, body []byte) error {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
		return fmt.Errorf("server returned %d: %s", status, eb.Error)
	}
	return errors.New("server returned " + http.StatusText(status))
}
