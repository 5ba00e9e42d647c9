package analysis

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks r against the AnalysisResult shape. It returns a *ShapeError
// (matching ErrMalformed) listing every problem, or nil.
func (r *AnalysisResult) Validate() error {
	if r == nil {
		return &ShapeError{Problems: []string{"result is empty"}}
	}

	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(r.Coin) == "" {
		add("coin is missing")
	}
	if strings.TrimSpace(r.Ticker) == "" {
		add("ticker is missing")
	}

	sa := r.SentimentAnalysis
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"positivePercentage", sa.PositivePercentage},
		{"neutralPercentage", sa.NeutralPercentage},
		{"negativePercentage", sa.NegativePercentage},
	} {
		if p.value < 0 || p.value > 100 {
			add("%s %v is outside 0-100", p.name, p.value)
		}
	}

	for _, t := range []struct {
		name  string
		value *float64
	}{
		{"shortTermDipTarget", r.PriceTargets.ShortTermDipTarget},
		{"shortTermDipTargetRange", r.PriceTargets.ShortTermDipTargetRange},
		{"midTermTarget", r.PriceTargets.MidTermTarget},
		{"longTermTarget", r.PriceTargets.LongTermTarget},
	} {
		if t.value != nil && *t.value < 0 {
			add("%s is negative", t.name)
		}
	}

	checkTweets := func(field string, tweets []Tweet) {
		for i, t := range tweets {
			if strings.TrimSpace(t.Tweet) == "" {
				add("%s[%d] has no text", field, i)
			}
			if !t.Sentiment.Valid() {
				add("%s[%d] has unknown sentiment %q", field, i, t.Sentiment)
			}
			if t.Link != "" && !IsHTTPURL(t.Link) {
				add("%s[%d] link %q is not an http(s) URL", field, i, t.Link)
			}
		}
	}
	checkTweets("keyTweets", r.KeyTweets)
	checkTweets("examples.positive", sa.Examples.Positive)
	checkTweets("examples.negative", sa.Examples.Negative)

	for i, c := range r.Catalysts {
		if strings.TrimSpace(c.Description) == "" {
			add("catalysts[%d] has no description", i)
		}
	}
	for i, c := range r.Risks {
		if strings.TrimSpace(c.Description) == "" {
			add("risks[%d] has no description", i)
		}
	}

	for i, u := range r.SourceURLs {
		if !IsHTTPURL(u) {
			add("sourceURLs[%d] %q is not an http(s) URL", i, u)
		}
	}

	if len(problems) > 0 {
		return &ShapeError{Problems: problems}
	}
	return nil
}

// IsHTTPURL reports whether raw is an absolute http or https URL.
func IsHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
