package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtureIsValid(t *testing.T) {
	require.NoError(t, Fixture().Validate())
}

func TestFixtureReturnsIndependentCopies(t *testing.T) {
	a := Fixture()
	b := Fixture()
	a.KeyTweets[0].Tweet = "changed"
	*a.PriceTargets.MidTermTarget = 1

	assert.Equal(t, "Bitcoin breaking new highs!", b.KeyTweets[0].Tweet)
	assert.Equal(t, 75000.0, *b.PriceTargets.MidTermTarget)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	r := Fixture()
	r.Coin = ""
	r.SentimentAnalysis.PositivePercentage = 120
	r.PriceTargets.LongTermTarget = Price(-5)
	r.KeyTweets[0].Sentiment = "ecstatic"
	r.KeyTweets[0].Link = "not a url"
	r.Risks[0].Description = " "
	r.SourceURLs = append(r.SourceURLs, "ftp://example.com/x")

	err := r.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)

	var shape *ShapeError
	require.True(t, errors.As(err, &shape))
	assert.Len(t, shape.Problems, 7)
}

func TestValidateAllowsAbsentTargetsAndUnbalancedPercentages(t *testing.T) {
	r := Fixture()
	r.PriceTargets = PriceTargets{}
	r.SentimentAnalysis.PositivePercentage = 90
	r.SentimentAnalysis.NeutralPercentage = 90
	r.KeyTweets[0].Sentiment = ""

	assert.NoError(t, r.Validate())
}

func TestValidateNilResult(t *testing.T) {
	var r *AnalysisResult
	assert.ErrorIs(t, r.Validate(), ErrMalformed)
}

func TestLookupErrorKinds(t *testing.T) {
	cause := errors.New("dial tcp: refused")

	cases := []struct {
		err  error
		kind ErrorKind
		is   error
	}{
		{NotFound("doge"), KindNotFound, ErrNotFound},
		{Transient("doge", cause), KindTransient, ErrTransient},
		{Malformed("doge", &ShapeError{Problems: []string{"coin is missing"}}), KindMalformed, ErrMalformed},
	}
	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			wrapped := fmt.Errorf("submit: %w", tc.err)
			assert.ErrorIs(t, wrapped, tc.is)
			assert.Equal(t, tc.kind, KindOf(wrapped))
		})
	}

	assert.ErrorIs(t, Transient("doge", cause), cause)
	assert.Equal(t, KindTransient, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, `no analysis found for "doge"`, NotFound("doge").Error())
}

func TestJSONUsesCamelCaseAndOmitsAbsentTargets(t *testing.T) {
	r := Fixture()
	r.PriceTargets.MidTermTarget = nil

	raw, err := json.Marshal(r)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))

	sa, ok := generic["sentimentAnalysis"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 65.0, sa["positivePercentage"])

	targets, ok := generic["priceTargets"].(map[string]any)
	require.True(t, ok)
	_, present := targets["midTermTarget"]
	assert.False(t, present)
	assert.Equal(t, 100000.0, targets["longTermTarget"])
}
