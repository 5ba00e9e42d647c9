package analysis

// Sentiment labels a tweet.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Valid reports whether s is one of the known labels. Empty is treated as neutral.
func (s Sentiment) Valid() bool {
	switch s {
	case "", SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// Normalized returns s with empty mapped to neutral.
func (s Sentiment) Normalized() Sentiment {
	if s == "" {
		return SentimentNeutral
	}
	return s
}

// Tweet is one social-media post with a sentiment label.
type Tweet struct {
	User      string    `json:"user"`
	Handle    string    `json:"handle"`
	Tweet     string    `json:"tweet"`
	Link      string    `json:"link,omitempty"`
	Sentiment Sentiment `json:"sentiment,omitempty"`
}

// TweetExamples groups example tweets by polarity.
type TweetExamples struct {
	Positive []Tweet `json:"positive"`
	Negative []Tweet `json:"negative"`
}

// SentimentAnalysis holds the sentiment breakdown. Percentages are 0-100 and
// are not required to sum to 100.
type SentimentAnalysis struct {
	PositivePercentage float64       `json:"positivePercentage"`
	NeutralPercentage  float64       `json:"neutralPercentage"`
	NegativePercentage float64       `json:"negativePercentage"`
	Score              float64       `json:"score,omitempty"`
	PositiveKeywords   []string      `json:"positiveKeywords"`
	NegativeKeywords   []string      `json:"negativeKeywords"`
	Examples           TweetExamples `json:"examples"`
}

// PriceTargets holds optional price targets in USD. Nil means not available.
type PriceTargets struct {
	ShortTermDipTarget      *float64 `json:"shortTermDipTarget,omitempty"`
	ShortTermDipTargetRange *float64 `json:"shortTermDipTargetRange,omitempty"`
	MidTermTarget           *float64 `json:"midTermTarget,omitempty"`
	LongTermTarget          *float64 `json:"longTermTarget,omitempty"`
}

// Event is a catalyst or a risk with its attribution.
type Event struct {
	Description string `json:"description"`
	Source      string `json:"source"`
}

// Trends describes social momentum around the asset.
type Trends struct {
	TweetVolumeChange  string   `json:"tweetVolumeChange"`
	EmergingNarratives []string `json:"emergingNarratives"`
	RelatedCoins       []string `json:"relatedCoins"`
}

// AnalysisResult is the full set of display data for one queried asset.
// A result is built once and treated as immutable afterwards.
type AnalysisResult struct {
	Coin              string            `json:"coin"`
	Ticker            string            `json:"ticker"`
	Date              string            `json:"date"`
	Summary           string            `json:"summary"`
	SentimentAnalysis SentimentAnalysis `json:"sentimentAnalysis"`
	PriceTargets      PriceTargets      `json:"priceTargets"`
	Catalysts         []Event           `json:"catalysts"`
	Risks             []Event           `json:"risks"`
	Trends            Trends            `json:"trends"`
	KeyTweets         []Tweet           `json:"keyTweets"`
	SourceURLs        []string          `json:"sourceURLs"`
}

// Price returns a pointer to v, for building PriceTargets literals.
func Price(v float64) *float64 {
	return &v
}
