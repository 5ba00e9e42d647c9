package analysis

// Fixture returns the built-in demo result. Each call returns a fresh copy so
// callers can never alias one another's slices.
func Fixture() *AnalysisResult {
	return &AnalysisResult{
		Coin:    "Bitcoin",
		Ticker:  "BTC",
		Date:    "2024-03-14",
		Summary: "Bitcoin shows strong bullish sentiment with increasing institutional adoption...",
		SentimentAnalysis: SentimentAnalysis{
			PositivePercentage: 65,
			NeutralPercentage:  20,
			NegativePercentage: 15,
			Score:              7.5,
			PositiveKeywords:   []string{"adoption", "institutional", "bullish"},
			NegativeKeywords:   []string{"regulation", "volatility"},
			Examples: TweetExamples{
				Positive: []Tweet{{
					User:      "CryptoAnalyst",
					Handle:    "@cryptoanalyst",
					Tweet:     "Bitcoin's institutional adoption is accelerating!",
					Sentiment: SentimentPositive,
				}},
				Negative: []Tweet{{
					User:      "MarketWatcher",
					Handle:    "@marketwatcher",
					Tweet:     "Regulatory concerns still loom over crypto markets",
					Sentiment: SentimentNegative,
				}},
			},
		},
		PriceTargets: PriceTargets{
			ShortTermDipTarget:      Price(65000),
			ShortTermDipTargetRange: Price(68000),
			MidTermTarget:           Price(75000),
			LongTermTarget:          Price(100000),
		},
		Catalysts: []Event{{Description: "ETF approval expected soon", Source: "Financial Times"}},
		Risks:     []Event{{Description: "Potential regulatory challenges", Source: "Reuters"}},
		Trends: Trends{
			TweetVolumeChange:  "+25% in last 24h",
			EmergingNarratives: []string{"ETF Approval", "Institutional Buying"},
			RelatedCoins:       []string{"ETH", "SOL", "BNB"},
		},
		KeyTweets: []Tweet{{
			User:      "Crypto Influencer",
			Handle:    "@cryptoinfluencer",
			Tweet:     "Bitcoin breaking new highs!",
			Link:      "https://twitter.com/example",
			Sentiment: SentimentPositive,
		}},
		SourceURLs: []string{
			"https://example.com/bitcoin-analysis",
			"https://example.com/market-report",
		},
	}
}
