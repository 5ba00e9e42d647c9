package synth

import (
	"fmt"
	"strings"
)

// Input is everything the model sees about one asset.
type Input struct {
	Coin    string
	Ticker  string
	Date    string
	Tweets  []string
	Sources []string
	// Topic marks a market segment rather than a single coin.
	Topic bool
}

func BuildPrompt(in Input) string {
	var tweets strings.Builder
	if len(in.Tweets) == 0 {
		tweets.WriteString("(no tweets found)\n")
	}
	for i, t := range in.Tweets {
		fmt.Fprintf(&tweets, "%d. %s\n", i+1, strings.TrimSpace(t))
	}

	var sources strings.Builder
	if len(in.Sources) == 0 {
		sources.WriteString("(no web or news results)\n")
	}
	for i, s := range in.Sources {
		fmt.Fprintf(&sources, "%d. %s\n", i+1, s)
	}

	subject := fmt.Sprintf("%s (%s)", in.Coin, in.Ticker)
	var extraRules string
	if in.Topic {
		subject = fmt.Sprintf("the %s segment of the crypto market", in.Coin)
		extraRules = "- This is a market segment, not a single coin. Omit priceTargets and list the segment's leading coins in relatedCoins.\n"
	}

	promptTemplate := `You are a cryptocurrency market analyst. Below is social media and news coverage of %s from the last 24 hours.

Twitter coverage:
%s
Web and news results (title - url):
%s
Based only on the information above, answer with a single JSON object with this structure:

{
  "coin": "%s",
  "ticker": "%s",
  "date": "%s",
  "summary": "<one paragraph overview of current sentiment>",
  "sentimentAnalysis": {
    "positivePercentage": <number 0-100>,
    "neutralPercentage": <number 0-100>,
    "negativePercentage": <number 0-100>,
    "score": <number 0-10, 10 is most bullish>,
    "positiveKeywords": ["<string>"],
    "negativeKeywords": ["<string>"],
    "examples": {
      "positive": [{"user": "<display name>", "handle": "@<handle>", "tweet": "<text>", "sentiment": "positive"}],
      "negative": [{"user": "<display name>", "handle": "@<handle>", "tweet": "<text>", "sentiment": "negative"}]
    }
  },
  "priceTargets": {
    "shortTermDipTarget": <number or omit>,
    "shortTermDipTargetRange": <number or omit>,
    "midTermTarget": <number or omit>,
    "longTermTarget": <number or omit>
  },
  "catalysts": [{"description": "<string>", "source": "<publication>"}],
  "risks": [{"description": "<string>", "source": "<publication>"}],
  "trends": {
    "tweetVolumeChange": "<e.g. +25%% in last 24h>",
    "emergingNarratives": ["<string>"],
    "relatedCoins": ["<TICKER>"]
  },
  "keyTweets": [{"user": "<display name>", "handle": "@<handle>", "tweet": "<text>", "link": "<https url or omit>", "sentiment": "positive | neutral | negative"}]
}

Rules:
- Percentages are numbers without a percent sign.
- Omit a price target that the coverage does not support. Never invent one.
- Use only URLs that appear above for tweet links.
- Answer with JSON only.
%s`
	return fmt.Sprintf(promptTemplate,
		subject,
		tweets.String(), sources.String(),
		in.Coin, in.Ticker, in.Date,
		extraRules,
	)
}
