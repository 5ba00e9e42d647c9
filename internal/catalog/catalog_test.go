package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	c := New(DefaultAssets())

	cases := map[string]string{
		"Bitcoin Analysis":   "BTC",
		"Ethereum Trends":    "ETH",
		"eth":                "ETH",
		"$SOL to the moon":   "SOL",
		"  doge coin  ":      "DOGE",
		"Shiba Inu pumps":    "SHIB",
		"what about ripple?": "XRP",
		"XBT":                "BTC",
		"DeFi Projects":      "DEFI",
		"NFT Market":         "NFT",
	}
	for query, ticker := range cases {
		t.Run(query, func(t *testing.T) {
			asset, err := c.Resolve(query)
			require.NoError(t, err)
			assert.Equal(t, ticker, asset.Ticker)
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	c := New(DefaultAssets())

	for _, q := range []string{"", "   ", "Stock Market", "Layer 2 rollups"} {
		_, err := c.Resolve(q)
		assert.ErrorIs(t, err, ErrUnknownAsset, q)
	}
}

func TestSegmentsAreTopics(t *testing.T) {
	c := New(DefaultAssets())

	asset, err := c.Resolve("decentralized finance yields")
	require.NoError(t, err)
	assert.Equal(t, "DEFI", asset.Ticker)
	assert.True(t, asset.Topic)

	asset, err = c.Resolve("Bitcoin")
	require.NoError(t, err)
	assert.False(t, asset.Topic)
}

func TestTopic(t *testing.T) {
	cases := map[string]string{
		"Layer 2 rollups":       "L2R",
		"  restaking ":          "RESTAK",
		"memecoins":             "MEMECO",
		"AI agents":             "AA",
		"real world asset fund": "RWAF",
	}
	for query, label := range cases {
		t.Run(query, func(t *testing.T) {
			asset, err := Topic(query)
			require.NoError(t, err)
			assert.Equal(t, label, asset.Ticker)
			assert.True(t, asset.Topic)
			assert.NotEmpty(t, asset.Name)
		})
	}

	asset, err := Topic("  Layer   2 rollups ")
	require.NoError(t, err)
	assert.Equal(t, "Layer 2 rollups", asset.Name)

	_, err = Topic(" ?! ")
	assert.ErrorIs(t, err, ErrUnknownAsset)
}

func TestFirstMentionWins(t *testing.T) {
	c := New(DefaultAssets())

	asset, err := c.Resolve("ETH vs BTC")
	require.NoError(t, err)
	assert.Equal(t, "ETH", asset.Ticker)
}
