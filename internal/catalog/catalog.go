package catalog

import (
	"errors"
	"strings"
	"unicode"
)

// ErrUnknownAsset is returned when a query names no known asset.
var ErrUnknownAsset = errors.New("unknown asset")

// Asset is a cryptocurrency, or a market segment such as DeFi, that the
// lookup can analyse.
type Asset struct {
	Name    string
	Ticker  string
	Aliases []string
	// Topic marks a segment rather than a single coin.
	Topic bool
}

// DefaultAssets is the built-in asset list.
func DefaultAssets() []Asset {
	return []Asset{
		{Name: "Bitcoin", Ticker: "BTC", Aliases: []string{"xbt"}},
		{Name: "Ethereum", Ticker: "ETH", Aliases: []string{"ether"}},
		{Name: "Solana", Ticker: "SOL"},
		{Name: "BNB", Ticker: "BNB", Aliases: []string{"binance coin"}},
		{Name: "XRP", Ticker: "XRP", Aliases: []string{"ripple"}},
		{Name: "Cardano", Ticker: "ADA"},
		{Name: "Dogecoin", Ticker: "DOGE", Aliases: []string{"doge coin"}},
		{Name: "Toncoin", Ticker: "TON"},
		{Name: "Avalanche", Ticker: "AVAX"},
		{Name: "Chainlink", Ticker: "LINK"},
		{Name: "Polkadot", Ticker: "DOT"},
		{Name: "Litecoin", Ticker: "LTC"},
		{Name: "Shiba Inu", Ticker: "SHIB"},
		{Name: "DeFi", Ticker: "DEFI", Aliases: []string{"decentralized finance"}, Topic: true},
		{Name: "NFT", Ticker: "NFT", Aliases: []string{"nfts", "non fungible tokens"}, Topic: true},
	}
}

// maxLabel bounds the ticker-like label derived for free-form topics.
const maxLabel = 6

// Topic turns a query that names no known asset into a free-form topic.
// The label is built from the initials of the query's words, or from the
// start of its only word, so "Layer 2 rollups" becomes "L2R".
func Topic(query string) (Asset, error) {
	words := tokenize(query)
	if len(words) == 0 {
		return Asset{}, ErrUnknownAsset
	}

	var label string
	if len(words) == 1 {
		label = words[0]
	} else {
		for _, w := range words {
			label += string([]rune(w)[0])
		}
	}
	if r := []rune(label); len(r) > maxLabel {
		label = string(r[:maxLabel])
	}

	return Asset{
		Name:   strings.Join(strings.Fields(query), " "),
		Ticker: strings.ToUpper(label),
		Topic:  true,
	}, nil
}

// Catalog resolves free-text queries such as "Bitcoin Analysis", "eth" or
// "$SOL" to an Asset.
type Catalog struct {
	assets []Asset
	// phrase -> index into assets; phrases are normalized word sequences.
	phrases map[string]int
	longest int
}

// New builds a catalog. Earlier assets win when two share a phrase.
func New(assets []Asset) *Catalog {
	c := &Catalog{
		assets:  append([]Asset(nil), assets...),
		phrases: make(map[string]int),
	}
	for i, a := range c.assets {
		keys := append([]string{a.Name, a.Ticker}, a.Aliases...)
		for _, k := range keys {
			words := tokenize(k)
			if len(words) == 0 {
				continue
			}
			phrase := strings.Join(words, " ")
			if _, exists := c.phrases[phrase]; !exists {
				c.phrases[phrase] = i
			}
			if len(words) > c.longest {
				c.longest = len(words)
			}
		}
	}
	return c
}

// Assets returns a copy of the catalog's assets.
func (c *Catalog) Assets() []Asset {
	return append([]Asset(nil), c.assets...)
}

// Resolve finds the first asset mentioned in query. Longer phrases are tried
// before shorter ones at each position so "shiba inu" beats a bare "inu".
func (c *Catalog) Resolve(query string) (Asset, error) {
	words := tokenize(query)
	for start := range words {
		for n := min(c.longest, len(words)-start); n > 0; n-- {
			phrase := strings.Join(words[start:start+n], " ")
			if i, ok := c.phrases[phrase]; ok {
				return c.assets[i], nil
			}
		}
	}
	return Asset{}, ErrUnknownAsset
}

// tokenize lowercases s and splits it on anything that is not a letter or
// digit, so "$BTC," and "btc" produce the same token.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
