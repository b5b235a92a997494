package dexscreener

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/feral-file/token-resolver/internal/adapter"
	"github.com/feral-file/token-resolver/internal/cache"
	"github.com/feral-file/token-resolver/internal/domain"
)

const ProviderName = "dexscreener"

// DefaultAPIURL is the public DexScreener API base URL.
const DefaultAPIURL = "https://api.dexscreener.com/latest/dex"

// pairDTO is one pair entry in a DexScreener response. Numeric fields
// arrive as strings or numbers depending on the endpoint, so they are
// declared as json.Number-compatible strings and parsed leniently.
type pairDTO struct {
	ChainID   string `json:"chainId"`
	DexID     string `json:"dexId"`
	PairAddr  string `json:"pairAddress"`
	PriceUSD  string `json:"priceUsd"`
	PriceNat  string `json:"priceNative"`
	BaseToken struct {
		Address string `json:"address"`
		Name    string `json:"name"`
		Symbol  string `json:"symbol"`
	} `json:"baseToken"`
	Liquidity struct {
		USD float64 `json:"usd"`
	} `json:"liquidity"`
	Volume struct {
		H24 float64 `json:"h24"`
	} `json:"volume"`
	PriceChange struct {
		H24 float64 `json:"h24"`
	} `json:"priceChange"`
}

// pairsResponse is the envelope shared by the tokens and search endpoints
type pairsResponse struct {
	Pairs []pairDTO `json:"pairs"`
}

// Client is the DexScreener API client. Besides the uniform resolution
// operation it exposes the price surface consumed by the token
// registry: per-token pair snapshots, best-pair price, cross-chain
// search, and per-DEX price comparison. Successful price lookups are
// held in the in-process price cache.
type Client struct {
	httpClient adapter.HTTPClient
	json       adapter.JSON
	clock      adapter.Clock
	prices     *cache.PriceCache
	apiURL     string
}

// NewClient creates a new DexScreener client.
func NewClient(httpClient adapter.HTTPClient, json adapter.JSON, clock adapter.Clock, prices *cache.PriceCache, apiURL string) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{
		httpClient: httpClient,
		json:       json,
		clock:      clock,
		prices:     prices,
		apiURL:     apiURL,
	}
}

// Name identifies the provider.
func (c *Client) Name() string {
	return ProviderName
}

// Resolve searches for the query and returns the first token on the
// requested chain. DexScreener search spans all chains, so results must
// be filtered before use.
func (c *Client) Resolve(ctx context.Context, query string, chain domain.ChainID) (*domain.TokenRecord, error) {
	results, err := c.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	for _, token := range results {
		if token.Chain != chain {
			continue
		}
		contract := token.Address
		return &domain.TokenRecord{
			Symbol: strings.ToUpper(token.Symbol),
			// DexScreener does not expose decimals; 18 covers ERC-20 defaults
			Contract: &contract,
			Name:     token.Name,
			Decimals: 18,
			Verified: false,
			Source:   ProviderName,
		}, nil
	}

	return nil, domain.ErrNotFound
}

// TokenPairs returns all pairs for a token on one chain, sorted by
// liquidity descending. The most liquid pair is written to the price
// cache; a fresh cached snapshot short-circuits the upstream call.
func (c *Client) TokenPairs(ctx context.Context, chain domain.ChainID, address string) ([]*domain.TokenPrice, error) {
	if !domain.IsValidChain(chain) {
		return nil, &domain.InvalidChainError{Input: string(chain)}
	}

	key := domain.NewTokenKey(chain, address)
	if cached, ok := c.prices.Get(key); ok {
		return []*domain.TokenPrice{cached}, nil
	}

	endpoint := fmt.Sprintf("%s/tokens/%s", c.apiURL, key.Address)
	body, err := c.httpClient.GetBytes(ctx, endpoint, nil, nil)
	if err != nil {
		return nil, c.wrap(err)
	}

	var response pairsResponse
	if err := c.json.Unmarshal(body, &response); err != nil {
		return nil, &domain.ProviderError{Provider: ProviderName, Message: fmt.Sprintf("failed to unmarshal pairs response: %v", err)}
	}

	now := c.clock.Now()
	var results []*domain.TokenPrice
	for _, pair := range response.Pairs {
		// Only pairs from the requested chain
		if !strings.EqualFold(pair.ChainID, string(chain)) {
			continue
		}
		results = append(results, c.toPrice(chain, key.Address, pair, now))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].LiquidityUSD > results[j].LiquidityUSD
	})

	if len(results) == 0 {
		return nil, domain.ErrNotFound
	}

	c.prices.Put(key, results[0])
	return results, nil
}

// TokenPrice returns the most liquid pair's snapshot for a token, or
// domain.ErrNotFound when no pair exists on the chain.
func (c *Client) TokenPrice(ctx context.Context, chain domain.ChainID, address string) (*domain.TokenPrice, error) {
	pairs, err := c.TokenPairs(ctx, chain, address)
	if err != nil {
		return nil, err
	}
	return pairs[0], nil
}

// Search queries tokens by symbol or name across every chain, grouped
// by chain:address with liquidity summed over all pairs.
func (c *Client) Search(ctx context.Context, query string) ([]*domain.TokenSearchResult, error) {
	params := url.Values{"q": []string{query}}

	body, err := c.httpClient.GetBytes(ctx, c.apiURL+"/search", params, nil)
	if err != nil {
		return nil, c.wrap(err)
	}

	var response pairsResponse
	if err := c.json.Unmarshal(body, &response); err != nil {
		return nil, &domain.ProviderError{Provider: ProviderName, Message: fmt.Sprintf("failed to unmarshal search response: %v", err)}
	}

	grouped := make(map[string]*domain.TokenSearchResult)
	var order []string
	for _, pair := range response.Pairs {
		chain := domain.ChainID(strings.ToLower(pair.ChainID))
		address := domain.NormalizeAddress(pair.BaseToken.Address)
		key := domain.TokenKey{Chain: chain, Address: address}.String()

		token, ok := grouped[key]
		if !ok {
			token = &domain.TokenSearchResult{
				Chain:   chain,
				Address: address,
				Symbol:  pair.BaseToken.Symbol,
				Name:    pair.BaseToken.Name,
			}
			grouped[key] = token
			order = append(order, key)
		}
		token.PairsCount++
		token.TotalLiquidity += pair.Liquidity.USD
	}

	results := make([]*domain.TokenSearchResult, 0, len(order))
	for _, key := range order {
		results = append(results, grouped[key])
	}
	return results, nil
}

// ComparePrices returns the best pair per DEX for one token, for
// spotting cross-DEX spreads.
func (c *Client) ComparePrices(ctx context.Context, chain domain.ChainID, address string) ([]*domain.TokenPrice, error) {
	pairs, err := c.TokenPairs(ctx, chain, address)
	if err != nil {
		return nil, err
	}

	best := make(map[string]*domain.TokenPrice)
	var order []string
	for _, pair := range pairs {
		current, ok := best[pair.DexID]
		if !ok {
			best[pair.DexID] = pair
			order = append(order, pair.DexID)
			continue
		}
		if pair.LiquidityUSD > current.LiquidityUSD {
			best[pair.DexID] = pair
		}
	}

	results := make([]*domain.TokenPrice, 0, len(order))
	for _, dexID := range order {
		results = append(results, best[dexID])
	}
	return results, nil
}

func (c *Client) toPrice(chain domain.ChainID, address string, pair pairDTO, now time.Time) *domain.TokenPrice {
	dexID := pair.DexID
	if dexID == "" {
		dexID = "unknown"
	}
	return &domain.TokenPrice{
		Chain:          chain,
		Address:        address,
		Symbol:         pair.BaseToken.Symbol,
		Name:           pair.BaseToken.Name,
		PriceUSD:       parseFloat(pair.PriceUSD),
		PriceNative:    parseFloat(pair.PriceNat),
		LiquidityUSD:   pair.Liquidity.USD,
		Volume24h:      pair.Volume.H24,
		PriceChange24h: pair.PriceChange.H24,
		DexID:          dexID,
		PairAddress:    pair.PairAddr,
		FetchedAt:      now,
	}
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// wrap maps transport errors onto the provider error taxonomy.
func (c *Client) wrap(err error) error {
	if adapter.IsNotFound(err) {
		return domain.ErrNotFound
	}
	var se *adapter.StatusError
	if errors.As(err, &se) {
		if se.Code == http.StatusTooManyRequests {
			return &domain.RateLimitError{Provider: ProviderName}
		}
		return &domain.ProviderError{Provider: ProviderName, StatusCode: se.Code, Message: se.Body}
	}
	return &domain.ProviderError{Provider: ProviderName, Message: err.Error()}
}
