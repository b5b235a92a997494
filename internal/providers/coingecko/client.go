package coingecko

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/feral-file/token-resolver/internal/adapter"
	"github.com/feral-file/token-resolver/internal/domain"
)

const ProviderName = "coingecko"

// DefaultAPIURL is the free-tier CoinGecko API base URL.
const DefaultAPIURL = "https://api.coingecko.com/api/v3"

// platformIDs maps canonical chain IDs to CoinGecko platform IDs.
var platformIDs = map[domain.ChainID]string{
	domain.ChainEthereum:  "ethereum",
	domain.ChainBSC:       "binance-smart-chain",
	domain.ChainPolygon:   "polygon-pos",
	domain.ChainArbitrum:  "arbitrum-one",
	domain.ChainOptimism:  "optimistic-ethereum",
	domain.ChainAvalanche: "avalanche",
	domain.ChainFantom:    "fantom",
	domain.ChainBase:      "base",
	domain.ChainZkSync:    "zksync",
	domain.ChainScroll:    "scroll",
}

// searchResponse is the response of the /search endpoint
type searchResponse struct {
	Coins []struct {
		ID     string `json:"id"`
		Symbol string `json:"symbol"`
		Name   string `json:"name"`
	} `json:"coins"`
}

// contractResponse is the response of the /coins/{id}/contract/{platform} endpoint
type contractResponse struct {
	ContractAddress string `json:"contract_address"`
	Name            string `json:"name"`
	Symbol          string `json:"symbol"`
	Platform        struct {
		ID string `json:"id"`
	} `json:"platform"`
	DetailPlatforms map[string]struct {
		DecimalPlace    *int   `json:"decimal_place"`
		ContractAddress string `json:"contract_address"`
	} `json:"detail_platforms"`
}

// Client resolves symbols against the CoinGecko API in two steps:
// a coin-ID search followed by the per-platform contract lookup.
type Client struct {
	httpClient adapter.HTTPClient
	json       adapter.JSON
	apiURL     string
	apiKey     string
}

// NewClient creates a new CoinGecko client. apiKey may be empty for the
// keyless free tier.
func NewClient(httpClient adapter.HTTPClient, json adapter.JSON, apiURL string, apiKey string) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{
		httpClient: httpClient,
		json:       json,
		apiURL:     apiURL,
		apiKey:     apiKey,
	}
}

// Name identifies the provider.
func (c *Client) Name() string {
	return ProviderName
}

// Resolve searches for the coin ID matching the query, then fetches the
// contract address on the requested chain.
func (c *Client) Resolve(ctx context.Context, query string, chain domain.ChainID) (*domain.TokenRecord, error) {
	platformID, ok := platformIDs[chain]
	if !ok {
		// Chain unsupported by this provider; let the chain fall through
		return nil, domain.ErrNotFound
	}

	coinID, err := c.searchCoin(ctx, query)
	if err != nil {
		return nil, err
	}

	return c.contractOnPlatform(ctx, coinID, platformID)
}

func (c *Client) searchCoin(ctx context.Context, query string) (string, error) {
	params := url.Values{"query": []string{query}}

	body, err := c.httpClient.GetBytes(ctx, c.apiURL+"/search", params, c.headers())
	if err != nil {
		return "", c.wrap(err)
	}

	var response searchResponse
	if err := c.json.Unmarshal(body, &response); err != nil {
		return "", &domain.ProviderError{Provider: ProviderName, Message: fmt.Sprintf("failed to unmarshal search response: %v", err)}
	}

	if len(response.Coins) == 0 {
		return "", domain.ErrNotFound
	}

	// First match is usually the most relevant
	return response.Coins[0].ID, nil
}

func (c *Client) contractOnPlatform(ctx context.Context, coinID, platformID string) (*domain.TokenRecord, error) {
	endpoint := fmt.Sprintf("%s/coins/%s/contract/%s", c.apiURL, coinID, platformID)

	body, err := c.httpClient.GetBytes(ctx, endpoint, nil, c.headers())
	if err != nil {
		return nil, c.wrap(err)
	}

	var response contractResponse
	if err := c.json.Unmarshal(body, &response); err != nil {
		return nil, &domain.ProviderError{Provider: ProviderName, Message: fmt.Sprintf("failed to unmarshal contract response: %v", err)}
	}

	if response.ContractAddress == "" {
		return nil, domain.ErrNotFound
	}

	contract := domain.NormalizeAddress(response.ContractAddress)
	decimals := 18
	if detail, ok := response.DetailPlatforms[platformID]; ok && detail.DecimalPlace != nil {
		decimals = *detail.DecimalPlace
	}

	return &domain.TokenRecord{
		Symbol:   strings.ToUpper(response.Symbol),
		Contract: &contract,
		Name:     response.Name,
		Decimals: decimals,
		Verified: true,
		Source:   ProviderName,
	}, nil
}

func (c *Client) headers() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{"x-cg-demo-api-key": c.apiKey}
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
