package oneinch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/feral-file/token-resolver/internal/adapter"
	"github.com/feral-file/token-resolver/internal/domain"
)

const ProviderName = "1inch"

// DefaultAPIURL is the 1inch developer API base URL.
const DefaultAPIURL = "https://api.1inch.dev"

// chainIDs maps canonical chain IDs to 1inch numeric chain IDs.
var chainIDs = map[domain.ChainID]int{
	domain.ChainEthereum:  1,
	domain.ChainBSC:       56,
	domain.ChainPolygon:   137,
	domain.ChainArbitrum:  42161,
	domain.ChainOptimism:  10,
	domain.ChainAvalanche: 43114,
	domain.ChainFantom:    250,
	domain.ChainBase:      8453,
	domain.ChainZkSync:    324,
	domain.ChainScroll:    534352,
}

// tokenDTO is one token entry of the search endpoint response
type tokenDTO struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
}

// searchResponse is the response of the token search endpoint
type searchResponse struct {
	Tokens []tokenDTO `json:"tokens"`
}

// Client resolves symbols against the 1inch token search API.
type Client struct {
	httpClient adapter.HTTPClient
	json       adapter.JSON
	apiURL     string
	apiKey     string
}

// NewClient creates a new 1inch client.
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

// Resolve searches the chain's token list and returns the first match.
func (c *Client) Resolve(ctx context.Context, query string, chain domain.ChainID) (*domain.TokenRecord, error) {
	chainID, ok := chainIDs[chain]
	if !ok {
		return nil, domain.ErrNotFound
	}

	endpoint := fmt.Sprintf("%s/token/v1.2/%d/search", c.apiURL, chainID)
	params := url.Values{
		"query": []string{query},
		"limit": []string{strconv.Itoa(1)},
	}

	body, err := c.httpClient.GetBytes(ctx, endpoint, params, c.headers())
	if err != nil {
		if adapter.IsNotFound(err) {
			return nil, domain.ErrNotFound
		}
		var se *adapter.StatusError
		if errors.As(err, &se) {
			if se.Code == http.StatusTooManyRequests {
				return nil, &domain.RateLimitError{Provider: ProviderName}
			}
			return nil, &domain.ProviderError{Provider: ProviderName, StatusCode: se.Code, Message: se.Body}
		}
		return nil, &domain.ProviderError{Provider: ProviderName, Message: err.Error()}
	}

	var response searchResponse
	if err := c.json.Unmarshal(body, &response); err != nil {
		return nil, &domain.ProviderError{Provider: ProviderName, Message: fmt.Sprintf("failed to unmarshal search response: %v", err)}
	}

	if len(response.Tokens) == 0 {
		return nil, domain.ErrNotFound
	}

	token := response.Tokens[0]
	contract := domain.NormalizeAddress(token.Address)
	decimals := token.Decimals
	if decimals == 0 {
		decimals = 18
	}

	return &domain.TokenRecord{
		Symbol:   strings.ToUpper(token.Symbol),
		Contract: &contract,
		Name:     token.Name,
		Decimals: decimals,
		Verified: false,
		Source:   ProviderName,
	}, nil
}

func (c *Client) headers() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + c.apiKey}
}
