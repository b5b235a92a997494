package etherscan

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/feral-file/token-resolver/internal/adapter"
	"github.com/feral-file/token-resolver/internal/domain"
)

const ProviderName = "etherscan"

// baseURLs maps each chain to its Etherscan-family explorer API.
var baseURLs = map[domain.ChainID]string{
	domain.ChainEthereum:  "https://api.etherscan.io/api",
	domain.ChainBSC:       "https://api.bscscan.com/api",
	domain.ChainPolygon:   "https://api.polygonscan.com/api",
	domain.ChainArbitrum:  "https://api.arbiscan.io/api",
	domain.ChainOptimism:  "https://api-optimistic.etherscan.io/api",
	domain.ChainAvalanche: "https://api.snowtrace.io/api",
	domain.ChainFantom:    "https://api.ftmscan.com/api",
	domain.ChainBase:      "https://api.basescan.org/api",
}

// symbolPattern extracts a symbol literal from verified source code.
// Explorer APIs expose no structured symbol field on getsourcecode.
var symbolPattern = regexp.MustCompile(`(?i)symbol\s*[:=]\s*["']([^"']+)["']`)

// sourceCodeResponse is the getsourcecode envelope
type sourceCodeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  []struct {
		ContractName string `json:"ContractName"`
		SourceCode   string `json:"SourceCode"`
		Proxy        string `json:"Proxy"`
	} `json:"result"`
}

// Client looks up contract metadata on Etherscan-family explorers. The
// explorer APIs have no symbol search, so this provider only answers
// when the query is already a contract address.
type Client struct {
	httpClient adapter.HTTPClient
	json       adapter.JSON
	apiKeys    map[domain.ChainID]string
}

// NewClient creates a new Etherscan-family client. apiKeys maps chains
// to their explorer API keys; chains without a key are skipped.
func NewClient(httpClient adapter.HTTPClient, json adapter.JSON, apiKeys map[domain.ChainID]string) *Client {
	return &Client{
		httpClient: httpClient,
		json:       json,
		apiKeys:    apiKeys,
	}
}

// Name identifies the provider.
func (c *Client) Name() string {
	return ProviderName
}

// Resolve fetches verified-source metadata for a contract address.
// Non-address queries return not-found so the chain moves on.
func (c *Client) Resolve(ctx context.Context, query string, chain domain.ChainID) (*domain.TokenRecord, error) {
	if !domain.IsEVMAddress(query) {
		return nil, domain.ErrNotFound
	}

	baseURL, ok := baseURLs[chain]
	if !ok {
		return nil, domain.ErrNotFound
	}
	apiKey := c.apiKeys[chain]
	if apiKey == "" {
		return nil, domain.ErrNotFound
	}

	address := domain.NormalizeAddress(query)
	params := url.Values{
		"module":  []string{"contract"},
		"action":  []string{"getsourcecode"},
		"address": []string{address},
		"apikey":  []string{apiKey},
	}

	body, err := c.httpClient.GetBytes(ctx, baseURL, params, nil)
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

	var response sourceCodeResponse
	if err := c.json.Unmarshal(body, &response); err != nil {
		return nil, &domain.ProviderError{Provider: ProviderName, Message: "failed to unmarshal getsourcecode response: " + err.Error()}
	}

	if response.Status != "1" || len(response.Result) == 0 {
		return nil, domain.ErrNotFound
	}

	result := response.Result[0]
	symbol := ""
	if match := symbolPattern.FindStringSubmatch(result.SourceCode); match != nil {
		symbol = strings.ToUpper(match[1])
	}

	return &domain.TokenRecord{
		Symbol:   symbol,
		Contract: &address,
		Name:     result.ContractName,
		Decimals: 18,
		Verified: result.Proxy == "0" && result.SourceCode != "",
		Source:   ProviderName,
	}, nil
}
