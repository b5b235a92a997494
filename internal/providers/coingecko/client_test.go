package coingecko_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/token-resolver/internal/adapter"
	"github.com/feral-file/token-resolver/internal/domain"
	"github.com/feral-file/token-resolver/internal/mocks"
	"github.com/feral-file/token-resolver/internal/providers/coingecko"
)

const testAPIURL = "https://api.coingecko.test/api/v3"

func TestClient_Resolve_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := coingecko.NewClient(mockHTTP, adapter.NewJSON(), testAPIURL, "")

	ctx := context.Background()

	searchBody := []byte(`{"coins":[{"id":"usd-coin","symbol":"usdc","name":"USDC"},{"id":"usd-coin-bridged","symbol":"usdc.e","name":"Bridged USDC"}]}`)
	mockHTTP.EXPECT().
		GetBytes(ctx, testAPIURL+"/search", url.Values{"query": []string{"USDC"}}, nil).
		Return(searchBody, nil)

	contractBody := []byte(`{
		"contract_address": "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		"name": "USDC",
		"symbol": "usdc",
		"platform": {"id": "ethereum"},
		"detail_platforms": {
			"ethereum": {"decimal_place": 6, "contract_address": "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"}
		}
	}`)
	mockHTTP.EXPECT().
		GetBytes(ctx, testAPIURL+"/coins/usd-coin/contract/ethereum", nil, nil).
		Return(contractBody, nil)

	record, err := client.Resolve(ctx, "USDC", domain.ChainEthereum)

	assert.NoError(t, err)
	assert.NotNil(t, record)
	assert.Equal(t, "USDC", record.Symbol)
	assert.Equal(t, "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", *record.Contract)
	assert.Equal(t, 6, record.Decimals)
	assert.True(t, record.Verified)
	assert.Equal(t, coingecko.ProviderName, record.Source)
}

func TestClient_Resolve_APIKeyHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := coingecko.NewClient(mockHTTP, adapter.NewJSON(), testAPIURL, "demo-key")

	ctx := context.Background()
	headers := map[string]string{"x-cg-demo-api-key": "demo-key"}

	mockHTTP.EXPECT().
		GetBytes(ctx, testAPIURL+"/search", gomock.Any(), headers).
		Return([]byte(`{"coins":[]}`), nil)

	_, err := client.Resolve(ctx, "WETH", domain.ChainEthereum)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_Resolve_UnsupportedChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No HTTP call is made for chains the provider has no platform for.
	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := coingecko.NewClient(mockHTTP, adapter.NewJSON(), testAPIURL, "")

	record, err := client.Resolve(context.Background(), "SOL", domain.ChainSolana)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, record)
}

func TestClient_Resolve_NoContractOnPlatform(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := coingecko.NewClient(mockHTTP, adapter.NewJSON(), testAPIURL, "")

	ctx := context.Background()
	mockHTTP.EXPECT().
		GetBytes(ctx, testAPIURL+"/search", gomock.Any(), nil).
		Return([]byte(`{"coins":[{"id":"bitcoin","symbol":"btc","name":"Bitcoin"}]}`), nil)
	mockHTTP.EXPECT().
		GetBytes(ctx, testAPIURL+"/coins/bitcoin/contract/ethereum", nil, nil).
		Return([]byte(`{"contract_address":""}`), nil)

	_, err := client.Resolve(ctx, "BTC", domain.ChainEthereum)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_Resolve_ContractLookup404(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := coingecko.NewClient(mockHTTP, adapter.NewJSON(), testAPIURL, "")

	ctx := context.Background()
	mockHTTP.EXPECT().
		GetBytes(ctx, testAPIURL+"/search", gomock.Any(), nil).
		Return([]byte(`{"coins":[{"id":"pepe","symbol":"pepe","name":"Pepe"}]}`), nil)
	mockHTTP.EXPECT().
		GetBytes(ctx, gomock.Any(), nil, nil).
		Return(nil, &adapter.StatusError{Code: http.StatusNotFound, Body: "coin not found"})

	_, err := client.Resolve(ctx, "PEPE", domain.ChainBSC)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_Resolve_UpstreamError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := coingecko.NewClient(mockHTTP, adapter.NewJSON(), testAPIURL, "")

	ctx := context.Background()
	mockHTTP.EXPECT().
		GetBytes(ctx, testAPIURL+"/search", gomock.Any(), nil).
		Return(nil, &adapter.StatusError{Code: http.StatusInternalServerError, Body: "upstream down"})

	_, err := client.Resolve(ctx, "WETH", domain.ChainEthereum)

	var provErr *domain.ProviderError
	assert.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusInternalServerError, provErr.StatusCode)
	assert.Equal(t, coingecko.ProviderName, provErr.Provider)
}

func TestClient_Resolve_RateLimited(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := coingecko.NewClient(mockHTTP, adapter.NewJSON(), testAPIURL, "")

	ctx := context.Background()
	mockHTTP.EXPECT().
		GetBytes(ctx, testAPIURL+"/search", gomock.Any(), nil).
		Return(nil, &adapter.StatusError{Code: http.StatusTooManyRequests, Body: "throttled"})

	_, err := client.Resolve(ctx, "WETH", domain.ChainEthereum)

	var rateErr *domain.RateLimitError
	assert.ErrorAs(t, err, &rateErr)
	assert.Equal(t, coingecko.ProviderName, rateErr.Provider)
}

func TestClient_Resolve_TransportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := coingecko.NewClient(mockHTTP, adapter.NewJSON(), testAPIURL, "")

	ctx := context.Background()
	mockHTTP.EXPECT().
		GetBytes(ctx, gomock.Any(), gomock.Any(), nil).
		Return(nil, errors.New("connection refused"))

	_, err := client.Resolve(ctx, "WETH", domain.ChainEthereum)

	var provErr *domain.ProviderError
	assert.ErrorAs(t, err, &provErr)
	assert.Zero(t, provErr.StatusCode)
}

func TestClient_Resolve_MalformedResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := coingecko.NewClient(mockHTTP, adapter.NewJSON(), testAPIURL, "")

	ctx := context.Background()
	mockHTTP.EXPECT().
		GetBytes(ctx, gomock.Any(), gomock.Any(), nil).
		Return([]byte(`not json`), nil)

	_, err := client.Resolve(ctx, "WETH", domain.ChainEthereum)

	var provErr *domain.ProviderError
	assert.ErrorAs(t, err, &provErr)
}
