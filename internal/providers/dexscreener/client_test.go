package dexscreener_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/token-resolver/internal/adapter"
	"github.com/feral-file/token-resolver/internal/cache"
	"github.com/feral-file/token-resolver/internal/domain"
	"github.com/feral-file/token-resolver/internal/mocks"
	"github.com/feral-file/token-resolver/internal/providers/dexscreener"
)

const testAPIURL = "https://api.dexscreener.test/latest/dex"

const pepeAddress = "0x6982508145454ce325ddbe47a25d4ec3d2311933"

// pairsFixture has three ethereum pairs with unequal liquidity plus one
// BSC pair that must be filtered out.
var pairsFixture = []byte(`{
	"pairs": [
		{
			"chainId": "ethereum",
			"dexId": "uniswap",
			"pairAddress": "0xpair-low",
			"priceUsd": "0.0000012",
			"priceNative": "0.0000000005",
			"baseToken": {"address": "0x6982508145454Ce325dDbE47a25d4ec3d2311933", "name": "Pepe", "symbol": "PEPE"},
			"liquidity": {"usd": 250000},
			"volume": {"h24": 45000},
			"priceChange": {"h24": -2.5}
		},
		{
			"chainId": "ethereum",
			"dexId": "sushiswap",
			"pairAddress": "0xpair-high",
			"priceUsd": "0.0000013",
			"baseToken": {"address": "0x6982508145454Ce325dDbE47a25d4ec3d2311933", "name": "Pepe", "symbol": "PEPE"},
			"liquidity": {"usd": 900000},
			"volume": {"h24": 120000},
			"priceChange": {"h24": -2.1}
		},
		{
			"chainId": "ethereum",
			"dexId": "uniswap",
			"pairAddress": "0xpair-mid",
			"priceUsd": "0.0000011",
			"baseToken": {"address": "0x6982508145454Ce325dDbE47a25d4ec3d2311933", "name": "Pepe", "symbol": "PEPE"},
			"liquidity": {"usd": 400000},
			"volume": {"h24": 80000},
			"priceChange": {"h24": -3.0}
		},
		{
			"chainId": "bsc",
			"dexId": "pancakeswap",
			"pairAddress": "0xpair-bsc",
			"priceUsd": "0.0000010",
			"baseToken": {"address": "0x6982508145454Ce325dDbE47a25d4ec3d2311933", "name": "Pepe", "symbol": "PEPE"},
			"liquidity": {"usd": 150000},
			"volume": {"h24": 30000},
			"priceChange": {"h24": -1.0}
		}
	]
}`)

type testClient struct {
	ctrl   *gomock.Controller
	http   *mocks.MockHTTPClient
	clock  *mocks.MockClock
	prices *cache.PriceCache
	client *dexscreener.Client
}

func setupTestClient(t *testing.T) *testClient {
	ctrl := gomock.NewController(t)

	clock := mocks.NewMockClock(ctrl)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock.EXPECT().Now().Return(now).AnyTimes()
	clock.EXPECT().Since(gomock.Any()).Return(time.Second).AnyTimes()

	httpMock := mocks.NewMockHTTPClient(ctrl)
	prices := cache.NewPriceCache(5*time.Minute, clock)

	return &testClient{
		ctrl:   ctrl,
		http:   httpMock,
		clock:  clock,
		prices: prices,
		client: dexscreener.NewClient(httpMock, adapter.NewJSON(), clock, prices, testAPIURL),
	}
}

func TestClient_TokenPairs_SortedAndFiltered(t *testing.T) {
	tc := setupTestClient(t)
	defer tc.ctrl.Finish()

	ctx := context.Background()
	tc.http.EXPECT().
		GetBytes(ctx, testAPIURL+"/tokens/"+pepeAddress, nil, nil).
		Return(pairsFixture, nil)

	pairs, err := tc.client.TokenPairs(ctx, domain.ChainEthereum, "0x6982508145454Ce325dDbE47a25d4ec3d2311933")

	assert.NoError(t, err)
	assert.Len(t, pairs, 3)
	assert.Equal(t, "0xpair-high", pairs[0].PairAddress)
	assert.Equal(t, "0xpair-mid", pairs[1].PairAddress)
	assert.Equal(t, "0xpair-low", pairs[2].PairAddress)
	assert.Equal(t, 900000.0, pairs[0].LiquidityUSD)
	assert.Equal(t, 0.0000013, pairs[0].PriceUSD)
	assert.Equal(t, domain.ChainEthereum, pairs[0].Chain)
	assert.Equal(t, pepeAddress, pairs[0].Address)
}

func TestClient_TokenPairs_CachesMostLiquid(t *testing.T) {
	tc := setupTestClient(t)
	defer tc.ctrl.Finish()

	ctx := context.Background()

	// Single upstream call; the second lookup is served from cache.
	tc.http.EXPECT().
		GetBytes(ctx, gomock.Any(), nil, nil).
		Return(pairsFixture, nil).
		Times(1)

	first, err := tc.client.TokenPairs(ctx, domain.ChainEthereum, pepeAddress)
	assert.NoError(t, err)
	assert.Len(t, first, 3)

	second, err := tc.client.TokenPairs(ctx, domain.ChainEthereum, pepeAddress)
	assert.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, "0xpair-high", second[0].PairAddress)
}

func TestClient_TokenPairs_InvalidChain(t *testing.T) {
	tc := setupTestClient(t)
	defer tc.ctrl.Finish()

	_, err := tc.client.TokenPairs(context.Background(), domain.ChainID("dogechain"), pepeAddress)

	var chainErr *domain.InvalidChainError
	assert.ErrorAs(t, err, &chainErr)
}

func TestClient_TokenPairs_NoPairsOnChain(t *testing.T) {
	tc := setupTestClient(t)
	defer tc.ctrl.Finish()

	ctx := context.Background()
	tc.http.EXPECT().
		GetBytes(ctx, gomock.Any(), nil, nil).
		Return(pairsFixture, nil)

	// All fixture pairs live on ethereum or bsc.
	_, err := tc.client.TokenPairs(ctx, domain.ChainPolygon, pepeAddress)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_TokenPrice(t *testing.T) {
	tc := setupTestClient(t)
	defer tc.ctrl.Finish()

	ctx := context.Background()
	tc.http.EXPECT().
		GetBytes(ctx, gomock.Any(), nil, nil).
		Return(pairsFixture, nil)

	price, err := tc.client.TokenPrice(ctx, domain.ChainEthereum, pepeAddress)

	assert.NoError(t, err)
	assert.Equal(t, "sushiswap", price.DexID)
	assert.Equal(t, 900000.0, price.LiquidityUSD)
}

func TestClient_Search_GroupsByToken(t *testing.T) {
	tc := setupTestClient(t)
	defer tc.ctrl.Finish()

	ctx := context.Background()
	tc.http.EXPECT().
		GetBytes(ctx, testAPIURL+"/search", url.Values{"q": []string{"PEPE"}}, nil).
		Return(pairsFixture, nil)

	results, err := tc.client.Search(ctx, "PEPE")

	assert.NoError(t, err)
	assert.Len(t, results, 2)

	// Insertion order: the ethereum token appears first in the fixture.
	assert.Equal(t, domain.ChainEthereum, results[0].Chain)
	assert.Equal(t, 3, results[0].PairsCount)
	assert.Equal(t, 1550000.0, results[0].TotalLiquidity)

	assert.Equal(t, domain.ChainBSC, results[1].Chain)
	assert.Equal(t, 1, results[1].PairsCount)
	assert.Equal(t, 150000.0, results[1].TotalLiquidity)
}

func TestClient_Resolve_FiltersByChain(t *testing.T) {
	tc := setupTestClient(t)
	defer tc.ctrl.Finish()

	ctx := context.Background()
	tc.http.EXPECT().
		GetBytes(ctx, testAPIURL+"/search", gomock.Any(), nil).
		Return(pairsFixture, nil)

	record, err := tc.client.Resolve(ctx, "PEPE", domain.ChainBSC)

	assert.NoError(t, err)
	assert.Equal(t, "PEPE", record.Symbol)
	assert.Equal(t, pepeAddress, *record.Contract)
	assert.Equal(t, 18, record.Decimals)
	assert.False(t, record.Verified)
}

func TestClient_Resolve_NoMatchOnChain(t *testing.T) {
	tc := setupTestClient(t)
	defer tc.ctrl.Finish()

	ctx := context.Background()
	tc.http.EXPECT().
		GetBytes(ctx, testAPIURL+"/search", gomock.Any(), nil).
		Return(pairsFixture, nil)

	_, err := tc.client.Resolve(ctx, "PEPE", domain.ChainArbitrum)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_ComparePrices_BestPairPerDex(t *testing.T) {
	tc := setupTestClient(t)
	defer tc.ctrl.Finish()

	ctx := context.Background()
	tc.http.EXPECT().
		GetBytes(ctx, gomock.Any(), nil, nil).
		Return(pairsFixture, nil)

	prices, err := tc.client.ComparePrices(ctx, domain.ChainEthereum, pepeAddress)

	assert.NoError(t, err)
	assert.Len(t, prices, 2)

	byDex := make(map[string]float64, len(prices))
	for _, p := range prices {
		byDex[p.DexID] = p.LiquidityUSD
	}
	// uniswap has two pairs; only the more liquid one survives.
	assert.Equal(t, 400000.0, byDex["uniswap"])
	assert.Equal(t, 900000.0, byDex["sushiswap"])
}
