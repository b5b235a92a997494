package resolver_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/token-resolver/internal/domain"
)

func TestStats_AggregatesProviders(t *testing.T) {
	tm, svc := setupTestResolver(t)
	defer tm.ctrl.Finish()

	byProvider := map[string]*domain.ProviderStats{
		"coingecko":   {Total: 10, Success: 8, Failed: 2, AvgLatencyMS: 120},
		"dexscreener": {Total: 5, Success: 5, Failed: 0, AvgLatencyMS: 80},
	}
	tm.store.EXPECT().
		APICallStats(gomock.Any(), testNow.Add(-time.Hour)).
		Return(byProvider, nil)

	stats, err := svc.Stats(context.Background(), time.Hour)

	assert.NoError(t, err)
	assert.Equal(t, int64(15), stats.TotalCalls)
	assert.Equal(t, int64(13), stats.SuccessfulCalls)
	assert.Equal(t, int64(2), stats.FailedCalls)
	// Latency is weighted by call volume: (120*10 + 80*5) / 15.
	assert.Equal(t, int64(106), stats.AvgResponseTimeMS)
	assert.Equal(t, byProvider, stats.ByProvider)

	// No resolutions happened in-process yet.
	assert.Zero(t, stats.CacheHits)
	assert.Zero(t, stats.CacheMisses)
	assert.Zero(t, stats.CacheHitRate)
	assert.Zero(t, stats.APICallsSaved)
}

func TestStats_DefaultWindow(t *testing.T) {
	tm, svc := setupTestResolver(t)
	defer tm.ctrl.Finish()

	tm.store.EXPECT().
		APICallStats(gomock.Any(), testNow.Add(-24*time.Hour)).
		Return(map[string]*domain.ProviderStats{}, nil)

	stats, err := svc.Stats(context.Background(), 0)

	assert.NoError(t, err)
	assert.Zero(t, stats.TotalCalls)
	assert.Zero(t, stats.AvgResponseTimeMS)
}

func TestStats_CacheCounters(t *testing.T) {
	tm, svc := setupTestResolver(t)
	defer tm.ctrl.Finish()

	ctx := context.Background()

	// One cache hit.
	tm.store.EXPECT().
		GetContract(gomock.Any(), "USDT", domain.ChainEthereum).
		Return(freshCacheRow("USDT", "ethereum", "0xdac17f958d2ee523a2206206994597c13d831ec7"), nil)
	_, err := svc.Resolve(ctx, "USDT", "ethereum", false)
	assert.NoError(t, err)

	// One miss resolved upstream.
	contract := "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
	tm.store.EXPECT().GetContract(gomock.Any(), "USDC", domain.ChainEthereum).Return(nil, nil)
	tm.limiter.EXPECT().Acquire(gomock.Any(), "coingecko").Return(nil)
	tm.primary.EXPECT().
		Resolve(gomock.Any(), "USDC", domain.ChainEthereum).
		Return(&domain.TokenRecord{Symbol: "USDC", Contract: &contract, Source: "coingecko"}, nil)
	tm.store.EXPECT().RecordAPICall(gomock.Any(), gomock.Any()).Return(nil)
	tm.store.EXPECT().UpsertContract(gomock.Any(), gomock.Any()).Return(nil, nil)
	_, err = svc.Resolve(ctx, "USDC", "ethereum", false)
	assert.NoError(t, err)

	tm.store.EXPECT().
		APICallStats(gomock.Any(), gomock.Any()).
		Return(map[string]*domain.ProviderStats{}, nil)

	stats, err := svc.Stats(ctx, time.Hour)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), stats.CacheHits)
	assert.Equal(t, int64(1), stats.CacheMisses)
	assert.Equal(t, int64(1), stats.APICallsSaved)
	// Two requests total, one served from cache.
	assert.Equal(t, 50.0, stats.CacheHitRate)
}

func TestStats_StoreError(t *testing.T) {
	tm, svc := setupTestResolver(t)
	defer tm.ctrl.Finish()

	tm.store.EXPECT().
		APICallStats(gomock.Any(), gomock.Any()).
		Return(nil, assert.AnError)

	stats, err := svc.Stats(context.Background(), time.Hour)

	assert.Error(t, err)
	assert.Nil(t, stats)
}
