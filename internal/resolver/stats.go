package resolver

import (
	"context"
	"math"
	"time"

	"github.com/feral-file/token-resolver/internal/domain"
)

// Stats merges the durable call-log aggregation with the in-process
// cache counters.
func (r *resolver) Stats(ctx context.Context, window time.Duration) (*domain.APIStats, error) {
	if window <= 0 {
		window = 24 * time.Hour
	}

	byProvider, err := r.store.APICallStats(ctx, r.clock.Now().Add(-window))
	if err != nil {
		return nil, err
	}

	stats := &domain.APIStats{
		ByProvider:    byProvider,
		CacheHits:     r.cacheHits.Load(),
		CacheMisses:   r.cacheMisses.Load(),
		APICallsSaved: r.cacheHits.Load(),
	}

	var weightedLatency int64
	var latencyCalls int64
	for _, provider := range byProvider {
		stats.TotalCalls += provider.Total
		stats.SuccessfulCalls += provider.Success
		stats.FailedCalls += provider.Failed
		if provider.AvgLatencyMS > 0 {
			weightedLatency += provider.AvgLatencyMS * provider.Total
			latencyCalls += provider.Total
		}
	}
	if latencyCalls > 0 {
		stats.AvgResponseTimeMS = weightedLatency / latencyCalls
	}

	if total := r.totalRequests.Load(); total > 0 {
		rate := float64(stats.CacheHits) / float64(total) * 100
		stats.CacheHitRate = math.Round(rate*100) / 100
	}

	return stats, nil
}
