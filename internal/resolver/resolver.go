package resolver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/token-resolver/internal/adapter"
	"github.com/feral-file/token-resolver/internal/breaker"
	"github.com/feral-file/token-resolver/internal/domain"
	"github.com/feral-file/token-resolver/internal/logger"
	"github.com/feral-file/token-resolver/internal/messaging"
	"github.com/feral-file/token-resolver/internal/providers"
	"github.com/feral-file/token-resolver/internal/ratelimit"
	"github.com/feral-file/token-resolver/internal/store"
	"github.com/feral-file/token-resolver/internal/store/schema"
)

const (
	// DefaultCacheTTL is how long a durable cache row stays fresh.
	DefaultCacheTTL = 24 * time.Hour
	// DefaultCallTimeout bounds each individual provider call.
	DefaultCallTimeout = 10 * time.Second
)

// Service resolves token symbols to contract addresses through the
// durable cache and the ordered provider fallback chain.
//
//go:generate mockgen -source=resolver.go -destination=../mocks/resolver.go -package=mocks -mock_names=Service=MockResolverService
type Service interface {
	// Resolve returns contract information for a symbol on a chain.
	// forceRefresh bypasses the cache and always queries upstream.
	Resolve(ctx context.Context, symbol, chain string, forceRefresh bool) (*domain.Resolution, error)
	// ResolvePair resolves both legs of a "BASE/QUOTE" trading pair.
	ResolvePair(ctx context.Context, pair, chain string) (*domain.PairResolution, error)
	// Stats aggregates provider call logs over the window plus the
	// in-process cache counters.
	Stats(ctx context.Context, window time.Duration) (*domain.APIStats, error)
}

// Config holds resolver tuning knobs.
type Config struct {
	CacheTTL    time.Duration
	CallTimeout time.Duration
}

type resolver struct {
	store     store.Store
	providers []providers.Client
	limiter   ratelimit.Limiter
	breakers  *breaker.Set
	publisher messaging.Publisher
	clock     adapter.Clock

	cacheTTL    time.Duration
	callTimeout time.Duration

	totalRequests atomic.Int64
	cacheHits     atomic.Int64
	cacheMisses   atomic.Int64
}

// New creates a resolver over an ordered provider chain. The chain is
// tried in slice order; the first success wins. publisher may be nil
// when no message broker is configured.
func New(
	cfg Config,
	st store.Store,
	chain []providers.Client,
	limiter ratelimit.Limiter,
	breakers *breaker.Set,
	publisher messaging.Publisher,
	clock adapter.Clock,
) Service {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.CallTimeout == 0 {
		cfg.CallTimeout = DefaultCallTimeout
	}
	return &resolver{
		store:       st,
		providers:   chain,
		limiter:     limiter,
		breakers:    breakers,
		publisher:   publisher,
		clock:       clock,
		cacheTTL:    cfg.CacheTTL,
		callTimeout: cfg.CallTimeout,
	}
}

// Resolve returns contract information for a symbol on a chain.
func (r *resolver) Resolve(ctx context.Context, symbol, chain string, forceRefresh bool) (*domain.Resolution, error) {
	chainID, err := domain.NormalizeChain(chain)
	if err != nil {
		return nil, err
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, &domain.ResolutionFailedError{Symbol: symbol, Chain: chainID}
	}

	r.totalRequests.Add(1)

	// Native assets have no contract at all
	if native, ok := domain.NativeToken(chainID); ok && native == symbol {
		return &domain.Resolution{
			Symbol:     symbol,
			Contract:   nil,
			Blockchain: chainID,
			Decimals:   18,
			Name:       symbol,
			Source:     domain.SourceNative,
		}, nil
	}

	if !forceRefresh {
		cached, err := r.store.GetContract(ctx, symbol, chainID)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("symbol", symbol), zap.String("chain", string(chainID)))
		} else if cached != nil && cached.IsCacheValid(r.cacheTTL, r.clock.Now()) {
			r.cacheHits.Add(1)
			return cachedResolution(cached, chainID), nil
		}
	}

	r.cacheMisses.Add(1)

	record, provider, err := r.fetchFromProviders(ctx, symbol, chainID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		if err := r.store.UpsertFailedLookup(ctx, symbol, chainID, "all providers failed"); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("symbol", symbol))
		}
		failure := &domain.ResolutionFailedError{Symbol: symbol, Chain: chainID}
		r.publishEvent(ctx, &domain.TokenEvent{
			Type:      domain.EventResolutionFailed,
			Chain:     chainID,
			Symbol:    symbol,
			Error:     failure.Error(),
			Timestamp: r.clock.Now(),
		})
		return nil, failure
	}

	resolution := &domain.Resolution{
		Symbol:     symbol,
		Contract:   record.Contract,
		Blockchain: chainID,
		Decimals:   record.Decimals,
		Name:       record.Name,
		Source:     domain.SourceAPI,
		Verified:   record.Verified,
	}
	if resolution.Decimals == 0 {
		resolution.Decimals = 18
	}
	if resolution.Name == "" {
		resolution.Name = symbol
	}

	// Write-through is best effort; a cache write failure must not
	// fail a resolution the providers already answered
	if record.Contract != nil {
		row := &schema.ContractAddress{
			TokenSymbol:     symbol,
			ContractAddress: *record.Contract,
			Blockchain:      string(chainID),
			Verified:        record.Verified,
			Source:          provider,
		}
		if record.Name != "" {
			name := record.Name
			row.TokenName = &name
		}
		if record.Decimals != 0 {
			decimals := record.Decimals
			row.Decimals = &decimals
		}
		if _, err := r.store.UpsertContract(ctx, row); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("symbol", symbol), zap.String("chain", string(chainID)))
		}
	}

	return resolution, nil
}

// fetchFromProviders walks the fallback chain in order and returns the
// first successful record along with the provider that produced it.
// Every attempt is written to the call log. When the caller's context
// ends mid-chain the context error is returned and no breaker or
// failed-lookup state is charged; cancellation says nothing about
// provider health.
func (r *resolver) fetchFromProviders(ctx context.Context, symbol string, chain domain.ChainID) (*domain.TokenRecord, string, error) {
	for _, client := range r.providers {
		name := client.Name()
		brk := r.breakers.For(name)
		if brk.IsOpen() {
			logger.Debug("Skipping provider with open circuit", zap.String("provider", name))
			continue
		}

		if err := r.limiter.Acquire(ctx, name); err != nil {
			logger.WarnCtx(ctx, "Rate limit wait aborted", zap.String("provider", name), zap.Error(err))
			return nil, "", err
		}

		start := r.clock.Now()
		callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
		record, err := client.Resolve(callCtx, symbol, chain)
		cancel()
		latency := r.clock.Since(start).Milliseconds()

		if err != nil && ctx.Err() != nil {
			// The caller went away, not the provider
			return nil, "", ctx.Err()
		}

		r.logCall(ctx, name, symbol, chain, latency, err)

		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// A definitive "no such token" means the provider is
				// healthy, only the lookup came up empty
				brk.RecordSuccess()
			} else {
				brk.RecordFailure()
				logger.WarnCtx(ctx, "Provider call failed",
					zap.String("provider", name),
					zap.String("symbol", symbol),
					zap.Error(err))
			}
			continue
		}

		brk.RecordSuccess()
		if record == nil || record.Contract == nil {
			continue
		}
		return record, name, nil
	}
	return nil, "", nil
}

func (r *resolver) logCall(ctx context.Context, provider, symbol string, chain domain.ChainID, latencyMS int64, callErr error) {
	endpoint := "resolve/" + string(chain) + "/" + symbol
	row := &schema.APICallLog{
		APIName:        provider,
		Endpoint:       &endpoint,
		Success:        callErr == nil,
		ResponseTimeMS: &latencyMS,
		CalledAt:       r.clock.Now(),
	}
	if callErr != nil {
		message := callErr.Error()
		row.ErrorMessage = &message

		var providerErr *domain.ProviderError
		var rateErr *domain.RateLimitError
		switch {
		case errors.As(callErr, &providerErr) && providerErr.StatusCode != 0:
			status := providerErr.StatusCode
			row.StatusCode = &status
		case errors.As(callErr, &rateErr):
			status := http.StatusTooManyRequests
			row.StatusCode = &status
		}
	} else {
		status := 200
		row.StatusCode = &status
	}

	if err := r.store.RecordAPICall(ctx, row); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("provider", provider))
	}
}

func (r *resolver) publishEvent(ctx context.Context, event *domain.TokenEvent) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.PublishTokenEvent(ctx, event); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("event_type", string(event.Type)))
	}
}

func cachedResolution(row *schema.ContractAddress, chain domain.ChainID) *domain.Resolution {
	address := row.ContractAddress
	resolution := &domain.Resolution{
		Symbol:     row.TokenSymbol,
		Contract:   &address,
		Blockchain: chain,
		Decimals:   18,
		Name:       row.TokenSymbol,
		Source:     domain.SourceCache,
		Verified:   row.Verified,
	}
	if row.Decimals != nil {
		resolution.Decimals = *row.Decimals
	}
	if row.TokenName != nil {
		resolution.Name = *row.TokenName
	}
	return resolution
}
