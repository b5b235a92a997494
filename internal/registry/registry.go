package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/token-resolver/internal/adapter"
	"github.com/feral-file/token-resolver/internal/domain"
	"github.com/feral-file/token-resolver/internal/logger"
	"github.com/feral-file/token-resolver/internal/messaging"
)

const defaultVerifyWorkers = 8

// PriceSource supplies the liquidity snapshot verification runs on.
// The DexScreener client is the production implementation.
//
//go:generate mockgen -source=registry.go -destination=../mocks/registry.go -package=mocks -mock_names=PriceSource=MockPriceSource,Registry=MockRegistry
type PriceSource interface {
	// TokenPrice returns the most liquid pair snapshot for a token
	TokenPrice(ctx context.Context, chain domain.ChainID, address string) (*domain.TokenPrice, error)
}

// Registry tracks verified tokens keyed strictly by chain:address.
// Symbols are never trusted as identity; many tokens share one symbol.
type Registry interface {
	// AddToken registers a token, verifying its legitimacy against live
	// market data unless verify is false. Returns ScamTokenError when
	// the token fails verification or is already on the scam set.
	AddToken(ctx context.Context, chain domain.ChainID, address string, verify bool) (*domain.VerifiedToken, error)
	// ResolveSymbol guesses the most likely token for a symbol by
	// highest liquidity. Ambiguity is possible; the caller should treat
	// the result as a suggestion, not ground truth.
	ResolveSymbol(ctx context.Context, chain domain.ChainID, symbol string) (*domain.VerifiedToken, error)
	// GetToken returns a registered token by exact chain and address.
	GetToken(chain domain.ChainID, address string) (*domain.VerifiedToken, bool)
	// IsScam reports whether the token is on the scam set.
	IsScam(chain domain.ChainID, address string) bool
	// VerifyBatch registers many tokens concurrently and returns the
	// ones that passed. Scam and no-data tokens are skipped, not fatal.
	VerifyBatch(ctx context.Context, keys []domain.TokenKey) []*domain.VerifiedToken
	// Stop drains the verification worker pool.
	Stop()
}

type registry struct {
	prices    PriceSource
	publisher messaging.Publisher
	clock     adapter.Clock
	pool      pond.Pool

	mu               sync.RWMutex
	tokensByKey      map[string]*domain.VerifiedToken
	addressesBySymbol map[string][]string
	scamTokens       map[string]struct{}

	// Manually curated chain:address -> symbol pairs that bypass
	// verification scoring entirely
	whitelist map[string]string
}

// New creates a token registry backed by a live price source.
// publisher may be nil when no message broker is configured.
func New(prices PriceSource, publisher messaging.Publisher, clock adapter.Clock, verifyWorkers int) Registry {
	if verifyWorkers <= 0 {
		verifyWorkers = defaultVerifyWorkers
	}
	return &registry{
		prices:            prices,
		publisher:         publisher,
		clock:             clock,
		pool:              pond.NewPool(verifyWorkers),
		tokensByKey:       make(map[string]*domain.VerifiedToken),
		addressesBySymbol: make(map[string][]string),
		scamTokens:        make(map[string]struct{}),
		whitelist: map[string]string{
			"ethereum:0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48": "USDC",
			"ethereum:0xdac17f958d2ee523a2206206994597c13d831ec7": "USDT",
			"ethereum:0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2": "WETH",
			"bsc:0x55d398326f99059ff775485246999027b3197955":      "USDT",
			"bsc:0x8ac76a51cc950d9822d68b83fe1ad97b32cd580d":      "USDC",
		},
	}
}

// AddToken registers a token with verification.
func (r *registry) AddToken(ctx context.Context, chain domain.ChainID, address string, verify bool) (*domain.VerifiedToken, error) {
	key := domain.NewTokenKey(chain, address)
	keyStr := key.String()

	r.mu.RLock()
	if existing, ok := r.tokensByKey[keyStr]; ok {
		r.mu.RUnlock()
		return existing, nil
	}
	if _, scam := r.scamTokens[keyStr]; scam {
		r.mu.RUnlock()
		return nil, &domain.ScamTokenError{Key: key, Reason: "previously marked as scam"}
	}
	r.mu.RUnlock()

	price, err := r.prices.TokenPrice(ctx, chain, key.Address)
	if err != nil {
		return nil, &domain.NoDataError{Key: key}
	}

	var isVerified, isScam bool
	var scamReason string
	if verify {
		isVerified, isScam, scamReason = scoreToken(price)
	}

	if _, ok := r.whitelist[keyStr]; ok {
		isVerified = true
		isScam = false
		scamReason = ""
	}

	token := &domain.VerifiedToken{
		Chain:        chain,
		Address:      key.Address,
		Symbol:       price.Symbol,
		Name:         price.Name,
		Decimals:     18,
		LiquidityUSD: price.LiquidityUSD,
		IsVerified:   isVerified,
		IsScam:       isScam,
		ScamReason:   scamReason,
		AddedAt:      r.clock.Now(),
	}

	r.mu.Lock()
	// Another caller may have won the race while we were fetching
	if existing, ok := r.tokensByKey[keyStr]; ok {
		r.mu.Unlock()
		return existing, nil
	}
	if isScam {
		r.scamTokens[keyStr] = struct{}{}
		r.mu.Unlock()

		logger.WarnCtx(ctx, "Scam token detected",
			zap.String("token", keyStr),
			zap.String("reason", scamReason))
		r.publishEvent(ctx, &domain.TokenEvent{
			Type:       domain.EventTokenScam,
			Chain:      chain,
			Address:    key.Address,
			Symbol:     price.Symbol,
			ScamReason: scamReason,
			Timestamp:  token.AddedAt,
		})
		return nil, &domain.ScamTokenError{Key: key, Reason: scamReason}
	}

	r.tokensByKey[keyStr] = token
	symbolKey := domain.SymbolKey(chain, price.Symbol)
	r.addressesBySymbol[symbolKey] = append(r.addressesBySymbol[symbolKey], key.Address)
	r.mu.Unlock()

	if isVerified {
		r.publishEvent(ctx, &domain.TokenEvent{
			Type:         domain.EventTokenVerified,
			Chain:        chain,
			Address:      key.Address,
			Symbol:       price.Symbol,
			LiquidityUSD: price.LiquidityUSD,
			Timestamp:    token.AddedAt,
		})
	}

	return token, nil
}

// ResolveSymbol guesses the most likely token for a symbol.
func (r *registry) ResolveSymbol(ctx context.Context, chain domain.ChainID, symbol string) (*domain.VerifiedToken, error) {
	symbolKey := domain.SymbolKey(chain, symbol)

	r.mu.RLock()
	addresses := r.addressesBySymbol[symbolKey]
	tokens := make([]*domain.VerifiedToken, 0, len(addresses))
	for _, address := range addresses {
		if token, ok := r.tokensByKey[domain.TokenKey{Chain: chain, Address: address}.String()]; ok {
			tokens = append(tokens, token)
		}
	}
	r.mu.RUnlock()

	if len(tokens) == 0 {
		logger.WarnCtx(ctx, "No registered tokens for symbol",
			zap.String("symbol", symbol),
			zap.String("chain", string(chain)))
		return nil, domain.ErrNotFound
	}
	if len(tokens) > 1 {
		logger.WarnCtx(ctx, "Multiple tokens share symbol, picking highest liquidity",
			zap.String("symbol", symbol),
			zap.String("chain", string(chain)),
			zap.Int("candidates", len(tokens)))
	}

	// Liquidity descending, address ascending as a stable tie-break
	sort.Slice(tokens, func(i, j int) bool {
		if tokens[i].LiquidityUSD != tokens[j].LiquidityUSD {
			return tokens[i].LiquidityUSD > tokens[j].LiquidityUSD
		}
		return tokens[i].Address < tokens[j].Address
	})

	best := tokens[0]
	logger.InfoCtx(ctx, "Resolved symbol from registry",
		zap.String("symbol", symbol),
		zap.String("chain", string(chain)),
		zap.String("address", best.Address),
		zap.Float64("liquidity_usd", best.LiquidityUSD))
	return best, nil
}

// GetToken returns a registered token by exact address.
func (r *registry) GetToken(chain domain.ChainID, address string) (*domain.VerifiedToken, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	token, ok := r.tokensByKey[domain.NewTokenKey(chain, address).String()]
	return token, ok
}

// IsScam reports whether the token is on the scam set.
func (r *registry) IsScam(chain domain.ChainID, address string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, scam := r.scamTokens[domain.NewTokenKey(chain, address).String()]
	return scam
}

// VerifyBatch registers many tokens concurrently.
func (r *registry) VerifyBatch(ctx context.Context, keys []domain.TokenKey) []*domain.VerifiedToken {
	var mu sync.Mutex
	verified := make([]*domain.VerifiedToken, 0, len(keys))

	group := r.pool.NewGroup()
	for _, key := range keys {
		group.Submit(func() {
			token, err := r.AddToken(ctx, key.Chain, key.Address, true)
			if err != nil {
				logger.Debug("Batch verification skipped token",
					zap.String("token", key.String()),
					zap.Error(err))
				return
			}
			mu.Lock()
			verified = append(verified, token)
			mu.Unlock()
		})
	}
	if err := group.Wait(); err != nil {
		logger.Error(err, zap.Int("tokens", len(keys)))
	}

	return verified
}

// Stop drains the verification worker pool.
func (r *registry) Stop() {
	r.pool.StopAndWait()
}

func (r *registry) publishEvent(ctx context.Context, event *domain.TokenEvent) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.PublishTokenEvent(ctx, event); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("event_type", string(event.Type)))
	}
}

// scoreToken runs the five-point legitimacy score against a live pair
// snapshot. Four or more points is verified; two or fewer is scam.
func scoreToken(price *domain.TokenPrice) (isVerified, isScam bool, scamReason string) {
	passed := 0
	var indicators []string

	if price.LiquidityUSD >= domain.MinLiquidityUSD {
		passed++
	} else {
		indicators = append(indicators, fmt.Sprintf("low liquidity: $%.0f", price.LiquidityUSD))
	}

	if price.Volume24h >= domain.MinVolume24hUSD {
		passed++
	} else {
		indicators = append(indicators, fmt.Sprintf("low volume: $%.0f", price.Volume24h))
	}

	// Honeypots show extreme one-way flow; the ratio check only applies
	// when there is any volume at all
	if price.Volume24h > 0 {
		ratio := price.LiquidityUSD / price.Volume24h
		if ratio > 0.1 && ratio < 100 {
			passed++
		} else {
			indicators = append(indicators, "abnormal liquidity/volume ratio")
		}
	}

	if price.PriceUSD > 0.000001 && price.PriceUSD < 1_000_000 {
		passed++
	} else {
		indicators = append(indicators, fmt.Sprintf("suspicious price: $%g", price.PriceUSD))
	}

	if price.DexID != "unknown" {
		passed++
	} else {
		indicators = append(indicators, "no DEX pairs found")
	}

	return passed >= 4, passed <= 2, strings.Join(indicators, ", ")
}
