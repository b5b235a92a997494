package domain

import (
	"fmt"
	"strings"
	"time"
)

// ResolutionSource identifies where a resolution came from.
type ResolutionSource string

const (
	SourceNative ResolutionSource = "native"
	SourceCache  ResolutionSource = "cache"
	SourceAPI    ResolutionSource = "api"
)

// TokenKey is the only valid token identity: chain plus lowercased
// contract address. Symbols are never unique; the same symbol may map
// to many addresses on the same chain.
type TokenKey struct {
	Chain   ChainID
	Address string
}

// NewTokenKey builds a TokenKey with a normalized address.
func NewTokenKey(chain ChainID, address string) TokenKey {
	return TokenKey{Chain: chain, Address: NormalizeAddress(address)}
}

// String renders the key in "chain:address" form.
func (k TokenKey) String() string {
	return fmt.Sprintf("%s:%s", k.Chain, k.Address)
}

// SymbolKey renders a "chain:SYMBOL" secondary index key.
func SymbolKey(chain ChainID, symbol string) string {
	return fmt.Sprintf("%s:%s", chain, strings.ToUpper(symbol))
}

// TokenRecord is the normalized shape every provider client returns.
// Contract is nil for native assets.
type TokenRecord struct {
	Symbol   string
	Contract *string
	Name     string
	Decimals int
	Verified bool
	Source   string
}

// Resolution is the caller-facing result of a contract resolution.
type Resolution struct {
	Symbol     string           `json:"symbol"`
	Contract   *string          `json:"contract"`
	Blockchain ChainID          `json:"blockchain"`
	Decimals   int              `json:"decimals"`
	Name       string           `json:"name"`
	Source     ResolutionSource `json:"source"`
	Verified   bool             `json:"verified"`
}

// PairResolution is the result of resolving both legs of a trading pair.
type PairResolution struct {
	Pair       string      `json:"pair"`
	BaseToken  *Resolution `json:"base_token"`
	QuoteToken *Resolution `json:"quote_token"`
	Blockchain ChainID     `json:"blockchain"`
}

// TokenPrice is an immutable price-and-liquidity snapshot for one
// token, taken from its most liquid DEX pair. Newer fetches supersede
// older snapshots; they are never mutated in place.
type TokenPrice struct {
	Chain          ChainID   `json:"chain_id"`
	Address        string    `json:"contract_address"`
	Symbol         string    `json:"symbol"`
	Name           string    `json:"name"`
	PriceUSD       float64   `json:"price_usd"`
	PriceNative    float64   `json:"price_native"`
	LiquidityUSD   float64   `json:"liquidity_usd"`
	Volume24h      float64   `json:"volume_24h"`
	PriceChange24h float64   `json:"price_change_24h"`
	DexID          string    `json:"dex_id"`
	PairAddress    string    `json:"pair_address"`
	FetchedAt      time.Time `json:"fetched_at"`
}

// Key returns the chain:address identity of the snapshot.
func (p *TokenPrice) Key() TokenKey {
	return NewTokenKey(p.Chain, p.Address)
}

// IsLiquid reports whether the token clears the minimum liquidity bar.
func (p *TokenPrice) IsLiquid() bool {
	return p.LiquidityUSD >= MinLiquidityUSD
}

// Age reports how old the snapshot is relative to now.
func (p *TokenPrice) Age(now time.Time) time.Duration {
	return now.Sub(p.FetchedAt)
}

// Verification thresholds used by the token registry scoring pass.
const (
	MinLiquidityUSD = 100_000.0
	MinVolume24hUSD = 10_000.0
)

// VerifiedToken is a registry entry carrying the verification outcome
// for one TokenKey.
type VerifiedToken struct {
	Chain        ChainID   `json:"chain_id"`
	Address      string    `json:"address"`
	Symbol       string    `json:"symbol"`
	Name         string    `json:"name"`
	Decimals     int       `json:"decimals"`
	LiquidityUSD float64   `json:"liquidity_usd"`
	IsVerified   bool      `json:"is_verified"`
	IsScam       bool      `json:"is_scam"`
	ScamReason   string    `json:"scam_reason,omitempty"`
	AddedAt      time.Time `json:"added_at"`
}

// Key returns the chain:address identity of the registry entry.
func (t *VerifiedToken) Key() TokenKey {
	return NewTokenKey(t.Chain, t.Address)
}

// IsTradeable reports whether the token is safe to trade: verified,
// not a scam, and liquid enough to exit a position.
func (t *VerifiedToken) IsTradeable() bool {
	return t.IsVerified && !t.IsScam && t.LiquidityUSD >= MinLiquidityUSD
}

// TokenSearchResult is one entry of a cross-chain token search, grouped
// by chain:address with liquidity summed over all of the token's pairs.
type TokenSearchResult struct {
	Chain          ChainID `json:"chain_id"`
	Address        string  `json:"address"`
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	PairsCount     int     `json:"pairs_count"`
	TotalLiquidity float64 `json:"total_liquidity"`
}

// ProviderStats aggregates call-log rows for one provider.
type ProviderStats struct {
	Total        int64 `json:"total"`
	Success      int64 `json:"success"`
	Failed       int64 `json:"failed"`
	AvgLatencyMS int64 `json:"avg_latency_ms"`
}

// APIStats is the operational snapshot returned by the stats query.
type APIStats struct {
	TotalCalls        int64                     `json:"total_calls"`
	SuccessfulCalls   int64                     `json:"successful_calls"`
	FailedCalls       int64                     `json:"failed_calls"`
	ByProvider        map[string]*ProviderStats `json:"by_provider"`
	AvgResponseTimeMS int64                     `json:"avg_response_time_ms"`
	CacheHitRate      float64                   `json:"cache_hit_rate"`
	CacheHits         int64                     `json:"cache_hits"`
	CacheMisses       int64                     `json:"cache_misses"`
	APICallsSaved     int64                     `json:"api_calls_saved"`
}

// TokenEventType labels registry and resolver events published to the
// message broker.
type TokenEventType string

const (
	EventTokenVerified    TokenEventType = "token.verified"
	EventTokenScam        TokenEventType = "token.scam"
	EventResolutionFailed TokenEventType = "resolution.failed"
)

// TokenEvent is the message published when a token changes trust status
// or a resolution exhausts every provider.
type TokenEvent struct {
	Type         TokenEventType `json:"type"`
	Chain        ChainID        `json:"chain_id"`
	Address      string         `json:"address,omitempty"`
	Symbol       string         `json:"symbol,omitempty"`
	LiquidityUSD float64        `json:"liquidity_usd,omitempty"`
	ScamReason   string         `json:"scam_reason,omitempty"`
	Error        string         `json:"error,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}
