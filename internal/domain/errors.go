package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by a provider client when the upstream
	// answered but does not know the token. The fallback chain treats
	// it as "try the next provider".
	ErrNotFound = errors.New("token not found")
)

// InvalidChainError is returned when a chain identifier does not
// normalize to any supported chain.
type InvalidChainError struct {
	Input string
}

func (e *InvalidChainError) Error() string {
	return fmt.Sprintf("invalid chain: %q", e.Input)
}

// InvalidPairFormatError is returned when a trading pair string is not
// exactly "BASE/QUOTE" with two non-empty parts.
type InvalidPairFormatError struct {
	Pair string
}

func (e *InvalidPairFormatError) Error() string {
	return fmt.Sprintf("invalid pair format: %q, expected BASE/QUOTE", e.Pair)
}

// ProviderError is a non-404 failure from one upstream provider. It is
// absorbed by the fallback chain and never surfaces to callers raw.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// RateLimitError indicates upstream throttling that survived the retry
// budget. Like ProviderError it triggers fallback, never a caller error.
type RateLimitError struct {
	Provider string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: rate limited after retries", e.Provider)
}

// ResolutionFailedError is surfaced when the cache and every provider
// in the fallback chain failed to resolve a symbol.
type ResolutionFailedError struct {
	Symbol string
	Chain  ChainID
}

func (e *ResolutionFailedError) Error() string {
	return fmt.Sprintf("could not resolve contract address for %s on %s", e.Symbol, e.Chain)
}

// ScamTokenError is returned by the token registry when a token is on
// the scam set.
type ScamTokenError struct {
	Key    TokenKey
	Reason string
}

func (e *ScamTokenError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("token %s is marked as scam: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("token %s is marked as scam", e.Key)
}

// NoDataError is returned by the token registry when no price snapshot
// exists for a token.
type NoDataError struct {
	Key TokenKey
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no market data found for %s", e.Key)
}
