// Package providers defines the uniform contract every upstream data
// source implements. The resolver tries providers in a fixed priority
// order and stops at the first success.
package providers

import (
	"context"

	"github.com/feral-file/token-resolver/internal/domain"
)

// Client is the uniform operation exposed by every provider: given a
// token symbol or contract address plus a canonical chain, return a
// normalized record. A provider that answered but does not know the
// token returns domain.ErrNotFound; any other failure is a
// *domain.ProviderError (or *domain.RateLimitError when the retry
// budget was exhausted on 429s).
//
//go:generate mockgen -source=provider.go -destination=../mocks/provider.go -package=mocks -mock_names=Client=MockProviderClient
type Client interface {
	// Name identifies the provider in rate limiter buckets, circuit
	// breakers, and call logs
	Name() string

	// Resolve fetches a normalized token record for a symbol or address
	Resolve(ctx context.Context, query string, chain domain.ChainID) (*domain.TokenRecord, error)
}
