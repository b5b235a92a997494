package store

import (
	"context"
	"time"

	"github.com/feral-file/token-resolver/internal/domain"
	"github.com/feral-file/token-resolver/internal/store/schema"
)

//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks

// Store defines the interface for database operations
type Store interface {
	// GetContract retrieves the most recently verified contract for a
	// symbol on a chain, or nil when none is cached
	GetContract(ctx context.Context, symbol string, chain domain.ChainID) (*schema.ContractAddress, error)
	// GetContractByAddress retrieves a cached contract by chain and address,
	// or nil when none is cached
	GetContractByAddress(ctx context.Context, chain domain.ChainID, address string) (*schema.ContractAddress, error)
	// UpsertContract writes a resolved contract through to the durable cache,
	// stamping LastVerifiedAt, and returns the stored row
	UpsertContract(ctx context.Context, contract *schema.ContractAddress) (*schema.ContractAddress, error)
	// RecordAPICall appends one row to the provider call log
	RecordAPICall(ctx context.Context, log *schema.APICallLog) error
	// UpsertFailedLookup records an exhausted resolution, incrementing the
	// retry count for repeat failures
	UpsertFailedLookup(ctx context.Context, symbol string, chain domain.ChainID, errorMessage string) error
	// APICallStats aggregates the call log per provider since the cutoff
	APICallStats(ctx context.Context, since time.Time) (map[string]*domain.ProviderStats, error)
	// SavePair upserts a resolved trading pair keyed by (pair_symbol, blockchain)
	SavePair(ctx context.Context, pair *schema.PairContract) (*schema.PairContract, error)
	// ListFailedLookups returns failed lookups ordered by most recent failure
	ListFailedLookups(ctx context.Context, limit int) ([]schema.FailedLookup, error)
}
