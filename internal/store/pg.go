package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/token-resolver/internal/domain"
	"github.com/feral-file/token-resolver/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// AutoMigrate creates or updates the resolver tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.ContractAddress{},
		&schema.FailedLookup{},
		&schema.APICallLog{},
		&schema.PairContract{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// GetContract retrieves the most recently verified contract for a symbol on a chain
func (s *pgStore) GetContract(ctx context.Context, symbol string, chain domain.ChainID) (*schema.ContractAddress, error) {
	var contract schema.ContractAddress
	err := s.db.WithContext(ctx).
		Where("token_symbol = ? AND blockchain = ?", symbol, string(chain)).
		Order("last_verified_at DESC NULLS LAST").
		First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}
	return &contract, nil
}

// GetContractByAddress retrieves a cached contract by chain and address
func (s *pgStore) GetContractByAddress(ctx context.Context, chain domain.ChainID, address string) (*schema.ContractAddress, error) {
	var contract schema.ContractAddress
	err := s.db.WithContext(ctx).
		Where("blockchain = ? AND lower(contract_address) = lower(?)", string(chain), address).
		First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contract by address: %w", err)
	}
	return &contract, nil
}

// UpsertContract writes a resolved contract through to the durable cache
func (s *pgStore) UpsertContract(ctx context.Context, contract *schema.ContractAddress) (*schema.ContractAddress, error) {
	now := time.Now()
	if contract.LastVerifiedAt == nil {
		contract.LastVerifiedAt = &now
	}
	contract.UpdatedAt = now

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "token_symbol"}, {Name: "blockchain"}, {Name: "contract_address"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"token_name", "decimals", "verified", "source", "updated_at", "last_verified_at",
		}),
	}).Create(contract).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert contract: %w", err)
	}

	// On conflict GORM does not backfill the row ID, so re-read it
	if contract.ID == 0 {
		var stored schema.ContractAddress
		err := s.db.WithContext(ctx).
			Where("token_symbol = ? AND blockchain = ? AND contract_address = ?",
				contract.TokenSymbol, contract.Blockchain, contract.ContractAddress).
			First(&stored).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get upserted contract: %w", err)
		}
		return &stored, nil
	}
	return contract, nil
}

// RecordAPICall appends one row to the provider call log
func (s *pgStore) RecordAPICall(ctx context.Context, log *schema.APICallLog) error {
	if err := s.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to record api call: %w", err)
	}
	return nil
}

// UpsertFailedLookup records an exhausted resolution attempt
func (s *pgStore) UpsertFailedLookup(ctx context.Context, symbol string, chain domain.ChainID, errorMessage string) error {
	now := time.Now()
	failed := schema.FailedLookup{
		TokenSymbol:  symbol,
		Blockchain:   string(chain),
		ErrorMessage: &errorMessage,
		FailedAt:     now,
		RetryCount:   1,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "token_symbol"}, {Name: "blockchain"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"error_message": errorMessage,
			"failed_at":     now,
			"retry_count":   gorm.Expr("failed_contract_lookups.retry_count + 1"),
		}),
	}).Create(&failed).Error
	if err != nil {
		return fmt.Errorf("failed to upsert failed lookup: %w", err)
	}
	return nil
}

// APICallStats aggregates the call log per provider since the cutoff
func (s *pgStore) APICallStats(ctx context.Context, since time.Time) (map[string]*domain.ProviderStats, error) {
	var rows []struct {
		APIName      string
		Total        int64
		Success      int64
		AvgLatencyMS *float64
	}
	err := s.db.WithContext(ctx).
		Model(&schema.APICallLog{}).
		Select("api_name, COUNT(*) AS total, COUNT(*) FILTER (WHERE success) AS success, AVG(response_time_ms) AS avg_latency_ms").
		Where("called_at >= ?", since).
		Group("api_name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate api call stats: %w", err)
	}

	stats := make(map[string]*domain.ProviderStats, len(rows))
	for _, row := range rows {
		provider := &domain.ProviderStats{
			Total:   row.Total,
			Success: row.Success,
			Failed:  row.Total - row.Success,
		}
		if row.AvgLatencyMS != nil {
			provider.AvgLatencyMS = int64(*row.AvgLatencyMS)
		}
		stats[row.APIName] = provider
	}
	return stats, nil
}

// SavePair upserts a resolved trading pair
func (s *pgStore) SavePair(ctx context.Context, pair *schema.PairContract) (*schema.PairContract, error) {
	pair.UpdatedAt = time.Now()
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "pair_symbol"}, {Name: "blockchain"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"base_token_id", "quote_token_id", "dex_name", "liquidity_usd", "updated_at",
		}),
	}).Create(pair).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save pair: %w", err)
	}
	return pair, nil
}

// ListFailedLookups returns failed lookups ordered by most recent failure
func (s *pgStore) ListFailedLookups(ctx context.Context, limit int) ([]schema.FailedLookup, error) {
	if limit <= 0 {
		limit = 100
	}
	var lookups []schema.FailedLookup
	err := s.db.WithContext(ctx).
		Order("failed_at DESC").
		Limit(limit).
		Find(&lookups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list failed lookups: %w", err)
	}
	return lookups, nil
}
