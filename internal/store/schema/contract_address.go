package schema

import (
	"time"

	"github.com/feral-file/token-resolver/internal/domain"
)

// ContractAddress represents the contract_addresses table - the durable cache of
// resolved token contracts keyed by (token_symbol, blockchain, contract_address)
type ContractAddress struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TokenSymbol is the uppercase ticker symbol (e.g., "USDT")
	TokenSymbol string `gorm:"column:token_symbol;not null;type:text;uniqueIndex:idx_contract_addresses_identity,priority:1"`
	// TokenName is the human-readable token name reported by the resolving provider
	TokenName *string `gorm:"column:token_name;type:text"`
	// ContractAddress is the on-chain contract address in the chain's canonical casing
	ContractAddress string `gorm:"column:contract_address;not null;type:text;index;uniqueIndex:idx_contract_addresses_identity,priority:3"`
	// Blockchain is the lowercase canonical chain identifier (e.g., "ethereum")
	Blockchain string `gorm:"column:blockchain;not null;type:text;uniqueIndex:idx_contract_addresses_identity,priority:2"`
	// Decimals is the token's decimal precision, when the provider reported one
	Decimals *int `gorm:"column:decimals;type:integer"`
	// Verified indicates whether the resolving provider considers the contract verified
	Verified bool `gorm:"column:verified;not null;default:false"`
	// Source names the provider that produced this record (coingecko, 1inch, dexscreener, etherscan)
	Source string `gorm:"column:source;not null;type:text"`
	// CreatedAt is the timestamp when this record was first resolved
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last written
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
	// LastVerifiedAt is the timestamp of the last successful provider confirmation,
	// used as the cache-freshness anchor
	LastVerifiedAt *time.Time `gorm:"column:last_verified_at;type:timestamptz;index"`
}

// TableName specifies the table name for the ContractAddress model
func (ContractAddress) TableName() string {
	return "contract_addresses"
}

// IsCacheValid reports whether the record is fresh enough to serve without
// re-querying upstream providers. A record with no LastVerifiedAt is stale.
func (c *ContractAddress) IsCacheValid(ttl time.Duration, now time.Time) bool {
	if c.LastVerifiedAt == nil {
		return false
	}
	return now.Sub(*c.LastVerifiedAt) < ttl
}

// ToRecord converts the row into a domain token record served from cache.
func (c *ContractAddress) ToRecord() *domain.TokenRecord {
	address := c.ContractAddress
	record := &domain.TokenRecord{
		Symbol:   c.TokenSymbol,
		Contract: &address,
		Verified: c.Verified,
		Source:   string(domain.SourceCache),
	}
	if c.TokenName != nil {
		record.Name = *c.TokenName
	}
	if c.Decimals != nil {
		record.Decimals = *c.Decimals
	}
	return record
}
