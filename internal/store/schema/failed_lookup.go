package schema

import (
	"time"
)

// FailedLookup represents the failed_contract_lookups table - a record of
// symbol/chain combinations every provider failed to resolve, kept for
// later analysis of coverage gaps
type FailedLookup struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TokenSymbol is the uppercase ticker symbol that failed to resolve
	TokenSymbol string `gorm:"column:token_symbol;not null;type:text;uniqueIndex:idx_failed_lookups_symbol_chain,priority:1"`
	// Blockchain is the lowercase canonical chain identifier
	Blockchain string `gorm:"column:blockchain;not null;type:text;uniqueIndex:idx_failed_lookups_symbol_chain,priority:2"`
	// ErrorMessage is the failure reason from the most recent attempt
	ErrorMessage *string `gorm:"column:error_message;type:text"`
	// FailedAt is the timestamp of the most recent failed attempt
	FailedAt time.Time `gorm:"column:failed_at;not null;default:now();type:timestamptz"`
	// RetryCount is the number of times this lookup has failed
	RetryCount int `gorm:"column:retry_count;not null;default:0"`
}

// TableName specifies the table name for the FailedLookup model
func (FailedLookup) TableName() string {
	return "failed_contract_lookups"
}
