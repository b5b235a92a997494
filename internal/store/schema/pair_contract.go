package schema

import (
	"time"
)

// PairContract represents the pair_contracts table - resolved trading pairs
// linking both legs to their contract_addresses rows
type PairContract struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// PairSymbol is the normalized pair in "BASE/QUOTE" form (e.g., "ETH/USDT")
	PairSymbol string `gorm:"column:pair_symbol;not null;type:text;uniqueIndex:idx_pair_contracts_symbol_chain,priority:1"`
	// BaseTokenID references the contract_addresses row for the base leg
	// (nil when the base is a native asset with no contract)
	BaseTokenID *int64 `gorm:"column:base_token_id;type:bigint;index"`
	// QuoteTokenID references the contract_addresses row for the quote leg
	// (nil when the quote is a native asset with no contract)
	QuoteTokenID *int64 `gorm:"column:quote_token_id;type:bigint;index"`
	// Blockchain is the lowercase canonical chain identifier
	Blockchain string `gorm:"column:blockchain;not null;type:text;index;uniqueIndex:idx_pair_contracts_symbol_chain,priority:2"`
	// DexName is the DEX the pair was observed on, when known
	DexName *string `gorm:"column:dex_name;type:text"`
	// LiquidityUSD is the pair's USD liquidity at resolution time, when known
	LiquidityUSD *float64 `gorm:"column:liquidity_usd;type:numeric(20,2)"`
	// CreatedAt is the timestamp when this pair was first resolved
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this pair was last re-resolved
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	BaseToken  *ContractAddress `gorm:"foreignKey:BaseTokenID;constraint:OnDelete:CASCADE"`
	QuoteToken *ContractAddress `gorm:"foreignKey:QuoteTokenID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the PairContract model
func (PairContract) TableName() string {
	return "pair_contracts"
}
