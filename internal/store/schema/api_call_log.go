package schema

import (
	"time"
)

// APICallLog represents the api_call_logs table - an append-only log of every
// upstream provider call, successful or not, with latency for stats queries
type APICallLog struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// APIName identifies the upstream provider (coingecko, 1inch, dexscreener, etherscan)
	APIName string `gorm:"column:api_name;not null;type:text;index"`
	// Endpoint is the provider endpoint or query the call targeted
	Endpoint *string `gorm:"column:endpoint;type:text"`
	// StatusCode is the HTTP status returned by the provider, when one was received
	StatusCode *int `gorm:"column:status_code;type:integer"`
	// Success indicates whether the call produced a usable result
	Success bool `gorm:"column:success;not null;default:false;index:idx_api_call_logs_success_called,priority:1"`
	// ResponseTimeMS is the wall-clock call duration in milliseconds
	ResponseTimeMS *int64 `gorm:"column:response_time_ms;type:bigint"`
	// CalledAt is the timestamp the call was made
	CalledAt time.Time `gorm:"column:called_at;not null;default:now();type:timestamptz;index;index:idx_api_call_logs_success_called,priority:2"`
	// ErrorMessage holds the failure reason for unsuccessful calls
	ErrorMessage *string `gorm:"column:error_message;type:text"`
}

// TableName specifies the table name for the APICallLog model
func (APICallLog) TableName() string {
	return "api_call_logs"
}
