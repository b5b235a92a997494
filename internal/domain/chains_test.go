package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feral-file/token-resolver/internal/domain"
)

func TestNormalizeChain(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.ChainID
		wantErr bool
	}{
		{
			name:  "canonical lowercase",
			input: "ethereum",
			want:  domain.ChainEthereum,
		},
		{
			name:  "uppercase",
			input: "ETHEREUM",
			want:  domain.ChainEthereum,
		},
		{
			name:  "surrounding whitespace",
			input: "  polygon  ",
			want:  domain.ChainPolygon,
		},
		{
			name:  "alias eth",
			input: "eth",
			want:  domain.ChainEthereum,
		},
		{
			name:  "alias mainnet",
			input: "mainnet",
			want:  domain.ChainEthereum,
		},
		{
			name:  "alias bnb",
			input: "bnb",
			want:  domain.ChainBSC,
		},
		{
			name:  "alias matic",
			input: "MATIC",
			want:  domain.ChainPolygon,
		},
		{
			name:  "alias sol",
			input: "sol",
			want:  domain.ChainSolana,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "unknown chain",
			input:   "dogechain",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.NormalizeChain(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				var invalidErr *domain.InvalidChainError
				assert.ErrorAs(t, err, &invalidErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsValidChain(t *testing.T) {
	assert.True(t, domain.IsValidChain(domain.ChainEthereum))
	assert.True(t, domain.IsValidChain(domain.ChainBerachain))
	assert.False(t, domain.IsValidChain(domain.ChainID("dogechain")))
	assert.False(t, domain.IsValidChain(domain.ChainID("")))
}

func TestNativeToken(t *testing.T) {
	tests := []struct {
		chain  domain.ChainID
		symbol string
		ok     bool
	}{
		{domain.ChainEthereum, "ETH", true},
		{domain.ChainBSC, "BNB", true},
		{domain.ChainPolygon, "MATIC", true},
		{domain.ChainArbitrum, "ETH", true},
		{domain.ChainBase, "ETH", true},
		{domain.ChainSolana, "", false},
		{domain.ChainSui, "", false},
	}

	for _, tt := range tests {
		symbol, ok := domain.NativeToken(tt.chain)
		assert.Equal(t, tt.ok, ok, "chain %s", tt.chain)
		assert.Equal(t, tt.symbol, symbol, "chain %s", tt.chain)
	}
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "checksummed EVM address",
			input: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
			want:  "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
		},
		{
			name:  "already lowercase",
			input: "0xdac17f958d2ee523a2206206994597c13d831ec7",
			want:  "0xdac17f958d2ee523a2206206994597c13d831ec7",
		},
		{
			name:  "whitespace trimmed",
			input: "  0xdAC17F958D2ee523a2206206994597C13D831ec7  ",
			want:  "0xdac17f958d2ee523a2206206994597c13d831ec7",
		},
		{
			name:  "non-EVM address lowercased",
			input: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
			want:  "epjfwdd5aufqssqem2qn1xzybapc8g4weggkzwytdt1v",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NormalizeAddress(tt.input))
		})
	}
}

func TestIsEVMAddress(t *testing.T) {
	assert.True(t, domain.IsEVMAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"))
	assert.True(t, domain.IsEVMAddress("  0xdac17f958d2ee523a2206206994597c13d831ec7  "))
	assert.False(t, domain.IsEVMAddress("0x123"))
	assert.False(t, domain.IsEVMAddress("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"))
	assert.False(t, domain.IsEVMAddress(""))
}
