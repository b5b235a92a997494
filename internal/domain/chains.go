package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ChainID is the canonical lowercase blockchain identifier. Every
// externally supplied chain string must normalize to exactly one
// ChainID before it is used anywhere else in the system.
type ChainID string

const (
	ChainEthereum  ChainID = "ethereum"
	ChainBSC       ChainID = "bsc"
	ChainPolygon   ChainID = "polygon"
	ChainArbitrum  ChainID = "arbitrum"
	ChainOptimism  ChainID = "optimism"
	ChainBase      ChainID = "base"
	ChainAvalanche ChainID = "avalanche"
	ChainFantom    ChainID = "fantom"
	ChainSolana    ChainID = "solana"
	ChainSui       ChainID = "sui"
	ChainAptos     ChainID = "aptos"
	ChainZkSync    ChainID = "zksync"
	ChainScroll    ChainID = "scroll"
	ChainLinea     ChainID = "linea"
	ChainBlast     ChainID = "blast"
	ChainSonic     ChainID = "sonic"
	ChainBerachain ChainID = "berachain"
)

// supportedChains is the closed set of chains the resolver understands.
var supportedChains = map[ChainID]struct{}{
	ChainEthereum: {}, ChainBSC: {}, ChainPolygon: {}, ChainArbitrum: {},
	ChainOptimism: {}, ChainBase: {}, ChainAvalanche: {}, ChainFantom: {},
	ChainSolana: {}, ChainSui: {}, ChainAptos: {}, ChainZkSync: {},
	ChainScroll: {}, ChainLinea: {}, ChainBlast: {}, ChainSonic: {},
	ChainBerachain: {},
}

// chainAliases maps common user inputs onto canonical chain IDs.
// The mapping is many-to-one and static.
var chainAliases = map[string]ChainID{
	"eth":     ChainEthereum,
	"ether":   ChainEthereum,
	"mainnet": ChainEthereum,
	"bnb":     ChainBSC,
	"binance": ChainBSC,
	"matic":   ChainPolygon,
	"poly":    ChainPolygon,
	"arb":     ChainArbitrum,
	"op":      ChainOptimism,
	"avax":    ChainAvalanche,
	"ftm":     ChainFantom,
	"sol":     ChainSolana,
}

// nativeTokens maps each EVM chain to its gas token symbol. Native
// assets have no contract address and short-circuit resolution.
var nativeTokens = map[ChainID]string{
	ChainEthereum:  "ETH",
	ChainBSC:       "BNB",
	ChainPolygon:   "MATIC",
	ChainAvalanche: "AVAX",
	ChainFantom:    "FTM",
	ChainArbitrum:  "ETH",
	ChainOptimism:  "ETH",
	ChainBase:      "ETH",
}

// NormalizeChain canonicalizes a human-supplied chain identifier.
// It lowercases and trims the input, applies the alias table, and
// validates the result against the supported set.
func NormalizeChain(input string) (ChainID, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", &InvalidChainError{Input: input}
	}

	if canonical, ok := chainAliases[normalized]; ok {
		return canonical, nil
	}

	chain := ChainID(normalized)
	if _, ok := supportedChains[chain]; !ok {
		return "", &InvalidChainError{Input: input}
	}

	return chain, nil
}

// IsValidChain reports whether a chain is in the supported set.
func IsValidChain(chain ChainID) bool {
	_, ok := supportedChains[chain]
	return ok
}

// NativeToken returns the native asset symbol for a chain, if any.
func NativeToken(chain ChainID) (string, bool) {
	symbol, ok := nativeTokens[chain]
	return symbol, ok
}

// NormalizeAddress lowercases a contract address. For valid EVM hex
// addresses it round-trips through go-ethereum's address type so that
// mixed-case and checksummed input always produce the same canonical form.
func NormalizeAddress(address string) string {
	trimmed := strings.TrimSpace(address)
	if common.IsHexAddress(trimmed) {
		return strings.ToLower(common.HexToAddress(trimmed).Hex())
	}
	return strings.ToLower(trimmed)
}

// IsEVMAddress reports whether the input parses as a hex contract address.
func IsEVMAddress(input string) bool {
	return common.IsHexAddress(strings.TrimSpace(input))
}
