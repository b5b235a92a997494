package resolver

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/feral-file/token-resolver/internal/domain"
	"github.com/feral-file/token-resolver/internal/logger"
	"github.com/feral-file/token-resolver/internal/store/schema"
)

// ResolvePair resolves both legs of a "BASE/QUOTE" trading pair on one
// chain. Either leg may be a native asset, in which case its contract
// is nil.
func (r *resolver) ResolvePair(ctx context.Context, pair, chain string) (*domain.PairResolution, error) {
	parts := strings.Split(pair, "/")
	if len(parts) != 2 {
		return nil, &domain.InvalidPairFormatError{Pair: pair}
	}
	baseSymbol := strings.ToUpper(strings.TrimSpace(parts[0]))
	quoteSymbol := strings.ToUpper(strings.TrimSpace(parts[1]))
	if baseSymbol == "" || quoteSymbol == "" {
		return nil, &domain.InvalidPairFormatError{Pair: pair}
	}

	base, err := r.Resolve(ctx, baseSymbol, chain, false)
	if err != nil {
		return nil, err
	}
	quote, err := r.Resolve(ctx, quoteSymbol, chain, false)
	if err != nil {
		return nil, err
	}

	result := &domain.PairResolution{
		Pair:       baseSymbol + "/" + quoteSymbol,
		BaseToken:  base,
		QuoteToken: quote,
		Blockchain: base.Blockchain,
	}

	r.savePair(ctx, result)

	return result, nil
}

// savePair persists the resolved pair best effort, linking each leg to
// its durable cache row when one exists.
func (r *resolver) savePair(ctx context.Context, result *domain.PairResolution) {
	row := &schema.PairContract{
		PairSymbol: result.Pair,
		Blockchain: string(result.Blockchain),
	}
	row.BaseTokenID = r.contractRowID(ctx, result.BaseToken)
	row.QuoteTokenID = r.contractRowID(ctx, result.QuoteToken)

	if _, err := r.store.SavePair(ctx, row); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("pair", result.Pair))
	}
}

func (r *resolver) contractRowID(ctx context.Context, leg *domain.Resolution) *int64 {
	if leg == nil || leg.Contract == nil {
		return nil
	}
	stored, err := r.store.GetContract(ctx, leg.Symbol, leg.Blockchain)
	if err != nil || stored == nil {
		return nil
	}
	id := stored.ID
	return &id
}
