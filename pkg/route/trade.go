package route

import (
	"fmt"

	"lukechampine.com/uint128"
)

// TradeResult is the outcome of composing a swap across a route of pools
// (§3, §4.5).
type TradeResult struct {
	AmountIn    uint128.Uint128
	AmountOut   uint128.Uint128
	Route       []uint32
	PriceImpact float64
}

// BatchTradeResult pairs a TradeResult with a per-element error, mirroring
// calculate_trades_batch's "failures are reported per element, not
// fatally" contract (§4.5).
type BatchTradeResult struct {
	Trade TradeResult
	Err   error
}

// CalculateRouteOutput swaps amountIn of tokenIn through route (a sequence
// of numeric pool ids) in order, carrying the output of each hop as the
// input to the next, and returns the final TradeResult. PriceImpact is
// always 0 — reserved but unspecified per §9 open question 1.
func (r *Registry) CalculateRouteOutput(route []uint32, amountIn uint128.Uint128, tokenIn string) (TradeResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.initialized {
		return TradeResult{}, ErrRegistryUninitialized
	}
	if len(route) == 0 {
		return TradeResult{}, ErrEmptyRoute
	}

	currentAmount := amountIn.Big()
	currentToken := tokenIn

	for _, poolID := range route {
		pool, ok := r.fullPools[poolID]
		if !ok {
			return TradeResult{}, fmt.Errorf("%w: pool %d not found among %d available pools", ErrUnknownPool, poolID, len(r.fullPools))
		}

		zeroForOne := pool.TokenAID == currentToken
		if !zeroForOne && pool.TokenBID != currentToken {
			return TradeResult{}, fmt.Errorf("%w: pool %d does not carry token %q", ErrTokenMismatch, poolID, currentToken)
		}

		swapResult := pool.Swap(zeroForOne, currentAmount, nil, r.maxIterations, r.logger)

		currentAmount = swapResult.AmountOut.Big()
		if zeroForOne {
			currentToken = pool.TokenBID
		} else {
			currentToken = pool.TokenAID
		}
	}

	return TradeResult{
		AmountIn:    amountIn,
		AmountOut:   uint128.FromBig(currentAmount),
		Route:       route,
		PriceImpact: 0.0,
	}, nil
}

// CalculateTradesBatch computes CalculateRouteOutput for every (route,
// amount) pair in row-major order: for each route, for each amount, one
// result. A failure on one element does not abort the rest of the batch.
func (r *Registry) CalculateTradesBatch(routes [][]uint32, amounts []uint128.Uint128, tokenIn string) []BatchTradeResult {
	results := make([]BatchTradeResult, 0, len(routes)*len(amounts))
	for _, route := range routes {
		for _, amount := range amounts {
			trade, err := r.CalculateRouteOutput(route, amount, tokenIn)
			results = append(results, BatchTradeResult{Trade: trade, Err: err})
		}
	}
	return results
}
