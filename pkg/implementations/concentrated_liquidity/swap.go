package concentrated_liquidity

import (
	"math/big"

	"go.uber.org/zap"
	"lukechampine.com/uint128"

	"github.com/quantedge-labs/clamm-router/pkg/fixedpoint"
)

// DefaultMaxSwapIterations bounds the swap loop as a runaway guard (§4.4).
// Hitting it returns a partial result indistinguishable from a completed
// swap, other than the one Warn line this emits through the injected
// logger. Callers needing a different bound (route.WithMaxIterations) pass
// it explicitly to Swap; zero or negative means "use the default."
const DefaultMaxSwapIterations = 1000

// SwapResult is the outcome of simulating a swap through a single pool.
type SwapResult struct {
	AmountIn          uint128.Uint128
	AmountOut         uint128.Uint128
	SqrtPriceX64After uint128.Uint128
	TickAfter         int32
}

var maxU64AsU128 = uint128.From64(^uint64(0))

func narrowLiquidityToU64(liquidity uint128.Uint128) uint64 {
	if liquidity.Cmp(maxU64AsU128) > 0 {
		return ^uint64(0)
	}
	return liquidity.Lo
}

var (
	maxI64 = big.NewInt(9223372036854775807)
	minI64 = big.NewInt(-9223372036854775808)
)

func narrowAmountToI64(amount *big.Int) int64 {
	if amount.Cmp(maxI64) > 0 {
		return 9223372036854775807
	}
	if amount.Cmp(minI64) < 0 {
		return -9223372036854775808
	}
	return amount.Int64()
}

// addLiquidityDelta applies a signed per-tick liquidity delta to a u128
// running liquidity value (§4.4 step 6). Crossing a tick left-to-right with
// a negative net, or right-to-left with a positive one, is expected to
// leave liquidity within range; malformed tick data is not guarded against
// here, matching the source's unchecked subtraction.
func addLiquidityDelta(liquidity uint128.Uint128, delta *big.Int) uint128.Uint128 {
	if delta.Sign() < 0 {
		abs := new(big.Int).Abs(delta)
		return liquidity.Sub(uint128.FromBig(abs))
	}
	return liquidity.Add(uint128.FromBig(delta))
}

// Swap simulates a swap through the pool without mutating it: it copies the
// dynamic state (sqrt price, tick, liquidity) into a local accumulator,
// walks it across tick boundaries via compute-swap-step, and returns the
// result. zeroForOne sells token A for token B. amountSpecified is signed:
// positive is exact-input, negative is exact-output. sqrtPriceLimitX64, if
// non-nil, bounds how far the price may move; otherwise a default just
// inside the extended ±665454 range is used (§4.4).
//
// logger may be nil, in which case no iteration-cap warning is emitted.
// maxIterations overrides DefaultMaxSwapIterations when positive.
func (p *PoolData) Swap(zeroForOne bool, amountSpecified *big.Int, sqrtPriceLimitX64 *uint128.Uint128, maxIterations int, logger *zap.Logger) SwapResult {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxIterations <= 0 {
		maxIterations = DefaultMaxSwapIterations
	}

	var limit uint128.Uint128
	if sqrtPriceLimitX64 != nil {
		limit = *sqrtPriceLimitX64
	} else if zeroForOne {
		limit = fixedpoint.GetSqrtRatioAtTick(-fixedpoint.ExtendedTickLimit).Add64(1)
	} else {
		limit = fixedpoint.GetSqrtRatioAtTick(fixedpoint.ExtendedTickLimit).Sub64(1)
	}

	exactInput := amountSpecified.Sign() >= 0

	amountSpecifiedRemaining := new(big.Int).Set(amountSpecified)
	amountCalculated := big.NewInt(0)
	sqrtPriceX64 := p.SqrtPriceX64
	tick := p.TickCurrent
	liquidity := p.Liquidity

	sortedIndices := p.sortedTickIndices()

	iterations := 0
	for iterations < maxIterations {
		if amountSpecifiedRemaining.Sign() == 0 || sqrtPriceX64.Cmp(limit) == 0 {
			break
		}
		iterations++

		tickNext, initialized := p.nextInitializedTick(sortedIndices, tick, zeroForOne)
		if tickNext < -fixedpoint.ExtendedTickLimit {
			tickNext = -fixedpoint.ExtendedTickLimit
		}
		if tickNext > fixedpoint.ExtendedTickLimit {
			tickNext = fixedpoint.ExtendedTickLimit
		}
		sqrtPriceNextX64 := fixedpoint.GetSqrtRatioAtTick(tickNext)

		var targetPrice uint128.Uint128
		if (zeroForOne && sqrtPriceNextX64.Cmp(limit) < 0) || (!zeroForOne && sqrtPriceNextX64.Cmp(limit) > 0) {
			targetPrice = limit
		} else {
			targetPrice = sqrtPriceNextX64
		}

		liquidityU64 := narrowLiquidityToU64(liquidity)
		amountRemainingI64 := narrowAmountToI64(amountSpecifiedRemaining)

		step := ComputeSwapStep(sqrtPriceX64, targetPrice, liquidityU64, amountRemainingI64, p.Fee)

		sqrtPriceX64 = step.SqrtRatioNextX64

		if exactInput {
			spent := new(big.Int).Add(
				new(big.Int).SetUint64(step.AmountIn),
				new(big.Int).SetUint64(step.FeeAmount),
			)
			amountSpecifiedRemaining.Sub(amountSpecifiedRemaining, spent)
			amountCalculated.Sub(amountCalculated, new(big.Int).SetUint64(step.AmountOut))
		} else {
			amountSpecifiedRemaining.Add(amountSpecifiedRemaining, new(big.Int).SetUint64(step.AmountOut))
			gained := new(big.Int).Add(
				new(big.Int).SetUint64(step.AmountIn),
				new(big.Int).SetUint64(step.FeeAmount),
			)
			amountCalculated.Add(amountCalculated, gained)
		}

		if sqrtPriceX64.Cmp(sqrtPriceNextX64) == 0 {
			if initialized {
				if tickData, ok := p.Ticks[tickNext]; ok {
					liquidityNet := tickData.LiquidityNet
					if zeroForOne {
						liquidityNet = new(big.Int).Neg(liquidityNet)
					}
					liquidity = addLiquidityDelta(liquidity, liquidityNet)
				}
			}
			if zeroForOne {
				tick = tickNext - 1
			} else {
				tick = tickNext
			}
		} else if sqrtPriceX64.Cmp(targetPrice) != 0 {
			tick = fixedpoint.GetTickAtSqrtRatio(sqrtPriceX64)
		}

		if amountSpecifiedRemaining.Sign() == 0 {
			break
		}
	}

	if iterations >= maxIterations {
		logger.Warn("swap loop hit iteration cap, returning partial result",
			zap.Uint32("pool_id", p.ID),
			zap.Int("max_iterations", maxIterations),
		)
	}

	spent := new(big.Int).Abs(new(big.Int).Sub(amountSpecified, amountSpecifiedRemaining))
	calculatedAbs := new(big.Int).Abs(amountCalculated)

	var amountA, amountB *big.Int
	if zeroForOne == exactInput {
		amountA, amountB = spent, calculatedAbs
	} else {
		amountA, amountB = calculatedAbs, spent
	}

	var amountIn, amountOut *big.Int
	if zeroForOne {
		amountIn, amountOut = amountA, amountB
	} else {
		amountIn, amountOut = amountB, amountA
	}

	return SwapResult{
		AmountIn:          uint128.FromBig(amountIn),
		AmountOut:         uint128.FromBig(amountOut),
		SqrtPriceX64After: sqrtPriceX64,
		TickAfter:         tick,
	}
}
