// Package concentrated_liquidity implements the CLAMM pool model: Q64.64
// sqrt-price state, tick-indexed liquidity, and the step-wise swap kernel
// that walks a pool across initialized ticks. The math in this file is
// ported bit-for-bit from the wasm-route-finder reference's swap_math.rs
// (itself tracking a C++ SwapMath/SqrtPriceMath contract implementation),
// generalized from that crate's free functions into exported Go functions
// operating on uint128.Uint128 sqrt prices.
package concentrated_liquidity

import (
	"lukechampine.com/uint128"

	"github.com/quantedge-labs/clamm-router/pkg/fixedpoint"
	"github.com/quantedge-labs/clamm-router/pkg/wideint"
)

// q64 is 1<<64, used to convert between Q64.64 fixed-point amounts and
// plain token-unit amounts in the amount-B delta formulas.
var q64 = uint128.From64(1).Lsh(64)

// clampU128ToU64 narrows v to uint64, saturating at math.MaxUint64.
func clampU128ToU64(v uint128.Uint128) uint64 {
	if v.Cmp(uint128.From64(^uint64(0))) > 0 {
		return ^uint64(0)
	}
	return v.Lo
}

// GetAmountADelta returns the amount of token A required to move liquidity
// between the two sqrt prices, order-independent, rounded per roundUp.
func GetAmountADelta(sqrtRatioLX64, sqrtRatioUX64 uint128.Uint128, liquidity uint64, roundUp bool) uint64 {
	lower, upper := sqrtRatioLX64, sqrtRatioUX64
	if lower.Cmp(upper) > 0 {
		lower, upper = upper, lower
	}

	numerator1 := uint128.From64(liquidity).Lsh(fixedpoint.FixedPointShift)
	var numerator2 uint128.Uint128
	if upper.Cmp(lower) > 0 {
		numerator2 = upper.Sub(lower)
	}

	if lower.IsZero() || numerator2.IsZero() {
		return 0
	}

	var amountA uint128.Uint128
	if roundUp {
		amountA = fixedpoint.DivRoundingUp(fixedpoint.MulDivRoundingUp(numerator1, numerator2, upper), lower)
	} else {
		amountA = fixedpoint.MulDiv(numerator1, numerator2, upper).Div(lower)
	}

	return clampU128ToU64(amountA)
}

// GetAmountBDelta returns the amount of token B required to move liquidity
// between the two sqrt prices, order-independent, rounded per roundUp.
func GetAmountBDelta(sqrtRatioLX64, sqrtRatioUX64 uint128.Uint128, liquidity uint64, roundUp bool) uint64 {
	lower, upper := sqrtRatioLX64, sqrtRatioUX64
	if lower.Cmp(upper) > 0 {
		lower, upper = upper, lower
	}

	var diff uint128.Uint128
	if upper.Cmp(lower) > 0 {
		diff = upper.Sub(lower)
	}
	if diff.IsZero() {
		return 0
	}

	var amountB uint128.Uint128
	if roundUp {
		amountB = fixedpoint.MulDivRoundingUp(uint128.From64(liquidity), diff, q64)
	} else {
		amountB = fixedpoint.MulDiv(uint128.From64(liquidity), diff, q64)
	}

	return clampU128ToU64(amountB)
}

// getNextSqrtPriceFromAmountARoundingUp applies an exact amount of token A
// (added when add is true, removed otherwise) to sqrtPX64 and returns the
// resulting sqrt price, always rounded up.
func getNextSqrtPriceFromAmountARoundingUp(sqrtPX64 uint128.Uint128, liquidity, amount uint64, add bool) uint128.Uint128 {
	if amount == 0 || liquidity == 0 {
		return sqrtPX64
	}

	numerator1 := uint128.From64(liquidity).Lsh(fixedpoint.FixedPointShift)

	if add {
		product := saturatingMulU128(uint128.From64(amount), sqrtPX64)
		denominator := saturatingAddU128(numerator1, product)
		if !denominator.IsZero() && denominator.Cmp(numerator1) >= 0 {
			return fixedpoint.MulDivRoundingUp(numerator1, sqrtPX64, denominator)
		}
		if !sqrtPX64.IsZero() {
			quotient := numerator1.Div(sqrtPX64)
			return fixedpoint.DivRoundingUp(numerator1, quotient.Add(uint128.From64(amount)))
		}
		return uint128.Max
	}

	product := saturatingMulU128(uint128.From64(amount), sqrtPX64)
	if numerator1.Cmp(product) > 0 {
		denominator := numerator1.Sub(product)
		return fixedpoint.MulDivRoundingUp(numerator1, sqrtPX64, denominator)
	}
	return uint128.From64(1)
}

// getNextSqrtPriceFromAmountBRoundingDown applies an exact amount of token B
// to sqrtPX64 and returns the resulting sqrt price, always rounded down.
func getNextSqrtPriceFromAmountBRoundingDown(sqrtPX64 uint128.Uint128, liquidity, amount uint64, add bool) uint128.Uint128 {
	if liquidity == 0 {
		return sqrtPX64
	}

	if add {
		quotient := fixedpoint.MulDiv(uint128.From64(amount), q64, uint128.From64(liquidity))
		return saturatingAddU128(sqrtPX64, quotient)
	}

	quotient := fixedpoint.MulDivRoundingUp(uint128.From64(amount), q64, uint128.From64(liquidity))
	result := saturatingSubU128(sqrtPX64, quotient)
	if result.Cmp(uint128.From64(1)) < 0 {
		return uint128.From64(1)
	}
	return result
}

func getNextSqrtPriceFromInput(sqrtPX64 uint128.Uint128, liquidity, amountIn uint64, aForB bool) uint128.Uint128 {
	if sqrtPX64.IsZero() || liquidity == 0 {
		return sqrtPX64
	}
	if aForB {
		return getNextSqrtPriceFromAmountARoundingUp(sqrtPX64, liquidity, amountIn, true)
	}
	return getNextSqrtPriceFromAmountBRoundingDown(sqrtPX64, liquidity, amountIn, true)
}

func getNextSqrtPriceFromOutput(sqrtPX64 uint128.Uint128, liquidity, amountOut uint64, aForB bool) uint128.Uint128 {
	if sqrtPX64.IsZero() || liquidity == 0 {
		return sqrtPX64
	}
	if aForB {
		return getNextSqrtPriceFromAmountBRoundingDown(sqrtPX64, liquidity, amountOut, false)
	}
	return getNextSqrtPriceFromAmountARoundingUp(sqrtPX64, liquidity, amountOut, false)
}

var maxU128AsU256 = wideint.FromU128(uint128.Max)

// saturatingMulU128 returns a*b clamped to uint128.Max on overflow, computed
// via the 256-bit intermediate so the overflow check is exact.
func saturatingMulU128(a, b uint128.Uint128) uint128.Uint128 {
	product := wideint.FromU128(a).Mul(wideint.FromU128(b))
	if product.Gt(maxU128AsU256) {
		return uint128.Max
	}
	return product.AsU128()
}

// saturatingAddU128 returns a+b clamped to uint128.Max on overflow.
func saturatingAddU128(a, b uint128.Uint128) uint128.Uint128 {
	sum := wideint.FromU128(a).Add(wideint.FromU128(b))
	if sum.Gt(maxU128AsU256) {
		return uint128.Max
	}
	return sum.AsU128()
}

func saturatingSubU128(a, b uint128.Uint128) uint128.Uint128 {
	if b.Cmp(a) > 0 {
		return uint128.Zero
	}
	return a.Sub(b)
}

// SwapStepResult is the outcome of a single compute-swap-step invocation:
// the sqrt price reached, and the input/output/fee amounts consumed
// reaching it.
type SwapStepResult struct {
	SqrtRatioNextX64 uint128.Uint128
	AmountIn         uint64
	AmountOut        uint64
	FeeAmount        uint64
}

// ComputeSwapStep advances a swap from sqrtRatioCurrentX64 towards
// sqrtRatioTargetX64 by at most amountRemaining (positive for exact-input,
// negative for exact-output), charging feePips (parts per BarFee). It never
// overshoots sqrtRatioTargetX64.
func ComputeSwapStep(
	sqrtRatioCurrentX64, sqrtRatioTargetX64 uint128.Uint128,
	liquidity uint64,
	amountRemaining int64,
	feePips uint32,
) SwapStepResult {
	if liquidity == 0 {
		return SwapStepResult{SqrtRatioNextX64: sqrtRatioCurrentX64}
	}

	aForB := sqrtRatioCurrentX64.Cmp(sqrtRatioTargetX64) >= 0
	exactIn := amountRemaining >= 0

	var sqrtRatioNextX64 uint128.Uint128
	var amountIn, amountOut uint64

	if exactIn {
		remainingAbs := absInt64(amountRemaining)
		var amountRemainingLessFee uint64
		if feePips > 0 {
			feeAdjusted := fixedpoint.MulDiv(
				uint128.From64(remainingAbs),
				uint128.From64(uint64(fixedpoint.BarFee-feePips)),
				uint128.From64(fixedpoint.BarFee),
			)
			amountRemainingLessFee = clampU128ToU64(feeAdjusted)
		} else {
			amountRemainingLessFee = remainingAbs
		}

		if aForB {
			amountIn = GetAmountADelta(sqrtRatioTargetX64, sqrtRatioCurrentX64, liquidity, true)
		} else {
			amountIn = GetAmountBDelta(sqrtRatioCurrentX64, sqrtRatioTargetX64, liquidity, true)
		}

		if amountRemainingLessFee >= amountIn {
			sqrtRatioNextX64 = sqrtRatioTargetX64
		} else {
			sqrtRatioNextX64 = getNextSqrtPriceFromInput(sqrtRatioCurrentX64, liquidity, amountRemainingLessFee, aForB)
		}
	} else {
		remainingAbs := absInt64(amountRemaining)

		if aForB {
			amountOut = GetAmountBDelta(sqrtRatioTargetX64, sqrtRatioCurrentX64, liquidity, false)
		} else {
			amountOut = GetAmountADelta(sqrtRatioCurrentX64, sqrtRatioTargetX64, liquidity, false)
		}

		if remainingAbs >= amountOut {
			sqrtRatioNextX64 = sqrtRatioTargetX64
		} else {
			sqrtRatioNextX64 = getNextSqrtPriceFromOutput(sqrtRatioCurrentX64, liquidity, remainingAbs, aForB)
		}
	}

	reachedTarget := sqrtRatioTargetX64.Cmp(sqrtRatioNextX64) == 0

	if aForB {
		if reachedTarget && exactIn {
			// amountIn already set above.
		} else {
			amountIn = GetAmountADelta(sqrtRatioNextX64, sqrtRatioCurrentX64, liquidity, true)
		}
		if reachedTarget && !exactIn {
			// amountOut already set above.
		} else {
			amountOut = GetAmountBDelta(sqrtRatioNextX64, sqrtRatioCurrentX64, liquidity, false)
		}
	} else {
		if reachedTarget && exactIn {
			// amountIn already set above.
		} else {
			amountIn = GetAmountBDelta(sqrtRatioCurrentX64, sqrtRatioNextX64, liquidity, true)
		}
		if reachedTarget && !exactIn {
			// amountOut already set above.
		} else {
			amountOut = GetAmountADelta(sqrtRatioCurrentX64, sqrtRatioNextX64, liquidity, false)
		}
	}

	if !exactIn {
		remainingAbs := absInt64(amountRemaining)
		if amountOut > remainingAbs {
			amountOut = remainingAbs
		}
	}

	var feeAmount uint64
	if exactIn && sqrtRatioNextX64.Cmp(sqrtRatioTargetX64) != 0 {
		feeAmount = absInt64(amountRemaining) - amountIn
	} else {
		feeAmount = clampU128ToU64(fixedpoint.MulDivRoundingUp(
			uint128.From64(amountIn),
			uint128.From64(uint64(feePips)),
			uint128.From64(uint64(fixedpoint.BarFee-feePips)),
		))
	}

	return SwapStepResult{
		SqrtRatioNextX64: sqrtRatioNextX64,
		AmountIn:         amountIn,
		AmountOut:        amountOut,
		FeeAmount:        feeAmount,
	}
}

func absInt64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}
