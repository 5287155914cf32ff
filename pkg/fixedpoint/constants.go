// Package fixedpoint implements the Q64.64 fixed-point math underlying the
// CLAMM engine: tick <-> sqrt-price conversion and full-precision mul_div.
//
// Q64.64 here plays the role Q64.96 plays in the on-chain Uniswap V3
// contracts this engine is modeled on — 64 integer bits, 64 fractional bits,
// packed into a u128 per spec. The tick tabulation and binary search below
// are ported bit-for-bit from the wasm-route-finder reference implementation
// rather than derived independently, so every rounding decision matches.
package fixedpoint

import (
	"math/big"

	"lukechampine.com/uint128"
)

const (
	// FixedPointShift is the number of fractional bits in Q64.64.
	FixedPointShift = 64

	// BarFee is the fee denominator, expressed in pips (millionths).
	BarFee = 1_000_000

	// MinTick and MaxTick bound the range get_sqrt_ratio_at_tick tabulates
	// over. Ticks outside this range clamp to the corresponding sqrt-ratio
	// boundary rather than erroring.
	MinTick = -443_636
	MaxTick = 443_636

	// ExtendedTickLimit is the sentinel magnitude used for default swap
	// price limits (§4.4); it exceeds MaxTick so get_sqrt_ratio_at_tick
	// always clamps it to a boundary ratio.
	ExtendedTickLimit = 665_454
)

func mustU128Decimal(s string) uint128.Uint128 {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("fixedpoint: invalid decimal literal " + s)
	}
	return uint128.FromBig(n)
}

// MinSqrtRatio and MaxSqrtRatio bound the valid sqrt-price range (spec §4.2).
var (
	MinSqrtRatio = uint128.From64(4_295_048_017)
	MaxSqrtRatio = mustU128Decimal("79226673515401279992447579062")
)
