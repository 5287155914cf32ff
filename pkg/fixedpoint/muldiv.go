package fixedpoint

import (
	"lukechampine.com/uint128"

	"github.com/quantedge-labs/clamm-router/pkg/wideint"
)

// MulDiv computes floor(a*b/d) over a 256-bit intermediate product, so the
// multiplication never loses precision even when a and b are both near
// u128::MAX. Division by zero is undefined; callers must guard against d==0.
func MulDiv(a, b, d uint128.Uint128) uint128.Uint128 {
	product := wideint.FromU128(a).Mul(wideint.FromU128(b))
	return product.Div(wideint.FromU128(d)).AsU128()
}

// MulDivRoundingUp computes ceil(a*b/d), adding one iff the remainder of the
// 256-bit division is nonzero.
func MulDivRoundingUp(a, b, d uint128.Uint128) uint128.Uint128 {
	product := wideint.FromU128(a).Mul(wideint.FromU128(b))
	divisor := wideint.FromU128(d)
	quotient := product.Div(divisor)
	if !product.Mod(divisor).IsZero() {
		quotient = quotient.Add(wideint.One())
	}
	return quotient.AsU128()
}

// DivRoundingUp computes ceil(n/d) over u128 operands.
func DivRoundingUp(n, d uint128.Uint128) uint128.Uint128 {
	q, r := n.QuoRem(d)
	if !r.IsZero() {
		q = q.Add64(1)
	}
	return q
}
