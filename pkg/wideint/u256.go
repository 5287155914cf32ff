// Package wideint provides a 256-bit unsigned integer primitive used as the
// overflow-free intermediate for the fixed-point math in pkg/fixedpoint.
//
// Every product of two u128 values used by the CLAMM engine fits in 256 bits;
// this package exists so that invariant is enforced by the type system rather
// than by hoping callers never multiply two max-sized u128s together.
package wideint

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"lukechampine.com/uint128"
)

// U256 is an unsigned 256-bit integer. The zero value is zero.
type U256 struct {
	v uint256.Int
}

// Zero returns the additive identity.
func Zero() U256 {
	return U256{}
}

// One returns the multiplicative identity.
func One() U256 {
	var z uint256.Int
	z.SetOne()
	return U256{z}
}

// Max returns 2^256 - 1.
func Max() U256 {
	var z uint256.Int
	z.SetAllOne()
	return U256{z}
}

// FromU64 constructs a U256 from a uint64.
func FromU64(v uint64) U256 {
	var z uint256.Int
	z.SetUint64(v)
	return U256{z}
}

// FromU128 constructs a U256 from a u128 value.
func FromU128(v uint128.Uint128) U256 {
	z, _ := uint256.FromBig(v.Big())
	return U256{*z}
}

// FromDecimalString parses a base-10 literal into a U256. It returns an error
// if the string is not a valid non-negative decimal integer or exceeds 256
// bits.
func FromDecimalString(s string) (U256, error) {
	z, err := uint256.FromDecimal(s)
	if err != nil {
		return U256{}, fmt.Errorf("wideint: invalid decimal %q: %w", s, err)
	}
	return U256{*z}, nil
}

// MustFromDecimalString is FromDecimalString, panicking on error. Only use
// for known-valid constants (e.g. the tick-ratio tables in pkg/fixedpoint).
func MustFromDecimalString(s string) U256 {
	u, err := FromDecimalString(s)
	if err != nil {
		panic(err)
	}
	return u
}

// Add returns a + b. The sum of two 256-bit values can overflow; callers in
// this codebase never rely on that case, so overflow wraps mod 2^256 as
// uint256.Int.Add does.
func (a U256) Add(b U256) U256 {
	var z uint256.Int
	z.Add(&a.v, &b.v)
	return U256{z}
}

// Sub returns a - b, wrapping mod 2^256 on underflow.
func (a U256) Sub(b U256) U256 {
	var z uint256.Int
	z.Sub(&a.v, &b.v)
	return U256{z}
}

// Mul returns the exact mathematical product a * b. Any product of two u128
// operands fits in 256 bits, so this never needs to "overflow" for this
// module's callers.
func (a U256) Mul(b U256) U256 {
	var z uint256.Int
	z.Mul(&a.v, &b.v)
	return U256{z}
}

// Div returns floor(a / b). Division by zero is undefined; the caller must
// guard against a zero divisor (see pkg/fixedpoint.MulDiv).
func (a U256) Div(b U256) U256 {
	var z uint256.Int
	z.Div(&a.v, &b.v)
	return U256{z}
}

// Mod returns a % b. Division by zero is undefined, as with Div.
func (a U256) Mod(b U256) U256 {
	var z uint256.Int
	z.Mod(&a.v, &b.v)
	return U256{z}
}

// Lsh returns a << n.
func (a U256) Lsh(n uint32) U256 {
	var z uint256.Int
	z.Lsh(&a.v, uint(n))
	return U256{z}
}

// Rsh returns a >> n.
func (a U256) Rsh(n uint32) U256 {
	var z uint256.Int
	z.Rsh(&a.v, uint(n))
	return U256{z}
}

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func (a U256) Cmp(b U256) int {
	return a.v.Cmp(&b.v)
}

// Gte reports whether a >= b.
func (a U256) Gte(b U256) bool {
	return a.Cmp(b) >= 0
}

// Gt reports whether a > b.
func (a U256) Gt(b U256) bool {
	return a.Cmp(b) > 0
}

// Eq reports whether a == b.
func (a U256) Eq(b U256) bool {
	return a.Cmp(b) == 0
}

// IsZero reports whether a is zero.
func (a U256) IsZero() bool {
	return a.v.IsZero()
}

// AsU128 narrows a to the low 128 bits, truncating silently. Callers are
// responsible for range guarantees before narrowing (spec §4.1).
func (a U256) AsU128() uint128.Uint128 {
	b := a.v.ToBig()
	var mask big.Int
	mask.SetString("ffffffffffffffffffffffffffffffff", 16)
	b.And(b, &mask)
	return uint128.FromBig(b)
}

// AsU64 narrows a to the low 64 bits, truncating silently.
func (a U256) AsU64() uint64 {
	return a.v.Uint64()
}

// AsU32 narrows a to the low 32 bits, truncating silently.
func (a U256) AsU32() uint32 {
	return uint32(a.v.Uint64())
}

// String returns the base-10 representation of a.
func (a U256) String() string {
	return a.v.ToBig().String()
}
