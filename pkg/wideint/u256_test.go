package wideint_test

import (
	"testing"

	"github.com/quantedge-labs/clamm-router/pkg/wideint"
	"lukechampine.com/uint128"
)

func TestMulDoesNotTruncateWithinU256(t *testing.T) {
	a := wideint.FromU128(uint128.Max)
	b := wideint.FromU128(uint128.Max)

	product := a.Mul(b)

	// (2^128 - 1)^2 fits comfortably in 256 bits; dividing back out by one
	// operand must recover the other exactly.
	quotient := product.Div(a)
	if !quotient.Eq(b) {
		t.Fatalf("expected product/a == b, got %s", quotient.String())
	}
}

func TestAddSubRoundTrip(t *testing.T) {
	a := wideint.FromU64(123456789)
	b := wideint.FromU64(987654321)

	sum := a.Add(b)
	back := sum.Sub(b)
	if !back.Eq(a) {
		t.Fatalf("expected %s, got %s", a.String(), back.String())
	}
}

func TestShiftRoundTrip(t *testing.T) {
	a := wideint.FromU64(1)
	shifted := a.Lsh(64)
	if shifted.Rsh(64).AsU64() != 1 {
		t.Fatalf("expected 1 after shift round-trip, got %d", shifted.Rsh(64).AsU64())
	}
}

func TestCompare(t *testing.T) {
	a := wideint.FromU64(5)
	b := wideint.FromU64(10)

	if !b.Gt(a) {
		t.Fatal("expected 10 > 5")
	}
	if !b.Gte(b) {
		t.Fatal("expected 10 >= 10")
	}
	if a.Gt(b) {
		t.Fatal("expected 5 not > 10")
	}
}

func TestFromDecimalString(t *testing.T) {
	u, err := wideint.FromDecimalString("340282366920938463463374607431768211456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.AsU128().Big().String() != "0" {
		// 2^128 does not fit in a u128; the low 128 bits of 2^128 are zero.
		t.Fatalf("AsU128(2^128) = %s, want 0", u.AsU128().Big().String())
	}

	if _, err := wideint.FromDecimalString("not-a-number"); err == nil {
		t.Fatal("expected error for malformed decimal string")
	}
}

func TestMaxAndZero(t *testing.T) {
	if !wideint.Zero().IsZero() {
		t.Fatal("expected Zero() to be zero")
	}
	if wideint.Max().Gt(wideint.Max()) {
		t.Fatal("Max() should not be greater than itself")
	}
	if !wideint.Max().Gt(wideint.Zero()) {
		t.Fatal("Max() should be greater than Zero()")
	}
}
