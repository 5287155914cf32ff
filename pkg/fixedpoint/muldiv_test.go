package fixedpoint_test

import (
	"testing"

	"lukechampine.com/uint128"

	"github.com/quantedge-labs/clamm-router/pkg/fixedpoint"
)

func TestMulDivExact(t *testing.T) {
	a := uint128.From64(1_000_000)
	b := uint128.From64(3)
	d := uint128.From64(2)

	got := fixedpoint.MulDiv(a, b, d)
	want := uint128.From64(1_500_000)
	if got.Cmp(want) != 0 {
		t.Fatalf("MulDiv(%v,%v,%v) = %v, want %v", a, b, d, got, want)
	}
}

func TestMulDivRoundingUpDiffersByAtMostOne(t *testing.T) {
	cases := []struct{ a, b, d uint64 }{
		{7, 5, 3},
		{1, 1, 7},
		{1_000_000, 3000, 997000},
		{18446744073709551615, 2, 3},
	}

	for _, c := range cases {
		a := uint128.From64(c.a)
		b := uint128.From64(c.b)
		d := uint128.From64(c.d)

		down := fixedpoint.MulDiv(a, b, d)
		up := fixedpoint.MulDivRoundingUp(a, b, d)

		diff := up.Sub(down)
		if diff.Cmp(uint128.From64(0)) != 0 && diff.Cmp(uint128.From64(1)) != 0 {
			t.Fatalf("MulDivRoundingUp - MulDiv = %v, want 0 or 1 (a=%d b=%d d=%d)", diff, c.a, c.b, c.d)
		}
	}
}

func TestDivRoundingUp(t *testing.T) {
	cases := []struct {
		n, d, want uint64
	}{
		{10, 2, 5},
		{10, 3, 4},
		{0, 3, 0},
		{1, 1, 1},
	}

	for _, c := range cases {
		got := fixedpoint.DivRoundingUp(uint128.From64(c.n), uint128.From64(c.d))
		if got.Cmp(uint128.From64(c.want)) != 0 {
			t.Fatalf("DivRoundingUp(%d,%d) = %v, want %d", c.n, c.d, got, c.want)
		}
	}
}
