package concentrated_liquidity

import (
	"testing"

	"lukechampine.com/uint128"

	"github.com/quantedge-labs/clamm-router/pkg/fixedpoint"
)

func TestNewPoolDataValidatesTokens(t *testing.T) {
	sqrtPrice := fixedpoint.GetSqrtRatioAtTick(0)
	if _, err := NewPoolData(1, "X", "X", 3000, sqrtPrice, uint128.From64(1), 0, nil); err == nil {
		t.Errorf("expected error for identical token ids")
	}
	if _, err := NewPoolData(1, "X", "Y", 3000, sqrtPrice, uint128.From64(1), 0, nil); err != nil {
		t.Errorf("unexpected error for valid pool: %v", err)
	}
}

func TestNewPoolDataValidatesSqrtPriceRange(t *testing.T) {
	belowRange := fixedpoint.MinSqrtRatio.Sub64(1)
	if _, err := NewPoolData(1, "X", "Y", 3000, belowRange, uint128.From64(1), 0, nil); err == nil {
		t.Errorf("expected error for out-of-range sqrt price")
	}
}

func TestTickSpacingForFee(t *testing.T) {
	cases := map[uint32]int32{100: 1, 500: 10, 3000: 60, 10000: 200, 7: 60}
	for fee, want := range cases {
		if got := TickSpacingForFee(fee); got != want {
			t.Errorf("TickSpacingForFee(%d) = %d, want %d", fee, got, want)
		}
	}
}

func TestNextInitializedTickEmptyTicksReturnsBoundary(t *testing.T) {
	pool, err := NewPoolData(1, "X", "Y", 3000, fixedpoint.GetSqrtRatioAtTick(0), uint128.From64(1), 0, nil)
	if err != nil {
		t.Fatalf("NewPoolData: %v", err)
	}

	tickNext, initialized := pool.nextInitializedTick(pool.sortedTickIndices(), 0, true)
	if initialized {
		t.Errorf("expected initialized=false with no ticks")
	}
	if tickNext != -fixedpoint.ExtendedTickLimit {
		t.Errorf("tickNext = %d, want %d", tickNext, -fixedpoint.ExtendedTickLimit)
	}

	tickNext, initialized = pool.nextInitializedTick(pool.sortedTickIndices(), 0, false)
	if initialized {
		t.Errorf("expected initialized=false with no ticks")
	}
	if tickNext != fixedpoint.ExtendedTickLimit {
		t.Errorf("tickNext = %d, want %d", tickNext, fixedpoint.ExtendedTickLimit)
	}
}

func TestNextInitializedTickSearchesBothDirections(t *testing.T) {
	ticks := map[int32]*TickData{
		-600: {Index: -600, Initialized: true},
		600:  {Index: 600, Initialized: true},
	}
	pool, err := NewPoolData(1, "X", "Y", 3000, fixedpoint.GetSqrtRatioAtTick(0), uint128.From64(1), 0, ticks)
	if err != nil {
		t.Fatalf("NewPoolData: %v", err)
	}
	sorted := pool.sortedTickIndices()

	if got, ok := pool.nextInitializedTick(sorted, 0, true); got != -600 || !ok {
		t.Errorf("zeroForOne search from 0 = (%d,%v), want (-600,true)", got, ok)
	}
	if got, ok := pool.nextInitializedTick(sorted, 0, false); got != 600 || !ok {
		t.Errorf("oneForZero search from 0 = (%d,%v), want (600,true)", got, ok)
	}
}
