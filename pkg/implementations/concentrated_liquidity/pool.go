package concentrated_liquidity

import (
	"fmt"
	"math/big"
	"sort"

	"lukechampine.com/uint128"

	"github.com/quantedge-labs/clamm-router/pkg/fixedpoint"
)

// TickData is the per-tick liquidity bookkeeping a PoolData carries: how
// much liquidity references the tick (LiquidityGross) and the signed delta
// applied to active liquidity when the tick is crossed (LiquidityNet).
// LiquidityNet is signed and can exceed 64 bits, so it is carried as
// *big.Int — the same representation the teacher repo uses for every wide
// on-chain quantity (sqrtPriceX96, liquidity, token amounts in the original
// pool.go), and the only signed-128-bit-capable type available anywhere in
// the retrieval pack.
type TickData struct {
	Index                int32
	LiquidityGross       uint128.Uint128
	LiquidityNet         *big.Int
	FeeGrowthOutsideAX64 uint128.Uint128
	FeeGrowthOutsideBX64 uint128.Uint128
	Initialized          bool
}

// PoolData is the swap view of a concentrated-liquidity pool: its current
// price/tick/liquidity plus the sparse set of initialized ticks. Ticks and
// pool identity are immutable once constructed; a Swap call only mutates a
// local copy of the dynamic state (see swap.go).
type PoolData struct {
	ID           uint32
	TokenAID     string
	TokenBID     string
	Fee          uint32
	SqrtPriceX64 uint128.Uint128
	Liquidity    uint128.Uint128
	TickCurrent  int32
	Ticks        map[int32]*TickData
	TickSpacing  int32
}

// TickSpacingForFee derives tick spacing from a fee tier (§4.2's table),
// falling back to 60 for unrecognized tiers.
func TickSpacingForFee(fee uint32) int32 {
	switch fee {
	case 100:
		return 1
	case 500:
		return 10
	case 3000:
		return 60
	case 10000:
		return 200
	default:
		return 60
	}
}

// NewPoolData constructs a PoolData, validating the invariants from the
// data model: distinct tokens, sqrt price within [MinSqrtRatio,
// MaxSqrtRatio), and current tick within [MinTick, MaxTick]. TickSpacing is
// always derived from fee, never accepted as input.
func NewPoolData(
	id uint32,
	tokenAID, tokenBID string,
	fee uint32,
	sqrtPriceX64 uint128.Uint128,
	liquidity uint128.Uint128,
	tickCurrent int32,
	ticks map[int32]*TickData,
) (*PoolData, error) {
	if tokenAID == "" || tokenBID == "" || tokenAID == tokenBID {
		return nil, fmt.Errorf("%w: token_a_id and token_b_id must be distinct, non-empty", ErrInvalidPoolParams)
	}
	if sqrtPriceX64.Cmp(fixedpoint.MinSqrtRatio) < 0 || sqrtPriceX64.Cmp(fixedpoint.MaxSqrtRatio) >= 0 {
		return nil, fmt.Errorf("%w: sqrt_price_x64 %v outside [MinSqrtRatio, MaxSqrtRatio)", ErrInvalidTickRange, sqrtPriceX64)
	}
	if tickCurrent < fixedpoint.MinTick || tickCurrent > fixedpoint.MaxTick {
		return nil, fmt.Errorf("%w: tick_current %d outside [MinTick, MaxTick]", ErrInvalidTickRange, tickCurrent)
	}

	if ticks == nil {
		ticks = make(map[int32]*TickData)
	}

	return &PoolData{
		ID:           id,
		TokenAID:     tokenAID,
		TokenBID:     tokenBID,
		Fee:          fee,
		SqrtPriceX64: sqrtPriceX64,
		Liquidity:    liquidity,
		TickCurrent:  tickCurrent,
		Ticks:        ticks,
		TickSpacing:  TickSpacingForFee(fee),
	}, nil
}

// sortedTickIndices returns the pool's tick indices in ascending order.
// Ticks are immutable for the lifetime of a PoolData, so callers may cache
// this within a single Swap call.
func (p *PoolData) sortedTickIndices() []int32 {
	indices := make([]int32, 0, len(p.Ticks))
	for idx := range p.Ticks {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	return indices
}

// nextInitializedTick finds the next tick boundary in the direction of
// motion from tick, searching the pool's sparse tick set directly (the
// source's "within one word" bitmap optimization is a performance detail,
// not a correctness requirement — see spec §4.4).
func (p *PoolData) nextInitializedTick(sortedIndices []int32, tick int32, zeroForOne bool) (int32, bool) {
	if len(sortedIndices) == 0 {
		if zeroForOne {
			return -fixedpoint.ExtendedTickLimit, false
		}
		return fixedpoint.ExtendedTickLimit, false
	}

	if zeroForOne {
		// Greatest index strictly less than tick.
		i := sort.Search(len(sortedIndices), func(i int) bool { return sortedIndices[i] >= tick })
		if i == 0 {
			return -fixedpoint.ExtendedTickLimit, false
		}
		return sortedIndices[i-1], true
	}

	// Least index strictly greater than tick.
	i := sort.Search(len(sortedIndices), func(i int) bool { return sortedIndices[i] > tick })
	if i == len(sortedIndices) {
		return fixedpoint.ExtendedTickLimit, false
	}
	return sortedIndices[i], true
}
