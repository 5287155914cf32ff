package route

import (
	"fmt"
	"math/big"

	jsoniter "github.com/json-iterator/go"
	"lukechampine.com/uint128"
)

// json is jsoniter configured as a drop-in encoding/json replacement, the
// same wiring convention used by the Gin/Swag stack in the retrieval pack's
// qinmenghuan-web3-study repo.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// tokenRef is the {id} shape nested under token_a/token_b in a pool
// descriptor.
type tokenRef struct {
	ID string `json:"id"`
}

// tickDescriptor is one entry of a pool descriptor's optional "ticks"
// array. The source data accepts either camelCase or snake_case field
// names for the same value (§6); both are decoded and reconciled here.
type tickDescriptor struct {
	Index             *int64  `json:"index"`
	ID                *int64  `json:"id"`
	LiquidityNet      *string `json:"liquidityNet"`
	LiquidityNetAlt   *string `json:"liquidity_net"`
	LiquidityGross    *string `json:"liquidityGross"`
	LiquidityGrossAlt *string `json:"liquidity_gross"`
}

func (t tickDescriptor) index() (int32, bool) {
	if t.Index != nil {
		return int32(*t.Index), true
	}
	if t.ID != nil {
		return int32(*t.ID), true
	}
	return 0, false
}

func (t tickDescriptor) liquidityNet() (string, bool) {
	if t.LiquidityNet != nil {
		return *t.LiquidityNet, true
	}
	if t.LiquidityNetAlt != nil {
		return *t.LiquidityNetAlt, true
	}
	return "", false
}

func (t tickDescriptor) liquidityGross() (string, bool) {
	if t.LiquidityGross != nil {
		return *t.LiquidityGross, true
	}
	if t.LiquidityGrossAlt != nil {
		return *t.LiquidityGrossAlt, true
	}
	return "", false
}

// PoolDescriptor is the ingestion shape accepted by Registry.Init/Upsert
// (spec §6): a routing-only FastPool plus optional swap data. Optional
// fields that are absent or unparseable are treated as zero, not errors —
// only the outer JSON shape itself can fail to parse.
type PoolDescriptor struct {
	ID           string           `json:"id"`
	TokenA       tokenRef         `json:"token_a"`
	TokenB       tokenRef         `json:"token_b"`
	Fee          *uint32          `json:"fee"`
	SqrtPriceX64 *string          `json:"sqrtPriceX64"`
	Liquidity    *string          `json:"liquidity"`
	TickCurrent  *int32           `json:"tickCurrent"`
	Ticks        []tickDescriptor `json:"ticks"`
}

// DecodePoolDescriptors parses a JSON array of pool descriptors.
func DecodePoolDescriptors(data []byte) ([]PoolDescriptor, error) {
	var descriptors []PoolDescriptor
	if err := json.Unmarshal(data, &descriptors); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDescriptor, err)
	}
	return descriptors, nil
}

// hasFullSwapData reports whether a descriptor carries enough information
// to build a PoolData (§4.7: "if fee, sqrtPriceX64, liquidity, and
// tickCurrent are all present").
func (d PoolDescriptor) hasFullSwapData() bool {
	return d.Fee != nil && d.SqrtPriceX64 != nil && d.Liquidity != nil && d.TickCurrent != nil
}

// parseU128Decimal parses a base-10 string as an unsigned 128-bit integer,
// returning zero (not an error) on failure — matching §6's "unknown or
// unparseable optional fields become zero."
func parseU128Decimal(s string) uint128.Uint128 {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return uint128.Zero
	}
	return uint128.FromBig(n)
}

// parseI128Decimal parses a base-10 string as a signed big integer,
// returning zero on failure.
func parseI128Decimal(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return big.NewInt(0)
	}
	return n
}

// ParseAmount parses a decimal-string amount as it crosses the calling
// boundary (§6: "128-bit unsigned integers cross the boundary as decimal
// strings"). Unlike the optional descriptor fields above, a malformed
// amount here is the "invalid-amount" error kind named in §7, not a silent
// zero — callers compose this with Registry.CalculateRouteOutput to get
// the same validation calculate_trade_output performs on its amount
// parameter.
func ParseAmount(s string) (uint128.Uint128, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return uint128.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if n.BitLen() > 128 {
		return uint128.Zero, fmt.Errorf("%w: %q overflows u128", ErrInvalidAmount, s)
	}
	return uint128.FromBig(n), nil
}
