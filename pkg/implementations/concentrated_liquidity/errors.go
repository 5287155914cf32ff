package concentrated_liquidity

import "errors"

var (
	// ErrInvalidPoolParams is returned when pool construction parameters are
	// structurally invalid (e.g. identical token ids on both sides of a pair).
	ErrInvalidPoolParams = errors.New("invalid pool parameters")

	// ErrInvalidTickRange is returned when a supplied tick or sqrt price
	// falls outside [MinTick, MaxTick] or [MinSqrtRatio, MaxSqrtRatio).
	ErrInvalidTickRange = errors.New("invalid tick range: value outside MinTick/MaxTick bounds")
)
