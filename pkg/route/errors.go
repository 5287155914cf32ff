// Package route implements the pool registry, route enumerator, and
// multi-hop trade composer (spec §4.5–§4.7): the routing layer that sits on
// top of pkg/implementations/concentrated_liquidity's per-pool swap math.
package route

import "errors"

// Sentinel errors, one per error kind in spec §7. Call sites wrap these
// with fmt.Errorf("...: %w", err) to add context, the same pattern the
// teacher repo uses in strategy/errors.go and concentrated_liquidity's own
// sentinels.
var (
	// ErrRegistryUninitialized is returned by any routing or simulation
	// call made before Init.
	ErrRegistryUninitialized = errors.New("route: registry not initialized")

	// ErrInvalidAmount is returned when an amount string cannot be parsed
	// as an unsigned 128-bit decimal integer.
	ErrInvalidAmount = errors.New("route: invalid amount")

	// ErrUnknownPool is returned when a route references a pool id absent
	// from the registry's full_pools map.
	ErrUnknownPool = errors.New("route: unknown pool")

	// ErrTokenMismatch is returned when a pool in a route is not incident
	// on the token currently being carried through the route.
	ErrTokenMismatch = errors.New("route: token mismatch")

	// ErrEmptyRoute is returned when a route sequence has no pools.
	ErrEmptyRoute = errors.New("route: empty route")

	// ErrMalformedDescriptor is returned when an ingested pool descriptor
	// violates the expected JSON shape (§6).
	ErrMalformedDescriptor = errors.New("route: malformed pool descriptor")
)
