package route

import (
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"lukechampine.com/uint128"

	cl "github.com/quantedge-labs/clamm-router/pkg/implementations/concentrated_liquidity"
)

// FastPool is the routing-only view of a pool: just enough to walk the
// adjacency index (spec §3).
type FastPool struct {
	ID       string
	TokenAID string
	TokenBID string
}

// Registry holds the routing adjacency index and the optional swap-capable
// pool set, guarded by a single mutex for the duration of each public
// operation (§5). Per the redesign note in §9, this is an explicit handle
// rather than a process-wide global; a binding layer that needs a global
// API constructs one Registry at startup and shares it.
type Registry struct {
	mu            sync.RWMutex
	initialized   bool
	pools         []FastPool
	poolsByToken  map[string][]int
	fullPools     map[uint32]*cl.PoolData
	logger        *zap.Logger
	maxIterations int
}

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithLogger injects a structured logger used for the one diagnostic
// warning the swap loop emits when it hits its iteration cap. Passing nil is
// equivalent to zap.NewNop(), which is also the default.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithMaxIterations overrides concentrated_liquidity.DefaultMaxSwapIterations
// for every swap this registry drives. Non-positive values are ignored.
func WithMaxIterations(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.maxIterations = n
		}
	}
}

// NewRegistry constructs an empty, uninitialized Registry. Routing and
// simulation calls fail with ErrRegistryUninitialized until Init is called.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// parsePoolIDNumeric parses a pool's string id as a u32 for indexing into
// full_pools. Malformed ids map to 0 without erroring — a known quirk
// carried over verbatim from the source (§4.7, §9 open question 2): callers
// that populate full_pools with more than one malformed id will silently
// collide.
func parsePoolIDNumeric(id string) uint32 {
	n, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}

func buildFastPool(d PoolDescriptor) FastPool {
	return FastPool{ID: d.ID, TokenAID: d.TokenA.ID, TokenBID: d.TokenB.ID}
}

// buildPoolData constructs the swap-capable PoolData for a descriptor that
// carries full swap data, or returns ok=false if it doesn't (§4.7).
func buildPoolData(d PoolDescriptor) (pool *cl.PoolData, ok bool, err error) {
	if !d.hasFullSwapData() {
		return nil, false, nil
	}

	ticks := make(map[int32]*cl.TickData, len(d.Ticks))
	for _, td := range d.Ticks {
		index, hasIndex := td.index()
		netStr, hasNet := td.liquidityNet()
		if !hasIndex || !hasNet {
			continue
		}
		grossStr, hasGross := td.liquidityGross()
		gross := uint128.Zero
		if hasGross {
			gross = parseU128Decimal(grossStr)
		}
		ticks[index] = &cl.TickData{
			Index:          index,
			LiquidityGross: gross,
			LiquidityNet:   parseI128Decimal(netStr),
			Initialized:    true,
		}
	}

	pool, err = cl.NewPoolData(
		parsePoolIDNumeric(d.ID),
		d.TokenA.ID,
		d.TokenB.ID,
		*d.Fee,
		parseU128Decimal(*d.SqrtPriceX64),
		parseU128Decimal(*d.Liquidity),
		*d.TickCurrent,
		ticks,
	)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrMalformedDescriptor, err)
	}
	return pool, true, nil
}

func buildIndex(pools []FastPool) map[string][]int {
	index := make(map[string][]int, len(pools)*2)
	for i, p := range pools {
		index[p.TokenAID] = append(index[p.TokenAID], i)
		index[p.TokenBID] = append(index[p.TokenBID], i)
	}
	return index
}

// Init replaces the registry's contents wholesale (§4.7). Descriptors that
// carry full swap data additionally populate full_pools, keyed by the
// numeric parse of their string id.
func (r *Registry) Init(descriptors []PoolDescriptor) error {
	pools := make([]FastPool, 0, len(descriptors))
	fullPools := make(map[uint32]*cl.PoolData)

	for _, d := range descriptors {
		pools = append(pools, buildFastPool(d))

		pool, ok, err := buildPoolData(d)
		if err != nil {
			return err
		}
		if ok {
			fullPools[parsePoolIDNumeric(d.ID)] = pool
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pools = pools
	r.poolsByToken = buildIndex(pools)
	r.fullPools = fullPools
	r.initialized = true
	return nil
}

// Upsert merges descriptors into the existing registry: entries matching
// an existing pool id replace it, others are appended. The adjacency index
// is rebuilt from scratch afterward, authoritative over the merged list
// (§4.7).
func (r *Registry) Upsert(descriptors []PoolDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := make(map[string]int, len(r.pools))
	for i, p := range r.pools {
		existing[p.ID] = i
	}
	if r.fullPools == nil {
		r.fullPools = make(map[uint32]*cl.PoolData)
	}

	for _, d := range descriptors {
		fp := buildFastPool(d)
		if i, found := existing[d.ID]; found {
			r.pools[i] = fp
		} else {
			existing[d.ID] = len(r.pools)
			r.pools = append(r.pools, fp)
		}

		pool, ok, err := buildPoolData(d)
		if err != nil {
			return err
		}
		if ok {
			r.fullPools[parsePoolIDNumeric(d.ID)] = pool
		}
	}

	r.poolsByToken = buildIndex(r.pools)
	r.initialized = true
	return nil
}

// Clear drops the registry's contents entirely.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pools = nil
	r.poolsByToken = nil
	r.fullPools = nil
	r.initialized = false
}

// Count returns the current pool count, 0 if the registry has never been
// initialized or has been cleared.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pools)
}
