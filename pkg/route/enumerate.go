package route

// ComputeRoutes enumerates simple paths from tokenIn to tokenOut via a
// depth-first search over the adjacency index (§4.6), each path at most
// maxHops pools long. Routes are returned as sequences of pool string ids,
// preserving DFS order.
func (r *Registry) ComputeRoutes(tokenIn, tokenOut string, maxHops int) ([][]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.initialized {
		return nil, ErrRegistryUninitialized
	}

	used := make([]bool, len(r.pools))
	var path []int
	var routes [][]int

	dfsFast(tokenIn, tokenOut, &path, used, &routes, maxHops, r.pools, r.poolsByToken)

	routeIDs := make([][]string, len(routes))
	for i, route := range routes {
		ids := make([]string, len(route))
		for j, idx := range route {
			ids[j] = r.pools[idx].ID
		}
		routeIDs[i] = ids
	}
	return routeIDs, nil
}

// dfsFast is the core depth-first walk (spec §4.6): before descending, a
// path that already exceeds maxHops is pruned; a non-empty path whose last
// pool already touches the target token is recorded and not extended
// further — so every emitted route ends on the first pool incident on the
// target, never a longer cycle through it.
func dfsFast(
	currentToken, targetToken string,
	path *[]int,
	used []bool,
	routes *[][]int,
	maxHops int,
	pools []FastPool,
	poolsByToken map[string][]int,
) {
	if len(*path) > maxHops {
		return
	}

	if len(*path) > 0 {
		lastPool := pools[(*path)[len(*path)-1]]
		if lastPool.TokenAID == targetToken || lastPool.TokenBID == targetToken {
			recorded := make([]int, len(*path))
			copy(recorded, *path)
			*routes = append(*routes, recorded)
			return
		}
	}

	for _, poolIdx := range poolsByToken[currentToken] {
		if used[poolIdx] {
			continue
		}

		pool := pools[poolIdx]
		nextToken := pool.TokenBID
		if pool.TokenAID != currentToken {
			nextToken = pool.TokenAID
		}

		*path = append(*path, poolIdx)
		used[poolIdx] = true

		dfsFast(nextToken, targetToken, path, used, routes, maxHops, pools, poolsByToken)

		*path = (*path)[:len(*path)-1]
		used[poolIdx] = false
	}
}
