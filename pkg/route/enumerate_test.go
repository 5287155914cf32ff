package route

import (
	"reflect"
	"testing"
)

func twoPathPools() []PoolDescriptor {
	return []PoolDescriptor{
		{ID: "1", TokenA: tokenRef{ID: "X"}, TokenB: tokenRef{ID: "Y"}},
		{ID: "2", TokenA: tokenRef{ID: "Y"}, TokenB: tokenRef{ID: "Z"}},
		{ID: "3", TokenA: tokenRef{ID: "X"}, TokenB: tokenRef{ID: "Z"}},
	}
}

// TestComputeRoutesSingleHop exercises scenario 2: a direct X-Z pool is
// found at maxHops=1.
func TestComputeRoutesSingleHop(t *testing.T) {
	r := NewRegistry()
	if err := r.Init([]PoolDescriptor{
		{ID: "3", TokenA: tokenRef{ID: "X"}, TokenB: tokenRef{ID: "Z"}},
	}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	routes, err := r.ComputeRoutes("X", "Z", 1)
	if err != nil {
		t.Fatalf("ComputeRoutes: %v", err)
	}
	want := [][]string{{"3"}}
	if !reflect.DeepEqual(routes, want) {
		t.Errorf("ComputeRoutes(X,Z,1) = %v, want %v", routes, want)
	}
}

// TestComputeRoutesTwoPathDFSOrder exercises scenario 3: with pools
// X-Y, Y-Z, X-Z inserted in that order, compute_routes_fast("X","Z",3)
// discovers the two-hop path before the direct path, matching DFS order
// over the adjacency index built from insertion order.
func TestComputeRoutesTwoPathDFSOrder(t *testing.T) {
	r := NewRegistry()
	if err := r.Init(twoPathPools()); err != nil {
		t.Fatalf("Init: %v", err)
	}

	routes, err := r.ComputeRoutes("X", "Z", 3)
	if err != nil {
		t.Fatalf("ComputeRoutes: %v", err)
	}
	want := [][]string{{"1", "2"}, {"3"}}
	if !reflect.DeepEqual(routes, want) {
		t.Errorf("ComputeRoutes(X,Z,3) = %v, want %v", routes, want)
	}
}

// TestComputeRoutesHopCapExcludesLongerPaths exercises scenario 4: capping
// maxHops at 1 excludes the two-hop X-Y-Z path, leaving only the direct
// X-Z pool.
func TestComputeRoutesHopCapExcludesLongerPaths(t *testing.T) {
	r := NewRegistry()
	if err := r.Init(twoPathPools()); err != nil {
		t.Fatalf("Init: %v", err)
	}

	routes, err := r.ComputeRoutes("X", "Z", 1)
	if err != nil {
		t.Fatalf("ComputeRoutes: %v", err)
	}
	want := [][]string{{"3"}}
	if !reflect.DeepEqual(routes, want) {
		t.Errorf("ComputeRoutes(X,Z,1) = %v, want %v", routes, want)
	}
}

// TestComputeRoutesNoPathReturnsEmpty confirms an unreachable token pair
// yields an empty, non-nil-error result rather than an error.
func TestComputeRoutesNoPathReturnsEmpty(t *testing.T) {
	r := NewRegistry()
	if err := r.Init(twoPathPools()); err != nil {
		t.Fatalf("Init: %v", err)
	}

	routes, err := r.ComputeRoutes("X", "W", 3)
	if err != nil {
		t.Fatalf("ComputeRoutes: %v", err)
	}
	if len(routes) != 0 {
		t.Errorf("ComputeRoutes(X,W,3) = %v, want empty", routes)
	}
}

// TestComputeRoutesOnlySimplePaths checks the general invariant from §8:
// every emitted route visits each pool at most once and ends on a pool
// incident on the output token.
func TestComputeRoutesOnlySimplePaths(t *testing.T) {
	r := NewRegistry()
	if err := r.Init(twoPathPools()); err != nil {
		t.Fatalf("Init: %v", err)
	}

	routes, err := r.ComputeRoutes("X", "Z", 5)
	if err != nil {
		t.Fatalf("ComputeRoutes: %v", err)
	}

	idToPool := make(map[string]PoolDescriptor)
	for _, p := range twoPathPools() {
		idToPool[p.ID] = p
	}

	for _, route := range routes {
		seen := make(map[string]bool)
		for _, id := range route {
			if seen[id] {
				t.Errorf("route %v reuses pool %s", route, id)
			}
			seen[id] = true
		}
		last := idToPool[route[len(route)-1]]
		if last.TokenA.ID != "Z" && last.TokenB.ID != "Z" {
			t.Errorf("route %v does not end on a pool touching Z", route)
		}
	}
}
