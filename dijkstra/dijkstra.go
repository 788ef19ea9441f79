// Package dijkstra implements a multi-source Dijkstra search on directed,
// weighted graphs with non-negative arc weights.
//
// Notes on implementation choices:
//
//   - Every source is pushed at distance 0 before the main loop; each heap
//     entry carries {dist, node, origin}, so the source that settles a node
//     is known without a second pass.
//   - Heap order is (dist, node): equal distances settle the lower node index
//     first, and relaxation only replaces a distance on strict improvement.
//     Together these make the origin assignment deterministic.
//   - We treat any arc with weight ≥ InfEdgeThreshold as an impassable “wall”.
//   - We stop exploring once the minimum distance in the heap exceeds MaxDistance.
//   - We use a “lazy” decrease-key strategy: pushing duplicates into the heap and ignoring stale entries.
package dijkstra

import (
	"container/heap"
	"fmt"
	"math"
)

// MultiSource computes shortest distances from the nearest of the configured
// sources to every node of g.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. Every source must lie in [0, g.Order()) (ErrSourceOutOfRange).
//  3. No traversed arc may have a negative or NaN weight (ErrNegativeWeight).
//
// An empty source set is valid: every node is reported unreached.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func MultiSource(g Graph, opts ...Option) (*Result, error) {
	// 1) Build Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate graph and sources
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.Order()
	for _, s := range cfg.Sources {
		if s < 0 || s >= n {
			return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrSourceOutOfRange, s, n)
		}
	}

	// 3) Allocate per-node state.
	res := &Result{
		Dist:   make([]float64, n),
		Origin: make([]int, n),
	}
	if cfg.ReturnPath {
		res.Prev = make([]int, n)
	}
	r := &runner{
		g:       g,
		options: cfg,
		res:     res,
		visited: make([]bool, n),
		pq:      make(nodePQ, 0, len(cfg.Sources)),
	}

	// 4) Seed and run.
	r.init()
	if err := r.process(); err != nil {
		return nil, err
	}

	return res, nil
}

// runner holds the mutable state for a single execution.
type runner struct {
	g       Graph
	options Options
	res     *Result
	visited []bool // settled nodes
	pq      nodePQ
}

// init sets dist=+Inf, origin=prev=-1 everywhere, then seeds every source at 0.
func (r *runner) init() {
	for v := range r.res.Dist {
		r.res.Dist[v] = math.Inf(1)
		r.res.Origin[v] = -1
		if r.res.Prev != nil {
			r.res.Prev[v] = -1
		}
	}
	for _, s := range r.options.Sources {
		if r.res.Origin[s] >= 0 {
			continue // duplicate source
		}
		r.res.Dist[s] = 0
		r.res.Origin[s] = s
		r.pq = append(r.pq, nodeItem{dist: 0, node: s, origin: s})
	}
	heap.Init(&r.pq)
}

// process repeatedly settles the closest frontier node and relaxes its arcs.
//
// Loop termination conditions:
//
//   - The heap becomes empty (all reachable nodes settled).
//   - The minimum distance in the heap exceeds MaxDistance.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(nodeItem)
		u := item.node

		// Skip stale heap entries.
		if r.visited[u] || item.dist > r.res.Dist[u] {
			continue
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[u] = true

		if err := r.relax(u, item.origin); err != nil {
			return err
		}
	}

	return nil
}

// relax examines each arc leaving u and improves neighbour distances.
// The neighbour inherits u's origin.
func (r *runner) relax(u, origin int) error {
	var err error
	du := r.res.Dist[u]
	r.g.Arcs(u, func(v int, w float64) {
		if err != nil {
			return
		}
		if w < 0 || math.IsNaN(w) {
			err = fmt.Errorf("%w: arc %d→%d weight=%v", ErrNegativeWeight, u, v, w)
			return
		}
		if w >= r.options.InfEdgeThreshold || r.visited[v] {
			return
		}
		nd := du + w
		if nd > r.options.MaxDistance || nd >= r.res.Dist[v] {
			return
		}
		r.res.Dist[v] = nd
		r.res.Origin[v] = origin
		if r.res.Prev != nil {
			r.res.Prev[v] = u
		}
		heap.Push(&r.pq, nodeItem{dist: nd, node: v, origin: origin})
	})

	return err
}

// nodeItem is a frontier entry: a node, its tentative distance and the source
// it was reached from.
type nodeItem struct {
	dist   float64
	node   int
	origin int
}

// nodePQ is a min-heap of nodeItem ordered by (dist, node).
type nodePQ []nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less orders by distance, then node index.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].node < pq[j].node
}

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(nodeItem)) }

// Pop removes and returns the last element; heap.Pop moves the minimum there first.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
