// Package dijkstra defines core types and configuration options
// for the multi-source Dijkstra search over directed, weighted graphs.
//
// MultiSource computes, for every node, the minimum total arc weight from
// any of a set of source nodes, and which source achieves it. All sources
// start at distance 0 in one shared priority queue, so the search is a single
// Dijkstra run over a virtual super-source.
//
// Complexity:
//
//	– Time:  O((V + E) log V)   where V = nodes, E = arcs
//	   • Each node is settled at most once (V extracts).
//	   • Each arc relaxation may push into the priority queue (up to E pushes).
//	– Space: O(V + E)
//	   • O(V) for distance, origin and predecessor slices.
//	   • O(E) in the priority queue in the worst case (lazy decrease-key).
//
// Options:
//
//	– Sources:          node indices seeded at distance 0 (may be empty).
//	– ReturnPath:       if true, fill Result.Prev for path reconstruction.
//	– MaxDistance:      optional cap on distances to explore; nodes beyond it stay unreached.
//	– InfEdgeThreshold: arcs with weight >= this threshold are treated as impassable.
//
// Errors (sentinel):
//
//	– ErrNilGraph         if the provided graph is nil.
//	– ErrSourceOutOfRange if a source index is outside [0, Order()).
//	– ErrNegativeWeight   if a negative or NaN arc weight is met.
//	– ErrBadMaxDistance   if MaxDistance < 0 (option constructor panics).
//	– ErrBadInfThreshold  if InfEdgeThreshold <= 0 (option constructor panics).
package dijkstra

import (
	"errors"
	"math"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrNilGraph indicates that a nil Graph was passed to MultiSource.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrSourceOutOfRange indicates a source index outside the graph.
	ErrSourceOutOfRange = errors.New("dijkstra: source index out of range")

	// ErrNegativeWeight indicates that a negative (or NaN) arc weight was encountered.
	ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value,
	// which is not meaningful for a distance threshold.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")

	// ErrBadInfThreshold indicates that InfEdgeThreshold was set to zero or negative,
	// which would treat all arcs (including zero-weight arcs) as impassable.
	ErrBadInfThreshold = errors.New("dijkstra: InfEdgeThreshold must be positive")
)

// Graph is a directed graph over nodes 0..Order()-1.
// Arcs must call visit once per arc leaving u; repeated calls must yield the
// same arcs.
type Graph interface {
	Order() int
	Arcs(u int, visit func(v int, w float64))
}

// Options configures the behavior of the Dijkstra algorithm.
//
// Sources          – node indices seeded at distance 0. Duplicates are ignored.
// ReturnPath       – if true, Result.Prev is filled; otherwise it is nil.
// MaxDistance      – optional cap on distances to explore.
//
//	Must be ≥ 0. Default is +Inf (no cap).
//
// InfEdgeThreshold – treat arcs with weight ≥ this threshold as impassable.
//
//	Must be > 0. Default is +Inf, so only infinite weights are walls.
type Options struct {
	Sources          []int   // Seed nodes
	ReturnPath       bool    // Whether to fill the predecessor slice
	MaxDistance      float64 // Maximum distance to explore
	InfEdgeThreshold float64 // Weight threshold above which arcs are non-traversable
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// Sources appends node indices to the seed set.
func Sources(nodes ...int) Option {
	return func(o *Options) {
		o.Sources = append(o.Sources, nodes...)
	}
}

// WithReturnPath enables generation of the predecessor slice in the result.
// If not set, Result.Prev is nil.
func WithReturnPath() Option {
	return func(o *Options) {
		o.ReturnPath = true
	}
}

// WithMaxDistance sets a maximum distance threshold.
// Nodes whose shortest distance would exceed this value are not explored.
// Must pass a non-negative value; negative values panic with ErrBadMaxDistance.
// Default (if not set) is +Inf (no cap).
func WithMaxDistance(max float64) Option {
	return func(o *Options) {
		if max < 0 || math.IsNaN(max) {
			// Panic to signal invalid configuration early.
			panic(ErrBadMaxDistance.Error())
		}
		o.MaxDistance = max
	}
}

// WithInfEdgeThreshold defines a weight threshold above which arcs are
// considered non-traversable (treated as infinite weight).
// Must pass a positive value; zero or negative panic with ErrBadInfThreshold.
func WithInfEdgeThreshold(threshold float64) Option {
	return func(o *Options) {
		if !(threshold > 0) {
			panic(ErrBadInfThreshold.Error())
		}
		o.InfEdgeThreshold = threshold
	}
}

// DefaultOptions returns an Options struct initialized with defaults:
//   - Sources:          none.
//   - ReturnPath:       false.
//   - MaxDistance:      +Inf (explore all reachable nodes).
//   - InfEdgeThreshold: +Inf (only infinite arcs are impassable).
func DefaultOptions() Options {
	return Options{
		MaxDistance:      math.Inf(1),
		InfEdgeThreshold: math.Inf(1),
	}
}

// Result holds per-node search output, indexed by node.
//
// Dist[v]   – shortest distance from the nearest source (+Inf if unreached).
// Origin[v] – the source node that reached v first (-1 if unreached).
// Prev[v]   – predecessor on the shortest path (-1 for sources and unreached
//
//	nodes); nil unless ReturnPath was requested.
type Result struct {
	Dist   []float64
	Origin []int
	Prev   []int
}

// Reached reports whether v has a finite distance.
func (r *Result) Reached(v int) bool { return r.Origin[v] >= 0 }

// Path returns the node sequence from v's origin to v, or nil when v was not
// reached or predecessors were not recorded.
func (r *Result) Path(v int) []int {
	if r.Prev == nil || !r.Reached(v) {
		return nil
	}
	var path []int
	for at := v; at >= 0; at = r.Prev[at] {
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
