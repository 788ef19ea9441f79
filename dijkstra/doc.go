// Package dijkstra provides a multi-source Dijkstra search for directed
// graphs with non-negative arc weights.
//
// Overview:
//
//   - MultiSource seeds every source at distance 0 and computes, per node,
//     the minimum total arc weight from any source in O((V + E) log V).
//   - Each result entry records the winning source (Origin) and, optionally,
//     the predecessor (Prev) so individual paths can be rebuilt.
//   - Graphs are consumed through a two-method interface (Order, Arcs), so
//     implicit graphs such as gridgraph.GridGraph are walked without
//     materialising an edge list.
//
// Key features:
//
//   - Functional options allow fine-tuning behavior without changing the API signature.
//   - ReturnPath: fill Result.Prev; Result.Path rebuilds a route from its source.
//   - MaxDistance: stop exploring beyond a distance, saving work in large graphs.
//   - InfEdgeThreshold: treat any arc with weight ≥ threshold as impassable.
//
// Tie-breaking:
//
//   - The frontier is ordered by (distance, node index) and a distance is only
//     replaced on strict improvement, so for a fixed graph and source list the
//     output is fully deterministic.
//
// Error handling (sentinel errors):
//
//   - ErrNilGraph:         graph is nil.
//   - ErrSourceOutOfRange: a source index is outside the graph.
//   - ErrNegativeWeight:   an arc with negative or NaN weight was traversed.
//   - ErrBadMaxDistance:   (via panic) MaxDistance set to a negative value.
//   - ErrBadInfThreshold:  (via panic) InfEdgeThreshold set to zero or a negative value.
//
// Thread safety:
//
//   - MultiSource keeps all state local to one call; concurrent calls over
//     the same immutable graph are safe.
package dijkstra
