// Package gridgraph turns an elevation grid and a source mask into the
// directed, weighted graph the flood solver walks.
//
// What:
//
//   - GridGraph is implicit: node index = row*Cols + col, arcs go to every
//     in-bounds neighbour under Conn4 or Conn8 connectivity.
//   - Arc weights default to ExpWeight, exp(H[to] - H[from]): downhill steps
//     cost less than 1, uphill steps more than 1.
//   - Weights are pure functions of the immutable height field, so they are
//     precomputed once, in parallel row bands.
//   - ConnectedComponents labels contiguous true cells of a boolean grid
//     (flood bodies, source regions).
//
// Complexity:
//
//   - NewGridGraph:        O(R×C×d) time and memory, d = 4 or 8.
//   - Arcs:                O(d) per node.
//   - ConnectedComponents: O(R×C×d), Memory: O(R×C).
//
// Errors:
//
//   - ErrNilField:       height field is nil.
//   - ErrShapeMismatch:  source mask does not align with the height field.
//   - ErrCellCount:      cell slice length differs from rows*cols.
package gridgraph
