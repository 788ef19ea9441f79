// Package flood turns a height field and a water-source mask into a static
// flood surface: per cell, whether it is submerged and the height of the
// water there.
//
// Pipeline (Simulate):
//
//  1. Build the directed grid graph with arc cost exp(H[to] - H[from])
//     (gridgraph.NewGridGraph).
//  2. Run a multi-source shortest-path search from every source cell
//     (dijkstra.MultiSource). The distance is a "hydraulic distance" that
//     favours downhill routes.
//  3. Reconstruct heights: within FloodThreshold, the water surface is the
//     source elevation plus a quadratic falloff from MaxFloodHeight at the
//     source to 0 at the threshold; a cell is flooded only if that surface
//     clears its terrain by Epsilon.
//  4. Smooth the water surface with a Gaussian (σ = SmoothSigma cells) over
//     flooded cells only, then clamp it back into [terrain, source+MaxFloodHeight].
//
// The model is a heuristic height field, not a hydrodynamic solver: there
// is no volume conservation and no time evolution.
//
// Errors:
//
//   - ErrConfiguration and its refinements (ErrBadThreshold, ErrBadMaxHeight,
//     ErrBadEpsilon, ErrBadSigma, ErrBadSearchLimit) reject parameters before
//     any work starts.
//   - ErrNilInput, ErrShapeMismatch reject missing or misaligned grids.
//
// Cells no source can reach are simply dry; that is never an error.
package flood
