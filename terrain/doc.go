// Package terrain stores tiled elevation rasters ("slabs") and samples them
// at arbitrary world coordinates.
//
// What:
//
//   - Tile:    one immutable elevation raster, row 0 northernmost.
//   - Store:   the tiles of one run, with an active-tile fast path and a
//     coarse grid-of-tiles index; FillGaps synthesizes flat tiles where a
//     slab is missing inside the covered rectangle.
//   - Sampler: bilinear interpolation across tiles; builds raster.HeightField
//     grids over a query window.
//   - ReadASC / LoadDir: ESRI ASCII grid loading.
//
// Data gaps never raise: a point outside every tile reads as 0 and a missing
// slab becomes flat sea-level terrain, logged as a warning by FillGaps.
//
// Complexity:
//
//   - TileContaining: O(1) on the fast path, O(k) otherwise (k tiles overlapping one index cell).
//   - Interpolate:    O(1) after lookup.
//   - HeightField:    O(R×C), split across workers.
//   - FillGaps:       O(N) index lookups for N tile-sized steps in the bounding rectangle.
package terrain
