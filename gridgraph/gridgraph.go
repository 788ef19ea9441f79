package gridgraph

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/floodfield/raster"
)

var (
	offsets4 = [][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
	offsets8 = [][2]int{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}}
)

// NewGridGraph builds the flood graph for hf. mask may be nil, in which case
// the graph has no sources; otherwise it must have the same shape as hf.
// The height values are copied, so later changes to hf do not leak into the
// graph.
//
// Complexity: O(R×C×d) time and memory.
func NewGridGraph(hf *raster.HeightField, mask *raster.SourceMask, opts GridOptions) (*GridGraph, error) {
	if hf == nil {
		return nil, ErrNilField
	}
	if mask != nil && !mask.SameShape(hf) {
		return nil, ErrShapeMismatch
	}
	if opts.Weight == nil {
		opts.Weight = ExpWeight
	}
	offsets := offsets4
	if opts.Conn == Conn8 {
		offsets = offsets8
	}

	gg := &GridGraph{
		Rows:            hf.Rows,
		Cols:            hf.Cols,
		Conn:            opts.Conn,
		heights:         append([]float64(nil), hf.Values...),
		neighborOffsets: offsets,
		weights:         make([]float64, hf.Len()*len(offsets)),
	}
	if mask != nil {
		gg.sources = mask.Indices()
	}
	if err := gg.precompute(opts.Weight, opts.Workers); err != nil {
		return nil, err
	}

	return gg, nil
}

// precompute fills gg.weights, splitting rows into bands across workers.
func (gg *GridGraph) precompute(weight WeightFunc, workers int) error {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	band := (gg.Rows + workers - 1) / workers
	k := len(gg.neighborOffsets)

	var g errgroup.Group
	g.SetLimit(workers)
	for r0 := 0; r0 < gg.Rows; r0 += band {
		r1 := min(r0+band, gg.Rows)
		g.Go(func() error {
			for r := r0; r < r1; r++ {
				for c := 0; c < gg.Cols; c++ {
					u := gg.Index(r, c)
					for j, d := range gg.neighborOffsets {
						nr, nc := r+d[0], c+d[1]
						if !gg.InBounds(nr, nc) {
							continue
						}
						gg.weights[u*k+j] = weight(gg.heights[u], gg.heights[gg.Index(nr, nc)])
					}
				}
			}
			return nil
		})
	}

	return g.Wait()
}

// Order returns the number of nodes, Rows*Cols.
func (gg *GridGraph) Order() int { return gg.Rows * gg.Cols }

// Arcs calls visit for every arc leaving u, in neighbour-offset order.
func (gg *GridGraph) Arcs(u int, visit func(v int, w float64)) {
	r, c := gg.Coordinate(u)
	k := len(gg.neighborOffsets)
	for j, d := range gg.neighborOffsets {
		nr, nc := r+d[0], c+d[1]
		if !gg.InBounds(nr, nc) {
			continue
		}
		visit(gg.Index(nr, nc), gg.weights[u*k+j])
	}
}

// Weight returns the cost of the arc u→v; ok is false when v is not a
// neighbour of u.
func (gg *GridGraph) Weight(u, v int) (w float64, ok bool) {
	ur, uc := gg.Coordinate(u)
	vr, vc := gg.Coordinate(v)
	for j, d := range gg.neighborOffsets {
		if ur+d[0] == vr && uc+d[1] == vc && gg.InBounds(vr, vc) {
			return gg.weights[u*len(gg.neighborOffsets)+j], true
		}
	}

	return 0, false
}

// Sources returns the source node indices in ascending order. The slice may be
// empty; the caller must not modify it.
func (gg *GridGraph) Sources() []int { return gg.sources }

// Height returns the elevation of node u.
func (gg *GridGraph) Height(u int) float64 { return gg.heights[u] }

// InBounds reports whether (row, col) lies within the grid boundaries.
// Complexity: O(1).
func (gg *GridGraph) InBounds(row, col int) bool {
	return row >= 0 && row < gg.Rows && col >= 0 && col < gg.Cols
}

// NeighborOffsets returns the (dRow, dCol) neighbour offsets for gg.Conn.
func (gg *GridGraph) NeighborOffsets() [][2]int {
	return gg.neighborOffsets
}

// Index maps (row, col) to a row-major index: row*Cols + col.
// Complexity: O(1).
func (gg *GridGraph) Index(row, col int) int {
	return row*gg.Cols + col
}

// Coordinate converts a row-major index back to (row, col).
// Complexity: O(1).
func (gg *GridGraph) Coordinate(idx int) (row, col int) {
	return idx / gg.Cols, idx % gg.Cols
}
