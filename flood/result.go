package flood

import (
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/floodfield/gridgraph"
	"github.com/katalvlaran/floodfield/raster"
)

// Result is the flood raster handed to the renderer: parallel row-major grids
// with the placement needed to put each cell in world space.
//
// WaterHeight is 0 wherever Flooded is false. Distance and Origin carry the
// shortest-path output per cell (+Inf and -1 when unreached); they are nil for
// results built by Basic.
type Result struct {
	Window      raster.Window
	CellSize    float64
	Rows, Cols  int
	Flooded     []bool
	WaterHeight []float64
	Distance    []float64
	Origin      []int
}

func newResult(hf *raster.HeightField) *Result {
	return &Result{
		Window:      hf.Window,
		CellSize:    hf.CellSize,
		Rows:        hf.Rows,
		Cols:        hf.Cols,
		Flooded:     make([]bool, hf.Len()),
		WaterHeight: make([]float64, hf.Len()),
	}
}

// At returns the flooded flag and water height of cell (row, col).
func (r *Result) At(row, col int) (flooded bool, height float64) {
	i := row*r.Cols + col

	return r.Flooded[i], r.WaterHeight[i]
}

// FloodedCount returns the number of flooded cells.
func (r *Result) FloodedCount() int {
	n := 0
	for _, f := range r.Flooded {
		if f {
			n++
		}
	}

	return n
}

// Bodies returns the 8-connected groups of flooded cells.
func (r *Result) Bodies() [][]int {
	comps, _ := gridgraph.ConnectedComponents(r.Rows, r.Cols, r.Flooded, gridgraph.Conn8)

	return comps
}

// Stats summarises a Result.
type Stats struct {
	Cells        int
	FloodedCells int
	MinHeight    float64 // over flooded cells; 0 when none
	MaxHeight    float64
	MeanHeight   float64
}

// Stats computes flooded-cell statistics.
func (r *Result) Stats() Stats {
	heights := make([]float64, 0, len(r.WaterHeight))
	for i, f := range r.Flooded {
		if f {
			heights = append(heights, r.WaterHeight[i])
		}
	}
	s := Stats{Cells: len(r.Flooded), FloodedCells: len(heights)}
	if len(heights) == 0 {
		return s
	}
	s.MinHeight = floats.Min(heights)
	s.MaxHeight = floats.Max(heights)
	s.MeanHeight = floats.Sum(heights) / float64(len(heights))

	return s
}
