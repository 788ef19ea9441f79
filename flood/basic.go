package flood

import (
	"fmt"
	"math"

	"github.com/katalvlaran/floodfield/gridgraph"
	"github.com/katalvlaran/floodfield/raster"
)

// DefaultClosingRadius is the disk radius, in cells, of the morphological
// closing Basic applies to its flood mask.
const DefaultClosingRadius = 2

type basicConfig struct {
	closingRadius int
}

// BasicOption configures Basic.
type BasicOption func(*basicConfig)

// WithClosingRadius sets the disk radius of the edge-cleaning closing;
// 0 disables it.
func WithClosingRadius(r int) BasicOption {
	return func(c *basicConfig) { c.closingRadius = r }
}

// Basic floods the basin around the lowest cell of hf: every cell 8-connected
// to it through cells no more than floodHeight above the lowest elevation is
// submerged under a flat surface at min + floodHeight.
//
// The mask is then cleaned with a binary closing by a disk (radius
// DefaultClosingRadius unless set), which fills dry specks and narrow inlets
// inside the flood. Cells added by the closing take the same flat level, even
// where their terrain stands above it.
//
// It needs no source mask and serves as a quick preview or fallback when no
// water bodies are known.
func Basic(hf *raster.HeightField, floodHeight float64, opts ...BasicOption) (*Result, error) {
	cfg := basicConfig{closingRadius: DefaultClosingRadius}
	for _, opt := range opts {
		opt(&cfg)
	}
	if floodHeight < 0 || math.IsNaN(floodHeight) || math.IsInf(floodHeight, 0) {
		return nil, fmt.Errorf("%w (got %v)", ErrBadMaxHeight, floodHeight)
	}
	if cfg.closingRadius < 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrBadClosingRadius, cfg.closingRadius)
	}
	if hf == nil || hf.Len() == 0 {
		return nil, ErrNilInput
	}

	// 1) Candidate cells within floodHeight of the lowest one.
	lo, _, seed := hf.MinMax()
	level := lo + floodHeight
	candidate := make([]bool, hf.Len())
	for i, v := range hf.Values {
		candidate[i] = v <= level
	}
	comps, err := gridgraph.ConnectedComponents(hf.Rows, hf.Cols, candidate, gridgraph.Conn8)
	if err != nil {
		return nil, err
	}

	// 2) Keep the component holding the lowest cell.
	res := newResult(hf)
	for _, comp := range comps {
		if !contains(comp, seed) {
			continue
		}
		for _, i := range comp {
			res.Flooded[i] = true
		}
		break
	}

	// 3) Clean edges, then assign the level.
	if cfg.closingRadius > 0 {
		res.Flooded = closing(res.Flooded, res.Rows, res.Cols, cfg.closingRadius)
	}
	for i, f := range res.Flooded {
		if f {
			res.WaterHeight[i] = level
		}
	}

	return res, nil
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}

	return false
}
