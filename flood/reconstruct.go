package flood

import (
	"math"

	"github.com/katalvlaran/floodfield/dijkstra"
	"github.com/katalvlaran/floodfield/raster"
)

// Excess returns the water rise above the source elevation at hydraulic
// distance d: maxHeight*((d-threshold)/threshold)², falling from maxHeight at
// d=0 to 0 at d=threshold. Beyond the threshold (or for +Inf) it is 0.
func Excess(d, maxHeight, threshold float64) float64 {
	if !(d <= threshold) {
		return 0
	}
	q := (d - threshold) / threshold

	return maxHeight * q * q
}

// Reconstruct converts a shortest-path result over hf into a flood raster,
// then smooths the water surface as configured.
//
// For a cell at distance d from its nearest source (elevation e_src) with
// terrain e_t: if d > FloodThreshold the cell is dry; otherwise the water
// surface is e_src + Excess(d) and the cell is flooded when that surface is
// at least e_t + Epsilon. Dry cells have height 0.
func Reconstruct(hf *raster.HeightField, sp *dijkstra.Result, opts ...Option) (*Result, error) {
	cfg, err := NewOptions(opts...)
	if err != nil {
		return nil, err
	}
	if hf == nil || sp == nil {
		return nil, ErrNilInput
	}
	if len(sp.Dist) != hf.Len() || len(sp.Origin) != hf.Len() {
		return nil, ErrShapeMismatch
	}

	return reconstruct(hf, sp, cfg), nil
}

func reconstruct(hf *raster.HeightField, sp *dijkstra.Result, cfg Options) *Result {
	res := newResult(hf)
	res.Distance = sp.Dist
	res.Origin = sp.Origin

	for i, d := range sp.Dist {
		if !(d <= cfg.FloodThreshold) {
			continue
		}
		water := hf.Values[sp.Origin[i]] + Excess(d, cfg.MaxFloodHeight, cfg.FloodThreshold)
		if water >= hf.Values[i]+cfg.Epsilon {
			res.Flooded[i] = true
			res.WaterHeight[i] = water
		}
	}
	if cfg.SmoothSigma > 0 {
		smooth(res, hf, cfg)
	}

	return res
}

// smooth applies the Gaussian to flooded water heights and clamps each
// flooded cell back into [terrain, source elevation + MaxFloodHeight].
func smooth(res *Result, hf *raster.HeightField, cfg Options) {
	smoothed := maskedGaussian(res.WaterHeight, res.Flooded, res.Rows, res.Cols, cfg.SmoothSigma)
	for i, f := range res.Flooded {
		if !f {
			continue
		}
		ceiling := hf.Values[res.Origin[i]] + cfg.MaxFloodHeight
		res.WaterHeight[i] = math.Max(hf.Values[i], math.Min(smoothed[i], ceiling))
	}
}
