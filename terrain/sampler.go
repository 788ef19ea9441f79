package terrain

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/floodfield/raster"
)

// Sampler reads elevations at arbitrary world coordinates from a Store,
// stitching across tile borders and interpolating bilinearly inside a tile.
type Sampler struct {
	store   *Store
	workers int
}

// SamplerOption configures a Sampler.
type SamplerOption func(*Sampler)

// WithWorkers bounds the number of goroutines HeightField uses.
// Values below 1 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) SamplerOption {
	return func(s *Sampler) {
		s.workers = n
	}
}

// NewSampler returns a Sampler reading from store.
func NewSampler(store *Store, opts ...SamplerOption) (*Sampler, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	s := &Sampler{store: store}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = runtime.GOMAXPROCS(0)
	}

	return s, nil
}

// Interpolate returns the elevation at (x, y).
//
// A point outside every tile reads as 0. Inside a tile the fractional indices
// are fx = (x-MinX)/Resolution and fy = (Rows-1) - (y-MinY)/Resolution
// (rows count from the north edge), clamped to the valid index range. On the
// last column or row only the remaining axis is interpolated; at the last
// row and column the sample is returned as is.
func (s *Sampler) Interpolate(x, y float64) float64 {
	t := s.store.TileContaining(x, y)
	if t == nil {
		return 0
	}

	return bilinear(t, x, y)
}

func bilinear(t *Tile, x, y float64) float64 {
	fx := clamp((x-t.MinX)/t.Resolution, 0, float64(t.Cols-1))
	fy := clamp(float64(t.Rows-1)-(y-t.MinY)/t.Resolution, 0, float64(t.Rows-1))
	ix, iy := int(math.Floor(fx)), int(math.Floor(fy))
	ox, oy := fx-float64(ix), fy-float64(iy)

	lastCol := ix >= t.Cols-1
	lastRow := iy >= t.Rows-1
	switch {
	case lastCol && lastRow:
		return t.At(iy, ix)
	case lastCol:
		return lerp(t.At(iy, ix), t.At(iy+1, ix), oy)
	case lastRow:
		return lerp(t.At(iy, ix), t.At(iy, ix+1), ox)
	}
	north := lerp(t.At(iy, ix), t.At(iy, ix+1), ox)
	south := lerp(t.At(iy+1, ix), t.At(iy+1, ix+1), ox)

	return lerp(north, south, oy)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

// HeightField samples the terrain over w at cellSize. Cell (r, c) holds the
// elevation at w.Point(r, c, cellSize).
//
// Rows are split into contiguous bands sampled concurrently; each band keeps
// its own active-tile cursor so spatially coherent scans stay on the fast
// path.
func (s *Sampler) HeightField(w raster.Window, cellSize float64) (*raster.HeightField, error) {
	hf, err := raster.NewHeightField(w, cellSize)
	if err != nil {
		return nil, err
	}

	band := (hf.Rows + s.workers - 1) / s.workers
	var g errgroup.Group
	g.SetLimit(s.workers)
	for r0 := 0; r0 < hf.Rows; r0 += band {
		r1 := min(r0+band, hf.Rows)
		g.Go(func() error {
			cursor := -1
			for r := r0; r < r1; r++ {
				for c := 0; c < hf.Cols; c++ {
					x, y := w.Point(r, c, cellSize)
					if t := s.store.locate(x, y, &cursor); t != nil {
						hf.Values[hf.Index(r, c)] = bilinear(t, x, y)
					}
				}
			}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	return hf, nil
}

// SourceMaskFromTile rasterises an externally produced mask tile onto the
// grid of hf. Each cell takes the mask pixel under its centre; positive
// samples other than NoData mark sources. Cells outside t are not sources.
func SourceMaskFromTile(t *Tile, hf *raster.HeightField) (*raster.SourceMask, error) {
	if t == nil {
		return nil, ErrNilTile
	}
	m, err := raster.NewSourceMask(hf.Rows, hf.Cols)
	if err != nil {
		return nil, err
	}
	for r := 0; r < hf.Rows; r++ {
		for c := 0; c < hf.Cols; c++ {
			x, y := hf.Window.Point(r, c, hf.CellSize)
			if !t.Contains(x, y) {
				continue
			}
			col := min(int((x-t.MinX)/t.Resolution), t.Cols-1)
			row := min(int((t.MaxY-y)/t.Resolution), t.Rows-1)
			v := t.Samples[row*t.Cols+col]
			m.Set(r, c, v > 0 && v != t.NoData)
		}
	}

	return m, nil
}
