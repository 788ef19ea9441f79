package flood_test

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/floodfield/dijkstra"
	"github.com/katalvlaran/floodfield/flood"
	"github.com/katalvlaran/floodfield/gridgraph"
	"github.com/katalvlaran/floodfield/raster"
)

const tol = 1e-9

// flat returns a rows×cols field at height 0 with a single source at (sr, sc).
func flat(t *testing.T, rows, cols, sr, sc int) (*raster.HeightField, *raster.SourceMask) {
	t.Helper()
	vals := make([][]float64, rows)
	for r := range vals {
		vals[r] = make([]float64, cols)
	}
	hf, err := raster.FromRows(vals)
	require.NoError(t, err)
	mask, err := raster.NewSourceMask(rows, cols)
	require.NoError(t, err)
	mask.Set(sr, sc, true)

	return hf, mask
}

// rising returns 5 rows of [0 1 2 3 4] with the first column as source.
func rising(t *testing.T) (*raster.HeightField, *raster.SourceMask) {
	t.Helper()
	vals := make([][]float64, 5)
	cells := make([][]bool, 5)
	for r := range vals {
		vals[r] = []float64{0, 1, 2, 3, 4}
		cells[r] = []bool{true, false, false, false, false}
	}
	hf, err := raster.FromRows(vals)
	require.NoError(t, err)
	mask, err := raster.MaskFromRows(cells)
	require.NoError(t, err)

	return hf, mask
}

// noisy builds a deterministic rough field with a handful of sources.
func noisy(t testing.TB, rows, cols int, seed int64) (*raster.HeightField, *raster.SourceMask) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	vals := make([][]float64, rows)
	for r := range vals {
		vals[r] = make([]float64, cols)
		for c := range vals[r] {
			vals[r][c] = rng.Float64() * 3
		}
	}
	hf, err := raster.FromRows(vals)
	require.NoError(t, err)
	mask, err := raster.NewSourceMask(rows, cols)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		mask.Set(rng.Intn(rows), rng.Intn(cols), true)
	}

	return hf, mask
}

func TestExcess(t *testing.T) {
	assert.InDelta(t, 2.0, flood.Excess(0, 2, 10), tol)
	assert.InDelta(t, 0.5, flood.Excess(5, 2, 10), tol)
	assert.InDelta(t, 0.0, flood.Excess(10, 2, 10), tol)
	assert.Zero(t, flood.Excess(11, 2, 10))
	assert.Zero(t, flood.Excess(math.Inf(1), 2, 10))

	// Non-increasing in d up to the threshold.
	prev := math.Inf(1)
	for d := 0.0; d <= 10; d += 0.25 {
		e := flood.Excess(d, 2, 10)
		assert.LessOrEqual(t, e, prev)
		prev = e
	}
}

func TestOptions_Validation(t *testing.T) {
	cases := []struct {
		name string
		opt  flood.Option
		want error
	}{
		{"zero threshold", flood.WithFloodThreshold(0), flood.ErrBadThreshold},
		{"negative threshold", flood.WithFloodThreshold(-1), flood.ErrBadThreshold},
		{"inf threshold", flood.WithFloodThreshold(math.Inf(1)), flood.ErrBadThreshold},
		{"negative height", flood.WithMaxFloodHeight(-0.5), flood.ErrBadMaxHeight},
		{"nan height", flood.WithMaxFloodHeight(math.NaN()), flood.ErrBadMaxHeight},
		{"negative epsilon", flood.WithEpsilon(-0.1), flood.ErrBadEpsilon},
		{"negative sigma", flood.WithSmoothing(-1), flood.ErrBadSigma},
		{"nan search limit", flood.WithSearchLimit(math.NaN()), flood.ErrBadSearchLimit},
	}
	hf, mask := flat(t, 3, 3, 1, 1)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := flood.NewOptions(tc.opt)
			require.ErrorIs(t, err, tc.want)
			require.ErrorIs(t, err, flood.ErrConfiguration)

			res, err := flood.Simulate(hf, mask, tc.opt)
			require.ErrorIs(t, err, tc.want)
			require.Nil(t, res)
		})
	}

	cfg, err := flood.NewOptions()
	require.NoError(t, err)
	assert.Equal(t, flood.DefaultMaxFloodHeight, cfg.MaxFloodHeight)
	assert.Equal(t, flood.DefaultFloodThreshold, cfg.FloodThreshold)
	assert.Equal(t, flood.DefaultEpsilon, cfg.Epsilon)
	assert.Equal(t, flood.DefaultSmoothSigma, cfg.SmoothSigma)
	assert.True(t, math.IsInf(cfg.SearchLimit, 1))
}

func TestSimulate_InputErrors(t *testing.T) {
	hf, mask := flat(t, 3, 3, 1, 1)

	_, err := flood.Simulate(nil, mask)
	require.ErrorIs(t, err, flood.ErrNilInput)
	_, err = flood.Simulate(hf, nil)
	require.ErrorIs(t, err, flood.ErrNilInput)

	other, err := raster.NewSourceMask(3, 4)
	require.NoError(t, err)
	_, err = flood.Simulate(hf, other)
	require.ErrorIs(t, err, flood.ErrShapeMismatch)
}

func TestSimulate_FlatSingleSource(t *testing.T) {
	hf, mask := flat(t, 5, 5, 2, 2)
	res, err := flood.Simulate(hf, mask,
		flood.WithMaxFloodHeight(2),
		flood.WithFloodThreshold(2),
		flood.WithSmoothing(0),
	)
	require.NoError(t, err)

	require.Equal(t, 9, res.FloodedCount())
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			f, h := res.At(r, c)
			ring := max(abs(r-2), abs(c-2))
			switch ring {
			case 0:
				assert.True(t, f)
				assert.InDelta(t, 2.0, h, tol)
			case 1:
				assert.True(t, f, "(%d,%d)", r, c)
				assert.InDelta(t, 0.5, h, tol)
			default:
				assert.False(t, f, "(%d,%d)", r, c)
				assert.Zero(t, h)
			}
		}
	}
	assert.Equal(t, 12, res.Origin[hf.Index(0, 0)])
	assert.InDelta(t, 2.0, res.Distance[hf.Index(0, 4)], tol)
}

func TestSimulate_RisingTerrain(t *testing.T) {
	hf, mask := rising(t)
	res, err := flood.Simulate(hf, mask,
		flood.WithMaxFloodHeight(1.5),
		flood.WithFloodThreshold(1000),
		flood.WithSmoothing(0),
	)
	require.NoError(t, err)

	for r := 0; r < 5; r++ {
		f0, h0 := res.At(r, 0)
		assert.True(t, f0)
		assert.InDelta(t, 1.5, h0, tol)

		f1, h1 := res.At(r, 1)
		assert.True(t, f1, "row %d col 1", r)
		assert.InDelta(t, flood.Excess(math.E, 1.5, 1000), h1, 1e-6)

		for c := 2; c < 5; c++ {
			f, _ := res.At(r, c)
			assert.False(t, f, "row %d col %d", r, c)
		}
	}
	assert.Equal(t, 10, res.FloodedCount())
}

func TestSimulate_NoSourcesAllDry(t *testing.T) {
	hf, _ := rising(t)
	empty, err := raster.NewSourceMask(hf.Rows, hf.Cols)
	require.NoError(t, err)

	res, err := flood.Simulate(hf, empty)
	require.NoError(t, err)
	assert.Zero(t, res.FloodedCount())
	for i := range res.WaterHeight {
		assert.Zero(t, res.WaterHeight[i])
		assert.Equal(t, -1, res.Origin[i])
	}
}

func TestSimulate_Invariants(t *testing.T) {
	for _, sigma := range []float64{0, 1.5} {
		hf, mask := noisy(t, 24, 31, 7)
		const maxH, eps = 2.0, 0.1
		res, err := flood.Simulate(hf, mask,
			flood.WithMaxFloodHeight(maxH),
			flood.WithFloodThreshold(40),
			flood.WithEpsilon(eps),
			flood.WithSmoothing(sigma),
		)
		require.NoError(t, err)
		require.Equal(t, hf.Rows, res.Rows)
		require.Equal(t, hf.Cols, res.Cols)

		for i, f := range res.Flooded {
			if !f {
				assert.Zero(t, res.WaterHeight[i])
				continue
			}
			src := res.Origin[i]
			require.GreaterOrEqual(t, src, 0)
			assert.True(t, mask.Cells[src])
			assert.LessOrEqual(t, res.WaterHeight[i], hf.Values[src]+maxH+tol)
			if sigma == 0 {
				assert.GreaterOrEqual(t, res.WaterHeight[i], hf.Values[i]+eps-tol)
			} else {
				assert.GreaterOrEqual(t, res.WaterHeight[i], hf.Values[i]-tol)
			}
		}
		for _, s := range mask.Indices() {
			assert.Zero(t, res.Distance[s])
			assert.Equal(t, s, res.Origin[s])
		}
	}
}

func TestSimulate_MonotoneInMaxHeight(t *testing.T) {
	hf, mask := noisy(t, 20, 20, 42)
	prev := -1
	var prevFlooded []bool
	for _, h := range []float64{0.5, 1, 2, 4} {
		res, err := flood.Simulate(hf, mask,
			flood.WithMaxFloodHeight(h),
			flood.WithFloodThreshold(60),
			flood.WithSmoothing(0),
		)
		require.NoError(t, err)
		n := res.FloodedCount()
		assert.GreaterOrEqual(t, n, prev)
		for i, f := range prevFlooded {
			if f {
				assert.True(t, res.Flooded[i], "cell %d dried out at height %v", i, h)
			}
		}
		prev, prevFlooded = n, res.Flooded
	}
}

func TestSimulate_SearchLimit(t *testing.T) {
	hf, mask := flat(t, 5, 5, 2, 2)
	res, err := flood.Simulate(hf, mask,
		flood.WithMaxFloodHeight(2),
		flood.WithFloodThreshold(2),
		flood.WithSmoothing(0),
		flood.WithSearchLimit(0.5),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, res.FloodedCount())
	assert.True(t, math.IsInf(res.Distance[0], 1))
}

func TestSimulate_Conn4(t *testing.T) {
	hf, mask := flat(t, 5, 5, 2, 2)
	res, err := flood.Simulate(hf, mask,
		flood.WithMaxFloodHeight(2),
		flood.WithFloodThreshold(2),
		flood.WithSmoothing(0),
		flood.WithConnectivity(gridgraph.Conn4),
	)
	require.NoError(t, err)
	// Source plus its four edge neighbours; diagonals sit at distance 2.
	assert.Equal(t, 5, res.FloodedCount())
	f, _ := res.At(1, 1)
	assert.False(t, f)
}

func TestSimulate_Smoothing(t *testing.T) {
	hf, mask := flat(t, 5, 5, 2, 2)
	res, err := flood.Simulate(hf, mask,
		flood.WithMaxFloodHeight(2),
		flood.WithFloodThreshold(2),
		flood.WithSmoothing(1),
	)
	require.NoError(t, err)
	require.Equal(t, 9, res.FloodedCount())

	_, peak := res.At(2, 2)
	assert.Less(t, peak, 2.0)
	assert.Greater(t, peak, 0.5)
	_, edge := res.At(1, 2)
	assert.Greater(t, edge, 0.5)
	assert.LessOrEqual(t, edge, 2.0)
}

func TestSimulate_HugeSigma(t *testing.T) {
	hf, mask := flat(t, 5, 5, 2, 2)
	res, err := flood.Simulate(hf, mask,
		flood.WithMaxFloodHeight(2),
		flood.WithFloodThreshold(2),
		flood.WithSmoothing(1e12),
	)
	require.NoError(t, err)
	require.Equal(t, 9, res.FloodedCount())

	// Every flooded cell sees the same mean: (2 + 8·0.5) / 9.
	for i, f := range res.Flooded {
		if f {
			assert.InDelta(t, 6.0/9.0, res.WaterHeight[i], 1e-9)
		}
	}
}

func TestSimulate_LogsSummary(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	hf, mask := flat(t, 3, 3, 1, 1)

	_, err := flood.Simulate(hf, mask, flood.WithLogger(log))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "flood: simulation complete")
	assert.Contains(t, buf.String(), "sources=1")
}

func TestReconstruct(t *testing.T) {
	hf, mask := flat(t, 5, 5, 2, 2)
	gg, err := gridgraph.NewGridGraph(hf, mask, gridgraph.DefaultGridOptions())
	require.NoError(t, err)
	sp, err := dijkstra.MultiSource(gg, dijkstra.Sources(gg.Sources()...))
	require.NoError(t, err)

	res, err := flood.Reconstruct(hf, sp,
		flood.WithMaxFloodHeight(2), flood.WithFloodThreshold(2), flood.WithSmoothing(0))
	require.NoError(t, err)
	assert.Equal(t, 9, res.FloodedCount())

	_, err = flood.Reconstruct(hf, nil)
	require.ErrorIs(t, err, flood.ErrNilInput)

	sp.Dist = sp.Dist[:3]
	_, err = flood.Reconstruct(hf, sp)
	require.ErrorIs(t, err, flood.ErrShapeMismatch)
}

func TestResult_StatsAndBodies(t *testing.T) {
	hf, mask := flat(t, 7, 7, 1, 1)
	mask.Set(5, 5, true)
	res, err := flood.Simulate(hf, mask,
		flood.WithMaxFloodHeight(2),
		flood.WithFloodThreshold(2),
		flood.WithSmoothing(0),
	)
	require.NoError(t, err)

	bodies := res.Bodies()
	require.Len(t, bodies, 2)
	assert.Len(t, bodies[0], 9)
	assert.Len(t, bodies[1], 9)

	s := res.Stats()
	assert.Equal(t, 49, s.Cells)
	assert.Equal(t, 18, s.FloodedCells)
	assert.InDelta(t, 0.5, s.MinHeight, tol)
	assert.InDelta(t, 2.0, s.MaxHeight, tol)
	assert.InDelta(t, 6.0/9.0, s.MeanHeight, tol)

	empty := (&flood.Result{Flooded: make([]bool, 4), WaterHeight: make([]float64, 4)}).Stats()
	assert.Equal(t, flood.Stats{Cells: 4}, empty)
}

func TestBasic(t *testing.T) {
	hf, err := raster.FromRows([][]float64{
		{5, 5, 5, 0.2},
		{5, 0, 1, 5},
		{5, 5, 9, 5},
	})
	require.NoError(t, err)

	res, err := flood.Basic(hf, 1.5, flood.WithClosingRadius(0))
	require.NoError(t, err)
	assert.Equal(t, 3, res.FloodedCount())
	for _, rc := range [][2]int{{1, 1}, {1, 2}, {0, 3}} {
		f, h := res.At(rc[0], rc[1])
		assert.True(t, f, "%v", rc)
		assert.InDelta(t, 1.5, h, tol)
	}
	assert.Nil(t, res.Distance)

	// A low cell not connected to the basin stays dry.
	hf2, err := raster.FromRows([][]float64{{0, 9, 0.5}})
	require.NoError(t, err)
	res, err = flood.Basic(hf2, 1, flood.WithClosingRadius(0))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false}, res.Flooded)

	_, err = flood.Basic(hf, -1)
	require.True(t, errors.Is(err, flood.ErrConfiguration))
	_, err = flood.Basic(nil, 1)
	require.ErrorIs(t, err, flood.ErrNilInput)
}

// ringBasin is a 5×5 field: a border at 3, an inner basin at 0 and a 2 m
// speck in its centre.
func ringBasin(t *testing.T) *raster.HeightField {
	t.Helper()
	hf, err := raster.FromRows([][]float64{
		{3, 3, 3, 3, 3},
		{3, 0, 0, 0, 3},
		{3, 0, 2, 0, 3},
		{3, 0, 0, 0, 3},
		{3, 3, 3, 3, 3},
	})
	require.NoError(t, err)

	return hf
}

func TestBasic_ClosingFillsDrySpeck(t *testing.T) {
	hf := ringBasin(t)

	raw, err := flood.Basic(hf, 1, flood.WithClosingRadius(0))
	require.NoError(t, err)
	assert.Equal(t, 8, raw.FloodedCount())
	f, _ := raw.At(2, 2)
	assert.False(t, f)

	closed, err := flood.Basic(hf, 1)
	require.NoError(t, err)
	assert.Equal(t, 9, closed.FloodedCount())
	f, h := closed.At(2, 2)
	assert.True(t, f)
	assert.InDelta(t, 1.0, h, tol)
	for i, wasFlooded := range raw.Flooded {
		if wasFlooded {
			assert.True(t, closed.Flooded[i], "closing dropped cell %d", i)
		}
	}
}

func TestBasic_ClosingFillsNarrowInlet(t *testing.T) {
	// 7×7 field at 9 with a 5×5 basin at 0; a two-cell inlet of wall
	// reaches into the basin from the west at row 3.
	vals := make([][]float64, 7)
	for r := range vals {
		vals[r] = make([]float64, 7)
		for c := range vals[r] {
			if r == 0 || r == 6 || c == 0 || c == 6 {
				vals[r][c] = 9
			}
		}
	}
	vals[3][1], vals[3][2] = 9, 9
	hf, err := raster.FromRows(vals)
	require.NoError(t, err)

	raw, err := flood.Basic(hf, 1, flood.WithClosingRadius(0))
	require.NoError(t, err)
	require.Equal(t, 23, raw.FloodedCount())

	closed, err := flood.Basic(hf, 1)
	require.NoError(t, err)
	assert.Equal(t, 24, closed.FloodedCount())
	tip, _ := closed.At(3, 2)
	assert.True(t, tip, "inlet tip should be closed over")
	mouth, _ := closed.At(3, 1)
	assert.False(t, mouth, "inlet mouth opens onto the wall")
	for c := 0; c < 7; c++ {
		top, _ := closed.At(0, c)
		assert.False(t, top, "wall cell (0,%d)", c)
	}

	_, err = flood.Basic(hf, 1, flood.WithClosingRadius(-1))
	require.ErrorIs(t, err, flood.ErrBadClosingRadius)
	require.ErrorIs(t, err, flood.ErrConfiguration)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
