package terrain

import "fmt"

// Tile is one rectangular elevation raster ("slab").
//
// Samples is row-major with row 0 as the northernmost row, so the sample for
// world y grows toward row 0. MaxX = MinX + Resolution*Cols and
// MaxY = MinY + Resolution*Rows hold for every tile. Tiles are immutable once
// constructed.
type Tile struct {
	MinX, MinY float64
	MaxX, MaxY float64
	Resolution float64 // meters per cell
	Cols, Rows int
	NoData     float64
	Samples    []float64

	synthetic bool
}

// NewTile builds a tile whose lower-left corner is (minX, minY) from rows of
// samples ordered north to south. The samples are copied.
func NewTile(minX, minY, resolution, noData float64, samples [][]float64) (*Tile, error) {
	if !(resolution > 0) {
		return nil, fmt.Errorf("%w: %v", ErrBadResolution, resolution)
	}
	if len(samples) == 0 || len(samples[0]) == 0 {
		return nil, ErrEmptyTile
	}
	cols := len(samples[0])
	flat := make([]float64, 0, len(samples)*cols)
	for i, row := range samples {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d samples, want %d", ErrRaggedTile, i, len(row), cols)
		}
		flat = append(flat, row...)
	}

	return newTile(minX, minY, resolution, noData, cols, len(samples), flat), nil
}

// FlatTile returns a synthetic all-zero tile. The store inserts these where a
// neighbouring slab is missing from the data set.
func FlatTile(minX, minY, resolution float64, cols, rows int) *Tile {
	t := newTile(minX, minY, resolution, 0, cols, rows, make([]float64, cols*rows))
	t.synthetic = true

	return t
}

func newTile(minX, minY, resolution, noData float64, cols, rows int, samples []float64) *Tile {
	return &Tile{
		MinX:       minX,
		MinY:       minY,
		MaxX:       minX + resolution*float64(cols),
		MaxY:       minY + resolution*float64(rows),
		Resolution: resolution,
		Cols:       cols,
		Rows:       rows,
		NoData:     noData,
		Samples:    samples,
	}
}

// Synthetic reports whether t was generated as a gap placeholder.
func (t *Tile) Synthetic() bool { return t.synthetic }

// Contains reports whether (x, y) falls inside the half-open rectangle
// [MinX,MaxX) × [MinY,MaxY).
func (t *Tile) Contains(x, y float64) bool {
	return x >= t.MinX && x < t.MaxX && y >= t.MinY && y < t.MaxY
}

// At returns the sample at (row, col). NoData samples read as 0.
func (t *Tile) At(row, col int) float64 {
	v := t.Samples[row*t.Cols+col]
	if v == t.NoData {
		return 0
	}

	return v
}

// Width returns the east-west extent in meters.
func (t *Tile) Width() float64 { return t.MaxX - t.MinX }

// Height returns the north-south extent in meters.
func (t *Tile) Height() float64 { return t.MaxY - t.MinY }
