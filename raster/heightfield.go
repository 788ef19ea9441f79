package raster

import "math"

// HeightField is a uniform elevation grid over Window.
// It is produced fresh for every simulation and treated as read-only after
// construction.
type HeightField struct {
	Rows, Cols int
	CellSize   float64
	Window     Window
	Values     []float64 // row-major, row 0 north
}

// NewHeightField allocates a zero-valued field covering w at cellSize.
func NewHeightField(w Window, cellSize float64) (*HeightField, error) {
	rows, cols, err := w.Dims(cellSize)
	if err != nil {
		return nil, err
	}

	return &HeightField{
		Rows:     rows,
		Cols:     cols,
		CellSize: cellSize,
		Window:   w,
		Values:   make([]float64, rows*cols),
	}, nil
}

// FromRows builds a field from a rectangular 2D slice with unit cells placed
// over [0,cols]×[0,rows]. The input is deep-copied.
func FromRows(values [][]float64) (*HeightField, error) {
	rows, cols, err := shape(len(values), func(i int) int { return len(values[i]) })
	if err != nil {
		return nil, err
	}
	hf := &HeightField{
		Rows:     rows,
		Cols:     cols,
		CellSize: 1,
		Window:   Window{MinX: 0, MinY: 0, MaxX: float64(cols), MaxY: float64(rows)},
		Values:   make([]float64, 0, rows*cols),
	}
	for _, row := range values {
		hf.Values = append(hf.Values, row...)
	}

	return hf, nil
}

// FromDepth converts a rendered depth image, shot straight down from a camera
// at cameraHeight, into elevations: cameraHeight - depth.
func FromDepth(depth [][]float64, cameraHeight float64) (*HeightField, error) {
	hf, err := FromRows(depth)
	if err != nil {
		return nil, err
	}
	for i, d := range hf.Values {
		hf.Values[i] = cameraHeight - d
	}

	return hf, nil
}

// Len returns Rows*Cols.
func (hf *HeightField) Len() int { return hf.Rows * hf.Cols }

// InBounds reports whether (row, col) lies inside the field.
func (hf *HeightField) InBounds(row, col int) bool {
	return row >= 0 && row < hf.Rows && col >= 0 && col < hf.Cols
}

// Index maps (row, col) to a row-major index.
func (hf *HeightField) Index(row, col int) int { return row*hf.Cols + col }

// Coordinate converts a row-major index back to (row, col).
func (hf *HeightField) Coordinate(idx int) (row, col int) { return idx / hf.Cols, idx % hf.Cols }

// At returns the elevation of cell (row, col).
func (hf *HeightField) At(row, col int) float64 { return hf.Values[hf.Index(row, col)] }

// Set stores the elevation of cell (row, col).
func (hf *HeightField) Set(row, col int, v float64) { hf.Values[hf.Index(row, col)] = v }

// MinMax returns the lowest and highest elevation and the index of the lowest
// cell (first one in row-major order on ties).
func (hf *HeightField) MinMax() (lo, hi float64, argmin int) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for i, v := range hf.Values {
		if v < lo {
			lo, argmin = v, i
		}
		if v > hi {
			hi = v
		}
	}

	return lo, hi, argmin
}

// shape validates a 2D slice given its row count and a row-length accessor.
func shape(rows int, rowLen func(int) int) (int, int, error) {
	if rows == 0 || rowLen(0) == 0 {
		return 0, 0, ErrEmptyGrid
	}
	cols := rowLen(0)
	for i := 1; i < rows; i++ {
		if rowLen(i) != cols {
			return 0, 0, ErrNonRectangular
		}
	}

	return rows, cols, nil
}
