// Package raster defines the uniform grids exchanged between the terrain
// sampler, the flood graph builder and the flood reconstructor.
//
// Every grid is stored row-major with row 0 as the northernmost row: world y
// increases northward while the row index increases southward. A cell index is
// row*Cols + col.
//
// Types:
//
//   - Window:      world-space query rectangle (meters).
//   - HeightField: elevation samples over a Window at a fixed cell size.
//   - SourceMask:  cells adjacent to flowing or still water (flood origins).
//
// Errors:
//
//   - ErrEmptyGrid:      input grid has no rows or no columns.
//   - ErrNonRectangular: rows of differing lengths.
//   - ErrBadCellSize:    cell size is not a positive finite number.
//   - ErrBadWindow:      window is empty, inverted or not finite.
//   - ErrShapeMismatch:  two grids that must align do not.
package raster

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for raster construction.
var (
	// ErrEmptyGrid indicates the input 2D slice is empty.
	ErrEmptyGrid = errors.New("raster: grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("raster: all rows must have the same length")
	// ErrBadCellSize indicates a cell size that is zero, negative or not finite.
	ErrBadCellSize = errors.New("raster: cell size must be positive and finite")
	// ErrBadWindow indicates a window with no area or non-finite bounds.
	ErrBadWindow = errors.New("raster: window must satisfy MinX<MaxX and MinY<MaxY")
	// ErrShapeMismatch indicates two grids whose dimensions differ.
	ErrShapeMismatch = errors.New("raster: grid shapes do not match")
)

// Window is an axis-aligned world rectangle given by its lower-left and
// upper-right corners.
type Window struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// Validate reports ErrBadWindow if w has no area or a non-finite bound.
func (w Window) Validate() error {
	for _, v := range [...]float64{w.MinX, w.MinY, w.MaxX, w.MaxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %+v", ErrBadWindow, w)
		}
	}
	if !(w.MinX < w.MaxX && w.MinY < w.MaxY) {
		return fmt.Errorf("%w: %+v", ErrBadWindow, w)
	}

	return nil
}

// Snap rounds the lower-left corner up and the upper-right corner down to
// whole meters, so the window lies on the integer grid inside w.
func (w Window) Snap() Window {
	return Window{
		MinX: math.Ceil(w.MinX),
		MinY: math.Ceil(w.MinY),
		MaxX: math.Floor(w.MaxX),
		MaxY: math.Floor(w.MaxY),
	}
}

// Dims returns the grid shape that covers w at cellSize.
// Partial cells at the east and south edges count as whole cells.
func (w Window) Dims(cellSize float64) (rows, cols int, err error) {
	if err = checkCellSize(cellSize); err != nil {
		return 0, 0, err
	}
	if err = w.Validate(); err != nil {
		return 0, 0, err
	}
	// The small tolerance keeps exact multiples from gaining a spurious cell.
	cols = int(math.Ceil((w.MaxX-w.MinX)/cellSize - 1e-9))
	rows = int(math.Ceil((w.MaxY-w.MinY)/cellSize - 1e-9))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return rows, cols, nil
}

// Point returns the world coordinate sampled for cell (row, col): the centre
// of the cell. Columns advance eastward from MinX and rows advance southward
// from MaxY. A partial cell on the east or south edge is sampled at the centre
// of its part inside w, so every point lies in [MinX,MaxX) × (MinY,MaxY).
func (w Window) Point(row, col int, cellSize float64) (x, y float64) {
	west, north := w.MinX+float64(col)*cellSize, w.MaxY-float64(row)*cellSize
	x, y = west+cellSize/2, north-cellSize/2
	if x >= w.MaxX {
		x = (west + w.MaxX) / 2
	}
	if y <= w.MinY {
		y = (north + w.MinY) / 2
	}

	return x, y
}

func checkCellSize(cellSize float64) error {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return fmt.Errorf("%w: %v", ErrBadCellSize, cellSize)
	}

	return nil
}
