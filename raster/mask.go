package raster

// SourceMask marks the cells from which a flood originates.
// It is produced by an external water-body detector and consumed once.
type SourceMask struct {
	Rows, Cols int
	Cells      []bool // row-major, row 0 north
}

// NewSourceMask allocates an all-false mask.
func NewSourceMask(rows, cols int) (*SourceMask, error) {
	if rows < 1 || cols < 1 {
		return nil, ErrEmptyGrid
	}

	return &SourceMask{Rows: rows, Cols: cols, Cells: make([]bool, rows*cols)}, nil
}

// MaskFromRows builds a mask from a rectangular 2D slice.
func MaskFromRows(cells [][]bool) (*SourceMask, error) {
	rows, cols, err := shape(len(cells), func(i int) int { return len(cells[i]) })
	if err != nil {
		return nil, err
	}
	m := &SourceMask{Rows: rows, Cols: cols, Cells: make([]bool, 0, rows*cols)}
	for _, row := range cells {
		m.Cells = append(m.Cells, row...)
	}

	return m, nil
}

// MaskFromLabels thresholds a semantic label image: a cell is a source when
// its label equals class.
func MaskFromLabels(labels [][]int, class int) (*SourceMask, error) {
	rows, cols, err := shape(len(labels), func(i int) int { return len(labels[i]) })
	if err != nil {
		return nil, err
	}
	m := &SourceMask{Rows: rows, Cols: cols, Cells: make([]bool, rows*cols)}
	for r, row := range labels {
		for c, l := range row {
			m.Cells[r*cols+c] = l == class
		}
	}

	return m, nil
}

// At reports whether cell (row, col) is a source.
func (m *SourceMask) At(row, col int) bool { return m.Cells[row*m.Cols+col] }

// Set marks or clears cell (row, col).
func (m *SourceMask) Set(row, col int, v bool) { m.Cells[row*m.Cols+col] = v }

// Indices returns the row-major indices of all source cells in ascending order.
func (m *SourceMask) Indices() []int {
	var out []int
	for i, v := range m.Cells {
		if v {
			out = append(out, i)
		}
	}

	return out
}

// Count returns the number of source cells.
func (m *SourceMask) Count() int {
	n := 0
	for _, v := range m.Cells {
		if v {
			n++
		}
	}

	return n
}

// SameShape reports whether m aligns cell-for-cell with hf.
func (m *SourceMask) SameShape(hf *HeightField) bool {
	return hf != nil && m.Rows == hf.Rows && m.Cols == hf.Cols
}
