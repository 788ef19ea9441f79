package gridgraph

import "errors"

var (
	// ErrNilField indicates a nil height field was passed to NewGridGraph.
	ErrNilField = errors.New("gridgraph: height field is nil")
	// ErrShapeMismatch indicates the source mask does not align with the height field.
	ErrShapeMismatch = errors.New("gridgraph: source mask shape differs from height field")
	// ErrCellCount indicates a cell slice whose length is not rows*cols.
	ErrCellCount = errors.New("gridgraph: cell slice length must equal rows*cols")
)
