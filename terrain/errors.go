package terrain

import "errors"

var (
	// ErrNilTile indicates a nil *Tile was passed to AddTile.
	ErrNilTile = errors.New("terrain: tile is nil")
	// ErrEmptyTile indicates a tile with no rows or no columns.
	ErrEmptyTile = errors.New("terrain: tile must have at least one row and one column")
	// ErrRaggedTile indicates tile rows of differing lengths.
	ErrRaggedTile = errors.New("terrain: all tile rows must have the same length")
	// ErrBadResolution indicates a non-positive cell resolution.
	ErrBadResolution = errors.New("terrain: resolution must be positive")
	// ErrBadHeader indicates a malformed or incomplete ASC header.
	ErrBadHeader = errors.New("terrain: malformed ASC header")
	// ErrBadSample indicates an ASC sample that is not a number or a row of the wrong length.
	ErrBadSample = errors.New("terrain: malformed ASC sample row")
	// ErrNilStore indicates a Sampler was built without a Store.
	ErrNilStore = errors.New("terrain: store is nil")
)
