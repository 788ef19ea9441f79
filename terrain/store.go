package terrain

import (
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/floodfield/raster"
)

// Store holds the elevation tiles of one generation run and answers
// point-containment queries.
//
// Lookups go through two levels: the active tile (the one returned by the
// previous query) is re-tested first, since scans query adjacent points;
// otherwise a coarse grid-of-tiles index, keyed on the footprint of the first
// tile added, narrows the candidates to the tiles overlapping one grid cell.
//
// A Store is safe for concurrent readers. AddTile and FillGaps take the write
// lock and are meant to run during loading, before sampling starts.
type Store struct {
	mu               sync.RWMutex
	tiles            []*Tile
	index            map[cellKey][]int
	refW, refH       float64
	originX, originY float64

	active atomic.Int64 // index+1 of the last returned tile; 0 means none
	logger *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used to report synthesized tiles.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

type cellKey struct{ i, j int }

// NewStore returns an empty Store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		index:  make(map[cellKey][]int),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AddTile registers t. The first tile fixes the spatial index grid.
func (s *Store) AddTile(t *Tile) error {
	if t == nil {
		return ErrNilTile
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(t)

	return nil
}

func (s *Store) addLocked(t *Tile) {
	if len(s.tiles) == 0 {
		s.refW, s.refH = t.Width(), t.Height()
		s.originX, s.originY = t.MinX, t.MinY
	}
	idx := len(s.tiles)
	s.tiles = append(s.tiles, t)

	i0 := int(math.Floor((t.MinX - s.originX) / s.refW))
	i1 := int(math.Ceil((t.MaxX-s.originX)/s.refW)) - 1
	j0 := int(math.Floor((t.MinY - s.originY) / s.refH))
	j1 := int(math.Ceil((t.MaxY-s.originY)/s.refH)) - 1
	for i := i0; i <= i1; i++ {
		for j := j0; j <= j1; j++ {
			k := cellKey{i, j}
			s.index[k] = append(s.index[k], idx)
		}
	}
}

// Len returns the number of tiles, synthetic ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tiles)
}

// Tiles returns a snapshot of the stored tiles in insertion order.
func (s *Store) Tiles() []*Tile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Tile, len(s.tiles))
	copy(out, s.tiles)

	return out
}

// TileContaining returns the tile whose half-open rectangle contains (x, y),
// or nil when the point lies outside every tile.
func (s *Store) TileContaining(x, y float64) *Tile {
	cursor := int(s.active.Load()) - 1
	t := s.locate(x, y, &cursor)
	if t != nil {
		s.active.Store(int64(cursor) + 1)
	}

	return t
}

// locate resolves (x, y) starting from the caller's cursor and moves the
// cursor to the tile found. Parallel scans keep one cursor per worker.
func (s *Store) locate(x, y float64, cursor *int) *Tile {
	if math.IsNaN(x) || math.IsNaN(y) {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c := *cursor; c >= 0 && c < len(s.tiles) && s.tiles[c].Contains(x, y) {
		return s.tiles[c]
	}
	if len(s.tiles) == 0 {
		return nil
	}
	for _, i := range s.index[s.key(x, y)] {
		if s.tiles[i].Contains(x, y) {
			*cursor = i
			return s.tiles[i]
		}
	}

	return nil
}

func (s *Store) key(x, y float64) cellKey {
	return cellKey{
		i: int(math.Floor((x - s.originX) / s.refW)),
		j: int(math.Floor((y - s.originY) / s.refH)),
	}
}

// Bounds returns the tight bounding rectangle of all tiles.
// ok is false for an empty store.
func (s *Store) Bounds() (w raster.Window, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.boundsLocked()
}

func (s *Store) boundsLocked() (raster.Window, bool) {
	if len(s.tiles) == 0 {
		return raster.Window{}, false
	}
	w := raster.Window{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, t := range s.tiles {
		w.MinX = math.Min(w.MinX, t.MinX)
		w.MinY = math.Min(w.MinY, t.MinY)
		w.MaxX = math.Max(w.MaxX, t.MaxX)
		w.MaxY = math.Max(w.MaxY, t.MaxY)
	}

	return w, true
}

// FillGaps walks the bounding rectangle of the loaded tiles in steps of the
// first tile's footprint and inserts an all-zero tile of the same resolution
// and size wherever no tile covers a step. It returns how many tiles were
// inserted.
//
// Missing slabs are common along coastlines; the placeholders read as flat
// sea-level terrain. Each insertion is logged as a warning.
func (s *Store) FillGaps() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.boundsLocked()
	if !ok {
		return 0
	}
	ref := s.tiles[0]
	w, h := ref.Width(), ref.Height()
	nx := int(math.Ceil((b.MaxX-b.MinX)/w - 1e-9))
	ny := int(math.Ceil((b.MaxY-b.MinY)/h - 1e-9))

	type gap struct{ x, y float64 }
	var gaps []gap
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			x0 := b.MinX + float64(i)*w
			y0 := b.MinY + float64(j)*h
			if !s.coveredLocked(x0+w/2, y0+h/2) {
				gaps = append(gaps, gap{x0, y0})
			}
		}
	}
	for _, g := range gaps {
		s.addLocked(FlatTile(g.x, g.y, ref.Resolution, ref.Cols, ref.Rows))
		s.logger.Warn("terrain: missing tile, inserted flat placeholder",
			"minX", g.x, "minY", g.y, "maxX", g.x+w, "maxY", g.y+h)
	}

	return len(gaps)
}

func (s *Store) coveredLocked(x, y float64) bool {
	for _, i := range s.index[s.key(x, y)] {
		if s.tiles[i].Contains(x, y) {
			return true
		}
	}

	return false
}
