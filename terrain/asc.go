package terrain

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ASCOption configures ReadASC.
type ASCOption func(*ascConfig)

type ascConfig struct {
	cellCenters bool
}

// WithCellCenters registers the tile on pixel centres: the lower-left corner
// is moved half a cell inward so that grid points coincide with the centres
// of the source pixels.
func WithCellCenters() ASCOption {
	return func(c *ascConfig) {
		c.cellCenters = true
	}
}

// ReadASC parses an ESRI ASCII grid into a Tile.
//
// The header holds ncols, nrows, xllcorner|xllcenter, yllcorner|yllcenter,
// cellsize and an optional NODATA_value, in any order and case. Samples follow
// north to south; line breaks inside the sample block are not significant.
func ReadASC(r io.Reader, opts ...ASCOption) (*Tile, error) {
	var cfg ascConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	header := make(map[string]float64, 6)
	var (
		centerX, centerY bool
		samples          []float64
		cols, rows       int
		res              float64
		err              error
	)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if samples == nil && isHeaderKey(fields[0]) {
			if len(fields) != 2 {
				return nil, fmt.Errorf("%w: line %d: %q", ErrBadHeader, line, sc.Text())
			}
			key := strings.ToLower(fields[0])
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrBadHeader, line, err)
			}
			switch key {
			case "xllcenter":
				centerX, key = true, "xllcorner"
			case "yllcenter":
				centerY, key = true, "yllcorner"
			}
			header[key] = v
			continue
		}
		if samples == nil {
			if cols, rows, res, err = ascShape(header); err != nil {
				return nil, err
			}
			samples = make([]float64, 0, cols*rows)
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrBadSample, line, err)
			}
			if len(samples) == cols*rows {
				return nil, fmt.Errorf("%w: line %d: more than %d×%d samples", ErrBadSample, line, rows, cols)
			}
			samples = append(samples, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("terrain: reading ASC: %w", err)
	}
	if samples == nil {
		if cols, rows, res, err = ascShape(header); err != nil {
			return nil, err
		}
	}
	if len(samples) != cols*rows {
		return nil, fmt.Errorf("%w: got %d samples, want %d×%d", ErrBadSample, len(samples), rows, cols)
	}

	minX, minY := header["xllcorner"], header["yllcorner"]
	if centerX {
		minX -= res / 2
	}
	if centerY {
		minY -= res / 2
	}
	if cfg.cellCenters {
		minX += res / 2
		minY += res / 2
	}
	noData, ok := header["nodata_value"]
	if !ok {
		noData = -9999
	}

	return newTile(minX, minY, res, noData, cols, rows, samples), nil
}

// maxASCSamples bounds ncols×nrows; it is far above any survey tile and keeps
// a corrupt header from sizing a huge allocation.
const maxASCSamples = 1 << 26

// ascShape validates the header fields that size the sample block.
func ascShape(header map[string]float64) (cols, rows int, res float64, err error) {
	for _, k := range [...]string{"ncols", "nrows", "xllcorner", "yllcorner", "cellsize"} {
		if _, ok := header[k]; !ok {
			return 0, 0, 0, fmt.Errorf("%w: missing %s", ErrBadHeader, k)
		}
	}
	nc, nr := header["ncols"], header["nrows"]
	if nc != math.Trunc(nc) || nr != math.Trunc(nr) || nc < 1 || nr < 1 || nc*nr > maxASCSamples {
		return 0, 0, 0, fmt.Errorf("%w: ncols=%v nrows=%v", ErrBadHeader, nc, nr)
	}
	res = header["cellsize"]
	if !(res > 0) || math.IsInf(res, 0) {
		return 0, 0, 0, fmt.Errorf("%w: %v", ErrBadResolution, res)
	}

	return int(nc), int(nr), res, nil
}

func isHeaderKey(s string) bool {
	switch strings.ToLower(s) {
	case "ncols", "nrows", "xllcorner", "yllcorner", "xllcenter", "yllcenter", "cellsize", "nodata_value":
		return true
	}

	return false
}

// LoadDir reads every *.asc file in dir, in name order, into store.
// It returns the number of tiles added.
func LoadDir(store *Store, dir string, opts ...ASCOption) (int, error) {
	if store == nil {
		return 0, ErrNilStore
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("terrain: listing %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".asc") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for i, name := range names {
		t, err := ReadASCFile(filepath.Join(dir, name), opts...)
		if err != nil {
			return i, err
		}
		if err = store.AddTile(t); err != nil {
			return i, err
		}
	}

	return len(names), nil
}

// ReadASCFile opens and parses a single ASC file.
func ReadASCFile(path string, opts ...ASCOption) (*Tile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("terrain: %w", err)
	}
	defer f.Close()

	t, err := ReadASC(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}
