// Command floodserve loads elevation tiles, simulates a flood from a source
// mask and serves the result to a renderer.
//
//	floodserve -tiles ./dem -mask rivers.asc -window 500,500,900,800 -addr :8080
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/floodfield/feed"
	"github.com/katalvlaran/floodfield/flood"
	"github.com/katalvlaran/floodfield/raster"
	"github.com/katalvlaran/floodfield/terrain"
)

type config struct {
	tiles     string
	mask      string
	window    string
	cell      float64
	maxHeight float64
	threshold float64
	sigma     float64
	addr      string
	fillGaps  bool
	centers   bool
	verbose   bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.tiles, "tiles", ".", "directory of ESRI ASCII grid (.asc) elevation tiles")
	flag.StringVar(&cfg.mask, "mask", "", "ASCII grid marking water sources with values > 0 (required)")
	flag.StringVar(&cfg.window, "window", "", "minx,miny,maxx,maxy in meters; defaults to the tile bounds")
	flag.Float64Var(&cfg.cell, "cell", 1, "output cell size in meters")
	flag.Float64Var(&cfg.maxHeight, "max-height", flood.DefaultMaxFloodHeight, "water rise above the source at distance 0")
	flag.Float64Var(&cfg.threshold, "threshold", flood.DefaultFloodThreshold, "hydraulic distance at which flooding stops")
	flag.Float64Var(&cfg.sigma, "sigma", flood.DefaultSmoothSigma, "Gaussian smoothing sigma in cells, 0 disables")
	flag.StringVar(&cfg.addr, "addr", ":8080", "listen address")
	flag.BoolVar(&cfg.fillGaps, "fill-gaps", true, "insert flat placeholder tiles for missing blocks")
	flag.BoolVar(&cfg.centers, "cell-centers", false,
		"register tiles and mask on pixel centres, shifting each origin half a cell inward; off keeps the header corner")
	flag.BoolVar(&cfg.verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(cfg, logger); err != nil {
		logger.Error("floodserve", "err", err)
		os.Exit(1)
	}
}

func run(cfg config, logger *slog.Logger) error {
	srv, err := newServer(cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("serving", "addr", cfg.addr)

	return http.ListenAndServe(cfg.addr, srv.Handler())
}

// newServer loads the inputs named by cfg and wraps them in a feed server.
func newServer(cfg config, logger *slog.Logger) (*feed.Server, error) {
	hf, mask, err := load(cfg, logger)
	if err != nil {
		return nil, err
	}

	return feed.NewServer(hf, mask,
		feed.WithServerLogger(logger),
		feed.WithFloodOptions(
			flood.WithMaxFloodHeight(cfg.maxHeight),
			flood.WithFloodThreshold(cfg.threshold),
			flood.WithSmoothing(cfg.sigma),
		),
	)
}

// load reads the tiles and the mask and samples them onto the output grid.
func load(cfg config, logger *slog.Logger) (*raster.HeightField, *raster.SourceMask, error) {
	if cfg.mask == "" {
		return nil, nil, errors.New("-mask is required")
	}
	var ascOpts []terrain.ASCOption
	if cfg.centers {
		ascOpts = append(ascOpts, terrain.WithCellCenters())
	}

	// 1) Tiles and the coherence pass
	store := terrain.NewStore(terrain.WithLogger(logger))
	n, err := terrain.LoadDir(store, cfg.tiles, ascOpts...)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("tiles loaded", "count", n, "dir", cfg.tiles)
	if cfg.fillGaps {
		if added := store.FillGaps(); added > 0 {
			logger.Warn("coverage gaps filled", "placeholders", added)
		}
	}

	// 2) Height field over the window
	w, err := window(cfg.window, store)
	if err != nil {
		return nil, nil, err
	}
	sampler, err := terrain.NewSampler(store)
	if err != nil {
		return nil, nil, err
	}
	hf, err := sampler.HeightField(w, cfg.cell)
	if err != nil {
		return nil, nil, err
	}

	// 3) Source mask on the same grid
	maskTile, err := terrain.ReadASCFile(cfg.mask, ascOpts...)
	if err != nil {
		return nil, nil, err
	}
	mask, err := terrain.SourceMaskFromTile(maskTile, hf)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("grid ready", "rows", hf.Rows, "cols", hf.Cols, "sources", mask.Count())

	return hf, mask, nil
}

// window parses "minx,miny,maxx,maxy", falling back to the store's extent.
func window(s string, store *terrain.Store) (raster.Window, error) {
	if s == "" {
		w, ok := store.Bounds()
		if !ok {
			return raster.Window{}, errors.New("no tiles loaded and no -window given")
		}

		return w, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return raster.Window{}, fmt.Errorf("-window: want 4 comma-separated values, got %d", len(parts))
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return raster.Window{}, fmt.Errorf("-window: %w", err)
		}
		v[i] = f
	}
	w := raster.Window{MinX: v[0], MinY: v[1], MaxX: v[2], MaxY: v[3]}.Snap()

	return w, w.Validate()
}
