package flood

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/floodfield/dijkstra"
	"github.com/katalvlaran/floodfield/gridgraph"
	"github.com/katalvlaran/floodfield/raster"
)

// Simulate computes the flood surface over hf from the sources in mask.
//
// Parameters are validated first; an invalid one returns an error wrapping
// ErrConfiguration before any work is done. An empty mask is valid and
// yields a fully dry result.
//
// Complexity: O(V log V) with V = Rows*Cols (at most 8V arcs), plus
// O(V·σ) for smoothing.
func Simulate(hf *raster.HeightField, mask *raster.SourceMask, opts ...Option) (*Result, error) {
	cfg, err := NewOptions(opts...)
	if err != nil {
		return nil, err
	}
	if hf == nil || mask == nil {
		return nil, ErrNilInput
	}
	if !mask.SameShape(hf) {
		return nil, fmt.Errorf("%w: mask %d×%d, field %d×%d", ErrShapeMismatch, mask.Rows, mask.Cols, hf.Rows, hf.Cols)
	}

	gg, err := gridgraph.NewGridGraph(hf, mask, gridgraph.GridOptions{
		Conn:    cfg.Conn,
		Weight:  gridgraph.ExpWeight,
		Workers: cfg.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("flood: building graph: %w", err)
	}

	sp, err := dijkstra.MultiSource(gg,
		dijkstra.Sources(gg.Sources()...),
		dijkstra.WithMaxDistance(cfg.SearchLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("flood: shortest paths: %w", err)
	}

	res := reconstruct(hf, sp, cfg)
	logger(cfg).Debug("flood: simulation complete",
		"rows", res.Rows, "cols", res.Cols,
		"sources", len(gg.Sources()),
		"flooded", res.FloodedCount())

	return res, nil
}

func logger(cfg Options) *slog.Logger {
	if cfg.Logger == nil {
		return slog.Default()
	}

	return cfg.Logger
}
