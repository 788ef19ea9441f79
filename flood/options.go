package flood

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/floodfield/gridgraph"
)

// Defaults for Options.
const (
	DefaultMaxFloodHeight = 1.0
	DefaultFloodThreshold = 100.0
	// DefaultEpsilon is the clearance water must have over terrain for a cell
	// to count as flooded.
	DefaultEpsilon = 0.1
	// DefaultSmoothSigma is the Gaussian σ, in cells, applied to water heights.
	DefaultSmoothSigma = 5.0
)

// Options configures Simulate and Reconstruct.
//
// MaxFloodHeight – water rise above the source elevation at the source itself (meters).
// FloodThreshold – hydraulic distance at which the rise has decayed to 0.
// Epsilon        – minimum water clearance over terrain for a flooded cell.
// SmoothSigma    – Gaussian σ in cells for the water surface; 0 disables smoothing.
// SearchLimit    – optional cap on the shortest-path search; +Inf by default.
// Conn           – graph connectivity, Conn8 by default.
// Workers        – goroutines used for weight precomputation; < 1 selects GOMAXPROCS.
// Logger         – receives a debug summary per run.
type Options struct {
	MaxFloodHeight float64
	FloodThreshold float64
	Epsilon        float64
	SmoothSigma    float64
	SearchLimit    float64
	Conn           gridgraph.Connectivity
	Workers        int
	Logger         *slog.Logger
}

// Option represents a functional option for configuring a flood run.
// Values are checked when the run starts, not when the option is built.
type Option func(*Options)

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		MaxFloodHeight: DefaultMaxFloodHeight,
		FloodThreshold: DefaultFloodThreshold,
		Epsilon:        DefaultEpsilon,
		SmoothSigma:    DefaultSmoothSigma,
		SearchLimit:    math.Inf(1),
		Conn:           gridgraph.Conn8,
		Logger:         slog.Default(),
	}
}

// WithMaxFloodHeight sets the rise above the source elevation at distance 0.
func WithMaxFloodHeight(h float64) Option {
	return func(o *Options) { o.MaxFloodHeight = h }
}

// WithFloodThreshold sets the hydraulic distance beyond which nothing floods.
func WithFloodThreshold(d float64) Option {
	return func(o *Options) { o.FloodThreshold = d }
}

// WithEpsilon sets the flooded-cell clearance.
func WithEpsilon(eps float64) Option {
	return func(o *Options) { o.Epsilon = eps }
}

// WithSmoothing sets the Gaussian σ in cells; 0 disables smoothing.
func WithSmoothing(sigma float64) Option {
	return func(o *Options) { o.SmoothSigma = sigma }
}

// WithSearchLimit caps the shortest-path search radius. Cells beyond it are
// reported unreachable.
func WithSearchLimit(d float64) Option {
	return func(o *Options) { o.SearchLimit = d }
}

// WithConnectivity selects 4- or 8-neighbour graphs.
func WithConnectivity(c gridgraph.Connectivity) Option {
	return func(o *Options) { o.Conn = c }
}

// WithWorkers bounds graph-construction parallelism.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithLogger sets the logger; nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// NewOptions applies opts over DefaultOptions and validates the result.
func NewOptions(opts ...Option) (Options, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg, cfg.Validate()
}

// Validate reports the first invalid parameter as an error wrapping
// ErrConfiguration.
func (o Options) Validate() error {
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

	switch {
	case !(o.FloodThreshold > 0) || !finite(o.FloodThreshold):
		return fmt.Errorf("%w (got %v)", ErrBadThreshold, o.FloodThreshold)
	case o.MaxFloodHeight < 0 || !finite(o.MaxFloodHeight):
		return fmt.Errorf("%w (got %v)", ErrBadMaxHeight, o.MaxFloodHeight)
	case o.Epsilon < 0 || !finite(o.Epsilon):
		return fmt.Errorf("%w (got %v)", ErrBadEpsilon, o.Epsilon)
	case o.SmoothSigma < 0 || !finite(o.SmoothSigma):
		return fmt.Errorf("%w (got %v)", ErrBadSigma, o.SmoothSigma)
	case o.SearchLimit < 0 || math.IsNaN(o.SearchLimit):
		return fmt.Errorf("%w (got %v)", ErrBadSearchLimit, o.SearchLimit)
	}

	return nil
}
