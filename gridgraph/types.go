package gridgraph

import "math"

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// WeightFunc returns the cost of stepping from a cell at elevation from to a
// neighbouring cell at elevation to. It must be pure and non-negative.
type WeightFunc func(from, to float64) float64

// ExpWeight is the flood step cost exp(to - from).
//
// It is asymmetric: a step down costs less than 1 and a step up more than 1,
// so shortest paths favour downhill routes without forbidding climbs over
// small rises.
func ExpWeight(from, to float64) float64 {
	return math.Exp(to - from)
}

// GridOptions contains tunable parameters for graph construction.
type GridOptions struct {
	// Conn chooses 4- or 8-directional connectivity.
	Conn Connectivity
	// Weight computes edge costs; nil selects ExpWeight.
	Weight WeightFunc
	// Workers bounds the goroutines used to precompute weights; < 1 selects GOMAXPROCS.
	Workers int
}

// DefaultGridOptions returns Conn8 with ExpWeight.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		Conn:   Conn8,
		Weight: ExpWeight,
	}
}

// GridGraph is the implicit directed graph over a height field: node
// row*Cols+col has an arc to every in-bounds neighbour. It is immutable once
// built.
type GridGraph struct {
	Rows, Cols      int
	Conn            Connectivity
	heights         []float64
	sources         []int
	neighborOffsets [][2]int  // (dRow, dCol)
	weights         []float64 // weights[u*len(neighborOffsets)+k] for offset k
}
