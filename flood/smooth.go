package flood

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// gaussianKernel returns a normalised 1D kernel of radius ⌈3σ⌉, cut at
// maxRadius. Taps further out than the grid extent never meet a cell.
func gaussianKernel(sigma float64, maxRadius int) []float64 {
	radius := maxRadius
	if r := math.Ceil(3 * sigma); r < float64(maxRadius) {
		radius = int(r)
	}
	k := make([]float64, 2*radius+1)
	for i := range k {
		x := float64(i - radius)
		k[i] = math.Exp(-x * x / (2 * sigma * sigma))
	}
	floats.Scale(1/floats.Sum(k), k)

	return k
}

// maskedGaussian smooths values over the cells where mask is true, as a
// normalised convolution: cells outside the mask neither contribute nor
// receive values (their output is 0).
func maskedGaussian(values []float64, mask []bool, rows, cols int, sigma float64) []float64 {
	k := gaussianKernel(sigma, max(rows, cols)-1)
	num := make([]float64, len(values))
	den := make([]float64, len(values))
	for i, m := range mask {
		if m {
			num[i] = values[i]
			den[i] = 1
		}
	}

	// Separable: filter rows, transpose, filter rows again, transpose back.
	num = transpose(convolveRows(num, rows, cols, k), rows, cols)
	den = transpose(convolveRows(den, rows, cols, k), rows, cols)
	num = transpose(convolveRows(num, cols, rows, k), cols, rows)
	den = transpose(convolveRows(den, cols, rows, k), cols, rows)

	out := make([]float64, len(values))
	for i, m := range mask {
		if m && den[i] > 0 {
			out[i] = num[i] / den[i]
		}
	}

	return out
}

// convolveRows filters each row of a rows×cols grid with k, treating cells
// past the edge as 0.
func convolveRows(src []float64, rows, cols int, k []float64) []float64 {
	radius := len(k) / 2
	dst := make([]float64, len(src))
	for r := 0; r < rows; r++ {
		row := src[r*cols : (r+1)*cols]
		for c := 0; c < cols; c++ {
			lo, hi := max(c-radius, 0), min(c+radius, cols-1)
			dst[r*cols+c] = floats.Dot(k[lo-c+radius:hi-c+radius+1], row[lo:hi+1])
		}
	}

	return dst
}

// transpose returns the cols×rows transpose of a rows×cols grid.
func transpose(src []float64, rows, cols int) []float64 {
	dst := make([]float64, len(src))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			dst[c*rows+r] = src[r*cols+c]
		}
	}

	return dst
}
