package flood

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the parent of every parameter validation error.
var ErrConfiguration = errors.New("flood: invalid configuration")

var (
	// ErrBadThreshold indicates FloodThreshold <= 0 or not finite; the falloff divides by it.
	ErrBadThreshold = fmt.Errorf("%w: FloodThreshold must be positive and finite", ErrConfiguration)
	// ErrBadMaxHeight indicates a negative or non-finite MaxFloodHeight.
	ErrBadMaxHeight = fmt.Errorf("%w: MaxFloodHeight must be non-negative and finite", ErrConfiguration)
	// ErrBadEpsilon indicates a negative or non-finite Epsilon.
	ErrBadEpsilon = fmt.Errorf("%w: Epsilon must be non-negative and finite", ErrConfiguration)
	// ErrBadSigma indicates a negative or non-finite SmoothSigma.
	ErrBadSigma = fmt.Errorf("%w: SmoothSigma must be non-negative and finite", ErrConfiguration)
	// ErrBadSearchLimit indicates a negative or NaN SearchLimit.
	ErrBadSearchLimit = fmt.Errorf("%w: SearchLimit must be non-negative", ErrConfiguration)
	// ErrBadClosingRadius indicates a negative Basic closing radius.
	ErrBadClosingRadius = fmt.Errorf("%w: closing radius must be non-negative", ErrConfiguration)
)

var (
	// ErrNilInput indicates a nil height field, mask or search result.
	ErrNilInput = errors.New("flood: nil input grid")
	// ErrShapeMismatch indicates inputs that do not cover the same grid.
	ErrShapeMismatch = errors.New("flood: input shapes do not match")
)
