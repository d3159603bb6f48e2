// Package weights holds the bookkeeping machinery for blend weights: turning
// raw weight proposals into normalized vectors, redistributing mass when
// expected forecasts are missing, resolving which expected members are
// actually present on a cube, and packaging final weights into a cube aligned
// to the blending coordinate.
//
// All operations are pure: they read their inputs and allocate new outputs.
package weights

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// sumTolerance is the floating tolerance used when checking that a weight
// vector sums to 1.0.
const sumTolerance = 1e-4

var (
	// ErrNegativeWeight indicates a weight below zero; negative values are
	// meaningless as mass.
	ErrNegativeWeight = errors.New("weights must be positive")
	// ErrZeroSum indicates a normalization slice with no positive mass.
	ErrZeroSum = errors.New("sum of weights must be > 0.0")
	// ErrNotNormalised indicates a vector that should already sum to 1.0 but
	// does not.
	ErrNotNormalised = errors.New("sum of weights must be 1.0")
	// ErrSizeMismatch indicates two vectors that should align but differ in
	// length.
	ErrSizeMismatch = errors.New("arrays not the same size")
	// ErrNonePresent indicates a presence mask with no non-zero entries.
	ErrNonePresent = errors.New("none of the expected forecasts were found")
)

// Normalise divides a non-negative vector by its sum so the result sums to
// 1.0. It fails if any element is negative or the sum is not strictly
// positive.
func Normalise(w []float64) ([]float64, error) {
	for _, v := range w {
		if v < 0 {
			return nil, fmt.Errorf("%w: found %v", ErrNegativeWeight, v)
		}
	}
	sum := floats.Sum(w)
	if sum <= 0 {
		return nil, fmt.Errorf("%w: sum is %v", ErrZeroSum, sum)
	}
	out := make([]float64, len(w))
	copy(out, w)
	floats.Scale(1/sum, out)
	return out, nil
}

// NormaliseAlong normalizes each 1-D slice of a 2-D array along the given
// axis: axis 0 normalizes down each column, axis 1 across each row. Every
// slice must contain only non-negative values and have a strictly positive
// sum.
func NormaliseAlong(m [][]float64, axis int) ([][]float64, error) {
	if len(m) == 0 {
		return nil, fmt.Errorf("%w: empty array", ErrZeroSum)
	}
	cols := len(m[0])
	for _, row := range m {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: ragged rows", ErrSizeMismatch)
		}
		for _, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("%w: found %v", ErrNegativeWeight, v)
			}
		}
	}

	out := make([][]float64, len(m))
	for i := range m {
		out[i] = make([]float64, cols)
		copy(out[i], m[i])
	}

	switch axis {
	case 0:
		for j := 0; j < cols; j++ {
			var sum float64
			for i := range out {
				sum += out[i][j]
			}
			if sum <= 0 {
				return nil, fmt.Errorf("%w: column %d sums to %v", ErrZeroSum, j, sum)
			}
			for i := range out {
				out[i][j] /= sum
			}
		}
	case 1:
		for i, row := range out {
			sum := floats.Sum(row)
			if sum <= 0 {
				return nil, fmt.Errorf("%w: row %d sums to %v", ErrZeroSum, i, sum)
			}
			floats.Scale(1/sum, row)
		}
	default:
		return nil, fmt.Errorf("axis must be 0 or 1, got %d", axis)
	}
	return out, nil
}

// normalised reports whether a vector sums to 1.0 within tolerance.
func normalised(w []float64) bool {
	return math.Abs(floats.Sum(w)-1.0) <= sumTolerance
}
