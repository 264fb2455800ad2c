package tov

import (
	"github.com/gonum/floats"
)

// logspace returns n values spaced log-uniformly over [lo, hi], both
// strictly positive, endpoints included.
func logspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := floats.LogSpan(make([]float64, n), lo, hi)
	// Pin the endpoints so the sweep covers the exact tabulated extremes.
	out[0] = lo
	out[n-1] = hi
	return out
}
