// Package numeric centralizes the rounding and clamping helpers the
// advisor's scoring stages share, so that every boundary point rounds the
// same way (spec.md §9, "Numeric rounding" — round only at boundary
// points to avoid drift).
package numeric

import "math"

// Round4 rounds x to 4 decimal places.
func Round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}

// Clamp01 clamps x into [0, 1].
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Clamp100 clamps x into [0, 100].
func Clamp100(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 100 {
		return 100
	}
	return x
}

// ClampN clamps x into [0, n].
func ClampN(x, n float64) float64 {
	if x < 0 {
		return 0
	}
	if x > n {
		return n
	}
	return x
}

// Permutations returns a!/(a-b)! as a float64. Used by the feasibility
// score's normalisation term (spec.md §4.B). b must be in [0, a].
func Permutations(a, b int) float64 {
	if b <= 0 {
		return 1
	}
	result := 1.0
	for i := 0; i < b; i++ {
		result *= float64(a - i)
	}
	return result
}

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
