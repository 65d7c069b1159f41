package util

import (
	"golang.org/x/exp/constraints"
	"math"
)

// Avg calculates the average of all values in the given array
func Avg(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < len(values); i++ {
		sum += values[i]
	}
	return sum / (float64(len(values)))
}

// Coerce clamps the given value to [min..max]
func Coerce[T constraints.Ordered](value T, min T, max T) T {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// SafeDiv divides a by b, returning fallback if b is zero
// or the result is not a finite number.
func SafeDiv(a float64, b float64, fallback float64) float64 {
	if b == 0 {
		return fallback
	}
	result := a / b
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return fallback
	}
	return result
}
