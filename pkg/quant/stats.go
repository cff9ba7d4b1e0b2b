// Package quant holds the numeric helpers shared by the strategies.
// Everything here is pure and allocation-free unless noted.
package quant

import "math"

// StdFloor replaces a zero standard deviation so z-scores stay finite
// when every sample in the window is identical.
const StdFloor = 1e-6

// Mean returns the arithmetic mean of xs. It returns 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev returns the population standard deviation (ddof=0) of xs.
func StdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := Mean(xs)
	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(xs)))
}

// SampleStdDev returns the sample standard deviation (ddof=1) of xs.
// Fewer than two samples yield 0.
func SampleStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mean := Mean(xs)
	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(xs)-1))
}

// FlooredStdDev is StdDev with non-positive results replaced by StdFloor.
func FlooredStdDev(xs []float64) float64 {
	std := StdDev(xs)
	if std > 0 {
		return std
	}
	return StdFloor
}

// ZScore returns how many floored standard deviations the last sample sits
// away from the window mean.
func ZScore(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return (xs[len(xs)-1] - Mean(xs)) / FlooredStdDev(xs)
}

// Tail returns the last n elements of xs (all of xs if shorter).
// The result aliases xs.
func Tail(xs []float64, n int) []float64 {
	if n >= len(xs) {
		return xs
	}
	if n <= 0 {
		return xs[:0]
	}
	return xs[len(xs)-n:]
}
