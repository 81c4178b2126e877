//go:build !fastmath

package combine

import "math"

// mathExp computes e^x using the standard library.
func mathExp(x float64) float64 {
	return math.Exp(x)
}

// mathLog computes ln(x) using the standard library.
func mathLog(x float64) float64 {
	return math.Log(x)
}

// mathPow computes x^y for x >= 0 using the standard library.
func mathPow(x, y float64) float64 {
	return math.Pow(x, y)
}
