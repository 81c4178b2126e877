//go:build fastmath

package combine

import (
	"github.com/meko-christian/algo-approx"
)

// mathExp computes e^x using fast approximation.
func mathExp(x float64) float64 {
	return approx.FastExp(x)
}

// mathLog computes ln(x) using fast approximation.
func mathLog(x float64) float64 {
	return approx.FastLog(x)
}

// mathPow computes x^y for x >= 0 using the identity x^y = e^(y ln x).
// The exact cases keep weights of exactly 0 and 1 stable.
func mathPow(x, y float64) float64 {
	switch {
	case y == 0 || x == 1:
		return 1
	case x == 0:
		return 0
	}
	return approx.FastExp(y * approx.FastLog(x))
}
