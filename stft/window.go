package stft

import (
	"fmt"
	"math"
)

// WindowType identifies an analysis window.
type WindowType int

const (
	WindowHann WindowType = iota
	WindowHamming
	WindowBlackman
	WindowRectangular
)

var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

// String returns the window name.
func (t WindowType) String() string {
	switch t {
	case WindowHann:
		return "hann"
	case WindowHamming:
		return "hamming"
	case WindowBlackman:
		return "blackman"
	case WindowRectangular:
		return "rectangular"
	default:
		return fmt.Sprintf("WindowType(%d)", int(t))
	}
}

// ParseWindowType resolves a window name as returned by String.
func ParseWindowType(name string) (WindowType, error) {
	for _, t := range []WindowType{WindowHann, WindowHamming, WindowBlackman, WindowRectangular} {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown window %q", ErrInvalidConfig, name)
}

// Window returns the periodic form of t with the given length, the form
// used for FFT framing: w[n] is evaluated at n/size rather than n/(size-1).
func Window(t WindowType, size int) ([]float64, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: window size must be > 0: %d", ErrInvalidConfig, size)
	}

	var coeffs []float64
	switch t {
	case WindowHann:
		coeffs = hannCoeffs
	case WindowHamming:
		coeffs = hammingCoeffs
	case WindowBlackman:
		coeffs = blackmanCoeffs
	case WindowRectangular:
		coeffs = []float64{1}
	default:
		return nil, fmt.Errorf("%w: unknown window %s", ErrInvalidConfig, t)
	}

	out := make([]float64, size)
	for i := range out {
		out[i] = cosineFromCoeffs(float64(i)/float64(size), coeffs)
	}

	return out, nil
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}
