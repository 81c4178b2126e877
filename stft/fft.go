package stft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Backend selects the FFT implementation.
type Backend int

const (
	// BackendAlgoFFT uses the complex algo-fft plan.
	BackendAlgoFFT Backend = iota
	// BackendGonum uses gonum's real FFT.
	BackendGonum
)

// String returns the backend name.
func (b Backend) String() string {
	switch b {
	case BackendAlgoFFT:
		return "algofft"
	case BackendGonum:
		return "gonum"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// ParseBackend resolves a backend name as returned by String.
func ParseBackend(name string) (Backend, error) {
	for _, b := range []Backend{BackendAlgoFFT, BackendGonum} {
		if b.String() == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, name)
}

// powerSpectrum computes the one-sided power spectrum of a real frame.
type powerSpectrum interface {
	// power writes |X[k]|^2 for k = 0..n/2 into dst.
	power(dst, frame []float64) error
}

func newPowerSpectrum(b Backend, n int) (powerSpectrum, error) {
	switch b {
	case BackendAlgoFFT:
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("stft: failed to create FFT plan: %w", err)
		}
		return &algoFFT{
			plan: plan,
			in:   make([]complex128, n),
			out:  make([]complex128, n),
			re:   make([]float64, n/2+1),
			im:   make([]float64, n/2+1),
		}, nil
	case BackendGonum:
		return &gonumFFT{
			fft: fourier.NewFFT(n),
			out: make([]complex128, n/2+1),
			re:  make([]float64, n/2+1),
			im:  make([]float64, n/2+1),
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %s", ErrInvalidConfig, b)
	}
}

type algoFFT struct {
	plan    *algofft.Plan[complex128]
	in, out []complex128
	re, im  []float64
}

func (f *algoFFT) power(dst, frame []float64) error {
	for i, v := range frame {
		f.in[i] = complex(v, 0)
	}

	if err := f.plan.Forward(f.out, f.in); err != nil {
		return fmt.Errorf("stft: FFT failed: %w", err)
	}

	for k := range f.re {
		f.re[k] = real(f.out[k])
		f.im[k] = imag(f.out[k])
	}
	vecmath.Power(dst, f.re, f.im)

	return nil
}

type gonumFFT struct {
	fft    *fourier.FFT
	out    []complex128
	re, im []float64
}

func (f *gonumFFT) power(dst, frame []float64) error {
	coeffs := f.fft.Coefficients(f.out, frame)

	for k, c := range coeffs {
		f.re[k] = real(c)
		f.im[k] = imag(c)
	}
	vecmath.Power(dst, f.re, f.im)

	return nil
}
