package stft

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-ctfr/tfr"
)

var (
	// ErrInvalidConfig reports an unusable transform configuration.
	ErrInvalidConfig = errors.New("stft: invalid config")

	// ErrEmptySignal reports a signal without samples.
	ErrEmptySignal = errors.New("stft: empty signal")
)

// Config describes one spectrogram.
type Config struct {
	// WindowLength is the analysis window in samples, at most FFTSize.
	WindowLength int
	// HopLength is the distance between frame centres in samples.
	HopLength int
	// FFTSize is the transform length. It need not be a power of two, but
	// the algo-fft backend may reject sizes it has no kernel for.
	FFTSize int
	// Window is the analysis window type.
	Window WindowType
	// Backend is the FFT implementation.
	Backend Backend
}

// Validate reports whether c describes a computable spectrogram.
func (c Config) Validate() error {
	switch {
	case c.FFTSize < 2:
		return fmt.Errorf("%w: FFT size must be >= 2: %d", ErrInvalidConfig, c.FFTSize)
	case c.WindowLength <= 0 || c.WindowLength > c.FFTSize:
		return fmt.Errorf("%w: window length %d must be in [1, %d]", ErrInvalidConfig, c.WindowLength, c.FFTSize)
	case c.HopLength <= 0:
		return fmt.Errorf("%w: hop length must be > 0: %d", ErrInvalidConfig, c.HopLength)
	}
	return nil
}

// Bins returns the number of frequency bins, FFTSize/2 + 1.
func (c Config) Bins() int { return c.FFTSize/2 + 1 }

// Frames returns the number of frames for a signal of n samples.
func (c Config) Frames(n int) int { return 1 + n/c.HopLength }

// Spectrogram returns the power spectrogram of signal.
func Spectrogram(signal []float64, cfg Config) (*tfr.Representation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(signal) == 0 {
		return nil, ErrEmptySignal
	}

	win, err := Window(cfg.Window, cfg.WindowLength)
	if err != nil {
		return nil, err
	}
	ps, err := newPowerSpectrum(cfg.Backend, cfg.FFTSize)
	if err != nil {
		return nil, err
	}

	bins, frames := cfg.Bins(), cfg.Frames(len(signal))
	out, err := tfr.New(bins, frames)
	if err != nil {
		return nil, err
	}

	frame := make([]float64, cfg.FFTSize)
	column := make([]float64, bins)
	offset := (cfg.FFTSize - cfg.WindowLength) / 2

	for t := range frames {
		fillFrame(frame, signal, win, t*cfg.HopLength-cfg.FFTSize/2, offset)

		if err := ps.power(column, frame); err != nil {
			return nil, err
		}
		for k, v := range column {
			out.Set(k, t, v)
		}
	}

	return out, nil
}

// fillFrame writes the windowed samples starting at signal index start into
// frame. The window sits at frame[offset:]; everything outside it and outside
// the signal is zero.
func fillFrame(frame, signal, win []float64, start, offset int) {
	clear(frame)
	for j, w := range win {
		i := start + offset + j
		if i < 0 || i >= len(signal) {
			continue
		}
		frame[offset+j] = signal[i] * w
	}
}

// MultiConfig describes a set of spectrograms that differ only in window
// length and therefore share one grid.
type MultiConfig struct {
	// WindowLengths are sorted ascending before use.
	WindowLengths []int
	// HopLength defaults to half the shortest window when zero.
	HopLength int
	// FFTSize defaults to the longest window when zero.
	FFTSize int
	Window  WindowType
	Backend Backend
}

// DefaultMultiConfig returns the three-resolution setup used for audio at
// sampleRate: a middle window of 50 ms rounded to the nearest power of two,
// flanked by half and double that length. At 22050 Hz this is 512, 1024 and
// 2048 samples with a hop of 256.
func DefaultMultiConfig(sampleRate float64) MultiConfig {
	mid := roundToPowerOfTwo(int(sampleRate * 0.05))
	return MultiConfig{
		WindowLengths: []int{max(mid/2, 1), mid, mid * 2},
		Window:        WindowHann,
		Backend:       BackendAlgoFFT,
	}
}

// Resolve fills in defaults and returns one Config per window length.
func (m MultiConfig) Resolve() ([]Config, error) {
	if len(m.WindowLengths) == 0 {
		return nil, fmt.Errorf("%w: no window lengths", ErrInvalidConfig)
	}

	lengths := slices.Clone(m.WindowLengths)
	slices.Sort(lengths)

	hop := m.HopLength
	if hop == 0 {
		hop = max(lengths[0]/2, 1)
	}
	nfft := m.FFTSize
	if nfft == 0 {
		nfft = lengths[len(lengths)-1]
	}

	out := make([]Config, len(lengths))
	for i, l := range lengths {
		out[i] = Config{WindowLength: l, HopLength: hop, FFTSize: nfft, Window: m.Window, Backend: m.Backend}
		if err := out[i].Validate(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Multi computes one spectrogram per window length of m.
func Multi(signal []float64, m MultiConfig) ([]*tfr.Representation, error) {
	configs, err := m.Resolve()
	if err != nil {
		return nil, err
	}

	out := make([]*tfr.Representation, len(configs))
	for i, cfg := range configs {
		out[i], err = Spectrogram(signal, cfg)
		if err != nil {
			return nil, fmt.Errorf("window length %d: %w", cfg.WindowLength, err)
		}
	}
	return out, nil
}

// roundToPowerOfTwo returns 2^round(log2(n)) for n >= 1, and 1 otherwise.
func roundToPowerOfTwo(n int) int {
	if n < 1 {
		return 1
	}
	return 1 << int(math.Round(math.Log2(float64(n))))
}
