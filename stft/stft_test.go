package stft

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ctfr/internal/testutil"
)

func TestWindowPeriodicHann(t *testing.T) {
	w, err := Window(WindowHann, 4)
	if err != nil {
		t.Fatalf("Window error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, w, []float64{0, 0.5, 1, 0.5}, 1e-15)
}

func TestWindowTypes(t *testing.T) {
	for _, wt := range []WindowType{WindowHann, WindowHamming, WindowBlackman, WindowRectangular} {
		w, err := Window(wt, 16)
		if err != nil {
			t.Fatalf("%s: %v", wt, err)
		}
		if got := w[8]; math.Abs(got-1) > 1e-12 {
			t.Fatalf("%s: centre = %v, want 1", wt, got)
		}
		parsed, err := ParseWindowType(wt.String())
		if err != nil || parsed != wt {
			t.Fatalf("ParseWindowType(%q) = %v, %v", wt.String(), parsed, err)
		}
	}

	if _, err := Window(WindowHann, 0); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Window(0) error = %v, want ErrInvalidConfig", err)
	}
	if _, err := ParseWindowType("kaiser"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("ParseWindowType error = %v, want ErrInvalidConfig", err)
	}
}

func TestSpectrogramShape(t *testing.T) {
	signal := testutil.DeterministicNoise(1, 1, 1000)
	cfg := Config{WindowLength: 128, HopLength: 64, FFTSize: 256}

	s, err := Spectrogram(signal, cfg)
	if err != nil {
		t.Fatalf("Spectrogram error: %v", err)
	}
	if s.Bins != 129 || s.Frames != 1+1000/64 {
		t.Fatalf("shape = (%d, %d), want (129, %d)", s.Bins, s.Frames, 1+1000/64)
	}
	testutil.RequireNonNegative(t, s.Data)
	testutil.RequireFinite(t, s.Data)
}

// With a rectangular window and hop equal to the FFT size every sample is
// seen exactly once, so the spectrogram carries the signal energy times N.
func TestSpectrogramParseval(t *testing.T) {
	const n = 64
	signal := testutil.DeterministicNoise(7, 1, n)

	for _, b := range []Backend{BackendAlgoFFT, BackendGonum} {
		s, err := Spectrogram(signal, Config{WindowLength: n, HopLength: n, FFTSize: n, Window: WindowRectangular, Backend: b})
		if err != nil {
			t.Fatalf("%s: %v", b, err)
		}

		got := 0.0
		for tt := range s.Frames {
			for k := range s.Bins {
				p := s.At(k, tt)
				if k != 0 && k != n/2 {
					p *= 2
				}
				got += p
			}
		}
		got /= n

		want := 0.0
		for _, x := range signal {
			want += x * x
		}

		if math.Abs(got-want) > 1e-9*want {
			t.Fatalf("%s: spectral energy %v, signal energy %v", b, got, want)
		}
	}
}

func TestBackendsAgree(t *testing.T) {
	signal := testutil.DeterministicSine(440, 8000, 0.8, 2000)
	cfg := Config{WindowLength: 200, HopLength: 50, FFTSize: 256, Window: WindowHann}

	a, err := Spectrogram(signal, cfg)
	if err != nil {
		t.Fatalf("algofft: %v", err)
	}
	cfg.Backend = BackendGonum
	b, err := Spectrogram(signal, cfg)
	if err != nil {
		t.Fatalf("gonum: %v", err)
	}

	testutil.RequireSliceRelativelyEqual(t, b.Data, a.Data, 1e-9)
}

func TestSinePeaksAtItsBin(t *testing.T) {
	const sr, n = 8000.0, 256
	freq := 32 * sr / n
	signal := testutil.DeterministicSine(freq, sr, 1, 4000)

	s, err := Spectrogram(signal, Config{WindowLength: n, HopLength: 128, FFTSize: n, Window: WindowHann})
	if err != nil {
		t.Fatalf("Spectrogram error: %v", err)
	}

	mid := s.Frames / 2
	peak := 0
	for k := range s.Bins {
		if s.At(k, mid) > s.At(peak, mid) {
			peak = k
		}
	}
	if peak != 32 {
		t.Fatalf("peak bin = %d, want 32", peak)
	}
}

func TestConfigValidation(t *testing.T) {
	bad := []Config{
		{WindowLength: 64, HopLength: 16, FFTSize: 1},
		{WindowLength: 0, HopLength: 16, FFTSize: 64},
		{WindowLength: 128, HopLength: 16, FFTSize: 64},
		{WindowLength: 64, HopLength: 0, FFTSize: 64},
		{WindowLength: 64, HopLength: 16, FFTSize: 64, Backend: Backend(9)},
	}
	for _, cfg := range bad {
		if _, err := Spectrogram([]float64{1, 2, 3}, cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("Spectrogram(%+v) error = %v, want ErrInvalidConfig", cfg, err)
		}
	}

	if _, err := Spectrogram(nil, Config{WindowLength: 4, HopLength: 2, FFTSize: 4}); !errors.Is(err, ErrEmptySignal) {
		t.Fatalf("empty signal error = %v, want ErrEmptySignal", err)
	}
}

func TestDefaultMultiConfig(t *testing.T) {
	tests := []struct {
		sr          float64
		lengths     []int
		hop, fftLen int
	}{
		{22050, []int{512, 1024, 2048}, 256, 2048},
		{44100, []int{1024, 2048, 4096}, 512, 4096},
		{8000, []int{256, 512, 1024}, 128, 1024},
	}

	for _, tt := range tests {
		configs, err := DefaultMultiConfig(tt.sr).Resolve()
		if err != nil {
			t.Fatalf("sr %v: %v", tt.sr, err)
		}
		for i, cfg := range configs {
			if cfg.WindowLength != tt.lengths[i] || cfg.HopLength != tt.hop || cfg.FFTSize != tt.fftLen {
				t.Fatalf("sr %v config %d = %+v, want window %d hop %d fft %d",
					tt.sr, i, cfg, tt.lengths[i], tt.hop, tt.fftLen)
			}
		}
	}
}

func TestMultiSortsAndAligns(t *testing.T) {
	signal := testutil.SineWithClick(300, 8000, 3000, 1500, 4)

	specs, err := Multi(signal, MultiConfig{WindowLengths: []int{256, 64, 128}})
	if err != nil {
		t.Fatalf("Multi error: %v", err)
	}
	if len(specs) != 3 {
		t.Fatalf("got %d spectrograms, want 3", len(specs))
	}
	for i, s := range specs {
		if !s.SameShape(specs[0]) {
			t.Fatalf("spectrogram %d shape (%d, %d) differs", i, s.Bins, s.Frames)
		}
	}
	if specs[0].Bins != 129 || specs[0].Frames != 1+3000/32 {
		t.Fatalf("shape = (%d, %d), want (129, %d)", specs[0].Bins, specs[0].Frames, 1+3000/32)
	}

	if _, err := Multi(signal, MultiConfig{}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("empty MultiConfig error = %v, want ErrInvalidConfig", err)
	}
}

func TestRoundToPowerOfTwo(t *testing.T) {
	for in, want := range map[int]int{0: 1, 1: 1, 3: 4, 5: 4, 6: 8, 1102: 1024, 2205: 2048, 400: 512} {
		if got := roundToPowerOfTwo(in); got != want {
			t.Fatalf("roundToPowerOfTwo(%d) = %d, want %d", in, got, want)
		}
	}
}
