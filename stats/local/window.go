package local

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-ctfr/tfr"
)

// ErrInvalidWindow reports a window or stride outside its valid range.
var ErrInvalidWindow = errors.New("local: invalid window")

// Window is a neighbourhood of Freq bins by Time frames. Both sizes must be
// positive and odd so the neighbourhood has a centre bin.
type Window struct {
	Freq int
	Time int
}

// Validate reports whether w has positive odd sizes.
func (w Window) Validate() error {
	if w.Freq <= 0 || w.Freq%2 == 0 {
		return fmt.Errorf("%w: frequency size %d must be a positive odd integer", ErrInvalidWindow, w.Freq)
	}
	if w.Time <= 0 || w.Time%2 == 0 {
		return fmt.Errorf("%w: time size %d must be a positive odd integer", ErrInvalidWindow, w.Time)
	}
	return nil
}

// String formats w as "FxT".
func (w Window) String() string { return fmt.Sprintf("%dx%d", w.Freq, w.Time) }

// Stride is the sampling step inside a window. Stride{1, 1} is a dense window.
type Stride struct {
	Freq int
	Time int
}

// Dense is the unit stride.
var Dense = Stride{Freq: 1, Time: 1}

func (s Stride) validate() error {
	if s.Freq < 1 || s.Time < 1 {
		return fmt.Errorf("%w: stride (%d, %d) must be >= 1", ErrInvalidWindow, s.Freq, s.Time)
	}
	return nil
}

// span returns the range of window offsets j in [-half, half] for which
// center + j*stride stays inside [0, n).
func span(center, half, stride, n int) (lo, hi int) {
	lo = -min(half, center/stride)
	hi = min(half, (n-1-center)/stride)
	return lo, hi
}

// StridesFor converts an interpolation schedule into per-frame strides: a
// step of d interpolated samples between genuine ones is a stride of d+1.
func StridesFor(schedule tfr.Schedule) []Stride {
	out := make([]Stride, len(schedule))
	for m, st := range schedule {
		out[m] = Stride{Freq: st.Freq + 1, Time: st.Time + 1}
	}
	return out
}
