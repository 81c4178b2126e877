package local

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ctfr/tfr"
	"github.com/cwbudde/algo-vecmath"
)

// Sum returns the sum of x over the neighbourhood of every bin.
func Sum(x *tfr.Representation, w Window) (*tfr.Representation, error) {
	return SumStrided(x, w, nil)
}

// SumStrided is Sum with one sampling stride per frame. A nil strides slice
// is a dense window.
func SumStrided(x *tfr.Representation, w Window, strides []Stride) (*tfr.Representation, error) {
	if err := check(x, w, strides); err != nil {
		return nil, err
	}

	out := tfr.NewLike(x)
	out.Data = boxSum(x.Data, x.Bins, x.Frames, w, strides)

	return out, nil
}

// Count returns the neighbourhood size of every bin of a bins x frames grid.
// Interior bins hold w.Freq*w.Time samples; edge bins hold fewer.
func Count(bins, frames int, w Window) (*tfr.Representation, error) {
	out, err := tfr.New(bins, frames)
	if err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	for i, n := range counts(bins, frames, w, nil) {
		out.Data[i] = float64(n)
	}

	return out, nil
}

// Mean returns the average of x over the neighbourhood of every bin,
// dividing by the truncated sample count.
func Mean(x *tfr.Representation, w Window) (*tfr.Representation, error) {
	return MeanStrided(x, w, nil)
}

// MeanStrided is Mean with one sampling stride per frame.
func MeanStrided(x *tfr.Representation, w Window, strides []Stride) (*tfr.Representation, error) {
	out, err := SumStrided(x, w, strides)
	if err != nil {
		return nil, err
	}

	for i, n := range counts(x.Bins, x.Frames, w, strides) {
		out.Data[i] /= float64(n)
	}

	return out, nil
}

// Sparsity returns the normalized Hoyer sparsity of every neighbourhood:
//
//	(sqrt(n) - ||v||_1 / ||v||_2) / (sqrt(n) - 1)
//
// where v are the n samples of the truncated neighbourhood. The result lies
// in [0, 1]; it is 1 when a single sample holds all the energy and 0 when the
// energy is flat. Single-sample and all-zero neighbourhoods have sparsity 0.
func Sparsity(x *tfr.Representation, w Window) (*tfr.Representation, error) {
	return SparsityStrided(x, w, nil)
}

// SparsityStrided is Sparsity with one sampling stride per frame.
func SparsityStrided(x *tfr.Representation, w Window, strides []Stride) (*tfr.Representation, error) {
	if err := check(x, w, strides); err != nil {
		return nil, err
	}

	squares := make([]float64, len(x.Data))
	vecmath.MulBlock(squares, x.Data, x.Data)

	l1 := boxSum(x.Data, x.Bins, x.Frames, w, strides)
	l2 := boxSum(squares, x.Bins, x.Frames, w, strides)

	out := tfr.NewLike(x)
	for i, n := range counts(x.Bins, x.Frames, w, strides) {
		out.Data[i] = hoyer(n, l1[i], l2[i])
	}

	return out, nil
}

// Smearing returns the Lukin-Todd energy smearing of every neighbourhood:
//
//	sum(sqrt(v)) / sqrt(sum(v))
//
// the l1/l2 ratio of the neighbourhood magnitudes. It is 1 when one sample
// holds all the energy and grows to sqrt(n) as energy spreads evenly. An
// all-zero neighbourhood has no defined smearing and yields 0.
func Smearing(x *tfr.Representation, w Window) (*tfr.Representation, error) {
	if err := check(x, w, nil); err != nil {
		return nil, err
	}

	mags := make([]float64, len(x.Data))
	for i, v := range x.Data {
		mags[i] = math.Sqrt(v)
	}

	num := boxSum(mags, x.Bins, x.Frames, w, nil)
	den := boxSum(x.Data, x.Bins, x.Frames, w, nil)

	out := tfr.NewLike(x)
	for i := range out.Data {
		if den[i] > 0 {
			out.Data[i] = num[i] / math.Sqrt(den[i])
		}
	}

	return out, nil
}

func hoyer(n int, l1, l2sq float64) float64 {
	if n <= 1 || l2sq <= 0 {
		return 0
	}

	rootN := math.Sqrt(float64(n))
	s := (rootN - l1/math.Sqrt(l2sq)) / (rootN - 1)

	return min(max(s, 0), 1)
}

func check(x *tfr.Representation, w Window, strides []Stride) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if x == nil || x.Bins <= 0 || x.Frames <= 0 || len(x.Data) != x.Bins*x.Frames {
		return fmt.Errorf("%w: malformed representation", tfr.ErrInvalidSpec)
	}
	if strides == nil {
		return nil
	}
	if len(strides) != x.Frames {
		return fmt.Errorf("%w: %d strides for %d frames", ErrInvalidWindow, len(strides), x.Frames)
	}
	for m, st := range strides {
		if err := st.validate(); err != nil {
			return fmt.Errorf("frame %d: %w", m, err)
		}
	}
	return nil
}
