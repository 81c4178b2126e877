package local

import (
	"github.com/cwbudde/algo-vecmath"
)

// boxSum sums src over the truncated neighbourhood of every bin.
//
// The rectangle is separable, so the sum is taken in two passes: whole frame
// rows are accumulated across the frequency span, then each bin adds up the
// time span of the accumulated row. Both passes add samples directly rather
// than maintaining running differences, so quiet bins next to loud ones keep
// full precision.
//
// strides holds one Stride per frame, or is nil for a dense window. The
// frequency pass depends only on the frequency stride and is shared by all
// frames using it.
func boxSum(src []float64, bins, frames int, w Window, strides []Stride) []float64 {
	halfF, halfT := w.Freq/2, w.Time/2
	passes := make(map[int][]float64, 1)
	out := make([]float64, len(src))

	for m := range frames {
		st := strideAt(strides, m)

		acc, ok := passes[st.Freq]
		if !ok {
			acc = freqPass(src, bins, frames, halfF, st.Freq)
			passes[st.Freq] = acc
		}

		lo, hi := span(m, halfT, st.Time, frames)
		for k := range bins {
			row := acc[k*frames : (k+1)*frames]
			sum := 0.0
			for j := lo; j <= hi; j++ {
				sum += row[m+j*st.Time]
			}
			out[k*frames+m] = sum
		}
	}

	return out
}

func freqPass(src []float64, bins, frames, half, stride int) []float64 {
	out := make([]float64, len(src))
	for k := range bins {
		row := out[k*frames : (k+1)*frames]
		lo, hi := span(k, half, stride, bins)
		for j := lo; j <= hi; j++ {
			f := k + j*stride
			vecmath.AddBlockInPlace(row, src[f*frames:(f+1)*frames])
		}
	}
	return out
}

// counts returns the number of samples in every truncated neighbourhood.
func counts(bins, frames int, w Window, strides []Stride) []int {
	halfF, halfT := w.Freq/2, w.Time/2
	out := make([]int, bins*frames)

	for m := range frames {
		st := strideAt(strides, m)
		tlo, thi := span(m, halfT, st.Time, frames)
		nt := thi - tlo + 1

		for k := range bins {
			flo, fhi := span(k, halfF, st.Freq, bins)
			out[k*frames+m] = (fhi - flo + 1) * nt
		}
	}

	return out
}

func strideAt(strides []Stride, m int) Stride {
	if strides == nil {
		return Dense
	}
	return strides[m]
}
