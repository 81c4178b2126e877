package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// SineWithClick mixes a sine with a short burst of unit impulses centred on
// clickPos, the classic test case for time versus frequency resolution.
func SineWithClick(freqHz, sampleRate float64, length, clickPos, clickLen int) []float64 {
	out := DeterministicSine(freqHz, sampleRate, 0.5, length)
	for i := clickPos - clickLen/2; i < clickPos+clickLen-clickLen/2; i++ {
		if i >= 0 && i < length {
			out[i] += 1
		}
	}
	return out
}

// Grid returns a bins x frames row-major grid filled with value.
func Grid(bins, frames int, value float64) []float64 {
	out := make([]float64, bins*frames)
	for i := range out {
		out[i] = value
	}
	return out
}

// RandomGrid returns a non-negative bins x frames row-major grid with
// values in [0, scale), reproducible for a given seed.
func RandomGrid(seed int64, bins, frames int, scale float64) []float64 {
	out := make([]float64, bins*frames)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.Float64() * scale
	}
	return out
}

// HorizontalLine returns a grid whose energy sits entirely in one frequency
// bin, like a stationary sinusoid seen with fine frequency resolution.
func HorizontalLine(bins, frames, bin int, value float64) []float64 {
	out := make([]float64, bins*frames)
	for t := range frames {
		out[bin*frames+t] = value
	}
	return out
}

// VerticalLine returns a grid whose energy sits entirely in one frame,
// like a transient seen with fine time resolution.
func VerticalLine(bins, frames, frame int, value float64) []float64 {
	out := make([]float64, bins*frames)
	for k := range bins {
		out[k*frames+frame] = value
	}
	return out
}

// Rows reshapes a row-major grid into [bin][frame] slices.
func Rows(data []float64, bins, frames int) [][]float64 {
	out := make([][]float64, bins)
	for k := range out {
		out[k] = append([]float64(nil), data[k*frames:(k+1)*frames]...)
	}
	return out
}
