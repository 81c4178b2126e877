package combine

import (
	"sort"

	"github.com/cwbudde/algo-ctfr/tfr"
)

// MeanConfig selects the binwise arithmetic mean.
type MeanConfig struct{}

// MedianConfig selects the binwise median. For an even stack size the two
// middle values are averaged.
type MedianConfig struct{}

// MinConfig selects the binwise minimum.
type MinConfig struct{}

// HarmonicMeanConfig selects the binwise harmonic mean. A bin where any
// representation is zero combines to zero.
type HarmonicMeanConfig struct{}

// GeometricMeanConfig selects the binwise geometric mean. A bin where any
// representation is zero combines to zero.
type GeometricMeanConfig struct{}

func (MeanConfig) Method() Method          { return MethodMean }
func (MedianConfig) Method() Method        { return MethodMedian }
func (MinConfig) Method() Method           { return MethodMin }
func (HarmonicMeanConfig) Method() Method  { return MethodHarmonicMean }
func (GeometricMeanConfig) Method() Method { return MethodGeometricMean }

func (c MeanConfig) validate(*tfr.Stack) (Config, []Warning, error)          { return c, nil, nil }
func (c MedianConfig) validate(*tfr.Stack) (Config, []Warning, error)        { return c, nil, nil }
func (c MinConfig) validate(*tfr.Stack) (Config, []Warning, error)           { return c, nil, nil }
func (c HarmonicMeanConfig) validate(*tfr.Stack) (Config, []Warning, error)  { return c, nil, nil }
func (c GeometricMeanConfig) validate(*tfr.Stack) (Config, []Warning, error) { return c, nil, nil }

func (MeanConfig) combine(s *tfr.Stack, _ *engine) (*tfr.Representation, error) {
	return binwise(s, func(col []float64) float64 {
		sum := 0.0
		for _, v := range col {
			sum += v
		}
		return sum / float64(len(col))
	}), nil
}

func (MedianConfig) combine(s *tfr.Stack, _ *engine) (*tfr.Representation, error) {
	return binwise(s, func(col []float64) float64 {
		sort.Float64s(col)
		n := len(col)
		if n%2 == 1 {
			return col[n/2]
		}
		return (col[n/2-1] + col[n/2]) / 2
	}), nil
}

func (MinConfig) combine(s *tfr.Stack, _ *engine) (*tfr.Representation, error) {
	return binwise(s, func(col []float64) float64 {
		lo := col[0]
		for _, v := range col[1:] {
			lo = min(lo, v)
		}
		return lo
	}), nil
}

func (HarmonicMeanConfig) combine(s *tfr.Stack, _ *engine) (*tfr.Representation, error) {
	return binwise(s, func(col []float64) float64 {
		inv := 0.0
		for _, v := range col {
			if v == 0 {
				return 0
			}
			inv += 1 / v
		}
		return float64(len(col)) / inv
	}), nil
}

func (GeometricMeanConfig) combine(s *tfr.Stack, _ *engine) (*tfr.Representation, error) {
	return binwise(s, func(col []float64) float64 {
		logs := 0.0
		for _, v := range col {
			if v == 0 {
				return 0
			}
			logs += mathLog(v)
		}
		return mathExp(logs / float64(len(col)))
	}), nil
}

// binwise applies reduce to the K values of every bin. reduce may reorder
// its argument.
func binwise(s *tfr.Stack, reduce func(col []float64) float64) *tfr.Representation {
	out := tfr.NewLike(s.At(0))
	col := make([]float64, 0, s.Len())
	for idx := range out.Data {
		col = s.Column(col, idx)
		out.Data[idx] = reduce(col)
	}
	return out
}
