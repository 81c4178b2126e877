package combine

import (
	"github.com/cwbudde/algo-ctfr/stats/local"
	"github.com/cwbudde/algo-ctfr/tfr"
)

// FLSConfig configures fast local sparsity combination.
//
// Each representation is weighted per bin by its local Hoyer sparsity s_i
// over Window, raised to Gamma. Weights are taken relative to the largest
// sparsity of the bin, (s_i/s_max)^Gamma, which selects the same mixture as
// s_i^Gamma without underflowing for large Gamma. A bin where every sparsity
// is zero falls back to the mean.
type FLSConfig struct {
	Window local.Window
	Gamma  float64
}

// DefaultFLSConfig returns a 21x11 window and Gamma 20.
func DefaultFLSConfig() FLSConfig {
	return FLSConfig{Window: local.Window{Freq: 21, Time: 11}, Gamma: 20}
}

// Method implements Config.
func (FLSConfig) Method() Method { return MethodFLS }

func (c FLSConfig) validate(*tfr.Stack) (Config, []Warning, error) {
	v := validator{method: MethodFLS}
	c.Window = v.window(c.Window, "freq_width", "time_width")
	c.Gamma = v.nonNegative("gamma", c.Gamma)
	return v.result(c)
}

func parseFLS(p Params) (Config, []Warning, error) {
	c := DefaultFLSConfig()
	v := validator{method: MethodFLS}
	p.window(&v, &c.Window, "freq_width", "time_width")
	p.float(&v, "gamma", &c.Gamma)
	return v.finish(c)
}

func (c FLSConfig) combine(s *tfr.Stack, e *engine) (*tfr.Representation, error) {
	sparsity, err := e.each(s, func(r *tfr.Representation) (*tfr.Representation, error) {
		return local.Sparsity(r, c.Window)
	})
	if err != nil {
		return nil, err
	}

	out := tfr.NewLike(s.At(0))
	for idx := range out.Data {
		sMax := 0.0
		for _, sp := range sparsity {
			sMax = max(sMax, sp.Data[idx])
		}
		if sMax == 0 {
			out.Data[idx] = meanAt(s, idx)
			continue
		}

		num, den := 0.0, 0.0
		for i, sp := range sparsity {
			w := mathPow(sp.Data[idx]/sMax, c.Gamma)
			num += w * s.At(i).Data[idx]
			den += w
		}
		out.Data[idx] = num / den
	}

	return out, nil
}
