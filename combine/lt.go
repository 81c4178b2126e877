package combine

import (
	"math"

	"github.com/cwbudde/algo-ctfr/stats/local"
	"github.com/cwbudde/algo-ctfr/tfr"
)

// LTConfig configures Lukin-Todd combination.
//
// Each representation is weighted per bin by the inverse of its local
// energy smearing σ_i (see local.Smearing) raised to Eta, taken relative to
// the least smeared representation: (σ_min/σ_i)^Eta. Representations with no
// energy in the window carry no weight; a bin with no weight at all falls
// back to the mean.
type LTConfig struct {
	Window local.Window
	Eta    float64
}

// DefaultLTConfig returns a 21x11 window and Eta 8.
func DefaultLTConfig() LTConfig {
	return LTConfig{Window: local.Window{Freq: 21, Time: 11}, Eta: 8}
}

// Method implements Config.
func (LTConfig) Method() Method { return MethodLT }

func (c LTConfig) validate(*tfr.Stack) (Config, []Warning, error) {
	v := validator{method: MethodLT}
	c.Window = v.window(c.Window, "freq_width", "time_width")
	c.Eta = v.nonNegative("eta", c.Eta)
	return v.result(c)
}

func parseLT(p Params) (Config, []Warning, error) {
	c := DefaultLTConfig()
	v := validator{method: MethodLT}
	p.window(&v, &c.Window, "freq_width", "time_width")
	p.float(&v, "eta", &c.Eta)
	return v.finish(c)
}

func (c LTConfig) combine(s *tfr.Stack, e *engine) (*tfr.Representation, error) {
	smearing, err := e.each(s, func(r *tfr.Representation) (*tfr.Representation, error) {
		return local.Smearing(r, c.Window)
	})
	if err != nil {
		return nil, err
	}

	out := tfr.NewLike(s.At(0))
	for idx := range out.Data {
		sMin := math.Inf(1)
		for _, sm := range smearing {
			if v := sm.Data[idx]; v > 0 {
				sMin = min(sMin, v)
			}
		}
		if math.IsInf(sMin, 1) {
			out.Data[idx] = meanAt(s, idx)
			continue
		}

		num, den := 0.0, 0.0
		for i, sm := range smearing {
			v := sm.Data[idx]
			if v == 0 {
				continue
			}
			w := mathPow(sMin/v, c.Eta)
			num += w * s.At(i).Data[idx]
			den += w
		}
		out.Data[idx] = num / den
	}

	return out, nil
}
