package combine

import (
	"math"

	"github.com/cwbudde/algo-ctfr/tfr"
)

// SWGMConfig configures the sample-weighted geometric mean.
//
// Every bin combines as exp(sum(w_i ln x_i) / sum(w_i)) with weights
// w_i = min((g/x_i)^Beta, MaxGamma), where g is the unweighted geometric
// mean of the bin. Beta = 0 is the plain geometric mean; Beta = 1 leans
// towards the minimum.
type SWGMConfig struct {
	// Beta in [0, 1] sets how strongly small values are favoured.
	Beta float64
	// MaxGamma >= 1 caps a single weight.
	MaxGamma float64
}

// DefaultSWGMConfig returns Beta 0.3 and MaxGamma 20.
func DefaultSWGMConfig() SWGMConfig {
	return SWGMConfig{Beta: 0.3, MaxGamma: 20}
}

// Method implements Config.
func (SWGMConfig) Method() Method { return MethodSWGM }

func (c SWGMConfig) validate(*tfr.Stack) (Config, []Warning, error) {
	v := validator{method: MethodSWGM}
	c.Beta = v.clamp("beta", c.Beta, 0, 1)
	c.MaxGamma = v.clamp("max_gamma", c.MaxGamma, 1, math.MaxFloat64)
	return v.result(c)
}

func parseSWGM(p Params) (Config, []Warning, error) {
	c := DefaultSWGMConfig()
	v := validator{method: MethodSWGM}
	p.float(&v, "beta", &c.Beta)
	p.float(&v, "max_gamma", &c.MaxGamma)
	return v.finish(c)
}

// combine treats a zero anywhere in a bin as a zero result: the geometric
// mean of a set containing zero is zero, and ln 0 would poison the weights.
func (c SWGMConfig) combine(s *tfr.Stack, _ *engine) (*tfr.Representation, error) {
	logs := make([]float64, s.Len())

	return binwise(s, func(col []float64) float64 {
		meanLog := 0.0
		for i, x := range col {
			if x == 0 {
				return 0
			}
			logs[i] = mathLog(x)
			meanLog += logs[i]
		}
		meanLog /= float64(len(col))

		num, den := 0.0, 0.0
		for _, l := range logs {
			w := min(mathExp(c.Beta*(meanLog-l)), c.MaxGamma)
			num += w * l
			den += w
		}

		return mathExp(num / den)
	}), nil
}
