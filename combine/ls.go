package combine

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ctfr/stats/local"
	"github.com/cwbudde/algo-ctfr/tfr"
)

// The local sparsity family measures two things per representation and bin:
// the mean local energy E_i over an energy window, and the local Hoyer
// sparsity S_i over a usually larger sparsity window. The sparsest
// representation is trusted most; its value is scaled by E_min/E_i so that
// smeared representations cannot add energy the sharpest one lacks.

// DefaultEnergyCriteriumDB is the silence floor of SLS-H and SLS-I, relative
// to the loudest bin of the stack.
const DefaultEnergyCriteriumDB = -60

// LSConfig configures local sparsity combination with hard selection: each
// bin takes the value of the representation with the highest local sparsity
// (the first one on ties), scaled by E_min/E_i. A bin where every sparsity is
// zero falls back to the mean.
type LSConfig struct {
	Energy   local.Window
	Sparsity local.Window
}

// SLSHConfig configures smoothed local sparsity: the hard selection of
// LSConfig is replaced by weights (S_i/S_max)^Beta. Bins whose mean local
// energy lies more than -EnergyCriteriumDB decibels below the loudest bin are
// silence and take the mean.
type SLSHConfig struct {
	Energy            local.Window
	Sparsity          local.Window
	Beta              float64
	EnergyCriteriumDB float64
}

// SLSIConfig is SLSHConfig with windows that stretch per frame. Steps holds
// one row per frame: Steps[m] = {dk, dm} samples the windows of frame m every
// dk+1 bins and dm+1 frames, so the window keeps its sample count while
// spanning the grid of the coarsest resolution that contributed to the frame.
type SLSIConfig struct {
	Energy   local.Window
	Sparsity local.Window
	Beta     float64
	Steps    tfr.Schedule
}

func defaultLSWindows() (energy, sparsity local.Window) {
	return local.Window{Freq: 11, Time: 11}, local.Window{Freq: 21, Time: 11}
}

// DefaultLSConfig returns an 11x11 energy window and a 21x11 sparsity window.
func DefaultLSConfig() LSConfig {
	e, s := defaultLSWindows()
	return LSConfig{Energy: e, Sparsity: s}
}

// DefaultSLSHConfig returns the LS windows, Beta 80 and a -60 dB floor.
func DefaultSLSHConfig() SLSHConfig {
	e, s := defaultLSWindows()
	return SLSHConfig{Energy: e, Sparsity: s, Beta: 80, EnergyCriteriumDB: DefaultEnergyCriteriumDB}
}

// DefaultSLSIConfig returns the SLS-H defaults without a schedule. Steps
// must be set before use.
func DefaultSLSIConfig() SLSIConfig {
	e, s := defaultLSWindows()
	return SLSIConfig{Energy: e, Sparsity: s, Beta: 80}
}

// Method implements Config.
func (LSConfig) Method() Method { return MethodLS }

// Method implements Config.
func (SLSHConfig) Method() Method { return MethodSLSH }

// Method implements Config.
func (SLSIConfig) Method() Method { return MethodSLSI }

func (c LSConfig) validate(*tfr.Stack) (Config, []Warning, error) {
	v := validator{method: MethodLS}
	c.Energy = v.window(c.Energy, "lek", "lem")
	c.Sparsity = v.window(c.Sparsity, "lsk", "lsm")
	return v.result(c)
}

func (c SLSHConfig) validate(*tfr.Stack) (Config, []Warning, error) {
	v := validator{method: MethodSLSH}
	c.Energy = v.window(c.Energy, "lek", "lem")
	c.Sparsity = v.window(c.Sparsity, "lsk", "lsm")
	c.Beta = v.nonNegative("beta", c.Beta)
	c.EnergyCriteriumDB = v.clamp("energy_criterium_db", c.EnergyCriteriumDB, -math.MaxFloat64, 0)
	return v.result(c)
}

// validate checks the schedule against s. Without a stack only its presence
// and signs can be checked.
func (c SLSIConfig) validate(s *tfr.Stack) (Config, []Warning, error) {
	v := validator{method: MethodSLSI}
	c.Energy = v.window(c.Energy, "lek", "lem")
	c.Sparsity = v.window(c.Sparsity, "lsk", "lsm")
	c.Beta = v.nonNegative("beta", c.Beta)

	frames := len(c.Steps)
	if s != nil {
		frames = s.Frames()
	}
	c.Steps = v.schedule("interp_steps", c.Steps, frames)

	return v.result(c)
}

func parseLSWindows(p Params, v *validator, energy, sparsity *local.Window) {
	p.window(v, energy, "lek", "lem")
	p.window(v, sparsity, "lsk", "lsm")
}

func parseLS(p Params) (Config, []Warning, error) {
	c := DefaultLSConfig()
	v := validator{method: MethodLS}
	parseLSWindows(p, &v, &c.Energy, &c.Sparsity)
	return v.finish(c)
}

func parseSLSH(p Params) (Config, []Warning, error) {
	c := DefaultSLSHConfig()
	v := validator{method: MethodSLSH}
	parseLSWindows(p, &v, &c.Energy, &c.Sparsity)
	p.float(&v, "beta", &c.Beta)
	p.float(&v, "energy_criterium_db", &c.EnergyCriteriumDB)
	return v.finish(c)
}

func parseSLSI(p Params) (Config, []Warning, error) {
	c := DefaultSLSIConfig()
	v := validator{method: MethodSLSI}
	parseLSWindows(p, &v, &c.Energy, &c.Sparsity)
	p.float(&v, "beta", &c.Beta)

	if raw, ok := p["interp_steps"]; ok && raw != nil {
		steps, err := parseSchedule(raw)
		if err != nil {
			v.fail(fmt.Errorf("%w: %s parameter %q: %w", ErrInvalidValue, MethodSLSI, "interp_steps", err))
		}
		c.Steps = steps
	}

	return v.finish(c)
}

func (c LSConfig) combine(s *tfr.Stack, e *engine) (*tfr.Representation, error) {
	st, err := e.localStats(s, c.Energy, c.Sparsity, nil)
	if err != nil {
		return nil, err
	}

	out := tfr.NewLike(s.At(0))
	for idx := range out.Data {
		out.Data[idx] = st.hard(s, idx)
	}
	return out, nil
}

func (c SLSHConfig) combine(s *tfr.Stack, e *engine) (*tfr.Representation, error) {
	st, err := e.localStats(s, c.Energy, c.Sparsity, nil)
	if err != nil {
		return nil, err
	}
	return st.smooth(s, c.Beta, c.EnergyCriteriumDB), nil
}

func (c SLSIConfig) combine(s *tfr.Stack, e *engine) (*tfr.Representation, error) {
	st, err := e.localStats(s, c.Energy, c.Sparsity, local.StridesFor(c.Steps))
	if err != nil {
		return nil, err
	}
	return st.smooth(s, c.Beta, DefaultEnergyCriteriumDB), nil
}

// localStats holds E_i and S_i for every member of a stack.
type localStats struct {
	energy   []*tfr.Representation
	sparsity []*tfr.Representation
}

func (e *engine) localStats(s *tfr.Stack, energy, sparsity local.Window, strides []local.Stride) (localStats, error) {
	en, err := e.each(s, func(r *tfr.Representation) (*tfr.Representation, error) {
		return local.MeanStrided(r, energy, strides)
	})
	if err != nil {
		return localStats{}, err
	}

	sp, err := e.each(s, func(r *tfr.Representation) (*tfr.Representation, error) {
		return local.SparsityStrided(r, sparsity, strides)
	})
	if err != nil {
		return localStats{}, err
	}

	return localStats{energy: en, sparsity: sp}, nil
}

// compensation returns E_min/E_i for member i at idx. A member with no local
// energy has nothing to compensate.
func (st localStats) compensation(i, idx int) float64 {
	ei := st.energy[i].Data[idx]
	if ei == 0 {
		return 1
	}

	eMin := ei
	for _, en := range st.energy {
		eMin = min(eMin, en.Data[idx])
	}
	return eMin / ei
}

func (st localStats) hard(s *tfr.Stack, idx int) float64 {
	best, sBest := 0, st.sparsity[0].Data[idx]
	for i := 1; i < len(st.sparsity); i++ {
		if v := st.sparsity[i].Data[idx]; v > sBest {
			best, sBest = i, v
		}
	}
	if sBest == 0 {
		return meanAt(s, idx)
	}
	return s.At(best).Data[idx] * st.compensation(best, idx)
}

func (st localStats) smooth(s *tfr.Stack, beta, floorDB float64) *tfr.Representation {
	silent := st.silence(s.Len(), floorDB)

	out := tfr.NewLike(s.At(0))
	for idx := range out.Data {
		if silent[idx] {
			out.Data[idx] = meanAt(s, idx)
			continue
		}

		sMax := 0.0
		for _, sp := range st.sparsity {
			sMax = max(sMax, sp.Data[idx])
		}

		num, den := 0.0, 0.0
		for i, sp := range st.sparsity {
			w := 1.0
			if sMax > 0 {
				w = mathPow(sp.Data[idx]/sMax, beta)
			}
			num += w * s.At(i).Data[idx] * st.compensation(i, idx)
			den += w
		}
		out.Data[idx] = num / den
	}

	return out
}

// silence marks bins whose mean local energy across the stack lies below
// floorDB relative to the loudest bin.
func (st localStats) silence(k int, floorDB float64) []bool {
	size := len(st.energy[0].Data)
	level := make([]float64, size)
	peak := 0.0
	for idx := range level {
		for _, en := range st.energy {
			level[idx] += en.Data[idx]
		}
		level[idx] /= float64(k)
		peak = max(peak, level[idx])
	}

	threshold := peak * math.Pow(10, floorDB/10)
	out := make([]bool, size)
	for idx, l := range level {
		out[idx] = l < threshold
	}
	return out
}
