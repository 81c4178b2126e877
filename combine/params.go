package combine

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-ctfr/stats/local"
	"github.com/cwbudde/algo-ctfr/tfr"
)

// Params holds keyword-style method parameters, as read from a CLI flag,
// a JSON document or a caller map. Values may be any Go numeric type,
// json.Number, or a string holding a number. The SLS-I "interp_steps"
// parameter additionally accepts schedule shapes (see parseSchedule).
type Params map[string]any

// maxWidth bounds window widths so that rounding cannot overflow int.
const maxWidth = 1<<24 - 1

// checkKnown rejects parameters that are not in the method's table.
func (p Params) checkKnown(m Method, docs []ParamDoc) error {
	var unknown []string
	for name := range p {
		found := false
		for _, d := range docs {
			if d.Name == name {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}

	sort.Strings(unknown)
	return fmt.Errorf("%w: %s does not accept %s", ErrUnknownParameter, m, strings.Join(unknown, ", "))
}

// number reads a numeric parameter. It reports false when the parameter is
// absent or when its value is not a number, recording the latter on v.
func (p Params) number(v *validator, name string) (float64, bool) {
	raw, ok := p[name]
	if !ok {
		return 0, false
	}

	f, ok := toFloat(raw)
	if !ok {
		v.fail(invalidValue(v.method, name, raw))
		return 0, false
	}

	return f, true
}

// float reads a numeric parameter into dst, leaving dst unchanged when the
// parameter is absent.
func (p Params) float(v *validator, name string, dst *float64) {
	if x, ok := p.number(v, name); ok {
		*dst = x
	}
}

// window reads a pair of width parameters into w. Widths are coerced while
// reading because fractional values cannot be stored in a local.Window.
func (p Params) window(v *validator, w *local.Window, freq, time string) {
	if x, ok := p.number(v, freq); ok {
		w.Freq = v.oddWidth(freq, x)
	}
	if x, ok := p.number(v, time); ok {
		w.Time = v.oddWidth(time, x)
	}
}

func toFloat(raw any) (float64, bool) {
	switch x := raw.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// parseSchedule converts an interp_steps value into a schedule. Accepted
// shapes are tfr.Schedule, []tfr.Step, [][2]int, [][]int, [][]float64 and
// JSON-decoded []any rows. Every row must hold exactly two non-negative
// integers.
func parseSchedule(raw any) (tfr.Schedule, error) {
	switch x := raw.(type) {
	case tfr.Schedule:
		return append(tfr.Schedule(nil), x...), nil
	case []tfr.Step:
		return append(tfr.Schedule(nil), x...), nil
	case [][2]int:
		out := make(tfr.Schedule, len(x))
		for m, row := range x {
			out[m] = tfr.Step{Freq: row[0], Time: row[1]}
		}
		return out, nil
	case [][]int:
		rows := make([][]any, len(x))
		for m, row := range x {
			for _, v := range row {
				rows[m] = append(rows[m], v)
			}
		}
		return scheduleFromRows(rows)
	case [][]float64:
		rows := make([][]any, len(x))
		for m, row := range x {
			for _, v := range row {
				rows[m] = append(rows[m], v)
			}
		}
		return scheduleFromRows(rows)
	case []any:
		rows := make([][]any, len(x))
		for m, row := range x {
			r, ok := row.([]any)
			if !ok {
				return nil, fmt.Errorf("row %d is %T, want a pair of integers", m, row)
			}
			rows[m] = r
		}
		return scheduleFromRows(rows)
	default:
		return nil, fmt.Errorf("unsupported schedule type %T", raw)
	}
}

func scheduleFromRows(rows [][]any) (tfr.Schedule, error) {
	out := make(tfr.Schedule, len(rows))
	for m, row := range rows {
		if len(row) != 2 {
			return nil, fmt.Errorf("row %d has %d columns, want 2", m, len(row))
		}

		var pair [2]int
		for c, v := range row {
			f, ok := toFloat(v)
			if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > maxWidth {
				return nil, fmt.Errorf("row %d column %d = %v is not an integer", m, c, v)
			}
			pair[c] = int(f)
		}
		out[m] = tfr.Step{Freq: pair[0], Time: pair[1]}
	}
	return out, nil
}

// validator coerces parameter values and collects the resulting warnings.
// The first hard failure is kept and later ones are dropped.
type validator struct {
	method   Method
	warnings []Warning
	err      error
}

func (v *validator) fail(err error) {
	if v.err == nil {
		v.err = err
	}
}

func (v *validator) changed(param string, from, to float64) {
	v.warnings = append(v.warnings, Warning{
		Kind:   ParameterChanged,
		Method: v.method,
		Param:  param,
		From:   from,
		To:     to,
	})
}

func (v *validator) finite(param string, raw float64) bool {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		v.fail(invalidValue(v.method, param, raw))
		return false
	}
	return true
}

// oddWidth rounds raw to an integer, raises it to at least 1 and to the next
// odd value: 20 -> 21, 12.4 -> 13, -5 -> 1.
func (v *validator) oddWidth(param string, raw float64) int {
	if !v.finite(param, raw) {
		return 1
	}

	n := int(math.Round(min(max(raw, 1), maxWidth)))
	if n%2 == 0 {
		n++
	}
	if float64(n) != raw {
		v.changed(param, raw, float64(n))
	}

	return n
}

// clamp limits raw to [lo, hi].
func (v *validator) clamp(param string, raw, lo, hi float64) float64 {
	if !v.finite(param, raw) {
		return lo
	}

	c := min(max(raw, lo), hi)
	if c != raw {
		v.changed(param, raw, c)
	}

	return c
}

func (v *validator) nonNegative(param string, raw float64) float64 {
	return v.clamp(param, raw, 0, math.Inf(1))
}

// window coerces both sizes of w to positive odd integers.
func (v *validator) window(w local.Window, freq, time string) local.Window {
	return local.Window{
		Freq: v.oddWidth(freq, float64(w.Freq)),
		Time: v.oddWidth(time, float64(w.Time)),
	}
}

func (v *validator) schedule(param string, steps tfr.Schedule, frames int) tfr.Schedule {
	if steps == nil {
		v.fail(fmt.Errorf("%w: %s requires %q", ErrArgumentRequired, v.method, param))
		return nil
	}
	if err := steps.Validate(frames); err != nil {
		v.fail(fmt.Errorf("%w: %s parameter %q: %w", ErrInvalidValue, v.method, param, err))
		return nil
	}
	return steps
}

func (v *validator) result(cfg Config) (Config, []Warning, error) {
	if v.err != nil {
		return nil, v.warnings, v.err
	}
	return cfg, v.warnings, nil
}

// finish validates a config built from Params without a stack, merging the
// warnings raised while reading with those raised by cfg.validate.
func (v *validator) finish(cfg Config) (Config, []Warning, error) {
	if v.err != nil {
		return nil, v.warnings, v.err
	}
	out, warnings, err := cfg.validate(nil)
	return out, append(v.warnings, warnings...), err
}
