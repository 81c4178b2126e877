package tfr

import "math"

// PowerToDB converts a power grid to decibels relative to ref.
//
// Values are floored at amin before the logarithm. A non-positive ref uses
// the grid maximum, which maps the loudest bin to 0 dB. When topDB is
// non-negative the output is clipped to (max - topDB).
func PowerToDB(r *Representation, ref, amin, topDB float64) *Representation {
	if amin <= 0 {
		amin = 1e-10
	}

	if ref <= 0 {
		ref = 0
		for _, v := range r.Data {
			ref = math.Max(ref, v)
		}
	}

	offset := 10 * math.Log10(math.Max(amin, ref))
	out := NewLike(r)
	peak := math.Inf(-1)

	for i, v := range r.Data {
		db := 10*math.Log10(math.Max(amin, v)) - offset
		out.Data[i] = db
		peak = math.Max(peak, db)
	}

	if topDB >= 0 {
		floor := peak - topDB
		for i, v := range out.Data {
			if v < floor {
				out.Data[i] = floor
			}
		}
	}

	return out
}
