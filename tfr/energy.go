package tfr

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Energies returns the total sum of each member.
func (s *Stack) Energies() []float64 {
	out := make([]float64, len(s.reps))
	for i, r := range s.reps {
		out[i] = r.Sum()
	}
	return out
}

// MeanEnergy returns the reference energy: the mean of the member sums.
func (s *Stack) MeanEnergy() float64 {
	total := 0.0
	for _, e := range s.Energies() {
		total += e
	}
	return total / float64(len(s.reps))
}

// Normalize rescales every member in place so its sum equals ref.
// Members already summing to ref are left untouched. A member with zero
// energy cannot be rescaled and yields ErrZeroEnergy before any member is
// modified.
func (s *Stack) Normalize(ref float64) error {
	energies := s.Energies()
	for i, e := range energies {
		if e == 0 && ref != 0 {
			return fmt.Errorf("%w: representation %d", ErrZeroEnergy, i)
		}
	}

	for i, r := range s.reps {
		if energies[i] == ref {
			continue
		}
		vecmath.ScaleBlockInPlace(r.Data, ref/energies[i])
	}

	return nil
}

// NormalizeStack returns a normalized copy of s together with the reference
// energy it was scaled to. s itself is not modified.
func NormalizeStack(s *Stack) (*Stack, float64, error) {
	ref := s.MeanEnergy()
	out := s.Clone()
	if err := out.Normalize(ref); err != nil {
		return nil, 0, err
	}
	return out, ref, nil
}

// Denormalize rescales r in place so that its sum equals ref.
func Denormalize(r *Representation, ref float64) error {
	sum := r.Sum()
	if sum == ref {
		return nil
	}
	if sum == 0 {
		return ErrZeroEnergy
	}

	vecmath.ScaleBlockInPlace(r.Data, ref/sum)

	return nil
}
