package tfr

import (
	"fmt"
)

// Stack is an ordered set of aligned representations sharing one shape.
//
// A Stack built by NewStack references the caller's grids without copying.
// Operations that write (Normalize) must run on a Clone.
type Stack struct {
	reps   []*Representation
	bins   int
	frames int
}

// NewStack validates reps and groups them into a stack.
//
// It fails with ErrEmptyStack when reps is empty, and with ErrInvalidSpec
// when a member is nil, malformed, holds negative or non-finite samples,
// or differs in shape from the first member.
func NewStack(reps ...*Representation) (*Stack, error) {
	if len(reps) == 0 {
		return nil, ErrEmptyStack
	}

	for i, r := range reps {
		if r == nil {
			return nil, fmt.Errorf("%w: representation %d is nil", ErrInvalidSpec, i)
		}
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("representation %d: %w", i, err)
		}
		if !r.SameShape(reps[0]) {
			return nil, fmt.Errorf("%w: representation %d has shape (%d, %d), want (%d, %d)",
				ErrInvalidSpec, i, r.Bins, r.Frames, reps[0].Bins, reps[0].Frames)
		}
	}

	return &Stack{
		reps:   append([]*Representation(nil), reps...),
		bins:   reps[0].Bins,
		frames: reps[0].Frames,
	}, nil
}

// StackFromRows builds a stack from [representation][bin][frame] data.
func StackFromRows(data [][][]float64) (*Stack, error) {
	reps := make([]*Representation, len(data))
	for i, rows := range data {
		r, err := FromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("representation %d: %w", i, err)
		}
		reps[i] = r
	}
	return NewStack(reps...)
}

// Len returns the number of representations K.
func (s *Stack) Len() int { return len(s.reps) }

// Bins returns the shared frequency dimension F.
func (s *Stack) Bins() int { return s.bins }

// Frames returns the shared time dimension T.
func (s *Stack) Frames() int { return s.frames }

// Size returns F*T, the number of bins of each member.
func (s *Stack) Size() int { return s.bins * s.frames }

// At returns the i-th representation.
func (s *Stack) At(i int) *Representation { return s.reps[i] }

// Representations returns the members in order. The slice is a copy; the
// grids are shared.
func (s *Stack) Representations() []*Representation {
	return append([]*Representation(nil), s.reps...)
}

// Clone deep-copies every member.
func (s *Stack) Clone() *Stack {
	reps := make([]*Representation, len(s.reps))
	for i, r := range s.reps {
		reps[i] = r.Clone()
	}
	return &Stack{reps: reps, bins: s.bins, frames: s.frames}
}

// Column fills dst with the K values at flat bin index idx and returns it.
func (s *Stack) Column(dst []float64, idx int) []float64 {
	dst = dst[:0]
	for _, r := range s.reps {
		dst = append(dst, r.Data[idx])
	}
	return dst
}
