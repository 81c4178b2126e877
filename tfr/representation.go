package tfr

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"
)

// Representation is a non-negative time-frequency grid with Bins rows
// (frequency) and Frames columns (time), stored row-major.
type Representation struct {
	Bins   int
	Frames int
	Data   []float64
}

// New allocates a zeroed bins x frames representation.
func New(bins, frames int) (*Representation, error) {
	if bins <= 0 || frames <= 0 {
		return nil, fmt.Errorf("%w: shape (%d, %d) must be positive", ErrInvalidSpec, bins, frames)
	}

	return &Representation{
		Bins:   bins,
		Frames: frames,
		Data:   make([]float64, bins*frames),
	}, nil
}

// NewLike allocates a zeroed representation with the shape of r.
func NewLike(r *Representation) *Representation {
	return &Representation{
		Bins:   r.Bins,
		Frames: r.Frames,
		Data:   make([]float64, len(r.Data)),
	}
}

// FromRows copies a [bin][frame] slice into a representation.
// Ragged or empty input is not a 2-D grid and fails with ErrInvalidSpec.
func FromRows(rows [][]float64) (*Representation, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: representation must have 2 non-empty dimensions", ErrInvalidSpec)
	}

	frames := len(rows[0])
	r := &Representation{
		Bins:   len(rows),
		Frames: frames,
		Data:   make([]float64, len(rows)*frames),
	}

	for k, row := range rows {
		if len(row) != frames {
			return nil, fmt.Errorf("%w: row %d has %d frames, want %d", ErrInvalidSpec, k, len(row), frames)
		}
		copy(r.Data[k*frames:], row)
	}

	return r, nil
}

// FromDense copies any gonum matrix into a representation.
func FromDense(m mat.Matrix) (*Representation, error) {
	bins, frames := m.Dims()

	r, err := New(bins, frames)
	if err != nil {
		return nil, err
	}

	for k := range bins {
		row := r.Row(k)
		for t := range frames {
			row[t] = m.At(k, t)
		}
	}

	return r, nil
}

// Filled returns a bins x frames representation holding value everywhere.
func Filled(bins, frames int, value float64) (*Representation, error) {
	r, err := New(bins, frames)
	if err != nil {
		return nil, err
	}
	for i := range r.Data {
		r.Data[i] = value
	}
	return r, nil
}

// Dense returns a gonum view sharing r's backing storage.
func (r *Representation) Dense() *mat.Dense {
	return mat.NewDense(r.Bins, r.Frames, r.Data)
}

// Shape returns (bins, frames).
func (r *Representation) Shape() (int, int) { return r.Bins, r.Frames }

// At returns the value of bin k at frame t.
func (r *Representation) At(k, t int) float64 { return r.Data[k*r.Frames+t] }

// Set stores v at bin k, frame t.
func (r *Representation) Set(k, t int, v float64) { r.Data[k*r.Frames+t] = v }

// Row returns the frames of bin k as a slice into r.Data.
func (r *Representation) Row(k int) []float64 {
	return r.Data[k*r.Frames : (k+1)*r.Frames]
}

// Rows copies r into a fresh [bin][frame] slice.
func (r *Representation) Rows() [][]float64 {
	out := make([][]float64, r.Bins)
	for k := range out {
		out[k] = append([]float64(nil), r.Row(k)...)
	}
	return out
}

// Clone returns a deep copy of r.
func (r *Representation) Clone() *Representation {
	return &Representation{
		Bins:   r.Bins,
		Frames: r.Frames,
		Data:   append([]float64(nil), r.Data...),
	}
}

// Sum returns the total energy of r.
func (r *Representation) Sum() float64 {
	return vecmath.Sum(r.Data)
}

// SameShape reports whether r and o have identical dimensions.
func (r *Representation) SameShape(o *Representation) bool {
	return r.Bins == o.Bins && r.Frames == o.Frames
}

func (r *Representation) validate() error {
	if r.Bins <= 0 || r.Frames <= 0 {
		return fmt.Errorf("%w: shape (%d, %d) must be positive", ErrInvalidSpec, r.Bins, r.Frames)
	}
	if len(r.Data) != r.Bins*r.Frames {
		return fmt.Errorf("%w: %d samples do not fill shape (%d, %d)", ErrInvalidSpec, len(r.Data), r.Bins, r.Frames)
	}

	for i, v := range r.Data {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			return fmt.Errorf("%w: %w at bin %d frame %d", ErrInvalidSpec, ErrNonFinite, i/r.Frames, i%r.Frames)
		case v < 0:
			return fmt.Errorf("%w: %w at bin %d frame %d", ErrInvalidSpec, ErrNegative, i/r.Frames, i%r.Frames)
		}
	}

	return nil
}
