package tfr

import "errors"

var (
	// ErrInvalidSpec reports a representation that is not a non-empty 2-D grid,
	// or a stack whose members disagree in shape.
	ErrInvalidSpec = errors.New("tfr: invalid spec")

	// ErrEmptyStack reports a stack with no representations.
	ErrEmptyStack = errors.New("tfr: stack must hold at least one representation")

	// ErrNonFinite reports a NaN or Inf sample. Returned errors also match
	// ErrInvalidSpec.
	ErrNonFinite = errors.New("NaN or Inf sample")

	// ErrNegative reports a negative sample. Returned errors also match
	// ErrInvalidSpec.
	ErrNegative = errors.New("negative sample")

	// ErrZeroEnergy reports an attempt to rescale a grid whose sum is zero.
	ErrZeroEnergy = errors.New("tfr: cannot rescale zero-energy representation")
)
