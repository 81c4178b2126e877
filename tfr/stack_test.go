package tfr

import (
	"errors"
	"testing"
)

func TestNewStackValidation(t *testing.T) {
	a, _ := Filled(4, 5, 1)
	b, _ := Filled(4, 5, 2)
	wrong, _ := Filled(5, 4, 1)

	if _, err := NewStack(); !errors.Is(err, ErrEmptyStack) {
		t.Fatalf("empty stack error = %v, want ErrEmptyStack", err)
	}
	if _, err := NewStack(a, nil); !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("nil member error = %v, want ErrInvalidSpec", err)
	}
	if _, err := NewStack(a, wrong); !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("shape mismatch error = %v, want ErrInvalidSpec", err)
	}

	s, err := NewStack(a, b)
	if err != nil {
		t.Fatalf("NewStack error: %v", err)
	}
	if s.Len() != 2 || s.Bins() != 4 || s.Frames() != 5 || s.Size() != 20 {
		t.Fatalf("unexpected stack dims: K=%d F=%d T=%d", s.Len(), s.Bins(), s.Frames())
	}
}

func TestStackFromRows(t *testing.T) {
	s, err := StackFromRows([][][]float64{
		{{1, 2}, {3, 4}},
		{{5, 6}, {7, 8}},
	})
	if err != nil {
		t.Fatalf("StackFromRows error: %v", err)
	}

	col := s.Column(nil, 3)
	if len(col) != 2 || col[0] != 4 || col[1] != 8 {
		t.Fatalf("Column(3) = %v, want [4 8]", col)
	}

	_, err = StackFromRows([][][]float64{{{1, 2}}, {{1, 2, 3}}})
	if !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("mismatched rows error = %v, want ErrInvalidSpec", err)
	}
}

func TestStackCloneDoesNotAlias(t *testing.T) {
	a, _ := Filled(2, 2, 1)
	s, _ := NewStack(a)
	c := s.Clone()
	c.At(0).Data[0] = 9
	if a.Data[0] != 1 {
		t.Fatal("Clone must not alias caller grids")
	}
}

func TestScheduleValidate(t *testing.T) {
	ok := Schedule{{1, 1}, {0, 2}, {3, 0}}
	if err := ok.Validate(3); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if err := ok.Validate(2); err == nil {
		t.Fatal("expected row count error")
	}
	if err := (Schedule{{-1, 0}}).Validate(1); err == nil {
		t.Fatal("expected negative step error")
	}
}
