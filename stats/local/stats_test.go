package local

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ctfr/internal/testutil"
	"github.com/cwbudde/algo-ctfr/tfr"
)

// neighbourhood collects the truncated window samples around (k, m) the slow way.
func neighbourhood(x *tfr.Representation, k, m int, w Window, st Stride) []float64 {
	var v []float64
	for j := -w.Freq / 2; j <= w.Freq/2; j++ {
		f := k + j*st.Freq
		if f < 0 || f >= x.Bins {
			continue
		}
		for i := -w.Time / 2; i <= w.Time/2; i++ {
			t := m + i*st.Time
			if t < 0 || t >= x.Frames {
				continue
			}
			v = append(v, x.At(f, t))
		}
	}
	return v
}

func grid(t *testing.T, seed int64, bins, frames int) *tfr.Representation {
	t.Helper()
	r, err := tfr.FromRows(testutil.Rows(testutil.RandomGrid(seed, bins, frames, 5), bins, frames))
	if err != nil {
		t.Fatalf("FromRows error: %v", err)
	}
	return r
}

var testWindows = []Window{{1, 1}, {3, 3}, {5, 1}, {1, 7}, {21, 11}}

func TestSumMatchesBruteForce(t *testing.T) {
	x := grid(t, 1, 9, 13)

	for _, w := range testWindows {
		t.Run(w.String(), func(t *testing.T) {
			got, err := Sum(x, w)
			if err != nil {
				t.Fatalf("Sum error: %v", err)
			}

			want := make([]float64, len(x.Data))
			for k := range x.Bins {
				for m := range x.Frames {
					for _, v := range neighbourhood(x, k, m, w, Dense) {
						want[k*x.Frames+m] += v
					}
				}
			}
			testutil.RequireSliceRelativelyEqual(t, got.Data, want, 1e-12)
		})
	}
}

func TestCountTruncatesAtEdges(t *testing.T) {
	c, err := Count(4, 5, Window{3, 3})
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}

	want := []float64{
		4, 6, 6, 6, 4,
		6, 9, 9, 9, 6,
		6, 9, 9, 9, 6,
		4, 6, 6, 6, 4,
	}
	testutil.RequireSliceNearlyEqual(t, c.Data, want, 0)
}

func TestMeanOfConstantIsConstant(t *testing.T) {
	x, _ := tfr.Filled(6, 7, 2.5)

	m, err := Mean(x, Window{5, 3})
	if err != nil {
		t.Fatalf("Mean error: %v", err)
	}
	testutil.RequireConstant(t, m.Data, 2.5, 1e-14)
}

func TestSparsityMatchesBruteForce(t *testing.T) {
	x := grid(t, 2, 8, 10)

	for _, w := range testWindows {
		t.Run(w.String(), func(t *testing.T) {
			got, err := Sparsity(x, w)
			if err != nil {
				t.Fatalf("Sparsity error: %v", err)
			}

			for k := range x.Bins {
				for m := range x.Frames {
					v := neighbourhood(x, k, m, w, Dense)
					l1, l2 := 0.0, 0.0
					for _, s := range v {
						l1 += s
						l2 += s * s
					}
					want := 0.0
					if len(v) > 1 && l2 > 0 {
						rn := math.Sqrt(float64(len(v)))
						want = (rn - l1/math.Sqrt(l2)) / (rn - 1)
					}
					if diff := math.Abs(got.At(k, m) - want); diff > 1e-12 {
						t.Fatalf("bin (%d, %d): got %v, want %v", k, m, got.At(k, m), want)
					}
				}
			}
		})
	}
}

func TestSparsityExtremes(t *testing.T) {
	peak, _ := tfr.New(5, 5)
	peak.Set(2, 2, 7)
	flat, _ := tfr.Filled(5, 5, 3)
	silent, _ := tfr.New(5, 5)

	w := Window{5, 5}

	s, _ := Sparsity(peak, w)
	if math.Abs(s.At(2, 2)-1) > 1e-12 {
		t.Fatalf("single peak sparsity = %v, want 1", s.At(2, 2))
	}

	s, _ = Sparsity(flat, w)
	testutil.RequireConstant(t, s.Data, 0, 1e-12)

	s, _ = Sparsity(silent, w)
	testutil.RequireConstant(t, s.Data, 0, 0)

	s, _ = Sparsity(peak, Window{1, 1})
	testutil.RequireConstant(t, s.Data, 0, 0)
}

func TestSparsityPrefersLocalizedEnergy(t *testing.T) {
	// The same energy as a line in one bin is sparser than spread over five.
	line, _ := tfr.FromRows(testutil.Rows(testutil.HorizontalLine(9, 9, 4, 5), 9, 9))
	band, _ := tfr.New(9, 9)
	for k := 2; k <= 6; k++ {
		for m := range 9 {
			band.Set(k, m, 1)
		}
	}

	w := Window{5, 5}
	sl, _ := Sparsity(line, w)
	sb, _ := Sparsity(band, w)
	if sl.At(4, 4) <= sb.At(4, 4) {
		t.Fatalf("line sparsity %v should exceed band sparsity %v", sl.At(4, 4), sb.At(4, 4))
	}
}

func TestSmearing(t *testing.T) {
	peak, _ := tfr.New(3, 3)
	peak.Set(1, 1, 4)
	flat, _ := tfr.Filled(3, 3, 1)
	silent, _ := tfr.New(3, 3)
	w := Window{3, 3}

	s, _ := Smearing(peak, w)
	if math.Abs(s.At(1, 1)-1) > 1e-12 {
		t.Fatalf("peak smearing = %v, want 1", s.At(1, 1))
	}

	s, _ = Smearing(flat, w)
	if math.Abs(s.At(1, 1)-3) > 1e-12 {
		t.Fatalf("flat smearing = %v, want sqrt(9) = 3", s.At(1, 1))
	}
	if math.Abs(s.At(0, 0)-2) > 1e-12 {
		t.Fatalf("corner smearing = %v, want sqrt(4) = 2", s.At(0, 0))
	}

	s, _ = Smearing(silent, w)
	testutil.RequireConstant(t, s.Data, 0, 0)
}

func TestStridedStatistics(t *testing.T) {
	x := grid(t, 3, 11, 12)
	w := Window{3, 5}

	strides := make([]Stride, x.Frames)
	for m := range strides {
		strides[m] = Stride{Freq: 1 + m%3, Time: 1 + m%2}
	}

	sum, err := SumStrided(x, w, strides)
	if err != nil {
		t.Fatalf("SumStrided error: %v", err)
	}
	sp, err := SparsityStrided(x, w, strides)
	if err != nil {
		t.Fatalf("SparsityStrided error: %v", err)
	}
	mean, err := MeanStrided(x, w, strides)
	if err != nil {
		t.Fatalf("MeanStrided error: %v", err)
	}

	for k := range x.Bins {
		for m := range x.Frames {
			v := neighbourhood(x, k, m, w, strides[m])
			l1, l2 := 0.0, 0.0
			for _, s := range v {
				l1 += s
				l2 += s * s
			}
			if math.Abs(sum.At(k, m)-l1) > 1e-10 {
				t.Fatalf("strided sum (%d, %d) = %v, want %v", k, m, sum.At(k, m), l1)
			}
			if got, want := mean.At(k, m), l1/float64(len(v)); math.Abs(got-want) > 1e-10 {
				t.Fatalf("strided mean (%d, %d) = %v, want %v", k, m, got, want)
			}
			if got, want := sp.At(k, m), hoyer(len(v), l1, l2); math.Abs(got-want) > 1e-12 {
				t.Fatalf("strided sparsity (%d, %d) = %v, want %v", k, m, got, want)
			}
		}
	}
}

func TestDenseStridesEqualPlainWindow(t *testing.T) {
	x := grid(t, 4, 7, 9)
	w := Window{3, 3}

	plain, _ := Sparsity(x, w)
	strided, err := SparsityStrided(x, w, StridesFor(make(tfr.Schedule, x.Frames)))
	if err != nil {
		t.Fatalf("SparsityStrided error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, strided.Data, plain.Data, 0)
}

func TestInvalidWindows(t *testing.T) {
	x, _ := tfr.Filled(3, 3, 1)

	for _, w := range []Window{{0, 1}, {2, 1}, {1, -3}, {1, 4}} {
		if _, err := Sum(x, w); !errors.Is(err, ErrInvalidWindow) {
			t.Fatalf("Sum(%v) error = %v, want ErrInvalidWindow", w, err)
		}
	}

	if _, err := SumStrided(x, Window{1, 1}, []Stride{{1, 1}}); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("short strides error = %v, want ErrInvalidWindow", err)
	}
	if _, err := SumStrided(x, Window{1, 1}, []Stride{{1, 1}, {0, 1}, {1, 1}}); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("zero stride error = %v, want ErrInvalidWindow", err)
	}
}
