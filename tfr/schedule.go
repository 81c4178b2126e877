package tfr

import "fmt"

// Step is one row of an interpolation schedule: the number of interpolated
// bins (Freq) and frames (Time) inserted between genuine samples.
type Step struct {
	Freq int
	Time int
}

// Schedule assigns one Step to each frame of a representation.
type Schedule []Step

// Validate checks that the schedule covers exactly frames frames with
// non-negative steps.
func (s Schedule) Validate(frames int) error {
	if len(s) != frames {
		return fmt.Errorf("schedule has %d rows, want %d (one per frame)", len(s), frames)
	}
	for m, st := range s {
		if st.Freq < 0 || st.Time < 0 {
			return fmt.Errorf("schedule row %d = (%d, %d) must be non-negative", m, st.Freq, st.Time)
		}
	}
	return nil
}
