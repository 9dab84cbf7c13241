package segled

import "fmt"

// A Line is one GPIO output owned by a display.  Set(true) asserts the
// line in the logical sense (segment lit, digit selected); electrical
// polarity is the provider's problem.  Set is allowed to sleep.
type Line interface {
	Set(on bool)
}

// Lines is the ordered set of outputs for one panel: segment lines
// A..G (plus P when the panel has decimal points) and one select line
// per digit.  The engine never acquires or configures pins itself.
type Lines struct {
	Segments []Line
	Digits   []Line
}

const (
	// segment bit positions, A..G in bits 0-6, decimal point in bit 7
	SegA = iota
	SegB
	SegC
	SegD
	SegE
	SegF
	SegG
	SegP
)

// segsPerDigit is the divisor for seg-adjust duty scaling.  The decimal
// point is excluded: a bare dot shouldn't starve the digit it rides on.
const segsPerDigit = 7

func (l Lines) validate(digits int) error {
	if n := len(l.Segments); n != 7 && n != 8 {
		return fmt.Errorf("segled: want 7 or 8 segment lines, got %d", n)
	}
	if len(l.Digits) != digits {
		return fmt.Errorf("segled: want %d digit lines, got %d", digits, len(l.Digits))
	}
	return nil
}

// allOff drives every line to the de-asserted state.
func (l Lines) allOff() {
	for _, s := range l.Segments {
		s.Set(false)
	}
	for _, d := range l.Digits {
		d.Set(false)
	}
}
