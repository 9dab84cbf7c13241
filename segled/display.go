package segled

import (
	"fmt"
	"sync"
)

const (
	DefaultRefreshHz  = 100
	DefaultBrightness = 100
)

// Display is one physical panel: its control-surface attributes plus the
// scan cursor the engine steps through.  Attributes are mutated by the
// control surface, the cursor only by the scanner.  One mutex covers
// both; every touch is short.
type Display struct {
	name      string
	segAdjust bool
	lines     Lines

	mu         sync.Mutex
	digits     []byte
	dps        []bool
	refreshHz  int
	brightness int

	// scan cursor
	resting     bool
	activeDigit int
	lastDigit   int
	segmentsOut byte
	dutyCycle   int
}

// NewDisplay wires a panel around an already-acquired line set.  The
// digit count comes from the number of digit-select lines.  segAdjust is
// fixed for the display's lifetime, it reflects how the board is wired.
// The display starts blank at 100 Hz and full brightness.
func NewDisplay(name string, lines Lines, segAdjust bool) (*Display, error) {
	if len(lines.Digits) < 1 {
		return nil, fmt.Errorf("segled: display %q has no digit lines", name)
	}
	if err := lines.validate(len(lines.Digits)); err != nil {
		return nil, err
	}
	d := &Display{
		name:       name,
		segAdjust:  segAdjust,
		lines:      lines,
		digits:     make([]byte, len(lines.Digits)),
		dps:        make([]bool, len(lines.Digits)),
		refreshHz:  DefaultRefreshHz,
		brightness: DefaultBrightness,
	}
	for i := range d.digits {
		d.digits[i] = ' '
	}
	return d, nil
}

func (d *Display) Name() string { return d.name }

func (d *Display) DigitCount() int { return len(d.lines.Digits) }

// Text renders the digit buffer the way the digits attribute reads back:
// each character followed by '.' if its decimal point is set.
func (d *Display) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]byte, 0, len(d.digits)*2)
	for i, c := range d.digits {
		out = append(out, c)
		if d.dps[i] {
			out = append(out, '.')
		}
	}
	return string(out)
}

// SetText maps a short text string into the digit buffer, left to right.
// A '.' sets the decimal point on the previously written digit and does
// not consume a digit slot.  Parsing stops at the first non-printable
// byte or once all digits are filled, and a short write is right
// justified with blanks on the left, so "5" on a 4-digit panel shows as
// "   5".  Characters the font can't render are stored as-is and simply
// light nothing.
func (d *Display) SetText(s string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := len(d.digits)
	for i := 0; i < n; i++ {
		d.digits[i] = ' '
		d.dps[i] = false
	}

	out := 0
	for i := 0; i < len(s); i++ {
		if s[i] < 32 || out >= n {
			break
		}
		if s[i] == '.' && out > 0 {
			d.dps[out-1] = true
		} else {
			d.digits[out] = s[i]
			out++
		}
	}

	// right-justify a short write, padding the left with blanks
	if out < n {
		in := out - 1
		for out = n - 1; out >= 0; out, in = out-1, in-1 {
			if in >= 0 {
				d.digits[out] = d.digits[in]
				d.dps[out] = d.dps[in]
			} else {
				d.digits[out] = ' '
				d.dps[out] = false
			}
		}
	}
}

func (d *Display) RefreshHz() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.refreshHz
}

// SetRefreshHz rejects rates below 1 Hz; a zero rate would turn the slot
// period into a division by zero, so the control surface bounces it
// before the scanner ever sees it.
func (d *Display) SetRefreshHz(hz int) error {
	if hz < 1 {
		return fmt.Errorf("segled: bad refresh rate %d", hz)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.refreshHz = hz
	return nil
}

func (d *Display) Brightness() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.brightness
}

func (d *Display) SetBrightness(pct int) error {
	if pct < 0 || pct > 100 {
		return fmt.Errorf("segled: bad brightness %d", pct)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.brightness = pct
	return nil
}

func (d *Display) SegAdjust() bool { return d.segAdjust }
