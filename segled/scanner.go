package segled

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// advance runs the decide phase of one scan slot.  It must stay fast and
// never touch hardware: the scanner calls it from the timing loop.
//
// While the duty cycle is strictly between 0 and 100 the cursor
// alternates between driving the active digit and resting with nothing
// lit; at 0 or 100 it never rests.  A resting slot decides nothing else.
func (d *Display) advance() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.dutyCycle > 0 && d.dutyCycle < 100 {
		d.resting = !d.resting
	} else {
		d.resting = false
	}
	if d.resting {
		return
	}

	d.activeDigit++
	if d.activeDigit >= len(d.digits) {
		d.activeDigit = 0
	}

	mask := SegmentMask(d.digits[d.activeDigit])
	if d.dps[d.activeDigit] {
		mask |= SegmentDP
	}
	d.segmentsOut = mask
	d.dutyCycle = DutyCycle(mask, d.brightness, d.segAdjust, segsPerDigit)
}

// nextDelay computes how long the slot decided by advance should last.
// The base slot is the full-cycle period split evenly across digits; a
// fractional duty cycle splits that base further between the driven
// portion and the complementary rest portion.
func (d *Display) nextDelay() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()

	period := time.Second / time.Duration(len(d.digits)*d.refreshHz)
	if d.dutyCycle > 0 && d.dutyCycle < 100 {
		pct := d.dutyCycle
		if d.resting {
			pct = 100 - d.dutyCycle
		}
		period = period / 100 * time.Duration(pct)
	}
	return period
}

// commit runs the apply phase: it pushes the decided state out to the
// lines.  Line toggles may sleep, so this runs on the scanner's worker,
// never on the timing loop.  The previously lit digit is always dropped
// first; a new digit is only asserted after, so two digit-select lines
// are never high together even while toggles are in flight.
func (d *Display) commit() {
	d.mu.Lock()
	resting := d.resting
	mask := d.segmentsOut
	active := d.activeDigit
	last := d.lastDigit
	d.mu.Unlock()

	d.lines.Digits[last].Set(false)
	if resting {
		return
	}
	for i, s := range d.lines.Segments {
		s.Set(mask&(1<<uint(i)) != 0)
	}
	d.lines.Digits[active].Set(true)

	d.mu.Lock()
	d.lastDigit = active
	d.mu.Unlock()
}

// Scanner owns the two execution contexts of one display: a timing loop
// that decides slot after slot and must never wait on hardware, and a
// single apply worker that may block on line toggles.  Kicks to the
// worker coalesce; if an apply is still running when the next slot
// decides, the state free-runs and the worker picks up whatever is
// current when it gets there.
type Scanner struct {
	disp  *Display
	clock clockwork.Clock

	quit chan struct{}
	kick chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// NewScanner prepares a scanner for d.  A nil clock means wall time;
// tests pass a fake one.
func NewScanner(d *Display, clk clockwork.Clock) *Scanner {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &Scanner{
		disp:  d,
		clock: clk,
		quit:  make(chan struct{}),
		kick:  make(chan struct{}, 1),
	}
}

// Start launches the timing loop and the apply worker.
func (s *Scanner) Start() {
	s.wg.Add(2)
	go s.scanLoop()
	go s.applyLoop()
}

// Stop halts scanning, waits for any in-flight apply to finish and
// leaves every line de-asserted.  Only after Stop returns may the line
// provider be released.  There is no cancelling an individual apply; a
// stuck line driver stalls this display and that's the driver's bug.
func (s *Scanner) Stop() {
	s.once.Do(func() { close(s.quit) })
	s.wg.Wait()
	s.disp.lines.allOff()
}

func (s *Scanner) scanLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.quit:
			return
		default:
		}

		s.disp.advance()
		delay := s.disp.nextDelay()

		// wake the worker; a kick already pending covers this slot too
		select {
		case s.kick <- struct{}{}:
		default:
		}

		select {
		case <-s.quit:
			return
		case <-s.clock.After(delay):
		}
	}
}

func (s *Scanner) applyLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.quit:
			return
		case <-s.kick:
			s.disp.commit()
		}
	}
}
