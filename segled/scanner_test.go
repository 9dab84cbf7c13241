package segled

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"
)

func TestAdvanceSequential(t *testing.T) {
	d, _ := testDisplay(t, false)
	d.SetText("1234")

	// full brightness never rests, so every slot lights the next digit
	want := []int{1, 2, 3, 0, 1, 2, 3, 0}
	for _, w := range want {
		d.advance()
		assert.Equal(t, d.resting, false)
		assert.Equal(t, d.activeDigit, w)
	}
}

func TestSlotTimingFullBrightness(t *testing.T) {
	d, _ := testDisplay(t, false)
	d.SetText("8888")

	// 100 Hz over 4 digits: 2.5 ms per slot, duty 100 never splits it
	for i := 0; i < 8; i++ {
		d.advance()
		assert.Equal(t, d.nextDelay(), 2500*time.Microsecond)
	}
}

func TestSlotTimingDutySplit(t *testing.T) {
	d, _ := testDisplay(t, false)
	d.SetText("8888")
	assert.NilError(t, d.SetBrightness(50))

	// first decide picks up the new duty, drive portion is half a slot
	d.advance()
	assert.Equal(t, d.resting, false)
	assert.Equal(t, d.nextDelay(), 1250*time.Microsecond)

	// then the complementary rest portion; together one full base slot
	d.advance()
	assert.Equal(t, d.resting, true)
	assert.Equal(t, d.nextDelay(), 1250*time.Microsecond)

	// and back to driving the next digit
	prev := d.activeDigit
	d.advance()
	assert.Equal(t, d.resting, false)
	assert.Equal(t, d.activeDigit, (prev+1)%4)
}

func TestSlotTimingSegAdjust(t *testing.T) {
	lines, _ := traceLines(8, 1)
	d, err := NewDisplay("one", lines, true)
	assert.NilError(t, err)
	assert.NilError(t, d.SetBrightness(80))
	d.SetText("1")

	// a single-digit display is valid; base slot is 10 ms at 100 Hz
	d.advance()
	assert.Equal(t, d.activeDigit, 0)
	assert.Equal(t, d.dutyCycle, 22)
	assert.Equal(t, d.nextDelay(), 2200*time.Microsecond)

	d.advance()
	assert.Equal(t, d.resting, true)
	assert.Equal(t, d.nextDelay(), 7800*time.Microsecond)
}

func TestCommitMutualExclusion(t *testing.T) {
	d, tr := testDisplay(t, false)
	d.SetText("8888")

	for i := 0; i < 16; i++ {
		d.advance()
		d.commit()
	}

	assert.Equal(t, tr.overlap, false)
	assert.Equal(t, len(tr.litOrder), 16)
	for i := 1; i < len(tr.litOrder); i++ {
		assert.Equal(t, tr.litOrder[i], (tr.litOrder[i-1]+1)%4)
	}
}

func TestCommitResting(t *testing.T) {
	d, tr := testDisplay(t, false)
	d.SetText("8888")
	assert.NilError(t, d.SetBrightness(50))

	d.advance() // drive slot
	d.commit()
	lit := tr.lit()
	assert.Assert(t, lit >= 0)
	writes := tr.segWrites

	d.advance() // rest slot
	assert.Equal(t, d.resting, true)
	d.commit()

	// the lit digit was dropped and nothing else was touched
	assert.Equal(t, tr.lit(), -1)
	assert.Equal(t, tr.segWrites, writes)
}

func TestCommitSegmentsMatchGlyph(t *testing.T) {
	d, tr := testDisplay(t, false)
	d.SetText("1111")

	d.advance()
	d.commit()
	assert.Equal(t, tr.segMask(), byte(0x06))
}

func TestCommitDecimalPoint(t *testing.T) {
	d, tr := testDisplay(t, false)
	d.SetText("1.")

	// "1." right-justifies to position 3 with its decimal point;
	// three slots in, the cursor reaches it
	assert.Equal(t, d.Text(), "   1.")
	for i := 0; i < 3; i++ {
		d.advance()
		d.commit()
	}
	assert.Equal(t, tr.lit(), 3)
	assert.Equal(t, tr.segMask(), byte(0x06|SegmentDP))
}

func TestBlankDisplayStillScans(t *testing.T) {
	d, tr := testDisplay(t, true)

	// all blanks with seg-adjust: duty 0, never resting, nothing lit up
	// segment-wise but the cursor keeps consuming slots
	for i := 0; i < 8; i++ {
		d.advance()
		assert.Equal(t, d.resting, false)
		assert.Equal(t, d.nextDelay(), 2500*time.Microsecond)
		d.commit()
	}
	assert.Equal(t, tr.segMask(), byte(0))
	assert.Equal(t, len(tr.litOrder), 8)
}

func TestScannerRunAndStop(t *testing.T) {
	d, tr := testDisplay(t, false)
	d.SetText("1234")

	clock := clockwork.NewFakeClock()
	s := NewScanner(d, clock)
	s.Start()

	// push the fake clock through a bunch of slots and give the apply
	// worker real time to chew through the kicks
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		clock.Advance(3 * time.Millisecond)
		time.Sleep(time.Millisecond)
		tr.mu.Lock()
		n := len(tr.litOrder)
		tr.mu.Unlock()
		if n >= 4 {
			break
		}
	}

	s.Stop()

	tr.mu.Lock()
	lit := len(tr.litOrder)
	overlap := tr.overlap
	tr.mu.Unlock()
	assert.Assert(t, lit >= 4, "only %d digits lit", lit)
	assert.Equal(t, overlap, false)

	// teardown leaves every line de-asserted
	assert.Assert(t, tr.allOff())
}

// a line whose toggles hang until released, standing in for a slow or
// stuck pin driver
type blockingLine struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingLine) Set(on bool) {
	select {
	case b.entered <- struct{}{}:
	default:
	}
	<-b.release
}

func TestStopWaitsForApply(t *testing.T) {
	bl := &blockingLine{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	var lines Lines
	for i := 0; i < 7; i++ {
		lines.Segments = append(lines.Segments, bl)
	}
	for i := 0; i < 4; i++ {
		lines.Digits = append(lines.Digits, bl)
	}
	d, err := NewDisplay("stuck", lines, false)
	assert.NilError(t, err)
	d.SetText("8888")

	clock := clockwork.NewFakeClock()
	s := NewScanner(d, clock)
	s.Start()

	// let one slot decide and the worker enter its first line toggle
	clock.BlockUntil(1)
	clock.Advance(3 * time.Millisecond)
	<-bl.entered

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	// Stop must not return while the apply is still in flight
	select {
	case <-done:
		t.Fatal("Stop returned with an apply in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(bl.release)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop never returned after the line unblocked")
	}
}
