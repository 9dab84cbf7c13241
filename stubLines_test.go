package main

import (
	"testing"
	"time"

	"gotest.tools/assert"

	"segled.dev/gpio-segled/segled"
)

func TestStubPanelGlyphCapture(t *testing.T) {
	stub, lines := newStubPanel(8, 2)

	// glyph is whatever segments are live the moment a digit asserts
	lines.Segments[0].Set(true)
	lines.Segments[2].Set(true)
	lines.Digits[1].Set(true)

	snap := stub.snapshot()
	assert.Equal(t, snap[0], byte(0))
	assert.Equal(t, snap[1], byte(0x05))
}

func TestStubPanelScansWholeDisplay(t *testing.T) {
	stub, lines := newStubPanel(8, 4)
	d, err := segled.NewDisplay("sim", lines, false)
	assert.NilError(t, err)
	d.SetText("1.234")

	s := segled.NewScanner(d, nil)
	s.Start()
	defer s.Stop()

	// four slots at the default rate take 10 ms; poll until every digit
	// has shown its glyph
	want := []byte{
		segled.SegmentMask('1') | segled.SegmentDP,
		segled.SegmentMask('2'),
		segled.SegmentMask('3'),
		segled.SegmentMask('4'),
	}
	deadline := time.Now().Add(5 * time.Second)
	for {
		snap := stub.snapshot()
		done := true
		for i := range want {
			if snap[i] != want[i] {
				done = false
			}
		}
		if done {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("glyphs never settled: %v", snap)
		}
		time.Sleep(time.Millisecond)
	}
}
