// Package rpiolines acquires Raspberry Pi GPIO pins through the
// memory-mapped go-rpio library and hands them to the segled engine as
// abstract output lines.  All electrical policy lives here: BCM pin
// numbers, output direction and active-low wiring for panels whose
// digit commons sink current through transistors.
package rpiolines

import (
	"fmt"

	"github.com/stianeikeland/go-rpio"

	"segled.dev/gpio-segled/segled"
)

// Config names the pins of one panel.  SegmentPins are in A..G order
// with the decimal point last when the panel has one.
type Config struct {
	SegmentPins       []int
	DigitPins         []int
	ActiveLowSegments bool
	ActiveLowDigits   bool
}

type line struct {
	pin       rpio.Pin
	activeLow bool
}

func (l line) Set(on bool) {
	if l.activeLow {
		on = !on
	}
	if on {
		l.pin.High()
	} else {
		l.pin.Low()
	}
}

// Set is one acquired panel's worth of pins.
type Set struct {
	lines segled.Lines
}

// Open maps /dev/gpiomem, configures every pin as a de-asserted output
// and returns the line set.  On any failure nothing stays acquired.
func Open(cfg Config) (*Set, error) {
	if n := len(cfg.SegmentPins); n != 7 && n != 8 {
		return nil, fmt.Errorf("rpiolines: want 7 or 8 segment pins, got %d", n)
	}
	if len(cfg.DigitPins) < 1 {
		return nil, fmt.Errorf("rpiolines: no digit pins")
	}

	if err := rpio.Open(); err != nil {
		return nil, err
	}

	s := &Set{}
	for _, n := range cfg.SegmentPins {
		l := line{pin: rpio.Pin(n), activeLow: cfg.ActiveLowSegments}
		l.pin.Output()
		l.Set(false)
		s.lines.Segments = append(s.lines.Segments, l)
	}
	for _, n := range cfg.DigitPins {
		l := line{pin: rpio.Pin(n), activeLow: cfg.ActiveLowDigits}
		l.pin.Output()
		l.Set(false)
		s.lines.Digits = append(s.lines.Digits, l)
	}
	return s, nil
}

// Lines exposes the acquired pins to the engine.
func (s *Set) Lines() segled.Lines {
	return s.lines
}

// Close drives everything inactive and unmaps the GPIO range.  Callers
// must stop the display's scanner first.
func (s *Set) Close() error {
	for _, l := range s.lines.Segments {
		l.Set(false)
	}
	for _, l := range s.lines.Digits {
		l.Set(false)
	}
	return rpio.Close()
}
