// Package periphlines provides segled output lines on top of periph.io,
// for hosts where pins are addressed by name ("GPIO25", "P1_22") rather
// than Raspberry Pi BCM numbers.
package periphlines

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"segled.dev/gpio-segled/segled"
)

// Config names the pins of one panel, segments in A..G order with the
// decimal point last when present.
type Config struct {
	SegmentPins       []string
	DigitPins         []string
	ActiveLowSegments bool
	ActiveLowDigits   bool
}

type line struct {
	pin       gpio.PinOut
	activeLow bool
}

func (l line) Set(on bool) {
	if l.activeLow {
		on = !on
	}
	if err := l.pin.Out(gpio.Level(on)); err != nil {
		// nothing sane to do mid-scan; the fault will be visible on
		// the panel anyway
		log.Printf("periphlines: %s: %v", l.pin.Name(), err)
	}
}

// Set is one acquired panel's worth of pins.
type Set struct {
	lines segled.Lines
}

// Open initializes the host drivers, resolves every named pin and
// drives it to the de-asserted state.  A missing pin fails the whole
// set; pins already configured are left de-asserted.
func Open(cfg Config) (*Set, error) {
	if n := len(cfg.SegmentPins); n != 7 && n != 8 {
		return nil, fmt.Errorf("periphlines: want 7 or 8 segment pins, got %d", n)
	}
	if len(cfg.DigitPins) < 1 {
		return nil, fmt.Errorf("periphlines: no digit pins")
	}

	if _, err := host.Init(); err != nil {
		return nil, err
	}

	s := &Set{}
	acquire := func(name string, activeLow bool) (line, error) {
		p := gpioreg.ByName(name)
		if p == nil {
			return line{}, fmt.Errorf("periphlines: no pin named %q", name)
		}
		l := line{pin: p, activeLow: activeLow}
		level := gpio.Low
		if activeLow {
			level = gpio.High
		}
		if err := p.Out(level); err != nil {
			return line{}, fmt.Errorf("periphlines: %s: %v", name, err)
		}
		return l, nil
	}

	for _, name := range cfg.SegmentPins {
		l, err := acquire(name, cfg.ActiveLowSegments)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.lines.Segments = append(s.lines.Segments, l)
	}
	for _, name := range cfg.DigitPins {
		l, err := acquire(name, cfg.ActiveLowDigits)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.lines.Digits = append(s.lines.Digits, l)
	}
	return s, nil
}

// Lines exposes the acquired pins to the engine.
func (s *Set) Lines() segled.Lines {
	return s.lines
}

// Close drives every acquired line inactive.  Callers must stop the
// display's scanner first.
func (s *Set) Close() error {
	for _, l := range s.lines.Segments {
		l.Set(false)
	}
	for _, l := range s.lines.Digits {
		l.Set(false)
	}
	return nil
}
