package main

import (
	"sync"

	"segled.dev/gpio-segled/segled"
)

// stubPanel plays the electrical side of a panel in memory, for hosts
// without GPIO and for the terminal simulator.  glyphs keeps the last
// segment mask that was live while each digit was asserted, which is
// what a slow camera (or the simulator) would see.
type stubPanel struct {
	mu        sync.Mutex
	segLevels []bool
	digLevels []bool
	glyphs    []byte
}

type stubLine struct {
	p     *stubPanel
	digit bool
	idx   int
}

func (l stubLine) Set(on bool) {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	if l.digit {
		l.p.digLevels[l.idx] = on
		if on {
			l.p.glyphs[l.idx] = l.p.mask()
		}
	} else {
		l.p.segLevels[l.idx] = on
	}
}

// callers hold mu
func (p *stubPanel) mask() byte {
	var m byte
	for i, v := range p.segLevels {
		if v {
			m |= 1 << uint(i)
		}
	}
	return m
}

func newStubPanel(nseg, ndig int) (*stubPanel, segled.Lines) {
	p := &stubPanel{
		segLevels: make([]bool, nseg),
		digLevels: make([]bool, ndig),
		glyphs:    make([]byte, ndig),
	}
	var lines segled.Lines
	for i := 0; i < nseg; i++ {
		lines.Segments = append(lines.Segments, stubLine{p: p, idx: i})
	}
	for i := 0; i < ndig; i++ {
		lines.Digits = append(lines.Digits, stubLine{p: p, digit: true, idx: i})
	}
	return p, lines
}

// snapshot copies the per-digit glyph masks for rendering.
func (p *stubPanel) snapshot() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]byte, len(p.glyphs))
	copy(out, p.glyphs)
	return out
}
