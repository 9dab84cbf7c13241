package main

import (
	"log"
	"time"

	"github.com/nsf/termbox-go"

	"segled.dev/gpio-segled/segled"
)

// digitArt renders one digit's captured segment mask as three rows of
// ASCII art:
//
//	 _
//	|_|
//	|_|.
func digitArt(mask byte) [3]string {
	seg := func(idx uint, lit string) string {
		if mask&(1<<idx) != 0 {
			return lit
		}
		return " "
	}
	return [3]string{
		" " + seg(segled.SegA, "_") + "  ",
		seg(segled.SegF, "|") + seg(segled.SegG, "_") + seg(segled.SegB, "|") + " ",
		seg(segled.SegE, "|") + seg(segled.SegD, "_") + seg(segled.SegC, "|") + seg(segled.SegP, "."),
	}
}

func drawString(x, y int, s string) {
	for i, c := range s {
		termbox.SetCell(x+i, y, c, termbox.ColorDefault, termbox.ColorDefault)
	}
}

func drawPanels(rt *runtimeConfig) {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	y := 0
	for _, p := range rt.panels {
		if p.stub == nil {
			continue
		}
		drawString(0, y, p.disp.Name())
		for i, g := range p.stub.snapshot() {
			art := digitArt(g)
			for row := 0; row < 3; row++ {
				drawString(i*5, y+1+row, art[row])
			}
		}
		y += 5
	}
	drawString(0, y, "q or ctrl-c to quit")
	termbox.Flush()
}

// runSimPanel draws every stub-backed panel in the terminal.  It shows
// the glyphs the stub lines captured, so what you see is what the scan
// actually put on the wires, not the digit buffer.
func runSimPanel(rt *runtimeConfig) {
	defer wg.Done()

	if !rt.settings.GetBool(sSim) {
		return
	}
	if err := termbox.Init(); err != nil {
		log.Printf("simulator disabled: %v", err)
		return
	}
	defer termbox.Close()

	events := make(chan termbox.Event, 1)
	go func() {
		for {
			ev := termbox.PollEvent()
			events <- ev
			if ev.Type == termbox.EventInterrupt {
				return
			}
		}
	}()
	// unstick PollEvent when somebody else quits
	go func() {
		<-rt.comms.quit
		termbox.Interrupt()
	}()

	tick := rt.settings.GetDuration(sSimTick)
	for {
		select {
		case <-rt.comms.quit:
			return
		case ev := <-events:
			if ev.Type == termbox.EventKey && (ev.Key == termbox.KeyCtrlC || ev.Ch == 'q') {
				rt.signalQuit()
				return
			}
		case <-time.After(tick):
			drawPanels(rt)
		}
	}
}
