package main

import "log"

func replaceAtIndex(in string, r rune, i int) string {
	out := []rune(in)
	out[i] = r
	return string(out)
}

// clockText renders the wall-clock string for one instant: "HH.MM" with
// a leading-zero hour shown as a space, and the dot dropped on odd
// seconds when blinking.
func clockText(rt *runtimeConfig) string {
	now := rt.clock.Now()
	format := "15.04"
	if rt.settings.GetBool(sBlinkDot) && now.Second()%2 == 1 {
		// no slot required for the dot, "1504" fills the same 4 digits
		format = "1504"
	}
	timeString := now.Format(format)
	if timeString[0] == '0' {
		timeString = replaceAtIndex(timeString, ' ', 0)
	}
	return timeString
}

// runClockMode turns every panel into a wall clock.  It only rewrites
// the digit buffers; the scanners keep multiplexing underneath.
func runClockMode(rt *runtimeConfig) {
	defer wg.Done()

	if !rt.settings.GetBool(sClockMode) {
		return
	}
	log.Println("starting clock mode")

	tick := rt.settings.GetDuration(sClockTick)
	for {
		select {
		case <-rt.comms.quit:
			return
		default:
		}

		timeString := clockText(rt)
		for _, p := range rt.panels {
			p.disp.SetText(timeString)
		}
		rt.clock.Sleep(tick)
	}
}
