package segled

import "math/bits"

// DutyCycle computes the percentage of a digit's scan slot during which
// it should actually be driven.  Without segAdjust that is just the
// brightness setting.  With segAdjust the slot is additionally scaled by
// how many of the low `segments` bits of mask are lit, so that on panels
// with current-limited digit commons a '1' (2 segments) doesn't outshine
// an '8' (7 segments).  Integer truncation is deliberate; the hardware
// timing expectations were measured with it.
func DutyCycle(mask byte, brightness int, segAdjust bool, segments int) int {
	if brightness < 0 {
		brightness = 0
	} else if brightness > 100 {
		brightness = 100
	}
	if !segAdjust || segments <= 0 {
		return brightness
	}
	lit := bits.OnesCount8(mask & (1<<uint(segments) - 1))
	return brightness * lit / segments
}
