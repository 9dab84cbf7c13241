// Package segled drives multi-digit seven-segment LED panels that are
// wired straight to GPIO lines, with no decoder or controller chip in
// between.  Only one digit can be lit at a time, so the engine scans the
// digits fast enough for persistence of vision and realizes brightness
// purely through per-digit duty cycles.
package segled

// SegmentDP is the decimal point bit.  It is never produced by
// SegmentMask; callers OR it in per digit position.
const SegmentDP = 0x80

// segment bitmasks, bit order A..G in bits 0-6
//
//	 AAAA
//	F    B
//	F    B
//	 GGGG
//	E    C
//	E    C
//	 DDDD  P
var segmentMasks = map[byte]byte{
	'0': 0x3F,
	'1': 0x06,
	'2': 0x5B,
	'3': 0x4F,
	'4': 0x66,
	'5': 0x6D,
	'6': 0x7D,
	'7': 0x07,
	'8': 0x7F,
	'9': 0x6F,
	'-': 0x40,
	'A': 0x77,
	'B': 0x7F,
	'C': 0x39,
	'D': 0x3F,
	'E': 0x79,
	'F': 0x71,
	'G': 0x7D,
	'H': 0x76,
	'I': 0x06,
	'J': 0x0E,
	'K': 0x76,
	'L': 0x38,
	'M': 0x37,
	'N': 0x37,
	'O': 0x3F,
	'P': 0x73,
	'Q': 0x3F,
	'R': 0x77,
	'S': 0x6D,
	'T': 0x31,
	'U': 0x3E,
	'V': 0x3E,
	'W': 0x3E,
	'X': 0x76,
	'Y': 0x72,
	'Z': 0x5B,
	' ': 0x00,
}

// SegmentMask converts a character into the segment lines to switch on.
// Characters with no seven-segment rendering come back blank; a panel
// this small has no better way to complain.  Letters like M and N render
// identically, that's the best seven segments can do.
func SegmentMask(c byte) byte {
	return segmentMasks[c]
}
