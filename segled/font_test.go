package segled

import (
	"testing"

	"gotest.tools/assert"
)

func TestSegmentMaskDigits(t *testing.T) {
	cases := map[byte]byte{
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
		' ': 0x00,
	}
	for c, want := range cases {
		assert.Equal(t, SegmentMask(c), want)
	}
}

func TestSegmentMaskLetters(t *testing.T) {
	// ambiguous letters share renderings on purpose
	assert.Equal(t, SegmentMask('M'), SegmentMask('N'))
	assert.Equal(t, SegmentMask('O'), SegmentMask('0'))
	assert.Equal(t, SegmentMask('B'), SegmentMask('8'))
	assert.Equal(t, SegmentMask('A'), byte(0x77))
	assert.Equal(t, SegmentMask('L'), byte(0x38))
	assert.Equal(t, SegmentMask('Z'), SegmentMask('2'))

	for c := byte('A'); c <= 'Z'; c++ {
		// every letter renders something and never the decimal point
		assert.Assert(t, SegmentMask(c) != 0, "letter %c", c)
		assert.Equal(t, SegmentMask(c)&SegmentDP, byte(0))
	}
}

func TestSegmentMaskUnsupported(t *testing.T) {
	for _, c := range []byte{'?', '.', '*', 'a', 'z', '_', 0, 7, '\n', 0xFF} {
		assert.Equal(t, SegmentMask(c), byte(0), "char %#x", c)
	}
}
