//
// Copyright (c) 2026 The rdjob authors
//

// Package rd serializes laser jobs into the Ruida controller's `.rd`
// byte stream, and decodes such streams back for inspection.
//
// All multi-byte values on the wire are sequences of 7-bit groups,
// most significant group first, one group per byte with the high bit
// clear. The whole stream is scrambled byte-by-byte before it leaves
// the encoder; machines reject unscrambled files.
package rd

import (
	"fmt"
	"image/color"
	"math"
)

// One absolute coordinate is five 7-bit groups: 35 bits of
// micrometers.
const absGroups = 5

// Relative coordinates are two 7-bit groups holding a 14-bit two's
// complement micrometer offset.
const (
	relLimitUM = 8191
	relModulus = 1 << 14
)

// percentScale is 1/100 of 14 bits all ones; percentages are spread
// over the full two-group range.
const percentScale = 0x3fff

// umFromMM converts a millimeter coordinate to device units with the
// single rounding rule used everywhere: round half to even.
func umFromMM(mm float64) int64 {
	return int64(math.RoundToEven(mm * 1000))
}

func appendNumber(dst []byte, value int64, groups int) []byte {
	for i := groups - 1; i >= 0; i-- {
		dst = append(dst, byte((value>>(7*uint(i)))&0x7f))
	}
	return dst
}

func appendAbs(dst []byte, um int64) []byte {
	return appendNumber(dst, um, absGroups)
}

func appendRel(dst []byte, um int64) []byte {
	if um < 0 {
		um += relModulus
	}
	return appendNumber(dst, um, 2)
}

func appendPercent(dst []byte, pct float64) []byte {
	v := int64(pct * percentScale / 100)
	return appendNumber(dst, v, 2)
}

// appendColor packs an RGB triple as BGR into one 5-group number.
func appendColor(dst []byte, c color.RGBA) []byte {
	v := int64(c.B)<<16 | int64(c.G)<<8 | int64(c.R)
	return appendNumber(dst, v, absGroups)
}

func decodeNumber(b []byte) (value int64) {
	for _, by := range b {
		value = value<<7 | int64(by&0x7f)
	}
	return
}

func decodeRel(b []byte) (um int64, err error) {
	um = decodeNumber(b[:2])
	if um >= relModulus {
		return 0, fmt.Errorf("rd: not a relative coordinate: % 02x", b[:2])
	}
	if um > relLimitUM {
		um -= relModulus
	}
	return
}

func decodePercent(b []byte) float64 {
	return float64(decodeNumber(b[:2])) * 100 / percentScale
}

func decodeColor(b []byte) color.RGBA {
	v := decodeNumber(b[:absGroups])
	return color.RGBA{
		R: uint8(v),
		G: uint8(v >> 8),
		B: uint8(v >> 16),
		A: 255,
	}
}

// scramble transforms one byte for writing into an .rd file: swap
// bits 0 and 7, xor 0x88, add one.
func scramble(b byte) byte {
	b = b&0x7e | b>>7 | b<<7
	b ^= 0x88
	return b + 1
}

// unscramble is the exact inverse of scramble.
func unscramble(b byte) byte {
	b -= 1
	b ^= 0x88
	return b&0x7e | b>>7 | b<<7
}

func scrambleBytes(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = scramble(b)
	}
	return out
}

func unscrambleBytes(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = unscramble(b)
	}
	return out
}

// checksum is the 16-bit byte sum the upload path prefixes to a
// scrambled stream.
func checksum(data []byte) (sum uint16) {
	for _, b := range data {
		sum += uint16(b)
	}
	return
}
