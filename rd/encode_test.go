//
// Copyright (c) 2026 The rdjob authors
//

package rd

import (
	"bytes"
	"image/color"
	"testing"
)

func TestNumberGolden(t *testing.T) {
	table := []struct {
		mm   float64
		want []byte
	}{
		{452.84, []byte{0x00, 0x00, 0x1b, 0x51, 0x68}},
		{126.8, []byte{0x00, 0x00, 0x07, 0x5e, 0x50}},
	}

	for _, item := range table {
		got := appendAbs(nil, umFromMM(item.mm))
		if !bytes.Equal(got, item.want) {
			t.Errorf("%vmm: got % 02x, expected % 02x", item.mm, got, item.want)
		}
	}
}

func TestPercentGolden(t *testing.T) {
	table := []struct {
		pct  float64
		want []byte
	}{
		{60, []byte{0x4c, 0x65}},
		{70, []byte{0x59, 0x4c}},
	}

	for _, item := range table {
		got := appendPercent(nil, item.pct)
		if !bytes.Equal(got, item.want) {
			t.Errorf("%v%%: got % 02x, expected % 02x", item.pct, got, item.want)
		}
	}
}

func TestRelGolden(t *testing.T) {
	table := []struct {
		um   int64
		want []byte
	}{
		{-8191, []byte{0x40, 0x01}},
		{8191, []byte{0x3f, 0x7f}},
		{4000, []byte{0x1f, 0x20}},
		{-4000, []byte{0x60, 0x60}},
	}

	for _, item := range table {
		got := appendRel(nil, item.um)
		if !bytes.Equal(got, item.want) {
			t.Errorf("%vum: got % 02x, expected % 02x", item.um, got, item.want)
		}
	}
}

func TestRelRoundTrip(t *testing.T) {
	for um := int64(-relLimitUM); um <= relLimitUM; um += 7 {
		back, err := decodeRel(appendRel(nil, um))
		if err != nil {
			t.Fatalf("%vum: %v", um, err)
		}
		if back != um {
			t.Fatalf("%vum: decoded as %vum", um, back)
		}
	}
}

func TestNumberRoundTrip(t *testing.T) {
	for _, um := range []int64{0, 1, 127, 128, 452840, 1 << 34} {
		got := decodeNumber(appendAbs(nil, um))
		if got != um {
			t.Errorf("%v: decoded as %v", um, got)
		}
	}
}

func TestPercentRoundTrip(t *testing.T) {
	for pct := 0.0; pct <= 100; pct += 0.5 {
		back := decodePercent(appendPercent(nil, pct))
		if diff := back - pct; diff > 0.01 || diff < -0.01 {
			t.Errorf("%v%%: decoded as %v%%", pct, back)
		}
	}
}

func TestColorRoundTrip(t *testing.T) {
	table := []color.RGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
		{R: 0x12, G: 0x34, B: 0x56, A: 255},
		{A: 255},
	}

	for _, c := range table {
		got := decodeColor(appendColor(nil, c))
		if got != c {
			t.Errorf("%v: decoded as %v", c, got)
		}
	}
}

func TestScrambleInverse(t *testing.T) {
	if got := scramble(0); got != 0x89 {
		t.Errorf("scramble(0): got %02x, expected 89", got)
	}

	for i := 0; i < 256; i++ {
		b := byte(i)
		if got := unscramble(scramble(b)); got != b {
			t.Errorf("%02x: scramble round trip gave %02x", b, got)
		}
	}
}

func TestChecksum(t *testing.T) {
	if got := checksum([]byte{0x01, 0xff, 0xff}); got != 0x01ff {
		t.Errorf("checksum: got %04x, expected 01ff", got)
	}
}
