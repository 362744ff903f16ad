//
// Copyright (c) 2026 The rdjob authors
//

package raster

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradientImage(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 255 / (w - 1))})
		}
	}
	return img
}

func halfBlackImage(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(255)
			if x < w/2 {
				v = 0
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestQuantizeValidation(t *testing.T) {
	img := gradientImage(8, 8)

	_, err := Quantize(img, Options{NumColors: 1, Scale: 1})
	assert.Error(t, err)

	_, err = Quantize(img, Options{NumColors: 257, Scale: 1})
	assert.Error(t, err)

	_, err = Quantize(img, Options{NumColors: 4, Scale: 0})
	assert.Error(t, err)
}

func TestBoundRange(t *testing.T) {
	assert.Equal(t, 1<<16, Bound(0))
	assert.LessOrEqual(t, Bound(100), 1<<22)
	assert.Greater(t, Bound(100), 1<<21)

	prev := Bound(0)
	for q := 10; q <= 100; q += 10 {
		cur := Bound(q)
		assert.Greater(t, cur, prev)
		prev = cur
	}

	assert.Equal(t, Bound(0), Bound(-3))
	assert.Equal(t, Bound(100), Bound(150))
}

func TestQuantizeShadeCount(t *testing.T) {
	img := gradientImage(64, 64)

	for _, n := range []int{2, 5, 16, 256} {
		shades, err := Quantize(img, Options{NumColors: n, Quality: 50, Scale: 1})
		require.NoError(t, err)

		assert.LessOrEqual(t, len(shades), n)
		assert.NotEmpty(t, shades)

		for i := 1; i < len(shades); i++ {
			assert.Less(t, shades[i].Value, shades[i-1].Value, "shades must run light to dark")
		}
	}
}

func TestQuantizePartition(t *testing.T) {
	img := gradientImage(32, 32)

	shades, err := Quantize(img, Options{NumColors: 8, Quality: 50, Scale: 1})
	require.NoError(t, err)

	// Every pixel lands in exactly one shade mask.
	size := shades[0].Mask.Bounds().Size()
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			hits := 0
			for _, s := range shades {
				if s.Mask.GrayAt(x, y).Y != 0 {
					hits++
				}
			}
			assert.Equal(t, 1, hits, "pixel (%d,%d)", x, y)
		}
	}
}

func TestQuantizeAutoScaleBound(t *testing.T) {
	img := gradientImage(4000, 3000)

	shades, err := Quantize(img, Options{NumColors: 4, Quality: 0, Scale: 1})
	require.NoError(t, err)
	require.NotEmpty(t, shades)

	size := shades[0].Mask.Bounds().Size()
	assert.LessOrEqual(t, size.X*size.Y, Bound(0))
	assert.Greater(t, size.X, 0)
	assert.Greater(t, size.Y, 0)
}

func TestQuantizeDeterminism(t *testing.T) {
	opt := Options{NumColors: 6, Quality: 70, Scale: 0.5}

	first, err := Quantize(gradientImage(100, 80), opt)
	require.NoError(t, err)
	second, err := Quantize(gradientImage(100, 80), opt)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Value, second[i].Value)
		assert.True(t, bytes.Equal(first[i].Mask.Pix, second[i].Mask.Pix), "shade %d", i)
	}
}

func TestQuantizeTwoLevels(t *testing.T) {
	shades, err := Quantize(halfBlackImage(16, 8), Options{NumColors: 2, Quality: 50, Scale: 1})
	require.NoError(t, err)

	require.Len(t, shades, 2)
	assert.Equal(t, uint8(255), shades[0].Value)
	assert.Equal(t, uint8(0), shades[1].Value)
}

func TestQuantizeSkipWhite(t *testing.T) {
	shades, err := Quantize(halfBlackImage(16, 8), Options{
		NumColors: 2, Quality: 50, Scale: 1, SkipWhite: true,
	})
	require.NoError(t, err)

	require.Len(t, shades, 1)
	assert.Equal(t, uint8(0), shades[0].Value)
}
