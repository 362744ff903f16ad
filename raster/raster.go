//
// Copyright (c) 2026 The rdjob authors
//

// Package raster reduces decoded pixel grids to a bounded number of
// discrete shades, one mask per shade, sized for the engrave pipeline.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Shade is the binary mask of one quantized gray level. Mask pixels
// are 0xff where the shade is present.
type Shade struct {
	Value uint8
	Mask  *image.Gray
}

type Options struct {
	NumColors   int     // 2..256 target shades
	Quality     int     // 0..100, controls the pixel ceiling
	Scale       float64 // user pre-scale factor, > 0
	Performance bool    // halve the ceiling, cheaper resampling

	// SkipWhite drops near-white shades as background, the behavior
	// of the original engraving tool. Off by default so callers that
	// want every level keep it.
	SkipWhite bool
}

// Background threshold: shades at least this bright are dropped when
// SkipWhite is set.
const whiteThreshold = 250

const (
	boundFloor   = 1 << 16 // pixels at quality 0
	boundCeiling = 1 << 22 // pixels at quality 100
)

// Bound is the maximum post-scale pixel count at a given quality. It
// depends on quality alone, never on the source image, which is what
// keeps arbitrarily large inputs from exhausting memory.
func Bound(quality int) int {
	if quality < 0 {
		quality = 0
	}
	if quality > 100 {
		quality = 100
	}
	return boundFloor + (boundCeiling-boundFloor)/100*quality
}

// Quantize reduces img to at most NumColors gray levels and returns
// one mask per level that has any pixels, ordered light to dark.
// Scaling (user factor, then the quality ceiling) happens before
// quantization so shade boundaries are stable.
func Quantize(img image.Image, opt Options) (shades []Shade, err error) {
	if opt.NumColors < 2 || opt.NumColors > 256 {
		return nil, fmt.Errorf("quantize: num_colors %d out of range 2..256", opt.NumColors)
	}
	if opt.Scale <= 0 {
		return nil, fmt.Errorf("quantize: scale %g must be positive", opt.Scale)
	}

	flat := flattenAlpha(img)

	size := flat.Bounds().Size()
	w, h := size.X, size.Y
	if w == 0 || h == 0 {
		return
	}

	if opt.Scale != 1 {
		w = max(1, int(float64(w)*opt.Scale))
		h = max(1, int(float64(h)*opt.Scale))
	}

	bound := Bound(opt.Quality)
	if opt.Performance {
		bound /= 2
	}
	if w*h > bound {
		factor := math.Sqrt(float64(bound) / float64(w*h))
		w = max(1, int(float64(w)*factor))
		h = max(1, int(float64(h)*factor))
	}

	if w != size.X || h != size.Y {
		flat = resize(flat, w, h, opt.Performance)
	}

	gray := toGray(flat)

	return bucket(gray, opt)
}

// flattenAlpha composites img onto a white background so transparent
// areas read as white, not black.
func flattenAlpha(img image.Image) (flat *image.RGBA) {
	bounds := img.Bounds()
	flat = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(flat, flat.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, bounds.Min, draw.Over)
	return
}

func resize(src *image.RGBA, w, h int, performance bool) (dst *image.RGBA) {
	dst = image.NewRGBA(image.Rect(0, 0, w, h))

	var scaler draw.Scaler = draw.CatmullRom
	if performance {
		scaler = draw.ApproxBiLinear
	}

	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return
}

func toGray(src *image.RGBA) (gray *image.Gray) {
	gray = image.NewGray(src.Bounds())
	draw.Draw(gray, gray.Bounds(), src, src.Bounds().Min, draw.Src)
	return
}

// bucket assigns every pixel to one of NumColors uniform gray ranges
// and builds the per-shade masks. The representative value of bucket b
// is b*255/(N-1), so the lightest bucket reads as white and the
// darkest as black.
func bucket(gray *image.Gray, opt Options) (shades []Shade, err error) {
	n := opt.NumColors
	bounds := gray.Bounds()
	size := bounds.Size()

	masks := make([]*image.Gray, n)
	for y := 0; y < size.Y; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+size.X]
		for x, g := range row {
			b := int(g) * n / 256
			m := masks[b]
			if m == nil {
				m = image.NewGray(bounds)
				masks[b] = m
			}
			m.Pix[y*m.Stride+x] = 0xff
		}
	}

	// Light to dark: high bucket values are light.
	for b := n - 1; b >= 0; b-- {
		if masks[b] == nil {
			continue
		}
		value := uint8(b * 255 / (n - 1))
		if opt.SkipWhite && value >= whiteThreshold {
			continue
		}
		shades = append(shades, Shade{Value: value, Mask: masks[b]})
	}

	return
}
