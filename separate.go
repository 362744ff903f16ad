//
// Copyright (c) 2026 The rdjob authors
//

package rdjob

import (
	"image/color"
	"sort"

	"github.com/fablaser/rdjob/raster"
)

// Luminance is the standard grayscale weight of a color, 0 (black) to
// 255 (white).
func Luminance(c color.RGBA) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// separateVector groups flattened strokes into one layer per distinct
// color. Layers are ordered light to dark so lighter regions are
// burned before darker ones; ties keep first-appearance order.
func separateVector(paths []Path, colors []color.RGBA) (layers []Layer) {
	if len(paths) == 0 {
		return
	}

	type bucket struct {
		color color.RGBA
		first int
		paths []Path
	}

	index := map[color.RGBA]int{}
	var buckets []*bucket
	for i, path := range paths {
		c := colors[i]
		n, ok := index[c]
		if !ok {
			n = len(buckets)
			index[c] = n
			buckets = append(buckets, &bucket{color: c, first: i})
		}
		buckets[n].paths = append(buckets[n].paths, path)
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		li := Luminance(buckets[i].color)
		lj := Luminance(buckets[j].color)
		if li != lj {
			return li > lj // lighter first
		}
		return buckets[i].first < buckets[j].first
	})

	for _, b := range buckets {
		layers = append(layers, Layer{
			Kind:  LayerVector,
			Color: b.color,
			Paths: b.paths,
		})
	}

	return
}

// separateRaster turns quantized shade masks into raster layers, light
// to dark. Quantize already orders shades and skips empty ones.
func separateRaster(shades []raster.Shade, origin Point, stepMM float64) (layers []Layer) {
	for _, s := range shades {
		gray := s.Value
		layers = append(layers, Layer{
			Kind:      LayerRaster,
			Color:     color.RGBA{R: gray, G: gray, B: gray, A: 255},
			IsEngrave: true,
			Shade:     gray,
			Mask:      s.Mask,
			Origin:    origin,
			StepMM:    stepMM,
		})
	}

	return
}
