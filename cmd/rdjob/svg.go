//
// Copyright (c) 2026 The rdjob authors
//

package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/fablaser/rdjob"
	"github.com/fablaser/rdjob/curve"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// LoadSVG extracts the strokes of an SVG document as colored curve
// paths, scaled so the drawing spans widthMM millimeters.
func LoadSVG(filename string, widthMM float64) (strokes []rdjob.ColoredPath, err error) {
	reader, err := os.Open(filename)
	if err != nil {
		return
	}
	defer func() { reader.Close() }()

	icon, err := oksvg.ReadIconStream(reader)
	if err != nil {
		return
	}

	if icon.ViewBox.W <= 0 {
		err = fmt.Errorf("%s: Missing or empty view box", filename)
		return
	}
	scale := widthMM / icon.ViewBox.W

	for _, sp := range icon.SVGPaths {
		c := pathColor(&sp.PathStyle)
		strokes = append(strokes, extractStrokes(sp, c, scale)...)
	}

	if len(strokes) == 0 {
		err = fmt.Errorf("%s: No paths found", filename)
	}

	return
}

// pathColor picks the stroke color, falling back to the fill, then to
// black. Gradients collapse to black.
func pathColor(style *oksvg.PathStyle) color.RGBA {
	for _, pattern := range []interface{}{style.LinerColor, style.FillerColor} {
		c, ok := pattern.(color.Color)
		if !ok || c == nil {
			continue
		}
		r, g, b, a := c.RGBA()
		if a == 0 {
			continue
		}
		return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}
	}

	return color.RGBA{A: 255}
}

// extractStrokes walks one compiled path. Each MoveTo starts a fresh
// stroke; Close marks the stroke closed.
func extractStrokes(sp oksvg.SvgPath, c color.RGBA, scale float64) (strokes []rdjob.ColoredPath) {
	at := func(i int) curve.Point {
		p := sp.Mtx.TFixed(fixed.Point26_6{X: sp.Path[i], Y: sp.Path[i+1]})
		return curve.Point{X: fixedFloat(p.X) * scale, Y: fixedFloat(p.Y) * scale}
	}

	flush := func(segs []curve.Segment, closed bool) {
		if len(segs) > 0 {
			strokes = append(strokes, rdjob.ColoredPath{Segments: segs, Color: c, Closed: closed})
		}
	}

	var segs []curve.Segment
	var pos curve.Point
	for i := 0; i < len(sp.Path); {
		switch rasterx.PathCommand(sp.Path[i]) {
		case rasterx.PathMoveTo:
			flush(segs, false)
			segs = nil
			pos = at(i + 1)
			i += 3
		case rasterx.PathLineTo:
			p := at(i + 1)
			segs = append(segs, curve.Line{P0: pos, P1: p})
			pos = p
			i += 3
		case rasterx.PathQuadTo:
			ctrl, p := at(i+1), at(i+3)
			segs = append(segs, curve.Quad{P0: pos, P1: ctrl, P2: p})
			pos = p
			i += 5
		case rasterx.PathCubicTo:
			c1, c2, p := at(i+1), at(i+3), at(i+5)
			segs = append(segs, curve.Cubic{P0: pos, P1: c1, P2: c2, P3: p})
			pos = p
			i += 7
		default: // PathClose
			flush(segs, true)
			segs = nil
			i++
		}
	}
	flush(segs, false)

	return
}

func fixedFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
