//
// Copyright (c) 2026 The rdjob authors
//

package rdjob

import (
	"image"
	"image/color"

	"github.com/fablaser/rdjob/curve"
)

// ColoredPath is one stroke at the input boundary: contiguous curve
// segments sharing a color identity. Format adapters (SVG, DXF, ...)
// produce these; the core never sees the source format.
type ColoredPath struct {
	Segments []curve.Segment
	Color    color.RGBA
	Closed   bool
}

// RasterInput is a decoded pixel grid placed in device space. WidthMM
// fixes the physical width; the height follows from the aspect ratio.
// SkipWhite drops near-white shades as background, which is what an
// engraving front end usually wants for photographs.
type RasterInput struct {
	Image     image.Image
	Origin    Point
	WidthMM   float64
	SkipWhite bool
}

// Input is the normalized geometry set accepted by Build. Vector and
// raster parts may both be present in one job.
type Input struct {
	Vector []ColoredPath
	Raster *RasterInput
}
