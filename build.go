//
// Copyright (c) 2026 The rdjob authors
//

package rdjob

import (
	"image/color"

	"github.com/fablaser/rdjob/curve"
	"github.com/fablaser/rdjob/raster"
)

// Points closer than this collapse into one during flattening.
const coincidentMM = 1e-6

// Build runs the conversion pipeline: validate settings, flatten
// curves, quantize raster input, separate layers, assign powers. The
// returned Job is complete and ready for encoding; fatal conditions
// return an error and no Job.
func Build(input Input, settings Settings) (job *Job, err error) {
	err = settings.Validate()
	if err != nil {
		return
	}

	job = &Job{}

	var layers []Layer
	if input.Raster != nil {
		var rl []Layer
		rl, err = buildRasterLayers(input.Raster, settings)
		if err != nil {
			return nil, err
		}
		layers = append(layers, rl...)
	}

	if len(input.Vector) > 0 {
		var vl []Layer
		vl, err = buildVectorLayers(job, input.Vector, settings)
		if err != nil {
			return nil, err
		}
		layers = append(layers, vl...)
	}

	if len(layers) == 0 {
		return nil, ErrEmptyJob{}
	}

	for i := range layers {
		layers[i].ID = i
	}

	assignPowers(layers, settings)

	job.Layers = layers
	job.computeBounds()

	return
}

// buildVectorLayers flattens every stroke and groups the survivors by
// color. Strokes that collapse below two distinct points are dropped
// with a warning; a nil segment is fatal.
func buildVectorLayers(job *Job, strokes []ColoredPath, settings Settings) (layers []Layer, err error) {
	tol := curve.Tolerance(settings.Quality)

	var paths []Path
	var colors []color.RGBA
	for i, stroke := range strokes {
		var path Path
		path, err = flattenStroke(i, stroke, tol)
		if err != nil {
			return nil, err
		}
		if len(path.Points) < 2 {
			job.Warnings = append(job.Warnings, ErrDegenerateGeometry{PathIndex: i}.Error())
			continue
		}
		paths = append(paths, path)
		colors = append(colors, stroke.Color)
	}

	layers = separateVector(paths, colors)
	return
}

func flattenStroke(index int, stroke ColoredPath, tol float64) (path Path, err error) {
	path.Closed = stroke.Closed

	var pts []Point
	for _, seg := range stroke.Segments {
		if seg == nil {
			return Path{}, ErrUnsupportedCurve{PathIndex: index, Kind: "nil segment"}
		}
		if len(pts) == 0 {
			pts = append(pts, seg.Start())
		} else if pts[len(pts)-1].Distance(seg.Start()) > coincidentMM {
			// Gap between segments: bridge with a pen-down line,
			// matching how discontinuous input strokes behave.
			pts = append(pts, seg.Start())
		}
		pts = curve.FlattenInto(pts, seg, tol)
	}

	path.Points = dedupe(pts)

	// A closed path that stores its first point again at the end keeps
	// the closure implicit instead.
	if n := len(path.Points); path.Closed && n > 2 &&
		path.Points[0].Distance(path.Points[n-1]) <= coincidentMM {
		path.Points = path.Points[:n-1]
	}

	return
}

func dedupe(pts []Point) (out []Point) {
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1].Distance(p) <= coincidentMM {
			continue
		}
		out = append(out, p)
	}
	return
}

// buildRasterLayers quantizes the pixel grid and places one layer per
// surviving shade. The mm-per-pixel step is derived from the physical
// width after auto-scaling.
func buildRasterLayers(in *RasterInput, settings Settings) (layers []Layer, err error) {
	shades, err := raster.Quantize(in.Image, raster.Options{
		NumColors:   settings.NumColors,
		Quality:     settings.Quality,
		Scale:       settings.ImageScale,
		Performance: settings.Mode == ModePerformance,
		SkipWhite:   in.SkipWhite,
	})
	if err != nil {
		return
	}
	if len(shades) == 0 {
		return
	}

	width := shades[0].Mask.Bounds().Dx()
	step := in.WidthMM / float64(width)

	layers = separateRaster(shades, in.Origin, step)
	return
}
