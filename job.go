//
// Copyright (c) 2026 The rdjob authors
//

// Package rdjob turns normalized vector and raster input into a laser
// job: an ordered set of layers with power and speed parameters, ready
// for serialization by the rd package.
package rdjob

import (
	"image"
	"image/color"

	"github.com/fablaser/rdjob/curve"
)

// Point is a position in millimeters, device origin at the job's
// top-left corner.
type Point = curve.Point

// Path is one contiguous stroke. A valid Path has at least two points;
// a closed Path implies a final segment back to its first point without
// storing the duplicate.
type Path struct {
	Points []Point
	Closed bool
}

type LayerKind int

const (
	LayerVector = LayerKind(iota)
	LayerRaster
)

// Layer groups geometry sharing one color identity and one set of
// power/speed parameters.
type Layer struct {
	ID    int
	Kind  LayerKind
	Color color.RGBA

	MinPower  float64 // percent, 0..100
	MaxPower  float64 // percent, 0..100
	Speed     float64 // mm/s
	IsEngrave bool

	// Vector layers only.
	Paths []Path

	// Raster layers only: the pixels of one quantized shade.
	Shade  uint8       // gray value this layer represents
	Mask   *image.Gray // nonzero where the shade is present
	Origin Point       // device position of pixel (0,0)
	StepMM float64     // mm per pixel

	// Extents in device space.
	Min, Max Point
}

// Job is the ordered set of layers produced by one conversion run.
// It is immutable once handed to the encoder and owns its layers.
type Job struct {
	Layers []Layer

	// Bounding box across all layers.
	Min, Max Point

	// Non-fatal conditions encountered while building, such as
	// degenerate paths that were dropped.
	Warnings []string
}

func (l *Layer) computeBounds() {
	switch l.Kind {
	case LayerVector:
		first := true
		for _, path := range l.Paths {
			for _, p := range path.Points {
				if first {
					l.Min, l.Max = p, p
					first = false
					continue
				}
				l.Min = Point{X: min(l.Min.X, p.X), Y: min(l.Min.Y, p.Y)}
				l.Max = Point{X: max(l.Max.X, p.X), Y: max(l.Max.Y, p.Y)}
			}
		}
	case LayerRaster:
		size := l.Mask.Bounds().Size()
		l.Min = l.Origin
		l.Max = Point{
			X: l.Origin.X + float64(size.X-1)*l.StepMM,
			Y: l.Origin.Y + float64(size.Y-1)*l.StepMM,
		}
	}
}

func (job *Job) computeBounds() {
	for i := range job.Layers {
		l := &job.Layers[i]
		l.computeBounds()
		if i == 0 {
			job.Min, job.Max = l.Min, l.Max
			continue
		}
		job.Min = Point{X: min(job.Min.X, l.Min.X), Y: min(job.Min.Y, l.Min.Y)}
		job.Max = Point{X: max(job.Max.X, l.Max.X), Y: max(job.Max.Y, l.Max.Y)}
	}
}
