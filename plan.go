//
// Copyright (c) 2026 The rdjob authors
//

package rdjob

// Operation is one abstract device action. Operations are produced by
// Plan and consumed immediately by the encoder; they are not persisted.
type Operation interface {
	isOperation()
}

// MoveTo travels to P with the laser off.
type MoveTo struct {
	P Point
}

// CutTo burns a straight line to P.
type CutTo struct {
	P Point
}

// ArcTo burns a circular arc to P around Center. Clockwise follows the
// device's y-down orientation.
type ArcTo struct {
	P, Center Point
	Clockwise bool
}

// SetLayerParams activates a layer's power, speed and mode for the
// geometry that follows.
type SetLayerParams struct {
	Layer Layer
}

// RasterBurst is one engrave scan line: shade samples every Step mm
// starting at Start, moving in +X. Zero shades are skipped pixels.
type RasterBurst struct {
	Start  Point
	Shades []uint8
	Step   float64
}

func (MoveTo) isOperation()         {}
func (CutTo) isOperation()          {}
func (ArcTo) isOperation()          {}
func (SetLayerParams) isOperation() {}
func (RasterBurst) isOperation()    {}

// Odometer totals the burned and travel distances of a planned job.
// The trailer's work-interval record reports the cut distance.
type Odometer struct {
	CutMM    float64
	TravelMM float64
}

func sameParams(a, b *Layer) bool {
	return a.ID == b.ID &&
		a.MinPower == b.MinPower &&
		a.MaxPower == b.MaxPower &&
		a.Speed == b.Speed &&
		a.IsEngrave == b.IsEngrave
}

// Plan linearizes the job's layers, in order, into the operation
// sequence the encoder serializes. Parameter changes exactly bound the
// geometry they apply to, and no cut crosses a path boundary: disjoint
// paths are joined by pen-up moves only.
func Plan(job *Job) (ops []Operation, odo Odometer) {
	pos := Point{}
	var active *Layer

	for i := range job.Layers {
		layer := &job.Layers[i]
		if active == nil || !sameParams(active, layer) {
			ops = append(ops, SetLayerParams{Layer: *layer})
			active = layer
		}

		switch layer.Kind {
		case LayerVector:
			ops, pos, odo = planVector(ops, layer, pos, odo)
		case LayerRaster:
			ops, pos, odo = planRaster(ops, layer, pos, odo)
		}
	}

	return
}

func planVector(ops []Operation, layer *Layer, pos Point, odo Odometer) ([]Operation, Point, Odometer) {
	for _, path := range layer.Paths {
		start := path.Points[0]
		ops = append(ops, MoveTo{P: start})
		odo.TravelMM += pos.Distance(start)
		pos = start

		for _, p := range path.Points[1:] {
			ops = append(ops, CutTo{P: p})
			odo.CutMM += pos.Distance(p)
			pos = p
		}

		if path.Closed {
			ops = append(ops, CutTo{P: start})
			odo.CutMM += pos.Distance(start)
			pos = start
		}
	}

	return ops, pos, odo
}

func planRaster(ops []Operation, layer *Layer, pos Point, odo Odometer) ([]Operation, Point, Odometer) {
	bounds := layer.Mask.Bounds()
	width := bounds.Dx()

	for y := 0; y < bounds.Dy(); y++ {
		row := layer.Mask.Pix[y*layer.Mask.Stride : y*layer.Mask.Stride+width]

		first, last := -1, -1
		for x, v := range row {
			if v == 0 {
				continue
			}
			if first < 0 {
				first = x
			}
			last = x
		}
		if first < 0 {
			continue
		}

		shades := make([]uint8, last-first+1)
		for i := range shades {
			if row[first+i] != 0 {
				shades[i] = layer.Shade
			}
		}

		start := Point{
			X: layer.Origin.X + float64(first)*layer.StepMM,
			Y: layer.Origin.Y + float64(y)*layer.StepMM,
		}
		ops = append(ops, RasterBurst{Start: start, Shades: shades, Step: layer.StepMM})

		odo.TravelMM += pos.Distance(start)
		end := Point{X: start.X + float64(len(shades)-1)*layer.StepMM, Y: start.Y}
		odo.CutMM += end.X - start.X
		pos = end
	}

	return ops, pos, odo
}
