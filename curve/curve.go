//
// Copyright (c) 2026 The rdjob authors
//

// Package curve provides the curve primitives accepted at the input
// boundary and their flattening into polylines.
package curve

import (
	"math"
)

// Point is a position in millimeters.
type Point struct {
	X, Y float64
}

func (p Point) Distance(q Point) float64 {
	dx := q.X - p.X
	dy := q.Y - p.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Segment is one curve primitive. Eval must be defined on t in [0,1],
// with Eval(0) == Start() and Eval(1) == End().
type Segment interface {
	Start() Point
	End() Point
	Eval(t float64) Point
}

// Line is a straight segment.
type Line struct {
	P0, P1 Point
}

func (l Line) Start() Point { return l.P0 }
func (l Line) End() Point   { return l.P1 }

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Quad is a quadratic Bezier with one control point.
type Quad struct {
	P0, P1, P2 Point
}

func (q Quad) Start() Point { return q.P0 }
func (q Quad) End() Point   { return q.P2 }

func (q Quad) Eval(t float64) Point {
	mt := 1 - t
	a := mt * mt
	b := 2 * mt * t
	c := t * t
	return Point{
		X: a*q.P0.X + b*q.P1.X + c*q.P2.X,
		Y: a*q.P0.Y + b*q.P1.Y + c*q.P2.Y,
	}
}

// Cubic is a cubic Bezier with two control points.
type Cubic struct {
	P0, P1, P2, P3 Point
}

func (c Cubic) Start() Point { return c.P0 }
func (c Cubic) End() Point   { return c.P3 }

func (c Cubic) Eval(t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	d := 3 * mt * t * t
	e := t * t * t
	return Point{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

// Arc is a circular arc swept from StartAngle by SweepAngle (radians,
// positive is counter-clockwise) around Center.
type Arc struct {
	Center     Point
	Radius     float64
	StartAngle float64
	SweepAngle float64
}

func (a Arc) at(angle float64) Point {
	return Point{
		X: a.Center.X + a.Radius*math.Cos(angle),
		Y: a.Center.Y + a.Radius*math.Sin(angle),
	}
}

func (a Arc) Start() Point { return a.at(a.StartAngle) }
func (a Arc) End() Point   { return a.at(a.StartAngle + a.SweepAngle) }

func (a Arc) Eval(t float64) Point {
	return a.at(a.StartAngle + a.SweepAngle*t)
}
