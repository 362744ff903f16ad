//
// Copyright (c) 2026 The rdjob authors
//

package curve

import (
	"math"
)

const (
	// Subdivision stops at this depth no matter what the deviation
	// test says, so degenerate input always terminates.
	maxSubdivisionDepth = 16

	// Tolerance range covered by the quality dial, in mm.
	toleranceCoarse = 0.5
	toleranceFine   = 0.005
)

// Tolerance maps the user-facing quality dial (0..100) to a maximum
// chord deviation in mm. Higher quality means a smaller tolerance and
// therefore more, shorter segments.
func Tolerance(quality int) float64 {
	if quality < 0 {
		quality = 0
	}
	if quality > 100 {
		quality = 100
	}
	ratio := toleranceFine / toleranceCoarse
	return toleranceCoarse * math.Pow(ratio, float64(quality)/100)
}

// Flatten approximates seg with a polyline whose deviation from the
// curve stays within tol everywhere. The returned slice includes both
// the start and end points of the segment.
func Flatten(seg Segment, tol float64) []Point {
	pts := []Point{seg.Start()}
	return FlattenInto(pts, seg, tol)
}

// FlattenInto appends the interior and end points of seg to pts,
// assuming pts already ends at seg.Start(). This is the form used when
// chaining the segments of one path.
func FlattenInto(pts []Point, seg Segment, tol float64) []Point {
	if _, ok := seg.(Line); ok {
		return append(pts, seg.End())
	}
	return subdivide(pts, seg, 0, 1, tol, 0)
}

// subdivide splits [t0,t1] at its midpoint and accepts the chord once
// the midpoint sits within tol of it.
func subdivide(pts []Point, seg Segment, t0, t1, tol float64, depth int) []Point {
	a := seg.Eval(t0)
	b := seg.Eval(t1)
	tm := (t0 + t1) / 2
	m := seg.Eval(tm)

	if depth >= maxSubdivisionDepth || chordDistance(a, b, m) <= tol {
		return append(pts, b)
	}

	pts = subdivide(pts, seg, t0, tm, tol, depth+1)
	return subdivide(pts, seg, tm, t1, tol, depth+1)
}

// chordDistance is the perpendicular distance from m to the chord ab.
// For a degenerate chord it decays to the plain distance from a.
func chordDistance(a, b, m Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	len2 := dx*dx + dy*dy
	if len2 == 0 {
		return a.Distance(m)
	}
	// Cross product magnitude over chord length.
	return math.Abs(dx*(m.Y-a.Y)-dy*(m.X-a.X)) / math.Sqrt(len2)
}
