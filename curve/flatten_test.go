//
// Copyright (c) 2026 The rdjob authors
//

package curve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToleranceRange(t *testing.T) {
	assert.InDelta(t, 0.5, Tolerance(0), 1e-12)
	assert.InDelta(t, 0.005, Tolerance(100), 1e-12)

	prev := Tolerance(0)
	for q := 1; q <= 100; q++ {
		cur := Tolerance(q)
		assert.Less(t, cur, prev, "quality %d", q)
		prev = cur
	}

	assert.Equal(t, Tolerance(0), Tolerance(-5))
	assert.Equal(t, Tolerance(100), Tolerance(200))
}

func TestFlattenLine(t *testing.T) {
	pts := Flatten(Line{P0: Point{X: 1, Y: 2}, P1: Point{X: 5, Y: 9}}, Tolerance(50))

	require.Len(t, pts, 2)
	assert.Equal(t, Point{X: 1, Y: 2}, pts[0])
	assert.Equal(t, Point{X: 5, Y: 9}, pts[1])
}

// distanceToPolyline is the distance from p to the nearest point on the
// polyline.
func distanceToPolyline(p Point, pts []Point) float64 {
	best := math.Inf(1)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		dx, dy := b.X-a.X, b.Y-a.Y
		len2 := dx*dx + dy*dy
		t := 0.0
		if len2 > 0 {
			t = ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / len2
			t = math.Max(0, math.Min(1, t))
		}
		d := p.Distance(a.Lerp(b, t))
		if d < best {
			best = d
		}
	}
	return best
}

func TestFlattenCubicDeviation(t *testing.T) {
	c := Cubic{
		P0: Point{X: 0, Y: 0},
		P1: Point{X: 10, Y: 20},
		P2: Point{X: 30, Y: -10},
		P3: Point{X: 40, Y: 5},
	}
	tol := Tolerance(80)

	pts := Flatten(c, tol)
	require.GreaterOrEqual(t, len(pts), 2)
	assert.Equal(t, c.Start(), pts[0])
	assert.Equal(t, c.End(), pts[len(pts)-1])

	for i := 0; i <= 1000; i++ {
		p := c.Eval(float64(i) / 1000)
		d := distanceToPolyline(p, pts)
		assert.LessOrEqual(t, d, 2*tol, "t=%v", float64(i)/1000)
	}
}

func TestFlattenQualityDensity(t *testing.T) {
	q := Quad{
		P0: Point{X: 0, Y: 0},
		P1: Point{X: 25, Y: 50},
		P2: Point{X: 50, Y: 0},
	}

	coarse := Flatten(q, Tolerance(10))
	fine := Flatten(q, Tolerance(100))

	assert.Greater(t, len(fine), len(coarse))
}

func TestFlattenArc(t *testing.T) {
	a := Arc{Center: Point{X: 0, Y: 0}, Radius: 10, StartAngle: 0, SweepAngle: math.Pi / 2}
	tol := Tolerance(50)

	pts := Flatten(a, tol)
	require.GreaterOrEqual(t, len(pts), 3)

	for i := 1; i < len(pts); i++ {
		mid := pts[i-1].Lerp(pts[i], 0.5)
		sag := a.Radius - mid.Distance(a.Center)
		assert.GreaterOrEqual(t, sag, -1e-9, "chord %d", i)
		assert.LessOrEqual(t, sag, 2*tol, "chord %d", i)
	}
}

func TestFlattenDegenerate(t *testing.T) {
	p := Point{X: 3, Y: 3}
	c := Cubic{P0: p, P1: p, P2: p, P3: p}

	pts := Flatten(c, Tolerance(100))

	require.Len(t, pts, 2)
	assert.Equal(t, p, pts[0])
	assert.Equal(t, p, pts[1])
}
