//
// Copyright (c) 2026 The rdjob authors
//

package rd

import (
	"image/color"
	"io"
	"math"

	"github.com/fablaser/rdjob"
)

// Chord tolerance for lowering arcs, in mm. The Ruida command set has
// no documented arc opcode, so arcs become short straight cuts.
const arcChordMM = 0.01

// Encoder serializes a job for one controller revision. Encoding is a
// pure function of the job and the encoder's fields: the same inputs
// always produce identical bytes.
type Encoder struct {
	Revision Revision

	// Bed limits in mm; coordinates beyond them are an encoding
	// overflow. Zero means only the representable range applies.
	BedWidthMM  float64
	BedHeightMM float64

	// Checksum prefixes the stream with the 16-bit byte sum the UDP
	// upload path verifies.
	Checksum bool

	// Unscrambled skips byte scrambling. Machines reject such files;
	// useful only for debugging.
	Unscrambled bool
}

func NewEncoder(rev Revision) *Encoder {
	return &Encoder{Revision: rev}
}

// Encode writes the full .rd stream for job. Nothing reaches w unless
// the whole job encodes cleanly.
func (e *Encoder) Encode(w io.Writer, job *rdjob.Job) (err error) {
	data, err := e.EncodeBytes(job)
	if err != nil {
		return
	}

	_, err = w.Write(data)
	return
}

func (e *Encoder) EncodeBytes(job *rdjob.Job) (data []byte, err error) {
	if len(job.Layers) == 0 {
		return nil, rdjob.ErrEmptyJob{}
	}

	st := &stream{
		rev:    e.Revision,
		limitX: e.Revision.MaxCoordMM,
		limitY: e.Revision.MaxCoordMM,
	}
	if e.BedWidthMM > 0 {
		st.limitX = e.BedWidthMM
	}
	if e.BedHeightMM > 0 {
		st.limitY = e.BedHeightMM
	}

	ops, odo := rdjob.Plan(job)

	st.header(job)
	for _, op := range ops {
		switch op := op.(type) {
		case rdjob.SetLayerParams:
			st.layerProlog(&op.Layer)
		case rdjob.MoveTo:
			st.vertexMM(false, op.P)
		case rdjob.CutTo:
			st.vertexMM(true, op.P)
		case rdjob.ArcTo:
			st.arc(op.P, op.Center, op.Clockwise)
		case rdjob.RasterBurst:
			st.burst(op)
		}
	}
	st.trailer(odo)

	if st.err != nil {
		return nil, st.err
	}

	data = st.buf
	if !e.Unscrambled {
		data = scrambleBytes(data)
	}
	if e.Checksum {
		sum := checksum(data)
		data = append([]byte{byte(sum >> 8), byte(sum)}, data...)
	}

	return
}

// stream accumulates the unscrambled command body and the pen state
// needed for relative encoding.
type stream struct {
	rev    Revision
	buf    []byte
	err    error
	limitX float64
	limitY float64

	lastX, lastY int64 // device units
	hasLast      bool
	relCount     int
}

func (st *stream) raw(bytes ...byte) {
	st.buf = append(st.buf, bytes...)
}

func (st *stream) abs(um int64) {
	st.buf = appendAbs(st.buf, um)
}

func (st *stream) rel(um int64) {
	st.buf = appendRel(st.buf, um)
}

func (st *stream) percent(pct float64) {
	st.buf = appendPercent(st.buf, pct)
}

func (st *stream) color(c color.RGBA) {
	st.buf = appendColor(st.buf, c)
}

func (st *stream) speed(mmPerSec float64) {
	st.buf = appendAbs(st.buf, umFromMM(mmPerSec))
}

// coord validates one coordinate and converts it to device units.
func (st *stream) coord(mm float64, limit float64) int64 {
	if st.err == nil && (mm < 0 || mm > limit) {
		st.err = rdjob.ErrEncodingOverflow{Coordinate: mm, Limit: limit}
	}
	return umFromMM(mm)
}

func (st *stream) header(job *rdjob.Job) {
	xmin := st.coord(job.Min.X, st.limitX)
	ymin := st.coord(job.Min.Y, st.limitY)
	xmax := st.coord(job.Max.X, st.limitX)
	ymax := st.coord(job.Max.Y, st.limitY)

	st.raw(opLight, 0x12)             // red light on, upload follows
	st.raw(opMagic, opStart, 0x02, 0x00)
	st.raw(opLight, 0x00)

	st.raw(opBounds, 0x06) // feeding
	st.abs(0)
	st.abs(0)

	for _, rec := range [...][2]byte{{0x03, 0x07}, {0x50, 0x51}} {
		st.raw(opBounds, rec[0])
		st.abs(xmin)
		st.abs(ymin)
		st.raw(opBounds, rec[1])
		st.abs(xmax)
		st.abs(ymax)
	}

	st.raw(opBounds, 0x04, 0x00, 0x01, 0x00, 0x01)
	st.abs(0)
	st.abs(0)
	st.raw(opBounds, 0x05, 0x00)

	for i := range job.Layers {
		st.layerHeader(&job.Layers[i])
	}

	st.raw(opLayer, 0x22, byte(len(job.Layers)-1))

	for _, pen := range [...]byte{0x00, 0x01} {
		st.raw(opBounds, 0x54, pen) // pen draw Y
		st.abs(0)
	}
	for _, laser := range [...]byte{0x00, 0x01} {
		st.raw(opBounds, 0x55, laser) // laser2 Y offset
		st.abs(0)
	}

	st.raw(opStart, 0x03) // laser2 offset
	st.abs(0)
	st.abs(0)
	st.raw(opStart, 0x00, 0x00)
	st.raw(opStart, 0x01, 0x00)

	st.raw(opSettings, 0x00, 0x00)
	st.raw(opSettings, 0x01, 0x00)
	st.raw(opSettings, 0x02, 0x05, 0x2a, 0x39, 0x1c, 0x41, 0x04, 0x6a, 0x15, 0x08, 0x20)
	st.raw(opSettings, 0x03)
	st.abs(xmin)
	st.abs(ymin)
	st.raw(opSettings, 0x04)
	st.abs(xmax)
	st.abs(ymax)
	st.raw(opSettings, 0x06)
	st.abs(xmin)
	st.abs(ymin)
	st.raw(opSettings, 0x07, 0x00)
	st.raw(opSettings, 0x05, 0x00, 0x01, 0x00, 0x01)
	st.abs(xmax)
	st.abs(ymax)

	st.raw(0xea, 0x00)
	st.raw(opBounds, 0x60, 0x00)
	st.raw(opBounds, 0x13)
	st.abs(xmin)
	st.abs(ymin)
	st.raw(opBounds, 0x17)
	st.abs(xmax)
	st.abs(ymax)
	st.raw(opBounds, 0x23)
	st.abs(xmin)
	st.abs(ymin)
	st.raw(opBounds, 0x24, 0x00)
	st.raw(opBounds, 0x08, 0x00, 0x01, 0x00, 0x01)
	st.abs(xmax)
	st.abs(ymax)
}

// layerHeader advertises one layer's speed, per-laser powers, preview
// color and extents.
func (st *stream) layerHeader(layer *rdjob.Layer) {
	ln := byte(layer.ID)

	st.raw(opSpeed, 0x04, ln)
	st.speed(layer.Speed)

	// Laser 1 and 2 records are universal; 3 and 4 only exist on the
	// four-laser revisions.
	pairs := [...][2]byte{{0x31, 0x32}, {0x41, 0x42}, {0x35, 0x36}, {0x37, 0x38}}
	for i := 0; i < st.rev.Lasers; i++ {
		st.raw(opLaser, pairs[i][0], ln)
		st.percent(layer.MinPower)
		st.raw(opLaser, pairs[i][1], ln)
		st.percent(layer.MaxPower)
	}

	st.raw(opLayer, 0x06, ln)
	st.color(layer.Color)
	st.raw(opLayer, 0x41, ln, 0x00)

	xmin := st.coord(layer.Min.X, st.limitX)
	ymin := st.coord(layer.Min.Y, st.limitY)
	xmax := st.coord(layer.Max.X, st.limitX)
	ymax := st.coord(layer.Max.Y, st.limitY)
	for _, rec := range [...]byte{0x52, 0x61} {
		st.raw(opBounds, rec, ln)
		st.abs(xmin)
		st.abs(ymin)
		st.raw(opBounds, rec+1, ln)
		st.abs(xmax)
		st.abs(ymax)
	}
}

// layerProlog switches the machine to a layer's parameters in the
// command body. The following geometry starts with an absolute vertex.
func (st *stream) layerProlog(layer *rdjob.Layer) {
	ln := byte(layer.ID)

	st.raw(opLayer, 0x01, 0x00)
	st.raw(opLayer, 0x02, ln)
	st.raw(opLayer, 0x01, 0x30)
	st.raw(opLayer, 0x01, 0x10)
	st.raw(opLayer, 0x01, 0x13) // air assist on

	st.raw(opSpeed, 0x02)
	st.speed(layer.Speed)

	for _, delay := range [...]byte{0x15, 0x16} {
		st.raw(opLaser, delay)
		st.abs(0)
	}

	for _, rec := range [...]byte{0x01, 0x21, 0x05, 0x07} {
		st.raw(opLaser, rec)
		st.percent(layer.MinPower)
		st.raw(opLaser, rec+1)
		st.percent(layer.MaxPower)
	}

	st.raw(opLayer, 0x03, 0x01)
	st.raw(opLayer, 0x10, 0x00)

	st.hasLast = false
	st.relCount = 0
}

func (st *stream) vertexMM(cut bool, p rdjob.Point) {
	x := st.coord(p.X, st.limitX)
	y := st.coord(p.Y, st.limitY)
	st.vertex(cut, x, y)
}

// vertex emits one move or cut, relative when the offset fits and the
// forced-absolute interval has not elapsed. The interval caps the
// rounding error relative ops accumulate.
func (st *stream) vertex(cut bool, x, y int64) {
	dx := x - st.lastX
	dy := y - st.lastY

	relOK := st.hasLast &&
		st.relCount < st.rev.ForceAbsEvery &&
		absInt(dx) <= st.rev.MaxRelUM &&
		absInt(dy) <= st.rev.MaxRelUM

	switch {
	case !relOK:
		if cut {
			st.raw(opCutAbs)
		} else {
			st.raw(opMoveAbs)
		}
		st.abs(x)
		st.abs(y)
		st.relCount = 0

	case dy == 0:
		if cut {
			st.raw(opCutHoriz)
		} else {
			st.raw(opMoveHoriz)
		}
		st.rel(dx)
		st.relCount++

	case dx == 0:
		if cut {
			st.raw(opCutVert)
		} else {
			st.raw(opMoveVert)
		}
		st.rel(dy)
		st.relCount++

	default:
		if cut {
			st.raw(opCutRel)
		} else {
			st.raw(opMoveRel)
		}
		st.rel(dx)
		st.rel(dy)
		st.relCount++
	}

	st.lastX, st.lastY = x, y
	st.hasLast = true
}

// arc lowers a circular arc to chord cuts within arcChordMM.
func (st *stream) arc(end, center rdjob.Point, clockwise bool) {
	if !st.hasLast {
		st.vertexMM(true, end)
		return
	}

	cur := rdjob.Point{X: float64(st.lastX) / 1000, Y: float64(st.lastY) / 1000}
	radius := cur.Distance(center)
	if radius <= arcChordMM {
		st.vertexMM(true, end)
		return
	}

	a0 := math.Atan2(cur.Y-center.Y, cur.X-center.X)
	a1 := math.Atan2(end.Y-center.Y, end.X-center.X)
	sweep := a1 - a0
	if clockwise {
		for sweep >= 0 {
			sweep -= 2 * math.Pi
		}
	} else {
		for sweep <= 0 {
			sweep += 2 * math.Pi
		}
	}

	step := 2 * math.Acos(math.Max(0, 1-arcChordMM/radius))
	n := int(math.Ceil(math.Abs(sweep) / step))
	if n < 1 {
		n = 1
	}

	for i := 1; i < n; i++ {
		a := a0 + sweep*float64(i)/float64(n)
		st.vertexMM(true, rdjob.Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		})
	}
	st.vertexMM(true, end)
}

// burst lowers one raster scan line: each run of lit shades becomes a
// pen-up move to the run start and a cut across it. A pixel covers
// [x, x+step), so a run of k pixels cuts k*step of material.
func (st *stream) burst(b rdjob.RasterBurst) {
	run := -1
	for i := 0; i <= len(b.Shades); i++ {
		lit := i < len(b.Shades) && b.Shades[i] != 0
		if lit && run < 0 {
			run = i
		}
		if !lit && run >= 0 {
			st.vertexMM(false, rdjob.Point{X: b.Start.X + float64(run)*b.Step, Y: b.Start.Y})
			st.vertexMM(true, rdjob.Point{X: b.Start.X + float64(i)*b.Step, Y: b.Start.Y})
			run = -1
		}
	}
}

func (st *stream) trailer(odo rdjob.Odometer) {
	st.raw(opFinish)
	st.raw(opBounds, 0x00)

	// Work interval: cut distance, twice, the way RDWorks writes it.
	// Raw value in mm; readers divide by 1000 and report meters.
	cut := int64(math.RoundToEven(odo.CutMM))
	st.raw(opInterval, 0x01, 0x06, 0x20)
	st.buf = appendNumber(st.buf, cut, absGroups)
	st.buf = appendNumber(st.buf, cut, absGroups)

	st.raw(opEOF)
}

func absInt(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
