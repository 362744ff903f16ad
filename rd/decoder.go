//
// Copyright (c) 2026 The rdjob authors
//

package rd

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/fablaser/rdjob"
)

// Command is one decoded record: its offset in the unscrambled stream,
// a protocol name and a human-readable parameter summary.
type Command struct {
	Offset int
	Name   string
	Params string
}

// Decoded is the result of taking an .rd stream apart again. Job holds
// the reconstructed vector layers; raster content decodes as the
// scan-line cuts it was lowered to.
type Decoded struct {
	Commands []Command
	Job      *rdjob.Job
}

// Decode unscrambles and parses a complete .rd stream.
func Decode(data []byte) (*Decoded, error) {
	return DecodeUnscrambled(unscrambleBytes(data))
}

// DecodeUnscrambled parses a stream that is already unscrambled.
func DecodeUnscrambled(data []byte) (dec *Decoded, err error) {
	d := &decoder{
		buf:    data,
		out:    &Decoded{},
		layers: map[int]*decodedLayer{},
	}

	err = d.run()
	if err != nil {
		return
	}

	d.out.Job = d.job()
	dec = d.out
	return
}

// StripChecksum verifies and removes the 16-bit byte-sum prefix used
// by the upload framing.
func StripChecksum(data []byte) (body []byte, err error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("rd: stream too short for checksum framing")
	}
	want := uint16(data[0])<<8 | uint16(data[1])
	body = data[2:]
	if got := checksum(body); got != want {
		return nil, fmt.Errorf("rd: checksum mismatch: stream says %04x, body sums to %04x", want, got)
	}
	return
}

type decodedLayer struct {
	n        int
	speed    float64
	minPower float64
	maxPower float64
	color    color.RGBA
	min, max rdjob.Point
}

type decodedPath struct {
	layer  int
	points []rdjob.Point
}

type decoder struct {
	buf []byte
	pos int
	out *Decoded

	layers map[int]*decodedLayer
	order  []int
	prio   int
	paths  []decodedPath
}

type entry struct {
	name string
	size int
	act  func(d *decoder, args []byte) string
	sub  map[byte]entry
}

func (d *decoder) run() error {
	for d.pos < len(d.buf) {
		start := d.pos
		op := d.buf[d.pos]
		e, ok := decodeTable[op]
		if !ok {
			return fmt.Errorf("rd: unknown opcode %02x at offset %d", op, start)
		}
		d.pos++

		if e.sub != nil {
			if d.pos >= len(d.buf) {
				return fmt.Errorf("rd: truncated %02x record at offset %d", op, start)
			}
			sub := d.buf[d.pos]
			se, ok := e.sub[sub]
			if !ok {
				return fmt.Errorf("rd: unknown record %02x %02x at offset %d", op, sub, start)
			}
			d.pos++
			e = se
		}

		if d.pos+e.size > len(d.buf) {
			return fmt.Errorf("rd: truncated %s record at offset %d", e.name, start)
		}
		args := d.buf[d.pos : d.pos+e.size]
		d.pos += e.size

		params := ""
		if e.act != nil {
			params = e.act(d, args)
		} else if len(args) > 0 {
			params = fmt.Sprintf("% 02x", args)
		}
		d.out.Commands = append(d.out.Commands, Command{Offset: start, Name: e.name, Params: params})
	}

	return nil
}

func (d *decoder) layer(n int) *decodedLayer {
	l, ok := d.layers[n]
	if !ok {
		l = &decodedLayer{n: n}
		d.layers[n] = l
		d.order = append(d.order, n)
	}
	return l
}

func (d *decoder) position() rdjob.Point {
	if len(d.paths) == 0 {
		return rdjob.Point{}
	}
	pts := d.paths[len(d.paths)-1].points
	return pts[len(pts)-1]
}

func (d *decoder) moveTo(p rdjob.Point) {
	d.paths = append(d.paths, decodedPath{layer: d.prio, points: []rdjob.Point{p}})
}

func (d *decoder) cutTo(p rdjob.Point) {
	if len(d.paths) == 0 {
		d.moveTo(rdjob.Point{})
	}
	last := len(d.paths) - 1
	d.paths[last].points = append(d.paths[last].points, p)
}

// job rebuilds the layer set from the header records and the geometry.
// Geometry whose layer never appeared in a header still surfaces, with
// zero parameters.
func (d *decoder) job() *rdjob.Job {
	for _, p := range d.paths {
		if len(p.points) >= 2 {
			d.layer(p.layer)
		}
	}
	if len(d.order) == 0 {
		return &rdjob.Job{}
	}

	order := append([]int{}, d.order...)
	sort.Ints(order)

	job := &rdjob.Job{}
	for _, n := range order {
		l := d.layers[n]
		layer := rdjob.Layer{
			ID:       l.n,
			Kind:     rdjob.LayerVector,
			Color:    l.color,
			MinPower: l.minPower,
			MaxPower: l.maxPower,
			Speed:    l.speed,
			Min:      l.min,
			Max:      l.max,
		}
		for _, p := range d.paths {
			if p.layer == l.n && len(p.points) >= 2 {
				layer.Paths = append(layer.Paths, rdjob.Path{Points: p.points})
			}
		}
		job.Layers = append(job.Layers, layer)
	}

	return job
}

func mmArg(args []byte) float64 {
	return float64(decodeNumber(args[:absGroups])) / 1000
}

func mmPair(args []byte) (x, y float64) {
	return mmArg(args), mmArg(args[absGroups:])
}

func relPair(args []byte) (dx, dy float64, err error) {
	dxum, err := decodeRel(args[:2])
	if err != nil {
		return
	}
	dyum, err := decodeRel(args[2:4])
	if err != nil {
		return
	}
	return float64(dxum) / 1000, float64(dyum) / 1000, nil
}

func actMoveAbs(d *decoder, args []byte) string {
	x, y := mmPair(args)
	d.moveTo(rdjob.Point{X: x, Y: y})
	return fmt.Sprintf("%gmm %gmm", x, y)
}

func actCutAbs(d *decoder, args []byte) string {
	x, y := mmPair(args)
	d.cutTo(rdjob.Point{X: x, Y: y})
	return fmt.Sprintf("%gmm %gmm", x, y)
}

func actMoveRel(d *decoder, args []byte) string {
	dx, dy, err := relPair(args)
	if err != nil {
		return err.Error()
	}
	p := d.position()
	d.moveTo(rdjob.Point{X: p.X + dx, Y: p.Y + dy})
	return fmt.Sprintf("%gmm %gmm", dx, dy)
}

func actCutRel(d *decoder, args []byte) string {
	dx, dy, err := relPair(args)
	if err != nil {
		return err.Error()
	}
	p := d.position()
	d.cutTo(rdjob.Point{X: p.X + dx, Y: p.Y + dy})
	return fmt.Sprintf("%gmm %gmm", dx, dy)
}

func actAxisRel(move, horizontal bool) func(d *decoder, args []byte) string {
	return func(d *decoder, args []byte) string {
		um, err := decodeRel(args[:2])
		if err != nil {
			return err.Error()
		}
		delta := float64(um) / 1000
		p := d.position()
		if horizontal {
			p.X += delta
		} else {
			p.Y += delta
		}
		if move {
			d.moveTo(p)
		} else {
			d.cutTo(p)
		}
		return fmt.Sprintf("%gmm", delta)
	}
}

func actPriority(d *decoder, args []byte) string {
	d.prio = int(args[0])
	return fmt.Sprintf("layer %d", d.prio)
}

func actLayerSpeed(d *decoder, args []byte) string {
	l := d.layer(int(args[0]))
	l.speed = mmArg(args[1:])
	return fmt.Sprintf("layer %d %gmm/s", l.n, l.speed)
}

func actLayerPower(min bool) func(d *decoder, args []byte) string {
	return func(d *decoder, args []byte) string {
		l := d.layer(int(args[0]))
		pct := decodePercent(args[1:3])
		if min {
			l.minPower = pct
		} else {
			l.maxPower = pct
		}
		return fmt.Sprintf("layer %d %.1f%%", l.n, pct)
	}
}

func actLayerColor(d *decoder, args []byte) string {
	l := d.layer(int(args[0]))
	l.color = decodeColor(args[1:])
	return fmt.Sprintf("layer %d #%02x%02x%02x", l.n, l.color.R, l.color.G, l.color.B)
}

func actLayerBounds(topLeft bool) func(d *decoder, args []byte) string {
	return func(d *decoder, args []byte) string {
		l := d.layer(int(args[0]))
		x, y := mmPair(args[1:])
		if topLeft {
			l.min = rdjob.Point{X: x, Y: y}
		} else {
			l.max = rdjob.Point{X: x, Y: y}
		}
		return fmt.Sprintf("layer %d %gmm %gmm", l.n, x, y)
	}
}

func actJobBounds(d *decoder, args []byte) string {
	x, y := mmPair(args)
	return fmt.Sprintf("%gmm %gmm", x, y)
}

func actSpeed(d *decoder, args []byte) string {
	return fmt.Sprintf("%gmm/s", mmArg(args))
}

func actPercent(d *decoder, args []byte) string {
	return fmt.Sprintf("%.1f%%", decodePercent(args[:2]))
}

func actInterval(d *decoder, args []byte) string {
	c1 := float64(decodeNumber(args[2:7])) / 1000
	c2 := float64(decodeNumber(args[7:12])) / 1000
	return fmt.Sprintf("%gm %gm", c1, c2)
}

var decodeTable = map[byte]entry{
	opMoveAbs:   {name: "move_abs", size: 10, act: actMoveAbs},
	opMoveRel:   {name: "move_rel", size: 4, act: actMoveRel},
	opMoveHoriz: {name: "move_horiz", size: 2, act: actAxisRel(true, true)},
	opMoveVert:  {name: "move_vert", size: 2, act: actAxisRel(true, false)},
	opCutAbs:    {name: "cut_abs", size: 10, act: actCutAbs},
	opCutRel:    {name: "cut_rel", size: 4, act: actCutRel},
	opCutHoriz:  {name: "cut_horiz", size: 2, act: actAxisRel(false, true)},
	opCutVert:   {name: "cut_vert", size: 2, act: actAxisRel(false, false)},

	opLaser: {sub: map[byte]entry{
		0x01: {name: "laser1_min_power", size: 2, act: actPercent},
		0x02: {name: "laser1_max_power", size: 2, act: actPercent},
		0x05: {name: "laser3_min_power", size: 2, act: actPercent},
		0x06: {name: "laser3_max_power", size: 2, act: actPercent},
		0x07: {name: "laser4_min_power", size: 2, act: actPercent},
		0x08: {name: "laser4_max_power", size: 2, act: actPercent},
		0x12: {name: "cut_open_delay", size: 5},
		0x13: {name: "cut_close_delay", size: 5},
		0x15: {name: "cut_open_delay", size: 5},
		0x16: {name: "cut_close_delay", size: 5},
		0x21: {name: "laser2_min_power", size: 2, act: actPercent},
		0x22: {name: "laser2_max_power", size: 2, act: actPercent},
		0x31: {name: "laser1_min_power_layer", size: 3, act: actLayerPower(true)},
		0x32: {name: "laser1_max_power_layer", size: 3, act: actLayerPower(false)},
		0x35: {name: "laser3_min_power_layer", size: 3},
		0x36: {name: "laser3_max_power_layer", size: 3},
		0x37: {name: "laser4_min_power_layer", size: 3},
		0x38: {name: "laser4_max_power_layer", size: 3},
		0x41: {name: "laser2_min_power_layer", size: 3},
		0x42: {name: "laser2_max_power_layer", size: 3},
		0x60: {name: "laser_frequency", size: 7},
	}},

	opSpeed: {sub: map[byte]entry{
		0x02: {name: "speed", size: 5, act: actSpeed},
		0x04: {name: "layer_speed", size: 6, act: actLayerSpeed},
	}},

	opLayer: {sub: map[byte]entry{
		0x01: {name: "flags", size: 1},
		0x02: {name: "layer_priority", size: 1, act: actPriority},
		0x03: {name: "layer_enable", size: 1},
		0x06: {name: "layer_color", size: 6, act: actLayerColor},
		0x10: {name: "layer_mode", size: 1},
		0x12: {name: "blow_off", size: 0},
		0x13: {name: "blow_on", size: 0},
		0x22: {name: "layer_count", size: 1},
		0x41: {name: "layer_extra", size: 2},
	}},

	opLight: {sub: map[byte]entry{
		0x00: {name: "light_red", size: 0},
		0x12: {name: "upload_follows", size: 0},
	}},

	opInterval: {sub: map[byte]entry{
		0x01: {name: "work_interval", size: 12, act: actInterval},
	}},

	opBounds: {sub: map[byte]entry{
		0x00: {name: "stop", size: 0},
		0x03: {name: "bbox_top_left", size: 10, act: actJobBounds},
		0x04: {name: "e7_04", size: 14},
		0x05: {name: "e7_05", size: 1},
		0x06: {name: "feeding", size: 10},
		0x07: {name: "bbox_bottom_right", size: 10, act: actJobBounds},
		0x08: {name: "bbox_e7_08", size: 14},
		0x13: {name: "e7_13", size: 10},
		0x17: {name: "bbox_e7_17", size: 10},
		0x23: {name: "e7_23", size: 10},
		0x24: {name: "e7_24", size: 1},
		0x50: {name: "bbox_top_left", size: 10, act: actJobBounds},
		0x51: {name: "bbox_bottom_right", size: 10, act: actJobBounds},
		0x52: {name: "layer_top_left", size: 11, act: actLayerBounds(true)},
		0x53: {name: "layer_bottom_right", size: 11, act: actLayerBounds(false)},
		0x54: {name: "pen_draw_y", size: 6},
		0x55: {name: "laser2_y_offset", size: 6},
		0x60: {name: "e7_60", size: 1},
		0x61: {name: "layer_top_left", size: 11, act: actLayerBounds(true)},
		0x62: {name: "layer_bottom_right", size: 11, act: actLayerBounds(false)},
	}},

	opFinish: {name: "finish", size: 0},
	opEOF:    {name: "eof", size: 0},
	opMagic:  {name: "magic", size: 0},
	0xea:     {name: "ea", size: 1},

	opStart: {sub: map[byte]entry{
		0x00: {name: "start0", size: 1},
		0x01: {name: "start1", size: 1},
		0x02: {name: "start2", size: 1},
		0x03: {name: "laser2_offset", size: 10},
		0x04: {name: "auto_feed", size: 1},
	}},

	opSettings: {sub: map[byte]entry{
		0x00: {name: "f2_00", size: 1},
		0x01: {name: "f2_01", size: 1},
		0x02: {name: "f2_02", size: 10},
		0x03: {name: "f2_03", size: 10},
		0x04: {name: "f2_04", size: 10},
		0x05: {name: "f2_05", size: 14},
		0x06: {name: "f2_06", size: 10},
		0x07: {name: "f2_07", size: 1},
	}},
}
