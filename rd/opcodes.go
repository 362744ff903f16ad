//
// Copyright (c) 2026 The rdjob authors
//

package rd

import (
	"fmt"
)

// Geometry opcodes. Absolute forms carry two 5-group coordinates,
// relative forms two 2-group offsets, axis forms a single offset.
const (
	opMoveAbs   = 0x88
	opMoveRel   = 0x89
	opMoveHoriz = 0x8a
	opMoveVert  = 0x8b
	opCutAbs    = 0xa8
	opCutRel    = 0xa9
	opCutHoriz  = 0xaa
	opCutVert   = 0xab
)

// Prefix bytes of multi-byte records.
const (
	opLaser    = 0xc6
	opSpeed    = 0xc9
	opLayer    = 0xca
	opEOF      = 0xd7
	opLight    = 0xd8
	opInterval = 0xda
	opBounds   = 0xe7
	opFinish   = 0xeb
	opMagic    = 0xf0
	opStart    = 0xf1
	opSettings = 0xf2
)

// Revision describes one controller firmware family. The encoder
// consults this table instead of branching, so a new revision is a new
// entry, not new control flow.
type Revision struct {
	Name string

	// Laser heads the header advertises power records for.
	Lasers int

	// Largest |offset| expressible by a relative op, in device units.
	MaxRelUM int64

	// Absolute re-sync interval: after this many consecutive relative
	// ops an absolute op is forced to cap accumulated rounding error.
	ForceAbsEvery int

	// Largest representable absolute coordinate, in mm. Decoders
	// treat larger raw values as negative.
	MaxCoordMM float64
}

var (
	// RDC6442G is the common two-laser controller family.
	RDC6442G = Revision{
		Name:          "RDC6442G",
		Lasers:        2,
		MaxRelUM:      relLimitUM,
		ForceAbsEvery: 100,
		MaxCoordMM:    float64(0x7fffffff) / 1000,
	}

	// RDC654XG additionally advertises laser heads 3 and 4 in the
	// layer header.
	RDC654XG = Revision{
		Name:          "RDC654XG",
		Lasers:        4,
		MaxRelUM:      relLimitUM,
		ForceAbsEvery: 100,
		MaxCoordMM:    float64(0x7fffffff) / 1000,
	}
)

var revisions = map[string]Revision{
	RDC6442G.Name: RDC6442G,
	RDC654XG.Name: RDC654XG,
}

func RevisionByName(name string) (rev Revision, err error) {
	rev, ok := revisions[name]
	if !ok {
		err = fmt.Errorf("rd: unknown controller revision %q", name)
	}
	return
}
