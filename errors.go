//
// Copyright (c) 2026 The rdjob authors
//

package rdjob

import (
	"fmt"
)

// ErrInvalidSettings reports an out-of-range or unrecognized value in
// the settings struct. Raised before any geometry processing begins.
type ErrInvalidSettings struct {
	Field  string
	Reason string
}

func (e ErrInvalidSettings) Error() string {
	return fmt.Sprintf("invalid settings: %s: %s", e.Field, e.Reason)
}

// ErrDegenerateGeometry reports a path that collapsed below two
// distinct points during flattening. Non-fatal: the path is dropped
// and the condition surfaces as a job warning.
type ErrDegenerateGeometry struct {
	PathIndex int
}

func (e ErrDegenerateGeometry) Error() string {
	return fmt.Sprintf("path %d: degenerate after flattening, dropped", e.PathIndex)
}

// ErrUnsupportedCurve reports a segment kind the flattener cannot
// subdivide. Fatal.
type ErrUnsupportedCurve struct {
	PathIndex int
	Kind      string
}

func (e ErrUnsupportedCurve) Error() string {
	return fmt.Sprintf("path %d: unsupported curve type %s", e.PathIndex, e.Kind)
}

// ErrEncodingOverflow reports a coordinate outside the device's
// representable range. Fatal; no output may be written.
type ErrEncodingOverflow struct {
	Coordinate float64 // mm
	Limit      float64 // mm
}

func (e ErrEncodingOverflow) Error() string {
	return fmt.Sprintf("coordinate %gmm outside device range 0..%gmm", e.Coordinate, e.Limit)
}

// ErrEmptyJob reports that no layers survived processing; there is
// nothing to send to hardware.
type ErrEmptyJob struct{}

func (e ErrEmptyJob) Error() string {
	return "empty job: no layers survived processing"
}
