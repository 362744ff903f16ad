//
// Copyright (c) 2026 The rdjob authors
//

package rdjob

import (
	"fmt"
)

type Preset string

const (
	PresetCut     = Preset("cut")
	PresetEngrave = Preset("engrave")
)

type Mode string

const (
	ModeQuality     = Mode("quality")
	ModePerformance = Mode("performance")
)

// Settings is the immutable user-level configuration handed in by the
// caller. Validate rejects it before any geometry is touched.
type Settings struct {
	Preset     Preset
	Quality    int     // 0..100, curve tolerance and raster ceiling dial
	MinPower   float64 // percent
	MaxPower   float64 // percent
	Speed      float64 // mm/s
	NumColors  int     // 2..256 raster shades
	ImageScale float64 // pre-scale factor for raster input, > 0
	Mode       Mode
}

// DefaultSettings mirrors the defaults of the original command line
// surface.
func DefaultSettings() Settings {
	return Settings{
		Preset:     PresetEngrave,
		Quality:    50,
		MinPower:   10,
		MaxPower:   70,
		Speed:      300,
		NumColors:  16,
		ImageScale: 0.5,
		Mode:       ModeQuality,
	}
}

func (s *Settings) Validate() (err error) {
	switch s.Preset {
	case PresetCut, PresetEngrave:
	default:
		return ErrInvalidSettings{Field: "preset", Reason: fmt.Sprintf("unknown preset %q", s.Preset)}
	}

	switch s.Mode {
	case ModeQuality, ModePerformance:
	default:
		return ErrInvalidSettings{Field: "mode", Reason: fmt.Sprintf("unknown mode %q", s.Mode)}
	}

	if s.Quality < 0 || s.Quality > 100 {
		return ErrInvalidSettings{Field: "quality", Reason: fmt.Sprintf("%d out of range 0..100", s.Quality)}
	}

	if s.MinPower < 0 || s.MinPower > 100 {
		return ErrInvalidSettings{Field: "min_power", Reason: fmt.Sprintf("%g out of range 0..100", s.MinPower)}
	}

	if s.MaxPower < 0 || s.MaxPower > 100 {
		return ErrInvalidSettings{Field: "max_power", Reason: fmt.Sprintf("%g out of range 0..100", s.MaxPower)}
	}

	if s.MinPower > s.MaxPower {
		return ErrInvalidSettings{Field: "min_power", Reason: fmt.Sprintf("%g exceeds max_power %g", s.MinPower, s.MaxPower)}
	}

	if s.Speed <= 0 {
		return ErrInvalidSettings{Field: "speed", Reason: fmt.Sprintf("%g must be positive", s.Speed)}
	}

	if s.NumColors < 2 || s.NumColors > 256 {
		return ErrInvalidSettings{Field: "num_colors", Reason: fmt.Sprintf("%d out of range 2..256", s.NumColors)}
	}

	if s.ImageScale <= 0 {
		return ErrInvalidSettings{Field: "img_scale", Reason: fmt.Sprintf("%g must be positive", s.ImageScale)}
	}

	return
}
