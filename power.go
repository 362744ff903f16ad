//
// Copyright (c) 2026 The rdjob authors
//

package rdjob

// assignPowers computes each layer's power range, speed and mode from
// the user settings and the layer's position in the engrave sequence.
// Pure: it depends only on its arguments.
//
// Engrave layers share the configured speed and interpolate power
// linearly from MinPower (lightest shade, first) to MaxPower (darkest
// shade, last). Cut layers take the settings triple unmodified.
func assignPowers(layers []Layer, settings Settings) {
	var engrave []int
	for i := range layers {
		l := &layers[i]
		if l.Kind == LayerVector {
			l.IsEngrave = settings.Preset == PresetEngrave
		}
		if l.IsEngrave {
			engrave = append(engrave, i)
		}
	}

	for seq, i := range engrave {
		power := settings.MaxPower
		if n := len(engrave); n > 1 {
			power = settings.MinPower + (settings.MaxPower-settings.MinPower)*float64(seq)/float64(n-1)
		}
		layers[i].MinPower = power
		layers[i].MaxPower = power
		layers[i].Speed = settings.Speed
	}

	for i := range layers {
		if layers[i].IsEngrave {
			continue
		}
		layers[i].MinPower = settings.MinPower
		layers[i].MaxPower = settings.MaxPower
		layers[i].Speed = settings.Speed
	}
}
