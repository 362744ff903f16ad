//
// Copyright (c) 2026 The rdjob authors
//

package rdjob

import (
	"image"
	"image/color"
	"testing"
)

func TestEngravePowerRamp(t *testing.T) {
	layers := make([]Layer, 5)
	for i := range layers {
		layers[i] = Layer{Kind: LayerRaster, IsEngrave: true}
	}

	settings := DefaultSettings()
	settings.MinPower = 20
	settings.MaxPower = 80
	settings.Speed = 250

	assignPowers(layers, settings)

	if layers[0].MaxPower != 20 {
		t.Errorf("first layer: got %v, expected min power 20", layers[0].MaxPower)
	}
	if layers[len(layers)-1].MaxPower != 80 {
		t.Errorf("last layer: got %v, expected max power 80", layers[len(layers)-1].MaxPower)
	}

	for i, l := range layers {
		if l.MinPower != l.MaxPower {
			t.Errorf("layer %v: engrave power must be flat, got %v-%v", i, l.MinPower, l.MaxPower)
		}
		if l.Speed != 250 {
			t.Errorf("layer %v: speed %v, expected 250", i, l.Speed)
		}
		if i > 0 && l.MaxPower <= layers[i-1].MaxPower {
			t.Errorf("layer %v: power %v not above previous %v", i, l.MaxPower, layers[i-1].MaxPower)
		}
	}
}

func TestEngraveSingleLayer(t *testing.T) {
	layers := []Layer{{Kind: LayerRaster, IsEngrave: true}}

	settings := DefaultSettings()
	settings.MinPower = 15
	settings.MaxPower = 65

	assignPowers(layers, settings)

	if layers[0].MaxPower != 65 {
		t.Errorf("single engrave layer: got %v, expected max power 65", layers[0].MaxPower)
	}
}

func TestCutPowerPassthrough(t *testing.T) {
	layers := []Layer{
		{Kind: LayerVector},
		{Kind: LayerVector},
	}

	settings := DefaultSettings()
	settings.Preset = PresetCut
	settings.MinPower = 12
	settings.MaxPower = 55
	settings.Speed = 18

	assignPowers(layers, settings)

	for i, l := range layers {
		if l.IsEngrave {
			t.Errorf("layer %v: cut preset must not engrave", i)
		}
		if l.MinPower != 12 || l.MaxPower != 55 || l.Speed != 18 {
			t.Errorf("layer %v: got %v-%v at %v, expected 12-55 at 18", i, l.MinPower, l.MaxPower, l.Speed)
		}
	}
}

func TestTwoShadeRasterPowers(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			v := uint8(255)
			if x < 8 {
				v = 0
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}

	settings := DefaultSettings()
	settings.NumColors = 2
	settings.MinPower = 10
	settings.MaxPower = 70
	settings.ImageScale = 1

	job, err := Build(Input{Raster: &RasterInput{Image: img, WidthMM: 16}}, settings)
	if err != nil {
		t.Fatal(err)
	}

	if len(job.Layers) != 2 {
		t.Fatalf("expected 2 raster layers, got %v", len(job.Layers))
	}

	// Light shade first at minimum power, dark last at maximum.
	if job.Layers[0].Shade != 255 || job.Layers[0].MaxPower != 10 {
		t.Errorf("light layer: shade %v power %v", job.Layers[0].Shade, job.Layers[0].MaxPower)
	}
	if job.Layers[1].Shade != 0 || job.Layers[1].MaxPower != 70 {
		t.Errorf("dark layer: shade %v power %v", job.Layers[1].Shade, job.Layers[1].MaxPower)
	}

	for i, l := range job.Layers {
		if l.Kind != LayerRaster || !l.IsEngrave {
			t.Errorf("layer %v: expected an engrave raster layer", i)
		}
		if l.StepMM != 1 {
			t.Errorf("layer %v: step %v, expected 1mm per pixel", i, l.StepMM)
		}
	}
}
