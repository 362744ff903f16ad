//
// Copyright (c) 2026 The rdjob authors
//

package rdjob

import (
	"errors"
	"testing"
)

func TestDefaultSettingsValid(t *testing.T) {
	settings := DefaultSettings()
	if err := settings.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestSettingsValidation(t *testing.T) {
	table := []struct {
		field  string
		mutate func(*Settings)
	}{
		{"preset", func(s *Settings) { s.Preset = "etch" }},
		{"mode", func(s *Settings) { s.Mode = "turbo" }},
		{"quality", func(s *Settings) { s.Quality = -1 }},
		{"quality", func(s *Settings) { s.Quality = 101 }},
		{"min_power", func(s *Settings) { s.MinPower = -0.1 }},
		{"max_power", func(s *Settings) { s.MaxPower = 100.5 }},
		{"min_power", func(s *Settings) { s.MinPower = 80; s.MaxPower = 20 }},
		{"speed", func(s *Settings) { s.Speed = 0 }},
		{"num_colors", func(s *Settings) { s.NumColors = 1 }},
		{"num_colors", func(s *Settings) { s.NumColors = 257 }},
		{"img_scale", func(s *Settings) { s.ImageScale = 0 }},
	}

	for _, item := range table {
		settings := DefaultSettings()
		item.mutate(&settings)

		err := settings.Validate()

		var invalid ErrInvalidSettings
		if !errors.As(err, &invalid) {
			t.Errorf("%s: expected settings error, got %v", item.field, err)
			continue
		}
		if invalid.Field != item.field {
			t.Errorf("expected error on field %s, got %s", item.field, invalid.Field)
		}
	}
}
