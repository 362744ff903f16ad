//
// Copyright (c) 2026 The rdjob authors
//

package main

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/fablaser/rdjob"
)

// LoadImage decodes a raster file and places it at the device origin
// with the requested physical width.
func LoadImage(filename string, widthMM float64, skipWhite bool) (in *rdjob.RasterInput, err error) {
	reader, err := os.Open(filename)
	if err != nil {
		return
	}
	defer func() { reader.Close() }()

	img, _, err := image.Decode(reader)
	if err != nil {
		return
	}

	in = &rdjob.RasterInput{
		Image:     img,
		WidthMM:   widthMM,
		SkipWhite: skipWhite,
	}
	return
}
