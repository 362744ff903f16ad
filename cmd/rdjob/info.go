//
// Copyright (c) 2026 The rdjob authors
//

package main

import (
	"fmt"
	"os"

	"github.com/fablaser/rdjob/rd"
)

// Describe decodes an .rd file and prints its layers and command
// stream.
func Describe(filename string) (err error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return
	}

	dec, err := rd.Decode(data)
	if err != nil {
		return
	}

	for _, layer := range dec.Job.Layers {
		fmt.Printf("Layer %d: #%02x%02x%02x, %g-%g%% at %g mm/s, %d paths\n",
			layer.ID, layer.Color.R, layer.Color.G, layer.Color.B,
			layer.MinPower, layer.MaxPower, layer.Speed, len(layer.Paths))
	}

	for _, cmd := range dec.Commands {
		fmt.Printf("%06x: %-22s %s\n", cmd.Offset, cmd.Name, cmd.Params)
	}

	return
}
