//
// Copyright (c) 2026 The rdjob authors
//

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/fablaser/rdjob"
)

func PrintMachines() {
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Known machines:")
	fmt.Fprintln(os.Stderr)

	keys := []string{}
	for key := range rdjob.MachineFormats {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		item := rdjob.MachineFormats[key]
		size := &item.Size
		fmt.Fprintf(os.Stderr, "    %-12s %s %s, %.4gx%.4g mm\n",
			key, item.Vendor, item.Model, size.Xmm, size.Ymm)
	}
}

// machineArgs translates a machine name into the bed-limit flags of
// its registered format.
func machineArgs(name string) (args []string, err error) {
	item, ok := rdjob.MachineFormats[name]
	if !ok {
		err = fmt.Errorf("%s: Machine unknown (try --machines)", name)
		return
	}

	args = append(item.Args,
		fmt.Sprintf("--bed-width=%g", item.Size.Xmm),
		fmt.Sprintf("--bed-height=%g", item.Size.Ymm))
	return
}
