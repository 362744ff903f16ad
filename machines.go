//
// Copyright (c) 2026 The rdjob authors
//

package rdjob

import (
	"fmt"
)

type MachineSize struct {
	Xmm, Ymm float64
}

type Machine struct {
	Vendor string
	Model  string
	Size   MachineSize
}

type MachineFormat struct {
	Machine
	Extension string
	Args      []string
}

var (
	MachineFormats = map[string](*MachineFormat){}
)

func RegisterMachine(name string, machine Machine, extension string, args ...string) (err error) {
	_, ok := MachineFormats[name]
	if ok {
		err = fmt.Errorf("name already exists in Machine list")
		return
	}

	machineFormat := &MachineFormat{
		Machine:   machine,
		Extension: extension,
		Args:      args,
	}

	MachineFormats[name] = machineFormat

	return
}

func RegisterMachines(machineMap map[string]Machine, extension string, args ...string) (err error) {
	for name, machine := range machineMap {
		err = RegisterMachine(name, machine, extension, args...)
		if err != nil {
			return
		}
	}

	return
}
