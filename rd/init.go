//
// Copyright (c) 2026 The rdjob authors
//

package rd

import (
	"github.com/fablaser/rdjob"
)

var (
	machines_6442 = map[string]rdjob.Machine{
		"nova35":   {Vendor: "Thunder Laser", Model: "Nova 35", Size: rdjob.MachineSize{Xmm: 900, Ymm: 600}},
		"nova51":   {Vendor: "Thunder Laser", Model: "Nova 51", Size: rdjob.MachineSize{Xmm: 1300, Ymm: 900}},
		"om1060":   {Vendor: "OMTech", Model: "1060", Size: rdjob.MachineSize{Xmm: 1000, Ymm: 600}},
		"polar350": {Vendor: "OMTech", Model: "Polar 350", Size: rdjob.MachineSize{Xmm: 510, Ymm: 300}},
	}
	machines_654x = map[string]rdjob.Machine{
		"nova63": {Vendor: "Thunder Laser", Model: "Nova 63", Size: rdjob.MachineSize{Xmm: 1600, Ymm: 1000}},
	}
)

func init() {
	newFormatter := func(suffix string) rdjob.Formatter { return NewRDFormatter(suffix) }

	rdjob.RegisterFormatter(".rd", newFormatter)

	rdjob.RegisterMachines(machines_6442, ".rd", "--revision=RDC6442G")
	rdjob.RegisterMachines(machines_654x, ".rd", "--revision=RDC654XG")
}
