//
// Copyright (c) 2026 The rdjob authors
//

package rd

import (
	"io"

	"github.com/fablaser/rdjob"
	"github.com/spf13/pflag"
)

type RDFormat struct {
	*pflag.FlagSet

	Revision    string
	BedWidth    float64
	BedHeight   float64
	Checksum    bool
	Unscrambled bool
}

func NewRDFormatter(suffix string) (rf *RDFormat) {
	flagSet := pflag.NewFlagSet(suffix, pflag.ContinueOnError)

	rf = &RDFormat{
		FlagSet: flagSet,
	}

	rf.SetInterspersed(false)

	rf.StringVarP(&rf.Revision, "revision", "r", RDC6442G.Name, "Controller revision (RDC6442G, RDC654XG)")
	rf.Float64Var(&rf.BedWidth, "bed-width", 0, "Bed width limit in mm (0 for unlimited)")
	rf.Float64Var(&rf.BedHeight, "bed-height", 0, "Bed height limit in mm (0 for unlimited)")
	rf.BoolVar(&rf.Checksum, "checksum", false, "Prefix the stream with the upload checksum")
	rf.BoolVar(&rf.Unscrambled, "unscrambled", false, "Skip byte scrambling (for debugging only)")

	return
}

func (rf *RDFormat) Encode(writer rdjob.Writer, job *rdjob.Job) (err error) {
	rev, err := RevisionByName(rf.Revision)
	if err != nil {
		return
	}

	enc := NewEncoder(rev)
	enc.BedWidthMM = rf.BedWidth
	enc.BedHeightMM = rf.BedHeight
	enc.Checksum = rf.Checksum
	enc.Unscrambled = rf.Unscrambled

	return enc.Encode(writer, job)
}

func (rf *RDFormat) Decode(reader rdjob.Reader, size int64) (job *rdjob.Job, err error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return
	}

	if rf.Checksum {
		data, err = StripChecksum(data)
		if err != nil {
			return
		}
	}

	var dec *Decoded
	if rf.Unscrambled {
		dec, err = DecodeUnscrambled(data)
	} else {
		dec, err = Decode(data)
	}
	if err != nil {
		return
	}

	job = dec.Job
	return
}
