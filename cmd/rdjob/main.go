//
// Copyright (c) 2026 The rdjob authors
//

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fablaser/rdjob"
	_ "github.com/fablaser/rdjob/rd"

	"github.com/spf13/pflag"
)

var param struct {
	machines  bool
	info      bool
	input     string
	output    string
	machine   string
	width     float64
	skipWhite bool

	preset    string
	mode      string
	quality   int
	minPower  float64
	maxPower  float64
	speed     float64
	numColors int
	imgScale  float64
}

func init() {
	defaults := rdjob.DefaultSettings()

	pflag.BoolVarP(&param.machines, "machines", "M", false, "List known machines")
	pflag.BoolVarP(&param.info, "info", "I", false, "Describe the input file instead of converting")
	pflag.StringVarP(&param.input, "input", "i", "", "Input file (.svg, .png, .jpg, .rd)")
	pflag.StringVarP(&param.output, "output", "o", "", "Output file (.rd)")
	pflag.StringVarP(&param.machine, "machine", "m", "", "Apply bed limits of a known machine")
	pflag.Float64VarP(&param.width, "width", "w", 50, "Physical width of the job in mm")
	pflag.BoolVar(&param.skipWhite, "skip-white", false, "Drop near-white raster shades as background")

	pflag.StringVarP(&param.preset, "preset", "p", string(defaults.Preset), "Job preset (cut, engrave)")
	pflag.StringVar(&param.mode, "mode", string(defaults.Mode), "Trade-off mode (quality, performance)")
	pflag.IntVarP(&param.quality, "quality", "q", defaults.Quality, "Quality dial, 0..100")
	pflag.Float64Var(&param.minPower, "min-power", defaults.MinPower, "Minimum laser power percent")
	pflag.Float64Var(&param.maxPower, "max-power", defaults.MaxPower, "Maximum laser power percent")
	pflag.Float64VarP(&param.speed, "speed", "s", defaults.Speed, "Head speed in mm/s")
	pflag.IntVarP(&param.numColors, "num-colors", "n", defaults.NumColors, "Raster shades, 2..256")
	pflag.Float64Var(&param.imgScale, "img-scale", defaults.ImageScale, "Raster pre-scale factor")
}

func settings() rdjob.Settings {
	s := rdjob.DefaultSettings()
	s.Preset = rdjob.Preset(param.preset)
	s.Mode = rdjob.Mode(param.mode)
	s.Quality = param.quality
	s.MinPower = param.minPower
	s.MaxPower = param.maxPower
	s.Speed = param.speed
	s.NumColors = param.numColors
	s.ImageScale = param.imgScale
	return s
}

func loadInput() (input rdjob.Input, err error) {
	switch {
	case strings.HasSuffix(param.input, ".svg"):
		input.Vector, err = LoadSVG(param.input, param.width)
	case strings.HasSuffix(param.input, ".png"),
		strings.HasSuffix(param.input, ".jpg"),
		strings.HasSuffix(param.input, ".jpeg"):
		input.Raster, err = LoadImage(param.input, param.width, param.skipWhite)
	default:
		err = fmt.Errorf("%s: File extension unknown", param.input)
	}

	return
}

func evaluate(args []string) (err error) {
	if param.machines {
		PrintMachines()
		return
	}

	if len(param.input) == 0 {
		err = errors.New("-input: Required parameter missing")
		return
	}

	if param.info || strings.HasSuffix(param.input, ".rd") {
		return Describe(param.input)
	}

	input, err := loadInput()
	if err != nil {
		return
	}

	job, err := rdjob.Build(input, settings())
	if err != nil {
		return
	}

	for _, warning := range job.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	fmt.Printf("Layers: %v, %.2f x %.2f mm\n",
		len(job.Layers), job.Max.X-job.Min.X, job.Max.Y-job.Min.Y)

	if len(param.output) == 0 {
		return
	}

	if len(param.machine) > 0 {
		var extra []string
		extra, err = machineArgs(param.machine)
		if err != nil {
			return
		}
		args = append(args, extra...)
	}

	format, err := rdjob.NewFormat(param.output, args)
	if err != nil {
		return
	}

	return format.SetJob(job)
}

func main() {
	pflag.Parse()

	err := evaluate(pflag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "rdjob: %v\n", err)
		os.Exit(1)
	}
}
