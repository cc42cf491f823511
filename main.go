package main

import (
	"flag"
	"fmt"
	"log"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	inputFile  = flag.String("input", "", "Input image (PNG or JPEG)")
	outputFile = flag.String("output", "", "Output file; empty prints a summary only")
	format     = flag.String("format", "svg", "Output format: svg, png, geojson, or preview")
	configFile = flag.String("config", "", "Optional params YAML file")
	threshold  = flag.Int("threshold", 128, "Luminance threshold: darker pixels become foreground (0-255)")

	turdSize     = flag.Int("turdsize", -1, "Drop contours with area <= this (default from config)")
	turnPolicy   = flag.String("turnpolicy", "", "Ambiguity policy: black, white, left, right, minority, majority, random")
	alphaMax     = flag.Float64("alphamax", -1, "Corner threshold, 0..1.334 (default from config)")
	optTolerance = flag.Float64("opttolerance", -1, "Curve optimization tolerance, 0 disables (default from config)")

	resolution  = flag.Int("resolution", 16, "Tessellation resolution for geojson output")
	simplifyTol = flag.Float64("simplify", 0, "Douglas-Peucker tolerance for geojson rings (0 = off)")
	scale       = flag.Float64("scale", 0, "Output units per pixel for svg/png (0 = 1:1)")
	writeParams = flag.String("write-params", "", "Write the effective params to this YAML file")
	info        = flag.Bool("info", false, "Print per-contour details")
	quiet       = flag.Bool("quiet", false, "Suppress progress and summary output")
)

func main() {
	flag.Parse()
	fmt.Printf("outliner version: %s\n", Version)

	app := NewApp(AppOptions{
		Input:        *inputFile,
		Output:       *outputFile,
		Format:       *format,
		ConfigFile:   *configFile,
		Threshold:    *threshold,
		TurdSize:     *turdSize,
		TurnPolicy:   *turnPolicy,
		AlphaMax:     *alphaMax,
		OptTolerance: *optTolerance,
		Resolution:   *resolution,
		SimplifyTol:  *simplifyTol,
		Scale:        *scale,
		WriteParams:  *writeParams,
		Info:         *info,
		Quiet:        *quiet,
	})

	if err := app.Run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
