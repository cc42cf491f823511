package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestImage writes a white PNG with a black square in the middle
func writeTestImage(t *testing.T, path string) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	for y := 8; y <= 23; y++ {
		for x := 8; x <= 23; x++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestAppRunSVG(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	output := filepath.Join(dir, "out.svg")
	writeTestImage(t, input)

	app := NewApp(AppOptions{
		Input:        input,
		Output:       output,
		Format:       "svg",
		Threshold:    128,
		TurdSize:     -1,
		AlphaMax:     -1,
		OptTolerance: -1,
		Quiet:        true,
	})
	if err := app.Run(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("output is not SVG")
	}
}

func TestAppRunGeoJSON(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	output := filepath.Join(dir, "out.geojson")
	writeTestImage(t, input)

	app := NewApp(AppOptions{
		Input:        input,
		Output:       output,
		Format:       "geojson",
		Threshold:    128,
		TurdSize:     -1,
		AlphaMax:     -1,
		OptTolerance: -1,
		Resolution:   8,
		Quiet:        true,
	})
	if err := app.Run(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "FeatureCollection") {
		t.Error("output is not GeoJSON")
	}
}

func TestAppRunUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	writeTestImage(t, input)

	app := NewApp(AppOptions{
		Input:        input,
		Output:       filepath.Join(dir, "out.xyz"),
		Format:       "xyz",
		Threshold:    128,
		TurdSize:     -1,
		AlphaMax:     -1,
		OptTolerance: -1,
		Quiet:        true,
	})
	if err := app.Run(); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestAppRunMissingInput(t *testing.T) {
	app := NewApp(AppOptions{
		TurdSize:     -1,
		AlphaMax:     -1,
		OptTolerance: -1,
		Quiet:        true,
	})
	if err := app.Run(); err == nil {
		t.Error("expected error when no input is given")
	}
}

func TestAppParamOverrides(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "params.yaml")
	if err := os.WriteFile(cfg, []byte("turdSize: 9\nalphaMax: 0.7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	app := NewApp(AppOptions{
		ConfigFile:   cfg,
		TurdSize:     3, // CLI override wins
		TurnPolicy:   "",
		AlphaMax:     -1, // keep config value
		OptTolerance: -1,
		Quiet:        true,
	})
	if err := app.loadParams(); err != nil {
		t.Fatal(err)
	}
	if app.Params.TurdSize != 3 {
		t.Errorf("TurdSize = %d, want CLI override 3", app.Params.TurdSize)
	}
	if app.Params.AlphaMax != 0.7 {
		t.Errorf("AlphaMax = %v, want config value 0.7", app.Params.AlphaMax)
	}
}
