package trace

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFromImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 4))
	// dark pixel at image (1,0) = top-left area; light elsewhere
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			img.SetGray(x, y, color.Gray{Y: 200})
		}
	}
	img.SetGray(1, 0, color.Gray{Y: 10})
	img.SetGray(6, 3, color.Gray{Y: 10})

	bm, err := FromImage(img, 128)
	if err != nil {
		t.Fatal(err)
	}
	if bm.Width() != 8 || bm.Height() != 4 {
		t.Fatalf("bitmap is %dx%d, want 8x4", bm.Width(), bm.Height())
	}

	// image rows flip: top image row becomes the top bitmap row (y = h-1)
	if !bm.Get(1, 3) {
		t.Error("dark pixel at image (1,0) missing at bitmap (1,3)")
	}
	if !bm.Get(6, 0) {
		t.Error("dark pixel at image (6,3) missing at bitmap (6,0)")
	}

	count := 0
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			if bm.Get(x, y) {
				count++
			}
		}
	}
	if count != 2 {
		t.Errorf("got %d foreground pixels, want 2", count)
	}
}

func TestFromImageThresholdBoundary(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.SetGray(0, 0, color.Gray{Y: 127})
	img.SetGray(1, 0, color.Gray{Y: 128})

	bm, err := FromImage(img, 128)
	if err != nil {
		t.Fatal(err)
	}
	if !bm.Get(0, 0) {
		t.Error("pixel below threshold should be foreground")
	}
	if bm.Get(1, 0) {
		t.Error("pixel at threshold should be background")
	}
}

func TestFromImageFile(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	for y := 3; y <= 6; y++ {
		for x := 3; x <= 6; x++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}

	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	bm, err := FromImageFile(path, 128)
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if bm.Get(x, y) {
				count++
			}
		}
	}
	if count != 16 {
		t.Errorf("got %d foreground pixels, want 16", count)
	}
}

func TestFromImageFileMissing(t *testing.T) {
	if _, err := FromImageFile(filepath.Join(t.TempDir(), "nope.png"), 128); err == nil {
		t.Error("expected error for missing file")
	}
}
