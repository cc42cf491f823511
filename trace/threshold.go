package trace

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for FromImageFile
	_ "image/png"
	"os"
)

// FromImage converts an image to a binary raster by luminance threshold:
// pixels darker than the threshold become foreground. Image row 0 is the
// top, bitmap row 0 the bottom, so the raster (and everything traced from
// it) lives in y-up coordinates.
func FromImage(img image.Image, threshold uint8) (*Bitmap, error) {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	bm, err := NewBitmap(w, h)
	if err != nil {
		return nil, fmt.Errorf("converting image: %w", err)
	}

	for row := 0; row < h; row++ {
		y := h - 1 - row
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+row).RGBA()
			// ITU-R 601 luma on the 16-bit channels
			lum := (299*r + 587*g + 114*b) / 1000 >> 8
			if uint8(lum) < threshold {
				bm.Set(x, y)
			}
		}
	}
	return bm, nil
}

// FromImageFile loads a PNG or JPEG file and thresholds it into a bitmap
func FromImageFile(path string, threshold uint8) (*Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image file: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", path, err)
	}
	return FromImage(img, threshold)
}
