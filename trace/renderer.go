package trace

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PreviewColors defines the colors used by the raster preview
type PreviewColors struct {
	Background color.RGBA
	Pixel      color.RGBA
	Outline    color.RGBA
	Hole       color.RGBA
	Label      color.RGBA
}

// DefaultPreviewColors returns the standard preview palette
func DefaultPreviewColors() PreviewColors {
	return PreviewColors{
		Background: color.RGBA{255, 255, 255, 255},
		Pixel:      color.RGBA{220, 220, 220, 255},
		Outline:    color.RGBA{0, 0, 139, 255},   // dark blue
		Hole:       color.RGBA{139, 0, 0, 255},   // dark red
		Label:      color.RGBA{0, 100, 0, 255},   // dark green
	}
}

// PreviewRenderer draws the source bitmap and the traced outlines into a
// raster image, labeling each top-level contour with its index. Meant for
// eyeballing a trace, not for production output.
type PreviewRenderer struct {
	Bitmap     *Bitmap
	Trace      *Result
	Colors     PreviewColors
	Scale      int // image pixels per raster pixel
	Padding    int
	Resolution int // tessellation resolution for the outlines
}

// NewPreviewRenderer creates a preview renderer with default settings
func NewPreviewRenderer(bm *Bitmap, t *Result) *PreviewRenderer {
	return &PreviewRenderer{
		Bitmap:     bm,
		Trace:      t,
		Colors:     DefaultPreviewColors(),
		Scale:      8,
		Padding:    16,
		Resolution: 16,
	}
}

// Render produces the preview image. The bitmap's y-up coordinates are
// flipped into the image's y-down space here.
func (r *PreviewRenderer) Render() *image.RGBA {
	w := r.Bitmap.Width()*r.Scale + 2*r.Padding
	h := r.Bitmap.Height()*r.Scale + 2*r.Padding
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, r.Colors.Background)
		}
	}

	// source pixels as filled squares
	for y := 0; y < r.Bitmap.Height(); y++ {
		for x := 0; x < r.Bitmap.Width(); x++ {
			if !r.Bitmap.Get(x, y) {
				continue
			}
			px, py := r.toImage(float64(x), float64(y))
			for dy := 0; dy < r.Scale; dy++ {
				for dx := 0; dx < r.Scale; dx++ {
					img.SetRGBA(px+dx, py-dy-1, r.Colors.Pixel)
				}
			}
		}
	}

	// traced outlines on top
	if r.Trace != nil {
		r.Trace.Walk(func(p *Path, _ int) {
			col := r.Colors.Outline
			if !p.Sign {
				col = r.Colors.Hole
			}
			pts := p.FinalCurve().Tessellate(r.Resolution)
			for i := 1; i < len(pts); i++ {
				r.drawLine(img, pts[i-1], pts[i], col)
			}
		})

		for i, root := range r.Trace.Roots {
			x, y := r.toImage(float64(root.Pts[0].X), float64(root.Pts[0].Y))
			drawLabel(img, x+2, y-2, fmt.Sprintf("%d", i), r.Colors.Label)
		}
	}

	return img
}

// SavePNG renders the preview and writes it to a PNG file
func (r *PreviewRenderer) SavePNG(path string) error {
	img := r.Render()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating preview file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding preview PNG: %w", err)
	}
	return nil
}

// toImage maps raster coordinates (y up) to image coordinates (y down)
func (r *PreviewRenderer) toImage(x, y float64) (int, int) {
	ix := r.Padding + int(math.Round(x*float64(r.Scale)))
	iy := r.Padding + int(math.Round((float64(r.Bitmap.Height())-y)*float64(r.Scale)))
	return ix, iy
}

// drawLine draws a line segment between two raster-space points
func (r *PreviewRenderer) drawLine(img *image.RGBA, a, b Point, c color.RGBA) {
	x0, y0 := r.toImage(a.X, a.Y)
	x1, y1 := r.toImage(b.X, b.Y)

	steps := max(abs(x1-x0), abs(y1-y0))
	if steps == 0 {
		img.SetRGBA(x0, y0, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + int(math.Round(t*float64(x1-x0)))
		y := y0 + int(math.Round(t*float64(y1-y0)))
		img.SetRGBA(x, y, c)
	}
}

// drawLabel renders text onto an image at the specified position
func drawLabel(img *image.RGBA, x, y int, text string, c color.RGBA) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
