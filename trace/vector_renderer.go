package trace

import (
	"image/color"
	"image/png"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"
)

// VectorRenderer renders a trace as vector graphics. The whole tree is
// drawn as one even-odd filled path, so background contours punch holes
// out of the shapes that contain them.
type VectorRenderer struct {
	Trace      *Result
	Fill       color.RGBA
	Background color.RGBA
	Scale      float64           // output units per pixel
	Padding    float64           // padding in output units
	Resolution canvas.Resolution // resolution for PNG output
}

// NewVectorRenderer creates a vector renderer with default settings
func NewVectorRenderer(t *Result) *VectorRenderer {
	return &VectorRenderer{
		Trace:      t,
		Fill:       color.RGBA{0, 0, 0, 255},
		Background: color.RGBA{255, 255, 255, 255},
		Scale:      1.0,
		Padding:    0,
		Resolution: canvas.DPI(300),
	}
}

// canvasRenderer is the interface both the svg and rasterizer renderers
// implement
type canvasRenderer interface {
	RenderPath(path *canvas.Path, style canvas.Style, m canvas.Matrix)
}

// RenderToSVG writes the trace as an SVG to the provided writer
func (r *VectorRenderer) RenderToSVG(w io.Writer) error {
	width, height := r.size()
	svgRenderer := svg.New(w, width, height, nil)
	r.renderToCanvas(svgRenderer)
	return svgRenderer.Close()
}

// RenderToPNG rasterizes the trace and writes it as a PNG
func (r *VectorRenderer) RenderToPNG(w io.Writer) error {
	width, height := r.size()
	rast := rasterizer.New(width, height, r.Resolution, canvas.DefaultColorSpace)
	r.renderToCanvas(rast)
	return png.Encode(w, rast)
}

func (r *VectorRenderer) size() (float64, float64) {
	width := float64(r.Trace.Width)*r.Scale + 2*r.Padding
	height := float64(r.Trace.Height)*r.Scale + 2*r.Padding
	return width, height
}

// renderToCanvas draws the background and the trace path (shared logic for
// SVG and PNG)
func (r *VectorRenderer) renderToCanvas(renderer canvasRenderer) {
	width, height := r.size()

	bgStyle := canvas.DefaultStyle
	bgStyle.Fill = canvas.Paint{Color: r.Background}
	renderer.RenderPath(canvas.Rectangle(width, height), bgStyle, canvas.Identity)

	fillStyle := canvas.DefaultStyle
	fillStyle.Fill = canvas.Paint{Color: r.Fill}
	fillStyle.Stroke = canvas.Paint{Color: canvas.Transparent}
	fillStyle.FillRule = canvas.EvenOdd

	renderer.RenderPath(r.buildPath(), fillStyle, canvas.Identity)
}

// buildPath converts every curve in the tree into one compound canvas path.
// Both the trace and the canvas are y-up, so points only need scale and
// padding applied.
func (r *VectorRenderer) buildPath() *canvas.Path {
	cp := &canvas.Path{}
	toCanvas := func(p Point) (float64, float64) {
		return p.X*r.Scale + r.Padding, p.Y*r.Scale + r.Padding
	}

	r.Trace.Walk(func(p *Path, _ int) {
		curve := p.FinalCurve()
		if curve == nil || curve.Len() == 0 {
			return
		}
		sx, sy := toCanvas(curve.StartPoint())
		cp.MoveTo(sx, sy)
		for _, seg := range curve.Segs {
			ex, ey := toCanvas(seg.End)
			switch seg.Tag {
			case SegCorner:
				cx, cy := toCanvas(seg.C1)
				cp.LineTo(cx, cy)
				cp.LineTo(ex, ey)
			case SegBezier:
				c0x, c0y := toCanvas(seg.C0)
				c1x, c1y := toCanvas(seg.C1)
				cp.CubeTo(c0x, c0y, c1x, c1y, ex, ey)
			}
		}
		cp.Close()
	})
	return cp
}
