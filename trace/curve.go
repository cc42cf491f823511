package trace

// SegmentTag distinguishes the two kinds of curve segment
type SegmentTag uint8

const (
	// SegCorner is a pointed corner: two straight joints through C1.
	SegCorner SegmentTag = iota
	// SegBezier is a cubic Bezier with controls C0 and C1.
	SegBezier
)

func (t SegmentTag) String() string {
	if t == SegCorner {
		return "corner"
	}
	return "bezier"
}

// Segment is one piece of a closed curve. Its start point is the End of the
// previous segment (cyclically). For a corner only C1 and End are
// meaningful; for a Bezier the segment is the cubic (start, C0, C1, End).
//
// Vertex, Alpha, Alpha0 and Beta record the underlying polygon vertex and
// its shape parameters; curve optimization reads them and consumers may
// ignore them.
type Segment struct {
	Tag    SegmentTag `json:"tag"`
	C0     Point      `json:"c0"`
	C1     Point      `json:"c1"`
	End    Point      `json:"end"`
	Vertex Point      `json:"vertex"`
	Alpha  float64    `json:"alpha"`
	Alpha0 float64    `json:"alpha0"`
	Beta   float64    `json:"beta"`
}

// Curve is a closed loop of segments
type Curve struct {
	Segs []Segment `json:"segments"`
}

// Len returns the number of segments
func (c *Curve) Len() int { return len(c.Segs) }

// StartPoint returns the start of segment 0, which is the end of the last
// segment.
func (c *Curve) StartPoint() Point {
	return c.Segs[len(c.Segs)-1].End
}

// Tessellate samples the whole closed curve into a polyline at the given
// resolution: each Bezier contributes res points past its start point, each
// corner its two joints. The first point is the curve start; the final
// point closes the loop back onto it.
func (c *Curve) Tessellate(res int) []Point {
	if len(c.Segs) == 0 {
		return nil
	}
	if res < 1 {
		res = 1
	}
	cur := c.StartPoint()
	out := make([]Point, 0, len(c.Segs)*(res+1))
	out = append(out, cur)
	for _, seg := range c.Segs {
		switch seg.Tag {
		case SegCorner:
			out = append(out, seg.C1, seg.End)
		case SegBezier:
			samples := sampleBezier(cur, seg.C0, seg.C1, seg.End, res)
			out = append(out, samples[1:]...)
		}
		cur = seg.End
	}
	return out
}

// sampleBezier returns res+1 points of the cubic (p0,p1,p2,p3) at the
// parameters k/res, computed by third-order forward differences so the
// first sample is exactly p0 and no powers of t are re-evaluated per step.
func sampleBezier(p0, p1, p2, p3 Point, res int) []Point {
	if res < 1 {
		res = 1
	}

	// polynomial form B(t) = a t^3 + b t^2 + c t + d
	ax := -p0.X + 3*p1.X - 3*p2.X + p3.X
	bx := 3*p0.X - 6*p1.X + 3*p2.X
	cx := -3*p0.X + 3*p1.X
	ay := -p0.Y + 3*p1.Y - 3*p2.Y + p3.Y
	by := 3*p0.Y - 6*p1.Y + 3*p2.Y
	cy := -3*p0.Y + 3*p1.Y

	h := 1 / float64(res)
	h2 := h * h
	h3 := h2 * h

	fx, fy := p0.X, p0.Y
	dfx := ax*h3 + bx*h2 + cx*h
	dfy := ay*h3 + by*h2 + cy*h
	ddfx := 6*ax*h3 + 2*bx*h2
	ddfy := 6*ay*h3 + 2*by*h2
	dddfx := 6 * ax * h3
	dddfy := 6 * ay * h3

	out := make([]Point, 0, res+1)
	out = append(out, p0)
	for i := 0; i < res; i++ {
		fx += dfx
		fy += dfy
		dfx += ddfx
		dfy += ddfy
		ddfx += dddfx
		ddfy += dddfy
		out = append(out, Point{fx, fy})
	}
	return out
}
