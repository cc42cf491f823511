package trace

import "math"

// cos179 bounds the cumulative bend of a merged chain: segments may be
// replaced by one Bezier only while the total turn stays under 179 degrees.
const cos179 = -0.999847695156391

// opti holds a candidate single-Bezier replacement for a chain of segments
type opti struct {
	pen   float64
	c     [2]Point
	t, s  float64
	alpha float64
}

// optiPenalty tries to replace segments i+1..j of the smoothed curve by a
// single Bezier. It fails (returns false) when the chain mixes convexity,
// contains a corner, bends too far, or when the fitted Bezier strays more
// than opttolerance from any skipped edge or corner. On success it fills o
// with the replacement and its squared-deviation penalty.
func (p *Path) optiPenalty(i, j int, o *opti, opttolerance float64, convc []int, areac []float64) bool {
	segs := p.Curve.Segs
	m := len(segs)

	if i == j { // a full loop can never be a single Bezier
		return false
	}

	k := i
	i1 := mod(i+1, m)
	k1 := mod(k+1, m)
	conv := convc[k1]
	if conv == 0 {
		return false
	}
	d := ddist(segs[i].Vertex, segs[i1].Vertex)
	for k = k1; k != j; k = k1 {
		k1 = mod(k+1, m)
		k2 := mod(k+2, m)
		if convc[k1] != conv {
			return false
		}
		if signf(cprod(segs[i].Vertex, segs[i1].Vertex, segs[k1].Vertex, segs[k2].Vertex)) != conv {
			return false
		}
		if iprod1(segs[i].Vertex, segs[i1].Vertex, segs[k1].Vertex, segs[k2].Vertex) <
			d*ddist(segs[k1].Vertex, segs[k2].Vertex)*cos179 {
			return false
		}
	}

	// the chain to replace runs from the end of segment i to the end of
	// segment j, guided by the two outermost polygon edges
	p0 := segs[mod(i, m)].End
	p1 := segs[mod(i+1, m)].Vertex
	p2 := segs[mod(j, m)].Vertex
	p3 := segs[mod(j, m)].End

	// area swept by the chain, via the prefix cache
	area := areac[j] - areac[i]
	area -= dpara(segs[0].Vertex, segs[i].End, segs[j].End) / 2
	if i >= j {
		area += areac[m]
	}

	// intersection of edges (p0,p1) and (p2,p3) in terms of the triangle
	// areas A1..A4
	A1 := dpara(p0, p1, p2)
	A2 := dpara(p0, p1, p3)
	A3 := dpara(p0, p2, p3)
	A4 := A1 + A3 - A2

	if A2 == A1 { // parallel edges
		return false
	}

	t := A3 / (A3 - A4)
	s := A2 / (A2 - A1)
	A := A2 * t / 2
	if A == 0 { // degenerate
		return false
	}

	R := area / A
	alpha := 2 - math.Sqrt(4-R/0.3)

	o.c[0] = interval(t*alpha, p0, p1)
	o.c[1] = interval(s*alpha, p3, p2)
	o.alpha = alpha
	o.t = t
	o.s = s
	o.pen = 0

	p1 = o.c[0]
	p2 = o.c[1] // the candidate is now the cubic (p0,p1,p2,p3)

	// every skipped polygon edge must stay within opttolerance of the
	// candidate at its tangency parameter
	for k = mod(i+1, m); k != j; k = k1 {
		k1 = mod(k+1, m)
		t := tangent(p0, p1, p2, p3, segs[k].Vertex, segs[k1].Vertex)
		if t < -0.5 {
			return false
		}
		pt := bezierPoint(t, p0, p1, p2, p3)
		d := ddist(segs[k].Vertex, segs[k1].Vertex)
		if d == 0 {
			return false
		}
		d1 := dpara(segs[k].Vertex, segs[k1].Vertex, pt) / d
		if math.Abs(d1) > opttolerance {
			return false
		}
		if iprod(segs[k].Vertex, segs[k1].Vertex, pt) < 0 ||
			iprod(segs[k1].Vertex, segs[k].Vertex, pt) < 0 {
			return false
		}
		o.pen += sq(d1)
	}

	// and every skipped corner must not be cut deeper than its own
	// alpha-scaled clearance allows
	for k = i; k != j; k = k1 {
		k1 = mod(k+1, m)
		t := tangent(p0, p1, p2, p3, segs[k].End, segs[k1].End)
		if t < -0.5 {
			return false
		}
		pt := bezierPoint(t, p0, p1, p2, p3)
		d := ddist(segs[k].End, segs[k1].End)
		if d == 0 {
			return false
		}
		d1 := dpara(segs[k].End, segs[k1].End, pt) / d
		d2 := dpara(segs[k].End, segs[k1].End, segs[k1].Vertex) / d
		d2 *= 0.75 * segs[k1].Alpha
		if d2 < 0 {
			d1 = -d1
			d2 = -d2
		}
		if d1 < d2-opttolerance {
			return false
		}
		if d1 < d2 {
			o.pen += sq(d1 - d2)
		}
	}

	return true
}

// optiCurve computes the optimized curve: a DP over chain ends that merges
// maximal runs of Bezier segments, minimizing segment count first and
// accumulated penalty second. The smoothed curve is left untouched.
func (p *Path) optiCurve(opttolerance float64) {
	segs := p.Curve.Segs
	m := len(segs)

	// convexity of each Bezier vertex: +1/-1 turn, 0 for corners
	convc := make([]int, m)
	for i := 0; i < m; i++ {
		if segs[i].Tag == SegBezier {
			convc[i] = signf(dpara(segs[mod(i-1, m)].Vertex, segs[i].Vertex, segs[mod(i+1, m)].Vertex))
		}
	}

	// cumulative area swept under the curve prefix, for O(1) chain areas
	areac := make([]float64, m+1)
	area := 0.0
	p0 := segs[0].Vertex
	for i := 0; i < m; i++ {
		i1 := mod(i+1, m)
		if segs[i1].Tag == SegBezier {
			alpha := segs[i1].Alpha
			area += 0.3 * alpha * (4 - alpha) * dpara(segs[i].End, segs[i1].Vertex, segs[i1].End) / 2
			area += dpara(p0, segs[i].End, segs[i1].End) / 2
		}
		areac[i+1] = area
	}

	pt := make([]int, m+1)
	pen := make([]float64, m+1)
	length := make([]int, m+1)
	opt := make([]opti, m+1)

	pt[0] = -1
	pen[0] = 0
	length[0] = 0

	var o opti
	for j := 1; j <= m; j++ {
		// best path from 0 to j
		pt[j] = j - 1
		pen[j] = pen[j-1]
		length[j] = length[j-1] + 1

		for i := j - 2; i >= 0; i-- {
			if !p.optiPenalty(i, mod(j, m), &o, opttolerance, convc, areac) {
				break
			}
			if length[j] > length[i]+1 || (length[j] == length[i]+1 && pen[j] > pen[i]+o.pen) {
				pt[j] = i
				pen[j] = pen[i] + o.pen
				length[j] = length[i] + 1
				opt[j] = o
			}
		}
	}

	om := length[m]
	ocurve := &Curve{Segs: make([]Segment, om)}
	s := make([]float64, om)
	t := make([]float64, om)

	j := m
	for i := om - 1; i >= 0; i-- {
		jm := mod(j, m)
		if pt[j] == j-1 {
			ocurve.Segs[i] = segs[jm]
			s[i] = 1
			t[i] = 1
		} else {
			ocurve.Segs[i] = Segment{
				Tag:    SegBezier,
				C0:     opt[j].c[0],
				C1:     opt[j].c[1],
				End:    segs[jm].End,
				Vertex: interval(opt[j].s, segs[jm].End, segs[jm].Vertex),
				Alpha:  opt[j].alpha,
				Alpha0: opt[j].alpha,
			}
			s[i] = opt[j].s
			t[i] = opt[j].t
		}
		j = pt[j]
	}

	// beta: where along each merged piece the next one takes over
	for i := 0; i < om; i++ {
		i1 := mod(i+1, om)
		ocurve.Segs[i].Beta = s[i] / (s[i] + t[i1])
	}

	p.OptCurve = ocurve
}
