package trace

import "math"

// smooth turns the adjusted polygon into a curve: each vertex becomes
// either a pointed corner or a Bezier whose control points are placed by
// the per-vertex alpha parameter. alphamax is the corner threshold.
func (p *Path) smooth(alphamax float64) {
	segs := p.Curve.Segs
	m := len(segs)

	for i := 0; i < m; i++ {
		j := mod(i+1, m)
		k := mod(i+2, m)
		vi := segs[i].Vertex
		vj := segs[j].Vertex
		vk := segs[k].Vertex
		p4 := interval(0.5, vk, vj)

		var alpha float64
		denom := ddenom(vi, vk)
		if denom != 0 {
			dd := math.Abs(dpara(vi, vj, vk) / denom)
			if dd > 1 {
				alpha = 1 - 1/dd
			}
			alpha = alpha / 0.75
		} else {
			alpha = 4.0 / 3.0
		}
		segs[j].Alpha0 = alpha // uncropped value

		if alpha >= alphamax {
			segs[j].Tag = SegCorner
			segs[j].C1 = vj
			segs[j].End = p4
		} else {
			if alpha < 0.55 {
				alpha = 0.55
			} else if alpha > 1 {
				alpha = 1
			}
			segs[j].Tag = SegBezier
			segs[j].C0 = interval(0.5+0.5*alpha, vi, vj)
			segs[j].C1 = interval(0.5+0.5*alpha, vk, vj)
			segs[j].End = p4
		}
		segs[j].Alpha = alpha // cropped value
		segs[j].Beta = 0.5
	}
}
