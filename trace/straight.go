package trace

// sum holds cumulative coordinate moments relative to path point 0,
// allowing any cyclic range sum to be read off in O(1).
type sum struct {
	x, y, x2, xy, y2 float64
}

// calcSums fills the per-path prefix-sum cache. sums[0] is zero and
// sums[k+1]-sums[k] is the contribution of point k.
func (p *Path) calcSums() {
	n := len(p.Pts)
	p.sums = make([]sum, n+1)
	x0, y0 := p.Pts[0].X, p.Pts[0].Y

	for i := 0; i < n; i++ {
		x := float64(p.Pts[i].X - x0)
		y := float64(p.Pts[i].Y - y0)
		prev := p.sums[i]
		p.sums[i+1] = sum{
			x:  prev.x + x,
			y:  prev.y + y,
			x2: prev.x2 + x*x,
			xy: prev.xy + x*y,
			y2: prev.y2 + y*y,
		}
	}
}

const infty = 10000000

// calcLon computes, for each index i, the furthest cyclic index lon[i] such
// that every point between them lies on a single straight line in the
// four-direction sense. The walk visits only the "next corner" points and
// maintains a pair of cross-product constraints bounding the admissible
// directions; when a constraint is violated the exact cutoff is recovered
// by integer floor division.
func (p *Path) calcLon() {
	pts := p.Pts
	n := len(pts)
	pivk := make([]int, n)
	nc := make([]int, n)

	// nc[i]: the next direction change at or after i+1. The contour
	// construction guarantees a direction change at index 0, so pointing
	// past the end never happens.
	k := 0
	for i := n - 1; i >= 0; i-- {
		if pts[i].X != pts[k].X && pts[i].Y != pts[k].Y {
			k = i + 1
		}
		nc[i] = k
	}

	p.lon = make([]int, n)

	for i := n - 1; i >= 0; i-- {
		var ct [4]int
		dir := (3 + 3*(pts[mod(i+1, n)].X-pts[i].X) + (pts[mod(i+1, n)].Y - pts[i].Y)) / 2
		ct[dir]++

		var constraint [2]IntPoint
		k := nc[i]
		k1 := i
		foundk := false
		for {
			dir = (3 + 3*signi(pts[k].X-pts[k1].X) + signi(pts[k].Y-pts[k1].Y)) / 2
			ct[dir]++

			// all four directions seen: the subpath cannot be straight
			if ct[0] != 0 && ct[1] != 0 && ct[2] != 0 && ct[3] != 0 {
				pivk[i] = k1
				foundk = true
				break
			}

			cur := IntPoint{pts[k].X - pts[i].X, pts[k].Y - pts[i].Y}
			if xprodi(constraint[0], cur) < 0 || xprodi(constraint[1], cur) > 0 {
				break
			}

			if abs(cur.X) > 1 || abs(cur.Y) > 1 {
				off := IntPoint{
					X: cur.X + b2i(cur.Y >= 0 && (cur.Y > 0 || cur.X < 0)),
					Y: cur.Y + b2i(cur.X <= 0 && (cur.X < 0 || cur.Y < 0)),
				}
				if xprodi(constraint[0], off) >= 0 {
					constraint[0] = off
				}
				off = IntPoint{
					X: cur.X + b2i(cur.Y <= 0 && (cur.Y < 0 || cur.X < 0)),
					Y: cur.Y + b2i(cur.X >= 0 && (cur.X > 0 || cur.Y < 0)),
				}
				if xprodi(constraint[1], off) <= 0 {
					constraint[1] = off
				}
			}

			k1 = k
			k = nc[k1]
			if !cyclic(k, i, k1) {
				break
			}
		}

		if !foundk {
			// k1 was the last corner satisfying the constraint and k the
			// first violating it; find the last point along k1..k that
			// still satisfies it
			dk := IntPoint{signi(pts[k].X - pts[k1].X), signi(pts[k].Y - pts[k1].Y)}
			cur := IntPoint{pts[k1].X - pts[i].X, pts[k1].Y - pts[i].Y}

			// largest j with a+j*b >= 0 and c+j*d <= 0, by bilinearity
			a := xprodi(constraint[0], cur)
			b := xprodi(constraint[0], dk)
			c := xprodi(constraint[1], cur)
			d := xprodi(constraint[1], dk)

			j := infty
			if b < 0 {
				j = floorDiv(a, -b)
			}
			if d > 0 {
				j = min(j, floorDiv(-c, d))
			}
			pivk[i] = mod(k1+j, n)
		}
	}

	// back-propagate pivots into lon
	j := pivk[n-1]
	p.lon[n-1] = j
	for i := n - 2; i >= 0; i-- {
		if cyclic(i+1, pivk[i], j) {
			j = pivk[i]
		}
		p.lon[i] = j
	}

	for i := n - 1; cyclic(mod(i+1, n), j, p.lon[i]); i-- {
		p.lon[i] = j
	}
}

// b2i maps the rounding-vector predicate to the +1/-1 offset
func b2i(b bool) int {
	if b {
		return 1
	}
	return -1
}
