package trace

import "math"

// penalty3 is the penalty of approximating points i..j of the contour by
// the straight chord i->j: the chord length times the root-mean-square
// orthogonal distance of the points from the chord, read off the prefix
// sums in O(1). j may exceed n-1 to denote one forward wrap.
func (p *Path) penalty3(i, j int) float64 {
	n := len(p.Pts)
	sums := p.sums
	pts := p.Pts

	r := 0 // wraps around the cyclic path
	if j >= n {
		j -= n
		r = 1
	}

	var x, y, x2, xy, y2, k float64
	if r == 0 {
		x = sums[j+1].x - sums[i].x
		y = sums[j+1].y - sums[i].y
		x2 = sums[j+1].x2 - sums[i].x2
		xy = sums[j+1].xy - sums[i].xy
		y2 = sums[j+1].y2 - sums[i].y2
		k = float64(j + 1 - i)
	} else {
		x = sums[j+1].x - sums[i].x + sums[n].x
		y = sums[j+1].y - sums[i].y + sums[n].y
		x2 = sums[j+1].x2 - sums[i].x2 + sums[n].x2
		xy = sums[j+1].xy - sums[i].xy + sums[n].xy
		y2 = sums[j+1].y2 - sums[i].y2 + sums[n].y2
		k = float64(j + 1 - i + n)
	}

	px := float64(pts[i].X+pts[j].X)/2 - float64(pts[0].X)
	py := float64(pts[i].Y+pts[j].Y)/2 - float64(pts[0].Y)
	ey := float64(pts[j].X - pts[i].X)
	ex := -float64(pts[j].Y - pts[i].Y)

	a := (x2-2*x*px)/k + px*px
	b := (xy-x*py-y*px)/k + px*py
	c := (y2-2*y*py)/k + py*py

	return math.Sqrt(ex*ex*a + 2*ex*ey*b + ey*ey*c)
}

// bestPolygon finds the optimal polygon for the path: fewest vertices
// first, smallest total penalty among those. Straightness of candidate
// edges is bounded by the lon table; the search is a shortest-path DP whose
// inner range is clipped by seg0/seg1 so the whole thing stays near-linear
// in practice.
func (p *Path) bestPolygon() {
	n := len(p.Pts)
	pen := make([]float64, n+1)
	prev := make([]int, n+1)
	clip0 := make([]int, n)
	clip1 := make([]int, n+1)
	seg0 := make([]int, n+1)
	seg1 := make([]int, n+1)

	// clip0[i]: furthest j such that the edge (i,j) is still straight
	for i := 0; i < n; i++ {
		c := mod(p.lon[mod(i-1, n)]-1, n)
		if c == i {
			c = mod(i+1, n)
		}
		if c < i {
			clip0[i] = n
		} else {
			clip0[i] = c
		}
	}

	// clip1[j]: smallest i with j <= clip0[i]
	j := 1
	for i := 0; i < n; i++ {
		for j <= clip0[i] {
			clip1[j] = i
			j++
		}
	}

	// seg0[j]: longest path from 0 with j segments
	i := 0
	m := 0
	for j = 0; i < n; j++ {
		seg0[j] = i
		i = clip0[i]
	}
	seg0[j] = n
	m = j

	// seg1[j]: longest path to n with m-j segments
	i = n
	for j = m; j > 0; j-- {
		seg1[j] = i
		i = clip1[i]
	}
	seg1[0] = 0

	// shortest path with m segments, minimizing penalty
	pen[0] = 0
	for j = 1; j <= m; j++ {
		for i = seg1[j]; i <= seg0[j]; i++ {
			best := -1.0
			for k := seg0[j-1]; k >= clip1[i]; k-- {
				thispen := p.penalty3(k, i) + pen[k]
				if best < 0 || thispen < best {
					prev[i] = k
					best = thispen
				}
			}
			pen[i] = best
		}
	}

	// read off the chosen vertices backwards
	p.po = make([]int, m)
	for i, j := n, m-1; i > 0; j-- {
		i = prev[i]
		p.po[j] = i
	}
}
