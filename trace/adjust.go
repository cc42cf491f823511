package trace

import "math"

// quadForm is a symmetric 3x3 quadratic form in homogeneous coordinates;
// its value at (x,y) is the squared distance from the line it encodes.
type quadForm [3][3]float64

func (q *quadForm) apply(w Point) float64 {
	v := [3]float64{w.X, w.Y, 1}
	sum := 0.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum += v[i] * q[i][j] * v[j]
		}
	}
	return sum
}

// pointSlope fits a line through contour points i..j (cyclic, j may exceed
// n): the centroid plus the principal eigenvector of the coordinate
// covariance, both read from the prefix sums in O(1).
func (p *Path) pointSlope(i, j int) (ctr, dir Point) {
	n := len(p.Pts)
	sums := p.sums

	r := 0 // forward wraps from i to j
	for j >= n {
		j -= n
		r++
	}
	for i >= n {
		i -= n
		r--
	}
	for j < 0 {
		j += n
		r--
	}
	for i < 0 {
		i += n
		r++
	}

	x := sums[j+1].x - sums[i].x + float64(r)*sums[n].x
	y := sums[j+1].y - sums[i].y + float64(r)*sums[n].y
	x2 := sums[j+1].x2 - sums[i].x2 + float64(r)*sums[n].x2
	xy := sums[j+1].xy - sums[i].xy + float64(r)*sums[n].xy
	y2 := sums[j+1].y2 - sums[i].y2 + float64(r)*sums[n].y2
	k := float64(j + 1 - i + r*n)

	ctr = Point{x / k, y / k}

	a := (x2 - x*x/k) / k
	b := (xy - x*y/k) / k
	c := (y2 - y*y/k) / k

	// larger eigenvalue of the covariance matrix
	lambda2 := (a + c + math.Sqrt((a-c)*(a-c)+4*b*b)) / 2

	a -= lambda2
	c -= lambda2

	var l float64
	if math.Abs(a) >= math.Abs(c) {
		l = math.Sqrt(a*a + b*b)
		if l != 0 {
			dir = Point{-b / l, a / l}
		}
	} else {
		l = math.Sqrt(c*c + b*b)
		if l != 0 {
			dir = Point{-c / l, b / l}
		}
	}
	if l == 0 {
		// the eigenvalues coincide, e.g. a 2x2 pixel square
		dir = Point{}
	}
	return ctr, dir
}

// adjustVertices places the curve vertices. Each polygon edge becomes a
// quadratic form measuring squared distance from its fitted line; each
// vertex moves to the point minimizing the sum of its two adjacent forms,
// restricted to the unit square around the original corner. For background
// contours the vertex order is reversed so every curve downstream winds the
// same way.
func (p *Path) adjustVertices() {
	m := len(p.po)
	n := len(p.Pts)
	x0 := p.Pts[0].X
	y0 := p.Pts[0].Y

	ctr := make([]Point, m)
	dir := make([]Point, m)
	q := make([]quadForm, m)

	p.Curve = &Curve{Segs: make([]Segment, m)}

	for i := 0; i < m; i++ {
		j := p.po[mod(i+1, m)]
		j = mod(j-p.po[i], n) + p.po[i]
		ctr[i], dir[i] = p.pointSlope(p.po[i], j)
	}

	// one singular quadratic form per edge
	for i := 0; i < m; i++ {
		d := sq(dir[i].X) + sq(dir[i].Y)
		if d == 0 {
			for j := 0; j < 3; j++ {
				for k := 0; k < 3; k++ {
					q[i][j][k] = 0
				}
			}
			continue
		}
		v := [3]float64{
			dir[i].Y,
			-dir[i].X,
			dir[i].X*ctr[i].Y - dir[i].Y*ctr[i].X,
		}
		for l := 0; l < 3; l++ {
			for k := 0; k < 3; k++ {
				q[i][l][k] = v[l] * v[k] / d
			}
		}
	}

	for i := 0; i < m; i++ {
		// vertex relative to the path origin
		s := Point{
			X: float64(p.Pts[p.po[i]].X - x0),
			Y: float64(p.Pts[p.po[i]].Y - y0),
		}

		j := mod(i-1, m)

		var Q quadForm
		for l := 0; l < 3; l++ {
			for k := 0; k < 3; k++ {
				Q[l][k] = q[j][l][k] + q[i][l][k]
			}
		}

		var w Point
		for {
			det := Q[0][0]*Q[1][1] - Q[0][1]*Q[1][0]
			if det != 0 {
				w = Point{
					X: (-Q[0][2]*Q[1][1] + Q[1][2]*Q[0][1]) / det,
					Y: (Q[0][2]*Q[1][0] - Q[1][2]*Q[0][0]) / det,
				}
				break
			}

			// singular: the two lines are parallel. Add an orthogonal
			// axis through the square's center and retry.
			var v [3]float64
			if Q[0][0] > Q[1][1] {
				v[0] = -Q[0][1]
				v[1] = Q[0][0]
			} else if Q[1][1] != 0 {
				v[0] = -Q[1][1]
				v[1] = Q[1][0]
			} else {
				v[0] = 1
				v[1] = 0
			}
			d := sq(v[0]) + sq(v[1])
			v[2] = -v[1]*s.Y - v[0]*s.X
			for l := 0; l < 3; l++ {
				for k := 0; k < 3; k++ {
					Q[l][k] += v[l] * v[k] / d
				}
			}
		}

		if math.Abs(w.X-s.X) <= 0.5 && math.Abs(w.Y-s.Y) <= 0.5 {
			p.setVertex(i, Point{w.X + float64(x0), w.Y + float64(y0)})
			continue
		}

		// interior minimum fell outside the square; scan its four edges
		// and four corners
		best := Q.apply(s)
		xmin, ymin := s.X, s.Y

		if Q[0][0] != 0 {
			for z := 0; z < 2; z++ {
				w.Y = s.Y - 0.5 + float64(z)
				w.X = -(Q[0][1]*w.Y + Q[0][2]) / Q[0][0]
				if math.Abs(w.X-s.X) <= 0.5 {
					if cand := Q.apply(w); cand < best {
						best = cand
						xmin, ymin = w.X, w.Y
					}
				}
			}
		}
		if Q[1][1] != 0 {
			for z := 0; z < 2; z++ {
				w.X = s.X - 0.5 + float64(z)
				w.Y = -(Q[1][0]*w.X + Q[1][2]) / Q[1][1]
				if math.Abs(w.Y-s.Y) <= 0.5 {
					if cand := Q.apply(w); cand < best {
						best = cand
						xmin, ymin = w.X, w.Y
					}
				}
			}
		}
		for l := 0; l < 2; l++ {
			for k := 0; k < 2; k++ {
				w = Point{s.X - 0.5 + float64(l), s.Y - 0.5 + float64(k)}
				if cand := Q.apply(w); cand < best {
					best = cand
					xmin, ymin = w.X, w.Y
				}
			}
		}

		p.setVertex(i, Point{xmin + float64(x0), ymin + float64(y0)})
	}
}

// setVertex writes an adjusted vertex, reversing the order for background
// contours so all curves share one winding direction.
func (p *Path) setVertex(i int, v Point) {
	m := len(p.Curve.Segs)
	if p.Sign {
		p.Curve.Segs[i].Vertex = v
	} else {
		p.Curve.Segs[m-i-1].Vertex = v
	}
}
