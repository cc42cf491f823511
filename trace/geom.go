package trace

import "math"

// cyclic mod and division helpers. mod behaves like mathematical modulo for
// the small negative operands that show up in cyclic index arithmetic.
func mod(a, n int) int {
	if a >= n {
		return a % n
	}
	if a >= 0 {
		return a
	}
	return n - 1 - (-1-a)%n
}

// floorDiv returns floor(a/n), for n > 0
func floorDiv(a, n int) int {
	if a >= 0 {
		return a / n
	}
	return -1 - (-1-a)/n
}

// cyclic reports whether a <= b < c in the cyclic sense
func cyclic(a, b, c int) bool {
	if a <= c {
		return a <= b && b < c
	}
	return a <= b || b < c
}

func signi(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func signf(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func sq(x float64) float64 { return x * x }

// xprodi is the cross product of two integer vectors
func xprodi(p1, p2 IntPoint) int {
	return p1.X*p2.Y - p1.Y*p2.X
}

// interval returns the point lambda of the way from a to b
func interval(lambda float64, a, b Point) Point {
	return Point{
		X: a.X + lambda*(b.X-a.X),
		Y: a.Y + lambda*(b.Y-a.Y),
	}
}

// dpara returns the area of the parallelogram spanned by p1-p0 and p2-p0
func dpara(p0, p1, p2 Point) float64 {
	x1 := p1.X - p0.X
	y1 := p1.Y - p0.Y
	x2 := p2.X - p0.X
	y2 := p2.Y - p0.Y
	return x1*y2 - x2*y1
}

// cprod is the cross product (p1-p0) x (p3-p2)
func cprod(p0, p1, p2, p3 Point) float64 {
	x1 := p1.X - p0.X
	y1 := p1.Y - p0.Y
	x2 := p3.X - p2.X
	y2 := p3.Y - p2.Y
	return x1*y2 - x2*y1
}

// iprod is the inner product (p1-p0) . (p2-p0)
func iprod(p0, p1, p2 Point) float64 {
	x1 := p1.X - p0.X
	y1 := p1.Y - p0.Y
	x2 := p2.X - p0.X
	y2 := p2.Y - p0.Y
	return x1*x2 + y1*y2
}

// iprod1 is the inner product (p1-p0) . (p3-p2)
func iprod1(p0, p1, p2, p3 Point) float64 {
	x1 := p1.X - p0.X
	y1 := p1.Y - p0.Y
	x2 := p3.X - p2.X
	y2 := p3.Y - p2.Y
	return x1*x2 + y1*y2
}

// ddist is the Euclidean distance between p and q
func ddist(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// dorthInfty returns the direction 90 degrees counterclockwise from p2-p0,
// quantized to one of the eight major wind directions
func dorthInfty(p0, p2 Point) IntPoint {
	return IntPoint{
		X: -signf(p2.Y - p0.Y),
		Y: signf(p2.X - p0.X),
	}
}

// ddenom and dpara together have the property that the square of radius 1
// centered at p1 intersects the line p0p2 iff |dpara(p0,p1,p2)| <= ddenom(p0,p2)
func ddenom(p0, p2 Point) float64 {
	r := dorthInfty(p0, p2)
	return float64(r.Y)*(p2.X-p0.X) - float64(r.X)*(p2.Y-p0.Y)
}

// bezierPoint evaluates the cubic Bezier (p0,p1,p2,p3) at t
func bezierPoint(t float64, p0, p1, p2, p3 Point) Point {
	s := 1 - t
	return Point{
		X: s*s*s*p0.X + 3*s*s*t*p1.X + 3*t*t*s*p2.X + t*t*t*p3.X,
		Y: s*s*s*p0.Y + 3*s*s*t*p1.Y + 3*t*t*s*p2.Y + t*t*t*p3.Y,
	}
}

// tangent finds the parameter t in [0,1] where the (convex) Bezier
// (p0,p1,p2,p3) is tangent to the direction q1-q0, or -1 if there is none.
func tangent(p0, p1, p2, p3, q0, q1 Point) float64 {
	// (1-t)^2 A + 2(1-t)t B + t^2 C = 0, rewritten as a t^2 + b t + c = 0
	A := cprod(p0, p1, q0, q1)
	B := cprod(p1, p2, q0, q1)
	C := cprod(p2, p3, q0, q1)

	a := A - 2*B + C
	b := -2*A + 2*B
	c := A

	d := b*b - 4*a*c
	if a == 0 || d < 0 {
		return -1
	}
	s := math.Sqrt(d)
	r1 := (-b + s) / (2 * a)
	r2 := (-b - s) / (2 * a)
	if r1 >= 0 && r1 <= 1 {
		return r1
	}
	if r2 >= 0 && r2 <= 1 {
		return r2
	}
	return -1
}
