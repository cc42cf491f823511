package trace

import (
	"context"
	"fmt"
	"math/bits"
)

// findPath walks one closed contour: starting at the corner (x0,y0) with
// heading (0,-1), it keeps the enclosed region on a fixed side and records
// every corner until it returns to the start. The enclosed area accumulates
// as x*dy per step.
func findPath(bm *Bitmap, x0, y0 int, sign bool, policy TurnPolicy) *Path {
	x, y := x0, y0
	dirx, diry := 0, -1
	var area int64
	var pts []IntPoint

	for {
		pts = append(pts, IntPoint{x, y})

		x += dirx
		y += diry
		area += int64(x) * int64(diry)

		if x == x0 && y == y0 {
			break
		}

		// the two pixels diagonally ahead: c on the right of the
		// heading, d on the left
		c := bm.Get(x+(dirx+diry-1)/2, y+(diry-dirx-1)/2)
		d := bm.Get(x+(dirx-diry-1)/2, y+(diry+dirx-1)/2)

		switch {
		case c && !d: // ambiguous crossing
			if turnRight(bm, x, y, sign, policy) {
				dirx, diry = diry, -dirx
			} else {
				dirx, diry = -diry, dirx
			}
		case c:
			dirx, diry = diry, -dirx // right turn
		case !d:
			dirx, diry = -diry, dirx // left turn
		}
	}

	return &Path{Pts: pts, Area: area, Sign: sign}
}

// turnRight decides the ambiguous diagonal case for the configured policy
func turnRight(bm *Bitmap, x, y int, sign bool, policy TurnPolicy) bool {
	switch policy {
	case TurnRight:
		return true
	case TurnLeft:
		return false
	case TurnBlack:
		return sign
	case TurnWhite:
		return !sign
	case TurnMajority:
		return majority(bm, x, y)
	case TurnMinority:
		return !majority(bm, x, y)
	case TurnRandom:
		return detrand(x, y)
	}
	return false
}

// majority tallies set vs unset pixels along the edges of squares of radius
// 2..4 around the vertex and returns true iff the first nonzero total is
// positive.
func majority(bm *Bitmap, x, y int) bool {
	for r := 2; r < 5; r++ {
		ct := 0
		tally := func(px, py int) {
			if bm.Get(px, py) {
				ct++
			} else {
				ct--
			}
		}
		for a := -r + 1; a <= r-1; a++ {
			tally(x+a, y+r-1)
			tally(x+r-1, y+a-1)
			tally(x+a-1, y-r)
			tally(x-r, y+a)
		}
		if ct > 0 {
			return true
		} else if ct < 0 {
			return false
		}
	}
	return false
}

// detrand is the coin flip for the random turn policy. A coordinate hash
// rather than a stateful generator, so a trace is reproducible regardless
// of the order in which contours are discovered.
func detrand(x, y int) bool {
	z := (0x04b3e375*uint32(x) ^ uint32(y)) * 0x05a8ef93
	return bits.OnesCount32(z)&1 == 1
}

// xorPath inverts the interior of the contour on the bitmap, removing the
// component (or restoring it) in a single pass over the boundary.
func xorPath(bm *Bitmap, p *Path) {
	if len(p.Pts) == 0 {
		return
	}
	y1 := p.Pts[len(p.Pts)-1].Y
	xa := p.Pts[0].X &^ (wordBits - 1)
	for _, pt := range p.Pts {
		x, y := pt.X, pt.Y
		if y != y1 {
			bm.XorRange(x, min(y, y1), xa)
			y1 = y
		}
	}
}

// pathList decomposes the working bitmap into closed contours. orig stays
// untouched and supplies the sign of each contour; work is consumed.
// Contours with area <= turdsize are despeckled.
func pathList(ctx context.Context, orig, work *Bitmap, params *Params) ([]*Path, error) {
	var paths []*Path

	work.ClearExcess()
	h := work.Height()
	x, y := 0, h-1
	for {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("extracting contours: %w", ErrCancelled)
		}
		nx, ny, ok := work.FindNextSet(x, y)
		if !ok {
			break
		}
		x, y = nx, ny

		sign := orig.Get(x, y)
		p := findPath(work, x, y+1, sign, params.TurnPolicy)
		xorPath(work, p)

		if p.Area > int64(params.TurdSize) {
			paths = append(paths, p)
		}
		reportProgress(params, ProgressPathList, float64(h-1-y)/float64(h))
	}
	reportProgress(params, ProgressPathList, 1)

	return paths, nil
}

func reportProgress(params *Params, level ProgressLevel, fraction float64) {
	if params.Progress != nil {
		params.Progress(level, fraction)
	}
}
