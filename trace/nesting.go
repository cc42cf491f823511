package trace

import (
	"context"
	"fmt"
)

// buildTree arranges the flat contour list into a nesting forest. The list
// must be in discovery order (outer contours precede the contours inside
// them). bm is scratch space: it is cleared, used for xor-fill insideness
// tests, and left cleared.
//
// Because point 0 of every contour is its upper-left corner, "p is inside
// head" reduces to reading the scratch pixel immediately above p's point 0
// after head has been xor-filled.
func buildTree(ctx context.Context, bm *Bitmap, paths []*Path) ([]*Path, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	bm.ClearAll()

	// each work item is a sublist of contours still to be resolved, plus
	// the slice its head (and the heads of its sibling sublists) attaches to
	type sublist struct {
		paths []*Path
		dst   *[]*Path
	}

	var roots []*Path
	heap := []sublist{{paths, &roots}}

	for len(heap) > 0 {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("resolving nesting: %w", ErrCancelled)
		}

		s := heap[len(heap)-1]
		heap = heap[:len(heap)-1]

		head, rest := s.paths[0], s.paths[1:]
		xorPath(bm, head)
		b := pathBBox(head)

		// partition the remainder into contours inside head and siblings.
		// Once a contour starts at or below the head's bbox nothing after
		// it can be inside either.
		var inside, outside []*Path
		for i, p := range rest {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("resolving nesting: %w", ErrCancelled)
			}
			if p.Pts[0].Y <= b.y0 {
				outside = append(outside, rest[i:]...)
				break
			}
			if bm.Get(p.Pts[0].X, p.Pts[0].Y-1) {
				inside = append(inside, p)
			} else {
				outside = append(outside, p)
			}
		}

		bm.clearBox(b)

		*s.dst = append(*s.dst, head)
		if len(outside) > 0 {
			heap = append(heap, sublist{outside, s.dst})
		}
		if len(inside) > 0 {
			heap = append(heap, sublist{inside, &head.Children})
		}
	}

	return roots, nil
}
