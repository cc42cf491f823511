package trace

import "testing"

// bitmapFromASCII builds a bitmap from rows of '.' and 'X', first row on
// top. Handy for eyeballing fixtures in the tests below.
func bitmapFromASCII(t *testing.T, rows ...string) *Bitmap {
	t.Helper()
	h := len(rows)
	w := len(rows[0])
	bm, err := NewBitmap(w, h)
	if err != nil {
		t.Fatalf("NewBitmap(%d,%d): %v", w, h, err)
	}
	for r, row := range rows {
		if len(row) != w {
			t.Fatalf("row %d has length %d, want %d", r, len(row), w)
		}
		for x := 0; x < w; x++ {
			if row[x] == 'X' {
				bm.Set(x, h-1-r)
			}
		}
	}
	return bm
}

// fillRect sets the pixels x0..x1, y0..y1 inclusive
func fillRect(bm *Bitmap, x0, y0, x1, y1 int) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			bm.Set(x, y)
		}
	}
}

// fillDisk sets every pixel whose center lies within radius r of (cx,cy)
func fillDisk(bm *Bitmap, cx, cy int, r float64) {
	for y := 0; y < bm.Height(); y++ {
		for x := 0; x < bm.Width(); x++ {
			dx := float64(x) + 0.5 - float64(cx)
			dy := float64(y) + 0.5 - float64(cy)
			if dx*dx+dy*dy <= r*r {
				bm.Set(x, y)
			}
		}
	}
}
