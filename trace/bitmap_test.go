package trace

import "testing"

func TestNewBitmapValidation(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 5}, {5, -1}} {
		if _, err := NewBitmap(dims[0], dims[1]); err == nil {
			t.Errorf("NewBitmap(%d,%d): expected error", dims[0], dims[1])
		}
	}
	if _, err := NewBitmap(1, 1); err != nil {
		t.Errorf("NewBitmap(1,1): %v", err)
	}
}

func TestBitmapGetSet(t *testing.T) {
	bm, _ := NewBitmap(100, 10)

	bm.Set(0, 0)
	bm.Set(99, 9)
	bm.Set(63, 5)
	bm.Set(64, 5)

	if !bm.Get(0, 0) || !bm.Get(99, 9) || !bm.Get(63, 5) || !bm.Get(64, 5) {
		t.Error("set pixels read back as unset")
	}
	if bm.Get(1, 0) || bm.Get(64, 6) {
		t.Error("unset pixels read back as set")
	}

	// out of range: reads false, writes ignored
	if bm.Get(-1, 0) || bm.Get(100, 0) || bm.Get(0, -1) || bm.Get(0, 10) {
		t.Error("out-of-range Get must return false")
	}
	bm.Set(-1, 0)
	bm.Set(100, 3)

	bm.Clear(63, 5)
	if bm.Get(63, 5) {
		t.Error("Clear did not clear")
	}
	bm.Invert(63, 5)
	if !bm.Get(63, 5) {
		t.Error("Invert did not set")
	}
	bm.Put(63, 5, false)
	if bm.Get(63, 5) {
		t.Error("Put(false) did not clear")
	}
}

func TestBitmapClone(t *testing.T) {
	bm, _ := NewBitmap(70, 4)
	bm.Set(3, 2)
	bm.Set(69, 0)

	c := bm.Clone()
	c.Clear(3, 2)
	if !bm.Get(3, 2) {
		t.Error("Clone shares storage with original")
	}
	if !c.Get(69, 0) {
		t.Error("Clone lost a pixel")
	}
}

func TestXorRange(t *testing.T) {
	bm, _ := NewBitmap(130, 3)

	// invert [0, 70) on row 1
	bm.XorRange(70, 1, 0)
	for x := 0; x < 130; x++ {
		want := x < 70
		if bm.Get(x, 1) != want {
			t.Fatalf("after XorRange(70,1,0): pixel %d = %v, want %v", x, bm.Get(x, 1), want)
		}
	}

	// inverting again restores
	bm.XorRange(70, 1, 0)
	for x := 0; x < 130; x++ {
		if bm.Get(x, 1) {
			t.Fatalf("double xor left pixel %d set", x)
		}
	}

	// x below the aligned reference: inverts [x, xa)
	bm.XorRange(5, 0, 64)
	for x := 0; x < 130; x++ {
		want := x >= 5 && x < 64
		if bm.Get(x, 0) != want {
			t.Fatalf("after XorRange(5,0,64): pixel %d = %v, want %v", x, bm.Get(x, 0), want)
		}
	}
}

func TestFindNextSet(t *testing.T) {
	bm, _ := NewBitmap(200, 6)
	bm.Set(130, 4)
	bm.Set(5, 2)
	bm.ClearExcess()

	// scan starts at the top row and proceeds downward
	x, y, ok := bm.FindNextSet(0, 5)
	if !ok || x != 130 || y != 4 {
		t.Fatalf("FindNextSet(0,5) = (%d,%d,%v), want (130,4,true)", x, y, ok)
	}

	// continuing past the first hit finds the second
	bm.Clear(130, 4)
	x, y, ok = bm.FindNextSet(130, 4)
	if !ok || x != 5 || y != 2 {
		t.Fatalf("FindNextSet(130,4) = (%d,%d,%v), want (5,2,true)", x, y, ok)
	}

	// the scan may return a pixel earlier in the same word
	bm.Set(64, 2)
	x, y, ok = bm.FindNextSet(100, 2)
	if !ok || x != 64 || y != 2 {
		t.Fatalf("FindNextSet(100,2) = (%d,%d,%v), want (64,2,true)", x, y, ok)
	}

	bm.Clear(5, 2)
	bm.Clear(64, 2)
	if _, _, ok := bm.FindNextSet(0, 5); ok {
		t.Error("FindNextSet on empty bitmap reported a hit")
	}
}

func TestClearExcess(t *testing.T) {
	bm, _ := NewBitmap(10, 2)
	// dirty the padding bits directly
	bm.words[0] = allBits
	bm.ClearExcess()
	for x := 0; x < 10; x++ {
		if !bm.Get(x, 0) {
			t.Fatalf("ClearExcess cleared in-range pixel %d", x)
		}
	}
	if bm.words[0]<<10 != 0 {
		t.Error("ClearExcess left padding bits set")
	}
}
