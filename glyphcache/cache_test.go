// seehuhn.de/go/psengine - a PostScript Level 2 interpreter core
// Copyright (C) 2026  The psengine authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package glyphcache

import (
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/psengine"
)

func TestQuantizeCTMIgnoresTranslation(t *testing.T) {
	// QuantizeCTM only extracts (a,b,c,d): two CTMs placing the same
	// glyph at different positions must quantize to the same scale
	// component (spec §4.6, "the same glyph at any position shares the
	// entry").
	a := QuantizeCTM(matrix.Matrix{2, 0, 0, 2, 0, 0})
	b := QuantizeCTM(matrix.Matrix{2, 0, 0, 2, 100, -50})
	if a != b {
		t.Fatalf("got %v and %v, want equal quantized CTMs", a, b)
	}
}

func TestKeyStringDiffersOnSelector(t *testing.T) {
	base := Key{Font: "Helvetica", Selector: "A"}
	other := Key{Font: "Helvetica", Selector: "B"}
	if base.String() == other.String() {
		t.Fatalf("different selectors produced the same fingerprint")
	}
}

func TestQuantizeSubPixelYRoundsToNearestHalf(t *testing.T) {
	cases := []struct {
		y    float64
		want float64
	}{
		{0.0, 0}, {0.1, 0}, {0.5, 0.5}, {0.49, 0.5}, {0.9, 0}, {1.5, 0.5},
	}
	for _, c := range cases {
		if got := quantizeSubPixelY(c.y); got != c.want {
			t.Errorf("quantizeSubPixelY(%v) = %v, want %v", c.y, got, c.want)
		}
	}
}

func TestPathCacheRoundTrip(t *testing.T) {
	c := New(0)
	key := Key{Font: "F", Selector: "A"}.String()
	entry := PathEntry{Width: 500}
	c.PutPath(key, entry)
	got, ok := c.LookupPath(key)
	if !ok || got.Width != 500 {
		t.Fatalf("got %v, %v, want {Width:500} true", got, ok)
	}
}

func TestPathCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(0)
	c.paths = psengine.NewLRU[string, PathEntry](2)
	c.PutPath("a", PathEntry{Width: 1})
	c.PutPath("b", PathEntry{Width: 2})
	c.LookupPath("a") // touch a, making b the least recently used
	c.PutPath("c", PathEntry{Width: 3})
	if _, ok := c.LookupPath("b"); ok {
		t.Fatalf("b should have been evicted")
	}
	if _, ok := c.LookupPath("a"); !ok {
		t.Fatalf("a should still be cached")
	}
}

func TestBitmapCacheEnforcesByteBudget(t *testing.T) {
	c := New(100)
	c.PutBitmap("a", BitmapEntry{ByteCount: 60})
	c.PutBitmap("b", BitmapEntry{ByteCount: 60})
	if _, ok := c.LookupBitmap("a"); ok {
		t.Fatalf("a should have been evicted to stay within the byte budget")
	}
	if c.BytesUsed() != 60 {
		t.Fatalf("got %d bytes used, want 60", c.BytesUsed())
	}
}

func TestBitmapCacheRejectsEntryLargerThanBudget(t *testing.T) {
	c := New(100)
	c.PutBitmap("huge", BitmapEntry{ByteCount: 200})
	if _, ok := c.LookupBitmap("huge"); ok {
		t.Fatalf("an entry larger than the whole budget must never be cached")
	}
}

func TestBitmapCacheReplacingEntryUpdatesByteCount(t *testing.T) {
	c := New(1000)
	c.PutBitmap("a", BitmapEntry{ByteCount: 100})
	c.PutBitmap("a", BitmapEntry{ByteCount: 50})
	if c.BytesUsed() != 50 {
		t.Fatalf("got %d bytes used after replacing a, want 50", c.BytesUsed())
	}
}
