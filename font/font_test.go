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

package font

import (
	"testing"

	"seehuhn.de/go/geom/matrix"
)

func TestCMapIdentity(t *testing.T) {
	m := NewIdentityCMap()
	codes := m.Codes([]byte{0x00, 0x41, 0x01, 0x02})
	if len(codes) != 2 {
		t.Fatalf("got %d codes, want 2", len(codes))
	}
	if codes[0] != 0x0041 || codes[1] != 0x0102 {
		t.Fatalf("codes = %v", codes)
	}
	for _, c := range codes {
		if got := m.CID(c); got != int(c) {
			t.Errorf("CID(%d) = %d, want %d", c, got, c)
		}
	}
}

func TestCMapRanges(t *testing.T) {
	m := &CMap{
		CodeBytes: 1,
		Ranges: []CIDRange{
			{Low: 0x20, High: 0x7e, CID: 3},
		},
	}
	if got := m.CID(0x20); got != 3 {
		t.Errorf("CID(0x20) = %d, want 3", got)
	}
	if got := m.CID(0x21); got != 4 {
		t.Errorf("CID(0x21) = %d, want 4", got)
	}
	if got := m.CID(0x00); got != 0 {
		t.Errorf("CID(0x00) = %d, want 0 (notdef)", got)
	}
}

func TestFontScaled(t *testing.T) {
	f := Type1(matrix.Matrix{0.001, 0, 0, 0.001, 0, 0}, standardEncoding, nil, nil)
	scaled := f.Scaled(matrix.Matrix{12, 0, 0, 12, 0, 0})
	if scaled.FontMatrix[0] != 0.012 || scaled.FontMatrix[3] != 0.012 {
		t.Fatalf("FontMatrix = %v", scaled.FontMatrix)
	}
	if f.FontMatrix[0] != 0.001 {
		t.Fatalf("original font mutated: %v", f.FontMatrix)
	}
}

func TestCIDIteratorSimple(t *testing.T) {
	f := Type1(matrix.Matrix{1, 0, 0, 1, 0, 0}, standardEncoding, nil, nil)
	it := NewCIDIterator(f, []byte("AB"))
	code, cid, ok := it.Next()
	if !ok || code != 'A' || cid != 'A' {
		t.Fatalf("got (%d,%d,%v), want ('A','A',true)", code, cid, ok)
	}
	_, _, ok = it.Next()
	if !ok {
		t.Fatalf("expected second code")
	}
	_, _, ok = it.Next()
	if ok {
		t.Fatalf("expected iterator exhausted")
	}
}

func TestRegistryFindDefine(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Find("Helvetica"); ok {
		t.Fatalf("expected Helvetica unregistered")
	}
}
