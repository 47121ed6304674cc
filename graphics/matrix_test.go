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

package graphics

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"
)

func TestTransformItransformRoundTrip(t *testing.T) {
	m := matrix.Matrix{2, 0.5, -0.3, 1.7, 10, -4}
	inv, err := Invert("invertmatrix", m)
	if err != nil {
		t.Fatal(err)
	}

	x0, y0 := 12.3, -7.8
	x1, y1 := Transform(m, x0, y0)
	x2, y2 := Transform(inv, x1, y1)

	if math.Abs(x2-x0) > 1e-9 || math.Abs(y2-y0) > 1e-9 {
		t.Errorf("round trip: got (%v, %v), want (%v, %v)", x2, y2, x0, y0)
	}
}

func TestDtransformIdtransformRoundTrip(t *testing.T) {
	m := matrix.Matrix{1.5, 0.2, -0.1, 0.9, 100, 200}
	inv, err := Invert("invertmatrix", m)
	if err != nil {
		t.Fatal(err)
	}
	dx0, dy0 := 3.0, -2.0
	dx1, dy1 := DTransform(m, dx0, dy0)
	dx2, dy2 := DTransform(inv, dx1, dy1)
	if math.Abs(dx2-dx0) > 1e-9 || math.Abs(dy2-dy0) > 1e-9 {
		t.Errorf("round trip: got (%v, %v), want (%v, %v)", dx2, dy2, dx0, dy0)
	}
}

func TestInvertSingularIsUndefinedResult(t *testing.T) {
	m := matrix.Matrix{1, 1, 1, 1, 0, 0} // det = 0
	_, err := Invert("invertmatrix", m)
	if err == nil {
		t.Fatal("expected undefinedresult for a singular matrix")
	}
}
