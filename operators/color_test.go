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

package operators

import (
	"math"
	"testing"

	"seehuhn.de/go/psengine"
	"seehuhn.de/go/psengine/color"
)

func TestSetrgbcolorAffectsBothFillAndStroke(t *testing.T) {
	c := newTestContext(t)
	must(t, c.Operand.Push("test", psengine.Real(0.1)))
	must(t, c.Operand.Push("test", psengine.Real(0.2)))
	must(t, c.Operand.Push("test", psengine.Real(0.3)))
	if err := opSetrgbcolor(c); err != nil {
		t.Fatal(err)
	}
	s := c.Graphics.Current
	fill := s.FillColor.(color.DeviceRGB)
	stroke := s.StrokeColor.(color.DeviceRGB)
	if fill != (color.DeviceRGB{R: 0.1, G: 0.2, B: 0.3}) || stroke != fill {
		t.Fatalf("got fill=%v stroke=%v, want equal {0.1 0.2 0.3}", fill, stroke)
	}
}

func TestSetrgbcolorCurrentrgbcolorRoundTrip(t *testing.T) {
	c := newTestContext(t)
	must(t, c.Operand.Push("test", psengine.Real(0.25)))
	must(t, c.Operand.Push("test", psengine.Real(0.5)))
	must(t, c.Operand.Push("test", psengine.Real(0.75)))
	if err := opSetrgbcolor(c); err != nil {
		t.Fatal(err)
	}
	if err := opCurrentrgbcolor(c); err != nil {
		t.Fatal(err)
	}
	b := popFloat(t, c)
	g := popFloat(t, c)
	r := popFloat(t, c)
	if r != 0.25 || g != 0.5 || b != 0.75 {
		t.Fatalf("got (%v,%v,%v), want (0.25,0.5,0.75)", r, g, b)
	}
}

func TestSethsbcolorCurrenthsbcolorRoundTrip(t *testing.T) {
	c := newTestContext(t)
	must(t, c.Operand.Push("test", psengine.Real(0.3)))
	must(t, c.Operand.Push("test", psengine.Real(0.6)))
	must(t, c.Operand.Push("test", psengine.Real(0.9)))
	if err := opSethsbcolor(c); err != nil {
		t.Fatal(err)
	}
	if err := opCurrenthsbcolor(c); err != nil {
		t.Fatal(err)
	}
	v := popFloat(t, c)
	s := popFloat(t, c)
	h := popFloat(t, c)
	if math.Abs(h-0.3) > 1e-6 || math.Abs(s-0.6) > 1e-6 || math.Abs(v-0.9) > 1e-6 {
		t.Fatalf("got (%v,%v,%v), want (0.3,0.6,0.9)", h, s, v)
	}
}

func TestSetcolorspaceDeviceCMYKThenSetcolor(t *testing.T) {
	c := newTestContext(t)
	must(t, c.Operand.Push("test", psengine.NewName([]byte("DeviceCMYK"), false)))
	if err := opSetcolorspace(c); err != nil {
		t.Fatal(err)
	}
	for _, v := range []float64{0.1, 0.2, 0.3, 0.4} {
		must(t, c.Operand.Push("test", psengine.Real(v)))
	}
	if err := opSetcolor(c); err != nil {
		t.Fatal(err)
	}
	cmyk := c.Graphics.Current.FillColor.(color.DeviceCMYK)
	want := color.DeviceCMYK{C: 0.1, M: 0.2, Y: 0.3, K: 0.4}
	if cmyk != want {
		t.Fatalf("got %v, want %v", cmyk, want)
	}
}

func TestSetcolorspaceUnknownNameIsUndefined(t *testing.T) {
	c := newTestContext(t)
	must(t, c.Operand.Push("test", psengine.NewName([]byte("Bogus"), false)))
	err := opSetcolorspace(c)
	wantErrKind(t, err, psengine.ErrUndefined)
}

func TestSetcolorWithSeparationPopsOneTint(t *testing.T) {
	c := newTestContext(t)
	sep, err := color.Separation("Spot", color.SpaceDeviceGray, func(tint []float64) []float64 {
		return []float64{1 - tint[0]}
	})
	if err != nil {
		t.Fatal(err)
	}
	c.Graphics.Current.Space = sep
	must(t, c.Operand.Push("test", psengine.Real(0.4)))
	if err := opSetcolor(c); err != nil {
		t.Fatal(err)
	}
	if c.Operand.Len() != 0 {
		t.Fatalf("operand stack not empty after setcolor: %v", c.Operand.All())
	}
}
