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
	"seehuhn.de/go/psengine"
	"seehuhn.de/go/psengine/color"
	"seehuhn.de/go/psengine/graphics"
	"seehuhn.de/go/psengine/interp"
)

// registerColor installs the color-state operators (spec §4.8). Unlike
// PDF, PostScript keeps a single current color/color-space pair shared
// by fill and stroke (PLRM §4.8.1), so every setter here updates both
// of graphics.State's FillColor and StrokeColor fields together.
func registerColor(b builder) {
	b.op("setgray", opSetgray)
	b.op("currentgray", opCurrentgray)
	b.op("setrgbcolor", opSetrgbcolor)
	b.op("currentrgbcolor", opCurrentrgbcolor)
	b.op("sethsbcolor", opSethsbcolor)
	b.op("currenthsbcolor", opCurrenthsbcolor)
	b.op("setcmykcolor", opSetcmykcolor)
	b.op("currentcmykcolor", opCurrentcmykcolor)
	b.op("setcolorspace", opSetcolorspace)
	b.op("currentcolorspace", opCurrentcolorspace)
	b.op("setcolor", opSetcolor)
	b.op("currentcolor", opCurrentcolor)
}

func setCurrentColor(s *graphics.State, col color.Color) {
	s.FillColor = col
	s.StrokeColor = col
	s.Touch(graphics.StateFillColor | graphics.StateStrokeColor)
}

func currentSpace(s *graphics.State) color.Space {
	if sp, ok := s.Space.(color.Space); ok && sp != nil {
		return sp
	}
	return color.SpaceDeviceGray
}

func opSetgray(c *interp.Context) error {
	g, _, err := popNum(c, "setgray")
	if err != nil {
		return err
	}
	s := c.Graphics.Current
	s.Space = color.SpaceDeviceGray
	setCurrentColor(s, color.DeviceGray(g))
	return nil
}

func opCurrentgray(c *interp.Context) error {
	col := currentColorOrDefault(c.Graphics.Current)
	X, Y, Z := col.ToXYZ()
	_ = X
	_ = Z
	return push(c, "currentgray", psengine.Real(Y))
}

func currentColorOrDefault(s *graphics.State) color.Color {
	if col, ok := s.FillColor.(color.Color); ok && col != nil {
		return col
	}
	return currentSpace(s).Default()
}

func opSetrgbcolor(c *interp.Context) error {
	vals, _, err := numArgs(c, "setrgbcolor", 3)
	if err != nil {
		return err
	}
	s := c.Graphics.Current
	s.Space = color.SpaceDeviceRGB
	setCurrentColor(s, color.DeviceRGB{R: vals[0], G: vals[1], B: vals[2]})
	return nil
}

func opCurrentrgbcolor(c *interp.Context) error {
	col := currentColorOrDefault(c.Graphics.Current)
	var rgb color.DeviceRGB
	switch v := col.(type) {
	case color.DeviceRGB:
		rgb = v
	case color.DeviceGray:
		rgb = color.DeviceRGB{R: float64(v), G: float64(v), B: float64(v)}
	default:
		r, g, b, _ := col.RGBA()
		rgb = color.DeviceRGB{R: float64(r) / 0xffff, G: float64(g) / 0xffff, B: float64(b) / 0xffff}
	}
	if err := push(c, "currentrgbcolor", psengine.Real(rgb.R)); err != nil {
		return err
	}
	if err := push(c, "currentrgbcolor", psengine.Real(rgb.G)); err != nil {
		return err
	}
	return push(c, "currentrgbcolor", psengine.Real(rgb.B))
}

func opSethsbcolor(c *interp.Context) error {
	vals, _, err := numArgs(c, "sethsbcolor", 3)
	if err != nil {
		return err
	}
	rgb := color.HSBToRGB(vals[0], vals[1], vals[2])
	s := c.Graphics.Current
	s.Space = color.SpaceDeviceRGB
	setCurrentColor(s, rgb)
	return nil
}

func opCurrenthsbcolor(c *interp.Context) error {
	col := currentColorOrDefault(c.Graphics.Current)
	r, g, b, _ := col.RGBA()
	h, s, v := rgbToHSB(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff)
	if err := push(c, "currenthsbcolor", psengine.Real(h)); err != nil {
		return err
	}
	if err := push(c, "currenthsbcolor", psengine.Real(s)); err != nil {
		return err
	}
	return push(c, "currenthsbcolor", psengine.Real(v))
}

// rgbToHSB is the inverse of color.HSBToRGB, needed only by
// currenthsbcolor (PLRM §8.2 requires the round trip but does not
// otherwise need RGB-to-HSB conversion anywhere in this core).
func rgbToHSB(r, g, b float64) (h, s, v float64) {
	max := maxOf3(r, g, b)
	min := minOf3(r, g, b)
	v = max
	delta := max - min
	if max == 0 {
		s = 0
	} else {
		s = delta / max
	}
	if delta == 0 {
		h = 0
		return
	}
	switch max {
	case r:
		h = (g - b) / delta
	case g:
		h = 2 + (b-r)/delta
	default:
		h = 4 + (r-g)/delta
	}
	h /= 6
	if h < 0 {
		h += 1
	}
	return
}

func maxOf3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func minOf3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func opSetcmykcolor(c *interp.Context) error {
	vals, _, err := numArgs(c, "setcmykcolor", 4)
	if err != nil {
		return err
	}
	s := c.Graphics.Current
	s.Space = color.SpaceDeviceCMYK
	setCurrentColor(s, color.DeviceCMYK{C: vals[0], M: vals[1], Y: vals[2], K: vals[3]})
	return nil
}

func opCurrentcmykcolor(c *interp.Context) error {
	col := currentColorOrDefault(c.Graphics.Current)
	var cmyk color.DeviceCMYK
	switch v := col.(type) {
	case color.DeviceCMYK:
		cmyk = v
	case color.DeviceGray:
		cmyk = color.DeviceCMYK{K: 1 - float64(v)}
	default:
		r, g, b, _ := col.RGBA()
		rf, gf, bf := float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff
		k := 1 - maxOf3(rf, gf, bf)
		if k < 1 {
			cmyk = color.DeviceCMYK{C: (1 - rf - k) / (1 - k), M: (1 - gf - k) / (1 - k), Y: (1 - bf - k) / (1 - k), K: k}
		} else {
			cmyk = color.DeviceCMYK{K: 1}
		}
	}
	if err := push(c, "currentcmykcolor", psengine.Real(cmyk.C)); err != nil {
		return err
	}
	if err := push(c, "currentcmykcolor", psengine.Real(cmyk.M)); err != nil {
		return err
	}
	if err := push(c, "currentcmykcolor", psengine.Real(cmyk.Y)); err != nil {
		return err
	}
	return push(c, "currentcmykcolor", psengine.Real(cmyk.K))
}

// opSetcolorspace implements `name|array setcolorspace` (PLRM §4.8.3):
// only the three device families (by name or as an array's family name)
// and the Pattern name are resolved here. Any other name is undefined;
// an array naming any other family (Indexed, Separation, DeviceN,
// CIE-based) fails with unsupported.
func opSetcolorspace(c *interp.Context) error {
	v, err := popAny(c, "setcolorspace")
	if err != nil {
		return err
	}
	s := c.Graphics.Current
	space, err := resolveColorSpace(v)
	if err != nil {
		return err
	}
	s.Space = space
	setCurrentColor(s, space.Default())
	return nil
}

func resolveColorSpace(v psengine.Object) (color.Space, error) {
	switch vv := v.(type) {
	case psengine.Name:
		switch vv.String() {
		case "DeviceGray":
			return color.SpaceDeviceGray, nil
		case "DeviceRGB":
			return color.SpaceDeviceRGB, nil
		case "DeviceCMYK":
			return color.SpaceDeviceCMYK, nil
		case "Pattern":
			return color.SpacePatternColored{}, nil
		default:
			return nil, psengine.NewError("setcolorspace", psengine.ErrUndefined)
		}
	case *psengine.Array:
		if vv.Length == 0 {
			return nil, psengine.NewError("setcolorspace", psengine.ErrRangeCheck)
		}
		items := vv.Items()
		famName, ok := items[0].(psengine.Name)
		if !ok {
			return nil, psengine.NewError("setcolorspace", psengine.ErrTypeCheck)
		}
		switch famName.String() {
		case "DeviceGray":
			return color.SpaceDeviceGray, nil
		case "DeviceRGB":
			return color.SpaceDeviceRGB, nil
		case "DeviceCMYK":
			return color.SpaceDeviceCMYK, nil
		default:
			return nil, psengine.NewError("setcolorspace", psengine.ErrUnsupported)
		}
	default:
		return nil, psengine.NewError("setcolorspace", psengine.ErrTypeCheck)
	}
}

func opCurrentcolorspace(c *interp.Context) error {
	space := currentSpace(c.Graphics.Current)
	arr := c.VM.NewArray([]psengine.Object{psengine.NewName([]byte(space.Family()), false)}, psengine.AccessUnlimited, psengine.AttrLiteral)
	return push(c, "currentcolorspace", arr)
}

// opSetcolor implements `c1 ... cn setcolor` (PLRM §4.8.4): pop the
// current space's N numeric components (or one Integer index for
// Indexed) and resolve them through the space into a Color.
func opSetcolor(c *interp.Context) error {
	s := c.Graphics.Current
	space := currentSpace(s)
	n := space.N()
	col, err := colorFromSpace(c, "setcolor", space, n)
	if err != nil {
		return err
	}
	setCurrentColor(s, col)
	return nil
}

func colorFromSpace(c *interp.Context, op string, space color.Space, n int) (color.Color, error) {
	switch sp := space.(type) {
	case *color.SpaceIndexed:
		idx, err := popInt(c, op)
		if err != nil {
			return nil, err
		}
		return sp.Lookup(idx), nil
	case *color.SpaceSeparation:
		tint, _, err := popNum(c, op)
		if err != nil {
			return nil, err
		}
		return sp.New(tint), nil
	case *color.SpaceDeviceN:
		vals, _, err := numArgs(c, op, n)
		if err != nil {
			return nil, err
		}
		return sp.New(vals), nil
	default:
		if n == 0 {
			return space.Default(), nil
		}
		vals, _, err := numArgs(c, op, n)
		if err != nil {
			return nil, err
		}
		switch space {
		case color.SpaceDeviceGray:
			return color.DeviceGray(vals[0]), nil
		case color.SpaceDeviceRGB:
			return color.DeviceRGB{R: vals[0], G: vals[1], B: vals[2]}, nil
		case color.SpaceDeviceCMYK:
			return color.DeviceCMYK{C: vals[0], M: vals[1], Y: vals[2], K: vals[3]}, nil
		default:
			return space.Default(), nil
		}
	}
}

func opCurrentcolor(c *interp.Context) error {
	s := c.Graphics.Current
	space := currentSpace(s)
	col := currentColorOrDefault(s)
	switch space.(type) {
	case *color.SpaceIndexed:
		return push(c, "currentcolor", psengine.Integer(0))
	default:
		return pushColorComponents(c, "currentcolor", col, space.N())
	}
}

func pushColorComponents(c *interp.Context, op string, col color.Color, n int) error {
	switch v := col.(type) {
	case color.DeviceGray:
		return push(c, op, psengine.Real(float64(v)))
	case color.DeviceRGB:
		if err := push(c, op, psengine.Real(v.R)); err != nil {
			return err
		}
		if err := push(c, op, psengine.Real(v.G)); err != nil {
			return err
		}
		return push(c, op, psengine.Real(v.B))
	case color.DeviceCMYK:
		if err := push(c, op, psengine.Real(v.C)); err != nil {
			return err
		}
		if err := push(c, op, psengine.Real(v.M)); err != nil {
			return err
		}
		if err := push(c, op, psengine.Real(v.Y)); err != nil {
			return err
		}
		return push(c, op, psengine.Real(v.K))
	default:
		if n == 1 {
			_, y, _ := col.ToXYZ()
			return push(c, op, psengine.Real(y))
		}
		return push(c, op, psengine.Real(0))
	}
}
