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

// Package color implements the PostScript color model: the device color
// spaces (`setgray`/`setrgbcolor`/`setcmykcolor`/`sethsbcolor`), the
// CIE-based spaces (CalGray/CalRGB/Lab), ICC-based color (wiring
// seehuhn.de/go/icc), Indexed, Separation and DeviceN, and the color
// management Policy consumed by `setcolor` and the show-variant
// operators (spec §1, "color management is a pluggable policy").
package color

// Color is a fully resolved, renderable color: any Space's New method
// produces one, and every Color can report the CIE XYZ tristimulus
// values a device-independent renderer needs plus a convenience sRGB
// approximation for back-ends that only want RGBA.
type Color interface {
	// ToXYZ returns CIE 1931 XYZ tristimulus values relative to the D50
	// profile connection space (ICC's reference illuminant).
	ToXYZ() (X, Y, Z float64)
	// RGBA implements Go's image/color.Color so a Color can be handed
	// directly to golang.org/x/image/draw-based back-ends.
	RGBA() (r, g, b, a uint32)
}

// DeviceGray is a /DeviceGray color; g ranges over [0, 1] (0 = black).
type DeviceGray float64

func (c DeviceGray) ToXYZ() (X, Y, Z float64) {
	return grayToXYZ(float64(c))
}

func (c DeviceGray) RGBA() (r, g, b, a uint32) {
	v := toUint16(float64(c))
	return uint32(v), uint32(v), uint32(v), 0xffff
}

// DeviceRGB is a /DeviceRGB color; each component ranges over [0, 1].
type DeviceRGB struct{ R, G, B float64 }

func (c DeviceRGB) ToXYZ() (X, Y, Z float64) {
	return rgbToXYZ(c.R, c.G, c.B)
}

func (c DeviceRGB) RGBA() (r, g, b, a uint32) {
	return uint32(toUint16(c.R)), uint32(toUint16(c.G)), uint32(toUint16(c.B)), 0xffff
}

// DeviceCMYK is a /DeviceCMYK color; each component ranges over [0, 1].
type DeviceCMYK struct{ C, M, Y, K float64 }

func (c DeviceCMYK) toRGB() (r, g, b float64) {
	r = 1 - min1(c.C+c.K)
	g = 1 - min1(c.M+c.K)
	b = 1 - min1(c.Y+c.K)
	return
}

func (c DeviceCMYK) ToXYZ() (X, Y, Z float64) {
	r, g, b := c.toRGB()
	return rgbToXYZ(r, g, b)
}

func (c DeviceCMYK) RGBA() (r, g, b, a uint32) {
	rf, gf, bf := c.toRGB()
	return uint32(toUint16(rf)), uint32(toUint16(gf)), uint32(toUint16(bf)), 0xffff
}

func min1(x float64) float64 {
	if x > 1 {
		return 1
	}
	return x
}

// HSBToRGB converts an HSB (HSV) triple, each in [0, 1], to DeviceRGB,
// implementing the `sethsbcolor` operator's color model (PLRM §8.2).
func HSBToRGB(h, s, b float64) DeviceRGB {
	if s == 0 {
		return DeviceRGB{b, b, b}
	}
	h = h - floor(h)
	h *= 6
	i := int(h)
	f := h - float64(i)
	p := b * (1 - s)
	q := b * (1 - s*f)
	t := b * (1 - s*(1-f))
	switch i % 6 {
	case 0:
		return DeviceRGB{b, t, p}
	case 1:
		return DeviceRGB{q, b, p}
	case 2:
		return DeviceRGB{p, b, t}
	case 3:
		return DeviceRGB{p, q, b}
	case 4:
		return DeviceRGB{t, p, b}
	default:
		return DeviceRGB{b, p, q}
	}
}

func floor(x float64) float64 {
	i := int64(x)
	if x < 0 && float64(i) != x {
		i--
	}
	return float64(i)
}

// toUint16 scales a [0, 1] component to a [0, 0xffff] RGBA component,
// clamping out-of-range input the way device color operators treat
// out-of-gamut operands (PLRM: values are clipped to the valid range).
func toUint16(x float64) uint16 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 0xffff
	}
	return uint16(x*0xffff + 0.5)
}

func toUint32(x float64) uint32 { return uint32(toUint16(x)) }
