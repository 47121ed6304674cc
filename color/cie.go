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

package color

import "math"

// WhitePointD50 and WhitePointD65 are the two reference illuminants
// PostScript's CIE-based color spaces are defined against (PLRM §7.3,
// "CIE-Based Color Spaces"); XYZ is always expressed relative to D50
// (the ICC profile connection space) internally, with Bradford
// chromatic adaptation applied when a space's own WhitePoint differs.
var (
	WhitePointD50 = [3]float64{0.9642, 1.0, 0.8249}
	WhitePointD65 = [3]float64{0.9505, 1.0, 1.0890}
)

// bradfordAdapt chromatically adapts an XYZ triple from one reference
// white to another using the Bradford cone-response transform, the
// standard method ICC profile connection-space conversions use.
func bradfordAdapt(X, Y, Z float64, src, dst [3]float64) (float64, float64, float64) {
	var bradford = [3][3]float64{
		{0.8951, 0.2664, -0.1614},
		{-0.7502, 1.7135, 0.0367},
		{0.0389, -0.0685, 1.0296},
	}
	var bradfordInv = [3][3]float64{
		{0.9869929, -0.1470543, 0.1599627},
		{0.4323053, 0.5183603, 0.0492912},
		{-0.0085287, 0.0400428, 0.9684867},
	}

	apply := func(m [3][3]float64, x, y, z float64) (float64, float64, float64) {
		return m[0][0]*x + m[0][1]*y + m[0][2]*z,
			m[1][0]*x + m[1][1]*y + m[1][2]*z,
			m[2][0]*x + m[2][1]*y + m[2][2]*z
	}

	srcCone := func() (float64, float64, float64) { return apply(bradford, src[0], src[1], src[2]) }
	dstCone := func() (float64, float64, float64) { return apply(bradford, dst[0], dst[1], dst[2]) }

	Ls, Ms, Ss := srcCone()
	Ld, Md, Sd := dstCone()

	rho, gamma, beta := apply(bradford, X, Y, Z)
	rho *= Ld / Ls
	gamma *= Md / Ms
	beta *= Sd / Ss

	return apply(bradfordInv, rho, gamma, beta)
}

// grayToXYZ treats DeviceGray as CalGray with the D50 whitepoint and
// gamma 1, the simplest CIE interpretation of an uncalibrated gray
// value (PLRM Table 4.12's note that device color spaces are rendered
// "as if" calibrated to the output device's native characteristics; this
// implementation's baseline assumption is D50/linear).
func grayToXYZ(g float64) (X, Y, Z float64) {
	return WhitePointD50[0] * g, WhitePointD50[1] * g, WhitePointD50[2] * g
}

// rgbToXYZ converts linear-light sRGB primaries (D65-referenced) to
// XYZ, then Bradford-adapts to the D50 profile connection space.
func rgbToXYZ(r, g, b float64) (X, Y, Z float64) {
	lr, lg, lb := srgbToLinear(r), srgbToLinear(g), srgbToLinear(b)
	X65 := 0.4124564*lr + 0.3575761*lg + 0.1804375*lb
	Y65 := 0.2126729*lr + 0.7151522*lg + 0.0721750*lb
	Z65 := 0.0193339*lr + 0.1191920*lg + 0.9503041*lb
	return bradfordAdapt(X65, Y65, Z65, WhitePointD65, WhitePointD50)
}

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func linearToSRGB(c float64) float64 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}

// xyzToSRGB converts D50 XYZ back to gamma-encoded sRGB, the inverse of
// rgbToXYZ, used by back-ends that need an RGBA approximation of any
// Color regardless of its native space.
func xyzToSRGB(X, Y, Z float64) (r, g, b float64) {
	X65, Y65, Z65 := bradfordAdapt(X, Y, Z, WhitePointD50, WhitePointD65)
	lr := 3.2404542*X65 - 1.5371385*Y65 - 0.4985314*Z65
	lg := -0.9692660*X65 + 1.8760108*Y65 + 0.0415560*Z65
	lb := 0.0556434*X65 - 0.2040259*Y65 + 1.0572252*Z65
	return linearToSRGB(lr), linearToSRGB(lg), linearToSRGB(lb)
}

// SpaceCalGray is a `/CalGray` color space (PLRM §7.3.1): a single gray
// component with a gamma and a whitepoint/matrix adaptation to D50.
type SpaceCalGray struct {
	WhitePoint [3]float64
	BlackPoint [3]float64
	Gamma      float64
}

// CalGray validates and constructs a CalGray space. A nil blackPoint
// defaults to (0, 0, 0); gamma defaults to 1 when 0 is passed.
func CalGray(whitePoint [3]float64, blackPoint []float64, gamma float64) (*SpaceCalGray, error) {
	if gamma == 0 {
		gamma = 1
	}
	s := &SpaceCalGray{WhitePoint: whitePoint, Gamma: gamma}
	if blackPoint != nil {
		if len(blackPoint) != 3 {
			return nil, errRangeCheck("CalGray blackpoint")
		}
		s.BlackPoint = [3]float64{blackPoint[0], blackPoint[1], blackPoint[2]}
	}
	return s, nil
}

func (s *SpaceCalGray) Family() string { return "CalGray" }
func (s *SpaceCalGray) N() int         { return 1 }
func (s *SpaceCalGray) Default() Color { return colorCalGray{space: s, Value: 0} }

// New constructs a gray value in this space.
func (s *SpaceCalGray) New(value float64) Color {
	return colorCalGray{space: s, Value: value}
}

type colorCalGray struct {
	space *SpaceCalGray
	Value float64
}

func (c colorCalGray) ToXYZ() (X, Y, Z float64) {
	a := math.Pow(c.Value, c.space.Gamma)
	wp := c.space.WhitePoint
	X65, Y65, Z65 := wp[0]*a, wp[1]*a, wp[2]*a
	return bradfordAdapt(X65, Y65, Z65, wp, WhitePointD50)
}

func (c colorCalGray) RGBA() (r, g, b, a uint32) {
	X, Y, Z := c.ToXYZ()
	rf, gf, bf := xyzToSRGB(X, Y, Z)
	return toUint32(rf), toUint32(gf), toUint32(bf), 0xffff
}

// SpaceCalRGB is a `/CalRGB` color space (PLRM §7.3.2).
type SpaceCalRGB struct {
	WhitePoint [3]float64
	BlackPoint [3]float64
	Gamma      [3]float64
	Matrix     [9]float64 // row-major 3x3 linear RGB -> XYZ (relative to WhitePoint)
}

// CalRGB validates and constructs a CalRGB space; nil gamma defaults to
// (1,1,1), nil matrix defaults to the identity.
func CalRGB(whitePoint [3]float64, blackPoint, gamma, matrix []float64) (*SpaceCalRGB, error) {
	s := &SpaceCalRGB{WhitePoint: whitePoint, Gamma: [3]float64{1, 1, 1}}
	s.Matrix = [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	if blackPoint != nil {
		if len(blackPoint) != 3 {
			return nil, errRangeCheck("CalRGB blackpoint")
		}
		s.BlackPoint = [3]float64{blackPoint[0], blackPoint[1], blackPoint[2]}
	}
	if gamma != nil {
		if len(gamma) != 3 {
			return nil, errRangeCheck("CalRGB gamma")
		}
		s.Gamma = [3]float64{gamma[0], gamma[1], gamma[2]}
	}
	if matrix != nil {
		if len(matrix) != 9 {
			return nil, errRangeCheck("CalRGB matrix")
		}
		copy(s.Matrix[:], matrix)
	}
	return s, nil
}

func (s *SpaceCalRGB) Family() string { return "CalRGB" }
func (s *SpaceCalRGB) N() int         { return 3 }
func (s *SpaceCalRGB) Default() Color { return colorCalRGB{space: s, Values: [3]float64{0, 0, 0}} }

func (s *SpaceCalRGB) New(a, b, c float64) Color {
	return colorCalRGB{space: s, Values: [3]float64{a, b, c}}
}

type colorCalRGB struct {
	space  *SpaceCalRGB
	Values [3]float64
}

func (c colorCalRGB) ToXYZ() (X, Y, Z float64) {
	g := c.space.Gamma
	A := math.Pow(c.Values[0], g[0])
	B := math.Pow(c.Values[1], g[1])
	C := math.Pow(c.Values[2], g[2])
	m := c.space.Matrix
	X65 := m[0]*A + m[1]*B + m[2]*C
	Y65 := m[3]*A + m[4]*B + m[5]*C
	Z65 := m[6]*A + m[7]*B + m[8]*C
	return bradfordAdapt(X65, Y65, Z65, c.space.WhitePoint, WhitePointD50)
}

func (c colorCalRGB) RGBA() (r, g, b, a uint32) {
	X, Y, Z := c.ToXYZ()
	rf, gf, bf := xyzToSRGB(X, Y, Z)
	return toUint32(rf), toUint32(gf), toUint32(bf), 0xffff
}

// SpaceLab is a `/Lab` color space (PLRM §7.3.3): CIE L*a*b*, with L in
// [0, 100] and a*/b* bounded by Range (default [-100, 100]).
type SpaceLab struct {
	WhitePoint [3]float64
	BlackPoint [3]float64
	Range      [4]float64 // aMin, aMax, bMin, bMax
}

func Lab(whitePoint [3]float64, blackPoint, rng []float64) (*SpaceLab, error) {
	s := &SpaceLab{WhitePoint: whitePoint, Range: [4]float64{-100, 100, -100, 100}}
	if blackPoint != nil {
		if len(blackPoint) != 3 {
			return nil, errRangeCheck("Lab blackpoint")
		}
		s.BlackPoint = [3]float64{blackPoint[0], blackPoint[1], blackPoint[2]}
	}
	if rng != nil {
		if len(rng) != 4 {
			return nil, errRangeCheck("Lab range")
		}
		s.Range = [4]float64{rng[0], rng[1], rng[2], rng[3]}
	}
	return s, nil
}

func (s *SpaceLab) Family() string { return "Lab" }
func (s *SpaceLab) N() int         { return 3 }
func (s *SpaceLab) Default() Color { return colorLab{space: s, Values: [3]float64{0, 0, 0}} }

// New constructs an L*a*b* color, rangecheck-validating a*/b* against
// the space's Range.
func (s *SpaceLab) New(l, a, b float64) (Color, error) {
	if a < s.Range[0] || a > s.Range[1] || b < s.Range[2] || b > s.Range[3] {
		return nil, errRangeCheck("Lab component out of range")
	}
	return colorLab{space: s, Values: [3]float64{l, a, b}}, nil
}

type colorLab struct {
	space  *SpaceLab
	Values [3]float64
}

func (c colorLab) ToXYZ() (X, Y, Z float64) {
	L, a, b := c.Values[0], c.Values[1], c.Values[2]
	fy := (L + 16) / 116
	fx := fy + a/500
	fz := fy - b/200
	g := func(t float64) float64 {
		if t > 6.0/29 {
			return t * t * t
		}
		return 3 * (6.0 / 29) * (6.0 / 29) * (t - 4.0/29)
	}
	wp := c.space.WhitePoint
	X65, Y65, Z65 := wp[0]*g(fx), wp[1]*g(fy), wp[2]*g(fz)
	return bradfordAdapt(X65, Y65, Z65, wp, WhitePointD50)
}

func (c colorLab) RGBA() (r, g, b, a uint32) {
	X, Y, Z := c.ToXYZ()
	rf, gf, bf := xyzToSRGB(X, Y, Z)
	return toUint32(rf), toUint32(gf), toUint32(bf), 0xffff
}

func errRangeCheck(msg string) error { return &spaceError{msg} }

type spaceError struct{ msg string }

func (e *spaceError) Error() string { return "color: " + e.msg }
