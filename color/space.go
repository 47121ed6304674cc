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

// Space is a PostScript color space, as installed by `setcolorspace` and
// consumed by `setcolor` (PLRM §4.8, §7). N reports how many numeric
// operands `setcolor` pops for this space (or, for Indexed, the single
// index operand).
type Space interface {
	Family() string
	N() int
	Default() Color
}

type spaceDeviceGray struct{}

func (spaceDeviceGray) Family() string { return "DeviceGray" }
func (spaceDeviceGray) N() int         { return 1 }
func (spaceDeviceGray) Default() Color { return DeviceGray(0) }

type spaceDeviceRGB struct{}

func (spaceDeviceRGB) Family() string { return "DeviceRGB" }
func (spaceDeviceRGB) N() int         { return 3 }
func (spaceDeviceRGB) Default() Color { return DeviceRGB{0, 0, 0} }

type spaceDeviceCMYK struct{}

func (spaceDeviceCMYK) Family() string { return "DeviceCMYK" }
func (spaceDeviceCMYK) N() int         { return 4 }
func (spaceDeviceCMYK) Default() Color { return DeviceCMYK{0, 0, 0, 1} }

// SpaceDeviceGray, SpaceDeviceRGB and SpaceDeviceCMYK are the three
// built-in device color spaces, always available without
// `setcolorspace`.
var (
	SpaceDeviceGray Space = spaceDeviceGray{}
	SpaceDeviceRGB  Space = spaceDeviceRGB{}
	SpaceDeviceCMYK Space = spaceDeviceCMYK{}
)

// SpaceIndexed is a `/Indexed` color space (PLRM §7.3.6): a base space
// plus a lookup table of already-resolved base colors; `setcolor` with
// an Indexed space pops one integer index into Table.
type SpaceIndexed struct {
	Base  Space
	Table []Color
}

// Indexed validates and constructs an Indexed space over table, which
// must hold at least one entry and at most 256 (the PostScript
// hival limit).
func Indexed(table []Color) (*SpaceIndexed, error) {
	if len(table) == 0 || len(table) > 256 {
		return nil, errRangeCheck("Indexed table size")
	}
	return &SpaceIndexed{Table: table}, nil
}

func (s *SpaceIndexed) Family() string { return "Indexed" }
func (s *SpaceIndexed) N() int         { return 1 }
func (s *SpaceIndexed) Default() Color { return s.Table[0] }

// Lookup resolves an index into this space's table, clamping like
// PostScript's own out-of-range index behavior (`rangecheck` is the
// caller's responsibility; Lookup itself just clamps defensively so a
// renderer never indexes out of bounds).
func (s *SpaceIndexed) Lookup(index int) Color {
	if index < 0 {
		index = 0
	}
	if index >= len(s.Table) {
		index = len(s.Table) - 1
	}
	return s.Table[index]
}

// TintTransform maps a Separation/DeviceN tint (one component per input
// name) to the alternate space's components. Built from a PostScript
// procedure by package operators (which owns a *interp.Context to run
// it), so this package stays free of an interp dependency.
type TintTransform func(tint []float64) []float64

// SpaceSeparation is a `/Separation` color space (PLRM §7.3.7): one
// named colorant, mapped through Transform into Alternate.
type SpaceSeparation struct {
	Name      string
	Alternate Space
	Transform TintTransform
}

func Separation(name string, alternate Space, transform TintTransform) (*SpaceSeparation, error) {
	if alternate == nil || transform == nil {
		return nil, errRangeCheck("Separation requires an alternate space and tint transform")
	}
	return &SpaceSeparation{Name: name, Alternate: alternate, Transform: transform}, nil
}

func (s *SpaceSeparation) Family() string { return "Separation" }
func (s *SpaceSeparation) N() int         { return 1 }
func (s *SpaceSeparation) Default() Color { return s.New(1) }

// New applies tint through Transform into the alternate space's Color.
func (s *SpaceSeparation) New(tint float64) Color {
	return alternateColor(s.Alternate, s.Transform([]float64{tint}))
}

// SpaceDeviceN is a `/DeviceN` color space (PLRM §7.3.8): several named
// colorants, jointly mapped through Transform into Alternate.
type SpaceDeviceN struct {
	Names     []string
	Alternate Space
	Transform TintTransform
}

func DeviceN(names []string, alternate Space, transform TintTransform) (*SpaceDeviceN, error) {
	if len(names) == 0 || alternate == nil || transform == nil {
		return nil, errRangeCheck("DeviceN requires names, an alternate space and tint transform")
	}
	return &SpaceDeviceN{Names: names, Alternate: alternate, Transform: transform}, nil
}

func (s *SpaceDeviceN) Family() string { return "DeviceN" }
func (s *SpaceDeviceN) N() int         { return len(s.Names) }
func (s *SpaceDeviceN) Default() Color {
	return alternateColor(s.Alternate, s.Transform(make([]float64, len(s.Names))))
}

func (s *SpaceDeviceN) New(tint []float64) Color {
	return alternateColor(s.Alternate, s.Transform(tint))
}

// alternateColor constructs a Color in space from resolved components,
// the common tail of Separation.New and DeviceN.New.
func alternateColor(space Space, c []float64) Color {
	switch sp := space.(type) {
	case spaceDeviceGray:
		return DeviceGray(c[0])
	case spaceDeviceRGB:
		return DeviceRGB{c[0], c[1], c[2]}
	case spaceDeviceCMYK:
		return DeviceCMYK{c[0], c[1], c[2], c[3]}
	case *SpaceCalGray:
		return sp.New(c[0])
	case *SpaceCalRGB:
		return sp.New(c[0], c[1], c[2])
	default:
		return DeviceGray(0)
	}
}

// SpacePatternColored and SpacePatternUncolored are the two `/Pattern`
// color space variants (PLRM §7.3.9, §4.9): colored patterns carry
// their own color, uncolored patterns are painted in whatever color is
// current when `setpattern` installs them, drawn from Base.
type SpacePatternColored struct{}

func (SpacePatternColored) Family() string { return "Pattern" }
func (SpacePatternColored) N() int         { return 0 }
func (SpacePatternColored) Default() Color { return nil }

type SpacePatternUncolored struct{ Base Space }

func (s SpacePatternUncolored) Family() string { return "Pattern" }
func (s SpacePatternUncolored) N() int         { return s.Base.N() }
func (s SpacePatternUncolored) Default() Color { return s.Base.Default() }

// PatternColor binds a pattern resource (concretely *font-free opaque
// dictionary handle owned by package operators) to its space; interp's
// display-list PatternFill record (package displaylist) carries the
// pattern's key separately, so Color here only needs to round-trip
// through setcolor/currentcolor.
type PatternColor struct {
	Pattern any
	Under   Color // nil for colored patterns
}

func (c PatternColor) ToXYZ() (X, Y, Z float64) {
	if c.Under != nil {
		return c.Under.ToXYZ()
	}
	return 0, 0, 0
}

func (c PatternColor) RGBA() (r, g, b, a uint32) {
	if c.Under != nil {
		return c.Under.RGBA()
	}
	return 0, 0, 0, 0xffff
}
