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

// Package truetype decodes `glyf`-table glyph outlines for Type 42
// (embedded TrueType) fonts (spec §4.6). Composite-glyph component
// decoding (the flag byte layout, the word/byte and scale/2x2
// alternatives) is ported from seehuhn.de/go/sfnt's
// decodeGlyphComposite/GlyphComponent.Unpack; simple-glyph contour
// decoding (on/off-curve point flags, delta-encoded coordinates,
// implied on-curve midpoints between consecutive off-curve points)
// follows the OpenType `glyf` table specification directly, since the
// retrieved pack's sfnt example covered only the composite half.
package truetype

import (
	"encoding/binary"
	"errors"

	"seehuhn.de/go/geom/matrix"
)

var (
	ErrMalformed        = errors.New("truetype: malformed glyf table")
	ErrGlyphIndex       = errors.New("truetype: glyph index out of range")
	ErrComponentTooDeep = errors.New("truetype: composite glyph nesting too deep")
)

// SegOp is the kind of one outline segment. TrueType contours are
// quadratic, unlike the cubic PostScript/CFF outlines elsewhere in this
// package tree.
type SegOp int

const (
	SegMoveTo SegOp = iota
	SegLineTo
	SegQuadTo
	SegClose
)

type Segment struct {
	Op     SegOp
	X, Y   float64
	CX, CY float64 // control point, SegQuadTo only
}

// Font is the minimal subset of an sfnt font this package needs: the
// `loca` offsets and the raw `glyf` table bytes.
type Font struct {
	Loca []uint32
	Glyf []byte

	// UnitsPerEm is the font's design grid, from `head`; FontMatrix
	// construction (spec §4.6) divides by this to reach the
	// PostScript-mandated 1000-unit-em convention's equivalent (here,
	// a 1-unit em, since callers apply their own scale).
	UnitsPerEm uint16
}

const maxComponentDepth = 8

// GlyphOutline decodes glyph gid's contours, recursively resolving
// composite-glyph components.
func (f *Font) GlyphOutline(gid int) ([]Segment, error) {
	return f.glyphOutline(gid, matrix.Matrix{1, 0, 0, 1, 0, 0}, 0)
}

func (f *Font) glyphOutline(gid int, trfm matrix.Matrix, depth int) ([]Segment, error) {
	if depth > maxComponentDepth {
		return nil, ErrComponentTooDeep
	}
	data, err := f.glyphData(gid)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil // space-like glyph with an empty outline
	}
	if len(data) < 10 {
		return nil, ErrMalformed
	}
	numContours := int(int16(binary.BigEndian.Uint16(data[0:2])))
	body := data[10:]
	if numContours >= 0 {
		segs, err := decodeSimpleGlyph(body, numContours)
		if err != nil {
			return nil, err
		}
		return transformSegments(segs, trfm), nil
	}
	return f.decodeCompositeGlyph(body, trfm, depth)
}

func (f *Font) glyphData(gid int) ([]byte, error) {
	if gid < 0 || gid+1 >= len(f.Loca) {
		return nil, ErrGlyphIndex
	}
	start, end := f.Loca[gid], f.Loca[gid+1]
	if end < start || int(end) > len(f.Glyf) {
		return nil, ErrMalformed
	}
	return f.Glyf[start:end], nil
}

func transformSegments(segs []Segment, m matrix.Matrix) []Segment {
	if m == (matrix.Matrix{1, 0, 0, 1, 0, 0}) {
		return segs
	}
	out := make([]Segment, len(segs))
	tx := func(x, y float64) (float64, float64) {
		return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
	}
	for i, s := range segs {
		s.X, s.Y = tx(s.X, s.Y)
		if s.Op == SegQuadTo {
			s.CX, s.CY = tx(s.CX, s.CY)
		}
		out[i] = s
	}
	return out
}

// decodeSimpleGlyph parses a non-composite `glyf` entry's contours.
func decodeSimpleGlyph(data []byte, numContours int) ([]Segment, error) {
	if numContours == 0 {
		return nil, nil
	}
	if len(data) < numContours*2+2 {
		return nil, ErrMalformed
	}
	endPts := make([]int, numContours)
	for i := 0; i < numContours; i++ {
		endPts[i] = int(binary.BigEndian.Uint16(data[i*2 : i*2+2]))
	}
	numPoints := endPts[numContours-1] + 1
	pos := numContours * 2

	insLen := int(binary.BigEndian.Uint16(data[pos : pos+2]))
	pos += 2 + insLen
	if pos > len(data) {
		return nil, ErrMalformed
	}

	const (
		flagOnCurve      = 0x01
		flagXShort       = 0x02
		flagYShort       = 0x04
		flagRepeat       = 0x08
		flagXSameOrPos   = 0x10
		flagYSameOrPos   = 0x20
	)

	flags := make([]byte, 0, numPoints)
	for len(flags) < numPoints {
		if pos >= len(data) {
			return nil, ErrMalformed
		}
		fl := data[pos]
		pos++
		flags = append(flags, fl)
		if fl&flagRepeat != 0 {
			if pos >= len(data) {
				return nil, ErrMalformed
			}
			n := int(data[pos])
			pos++
			for i := 0; i < n && len(flags) < numPoints; i++ {
				flags = append(flags, fl)
			}
		}
	}

	xs := make([]int, numPoints)
	x := 0
	for i, fl := range flags {
		switch {
		case fl&flagXShort != 0:
			if pos >= len(data) {
				return nil, ErrMalformed
			}
			d := int(data[pos])
			pos++
			if fl&flagXSameOrPos == 0 {
				d = -d
			}
			x += d
		case fl&flagXSameOrPos != 0:
			// delta is 0, x unchanged
		default:
			if pos+1 >= len(data) {
				return nil, ErrMalformed
			}
			x += int(int16(binary.BigEndian.Uint16(data[pos : pos+2])))
			pos += 2
		}
		xs[i] = x
	}

	ys := make([]int, numPoints)
	y := 0
	for i, fl := range flags {
		switch {
		case fl&flagYShort != 0:
			if pos >= len(data) {
				return nil, ErrMalformed
			}
			d := int(data[pos])
			pos++
			if fl&flagYSameOrPos == 0 {
				d = -d
			}
			y += d
		case fl&flagYSameOrPos != 0:
		default:
			if pos+1 >= len(data) {
				return nil, ErrMalformed
			}
			y += int(int16(binary.BigEndian.Uint16(data[pos : pos+2])))
			pos += 2
		}
		ys[i] = y
	}

	var segs []Segment
	start := 0
	for _, end := range endPts {
		contour := buildContour(flags[start:end+1], xs[start:end+1], ys[start:end+1])
		segs = append(segs, contour...)
		start = end + 1
	}
	return segs, nil
}

// buildContour turns one contour's on/off-curve points into Segments,
// synthesizing the implied on-curve point that lies midway between two
// consecutive off-curve points (OpenType `glyf` convention).
func buildContour(flags []byte, xs, ys []int) []Segment {
	n := len(flags)
	if n == 0 {
		return nil
	}
	onCurve := func(i int) bool { return flags[i%n]&0x01 != 0 }
	px := func(i int) float64 { return float64(xs[i%n]) }
	py := func(i int) float64 { return float64(ys[i%n]) }
	mid := func(i, j int) (float64, float64) {
		return (px(i) + px(j)) / 2, (py(i) + py(j)) / 2
	}

	start := 0
	var startX, startY float64
	if onCurve(0) {
		startX, startY = px(0), py(0)
	} else if onCurve(n - 1) {
		startX, startY = px(n-1), py(n-1)
		start = -1 // begin the walk one point early, at the last on-curve point
	} else {
		startX, startY = mid(0, n-1)
	}

	segs := []Segment{{Op: SegMoveTo, X: startX, Y: startY}}
	curX, curY := startX, startY
	i := start + 1
	for count := 0; count < n; count++ {
		if onCurve(i) {
			curX, curY = px(i), py(i)
			segs = append(segs, Segment{Op: SegLineTo, X: curX, Y: curY})
			i++
			continue
		}
		cx, cy := px(i), py(i)
		var ex, ey float64
		if onCurve(i + 1) {
			ex, ey = px(i+1), py(i+1)
			i += 2
			count++
		} else {
			ex, ey = mid(i, i+1)
			i++
		}
		segs = append(segs, Segment{Op: SegQuadTo, X: ex, Y: ey, CX: cx, CY: cy})
		curX, curY = ex, ey
	}
	_ = curX
	_ = curY
	segs = append(segs, Segment{Op: SegClose})
	return segs
}

// Composite-glyph component flags (OpenType `glyf` compositeGlyphFlags).
const (
	flagArg1And2AreWords   = 0x0001
	flagArgsAreXYValues    = 0x0002
	flagWeHaveAScale       = 0x0008
	flagMoreComponents     = 0x0020
	flagWeHaveAnXAndYScale = 0x0040
	flagWeHaveATwoByTwo    = 0x0080
	flagWeHaveInstructions = 0x0100
)

func (f *Font) decodeCompositeGlyph(data []byte, parent matrix.Matrix, depth int) ([]Segment, error) {
	var out []Segment
	for {
		if len(data) < 4 {
			return nil, ErrMalformed
		}
		flags := uint16(data[0])<<8 | uint16(data[1])
		glyphIndex := int(uint16(data[2])<<8 | uint16(data[3]))
		data = data[4:]

		var arg1, arg2 int16
		if flags&flagArg1And2AreWords != 0 {
			if len(data) < 4 {
				return nil, ErrMalformed
			}
			arg1 = int16(uint16(data[0])<<8 | uint16(data[1]))
			arg2 = int16(uint16(data[2])<<8 | uint16(data[3]))
			data = data[4:]
		} else {
			if len(data) < 2 {
				return nil, ErrMalformed
			}
			arg1 = int16(int8(data[0]))
			arg2 = int16(int8(data[1]))
			data = data[2:]
		}

		trfm := matrix.Matrix{1, 0, 0, 1, 0, 0}
		switch {
		case flags&flagWeHaveAScale != 0:
			if len(data) < 2 {
				return nil, ErrMalformed
			}
			s := f2dot14(int16(uint16(data[0])<<8 | uint16(data[1])))
			data = data[2:]
			trfm[0], trfm[3] = s, s
		case flags&flagWeHaveAnXAndYScale != 0:
			if len(data) < 4 {
				return nil, ErrMalformed
			}
			sx := f2dot14(int16(uint16(data[0])<<8 | uint16(data[1])))
			sy := f2dot14(int16(uint16(data[2])<<8 | uint16(data[3])))
			data = data[4:]
			trfm[0], trfm[3] = sx, sy
		case flags&flagWeHaveATwoByTwo != 0:
			if len(data) < 8 {
				return nil, ErrMalformed
			}
			xx := f2dot14(int16(uint16(data[0])<<8 | uint16(data[1])))
			xy := f2dot14(int16(uint16(data[2])<<8 | uint16(data[3])))
			yx := f2dot14(int16(uint16(data[4])<<8 | uint16(data[5])))
			yy := f2dot14(int16(uint16(data[6])<<8 | uint16(data[7])))
			data = data[8:]
			trfm[0], trfm[1], trfm[2], trfm[3] = xx, xy, yx, yy
		}

		if flags&flagArgsAreXYValues != 0 {
			trfm[4], trfm[5] = float64(arg1), float64(arg2)
		}
		// Point-matching composition (ARGS_ARE_XY_VALUES unset) is rare
		// in practice and needs the parent's own point list to resolve;
		// unsupported here, matching this package's outline-only scope.

		combined := trfm.Mul(parent)
		childSegs, err := f.glyphOutline(glyphIndex, combined, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, childSegs...)

		if flags&flagWeHaveInstructions != 0 {
			if len(data) < 2 {
				return nil, ErrMalformed
			}
			l := int(uint16(data[0])<<8 | uint16(data[1]))
			data = data[2:]
			if l <= len(data) {
				data = data[l:]
			}
		}

		if flags&flagMoreComponents == 0 {
			break
		}
	}
	return out, nil
}

func f2dot14(v int16) float64 { return float64(v) / 16384.0 }
