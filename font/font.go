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

// Package font implements the font/show pipeline of spec §4.6: font
// dictionary construction (findfont/definefont/scalefont/makefont),
// simple Type 1 and Type 1C/CFF glyph programs, Type 42 (embedded
// TrueType) glyph programs, and composite (Type 0) fonts with a
// codespace/CMap layered over a descendant font.
//
// Grounded on seehuhn.de/go/sfnt's type1.Font/Glyph/GlyphOp shape (the
// FontMatrix-plus-named-glyph-map model every font kind here
// specializes) and on package graphics' "State carries an opaque Font
// any" convention, so this package — which does need the full object
// model to read a PostScript font dictionary — stays on package
// graphics' non-importing side of that boundary.
package font

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/psengine"
	"seehuhn.de/go/psengine/font/charstring1"
	"seehuhn.de/go/psengine/font/charstring2"
	"seehuhn.de/go/psengine/font/truetype"
)

// Kind discriminates the glyph-program formats this package decodes.
type Kind int

const (
	KindType1 Kind = iota
	KindCFF
	KindTrueType
	KindType0
)

// PathOp is one cubic-Bezier glyph outline command, in glyph space
// (charstring design units, conventionally 1000 units/em for Type
// 1/CFF; truetypeFont.UnitsPerEm units/em for Type 42 — FontMatrix
// carries whatever scale reconciles that with user space).
type PathOp struct {
	Op                     PathOpKind
	X, Y                   float64
	X1, Y1, X2, Y2, X3, Y3 float64
}

type PathOpKind int

const (
	OpMoveTo PathOpKind = iota
	OpLineTo
	OpCurveTo
	OpClose
)

// Glyph is one decoded outline plus its advance width, in glyph space.
type Glyph struct {
	Width float64
	Path  []PathOp
}

// Font is a resolved, renderable PostScript font: the result of
// findfont (or composefont) plus zero or more scalefont/makefont
// transforms, ready for show/stringwidth/charpath to query (spec
// §4.6).
type Font struct {
	// Dict is the font dictionary Object this Font was built from (or
	// last wrapped by scalefont/makefont), used as the glyph cache's
	// FontDict identity and returned by currentfont.
	Dict *psengine.Dict

	// FontMatrix maps glyph space to text space (PLRM §5.2); scalefont
	// and makefont each prepend a scale/general matrix to this.
	FontMatrix matrix.Matrix

	Kind Kind

	// id is the FontID this Font is currently bound to (set by
	// Registry.Bind); Scaled copies carry a different id once the copy
	// is itself bound by scalefont/makefont's operator body.
	id *psengine.FontID

	simple *simpleProgram
	ttf    *ttProgram
	type0  *type0Font
}

// simpleProgram backs Type 1 and Type 1C/CFF simple fonts: one glyph
// program keyed by glyph name, reached through a 256-entry encoding
// vector (PLRM §5.3, "Encoding").
type simpleProgram struct {
	encoding [256]string
	decode   func(name string) (*Glyph, error)
}

type ttProgram struct {
	tt       *truetype.Font
	encoding [256]string   // code -> glyph name
	gid      map[string]int // glyph name -> glyph index (Type 42's CharStrings dict, PLRM §5.11)
}

// Type1 constructs a simple font from an already-decrypted Type 1 font
// program: charstrings and subroutines keyed/indexed exactly as they
// appear in the font's Private dictionary.
func Type1(fontMatrix matrix.Matrix, encoding [256]string, charstrings map[string][]byte, subrs [][]byte) *Font {
	f := &Font{FontMatrix: fontMatrix, Kind: KindType1}
	var resolver charstring1.Resolver
	resolver.Subrs = subrs
	resolver.Seac = func(code int) (*charstring1.Glyph, error) {
		name := standardEncoding[code&0xff]
		cs, ok := charstrings[name]
		if !ok {
			return nil, psengine.NewError("seac", psengine.ErrInvalidFont)
		}
		return charstring1.Decode(cs, resolver)
	}
	f.simple = &simpleProgram{
		encoding: encoding,
		decode: func(name string) (*Glyph, error) {
			cs, ok := charstrings[name]
			if !ok {
				return nil, nil
			}
			g, err := charstring1.Decode(cs, resolver)
			if err != nil {
				return nil, err
			}
			return fromCharstring1(g), nil
		},
	}
	return f
}

// CFF constructs a simple font from a Type 1C (bare CFF) glyph program:
// charstrings keyed by glyph name (already resolved from the font's
// charset), plus the Private dictionary's subroutine indexes and
// nominal/default widths (spec §4.6).
func CFF(fontMatrix matrix.Matrix, encoding [256]string, charstrings map[string][]byte, globalSubrs, localSubrs [][]byte, nominalWidthX, defaultWidthX float64) *Font {
	f := &Font{FontMatrix: fontMatrix, Kind: KindCFF}
	resolver := charstring2.Resolver{
		GlobalSubrs:   globalSubrs,
		LocalSubrs:    localSubrs,
		NominalWidthX: nominalWidthX,
		DefaultWidthX: defaultWidthX,
	}
	resolver.Seac = func(code int) (*charstring2.Glyph, error) {
		name := standardEncoding[code&0xff]
		cs, ok := charstrings[name]
		if !ok {
			return nil, psengine.NewError("seac", psengine.ErrInvalidFont)
		}
		return charstring2.Decode(cs, resolver)
	}
	f.simple = &simpleProgram{
		encoding: encoding,
		decode: func(name string) (*Glyph, error) {
			cs, ok := charstrings[name]
			if !ok {
				return nil, nil
			}
			g, err := charstring2.Decode(cs, resolver)
			if err != nil {
				return nil, err
			}
			return fromCharstring2(g), nil
		},
	}
	return f
}

// TrueType constructs a Type 42 font from an already-parsed `glyf`/
// `loca` pair (spec §4.6) and the CharStrings dict Type 42's PostScript
// wrapper uses to name glyphs (PLRM §5.11.3).
func TrueType(fontMatrix matrix.Matrix, encoding [256]string, tt *truetype.Font, glyphIndex map[string]int) *Font {
	return &Font{
		FontMatrix: fontMatrix,
		Kind:       KindTrueType,
		ttf:        &ttProgram{tt: tt, encoding: encoding, gid: glyphIndex},
	}
}

// Outline decodes the glyph selected by a single character code through
// a simple (Type 1/CFF/TrueType) font's encoding vector.
func (f *Font) Outline(code int) (*Glyph, error) {
	if code < 0 || code > 255 {
		return nil, psengine.NewError("show", psengine.ErrRangeCheck)
	}
	switch f.Kind {
	case KindType1, KindCFF:
		name := f.simple.encoding[code]
		if name == "" || name == ".notdef" {
			return &Glyph{}, nil
		}
		return f.simple.decode(name)
	case KindTrueType:
		name := f.ttf.encoding[code]
		gid, ok := f.ttf.gid[name]
		if !ok {
			return &Glyph{}, nil
		}
		return f.outlineGID(gid)
	case KindType0:
		return nil, psengine.NewError("show", psengine.ErrInvalidFont)
	default:
		return nil, psengine.NewError("show", psengine.ErrInvalidFont)
	}
}

// OutlineGID decodes a glyph directly by glyph index, bypassing the
// encoding vector — used by composite fonts, whose CMap already
// resolves a character code to a descendant glyph selector.
func (f *Font) OutlineGID(gid int) (*Glyph, error) {
	return f.outlineGID(gid)
}

func (f *Font) outlineGID(gid int) (*Glyph, error) {
	if f.Kind != KindTrueType {
		return nil, psengine.NewError("show", psengine.ErrInvalidFont)
	}
	segs, err := f.ttf.tt.GlyphOutline(gid)
	if err != nil {
		return nil, psengine.Wrap("show", psengine.ErrInvalidFont, err)
	}
	return fromTrueType(segs), nil
}

// WidthOf returns the advance width (in glyph space) for a character
// code through a simple font's encoding, without building the full
// outline's path — stringwidth's common case still has to run the
// charstring (Type 1/CFF widths are only known after decoding), so this
// is a thin convenience over Outline rather than a distinct fast path.
func (f *Font) WidthOf(code int) (float64, error) {
	g, err := f.Outline(code)
	if err != nil {
		return 0, err
	}
	if g == nil {
		return 0, nil
	}
	return g.Width, nil
}

// Scaled returns a copy of f with FontMatrix premultiplied by m,
// implementing both scalefont (m diagonal) and makefont (m general,
// PLRM §8.1).
func (f *Font) Scaled(m matrix.Matrix) *Font {
	cp := *f
	cp.FontMatrix = m.Mul(f.FontMatrix)
	return &cp
}

func fromCharstring1(g *charstring1.Glyph) *Glyph {
	out := &Glyph{Width: g.Width, Path: make([]PathOp, len(g.Segments))}
	for i, s := range g.Segments {
		out.Path[i] = convertSeg1(s)
	}
	return out
}

func convertSeg1(s charstring1.Segment) PathOp {
	switch s.Op {
	case charstring1.SegMoveTo:
		return PathOp{Op: OpMoveTo, X: s.X, Y: s.Y}
	case charstring1.SegLineTo:
		return PathOp{Op: OpLineTo, X: s.X, Y: s.Y}
	case charstring1.SegCurveTo:
		return PathOp{Op: OpCurveTo, X1: s.X1, Y1: s.Y1, X2: s.X2, Y2: s.Y2, X3: s.X3, Y3: s.Y3}
	default:
		return PathOp{Op: OpClose}
	}
}

func fromCharstring2(g *charstring2.Glyph) *Glyph {
	out := &Glyph{Width: g.Width, Path: make([]PathOp, len(g.Segments))}
	for i, s := range g.Segments {
		switch s.Op {
		case charstring2.SegMoveTo:
			out.Path[i] = PathOp{Op: OpMoveTo, X: s.X, Y: s.Y}
		case charstring2.SegLineTo:
			out.Path[i] = PathOp{Op: OpLineTo, X: s.X, Y: s.Y}
		case charstring2.SegCurveTo:
			out.Path[i] = PathOp{Op: OpCurveTo, X1: s.X1, Y1: s.Y1, X2: s.X2, Y2: s.Y2, X3: s.X3, Y3: s.Y3}
		default:
			out.Path[i] = PathOp{Op: OpClose}
		}
	}
	return out
}

// fromTrueType converts quadratic TrueType segments to the cubic
// PathOp form the rest of this package and package operators consume
// (standard degree-elevation: C1 = P0 + 2/3*(Q-P0), C2 = P1 +
// 2/3*(Q-P1)).
func fromTrueType(segs []truetype.Segment) *Glyph {
	out := &Glyph{}
	var cur PathOp
	var curX, curY float64
	for _, s := range segs {
		switch s.Op {
		case truetype.SegMoveTo:
			cur = PathOp{Op: OpMoveTo, X: s.X, Y: s.Y}
			curX, curY = s.X, s.Y
		case truetype.SegLineTo:
			cur = PathOp{Op: OpLineTo, X: s.X, Y: s.Y}
			curX, curY = s.X, s.Y
		case truetype.SegQuadTo:
			c1x, c1y := curX+2.0/3.0*(s.CX-curX), curY+2.0/3.0*(s.CY-curY)
			c2x, c2y := s.X+2.0/3.0*(s.CX-s.X), s.Y+2.0/3.0*(s.CY-s.Y)
			cur = PathOp{Op: OpCurveTo, X1: c1x, Y1: c1y, X2: c2x, Y2: c2y, X3: s.X, Y3: s.Y}
			curX, curY = s.X, s.Y
		default:
			cur = PathOp{Op: OpClose}
		}
		out.Path = append(out.Path, cur)
	}
	return out
}
