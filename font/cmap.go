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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/psengine"
)

// CIDRange is one `begincidrange` entry of a CMap: codes in
// [Low, High] (both CodeBytes wide) map to consecutive CIDs starting at
// CID (PLRM §5.11.4, "CMap dictionaries").
type CIDRange struct {
	Low, High uint32
	CID       int
}

// CMap is a minimal composite-font character-code-to-CID mapping: a
// single fixed code width (the common case covering Identity-H/V and
// the single-range CMaps PDF/PostScript producers actually emit) plus
// an ordered list of CID ranges consulted in order, first match wins.
// A CMap with no ranges at all behaves as Identity (cid == code),
// matching Identity-H/Identity-V's definition (PLRM §5.11.4).
type CMap struct {
	CodeBytes int // 1 or 2, the width of one character code
	Ranges    []CIDRange
}

// NewIdentityCMap returns the Identity-H/Identity-V CMap: 2-byte codes,
// CID == code.
func NewIdentityCMap() *CMap {
	return &CMap{CodeBytes: 2}
}

// CID maps a single character code to its CID.
func (m *CMap) CID(code uint32) int {
	for _, r := range m.Ranges {
		if code >= r.Low && code <= r.High {
			return r.CID + int(code-r.Low)
		}
	}
	if len(m.Ranges) == 0 {
		return int(code)
	}
	return 0 // notdef CID, PLRM §5.11.4
}

// type0Font is a composite font: a CMap splitting a show string into
// character codes, layered over one descendant CID-keyed font (PLRM
// §5.11.4 restricted to the single-descendant case, which is all
// Identity-H/V and most embedded composite fonts actually use).
type type0Font struct {
	cmap       *CMap
	descendant *Font // CID == GID into descendant (CIDFontType2/TrueType convention)
}

// Type0 constructs a composite font from a CMap and its single
// descendant font. The descendant's glyphs are selected by GID (CID ==
// GID, the common CIDToGIDMap Identity case; spec §4.6 scopes out
// non-identity CIDToGIDMap tables).
func Type0(fontMatrix matrix.Matrix, cmap *CMap, descendant *Font) *Font {
	return &Font{
		FontMatrix: fontMatrix,
		Kind:       KindType0,
		type0:      &type0Font{cmap: cmap, descendant: descendant},
	}
}

// Codes splits s into this font's fixed-width character codes (spec
// §4.6; variable-width codespaces are out of scope).
func (m *CMap) Codes(s []byte) []uint32 {
	n := m.CodeBytes
	if n != 1 && n != 2 {
		n = 1
	}
	out := make([]uint32, 0, (len(s)+n-1)/n)
	for i := 0; i+n <= len(s); i += n {
		var code uint32
		for j := 0; j < n; j++ {
			code = code<<8 | uint32(s[i+j])
		}
		out = append(out, code)
	}
	return out
}

// OutlineCID decodes the descendant glyph selected by a CID.
func (f *Font) OutlineCID(cid int) (*Glyph, error) {
	if f.Kind != KindType0 {
		return nil, psengine.NewError("show", psengine.ErrInvalidFont)
	}
	return f.type0.descendant.OutlineGID(cid)
}

// CIDIterator walks a composite-font show string's character codes,
// resolving each to a CID through the font's CMap, and satisfies
// interp.CIDIterator for cshow/kshow (spec §4.2, "pending-CID state").
type CIDIterator struct {
	font  *Font
	codes []uint32
	pos   int
}

// NewCIDIterator builds a cursor over s's character codes under font's
// CMap, for the cshow/kshow loop-header operators.
func NewCIDIterator(font *Font, s []byte) *CIDIterator {
	it := &CIDIterator{font: font}
	if font.Kind == KindType0 {
		it.codes = font.type0.cmap.Codes(s)
	} else {
		it.codes = make([]uint32, len(s))
		for i, b := range s {
			it.codes[i] = uint32(b)
		}
	}
	return it
}

// Next implements interp.CIDIterator.
func (it *CIDIterator) Next() (code int, cid int, ok bool) {
	if it.pos >= len(it.codes) {
		return 0, 0, false
	}
	c := it.codes[it.pos]
	it.pos++
	if it.font.Kind == KindType0 {
		return int(c), it.font.type0.cmap.CID(c), true
	}
	return int(c), int(c), true
}
