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

// Package charstring1 decodes Adobe Type 1 charstrings into glyph
// outlines, and undoes the eexec/charstring encryption Type 1 font
// programs wrap their private data in (spec §4.6). The Adobe Type 1
// Font Format's own charstring interpreter body was not present in the
// retrieved example pack (seehuhn.de/go/sfnt's type1.Read, the closest
// match, stops at decryption and calls into an unexported decoder this
// pack did not retrieve); this package's operator semantics — including
// the hsbw/sbw sidebearing convention, seac accent composition, and the
// flex/hint-replacement OtherSubrs protocol — follow the published
// Adobe Type 1 Font Format charstring opcodes, decoded with the same
// operand-stack dispatch-loop shape package charstring2 (grounded on
// the teacher's t2decode.go) uses, and produce the same
// seehuhn.de/go/sfnt type1.Glyph-style Op/Args sequence shown in that
// package's Font/Glyph/GlyphOp structs.
package charstring1

import "errors"

// SegOp mirrors charstring2.SegOp; the two packages are kept separate
// because Type 1 and Type 2 charstrings share no operator encoding,
// even though their decoded output shape coincides.
type SegOp int

const (
	SegMoveTo SegOp = iota
	SegLineTo
	SegCurveTo
	SegClose
)

type Segment struct {
	Op                     SegOp
	X, Y                   float64
	X1, Y1, X2, Y2, X3, Y3 float64
}

type Glyph struct {
	Width    float64
	Segments []Segment
}

var (
	ErrMalformed         = errors.New("charstring1: malformed charstring")
	ErrNestingTooDeep    = errors.New("charstring1: subroutine nesting too deep")
	ErrInvalidSubroutine = errors.New("charstring1: subroutine index out of range")
)

const maxCallDepth = 20

// Resolver supplies a font program's local subroutines and, for seac,
// a way to decode another glyph in the same font by StandardEncoding
// code (PLRM Appendix with the Adobe StandardEncoding table; spec
// §4.6's "simple font encoding vector").
type Resolver struct {
	Subrs [][]byte
	Seac  func(code int) (*Glyph, error)
}

// Decode runs one (already decrypted) Type 1 charstring to completion.
func Decode(code []byte, r Resolver) (*Glyph, error) {
	d := &decoder{r: r}
	if err := d.run(code, 0); err != nil {
		return nil, err
	}
	if d.open {
		d.emit(Segment{Op: SegClose})
	}
	return &Glyph{Width: d.width, Segments: d.segments}, nil
}

type decoder struct {
	r Resolver

	stack []float64
	psStack []float64 // PostScript-side callothersubr/pop channel

	x, y       float64
	sbx, sby   float64
	open       bool
	width      float64

	flexing bool
	flexPts []point

	segments []Segment
}

type point struct{ x, y float64 }

func (d *decoder) emit(s Segment) { d.segments = append(d.segments, s) }

func (d *decoder) clear() { d.stack = d.stack[:0] }

func (d *decoder) moveTo(x, y float64) {
	if d.flexing {
		d.x, d.y = x, y
		d.flexPts = append(d.flexPts, point{x, y})
		return
	}
	if d.open {
		d.emit(Segment{Op: SegClose})
	}
	d.x, d.y = x, y
	d.open = true
	d.emit(Segment{Op: SegMoveTo, X: x, Y: y})
}

func (d *decoder) lineTo(x, y float64) {
	d.x, d.y = x, y
	d.emit(Segment{Op: SegLineTo, X: x, Y: y})
}

func (d *decoder) curveTo(x1, y1, x2, y2, x3, y3 float64) {
	d.x, d.y = x3, y3
	d.emit(Segment{Op: SegCurveTo, X1: x1, Y1: y1, X2: x2, Y2: y2, X3: x3, Y3: y3})
}

func (d *decoder) run(code []byte, depth int) error {
	if depth > maxCallDepth {
		return ErrNestingTooDeep
	}
	pos := 0
	for pos < len(code) {
		b0 := code[pos]
		if b0 >= 32 {
			v, n, err := decodeOperand(code[pos:])
			if err != nil {
				return err
			}
			d.stack = append(d.stack, v)
			pos += n
			continue
		}
		pos++
		switch b0 {
		case 1, 3: // hstem, vstem
			d.clear()

		case 4: // vmoveto
			if len(d.stack) < 1 {
				return ErrMalformed
			}
			d.moveTo(d.x, d.y+d.stack[len(d.stack)-1])
			d.clear()

		case 5: // rlineto
			if len(d.stack) < 2 {
				return ErrMalformed
			}
			d.lineTo(d.x+d.stack[0], d.y+d.stack[1])
			d.clear()

		case 6: // hlineto
			if len(d.stack) < 1 {
				return ErrMalformed
			}
			d.lineTo(d.x+d.stack[0], d.y)
			d.clear()

		case 7: // vlineto
			if len(d.stack) < 1 {
				return ErrMalformed
			}
			d.lineTo(d.x, d.y+d.stack[0])
			d.clear()

		case 8: // rrcurveto
			if len(d.stack) < 6 {
				return ErrMalformed
			}
			a := d.stack
			x1, y1 := d.x+a[0], d.y+a[1]
			x2, y2 := x1+a[2], y1+a[3]
			x3, y3 := x2+a[4], y2+a[5]
			d.curveTo(x1, y1, x2, y2, x3, y3)
			d.clear()

		case 9: // closepath
			if d.open {
				d.emit(Segment{Op: SegClose})
				d.open = false
			}
			d.clear()

		case 10: // callsubr
			if len(d.stack) < 1 {
				return ErrMalformed
			}
			idx := int(d.stack[len(d.stack)-1])
			d.stack = d.stack[:len(d.stack)-1]
			if idx < 0 || idx >= len(d.r.Subrs) {
				return ErrInvalidSubroutine
			}
			if err := d.run(d.r.Subrs[idx], depth+1); err != nil {
				return err
			}

		case 11: // return
			return nil

		case 13: // hsbw: sbx wx hsbw
			if len(d.stack) < 2 {
				return ErrMalformed
			}
			d.sbx, d.sby = d.stack[0], 0
			d.width = d.stack[1]
			d.x, d.y = d.sbx, d.sby
			d.clear()

		case 14: // endchar
			return nil

		case 21: // rmoveto
			if len(d.stack) < 2 {
				return ErrMalformed
			}
			d.moveTo(d.x+d.stack[0], d.y+d.stack[1])
			d.clear()

		case 22: // hmoveto
			if len(d.stack) < 1 {
				return ErrMalformed
			}
			d.moveTo(d.x+d.stack[0], d.y)
			d.clear()

		case 30: // vhcurveto
			if len(d.stack) < 4 {
				return ErrMalformed
			}
			a := d.stack
			x1, y1 := d.x, d.y+a[0]
			x2, y2 := x1+a[1], y1+a[2]
			x3, y3 := x2+a[3], y2
			d.curveTo(x1, y1, x2, y2, x3, y3)
			d.clear()

		case 31: // hvcurveto
			if len(d.stack) < 4 {
				return ErrMalformed
			}
			a := d.stack
			x1, y1 := d.x+a[0], d.y
			x2, y2 := x1+a[1], y1+a[2]
			x3, y3 := x2, y2+a[3]
			d.curveTo(x1, y1, x2, y2, x3, y3)
			d.clear()

		case 12: // escape
			if pos >= len(code) {
				return ErrMalformed
			}
			b1 := code[pos]
			pos++
			if err := d.escapeOp(b1); err != nil {
				return err
			}

		default:
			return ErrMalformed
		}
	}
	return nil
}

func (d *decoder) escapeOp(b1 byte) error {
	switch b1 {
	case 0, 1, 2: // dotsection, vstem3, hstem3: hint-only, no path effect
		d.clear()

	case 6: // seac: asb adx ady bchar achar seac
		if len(d.stack) < 5 {
			return ErrMalformed
		}
		asb, adx, ady := d.stack[0], d.stack[1], d.stack[2]
		bchar, achar := int(d.stack[3]), int(d.stack[4])
		d.clear()
		if d.r.Seac == nil {
			return errors.New("charstring1: seac without a resolver")
		}
		base, err := d.r.Seac(bchar)
		if err != nil {
			return err
		}
		accent, err := d.r.Seac(achar)
		if err != nil {
			return err
		}
		dx := adx - asb + d.sbx
		dy := ady
		d.segments = append(d.segments, base.Segments...)
		for _, s := range accent.Segments {
			d.segments = append(d.segments, translate(s, dx, dy))
		}

	case 7: // sbw: sbx sby wx wy sbw
		if len(d.stack) < 4 {
			return ErrMalformed
		}
		d.sbx, d.sby = d.stack[0], d.stack[1]
		d.width = d.stack[2]
		d.x, d.y = d.sbx, d.sby
		d.clear()

	case 12: // div
		if len(d.stack) < 2 {
			return ErrMalformed
		}
		n := len(d.stack)
		a, b := d.stack[n-2], d.stack[n-1]
		d.stack = d.stack[:n-2]
		if b == 0 {
			d.stack = append(d.stack, 0)
		} else {
			d.stack = append(d.stack, a/b)
		}

	case 16: // callothersubr
		return d.callOtherSubr()

	case 17: // pop
		if len(d.psStack) == 0 {
			d.stack = append(d.stack, 0)
			return nil
		}
		n := len(d.psStack)
		v := d.psStack[n-1]
		d.psStack = d.psStack[:n-1]
		d.stack = append(d.stack, v)

	case 33: // setcurrentpoint
		if len(d.stack) < 2 {
			return ErrMalformed
		}
		d.x, d.y = d.stack[0], d.stack[1]
		d.clear()

	default:
		return ErrMalformed
	}
	return nil
}

// callOtherSubr implements the OtherSubrs protocol (Adobe Type 1 Font
// Format §8.3): othersubr 1/2/0 drive the flex mechanism (seven
// suppressed rmoveto's bracketed by begin/end markers, collapsed into
// two curves), othersubr 3 is the hint-replacement no-op, and any other
// index just round-trips its arguments through psStack for the
// following pop's, matching real interpreters' fallback behaviour for
// font-private OtherSubrs entries this engine does not implement.
func (d *decoder) callOtherSubr() error {
	n := len(d.stack)
	if n < 2 {
		return ErrMalformed
	}
	idx := int(d.stack[n-1])
	argc := int(d.stack[n-2])
	d.stack = d.stack[:n-2]
	if argc < 0 || argc > len(d.stack) {
		return ErrMalformed
	}
	args := append([]float64(nil), d.stack[len(d.stack)-argc:]...)
	d.stack = d.stack[:len(d.stack)-argc]

	switch idx {
	case 1: // start flex
		d.flexing = true
		d.flexPts = d.flexPts[:0]

	case 2: // flex point marker, no-op

	case 0: // end flex
		d.flexing = false
		if len(d.flexPts) >= 7 {
			p := d.flexPts
			d.curveTo(p[1].x, p[1].y, p[2].x, p[2].y, p[3].x, p[3].y)
			d.curveTo(p[4].x, p[4].y, p[5].x, p[5].y, p[6].x, p[6].y)
		}
		// The two values the font program expects back (the final
		// current point), consumed by the "pop pop setcurrentpoint"
		// that follows in every flex-using charstring.
		d.psStack = append(d.psStack, d.y, d.x)

	case 3: // hint replacement: round-trip the subr number
		if argc >= 1 {
			d.psStack = append(d.psStack, args[argc-1])
		} else {
			d.psStack = append(d.psStack, 3)
		}

	default:
		for i := len(args) - 1; i >= 0; i-- {
			d.psStack = append(d.psStack, args[i])
		}
	}
	return nil
}

func translate(s Segment, dx, dy float64) Segment {
	s.X += dx
	s.Y += dy
	s.X1 += dx
	s.Y1 += dy
	s.X2 += dx
	s.Y2 += dy
	s.X3 += dx
	s.Y3 += dy
	return s
}

func decodeOperand(code []byte) (float64, int, error) {
	b0 := code[0]
	switch {
	case b0 >= 32 && b0 <= 246:
		return float64(int(b0) - 139), 1, nil
	case b0 >= 247 && b0 <= 250:
		if len(code) < 2 {
			return 0, 0, ErrMalformed
		}
		return float64((int(b0)-247)*256 + int(code[1]) + 108), 2, nil
	case b0 >= 251 && b0 <= 254:
		if len(code) < 2 {
			return 0, 0, ErrMalformed
		}
		return float64(-(int(b0)-251)*256 - int(code[1]) - 108), 2, nil
	case b0 == 255:
		if len(code) < 5 {
			return 0, 0, ErrMalformed
		}
		v := int32(code[1])<<24 | int32(code[2])<<16 | int32(code[3])<<8 | int32(code[4])
		return float64(v), 5, nil
	default:
		return 0, 0, ErrMalformed
	}
}

// eexec/charstring decryption (Adobe Type 1 Font Format §7.3): a
// running cipher R is updated per byte with the same c1/c2 constants
// for both the outer eexec section and each inner charstring, only the
// initial R and the discarded random-prefix length (lenIV) differ.
const (
	c1 = 52845
	c2 = 22719
)

// EexecR is the initial cipher state for a font program's eexec section.
const EexecR = 55665

// CharstringR is the initial cipher state for an individual charstring
// or Subrs entry once the surrounding eexec section is decrypted.
const CharstringR = 4330

// Decrypt reverses the Type 1 encryption scheme: r is the initial
// cipher state (EexecR or CharstringR) and skip is the count of
// leading decrypted bytes to discard (4, unless the font's Private
// dict overrides lenIV).
func Decrypt(data []byte, r uint16, skip int) []byte {
	out := make([]byte, len(data))
	for i, cipher := range data {
		plain := cipher ^ byte(r>>8)
		out[i] = plain
		r = (uint16(cipher)+r)*c1 + c2
	}
	if skip > len(out) {
		skip = len(out)
	}
	return out[skip:]
}
