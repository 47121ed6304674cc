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

// Package charstring2 decodes Adobe Type 2 (CFF) charstrings into glyph
// outlines, for font/cff's Type 1C font-program support (spec §4.6).
//
// Grounded on the teacher's font/cff/t2decode.go: the same two-pass
// operand-stack/operator dispatch shape (read one number or one operator
// per step, apply immediately against a running (x, y) point), the same
// bias-adjusted local/global subroutine indexing (font/cff/subr.go's
// bias function), and the same width-is-an-extra-leading-argument
// convention on the first stem hint, moveto, or endchar operator. This
// package has no notion of a PDF font dictionary or CID/SID charset: it
// decodes one already-extracted charstring against caller-supplied
// subroutine indexes and returns a self-contained Glyph.
package charstring2

import "errors"

// SegOp is the kind of one glyph outline segment.
type SegOp int

const (
	SegMoveTo SegOp = iota
	SegLineTo
	SegCurveTo
	SegClose
)

// Segment is one glyph outline command, in charstring (glyph-space, font
// design units) coordinates. MoveTo/LineTo use X, Y; CurveTo uses all six
// control-point coordinates; Close carries no coordinates.
type Segment struct {
	Op                     SegOp
	X, Y                   float64
	X1, Y1, X2, Y2, X3, Y3 float64
}

// Glyph is the decoded outline plus advance width of one charstring.
type Glyph struct {
	Width    float64
	Segments []Segment
}

// Resolver supplies the pieces of font/program state a charstring can
// reference without knowing about them itself: the local and global
// subroutine indexes, the nominal/default widths from the Private
// dictionary (spec §4.6, "CFF Private dict widths"), and, for the
// deprecated seac-like endchar form, a way to decode an accent/base
// glyph by standard-encoding code.
type Resolver struct {
	GlobalSubrs [][]byte
	LocalSubrs  [][]byte

	DefaultWidthX float64
	NominalWidthX float64

	// Seac decodes the charstring for a StandardEncoding character code,
	// used by endchar's 4-argument accented-character form. Nil disables
	// that form (endchar with 4 pending args becomes ErrUnsupportedSeac).
	Seac func(code int) (*Glyph, error)
}

var (
	ErrMalformed        = errors.New("charstring2: malformed charstring")
	ErrStackOverflow    = errors.New("charstring2: operand stack overflow")
	ErrNestingTooDeep   = errors.New("charstring2: subroutine nesting too deep")
	ErrUnsupportedSeac  = errors.New("charstring2: seac-style endchar without a resolver")
	ErrInvalidSubroutine = errors.New("charstring2: subroutine index out of range")
)

const (
	maxOperandStack = 48
	maxCallDepth    = 10
	transientCount  = 32
)

// Decode runs one Type 2 charstring to completion and returns its
// outline and advance width.
func Decode(code []byte, r Resolver) (*Glyph, error) {
	d := &decoder{r: r}
	_, err := d.run(code, 0)
	if err != nil {
		return nil, err
	}
	if !d.haveWidth {
		d.width = d.r.DefaultWidthX
	}
	if d.open {
		d.emit(Segment{Op: SegClose})
	}
	return &Glyph{Width: d.width, Segments: d.segments}, nil
}

type decoder struct {
	r Resolver

	stack []float64

	x, y float64
	open bool

	nStems    int
	haveWidth bool
	width     float64

	transient [transientCount]float64

	segments []Segment
}

func bias(n int) int {
	switch {
	case n < 1240:
		return 107
	case n < 33900:
		return 1131
	default:
		return 32768
	}
}

func (d *decoder) emit(s Segment) { d.segments = append(d.segments, s) }

func (d *decoder) moveTo(x, y float64) {
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

func (d *decoder) push(v float64) error {
	if len(d.stack) >= maxOperandStack {
		return ErrStackOverflow
	}
	d.stack = append(d.stack, v)
	return nil
}

func (d *decoder) clear() { d.stack = d.stack[:0] }

// takeWidth consumes a leading width argument if the stack holds one
// more value than evenArgCount expects (evenArgCount==-1 means "any
// number of pairs", used by the stem operators).
func (d *decoder) takeWidth(expectOdd bool) {
	if d.haveWidth {
		return
	}
	d.haveWidth = true
	odd := len(d.stack)%2 == 1
	if expectOdd {
		odd = len(d.stack) > 0
	}
	if odd && len(d.stack) > 0 {
		d.width = d.r.NominalWidthX + d.stack[0]
		d.stack = d.stack[1:]
	} else {
		d.width = d.r.DefaultWidthX
	}
}

// run executes code, recursing into callsubr/callgsubr, and returns
// whether endchar was reached (which unwinds every enclosing call).
func (d *decoder) run(code []byte, depth int) (stopped bool, err error) {
	if depth > maxCallDepth {
		return false, ErrNestingTooDeep
	}
	pos := 0
	for pos < len(code) {
		b0 := code[pos]
		if b0 >= 32 || b0 == 28 {
			v, n, perr := decodeOperand(code[pos:])
			if perr != nil {
				return false, perr
			}
			if err := d.push(v); err != nil {
				return false, err
			}
			pos += n
			continue
		}

		pos++
		switch b0 {
		case 1, 3, 18, 23: // hstem, vstem, hstemhm, vstemhm
			d.takeWidth(false)
			d.nStems += len(d.stack) / 2
			d.clear()

		case 19, 20: // hintmask, cntrmask
			d.takeWidth(false)
			d.nStems += len(d.stack) / 2
			d.clear()
			nBytes := (d.nStems + 7) / 8
			if pos+nBytes > len(code) {
				return false, ErrMalformed
			}
			pos += nBytes

		case 21: // rmoveto
			d.takeWidth(true)
			if len(d.stack) < 2 {
				return false, ErrMalformed
			}
			d.moveTo(d.x+d.stack[0], d.y+d.stack[1])
			d.clear()

		case 22: // hmoveto
			d.takeWidth(false)
			if len(d.stack) < 1 {
				return false, ErrMalformed
			}
			d.moveTo(d.x+d.stack[0], d.y)
			d.clear()

		case 4: // vmoveto
			d.takeWidth(false)
			if len(d.stack) < 1 {
				return false, ErrMalformed
			}
			d.moveTo(d.x, d.y+d.stack[0])
			d.clear()

		case 5: // rlineto
			for i := 0; i+2 <= len(d.stack); i += 2 {
				d.lineTo(d.x+d.stack[i], d.y+d.stack[i+1])
			}
			d.clear()

		case 6: // hlineto
			d.altLineTo(true)
			d.clear()

		case 7: // vlineto
			d.altLineTo(false)
			d.clear()

		case 8: // rrcurveto
			d.rrcurveto(d.stack)
			d.clear()

		case 24: // rcurveline
			n := len(d.stack)
			nCurve := (n - 2) / 6 * 6
			d.rrcurveto(d.stack[:nCurve])
			if nCurve+2 <= n {
				d.lineTo(d.x+d.stack[nCurve], d.y+d.stack[nCurve+1])
			}
			d.clear()

		case 25: // rlinecurve
			n := len(d.stack)
			nLine := (n - 6) / 2 * 2
			for i := 0; i+2 <= nLine; i += 2 {
				d.lineTo(d.x+d.stack[i], d.y+d.stack[i+1])
			}
			if nLine+6 <= n {
				d.rrcurveto(d.stack[nLine : nLine+6])
			}
			d.clear()

		case 26: // vvcurveto
			d.vvcurveto(d.stack)
			d.clear()

		case 27: // hhcurveto
			d.hhcurveto(d.stack)
			d.clear()

		case 30: // vhcurveto
			d.altCurveTo(d.stack, false)
			d.clear()

		case 31: // hvcurveto
			d.altCurveTo(d.stack, true)
			d.clear()

		case 10: // callsubr
			if len(d.stack) < 1 {
				return false, ErrMalformed
			}
			idx := int(d.stack[len(d.stack)-1])
			d.stack = d.stack[:len(d.stack)-1]
			sub, serr := lookupSubr(d.r.LocalSubrs, idx)
			if serr != nil {
				return false, serr
			}
			stop, rerr := d.run(sub, depth+1)
			if rerr != nil {
				return false, rerr
			}
			if stop {
				return true, nil
			}

		case 29: // callgsubr
			if len(d.stack) < 1 {
				return false, ErrMalformed
			}
			idx := int(d.stack[len(d.stack)-1])
			d.stack = d.stack[:len(d.stack)-1]
			sub, serr := lookupSubr(d.r.GlobalSubrs, idx)
			if serr != nil {
				return false, serr
			}
			stop, rerr := d.run(sub, depth+1)
			if rerr != nil {
				return false, rerr
			}
			if stop {
				return true, nil
			}

		case 11: // return
			return false, nil

		case 14: // endchar
			if err := d.endchar(); err != nil {
				return false, err
			}
			return true, nil

		case 12: // two-byte operators
			if pos >= len(code) {
				return false, ErrMalformed
			}
			b1 := code[pos]
			pos++
			if err := d.twoByteOp(b1); err != nil {
				return false, err
			}

		default:
			return false, ErrMalformed
		}
	}
	return false, nil
}

func lookupSubr(subrs [][]byte, biasedIdx int) ([]byte, error) {
	idx := biasedIdx + bias(len(subrs))
	if idx < 0 || idx >= len(subrs) {
		return nil, ErrInvalidSubroutine
	}
	return subrs[idx], nil
}

func (d *decoder) altLineTo(startHoriz bool) {
	horiz := startHoriz
	for i := 0; i < len(d.stack); i++ {
		if horiz {
			d.lineTo(d.x+d.stack[i], d.y)
		} else {
			d.lineTo(d.x, d.y+d.stack[i])
		}
		horiz = !horiz
	}
}

func (d *decoder) rrcurveto(args []float64) {
	for i := 0; i+6 <= len(args); i += 6 {
		x1, y1 := d.x+args[i], d.y+args[i+1]
		x2, y2 := x1+args[i+2], y1+args[i+3]
		x3, y3 := x2+args[i+4], y2+args[i+5]
		d.curveTo(x1, y1, x2, y2, x3, y3)
	}
}

func (d *decoder) hhcurveto(args []float64) {
	i := 0
	dy1 := 0.0
	if len(args)%4 == 1 {
		dy1 = args[0]
		i = 1
	}
	for ; i+4 <= len(args); i += 4 {
		x1, y1 := d.x+args[i], d.y+dy1
		x2, y2 := x1+args[i+1], y1+args[i+2]
		x3, y3 := x2+args[i+3], y2
		d.curveTo(x1, y1, x2, y2, x3, y3)
		dy1 = 0
	}
}

func (d *decoder) vvcurveto(args []float64) {
	i := 0
	dx1 := 0.0
	if len(args)%4 == 1 {
		dx1 = args[0]
		i = 1
	}
	for ; i+4 <= len(args); i += 4 {
		x1, y1 := d.x+dx1, d.y+args[i]
		x2, y2 := x1+args[i+1], y1+args[i+2]
		x3, y3 := x2, y2+args[i+3]
		d.curveTo(x1, y1, x2, y2, x3, y3)
		dx1 = 0
	}
}

// altCurveTo implements hvcurveto (startHoriz true) and vhcurveto
// (startHoriz false): groups of four alternating-axis control-point
// deltas, with an optional fifth argument on the final group supplying
// the otherwise-implicit final coordinate on the other axis.
func (d *decoder) altCurveTo(args []float64, startHoriz bool) {
	horiz := startHoriz
	i := 0
	for i+4 <= len(args) {
		last := len(args)-i == 5
		if horiz {
			dx1, dx2, dy2, dy3 := args[i], args[i+1], args[i+2], args[i+3]
			dx3 := 0.0
			if last {
				dx3 = args[i+4]
			}
			x1, y1 := d.x+dx1, d.y
			x2, y2 := x1+dx2, y1+dy2
			x3, y3 := x2+dx3, y2+dy3
			d.curveTo(x1, y1, x2, y2, x3, y3)
		} else {
			dy1, dx2, dy2, dx3 := args[i], args[i+1], args[i+2], args[i+3]
			dy3 := 0.0
			if last {
				dy3 = args[i+4]
			}
			x1, y1 := d.x, d.y+dy1
			x2, y2 := x1+dx2, y1+dy2
			x3, y3 := x2+dx3, y2+dy3
			d.curveTo(x1, y1, x2, y2, x3, y3)
		}
		i += 4
		horiz = !horiz
	}
}

func (d *decoder) twoByteOp(b1 byte) error {
	switch b1 {
	case 0: // dotsection, deprecated no-op
		d.clear()
	case 3: // and
		d.binBool(func(a, b bool) bool { return a && b })
	case 4: // or
		d.binBool(func(a, b bool) bool { return a || b })
	case 5: // not
		if len(d.stack) < 1 {
			return ErrMalformed
		}
		v := d.stack[len(d.stack)-1]
		d.stack[len(d.stack)-1] = boolToNum(v == 0)
	case 9: // abs
		if len(d.stack) < 1 {
			return ErrMalformed
		}
		v := d.stack[len(d.stack)-1]
		if v < 0 {
			d.stack[len(d.stack)-1] = -v
		}
	case 10: // add
		return d.binNum(func(a, b float64) float64 { return a + b })
	case 11: // sub
		return d.binNum(func(a, b float64) float64 { return a - b })
	case 12: // div
		return d.binNum(func(a, b float64) float64 {
			if b == 0 {
				return 0
			}
			return a / b
		})
	case 14: // neg
		if len(d.stack) < 1 {
			return ErrMalformed
		}
		d.stack[len(d.stack)-1] = -d.stack[len(d.stack)-1]
	case 15: // eq
		return d.binNumBool(func(a, b float64) bool { return a == b })
	case 18: // drop
		if len(d.stack) < 1 {
			return ErrMalformed
		}
		d.stack = d.stack[:len(d.stack)-1]
	case 21: // put
		if len(d.stack) < 2 {
			return ErrMalformed
		}
		val, idx := d.stack[len(d.stack)-2], int(d.stack[len(d.stack)-1])
		d.stack = d.stack[:len(d.stack)-2]
		if idx >= 0 && idx < transientCount {
			d.transient[idx] = val
		}
	case 22: // get
		if len(d.stack) < 1 {
			return ErrMalformed
		}
		idx := int(d.stack[len(d.stack)-1])
		v := 0.0
		if idx >= 0 && idx < transientCount {
			v = d.transient[idx]
		}
		d.stack[len(d.stack)-1] = v
	case 23: // ifelse
		if len(d.stack) < 4 {
			return ErrMalformed
		}
		n := len(d.stack)
		s1, s2, v1, v2 := d.stack[n-4], d.stack[n-3], d.stack[n-2], d.stack[n-1]
		d.stack = d.stack[:n-4]
		if v1 <= v2 {
			d.stack = append(d.stack, s1)
		} else {
			d.stack = append(d.stack, s2)
		}
	case 24: // random
		d.stack = append(d.stack, 0.5)
	case 25: // mul
		return d.binNum(func(a, b float64) float64 { return a * b })
	case 27: // sqrt
		if len(d.stack) < 1 {
			return ErrMalformed
		}
		v := d.stack[len(d.stack)-1]
		d.stack[len(d.stack)-1] = sqrt(v)
	case 28: // exch
		if len(d.stack) < 2 {
			return ErrMalformed
		}
		n := len(d.stack)
		d.stack[n-1], d.stack[n-2] = d.stack[n-2], d.stack[n-1]
	case 29: // index
		if len(d.stack) < 1 {
			return ErrMalformed
		}
		n := len(d.stack)
		i := int(d.stack[n-1])
		d.stack = d.stack[:n-1]
		if i < 0 {
			i = 0
		}
		if i >= len(d.stack) {
			i = len(d.stack) - 1
		}
		if i < 0 {
			return ErrMalformed
		}
		d.stack = append(d.stack, d.stack[len(d.stack)-1-i])
	case 30: // roll
		return d.roll()
	case 34: // hflex
		return d.hflex()
	case 35: // flex
		return d.flex()
	case 36: // hflex1
		return d.hflex1()
	case 37: // flex1
		return d.flex1()
	default:
		return ErrMalformed
	}
	return nil
}

func boolToNum(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func (d *decoder) binBool(fn func(a, b bool) bool) {
	n := len(d.stack)
	if n < 2 {
		return
	}
	a, b := d.stack[n-2] != 0, d.stack[n-1] != 0
	d.stack = d.stack[:n-2]
	d.stack = append(d.stack, boolToNum(fn(a, b)))
}

func (d *decoder) binNum(fn func(a, b float64) float64) error {
	n := len(d.stack)
	if n < 2 {
		return ErrMalformed
	}
	a, b := d.stack[n-2], d.stack[n-1]
	d.stack = d.stack[:n-2]
	d.stack = append(d.stack, fn(a, b))
	return nil
}

func (d *decoder) binNumBool(fn func(a, b float64) bool) error {
	n := len(d.stack)
	if n < 2 {
		return ErrMalformed
	}
	a, b := d.stack[n-2], d.stack[n-1]
	d.stack = d.stack[:n-2]
	d.stack = append(d.stack, boolToNum(fn(a, b)))
	return nil
}

func (d *decoder) roll() error {
	if len(d.stack) < 2 {
		return ErrMalformed
	}
	n := len(d.stack)
	j := int(d.stack[n-1])
	count := int(d.stack[n-2])
	d.stack = d.stack[:n-2]
	if count <= 0 || count > len(d.stack) {
		return nil
	}
	top := d.stack[len(d.stack)-count:]
	j = ((j % count) + count) % count
	rolled := make([]float64, count)
	for i, v := range top {
		rolled[(i+j)%count] = v
	}
	copy(top, rolled)
	return nil
}

func sqrt(v float64) float64 {
	if v < 0 {
		return 0
	}
	x := v
	for i := 0; i < 20; i++ {
		if x == 0 {
			break
		}
		x = 0.5 * (x + v/x)
	}
	return x
}

func (d *decoder) hflex() error {
	if len(d.stack) < 7 {
		return ErrMalformed
	}
	a := d.stack
	y0 := d.y
	x1, y1 := d.x+a[0], d.y
	x2, y2 := x1+a[1], y1+a[2]
	x3, y3 := x2+a[3], y2
	d.curveTo(x1, y1, x2, y2, x3, y3)
	x4, y4 := x3+a[4], y3
	x5, y5 := x4+a[5], y0
	x6, y6 := x5+a[6], y0
	d.curveTo(x4, y4, x5, y5, x6, y6)
	d.clear()
	return nil
}

func (d *decoder) flex() error {
	if len(d.stack) < 13 {
		return ErrMalformed
	}
	a := d.stack
	x1, y1 := d.x+a[0], d.y+a[1]
	x2, y2 := x1+a[2], y1+a[3]
	x3, y3 := x2+a[4], y2+a[5]
	d.curveTo(x1, y1, x2, y2, x3, y3)
	x4, y4 := x3+a[6], y3+a[7]
	x5, y5 := x4+a[8], y4+a[9]
	x6, y6 := x5+a[10], y5+a[11]
	d.curveTo(x4, y4, x5, y5, x6, y6)
	d.clear()
	return nil
}

func (d *decoder) hflex1() error {
	if len(d.stack) < 9 {
		return ErrMalformed
	}
	a := d.stack
	y0 := d.y
	x1, y1 := d.x+a[0], d.y+a[1]
	x2, y2 := x1+a[2], y1+a[3]
	x3, y3 := x2+a[4], y2
	d.curveTo(x1, y1, x2, y2, x3, y3)
	x4, y4 := x3+a[5], y3
	x5, y5 := x4+a[6], y4+a[7]
	x6, y6 := x5+a[8], y0
	d.curveTo(x4, y4, x5, y5, x6, y6)
	d.clear()
	return nil
}

func (d *decoder) flex1() error {
	if len(d.stack) < 11 {
		return ErrMalformed
	}
	a := d.stack
	x0, y0 := d.x, d.y
	x1, y1 := d.x+a[0], d.y+a[1]
	x2, y2 := x1+a[2], y1+a[3]
	x3, y3 := x2+a[4], y2+a[5]
	d.curveTo(x1, y1, x2, y2, x3, y3)
	x4, y4 := x3+a[6], y3+a[7]
	x5, y5 := x4+a[8], y4+a[9]
	dx := x5 - x0
	dy := y5 - y0
	var x6, y6 float64
	if abs(dx) > abs(dy) {
		x6, y6 = x5+a[10], y0
	} else {
		x6, y6 = x0, y5+a[10]
	}
	d.curveTo(x4, y4, x5, y5, x6, y6)
	d.clear()
	return nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// endchar handles both the ordinary zero-argument terminator and the
// deprecated 4-argument seac-like accented-character composition.
func (d *decoder) endchar() error {
	d.takeWidth(len(d.stack) == 1 || len(d.stack) == 5)
	switch len(d.stack) {
	case 0:
		return nil
	case 4:
		if d.r.Seac == nil {
			return ErrUnsupportedSeac
		}
		adx, ady, bchar, achar := d.stack[0], d.stack[1], int(d.stack[2]), int(d.stack[3])
		base, err := d.r.Seac(bchar)
		if err != nil {
			return err
		}
		accent, err := d.r.Seac(achar)
		if err != nil {
			return err
		}
		d.segments = append(d.segments, base.Segments...)
		for _, s := range accent.Segments {
			d.segments = append(d.segments, translate(s, adx, ady))
		}
		return nil
	default:
		return ErrMalformed
	}
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

// decodeOperand reads one numeric operand starting at code[0], per the
// Type 2 Charstring Format operand encoding, and returns its value and
// the number of bytes consumed.
func decodeOperand(code []byte) (float64, int, error) {
	b0 := code[0]
	switch {
	case b0 == 28:
		if len(code) < 3 {
			return 0, 0, ErrMalformed
		}
		v := int16(uint16(code[1])<<8 | uint16(code[2]))
		return float64(v), 3, nil
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
		return float64(v) / 65536.0, 5, nil
	default:
		return 0, 0, ErrMalformed
	}
}
