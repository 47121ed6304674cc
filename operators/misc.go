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
	"fmt"
	"io"
	"strconv"

	"seehuhn.de/go/psengine"
	"seehuhn.de/go/psengine/interp"
)

// registerMisc installs the remaining operators that don't fit another
// category: type inspection, name/string conversion, procedure binding,
// and the plain-text debugging/output operators (PLRM §8.1, §8.4).
func registerMisc(b builder) {
	b.op("type", opType)
	b.op("cvn", opCvn)
	b.op("cvs", opCvs)
	b.op("bind", opBind)
	b.op("print", opPrint)
	b.op("=", opEquals)
	b.op("==", opEqualsEquals)
	b.op("stack", opStack)
	b.op("pstack", opPstack)
	b.op("flush", opFlush)
}

// opType implements `any type name`: the PLRM type name for any's tag,
// with the `...type` suffix convention (PLRM §8.1 table 8.1).
func opType(c *interp.Context) error {
	v, err := popAny(c, "type")
	if err != nil {
		return err
	}
	return push(c, "type", psengine.NewName([]byte(v.Tag().String()+"type"), false))
}

// opCvn implements `string cvn name`: the string's bytes become a name
// with the same literal/executable attribute the string had (PLRM §8.1).
func opCvn(c *interp.Context) error {
	v, err := peekAny(c, "cvn", 0)
	if err != nil {
		return err
	}
	str, ok := v.(*psengine.String)
	if !ok {
		return psengine.NewError("cvn", psengine.ErrTypeCheck)
	}
	executable := str.Attr() == psengine.AttrExecutable
	if _, err := c.Operand.Pop("cvn"); err != nil {
		return err
	}
	return push(c, "cvn", psengine.NewName(append([]byte(nil), str.Bytes()...), executable))
}

// opCvs implements `any string cvs substring`: render any as text into
// string, truncated with rangecheck if it does not fit (PLRM §8.1).
func opCvs(c *interp.Context) error {
	dst, err := popString(c, "cvs")
	if err != nil {
		return err
	}
	v, err := popAny(c, "cvs")
	if err != nil {
		return err
	}
	text, err := cvsText(v)
	if err != nil {
		return err
	}
	b := []byte(text)
	if len(b) > dst.Length {
		return psengine.NewError("cvs", psengine.ErrRangeCheck)
	}
	c.VM.CowString(dst)
	copy(dst.Bytes(), b)
	return push(c, "cvs", c.VM.Substring(dst, 0, len(b)))
}

func cvsText(v psengine.Object) (string, error) {
	switch vv := v.(type) {
	case psengine.Integer:
		return strconv.FormatInt(int64(vv), 10), nil
	case psengine.Real:
		return formatReal(float64(vv)), nil
	case psengine.Boolean:
		return strconv.FormatBool(bool(vv)), nil
	case psengine.Name:
		return vv.String(), nil
	case *psengine.String:
		return string(vv.Bytes()), nil
	case psengine.Null:
		return "--nulltype--", nil
	default:
		return "--" + v.Tag().String() + "--", nil
	}
}

func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	return s
}

// opBind implements `proc bind proc` (PLRM §8.1): replace every operator
// name found (recursively, through nested literal procedures) in proc's
// top-level lookup with the operator object itself, short-circuiting
// later name lookups; names that don't currently resolve to an operator
// in systemdict are left untouched, matching the PLRM's "bind only
// substitutes names it can resolve now" behavior.
func opBind(c *interp.Context) error {
	v, err := peekAny(c, "bind", 0)
	if err != nil {
		return err
	}
	arr, ok := v.(*psengine.Array)
	if !ok {
		if _, ok := v.(*psengine.PackedArray); ok {
			return nil
		}
		return psengine.NewError("bind", psengine.ErrTypeCheck)
	}
	bindProcedure(c, arr, make(map[*psengine.Array]bool))
	return nil
}

func bindProcedure(c *interp.Context, arr *psengine.Array, seen map[*psengine.Array]bool) {
	if seen[arr] {
		return
	}
	seen[arr] = true
	c.VM.CowArray(arr)
	items := arr.Items()
	for i, item := range items {
		switch vv := item.(type) {
		case psengine.Name:
			if vv.Attr() != psengine.AttrExecutable {
				continue
			}
			if resolved, _, ok := c.Dicts.Lookup(vv.String()); ok {
				if _, isOp := resolved.(psengine.Operator); isOp {
					items[i] = resolved
				}
			}
		case *psengine.Array:
			if vv.Attr() == psengine.AttrExecutable {
				bindProcedure(c, vv, seen)
			}
		}
	}
}

func writer(c *interp.Context) io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return io.Discard
}

func opPrint(c *interp.Context) error {
	v, err := popAny(c, "print")
	if err != nil {
		return err
	}
	text, err := cvsText(v)
	if err != nil {
		return err
	}
	io.WriteString(writer(c), text)
	return nil
}

// opEquals implements `any =`: print's human-readable form, followed by
// a newline (PLRM §8.4).
func opEquals(c *interp.Context) error {
	v, err := popAny(c, "=")
	if err != nil {
		return err
	}
	text, err := cvsText(v)
	if err != nil {
		return err
	}
	fmt.Fprintln(writer(c), text)
	return nil
}

// opEqualsEquals implements `any ==`: like =, but in syntax that could
// (for most types) be read back in, matching PLRM's `==` operator.
func opEqualsEquals(c *interp.Context) error {
	v, err := popAny(c, "==")
	if err != nil {
		return err
	}
	fmt.Fprintln(writer(c), formatSyntax(v))
	return nil
}

func formatSyntax(v psengine.Object) string {
	switch vv := v.(type) {
	case *psengine.String:
		return "(" + string(vv.Bytes()) + ")"
	case psengine.Name:
		if vv.Attr() == psengine.AttrExecutable {
			return vv.String()
		}
		return "/" + vv.String()
	case *psengine.Array:
		items := vv.Items()
		s := "["
		for i, it := range items {
			if i > 0 {
				s += " "
			}
			s += formatSyntax(it)
		}
		return s + "]"
	case *psengine.Dict:
		return "-dict-"
	default:
		text, _ := cvsText(v)
		return text
	}
}

func opStack(c *interp.Context) error {
	items := c.Operand.All()
	for i := len(items) - 1; i >= 0; i-- {
		text, err := cvsText(items[i])
		if err != nil {
			return err
		}
		fmt.Fprintln(writer(c), text)
	}
	return nil
}

func opPstack(c *interp.Context) error {
	items := c.Operand.All()
	for i := len(items) - 1; i >= 0; i-- {
		fmt.Fprintln(writer(c), formatSyntax(items[i]))
	}
	return nil
}

func opFlush(c *interp.Context) error {
	if f, ok := writer(c).(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}
