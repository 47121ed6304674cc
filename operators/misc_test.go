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
	"bytes"
	"testing"

	"seehuhn.de/go/psengine"
)

func TestTypeReportsTagName(t *testing.T) {
	c := newTestContext(t)
	must(t, c.Operand.Push("test", psengine.Integer(3)))
	if err := opType(c); err != nil {
		t.Fatal(err)
	}
	v, err := c.Operand.Pop("test")
	if err != nil {
		t.Fatal(err)
	}
	name := v.(psengine.Name)
	if name.String() != "integertype" {
		t.Fatalf("got %q, want integertype", name.String())
	}
}

func TestCvsRendersIntegerIntoString(t *testing.T) {
	c := newTestContext(t)
	dst := c.VM.NewString(make([]byte, 8), psengine.AccessUnlimited, psengine.AttrLiteral)
	must(t, c.Operand.Push("test", psengine.Integer(42)))
	must(t, c.Operand.Push("test", dst))
	if err := opCvs(c); err != nil {
		t.Fatal(err)
	}
	v, err := c.Operand.Pop("test")
	if err != nil {
		t.Fatal(err)
	}
	sub := v.(*psengine.String)
	if string(sub.Bytes()) != "42" {
		t.Fatalf("got %q, want 42", sub.Bytes())
	}
}

func TestCvsRangecheckWhenStringTooShort(t *testing.T) {
	c := newTestContext(t)
	dst := c.VM.NewString(make([]byte, 1), psengine.AccessUnlimited, psengine.AttrLiteral)
	must(t, c.Operand.Push("test", psengine.Integer(12345)))
	must(t, c.Operand.Push("test", dst))
	err := opCvs(c)
	wantErrKind(t, err, psengine.ErrRangeCheck)
}

func TestCvnPreservesExecutableAttribute(t *testing.T) {
	c := newTestContext(t)
	str := c.VM.NewString([]byte("foo"), psengine.AccessUnlimited, psengine.AttrExecutable)
	must(t, c.Operand.Push("test", str))
	if err := opCvn(c); err != nil {
		t.Fatal(err)
	}
	v, err := c.Operand.Pop("test")
	if err != nil {
		t.Fatal(err)
	}
	name := v.(psengine.Name)
	if name.String() != "foo" || name.Attr() != psengine.AttrExecutable {
		t.Fatalf("got %q attr=%v, want foo executable", name.String(), name.Attr())
	}
}

func TestBindSubstitutesKnownOperatorNames(t *testing.T) {
	c := newTestContext(t)
	proc := c.VM.NewArray([]psengine.Object{
		psengine.NewName([]byte("add"), true),
		psengine.NewName([]byte("nosuchop"), true),
	}, psengine.AccessUnlimited, psengine.AttrExecutable)
	must(t, c.Operand.Push("test", proc))
	if err := opBind(c); err != nil {
		t.Fatal(err)
	}
	items := proc.Items()
	if _, ok := items[0].(psengine.Operator); !ok {
		t.Fatalf("items[0] = %T, want psengine.Operator (add bound)", items[0])
	}
	if _, ok := items[1].(psengine.Name); !ok {
		t.Fatalf("items[1] = %T, want psengine.Name (unresolved name left alone)", items[1])
	}
}

func TestPrintWritesToStdout(t *testing.T) {
	c := newTestContext(t)
	var buf bytes.Buffer
	c.Stdout = &buf
	must(t, c.Operand.Push("test", psengine.Integer(7)))
	if err := opPrint(c); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "7" {
		t.Fatalf("got %q, want 7", buf.String())
	}
}

func TestEqualsEqualsFormatsStringsInParens(t *testing.T) {
	c := newTestContext(t)
	var buf bytes.Buffer
	c.Stdout = &buf
	str := c.VM.NewString([]byte("hi"), psengine.AccessUnlimited, psengine.AttrLiteral)
	must(t, c.Operand.Push("test", str))
	if err := opEqualsEquals(c); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "(hi)\n" {
		t.Fatalf("got %q, want (hi)\\n", buf.String())
	}
}

func TestPrintWithNilStdoutDiscardsSilently(t *testing.T) {
	c := newTestContext(t)
	must(t, c.Operand.Push("test", psengine.Integer(1)))
	if err := opPrint(c); err != nil {
		t.Fatal(err)
	}
}
