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

package stack

import (
	"errors"
	"testing"

	"seehuhn.de/go/psengine"
)

func TestOperandOverflowUnderflow(t *testing.T) {
	op := NewOperand(2)
	if err := op.Push("x", psengine.Integer(1)); err != nil {
		t.Fatal(err)
	}
	if err := op.Push("x", psengine.Integer(2)); err != nil {
		t.Fatal(err)
	}
	if err := op.Push("x", psengine.Integer(3)); err == nil {
		t.Fatal("expected stackoverflow")
	} else {
		var pe *psengine.Error
		if !errors.As(err, &pe) || pe.Kind != psengine.ErrStackOverflow {
			t.Fatalf("wrong error: %v", err)
		}
	}

	op.Truncate(0)
	if _, err := op.Pop("x"); err == nil {
		t.Fatal("expected stackunderflow")
	} else {
		var pe *psengine.Error
		if !errors.As(err, &pe) || pe.Kind != psengine.ErrStackUnderflow {
			t.Fatalf("wrong error: %v", err)
		}
	}
}

func TestOperandPeekDoesNotPop(t *testing.T) {
	op := NewOperand(10)
	op.Push("x", psengine.Integer(1))
	op.Push("x", psengine.Integer(2))
	v, err := op.Peek("x", 0)
	if err != nil || v != psengine.Integer(2) {
		t.Fatalf("got %v, %v", v, err)
	}
	if op.Len() != 2 {
		t.Fatalf("Peek should not remove, len = %d", op.Len())
	}
}

func TestDictLookupTopToBottom(t *testing.T) {
	ds := NewDict(8)
	lower := psengine.NewDict(&psengine.Header{}, 4)
	lower.Store.Put("a", psengine.Integer(1))
	upper := psengine.NewDict(&psengine.Header{}, 4)
	upper.Store.Put("a", psengine.Integer(2))

	ds.Push("begin", lower)
	ds.Push("begin", upper)

	v, d, ok := ds.Lookup("a")
	if !ok || v != psengine.Integer(2) || d != upper {
		t.Fatalf("expected upper dict's shadowing value, got %v from %v", v, d)
	}

	ds.Pop("end")
	v, d, ok = ds.Lookup("a")
	if !ok || v != psengine.Integer(1) || d != lower {
		t.Fatalf("expected lower dict's value after end, got %v from %v", v, d)
	}
}
