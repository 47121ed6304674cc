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

package interp

import (
	"testing"

	"seehuhn.de/go/psengine"
)

// markerProc is a one-element procedure that pushes its own marker
// integer; tests use it as the loop body so the operand stack records
// exactly one push per pass.
func markerProc(c *Context, marker psengine.Integer) psengine.Object {
	return c.VM.NewArray([]psengine.Object{marker}, psengine.AccessUnlimited, psengine.AttrExecutable)
}

func TestForLoopCountsInclusiveOfLimit(t *testing.T) {
	c := newTestContext()
	proc := c.VM.NewArray(nil, psengine.AccessUnlimited, psengine.AttrExecutable)
	l := NewForLoop(proc, 1, 3, 1)
	if err := c.Exec.Push("test", l); err != nil {
		t.Fatal(err)
	}
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	got := c.Operand.All()
	want := []psengine.Object{psengine.Real(1), psengine.Real(2), psengine.Real(3)}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestForLoopNegativeIncrementCountsDown(t *testing.T) {
	c := newTestContext()
	proc := c.VM.NewArray(nil, psengine.AccessUnlimited, psengine.AttrExecutable)
	l := NewForLoop(proc, 3, 1, -1)
	if err := c.Exec.Push("test", l); err != nil {
		t.Fatal(err)
	}
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	got := c.Operand.All()
	want := []psengine.Object{psengine.Real(3), psengine.Real(2), psengine.Real(1)}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRepeatLoopRunsExactCount(t *testing.T) {
	c := newTestContext()
	proc := markerProc(c, 5)
	l := NewRepeatLoop(proc, 3)
	if err := c.Exec.Push("test", l); err != nil {
		t.Fatal(err)
	}
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	got := c.Operand.All()
	if len(got) != 3 {
		t.Fatalf("got %d elements, want 3", len(got))
	}
	for _, v := range got {
		if v != psengine.Integer(5) {
			t.Fatalf("got %v, want 5", v)
		}
	}
}

func TestRepeatLoopZeroCountNeverRuns(t *testing.T) {
	c := newTestContext()
	proc := markerProc(c, 5)
	l := NewRepeatLoop(proc, 0)
	if err := c.Exec.Push("test", l); err != nil {
		t.Fatal(err)
	}
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if c.Operand.Len() != 0 {
		t.Fatalf("operand stack depth = %d, want 0", c.Operand.Len())
	}
}

func TestInfiniteLoopStopsOnExit(t *testing.T) {
	c := newTestContext()
	count := 0
	exitOp := NewOperator("exit", func(c *Context) error {
		count++
		if count >= 4 {
			return c.Exit("exit")
		}
		return nil
	})
	proc := c.VM.NewArray([]psengine.Object{exitOp}, psengine.AccessUnlimited, psengine.AttrExecutable)
	l := NewInfiniteLoop(proc)
	if err := c.Exec.Push("test", l); err != nil {
		t.Fatal(err)
	}
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if count != 4 {
		t.Fatalf("exit operator ran %d times, want 4", count)
	}
	if c.Exec.Len() != 0 {
		t.Fatalf("exec stack depth = %d, want 0 after exit unwound the loop header", c.Exec.Len())
	}
}

func TestForallArrayPushesEachElement(t *testing.T) {
	c := newTestContext()
	subject := c.VM.NewArray([]psengine.Object{
		psengine.Integer(10), psengine.Integer(20), psengine.Integer(30),
	}, psengine.AccessUnlimited, psengine.AttrLiteral)

	// forall's body pushes whatever is already on the operand stack
	// through unchanged: the loop step itself puts the element there, so
	// an empty no-op procedure is a sufficient body for this test.
	proc := c.VM.NewArray(nil, psengine.AccessUnlimited, psengine.AttrExecutable)
	l := NewForallLoop(proc, subject)
	if err := c.Exec.Push("test", l); err != nil {
		t.Fatal(err)
	}
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	got := c.Operand.All()
	want := []psengine.Object{psengine.Integer(10), psengine.Integer(20), psengine.Integer(30)}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestForallStringPushesByteCodes(t *testing.T) {
	c := newTestContext()
	subject := c.VM.NewString([]byte("AB"), psengine.AccessUnlimited, psengine.AttrLiteral)
	proc := c.VM.NewArray(nil, psengine.AccessUnlimited, psengine.AttrExecutable)
	l := NewForallLoop(proc, subject)
	if err := c.Exec.Push("test", l); err != nil {
		t.Fatal(err)
	}
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	got := c.Operand.All()
	want := []psengine.Object{psengine.Integer('A'), psengine.Integer('B')}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStopUnwindsToStoppedMarkerAndPushesTrue(t *testing.T) {
	c := newTestContext()
	stopOp := NewOperator("stop", func(c *Context) error {
		return c.Stop("stop")
	})

	if err := c.PushStopped(); err != nil {
		t.Fatal(err)
	}
	proc := c.VM.NewArray([]psengine.Object{stopOp}, psengine.AccessUnlimited, psengine.AttrExecutable)
	if err := c.Exec.Push("test", proc); err != nil {
		t.Fatal(err)
	}

	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	got, err := c.Operand.Pop("test")
	if err != nil {
		t.Fatal(err)
	}
	if got != psengine.Boolean(true) {
		t.Fatalf("got %v, want true", got)
	}
	if c.Exec.Len() != 0 {
		t.Fatalf("exec stack depth = %d, want 0", c.Exec.Len())
	}
}

func TestStopRestoresDictStackDepth(t *testing.T) {
	c := newTestContext()
	baseDepth := c.Dicts.Len()

	extra := c.VM.NewDict(4, psengine.AccessUnlimited)
	pushDict := NewOperator("pushdict", func(c *Context) error {
		return c.Dicts.Push("begin", extra)
	})
	stopOp := NewOperator("stop", func(c *Context) error {
		return c.Stop("stop")
	})

	if err := c.PushStopped(); err != nil {
		t.Fatal(err)
	}
	proc := c.VM.NewArray([]psengine.Object{pushDict, stopOp},
		psengine.AccessUnlimited, psengine.AttrExecutable)
	if err := c.Exec.Push("test", proc); err != nil {
		t.Fatal(err)
	}

	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if c.Dicts.Len() != baseDepth {
		t.Fatalf("dict stack depth = %d, want %d", c.Dicts.Len(), baseDepth)
	}
}
