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
	"io"

	"seehuhn.de/go/psengine"
)

const dispatchOp = "--exec--"

// Run drives the dispatch loop to completion: it repeatedly examines the
// top of the execution stack and takes exactly one of the eight actions
// of spec §4.1 until the stack empties or a HardReturn is popped. Run
// returns nil when the stack empties normally or a HardReturn ends this
// reentrant invocation (spec §4.1's invariant: "the loop is
// re-entrant... re-invoking the dispatch loop processes to the sentinel
// and returns").
func (c *Context) Run() error {
	for {
		hardReturn, err := c.step()
		if err != nil {
			return err
		}
		if hardReturn || c.Exec.Len() == 0 {
			return nil
		}

		c.iterCount++
		if c.EventCallback != nil && c.iterCount%eventCallbackInterval == 0 {
			c.EventCallback()
		}
	}
}

// step performs exactly one dispatch iteration. It reports hardReturn
// true when a HardReturn sentinel was just popped, ending this
// invocation of Run (but not necessarily emptying the execution stack —
// a caller may resume by calling Run again, as Type-3 BuildGlyph does).
func (c *Context) step() (hardReturn bool, err error) {
	top, err := c.Exec.Peek(dispatchOp, 0)
	if err != nil {
		// empty execution stack: nothing to do, Run's caller checks
		// Exec.Len() itself, so this path is unreachable in practice.
		return false, nil
	}

	if isRule1(top) {
		if _, err := c.Exec.Pop(dispatchOp); err != nil {
			return false, err
		}
		if err := c.Operand.Push(dispatchOp, top); err != nil {
			return false, err
		}
		c.History.record(top, top)
		return false, nil
	}

	switch v := top.(type) {
	case psengine.Operator:
		return false, c.dispatchOperator(v)
	case psengine.Name:
		return false, c.dispatchName(v)
	case *psengine.File:
		return false, c.dispatchStream(v)
	case *psengine.String:
		return false, c.dispatchStream(v)
	case *psengine.Array:
		return false, c.dispatchProcedure(arrayView{v})
	case *psengine.PackedArray:
		return false, c.dispatchProcedure(packedArrayView{v})
	case psengine.Stopped:
		_, err := c.Exec.Pop(dispatchOp)
		if err != nil {
			return false, err
		}
		c.popStoppedDepth()
		return false, c.Operand.Push(dispatchOp, psengine.Boolean(false))
	case *psengine.Loop:
		return false, c.dispatchLoop(v)
	case psengine.HardReturn:
		_, err := c.Exec.Pop(dispatchOp)
		return true, err
	default:
		return false, psengine.NewError(dispatchOp, psengine.ErrTypeCheck)
	}
}

// isRule1 reports whether obj matches spec §4.1 rule 1: an immutable
// value type, or any object (of any tag) whose attribute is Literal.
func isRule1(obj psengine.Object) bool {
	switch obj.Tag() {
	case psengine.TagInteger, psengine.TagReal, psengine.TagBoolean, psengine.TagNull, psengine.TagMark:
		return true
	}
	return obj.Attr() == psengine.AttrLiteral
}

// dispatchOperator implements rule 2.
func (c *Context) dispatchOperator(op psengine.Operator) error {
	if _, err := c.Exec.Pop(dispatchOp); err != nil {
		return err
	}
	fn, ok := asOperatorFunc(op)
	if !ok {
		return psengine.NewError(op.OpName, psengine.ErrUnregistered)
	}
	c.History.record(op, op)
	return fn(c)
}

// dispatchName implements rule 3: look up through the dictionary stack
// top-to-bottom, then push the resolved value back onto the execution
// stack (not the operand stack — whatever rule the resolved value itself
// matches on the next iteration decides where it ultimately lands).
// Composite Array/PackedArray/String/Dict values are duped to a fresh
// header before the push (vm.Dup*) so that two reentrant/recursive
// activations of the same stored procedure each get their own
// Start/Length to advance in rule 5, rather than corrupting each
// other's — the same backing-store-sharing discipline package vm's COW
// protocol already relies on for save/restore aliasing.
func (c *Context) dispatchName(name psengine.Name) error {
	op := name.String()
	if _, err := c.Exec.Pop(dispatchOp); err != nil {
		return err
	}
	val, _, found := c.Dicts.Lookup(op)
	if !found {
		return psengine.NewError(op, psengine.ErrUndefined)
	}
	resolved := c.dupForExec(val)
	c.History.record(name, resolved)
	return c.Exec.Push(dispatchOp, resolved)
}

// DupForExec mints a fresh header sharing val's backing store if val is
// composite, for any caller outside this package (operators' `exec`,
// `if`/`ifelse`, ...) that pushes a stored procedure onto the execution
// stack itself rather than going through dispatchName/dispatchProcedure.
func (c *Context) DupForExec(val psengine.Object) psengine.Object {
	return c.dupForExec(val)
}

func (c *Context) dupForExec(val psengine.Object) psengine.Object {
	switch vv := val.(type) {
	case *psengine.Array:
		return c.VM.DupArray(vv)
	case *psengine.PackedArray:
		return c.VM.DupPackedArray(vv)
	case *psengine.String:
		return c.VM.DupString(vv)
	case *psengine.Dict:
		return c.VM.DupDict(vv)
	default:
		return val
	}
}

// dispatchStream implements rule 4 (File/String as a tokenizable
// source): read one token and either push it for immediate execution or,
// at end-of-stream, pop the stream from the execution stack. The real
// `token` operator's own (object, true)/(false) operand-stack protocol
// is implemented separately in package operators; here the intermediate
// flag is elided since nothing observes the operand stack mid-dispatch.
func (c *Context) dispatchStream(src any) error {
	sc, op, err := c.scannerFor(src)
	if err != nil {
		return err
	}
	tok, err := sc.Next()
	if err == io.EOF {
		delete(c.scanners, src)
		_, popErr := c.Exec.Pop(dispatchOp)
		return popErr
	}
	if err != nil {
		return psengine.Wrap(op, psengine.ErrSyntaxError, err)
	}
	resolved := c.dupForExec(tok)
	c.History.record(tok, resolved)
	return c.Exec.Push(dispatchOp, resolved)
}

// packedArrayView adapts *psengine.PackedArray to the procedureView
// interface dispatchProcedure needs, since PackedArray and Array are
// distinct concrete types with identical Start/Length/Vec shapes but no
// shared interface in the object model (object.go keeps them separate so
// PackedArray's read-only backing store cannot be confused with a
// mutable Array's at the type level).
type packedArrayView struct{ p *psengine.PackedArray }

func (v packedArrayView) start() int        { return v.p.Start }
func (v packedArrayView) length() int       { return v.p.Length }
func (v packedArrayView) setStart(n int)    { v.p.Start = n }
func (v packedArrayView) setLength(n int)   { v.p.Length = n }
func (v packedArrayView) items() []psengine.Object { return v.p.Vec.Items }
func (v packedArrayView) object() psengine.Object  { return v.p }

type arrayView struct{ a *psengine.Array }

func (v arrayView) start() int        { return v.a.Start }
func (v arrayView) length() int       { return v.a.Length }
func (v arrayView) setStart(n int)    { v.a.Start = n }
func (v arrayView) setLength(n int)   { v.a.Length = n }
func (v arrayView) items() []psengine.Object { return v.a.Vec.Items }
func (v arrayView) object() psengine.Object  { return v.a }

type procedureView interface {
	start() int
	length() int
	setStart(int)
	setLength(int)
	items() []psengine.Object
	object() psengine.Object
}

// dispatchProcedure implements rule 5: advance one element of the
// backing vector, mutating start/length on this activation's own header
// (never the shared backing store), with tail-call optimization when
// exactly one element remains.
func (c *Context) dispatchProcedure(p procedureView) error {
	if p.length() == 0 {
		_, err := c.Exec.Pop(dispatchOp)
		return err
	}

	elem := p.items()[p.start()]

	if p.length() == 1 {
		// Tail call: replace the procedure header with its last element
		// instead of pushing, keeping loop bodies at constant execution-
		// stack depth (spec §4.1 rule 5).
		if _, err := c.Exec.Pop(dispatchOp); err != nil {
			return err
		}
		return c.pushElement(elem)
	}

	p.setStart(p.start() + 1)
	p.setLength(p.length() - 1)
	return c.pushElement(elem)
}

// pushElement routes one procedure element to the operand stack if
// literal, or to the execution stack (duped, per dupForExec) if
// executable.
func (c *Context) pushElement(elem psengine.Object) error {
	if isRule1(elem) {
		return c.Operand.Push(dispatchOp, elem)
	}
	return c.Exec.Push(dispatchOp, c.dupForExec(elem))
}

var (
	_ procedureView = arrayView{}
	_ procedureView = packedArrayView{}
)
