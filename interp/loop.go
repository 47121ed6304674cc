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

import "seehuhn.de/go/psengine"

// CIDIterator is the interface package font's composite-font CID cursor
// satisfies, consumed opaquely through Loop.Pending (spec §4.2,
// "pending-CID state for cshow/kshow composite-font iteration"); interp
// does not import package font (which needs interp for BuildGlyph
// reentrancy), so this is the narrow surface dispatchLoop needs.
type CIDIterator interface {
	// Next returns the next character code and its resolved CID/glyph
	// selector, and whether one was available.
	Next() (code int, cid int, ok bool)
}

// NewForLoop constructs a `for` loop header: pushes proc once per step
// from init to limit (inclusive, PLRM semantics), in increment steps.
func NewForLoop(proc psengine.Object, init, limit, increment psengine.Real) *psengine.Loop {
	return &psengine.Loop{Kind: psengine.LoopFor, Proc: proc, Counter: init, Limit: limit, Increment: increment}
}

// NewRepeatLoop constructs a `repeat` loop header running proc n times.
func NewRepeatLoop(proc psengine.Object, n int64) *psengine.Loop {
	return &psengine.Loop{Kind: psengine.LoopRepeat, Proc: proc, Remaining: n}
}

// NewInfiniteLoop constructs a `loop` header running proc until `exit`.
func NewInfiniteLoop(proc psengine.Object) *psengine.Loop {
	return &psengine.Loop{Kind: psengine.LoopLoop, Proc: proc}
}

// NewForallLoop constructs a `forall` header iterating subject (an
// Array, PackedArray, or String).
func NewForallLoop(proc, subject psengine.Object) *psengine.Loop {
	return &psengine.Loop{Kind: psengine.LoopForall, Proc: proc, Subject: subject}
}

// NewDictForallLoop constructs a `forall` header over a Dict, flattened
// by package operators (which owns the Name/Object pair it wants pushed
// each iteration) into pairs, an Array of alternating key/value Objects.
// Unlike the Array/PackedArray/String forms, each step pushes two
// operands (key then value) before running Proc once, so Dict forall
// gets its own wrapped Subject rather than sharing the Array case's
// one-element-per-step advance.
func NewDictForallLoop(proc psengine.Object, pairs *psengine.Array) *psengine.Loop {
	return &psengine.Loop{Kind: psengine.LoopForall, Proc: proc, Subject: wrapOpaque{pairs}}
}

// NewPathforallLoop constructs a `pathforall` header iterating the
// current path's segments; subject is opaque (concretely the
// *graphics.Path snapshot) since interp does not otherwise need to know
// graphics.Path's shape.
func NewPathforallLoop(proc psengine.Object, path any) *psengine.Loop {
	return &psengine.Loop{Kind: psengine.LoopPathforall, Proc: proc, Subject: wrapOpaque{path}}
}

// NewFilenameforallLoop constructs a `filenameforall` header iterating
// already-expanded filenames matching a pattern.
func NewFilenameforallLoop(proc psengine.Object, names []string) *psengine.Loop {
	return &psengine.Loop{Kind: psengine.LoopFilenameforall, Proc: proc, Subject: wrapOpaque{names}}
}

// NewCshowLoop / NewKshowLoop construct the composite-font show-variant
// loop headers (spec §4.2, §4.6).
func NewCshowLoop(proc psengine.Object, it CIDIterator) *psengine.Loop {
	return &psengine.Loop{Kind: psengine.LoopCshow, Proc: proc, Pending: it}
}

func NewKshowLoop(proc psengine.Object, it CIDIterator) *psengine.Loop {
	return &psengine.Loop{Kind: psengine.LoopKshow, Proc: proc, Pending: it}
}

// wrapOpaque lets a non-Object payload travel through Loop.Subject,
// which is typed psengine.Object so forall's Array/Dict/String cases can
// also use it directly.
type wrapOpaque struct{ v any }

func (wrapOpaque) Tag() psengine.Tag        { return psengine.TagNull }
func (wrapOpaque) Attr() psengine.Attribute { return psengine.AttrLiteral }

// dispatchLoop implements rule 7 (spec §4.2): advance one step of the
// loop header at the top of the execution stack, pushing a copy of Proc
// for this pass or popping the header on termination.
func (c *Context) dispatchLoop(l *psengine.Loop) error {
	switch l.Kind {
	case psengine.LoopFor:
		return c.stepForLoop(l)
	case psengine.LoopRepeat:
		return c.stepRepeatLoop(l)
	case psengine.LoopLoop:
		return c.stepInfiniteLoop(l)
	case psengine.LoopForall:
		return c.stepForallLoop(l)
	case psengine.LoopPathforall:
		return c.stepPathforallLoop(l)
	case psengine.LoopFilenameforall:
		return c.stepFilenameforallLoop(l)
	case psengine.LoopCshow:
		return c.stepCIDLoop(l, false)
	case psengine.LoopKshow:
		return c.stepCIDLoop(l, true)
	default:
		return psengine.NewError("--loop--", psengine.ErrUnregistered)
	}
}

func (c *Context) popLoop() error {
	_, err := c.Exec.Pop(dispatchOp)
	return err
}

func (c *Context) pushProcCopy(proc psengine.Object) error {
	return c.Exec.Push(dispatchOp, c.dupForExec(proc))
}

func (c *Context) stepForLoop(l *psengine.Loop) error {
	done := l.Increment > 0 && l.Counter > l.Limit || l.Increment < 0 && l.Counter < l.Limit || l.Increment == 0
	if done {
		return c.popLoop()
	}
	current := l.Counter
	l.Counter += l.Increment
	if err := c.Operand.Push(dispatchOp, current); err != nil {
		return err
	}
	return c.pushProcCopy(l.Proc)
}

func (c *Context) stepRepeatLoop(l *psengine.Loop) error {
	if l.Remaining <= 0 {
		return c.popLoop()
	}
	l.Remaining--
	return c.pushProcCopy(l.Proc)
}

func (c *Context) stepInfiniteLoop(l *psengine.Loop) error {
	return c.pushProcCopy(l.Proc)
}

func (c *Context) stepForallLoop(l *psengine.Loop) error {
	switch s := l.Subject.(type) {
	case wrapOpaque:
		pairs, ok := s.v.(*psengine.Array)
		if !ok {
			return psengine.NewError("forall", psengine.ErrTypeCheck)
		}
		items := pairs.Items()
		if l.Cursor >= len(items) {
			return c.popLoop()
		}
		key, val := items[l.Cursor], items[l.Cursor+1]
		l.Cursor += 2
		if err := c.Operand.Push(dispatchOp, key); err != nil {
			return err
		}
		if err := c.Operand.Push(dispatchOp, val); err != nil {
			return err
		}
		return c.pushProcCopy(l.Proc)
	case *psengine.Array:
		items := s.Items()
		if l.Cursor >= len(items) {
			return c.popLoop()
		}
		elem := items[l.Cursor]
		l.Cursor++
		if err := c.Operand.Push(dispatchOp, elem); err != nil {
			return err
		}
		return c.pushProcCopy(l.Proc)
	case *psengine.PackedArray:
		items := s.Items()
		if l.Cursor >= len(items) {
			return c.popLoop()
		}
		elem := items[l.Cursor]
		l.Cursor++
		if err := c.Operand.Push(dispatchOp, elem); err != nil {
			return err
		}
		return c.pushProcCopy(l.Proc)
	case *psengine.String:
		b := s.Bytes()
		if l.Cursor >= len(b) {
			return c.popLoop()
		}
		ch := b[l.Cursor]
		l.Cursor++
		if err := c.Operand.Push(dispatchOp, psengine.Integer(ch)); err != nil {
			return err
		}
		return c.pushProcCopy(l.Proc)
	case *psengine.Dict:
		entries := s.Store
		if l.Cursor >= entries.Len() {
			return c.popLoop()
		}
		// DictStore only exposes ForEach for full traversal; forall's
		// cursor semantics need indexed access, so entries are snapshot
		// into Subject on loop construction by package operators instead
		// of relying on a second traversal primitive here. Operators is
		// expected to have already rewritten Subject to a *psengine.Array
		// of alternating key/value Objects for Dict forall; reaching this
		// branch with a raw *psengine.Dict is a programming error.
		return psengine.NewError("forall", psengine.ErrUnregistered)
	default:
		return psengine.NewError("forall", psengine.ErrTypeCheck)
	}
}

func (c *Context) stepPathforallLoop(l *psengine.Loop) error {
	wrap, ok := l.Subject.(wrapOpaque)
	if !ok {
		return psengine.NewError("pathforall", psengine.ErrTypeCheck)
	}
	segs, ok := wrap.v.([]PathSegmentCallback)
	if !ok {
		return psengine.NewError("pathforall", psengine.ErrTypeCheck)
	}
	if l.Cursor >= len(segs) {
		return c.popLoop()
	}
	seg := segs[l.Cursor]
	l.Cursor++
	for _, v := range seg.Operands {
		if err := c.Operand.Push(dispatchOp, v); err != nil {
			return err
		}
	}
	return c.pushProcCopy(seg.Proc)
}

// PathSegmentCallback is one pathforall callback: the per-segment
// operator-specific procedure (moveto/lineto/curveto/closepath) plus its
// coordinate operands, precomputed by package operators from the
// current graphics.Path so this package does not need to import
// graphics for path-segment shapes.
type PathSegmentCallback struct {
	Proc     psengine.Object
	Operands []psengine.Object
}

func (c *Context) stepFilenameforallLoop(l *psengine.Loop) error {
	wrap, ok := l.Subject.(wrapOpaque)
	if !ok {
		return psengine.NewError("filenameforall", psengine.ErrTypeCheck)
	}
	names, ok := wrap.v.([]string)
	if !ok {
		return psengine.NewError("filenameforall", psengine.ErrTypeCheck)
	}
	if l.Cursor >= len(names) {
		return c.popLoop()
	}
	name := names[l.Cursor]
	l.Cursor++
	str := c.VM.NewString([]byte(name), psengine.AccessUnlimited, psengine.AttrLiteral)
	if err := c.Operand.Push(dispatchOp, str); err != nil {
		return err
	}
	return c.pushProcCopy(l.Proc)
}

func (c *Context) stepCIDLoop(l *psengine.Loop, withCode bool) error {
	it, ok := l.Pending.(CIDIterator)
	if !ok {
		return psengine.NewError("cshow", psengine.ErrTypeCheck)
	}
	code, cid, ok := it.Next()
	if !ok {
		return c.popLoop()
	}
	if withCode {
		if err := c.Operand.Push(dispatchOp, psengine.Integer(code)); err != nil {
			return err
		}
	}
	if err := c.Operand.Push(dispatchOp, psengine.Integer(cid)); err != nil {
		return err
	}
	return c.pushProcCopy(l.Proc)
}
