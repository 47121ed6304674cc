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
	"seehuhn.de/go/psengine"
	"seehuhn.de/go/psengine/interp"
)

// registerControl installs the control-flow and access-attribute
// operators; `forall` (array.go) is the only looping operator that does
// not live here, since it shares the generic array/dict dispatch.
func registerControl(b builder) {
	b.op("exec", opExec)
	b.op("if", opIf)
	b.op("ifelse", opIfelse)
	b.op("for", opFor)
	b.op("repeat", opRepeat)
	b.op("loop", opLoop)
	b.op("exit", opExit)
	b.op("stop", opStop)
	b.op("stopped", opStopped)
	b.op("quit", opQuit)
	b.op("countexecstack", opCountexecstack)
	b.op("execstack", opExecstack)
	b.op("cvx", opCvx)
	b.op("cvlit", opCvlit)
	b.op("xcheck", opXcheck)
	b.op("executeonly", opExecuteonly)
	b.op("noaccess", opNoaccess)
	b.op("readonly", opReadonly)
	b.op("rcheck", opRcheck)
	b.op("wcheck", opWcheck)
}

func opExec(c *interp.Context) error {
	v, err := popAny(c, "exec")
	if err != nil {
		return err
	}
	return c.Exec.Push("exec", c.DupForExec(v))
}

func opIf(c *interp.Context) error {
	proc, err := popProc(c, "if")
	if err != nil {
		return err
	}
	cond, err := popBool(c, "if")
	if err != nil {
		return err
	}
	if !cond {
		return nil
	}
	return c.Exec.Push("if", c.DupForExec(proc))
}

func opIfelse(c *interp.Context) error {
	proc2, err := popProc(c, "ifelse")
	if err != nil {
		return err
	}
	proc1, err := popProc(c, "ifelse")
	if err != nil {
		return err
	}
	cond, err := popBool(c, "ifelse")
	if err != nil {
		return err
	}
	if cond {
		return c.Exec.Push("ifelse", c.DupForExec(proc1))
	}
	return c.Exec.Push("ifelse", c.DupForExec(proc2))
}

// opFor implements `initial increment limit proc for` by installing a
// loop header for the dispatch loop's rule 7 to advance (interp/loop.go).
func opFor(c *interp.Context) error {
	proc, err := popProc(c, "for")
	if err != nil {
		return err
	}
	limit, _, err := popNum(c, "for")
	if err != nil {
		return err
	}
	increment, _, err := popNum(c, "for")
	if err != nil {
		return err
	}
	init, _, err := popNum(c, "for")
	if err != nil {
		return err
	}
	return c.Exec.Push("for", interp.NewForLoop(proc, psengine.Real(init), psengine.Real(limit), psengine.Real(increment)))
}

func opRepeat(c *interp.Context) error {
	proc, err := popProc(c, "repeat")
	if err != nil {
		return err
	}
	n, err := popInt(c, "repeat")
	if err != nil {
		return err
	}
	if n < 0 {
		return psengine.NewError("repeat", psengine.ErrRangeCheck)
	}
	return c.Exec.Push("repeat", interp.NewRepeatLoop(proc, int64(n)))
}

func opLoop(c *interp.Context) error {
	proc, err := popProc(c, "loop")
	if err != nil {
		return err
	}
	return c.Exec.Push("loop", interp.NewInfiniteLoop(proc))
}

func opExit(c *interp.Context) error {
	return c.Exit("exit")
}

func opStop(c *interp.Context) error {
	return c.Stop("stop")
}

// opStopped implements `any stopped bool` by pushing a HardReturn below
// a Stopped marker and the procedure, then re-invoking the dispatch loop
// synchronously (the same reentrancy protocol package interp documents
// for Type 3 BuildGlyph, spec §4.6): Run returns once the HardReturn this
// call pushed is popped, by which point either the procedure ran to
// completion (Stopped's normal-reach case already pushed false) or a
// nested `stop` unwound to this Stopped marker (pushing true).
func opStopped(c *interp.Context) error {
	proc, err := popProc(c, "stopped")
	if err != nil {
		return err
	}
	if err := c.Exec.Push("stopped", psengine.HardReturn{}); err != nil {
		return err
	}
	if err := c.PushStopped(); err != nil {
		return err
	}
	if err := c.Exec.Push("stopped", c.DupForExec(proc)); err != nil {
		return err
	}
	return c.Run()
}

// opQuit implements `quit`: discard the rest of the current execution
// stack so the dispatch loop returns, ending the job (spec §4.3, job
// encapsulation is the caller's responsibility to then tear down).
func opQuit(c *interp.Context) error {
	c.Exec.Clear()
	return nil
}

func opCountexecstack(c *interp.Context) error {
	return push(c, "countexecstack", psengine.Integer(c.Exec.Len()))
}

func opExecstack(c *interp.Context) error {
	top, err := peekAny(c, "execstack", 0)
	if err != nil {
		return err
	}
	arr, ok := top.(*psengine.Array)
	if !ok {
		return psengine.NewError("execstack", psengine.ErrTypeCheck)
	}
	entries := c.Exec.All()
	if arr.Length < len(entries) {
		return psengine.NewError("execstack", psengine.ErrRangeCheck)
	}
	if _, err := c.Operand.Pop("execstack"); err != nil {
		return err
	}
	c.VM.CowArray(arr)
	items := arr.Items()
	copy(items, entries)
	return push(c, "execstack", c.VM.Subarray(arr, 0, len(entries)))
}

// hdrObject is implemented by every composite Object (String, Array,
// PackedArray, Dict, File, GState, FontID) through *Header's promoted
// Hdr method.
type hdrObject interface {
	Hdr() *psengine.Header
}

func opCvx(c *interp.Context) error {
	v, err := popAny(c, "cvx")
	if err != nil {
		return err
	}
	return push(c, "cvx", setExecutable(v, true))
}

func opCvlit(c *interp.Context) error {
	v, err := popAny(c, "cvlit")
	if err != nil {
		return err
	}
	return push(c, "cvlit", setExecutable(v, false))
}

func setExecutable(v psengine.Object, executable bool) psengine.Object {
	switch vv := v.(type) {
	case psengine.Name:
		return psengine.NewName(vv.Bytes, executable)
	case hdrObject:
		attr := psengine.AttrLiteral
		if executable {
			attr = psengine.AttrExecutable
		}
		vv.Hdr().Attribute = attr
		return v
	default:
		return v
	}
}

func opXcheck(c *interp.Context) error {
	v, err := popAny(c, "xcheck")
	if err != nil {
		return err
	}
	return push(c, "xcheck", psengine.Boolean(v.Attr() == psengine.AttrExecutable))
}

func opExecuteonly(c *interp.Context) error {
	v, err := popAny(c, "executeonly")
	if err != nil {
		return err
	}
	h, ok := v.(hdrObject)
	if !ok {
		return psengine.NewError("executeonly", psengine.ErrTypeCheck)
	}
	h.Hdr().Access = psengine.AccessExecuteOnly
	return push(c, "executeonly", v)
}

func opNoaccess(c *interp.Context) error {
	v, err := popAny(c, "noaccess")
	if err != nil {
		return err
	}
	h, ok := v.(hdrObject)
	if !ok {
		return psengine.NewError("noaccess", psengine.ErrTypeCheck)
	}
	h.Hdr().Access = psengine.AccessNone
	return push(c, "noaccess", v)
}

func opReadonly(c *interp.Context) error {
	v, err := popAny(c, "readonly")
	if err != nil {
		return err
	}
	h, ok := v.(hdrObject)
	if !ok {
		return psengine.NewError("readonly", psengine.ErrTypeCheck)
	}
	h.Hdr().Access = psengine.AccessReadOnly
	return push(c, "readonly", v)
}

func opRcheck(c *interp.Context) error {
	v, err := popAny(c, "rcheck")
	if err != nil {
		return err
	}
	h, ok := v.(hdrObject)
	if !ok {
		return push(c, "rcheck", psengine.Boolean(true))
	}
	access := h.Hdr().Access
	return push(c, "rcheck", psengine.Boolean(access == psengine.AccessUnlimited || access == psengine.AccessReadOnly))
}

func opWcheck(c *interp.Context) error {
	v, err := popAny(c, "wcheck")
	if err != nil {
		return err
	}
	h, ok := v.(hdrObject)
	if !ok {
		return push(c, "wcheck", psengine.Boolean(false))
	}
	return push(c, "wcheck", psengine.Boolean(h.Hdr().Access == psengine.AccessUnlimited))
}
