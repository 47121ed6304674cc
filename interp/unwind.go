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

// PushStopped pushes a Stopped marker onto the execution stack on behalf
// of the `stopped` operator, recording the dictionary-stack depth at the
// point of the call so Stop can restore it (spec §4.2, "`stop`... removes
// orphaned resource-category dictionaries from the dictionary stack").
func (c *Context) PushStopped() error {
	c.stoppedDictDepths = append(c.stoppedDictDepths, c.Dicts.Len())
	if err := c.Exec.Push(dispatchOp, psengine.Stopped{}); err != nil {
		c.stoppedDictDepths = c.stoppedDictDepths[:len(c.stoppedDictDepths)-1]
		return err
	}
	return nil
}

// popStoppedDepth discards the most recently recorded dictionary-stack
// depth, used both when a Stopped marker is reached normally (rule 6)
// and when Stop consumes one during unwind.
func (c *Context) popStoppedDepth() (int, bool) {
	n := len(c.stoppedDictDepths)
	if n == 0 {
		return 0, false
	}
	depth := c.stoppedDictDepths[n-1]
	c.stoppedDictDepths = c.stoppedDictDepths[:n-1]
	return depth, true
}

// Exit implements the `exit` operator (spec §4.2): unwind the execution
// stack until a loop header is popped, closing any File streams
// encountered along the way. It is an error to call exit with no loop
// header on the execution stack.
func (c *Context) Exit(op string) error {
	for {
		top, err := c.Exec.Pop(op)
		if err != nil {
			return psengine.NewError(op, psengine.ErrInvalidExit)
		}
		switch v := top.(type) {
		case *psengine.Loop:
			return nil
		case *psengine.File:
			closeStream(v)
		}
	}
}

// Stop implements the `stop` operator (spec §4.2): unwind the execution
// stack until a Stopped marker is popped, pushing true onto the operand
// stack, closing any File streams encountered and truncating the
// dictionary stack back to the depth recorded when that Stopped marker
// was installed. If no Stopped marker remains, the job boundary itself
// (interp.Run's caller) is expected to catch the resulting error and
// behave like an uncaught stop at the outermost level.
func (c *Context) Stop(op string) error {
	for {
		top, err := c.Exec.Pop(op)
		if err != nil {
			return psengine.NewError(op, psengine.ErrUnregistered)
		}
		switch v := top.(type) {
		case psengine.Stopped:
			if depth, ok := c.popStoppedDepth(); ok {
				c.Dicts.Truncate(depth)
			}
			return c.Operand.Push(op, psengine.Boolean(true))
		case *psengine.File:
			closeStream(v)
		}
	}
}

// closeStream closes a File encountered during exit/stop unwind,
// ignoring the result: a file already at EOF or already closed is not
// an error condition worth surfacing mid-unwind (spec §4.2).
func closeStream(f *psengine.File) {
	if f.Stream != nil {
		f.Stream.Close()
	}
}
