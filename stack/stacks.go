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

import "seehuhn.de/go/psengine"

// Default capacities. These are implementation limits (spec §8,
// "Dictionary full (implementation limit)"), not part of the PostScript
// language; a Context can override them at construction.
//
// There is no DefaultMaxGStateStack: the graphics-state stack (spec §2's
// fourth bounded stack) is owned and bounds-checked by
// graphics.Machine directly, since that package already needs the
// concrete *graphics.State element type for gsave/grestore/grestoreall
// and the save-floor bookkeeping of spec §4.4 — routing it through this
// package's opaque Bounded[any] as well would just be a second,
// redundant stack tracking the same pushes and pops.
const (
	DefaultMaxOperandStack   = 10000
	DefaultMaxExecutionStack = 10000
	DefaultMaxDictStack      = 64
)

// Operand is the operand stack: the working stack every operator reads
// its arguments from and pushes its results onto.
type Operand struct{ *Bounded[psengine.Object] }

// NewOperand creates an operand stack reporting stackoverflow/
// stackunderflow.
func NewOperand(capacity int) *Operand {
	return &Operand{New[psengine.Object](capacity, psengine.ErrStackOverflow, psengine.ErrStackUnderflow)}
}

// Execution is the execution stack: the central dispatch loop of spec
// §4.1 consumes it from the top, one Object (or, for a procedure's
// backing array, a header that self-advances) per iteration.
type Execution struct{ *Bounded[psengine.Object] }

// NewExecution creates an execution stack reporting execstackoverflow
// (there is no PostScript "execstackunderflow"; an empty execution
// stack simply ends the dispatch loop, spec §4.1).
func NewExecution(capacity int) *Execution {
	return &Execution{New[psengine.Object](capacity, psengine.ErrExecStackOverflow, psengine.ErrExecStackOverflow)}
}

// Dict is the dictionary stack: names are resolved by searching it
// top-to-bottom (spec §4.1 rule 3); `begin`/`end` push/pop it.
type Dict struct{ *Bounded[*psengine.Dict] }

// NewDict creates a dictionary stack reporting dictstackoverflow/
// dictstackunderflow.
func NewDict(capacity int) *Dict {
	return &Dict{New[*psengine.Dict](capacity, psengine.ErrDictStackOverflow, psengine.ErrDictStackUnderflow)}
}

// Lookup searches the dictionary stack top-to-bottom for name,
// returning the first match (spec §4.1 rule 3).
func (d *Dict) Lookup(name string) (psengine.Object, *psengine.Dict, bool) {
	items := d.All()
	for i := len(items) - 1; i >= 0; i-- {
		if v, ok := items[i].Store.Get(name); ok {
			return v, items[i], true
		}
	}
	return nil, nil, false
}
