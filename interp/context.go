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

// Package interp implements the execution engine: the central dispatch
// loop of spec §4.1, loop-header advancement (§4.2), and the Context
// that owns one full execution environment (§3.2).
//
// Grounded on the teacher's graphics/operator package's
// ApplyOperator(state, op, resource) error / argParser precondition
// pattern (visible only through graphics/operator's tests in the
// retrieved pack — see the graphics package's grounding entry for why
// its source did not survive retrieval), generalized from "apply one PDF
// content-stream operator against a State" to "dispatch one
// execution-stack Object against a Context".
package interp

import (
	"io"

	"seehuhn.de/go/psengine"
	"seehuhn.de/go/psengine/displaylist"
	"seehuhn.de/go/psengine/font"
	"seehuhn.de/go/psengine/glyphcache"
	"seehuhn.de/go/psengine/graphics"
	"seehuhn.de/go/psengine/pstoken"
	"seehuhn.de/go/psengine/stack"
	"seehuhn.de/go/psengine/vm"
)

// eventCallbackInterval is how often (in dispatch iterations) the
// optional GUI event-loop callback is invoked (spec §4.1, "N≈10000").
const eventCallbackInterval = 10000

// Context owns one full execution environment (spec §3.2): the four
// stacks, the local VM root dictionary, the system-parameter map, the
// graphics-state machine, the display list, the active-saves set, the
// job-save-level stack, and the execution-history/event-loop
// bookkeeping. Contexts are created at job startup and torn down at job
// end; global VM (via VM.Global) is shared process-wide.
type Context struct {
	Operand *stack.Operand
	Exec    *stack.Execution
	Dicts   *stack.Dict

	VM       *vm.VM
	Graphics *graphics.Machine
	Display  *displaylist.List

	// RootDict is the local VM's root dictionary, pushed as the bottom
	// of the dictionary stack (below systemdict/globaldict/userdict in
	// a full implementation; this core treats RootDict as userdict's
	// stand-in and lets cmd/psengine push systemdict/globaldict ahead of
	// it).
	RootDict *psengine.Dict

	// SystemParams backs `setsystemparams`/`currentsystemparams`.
	SystemParams *psengine.Dict

	// ActiveSaves tracks every outstanding Save object by id, so
	// `restore`'s argument can be membership-checked before the more
	// expensive reachability walk vm.CanRestore performs (spec §4.3).
	ActiveSaves map[uint64]*psengine.Save

	// JobSaves is the job save-level stack `execjob`/`startjob` push onto
	// (spec §4.3, "Save stack and job encapsulation"): JobSaves[0] is the
	// outermost job boundary.
	JobSaves []*psengine.Save

	History *History

	// Fonts is the findfont/definefont resource table (spec §4.6).
	Fonts *font.Registry

	// GlyphCache is the process-wide path/bitmap glyph cache (spec
	// §4.6); show/ashow/widthshow/kshow/cshow all consult it before
	// decoding a glyph's outline.
	GlyphCache *glyphcache.Cache

	// Stdout backs `print`/`=`/`==`/`stack`/`pstack`/`flush` (spec §6's
	// file/show-variant operators); cmd/psengine binds this to the
	// process's standard output, a nil value silently discards output so
	// a Context can be constructed for non-interactive use (tests)
	// without binding any stream.
	Stdout io.Writer

	// EventCallback is invoked every eventCallbackInterval dispatch
	// iterations if non-nil (spec §4.1, "the sole scheduling
	// concession").
	EventCallback func()

	iterCount uint64

	scanners map[any]*pstoken.Scanner

	// stoppedDictDepths mirrors the Stopped markers currently on the
	// execution stack, recording the dictionary-stack depth at each
	// `stopped` call so `stop` can restore it on unwind (spec §4.2).
	stoppedDictDepths []int
}

// New creates a Context with fresh stacks at their default capacities, a
// fresh local VM bound to global, and an empty display list.
func New(global *vm.Store) *Context {
	v := vm.New(global)
	root := v.NewDict(64, psengine.AccessUnlimited)
	sysParams := v.NewDict(16, psengine.AccessUnlimited)

	c := &Context{
		Operand:      stack.NewOperand(stack.DefaultMaxOperandStack),
		Exec:         stack.NewExecution(stack.DefaultMaxExecutionStack),
		Dicts:        stack.NewDict(stack.DefaultMaxDictStack),
		VM:           v,
		Graphics:     graphics.NewMachine(),
		Display:      displaylist.New(),
		RootDict:     root,
		SystemParams: sysParams,
		ActiveSaves:  make(map[uint64]*psengine.Save),
		History:      newHistory(0),
		scanners:     make(map[any]*pstoken.Scanner),
		Fonts:        font.NewRegistry(),
		GlyphCache:   glyphcache.New(0),
	}
	c.Dicts.Push("", root)
	return c
}

// NewOperator constructs an executable Operator Object bound to fn,
// the only place in the module that performs the `any`-to-function-
// pointer assertion object.go's Operator.Func documents, so every other
// call site works with a typed function value.
func NewOperator(name string, fn func(*Context) error) psengine.Operator {
	return psengine.Operator{OpName: name, Func: fn}
}

func asOperatorFunc(op psengine.Operator) (func(*Context) error, bool) {
	fn, ok := op.Func.(func(*Context) error)
	return fn, ok
}
