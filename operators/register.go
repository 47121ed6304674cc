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
	"seehuhn.de/go/psengine/vm"
)

// builder accumulates name/operator bindings for NewSystemDict, so each
// category file's register* function can list its operators as a flat
// table instead of repeating dict-insertion boilerplate.
type builder struct {
	v *vm.VM
	d *psengine.Dict
}

func (b builder) op(name string, fn func(*interp.Context) error) {
	b.d.Store.Put(name, interp.NewOperator(name, fn))
}

func (b builder) lit(name string, v psengine.Object) {
	b.d.Store.Put(name, v)
}

// NewSystemDict builds the read-only dictionary of every built-in
// operator and constant name (`true`, `false`, `null`) this core
// provides (spec §6). v allocates the dictionary itself in whichever VM
// the caller's Context uses; the returned Dict's entries are Operator
// values sharing the process-wide function table, so building one per
// Context is cheap.
func NewSystemDict(v *vm.VM) *psengine.Dict {
	d := v.NewDict(512, psengine.AccessUnlimited)
	b := builder{v: v, d: d}

	b.lit("true", psengine.Boolean(true))
	b.lit("false", psengine.Boolean(false))
	b.lit("null", psengine.Null{})

	registerStack(b)
	registerArith(b)
	registerArray(b)
	registerDict(b)
	registerString(b)
	registerControl(b)
	registerMatrix(b)
	registerPath(b)
	registerGState(b)
	registerColor(b)
	registerPaint(b)
	registerFont(b)
	registerMisc(b)

	return d
}

// Install pushes a freshly built systemdict beneath c's existing
// dictionary-stack bottom (c.RootDict, pushed there by interp.New),
// giving name lookup the ordinary PostScript search order: userdict
// (RootDict) shadows systemdict, exactly like a real interpreter's
// systemdict/userdict layering (spec §4.1 rule 3, §6).
func Install(c *interp.Context) error {
	bottom, err := c.Dicts.Pop("")
	if err != nil {
		return err
	}
	sys := NewSystemDict(c.VM)
	if err := c.Dicts.Push("", sys); err != nil {
		return err
	}
	return c.Dicts.Push("", bottom)
}
