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

func registerDict(b builder) {
	b.op("dict", opDict)
	b.op("maxlength", opMaxlength)
	b.op("begin", opBegin)
	b.op("end", opEnd)
	b.op("def", opDef)
	b.op("load", opLoad)
	b.op("store", opStore)
	b.op("known", opKnown)
	b.op("undef", opUndef)
	b.op("where", opWhere)
	b.op("countdictstack", opCountdictstack)
	b.op("dictstack", opDictstack)
	b.op("currentdict", opCurrentdict)
}

func opDict(c *interp.Context) error {
	n, err := popInt(c, "dict")
	if err != nil {
		return err
	}
	if n < 0 {
		return psengine.NewError("dict", psengine.ErrRangeCheck)
	}
	return push(c, "dict", c.VM.NewDict(n, psengine.AccessUnlimited))
}

func opMaxlength(c *interp.Context) error {
	d, err := popDict(c, "maxlength")
	if err != nil {
		return err
	}
	return push(c, "maxlength", psengine.Integer(d.Capacity))
}

func opBegin(c *interp.Context) error {
	d, err := popDict(c, "begin")
	if err != nil {
		return err
	}
	return c.Dicts.Push("begin", d)
}

func opEnd(c *interp.Context) error {
	_, err := c.Dicts.Pop("end")
	return err
}

// opDef implements `key value def`: store into the dictionary currently
// on top of the dictionary stack (PLRM §8).
func opDef(c *interp.Context) error {
	value, err := peekAny(c, "def", 0)
	if err != nil {
		return err
	}
	nameObj, err := peekAny(c, "def", 1)
	if err != nil {
		return err
	}
	name, ok := nameObj.(psengine.Name)
	if !ok {
		return psengine.NewError("def", psengine.ErrTypeCheck)
	}
	d, err := c.Dicts.Peek("def", 0)
	if err != nil {
		return err
	}
	if err := vmCheckStore(c, d, value); err != nil {
		return err
	}
	popN(c, "def", 2)
	c.VM.CowDict(d)
	d.Store.Put(name.String(), value)
	return nil
}

// opLoad implements `key load`: the value bound to key, searched the
// same way name execution resolves an executable name (PLRM §8).
func opLoad(c *interp.Context) error {
	name, err := popName(c, "load")
	if err != nil {
		return err
	}
	v, _, ok := c.Dicts.Lookup(name)
	if !ok {
		return psengine.NewError("load", psengine.ErrUndefined)
	}
	return push(c, "load", v)
}

// opStore implements `key value store`: like def, but writes to whatever
// dictionary already defines key (searched top-to-bottom), falling back
// to the top dictionary if key is not yet defined anywhere (PLRM §8).
func opStore(c *interp.Context) error {
	value, err := peekAny(c, "store", 0)
	if err != nil {
		return err
	}
	nameObj, err := peekAny(c, "store", 1)
	if err != nil {
		return err
	}
	name, ok := nameObj.(psengine.Name)
	if !ok {
		return psengine.NewError("store", psengine.ErrTypeCheck)
	}
	_, owner, ok := c.Dicts.Lookup(name.String())
	if !ok {
		owner, err = c.Dicts.Peek("store", 0)
		if err != nil {
			return err
		}
	}
	if err := vmCheckStore(c, owner, value); err != nil {
		return err
	}
	popN(c, "store", 2)
	c.VM.CowDict(owner)
	owner.Store.Put(name.String(), value)
	return nil
}

func opKnown(c *interp.Context) error {
	name, err := popName(c, "known")
	if err != nil {
		return err
	}
	d, err := popDict(c, "known")
	if err != nil {
		return err
	}
	_, ok := d.Store.Get(name)
	return push(c, "known", psengine.Boolean(ok))
}

func opUndef(c *interp.Context) error {
	name, err := popName(c, "undef")
	if err != nil {
		return err
	}
	d, err := popDict(c, "undef")
	if err != nil {
		return err
	}
	c.VM.CowDict(d)
	d.Store.Delete(name)
	return nil
}

// opWhere implements `key where`: the dictionary defining key, and true,
// or just false if none does (PLRM §8).
func opWhere(c *interp.Context) error {
	name, err := popName(c, "where")
	if err != nil {
		return err
	}
	_, owner, ok := c.Dicts.Lookup(name)
	if !ok {
		return push(c, "where", psengine.Boolean(false))
	}
	if err := push(c, "where", owner); err != nil {
		return err
	}
	return push(c, "where", psengine.Boolean(true))
}

func opCountdictstack(c *interp.Context) error {
	return push(c, "countdictstack", psengine.Integer(c.Dicts.Len()))
}

// opDictstack copies the dictionary stack's entries (bottom to top) into
// array, which must be at least countdictstack deep (PLRM §8).
func opDictstack(c *interp.Context) error {
	arr, err := popDict2Array(c, "dictstack")
	if err != nil {
		return err
	}
	return push(c, "dictstack", arr)
}

func popDict2Array(c *interp.Context, op string) (*psengine.Array, error) {
	top, err := peekAny(c, op, 0)
	if err != nil {
		return nil, err
	}
	arr, ok := top.(*psengine.Array)
	if !ok {
		return nil, psengine.NewError(op, psengine.ErrTypeCheck)
	}
	entries := c.Dicts.All()
	if arr.Length < len(entries) {
		return nil, psengine.NewError(op, psengine.ErrRangeCheck)
	}
	if _, err := c.Operand.Pop(op); err != nil {
		return nil, err
	}
	c.VM.CowArray(arr)
	items := arr.Items()
	for i, d := range entries {
		items[i] = d
	}
	return c.VM.Subarray(arr, 0, len(entries)), nil
}

func opCurrentdict(c *interp.Context) error {
	d, err := c.Dicts.Peek("currentdict", 0)
	if err != nil {
		return err
	}
	return push(c, "currentdict", d)
}
