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

func registerArray(b builder) {
	b.op("array", opArray)
	b.op("[", opMark) // the implicit mark before a `[ ... ]` literal
	b.op("]", opArrayClose)
	b.op("aload", opAload)
	b.op("astore", opAstore)
	b.op("length", opLength)
	b.op("get", opGet)
	b.op("put", opPut)
	b.op("getinterval", opGetinterval)
	b.op("putinterval", opPutinterval)
	b.op("forall", opForall)
	b.op("packedarray", opPackedarray)
}

func opArray(c *interp.Context) error {
	n, err := popInt(c, "array")
	if err != nil {
		return err
	}
	if n < 0 {
		return psengine.NewError("array", psengine.ErrRangeCheck)
	}
	items := make([]psengine.Object, n)
	for i := range items {
		items[i] = psengine.Null{}
	}
	return push(c, "array", c.VM.NewArray(items, psengine.AccessUnlimited, psengine.AttrLiteral))
}

// opArrayClose implements `]`: collect every operand pushed since the
// matching `[` (a Mark) into a freshly allocated literal Array.
func opArrayClose(c *interp.Context) error {
	depth := markDepth(c)
	if depth < 0 {
		return psengine.NewError("]", psengine.ErrUnmatchedMark)
	}
	items := make([]psengine.Object, depth)
	for i := 0; i < depth; i++ {
		v, err := peekAny(c, "]", depth-1-i)
		if err != nil {
			return err
		}
		items[i] = v
	}
	c.Operand.Truncate(c.Operand.Len() - depth - 1) // also discards the mark
	return push(c, "]", c.VM.NewArray(items, psengine.AccessUnlimited, psengine.AttrLiteral))
}

// opAload pushes every element of an array onto the operand stack,
// followed by the array itself (PLRM §8, "aload").
func opAload(c *interp.Context) error {
	top, err := peekAny(c, "aload", 0)
	if err != nil {
		return err
	}
	items, ok := arrayLikeItems(top)
	if !ok {
		return psengine.NewError("aload", psengine.ErrTypeCheck)
	}
	if _, err := c.Operand.Pop("aload"); err != nil {
		return err
	}
	for _, v := range items {
		if err := push(c, "aload", v); err != nil {
			return err
		}
	}
	return push(c, "aload", top)
}

// opAstore pops an array's Length elements off the stack (deepest-first
// into slot 0) and stores them into the array in place (PLRM §8,
// "astore").
func opAstore(c *interp.Context) error {
	top, err := peekAny(c, "astore", 0)
	if err != nil {
		return err
	}
	arr, ok := top.(*psengine.Array)
	if !ok {
		return psengine.NewError("astore", psengine.ErrTypeCheck)
	}
	n := arr.Length
	if c.Operand.Len() < n+1 {
		return psengine.NewError("astore", psengine.ErrStackUnderflow)
	}
	vals := make([]psengine.Object, n)
	for i := 0; i < n; i++ {
		v, err := peekAny(c, "astore", n-i)
		if err != nil {
			return err
		}
		vals[i] = v
	}
	if _, err := c.Operand.Pop("astore"); err != nil { // the array itself
		return err
	}
	for i := 0; i < n; i++ {
		if _, err := c.Operand.Pop("astore"); err != nil {
			return err
		}
	}
	c.VM.CowArray(arr)
	items := arr.Items()
	copy(items, vals)
	return push(c, "astore", arr)
}

func opPackedarray(c *interp.Context) error {
	n, err := popInt(c, "packedarray")
	if err != nil {
		return err
	}
	if n < 0 || c.Operand.Len() < n {
		return psengine.NewError("packedarray", psengine.ErrRangeCheck)
	}
	items := make([]psengine.Object, n)
	for i := 0; i < n; i++ {
		v, err := peekAny(c, "packedarray", n-1-i)
		if err != nil {
			return err
		}
		items[i] = v
	}
	for i := 0; i < n; i++ {
		if _, err := c.Operand.Pop("packedarray"); err != nil {
			return err
		}
	}
	return push(c, "packedarray", c.VM.NewPackedArray(items))
}

// arrayLikeItems returns the element slice of any array-shaped object
// (Array or PackedArray); String and Dict have their own length/get/put
// semantics handled separately in opLength/opGet/opPut.
func arrayLikeItems(obj psengine.Object) ([]psengine.Object, bool) {
	switch v := obj.(type) {
	case *psengine.Array:
		return v.Items(), true
	case *psengine.PackedArray:
		return v.Items(), true
	default:
		return nil, false
	}
}

func opLength(c *interp.Context) error {
	top, err := peekAny(c, "length", 0)
	if err != nil {
		return err
	}
	var n int
	switch v := top.(type) {
	case *psengine.Array:
		n = v.Length
	case *psengine.PackedArray:
		n = v.Length
	case *psengine.String:
		n = v.Length
	case *psengine.Dict:
		n = v.Store.Len()
	case psengine.Name:
		n = len(v.Bytes)
	default:
		return psengine.NewError("length", psengine.ErrTypeCheck)
	}
	if _, err := c.Operand.Pop("length"); err != nil {
		return err
	}
	return push(c, "length", psengine.Integer(n))
}

// opGet implements the generic `get`: array/packedarray/string index by
// Integer, Dict index by Name.
func opGet(c *interp.Context) error {
	idxObj, err := peekAny(c, "get", 0)
	if err != nil {
		return err
	}
	container, err := peekAny(c, "get", 1)
	if err != nil {
		return err
	}
	switch cv := container.(type) {
	case *psengine.Array, *psengine.PackedArray:
		idx, ok := idxObj.(psengine.Integer)
		if !ok {
			return psengine.NewError("get", psengine.ErrTypeCheck)
		}
		items, _ := arrayLikeItems(container)
		if int(idx) < 0 || int(idx) >= len(items) {
			return psengine.NewError("get", psengine.ErrRangeCheck)
		}
		v := items[int(idx)]
		if _, err := c.Operand.Pop("get"); err != nil {
			return err
		}
		if _, err := c.Operand.Pop("get"); err != nil {
			return err
		}
		return push(c, "get", v)
	case *psengine.String:
		idx, ok := idxObj.(psengine.Integer)
		if !ok {
			return psengine.NewError("get", psengine.ErrTypeCheck)
		}
		b := cv.Bytes()
		if int(idx) < 0 || int(idx) >= len(b) {
			return psengine.NewError("get", psengine.ErrRangeCheck)
		}
		ch := b[int(idx)]
		if _, err := c.Operand.Pop("get"); err != nil {
			return err
		}
		if _, err := c.Operand.Pop("get"); err != nil {
			return err
		}
		return push(c, "get", psengine.Integer(ch))
	case *psengine.Dict:
		name, ok := idxObj.(psengine.Name)
		if !ok {
			return psengine.NewError("get", psengine.ErrTypeCheck)
		}
		v, ok := cv.Store.Get(name.String())
		if !ok {
			return psengine.NewError("get", psengine.ErrUndefined)
		}
		if _, err := c.Operand.Pop("get"); err != nil {
			return err
		}
		if _, err := c.Operand.Pop("get"); err != nil {
			return err
		}
		return push(c, "get", v)
	default:
		return psengine.NewError("get", psengine.ErrTypeCheck)
	}
}

// opPut implements the generic `put`.
func opPut(c *interp.Context) error {
	value, err := peekAny(c, "put", 0)
	if err != nil {
		return err
	}
	idxObj, err := peekAny(c, "put", 1)
	if err != nil {
		return err
	}
	container, err := peekAny(c, "put", 2)
	if err != nil {
		return err
	}
	switch cv := container.(type) {
	case *psengine.Array:
		idx, ok := idxObj.(psengine.Integer)
		if !ok {
			return psengine.NewError("put", psengine.ErrTypeCheck)
		}
		items := cv.Items()
		if int(idx) < 0 || int(idx) >= len(items) {
			return psengine.NewError("put", psengine.ErrRangeCheck)
		}
		if err := vmCheckStore(c, cv, value); err != nil {
			return err
		}
		popN(c, "put", 3)
		c.VM.CowArray(cv)
		cv.Items()[int(idx)] = value
		return nil
	case *psengine.String:
		idx, ok := idxObj.(psengine.Integer)
		if !ok {
			return psengine.NewError("put", psengine.ErrTypeCheck)
		}
		ival, ok := value.(psengine.Integer)
		if !ok {
			return psengine.NewError("put", psengine.ErrTypeCheck)
		}
		b := cv.Bytes()
		if int(idx) < 0 || int(idx) >= len(b) {
			return psengine.NewError("put", psengine.ErrRangeCheck)
		}
		popN(c, "put", 3)
		c.VM.CowString(cv)
		cv.Bytes()[int(idx)] = byte(ival)
		return nil
	case *psengine.Dict:
		name, ok := idxObj.(psengine.Name)
		if !ok {
			return psengine.NewError("put", psengine.ErrTypeCheck)
		}
		if err := vmCheckStore(c, cv, value); err != nil {
			return err
		}
		popN(c, "put", 3)
		c.VM.CowDict(cv)
		cv.Store.Put(name.String(), value)
		return nil
	default:
		return psengine.NewError("put", psengine.ErrTypeCheck)
	}
}

// opGetinterval implements the generic `getinterval` over Array/String.
func opGetinterval(c *interp.Context) error {
	count, err := popInt(c, "getinterval")
	if err != nil {
		return err
	}
	start, err := popInt(c, "getinterval")
	if err != nil {
		return err
	}
	top, err := peekAny(c, "getinterval", 0)
	if err != nil {
		return err
	}
	if count < 0 || start < 0 {
		return psengine.NewError("getinterval", psengine.ErrRangeCheck)
	}
	switch v := top.(type) {
	case *psengine.Array:
		if start+count > v.Length {
			return psengine.NewError("getinterval", psengine.ErrRangeCheck)
		}
		if _, err := c.Operand.Pop("getinterval"); err != nil {
			return err
		}
		return push(c, "getinterval", c.VM.Subarray(v, start, count))
	case *psengine.String:
		if start+count > v.Length {
			return psengine.NewError("getinterval", psengine.ErrRangeCheck)
		}
		if _, err := c.Operand.Pop("getinterval"); err != nil {
			return err
		}
		return push(c, "getinterval", c.VM.Substring(v, start, count))
	default:
		return psengine.NewError("getinterval", psengine.ErrTypeCheck)
	}
}

// opPutinterval implements the generic `putinterval` over Array/String.
func opPutinterval(c *interp.Context) error {
	src, err := peekAny(c, "putinterval", 0)
	if err != nil {
		return err
	}
	startObj, err := peekAny(c, "putinterval", 1)
	if err != nil {
		return err
	}
	start, ok := startObj.(psengine.Integer)
	if !ok {
		return psengine.NewError("putinterval", psengine.ErrTypeCheck)
	}
	dst, err := peekAny(c, "putinterval", 2)
	if err != nil {
		return err
	}
	switch dv := dst.(type) {
	case *psengine.Array:
		srcItems, ok := arrayLikeItems(src)
		if !ok {
			return psengine.NewError("putinterval", psengine.ErrTypeCheck)
		}
		if int(start) < 0 || int(start)+len(srcItems) > dv.Length {
			return psengine.NewError("putinterval", psengine.ErrRangeCheck)
		}
		for _, v := range srcItems {
			if err := vmCheckStore(c, dv, v); err != nil {
				return err
			}
		}
		popN(c, "putinterval", 3)
		c.VM.CowArray(dv)
		copy(dv.Items()[int(start):], srcItems)
		return nil
	case *psengine.String:
		sv, ok := src.(*psengine.String)
		if !ok {
			return psengine.NewError("putinterval", psengine.ErrTypeCheck)
		}
		srcBytes := sv.Bytes()
		if int(start) < 0 || int(start)+len(srcBytes) > dv.Length {
			return psengine.NewError("putinterval", psengine.ErrRangeCheck)
		}
		popN(c, "putinterval", 3)
		c.VM.CowString(dv)
		copy(dv.Bytes()[int(start):], srcBytes)
		return nil
	default:
		return psengine.NewError("putinterval", psengine.ErrTypeCheck)
	}
}

// opForall implements the generic `forall` over array/packedarray/
// string/dict: it constructs a *psengine.Loop header via
// interp.NewForallLoop and pushes it onto the execution stack for the
// dispatch loop's rule 7 to advance, matching every other looping
// operator's strategy of delegating iteration to dispatchLoop instead of
// looping synchronously inside the operator body (spec §4.2).
//
// Dict's cursor semantics need indexed access that DictStore does not
// expose (see package interp's loop.go), so a Dict subject is flattened
// here into a literal Array of alternating key/value pairs before the
// loop header is built; the loop body still receives exactly one
// key/value pair per iteration as `forall` requires.
func opForall(c *interp.Context) error {
	proc, err := popProc(c, "forall")
	if err != nil {
		return err
	}
	subject, err := popAny(c, "forall")
	if err != nil {
		return err
	}
	switch v := subject.(type) {
	case *psengine.Array, *psengine.PackedArray, *psengine.String:
		return c.Exec.Push("forall", interp.NewForallLoop(proc, v))
	case *psengine.Dict:
		var flat []psengine.Object
		v.Store.ForEach(func(key string, val psengine.Object) {
			flat = append(flat, psengine.NewName([]byte(key), false), val)
		})
		arr := c.VM.NewArray(flat, psengine.AccessUnlimited, psengine.AttrLiteral)
		return c.Exec.Push("forall", interp.NewDictForallLoop(proc, arr))
	default:
		return psengine.NewError("forall", psengine.ErrTypeCheck)
	}
}

// popProc pops a procedure-shaped operand (Array or PackedArray; any
// other type is a typecheck), used by every looping operator's proc
// argument.
func popProc(c *interp.Context, op string) (psengine.Object, error) {
	v, err := peekAny(c, op, 0)
	if err != nil {
		return nil, err
	}
	switch v.(type) {
	case *psengine.Array, *psengine.PackedArray:
		if _, err := c.Operand.Pop(op); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, psengine.NewError(op, psengine.ErrTypeCheck)
	}
}

func popN(c *interp.Context, op string, n int) {
	for i := 0; i < n; i++ {
		c.Operand.Pop(op)
	}
}

// vmCheckStore enforces invalidaccess (a local value may never become
// reachable from a global composite, spec §3.1) before `put`/
// `putinterval` mutate container in place.
func vmCheckStore(c *interp.Context, container psengine.Object, value psengine.Object) error {
	cc, ok := container.(vm.Composite)
	if !ok {
		return nil
	}
	return vm.CheckStore("put", cc, value)
}

// copyComposite implements the array/dict/string/packedarray branch of
// `copy`: pop a destination composite and a source composite of the
// same kind, copy the source's elements into the destination (which
// must be at least as large), and push the destination back truncated
// to the source's length (PLRM §8, "copy").
func copyComposite(c *interp.Context, op string) error {
	dst, err := peekAny(c, op, 0)
	if err != nil {
		return err
	}
	src, err := peekAny(c, op, 1)
	if err != nil {
		return err
	}
	switch dv := dst.(type) {
	case *psengine.Array:
		sItems, ok := arrayLikeItems(src)
		if !ok || dv.Length < len(sItems) {
			return psengine.NewError(op, psengine.ErrTypeCheck)
		}
		popN(c, op, 2)
		c.VM.CowArray(dv)
		copy(dv.Items(), sItems)
		return push(c, op, c.VM.Subarray(dv, 0, len(sItems)))
	case *psengine.String:
		sv, ok := src.(*psengine.String)
		if !ok || dv.Length < sv.Length {
			return psengine.NewError(op, psengine.ErrTypeCheck)
		}
		popN(c, op, 2)
		c.VM.CowString(dv)
		copy(dv.Bytes(), sv.Bytes())
		return push(c, op, c.VM.Substring(dv, 0, sv.Length))
	case *psengine.Dict:
		sv, ok := src.(*psengine.Dict)
		if !ok {
			return psengine.NewError(op, psengine.ErrTypeCheck)
		}
		popN(c, op, 2)
		c.VM.CowDict(dv)
		sv.Store.ForEach(func(key string, val psengine.Object) {
			dv.Store.Put(key, val)
		})
		return push(c, op, dv)
	default:
		return psengine.NewError(op, psengine.ErrTypeCheck)
	}
}
