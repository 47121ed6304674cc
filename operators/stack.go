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

func registerStack(b builder) {
	b.op("pop", opPop)
	b.op("exch", opExch)
	b.op("dup", opDup)
	b.op("copy", opCopy)
	b.op("index", opIndexOp)
	b.op("roll", opRoll)
	b.op("clear", opClear)
	b.op("count", opCount)
	b.op("mark", opMark)
	b.op("cleartomark", opCleartomark)
	b.op("counttomark", opCounttomark)
}

func opPop(c *interp.Context) error {
	_, err := popAny(c, "pop")
	return err
}

func opExch(c *interp.Context) error {
	a, err := peekAny(c, "exch", 1)
	if err != nil {
		return err
	}
	bb, err := peekAny(c, "exch", 0)
	if err != nil {
		return err
	}
	pa, _ := c.Operand.PeekPtr("exch", 1)
	pb, _ := c.Operand.PeekPtr("exch", 0)
	*pa, *pb = bb, a
	return nil
}

func opDup(c *interp.Context) error {
	v, err := peekAny(c, "dup", 0)
	if err != nil {
		return err
	}
	return push(c, "dup", v)
}

// opCopy implements the two-arity `copy`: an operand-stack n int copy,
// or (for a composite top argument) the generic array/dict/string/
// packedarray element copy shared across those object types (PLRM §8,
// "copy"). The two forms are disambiguated by the top operand's type,
// exactly as the real operator overloads on argument type.
func opCopy(c *interp.Context) error {
	top, err := peekAny(c, "copy", 0)
	if err != nil {
		return err
	}
	if _, ok := top.(psengine.Integer); ok {
		n, err := popInt(c, "copy")
		if err != nil {
			return err
		}
		if n < 0 {
			return psengine.NewError("copy", psengine.ErrRangeCheck)
		}
		if c.Operand.Len() < n {
			return psengine.NewError("copy", psengine.ErrStackUnderflow)
		}
		items := make([]psengine.Object, n)
		for i := 0; i < n; i++ {
			v, err := peekAny(c, "copy", n-1-i)
			if err != nil {
				return err
			}
			items[i] = v
		}
		for _, v := range items {
			if err := push(c, "copy", v); err != nil {
				return err
			}
		}
		return nil
	}
	return copyComposite(c, "copy")
}

func opIndexOp(c *interp.Context) error {
	n, err := popInt(c, "index")
	if err != nil {
		return err
	}
	if n < 0 {
		return psengine.NewError("index", psengine.ErrRangeCheck)
	}
	v, err := peekAny(c, "index", n)
	if err != nil {
		return err
	}
	return push(c, "index", v)
}

// opRoll implements `n j roll`: rotate the top n elements j places
// (positive j rolls toward the top, PLRM §8).
func opRoll(c *interp.Context) error {
	j, err := popInt(c, "roll")
	if err != nil {
		return err
	}
	n, err := popInt(c, "roll")
	if err != nil {
		return err
	}
	if n < 0 {
		return psengine.NewError("roll", psengine.ErrRangeCheck)
	}
	if n == 0 {
		return nil
	}
	if c.Operand.Len() < n {
		return psengine.NewError("roll", psengine.ErrStackUnderflow)
	}
	items := make([]psengine.Object, n)
	for i := 0; i < n; i++ {
		v, err := peekAny(c, "roll", n-1-i)
		if err != nil {
			return err
		}
		items[i] = v
	}
	shift := ((j % n) + n) % n
	rolled := make([]psengine.Object, n)
	for i, v := range items {
		rolled[(i+shift)%n] = v
	}
	for i := 0; i < n; i++ {
		if _, err := c.Operand.Pop("roll"); err != nil {
			return err
		}
	}
	for _, v := range rolled {
		if err := push(c, "roll", v); err != nil {
			return err
		}
	}
	return nil
}

func opClear(c *interp.Context) error {
	c.Operand.Clear()
	return nil
}

func opCount(c *interp.Context) error {
	return push(c, "count", psengine.Integer(c.Operand.Len()))
}

func opMark(c *interp.Context) error {
	return push(c, "mark", psengine.Mark{})
}

// markDepth returns the distance from the top of the stack to the
// nearest Mark, or -1 if none is present (unmatchedmark).
func markDepth(c *interp.Context) int {
	all := c.Operand.All()
	for i := len(all) - 1; i >= 0; i-- {
		if _, ok := all[i].(psengine.Mark); ok {
			return len(all) - 1 - i
		}
	}
	return -1
}

func opCleartomark(c *interp.Context) error {
	depth := markDepth(c)
	if depth < 0 {
		return psengine.NewError("cleartomark", psengine.ErrUnmatchedMark)
	}
	c.Operand.Truncate(c.Operand.Len() - depth - 1)
	return nil
}

func opCounttomark(c *interp.Context) error {
	depth := markDepth(c)
	if depth < 0 {
		return psengine.NewError("counttomark", psengine.ErrUnmatchedMark)
	}
	return push(c, "counttomark", psengine.Integer(depth))
}
