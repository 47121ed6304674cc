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
	"seehuhn.de/go/psengine/graphics"
	"seehuhn.de/go/psengine/interp"
	"seehuhn.de/go/psengine/vm"
)

func registerGState(b builder) {
	b.op("gsave", opGsave)
	b.op("grestore", opGrestore)
	b.op("grestoreall", opGrestoreall)
	b.op("save", opSave)
	b.op("restore", opRestore)
	b.op("setlinewidth", opSetlinewidth)
	b.op("currentlinewidth", opCurrentlinewidth)
	b.op("setlinecap", opSetlinecap)
	b.op("currentlinecap", opCurrentlinecap)
	b.op("setlinejoin", opSetlinejoin)
	b.op("currentlinejoin", opCurrentlinejoin)
	b.op("setmiterlimit", opSetmiterlimit)
	b.op("currentmiterlimit", opCurrentmiterlimit)
	b.op("setdash", opSetdash)
	b.op("currentdash", opCurrentdash)
	b.op("setflat", opSetflat)
	b.op("currentflat", opCurrentflat)
	b.op("setstrokeadjust", opSetstrokeadjust)
	b.op("currentstrokeadjust", opCurrentstrokeadjust)
}

func opGsave(c *interp.Context) error {
	return c.Graphics.GSave("gsave")
}

func opGrestore(c *interp.Context) error {
	_, err := c.Graphics.GRestore()
	return err
}

func opGrestoreall(c *interp.Context) error {
	_, err := c.Graphics.GRestoreAll()
	return err
}

// opSave implements `save save` (PLRM §8.3, spec §4.3): a VM save level
// plus an implicit gsave-like floor on the graphics-state stack, so a
// matching `restore` also undoes every gsave/grestore since this save.
func opSave(c *interp.Context) error {
	s := c.VM.Save()
	vm.SetGStateDepth(s, c.Graphics.Depth())
	if err := c.Graphics.MarkSaveFloor("save"); err != nil {
		return err
	}
	c.ActiveSaves[s.ID] = s
	return push(c, "save", s)
}

// opRestore implements `save restore`: validated by gathering every
// composite object currently reachable from the operand, execution and
// dictionary stacks and the root/system dictionaries (vm.CanRestore documents that package vm
// cannot gather this set itself, since it does not know about the
// stacks or dictionaries living above it).
func opRestore(c *interp.Context) error {
	v, err := popAny(c, "restore")
	if err != nil {
		return err
	}
	s, ok := v.(*psengine.Save)
	if !ok {
		return psengine.NewError("restore", psengine.ErrTypeCheck)
	}
	if _, known := c.ActiveSaves[s.ID]; !known {
		return psengine.NewError("restore", psengine.ErrInvalidRestore)
	}
	live := gatherLive(c)
	if err := c.VM.CanRestore(s, live); err != nil {
		return err
	}
	if err := c.VM.Restore(s); err != nil {
		return err
	}
	c.Graphics.RestoreToDepth(vm.GStateDepth(s))
	delete(c.ActiveSaves, s.ID)
	return nil
}

// gatherLive walks every object reachable from the operand, execution
// and dictionary stacks plus the root and system-parameter dictionaries,
// deduplicating by header identity so cyclic composites terminate the
// walk (spec §4.3, "restore's reachability check").
func gatherLive(c *interp.Context) []vm.Composite {
	seen := make(map[*psengine.Header]bool)
	var live []vm.Composite
	var visit func(o psengine.Object)
	visit = func(o psengine.Object) {
		comp, ok := o.(vm.Composite)
		if !ok {
			return
		}
		h := comp.Hdr()
		if seen[h] {
			return
		}
		seen[h] = true
		live = append(live, comp)
		switch v := o.(type) {
		case *psengine.Array:
			for _, item := range v.Items() {
				visit(item)
			}
		case *psengine.PackedArray:
			for _, item := range v.Items() {
				visit(item)
			}
		case *psengine.Dict:
			v.Store.ForEach(func(_ string, value psengine.Object) {
				visit(value)
			})
		}
	}
	for _, o := range c.Operand.All() {
		visit(o)
	}
	for _, o := range c.Exec.All() {
		visit(o)
	}
	for _, d := range c.Dicts.All() {
		visit(d)
	}
	visit(c.RootDict)
	visit(c.SystemParams)
	return live
}

func opSetlinewidth(c *interp.Context) error {
	w, _, err := popNum(c, "setlinewidth")
	if err != nil {
		return err
	}
	s := c.Graphics.Current
	s.LineWidth = w
	s.Touch(graphics.StateLineWidth)
	return nil
}

func opCurrentlinewidth(c *interp.Context) error {
	return push(c, "currentlinewidth", psengine.Real(c.Graphics.Current.LineWidth))
}

func opSetlinecap(c *interp.Context) error {
	n, err := popInt(c, "setlinecap")
	if err != nil {
		return err
	}
	if n < 0 || n > 2 {
		return psengine.NewError("setlinecap", psengine.ErrRangeCheck)
	}
	s := c.Graphics.Current
	s.LineCap = graphics.LineCap(n)
	s.Touch(graphics.StateLineCap)
	return nil
}

func opCurrentlinecap(c *interp.Context) error {
	return push(c, "currentlinecap", psengine.Integer(c.Graphics.Current.LineCap))
}

func opSetlinejoin(c *interp.Context) error {
	n, err := popInt(c, "setlinejoin")
	if err != nil {
		return err
	}
	if n < 0 || n > 2 {
		return psengine.NewError("setlinejoin", psengine.ErrRangeCheck)
	}
	s := c.Graphics.Current
	s.LineJoin = graphics.LineJoin(n)
	s.Touch(graphics.StateLineJoin)
	return nil
}

func opCurrentlinejoin(c *interp.Context) error {
	return push(c, "currentlinejoin", psengine.Integer(c.Graphics.Current.LineJoin))
}

func opSetmiterlimit(c *interp.Context) error {
	limit, _, err := popNum(c, "setmiterlimit")
	if err != nil {
		return err
	}
	if limit < 1 {
		return psengine.NewError("setmiterlimit", psengine.ErrRangeCheck)
	}
	s := c.Graphics.Current
	s.MiterLimit = limit
	s.Touch(graphics.StateMiterLimit)
	return nil
}

func opCurrentmiterlimit(c *interp.Context) error {
	return push(c, "currentmiterlimit", psengine.Real(c.Graphics.Current.MiterLimit))
}

// opSetdash implements `array phase setdash` (PLRM §8.3): array's
// elements must be non-negative numbers, not all zero.
func opSetdash(c *interp.Context) error {
	phase, _, err := popNum(c, "setdash")
	if err != nil {
		return err
	}
	arrObj, err := popAny(c, "setdash")
	if err != nil {
		return err
	}
	arr, ok := arrObj.(*psengine.Array)
	if !ok {
		return psengine.NewError("setdash", psengine.ErrTypeCheck)
	}
	items := arr.Items()
	dash := make([]float64, len(items))
	allZero := true
	for i, it := range items {
		switch v := it.(type) {
		case psengine.Integer:
			dash[i] = float64(v)
		case psengine.Real:
			dash[i] = float64(v)
		default:
			return psengine.NewError("setdash", psengine.ErrTypeCheck)
		}
		if dash[i] < 0 {
			return psengine.NewError("setdash", psengine.ErrRangeCheck)
		}
		if dash[i] != 0 {
			allZero = false
		}
	}
	if len(dash) > 0 && allZero {
		return psengine.NewError("setdash", psengine.ErrRangeCheck)
	}
	s := c.Graphics.Current
	s.Dash = dash
	s.DashPhase = phase
	s.Touch(graphics.StateDash)
	return nil
}

func opCurrentdash(c *interp.Context) error {
	s := c.Graphics.Current
	items := make([]psengine.Object, len(s.Dash))
	for i, v := range s.Dash {
		items[i] = psengine.Real(v)
	}
	arr := c.VM.NewArray(items, psengine.AccessUnlimited, psengine.AttrLiteral)
	if err := push(c, "currentdash", arr); err != nil {
		return err
	}
	return push(c, "currentdash", psengine.Real(s.DashPhase))
}

func opSetflat(c *interp.Context) error {
	f, _, err := popNum(c, "setflat")
	if err != nil {
		return err
	}
	if f < 0 {
		return psengine.NewError("setflat", psengine.ErrRangeCheck)
	}
	s := c.Graphics.Current
	s.Flatness = f
	s.Touch(graphics.StateFlatness)
	return nil
}

func opCurrentflat(c *interp.Context) error {
	return push(c, "currentflat", psengine.Real(c.Graphics.Current.Flatness))
}

func opSetstrokeadjust(c *interp.Context) error {
	v, err := popBool(c, "setstrokeadjust")
	if err != nil {
		return err
	}
	s := c.Graphics.Current
	s.StrokeAdjust = v
	s.Touch(graphics.StateStrokeAdjust)
	return nil
}

func opCurrentstrokeadjust(c *interp.Context) error {
	return push(c, "currentstrokeadjust", psengine.Boolean(c.Graphics.Current.StrokeAdjust))
}
