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

package graphics

import "seehuhn.de/go/psengine"

// DefaultMaxGStateStack bounds the graphics-state stack depth (spec §2's
// fourth bounded stack), a runaway-recursion safety limit rather than a
// PostScript language concept, matching the implementation-limit framing
// package stack uses for its own default capacities.
const DefaultMaxGStateStack = 1024

// Machine owns the current graphics state plus the graphics-state stack
// gsave/grestore/grestoreall operate on (spec §4.4). It is embedded by
// package interp's Context rather than referenced through package
// stack's opaque Bounded[any], since graphics is exactly the package
// that knows the concrete element type (see the stack package's
// grounding entry for why that duplication was removed).
type Machine struct {
	Current *State
	saved   []*State
	maxDepth int
}

// NewMachine returns a Machine with a fresh initial graphics state and
// DefaultMaxGStateStack as its depth limit.
func NewMachine() *Machine {
	return &Machine{Current: NewState(), maxDepth: DefaultMaxGStateStack}
}

// Depth returns the number of entries on the graphics-state stack
// (spec §4.3: a Save records this to perform an implicit grestoreall on
// restore).
func (m *Machine) Depth() int { return len(m.saved) }

// GSave pushes a copy of the current state (spec §4.4, "gsave copies
// the current graphics state onto the graphics-state stack"), reporting
// PLRM's VMerror if the stack is already at its depth limit (PLRM names
// no gstate-specific overflow error).
func (m *Machine) GSave(op string) error {
	if len(m.saved) >= m.maxDepth {
		return psengine.NewError(op, psengine.ErrVMError)
	}
	m.saved = append(m.saved, m.Current.Clone())
	return nil
}

// MarkSaveFloor gsaves and marks the pushed copy as a save-created
// floor, called by `save` (not `gsave`) so GRestore knows not to pop
// past it implicitly.
func (m *Machine) MarkSaveFloor(op string) error {
	if err := m.GSave(op); err != nil {
		return err
	}
	m.saved[len(m.saved)-1].MarkSaved()
	return nil
}

// GRestore implements `grestore`: it pops the graphics-state stack
// unless the top is a save-created floor, in which case the floor's
// value is restored in place without popping (spec §4.4). clipChanged
// reports whether the restored state's clip version differs from the
// state just replaced, so callers can decide whether to emit an
// initclip+clip pair into the display list.
func (m *Machine) GRestore() (clipChanged bool, err error) {
	if len(m.saved) == 0 {
		return false, nil
	}
	top := m.saved[len(m.saved)-1]
	prevVersion := m.Current.Clip.Version
	if top.IsSaved() {
		restored := top.Clone()
		restored.MarkSaved()
		m.Current = restored
	} else {
		m.saved = m.saved[:len(m.saved)-1]
		m.Current = top
	}
	return m.Current.Clip.Version != prevVersion, nil
}

// GRestoreAll implements `grestoreall`: pop until a save-created state
// is reached or the stack empties (spec §4.4).
func (m *Machine) GRestoreAll() (clipChanged bool, err error) {
	prevVersion := m.Current.Clip.Version
	for len(m.saved) > 0 {
		top := m.saved[len(m.saved)-1]
		if top.IsSaved() {
			restored := top.Clone()
			restored.MarkSaved()
			m.Current = restored
			return m.Current.Clip.Version != prevVersion, nil
		}
		m.saved = m.saved[:len(m.saved)-1]
		m.Current = top
	}
	return m.Current.Clip.Version != prevVersion, nil
}

// RestoreToDepth pops the graphics-state stack down to exactly depth
// entries, implementing the implicit grestoreall a `restore` performs
// to the depth recorded at the matching `save` (spec §4.3).
func (m *Machine) RestoreToDepth(depth int) {
	for len(m.saved) > depth {
		top := m.saved[len(m.saved)-1]
		m.saved = m.saved[:len(m.saved)-1]
		m.Current = top
	}
}

// RequireCurrentPoint is a small helper shared by path-construction
// operators that need a current point (rlineto, rcurveto, arc's
// implicit lineto, ...).
func RequireCurrentPoint(op string, s *State) (Point, error) {
	p, ok := s.Path.EndPoint()
	if !ok {
		return Point{}, psengine.NewError(op, psengine.ErrNoCurrentPoint)
	}
	return p, nil
}
