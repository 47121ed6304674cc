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

package vm

import "seehuhn.de/go/psengine"

// snapshot is the bookkeeping a single `save` accumulates: which backing
// stores have had their pre-save contents protected, so a later restore
// can undo exactly the mutations made since this save and no others.
//
// A backing store's identity (its BackingID) never changes across a
// copy-on-write protect: protection freezes a copy of the pre-mutation
// contents and lets the live mutation proceed in place on the same
// backing-store object, so every header still aliasing it keeps seeing
// live mutations, exactly as dict/array sharing requires. Restore walks
// the revert closures in reverse protection order and writes the frozen
// contents back in place.
type snapshot struct {
	id        uint64
	outermost bool
	reverts   map[psengine.BackingID]func()
	order     []psengine.BackingID

	// gstateDepth is set by package interp immediately after Save returns,
	// recording the graphics-state stack depth at save time (spec §4.3,
	// "a Save carries ... a snapshot of the graphics-state stack depth").
	gstateDepth int
}

// Save implements the `save` operator: it pushes a new save level and
// returns the composite Save object to be pushed onto the operand stack.
func (v *VM) Save() *psengine.Save {
	id := nextTimestamp()
	snap := &snapshot{
		id:        id,
		outermost: len(v.saves) == 0,
		reverts:   make(map[psengine.BackingID]func()),
	}
	v.saves = append(v.saves, snap)

	h := v.newHeader(psengine.AccessUnlimited, psengine.AttrLiteral)
	s := &psengine.Save{Header: h, ID: id, Snapshot: snap}
	v.track(s)
	return s
}

// SetGStateDepth records the graphics-state stack depth at the moment of
// a save, for RestoreGStateDepth to hand back to package interp on
// restore.
func SetGStateDepth(s *psengine.Save, depth int) {
	s.Snapshot.(*snapshot).gstateDepth = depth
}

// GStateDepth returns the graphics-state stack depth recorded at save
// time.
func GStateDepth(s *psengine.Save) int {
	return s.Snapshot.(*snapshot).gstateDepth
}

// IsOutermost reports whether s is the job's outermost save (the one
// `restore`d, implicitly or explicitly, at end of job; spec §4.3).
func IsOutermost(s *psengine.Save) bool {
	return s.Snapshot.(*snapshot).outermost
}

// shouldProtect reports whether a mutation of the backing store id needs
// to be protected under snap before proceeding: stores created after the
// save need no protection (restore simply discards them), and a
// non-outermost restore never touches global VM (spec §4.3, "restoring a
// non-outermost save leaves global VM untouched").
func shouldProtect(snap *snapshot, id psengine.BackingID) bool {
	if id.Timestamp >= snap.id {
		return false
	}
	if id.IsGlobal && !snap.outermost {
		return false
	}
	return true
}

// top returns the innermost active save, or nil if none is outstanding.
func (v *VM) top() *snapshot {
	if len(v.saves) == 0 {
		return nil
	}
	return v.saves[len(v.saves)-1]
}

func (snap *snapshot) protect(id psengine.BackingID, revert func()) {
	if _, ok := snap.reverts[id]; ok {
		return
	}
	snap.reverts[id] = revert
	snap.order = append(snap.order, id)
}

// CowDict must be called before any in-place mutation of d's backing
// store (`put`, `undef`, ...). It is a no-op unless a save is outstanding
// and this is the first mutation of d's backing store since that save.
func (v *VM) CowDict(d *psengine.Dict) {
	snap := v.top()
	if snap == nil {
		return
	}
	id := d.BackingID()
	if !shouldProtect(snap, id) {
		return
	}
	frozen := d.Store.Snapshot()
	store := d.Store
	snap.protect(id, func() { store.Restore(frozen) })
}

// CowArray must be called before any in-place mutation of a's backing
// Vector (`put`, `putinterval`, ...).
func (v *VM) CowArray(a *psengine.Array) {
	v.cowVector(a.Vec)
}

// CowPackedArray is provided for symmetry; PackedArray backing vectors
// are never mutated in practice (the type exists precisely because its
// contents are frozen), but routing through the same gate keeps the
// invariant enforced in one place rather than by convention.
func (v *VM) CowPackedArray(p *psengine.PackedArray) {
	v.cowVector(p.Vec)
}

func (v *VM) cowVector(vec *psengine.Vector) {
	snap := v.top()
	if snap == nil {
		return
	}
	if !shouldProtect(snap, vec.ID) {
		return
	}
	frozen := vec.SnapshotItems()
	snap.protect(vec.ID, func() { vec.RestoreItems(frozen) })
}

// CowString must be called before any in-place mutation of s's backing
// ByteBuffer (`put`, `putinterval`, `copy`, reading a binary-mode file
// into a string buffer, ...).
func (v *VM) CowString(s *psengine.String) {
	snap := v.top()
	if snap == nil {
		return
	}
	buf := s.Buf
	if !shouldProtect(snap, buf.ID) {
		return
	}
	frozen := buf.SnapshotBytes()
	snap.protect(buf.ID, func() { buf.RestoreBytes(frozen) })
}

// CanRestore implements the `invalidrestore` check (spec §4.3): restore
// fails if save is not an outstanding (not yet restored) save of v, or if
// any object in live (the composites the caller found reachable from the
// interpreter's stacks and root dictionaries) is a LOCAL composite allocated
// after save — restoring would otherwise delete a backing store that
// something still reaches. Package interp gathers live by walking its
// stacks and calls this before committing to Restore.
func (v *VM) CanRestore(save *psengine.Save, live []Composite) error {
	snap := save.Snapshot.(*snapshot)
	idx := -1
	for i, s := range v.saves {
		if s == snap {
			idx = i
			break
		}
	}
	if idx < 0 {
		return psengine.NewError("restore", psengine.ErrInvalidRestore)
	}
	for _, c := range live {
		h := c.Hdr()
		if h.IsGlobal {
			continue
		}
		if h.Timestamp >= snap.id && h != save.Header {
			return psengine.NewError("restore", psengine.ErrInvalidRestore)
		}
	}
	return nil
}

// Restore implements the `restore` operator. Callers must have already
// established CanRestore == nil (interp performs the reachability walk,
// which vm cannot do on its own since it does not know about the operand/
// exec/dict/gstate stacks).
//
// Restoring s also discards every later save still on the stack (nested
// saves not yet explicitly restored are implicitly abandoned, matching
// Level 2 semantics of restoring to an arbitrary outstanding save).
func (v *VM) Restore(save *psengine.Save) error {
	snap := save.Snapshot.(*snapshot)
	idx := -1
	for i, s := range v.saves {
		if s == snap {
			idx = i
			break
		}
	}
	if idx < 0 {
		return psengine.NewError("restore", psengine.ErrInvalidRestore)
	}

	// Revert protected backing stores for s and every save nested inside
	// it, innermost first, so an object protected at two nesting levels
	// ends up with the outermost (earliest) frozen content.
	for i := len(v.saves) - 1; i >= idx; i-- {
		s := v.saves[i]
		for j := len(s.order) - 1; j >= 0; j-- {
			s.reverts[s.order[j]]()
		}
	}

	v.Local.discardFrom(snap.id)
	if snap.outermost {
		v.Global.discardFrom(snap.id)
	}

	v.saves = v.saves[:idx]
	return nil
}
