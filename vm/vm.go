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

import (
	"sync/atomic"

	"seehuhn.de/go/psengine"
)

// clock is a process-wide monotonic counter. Timestamps must compare
// consistently across a Context's local store and the shared global
// store (a save's id and a composite's creation timestamp are compared
// directly, spec §3.4), so one clock is shared by every VM in the
// process rather than one per Context.
var clock uint64

// nextTimestamp allocates the next identity, used for both composite
// headers/backing stores and save ids.
func nextTimestamp() uint64 { return atomic.AddUint64(&clock, 1) }

// VM is the per-Context pair of virtual memories: an unshared local VM
// and a reference to the (normally process-wide) global VM, plus the
// save stack that backs restore and copy-on-write (spec §3.4, §4.3).
type VM struct {
	Local  *Store
	Global *Store

	allocGlobal bool // vm_alloc_mode: true after `true setglobal`
	saves       []*snapshot
}

// New creates a VM bound to the given global store. Pass vm.DefaultGlobal()
// to share the process-wide global VM, the normal case; a dedicated Store
// gives a Context an isolated global VM.
func New(global *Store) *VM {
	return &VM{Local: newStore(false), Global: global}
}

// SetGlobalMode implements `setglobal`: subsequent allocations are placed
// in global VM when b is true, local VM otherwise.
func (v *VM) SetGlobalMode(b bool) { v.allocGlobal = b }

// GlobalMode implements `currentglobal`.
func (v *VM) GlobalMode() bool { return v.allocGlobal }

// newHeader allocates a fresh Header in whichever VM is currently
// selected by vm_alloc_mode.
func (v *VM) newHeader(access psengine.Access, attr psengine.Attribute) *psengine.Header {
	return &psengine.Header{
		Timestamp: nextTimestamp(),
		IsGlobal:  v.allocGlobal,
		Access:    access,
		Attribute: attr,
	}
}

func (v *VM) track(c Composite) {
	if c.Hdr().IsGlobal {
		v.Global.register(c)
	} else {
		v.Local.register(c)
	}
}

// CheckStore validates an assignment of value into a composite living in
// container (e.g. `put`, array/dict literal population): a local value
// may never become reachable from a global composite (spec §3.1,
// invalidaccess). Both arguments are psengine.Object so callers can pass
// immediate values (Integer, Name, ...) as well as composites; only
// composite values carry IsGlobal, so non-composite values always pass.
func CheckStore(op string, container Composite, value psengine.Object) error {
	if !container.Hdr().IsGlobal {
		return nil
	}
	if vc, ok := value.(Composite); ok && !vc.Hdr().IsGlobal {
		return psengine.NewError(op, psengine.ErrInvalidAccess)
	}
	return nil
}

// NewDict allocates a Dict of the given capacity hint in the current VM.
func (v *VM) NewDict(capacity int, access psengine.Access) *psengine.Dict {
	h := v.newHeader(access, psengine.AttrLiteral)
	d := psengine.NewDict(h, capacity)
	v.track(d)
	return d
}

// NewArray allocates an Array over a freshly owned Vector holding items.
func (v *VM) NewArray(items []psengine.Object, access psengine.Access, attr psengine.Attribute) *psengine.Array {
	h := v.newHeader(access, attr)
	vec := &psengine.Vector{ID: backingOf(h), Items: items}
	a := &psengine.Array{Header: h, Vec: vec, Start: 0, Length: len(items)}
	v.track(a)
	return a
}

// NewPackedArray allocates a read-only PackedArray over a freshly owned
// Vector, for the `{ ... }` procedure packer.
func (v *VM) NewPackedArray(items []psengine.Object) *psengine.PackedArray {
	h := v.newHeader(psengine.AccessReadOnly, psengine.AttrExecutable)
	vec := &psengine.Vector{ID: backingOf(h), Items: items}
	p := &psengine.PackedArray{Header: h, Vec: vec, Start: 0, Length: len(items)}
	v.track(p)
	return p
}

// NewString allocates a String over a freshly owned ByteBuffer holding b.
func (v *VM) NewString(b []byte, access psengine.Access, attr psengine.Attribute) *psengine.String {
	h := v.newHeader(access, attr)
	buf := &psengine.ByteBuffer{ID: backingOf(h), Bytes: b}
	s := &psengine.String{Header: h, Buf: buf, Start: 0, Length: len(b)}
	v.track(s)
	return s
}

// NewGState wraps an opaque graphics-state snapshot (concretely
// *graphics.State) in a composite GState object.
func (v *VM) NewGState(snapshot any) *psengine.GState {
	h := v.newHeader(psengine.AccessUnlimited, psengine.AttrLiteral)
	g := &psengine.GState{Header: h, Snapshot: snapshot}
	v.track(g)
	return g
}

// NewFontID mints a fresh font identity for `definefont`.
func (v *VM) NewFontID() *psengine.FontID {
	h := v.newHeader(psengine.AccessUnlimited, psengine.AttrLiteral)
	f := &psengine.FontID{Header: h}
	v.track(f)
	return f
}

// NewFile wraps an already-open stream in a composite File object.
func (v *VM) NewFile(stream interface {
	Read([]byte) (int, error)
	Write([]byte) (int, error)
	Close() error
}, mode psengine.FileMode, real bool) *psengine.File {
	h := v.newHeader(psengine.AccessUnlimited, psengine.AttrLiteral)
	f := &psengine.File{Header: h, Stream: stream, Mode: mode, RealFile: real}
	v.track(f)
	return f
}

func backingOf(h *psengine.Header) psengine.BackingID {
	return psengine.BackingID{Timestamp: h.Timestamp, IsGlobal: h.IsGlobal}
}

// DupArray mints a new header sharing the argument's backing Vector,
// implementing `dup`/`copy` aliasing for arrays (spec §3.1).
func (v *VM) DupArray(a *psengine.Array) *psengine.Array {
	h := v.newHeader(a.Access, a.Attribute)
	d := &psengine.Array{Header: h, Vec: a.Vec, Start: a.Start, Length: a.Length}
	v.track(d)
	return d
}

// DupPackedArray mints a new header sharing the argument's backing
// Vector.
func (v *VM) DupPackedArray(a *psengine.PackedArray) *psengine.PackedArray {
	h := v.newHeader(a.Access, a.Attribute)
	d := &psengine.PackedArray{Header: h, Vec: a.Vec, Start: a.Start, Length: a.Length}
	v.track(d)
	return d
}

// DupString mints a new header sharing the argument's backing ByteBuffer.
func (v *VM) DupString(s *psengine.String) *psengine.String {
	h := v.newHeader(s.Access, s.Attribute)
	d := &psengine.String{Header: h, Buf: s.Buf, Start: s.Start, Length: s.Length}
	v.track(d)
	return d
}

// DupDict mints a new header sharing the argument's backing DictStore.
func (v *VM) DupDict(dd *psengine.Dict) *psengine.Dict {
	h := v.newHeader(dd.Access, dd.Attribute)
	d := &psengine.Dict{Header: h, Store: dd.Store, Capacity: dd.Capacity}
	v.track(d)
	return d
}

// Substring mints a new header over a narrower (start, length) window of
// the same backing ByteBuffer, for the `getinterval` operator.
func (v *VM) Substring(s *psengine.String, start, length int) *psengine.String {
	h := v.newHeader(s.Access, s.Attribute)
	d := &psengine.String{Header: h, Buf: s.Buf, Start: s.Start + start, Length: length}
	v.track(d)
	return d
}

// Subarray mints a new header over a narrower (start, length) window of
// the same backing Vector, for the `getinterval` operator.
func (v *VM) Subarray(a *psengine.Array, start, length int) *psengine.Array {
	h := v.newHeader(a.Access, a.Attribute)
	d := &psengine.Array{Header: h, Vec: a.Vec, Start: a.Start + start, Length: length}
	v.track(d)
	return d
}
