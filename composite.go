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

package psengine

// BackingID is the identity of a shared backing store (a ByteBuffer,
// Vector, or DictStore), distinct from the identity of any Header that
// views it. Save/restore and copy-on-write key on BackingID, never on a
// Header's own Timestamp, per spec §3.1: "Save/restore semantics
// therefore key on backing-store identity, not header identity."
type BackingID struct {
	Timestamp uint64
	IsGlobal  bool
}

// ByteBuffer is the shared backing store of a String object: a growable
// byte slice referenced by (start, length) windows from possibly several
// String headers (spec §3.1, "substring-shareable").
type ByteBuffer struct {
	ID    BackingID
	Bytes []byte
}

// String is a composite (VM-origin, offset, start, length) view into a
// shared ByteBuffer.
type String struct {
	*Header
	Buf          *ByteBuffer
	Start, Length int
}

func (s *String) Tag() Tag { return TagString }

// Bytes returns the substring this String currently denotes.
func (s *String) Bytes() []byte {
	return s.Buf.Bytes[s.Start : s.Start+s.Length]
}

// BackingID returns the identity of this String's shared backing store.
func (s *String) BackingID() BackingID { return s.Buf.ID }

// SnapshotBytes returns a frozen copy of the buffer's current contents, for
// copy-on-write protection ahead of an in-place mutation (package vm).
func (b *ByteBuffer) SnapshotBytes() []byte {
	c := make([]byte, len(b.Bytes))
	copy(c, b.Bytes)
	return c
}

// RestoreBytes overwrites the buffer's contents in place from a prior
// SnapshotBytes copy (package vm, on restore).
func (b *ByteBuffer) RestoreBytes(snapshot []byte) {
	b.Bytes = snapshot
}

// Vector is the shared backing store of an Array: a slice of Objects
// referenced by (start, length) windows from possibly several Array
// headers, exactly like ByteBuffer for String (spec §3.1).
type Vector struct {
	ID    BackingID
	Items []Object
}

// Array is a composite (VM-origin, backing vector, start, length) view
// into a shared Vector.
type Array struct {
	*Header
	Vec          *Vector
	Start, Length int
}

func (a *Array) Tag() Tag { return TagArray }

// Items returns the slice of Objects this Array currently denotes.
func (a *Array) Items() []Object {
	return a.Vec.Items[a.Start : a.Start+a.Length]
}

// BackingID returns the identity of this Array's shared backing store.
func (a *Array) BackingID() BackingID { return a.Vec.ID }

// SnapshotItems returns a frozen copy of the vector's current element
// slice, for copy-on-write protection ahead of an in-place mutation
// (package vm).
func (v *Vector) SnapshotItems() []Object {
	c := make([]Object, len(v.Items))
	copy(c, v.Items)
	return c
}

// RestoreItems overwrites the vector's element slice in place from a prior
// SnapshotItems copy (package vm, on restore).
func (v *Vector) RestoreItems(snapshot []Object) {
	v.Items = snapshot
}

// PackedArray is an Array whose backing Vector is permanently read-only
// (produced by the `{ ... }` literal-procedure-array packer and by
// `readonly` applied to a freshly built array of constants).
type PackedArray struct {
	*Header
	Vec          *Vector
	Start, Length int
}

func (p *PackedArray) Tag() Tag { return TagPackedArray }

func (p *PackedArray) Items() []Object {
	return p.Vec.Items[p.Start : p.Start+p.Length]
}

// BackingID returns the identity of this PackedArray's shared backing
// store.
func (p *PackedArray) BackingID() BackingID { return p.Vec.ID }

// DictEntry is a key/value pair used only for Dict's deterministic
// iteration contract (`forall`, `{ } forall` over a dict must visit every
// key exactly once, but need not visit them in insertion order per spec
// §3.1; this implementation preserves insertion order because it is
// nearly free and makes `==` round-trip tests deterministic).
type DictEntry struct {
	Key   string
	Value Object
}

// DictStore is the shared backing store of a Dict.
type DictStore struct {
	ID      BackingID
	entries map[string]int
	order   []DictEntry
}

// NewDictStore allocates an empty DictStore with the given identity and
// capacity hint.
func NewDictStore(id BackingID, capacity int) *DictStore {
	return &DictStore{ID: id, entries: make(map[string]int, capacity)}
}

func (d *DictStore) Get(key string) (Object, bool) {
	i, ok := d.entries[key]
	if !ok {
		return nil, false
	}
	return d.order[i].Value, true
}

func (d *DictStore) Put(key string, value Object) {
	if i, ok := d.entries[key]; ok {
		d.order[i].Value = value
		return
	}
	d.entries[key] = len(d.order)
	d.order = append(d.order, DictEntry{Key: key, Value: value})
}

func (d *DictStore) Delete(key string) {
	i, ok := d.entries[key]
	if !ok {
		return
	}
	delete(d.entries, key)
	d.order = append(d.order[:i], d.order[i+1:]...)
	for k := i; k < len(d.order); k++ {
		d.entries[d.order[k].Key] = k
	}
}

func (d *DictStore) Len() int { return len(d.order) }

// ForEach visits every entry in insertion order. fn must not mutate the
// store; callers that need to delete while iterating should collect keys
// first.
func (d *DictStore) ForEach(fn func(key string, value Object)) {
	for _, e := range d.order {
		fn(e.Key, e.Value)
	}
}

// Clone makes a shallow copy of the store (new map and slice headers,
// same Object values) under a new identity, for copy-on-write.
func (d *DictStore) Clone(newID BackingID) *DictStore {
	c := &DictStore{
		ID:      newID,
		entries: make(map[string]int, len(d.entries)),
		order:   make([]DictEntry, len(d.order)),
	}
	for k, v := range d.entries {
		c.entries[k] = v
	}
	copy(c.order, d.order)
	return c
}

// dictSnapshot is a frozen copy of a DictStore's entries, used by package
// vm to protect a dictionary's pre-save contents across an in-place
// mutation (spec §4.3, copy-on-write).
type dictSnapshot struct {
	entries map[string]int
	order   []DictEntry
}

// Snapshot returns a frozen copy of the store's current entries, for
// copy-on-write protection ahead of an in-place mutation (package vm).
func (d *DictStore) Snapshot() *dictSnapshot {
	c := d.Clone(d.ID)
	return &dictSnapshot{entries: c.entries, order: c.order}
}

// Restore overwrites the store's entries in place from a prior Snapshot
// (package vm, on restore).
func (d *DictStore) Restore(s *dictSnapshot) {
	d.entries = s.entries
	d.order = s.order
}

// Dict is a composite (VM-origin, map, creation timestamp, access,
// is_global) object. Capacity is a PostScript Level 2 concept (`dict`
// takes a maxlength hint); this implementation grows without bound and
// only records Capacity, which `maxlength` reports. No operator signals
// `dictfull` when a dictionary grows past its Capacity.
type Dict struct {
	*Header
	Store    *DictStore
	Capacity int
}

func (d *Dict) Tag() Tag { return TagDict }

// BackingID returns the identity of this Dict's shared backing store.
func (d *Dict) BackingID() BackingID { return d.Store.ID }

// NewDict allocates a Dict with the given capacity hint and VM placement.
// The backing store's BackingID is derived from the header's own
// identity at construction time, since a freshly allocated Dict is not
// yet shared with any other header.
func NewDict(h *Header, capacity int) *Dict {
	id := BackingID{Timestamp: h.Timestamp, IsGlobal: h.IsGlobal}
	return &Dict{Header: h, Store: NewDictStore(id, capacity), Capacity: capacity}
}

// GState is a composite wrapping a captured graphics-state snapshot. The
// actual field set lives in package graphics (graphics.State); this type
// only carries the Header and an opaque payload so the object model does
// not depend on package graphics (which depends back on psengine for
// Object-typed color/font references), avoiding an import cycle.
type GState struct {
	*Header
	Snapshot any // concretely *graphics.State
}

func (g *GState) Tag() Tag { return TagGState }

// FontID is the opaque identity returned by font construction (`definefont`)
// and propagated unchanged by scalefont/makefont copies, used as the
// font-identity component of a glyph cache key (spec §4.6).
type FontID struct {
	*Header
	id uint64
}

func (f *FontID) Tag() Tag { return TagFontID }

// LoopKind enumerates the eight loop-header kinds sharing one execution
// record (spec §4.2).
type LoopKind int

const (
	LoopFor LoopKind = iota
	LoopRepeat
	LoopLoop
	LoopForall
	LoopCshow
	LoopKshow
	LoopPathforall
	LoopFilenameforall
)

// Loop is a loop-header record. It lives only on the execution stack and
// is never constructed by PostScript code directly.
type Loop struct {
	Kind LoopKind
	Proc Object

	// for: counter/limit/increment (as Reals, to allow non-integer step).
	Counter, Limit, Increment Real

	// forall/pathforall/filenameforall: subject collection and cursor.
	Subject Object
	Cursor  int

	// repeat/loop: remaining iteration count (repeat only; loop runs
	// until `exit`).
	Remaining int64

	// cshow/kshow: pending composite-font iteration state, opaque to the
	// object model (concretely *font.CIDIterator).
	Pending any
}

func (*Loop) Tag() Tag        { return TagLoop }
func (*Loop) Attr() Attribute { return AttrExecutable }

// Stopped is the marker `stop`-catching contexts push so `stop` has a
// boundary to unwind to, and so normal completion can distinguish "ran to
// completion" from "terminated by stop".
type Stopped struct{}

func (Stopped) Tag() Tag        { return TagStopped }
func (Stopped) Attr() Attribute { return AttrExecutable }

// HardReturn is the internal boundary marker that makes the dispatch loop
// re-entrant: pushing a HardReturn then a procedure and re-invoking the
// loop behaves like a synchronous call that returns when the HardReturn
// is popped (spec §4.1 invariant; used by Type 3 BuildGlyph, §4.6).
type HardReturn struct{}

func (HardReturn) Tag() Tag        { return TagHardReturn }
func (HardReturn) Attr() Attribute { return AttrExecutable }
