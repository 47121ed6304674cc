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

// Package vm implements the two virtual memories (local and global),
// composite allocation, and save/restore with copy-on-write, per spec
// §3.4 and §4.3.
//
// Grounded on the teacher's container.go reference-resolution pattern
// (composite identity, not value, drives lookup) generalized from
// indirect-object references to a timestamp-keyed reference map. The
// protected set a save accumulates is kept as a map of revert closures
// plus a slice recording protection order.
package vm

import (
	"sync"

	"seehuhn.de/go/psengine"
)

// Composite is implemented by every VM-tracked object: String, Array,
// PackedArray, Dict, File, Save, GState, FontID. Every composite type in
// package psengine satisfies it automatically through *Header's Hdr
// promotion method.
type Composite interface {
	psengine.Object
	Hdr() *psengine.Header
}

// Store is a reference map from header timestamp to the Composite
// registered under it. The global store is shared by every Context in the
// process and is the only one that locks (spec §5: "the only contended
// operations are registration of a new global composite and lookup of a
// shared resource"); a Context's local store is only ever touched by that
// Context's own goroutine and is left unlocked.
type Store struct {
	locked bool
	mu     sync.RWMutex
	refs   map[uint64]Composite
}

func newStore(locked bool) *Store {
	return &Store{locked: locked, refs: make(map[uint64]Composite)}
}

// NewGlobalStore creates a fresh, empty global store. Callers normally
// want a single process-wide instance shared by every Context; see
// DefaultGlobal.
func NewGlobalStore() *Store { return newStore(true) }

func (s *Store) register(c Composite) {
	ts := c.Hdr().Timestamp
	if s.locked {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	s.refs[ts] = c
}

func (s *Store) unregister(ts uint64) {
	if s.locked {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	delete(s.refs, ts)
}

// Get looks up a composite by its header timestamp.
func (s *Store) Get(ts uint64) (Composite, bool) {
	if s.locked {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	c, ok := s.refs[ts]
	return c, ok
}

// Len returns the number of composites currently tracked.
func (s *Store) Len() int {
	if s.locked {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	return len(s.refs)
}

// discardFrom deletes every entry whose timestamp is >= floor, returning
// the count removed. Used by Restore to release local composites
// allocated after the save being restored to (spec §4.3).
func (s *Store) discardFrom(floor uint64) int {
	if s.locked {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	n := 0
	for ts := range s.refs {
		if ts >= floor {
			delete(s.refs, ts)
			n++
		}
	}
	return n
}

var (
	defaultGlobalOnce sync.Once
	defaultGlobal     *Store
)

// DefaultGlobal returns the process-wide global store, creating it on
// first use. Every Context that does not need an isolated global VM (the
// common case) should share this instance.
func DefaultGlobal() *Store {
	defaultGlobalOnce.Do(func() { defaultGlobal = NewGlobalStore() })
	return defaultGlobal
}
