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

package interp

import "seehuhn.de/go/psengine"

// HistoryEntry records one dispatch step for post-mortem debugging
// (spec §4.1, "a bounded ring buffer records (input-object,
// resolved-object) pairs").
type HistoryEntry struct {
	Input    psengine.Object
	Resolved psengine.Object
}

// History is a fixed-capacity ring buffer. A zero-capacity History
// (the default a Context is constructed with) makes record a no-op, so
// disabled history recording costs nothing in the tight dispatch loop
// beyond one capacity check (spec §4.1, "When disabled, history
// recording is a no-op function pointer to preserve tight-loop
// performance").
type History struct {
	entries []HistoryEntry
	next    int
	filled  bool
}

func newHistory(capacity int) *History {
	return &History{entries: make([]HistoryEntry, capacity)}
}

// SetCapacity resizes the ring buffer, clearing any previously recorded
// entries. Passing 0 disables recording.
func (h *History) SetCapacity(capacity int) {
	h.entries = make([]HistoryEntry, capacity)
	h.next = 0
	h.filled = false
}

// Enabled reports whether history recording is active.
func (h *History) Enabled() bool { return len(h.entries) > 0 }

func (h *History) record(input, resolved psengine.Object) {
	if len(h.entries) == 0 {
		return
	}
	h.entries[h.next] = HistoryEntry{Input: input, Resolved: resolved}
	h.next++
	if h.next == len(h.entries) {
		h.next = 0
		h.filled = true
	}
}

// Entries returns the recorded entries in chronological order (oldest
// first).
func (h *History) Entries() []HistoryEntry {
	if !h.filled {
		out := make([]HistoryEntry, h.next)
		copy(out, h.entries[:h.next])
		return out
	}
	out := make([]HistoryEntry, len(h.entries))
	n := copy(out, h.entries[h.next:])
	copy(out[n:], h.entries[:h.next])
	return out
}
