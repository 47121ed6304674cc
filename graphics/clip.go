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

// ClipEntry is one level of the clipping-path stack: a path plus its
// winding rule (spec §4.5, "A stack of (clip_path, winding_rule) pairs
// per graphics state").
type ClipEntry struct {
	Path    *Path
	EvenOdd bool
}

// ClipState is a graphics state's clipping-path stack plus the version
// counter that lets painting operators decide whether to re-emit a
// ClipElement (spec §4.5: "the core only records a version number that
// increments on every change, and emits a ClipElement marker ... only
// when the version changes between painting operations" — no explicit
// path intersection is computed here; the back-end device is
// responsible for intersecting the accumulated entries).
type ClipState struct {
	Entries []ClipEntry
	Version int
}

// Top returns the innermost (most recently pushed) clip entry, or
// (nil, false) if the clip stack is empty (unclipped to the whole
// page).
func (c ClipState) Top() (ClipEntry, bool) {
	if len(c.Entries) == 0 {
		return ClipEntry{}, false
	}
	return c.Entries[len(c.Entries)-1], true
}

func (c ClipState) clone() ClipState {
	entries := make([]ClipEntry, len(c.Entries))
	copy(entries, c.Entries)
	return ClipState{Entries: entries, Version: c.Version}
}

// Push intersects path (conceptually) with the current clip by pushing
// a new entry and incrementing Version, implementing `clip`/`eoclip`.
func (c *ClipState) Push(path *Path, evenOdd bool) {
	c.Entries = append(c.Entries, ClipEntry{Path: path, EvenOdd: evenOdd})
	c.Version++
}

// Reset clears the clip stack back to "no clipping", implementing
// `initclip`, and bumps Version so the next painting operator re-emits
// it.
func (c *ClipState) Reset() {
	c.Entries = nil
	c.Version++
}
