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

package displaylist

// List is the ordered sequence of Records a Context accumulates as
// painting operators run (spec §4.5). A plain growable slice, in the
// pack's prevailing style for ordered accumulation (e.g.
// font/glyph.go's GlyphSeq.Append onto a slice field) rather than a
// linked structure — the display list is written once, front to back,
// and read once, front to back, by the device at showpage.
type List struct {
	records []Record
}

// New returns an empty display list.
func New() *List { return &List{} }

// Append adds r as the next record.
func (l *List) Append(r Record) { l.records = append(l.records, r) }

// Len returns the number of records currently held.
func (l *List) Len() int { return len(l.records) }

// Records returns the accumulated records in emission order. The
// returned slice aliases internal storage and must not be mutated by the
// caller; it is intended for a Device to range over at showpage.
func (l *List) Records() []Record { return l.records }

// Last returns the most recently appended record, or nil if the list is
// empty. Painting operators use this to check whether a ClipElement was
// already emitted for the current clip version before appending another
// (spec §4.4's "amortizes redundant clip-path emissions").
func (l *List) Last() Record {
	if len(l.records) == 0 {
		return nil
	}
	return l.records[len(l.records)-1]
}

// Reset clears the list, called by ErasePage's device-facing counterpart
// once a page has been handed off (the list itself does not interpret
// ShowPage/ErasePage; interp appends those records and then decides
// whether to reset).
func (l *List) Reset() { l.records = nil }
