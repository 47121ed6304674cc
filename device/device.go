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

// Package device defines the Device contract spec §4.5 and §6 describe:
// the core appends back-end-agnostic records to a displaylist.List as
// painting operators execute, and a Device consumes the whole list at
// showpage to actually put ink (or pixels, or vector output) somewhere.
// The core never imports a concrete Device; cmd/psengine wires one in.
package device

import "seehuhn.de/go/psengine/displaylist"

// Device renders a finished display list. Consume is called once per
// showpage with every record appended since the previous showpage (or
// since the page began, for the first page); a Device that only cares
// about the final raster can ignore ErasePage and intermediate records
// freely, so long as it processes Fill/Stroke/image records in order.
type Device interface {
	// Consume renders one page's worth of records. width and height are
	// the device-space page dimensions in points, as configured by the
	// caller (spec has no PostScript-level notion of page size, since
	// that is a job-wrapper/driver concern left to the embedder).
	Consume(records []displaylist.Record, width, height float64) error

	// Close flushes and releases any resources the Device holds open
	// (an output file, an accumulated multi-page document, etc).
	Close() error
}
