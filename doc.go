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

// Package psengine implements the object model and error taxonomy shared
// by every layer of the interpreter: the tagged Object variant that
// represents every PostScript value, and the fixed set of error kinds
// operators signal through.
//
// Subpackages implement the remaining subsystems:
//
//	vm            virtual memory, save/restore, copy-on-write
//	pstoken       the incremental tokenizer
//	stack         the four bounded interpreter stacks
//	interp        the execution engine and loop headers
//	graphics      the graphics-state machine
//	displaylist   the back-end-agnostic painting record stream
//	operators     the built-in operator table
//	color         color spaces and ICC profile wiring
//	font          font dictionaries and the glyph pipeline
//	glyphcache    the two-level LRU glyph cache
//	device        the back-end device contract
package psengine
