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

package pstoken

// characterClass mirrors the teacher's content/scanner.go three-way
// table (space/regular/delimiter), retuned to PostScript's white-space
// and delimiter sets (PLRM 3rd ed., §3.2).
type characterClass byte

const (
	regular characterClass = iota
	space
	delimiter
)

var class = buildClassTable()

func buildClassTable() [256]characterClass {
	var t [256]characterClass
	for i := range t {
		t[i] = regular
	}
	for _, b := range []byte{0, '\t', '\n', '\f', '\r', ' '} {
		t[b] = space
	}
	for _, b := range []byte{'(', ')', '<', '>', '[', ']', '{', '}', '/', '%'} {
		t[b] = delimiter
	}
	return t
}
