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

// Save is the token `save` returns and `restore` consumes. Snapshot is
// opaque here (concretely *vm.Snapshot) to keep the object model free of
// a dependency on package vm, which itself needs Object.
type Save struct {
	*Header
	ID       uint64
	Snapshot any
}

func (s *Save) Tag() Tag { return TagSave }
