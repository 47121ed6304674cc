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
	"testing"

	"seehuhn.de/go/psengine"
)

func newTestVM() *VM {
	return New(NewGlobalStore())
}

func TestDictPutRestoresOnRestore(t *testing.T) {
	v := newTestVM()
	d := v.NewDict(4, psengine.AccessUnlimited)
	v.CowDict(d)
	d.Store.Put("a", psengine.Integer(1))

	save := v.Save()

	v.CowDict(d)
	d.Store.Put("a", psengine.Integer(2))

	got, _ := d.Store.Get("a")
	if got != psengine.Integer(2) {
		t.Fatalf("expected 2 before restore, got %v", got)
	}

	if err := v.Restore(save); err != nil {
		t.Fatalf("restore: %v", err)
	}

	got, _ = d.Store.Get("a")
	if got != psengine.Integer(1) {
		t.Fatalf("expected 1 after restore, got %v", got)
	}
}

func TestAliasedDictSeesLiveMutationAcrossSave(t *testing.T) {
	v := newTestVM()
	a := v.NewDict(4, psengine.AccessUnlimited)
	b := v.DupDict(a) // b aliases a's backing store

	save := v.Save()

	v.CowDict(a)
	a.Store.Put("k", psengine.Integer(42))

	got, ok := b.Store.Get("k")
	if !ok || got != psengine.Integer(42) {
		t.Fatalf("alias did not observe live mutation: got %v, ok %v", got, ok)
	}

	if err := v.Restore(save); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if _, ok := b.Store.Get("k"); ok {
		t.Fatal("expected key to be gone after restore, still visible via alias")
	}
}

func TestRestoreDiscardsLocalCompositesCreatedAfterSave(t *testing.T) {
	v := newTestVM()
	save := v.Save()
	d := v.NewDict(1, psengine.AccessUnlimited)

	if _, ok := v.Local.Get(d.Timestamp); !ok {
		t.Fatal("expected newly created dict to be tracked")
	}
	if err := v.Restore(save); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if _, ok := v.Local.Get(d.Timestamp); ok {
		t.Fatal("expected dict allocated after save to be discarded by restore")
	}
}

func TestRestoreNonOutermostLeavesGlobalUntouched(t *testing.T) {
	v := newTestVM()
	v.SetGlobalMode(true)
	g := v.NewDict(4, psengine.AccessUnlimited)
	v.SetGlobalMode(false)

	v.Save() // outermost
	inner := v.Save()

	v.CowDict(g)
	g.Store.Put("x", psengine.Integer(7))

	if err := v.Restore(inner); err != nil {
		t.Fatalf("restore: %v", err)
	}
	got, ok := g.Store.Get("x")
	if !ok || got != psengine.Integer(7) {
		t.Fatal("expected global mutation to survive a non-outermost restore")
	}
}

func TestInvalidRestoreOnUnknownSave(t *testing.T) {
	v1 := newTestVM()
	v2 := newTestVM()
	save := v1.Save()
	if err := v2.Restore(save); err == nil {
		t.Fatal("expected invalidrestore error for a save from a different VM")
	}
}

func TestCanRestoreRejectsReachableYoungerComposite(t *testing.T) {
	v := newTestVM()
	save := v.Save()
	d := v.NewDict(1, psengine.AccessUnlimited)

	err := v.CanRestore(save, []Composite{d})
	if err == nil {
		t.Fatal("expected invalidrestore when a younger local composite is still reachable")
	}
}

func TestInvalidAccessGlobalCannotReferenceLocal(t *testing.T) {
	v := newTestVM()
	local := v.NewDict(1, psengine.AccessUnlimited)

	v.SetGlobalMode(true)
	global := v.NewDict(1, psengine.AccessUnlimited)
	v.SetGlobalMode(false)

	if err := CheckStore("put", global, local); err == nil {
		t.Fatal("expected invalidaccess storing a local composite into a global one")
	}
	if err := CheckStore("put", local, global); err != nil {
		t.Fatalf("storing a global composite into a local one should be fine: %v", err)
	}
}
