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

package operators

import (
	"testing"

	"seehuhn.de/go/psengine"
	"seehuhn.de/go/psengine/interp"
	"seehuhn.de/go/psengine/vm"
)

// newTestContext builds a Context with every built-in operator installed,
// mirroring what cmd/psengine does before running a program.
func newTestContext(t *testing.T) *interp.Context {
	t.Helper()
	c := interp.New(vm.NewGlobalStore())
	if err := Install(c); err != nil {
		t.Fatalf("Install: %v", err)
	}
	return c
}

func popFloat(t *testing.T, c *interp.Context) float64 {
	t.Helper()
	v, err := c.Operand.Pop("test")
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	switch n := v.(type) {
	case psengine.Integer:
		return float64(n)
	case psengine.Real:
		return float64(n)
	default:
		t.Fatalf("got %T, want a number", v)
		return 0
	}
}

func wantErrKind(t *testing.T, err error, kind psengine.ErrorKind) {
	t.Helper()
	perr, ok := err.(*psengine.Error)
	if !ok {
		t.Fatalf("got %v, want a *psengine.Error", err)
	}
	if perr.Kind != kind {
		t.Fatalf("got error kind %v, want %v", perr.Kind, kind)
	}
}
