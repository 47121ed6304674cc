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

import (
	"bytes"

	"seehuhn.de/go/psengine"
	"seehuhn.de/go/psengine/pstoken"
)

// fileReader adapts *psengine.File to io.Reader through its byte-at-a-
// time ReadByte (which itself respects the putback buffer tokenizers
// rely on), so a File executed via dispatchStream can drive a
// pstoken.Scanner exactly as a string or any other byte source would.
type fileReader struct{ f *psengine.File }

func (r fileReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b, err := r.f.ReadByte()
	if err != nil {
		return 0, err
	}
	p[0] = b
	return 1, nil
}

// ForgetScanner drops the cached Scanner for src, called once `token`
// reaches end-of-stream so a later re-use of the same File/String (after
// `resetfile` or just re-dispatching it) starts a fresh Scanner instead
// of reusing one parked at EOF.
func (c *Context) ForgetScanner(src any) { delete(c.scanners, src) }

// TokenScanner exposes scannerFor's cache to package operators, which
// implements `token` by pulling exactly one object from the same scanner
// dispatchStream would resume from, so a mix of direct `token` calls and
// executing a file/string as a procedure never re-reads or skips bytes.
func (c *Context) TokenScanner(src any) (*pstoken.Scanner, error) {
	sc, _, err := c.scannerFor(src)
	return sc, err
}

// scannerFor returns the cached Scanner for src (a *psengine.File or
// *psengine.String being executed as a tokenizable stream, spec §4.1
// rule 4), creating it on first use. The cache is keyed by the object's
// own identity (pointer equality, since both types are represented by
// pointers) so repeated dispatch iterations over the same source resume
// where the last Next() left off instead of restarting.
func (c *Context) scannerFor(src any) (*pstoken.Scanner, string, error) {
	const op = "exec"
	if sc, ok := c.scanners[src]; ok {
		return sc, op, nil
	}

	switch v := src.(type) {
	case *psengine.File:
		sc := pstoken.New(fileReader{v}, c.VM)
		c.scanners[src] = sc
		return sc, op, nil
	case *psengine.String:
		sc := pstoken.New(bytes.NewReader(v.Bytes()), c.VM)
		c.scanners[src] = sc
		return sc, op, nil
	default:
		return nil, op, psengine.NewError(op, psengine.ErrTypeCheck)
	}
}
