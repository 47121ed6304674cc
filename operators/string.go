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
	"bytes"

	"seehuhn.de/go/psengine"
	"seehuhn.de/go/psengine/interp"
	"seehuhn.de/go/psengine/pstoken"
)

// registerString installs the string-specific operators; `length`,
// `get`, `put`, `getinterval`, `putinterval` and `copy` are generic over
// array/packedarray/string/dict and already live in array.go.
func registerString(b builder) {
	b.op("string", opString)
	b.op("search", opSearch)
	b.op("anchorsearch", opAnchorsearch)
	b.op("token", opToken)
}

func opString(c *interp.Context) error {
	n, err := popInt(c, "string")
	if err != nil {
		return err
	}
	if n < 0 {
		return psengine.NewError("string", psengine.ErrRangeCheck)
	}
	return push(c, "string", c.VM.NewString(make([]byte, n), psengine.AccessUnlimited, psengine.AttrLiteral))
}

// opSearch implements `string seek search bool post match pre` /
// `string seek search false` (PLRM §8): find the first occurrence of
// seek's bytes in string.
func opSearch(c *interp.Context) error {
	seek, err := popString(c, "search")
	if err != nil {
		return err
	}
	str, err := popString(c, "search")
	if err != nil {
		return err
	}
	sb, kb := str.Bytes(), seek.Bytes()
	idx := bytes.Index(sb, kb)
	if idx < 0 {
		if err := push(c, "search", str); err != nil {
			return err
		}
		return push(c, "search", psengine.Boolean(false))
	}
	pre := c.VM.Substring(str, 0, idx)
	match := c.VM.Substring(str, idx, len(kb))
	post := c.VM.Substring(str, idx+len(kb), len(sb)-idx-len(kb))
	if err := push(c, "search", post); err != nil {
		return err
	}
	if err := push(c, "search", match); err != nil {
		return err
	}
	if err := push(c, "search", pre); err != nil {
		return err
	}
	return push(c, "search", psengine.Boolean(true))
}

// opAnchorsearch implements `string seek anchorsearch post match true` /
// `string seek anchorsearch string false`: like search, but seek must
// match at the very start of string (PLRM §8).
func opAnchorsearch(c *interp.Context) error {
	seek, err := popString(c, "anchorsearch")
	if err != nil {
		return err
	}
	str, err := popString(c, "anchorsearch")
	if err != nil {
		return err
	}
	sb, kb := str.Bytes(), seek.Bytes()
	if !bytes.HasPrefix(sb, kb) {
		if err := push(c, "anchorsearch", str); err != nil {
			return err
		}
		return push(c, "anchorsearch", psengine.Boolean(false))
	}
	match := c.VM.Substring(str, 0, len(kb))
	post := c.VM.Substring(str, len(kb), len(sb)-len(kb))
	if err := push(c, "anchorsearch", post); err != nil {
		return err
	}
	if err := push(c, "anchorsearch", match); err != nil {
		return err
	}
	return push(c, "anchorsearch", psengine.Boolean(true))
}

// opToken implements `string token any ... true` / `string token false`
// (and the file-argument form, spec §4.1 rule 4): scan exactly one token
// from the front of string (or the next unread token of an open File),
// reusing the same pstoken.Scanner instance the central dispatch loop
// would resume a tokenizable stream from.
func opToken(c *interp.Context) error {
	top, err := peekAny(c, "token", 0)
	if err != nil {
		return err
	}
	switch v := top.(type) {
	case *psengine.String:
		return tokenFromString(c, v)
	case *psengine.File:
		return tokenFromFile(c, v)
	default:
		return psengine.NewError("token", psengine.ErrTypeCheck)
	}
}

func tokenFromString(c *interp.Context, str *psengine.String) error {
	sc := pstoken.New(bytes.NewReader(str.Bytes()), c.VM)
	obj, err := sc.Next()
	if err != nil {
		if _, err := c.Operand.Pop("token"); err != nil {
			return err
		}
		return push(c, "token", psengine.Boolean(false))
	}
	_, col := sc.Position()
	if _, err := c.Operand.Pop("token"); err != nil {
		return err
	}
	rest := c.VM.Substring(str, col, str.Length-col)
	if err := push(c, "token", rest); err != nil {
		return err
	}
	if err := push(c, "token", obj); err != nil {
		return err
	}
	return push(c, "token", psengine.Boolean(true))
}

func tokenFromFile(c *interp.Context, f *psengine.File) error {
	sc, err := c.TokenScanner(f)
	if err != nil {
		return err
	}
	obj, err := sc.Next()
	if err != nil {
		c.ForgetScanner(f)
		if _, err := c.Operand.Pop("token"); err != nil {
			return err
		}
		return push(c, "token", psengine.Boolean(false))
	}
	if _, err := c.Operand.Pop("token"); err != nil {
		return err
	}
	if err := push(c, "token", obj); err != nil {
		return err
	}
	return push(c, "token", psengine.Boolean(true))
}

// cviString/cvrString implement the string-argument overloads of
// cvi/cvr (arith.go): scan the leading number token out of the string
// and convert it.
func cviString(c *interp.Context) error {
	n, err := scanLeadingNumber(c, "cvi")
	if err != nil {
		return err
	}
	return push(c, "cvi", psengine.Integer(int64(n)))
}

func cvrString(c *interp.Context) error {
	n, err := scanLeadingNumber(c, "cvr")
	if err != nil {
		return err
	}
	return push(c, "cvr", psengine.Real(n))
}

func scanLeadingNumber(c *interp.Context, op string) (float64, error) {
	str, err := popString(c, op)
	if err != nil {
		return 0, err
	}
	sc := pstoken.New(bytes.NewReader(str.Bytes()), c.VM)
	obj, err := sc.Next()
	if err != nil {
		return 0, psengine.NewError(op, psengine.ErrSyntaxError)
	}
	switch v := obj.(type) {
	case psengine.Integer:
		return float64(v), nil
	case psengine.Real:
		return float64(v), nil
	default:
		return 0, psengine.NewError(op, psengine.ErrTypeCheck)
	}
}
