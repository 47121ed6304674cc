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

import "fmt"

// ErrorKind is the fixed set of PostScript error names (spec §7).
type ErrorKind int

const (
	ErrVMError ErrorKind = iota
	ErrDictFull
	ErrDictStackOverflow
	ErrDictStackUnderflow
	ErrExecStackOverflow
	ErrInvalidAccess
	ErrInvalidExit
	ErrInvalidFileAccess
	ErrInvalidFont
	ErrInvalidRestore
	ErrIOError
	ErrLimitCheck
	ErrNoCurrentPoint
	ErrRangeCheck
	ErrStackOverflow
	ErrStackUnderflow
	ErrSyntaxError
	ErrTimeout
	ErrTypeCheck
	ErrUndefined
	ErrUndefinedFilename
	ErrUndefinedResource
	ErrUndefinedResult
	ErrUnmatchedMark
	ErrUnregistered
	ErrUnsupported
	ErrConfigurationError
)

var errorKindNames = [...]string{
	"VMerror", "dictfull", "dictstackoverflow", "dictstackunderflow",
	"execstackoverflow", "invalidaccess", "invalidexit", "invalidfileaccess",
	"invalidfont", "invalidrestore", "ioerror", "limitcheck",
	"nocurrentpoint", "rangecheck", "stackoverflow", "stackunderflow",
	"syntaxerror", "timeout", "typecheck", "undefined", "undefinedfilename",
	"undefinedresource", "undefinedresult", "unmatchedmark", "unregistered",
	"unsupported", "configurationerror",
}

func (k ErrorKind) String() string {
	if int(k) < 0 || int(k) >= len(errorKindNames) {
		return fmt.Sprintf("errorkind(%d)", int(k))
	}
	return errorKindNames[k]
}

// Error is the typed error every operator and core routine signals
// through, carrying the offending operator name alongside the PostScript
// error kind (spec §7). It implements Unwrap so callers can use
// errors.Is/As against a wrapped cause, following the teacher's
// MalformedFileError/VersionError pattern.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError constructs an *Error for the given operator and kind.
func NewError(op string, kind ErrorKind) *Error {
	return &Error{Kind: kind, Op: op}
}

// Wrap constructs an *Error wrapping an underlying cause (used for
// ErrIOError and ErrSyntaxError, which usually originate from a
// lower-level io/tokenizer failure).
func Wrap(op string, kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
