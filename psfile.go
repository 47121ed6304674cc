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

import "io"

// FileMode is the open mode a File was created with.
type FileMode int

const (
	FileModeRead FileMode = iota
	FileModeWrite
	FileModeReadWrite
)

// File is a composite wrapping a stream handle. Real files (opened by
// `(name) (r) file`) and synthetic ones (string-backed `%statementedit`,
// filter streams such as RunLengthDecode/ASCII85Decode) share this type;
// RealFile distinguishes them so `invalidfileaccess` checks and
// `%stdin`/`%stdout`/`%stderr` identity checks can special-case synthetic
// streams.
type File struct {
	*Header
	Stream   io.ReadWriteCloser
	Mode     FileMode
	RealFile bool

	// Putback holds bytes pushed back by the tokenizer (e.g. after
	// peeking a byte that turned out to belong to the next token).
	Putback []byte

	// Decrypting marks filter streams that perform Type 1 eexec/charstring
	// decryption (spec §4.6) so file-level operators can report their
	// nominal vs. underlying length correctly.
	Decrypting bool
}

func (f *File) Tag() Tag { return TagFile }

// ReadByte implements a single-byte read respecting the putback buffer,
// the primitive the tokenizer is built on.
func (f *File) ReadByte() (byte, error) {
	if n := len(f.Putback); n > 0 {
		b := f.Putback[n-1]
		f.Putback = f.Putback[:n-1]
		return b, nil
	}
	var buf [1]byte
	_, err := io.ReadFull(f.Stream, buf[:])
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// UnreadByte pushes a byte back so the next ReadByte returns it.
func (f *File) UnreadByte(b byte) {
	f.Putback = append(f.Putback, b)
}
