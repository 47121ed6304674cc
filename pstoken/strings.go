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

import (
	"io"

	"seehuhn.de/go/psengine"
)

// readString reads a `( ... )` literal string, balancing nested
// parentheses and decoding the PLRM backslash escapes. Adapted from the
// teacher's content/scanner.go readString, which has the identical
// bracket-nesting and escape-table structure for PDF literal strings.
func (s *Scanner) readString() (psengine.Object, error) {
	if _, err := s.nextByte(); err != nil { // '('
		return nil, err
	}
	var res []byte
	depth := 1
	ignoreLF := false
	for {
		b, err := s.nextByte()
		if err != nil {
			return nil, err
		}
		if ignoreLF && b == 10 {
			ignoreLF = false
			continue
		}
		ignoreLF = false
		switch b {
		case '(':
			depth++
			res = append(res, b)
		case ')':
			depth--
			if depth == 0 {
				return s.vm.NewString(res, psengine.AccessUnlimited, psengine.AttrLiteral), nil
			}
			res = append(res, b)
		case '\\':
			b, err = s.nextByte()
			if err != nil {
				return nil, err
			}
			switch b {
			case 'n':
				res = append(res, '\n')
			case 'r':
				res = append(res, '\r')
			case 't':
				res = append(res, '\t')
			case 'b':
				res = append(res, '\b')
			case 'f':
				res = append(res, '\f')
			case '(', ')', '\\':
				res = append(res, b)
			case 10: // line continuation: LF swallowed
			case 13: // CR, possibly CR+LF
				ignoreLF = true
			case '0', '1', '2', '3', '4', '5', '6', '7':
				oct := b - '0'
				for i := 0; i < 2; i++ {
					nb, err := s.peek()
					if err == io.EOF || err != nil || nb < '0' || nb > '7' {
						break
					}
					s.nextByte()
					oct = oct*8 + (nb - '0')
				}
				res = append(res, oct)
			default:
				res = append(res, b)
			}
		default:
			res = append(res, b)
		}
	}
}

// readHexString reads a `< ... >` hex string, ignoring embedded
// whitespace and padding a trailing lone nibble with zero, per PLRM.
func (s *Scanner) readHexString() (psengine.Object, error) {
	if _, err := s.nextByte(); err != nil { // '<'
		return nil, err
	}
	var res []byte
	haveHigh := false
	var hi byte
	for {
		b, err := s.nextByte()
		if err != nil {
			return nil, err
		}
		var lo byte
		switch {
		case b == '>':
			if haveHigh {
				res = append(res, hi)
			}
			return s.vm.NewString(res, psengine.AccessUnlimited, psengine.AttrLiteral), nil
		case b <= 32:
			continue
		case b >= '0' && b <= '9':
			lo = b - '0'
		case b >= 'A' && b <= 'F':
			lo = b - 'A' + 10
		case b >= 'a' && b <= 'f':
			lo = b - 'a' + 10
		default:
			return nil, &SyntaxError{Msg: "invalid hex digit in string"}
		}
		if !haveHigh {
			hi = lo << 4
			haveHigh = true
		} else {
			res = append(res, hi|lo)
			haveHigh = false
		}
	}
}

// readBase85String reads a `<~ ... ~>` Adobe ASCII base-85 string,
// decoding groups of 5 ASCII characters (offset by '!') into 4 bytes,
// with the `z` shorthand for an all-zero group and a short final group
// padded with 'u' before decoding (PLRM 3rd ed., §3.13.3).
func (s *Scanner) readBase85String() (psengine.Object, error) {
	var group []byte
	var res []byte
	for {
		b, err := s.nextByte()
		if err != nil {
			return nil, err
		}
		if b == '~' {
			if nb, err := s.peek(); err == nil && nb == '>' {
				s.nextByte()
			}
			break
		}
		if b <= 32 {
			continue
		}
		if b == 'z' && len(group) == 0 {
			res = append(res, 0, 0, 0, 0)
			continue
		}
		if b < '!' || b > 'u' {
			return nil, &SyntaxError{Msg: "invalid base-85 character"}
		}
		group = append(group, b-'!')
		if len(group) == 5 {
			res = append(res, decodeBase85Group(group, 4)...)
			group = group[:0]
		}
	}
	if n := len(group); n > 0 {
		full := n - 1
		for len(group) < 5 {
			group = append(group, 84) // 'u' - '!'
		}
		res = append(res, decodeBase85Group(group, full)...)
	}
	return s.vm.NewString(res, psengine.AccessUnlimited, psengine.AttrLiteral), nil
}

func decodeBase85Group(group []byte, n int) []byte {
	var v uint32
	for _, d := range group {
		v = v*85 + uint32(d)
	}
	out := []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
	return out[:n]
}
