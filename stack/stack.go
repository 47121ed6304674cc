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

// Package stack implements the three bounded interpreter stacks (operand,
// execution, dictionary; spec §2 "Stacks", §4.1); the graphics-state
// stack lives in package graphics. Each
// is a thin, capacity-checked wrapper around a slice: the teacher itself
// reaches for a plain slice for its own internal accumulation stacks
// (content/scanner.go's `stack []*stackEntry`) rather than a library, so
// the bounded variant here follows the same idiom with overflow/
// underflow diagnostics added in place of the teacher's "can't happen"
// internal invariant.
package stack

import "seehuhn.de/go/psengine"

// Bounded is a capacity-limited LIFO stack of T. Operators consult Len
// and Peek to validate preconditions before calling Pop, per spec §7
// ("operators must validate all preconditions ... before popping
// anything").
type Bounded[T any] struct {
	items    []T
	capacity int

	overflowKind, underflowKind psengine.ErrorKind
}

// New creates a Bounded stack with the given capacity and the error
// kinds it should report on overflow/underflow.
func New[T any](capacity int, overflowKind, underflowKind psengine.ErrorKind) *Bounded[T] {
	return &Bounded[T]{capacity: capacity, overflowKind: overflowKind, underflowKind: underflowKind}
}

// Len returns the number of elements currently on the stack.
func (b *Bounded[T]) Len() int { return len(b.items) }

// Push appends v, reporting overflowKind if the stack is already at
// capacity.
func (b *Bounded[T]) Push(op string, v T) error {
	if len(b.items) >= b.capacity {
		return psengine.NewError(op, b.overflowKind)
	}
	b.items = append(b.items, v)
	return nil
}

// Pop removes and returns the top element, reporting underflowKind if
// the stack is empty.
func (b *Bounded[T]) Pop(op string) (T, error) {
	var zero T
	if len(b.items) == 0 {
		return zero, psengine.NewError(op, b.underflowKind)
	}
	n := len(b.items) - 1
	v := b.items[n]
	b.items = b.items[:n]
	return v, nil
}

// Peek returns the element `depth` positions from the top (0 = top)
// without removing it, reporting underflowKind if depth is out of
// range.
func (b *Bounded[T]) Peek(op string, depth int) (T, error) {
	var zero T
	n := len(b.items) - 1 - depth
	if depth < 0 || n < 0 {
		return zero, psengine.NewError(op, b.underflowKind)
	}
	return b.items[n], nil
}

// PeekPtr returns a pointer into the live backing slice at the given
// depth from the top, for in-place mutation (e.g. `roll`'s rotation,
// `>>` swapping an operand in place). Operators must not retain the
// pointer past the next Push/Pop, since those may reallocate the
// backing slice.
func (b *Bounded[T]) PeekPtr(op string, depth int) (*T, error) {
	n := len(b.items) - 1 - depth
	if depth < 0 || n < 0 {
		return nil, psengine.NewError(op, b.underflowKind)
	}
	return &b.items[n], nil
}

// All returns the live backing slice, bottom to top. Callers (error
// reporting's "$error /ostack" snapshot, `stopped`'s unwind) must treat
// it as read-only unless they immediately discard the stack.
func (b *Bounded[T]) All() []T { return b.items }

// Truncate resets the stack to exactly n elements, discarding
// everything above. Used by loop-header `exit`/`stop` unwind and by a
// Stopped-marker catch that must drop excess operands left by a failed
// sub-computation only when the language explicitly calls for it (most
// unwinds leave the operand stack untouched per spec §4.2).
func (b *Bounded[T]) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(b.items) {
		b.items = b.items[:n]
	}
}

// Clear empties the stack.
func (b *Bounded[T]) Clear() { b.items = b.items[:0] }
