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

// Package operators implements the built-in PostScript operators (spec
// §1, §6 "Operator categories"): control flow, arithmetic, array/dict/
// string manipulation, matrix and path construction, graphics-state and
// color operators, and the file/show-variant operators layered on top of
// package interp's dispatch loop.
//
// Grounded on the teacher's graphics/operator package: its
// ApplyOperator(state, op, resource) error entry point and argParser
// precondition-checking helper (visible only through that package's own
// tests in the retrieved pack — see package interp's grounding entry)
// are generalized here from "validate and apply one already-parsed PDF
// content-stream operator" to "pop and type-check operands directly off
// a live operand stack, then mutate a *interp.Context". Every operator
// function has the signature func(*interp.Context) error and is wired
// into a systemdict-equivalent dictionary by Install, matching
// interp.NewOperator's func(*Context) error contract.
package operators

import (
	"seehuhn.de/go/psengine"
	"seehuhn.de/go/psengine/interp"
)

// numArgs peeks n numeric (Integer or Real) operands from the operand
// stack, deepest first, without popping anything until every one of them
// has been confirmed to be a number — an operator must leave the stack
// untouched when it reports typecheck/stackunderflow (spec §7, mirrored
// in stack.Bounded's own "validate before popping" discipline).
func numArgs(c *interp.Context, op string, n int) ([]float64, []bool, error) {
	vals := make([]float64, n)
	isInt := make([]bool, n)
	for i := 0; i < n; i++ {
		depth := i
		obj, err := c.Operand.Peek(op, depth)
		if err != nil {
			return nil, nil, err
		}
		switch v := obj.(type) {
		case psengine.Integer:
			vals[n-1-i] = float64(v)
			isInt[n-1-i] = true
		case psengine.Real:
			vals[n-1-i] = float64(v)
		default:
			return nil, nil, psengine.NewError(op, psengine.ErrTypeCheck)
		}
	}
	for i := 0; i < n; i++ {
		if _, err := c.Operand.Pop(op); err != nil {
			return nil, nil, err
		}
	}
	return vals, isInt, nil
}

// popNum pops and returns a single numeric operand as a float64, plus
// whether it was an Integer (so callers that must return an Integer
// result when given only Integer inputs, e.g. `add`, can decide).
func popNum(c *interp.Context, op string) (float64, bool, error) {
	vals, isInt, err := numArgs(c, op, 1)
	if err != nil {
		return 0, false, err
	}
	return vals[0], isInt[0], nil
}

// popInt pops a single Integer operand (no Real-to-Integer coercion:
// PLRM requires an actual integer for count/index arguments).
func popInt(c *interp.Context, op string) (int, error) {
	obj, err := c.Operand.Peek(op, 0)
	if err != nil {
		return 0, err
	}
	v, ok := obj.(psengine.Integer)
	if !ok {
		return 0, psengine.NewError(op, psengine.ErrTypeCheck)
	}
	if _, err := c.Operand.Pop(op); err != nil {
		return 0, err
	}
	return int(v), nil
}

// popBool pops a single Boolean operand.
func popBool(c *interp.Context, op string) (bool, error) {
	obj, err := c.Operand.Peek(op, 0)
	if err != nil {
		return false, err
	}
	v, ok := obj.(psengine.Boolean)
	if !ok {
		return false, psengine.NewError(op, psengine.ErrTypeCheck)
	}
	if _, err := c.Operand.Pop(op); err != nil {
		return false, err
	}
	return bool(v), nil
}

// popName pops a single Name operand (literal or executable — PLRM
// accepts either wherever a name is expected as data, e.g. `known`).
func popName(c *interp.Context, op string) (string, error) {
	obj, err := c.Operand.Peek(op, 0)
	if err != nil {
		return "", err
	}
	v, ok := obj.(psengine.Name)
	if !ok {
		return "", psengine.NewError(op, psengine.ErrTypeCheck)
	}
	if _, err := c.Operand.Pop(op); err != nil {
		return "", err
	}
	return v.String(), nil
}

// popDict pops a single Dict operand.
func popDict(c *interp.Context, op string) (*psengine.Dict, error) {
	obj, err := c.Operand.Peek(op, 0)
	if err != nil {
		return nil, err
	}
	v, ok := obj.(*psengine.Dict)
	if !ok {
		return nil, psengine.NewError(op, psengine.ErrTypeCheck)
	}
	if _, err := c.Operand.Pop(op); err != nil {
		return nil, err
	}
	return v, nil
}

// popString pops a single String operand.
func popString(c *interp.Context, op string) (*psengine.String, error) {
	obj, err := c.Operand.Peek(op, 0)
	if err != nil {
		return nil, err
	}
	v, ok := obj.(*psengine.String)
	if !ok {
		return nil, psengine.NewError(op, psengine.ErrTypeCheck)
	}
	if _, err := c.Operand.Pop(op); err != nil {
		return nil, err
	}
	return v, nil
}

// popAny pops whatever is on top, with no type restriction (`pop`, the
// generic half of `copy`/`dup`, ...).
func popAny(c *interp.Context, op string) (psengine.Object, error) {
	return c.Operand.Pop(op)
}

// peekAny returns the operand `depth` positions from the top without
// removing it.
func peekAny(c *interp.Context, op string, depth int) (psengine.Object, error) {
	return c.Operand.Peek(op, depth)
}

// push is a one-line convenience so operator bodies read as a sequence
// of "pop inputs, push result" rather than threading c.Operand.Push
// through every return statement.
func push(c *interp.Context, op string, v psengine.Object) error {
	return c.Operand.Push(op, v)
}

// numResult returns an Integer if both inputs were integers and the
// mathematical result round-trips exactly, a Real otherwise — PLRM's
// rule that arithmetic operators "return a result of type integer if
// and only if all operands are integers and the true mathematical
// result can be represented as an integer".
func numResult(v float64, bothInt bool) psengine.Object {
	if bothInt && v == float64(int64(v)) {
		return psengine.Integer(int64(v))
	}
	return psengine.Real(v)
}
