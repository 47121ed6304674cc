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
	"math"

	"seehuhn.de/go/psengine"
	"seehuhn.de/go/psengine/interp"
)

func registerArith(b builder) {
	b.op("add", opAdd)
	b.op("sub", opSub)
	b.op("mul", opMul)
	b.op("div", opDiv)
	b.op("idiv", opIdiv)
	b.op("mod", opMod)
	b.op("neg", opNeg)
	b.op("abs", opAbs)
	b.op("ceiling", opCeiling)
	b.op("floor", opFloor)
	b.op("round", opRound)
	b.op("truncate", opTruncate)
	b.op("sqrt", opSqrt)
	b.op("sin", opSin)
	b.op("cos", opCos)
	b.op("atan", opAtan)
	b.op("exp", opExp)
	b.op("ln", opLn)
	b.op("log", opLog)
	b.op("cvi", opCvi)
	b.op("cvr", opCvr)

	b.op("eq", opEq)
	b.op("ne", opNe)
	b.op("gt", opGt)
	b.op("ge", opGe)
	b.op("lt", opLt)
	b.op("le", opLe)
	b.op("and", opAnd)
	b.op("or", opOr)
	b.op("not", opNot)
	b.op("xor", opXor)
	b.op("bitshift", opBitshift)
}

func binaryNum(c *interp.Context, op string, fn func(a, b float64, bothInt bool) psengine.Object) error {
	vals, isInt, err := numArgs(c, op, 2)
	if err != nil {
		return err
	}
	return push(c, op, fn(vals[0], vals[1], isInt[0] && isInt[1]))
}

func opAdd(c *interp.Context) error {
	return binaryNum(c, "add", func(a, b float64, bothInt bool) psengine.Object {
		return numResult(a+b, bothInt)
	})
}

func opSub(c *interp.Context) error {
	return binaryNum(c, "sub", func(a, b float64, bothInt bool) psengine.Object {
		return numResult(a-b, bothInt)
	})
}

func opMul(c *interp.Context) error {
	return binaryNum(c, "mul", func(a, b float64, bothInt bool) psengine.Object {
		return numResult(a*b, bothInt)
	})
}

// opDiv implements `div`, which always returns a real (PLRM §8).
func opDiv(c *interp.Context) error {
	vals, _, err := numArgs(c, "div", 2)
	if err != nil {
		return err
	}
	if vals[1] == 0 {
		return psengine.NewError("div", psengine.ErrUndefinedResult)
	}
	return push(c, "div", psengine.Real(vals[0]/vals[1]))
}

func opIdiv(c *interp.Context) error {
	a, err := popInt(c, "idiv")
	if err != nil {
		return err
	}
	bv, err := popInt(c, "idiv")
	if err != nil {
		return err
	}
	if bv == 0 {
		return psengine.NewError("idiv", psengine.ErrUndefinedResult)
	}
	return push(c, "idiv", psengine.Integer(a/bv))
}

// opMod implements `mod`, integer remainder with the sign of the
// dividend (PLRM §8, matching Go's % for integers).
func opMod(c *interp.Context) error {
	bv, err := popInt(c, "mod")
	if err != nil {
		return err
	}
	a, err := popInt(c, "mod")
	if err != nil {
		return err
	}
	if bv == 0 {
		return psengine.NewError("mod", psengine.ErrUndefinedResult)
	}
	return push(c, "mod", psengine.Integer(a%bv))
}

func unaryNum(c *interp.Context, op string, fn func(a float64, wasInt bool) psengine.Object) error {
	a, wasInt, err := popNum(c, op)
	if err != nil {
		return err
	}
	return push(c, op, fn(a, wasInt))
}

func opNeg(c *interp.Context) error {
	return unaryNum(c, "neg", func(a float64, wasInt bool) psengine.Object {
		return numResult(-a, wasInt)
	})
}

func opAbs(c *interp.Context) error {
	return unaryNum(c, "abs", func(a float64, wasInt bool) psengine.Object {
		return numResult(math.Abs(a), wasInt)
	})
}

func opCeiling(c *interp.Context) error {
	return unaryNum(c, "ceiling", func(a float64, wasInt bool) psengine.Object {
		return numResult(math.Ceil(a), wasInt)
	})
}

func opFloor(c *interp.Context) error {
	return unaryNum(c, "floor", func(a float64, wasInt bool) psengine.Object {
		return numResult(math.Floor(a), wasInt)
	})
}

func opRound(c *interp.Context) error {
	return unaryNum(c, "round", func(a float64, wasInt bool) psengine.Object {
		return numResult(math.Floor(a+0.5), wasInt)
	})
}

func opTruncate(c *interp.Context) error {
	return unaryNum(c, "truncate", func(a float64, wasInt bool) psengine.Object {
		return numResult(math.Trunc(a), wasInt)
	})
}

// opSqrt implements `sqrt`, always a real and rangecheck for a negative
// argument (PLRM §8).
func opSqrt(c *interp.Context) error {
	a, _, err := popNum(c, "sqrt")
	if err != nil {
		return err
	}
	if a < 0 {
		return psengine.NewError("sqrt", psengine.ErrRangeCheck)
	}
	return push(c, "sqrt", psengine.Real(math.Sqrt(a)))
}

// opSin/opCos take degrees, per PLRM.
func opSin(c *interp.Context) error {
	a, _, err := popNum(c, "sin")
	if err != nil {
		return err
	}
	return push(c, "sin", psengine.Real(math.Sin(a*math.Pi/180)))
}

func opCos(c *interp.Context) error {
	a, _, err := popNum(c, "cos")
	if err != nil {
		return err
	}
	return push(c, "cos", psengine.Real(math.Cos(a*math.Pi/180)))
}

// opAtan implements `num den atan`, result in degrees in [0, 360).
func opAtan(c *interp.Context) error {
	vals, _, err := numArgs(c, "atan", 2)
	if err != nil {
		return err
	}
	num, den := vals[0], vals[1]
	if num == 0 && den == 0 {
		return psengine.NewError("atan", psengine.ErrUndefinedResult)
	}
	deg := math.Atan2(num, den) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return push(c, "atan", psengine.Real(deg))
}

func opExp(c *interp.Context) error {
	vals, _, err := numArgs(c, "exp", 2)
	if err != nil {
		return err
	}
	return push(c, "exp", psengine.Real(math.Pow(vals[0], vals[1])))
}

func opLn(c *interp.Context) error {
	a, _, err := popNum(c, "ln")
	if err != nil {
		return err
	}
	if a <= 0 {
		return psengine.NewError("ln", psengine.ErrRangeCheck)
	}
	return push(c, "ln", psengine.Real(math.Log(a)))
}

func opLog(c *interp.Context) error {
	a, _, err := popNum(c, "log")
	if err != nil {
		return err
	}
	if a <= 0 {
		return psengine.NewError("log", psengine.ErrRangeCheck)
	}
	return push(c, "log", psengine.Real(math.Log10(a)))
}

// opCvi implements `cvi` on a number (the string-argument form lives in
// registerString alongside the other string-parsing operators).
func opCvi(c *interp.Context) error {
	top, err := peekAny(c, "cvi", 0)
	if err != nil {
		return err
	}
	if _, ok := top.(*psengine.String); ok {
		return cviString(c)
	}
	a, _, err := popNum(c, "cvi")
	if err != nil {
		return err
	}
	return push(c, "cvi", psengine.Integer(math.Trunc(a)))
}

// opCvr implements `cvr` on a number; the string form is cvrString.
func opCvr(c *interp.Context) error {
	top, err := peekAny(c, "cvr", 0)
	if err != nil {
		return err
	}
	if _, ok := top.(*psengine.String); ok {
		return cvrString(c)
	}
	a, _, err := popNum(c, "cvr")
	if err != nil {
		return err
	}
	return push(c, "cvr", psengine.Real(a))
}

// opEq/opNe compare any two objects for equality (PLRM §8, "eq"): numbers
// compare by value across Integer/Real, strings by contents, everything
// else by identity/attribute-insensitive value equality.
func opEq(c *interp.Context) error {
	b, err := popAny(c, "eq")
	if err != nil {
		return err
	}
	a, err := popAny(c, "eq")
	if err != nil {
		return err
	}
	return push(c, "eq", psengine.Boolean(objectsEqual(a, b)))
}

func opNe(c *interp.Context) error {
	b, err := popAny(c, "ne")
	if err != nil {
		return err
	}
	a, err := popAny(c, "ne")
	if err != nil {
		return err
	}
	return push(c, "ne", psengine.Boolean(!objectsEqual(a, b)))
}

func objectsEqual(a, b psengine.Object) bool {
	an, aIsNum := asNumber(a)
	bn, bIsNum := asNumber(b)
	if aIsNum && bIsNum {
		return an == bn
	}
	switch av := a.(type) {
	case psengine.Boolean:
		bv, ok := b.(psengine.Boolean)
		return ok && av == bv
	case psengine.Null:
		_, ok := b.(psengine.Null)
		return ok
	case psengine.Name:
		bv, ok := b.(psengine.Name)
		return ok && av.String() == bv.String()
	case *psengine.String:
		bv, ok := b.(*psengine.String)
		return ok && string(av.Bytes()) == string(bv.Bytes())
	default:
		return a == b
	}
}

func asNumber(o psengine.Object) (float64, bool) {
	switch v := o.(type) {
	case psengine.Integer:
		return float64(v), true
	case psengine.Real:
		return float64(v), true
	default:
		return 0, false
	}
}

// relCompare implements the shared body of gt/ge/lt/le: numbers compare
// by value, strings compare lexicographically by byte value (PLRM §8).
func relCompare(c *interp.Context, op string) (int, error) {
	b, err := popAny(c, op)
	if err != nil {
		return 0, err
	}
	a, err := popAny(c, op)
	if err != nil {
		return 0, err
	}
	if an, ok := asNumber(a); ok {
		bn, ok := asNumber(b)
		if !ok {
			return 0, psengine.NewError(op, psengine.ErrTypeCheck)
		}
		switch {
		case an < bn:
			return -1, nil
		case an > bn:
			return 1, nil
		default:
			return 0, nil
		}
	}
	as, ok := a.(*psengine.String)
	if !ok {
		return 0, psengine.NewError(op, psengine.ErrTypeCheck)
	}
	bs, ok := b.(*psengine.String)
	if !ok {
		return 0, psengine.NewError(op, psengine.ErrTypeCheck)
	}
	switch sa, sb := string(as.Bytes()), string(bs.Bytes()); {
	case sa < sb:
		return -1, nil
	case sa > sb:
		return 1, nil
	default:
		return 0, nil
	}
}

func opGt(c *interp.Context) error {
	n, err := relCompare(c, "gt")
	if err != nil {
		return err
	}
	return push(c, "gt", psengine.Boolean(n > 0))
}

func opGe(c *interp.Context) error {
	n, err := relCompare(c, "ge")
	if err != nil {
		return err
	}
	return push(c, "ge", psengine.Boolean(n >= 0))
}

func opLt(c *interp.Context) error {
	n, err := relCompare(c, "lt")
	if err != nil {
		return err
	}
	return push(c, "lt", psengine.Boolean(n < 0))
}

func opLe(c *interp.Context) error {
	n, err := relCompare(c, "le")
	if err != nil {
		return err
	}
	return push(c, "le", psengine.Boolean(n <= 0))
}

// boolOrInt implements the dual boolean/integer (bitwise) overload shared
// by and/or/xor (PLRM §8).
func boolOrInt(c *interp.Context, op string, boolFn func(a, b bool) bool, intFn func(a, b int64) int64) error {
	bTop, err := peekAny(c, op, 0)
	if err != nil {
		return err
	}
	if _, ok := bTop.(psengine.Boolean); ok {
		bv, err := popBool(c, op)
		if err != nil {
			return err
		}
		av, err := popBool(c, op)
		if err != nil {
			return err
		}
		return push(c, op, psengine.Boolean(boolFn(av, bv)))
	}
	bv, err := popInt(c, op)
	if err != nil {
		return err
	}
	av, err := popInt(c, op)
	if err != nil {
		return err
	}
	return push(c, op, psengine.Integer(intFn(int64(av), int64(bv))))
}

func opAnd(c *interp.Context) error {
	return boolOrInt(c, "and",
		func(a, b bool) bool { return a && b },
		func(a, b int64) int64 { return a & b })
}

func opOr(c *interp.Context) error {
	return boolOrInt(c, "or",
		func(a, b bool) bool { return a || b },
		func(a, b int64) int64 { return a | b })
}

func opXor(c *interp.Context) error {
	return boolOrInt(c, "xor",
		func(a, b bool) bool { return a != b },
		func(a, b int64) int64 { return a ^ b })
}

func opNot(c *interp.Context) error {
	top, err := peekAny(c, "not", 0)
	if err != nil {
		return err
	}
	if _, ok := top.(psengine.Boolean); ok {
		v, err := popBool(c, "not")
		if err != nil {
			return err
		}
		return push(c, "not", psengine.Boolean(!v))
	}
	v, err := popInt(c, "not")
	if err != nil {
		return err
	}
	return push(c, "not", psengine.Integer(^int64(v)))
}

// opBitshift implements `int shift bitshift`: left shift for positive
// shift, right shift for negative (PLRM §8).
func opBitshift(c *interp.Context) error {
	shift, err := popInt(c, "bitshift")
	if err != nil {
		return err
	}
	v, err := popInt(c, "bitshift")
	if err != nil {
		return err
	}
	if shift >= 0 {
		return push(c, "bitshift", psengine.Integer(int64(v)<<uint(shift)))
	}
	return push(c, "bitshift", psengine.Integer(int64(v)>>uint(-shift)))
}
