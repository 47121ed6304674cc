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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/psengine"
	"seehuhn.de/go/psengine/graphics"
	"seehuhn.de/go/psengine/interp"
)

func registerMatrix(b builder) {
	b.op("matrix", opMatrix)
	b.op("identmatrix", opIdentmatrix)
	b.op("concat", opConcat)
	b.op("concatmatrix", opConcatmatrix)
	b.op("translate", opTranslate)
	b.op("scale", opScale)
	b.op("rotate", opRotate)
	b.op("transform", opTransform)
	b.op("itransform", opItransform)
	b.op("dtransform", opDtransform)
	b.op("idtransform", opIdtransform)
	b.op("invertmatrix", opInvertmatrix)
	b.op("currentmatrix", opCurrentmatrix)
	b.op("setmatrix", opSetmatrix)
	b.op("defaultmatrix", opDefaultmatrix)
}

// matrixFromArray reads a 6-element numeric array as a matrix.Matrix
// (PLRM §8's matrix operand convention: [a b c d e f]).
func matrixFromArray(op string, arr *psengine.Array) (matrix.Matrix, error) {
	if arr.Length != 6 {
		return matrix.Matrix{}, psengine.NewError(op, psengine.ErrRangeCheck)
	}
	var m matrix.Matrix
	for i, v := range arr.Items() {
		switch n := v.(type) {
		case psengine.Integer:
			m[i] = float64(n)
		case psengine.Real:
			m[i] = float64(n)
		default:
			return matrix.Matrix{}, psengine.NewError(op, psengine.ErrTypeCheck)
		}
	}
	return m, nil
}

// storeMatrix writes m's six components into arr in place (the PLRM
// convention of writing results into a caller-supplied matrix operand
// rather than allocating a new one).
func storeMatrix(c *interp.Context, arr *psengine.Array, m matrix.Matrix) {
	c.VM.CowArray(arr)
	items := arr.Items()
	for i, v := range m {
		items[i] = psengine.Real(v)
	}
}

func opMatrix(c *interp.Context) error {
	items := make([]psengine.Object, 6)
	id := matrix.Matrix{1, 0, 0, 1, 0, 0}
	for i, v := range id {
		items[i] = psengine.Real(v)
	}
	return push(c, "matrix", c.VM.NewArray(items, psengine.AccessUnlimited, psengine.AttrLiteral))
}

// opIdentmatrix implements `matrix identmatrix matrix`: overwrite the
// given matrix operand with the identity matrix.
func opIdentmatrix(c *interp.Context) error {
	top, err := peekAny(c, "identmatrix", 0)
	if err != nil {
		return err
	}
	arr, ok := top.(*psengine.Array)
	if !ok || arr.Length != 6 {
		return psengine.NewError("identmatrix", psengine.ErrTypeCheck)
	}
	storeMatrix(c, arr, matrix.Matrix{1, 0, 0, 1, 0, 0})
	return nil
}

// opConcat implements `matrix concat -`: CTM := matrix x CTM (PLRM §8).
func opConcat(c *interp.Context) error {
	arr, err := popArrayMatrix(c, "concat")
	if err != nil {
		return err
	}
	c.Graphics.Current.CTM = arr.Mul(c.Graphics.Current.CTM)
	c.Graphics.Current.Touch(graphics.StateCTM)
	return nil
}

func popArrayMatrix(c *interp.Context, op string) (matrix.Matrix, error) {
	top, err := peekAny(c, op, 0)
	if err != nil {
		return matrix.Matrix{}, err
	}
	arr, ok := top.(*psengine.Array)
	if !ok {
		return matrix.Matrix{}, psengine.NewError(op, psengine.ErrTypeCheck)
	}
	m, err := matrixFromArray(op, arr)
	if err != nil {
		return matrix.Matrix{}, err
	}
	if _, err := c.Operand.Pop(op); err != nil {
		return matrix.Matrix{}, err
	}
	return m, nil
}

// opConcatmatrix implements `matrix1 matrix2 matrix3 concatmatrix
// matrix3`: matrix3 := matrix1 x matrix2 (PLRM §8).
func opConcatmatrix(c *interp.Context) error {
	m3obj, err := peekAny(c, "concatmatrix", 0)
	if err != nil {
		return err
	}
	m3, ok := m3obj.(*psengine.Array)
	if !ok || m3.Length != 6 {
		return psengine.NewError("concatmatrix", psengine.ErrTypeCheck)
	}
	m2obj, err := peekAny(c, "concatmatrix", 1)
	if err != nil {
		return err
	}
	m2arr, ok := m2obj.(*psengine.Array)
	if !ok {
		return psengine.NewError("concatmatrix", psengine.ErrTypeCheck)
	}
	m2, err := matrixFromArray("concatmatrix", m2arr)
	if err != nil {
		return err
	}
	m1obj, err := peekAny(c, "concatmatrix", 2)
	if err != nil {
		return err
	}
	m1arr, ok := m1obj.(*psengine.Array)
	if !ok {
		return psengine.NewError("concatmatrix", psengine.ErrTypeCheck)
	}
	m1, err := matrixFromArray("concatmatrix", m1arr)
	if err != nil {
		return err
	}
	result := m1.Mul(m2)
	popN(c, "concatmatrix", 3)
	storeMatrix(c, m3, result)
	return push(c, "concatmatrix", m3)
}

// translateMatrix/scaleMatrix/rotateMatrix build the elementary matrices
// (PLRM §4.3.4) the procedure forms of translate/scale/rotate compose
// with the CTM.
func translateMatrix(tx, ty float64) matrix.Matrix { return matrix.Matrix{1, 0, 0, 1, tx, ty} }
func scaleMatrix(sx, sy float64) matrix.Matrix      { return matrix.Matrix{sx, 0, 0, sy, 0, 0} }
func rotateMatrix(deg float64) matrix.Matrix {
	rad := deg * math.Pi / 180
	s, co := math.Sin(rad), math.Cos(rad)
	return matrix.Matrix{co, s, -s, co, 0, 0}
}

// opTranslate implements both the procedure form `tx ty translate` (CTM
// := translate x CTM) and the explicit-matrix form `tx ty matrix
// translate matrix` depending on whether a matrix operand follows the
// two numbers (PLRM §8).
func opTranslate(c *interp.Context) error {
	return applyElementary(c, "translate", translateMatrix)
}

func opScale(c *interp.Context) error {
	return applyElementary(c, "scale", scaleMatrix)
}

// opRotate implements `angle rotate` / `angle matrix rotate matrix`.
func opRotate(c *interp.Context) error {
	top, err := peekAny(c, "rotate", 0)
	if err != nil {
		return err
	}
	if arr, ok := top.(*psengine.Array); ok {
		if arr.Length != 6 {
			return psengine.NewError("rotate", psengine.ErrTypeCheck)
		}
		if _, err := c.Operand.Pop("rotate"); err != nil {
			return err
		}
		angle, _, err := popNum(c, "rotate")
		if err != nil {
			return err
		}
		storeMatrix(c, arr, rotateMatrix(angle))
		return push(c, "rotate", arr)
	}
	angle, _, err := popNum(c, "rotate")
	if err != nil {
		return err
	}
	c.Graphics.Current.CTM = rotateMatrix(angle).Mul(c.Graphics.Current.CTM)
	c.Graphics.Current.Touch(graphics.StateCTM)
	return nil
}

// applyElementary implements the shared two-number (tx,ty / sx,sy)
// translate/scale dispatch: with a trailing matrix operand, write the
// elementary matrix into it; otherwise compose it into the CTM.
func applyElementary(c *interp.Context, op string, build func(a, b float64) matrix.Matrix) error {
	top, err := peekAny(c, op, 0)
	if err != nil {
		return err
	}
	if arr, ok := top.(*psengine.Array); ok {
		if arr.Length != 6 {
			return psengine.NewError(op, psengine.ErrTypeCheck)
		}
		if _, err := c.Operand.Pop(op); err != nil {
			return err
		}
		b, _, err := popNum(c, op)
		if err != nil {
			return err
		}
		a, _, err := popNum(c, op)
		if err != nil {
			return err
		}
		storeMatrix(c, arr, build(a, b))
		return push(c, op, arr)
	}
	b, _, err := popNum(c, op)
	if err != nil {
		return err
	}
	a, _, err := popNum(c, op)
	if err != nil {
		return err
	}
	c.Graphics.Current.CTM = build(a, b).Mul(c.Graphics.Current.CTM)
	c.Graphics.Current.Touch(graphics.StateCTM)
	return nil
}

// opTransform implements `x y transform x' y'` and `x y matrix transform
// x' y'` (PLRM §8): map a user-space point through matrix (or the CTM).
func opTransform(c *interp.Context) error {
	return applyTransform(c, "transform", graphics.Transform)
}

func opDtransform(c *interp.Context) error {
	return applyTransform(c, "dtransform", graphics.DTransform)
}

func applyTransform(c *interp.Context, op string, fn func(m matrix.Matrix, x, y float64) (float64, float64)) error {
	m := c.Graphics.Current.CTM
	top, err := peekAny(c, op, 0)
	if err != nil {
		return err
	}
	if arr, ok := top.(*psengine.Array); ok {
		m, err = matrixFromArray(op, arr)
		if err != nil {
			return err
		}
		if _, err := c.Operand.Pop(op); err != nil {
			return err
		}
	}
	y, _, err := popNum(c, op)
	if err != nil {
		return err
	}
	x, _, err := popNum(c, op)
	if err != nil {
		return err
	}
	nx, ny := fn(m, x, y)
	if err := push(c, op, psengine.Real(nx)); err != nil {
		return err
	}
	return push(c, op, psengine.Real(ny))
}

// opItransform/opIdtransform invert matrix (or the CTM) before applying
// it (PLRM §8).
func opItransform(c *interp.Context) error {
	return applyInverseTransform(c, "itransform", graphics.Transform)
}

func opIdtransform(c *interp.Context) error {
	return applyInverseTransform(c, "idtransform", graphics.DTransform)
}

func applyInverseTransform(c *interp.Context, op string, fn func(m matrix.Matrix, x, y float64) (float64, float64)) error {
	m := c.Graphics.Current.CTM
	top, err := peekAny(c, op, 0)
	if err != nil {
		return err
	}
	if arr, ok := top.(*psengine.Array); ok {
		m, err = matrixFromArray(op, arr)
		if err != nil {
			return err
		}
		if _, err := c.Operand.Pop(op); err != nil {
			return err
		}
	}
	inv, err := graphics.Invert(op, m)
	if err != nil {
		return err
	}
	y, _, err := popNum(c, op)
	if err != nil {
		return err
	}
	x, _, err := popNum(c, op)
	if err != nil {
		return err
	}
	nx, ny := fn(inv, x, y)
	if err := push(c, op, psengine.Real(nx)); err != nil {
		return err
	}
	return push(c, op, psengine.Real(ny))
}

// opInvertmatrix implements `matrix1 matrix2 invertmatrix matrix2`.
func opInvertmatrix(c *interp.Context) error {
	m2obj, err := peekAny(c, "invertmatrix", 0)
	if err != nil {
		return err
	}
	m2, ok := m2obj.(*psengine.Array)
	if !ok || m2.Length != 6 {
		return psengine.NewError("invertmatrix", psengine.ErrTypeCheck)
	}
	m1obj, err := peekAny(c, "invertmatrix", 1)
	if err != nil {
		return err
	}
	m1arr, ok := m1obj.(*psengine.Array)
	if !ok {
		return psengine.NewError("invertmatrix", psengine.ErrTypeCheck)
	}
	m1, err := matrixFromArray("invertmatrix", m1arr)
	if err != nil {
		return err
	}
	inv, err := graphics.Invert("invertmatrix", m1)
	if err != nil {
		return err
	}
	popN(c, "invertmatrix", 2)
	storeMatrix(c, m2, inv)
	return push(c, "invertmatrix", m2)
}

func opCurrentmatrix(c *interp.Context) error {
	top, err := peekAny(c, "currentmatrix", 0)
	if err != nil {
		return err
	}
	arr, ok := top.(*psengine.Array)
	if !ok || arr.Length != 6 {
		return psengine.NewError("currentmatrix", psengine.ErrTypeCheck)
	}
	storeMatrix(c, arr, c.Graphics.Current.CTM)
	return nil
}

func opSetmatrix(c *interp.Context) error {
	m, err := popArrayMatrix(c, "setmatrix")
	if err != nil {
		return err
	}
	c.Graphics.Current.CTM = m
	c.Graphics.Current.Touch(graphics.StateCTM)
	return nil
}

// opDefaultmatrix implements `matrix defaultmatrix matrix`: the device's
// initial CTM, which this core (device-agnostic until a Device is
// attached) always reports as identity.
func opDefaultmatrix(c *interp.Context) error {
	top, err := peekAny(c, "defaultmatrix", 0)
	if err != nil {
		return err
	}
	arr, ok := top.(*psengine.Array)
	if !ok || arr.Length != 6 {
		return psengine.NewError("defaultmatrix", psengine.ErrTypeCheck)
	}
	storeMatrix(c, arr, matrix.Matrix{1, 0, 0, 1, 0, 0})
	return nil
}
