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

package graphics

import (
	"math/big"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/psengine"
)

// precBits gives big.Float roughly 50 decimal digits of working
// precision for matrix inversion (Invert), whose results are rounded to
// 10 decimal places. Transform, DTransform and CTM composition use plain
// float64 arithmetic and do not round their results.
const precBits = 192

// hiMatrix is a 2x3 affine matrix held at precBits precision, used only
// for Invert; ordinary composition uses matrix.Matrix (float64) via
// seehuhn.de/go/geom, which the font pipeline already depends on for
// FontMatrix composition (other_examples type1-fontinfo.go,
// glyf-composite.go), and is accurate enough for every operation except
// inversion near-singular matrices.
type hiMatrix [6]*big.Float

func hiFromMatrix(m matrix.Matrix) hiMatrix {
	var h hiMatrix
	for i, v := range m {
		h[i] = new(big.Float).SetPrec(precBits).SetFloat64(v)
	}
	return h
}

func (h hiMatrix) toMatrix() matrix.Matrix {
	var m matrix.Matrix
	for i, v := range h {
		f, _ := v.Float64()
		m[i] = round10(f)
	}
	return m
}

func round10(f float64) float64 {
	// Rounds to 10 decimal places, per spec §4.4/§8.
	const scale = 1e10
	bf := new(big.Float).SetPrec(precBits).SetFloat64(f)
	bf.Mul(bf, big.NewFloat(scale))
	if bf.Sign() < 0 {
		bf.Sub(bf, big.NewFloat(0.5))
	} else {
		bf.Add(bf, big.NewFloat(0.5))
	}
	i, _ := bf.Int(nil)
	r := new(big.Float).SetPrec(precBits).SetInt(i)
	r.Quo(r, big.NewFloat(scale))
	v, _ := r.Float64()
	return v
}

// Invert computes the inverse of m at high precision, returning
// undefinedresult if the determinant's magnitude is below 1e-15 (spec
// §8, "Setting CTM with singular matrix (|det| < 1e-15) in
// invertmatrix").
func Invert(op string, m matrix.Matrix) (matrix.Matrix, error) {
	h := hiFromMatrix(m)
	a, b, c, d, e, f := h[0], h[1], h[2], h[3], h[4], h[5]

	det := new(big.Float).SetPrec(precBits)
	det.Mul(a, d)
	t := new(big.Float).SetPrec(precBits).Mul(b, c)
	det.Sub(det, t)

	detF, _ := det.Float64()
	if detF < 0 {
		detF = -detF
	}
	if detF < 1e-15 {
		return matrix.Matrix{}, psengine.NewError(op, psengine.ErrUndefinedResult)
	}

	inv := new(big.Float).SetPrec(precBits).Quo(big.NewFloat(1), det)

	ia := new(big.Float).SetPrec(precBits).Mul(d, inv)
	ib := new(big.Float).SetPrec(precBits).Mul(b, inv)
	ib.Neg(ib)
	ic := new(big.Float).SetPrec(precBits).Mul(c, inv)
	ic.Neg(ic)
	id := new(big.Float).SetPrec(precBits).Mul(a, inv)

	// ie = -(e*ia + f*ic), if = -(e*ib + f*id)
	ie := new(big.Float).SetPrec(precBits)
	t1 := new(big.Float).SetPrec(precBits).Mul(e, ia)
	t2 := new(big.Float).SetPrec(precBits).Mul(f, ic)
	ie.Add(t1, t2)
	ie.Neg(ie)

	iff := new(big.Float).SetPrec(precBits)
	t3 := new(big.Float).SetPrec(precBits).Mul(e, ib)
	t4 := new(big.Float).SetPrec(precBits).Mul(f, id)
	iff.Add(t3, t4)
	iff.Neg(iff)

	return hiMatrix{ia, ib, ic, id, ie, iff}.toMatrix(), nil
}

// Transform applies m to the point (x, y): (x*a + y*c + e, x*b + y*d + f).
func Transform(m matrix.Matrix, x, y float64) (float64, float64) {
	return x*m[0] + y*m[2] + m[4], x*m[1] + y*m[3] + m[5]
}

// DTransform applies only the linear part of m (no translation), for
// `dtransform`/`idtransform` on distances/vectors.
func DTransform(m matrix.Matrix, dx, dy float64) (float64, float64) {
	return dx*m[0] + dy*m[2], dx*m[1] + dy*m[3]
}
