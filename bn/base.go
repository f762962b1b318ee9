// Copyright 2024 The ecl128 Authors
// This file is part of ecl128.
//
// ecl128 is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ecl128 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with ecl128. If not, see <http://www.gnu.org/licenses/>.

package bn

import (
	"fmt"

	"github.com/jkowalsk/ecl128/curve"
	"github.com/jkowalsk/ecl128/eclerr"
	"github.com/jkowalsk/ecl128/fixedint"
	"github.com/jkowalsk/ecl128/gfp"
)

// G1Point is a point on E/Fp, the base (non-twisted) BN curve.
type G1Point = curve.Point[gfp.Element, *gfp.Element]

// G1Curve is the GFp-coordinate BN curve y² = x³ + b (a = 0 always, spec.md
// §4.7), the concrete replacement for original_source/ecl's GFpBnCurve.
type G1Curve struct {
	*curve.Curve[gfp.Element, *gfp.Element, *gfp.Field]
	field  *gfp.Field
	sqrtM3 *gfp.Element
	params *params
}

func newG1Curve(def definition) (*G1Curve, error) {
	prm, err := deriveParams(def.t)
	if err != nil {
		return nil, err
	}
	field, err := gfp.NewField(prm.p.Hex())
	if err != nil {
		return nil, err
	}
	order, _, err := fixedint.FromHex(prm.r.Hex())
	if err != nil {
		return nil, err
	}

	negThree := field.Zero().Neg(field.Elem(fixedint.FromUint64(3)))
	sqrtM3, ok := field.Zero().Sqrt(negThree)
	if !ok {
		return nil, fmt.Errorf("bn: %w: sqrt(-3) does not exist in this field", eclerr.ErrNotImplemented)
	}

	a := field.Zero()
	b, err := field.FromString(def.b)
	if err != nil {
		return nil, err
	}

	c := curve.New[gfp.Element, *gfp.Element, *gfp.Field](field, a, b, order)
	return &G1Curve{Curve: c, field: field, sqrtM3: sqrtM3, params: prm}, nil
}

// Field returns the underlying prime field.
func (c *G1Curve) Field() *gfp.Field { return c.field }

// Frobenius sets res = P^p = P: the p-power map on E/Fp is the identity,
// since every coordinate already lives in Fp (Fermat), matching
// GFpBnCurve::frobenius.
func (c *G1Curve) Frobenius(p *G1Point, _ int) *G1Point { return p.Clone() }

// Compress/Decompress reuse package curve's gfp-only instantiation directly
// (original_source/ecl's GFpBnCurve::compress/decompress are themselves
// identical to GFpCurve's, inherited unchanged from FpnCurve<GFp>).
func (c *G1Curve) Compress(p *G1Point) (*fixedint.Int, int) {
	return curve.Compress(c.Curve, p)
}

func (c *G1Curve) Decompress(x *fixedint.Int, yBit int) (*G1Point, error) {
	return curve.Decompress(c.Curve, x, yBit)
}

// Hash implements spec.md §4.7's Fouque-Tibouchi hash-to-curve over Fp,
// deterministically (the optional RNG-masked variant of
// BnCurve<Basefield>::hash, used only to blind which of the three x
// candidates succeeded against side-channel observation, is not carried —
// see DESIGN.md).
func (c *G1Curve) Hash(buf [32]byte) (*G1Point, error) {
	f := c.field
	tt := f.Elem(fixedint.Zero().SetBytes(&buf))
	b := c.B()

	w := f.Zero().Mul(f.One(), tt)
	w.Sqr(w)
	w.Add(w, b)
	w.Add(w, f.One())
	w.Invert(w)
	w.Mul(w, tt)
	w.Mul(w, c.sqrtM3)

	two := f.Elem(fixedint.FromUint64(2))
	twoInv := f.Zero().Invert(two)
	t2 := f.Zero().Sub(c.sqrtM3, f.One())
	t2.Mul(t2, twoInv)

	x := make([]*gfp.Element, 3)
	x[0] = f.Zero().Mul(w, tt)
	x[0].Neg(x[0])
	x[0].Add(x[0], t2)

	x[1] = f.Zero().Neg(f.One())
	x[1].Sub(x[1], x[0])

	x[2] = f.Zero().Sqr(w)
	x[2].Invert(x[2])
	x[2].Add(x[2], f.One())

	xb := make([]*gfp.Element, 3)
	for i := range x {
		xb[i] = f.Zero().Sqr(x[i])
		xb[i].Mul(xb[i], x[i])
		xb[i].Add(xb[i], b)
	}

	alpha := xb[0].Legendre()
	beta := xb[1].Legendre()
	idx := (((alpha-1)*beta)%3 + 3) % 3

	sign := tt.Legendre()
	y, ok := f.Zero().Sqrt(xb[idx])
	if !ok {
		return nil, fmt.Errorf("bn: %w: hash-to-curve candidate is a non-residue", eclerr.ErrNotSquare)
	}
	if sign < 0 {
		y.Neg(y)
	}

	return c.Curve.AffinePoint(x[idx], y), nil
}
