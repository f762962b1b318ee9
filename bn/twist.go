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
	"github.com/jkowalsk/ecl128/fp2"
	"github.com/jkowalsk/ecl128/gfp"
)

// G2Point is a point on E'/Fp2, the sextic twist.
type G2Point = curve.Point[fp2.Element, *fp2.Element]

// G2Curve is the Fp2-coordinate sextic twist y² = x³ + b/ξ (a = 0, spec.md
// §4.7), the concrete replacement for original_source/ecl's Fp2BnCurve.
type G2Curve struct {
	*curve.Curve[fp2.Element, *fp2.Element, *fp2.Field]
	field         *fp2.Field
	gfp           *gfp.Field
	sqrtM3        *gfp.Element
	xi            *fp2.Element
	twistCofactor *fixedint.Int
	params        *params

	// Frobenius constant tables, spec.md §4.7: const_frb[0..4] = ξ^(e),
	// ξ^(2e), ξ^(3e), ξ^(4e), ξ^(5e) with e=(p-1)/6; const_sqr[0..2] built
	// from const_frb[0]·conj(const_frb[0]); const_cub[i] = const_sqr[i%3]
	// · const_frb[i]. Grounded on Fp2BnCurve::calc_frb_cst.
	constFrb [5]*fp2.Element
	constSqr [3]*fp2.Element
	constCub [5]*fp2.Element
}

func newG2Curve(def definition) (*G2Curve, error) {
	prm, err := deriveParams(def.t)
	if err != nil {
		return nil, err
	}
	gfpField, err := gfp.NewField(prm.p.Hex())
	if err != nil {
		return nil, err
	}
	field, err := fp2.New(gfpField)
	if err != nil {
		return nil, err
	}
	order, _, err := fixedint.FromHex(prm.r.Hex())
	if err != nil {
		return nil, err
	}

	negThree := gfpField.Zero().Neg(gfpField.Elem(fixedint.FromUint64(3)))
	sqrtM3, ok := gfpField.Zero().Sqrt(negThree)
	if !ok {
		return nil, fmt.Errorf("bn: %w: sqrt(-3) does not exist in this field", eclerr.ErrNotImplemented)
	}

	xi, err := field.Xi()
	if err != nil {
		return nil, err
	}

	bGfp, err := gfpField.FromString(def.b)
	if err != nil {
		return nil, err
	}
	b2 := field.Zero().Mul(field.Elem(bGfp, gfpField.Zero()), field.Zero().Invert(xi))

	a := field.Zero()
	c := curve.New[fp2.Element, *fp2.Element, *fp2.Field](field, a, b2, order)

	// twist cofactor = 2p - r (spec.md §4.7, §9 Open Question decision 1).
	twistCofactor := fixedint.Zero()
	twistCofactor.Sub(prm.p, prm.r)
	twistCofactor.Add(twistCofactor, prm.p)

	g2 := &G2Curve{
		Curve:         c,
		field:         field,
		gfp:           gfpField,
		sqrtM3:        sqrtM3,
		xi:            xi,
		twistCofactor: twistCofactor,
		params:        prm,
	}
	g2.calcFrobeniusConstants()
	return g2, nil
}

func (c *G2Curve) calcFrobeniusConstants() {
	f := c.field
	gfpField := c.gfp

	pMinus1 := fixedint.Zero()
	pMinus1.Sub(gfpField.P(), fixedint.FromUint64(1))
	e, rem := pMinus1.DivModSmall(6)
	_ = rem // p ≡ 1 mod 6 for every BN curve; exact by construction.

	c.constFrb[0] = f.Zero().Exp(c.xi, e)
	c.constFrb[1] = f.Zero().Mul(c.constFrb[0], c.constFrb[0])
	c.constFrb[2] = f.Zero().Mul(c.constFrb[1], c.constFrb[0])
	c.constFrb[3] = f.Zero().Mul(c.constFrb[1], c.constFrb[1])
	c.constFrb[4] = f.Zero().Mul(c.constFrb[3], c.constFrb[0])

	t1 := f.Zero().Conjugate(c.constFrb[0])
	c.constSqr[0] = f.Zero().Mul(t1, c.constFrb[0])
	c.constSqr[1] = f.Zero().Mul(c.constSqr[0], c.constSqr[0])
	c.constSqr[2] = f.Zero().Mul(c.constSqr[1], c.constSqr[0])

	for i := 0; i < 5; i++ {
		c.constCub[i] = f.Zero().Mul(c.constSqr[i%3], c.constFrb[i])
	}
}

// Field returns the underlying Fp2 field.
func (c *G2Curve) Field() *fp2.Field { return c.field }

// TwistCofactor returns 2p - r, the cofactor hash-to-curve clears to land
// in the order-r subgroup of the twist.
func (c *G2Curve) TwistCofactor() *fixedint.Int { return c.twistCofactor.Clone() }

// Frobenius sets res = P^(p^i), i in {1,2,3}, matching
// Fp2BnCurve::frobenius's const_frb/const_sqr/const_cub table lookups; any
// other i returns ErrNotImplemented.
func (c *G2Curve) Frobenius(p *G2Point, i int) (*G2Point, error) {
	pp := p.Clone()
	if !pp.Z.IsOne() {
		c.Curve.Normalize(pp)
	}
	f := c.field

	switch i {
	case 1:
		x := f.Zero().Frobenius(pp.X, 1)
		y := f.Zero().Frobenius(pp.Y, 1)
		x.Mul(x, c.constFrb[1])
		y.Mul(y, c.constFrb[2])
		return c.Curve.AffinePoint(x, y), nil
	case 2:
		x := f.Zero().Mul(pp.X, c.constSqr[1])
		y := f.Zero().Neg(pp.Y)
		return c.Curve.AffinePoint(x, y), nil
	case 3:
		x := f.Zero().Frobenius(pp.X, 1)
		x.Mul(x, c.constCub[1])
		y := f.Zero().Neg(pp.Y)
		y = f.Zero().Conjugate(y)
		y.Mul(y, c.constFrb[2])
		return c.Curve.AffinePoint(x, y), nil
	default:
		return nil, fmt.Errorf("bn: %w: frobenius power %d not in {1,2,3}", eclerr.ErrNotImplemented, i)
	}
}

// Hash implements spec.md §4.7's Fouque-Tibouchi hash-to-curve, lifted into
// Fp2 and finished with a twist-cofactor multiplication, deterministically
// (see G1Curve.Hash's doc comment on the dropped RNG-masked variant).
func (c *G2Curve) Hash(buf [32]byte) (*G2Point, error) {
	gfpField := c.gfp
	f := c.field
	b := c.B()

	tt := gfpField.Elem(fixedint.Zero().SetBytes(&buf))
	ttLifted := f.Elem(tt, gfpField.Zero())
	sqrtM3Lifted := f.Elem(c.sqrtM3, gfpField.Zero())

	w := f.Zero().Mul(f.One(), ttLifted)
	w.Sqr(w)
	w.Add(w, b)
	w.Add(w, f.One())
	w.Invert(w)
	w.Mul(w, ttLifted)
	w.Mul(w, sqrtM3Lifted)

	two := gfpField.Elem(fixedint.FromUint64(2))
	twoInv := gfpField.Zero().Invert(two)
	t2 := gfpField.Zero().Sub(c.sqrtM3, gfpField.One())
	t2.Mul(t2, twoInv)
	t2Lifted := f.Elem(t2, gfpField.Zero())

	x := make([]*fp2.Element, 3)
	x[0] = f.Zero().Mul(w, ttLifted)
	x[0].Neg(x[0])
	x[0].Add(x[0], t2Lifted)

	x[1] = f.Zero().Neg(f.One())
	x[1].Sub(x[1], x[0])

	x[2] = f.Zero().Sqr(w)
	x[2].Invert(x[2])
	x[2].Add(x[2], f.One())

	xb := make([]*fp2.Element, 3)
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

	p := c.Curve.AffinePoint(x[idx], y)
	return c.Curve.Mul(p, c.twistCofactor), nil
}
