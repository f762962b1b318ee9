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

// Package fp12 implements spec.md §4.5: the quadratic tower extension
// Fp12 = Fp6[w]/(w²-γ), γ = v, Fp6's generator (so w² = v, v³ = ξ, with ξ
// the non-residue that defines Fp6 over Fp2: Fp12 is the degree-12
// extension BN pairings target).
package fp12

import (
	"fmt"

	"github.com/jkowalsk/ecl128/eclerr"
	"github.com/jkowalsk/ecl128/fixedint"
	"github.com/jkowalsk/ecl128/fp2"
	"github.com/jkowalsk/ecl128/fp6"
)

// FrobeniusGammas holds the 5 precomputed Fp2 Frobenius coefficients for a
// single power i in {1,2,3} (spec.md §4.5), in the order original_source/
// ecl's fp12_mul.cpp applies them: gammas[0] scales h0 (a1's v⁰
// coefficient), gammas[1] scales g1 (a0's v¹), gammas[2] scales h1 (a1's
// v¹), gammas[3] scales g2 (a0's v²), gammas[4] scales h2 (a1's v²).
type FrobeniusGammas [5]*fp2.Element

// Field owns the Fp6 base field. w² reduces to v (fp6's generator), which
// is why Fp12 carries no extra non-residue of its own: Fp6's ξ already
// supplies it (w^6 = v³ = xi, matching the tower as built by
// original_source/ecl's Fp12, "Fp12 = Fp6[w]/(w²-gamma)" with gamma = v).
//
// The 3 Frobenius coefficient tables (one per power i=1,2,3) are derived
// once here, the way spec.md §4.5 describes: γ1 = ξ^((p-1)/6) by
// exponentiation, then γ2 = γ1·γ1^p = γ1·conj(γ1) and γ3 = γ1·γ2 by plain
// Fp2 products (since γ1^(p²+p+1) = γ1²·conj(γ1) = γ1·γ2), avoiding any
// exponent wider than the base field.
type Field struct {
	base   *fp6.Field
	gammas [3]FrobeniusGammas
}

// New builds Fp12 over base. base's characteristic must be ≡1 mod 6 (every
// BN curve's base field satisfies this; it is what makes ξ both a
// quadratic and cubic non-residue candidate in the first place).
func New(base *fp6.Field) (*Field, error) {
	fp2f := base.Base()
	exp := fp2f.Base().P()
	exp.Sub(exp, fixedint.FromUint64(1))
	exp, rem := exp.DivModSmall(6)
	if rem != 0 {
		return nil, fmt.Errorf("fp12: %w: characteristic not congruent to 1 mod 6", eclerr.ErrInvalidValue)
	}

	xi := base.Xi()
	gamma1 := fp2f.Zero().Exp(xi, exp)
	gamma2 := fp2f.Zero().Mul(gamma1, fp2f.Zero().Conjugate(gamma1))
	gamma3 := fp2f.Zero().Mul(gamma1, gamma2)

	powers := func(g *fp2.Element) FrobeniusGammas {
		g2 := fp2f.Zero().Mul(g, g)
		g3 := fp2f.Zero().Mul(g2, g)
		g4 := fp2f.Zero().Mul(g3, g)
		g5 := fp2f.Zero().Mul(g4, g)
		return FrobeniusGammas{g, g2, g3, g4, g5}
	}

	return &Field{base: base, gammas: [3]FrobeniusGammas{powers(gamma1), powers(gamma2), powers(gamma3)}}, nil
}

// Base returns the underlying Fp6 field.
func (f *Field) Base() *fp6.Field { return f.base }

// Element is a0 + a1*w, a0, a1 in Fp6.
type Element struct {
	f      *Field
	a0, a1 *fp6.Element
}

// Zero returns the additive identity.
func (f *Field) Zero() *Element { return &Element{f: f, a0: f.base.Zero(), a1: f.base.Zero()} }

// One returns the multiplicative identity.
func (f *Field) One() *Element { return &Element{f: f, a0: f.base.One(), a1: f.base.Zero()} }

// Elem builds a0 + a1*w from Fp6 elements.
func (f *Field) Elem(a0, a1 *fp6.Element) *Element { return &Element{f: f, a0: a0, a1: a1} }

// A0 returns the degree-0 component.
func (x *Element) A0() *fp6.Element { return x.a0 }

// A1 returns the degree-1 (w) component.
func (x *Element) A1() *fp6.Element { return x.a1 }

// Field returns the Fp12 field x belongs to.
func (x *Element) Field() *Field { return x.f }

// Clone returns a fresh copy of x.
func (x *Element) Clone() *Element { return &Element{f: x.f, a0: x.a0.Clone(), a1: x.a1.Clone()} }

// IsZero reports whether x is the additive identity.
func (x *Element) IsZero() bool { return x.a0.IsZero() && x.a1.IsZero() }

// IsOne reports whether x is the multiplicative identity.
func (x *Element) IsOne() bool { return x.a0.IsOne() && x.a1.IsZero() }

// Eq reports whether x and y hold the same value.
func (x *Element) Eq(y *Element) bool { return x.a0.Eq(y.a0) && x.a1.Eq(y.a1) }

// Zero6 is a convenience shortcut to the Fp6 zero element of f's base field.
func (f *Field) Zero6() *fp6.Element { return f.base.Zero() }

// Add sets z = x+y and returns z.
func (z *Element) Add(x, y *Element) *Element {
	a0 := x.f.Zero6().Add(x.a0, y.a0)
	a1 := x.f.Zero6().Add(x.a1, y.a1)
	z.f, z.a0, z.a1 = x.f, a0, a1
	return z
}

// Sub sets z = x-y and returns z.
func (z *Element) Sub(x, y *Element) *Element {
	a0 := x.f.Zero6().Sub(x.a0, y.a0)
	a1 := x.f.Zero6().Sub(x.a1, y.a1)
	z.f, z.a0, z.a1 = x.f, a0, a1
	return z
}

// Neg sets z = -x and returns z.
func (z *Element) Neg(x *Element) *Element {
	a0 := x.f.Zero6().Neg(x.a0)
	a1 := x.f.Zero6().Neg(x.a1)
	z.f, z.a0, z.a1 = x.f, a0, a1
	return z
}

// Conjugate sets z = a0 - a1*w and returns z: the order-2 automorphism used
// by the easy part of the final exponentiation (x^(p^6-1) acts this way on
// the cyclotomic subgroup).
func (z *Element) Conjugate(x *Element) *Element {
	a1 := x.f.Zero6().Neg(x.a1)
	z.f, z.a0, z.a1 = x.f, x.a0.Clone(), a1
	return z
}

// Mul sets z = x*y (original_source/ecl's fp12_mul.cpp) and returns z.
func (z *Element) Mul(x, y *Element) *Element {
	f := x.f
	t0 := f.Zero6().Mul(x.a0, y.a0)
	t1 := f.Zero6().Mul(x.a1, y.a1)

	s0 := f.Zero6().Add(x.a0, x.a1)
	s1 := f.Zero6().Add(y.a0, y.a1)
	c1 := f.Zero6().Mul(s1, s0)
	c1.Sub(c1, t0)
	c1.Sub(c1, t1)

	t1Tau := f.Zero6().MulTau(t1)
	c0 := f.Zero6().Add(t0, t1Tau)

	z.f, z.a0, z.a1 = f, c0, c1
	return z
}

// MulBase sets z = x*c, c an Fp6 scalar, and returns z.
func (z *Element) MulBase(x *Element, c *fp6.Element) *Element {
	a0 := x.f.Zero6().Mul(x.a0, c)
	a1 := x.f.Zero6().Mul(x.a1, c)
	z.f, z.a0, z.a1 = x.f, a0, a1
	return z
}

// Square sets z = x^2 via the "complex squaring" scheme (original_source/
// ecl's fp12_mul.cpp, the less-multiplication variant) and returns z.
func (z *Element) Square(x *Element) *Element {
	f := x.f

	t0 := f.Zero6().Add(x.a0, x.a1)
	t1 := f.Zero6().MulTau(x.a1)
	t1.Add(x.a0, t1)
	t0.Mul(t0, t1)

	c1 := f.Zero6().Mul(x.a0, x.a1)
	c0 := f.Zero6().Sub(t0, c1)
	t1 = f.Zero6().MulTau(c1)
	c0.Sub(c0, t1)
	c1.Add(c1, c1)

	z.f, z.a0, z.a1 = f, c0, c1
	return z
}

// Invert sets z = x^-1 (x must be non-zero) via the norm-based formula
// (Scott, "Implementing Cryptographic Pairings" §3.2) and returns z.
func (z *Element) Invert(x *Element) *Element {
	f := x.f
	t0 := f.Zero6().Square(x.a0)
	t1 := f.Zero6().Square(x.a1)
	t1.MulTau(t1)
	t0.Sub(t0, t1) // norm = a0² - tau*a1²

	t0.Invert(t0)
	a0 := f.Zero6().Mul(x.a0, t0)
	a1 := f.Zero6().Mul(x.a1, t0)
	a1.Neg(a1)

	z.f, z.a0, z.a1 = f, a0, a1
	return z
}

// Exp sets z = x^e, e a non-negative base-field-sized exponent, and returns
// z, via left-to-right square-and-multiply.
func (z *Element) Exp(x *Element, e *fixedint.Int) *Element {
	f := x.f
	acc := f.One()
	bitLen := e.CountBits()
	for i := bitLen - 1; i >= 0; i-- {
		acc.Square(acc)
		if e.Bit(uint(i)) == 1 {
			acc.Mul(acc, x)
		}
	}
	z.f, z.a0, z.a1 = f, acc.a0, acc.a1
	return z
}

// Frobenius sets z = x^(p^i), i in {1,2,3} (spec.md §4.5 — any other power
// is NOT_IMPLEMENTED, matching original_source/ecl's Fp12::frobenius),
// using the field's precomputed γ table, and returns z. For odd i every
// Fp2 coefficient is first conjugated (the p-power map on Fp2 is
// conjugation); for i=2 the coefficients are used as is (p² fixes Fp2).
func (z *Element) Frobenius(x *Element, i int) (*Element, error) {
	if i < 1 || i > 3 {
		return z, fmt.Errorf("fp12: %w: frobenius power %d not in {1,2,3}", eclerr.ErrNotImplemented, i)
	}
	f := x.f
	gammas := f.gammas[i-1]
	g0, g1, g2 := x.a0.A0(), x.a0.A1(), x.a0.A2()
	h0, h1, h2 := x.a1.A0(), x.a1.A1(), x.a1.A2()

	conjIfOdd := func(e *fp2.Element) *fp2.Element {
		if i%2 == 1 {
			return e.Field().Zero().Conjugate(e)
		}
		return e.Clone()
	}

	t1 := conjIfOdd(g0)
	t2 := conjIfOdd(h0)
	t3 := conjIfOdd(g1)
	t4 := conjIfOdd(h1)
	t5 := conjIfOdd(g2)
	t6 := conjIfOdd(h2)

	t2.Mul(t2, gammas[0])
	t3.Mul(t3, gammas[1])
	t4.Mul(t4, gammas[2])
	t5.Mul(t5, gammas[3])
	t6.Mul(t6, gammas[4])

	a0 := f.base.Elem(t1, t3, t5)
	a1 := f.base.Elem(t2, t4, t6)

	z.f, z.a0, z.a1 = f, a0, a1
	return z, nil
}

// sqrFp4 computes the square of a+b*u in Fp4 = Fp2[u]/(u²-ξ), returning its
// two Fp2 coordinates: (a+bu)² = (ξb²+a²) + (2ab)u, the 2ab cross term taken
// via (a+b)²-a²-b². Grounded on bnpairing.cpp's BNPairing::sqr_fp4.
func sqrFp4(xi, a, b *fp2.Element) (*fp2.Element, *fp2.Element) {
	f2 := a.Field()
	t0 := f2.Zero().Sqr(a)
	t1 := f2.Zero().Sqr(b)

	c0 := f2.Zero().Mul(t1, xi)
	c0.Add(c0, t0)

	c1 := f2.Zero().Add(a, b)
	c1.Sqr(c1)
	c1.Sub(c1, t0)
	c1.Sub(c1, t1)

	return c0, c1
}

func fp6Double(x *fp6.Element) *fp6.Element { return x.Field().Zero().Add(x, x) }
func fp6Triple(x *fp6.Element) *fp6.Element { d := fp6Double(x); return x.Field().Zero().Add(d, x) }

// SquareCyclotomic sets z = x^2, valid only when x lies in the
// order-Φ₁₂(p) cyclotomic subgroup (the subgroup every element reached
// after the easy part of the final exponentiation belongs to), and
// returns z. This is the Granger-Scott compressed squaring spec.md §4.5
// calls for: three Fp4 = Fp2[u]/(u²-ξ) squarings (sqrFp4) over specific
// pairs of x's six Fp2 coordinates, combined with one ξ-multiply and a
// double/triple/add-sub recombination, instead of a full Fp12 squaring.
// Grounded on bnpairing.cpp's BNPairing::sqr_cycl.
func (z *Element) SquareCyclotomic(x *Element) *Element {
	f := x.f
	xi := f.base.Xi()

	g0, g1, g2 := x.a0.A0(), x.a0.A1(), x.a0.A2()
	h0, h1, h2 := x.a1.A0(), x.a1.A1(), x.a1.A2()

	t00, t11 := sqrFp4(xi, g0, h1)
	t01, t12 := sqrFp4(xi, h0, g2)
	t02, t := sqrFp4(xi, g1, h2)
	t10 := f.base.Base().Zero().Mul(t, xi)

	t0 := f.base.Elem(t00, t01, t02)
	t1 := f.base.Elem(t10, t11, t12)

	doubleA0 := fp6Double(x.a0)
	res0 := fp6Triple(t0)
	res0.Sub(res0, doubleA0)

	doubleA1 := fp6Double(x.a1)
	res1 := fp6Triple(t1)
	res1.Add(res1, doubleA1)

	z.f, z.a0, z.a1 = f, res0, res1
	return z
}
