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

// Package fp6 implements spec.md §4.4: the cubic tower extension
// Fp6 = Fp2[v]/(v³-ξ), ξ the non-residue produced by fp2.Field.Xi.
package fp6

import (
	"fmt"

	"github.com/jkowalsk/ecl128/eclerr"
	"github.com/jkowalsk/ecl128/fixedint"
	"github.com/jkowalsk/ecl128/fp2"
)

// Field owns the Fp2 base field and ξ, the non-residue defining Fp6.
type Field struct {
	base *fp2.Field
	xi   *fp2.Element // v³ = xi
}

// New builds Fp6 over base, finding ξ via base.Xi().
func New(base *fp2.Field) (*Field, error) {
	xi, err := base.Xi()
	if err != nil {
		return nil, err
	}
	return &Field{base: base, xi: xi}, nil
}

// Base returns the underlying Fp2 field.
func (f *Field) Base() *fp2.Field { return f.base }

// Xi returns ξ, the value v³ reduces to.
func (f *Field) Xi() *fp2.Element { return f.xi }

// Element is a0 + a1*v + a2*v², a0, a1, a2 in Fp2.
type Element struct {
	f          *Field
	a0, a1, a2 *fp2.Element
}

// Zero returns the additive identity.
func (f *Field) Zero() *Element {
	return &Element{f: f, a0: f.base.Zero(), a1: f.base.Zero(), a2: f.base.Zero()}
}

// One returns the multiplicative identity.
func (f *Field) One() *Element {
	return &Element{f: f, a0: f.base.One(), a1: f.base.Zero(), a2: f.base.Zero()}
}

// Elem builds a0 + a1*v + a2*v² from Fp2 elements.
func (f *Field) Elem(a0, a1, a2 *fp2.Element) *Element {
	return &Element{f: f, a0: a0, a1: a1, a2: a2}
}

// A0 returns the degree-0 component.
func (x *Element) A0() *fp2.Element { return x.a0 }

// A1 returns the degree-1 (v) component.
func (x *Element) A1() *fp2.Element { return x.a1 }

// A2 returns the degree-2 (v²) component.
func (x *Element) A2() *fp2.Element { return x.a2 }

// Field returns the Fp6 field x belongs to.
func (x *Element) Field() *Field { return x.f }

// Clone returns a fresh copy of x.
func (x *Element) Clone() *Element {
	return &Element{f: x.f, a0: x.a0.Clone(), a1: x.a1.Clone(), a2: x.a2.Clone()}
}

// IsZero reports whether x is the additive identity.
func (x *Element) IsZero() bool { return x.a0.IsZero() && x.a1.IsZero() && x.a2.IsZero() }

// IsOne reports whether x is the multiplicative identity.
func (x *Element) IsOne() bool { return x.a0.IsOne() && x.a1.IsZero() && x.a2.IsZero() }

// Eq reports whether x and y hold the same value.
func (x *Element) Eq(y *Element) bool { return x.a0.Eq(y.a0) && x.a1.Eq(y.a1) && x.a2.Eq(y.a2) }

// Add sets z = x+y and returns z.
func (z *Element) Add(x, y *Element) *Element {
	a0 := x.f.Zero2().Add(x.a0, y.a0)
	a1 := x.f.Zero2().Add(x.a1, y.a1)
	a2 := x.f.Zero2().Add(x.a2, y.a2)
	z.f, z.a0, z.a1, z.a2 = x.f, a0, a1, a2
	return z
}

// Sub sets z = x-y and returns z.
func (z *Element) Sub(x, y *Element) *Element {
	a0 := x.f.Zero2().Sub(x.a0, y.a0)
	a1 := x.f.Zero2().Sub(x.a1, y.a1)
	a2 := x.f.Zero2().Sub(x.a2, y.a2)
	z.f, z.a0, z.a1, z.a2 = x.f, a0, a1, a2
	return z
}

// Neg sets z = -x and returns z.
func (z *Element) Neg(x *Element) *Element {
	a0 := x.f.Zero2().Neg(x.a0)
	a1 := x.f.Zero2().Neg(x.a1)
	a2 := x.f.Zero2().Neg(x.a2)
	z.f, z.a0, z.a1, z.a2 = x.f, a0, a1, a2
	return z
}

// Zero2 is a convenience shortcut to the Fp2 zero element of f's base field.
func (f *Field) Zero2() *fp2.Element { return f.base.Zero() }

// MulTau sets z = x*v (multiplication by the generator v) and returns z,
// the way original_source/ecl's Fp6::mul_vi permutes components and folds
// the wraparound term through ξ: (a0+a1v+a2v²)*v = a2*ξ + a0*v + a1*v².
func (z *Element) MulTau(x *Element) *Element {
	f := x.f
	a0 := f.Zero2().Mul(x.a2, f.xi)
	a1 := x.a0.Clone()
	a2 := x.a1.Clone()
	z.f, z.a0, z.a1, z.a2 = f, a0, a1, a2
	return z
}

// MulBase sets z = x*c, c an Fp2 scalar, and returns z.
func (z *Element) MulBase(x *Element, c *fp2.Element) *Element {
	a0 := x.f.Zero2().Mul(x.a0, c)
	a1 := x.f.Zero2().Mul(x.a1, c)
	a2 := x.f.Zero2().Mul(x.a2, c)
	z.f, z.a0, z.a1, z.a2 = x.f, a0, a1, a2
	return z
}

// Mul sets z = x*y via the Devegili-Scott-Dahab Karatsuba-style product
// (original_source/ecl's fp6_mul.cpp) and returns z.
func (z *Element) Mul(x, y *Element) *Element {
	f := x.f
	t0 := f.Zero2().Mul(x.a0, y.a0)
	t1 := f.Zero2().Mul(x.a1, y.a1)
	t2 := f.Zero2().Mul(x.a2, y.a2)

	s0 := f.Zero2().Add(x.a1, x.a2)
	s1 := f.Zero2().Add(y.a1, y.a2)
	c0 := f.Zero2().Mul(s0, s1)
	c0.Sub(c0, t1)
	c0.Sub(c0, t2)
	c0.Mul(c0, f.xi)
	c0.Add(c0, t0)

	s0.Add(x.a0, x.a1)
	s1.Add(y.a0, y.a1)
	c1 := f.Zero2().Mul(s0, s1)
	c1.Sub(c1, t0)
	c1.Sub(c1, t1)
	xiT2 := f.Zero2().Mul(t2, f.xi)
	c1.Add(c1, xiT2)

	s0.Add(x.a0, x.a2)
	s1.Add(y.a0, y.a2)
	c2 := f.Zero2().Mul(s0, s1)
	c2.Sub(c2, t0)
	c2.Sub(c2, t2)
	c2.Add(c2, t1)

	z.f, z.a0, z.a1, z.a2 = f, c0, c1, c2
	return z
}

// Square sets z = x^2 via the formula in original_source/ecl's fp6_mul.cpp
// (equivalently, the "complex squaring" scheme of Devegili-Scott-Dahab §4)
// and returns z.
func (z *Element) Square(x *Element) *Element {
	f := x.f

	c4 := f.Zero2().Mul(x.a0, x.a1)
	c4.Add(c4, c4) // c4 = 2*a0*a1

	c5 := f.Zero2().Sqr(x.a2)
	c1 := f.Zero2().Mul(c5, f.xi)
	c1.Add(c1, c4) // c1 = xi*a2² + 2*a0*a1

	c2 := f.Zero2().Sub(c4, c5) // c2 = 2*a0*a1 - a2²

	c3 := f.Zero2().Sqr(x.a0)

	t := f.Zero2().Sub(x.a0, x.a1)
	t.Add(t, x.a2) // t = a0-a1+a2

	c5 = f.Zero2().Mul(x.a2, x.a1)
	c5.Add(c5, c5) // c5 = 2*a1*a2

	c4 = f.Zero2().Sqr(t)

	c0 := f.Zero2().Mul(c5, f.xi)
	c0.Add(c0, c3) // c0 = xi*2*a1*a2 + a0²

	c2.Add(c2, c4)
	c2.Add(c2, c5)
	c2.Sub(c2, c3)

	z.f, z.a0, z.a1, z.a2 = f, c0, c1, c2
	return z
}

// Invert sets z = x^-1 (x must be non-zero) via the norm-based formula
// (original_source/ecl's fp6_mul.cpp, also Scott §3.2) and returns z.
func (z *Element) Invert(x *Element) *Element {
	f := x.f

	t0 := f.Zero2().Sqr(x.a0)
	t1 := f.Zero2().Sqr(x.a1)
	t2 := f.Zero2().Sqr(x.a2)

	t3 := f.Zero2().Mul(x.a0, x.a1)
	t4 := f.Zero2().Mul(x.a0, x.a2)
	t5 := f.Zero2().Mul(x.a2, x.a1)

	c0 := f.Zero2().Mul(t5, f.xi)
	c0.Neg(c0)
	c0.Add(c0, t0) // c0 = a0² - xi*a1*a2

	c1 := f.Zero2().Mul(t2, f.xi)
	c1.Sub(c1, t3) // c1 = xi*a2² - a0*a1

	c2 := f.Zero2().Sub(t1, t4) // c2 = a1² - a0*a2

	t6 := f.Zero2().Mul(x.a0, c0)
	tmp := f.Zero2().Mul(x.a2, c1)
	tmp.Mul(tmp, f.xi)
	t6.Add(t6, tmp)
	tmp = f.Zero2().Mul(x.a1, c2)
	tmp.Mul(tmp, f.xi)
	t6.Add(t6, tmp)

	t6.Invert(t6)

	a0 := f.Zero2().Mul(c0, t6)
	a1 := f.Zero2().Mul(c1, t6)
	a2 := f.Zero2().Mul(c2, t6)

	z.f, z.a0, z.a1, z.a2 = f, a0, a1, a2
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
	z.f, z.a0, z.a1, z.a2 = f, acc.a0, acc.a1, acc.a2
	return z
}

// Frobenius is not implemented at this degree (spec.md §4.4): the v and v²
// coefficients would need xi^((p^i-1)/3) and xi^(2(p^i-1)/3) folded in,
// which only package fp12 precomputes (as its γ table). Callers needing
// x^(p^i) on a full tower element go through fp12.Element.Frobenius
// instead, the way original_source/ecl's Fp6::frobenius simply returns
// ERR_NOT_IMPLEMENTED and leaves the real work to Fp12::frobenius.
func (z *Element) Frobenius(*Element, int) (*Element, error) {
	return z, fmt.Errorf("fp6: %w: frobenius not implemented at this degree", eclerr.ErrNotImplemented)
}
