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

// Package fp2 implements spec.md §4.3: the quadratic tower extension
// Fp2 = Fp[u]/(u²-β), β a quadratic non-residue of the base field found by
// trial at construction time, the way original_source/ecl's Fp2 searches
// -1,-2,-3,... for the first non-residue.
package fp2

import (
	"fmt"

	"github.com/jkowalsk/ecl128/eclerr"
	"github.com/jkowalsk/ecl128/fixedint"
	"github.com/jkowalsk/ecl128/gfp"
)

// Field owns the base prime field and the non-residue β defining Fp2.
type Field struct {
	base *gfp.Field
	beta *gfp.Element // u² = beta
}

// New builds Fp2 over base, searching -1,-2,-3,... for the first value that
// is a quadratic non-residue of base.
func New(base *gfp.Field) (*Field, error) {
	for n := int64(1); ; n++ {
		neg := fixedint.FromUint64(uint64(n))
		cand := base.Zero().Neg(base.Elem(neg))
		if cand.Legendre() == -1 {
			return &Field{base: base, beta: cand}, nil
		}
		if n > 1<<20 {
			return nil, fmt.Errorf("fp2: %w: no quadratic non-residue found", eclerr.ErrInvalidValue)
		}
	}
}

// Base returns the underlying prime field.
func (f *Field) Base() *gfp.Field { return f.base }

// Beta returns β, the non-residue u² reduces to.
func (f *Field) Beta() *gfp.Element { return f.beta }

// Element is a0 + a1*u, a0, a1 in the base field.
type Element struct {
	f      *Field
	a0, a1 *gfp.Element
}

// Zero returns the additive identity.
func (f *Field) Zero() *Element { return &Element{f: f, a0: f.base.Zero(), a1: f.base.Zero()} }

// One returns the multiplicative identity.
func (f *Field) One() *Element { return &Element{f: f, a0: f.base.One(), a1: f.base.Zero()} }

// Elem builds a0 + a1*u from base-field elements.
func (f *Field) Elem(a0, a1 *gfp.Element) *Element { return &Element{f: f, a0: a0, a1: a1} }

// A0 returns the real (non-u) component.
func (x *Element) A0() *gfp.Element { return x.a0 }

// A1 returns the u-coefficient component.
func (x *Element) A1() *gfp.Element { return x.a1 }

// Field returns the Fp2 field x belongs to.
func (x *Element) Field() *Field { return x.f }

// Clone returns a fresh copy of x.
func (x *Element) Clone() *Element {
	return &Element{f: x.f, a0: x.a0.Clone(), a1: x.a1.Clone()}
}

// IsZero reports whether x is the additive identity.
func (x *Element) IsZero() bool { return x.a0.IsZero() && x.a1.IsZero() }

// IsOne reports whether x is the multiplicative identity.
func (x *Element) IsOne() bool { return x.a0.Eq(x.f.base.One()) && x.a1.IsZero() }

// Eq reports whether x and y hold the same value.
func (x *Element) Eq(y *Element) bool { return x.a0.Eq(y.a0) && x.a1.Eq(y.a1) }

// Add sets z = x+y and returns z.
func (z *Element) Add(x, y *Element) *Element {
	a0 := z.f.base.Zero().Add(x.a0, y.a0)
	a1 := z.f.base.Zero().Add(x.a1, y.a1)
	z.f, z.a0, z.a1 = x.f, a0, a1
	return z
}

// Sub sets z = x-y and returns z.
func (z *Element) Sub(x, y *Element) *Element {
	a0 := z.f.base.Zero().Sub(x.a0, y.a0)
	a1 := z.f.base.Zero().Sub(x.a1, y.a1)
	z.f, z.a0, z.a1 = x.f, a0, a1
	return z
}

// Neg sets z = -x and returns z.
func (z *Element) Neg(x *Element) *Element {
	a0 := x.f.base.Zero().Neg(x.a0)
	a1 := x.f.base.Zero().Neg(x.a1)
	z.f, z.a0, z.a1 = x.f, a0, a1
	return z
}

// Conjugate sets z = a0 - a1*u, the non-trivial Fp2/Fp Galois action, and
// returns z. This coincides with Frobenius (the p-power map) since
// u^p = u*(u²)^((p-1)/2) = u*Legendre(β) = -u.
func (z *Element) Conjugate(x *Element) *Element {
	a1 := x.f.base.Zero().Neg(x.a1)
	z.f, z.a0, z.a1 = x.f, x.a0.Clone(), a1
	return z
}

// Frobenius sets z = x^(p^i) and returns z: the identity when i is even,
// Conjugate when i is odd (spec.md §4.3).
func (z *Element) Frobenius(x *Element, i int) *Element {
	if i%2 == 0 {
		z.f, z.a0, z.a1 = x.f, x.a0.Clone(), x.a1.Clone()
		return z
	}
	return z.Conjugate(x)
}

// Mul sets z = x*y via the Karatsuba cross-term trick (one multiplication
// saved over the schoolbook expansion) and returns z.
func (z *Element) Mul(x, y *Element) *Element {
	f := x.f
	t0 := f.base.Zero().Mul(x.a0, y.a0)
	t1 := f.base.Zero().Mul(x.a1, y.a1)
	t2 := f.base.Zero().Add(x.a0, x.a1)
	t3 := f.base.Zero().Add(y.a0, y.a1)

	a1 := f.base.Zero().Mul(t2, t3)
	a1.Sub(a1, t0)
	a1.Sub(a1, t1)

	t1Beta := f.base.Zero().Mul(t1, f.beta)
	a0 := f.base.Zero().Add(t0, t1Beta) // a0 = t0 + beta*t1 = a0b0 + beta*a1b1

	z.f, z.a0, z.a1 = f, a0, a1
	return z
}

// MulBase sets z = x*c, c a base-field scalar, and returns z.
func (z *Element) MulBase(x *Element, c *gfp.Element) *Element {
	a0 := x.f.base.Zero().Mul(x.a0, c)
	a1 := x.f.base.Zero().Mul(x.a1, c)
	z.f, z.a0, z.a1 = x.f, a0, a1
	return z
}

// Square sets z = x^2 and returns z.
func (z *Element) Square(x *Element) *Element {
	f := x.f
	a0sq := f.base.Zero().Sqr(x.a0)
	a1sq := f.base.Zero().Sqr(x.a1)
	a1sq.Mul(a1sq, f.beta)
	a0 := f.base.Zero().Add(a0sq, a1sq) // a0 = a0² + beta*a1²

	a1 := f.base.Zero().Mul(x.a0, x.a1)
	a1.Add(a1, a1) // a1 = 2*a0*a1

	z.f, z.a0, z.a1 = f, a0, a1
	return z
}

// Sqr is an alias for Square, kept so Element satisfies the same method set
// as gfp.Element for package curve's generic FpnCurve.
func (z *Element) Sqr(x *Element) *Element { return z.Square(x) }

// Invert sets z = x^-1 (x must be non-zero) via the norm-based formula
// (Scott, "Implementing Cryptographic Pairings", §3.2) and returns z.
func (z *Element) Invert(x *Element) *Element {
	f := x.f
	t0 := f.base.Zero().Sqr(x.a0)
	t1 := f.base.Zero().Sqr(x.a1)
	t1.Mul(t1, f.beta)
	t0.Sub(t0, t1) // norm = a0² - β*a1²

	inv := f.base.Zero().Invert(t0)
	a0 := f.base.Zero().Mul(x.a0, inv)
	a1 := f.base.Zero().Mul(x.a1, inv)
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

// Legendre returns the Legendre symbol of x, computed via its norm in the
// base field (Norm(x) is a residue in Fp iff x is a residue in Fp2).
func (x *Element) Legendre() int {
	f := x.f
	l := f.base.Zero().Sqr(x.a0)
	r := f.base.Zero().Sqr(x.a1)
	r.Mul(r, f.beta)
	l.Sub(l, r) // norm = a0² - beta*a1²
	return l.Legendre()
}

// Sqrt sets z to a square root of x, if one exists (the "complex method" of
// Scott's paper). Returns (z, true) on success, (z, false) if x is a
// non-residue.
func (z *Element) Sqrt(x *Element) (*Element, bool) {
	f := x.f
	if x.Legendre() == -1 {
		return z, false
	}
	if x.IsZero() {
		z.f, z.a0, z.a1 = f, f.base.Zero(), f.base.Zero()
		return z, true
	}

	l := f.base.Zero().Sqr(x.a0)
	r := f.base.Zero().Sqr(x.a1)
	r.Mul(r, f.beta)
	norm := f.base.Zero().Sub(l, r)
	norm, ok := f.base.Zero().Sqrt(norm)
	if !ok {
		return z, false
	}

	two := f.base.Elem(fixedint.FromUint64(2))
	twoInv := f.base.Zero().Invert(two)

	t := f.base.Zero().Add(x.a0, norm)
	t.Mul(t, twoInv)
	if t.Legendre() != 1 {
		t = f.base.Zero().Sub(t, norm)
	}
	t0, ok := f.base.Zero().Sqrt(t)
	if !ok {
		return z, false
	}

	denom := f.base.Zero().Add(t0, t0)
	denomInv := f.base.Zero().Invert(denom)
	a1 := f.base.Zero().Mul(x.a1, denomInv)

	z.f, z.a0, z.a1 = f, t0, a1
	return z, true
}

// Xi searches candidates {0+u, 1+u, 2+u, 3+u} for one whose base-field norm
// is a cubic non-residue (and, except for the first candidate, also a
// quadratic non-residue), the way original_source/ecl's Fp2::init_xsi does.
// fp6 uses the result to build Fp6 = Fp2[v]/(v³-ξ).
func (f *Field) Xi() (*Element, error) {
	norm := func(a0 int64) *gfp.Element {
		// Norm(a0 + u) = a0² - β*1² = a0² + qnr, where beta = -qnr; written
		// directly since a1=1 for every candidate here.
		l := f.base.Zero().Sqr(f.base.Elem(fixedint.FromUint64(uint64(a0))))
		r := f.base.Zero().Neg(f.beta)
		l.Add(l, r)
		return l
	}

	one := f.base.One()
	if n := norm(0); !n.IsCubicResidue() {
		return f.Elem(f.base.Zero(), one.Clone()), nil
	}
	for a0 := int64(1); a0 <= 3; a0++ {
		n := norm(a0)
		if n.Legendre() == -1 && !n.IsCubicResidue() {
			return f.Elem(f.base.Elem(fixedint.FromUint64(uint64(a0))), one.Clone()), nil
		}
	}
	return nil, fmt.Errorf("fp2: %w: no suitable xi found for fp6", eclerr.ErrNotImplemented)
}
