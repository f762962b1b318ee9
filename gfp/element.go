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

package gfp

import (
	"fmt"
	"io"

	"github.com/jkowalsk/ecl128/eclerr"
	"github.com/jkowalsk/ecl128/fixedint"
)

// Element is a value of a Field, stored in Montgomery form (a*R mod p). It
// must only be combined with Elements produced by the same Field.
type Element struct {
	f *Field
	v fixedint.Int
}

// Zero returns the additive identity of f.
func (f *Field) Zero() *Element { return &Element{f: f} }

// One returns the multiplicative identity of f.
func (f *Field) One() *Element { return &Element{f: f, v: f.r} }

// Elem encodes a normal-form integer into a Montgomery-form Element.
func (f *Field) Elem(normal *fixedint.Int) *Element {
	return &Element{f: f, v: *f.reduce(mulWide(normal, &f.r2))}
}

// Field returns the Field an Element belongs to.
func (x *Element) Field() *Field { return x.f }

// Clone returns a fresh copy of x.
func (x *Element) Clone() *Element { return &Element{f: x.f, v: x.v} }

// Normal decodes x out of Montgomery form.
func (x *Element) Normal() *fixedint.Int {
	d := &wide{}
	d.setLo(&x.v)
	return x.f.reduce(d)
}

// IsZero reports whether x is the additive identity.
func (x *Element) IsZero() bool { return x.v.IsZero() }

// IsOne reports whether x is the multiplicative identity.
func (x *Element) IsOne() bool { return x.v.Eq(&x.f.r) }

// Eq reports whether x and y hold the same value (x, y must share a Field).
func (x *Element) Eq(y *Element) bool { return x.v.Eq(&y.v) }

// Add sets z = x+y and returns z.
func (z *Element) Add(x, y *Element) *Element {
	f := x.f
	var sum fixedint.Int
	carry := sum.Add(&x.v, &y.v)
	if carry != 0 || sum.Cmp(&f.p) >= 0 {
		sum.Sub(&sum, &f.p)
	}
	z.f, z.v = f, sum
	return z
}

// Sub sets z = x-y and returns z.
func (z *Element) Sub(x, y *Element) *Element {
	f := x.f
	var diff fixedint.Int
	borrow := diff.Sub(&x.v, &y.v)
	if borrow != 0 {
		diff.Add(&diff, &f.p)
	}
	z.f, z.v = f, diff
	return z
}

// Neg sets z = -x and returns z.
func (z *Element) Neg(x *Element) *Element {
	f := x.f
	if x.v.IsZero() {
		z.f, z.v = f, fixedint.Int{}
		return z
	}
	var out fixedint.Int
	out.Sub(&f.p, &x.v)
	z.f, z.v = f, out
	return z
}

// Mul sets z = x*y (a Montgomery multiplication) and returns z.
func (z *Element) Mul(x, y *Element) *Element {
	f := x.f
	z.f, z.v = f, *f.reduce(mulWide(&x.v, &y.v))
	return z
}

// Sqr sets z = x^2 and returns z. Montgomery squaring has no shortcut over
// mul(x,x) in this implementation, so it is exactly that.
func (z *Element) Sqr(x *Element) *Element { return z.Mul(x, x) }

// Exp sets z = x^e, e given as a normal-form non-negative integer, via
// left-to-right square-and-multiply.
func (z *Element) Exp(x *Element, e *fixedint.Int) *Element {
	f := x.f
	acc := f.One()
	bitLen := e.CountBits()
	for i := bitLen - 1; i >= 0; i-- {
		acc.Sqr(acc)
		if e.Bit(uint(i)) == 1 {
			acc.Mul(acc, x)
		}
	}
	z.f, z.v = f, acc.v
	return z
}

// Invert sets z = x^-1 via Fermat's little theorem (x^(p-2)) and returns z.
// x must be non-zero.
func (z *Element) Invert(x *Element) *Element {
	f := x.f
	pMinus2 := f.p.Clone()
	pMinus2.Sub(pMinus2, fixedint.FromUint64(2))
	return z.Exp(x, pMinus2)
}

// InvertVariableTime sets z = x^-1 via the binary extended Euclidean
// algorithm (spec.md §4.2), a variable-time alternative to Invert that
// avoids exponentiation entirely. It must produce the same result as
// Invert for any non-zero x; callers pick whichever is faster for their
// threat model.
func (z *Element) InvertVariableTime(x *Element) *Element {
	f := x.f
	normal := x.Normal()
	invNormal := binaryExtendedGCDInverse(normal, &f.p)
	*z = *f.Elem(invNormal)
	return z
}

// Legendre returns -1, 0 or 1 as x is a non-residue, zero, or a quadratic
// residue mod p.
func (x *Element) Legendre() int {
	if x.IsZero() {
		return 0
	}
	f := x.f
	exp := f.p.Clone()
	exp.Sub(exp, fixedint.FromUint64(1))
	exp, _ = exp.DivModSmall(2)
	r := f.Zero().Exp(x, exp)
	if r.Eq(f.One()) {
		return 1
	}
	return -1
}

// IsCubicResidue reports whether x is a cube mod p. Only meaningful when
// p ≡ 1 (mod 3), the condition every BN curve's field satisfies.
func (x *Element) IsCubicResidue() bool {
	if x.IsZero() {
		return true
	}
	f := x.f
	exp := f.p.Clone()
	exp.Sub(exp, fixedint.FromUint64(1))
	exp, rem := exp.DivModSmall(3)
	if rem != 0 {
		return false
	}
	return f.Zero().Exp(x, exp).Eq(f.One())
}

// Sqrt sets z to a square root of x and returns (z, true) if one exists, or
// leaves z untouched and returns (z, false) if x is a non-residue.
// Branches on p mod 4 and p mod 8 per spec.md §4.2.
func (z *Element) Sqrt(x *Element) (*Element, bool) {
	f := x.f
	if x.IsZero() {
		z.f, z.v = f, fixedint.Int{}
		return z, true
	}
	if x.Legendre() != 1 {
		return z, false
	}

	_, pMod4 := f.p.DivModSmall(4)
	if pMod4 == 3 {
		exp := f.p.Clone()
		exp.Add(exp, fixedint.FromUint64(1))
		exp, _ = exp.DivModSmall(4)
		*z = *f.Zero().Exp(x, exp)
		return z, true
	}

	_, pMod8 := f.p.DivModSmall(8)
	if pMod8 == 5 {
		exp := f.p.Clone()
		exp.Sub(exp, fixedint.FromUint64(5))
		exp, _ = exp.DivModSmall(8)
		two := f.Elem(fixedint.FromUint64(2))
		twoA := f.Zero().Mul(two, x)
		d := f.Zero().Exp(twoA, exp)
		d2 := f.Zero().Sqr(d)
		i := f.Zero().Mul(twoA, d2)
		iMinus1 := f.Zero().Sub(i, f.One())
		ad := f.Zero().Mul(x, d)
		*z = *f.Zero().Mul(ad, iMinus1)
		return z, true
	}

	*z = *tonelliShanks(x)
	return z, true
}

// tonelliShanks is the general square-root algorithm, used when p ≡ 1
// (mod 8). It factors p-1 = q*2^s with q odd, finds a quadratic
// non-residue by trial, then narrows the root s-1 rounds at a time.
func tonelliShanks(x *Element) *Element {
	f := x.f
	q := f.p.Clone()
	q.Sub(q, fixedint.FromUint64(1))
	s := 0
	for q.Bit(0) == 0 {
		q.Rsh(q, 1)
		s++
	}

	var nonResidue *Element
	for i := uint64(2); ; i++ {
		cand := f.Elem(fixedint.FromUint64(i))
		if cand.Legendre() == -1 {
			nonResidue = cand
			break
		}
	}

	m := s
	c := f.Zero().Exp(nonResidue, q)
	qPlus1Over2 := q.Clone()
	qPlus1Over2.Add(qPlus1Over2, fixedint.FromUint64(1))
	qPlus1Over2, _ = qPlus1Over2.DivModSmall(2)
	t := f.Zero().Exp(x, q)
	r := f.Zero().Exp(x, qPlus1Over2)

	for {
		if t.Eq(f.One()) {
			return r
		}
		i, tt := 0, t.Clone()
		for !tt.Eq(f.One()) {
			tt = f.Zero().Sqr(tt)
			i++
		}
		b := c.Clone()
		for j := 0; j < m-i-1; j++ {
			b = f.Zero().Sqr(b)
		}
		m = i
		c = f.Zero().Sqr(b)
		t = f.Zero().Mul(t, c)
		r = f.Zero().Mul(r, b)
	}
}

// Random draws a uniformly distributed Element from rand, via rejection
// sampling against p.
func (f *Field) Random(rand io.Reader) (*Element, error) {
	var buf [fixedint.Bytes]byte
	for {
		if _, err := io.ReadFull(rand, buf[:]); err != nil {
			return nil, err
		}
		n := fixedint.Zero().SetBytes(&buf)
		if n.Cmp(&f.p) < 0 {
			return f.Elem(n), nil
		}
	}
}

// String renders x as lower-case hex in normal (non-Montgomery) form.
func (x *Element) String() string { return x.Normal().Hex() }

// FromString parses a (possibly signed) hex string into a Field element,
// per spec.md §4.2 fromString.
func (f *Field) FromString(s string) (*Element, error) {
	mag, neg, err := fixedint.FromHex(s)
	if err != nil {
		return nil, fmt.Errorf("gfp: %w: %v", eclerr.ErrInvalidValue, err)
	}
	if mag.Cmp(&f.p) >= 0 {
		return nil, fmt.Errorf("gfp: %w: value not reduced mod p", eclerr.ErrInvalidValue)
	}
	e := f.Elem(mag)
	if neg {
		e = f.Zero().Neg(e)
	}
	return e, nil
}
