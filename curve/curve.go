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

// Package curve implements spec.md §4.6: a generic short Weierstrass curve
// y² = x³ + a·x + b over Chudnovsky Jacobian coordinates (x, y, z, z²), the
// z² kept alongside z the way original_source/ecl's curve.h Point does,
// saving a squaring in every formula that needs it more than once.
//
// original_source/ecl renders this as a C++ template, FpnCurve<BaseField>,
// instantiated once for GFp (package weier's curves) and once for Fp2 (the
// BN sextic twist in package bn). Go has no class templates, so the generic
// parameter is carried as a type parameter instead: Curve[T, E, F] where E
// is the coordinate field's element type and F its field type, constrained
// by the Elem and Field interfaces below — the same two instantiations the
// original produces (GFpCurve, Fp2Curve), built the same way.
package curve

import (
	"fmt"

	"github.com/jkowalsk/ecl128/eclerr"
	"github.com/jkowalsk/ecl128/fixedint"
	"github.com/jkowalsk/ecl128/gfp"
)

// Elem is the method set every coordinate field's Element type exposes
// (gfp.Element, fp2.Element). T is the concrete element struct; E is always
// *T in practice, but is left as its own parameter so this package only
// depends on the method set, not the concrete type.
type Elem[T any] interface {
	*T
	Add(x, y *T) *T
	Sub(x, y *T) *T
	Neg(x *T) *T
	Mul(x, y *T) *T
	Sqr(x *T) *T
	Invert(x *T) *T
	Clone() *T
	IsZero() bool
	IsOne() bool
	Eq(y *T) bool
}

// Field is the method set every coordinate field type exposes (gfp.Field,
// fp2.Field): a source of fresh zero/one elements.
type Field[T any, E Elem[T]] interface {
	Zero() E
	One() E
}

// Point is a curve point in Chudnovsky Jacobian coordinates: affine
// (x/z², y/z³), with z² cached in Z2 rather than recomputed. IsInfinity is
// a hint set by Infinity/Neg/Clone; IsInfinityPoint below is the
// authoritative, coordinate-based check original_source/ecl's isInfinity
// uses (x=1, y=1, z=0).
type Point[T any, E Elem[T]] struct {
	X, Y, Z, Z2 E
	IsInfinity  bool
}

// Clone returns a fresh copy of p.
func (p *Point[T, E]) Clone() *Point[T, E] {
	return &Point[T, E]{X: p.X.Clone(), Y: p.Y.Clone(), Z: p.Z.Clone(), Z2: p.Z2.Clone(), IsInfinity: p.IsInfinity}
}

// Curve owns the field, the a/b Weierstrass coefficients, the order of the
// generated subgroup, and the a_is_0/a_is_m3 shortcuts the doubling formula
// branches on (spec.md §4.6).
type Curve[T any, E Elem[T], F Field[T, E]] struct {
	field   F
	a, b    E
	aIsZero bool
	aIsM3   bool
	order   *fixedint.Int
}

// New builds a curve y² = x³ + a·x + b over field, with group order order
// (order may be nil if unknown/unneeded — IsValid's verifyOrder path and
// Order will then be unusable).
func New[T any, E Elem[T], F Field[T, E]](field F, a, b E, order *fixedint.Int) *Curve[T, E, F] {
	c := &Curve[T, E, F]{field: field, a: a, b: b, order: order}
	c.aIsZero = a.IsZero()

	one := field.One()
	two := field.Zero().Add(one, one)
	three := field.Zero().Add(two, one)
	negThree := field.Zero().Neg(three)
	c.aIsM3 = a.Eq(negThree)

	return c
}

// A returns the curve's a coefficient.
func (c *Curve[T, E, F]) A() E { return c.a }

// B returns the curve's b coefficient.
func (c *Curve[T, E, F]) B() E { return c.b }

// Field returns the coordinate field.
func (c *Curve[T, E, F]) Field() F { return c.field }

// Order returns a copy of the curve's group order, or nil if none was set.
func (c *Curve[T, E, F]) Order() *fixedint.Int {
	if c.order == nil {
		return nil
	}
	return c.order.Clone()
}

// ZeroPoint returns the point (0, 0, 1, 1) — a placeholder value, not the
// group identity (see Infinity).
func (c *Curve[T, E, F]) ZeroPoint() *Point[T, E] {
	return &Point[T, E]{X: c.field.Zero(), Y: c.field.Zero(), Z: c.field.One(), Z2: c.field.One()}
}

// AffinePoint builds a point from affine coordinates (z = 1).
func (c *Curve[T, E, F]) AffinePoint(x, y E) *Point[T, E] {
	return &Point[T, E]{X: x, Y: y, Z: c.field.One(), Z2: c.field.One()}
}

// JacobianPoint builds a point from Jacobian coordinates, computing z².
func (c *Curve[T, E, F]) JacobianPoint(x, y, z E) *Point[T, E] {
	return &Point[T, E]{X: x, Y: y, Z: z, Z2: c.field.Zero().Sqr(z)}
}

// Infinity returns the group identity, represented as (1, 1, 0, 0).
func (c *Curve[T, E, F]) Infinity() *Point[T, E] {
	return &Point[T, E]{X: c.field.One(), Y: c.field.One(), Z: c.field.Zero(), Z2: c.field.Zero(), IsInfinity: true}
}

// IsInfinityPoint reports whether p is the group identity, recomputed from
// its coordinates (x=1, y=1, z=0) rather than trusting the IsInfinity hint
// — the way original_source/ecl's isInfinity(P) does, since Double and Add
// leave the hint unset on the points they compute (Add's P = -Q branch,
// which returns Infinity(), is the one exception).
func (c *Curve[T, E, F]) IsInfinityPoint(p *Point[T, E]) bool {
	return p.X.IsOne() && p.Y.IsOne() && p.Z.IsZero()
}

// Eq reports whether p and q denote the same projective point.
func (c *Curve[T, E, F]) Eq(p, q *Point[T, E]) bool {
	f := c.field
	left := f.Zero().Mul(p.X, q.Z2)
	right := f.Zero().Mul(q.X, p.Z2)
	if !E(left).Eq(right) {
		return false
	}
	left = f.Zero().Mul(p.Y, q.Z2)
	left = f.Zero().Mul(left, q.Z)
	right = f.Zero().Mul(q.Y, p.Z2)
	right = f.Zero().Mul(right, p.Z)
	return E(left).Eq(right)
}

// Neg returns -p = (x, -y, z, z²).
func (c *Curve[T, E, F]) Neg(p *Point[T, E]) *Point[T, E] {
	return &Point[T, E]{X: p.X.Clone(), Y: c.field.Zero().Neg(p.Y), Z: p.Z.Clone(), Z2: p.Z2.Clone(), IsInfinity: p.IsInfinity}
}

// Normalize rescales p in place to z = 1.
func (c *Curve[T, E, F]) Normalize(p *Point[T, E]) {
	f := c.field
	if p.Z.IsOne() {
		return
	}
	if p.IsInfinity || p.Z.IsZero() {
		*p = *c.Infinity()
		return
	}

	invZ4 := f.Zero().Sqr(p.Z2)
	invZ4 = f.Zero().Invert(invZ4)
	t := f.Zero().Mul(invZ4, p.Z) // z^-3
	p.Y = f.Zero().Mul(t, p.Y)
	t = f.Zero().Mul(t, p.Z) // z^-2
	p.X = f.Zero().Mul(t, p.X)

	p.Z = f.One()
	p.Z2 = f.One()
	p.IsInfinity = false
}

func double[T any, E Elem[T]](f Field[T, E], x E) E { return f.Zero().Add(x, x) }

func triple[T any, E Elem[T]](f Field[T, E], x E) E {
	d := double[T, E](f, x)
	return f.Zero().Add(d, x)
}

func quadruple[T any, E Elem[T]](f Field[T, E], x E) E {
	d := double[T, E](f, x)
	return double[T, E](f, d)
}

func octuple[T any, E Elem[T]](f Field[T, E], x E) E {
	q := quadruple[T, E](f, x)
	return double[T, E](f, q)
}

// Double returns [2]p.
func (c *Curve[T, E, F]) Double(p *Point[T, E]) *Point[T, E] {
	if p.IsInfinity {
		return p.Clone()
	}
	f := c.field

	y2 := f.Zero().Sqr(p.Y)
	a := f.Zero().Mul(y2, p.X)
	a = quadruple[T, E](f, a)

	var b E
	if c.aIsM3 {
		t := f.Zero().Add(p.X, p.Z2)
		b = f.Zero().Sub(p.X, p.Z2)
		b = f.Zero().Mul(b, t)
		b = triple[T, E](f, b)
	} else {
		b = f.Zero().Sqr(p.X)
		b = triple[T, E](f, b)
		if !c.aIsZero {
			t := f.Zero().Sqr(p.Z2)
			t = f.Zero().Mul(t, c.a)
			b = f.Zero().Add(b, t)
		}
	}

	z := f.Zero().Mul(p.Y, p.Z)
	z = double[T, E](f, z)
	z2 := f.Zero().Sqr(z)

	x := f.Zero().Sqr(b)
	x = f.Zero().Sub(x, a)
	x = f.Zero().Sub(x, a)

	y := f.Zero().Sub(a, x)
	y = f.Zero().Mul(b, y)
	t := f.Zero().Sqr(y2)
	t = octuple[T, E](f, t)
	y = f.Zero().Sub(y, t)

	return &Point[T, E]{X: x, Y: y, Z: z, Z2: z2}
}

// Add returns p+q.
func (c *Curve[T, E, F]) Add(p, q *Point[T, E]) *Point[T, E] {
	if p.IsInfinity {
		return q.Clone()
	}
	if q.IsInfinity {
		return p.Clone()
	}
	f := c.field

	a := f.Zero().Mul(p.X, q.Z2)
	b := f.Zero().Mul(q.X, p.Z2)
	cc := f.Zero().Mul(p.Y, q.Z2)
	cc = f.Zero().Mul(cc, q.Z)
	d := f.Zero().Mul(q.Y, p.Z2)
	d = f.Zero().Mul(d, p.Z)

	if E(a).Eq(b) {
		if E(cc).Eq(d) {
			return c.Double(p)
		}
		return c.Infinity()
	}

	e := f.Zero().Sub(b, a)
	ff := f.Zero().Sub(d, cc)

	z := f.Zero().Mul(p.Z, q.Z)
	z = f.Zero().Mul(z, e)
	z2 := f.Zero().Sqr(z)

	ae2 := f.Zero().Sqr(e)
	e3 := f.Zero().Mul(ae2, e)
	ae2 = f.Zero().Mul(ae2, a)

	x := f.Zero().Sqr(ff)
	x = f.Zero().Sub(x, ae2)
	x = f.Zero().Sub(x, ae2)
	x = f.Zero().Sub(x, e3)

	y := f.Zero().Sub(ae2, x)
	y = f.Zero().Mul(y, ff)
	e3 = f.Zero().Mul(cc, e3)
	y = f.Zero().Sub(y, e3)

	return &Point[T, E]{X: x, Y: y, Z: z, Z2: z2}
}

// MulML computes [k]p via the Montgomery ladder (spec.md §4.6 mul_ML): an
// alternative to MulSW that does one addition and one doubling per bit of k.
// It is not constant-time: the ladder branches on each bit, and Add and
// Double take data-dependent shortcuts.
func (c *Curve[T, E, F]) MulML(p *Point[T, E], k *fixedint.Int) *Point[T, E] {
	if k.IsZero() {
		return c.Infinity()
	}
	pp0 := p.Clone()
	pp1 := c.Double(p)

	l := k.CountBits()
	for i := l - 1; i > 0; i-- {
		y := k.Bit(uint(i - 1))
		sum := c.Add(pp0, pp1)
		if y == 0 {
			pp1 = sum
			pp0 = c.Double(pp0)
		} else {
			pp0 = sum
			pp1 = c.Double(pp1)
		}
	}
	return pp0
}

// MulSW computes [k]p via a sliding window of the given size (spec.md §4.6
// mul_SW): odd multiples [3]p..[2^windowSz-1]p are precomputed, then k is
// scanned MSB-first, emitting doublings for zero runs and a doubling batch
// plus one addition for each odd-length window.
func (c *Curve[T, E, F]) MulSW(p *Point[T, E], k *fixedint.Int, windowSz uint) *Point[T, E] {
	precompSz := (1 << windowSz) - 1
	precomp := make([]*Point[T, E], precompSz+1)

	twoP := c.Double(p)
	precomp[1] = p.Clone()
	for j := 3; j <= precompSz; j += 2 {
		precomp[j] = c.Add(twoP, precomp[j-2])
	}

	q := c.Infinity()
	i := k.CountBits() - 1
	for i >= 0 {
		if k.Bit(uint(i)) == 0 {
			q = c.Double(q)
			i--
			continue
		}

		s := i - int(windowSz) + 1
		if s < 0 {
			s = 0
		}
		for k.Bit(uint(s)) == 0 {
			s++
		}

		for h := 0; h < i-s+1; h++ {
			q = c.Double(q)
		}
		u := 0
		for h := i; h >= s; h-- {
			u |= int(k.Bit(uint(h))) << (h - s)
		}
		q = c.Add(q, precomp[u])
		i = s - 1
	}
	return q
}

// Mul computes [k]p via MulSW with the default window size of 4, matching
// original_source/ecl's mul() delegation.
func (c *Curve[T, E, F]) Mul(p *Point[T, E], k *fixedint.Int) *Point[T, E] {
	return c.MulSW(p, k, 4)
}

// IsValid checks y² = x³ + a·x·z⁴ + b·z⁶ in Jacobian form and, if
// verifyOrder is set, that [order]p is the identity.
func (c *Curve[T, E, F]) IsValid(p *Point[T, E], verifyOrder bool) bool {
	f := c.field

	left := f.Zero().Sqr(p.Y)

	t2 := f.Zero().Sqr(p.Z2)
	t2 = f.Zero().Mul(t2, p.Z2)
	t2 = f.Zero().Mul(t2, c.b)

	t1 := f.Zero().Sqr(p.Z2)
	t1 = f.Zero().Mul(t1, p.X)
	t1 = f.Zero().Mul(t1, c.a)

	right := f.Zero().Sqr(p.X)
	right = f.Zero().Mul(right, p.X)
	right = f.Zero().Add(right, t1)
	right = f.Zero().Add(right, t2)

	valid := E(right).Eq(left)
	if verifyOrder && c.order != nil {
		r := c.Mul(p, c.order)
		valid = valid && c.IsInfinityPoint(r)
	}
	return valid
}

// Compress and Decompress are only meaningful over a prime coordinate
// field, where "the low bit of y" is a well-defined compact hint for
// recovering y's sign on decompression — original_source/ecl's split
// between GFpCurve (which gets compress/decompress) and Fp2Curve (which
// doesn't, since Fp2 has no single canonical "low bit") is kept by only
// defining these two functions over a GFp-coordinate Curve rather than
// adding them to the generic Curve type.

// Compress normalizes p and returns its x-coordinate plus the low bit of y.
func Compress(c *Curve[gfp.Element, *gfp.Element, *gfp.Field], p *Point[gfp.Element, *gfp.Element]) (*fixedint.Int, int) {
	tmp := p.Clone()
	c.Normalize(tmp)
	x := tmp.X.Normal()
	y := int(tmp.Y.Normal().Bit(0))
	return x, y
}

// Decompress recovers a point from its x-coordinate and the low bit of y,
// failing with ErrNotSquare if x³+a·x+b is a non-residue.
func Decompress(c *Curve[gfp.Element, *gfp.Element, *gfp.Field], x *fixedint.Int, yBit int) (*Point[gfp.Element, *gfp.Element], error) {
	f := c.field
	xe := f.Elem(x)

	t1 := f.Zero().Mul(xe, c.a)
	t1 = f.Zero().Add(t1, c.b)

	y2 := f.Zero().Sqr(xe)
	y2 = f.Zero().Mul(y2, xe)
	y2 = f.Zero().Add(y2, t1)

	y, ok := f.Zero().Sqrt(y2)
	if !ok {
		return nil, fmt.Errorf("curve: %w: x³+a·x+b is not a square", eclerr.ErrNotSquare)
	}
	if int(y.Normal().Bit(0)) != yBit {
		y = f.Zero().Neg(y)
	}

	return c.AffinePoint(xe, y), nil
}
