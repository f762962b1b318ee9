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
	"math/bits"

	"github.com/jkowalsk/ecl128/fixedint"
)

// wide is a double-wide (plus one guard limb) integer: the unreduced
// product of two field elements, per spec.md §3 GFp::Double. Nine 64-bit
// limbs give headroom above the 512-bit double width so that R·p (the
// comparison constant used by reduction and by Double addition) never
// overflows even when p's top bit is set.
type wide struct {
	d [9]uint64
}

func (z *wide) set(x *wide) *wide { z.d = x.d; return z }

func (z *wide) isZero() bool { return z.d == [9]uint64{} }

func (z *wide) cmp(x *wide) int {
	for i := len(z.d) - 1; i >= 0; i-- {
		if z.d[i] != x.d[i] {
			if z.d[i] < x.d[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// addAt ripple-adds val into limb pos, propagating the carry as far right
// as it takes. This is the one primitive every wide accumulation below is
// built from, so there is exactly one place carry propagation can be
// wrong.
func (z *wide) addAt(pos int, val uint64) {
	for val != 0 && pos < len(z.d) {
		var carry uint64
		z.d[pos], carry = bits.Add64(z.d[pos], val, 0)
		val = carry
		pos++
	}
}

// subAt ripple-subtracts val from limb pos.
func (z *wide) subAt(pos int, val uint64) {
	for val != 0 && pos < len(z.d) {
		var borrow uint64
		z.d[pos], borrow = bits.Sub64(z.d[pos], val, 0)
		val = borrow
		pos++
	}
}

func (z *wide) add(x, y *wide) *wide {
	var carry uint64
	for i := range z.d {
		z.d[i], carry = bits.Add64(x.d[i], y.d[i], carry)
	}
	return z
}

func (z *wide) sub(x, y *wide) *wide {
	var borrow uint64
	for i := range z.d {
		z.d[i], borrow = bits.Sub64(x.d[i], y.d[i], borrow)
	}
	return z
}

// addShifted adds x, shifted up by limbOffset limbs, into z in place.
func (z *wide) addShifted(x *fixedint.Int, limbOffset int) {
	for i := 0; i < fixedint.Nlimbs; i++ {
		z.addAt(limbOffset+i, x.Limb(i))
	}
}

// mulAddShifted adds x*m, shifted up by limbOffset limbs, into z in place.
// Used both by mulWide (one call per limb of the multiplier) and by
// Montgomery reduction (one call per reduction step, with m = the computed
// ki and x = p).
func (z *wide) mulAddShifted(x *fixedint.Int, m uint64, limbOffset int) {
	for j := 0; j < fixedint.Nlimbs; j++ {
		hi, lo := bits.Mul64(x.Limb(j), m)
		z.addAt(limbOffset+j, lo)
		z.addAt(limbOffset+j+1, hi)
	}
}

func (z *wide) lo() *fixedint.Int {
	out := fixedint.Zero()
	for i := 0; i < fixedint.Nlimbs; i++ {
		out.SetLimb(i, z.d[i])
	}
	return out
}

func (z *wide) hi() *fixedint.Int {
	out := fixedint.Zero()
	for i := 0; i < fixedint.Nlimbs; i++ {
		out.SetLimb(i, z.d[fixedint.Nlimbs+i])
	}
	return out
}

func (z *wide) setLo(x *fixedint.Int) {
	for i := 0; i < fixedint.Nlimbs; i++ {
		z.d[i] = x.Limb(i)
	}
}

func (z *wide) setHi(x *fixedint.Int) {
	for i := 0; i < fixedint.Nlimbs; i++ {
		z.d[fixedint.Nlimbs+i] = x.Limb(i)
	}
}

// mulWide computes the full, untruncated 256x256->512 bit product of x, y.
func mulWide(x, y *fixedint.Int) *wide {
	z := &wide{}
	for i := 0; i < fixedint.Nlimbs; i++ {
		z.mulAddShifted(x, y.Limb(i), i)
	}
	return z
}
