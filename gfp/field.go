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

// Package gfp implements spec.md §4.2: the Montgomery-form prime field GFp
// that every tower extension (fp2, fp6, fp12) and curve in this module is
// ultimately built from. An Element stores a·R mod p for a field instance's
// own R = 2^256 mod p; "one" is R, "zero" is 0.
package gfp

import (
	"fmt"

	"github.com/jkowalsk/ecl128/eclerr"
	"github.com/jkowalsk/ecl128/fixedint"
)

// Field owns the Montgomery constants for one prime p. Every Element it
// produces is only ever combined with Elements from the same Field —
// mixing Elements from two Fields is a caller error, not something this
// package detects (spec.md §5: sharing state across instances is the
// caller's responsibility).
type Field struct {
	p    fixedint.Int // modulus, normal form
	r    fixedint.Int // R = 2^256 mod p (Montgomery encoding of 1)
	r2   fixedint.Int // R^2 mod p
	r3   fixedint.Int // R^3 mod p
	mu   uint64       // -p[0]^-1 mod 2^64
	rp   wide         // R*p, the bound Double arithmetic reduces against
	bits int          // bit length of p
}

// NewField builds the field GF(p) from p's canonical hex string (optionally
// signed, per spec.md §4.2 fromString — though a negative characteristic is
// rejected). p must be odd; the caller guarantees it is prime.
func NewField(pHex string) (*Field, error) {
	mag, neg, err := fixedint.FromHex(pHex)
	if err != nil {
		return nil, fmt.Errorf("gfp: %w: %v", eclerr.ErrInvalidValue, err)
	}
	if neg || mag.IsZero() || mag.Bit(0) == 0 {
		return nil, fmt.Errorf("gfp: %w: characteristic must be odd and positive", eclerr.ErrInvalidValue)
	}
	return newFieldFromInt(mag)
}

func newFieldFromInt(p *fixedint.Int) (*Field, error) {
	f := &Field{p: *p}
	f.bits = p.CountBits()
	f.mu = montgomeryMu(p.Limb(0))

	// R = 2^256 mod p via repeated doubling from 1, per spec.md §4.2.
	one := fixedint.FromUint64(1)
	f.r = *doubleMod(one, p, fixedint.Nlimbs*fixedint.Wbits)
	f.r2 = *doubleMod(&f.r, p, fixedint.Nlimbs*fixedint.Wbits)
	f.r3 = *doubleMod(&f.r2, p, fixedint.Nlimbs*fixedint.Wbits)
	f.rp = *mulWide(&f.r, p)
	return f, nil
}

// montgomeryMu computes -p0^-1 mod 2^64 via the Newton/Hensel iteration of
// spec.md §4.2: seed a 4-bit-correct inverse, then double the correct
// precision each round until a full word is reached.
func montgomeryMu(p0 uint64) uint64 {
	x := (((p0 + 2) & 4) << 1) + p0
	for i := 0; i < 6; i++ {
		x = x * (2 - p0*x)
	}
	return -x
}

// doubleMod returns (v * 2^k) mod p, computed by k rounds of "double, then
// conditionally subtract p" — spec.md §4.2's construction of R, R², R³.
func doubleMod(v, p *fixedint.Int, k int) *fixedint.Int {
	acc := v.Clone()
	for i := 0; i < k; i++ {
		carry := acc.Add(acc, acc)
		if carry != 0 || acc.Cmp(p) >= 0 {
			acc.Sub(acc, p)
		}
	}
	return acc
}

// Bits returns the bit length of the field characteristic.
func (f *Field) Bits() int { return f.bits }

// P returns the field characteristic as a normal-form Int (a copy).
func (f *Field) P() *fixedint.Int { return f.p.Clone() }

// reduce performs Montgomery reduction (spec.md §4.2): a 512-bit product is
// folded down to a single N-limb result in [0, p) via N rounds of
// "eliminate the bottom limb by adding a multiple of p", each shift
// implicit because addAt targets the round's limb offset directly.
func (f *Field) reduce(d *wide) *fixedint.Int {
	acc := &wide{d: d.d}
	for i := 0; i < fixedint.Nlimbs; i++ {
		k := acc.d[i] * f.mu
		acc.mulAddShifted(&f.p, k, i)
	}
	res := acc.hi()
	// acc's top limb (the 9th) may still carry an overflow bit that hi()
	// does not see: the true value is extra*2^256 + res. Each subtraction
	// of p either borrows out of res (which retires one unit of extra, by
	// construction of 256-bit wraparound subtraction) or doesn't (in which
	// case res alone was still >= p and extra is left for the next round).
	extra := acc.d[len(acc.d)-1]
	for extra != 0 {
		if res.Sub(res, &f.p) != 0 {
			extra--
		}
	}
	for res.Cmp(&f.p) >= 0 {
		res.Sub(res, &f.p)
	}
	return res
}
