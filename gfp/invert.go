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

import "github.com/jkowalsk/ecl128/fixedint"

// signed is a sign-and-magnitude integer used only by the binary extended
// gcd below: the classic bound on that algorithm's Bezout coefficients
// (|A|,|B|,|C|,|D| <= y throughout, see HAC Algorithm 14.61) keeps every
// stored coefficient within the field width, so fixedint.Int is wide enough
// to hold A, B, C and D themselves. The transient sum A+p (or C+p) the odd
// branch would otherwise form before halving is a different matter — it can
// need one bit more than p — so that step goes through halveAfterAddingP
// instead of signed.add, which never materializes a sum wider than p.
type signed struct {
	mag fixedint.Int
	neg bool
}

func signedFromUnsigned(x *fixedint.Int) signed { return signed{mag: *x} }

func (a signed) isEven() bool { return a.mag.Bit(0) == 0 }

func (a signed) add(b signed) signed {
	if a.mag.IsZero() {
		return b
	}
	if b.mag.IsZero() {
		return a
	}
	if a.neg == b.neg {
		sum := fixedint.Zero()
		sum.Add(&a.mag, &b.mag)
		return signed{mag: *sum, neg: a.neg}
	}
	if a.mag.Cmp(&b.mag) >= 0 {
		d := fixedint.Zero()
		d.Sub(&a.mag, &b.mag)
		return signed{mag: *d, neg: !d.IsZero() && a.neg}
	}
	d := fixedint.Zero()
	d.Sub(&b.mag, &a.mag)
	return signed{mag: *d, neg: !d.IsZero() && b.neg}
}

func (a signed) negate() signed {
	if a.mag.IsZero() {
		return a
	}
	return signed{mag: a.mag, neg: !a.neg}
}

func (a signed) sub(b signed) signed { return a.add(b.negate()) }

func (a signed) halve() signed {
	h := fixedint.Zero()
	h.Rsh(&a.mag, 1)
	return signed{mag: *h, neg: !h.IsZero() && a.neg}
}

// halveAfterAddingP returns (a+p)/2 for a bounded by |a| <= p, the update
// binaryExtendedGCDInverse's odd branch applies to A and C. a+p itself can
// need one more bit than p (up to 2p, e.g. for Naering256 where p is just
// over 2^255), which signed's 256-bit magnitude cannot hold, so this avoids
// ever forming that sum: when a < 0, (a+p)/2 = (p-|a|)/2 directly, and
// p-|a| <= p already fits; when a >= 0, (a+p)/2 = p - (p-a)/2, and p-a <= p
// fits too, so every intermediate stays within the field width.
func halveAfterAddingP(a signed, p *fixedint.Int) signed {
	diff := fixedint.Zero()
	diff.Sub(p, &a.mag)
	half := signed{mag: *diff}.halve()
	if a.neg {
		return half
	}
	return signed{mag: *p}.sub(half)
}

// modReduce folds a signed value (bounded in magnitude by p) into [0, p).
func (a signed) modReduce(p *fixedint.Int) *fixedint.Int {
	if !a.neg {
		r := a.mag
		for r.Cmp(p) >= 0 {
			r.Sub(&r, p)
		}
		return &r
	}
	r := a.mag
	for r.Cmp(p) >= 0 {
		r.Sub(&r, p)
	}
	out := fixedint.Zero()
	if !r.IsZero() {
		out.Sub(p, &r)
	}
	return out
}

// binaryExtendedGCDInverse implements HAC Algorithm 14.61 specialized to
// y=p odd (so the initial common-factor-of-2 extraction never triggers):
// it returns C such that C*x ≡ gcd(x,p) (mod p), i.e. x^-1 mod p when
// gcd(x,p)=1. This is the "binary extended Euclidean algorithm" spec.md
// §4.2 calls for as the variable-time alternative to Fermat exponentiation.
func binaryExtendedGCDInverse(x, p *fixedint.Int) *fixedint.Int {
	u, v := x.Clone(), p.Clone()
	A, B := signed{mag: *fixedint.FromUint64(1)}, signed{}
	C, D := signed{}, signed{mag: *fixedint.FromUint64(1)}

	for !u.IsZero() {
		for u.Bit(0) == 0 {
			u.Rsh(u, 1)
			if A.isEven() && B.isEven() {
				A, B = A.halve(), B.halve()
			} else {
				A = halveAfterAddingP(A, p)
				B = B.sub(signedFromUnsigned(x)).halve()
			}
		}
		for v.Bit(0) == 0 {
			v.Rsh(v, 1)
			if C.isEven() && D.isEven() {
				C, D = C.halve(), D.halve()
			} else {
				C = halveAfterAddingP(C, p)
				D = D.sub(signedFromUnsigned(x)).halve()
			}
		}
		if u.Cmp(v) >= 0 {
			u.Sub(u, v)
			A, B = A.sub(C), B.sub(D)
		} else {
			v.Sub(v, u)
			C, D = C.sub(A), D.sub(B)
		}
	}
	return C.modReduce(p)
}
