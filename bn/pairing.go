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
	"github.com/jkowalsk/ecl128/fp12"
	"github.com/jkowalsk/ecl128/fp2"
	"github.com/jkowalsk/ecl128/fp6"
)

// Pairing computes the optimal ate pairing E(Fp)[r] x E'(Fp2)[r] -> Fp12[r]
// (spec.md §4.8), the concrete replacement for original_source/ecl's
// BNPairing class. mulFp2Fp2/multL port the sparse line-multiply
// (BNPairing::mulFp2Fp2/mult_L) that the Miller loop uses to fold each
// line evaluation into the running product without paying for a full
// fp12.Mul; the cyclotomic squaring the hard part of the final
// exponentiation uses lives in fp12.Element.SquareCyclotomic (see
// DESIGN.md).
type Pairing struct {
	e1    *G1Curve
	e2    *G2Curve
	fp2f  *fp2.Field
	fp6f  *fp6.Field
	fp12f *fp12.Field

	tNAF  []int32
	sNAF  []int32
	tSign int
}

func newPairing(def definition) (*Pairing, error) {
	e1, err := newG1Curve(def)
	if err != nil {
		return nil, err
	}
	e2, err := newG2Curve(def)
	if err != nil {
		return nil, err
	}
	fp6f, err := fp6.New(e2.field)
	if err != nil {
		return nil, err
	}
	fp12f, err := fp12.New(fp6f)
	if err != nil {
		return nil, err
	}

	prm := e1.params
	tNAF := prm.t.WNAF(2)
	sMag, sSign := sixTPlus2(prm.t, prm.tSign)
	sNAF := sMag.WNAF(2)
	_ = sSign // the sign of s only matters through tSign, folded in at the end of millerLoop/finalExp

	return &Pairing{
		e1: e1, e2: e2,
		fp2f: e2.field, fp6f: fp6f, fp12f: fp12f,
		tNAF: tNAF, sNAF: sNAF, tSign: prm.tSign,
	}, nil
}

// E1 returns the base curve.
func (pr *Pairing) E1() *G1Curve { return pr.e1 }

// E2 returns the twist.
func (pr *Pairing) E2() *G2Curve { return pr.e2 }

// Field returns the target Fp12 field.
func (pr *Pairing) Field() *fp12.Field { return pr.fp12f }

func fp2Double(x *fp2.Element) *fp2.Element { return x.Field().Zero().Add(x, x) }
func fp2Triple(x *fp2.Element) *fp2.Element { d := fp2Double(x); return x.Field().Zero().Add(d, x) }
func fp2Quad(x *fp2.Element) *fp2.Element   { d := fp2Double(x); return x.Field().Zero().Add(d, d) }
func fp2Oct(x *fp2.Element) *fp2.Element    { q := fp2Quad(x); return x.Field().Zero().Add(q, q) }

// mulFp2Fp2 computes x*(ya + yb*v) for a full Fp6 element x against the
// sparse (ya,yb,0) multiplicand, saving the x2*y2 product and an addition
// a general fp6.Mul would spend on the always-zero third coordinate.
// Grounded on bnpairing.cpp's BNPairing::mulFp2Fp2.
func mulFp2Fp2(fp6f *fp6.Field, x *fp6.Element, ya, yb *fp2.Element) *fp6.Element {
	f2 := fp6f.Base()
	x0, x1, x2 := x.A0(), x.A1(), x.A2()

	v0 := f2.Zero().Mul(x0, ya)
	v1 := f2.Zero().Mul(x1, yb)

	z0 := f2.Zero().Add(x1, x2)
	z0.Mul(z0, yb)
	z0.Sub(z0, v1)
	z0.Mul(z0, fp6f.Xi())
	z0.Add(z0, v0)

	z1 := f2.Zero().Add(x0, x1)
	tmp := f2.Zero().Add(ya, yb)
	z1.Mul(z1, tmp)
	z1.Sub(z1, v0)
	z1.Sub(z1, v1)

	z2 := f2.Zero().Add(x0, x2)
	z2.Mul(z2, ya)
	z2.Sub(z2, v0)
	z2.Add(z2, v1)

	return fp6f.Elem(z0, z1, z2)
}

// multL computes f*lqq exploiting lqq's sparse shape (spec.md §4.8's line
// function shape: a0=(α,0,0), a1=(β0,β1,0) in Fp6 coordinates), the line-
// accumulation step of the Miller loop, cheaper than a full fp12.Mul.
// Grounded on bnpairing.cpp's BNPairing::mult_L.
func (pr *Pairing) multL(f, lqq *fp12.Element) *fp12.Element {
	fp6f := pr.fp6f
	f0, f1 := f.A0(), f.A1()
	l0, l1 := lqq.A0(), lqq.A1()
	l00 := l0.A0()
	l10, l11 := l1.A0(), l1.A1()

	v0 := fp6f.Zero().MulBase(f0, l00)
	v1 := mulFp2Fp2(fp6f, f1, l10, l11)

	sum := fp6f.Zero().Add(f0, f1)
	tmp := pr.fp2f.Zero().Add(l00, l10)
	newF1 := mulFp2Fp2(fp6f, sum, tmp, l11)
	newF1.Sub(newF1, v0)
	newF1.Sub(newF1, v1)

	newF0 := fp6f.Zero().MulTau(v1)
	newF0.Add(newF0, v0)

	return pr.fp12f.Elem(newF0, newF1)
}

// doubleAndEvalLine computes T=[2]cur and the tangent-line evaluation at P,
// grounded on bnpairing.cpp's BNPairing::doubleAndEvalLine.
func (pr *Pairing) doubleAndEvalLine(P *G1Point, cur *G2Point) (*G2Point, *fp12.Element) {
	f2 := pr.fp2f

	qx, qy, qz, qz2 := cur.X, cur.Y, cur.Z, cur.Z2

	tmp0 := f2.Zero().Sqr(qx)
	tmp1 := f2.Zero().Sqr(qy)
	tmp2 := f2.Zero().Sqr(tmp1)

	tmp3 := f2.Zero().Add(tmp1, qx)
	tmp3 = f2.Zero().Sqr(tmp3)
	tmp3 = f2.Zero().Sub(tmp3, tmp0)
	tmp3 = f2.Zero().Sub(tmp3, tmp2)
	tmp3 = fp2Double(tmp3)

	tmp4 := fp2Triple(tmp0)
	tmp6 := f2.Zero().Add(tmp4, qx)
	tmp5 := f2.Zero().Sqr(tmp4)

	tx := f2.Zero().Sub(tmp5, tmp3)
	tx = f2.Zero().Sub(tx, tmp3)

	tz := f2.Zero().Add(qy, qz)
	tz = f2.Zero().Sqr(tz)
	tz = f2.Zero().Sub(tz, tmp1)
	tz = f2.Zero().Sub(tz, qz2)

	ty := f2.Zero().Sub(tmp3, tx)
	ty = f2.Zero().Mul(ty, tmp4)
	tmpA := fp2Oct(tmp2)
	ty = f2.Zero().Sub(ty, tmpA)

	tmp3b := f2.Zero().Mul(tmp4, qz2)
	tmp3b = fp2Double(tmp3b)
	tmp3b = f2.Zero().Neg(tmp3b)
	tmp3b = f2.Zero().MulBase(tmp3b, P.X)

	tmp6b := f2.Zero().Sqr(tmp6)
	tmp6b = f2.Zero().Sub(tmp6b, tmp0)
	tmp6b = f2.Zero().Sub(tmp6b, tmp5)
	tmpB := fp2Quad(tmp1)
	tmp6b = f2.Zero().Sub(tmp6b, tmpB)

	tmp0b := f2.Zero().Mul(tz, qz2)
	tmp0b = fp2Double(tmp0b)
	tmp0b = f2.Zero().MulBase(tmp0b, P.Y)

	a0 := pr.fp6f.Elem(tmp0b, f2.Zero(), f2.Zero())
	a1 := pr.fp6f.Elem(tmp3b, tmp6b, f2.Zero())
	lqq := pr.fp12f.Elem(a0, a1)

	tNew := pr.e2.JacobianPoint(tx, ty, tz)
	return tNew, lqq
}

// addAndEvalLine computes T=cur+Q and the line evaluation at P through Q and
// cur, grounded on bnpairing.cpp's BNPairing::addAndEvalLine.
func (pr *Pairing) addAndEvalLine(P *G1Point, Q, cur *G2Point) (*G2Point, *fp12.Element) {
	f2 := pr.fp2f

	rx, ry, rz, rz2 := cur.X, cur.Y, cur.Z, cur.Z2
	qx, qy := Q.X, Q.Y

	t0 := f2.Zero().Mul(qx, rz2)

	t1 := f2.Zero().Add(qy, rz)
	t1 = f2.Zero().Sqr(t1)
	qy2 := f2.Zero().Sqr(qy)
	t1 = f2.Zero().Sub(t1, qy2)
	t1 = f2.Zero().Sub(t1, rz2)
	t1 = f2.Zero().Mul(t1, rz2)

	t2 := f2.Zero().Sub(t0, rx)

	t3 := f2.Zero().Sqr(t2)

	t4 := fp2Quad(t3)

	t5 := f2.Zero().Mul(t4, t2)

	t6 := f2.Zero().Sub(t1, ry)
	t6 = f2.Zero().Sub(t6, ry)

	t9 := f2.Zero().Mul(t6, qx)

	t7 := f2.Zero().Mul(t4, rx)

	tx := f2.Zero().Sqr(t6)
	tx = f2.Zero().Sub(tx, t5)
	tx = f2.Zero().Sub(tx, t7)
	tx = f2.Zero().Sub(tx, t7)

	tz := f2.Zero().Add(rz, t2)
	tz = f2.Zero().Sqr(tz)
	tz = f2.Zero().Sub(tz, rz2)
	tz = f2.Zero().Sub(tz, t3)

	t10 := f2.Zero().Add(tz, qy)

	t8 := f2.Zero().Sub(t7, tx)
	t8 = f2.Zero().Mul(t8, t6)

	t0b := f2.Zero().Mul(ry, t5)
	t0b = fp2Double(t0b)

	ty := f2.Zero().Sub(t8, t0b)

	t10 = f2.Zero().Sqr(t10)
	t10 = f2.Zero().Sub(t10, qy2)
	tmpSqrTz := f2.Zero().Sqr(tz)
	t10 = f2.Zero().Sub(t10, tmpSqrTz)

	t9b := fp2Double(t9)
	t9b = f2.Zero().Sub(t9b, t10)

	t10b := f2.Zero().MulBase(tz, P.Y)
	t10b = fp2Double(t10b)

	t6neg := f2.Zero().Neg(t6)

	t1b := f2.Zero().MulBase(t6neg, P.X)
	t1b = fp2Double(t1b)

	a0 := pr.fp6f.Elem(t10b, f2.Zero(), f2.Zero())
	a1 := pr.fp6f.Elem(t1b, t9b, f2.Zero())
	lqq := pr.fp12f.Elem(a0, a1)

	tNew := pr.e2.JacobianPoint(tx, ty, tz)
	return tNew, lqq
}

// millerLoop computes f = prod of line evaluations along the |6t+2| NAF walk
// plus the two Frobenius correction steps, grounded on
// BNPairing::millerLoop.
func (pr *Pairing) millerLoop(P *G1Point, Q *G2Point) (*fp12.Element, error) {
	pp := P.Clone()
	pr.e1.Normalize(pp)
	qq := Q.Clone()
	pr.e2.Normalize(qq)

	f := pr.fp12f.One()
	t := qq.Clone()
	mq := pr.e2.Neg(qq)

	for i := len(pr.sNAF) - 2; i >= 0; i-- {
		var lqq *fp12.Element
		f.Square(f)
		t, lqq = pr.doubleAndEvalLine(pp, t)
		f = pr.multL(f, lqq)

		if pr.sNAF[i] != 0 {
			addend := qq
			if pr.sNAF[i] < 0 {
				addend = mq
			}
			t, lqq = pr.addAndEvalLine(pp, addend, t)
			f = pr.multL(f, lqq)
		}
	}

	q1, err := pr.e2.Frobenius(qq, 1)
	if err != nil {
		return nil, err
	}
	q2, err := pr.e2.Frobenius(qq, 2)
	if err != nil {
		return nil, err
	}
	q2 = pr.e2.Neg(q2)

	if pr.tSign < 0 {
		t = pr.e2.Neg(t)
		f.Conjugate(f)
	}

	var lqq *fp12.Element
	t, lqq = pr.addAndEvalLine(pp, q1, t)
	f = pr.multL(f, lqq)
	_, lqq = pr.addAndEvalLine(pp, q2, t)
	f = pr.multL(f, lqq)

	return f, nil
}

// expT computes f^t via the |t|-NAF walk and a cyclotomic squaring,
// grounded on BNPairing::exp_t. The sign of t is applied by callers
// (finalExp), the same way original_source/ecl's callers conjugate the
// result when t_sign_ < 0 rather than folding the sign in here.
func (pr *Pairing) expT(f *fp12.Element) *fp12.Element {
	invF := pr.fp12f.Zero().Conjugate(f)
	tmp := f.Clone()
	for i := len(pr.tNAF) - 2; i >= 0; i-- {
		tmp.SquareCyclotomic(tmp)
		if pr.tNAF[i] > 0 {
			tmp.Mul(tmp, f)
		} else if pr.tNAF[i] < 0 {
			tmp.Mul(tmp, invF)
		}
	}
	return tmp
}

// finalExp raises f to (p^12-1)/r: the easy part clears f into the
// cyclotomic subgroup, the hard part is the Devegili-Scott-Dahab addition
// chain using the BN parameter t, grounded on
// BNPairing::finalExp.
func (pr *Pairing) finalExp(f *fp12.Element) (*fp12.Element, error) {
	f12 := pr.fp12f

	y1 := f12.Zero().Conjugate(f)
	y2 := f12.Zero().Invert(f)
	ff := f12.Zero().Mul(y2, y1)

	ff2, err := f12.Zero().Frobenius(ff, 2)
	if err != nil {
		return nil, err
	}
	ff = f12.Zero().Mul(ff2, ff)

	y0 := pr.expT(ff)
	y0 = f12.Zero().SquareCyclotomic(y0)

	y1 = f12.Zero().SquareCyclotomic(y0)
	y1 = f12.Zero().Mul(y1, y0)

	y2 = pr.expT(y1)

	y3 := f12.Zero().SquareCyclotomic(y2)
	y3 = pr.expT(y3)

	if pr.tSign < 0 {
		y0 = f12.Zero().Conjugate(y0)
		y1 = f12.Zero().Conjugate(y1)
		y3 = f12.Zero().Conjugate(y3)
	}

	y3 = f12.Zero().Mul(y3, y2)
	y3 = f12.Zero().Mul(y3, y1)

	y0 = f12.Zero().Conjugate(y0)
	y0 = f12.Zero().Mul(y3, y0)

	y2 = f12.Zero().Mul(y2, y3)
	y2 = f12.Zero().Mul(y2, ff)

	ffConj := f12.Zero().Conjugate(ff)
	ffConj = f12.Zero().Mul(ffConj, y0)
	ffConj, err = f12.Zero().Frobenius(ffConj, 3)
	if err != nil {
		return nil, err
	}
	ffConj = f12.Zero().Mul(ffConj, y2)

	y0f, err := f12.Zero().Frobenius(y0, 1)
	if err != nil {
		return nil, err
	}
	ffConj = f12.Zero().Mul(ffConj, y0f)

	y3f, err := f12.Zero().Frobenius(y3, 2)
	if err != nil {
		return nil, err
	}
	res := f12.Zero().Mul(ffConj, y3f)
	return res, nil
}

// Pair computes the optimal ate pairing of P (in E/Fp) and Q (in E'/Fp2),
// grounded on BNPairing::pair.
func (pr *Pairing) Pair(P *G1Point, Q *G2Point) (*fp12.Element, error) {
	f, err := pr.millerLoop(P, Q)
	if err != nil {
		return nil, err
	}
	return pr.finalExp(f)
}
