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

// Package bn implements spec.md §4.7/§4.8: the Barreto-Naehrig curve
// specialization (E/Fp, its sextic twist E'/Fp2) and the optimal ate
// pairing into Fp12, grounded on original_source/ecl/src/curve/bncurve.cpp
// and bnpairing.cpp (the C++ BnCurve<Basefield>/BNPairing classes this
// package's G1Curve/G2Curve/Pairing replace, one concrete type per
// instantiation rather than a shared template).
package bn

import (
	"fmt"

	"github.com/jkowalsk/ecl128/eclerr"
	"github.com/jkowalsk/ecl128/fixedint"
)

// CurveID names a BN curve curve_factory/bn_pairing_factory knows how to
// build (spec.md §6 bn_curve_factory).
type CurveID int

const (
	Beuchat254 CurveID = iota
	Aranha254
	Naering256
)

type definition struct {
	t    string
	b    string
	bits int
}

// Definitions copied verbatim from original_source/ecl/include/ecl/curve/
// bncurve.h's beuchat_254_curve/aranha_254_curve/naering_256_curve.
var definitions = map[CurveID]definition{
	Beuchat254: {t: "3FC0100000000000", b: "5", bits: 254},
	Aranha254:  {t: "-4080000000000001", b: "2", bits: 254},
	Naering256: {t: "-600000000000219B", b: "3", bits: 256},
}

// fiAdd/fiSub wrap fixedint.Int's in-place Add/Sub (which return the
// carry/borrow, not the result) into ordinary value-returning helpers, for
// the plain (non-field) 256-bit arithmetic the BN parameter formulas need.
func fiAdd(x, y *fixedint.Int) *fixedint.Int {
	z := fixedint.Zero()
	z.Add(x, y)
	return z
}

func fiSub(x, y *fixedint.Int) *fixedint.Int {
	z := fixedint.Zero()
	z.Sub(x, y)
	return z
}

func lookup(id CurveID) (definition, error) {
	def, ok := definitions[id]
	if !ok {
		return definition{}, fmt.Errorf("bn: %w: unknown curve id %d", eclerr.ErrInvalidValue, id)
	}
	return def, nil
}

// params holds the derived BN parameters shared by both E/Fp and its twist:
// p (the base field characteristic), r (the curve/twist order) and tr (the
// Frobenius trace), plus t and its sign as parsed from the curve's string
// definition.
type params struct {
	t     *fixedint.Int
	tSign int // +1 or -1
	p     *fixedint.Int
	r     *fixedint.Int
	tr    *fixedint.Int
}

// deriveParams computes p, r, tr from t (spec.md §4.7), the way
// BnCurve<Basefield>::set_prime/set_order/set_trace do: plain fixed-width
// integer arithmetic (no field reduction — these values define the field,
// they cannot yet live inside one), with the sign of t flipping the sign of
// every odd-degree term.
func deriveParams(tHex string) (*params, error) {
	mag, neg, err := fixedint.FromHex(tHex)
	if err != nil {
		return nil, fmt.Errorf("bn: %w: %v", eclerr.ErrInvalidValue, err)
	}
	sign := 1
	if neg {
		sign = -1
	}

	t2 := fixedint.Zero().Mul(mag, mag)
	t3 := fixedint.Zero().Mul(t2, mag)
	t4 := fixedint.Zero().Mul(t3, mag)

	addOrSub := func(acc, term *fixedint.Int) *fixedint.Int {
		if sign > 0 {
			return fiAdd(acc, term)
		}
		return fiSub(acc, term)
	}
	scale := func(x *fixedint.Int, c uint64) *fixedint.Int {
		return fixedint.Zero().Mul(x, fixedint.FromUint64(c))
	}

	// p = 36t^4 + 36t^3 + 24t^2 + 6t + 1
	p := scale(t4, 36)
	p = addOrSub(p, scale(t3, 36))
	p = fiAdd(p, scale(t2, 24))
	p = addOrSub(p, scale(mag, 6))
	p = fiAdd(p, fixedint.FromUint64(1))

	// r = 36t^4 + 36t^3 + 18t^2 + 6t + 1
	r := scale(t4, 36)
	r = addOrSub(r, scale(t3, 36))
	r = fiAdd(r, scale(t2, 18))
	r = addOrSub(r, scale(mag, 6))
	r = fiAdd(r, fixedint.FromUint64(1))

	// tr = 6t^2 + 1 (sign-independent: only an even power of t appears)
	tr := fiAdd(scale(t2, 6), fixedint.FromUint64(1))

	return &params{t: mag, tSign: sign, p: p, r: r, tr: tr}, nil
}

// sixTPlus2 computes s = |6t+2| and its sign (spec.md §4.8 init), the way
// BNPairing::get_6tp2 does.
func sixTPlus2(t *fixedint.Int, tSign int) (s *fixedint.Int, sSign int) {
	six := fixedint.Zero().Mul(t, fixedint.FromUint64(6))
	if tSign > 0 {
		return fiAdd(six, fixedint.FromUint64(2)), 1
	}
	// 6t is negative in sign but stored as a magnitude here (t is a
	// magnitude, tSign carries the sign), so 6t+2 with t negative means
	// -(6|t|)+2: if 6|t| >= 2 the magnitude is 6|t|-2 and stays negative.
	if six.Cmp(fixedint.FromUint64(2)) >= 0 {
		return fiSub(six, fixedint.FromUint64(2)), -1
	}
	return fiSub(fixedint.FromUint64(2), six), 1
}
