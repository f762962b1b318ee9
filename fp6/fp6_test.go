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

package fp6

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jkowalsk/ecl128/fixedint"
	"github.com/jkowalsk/ecl128/fp2"
	"github.com/jkowalsk/ecl128/gfp"
)

const aranha254Prime = "2523648240000001ba344d80000000086121000000000013a700000000000013"

func testField(t *testing.T) *Field {
	t.Helper()
	base, err := gfp.NewField(aranha254Prime)
	require.NoError(t, err)
	f2, err := fp2.New(base)
	require.NoError(t, err)
	f6, err := New(f2)
	require.NoError(t, err)
	return f6
}

func elem(f *Field, a0, a1, a2 uint64) *Element {
	b := f.Base()
	gb := b.Base()
	mk := func(v uint64) *fp2.Element { return b.Elem(gb.Elem(fixedint.FromUint64(v)), gb.Zero()) }
	return f.Elem(mk(a0), mk(a1), mk(a2))
}

func TestFp6MulCommutesAndDistributes(t *testing.T) {
	f := testField(t)
	a, b, c := elem(f, 3, 5, 7), elem(f, 11, 13, 17), elem(f, 2, 4, 9)

	ab := f.Zero().Mul(a, b)
	ba := f.Zero().Mul(b, a)
	require.True(t, ab.Eq(ba))

	lhs := f.Zero().Mul(a, f.Zero().Add(b, c))
	rhs := f.Zero().Add(f.Zero().Mul(a, b), f.Zero().Mul(a, c))
	require.True(t, lhs.Eq(rhs))
}

func TestFp6SquareMatchesMul(t *testing.T) {
	f := testField(t)
	a := elem(f, 19, 23, 29)
	require.True(t, f.Zero().Square(a).Eq(f.Zero().Mul(a, a)))
}

func TestFp6Identities(t *testing.T) {
	f := testField(t)
	a := elem(f, 31, 37, 41)
	require.True(t, f.Zero().Add(a, f.Zero()).Eq(a))
	require.True(t, f.Zero().Mul(a, f.One()).Eq(a))
	require.True(t, f.Zero().Add(a, f.Zero().Neg(a)).IsZero())
}

func TestFp6Inverse(t *testing.T) {
	f := testField(t)
	a := elem(f, 43, 47, 53)
	inv := f.Zero().Invert(a)
	require.True(t, f.Zero().Mul(a, inv).IsOne())
}

func TestFp6MulTauMatchesMulByV(t *testing.T) {
	f := testField(t)
	a := elem(f, 5, 7, 11)
	v := f.Elem(f.Base().Zero(), f.Base().One(), f.Base().Zero())

	byMulTau := f.Zero().MulTau(a)
	byMul := f.Zero().Mul(a, v)
	require.True(t, byMulTau.Eq(byMul))
}

func TestFp6ExpMatchesRepeatedMul(t *testing.T) {
	f := testField(t)
	a := elem(f, 3, 1, 2)

	byRepeatedMul := f.One()
	for i := 0; i < 9; i++ {
		byRepeatedMul = f.Zero().Mul(byRepeatedMul, a)
	}
	byExp := f.Zero().Exp(a, fixedint.FromUint64(9))
	require.True(t, byRepeatedMul.Eq(byExp))
}
