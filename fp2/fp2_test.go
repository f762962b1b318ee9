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

package fp2

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jkowalsk/ecl128/fixedint"
	"github.com/jkowalsk/ecl128/gfp"
)

const aranha254Prime = "2523648240000001ba344d80000000086121000000000013a700000000000013"

func testField(t *testing.T) *Field {
	t.Helper()
	base, err := gfp.NewField(aranha254Prime)
	require.NoError(t, err)
	f, err := New(base)
	require.NoError(t, err)
	return f
}

func elem(f *Field, a0, a1 uint64) *Element {
	b := f.Base()
	return f.Elem(b.Elem(fixedint.FromUint64(a0)), b.Elem(fixedint.FromUint64(a1)))
}

func TestFp2MulCommutesAndDistributes(t *testing.T) {
	f := testField(t)
	a, b, c := elem(f, 3, 5), elem(f, 7, 11), elem(f, 2, 9)

	ab := f.Zero().Mul(a, b)
	ba := f.Zero().Mul(b, a)
	require.True(t, ab.Eq(ba))

	lhs := f.Zero().Mul(a, f.Zero().Add(b, c))
	rhs := f.Zero().Add(f.Zero().Mul(a, b), f.Zero().Mul(a, c))
	require.True(t, lhs.Eq(rhs))
}

func TestFp2SquareMatchesMul(t *testing.T) {
	f := testField(t)
	a := elem(f, 13, 17)
	require.True(t, f.Zero().Square(a).Eq(f.Zero().Mul(a, a)))
}

func TestFp2Identities(t *testing.T) {
	f := testField(t)
	a := elem(f, 19, 23)
	require.True(t, f.Zero().Add(a, f.Zero()).Eq(a))
	require.True(t, f.Zero().Mul(a, f.One()).Eq(a))
	require.True(t, f.Zero().Add(a, f.Zero().Neg(a)).IsZero())
}

func TestFp2Inverse(t *testing.T) {
	f := testField(t)
	a := elem(f, 29, 31)
	inv := f.Zero().Invert(a)
	require.True(t, f.Zero().Mul(a, inv).IsOne())
}

func TestFp2FrobeniusIsConjugateOnOddPower(t *testing.T) {
	f := testField(t)
	a := elem(f, 41, 43)
	require.True(t, f.Zero().Frobenius(a, 1).Eq(f.Zero().Conjugate(a)))
	require.True(t, f.Zero().Frobenius(a, 2).Eq(a))
}

func TestFp2SqrtRoundTrips(t *testing.T) {
	f := testField(t)
	a := elem(f, 5, 7)
	sq := f.Zero().Square(a)

	root, ok := f.Zero().Sqrt(sq)
	require.True(t, ok)
	require.True(t, f.Zero().Square(root).Eq(sq))
}

func TestFp2XiIsNotACube(t *testing.T) {
	f := testField(t)
	xi, err := f.Xi()
	require.NoError(t, err)
	require.False(t, xi.IsZero())

	b := f.Base()
	norm := b.Zero().Sqr(xi.A0())
	norm.Sub(norm, b.Zero().Mul(f.Beta(), b.Zero().Sqr(xi.A1())))
	require.False(t, norm.IsCubicResidue())
}
