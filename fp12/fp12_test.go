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

package fp12

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jkowalsk/ecl128/fixedint"
	"github.com/jkowalsk/ecl128/fp2"
	"github.com/jkowalsk/ecl128/fp6"
	"github.com/jkowalsk/ecl128/gfp"
)

const aranha254Prime = "2523648240000001ba344d80000000086121000000000013a700000000000013"

func testField(t *testing.T) *Field {
	t.Helper()
	base, err := gfp.NewField(aranha254Prime)
	require.NoError(t, err)
	f2, err := fp2.New(base)
	require.NoError(t, err)
	f6, err := fp6.New(f2)
	require.NoError(t, err)
	f12, err := New(f6)
	require.NoError(t, err)
	return f12
}

func elem6(f6 *fp6.Field, a0, a1, a2 uint64) *fp6.Element {
	f2 := f6.Base()
	gb := f2.Base()
	mk := func(v uint64) *fp2.Element { return f2.Elem(gb.Elem(fixedint.FromUint64(v)), gb.Zero()) }
	return f6.Elem(mk(a0), mk(a1), mk(a2))
}

func elem(f *Field, a0, a1 [3]uint64) *Element {
	f6 := f.Base()
	x0 := elem6(f6, a0[0], a0[1], a0[2])
	x1 := elem6(f6, a1[0], a1[1], a1[2])
	return f.Elem(x0, x1)
}

func TestFp12MulCommutesAndDistributes(t *testing.T) {
	f := testField(t)
	a := elem(f, [3]uint64{3, 5, 7}, [3]uint64{2, 4, 6})
	b := elem(f, [3]uint64{11, 13, 17}, [3]uint64{9, 8, 1})
	c := elem(f, [3]uint64{19, 23, 29}, [3]uint64{12, 15, 18})

	ab := f.Zero().Mul(a, b)
	ba := f.Zero().Mul(b, a)
	require.True(t, ab.Eq(ba))

	lhs := f.Zero().Mul(a, f.Zero().Add(b, c))
	rhs := f.Zero().Add(f.Zero().Mul(a, b), f.Zero().Mul(a, c))
	require.True(t, lhs.Eq(rhs))
}

func TestFp12SquareMatchesMul(t *testing.T) {
	f := testField(t)
	a := elem(f, [3]uint64{31, 37, 41}, [3]uint64{2, 3, 5})
	require.True(t, f.Zero().Square(a).Eq(f.Zero().Mul(a, a)))
}

func TestFp12Identities(t *testing.T) {
	f := testField(t)
	a := elem(f, [3]uint64{43, 47, 53}, [3]uint64{6, 7, 8})
	require.True(t, f.Zero().Add(a, f.Zero()).Eq(a))
	require.True(t, f.Zero().Mul(a, f.One()).Eq(a))
	require.True(t, f.Zero().Add(a, f.Zero().Neg(a)).IsZero())
}

func TestFp12Inverse(t *testing.T) {
	f := testField(t)
	a := elem(f, [3]uint64{59, 61, 67}, [3]uint64{4, 9, 2})
	inv := f.Zero().Invert(a)
	require.True(t, f.Zero().Mul(a, inv).IsOne())
}

func TestFp12ConjugateIsInvolution(t *testing.T) {
	f := testField(t)
	a := elem(f, [3]uint64{71, 73, 79}, [3]uint64{5, 5, 5})
	require.True(t, f.Zero().Conjugate(f.Zero().Conjugate(a)).Eq(a))
}

func TestFp12FrobeniusComposesSquare(t *testing.T) {
	f := testField(t)
	a := elem(f, [3]uint64{83, 89, 97}, [3]uint64{3, 6, 9})

	once, err := f.Zero().Frobenius(a, 1)
	require.NoError(t, err)
	twice, err := f.Zero().Frobenius(once, 1)
	require.NoError(t, err)

	viaP2, err := f.Zero().Frobenius(a, 2)
	require.NoError(t, err)
	require.True(t, twice.Eq(viaP2))

	_, err = f.Zero().Frobenius(a, 4)
	require.Error(t, err)
}

// cyclotomicElement projects a into the order-Φ12(p) cyclotomic subgroup
// the same way finalExp's easy part does: a^(p^6-1), then raised to
// (p^2+1). Any element built this way is a genuine subgroup member, unlike
// an arbitrary Fp12 element, so SquareCyclotomic's compressed formula (valid
// only on the subgroup) can be checked against it meaningfully.
func cyclotomicElement(f *Field, a *Element) *Element {
	y1 := f.Zero().Conjugate(a)
	y2 := f.Zero().Invert(a)
	ff := f.Zero().Mul(y2, y1)

	ff2, err := f.Zero().Frobenius(ff, 2)
	if err != nil {
		panic(err)
	}
	return f.Zero().Mul(ff2, ff)
}

func TestFp12SquareCyclotomicMatchesSquareOnSubgroupElement(t *testing.T) {
	f := testField(t)
	a := elem(f, [3]uint64{2, 3, 4}, [3]uint64{5, 6, 7})
	cyc := cyclotomicElement(f, a)

	require.True(t, f.Zero().Conjugate(cyc).Eq(f.Zero().Invert(cyc)),
		"sanity check: cyc should lie in the cyclotomic subgroup where conjugate = inverse")

	require.True(t, f.Zero().SquareCyclotomic(cyc).Eq(f.Zero().Square(cyc)))
}

func TestFp12ExpMatchesRepeatedMul(t *testing.T) {
	f := testField(t)
	a := elem(f, [3]uint64{2, 1, 0}, [3]uint64{0, 1, 1})

	byRepeatedMul := f.One()
	for i := 0; i < 11; i++ {
		byRepeatedMul = f.Zero().Mul(byRepeatedMul, a)
	}
	byExp := f.Zero().Exp(a, fixedint.FromUint64(11))
	require.True(t, byRepeatedMul.Eq(byExp))
}
