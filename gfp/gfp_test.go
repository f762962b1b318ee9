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
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jkowalsk/ecl128/fixedint"
)

// bn254Prime is the BN254 curve's base field characteristic
// (p ≡ 3 mod 4), the same family of prime the optimal ate pairing in
// package bn is built over.
const bn254Prime = "30644e72e131a029b85045b68181585d97816a916871ca8d3c208c16d87cfd47"

// naering256Prime is the base field characteristic of the Naering256 BN
// curve (bn.Naering256's p, derived from t = -0x600000000000219B the same
// way bn.deriveParams does). Unlike bn254Prime, p is just over 2^255 here,
// wide enough that binaryExtendedGCDInverse's odd-branch sum A+p can need
// one more bit than the field width holds.
const naering256Prime = "b64000000000ff2f2200000085fd5480b0001f44b6b88bf142bc818f95e3e6af"

func testField(t *testing.T) *Field {
	t.Helper()
	f, err := NewField(bn254Prime)
	require.NoError(t, err)
	return f
}

func elemFromUint64(f *Field, v uint64) *Element {
	return f.Elem(fixedint.FromUint64(v))
}

func TestFieldRoundTrip(t *testing.T) {
	f := testField(t)
	a, err := f.FromString("deadbeef")
	require.NoError(t, err)
	require.Equal(t, "deadbeef", trimLeadingZeros(a.String()))
}

func trimLeadingZeros(s string) string {
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	return s[i:]
}

func TestFieldAddCommutesAndAssociates(t *testing.T) {
	f := testField(t)
	a, b, c := elemFromUint64(f, 7), elemFromUint64(f, 11), elemFromUint64(f, 13)

	ab := f.Zero().Add(a, b)
	ba := f.Zero().Add(b, a)
	require.True(t, ab.Eq(ba))

	abc1 := f.Zero().Add(f.Zero().Add(a, b), c)
	abc2 := f.Zero().Add(a, f.Zero().Add(b, c))
	require.True(t, abc1.Eq(abc2))
}

func TestFieldMulCommutesAndDistributes(t *testing.T) {
	f := testField(t)
	a, b, c := elemFromUint64(f, 17), elemFromUint64(f, 19), elemFromUint64(f, 23)

	ab := f.Zero().Mul(a, b)
	ba := f.Zero().Mul(b, a)
	require.True(t, ab.Eq(ba))

	lhs := f.Zero().Mul(a, f.Zero().Add(b, c))
	rhs := f.Zero().Add(f.Zero().Mul(a, b), f.Zero().Mul(a, c))
	require.True(t, lhs.Eq(rhs))
}

func TestFieldAdditiveAndMultiplicativeIdentities(t *testing.T) {
	f := testField(t)
	a := elemFromUint64(f, 12345)

	require.True(t, f.Zero().Add(a, f.Zero()).Eq(a))
	require.True(t, f.Zero().Mul(a, f.One()).Eq(a))

	neg := f.Zero().Neg(a)
	require.True(t, f.Zero().Add(a, neg).IsZero())
}

func TestFieldSquareMatchesMul(t *testing.T) {
	f := testField(t)
	a := elemFromUint64(f, 98765)
	require.True(t, f.Zero().Sqr(a).Eq(f.Zero().Mul(a, a)))
}

func TestFieldAliasing(t *testing.T) {
	f := testField(t)
	a, b := elemFromUint64(f, 31), elemFromUint64(f, 37)
	want := f.Zero().Add(a, b)

	a.Add(a, b)
	require.True(t, a.Eq(want))
}

func TestFieldInverse(t *testing.T) {
	f := testField(t)
	a := elemFromUint64(f, 999331)

	viaFermat := f.Zero().Invert(a)
	require.True(t, f.Zero().Mul(a, viaFermat).Eq(f.One()))

	viaBinary := f.Zero().InvertVariableTime(a)
	require.True(t, viaFermat.Eq(viaBinary))
}

// TestFieldInverseNaering256 exercises InvertVariableTime over a prime wide
// enough (p just over 2^255) that binaryExtendedGCDInverse's odd-branch
// sum A+p can overflow 256 bits if computed directly, a case bn254Prime
// (comfortably under 2^255) never reaches.
func TestFieldInverseNaering256(t *testing.T) {
	f, err := NewField(naering256Prime)
	require.NoError(t, err)

	for _, v := range []uint64{1, 2, 3, 999331, 0xffffffffffffffff} {
		a := elemFromUint64(f, v)
		viaFermat := f.Zero().Invert(a)
		viaBinary := f.Zero().InvertVariableTime(a)
		require.True(t, viaFermat.Eq(viaBinary), "mismatch for v=%d", v)
		require.True(t, f.Zero().Mul(a, viaBinary).Eq(f.One()), "not a real inverse for v=%d", v)
	}
}

func TestFieldExpMatchesRepeatedMul(t *testing.T) {
	f := testField(t)
	a := elemFromUint64(f, 5)

	byRepeatedMul := f.One()
	for i := 0; i < 13; i++ {
		byRepeatedMul = f.Zero().Mul(byRepeatedMul, a)
	}
	byExp := f.Zero().Exp(a, fixedint.FromUint64(13))
	require.True(t, byRepeatedMul.Eq(byExp))
}

func TestFieldLegendreAndSqrt(t *testing.T) {
	f := testField(t)
	a := elemFromUint64(f, 4)
	sq := f.Zero().Sqr(a)

	require.Equal(t, 1, sq.Legendre())

	root, ok := f.Zero().Sqrt(sq)
	require.True(t, ok)
	require.True(t, f.Zero().Sqr(root).Eq(sq))
}

func TestFieldRandomIsReduced(t *testing.T) {
	f := testField(t)
	e, err := f.Random(rand.Reader)
	require.NoError(t, err)
	require.Less(t, e.Normal().Cmp(&f.p), 0)
}

func TestNewFieldRejectsEvenOrNegative(t *testing.T) {
	_, err := NewField("10")
	require.Error(t, err)
	_, err = NewField("-3")
	require.Error(t, err)
	_, err = NewField("0")
	require.Error(t, err)
}
