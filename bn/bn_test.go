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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jkowalsk/ecl128/fixedint"
)

func TestBuildCurvesUnknownID(t *testing.T) {
	_, _, _, _, err := BuildCurves(CurveID(99))
	require.Error(t, err)
}

func TestBuildCurvesGeneratorsAreValid(t *testing.T) {
	for _, id := range []CurveID{Beuchat254, Aranha254, Naering256} {
		e1, g1, e2, g2, err := BuildCurves(id)
		require.NoError(t, err)
		require.True(t, e1.IsValid(g1, true), "id=%d", id)
		require.True(t, e2.IsValid(g2, true), "id=%d", id)
	}
}

// scenario 5: hash-to-curve of 01 00...00 over E/GFp lands in the
// order-r subgroup.
func TestHashToCurveBuffer01IsOrderR(t *testing.T) {
	e1, err := newG1Curve(definitions[Beuchat254])
	require.NoError(t, err)

	var buf [32]byte
	buf[0] = 1
	p, err := e1.Hash(buf)
	require.NoError(t, err)
	require.True(t, e1.IsValid(p, true))
}

func testPairing(t *testing.T, id CurveID) (*Pairing, *G1Point, *G2Point) {
	t.Helper()
	pr, g1, g2, err := BuildPairing(id)
	require.NoError(t, err)
	return pr, g1, g2
}

// scenario 1: pair(G1,G2) != 1 and pair(G1,G2)^r == 1.
func TestPairNonDegenerateAndOrderR(t *testing.T) {
	for _, id := range []CurveID{Beuchat254, Aranha254, Naering256} {
		pr, g1, g2 := testPairing(t, id)

		f, err := pr.Pair(g1, g2)
		require.NoError(t, err, "id=%d", id)
		require.False(t, f.IsOne(), "id=%d", id)

		order := pr.e1.Order()
		fr := pr.fp12f.Zero().Exp(f, order)
		require.True(t, fr.IsOne(), "id=%d", id)
	}
}

// scenario 4 (BN_ARANHA_254) plus bilinearity in the other argument and
// for a few more scalars, across all three curves.
func TestPairBilinear(t *testing.T) {
	ks := []uint64{2, 5, 11}
	for _, id := range []CurveID{Beuchat254, Aranha254, Naering256} {
		pr, g1, g2 := testPairing(t, id)

		base, err := pr.Pair(g1, g2)
		require.NoError(t, err, "id=%d", id)

		for _, k := range ks {
			kk := fixedint.FromUint64(k)

			kg1 := pr.e1.Mul(g1, kk)
			left, err := pr.Pair(kg1, g2)
			require.NoError(t, err, "id=%d k=%d", id, k)

			right := pr.fp12f.Zero().Exp(base, kk)
			require.True(t, left.Eq(right), "pair([k]P,Q) != pair(P,Q)^k, id=%d k=%d", id, k)

			kg2 := pr.e2.Mul(g2, kk)
			left2, err := pr.Pair(g1, kg2)
			require.NoError(t, err, "id=%d k=%d", id, k)
			require.True(t, left2.Eq(right), "pair(P,[k]Q) != pair(P,Q)^k, id=%d k=%d", id, k)
		}
	}
}
