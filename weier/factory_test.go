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

package weier

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jkowalsk/ecl128/curve"
)

func TestCurveFactoryUnknownID(t *testing.T) {
	_, _, err := CurveFactory(CurveID(99))
	require.Error(t, err)
}

func testGenerator(t *testing.T, id CurveID) {
	t.Helper()
	c, gen, err := CurveFactory(id)
	require.NoError(t, err)
	require.NotNil(t, gen)

	// The published generator satisfies the curve equation.
	require.True(t, c.IsValid(gen, false))

	// Doubling and adding stay on the curve.
	dbl := c.Double(gen)
	require.True(t, c.IsValid(dbl, false))
	tripled := c.Add(dbl, gen)
	require.True(t, c.IsValid(tripled, false))
	require.True(t, c.Eq(c.Add(gen, gen), dbl))

	comp, yBit := curve.Compress(c, gen)
	back, err := curve.Decompress(c, comp, yBit)
	require.NoError(t, err)
	require.True(t, c.Eq(back, gen))
}

func TestCurveFactoryNISTP256Generator(t *testing.T) {
	testGenerator(t, NISTP256)
}

func TestCurveFactoryANSSIFRP256v1Generator(t *testing.T) {
	testGenerator(t, ANSSIFRP256v1)
}

func TestCurveFactoryGeneratorHasPublishedOrder(t *testing.T) {
	c, gen, err := CurveFactory(NISTP256)
	require.NoError(t, err)
	require.True(t, c.IsValid(gen, true))
}
