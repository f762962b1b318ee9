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

// BuildCurves constructs E/Fp and its twist E'/Fp2 for the named curve and
// hashes the buffer 0x01||0...0 into each to obtain a published generator,
// grounded on BnCurveFactory::getParameters.
func BuildCurves(id CurveID) (*G1Curve, *G1Point, *G2Curve, *G2Point, error) {
	def, err := lookup(id)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	e1, err := newG1Curve(def)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	e2, err := newG2Curve(def)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	var buf [32]byte
	buf[0] = 1

	g1gen, err := e1.Hash(buf)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	g2gen, err := e2.Hash(buf)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return e1, g1gen, e2, g2gen, nil
}

// BuildPairing constructs a Pairing for the named curve plus a published
// generator on each side, hashing the buffer 0x02||0...0 (a different
// buffer than BuildCurves's, so the two generator pairs differ), grounded
// on BNPairingFactory::getParameters.
func BuildPairing(id CurveID) (*Pairing, *G1Point, *G2Point, error) {
	def, err := lookup(id)
	if err != nil {
		return nil, nil, nil, err
	}

	pr, err := newPairing(def)
	if err != nil {
		return nil, nil, nil, err
	}

	var buf [32]byte
	buf[0] = 2

	g1gen, err := pr.e1.Hash(buf)
	if err != nil {
		return nil, nil, nil, err
	}
	g2gen, err := pr.e2.Hash(buf)
	if err != nil {
		return nil, nil, nil, err
	}

	return pr, g1gen, g2gen, nil
}
