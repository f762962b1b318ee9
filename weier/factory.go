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

// Package weier implements spec.md §6's curve_factory: the two named
// general-purpose GFp-coordinate curves (NIST P-256, ANSSI FRP256v1), built
// on package curve's generic Jacobian engine instantiated over gfp the way
// original_source/ecl's GFpCurve does.
package weier

import (
	"fmt"

	"github.com/jkowalsk/ecl128/curve"
	"github.com/jkowalsk/ecl128/eclerr"
	"github.com/jkowalsk/ecl128/fixedint"
	"github.com/jkowalsk/ecl128/gfp"
	"github.com/jkowalsk/ecl128/internal/eclog"
)

// CurveID names a curve curve_factory knows how to build.
type CurveID int

const (
	NISTP256 CurveID = iota
	ANSSIFRP256v1
)

// Curve is the concrete instantiation of package curve's generic engine
// over gfp, the same shape original_source/ecl calls GFpCurve.
type Curve = curve.Curve[gfp.Element, *gfp.Element, *gfp.Field]

// Point is a point on a Curve.
type Point = curve.Point[gfp.Element, *gfp.Element]

type definition struct {
	prime, order, a, b, gx, gy string
}

// Definitions taken verbatim (same hex/decimal literals) from
// original_source/ecl/src/curve/curve.cpp's P256_str/ANSSI_FRP256v1_str.
var definitions = map[CurveID]definition{
	NISTP256: {
		prime: "ffffffff00000001000000000000000000000000ffffffffffffffffffffffff",
		order: "ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551",
		a:     "-3",
		b:     "5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b",
		gx:    "6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296",
		gy:    "4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5",
	},
	ANSSIFRP256v1: {
		prime: "F1FD178C0B3AD58F10126DE8CE42435B3961ADBCABC8CA6DE8FCF353D86E9C03",
		order: "F1FD178C0B3AD58F10126DE8CE42435B53DC67E140D2BF941FFDD459C6D655E1",
		a:     "F1FD178C0B3AD58F10126DE8CE42435B3961ADBCABC8CA6DE8FCF353D86E9C00",
		b:     "EE353FCA5428A9300D4ABA754A44C00FDFEC0C9AE4B1A1803075ED967B7BB73F",
		gx:    "B6B3D4C356C139EB31183D4749D423958C27D2DCAF98B70164C97A2DD98F5CFF",
		gy:    "6142E0F7C8B204911F9271F0F3ECEF8C2701C307E8E4C9E183115A1554062CFB",
	},
}

// CurveFactory builds the named curve and its published generator point
// (spec.md §6 curve_factory).
func CurveFactory(id CurveID) (*Curve, *Point, error) {
	def, ok := definitions[id]
	if !ok {
		return nil, nil, fmt.Errorf("weier: %w: unknown curve id %d", eclerr.ErrInvalidValue, id)
	}

	field, err := gfp.NewField(def.prime)
	if err != nil {
		return nil, nil, err
	}

	order, _, err := fixedint.FromHex(def.order)
	if err != nil {
		return nil, nil, fmt.Errorf("weier: %w: %v", eclerr.ErrInvalidValue, err)
	}

	a, err := field.FromString(def.a)
	if err != nil {
		return nil, nil, err
	}
	b, err := field.FromString(def.b)
	if err != nil {
		return nil, nil, err
	}

	c := curve.New[gfp.Element, *gfp.Element, *gfp.Field](field, a, b, order)

	gx, err := field.FromString(def.gx)
	if err != nil {
		return nil, nil, err
	}
	gy, err := field.FromString(def.gy)
	if err != nil {
		return nil, nil, err
	}
	gen := c.AffinePoint(gx, gy)

	eclog.Debug("weier: curve constructed", "id", id, "bits", field.Bits())
	return c, gen, nil
}
