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

// Package eclerr defines the error taxonomy shared by every layer of the
// library (spec.md §7). Leaf arithmetic never returns an error: only the
// boundaries (fromString, factory lookups, frobenius, decompress,
// hash-to-curve) do, and they always wrap one of these sentinels so callers
// can use errors.Is. gfp and fp2 Sqrt report a non-residue with a false
// result, not an error; ErrNotSquare comes from the callers that need the
// root (curve.Decompress and bn's hash-to-curve).
package eclerr

import "errors"

var (
	// ErrInvalidValue marks malformed input: an overlong hex string, an
	// unknown curve id, or a field characteristic that fails Montgomery
	// setup (even p).
	ErrInvalidValue = errors.New("ecl128: invalid value")

	// ErrNotImplemented marks an algorithm with no branch for this input:
	// Fp6.Frobenius called directly, a Frobenius power outside {1,2,3}, no
	// sqrt(-3) in the base field, or no xi found by fp2.Field.Xi.
	ErrNotImplemented = errors.New("ecl128: not implemented")

	// ErrNotSquare marks a square-root request of a quadratic non-residue.
	ErrNotSquare = errors.New("ecl128: not a square")

	// ErrKeyNotSet is reserved for a higher-level IBE layer; the core never
	// raises it (spec.md §7).
	ErrKeyNotSet = errors.New("ecl128: key not set")
)
