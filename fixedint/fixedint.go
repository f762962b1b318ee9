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

// Package fixedint implements spec.md §4.1, FixedInt<N>: a statically sized
// unsigned integer at the curve's width (the "256-bit class" the rest of
// the tower is built on, per spec.md §1 Non-goals — no arbitrary-precision
// path exists here, by design).
//
// The four 64-bit limbs are carried in a github.com/holiman/uint256.Int,
// the same fixed-width word type go-ethereum uses for its EVM word. Int
// uses uint256 for storage and the 32-byte codec only; its add, sub, mul,
// shift, bit-scan, signed hex parsing and wNAF are written here over the
// raw limbs.
package fixedint

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/holiman/uint256"
)

// Nlimbs and Wbits fix the width of every Int in this module: four 64-bit
// limbs, 256 bits total. Limb 0 is least significant.
const (
	Nlimbs = 4
	Wbits  = 64
	Bytes  = Nlimbs * Wbits / 8
)

// Int is an unsigned 256-bit integer, least-significant limb first.
type Int struct {
	w uint256.Int
}

// Zero returns the value 0.
func Zero() *Int { return &Int{} }

// FromUint64 returns the value v.
func FromUint64(v uint64) *Int {
	z := &Int{}
	z.w.SetUint64(v)
	return z
}

func (z *Int) limbs() *[4]uint64 { return (*[4]uint64)(&z.w) }

// Limb returns word i (0 = least significant). i must be in [0,4).
func (z *Int) Limb(i int) uint64 { return z.limbs()[i] }

// SetLimb sets word i (0 = least significant). i must be in [0,4).
func (z *Int) SetLimb(i int, v uint64) { z.limbs()[i] = v }

// Set copies x into z and returns z.
func (z *Int) Set(x *Int) *Int {
	*z.limbs() = *x.limbs()
	return z
}

// Clone returns a fresh copy of z.
func (z *Int) Clone() *Int { return (&Int{}).Set(z) }

// IsZero reports whether z == 0.
func (z *Int) IsZero() bool { return *z.limbs() == [4]uint64{} }

// Eq reports whether z == x.
func (z *Int) Eq(x *Int) bool { return *z.limbs() == *x.limbs() }

// Cmp returns -1, 0 or 1 as z is less than, equal to, or greater than x.
func (z *Int) Cmp(x *Int) int {
	a, b := z.limbs(), x.limbs()
	for i := Nlimbs - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Add sets z = x+y and returns the carry out of the top limb.
func (z *Int) Add(x, y *Int) uint64 {
	a, b, c := x.limbs(), y.limbs(), z.limbs()
	var carry uint64
	for i := 0; i < Nlimbs; i++ {
		c[i], carry = bits.Add64(a[i], b[i], carry)
	}
	return carry
}

// Sub sets z = x-y and returns the borrow out of the top limb.
func (z *Int) Sub(x, y *Int) uint64 {
	a, b, c := x.limbs(), y.limbs(), z.limbs()
	var borrow uint64
	for i := 0; i < Nlimbs; i++ {
		c[i], borrow = bits.Sub64(a[i], b[i], borrow)
	}
	return borrow
}

// Mul sets z to the N-limb truncated product x*y (mod 2^(N*W)) via a
// schoolbook Comba-style accumulation. The full double-wide product is
// realized separately by Wide.Mul, used by gfp's Montgomery reduction.
func (z *Int) Mul(x, y *Int) *Int {
	a, b := x.limbs(), y.limbs()
	var out [Nlimbs]uint64
	for i := 0; i < Nlimbs; i++ {
		var carry uint64
		for j := 0; i+j < Nlimbs; j++ {
			hi, lo := bits.Mul64(a[i], b[j])
			var c uint64
			lo, c = bits.Add64(lo, out[i+j], 0)
			hi += c
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			out[i+j], carry = lo, hi
		}
	}
	*z.limbs() = out
	return z
}

// Rsh sets z = x >> n (n may exceed the width) and returns z.
func (z *Int) Rsh(x *Int, n uint) *Int {
	if n >= Nlimbs*Wbits {
		*z.limbs() = [4]uint64{}
		return z
	}
	a := x.limbs()
	limbShift := n / Wbits
	bitShift := n % Wbits
	var out [Nlimbs]uint64
	for i := 0; i < Nlimbs; i++ {
		src := i + int(limbShift)
		if src >= Nlimbs {
			continue
		}
		v := a[src] >> bitShift
		if bitShift != 0 && src+1 < Nlimbs {
			v |= a[src+1] << (Wbits - bitShift)
		}
		out[i] = v
	}
	*z.limbs() = out
	return z
}

// Lsh sets z = x << n and returns z (truncating above the top limb).
func (z *Int) Lsh(x *Int, n uint) *Int {
	if n >= Nlimbs*Wbits {
		*z.limbs() = [4]uint64{}
		return z
	}
	a := x.limbs()
	limbShift := n / Wbits
	bitShift := n % Wbits
	var out [Nlimbs]uint64
	for i := Nlimbs - 1; i >= 0; i-- {
		src := i - int(limbShift)
		if src < 0 {
			continue
		}
		v := a[src] << bitShift
		if bitShift != 0 && src-1 >= 0 {
			v |= a[src-1] >> (Wbits - bitShift)
		}
		out[i] = v
	}
	*z.limbs() = out
	return z
}

// Bit returns bit i of z (0 or 1); i must be in [0, N*W).
func (z *Int) Bit(i uint) uint {
	return uint(z.limbs()[i/Wbits]>>(i%Wbits)) & 1
}

// CountBits returns the index of the most significant set bit, plus one
// (0 for the zero value) — spec.md §4.1 count_bits.
func (z *Int) CountBits() int {
	a := z.limbs()
	for i := Nlimbs - 1; i >= 0; i-- {
		if a[i] != 0 {
			return i*Wbits + bits.Len64(a[i])
		}
	}
	return 0
}

// CountLSB returns the index of the least significant set bit (0 if z is
// odd), or N*W if z is zero — spec.md §4.1 count_lsb.
func (z *Int) CountLSB() int {
	a := z.limbs()
	for i := 0; i < Nlimbs; i++ {
		if a[i] != 0 {
			return i*Wbits + bits.TrailingZeros64(a[i])
		}
	}
	return Nlimbs * Wbits
}

// SetBytes decodes a fixed 32-byte big-endian buffer into z.
func (z *Int) SetBytes(buf *[Bytes]byte) *Int {
	z.w.SetBytes32(buf[:])
	return z
}

// Bytes encodes z as a fixed 32-byte big-endian buffer.
func (z *Int) Bytes() [Bytes]byte {
	return z.w.Bytes32()
}

// Hex renders z as lower-case hex, MSB-first, zero-padded to the full
// canonical width (spec.md §6 serialized formats).
func (z *Int) Hex() string {
	buf := z.Bytes()
	return fmt.Sprintf("%x", buf[:])
}

// FromHex parses an optionally-signed hex body of at most the canonical
// width, 64 nibbles after an optional leading '-' (spec.md §4.2
// fromString); a longer body is rejected. It returns the magnitude
// and whether a leading '-' was present; the caller (gfp.FromString)
// applies the sign.
func FromHex(s string) (mag *Int, negative bool, err error) {
	negative = strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	if len(s) == 0 || len(s) > Bytes*2+1 {
		return nil, false, fmt.Errorf("fixedint: invalid hex length %d", len(s))
	}
	if len(s)%2 != 0 {
		s = "0" + s
	}
	var buf [Bytes]byte
	raw, err := decodeHex(s)
	if err != nil {
		return nil, false, err
	}
	if len(raw) > Bytes {
		return nil, false, fmt.Errorf("fixedint: value overflows %d bytes", Bytes)
	}
	copy(buf[Bytes-len(raw):], raw)
	z := &Int{}
	z.SetBytes(&buf)
	return z, negative, nil
}

func decodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("fixedint: odd-length hex string")
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		hi, ok1 := hexNibble(s[2*i])
		lo, ok2 := hexNibble(s[2*i+1])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("fixedint: invalid hex digit")
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// DivModSmall divides z by a small divisor d (d != 0), returning the exact
// quotient and remainder. Used where gfp needs an exact division by 2, 3 or
// 4 (Tonelli-Shanks exponents, the cubic-residue test) and a full division
// routine would be overkill.
func (z *Int) DivModSmall(d uint64) (q *Int, rem uint64) {
	a := z.limbs()
	var out [Nlimbs]uint64
	for i := Nlimbs - 1; i >= 0; i-- {
		out[i], rem = bits.Div64(rem, a[i], d)
	}
	q = &Int{}
	*q.limbs() = out
	return q, rem
}

// WNAF computes the windowed non-adjacent form of z (spec.md §4.1
// get_wNAF): while n≠0, odd digits are taken in [-2^(w-1), 2^(w-1)) and n is
// adjusted so the low bits it consumed become exactly zero, then n is
// shifted right by one. At most one non-zero digit falls in any window of
// w+1 consecutive positions.
func (z *Int) WNAF(w uint) []int32 {
	n := z.Clone()
	limit := int32(1) << w
	half := int32(1) << (w - 1)
	var digits []int32
	for !n.IsZero() {
		var d int32
		if n.Bit(0) == 1 {
			d = int32(n.Limb(0) & uint64(limit-1))
			if d >= half {
				d -= limit
			}
			if d >= 0 {
				n.Sub(n, FromUint64(uint64(d)))
			} else {
				n.Add(n, FromUint64(uint64(-d)))
			}
		}
		digits = append(digits, d)
		n.Rsh(n, 1)
	}
	if len(digits) == 0 {
		digits = []int32{0}
	}
	return digits
}
