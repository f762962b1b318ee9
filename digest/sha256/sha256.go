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

// Package sha256 implements spec.md §4.9, FIPS-180 SHA-256: a from-scratch
// streaming digest kept deliberately separate from crypto/sha256 (spec.md §2
// row 9 names this an in-scope hand-written component, not a delegated one).
// No other package of this module calls it; bn's hash-to-curve maps its
// 32-byte input to a field element directly.
package sha256

import "hash"

var _ hash.Hash = (*Digest)(nil)

// Size is the length in bytes of a SHA-256 digest.
const Size = 32

// BlockSize is the block size in bytes of SHA-256.
const BlockSize = 64

var k = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5,
	0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3,
	0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc,
	0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7,
	0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13,
	0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3,
	0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5,
	0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208,
	0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

var initH = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

// Digest holds streaming SHA-256 state, the Go counterpart of
// original_source/ecl's Sha256 class: an H[8] accumulator, a length
// counter and a tail buffer shorter than one block.
type Digest struct {
	h   [8]uint32
	buf []byte
	len uint64 // total bytes processed through compress, excluding buf
}

// New returns a freshly initialized Digest.
func New() *Digest {
	d := &Digest{}
	d.Reset()
	return d
}

// Reset restores the digest to its initial state, equivalent to Sha256::init.
func (d *Digest) Reset() {
	d.h = initH
	d.buf = d.buf[:0]
	d.len = 0
}

// Size returns the number of bytes Sum will return.
func (d *Digest) Size() int { return Size }

// BlockSize returns the digest's block size.
func (d *Digest) BlockSize() int { return BlockSize }

// Write feeds p into the digest, compressing full blocks immediately and
// buffering any short tail, equivalent to Sha256::update.
func (d *Digest) Write(p []byte) (int, error) {
	n := len(p)

	if len(d.buf) > 0 {
		need := BlockSize - len(d.buf)
		if need > len(p) {
			d.buf = append(d.buf, p...)
			return n, nil
		}
		d.buf = append(d.buf, p[:need]...)
		p = p[need:]
		d.compress(d.buf)
		d.buf = d.buf[:0]
	}

	for len(p) >= BlockSize {
		d.compress(p[:BlockSize])
		p = p[BlockSize:]
	}

	d.buf = append(d.buf, p...)
	return n, nil
}

// Sum appends the 32-byte big-endian digest of everything written so far to
// b and returns the result, without mutating the receiver's state.
func (d *Digest) Sum(b []byte) []byte {
	clone := *d
	clone.buf = append([]byte(nil), d.buf...)
	digest := clone.final()
	return append(b, digest[:]...)
}

// final implements Sha256::final: 0x80 padding, zero fill to a 56-mod-64
// length, the 64-bit big-endian bit length, one or two closing compressions.
func (d *Digest) final() [Size]byte {
	bitLen := (d.len + uint64(len(d.buf))) * 8

	d.buf = append(d.buf, 0x80)
	if len(d.buf) > 56 {
		for len(d.buf) < BlockSize {
			d.buf = append(d.buf, 0)
		}
		d.compress(d.buf)
		d.buf = d.buf[:0]
	}
	for len(d.buf) < 56 {
		d.buf = append(d.buf, 0)
	}
	for i := 7; i >= 0; i-- {
		d.buf = append(d.buf, byte(bitLen>>(8*uint(i))))
	}
	d.compress(d.buf)

	var out [Size]byte
	for i, hv := range d.h {
		out[4*i] = byte(hv >> 24)
		out[4*i+1] = byte(hv >> 16)
		out[4*i+2] = byte(hv >> 8)
		out[4*i+3] = byte(hv)
	}
	return out
}

func rotr(x uint32, n uint) uint32 { return x>>n | x<<(32-n) }

func ch(x, y, z uint32) uint32  { return z ^ (x & (y ^ z)) }
func maj(x, y, z uint32) uint32 { return (x | y) & z | x&y }

func bigSigma0(x uint32) uint32 { return rotr(x, 2) ^ rotr(x, 13) ^ rotr(x, 22) }
func bigSigma1(x uint32) uint32 { return rotr(x, 6) ^ rotr(x, 11) ^ rotr(x, 25) }
func smallSigma0(x uint32) uint32 { return rotr(x, 7) ^ rotr(x, 18) ^ (x >> 3) }
func smallSigma1(x uint32) uint32 { return rotr(x, 17) ^ rotr(x, 19) ^ (x >> 10) }

// compress runs one 64-byte block through the message schedule and the 64
// rounds, equivalent to Sha256::compress(it).
func (d *Digest) compress(block []byte) {
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = uint32(block[4*i])<<24 | uint32(block[4*i+1])<<16 |
			uint32(block[4*i+2])<<8 | uint32(block[4*i+3])
	}
	for i := 16; i < 64; i++ {
		w[i] = smallSigma1(w[i-2]) + w[i-7] + smallSigma0(w[i-15]) + w[i-16]
	}

	a, b, c, dd, e, f, g, hh := d.h[0], d.h[1], d.h[2], d.h[3], d.h[4], d.h[5], d.h[6], d.h[7]

	for i := 0; i < 64; i++ {
		t0 := hh + bigSigma1(e) + ch(e, f, g) + k[i] + w[i]
		t1 := bigSigma0(a) + maj(a, b, c)
		hh, g, f, e, dd, c, b, a = g, f, e, dd+t0, c, b, a, t0+t1
	}

	d.h[0] += a
	d.h[1] += b
	d.h[2] += c
	d.h[3] += dd
	d.h[4] += e
	d.h[5] += f
	d.h[6] += g
	d.h[7] += hh

	d.len += BlockSize
}

// Sum256 hashes data in one shot and returns the 32-byte digest, equivalent
// to Sha256::hash.
func Sum256(data []byte) [Size]byte {
	d := New()
	d.Write(data)
	return d.final()
}
