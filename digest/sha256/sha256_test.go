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

package sha256

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSum256Vectors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{
			"two-block",
			"abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq",
			"248d6a61d20638b8e5c026930c3e6039a33ce45964ff2167f6ecedd419db06c1",
		},
	}

	for _, c := range cases {
		want, err := hex.DecodeString(c.want)
		require.NoError(t, err, c.name)

		got := Sum256([]byte(c.in))
		require.Equal(t, want, got[:], c.name)
	}
}

func TestSum256MillionA(t *testing.T) {
	want, err := hex.DecodeString("cdc76e5c9914fb9281a1c7e284d73e67f1809a48a497200e046d39ccc7112cd0")
	require.NoError(t, err)

	d := New()
	block := bytes.Repeat([]byte("a"), 1000)
	for i := 0; i < 1000; i++ {
		d.Write(block)
	}
	got := d.Sum(nil)
	require.Equal(t, want, got)
}

func TestWriteStreamingMatchesSingleShot(t *testing.T) {
	msg := []byte("the quick brown fox jumps over the lazy dog, and then some more padding bytes to cross a block boundary or two")

	one := Sum256(msg)

	d := New()
	for _, chunk := range [][]byte{msg[:1], msg[1:17], msg[17:63], msg[63:64], msg[64:]} {
		_, err := d.Write(chunk)
		require.NoError(t, err)
	}
	streamed := d.Sum(nil)

	require.Equal(t, one[:], streamed)
}

func TestResetClearsState(t *testing.T) {
	d := New()
	d.Write([]byte("some data"))
	d.Reset()

	require.Equal(t, Sum256(nil), [Size]byte(d.Sum(nil)))
}

func TestSumDoesNotMutateState(t *testing.T) {
	d := New()
	d.Write([]byte("partial block"))

	first := d.Sum(nil)
	second := d.Sum(nil)
	require.Equal(t, first, second)

	d.Write([]byte(" more data"))
	third := d.Sum(nil)
	require.NotEqual(t, first, third)
}
