// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package lemdat

import "testing"

func TestXorChecksum(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want uint8
	}{
		{"empty", nil, 0x00},
		{"single", []byte{0x5A}, 0x5A},
		{"pair cancels", []byte{0x5A, 0x5A}, 0x00},
		{"mixed", []byte{0x01, 0x02, 0x04, 0x08}, 0x0F},
	}
	for _, tc := range cases {
		if got := xorChecksum(tc.data); got != tc.want {
			t.Errorf("%s: got %#02x, want %#02x", tc.name, got, tc.want)
		}
	}
}

func TestXorChecksumDetectsSingleBitFlips(t *testing.T) {
	// XOR over the payload changes whenever any single bit changes, which
	// is the whole point of carrying it in the header.
	data := []byte{0x13, 0x37, 0xC0, 0xDE}
	base := xorChecksum(data)
	for i := range data {
		for bit := 0; bit < 8; bit++ {
			flipped := make([]byte, len(data))
			copy(flipped, data)
			flipped[i] ^= 1 << bit
			if xorChecksum(flipped) == base {
				t.Fatalf("flip of byte %d bit %d went undetected", i, bit)
			}
		}
	}
}
