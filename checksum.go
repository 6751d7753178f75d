// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package lemdat

// xorChecksum computes the single-byte XOR accumulator stored in each
// section header. It runs over the stored payload bytes, so a section can
// be verified without decompressing it first.
func xorChecksum(data []byte) uint8 {
	var sum uint8
	for _, b := range data {
		sum ^= b
	}
	return sum
}
