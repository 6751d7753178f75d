// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package lemdat

import (
	"bytes"
	"testing"
)

func TestDecompressOverlappingCopy(t *testing.T) {
	// One literal 0xAA followed by "copy 10 bytes from distance 1" must
	// smear the byte across the whole buffer: distances smaller than the
	// run length repeat patterns, the bread and butter of pixel data.
	bw := &bitWriter{}
	// n-byte copy, stored distance 0 (real distance 1), length 10.
	bw.writeBits(0, 12)
	bw.writeBits(9, 8)
	bw.writeBits(6, 3)
	// Single literal 0xAA, decoded first into the top of the buffer.
	bw.writeBits(0xAA, 8)
	bw.writeBits(0, 3)
	bw.writeBits(0, 2)
	payload, finalBits := bw.finish()

	out, err := DecompressSection(payload, 11, finalBits)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	want := bytes.Repeat([]byte{0xAA}, 11)
	if !bytes.Equal(out, want) {
		t.Fatalf("got % x, want % x", out, want)
	}
}

func TestDecompressLiteralRuns(t *testing.T) {
	// A short and a long literal run back to back.
	input := make([]byte, 20)
	for i := range input {
		input[i] = byte(0x30 + i)
	}

	bw := &bitWriter{}
	// Bytes 0..11 as a long run (encoded first, decoded last).
	for _, b := range input[:12] {
		bw.writeBits(uint32(b), 8)
	}
	bw.writeBits(12-9, 8)
	bw.writeBits(7, 3)
	// Bytes 12..19 as a short run.
	for _, b := range input[12:] {
		bw.writeBits(uint32(b), 8)
	}
	bw.writeBits(8-1, 3)
	bw.writeBits(0, 2)
	payload, finalBits := bw.finish()

	out, err := DecompressSection(payload, uint32(len(input)), finalBits)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if !bytes.Equal(out, input) {
		t.Fatalf("got % x, want % x", out, input)
	}
}

func TestDecompressShortCopyCommands(t *testing.T) {
	// "abcd" + a 4-byte copy of it at distance 4 = "abcdabcd".
	bw := &bitWriter{}
	bw.writeBits(4-1, 10)
	bw.writeBits(5, 3)
	for _, b := range []byte("abcd") {
		bw.writeBits(uint32(b), 8)
	}
	bw.writeBits(4-1, 3)
	bw.writeBits(0, 2)
	payload, finalBits := bw.finish()

	out, err := DecompressSection(payload, 8, finalBits)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if string(out) != "abcdabcd" {
		t.Fatalf("got %q, want %q", out, "abcdabcd")
	}
}

func TestDecompressTruncatedStream(t *testing.T) {
	// An all-zero payload decodes as an endless supply of 13-bit
	// single-byte literal commands; 99 bits cannot fill 11 bytes, so the
	// stream must run dry mid-decode.
	payload := make([]byte, 13)
	_, err := DecompressSection(payload, 11, 3)
	if !ErrTruncatedStream.Is(err) {
		t.Fatalf("got %v, want ErrTruncatedStream", err)
	}
}

func TestDecompressOffsetOutOfRange(t *testing.T) {
	// A copy whose source lies past the end of the output buffer.
	bw := &bitWriter{}
	bw.writeBits(200, 12)
	bw.writeBits(3, 8)
	bw.writeBits(6, 3)
	payload, finalBits := bw.finish()

	_, err := DecompressSection(payload, 16, finalBits)
	if !ErrOffsetOutOfRange.Is(err) {
		t.Fatalf("got %v, want ErrOffsetOutOfRange", err)
	}
}

func TestDecompressOutputOverrun(t *testing.T) {
	// A literal run longer than the whole declared output.
	bw := &bitWriter{}
	for i := 0; i < 12; i++ {
		bw.writeBits(0x11, 8)
	}
	bw.writeBits(12-9, 8)
	bw.writeBits(7, 3)
	payload, finalBits := bw.finish()

	_, err := DecompressSection(payload, 4, finalBits)
	if !ErrOutputOverrun.Is(err) {
		t.Fatalf("got %v, want ErrOutputOverrun", err)
	}
}

func TestDecompressPaddedFinalByte(t *testing.T) {
	// finalByteBits == 0 marks the final byte as pure padding behind a
	// byte-aligned stream; the byte before it is the real start. A 4-byte
	// copy (13 bits) plus a 9-byte long literal run (83 bits) lands on a
	// byte boundary exactly.
	bw := &bitWriter{}
	bw.writeBits(4-1, 10)
	bw.writeBits(5, 3)
	for _, b := range []byte("abcdefghi") {
		bw.writeBits(uint32(b), 8)
	}
	bw.writeBits(9-9, 8)
	bw.writeBits(7, 3)
	payload, finalBits := bw.finish()
	if finalBits != 8 {
		t.Fatalf("fixture not byte-aligned: %d final bits", finalBits)
	}
	payload = append(payload, 0x00)

	out, err := DecompressSection(payload, 13, 0)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if string(out) != "abcdabcdefghi" {
		t.Fatalf("got %q, want %q", out, "abcdabcdefghi")
	}
}

func TestDecompressEmptySection(t *testing.T) {
	out, err := DecompressSection(nil, 0, 8)
	if err != nil {
		t.Fatalf("decompress empty: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("got %d bytes, want 0", len(out))
	}
}

func TestDecompressDeterministic(t *testing.T) {
	input := bytes.Repeat([]byte("the quick brown fox "), 40)
	cs, err := CompressSection(input)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	a, err := DecompressSection(cs.Payload, uint32(len(input)), cs.FinalByteBits)
	if err != nil {
		t.Fatalf("first decompress: %v", err)
	}
	b, err := DecompressSection(cs.Payload, uint32(len(input)), cs.FinalByteBits)
	if err != nil {
		t.Fatalf("second decompress: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("same payload decoded to different outputs")
	}
}
