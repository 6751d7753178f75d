// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package lemdat

import (
	"bytes"
	"math/rand"
	"testing"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(0x1e44))
}

func TestCompressRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"single byte", []byte{0x42}},
		{"short text", []byte("out of my way")},
		{"repeated byte", bytes.Repeat([]byte{0x00}, 1000)},
		{"repeated pattern", bytes.Repeat([]byte{0xDE, 0xAD, 0xBE, 0xEF}, 300)},
		{"text", bytes.Repeat([]byte("we all go together when we go "), 50)},
		{"long run then tail", append(bytes.Repeat([]byte{0x7F}, 600), 0x01, 0x02, 0x03)},
		{"just over max match", bytes.Repeat([]byte{0xAB}, maxMatchLen+1)},
		{"just over max literal run", func() []byte {
			r := testRand()
			b := make([]byte, maxLiteralRun+1)
			r.Read(b)
			return b
		}()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cs, err := CompressSection(tc.input)
			if err != nil {
				t.Fatalf("compress: %v", err)
			}
			var out []byte
			if cs.Raw {
				out = cs.Payload
			} else {
				out, err = DecompressSection(cs.Payload, uint32(len(tc.input)), cs.FinalByteBits)
				if err != nil {
					t.Fatalf("decompress: %v", err)
				}
			}
			if !bytes.Equal(out, tc.input) {
				t.Fatalf("round trip mismatch: got %d bytes, want %d", len(out), len(tc.input))
			}
		})
	}
}

func TestCompressNeverGrows(t *testing.T) {
	// Whatever the input, the stored payload may not exceed it: inputs the
	// scheme cannot shrink are stored verbatim instead.
	r := testRand()
	incompressible := make([]byte, 512)
	r.Read(incompressible)

	inputs := [][]byte{
		incompressible,
		[]byte{0x01},
		[]byte("ab"),
		bytes.Repeat([]byte{0x55}, 4096),
	}
	for _, input := range inputs {
		cs, err := CompressSection(input)
		if err != nil {
			t.Fatalf("compress %d bytes: %v", len(input), err)
		}
		if len(cs.Payload) > len(input) {
			t.Fatalf("payload grew: %d bytes from %d input bytes", len(cs.Payload), len(input))
		}
		if !cs.Raw && len(cs.Payload) >= len(input) {
			t.Fatalf("compressed payload not strictly smaller: %d from %d", len(cs.Payload), len(input))
		}
	}
}

func TestCompressRawFallback(t *testing.T) {
	r := testRand()
	input := make([]byte, 256)
	r.Read(input)

	cs, err := CompressSection(input)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if !cs.Raw {
		t.Fatal("random data compressed, expected raw fallback")
	}
	if !bytes.Equal(cs.Payload, input) {
		t.Fatal("raw payload is not the input verbatim")
	}
	if cs.FinalByteBits != 8 {
		t.Fatalf("raw section final bits = %d, want 8", cs.FinalByteBits)
	}
}

func TestCompressShrinksRedundantData(t *testing.T) {
	input := bytes.Repeat([]byte("terrain tile "), 200)
	cs, err := CompressSection(input)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if cs.Raw {
		t.Fatal("highly redundant input fell back to raw storage")
	}
	if len(cs.Payload) > len(input)/4 {
		t.Fatalf("weak compression: %d bytes from %d", len(cs.Payload), len(input))
	}
}

func TestCompressOverlappingMatches(t *testing.T) {
	// Runs compress via distance-1 matches longer than the distance, the
	// overlap case the decoder replays byte by byte.
	input := bytes.Repeat([]byte{0x3C}, 777)
	cs, err := CompressSection(input)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if cs.Raw {
		t.Fatal("run of one byte stored raw")
	}
	out, err := DecompressSection(cs.Payload, uint32(len(input)), cs.FinalByteBits)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if !bytes.Equal(out, input) {
		t.Fatal("round trip mismatch")
	}
}

func TestFindMatchPrefersNearest(t *testing.T) {
	// Two identical 4-byte groups within the band; the nearer one costs no
	// more bits but keeps short-command bands usable for later positions.
	data := append([]byte("WXYZ"), bytes.Repeat([]byte{0}, 10)...)
	data = append(data, []byte("WXYZ")...)
	data = append(data, bytes.Repeat([]byte{1}, 10)...)
	data = append(data, []byte("WXYZ")...)

	m := findMatch(data, 0)
	if m.length != 4 {
		t.Fatalf("match length = %d, want 4", m.length)
	}
	if m.dist != 14 {
		t.Fatalf("match distance = %d, want 14 (nearest occurrence)", m.dist)
	}
}

func TestFindMatchRespectsBands(t *testing.T) {
	// A 2-byte pair whose only other occurrence is beyond the 2-byte
	// command's 256-byte reach must be left as literals.
	data := make([]byte, 600)
	data[0], data[1] = 0xCA, 0xFE
	data[400], data[401] = 0xCA, 0xFE
	for i := 2; i < 400; i++ {
		data[i] = byte(i)
	}
	for i := 402; i < 600; i++ {
		data[i] = byte(i * 7)
	}

	m := findMatch(data, 0)
	if m.length == 2 && m.dist >= maxDist2 {
		t.Fatalf("2-byte match at distance %d, beyond the %d-byte band", m.dist, maxDist2)
	}
}

func FuzzSectionRoundTrip(f *testing.F) {
	f.Add([]byte(nil))
	f.Add([]byte("lemmings"))
	f.Add(bytes.Repeat([]byte{0xAA}, 300))
	f.Add(bytes.Repeat([]byte("oh no "), 100))
	r := testRand()
	noise := make([]byte, 150)
	r.Read(noise)
	f.Add(noise)

	f.Fuzz(func(t *testing.T, input []byte) {
		cs, err := CompressSection(input)
		if err != nil {
			t.Fatalf("compress: %v", err)
		}
		if len(cs.Payload) > len(input) {
			t.Fatalf("payload grew: %d from %d", len(cs.Payload), len(input))
		}
		var out []byte
		if cs.Raw {
			out = cs.Payload
		} else {
			out, err = DecompressSection(cs.Payload, uint32(len(input)), cs.FinalByteBits)
			if err != nil {
				t.Fatalf("decompress: %v", err)
			}
		}
		if !bytes.Equal(out, input) {
			t.Fatal("round trip mismatch")
		}
	})
}
