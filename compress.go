// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package lemdat

import (
	"bytes"
	"fmt"
)

// CompressedSection is the result of compressing one section's raw bytes.
type CompressedSection struct {
	// Payload is the stored byte form of the section, without the header.
	// When Raw is set it is the input verbatim.
	Payload []byte

	// FinalByteBits is the number of valid bits in the final payload byte.
	FinalByteBits uint8

	// Raw reports that compression would not have shrunk the section, so
	// it is stored uncompressed. The game's loader only accepts compressed
	// sections that are strictly smaller than their decompressed form, so
	// this substitution is mandatory rather than best-effort.
	Raw bool
}

// CompressSection encodes raw into the section bitstream format. If the
// encoded form would not be strictly smaller than the input, the input is
// stored verbatim instead. The encoded stream is always decoded back and
// compared against the input before being returned; a mismatch yields
// ErrRoundTripMismatch and indicates a codec bug.
func CompressSection(raw []byte) (CompressedSection, error) {
	bw := &bitWriter{}

	i := 0
	litStart := 0 // start of the pending literal run
	for i < len(raw) {
		m := findMatch(raw, i)

		if m.length == 0 {
			i++
			continue
		}

		flushLiterals(bw, raw[litStart:i])

		// Longer commands spend more bits on the distance field, so the
		// short dedicated commands win whenever they apply.
		switch {
		case m.length > 4:
			bw.writeBits(uint32(m.dist-1), 12)
			bw.writeBits(uint32(m.length-1), 8)
			bw.writeBits(6, 3)
		case m.length == 4:
			bw.writeBits(uint32(m.dist-1), 10)
			bw.writeBits(5, 3)
		case m.length == 3:
			bw.writeBits(uint32(m.dist-1), 9)
			bw.writeBits(4, 3)
		default:
			bw.writeBits(uint32(m.dist-1), 8)
			bw.writeBits(1, 2)
		}

		i += m.length
		litStart = i
	}
	flushLiterals(bw, raw[litStart:])

	payload, finalBits := bw.finish()
	if len(payload) >= len(raw) {
		stored := make([]byte, len(raw))
		copy(stored, raw)
		return CompressedSection{Payload: stored, FinalByteBits: 8, Raw: true}, nil
	}

	decoded, err := DecompressSection(payload, uint32(len(raw)), finalBits)
	if err != nil {
		return CompressedSection{}, ErrRoundTripMismatch.New(err.Error())
	}
	if !bytes.Equal(decoded, raw) {
		return CompressedSection{}, ErrRoundTripMismatch.New(
			fmt.Sprintf("decoded %d bytes differ from input", len(decoded)))
	}

	return CompressedSection{Payload: payload, FinalByteBits: finalBits}, nil
}

// match describes a usable back-reference at the current input position.
// dist is the real distance (stored form is dist-1). A zero length means
// no profitable match was found.
type match struct {
	length int
	dist   int
}

// findMatch scans forward from position i for repeated data. Because the
// decoder runs back-to-front, an early occurrence references a later one:
// sources must lie at higher positions than the bytes they reconstruct.
//
// A single greedy pass tracks the longest match overall plus the nearest
// 2-, 3- and 4-byte candidates inside their distance bands, then picks the
// cheapest command that pays for itself. Long matches always win: the
// n-byte command costs 23 bits against at least 40 bits of literals.
func findMatch(data []byte, i int) match {
	longestLen, longestAt := 1, 0
	best2, best3, best4 := -1, -1, -1

	end := i + searchWindow
	if end > len(data) {
		end = len(data)
	}
	for j := i + 1; j < end; j++ {
		ml := 0
		for ml < maxMatchLen && j+ml < len(data) && data[j+ml] == data[i+ml] {
			ml++
			switch {
			case ml == 2 && best2 < 0 && j < i+maxDist2:
				best2 = j
			case ml == 3 && best3 < 0 && j < i+maxDist3:
				best3 = j
			case ml == 4 && best4 < 0 && j < i+maxDist4:
				best4 = j
			}
		}
		if ml > longestLen {
			longestLen, longestAt = ml, j
		}
	}

	switch {
	case longestLen > 4:
		return match{length: longestLen, dist: longestAt - i}
	case best4 >= 0:
		return match{length: 4, dist: best4 - i}
	case best3 >= 0:
		return match{length: 3, dist: best3 - i}
	case best2 >= 0:
		return match{length: 2, dist: best2 - i}
	}
	return match{}
}

// flushLiterals emits the pending literal bytes, split into runs the
// length codes can express. Short runs (up to 8 bytes) use the 2-bit
// command with a 3-bit length; longer runs up to 264 bytes use the 3-bit
// command with an 8-bit length.
func flushLiterals(bw *bitWriter, lit []byte) {
	for len(lit) > 0 {
		n := len(lit)
		if n > maxLiteralRun {
			n = maxLiteralRun
		}
		for _, b := range lit[:n] {
			bw.writeBits(uint32(b), 8)
		}
		if n <= 8 {
			bw.writeBits(uint32(n-1), 3)
			bw.writeBits(0, 2)
		} else {
			bw.writeBits(uint32(n-9), 8)
			bw.writeBits(7, 3)
		}
		lit = lit[n:]
	}
}
