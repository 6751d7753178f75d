// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package lemdat

import (
	"encoding/binary"
	"io"
)

// Container format constants.
const (
	// SectionHeaderSize is the size of the per-section header in bytes.
	SectionHeaderSize = 10

	// Compressor tuning, fixed by the on-disk format: distances are
	// band-limited per command, and match/literal run lengths are capped
	// by their 8-bit length fields.
	maxMatchLen   = 256
	maxLiteralRun = 264
	searchWindow  = 4096

	// Distance bands for the short copy commands.
	maxDist2 = 256
	maxDist3 = 512
	maxDist4 = 1024
)

// sectionHeader is the 10-byte big-endian header preceding every section's
// compressed payload.
type sectionHeader struct {
	// FinalByteBits is the number of valid bits in the final payload byte
	// (decoding starts there). Zero means the final byte is all padding:
	// it is skipped and the byte before it is treated as full.
	FinalByteBits uint8

	// Checksum is the XOR of all payload bytes.
	Checksum uint8

	// DecompressedSize is the size of the section once decompressed.
	DecompressedSize uint32

	// CompressedSize is the size of the stored section, header included.
	CompressedSize uint32
}

// readSectionHeader reads a section header from a reader.
func readSectionHeader(r io.Reader) (*sectionHeader, error) {
	h := &sectionHeader{}
	if err := binary.Read(r, binary.BigEndian, h); err != nil {
		return nil, err
	}
	return h, nil
}

// writeSectionHeader writes a section header to a writer.
func writeSectionHeader(w io.Writer, h *sectionHeader) error {
	return binary.Write(w, binary.BigEndian, h)
}

// parseSectionHeader decodes a section header from the start of buf.
func parseSectionHeader(buf []byte) *sectionHeader {
	return &sectionHeader{
		FinalByteBits:    buf[0],
		Checksum:         buf[1],
		DecompressedSize: binary.BigEndian.Uint32(buf[2:6]),
		CompressedSize:   binary.BigEndian.Uint32(buf[6:10]),
	}
}
