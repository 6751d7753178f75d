// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

/*
Package lemdat reads and writes the compressed .dat containers used by a
classic DOS puzzle game for its graphics, sound and level data.

A container is a plain concatenation of sections. Every section carries a
10-byte big-endian header (valid bits in the final payload byte, an XOR
checksum of the payload, the decompressed size and the stored size) followed
by its payload. Payloads use a bit-aligned LZ scheme descended from the
Amiga PowerPacker family, with the characteristic twist that the stream is
decoded from the end of the buffer toward the start, emitting output
backward — in the original game this lets a section decompress in place.

Sections that the scheme cannot shrink are stored verbatim: the game's
loader rejects "compressed" data that is not strictly smaller than its
decompressed form, so the writer falls back to raw storage instead of
failing. Raw sections are recognized by a payload exactly as large as the
declared decompressed size.

# Reading

	a, err := lemdat.ReadArchive(data)
	if err != nil {
		log.Fatal(err)
	}
	for _, s := range a.Sections() {
		payload, err := a.Decompress(s.Index)
		...
	}

Sections decompress independently and on demand; one damaged section does
not block access to the others, and checksum failures still yield
best-effort output alongside ErrChecksumMismatch.

# Writing

	w := lemdat.NewWriter()
	w.AddSection(terrain)
	w.AddSection(objects)
	data, err := w.Bytes()

Every encoded section is decoded back and compared against its input
before any output is produced.

The package never touches the filesystem; callers hand it byte slices or
an io.Reader. Higher-level companions build on it: package planar converts
the game's plane-separated bitmaps to ordinary images, packages gfxset and
maindat understand the asset layouts inside specific containers, and
cmd/lemdat ties everything into a command-line tool.
*/
package lemdat
