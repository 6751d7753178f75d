// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package lemdat

import (
	"gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrOutOfData is returned by the bit reader when a read is requested
	// past the end of the compressed stream.
	ErrOutOfData = errors.NewKind("bitstream exhausted: %d bits requested, %d available")

	// ErrTruncatedStream is returned when the compressed stream runs out
	// before the declared decompressed size has been produced.
	ErrTruncatedStream = errors.NewKind("compressed stream truncated: %d of %d bytes decoded")

	// ErrOffsetOutOfRange is returned when a back-reference points outside
	// the already-decoded portion of the output buffer.
	ErrOffsetOutOfRange = errors.NewKind("back-reference to byte %d outside decoded output of %d bytes")

	// ErrOutputOverrun is returned when a decoded command would produce
	// more bytes than the declared decompressed size.
	ErrOutputOverrun = errors.NewKind("decoded data overruns declared size of %d bytes")

	// ErrHeaderCorrupt is returned when the container's section headers are
	// inconsistent with the actual file size.
	ErrHeaderCorrupt = errors.NewKind("container header corrupt: %s")

	// ErrChecksumMismatch is returned when a section's stored checksum does
	// not match the checksum of its payload. It is not necessarily fatal:
	// decompression of the damaged section may still be attempted.
	ErrChecksumMismatch = errors.NewKind("section %d checksum mismatch: stored %#02x, computed %#02x")

	// ErrRoundTripMismatch is returned when the compressor's decode-back
	// self-check fails. It indicates a bug in the codec, never bad input.
	ErrRoundTripMismatch = errors.NewKind("compressor self-check failed: %s")
)
