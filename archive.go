// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package lemdat

import (
	"fmt"
	"io"

	lru "github.com/hashicorp/golang-lru/v2"
)

// sectionCacheSize bounds how many decompressed sections an Archive keeps
// around. Containers in practice hold well under a dozen sections, so this
// effectively caches everything while still bounding damaged inputs that
// declare absurd section counts.
const sectionCacheSize = 32

// SectionInfo describes one section of a container without decompressing it.
type SectionInfo struct {
	// Index is the section's position in the container, starting at 0.
	Index int

	// Offset is the byte offset of the section header within the container.
	Offset int

	// CompressedSize is the stored size of the section, header included.
	CompressedSize uint32

	// DecompressedSize is the size of the section once decompressed.
	DecompressedSize uint32

	// Checksum is the stored XOR checksum of the payload.
	Checksum uint8

	// Raw reports that the payload is stored verbatim rather than
	// compressed. A stored payload exactly as large as its decompressed
	// size can only be verbatim, since compressed payloads are required
	// to be strictly smaller.
	Raw bool
}

// Archive is a read-only view over a parsed container. Section metadata is
// available immediately; payloads are decompressed on demand and memoized.
type Archive struct {
	sections []archiveSection
	cache    *lru.Cache[int, []byte]
}

// archiveSection pairs a section's metadata with its payload slice.
type archiveSection struct {
	info          SectionInfo
	finalByteBits uint8
	payload       []byte
}

// ReadArchive parses a container from data. The whole index is validated up
// front: every section header must lie inside the buffer and the declared
// compressed sizes must sum exactly to the container size, otherwise
// ErrHeaderCorrupt is returned. No payload is decompressed yet.
//
// The parsed Archive aliases data; the caller must not modify it while the
// Archive is in use.
func ReadArchive(data []byte) (*Archive, error) {
	a := &Archive{}

	off := 0
	for off < len(data) {
		if len(data)-off < SectionHeaderSize {
			return nil, ErrHeaderCorrupt.New(fmt.Sprintf(
				"%d trailing bytes after section %d, need at least %d for a header",
				len(data)-off, len(a.sections), SectionHeaderSize))
		}
		h := parseSectionHeader(data[off:])
		if h.CompressedSize < SectionHeaderSize {
			return nil, ErrHeaderCorrupt.New(fmt.Sprintf(
				"section %d declares compressed size %d, below the %d-byte header",
				len(a.sections), h.CompressedSize, SectionHeaderSize))
		}
		end := off + int(h.CompressedSize)
		if end > len(data) {
			return nil, ErrHeaderCorrupt.New(fmt.Sprintf(
				"section %d declares %d bytes but only %d remain",
				len(a.sections), h.CompressedSize, len(data)-off))
		}

		payload := data[off+SectionHeaderSize : end]
		a.sections = append(a.sections, archiveSection{
			info: SectionInfo{
				Index:            len(a.sections),
				Offset:           off,
				CompressedSize:   h.CompressedSize,
				DecompressedSize: h.DecompressedSize,
				Checksum:         h.Checksum,
				Raw:              len(payload) == int(h.DecompressedSize),
			},
			finalByteBits: h.FinalByteBits,
			payload:       payload,
		})
		off = end
	}

	cache, err := lru.New[int, []byte](sectionCacheSize)
	if err != nil {
		return nil, err
	}
	a.cache = cache
	return a, nil
}

// ReadArchiveFrom reads a whole container from r and parses it. Sections
// are small enough that holding the container in memory is the expected
// mode of operation.
func ReadArchiveFrom(r io.Reader) (*Archive, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read container: %w", err)
	}
	return ReadArchive(data)
}

// NumSections returns the number of sections in the container.
func (a *Archive) NumSections() int {
	return len(a.sections)
}

// Sections returns metadata for every section, in container order.
func (a *Archive) Sections() []SectionInfo {
	infos := make([]SectionInfo, len(a.sections))
	for i, s := range a.sections {
		infos[i] = s.info
	}
	return infos
}

// Section returns metadata for one section.
func (a *Archive) Section(i int) (SectionInfo, error) {
	if i < 0 || i >= len(a.sections) {
		return SectionInfo{}, fmt.Errorf("section %d out of range, container has %d", i, len(a.sections))
	}
	return a.sections[i].info, nil
}

// Decompress returns the decompressed bytes of section i. Other sections
// are not touched, so a damaged section never blocks access to the rest.
//
// A checksum mismatch is reported as ErrChecksumMismatch but decoding is
// still attempted: the returned bytes are the best-effort output, letting
// callers recover what they can from damaged containers. Every other error
// returns nil bytes.
func (a *Archive) Decompress(i int) ([]byte, error) {
	if i < 0 || i >= len(a.sections) {
		return nil, fmt.Errorf("section %d out of range, container has %d", i, len(a.sections))
	}
	if data, ok := a.cache.Get(i); ok {
		return data, nil
	}

	s := a.sections[i]
	var sumErr error
	if sum := xorChecksum(s.payload); sum != s.info.Checksum {
		sumErr = ErrChecksumMismatch.New(i, s.info.Checksum, sum)
	}

	var data []byte
	if s.info.Raw {
		data = make([]byte, len(s.payload))
		copy(data, s.payload)
	} else {
		var err error
		data, err = DecompressSection(s.payload, s.info.DecompressedSize, s.finalByteBits)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
	}

	if sumErr != nil {
		return data, sumErr
	}
	a.cache.Add(i, data)
	return data, nil
}

// DecompressAll returns every section's decompressed bytes in container
// order. It fails on the first undecodable section; checksum mismatches
// are tolerated the same way Decompress tolerates them.
func (a *Archive) DecompressAll() ([][]byte, error) {
	out := make([][]byte, len(a.sections))
	for i := range a.sections {
		data, err := a.Decompress(i)
		if err != nil && !ErrChecksumMismatch.Is(err) {
			return nil, err
		}
		out[i] = data
	}
	return out, nil
}
