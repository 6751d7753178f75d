// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package lemdat

import (
	"bytes"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Writer assembles a container from section payloads. Sections are
// compressed independently — the format has no cross-section state, so the
// loader can read each one on its own and editors can treat them as
// standalone files.
type Writer struct {
	payloads [][]byte
}

// NewWriter returns an empty container writer.
func NewWriter() *Writer {
	return &Writer{}
}

// AddSection appends one section's decompressed payload. Sections appear
// in the container in the order they are added.
func (w *Writer) AddSection(payload []byte) {
	w.payloads = append(w.payloads, payload)
}

// Bytes compresses every section and assembles the container. Sections are
// independent, so they are compressed in parallel and stitched together in
// their original order afterwards. Any failure carries the index of the
// offending section, and nothing is returned unless every section encoded
// and passed its decode-back self-check: the output is all-or-nothing.
func (w *Writer) Bytes() ([]byte, error) {
	compressed := make([]CompressedSection, len(w.payloads))

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for i, payload := range w.payloads {
		i, payload := i, payload
		g.Go(func() error {
			cs, err := CompressSection(payload)
			if err != nil {
				return fmt.Errorf("section %d: %w", i, err)
			}
			compressed[i] = cs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for i, cs := range compressed {
		h := &sectionHeader{
			FinalByteBits:    cs.FinalByteBits,
			Checksum:         xorChecksum(cs.Payload),
			DecompressedSize: uint32(len(w.payloads[i])),
			CompressedSize:   uint32(len(cs.Payload) + SectionHeaderSize),
		}
		if err := writeSectionHeader(&buf, h); err != nil {
			return nil, fmt.Errorf("section %d header: %w", i, err)
		}
		buf.Write(cs.Payload)
	}
	return buf.Bytes(), nil
}

// WriteArchive compresses the given section payloads into a container.
func WriteArchive(sections [][]byte) ([]byte, error) {
	w := NewWriter()
	for _, s := range sections {
		w.AddSection(s)
	}
	return w.Bytes()
}
