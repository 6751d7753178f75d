// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

// Package gfxset reads and writes the per-theme graphics sets: the pair of
// ground header and data containers that hold a theme's interactive
// objects, terrain pieces and palettes.
//
// The header file is a fixed-layout little-endian table: 16 object
// records, 64 terrain records and a 96-byte palette block. The data file
// is a two-section compressed container, terrain graphics first, object
// animations second. Everything else in this package shuttles between that
// pair and a directory of editable BMP filmstrips described by a small
// text script.
package gfxset

import (
	"bytes"
	"encoding/binary"
	"io"

	"gopkg.in/src-d/go-errors.v1"
)

const (
	// NumObjects and NumTerrain are the fixed record counts in a ground
	// header file; unused slots are zero-filled.
	NumObjects = 16
	NumTerrain = 64

	objectHeaderSize  = 28
	terrainHeaderSize = 8
	palettesSize      = 96

	// HeaderFileSize is the total size of a ground header file.
	HeaderFileSize = NumObjects*objectHeaderSize + NumTerrain*terrainHeaderSize + palettesSize
)

var (
	// ErrShortHeader is returned when a ground header file is smaller than
	// its fixed layout.
	ErrShortHeader = errors.NewKind("ground header is %d bytes, need %d")

	// ErrBadSet is returned when a graphics set's containers do not hold
	// what the headers claim.
	ErrBadSet = errors.NewKind("graphics set inconsistent: %s")
)

// ObjectHeader describes one interactive object: its animation frames in
// the data file and the in-game trigger area and effect.
type ObjectHeader struct {
	AnimationFlags uint16
	FrameStart     uint8
	FrameEnd       uint8
	Width          uint8
	Height         uint8

	// FrameDataSize is the byte stride between animation frames: four
	// graphics planes plus the mask plane.
	FrameDataSize uint16

	// MaskOffset locates the mask plane within each frame's data.
	MaskOffset uint16

	Unknown0 uint16
	Unknown1 uint16

	TriggerX      uint16
	TriggerY      uint16
	TriggerW      uint8
	TriggerH      uint8
	TriggerEffect uint8

	// AnimationOffset is the byte offset of frame 0 in the object section.
	AnimationOffset uint16

	// PreviewFrameOffset is the byte offset of the frame shown in the
	// level preview; PreviewFrame is the same thing as a frame number.
	PreviewFrameOffset uint16

	Unknown2  uint16
	TrapSound uint8

	// PreviewFrame is derived from PreviewFrameOffset on read and folded
	// back into it on write. It is not stored on disk separately.
	PreviewFrame uint8
}

// objectHeaderRecord is the 28-byte on-disk form.
type objectHeaderRecord struct {
	AnimationFlags     uint16
	FrameStart         uint8
	FrameEnd           uint8
	Width              uint8
	Height             uint8
	FrameDataSize      uint16
	MaskOffset         uint16
	Unknown0           uint16
	Unknown1           uint16
	TriggerX           uint16
	TriggerY           uint16
	TriggerW           uint8
	TriggerH           uint8
	TriggerEffect      uint8
	AnimationOffset    uint16
	PreviewFrameOffset uint16
	Unknown2           uint16
	TrapSound          uint8
}

func readObjectHeader(r io.Reader) (*ObjectHeader, error) {
	rec := &objectHeaderRecord{}
	if err := binary.Read(r, binary.LittleEndian, rec); err != nil {
		return nil, err
	}
	h := &ObjectHeader{
		AnimationFlags:     rec.AnimationFlags,
		FrameStart:         rec.FrameStart,
		FrameEnd:           rec.FrameEnd,
		Width:              rec.Width,
		Height:             rec.Height,
		FrameDataSize:      rec.FrameDataSize,
		MaskOffset:         rec.MaskOffset,
		Unknown0:           rec.Unknown0,
		Unknown1:           rec.Unknown1,
		TriggerX:           rec.TriggerX,
		TriggerY:           rec.TriggerY,
		TriggerW:           rec.TriggerW,
		TriggerH:           rec.TriggerH,
		TriggerEffect:      rec.TriggerEffect,
		AnimationOffset:    rec.AnimationOffset,
		PreviewFrameOffset: rec.PreviewFrameOffset,
		Unknown2:           rec.Unknown2,
		TrapSound:          rec.TrapSound,
	}
	if h.FrameDataSize != 0 {
		h.PreviewFrame = uint8((h.PreviewFrameOffset - h.AnimationOffset) / h.FrameDataSize)
	}
	return h, nil
}

func (h *ObjectHeader) write(w io.Writer) error {
	rec := &objectHeaderRecord{
		AnimationFlags:     h.AnimationFlags,
		FrameStart:         h.FrameStart,
		FrameEnd:           h.FrameEnd,
		Width:              h.Width,
		Height:             h.Height,
		FrameDataSize:      h.FrameDataSize,
		MaskOffset:         h.MaskOffset,
		Unknown0:           h.Unknown0,
		Unknown1:           h.Unknown1,
		TriggerX:           h.TriggerX,
		TriggerY:           h.TriggerY,
		TriggerW:           h.TriggerW,
		TriggerH:           h.TriggerH,
		TriggerEffect:      h.TriggerEffect,
		AnimationOffset:    h.AnimationOffset,
		PreviewFrameOffset: h.PreviewFrameOffset,
		Unknown2:           h.Unknown2,
		TrapSound:          h.TrapSound,
	}
	return binary.Write(w, binary.LittleEndian, rec)
}

// TerrainHeader describes one terrain piece in the terrain section.
type TerrainHeader struct {
	Width      uint8
	Height     uint8
	GfxOffset  uint16
	MaskOffset uint16
	Unknown    uint16
}

func readTerrainHeader(r io.Reader) (*TerrainHeader, error) {
	h := &TerrainHeader{}
	if err := binary.Read(r, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *TerrainHeader) write(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, h)
}

// Palettes is the 96-byte palette block at the end of a ground header:
// three 8-entry EGA register sets followed by three 8-entry VGA triplet
// sets. The "standard" halves cover fixed game colors; "custom" is the
// theme's own upper half; "preview" is used by the level preview screen.
type Palettes struct {
	EGACustom   [8]uint8
	EGAStandard [8]uint8
	EGAPreview  [8]uint8
	VGACustom   [24]uint8
	VGAStandard [24]uint8
	VGAPreview  [24]uint8
}

func readPalettes(r io.Reader) (*Palettes, error) {
	p := &Palettes{}
	if err := binary.Read(r, binary.LittleEndian, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Palettes) write(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, p)
}

// Header is a parsed ground header file.
type Header struct {
	Objects  [NumObjects]ObjectHeader
	Terrain  [NumTerrain]TerrainHeader
	Palettes Palettes
}

// ParseHeader parses a complete ground header file.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderFileSize {
		return nil, ErrShortHeader.New(len(data), HeaderFileSize)
	}
	r := bytes.NewReader(data)

	h := &Header{}
	for i := range h.Objects {
		oh, err := readObjectHeader(r)
		if err != nil {
			return nil, err
		}
		h.Objects[i] = *oh
	}
	for i := range h.Terrain {
		th, err := readTerrainHeader(r)
		if err != nil {
			return nil, err
		}
		h.Terrain[i] = *th
	}
	pal, err := readPalettes(r)
	if err != nil {
		return nil, err
	}
	h.Palettes = *pal
	return h, nil
}

// Encode serializes the header back into its fixed on-disk layout.
func (h *Header) Encode() ([]byte, error) {
	w := &bytes.Buffer{}
	w.Grow(HeaderFileSize)
	for i := range h.Objects {
		if err := h.Objects[i].write(w); err != nil {
			return nil, err
		}
	}
	for i := range h.Terrain {
		if err := h.Terrain[i].write(w); err != nil {
			return nil, err
		}
	}
	if err := h.Palettes.write(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
