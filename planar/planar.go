// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

// Package planar converts between the plane-separated bitmaps used by
// EGA-era graphics hardware and ordinary paletted images.
//
// A planar bitmap stores one bit per pixel per plane: plane 0 holds the
// least significant bit of every pixel, plane 1 the next, and so on. The
// game's asset files store all of plane 0 contiguously, then all of plane
// 1, which is the layout Bitmap keeps internally. Rows are padded to whole
// bytes; pixels pack most-significant-bit first within each byte.
package planar

import (
	"gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrBadDimensions is returned for bitmap geometry the plane format
	// cannot represent.
	ErrBadDimensions = errors.NewKind("bitmap dimensions %dx%d with %d planes are invalid")

	// ErrDataSize is returned when plane data does not match the bitmap
	// geometry it is claimed to hold.
	ErrDataSize = errors.NewKind("plane data is %d bytes, need %d for %dx%d with %d planes")

	// ErrPlaneMismatch is returned when an operation combines bitmaps of
	// different depths.
	ErrPlaneMismatch = errors.NewKind("cannot combine %d-plane bitmap with %d-plane bitmap")

	// ErrDepthOverflow is returned when a pixel value needs more planes
	// than the bitmap has.
	ErrDepthOverflow = errors.NewKind("pixel value %d does not fit in %d planes")

	// ErrOutOfBounds is returned when a blit or crop reaches outside the
	// destination bitmap.
	ErrOutOfBounds = errors.NewKind("region %dx%d at (%d,%d) outside %dx%d bitmap")

	// ErrNotPaletted is returned when a decoded image file carries no
	// palette. True-color art cannot map back onto plane data.
	ErrNotPaletted = errors.NewKind("image is %T, need a paletted image")
)

// Bitmap is a plane-separated image of up to 8 planes.
type Bitmap struct {
	Width  int
	Height int
	Planes int

	pitch int // bytes per row within one plane
	data  []byte
}

// New returns an all-zero bitmap of the given geometry.
func New(width, height, planes int) (*Bitmap, error) {
	if width < 0 || height < 0 || planes < 1 || planes > 8 {
		return nil, ErrBadDimensions.New(width, height, planes)
	}
	pitch := (width + 7) / 8
	return &Bitmap{
		Width:  width,
		Height: height,
		Planes: planes,
		pitch:  pitch,
		data:   make([]byte, pitch*height*planes),
	}, nil
}

// FromContiguous wraps plane data laid out as whole planes back to back,
// the way the asset files store it. The data is copied.
func FromContiguous(data []byte, width, height, planes int) (*Bitmap, error) {
	b, err := New(width, height, planes)
	if err != nil {
		return nil, err
	}
	if len(data) != len(b.data) {
		return nil, ErrDataSize.New(len(data), len(b.data), width, height, planes)
	}
	copy(b.data, data)
	return b, nil
}

// Pitch returns the number of bytes per row within one plane.
func (b *Bitmap) Pitch() int {
	return b.pitch
}

// PlaneSize returns the number of bytes one plane occupies.
func (b *Bitmap) PlaneSize() int {
	return b.pitch * b.Height
}

// Data returns the contiguous plane data backing the bitmap. The slice is
// live; writing to it writes to the bitmap.
func (b *Bitmap) Data() []byte {
	return b.data
}

// PackedPixel reads the pixel at (x, y) with its plane bits combined into
// one palette index.
func (b *Bitmap) PackedPixel(x, y int) uint8 {
	var v uint8
	mask := uint8(1 << (7 - x%8))
	off := y*b.pitch + x/8
	for plane := 0; plane < b.Planes; plane++ {
		if b.data[plane*b.PlaneSize()+off]&mask != 0 {
			v |= 1 << plane
		}
	}
	return v
}

// SetPixel writes a packed palette index to the pixel at (x, y), spreading
// its bits across the planes.
func (b *Bitmap) SetPixel(x, y int, v uint8) {
	mask := uint8(1 << (7 - x%8))
	off := y*b.pitch + x/8
	for plane := 0; plane < b.Planes; plane++ {
		idx := plane*b.PlaneSize() + off
		if v&(1<<plane) != 0 {
			b.data[idx] |= mask
		} else {
			b.data[idx] &^= mask
		}
	}
}

// PlaneData extracts the w×h region at (x, y) of a single plane, packed
// 8 pixels per byte with rows padded to whole bytes.
func (b *Bitmap) PlaneData(plane, x, y, w, h int) ([]byte, error) {
	if plane < 0 || plane >= b.Planes {
		return nil, ErrPlaneMismatch.New(plane, b.Planes)
	}
	if x < 0 || y < 0 || x+w > b.Width || y+h > b.Height {
		return nil, ErrOutOfBounds.New(w, h, x, y, b.Width, b.Height)
	}

	out := make([]byte, 0, ((w+7)/8)*h)
	base := plane * b.PlaneSize()
	for yi := 0; yi < h; yi++ {
		var cur uint8
		for xi := 0; xi < w; xi++ {
			px := b.data[base+(yi+y)*b.pitch+(xi+x)/8]
			if px&(1<<(7-(xi+x)%8)) != 0 {
				cur |= 1 << (7 - xi%8)
			}
			if xi%8 == 7 {
				out = append(out, cur)
				cur = 0
			}
		}
		if w%8 != 0 {
			out = append(out, cur)
		}
	}
	return out, nil
}

// Blit copies src onto b with its top-left corner at (x, y). Both bitmaps
// must have the same depth.
func (b *Bitmap) Blit(src *Bitmap, x, y int) error {
	if src.Planes != b.Planes {
		return ErrPlaneMismatch.New(src.Planes, b.Planes)
	}
	if x < 0 || y < 0 || src.Width+x > b.Width || src.Height+y > b.Height {
		return ErrOutOfBounds.New(src.Width, src.Height, x, y, b.Width, b.Height)
	}
	for sy := 0; sy < src.Height; sy++ {
		for sx := 0; sx < src.Width; sx++ {
			b.SetPixel(sx+x, sy+y, src.PackedPixel(sx, sy))
		}
	}
	return nil
}

// Crop returns a copy of the w×h region at (x, y).
func (b *Bitmap) Crop(x, y, w, h int) (*Bitmap, error) {
	if x < 0 || y < 0 || x+w > b.Width || y+h > b.Height {
		return nil, ErrOutOfBounds.New(w, h, x, y, b.Width, b.Height)
	}
	out, err := New(w, h, b.Planes)
	if err != nil {
		return nil, err
	}
	for yi := 0; yi < h; yi++ {
		for xi := 0; xi < w; xi++ {
			out.SetPixel(xi, yi, b.PackedPixel(xi+x, yi+y))
		}
	}
	return out, nil
}

// Swizzle builds a new bitmap whose plane i is the source's plane
// planeMap[i]. Planes may be duplicated, reordered or dropped; the result
// has len(planeMap) planes.
func (b *Bitmap) Swizzle(planeMap []int) (*Bitmap, error) {
	out, err := New(b.Width, b.Height, len(planeMap))
	if err != nil {
		return nil, err
	}
	for dst, src := range planeMap {
		if src < 0 || src >= b.Planes {
			return nil, ErrPlaneMismatch.New(src, b.Planes)
		}
		data, err := b.PlaneData(src, 0, 0, b.Width, b.Height)
		if err != nil {
			return nil, err
		}
		copy(out.data[dst*out.PlaneSize():], data)
	}
	return out, nil
}
