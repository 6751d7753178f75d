// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package planar

import (
	"image"
	"image/color"
	"io"

	"golang.org/x/image/bmp"
)

// Image converts the bitmap to a paletted image using the given palette.
// Pixel values beyond the palette render as whatever the image package does
// with out-of-range indices, so callers normally pass a palette with at
// least 1<<Planes entries.
func (b *Bitmap) Image(pal color.Palette) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, b.Width, b.Height), pal)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			img.SetColorIndex(x, y, b.PackedPixel(x, y))
		}
	}
	return img
}

// FromImage converts a paletted image to a planar bitmap of the given
// depth. Every pixel index must fit in the requested plane count.
func FromImage(img *image.Paletted, planes int) (*Bitmap, error) {
	bounds := img.Bounds()
	b, err := New(bounds.Dx(), bounds.Dy(), planes)
	if err != nil {
		return nil, err
	}
	limit := uint8(1)<<planes - 1
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			idx := img.ColorIndexAt(bounds.Min.X+x, bounds.Min.Y+y)
			if idx > limit {
				return nil, ErrDepthOverflow.New(idx, planes)
			}
			b.SetPixel(x, y, idx)
		}
	}
	return b, nil
}

// EncodeBMP writes the bitmap as an 8-bit paletted Windows BMP, the format
// image editors round-trip without quantizing.
func EncodeBMP(w io.Writer, b *Bitmap, pal color.Palette) error {
	return bmp.Encode(w, b.Image(pal))
}

// DecodeBMP reads a paletted Windows BMP back into a planar bitmap of the
// given depth, returning the file's palette alongside it.
func DecodeBMP(r io.Reader, planes int) (*Bitmap, color.Palette, error) {
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, nil, err
	}
	paletted, ok := img.(*image.Paletted)
	if !ok {
		return nil, nil, ErrNotPaletted.New(img)
	}
	b, err := FromImage(paletted, planes)
	if err != nil {
		return nil, nil, err
	}
	return b, paletted.Palette, nil
}
