// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package planar

import (
	"image/color"
)

// FromVGA builds a palette from 6-bit-per-channel RGB triplets, the layout
// of VGA palette registers. One color per 3 bytes; channel values are
// scaled from 0..63 to 0..252.
func FromVGA(data []byte) color.Palette {
	pal := make(color.Palette, 0, len(data)/3)
	for i := 0; i+2 < len(data); i += 3 {
		pal = append(pal, color.RGBA{
			R: data[i] * 4,
			G: data[i+1] * 4,
			B: data[i+2] * 4,
			A: 0xFF,
		})
	}
	return pal
}

// ToVGA converts a palette back to 6-bit VGA triplets.
func ToVGA(pal color.Palette) []byte {
	out := make([]byte, 0, len(pal)*3)
	for _, c := range pal {
		r, g, b, _ := c.RGBA()
		out = append(out, byte(r>>10), byte(g>>10), byte(b>>10))
	}
	return out
}

// FromEGA builds a palette from EGA register values: one byte per color
// with bits rgbI, where the I bit brightens all three channels.
func FromEGA(vals []byte) color.Palette {
	pal := make(color.Palette, 0, len(vals))
	for _, v := range vals {
		pal = append(pal, egaColor(v))
	}
	return pal
}

// egaColor expands one rgbI register value. Each channel gets the shared
// intensity bit as its high bit, giving the classic 0/85/170/255 levels.
func egaColor(v uint8) color.RGBA {
	i := (v & 0x10) >> 3
	return color.RGBA{
		R: (i | (v&0x04)>>2) * 85,
		G: (i | (v&0x02)>>1) * 85,
		B: (i | v&0x01) * 85,
		A: 0xFF,
	}
}
