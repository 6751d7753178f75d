// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package maindat

import (
	"image/color"

	"github.com/lemmod/lemdat/planar"
)

type paletteKind int

const (
	paletteSprites paletteKind = iota
	paletteHiPerf
	paletteMenu
)

// The game never stores these palettes in the container; they live in the
// executable. 6-bit VGA triplets, 16 entries each.
var (
	spritesVGA = []byte{
		0, 0, 0, 16, 16, 56, 0, 44, 0, 60, 58, 58, 44, 44, 0, 60, 8, 8,
		32, 32, 32, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	// The holiday release recolors the lemmings but keeps the layout.
	xmasVGA = []byte{
		0, 0, 0, 52, 8, 8, 0, 44, 0, 60, 52, 52, 60, 60, 0, 16, 16, 60,
		32, 32, 32, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	hiPerfVGA = []byte{
		0, 0, 0, 16, 16, 56, 0, 44, 0, 60, 58, 58, 44, 44, 0, 60, 8, 8,
		32, 32, 32, 0, 0, 0, 0, 42, 0, 21, 63, 21, 21, 21, 21, 42, 0, 0,
		42, 21, 0, 0, 42, 42, 63, 21, 63, 42, 0, 42,
	}

	menuVGA = []byte{
		0, 0, 0, 32, 16, 8, 24, 12, 8, 12, 0, 4,
		8, 2, 31, 16, 11, 36, 26, 22, 41, 38, 35, 47, 0, 20, 0, 0, 24, 4,
		0, 28, 8, 0, 32, 16, 52, 52, 52, 44, 44, 0, 16, 20, 44, 56, 32, 36,
	}
)

// palette resolves a palette kind, honoring the holiday recolor for the
// sprite sections.
func (k paletteKind) palette(xmas bool) color.Palette {
	switch k {
	case paletteHiPerf:
		return planar.FromVGA(hiPerfVGA)
	case paletteMenu:
		return planar.FromVGA(menuVGA)
	default:
		if xmas {
			return planar.FromVGA(xmasVGA)
		}
		return planar.FromVGA(spritesVGA)
	}
}
