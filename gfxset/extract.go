// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package gfxset

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lemmod/lemdat"
	"github.com/lemmod/lemdat/planar"
)

// ExtractOptions controls how a graphics set is unpacked into images.
// Patterns name the output files; a '#' in a pattern is replaced with the
// piece index. Empty mask patterns fold the mask into the right half of
// the main image instead of writing a separate file.
type ExtractOptions struct {
	TerrainPattern     string
	TerrainMaskPattern string
	ObjectPattern      string
	ObjectMaskPattern  string

	// EGA selects the EGA palettes instead of the VGA ones.
	EGA bool
}

func (o *ExtractOptions) setDefaults() {
	if o.TerrainPattern == "" {
		o.TerrainPattern = "terrain#.bmp"
	}
	if o.ObjectPattern == "" {
		o.ObjectPattern = "obj#.bmp"
	}
}

// palette builds the 16-color drawing palette: the fixed standard half in
// entries 0..7 and the theme's custom half in 8..15.
func (h *Header) palette(ega bool) color.Palette {
	if ega {
		pal := planar.FromEGA(h.Palettes.EGAStandard[:])
		return append(pal, planar.FromEGA(h.Palettes.EGACustom[:])...)
	}
	pal := planar.FromVGA(h.Palettes.VGAStandard[:])
	return append(pal, planar.FromVGA(h.Palettes.VGACustom[:])...)
}

// Extract unpacks a graphics set into BMP images written to store and
// returns the theme script describing them. headerData is the ground
// header file; archiveData the matching two-section data container.
func Extract(headerData, archiveData []byte, store FileStore, opts ExtractOptions) (string, error) {
	opts.setDefaults()

	header, err := ParseHeader(headerData)
	if err != nil {
		return "", err
	}

	a, err := lemdat.ReadArchive(archiveData)
	if err != nil {
		return "", err
	}
	if a.NumSections() < 2 {
		return "", ErrBadSet.New(fmt.Sprintf("data container has %d sections, need 2", a.NumSections()))
	}
	terrainData, err := decompressTolerant(a, 0)
	if err != nil {
		return "", err
	}
	objectData, err := decompressTolerant(a, 1)
	if err != nil {
		return "", err
	}

	pal := header.palette(opts.EGA)
	var script strings.Builder

	for i := range header.Terrain {
		th := &header.Terrain[i]
		if th.Width == 0 {
			break
		}
		w, h := int(th.Width), int(th.Height)
		logrus.WithFields(logrus.Fields{"piece": i, "size": fmt.Sprintf("%dx%d", w, h)}).
			Debug("extracting terrain")

		img, err := pieceBitmap(terrainData, int(th.GfxOffset), w, h, 4)
		if err != nil {
			return "", ErrBadSet.New(fmt.Sprintf("terrain %d: %s", i, err))
		}
		mask, err := pieceBitmap(terrainData, int(th.MaskOffset), w, h, 1)
		if err != nil {
			return "", ErrBadSet.New(fmt.Sprintf("terrain %d mask: %s", i, err))
		}

		name := expandPattern(opts.TerrainPattern, i)
		if opts.TerrainMaskPattern == "" {
			combined, err := combineWithMask(img, mask)
			if err != nil {
				return "", err
			}
			if err := storeBMP(store, name, combined, pal); err != nil {
				return "", err
			}
			fmt.Fprintf(&script, "Terrain %q\n", name)
		} else {
			maskName := expandPattern(opts.TerrainMaskPattern, i)
			if err := storeBMP(store, name, img, pal); err != nil {
				return "", err
			}
			if err := storeBMP(store, maskName, mask, pal); err != nil {
				return "", err
			}
			fmt.Fprintf(&script, "Terrain %q Mask %q\n", name, maskName)
		}
	}

	for i := range header.Objects {
		oh := &header.Objects[i]
		if oh.Width == 0 {
			break
		}
		w, h := int(oh.Width), int(oh.Height)
		frames := int(oh.FrameEnd)
		logrus.WithFields(logrus.Fields{"object": i, "frames": frames}).
			Debug("extracting object")

		inlineMask := opts.ObjectMaskPattern == ""
		stripWidth := w
		if inlineMask {
			stripWidth = w * 2
		}
		strip, err := planar.New(stripWidth, h*frames, 4)
		if err != nil {
			return "", err
		}
		var maskStrip *planar.Bitmap
		if !inlineMask {
			maskStrip, err = planar.New(stripWidth, h*frames, 1)
			if err != nil {
				return "", err
			}
		}

		for frame := 0; frame < frames; frame++ {
			frameOffset := int(oh.AnimationOffset) + int(oh.FrameDataSize)*frame
			maskOffset := frameOffset + int(oh.MaskOffset)

			img, err := pieceBitmap(objectData, frameOffset, w, h, 4)
			if err != nil {
				return "", ErrBadSet.New(fmt.Sprintf("object %d frame %d: %s", i, frame, err))
			}
			mask, err := pieceBitmap(objectData, maskOffset, w, h, 1)
			if err != nil {
				return "", ErrBadSet.New(fmt.Sprintf("object %d frame %d mask: %s", i, frame, err))
			}

			if err := strip.Blit(img, 0, frame*h); err != nil {
				return "", err
			}
			if inlineMask {
				mask4, err := mask.Swizzle([]int{0, 0, 0, 0})
				if err != nil {
					return "", err
				}
				if err := strip.Blit(mask4, w, frame*h); err != nil {
					return "", err
				}
			} else if err := maskStrip.Blit(mask, 0, frame*h); err != nil {
				return "", err
			}
		}

		name := expandPattern(opts.ObjectPattern, i)
		if inlineMask {
			fmt.Fprintf(&script, "Object %q = ", name)
		} else {
			maskName := expandPattern(opts.ObjectMaskPattern, i)
			if err := storeBMP(store, maskName, maskStrip, pal); err != nil {
				return "", err
			}
			fmt.Fprintf(&script, "Object %q Mask %q = ", name, maskName)
		}
		formatObjectBlock(&script, oh)
		script.WriteString("\n")

		if err := storeBMP(store, name, strip, pal); err != nil {
			return "", err
		}
	}

	script.WriteString("Palettes = ")
	formatPalettes(&script, &header.Palettes)
	script.WriteString("\n")
	return script.String(), nil
}

// decompressTolerant fetches a section, downgrading checksum mismatches to
// warnings so slightly damaged sets still extract.
func decompressTolerant(a *lemdat.Archive, i int) ([]byte, error) {
	data, err := a.Decompress(i)
	if lemdat.ErrChecksumMismatch.Is(err) {
		logrus.WithField("section", i).WithError(err).
			Warn("checksum mismatch, continuing with decoded data")
		return data, nil
	}
	return data, err
}

// pieceBitmap slices one planar image out of a decompressed section.
func pieceBitmap(data []byte, offset, w, h, planes int) (*planar.Bitmap, error) {
	size := ((w + 7) / 8) * h * planes
	if offset < 0 || offset+size > len(data) {
		return nil, fmt.Errorf("%d bytes at offset %d outside %d-byte section", size, offset, len(data))
	}
	return planar.FromContiguous(data[offset:offset+size], w, h, planes)
}

// combineWithMask widens the image and places the mask, spread across all
// four planes, in the right half.
func combineWithMask(img, mask *planar.Bitmap) (*planar.Bitmap, error) {
	out, err := planar.New(img.Width*2, img.Height, 4)
	if err != nil {
		return nil, err
	}
	mask4, err := mask.Swizzle([]int{0, 0, 0, 0})
	if err != nil {
		return nil, err
	}
	if err := out.Blit(img, 0, 0); err != nil {
		return nil, err
	}
	if err := out.Blit(mask4, img.Width, 0); err != nil {
		return nil, err
	}
	return out, nil
}

func expandPattern(pattern string, i int) string {
	return strings.ReplaceAll(pattern, "#", strconv.Itoa(i))
}

func storeBMP(store FileStore, name string, b *planar.Bitmap, pal color.Palette) error {
	var buf bytes.Buffer
	if err := planar.EncodeBMP(&buf, b, pal); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return store.WriteFile(name, buf.Bytes())
}
