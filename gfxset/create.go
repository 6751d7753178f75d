// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package gfxset

import (
	"bytes"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/lemmod/lemdat"
	"github.com/lemmod/lemdat/planar"
)

// Set is a freshly built graphics set: the ground header and data
// container bytes together with the output names the script asked for.
type Set struct {
	HeaderName string
	DataName   string
	Header     []byte
	Data       []byte
}

// Create builds a graphics set from a theme script, reading the BMP
// images it references from store. The script names the two output files
// up front:
//
//	HeaderFile "ground0o.dat"
//	DataFile "vgagr0.dat"
//
// followed by Terrain, Object and Palettes entries in the form Extract
// emits them.
func Create(script string, store FileStore) (*Set, error) {
	lex := NewLexer(script)

	if err := lex.ExpectIdent("HeaderFile"); err != nil {
		return nil, err
	}
	headerName, err := lex.StringLit()
	if err != nil {
		return nil, err
	}
	if err := lex.ExpectIdent("DataFile"); err != nil {
		return nil, err
	}
	dataName, err := lex.StringLit()
	if err != nil {
		return nil, err
	}

	header := &Header{}
	var terrainData, objectData []byte
	numTerrain, numObjects := 0, 0

	for {
		t, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if t == nil {
			break
		}
		if t.Kind != TokenIdent {
			return nil, ErrSyntax.New(t.Line, fmt.Sprintf("expected entry, got %s", t))
		}

		switch t.Ident {
		case "Terrain":
			if numTerrain >= NumTerrain {
				return nil, ErrBadSet.New(fmt.Sprintf("more than %d terrain pieces", NumTerrain))
			}
			th, data, err := buildTerrain(lex, store)
			if err != nil {
				return nil, err
			}
			if len(terrainData)+len(data) > math.MaxUint16 {
				return nil, ErrBadSet.New("terrain section exceeds 64KiB of offsets")
			}
			th.GfxOffset += uint16(len(terrainData))
			th.MaskOffset += uint16(len(terrainData))
			header.Terrain[numTerrain] = *th
			terrainData = append(terrainData, data...)
			numTerrain++

		case "Object":
			if numObjects >= NumObjects {
				return nil, ErrBadSet.New(fmt.Sprintf("more than %d objects", NumObjects))
			}
			oh, data, err := buildObject(lex, store)
			if err != nil {
				return nil, err
			}
			if len(objectData)+len(data) > math.MaxUint16 {
				return nil, ErrBadSet.New("object section exceeds 64KiB of offsets")
			}
			oh.AnimationOffset = uint16(len(objectData))
			oh.PreviewFrameOffset = oh.AnimationOffset + oh.FrameDataSize*uint16(oh.PreviewFrame)
			header.Objects[numObjects] = *oh
			objectData = append(objectData, data...)
			numObjects++

		case "Palettes":
			if err := lex.ExpectSymbol('='); err != nil {
				return nil, err
			}
			pal, err := parsePalettes(lex)
			if err != nil {
				return nil, err
			}
			header.Palettes = *pal

		default:
			return nil, ErrSyntax.New(t.Line, fmt.Sprintf("unknown entry %s", t.Ident))
		}
	}

	logrus.WithFields(logrus.Fields{
		"terrain": numTerrain,
		"objects": numObjects,
	}).Info("building graphics set")

	headerBytes, err := header.Encode()
	if err != nil {
		return nil, err
	}
	dataBytes, err := lemdat.WriteArchive([][]byte{terrainData, objectData})
	if err != nil {
		return nil, err
	}
	return &Set{
		HeaderName: headerName,
		DataName:   dataName,
		Header:     headerBytes,
		Data:       dataBytes,
	}, nil
}

// buildTerrain consumes one Terrain entry and returns its header with
// offsets relative to the entry's own data, plus that data: four graphics
// planes followed by the mask plane.
func buildTerrain(lex *Lexer, store FileStore) (*TerrainHeader, []byte, error) {
	name, err := lex.StringLit()
	if err != nil {
		return nil, nil, err
	}
	maskName, err := optionalMask(lex)
	if err != nil {
		return nil, nil, err
	}

	bmp, err := loadBMP(store, name, 4)
	if err != nil {
		return nil, nil, err
	}
	width := bmp.Width
	if maskName == "" {
		// The right half of the image is the mask.
		width = bmp.Width / 2
	}

	var data []byte
	for plane := 0; plane < 4; plane++ {
		pd, err := bmp.PlaneData(plane, 0, 0, width, bmp.Height)
		if err != nil {
			return nil, nil, err
		}
		data = append(data, pd...)
	}
	maskOffset := len(data)

	if maskName == "" {
		pd, err := bmp.PlaneData(0, width, 0, width, bmp.Height)
		if err != nil {
			return nil, nil, err
		}
		data = append(data, pd...)
	} else {
		mask, err := loadBMP(store, maskName, 1)
		if err != nil {
			return nil, nil, err
		}
		if mask.Width != width || mask.Height != bmp.Height {
			return nil, nil, ErrBadSet.New(fmt.Sprintf(
				"mask %s is %dx%d, image is %dx%d", maskName, mask.Width, mask.Height, width, bmp.Height))
		}
		pd, err := mask.PlaneData(0, 0, 0, mask.Width, mask.Height)
		if err != nil {
			return nil, nil, err
		}
		data = append(data, pd...)
	}

	return &TerrainHeader{
		Width:      uint8(width),
		Height:     uint8(bmp.Height),
		GfxOffset:  0,
		MaskOffset: uint16(maskOffset),
	}, data, nil
}

// buildObject consumes one Object entry: the filmstrip image, an optional
// mask strip, and the property block. Layout fields are recomputed from
// the images; offsets in the returned header are relative to the entry's
// own data.
func buildObject(lex *Lexer, store FileStore) (*ObjectHeader, []byte, error) {
	name, err := lex.StringLit()
	if err != nil {
		return nil, nil, err
	}
	maskName, err := optionalMask(lex)
	if err != nil {
		return nil, nil, err
	}

	bmp, err := loadBMP(store, name, 4)
	if err != nil {
		return nil, nil, err
	}
	var mask *planar.Bitmap
	if maskName != "" {
		mask, err = loadBMP(store, maskName, 1)
		if err != nil {
			return nil, nil, err
		}
		if mask.Width != bmp.Width || mask.Height != bmp.Height {
			return nil, nil, ErrBadSet.New(fmt.Sprintf(
				"mask %s is %dx%d, image is %dx%d", maskName, mask.Width, mask.Height, bmp.Width, bmp.Height))
		}
	}

	if err := lex.ExpectSymbol('='); err != nil {
		return nil, nil, err
	}
	oh, err := parseObjectBlock(lex)
	if err != nil {
		return nil, nil, err
	}
	if oh.FrameEnd == 0 {
		return nil, nil, ErrBadSet.New(fmt.Sprintf("object %s has no frames", name))
	}

	width := bmp.Width
	if maskName == "" {
		width = bmp.Width / 2
	}
	frameHeight := bmp.Height / int(oh.FrameEnd)
	planeLen := ((width + 7) / 8) * frameHeight

	oh.Width = uint8(width)
	oh.Height = uint8(frameHeight)
	oh.FrameDataSize = uint16(5 * planeLen)
	oh.MaskOffset = uint16(4 * planeLen)

	var data []byte
	for frame := 0; frame < int(oh.FrameEnd); frame++ {
		for plane := 0; plane < 4; plane++ {
			pd, err := bmp.PlaneData(plane, 0, frame*frameHeight, width, frameHeight)
			if err != nil {
				return nil, nil, err
			}
			data = append(data, pd...)
		}
		var pd []byte
		if maskName == "" {
			pd, err = bmp.PlaneData(0, width, frame*frameHeight, width, frameHeight)
		} else {
			pd, err = mask.PlaneData(0, 0, frame*frameHeight, width, frameHeight)
		}
		if err != nil {
			return nil, nil, err
		}
		data = append(data, pd...)
	}
	return oh, data, nil
}

// optionalMask consumes `Mask "name"` if present.
func optionalMask(lex *Lexer) (string, error) {
	isMask, err := lex.NextIsIdent("Mask")
	if err != nil || !isMask {
		return "", err
	}
	if _, err := lex.Next(); err != nil {
		return "", err
	}
	return lex.StringLit()
}

func loadBMP(store FileStore, name string, planes int) (*planar.Bitmap, error) {
	data, err := store.ReadFile(name)
	if err != nil {
		return nil, err
	}
	bmp, _, err := planar.DecodeBMP(bytes.NewReader(data), planes)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return bmp, nil
}
