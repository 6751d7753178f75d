// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package gfxset

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lemmod/lemdat/planar"
)

func TestLexerIdents(t *testing.T) {
	require := require.New(t)
	lex := NewLexer("Hello World")

	tok, err := lex.Next()
	require.NoError(err)
	require.Equal(TokenIdent, tok.Kind)
	require.Equal("Hello", tok.Ident)

	tok, err = lex.Next()
	require.NoError(err)
	require.Equal("World", tok.Ident)

	tok, err = lex.Next()
	require.NoError(err)
	require.Nil(tok)
}

func TestLexerStringLiteral(t *testing.T) {
	require := require.New(t)
	lex := NewLexer(`  " This is a string " `)

	s, err := lex.StringLit()
	require.NoError(err)
	require.Equal(" This is a string ", s)

	tok, err := lex.Next()
	require.NoError(err)
	require.Nil(tok)
}

func TestLexerScript(t *testing.T) {
	require := require.New(t)
	for _, input := range []string{
		`Filename="test.txt"`,
		" Filename  =\n \"test.txt\"\n\n",
	} {
		lex := NewLexer(input)
		require.NoError(lex.ExpectIdent("Filename"))
		require.NoError(lex.ExpectSymbol('='))
		s, err := lex.StringLit()
		require.NoError(err)
		require.Equal("test.txt", s)
		tok, err := lex.Next()
		require.NoError(err)
		require.Nil(tok)
	}
}

func TestLexerNumbers(t *testing.T) {
	require := require.New(t)
	lex := NewLexer("(12,-3)")

	require.NoError(lex.ExpectSymbol('('))
	n, err := lex.IntLit()
	require.NoError(err)
	require.Equal(int64(12), n)
	require.NoError(lex.ExpectSymbol(','))
	n, err = lex.IntLit()
	require.NoError(err)
	require.Equal(int64(-3), n)
	require.NoError(lex.ExpectSymbol(')'))
}

func TestLexerErrors(t *testing.T) {
	require := require.New(t)

	lex := NewLexer(`"never closed`)
	_, err := lex.Next()
	require.True(ErrSyntax.Is(err), "got %v", err)

	lex = NewLexer("not_a_number")
	_, err = lex.IntLit()
	require.True(ErrSyntax.Is(err), "got %v", err)

	lex = NewLexer("")
	err = lex.ExpectIdent("Terrain")
	require.True(ErrSyntax.Is(err), "got %v", err)
}

func TestObjectBlockRoundTrip(t *testing.T) {
	require := require.New(t)

	h := &ObjectHeader{
		AnimationFlags: 1,
		FrameStart:     2,
		FrameEnd:       10,
		TriggerX:       72,
		TriggerY:       32,
		TriggerW:       4,
		TriggerH:       6,
		TriggerEffect:  5,
		PreviewFrame:   3,
		TrapSound:      7,
	}

	var sb strings.Builder
	formatObjectBlock(&sb, h)

	parsed, err := parseObjectBlock(NewLexer(sb.String()))
	require.NoError(err)
	require.Equal(h, parsed)
}

func TestPalettesRoundTrip(t *testing.T) {
	require := require.New(t)

	p := &Palettes{}
	for i := 0; i < 8; i++ {
		p.EGACustom[i] = uint8(i * 7 % 64)
		p.EGAStandard[i] = uint8(i)
		p.EGAPreview[i] = uint8(63 - i*3)
	}
	for i := 0; i < 24; i++ {
		p.VGACustom[i] = uint8(i)
		p.VGAStandard[i] = uint8(63 - i)
		p.VGAPreview[i] = uint8(i * 2 % 64)
	}

	var sb strings.Builder
	formatPalettes(&sb, p)

	parsed, err := parsePalettes(NewLexer(sb.String()))
	require.NoError(err)
	require.Equal(p, parsed)
}

func TestHeaderEncodeParseRoundTrip(t *testing.T) {
	require := require.New(t)

	h := &Header{}
	h.Objects[0] = ObjectHeader{
		AnimationFlags:     1,
		FrameEnd:           4,
		Width:              16,
		Height:             8,
		FrameDataSize:      80,
		MaskOffset:         64,
		TriggerX:           10,
		TriggerY:           20,
		TriggerW:           2,
		TriggerH:           3,
		TriggerEffect:      4,
		AnimationOffset:    100,
		PreviewFrameOffset: 260,
		TrapSound:          9,
	}
	h.Terrain[0] = TerrainHeader{Width: 32, Height: 16, GfxOffset: 0, MaskOffset: 256}
	h.Terrain[1] = TerrainHeader{Width: 8, Height: 8, GfxOffset: 300, MaskOffset: 332}
	h.Palettes.VGACustom[0] = 63

	data, err := h.Encode()
	require.NoError(err)
	require.Len(data, HeaderFileSize)

	parsed, err := ParseHeader(data)
	require.NoError(err)

	// The preview frame number is derived on parse.
	require.Equal(uint8(2), parsed.Objects[0].PreviewFrame)
	h.Objects[0].PreviewFrame = 2
	require.Equal(h, parsed)
}

func TestParseHeaderTooShort(t *testing.T) {
	_, err := ParseHeader(make([]byte, 100))
	require.True(t, ErrShortHeader.Is(err), "got %v", err)
}

// paintedStrip builds a 4-plane image whose left half carries a pixel
// pattern and whose right half is a 0-or-15 mask, the layout inline
// extraction produces.
func paintedStrip(t *testing.T, width, height int) *planar.Bitmap {
	t.Helper()
	b, err := planar.New(width*2, height, 4)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8((x + y*3) % 16)
			b.SetPixel(x, y, v)
			if v != 0 {
				b.SetPixel(x+width, y, 15)
			}
		}
	}
	return b
}

func TestSetRoundTrip(t *testing.T) {
	require := require.New(t)

	pal := planar.FromVGA(bytes.Repeat([]byte{10, 20, 30}, 16))
	store := MemStore{}

	terrain := paintedStrip(t, 16, 8)
	var buf bytes.Buffer
	require.NoError(planar.EncodeBMP(&buf, terrain, pal))
	store["terrain0.bmp"] = buf.Bytes()

	// Two 8x4 frames stacked into an 16x8 strip with inline masks.
	object := paintedStrip(t, 8, 8)
	buf = bytes.Buffer{}
	require.NoError(planar.EncodeBMP(&buf, object, pal))
	store["obj0.bmp"] = buf.Bytes()

	script := `
HeaderFile "ground0o.dat"
DataFile "vgagr0.dat"
Terrain "terrain0.bmp"
Object "obj0.bmp" = {
	animation_flags = 1
	frames = (0,2)
	trigger = (4,2,1,1)
	trigger_effect = 6
	preview_frame = 1
	trap_sound = 3
}
Palettes = {
	ega_custom = {(0, 0, 0),(1, 0, 0),(0, 1, 0),(0, 0, 1),(2, 2, 2),(3, 0, 0),(0, 3, 0),(3, 3, 3)}
	ega_standard = {(0, 0, 0),(1, 1, 1),(2, 2, 2),(3, 3, 3),(1, 0, 0),(0, 1, 0),(0, 0, 1),(2, 0, 2)}
	ega_preview = {(0, 0, 0),(1, 1, 1),(2, 2, 2),(3, 3, 3),(1, 0, 0),(0, 1, 0),(0, 0, 1),(2, 0, 2)}
	vga_custom = {(0, 0, 0),(10, 10, 10),(20, 20, 20),(30, 30, 30),(40, 0, 0),(0, 40, 0),(0, 0, 40),(63, 63, 63)}
	vga_standard = {(0, 0, 0),(8, 8, 8),(16, 16, 16),(24, 24, 24),(32, 32, 32),(40, 40, 40),(48, 48, 48),(63, 63, 63)}
	vga_preview = {(0, 0, 0),(8, 8, 8),(16, 16, 16),(24, 24, 24),(32, 32, 32),(40, 40, 40),(48, 48, 48),(63, 63, 63)}
}
`
	set, err := Create(script, store)
	require.NoError(err)
	require.Equal("ground0o.dat", set.HeaderName)
	require.Equal("vgagr0.dat", set.DataName)
	require.Len(set.Header, HeaderFileSize)

	header, err := ParseHeader(set.Header)
	require.NoError(err)
	require.Equal(uint8(16), header.Terrain[0].Width)
	require.Equal(uint8(8), header.Terrain[0].Height)
	require.Equal(uint8(8), header.Objects[0].Width)
	require.Equal(uint8(4), header.Objects[0].Height)
	// Four graphics planes plus mask of an 8x4 frame: 4 bytes per plane.
	require.Equal(uint16(20), header.Objects[0].FrameDataSize)
	require.Equal(uint16(16), header.Objects[0].MaskOffset)
	require.Equal(uint16(20), header.Objects[0].PreviewFrameOffset)

	// Extract it again and compare the pixels that went in.
	out := MemStore{}
	_, err = Extract(set.Header, set.Data, out, ExtractOptions{})
	require.NoError(err)

	got, _, err := planar.DecodeBMP(bytes.NewReader(out["terrain0.bmp"]), 4)
	require.NoError(err)
	require.Equal(terrain.Data(), got.Data())

	got, _, err = planar.DecodeBMP(bytes.NewReader(out["obj0.bmp"]), 4)
	require.NoError(err)
	require.Equal(object.Data(), got.Data())
}

func TestExtractScriptRereadable(t *testing.T) {
	require := require.New(t)

	// The script Extract emits must parse straight back through Create
	// once the output file names are prepended.
	store := MemStore{}
	pal := planar.FromVGA(bytes.Repeat([]byte{5, 15, 25}, 16))

	terrain := paintedStrip(t, 8, 8)
	var buf bytes.Buffer
	require.NoError(planar.EncodeBMP(&buf, terrain, pal))
	store["terrain0.bmp"] = buf.Bytes()

	script := `
HeaderFile "ground1o.dat"
DataFile "vgagr1.dat"
Terrain "terrain0.bmp"
`
	set, err := Create(script, store)
	require.NoError(err)

	out := MemStore{}
	extracted, err := Extract(set.Header, set.Data, out, ExtractOptions{})
	require.NoError(err)
	require.Contains(extracted, `Terrain "terrain0.bmp"`)
	require.Contains(extracted, "Palettes = {")

	full := fmt.Sprintf("HeaderFile %q\nDataFile %q\n%s", "ground1o.dat", "vgagr1.dat", extracted)
	set2, err := Create(full, out)
	require.NoError(err)
	require.Equal(set.Header, set2.Header)
	require.Equal(set.Data, set2.Data)
}

func TestExtractRejectsShortContainer(t *testing.T) {
	require := require.New(t)

	header := make([]byte, HeaderFileSize)
	_, err := Extract(header, nil, MemStore{}, ExtractOptions{})
	require.True(ErrBadSet.Is(err), "got %v", err)
}

func TestCreateUnknownEntry(t *testing.T) {
	script := `
HeaderFile "h"
DataFile "d"
Sprite "nope.bmp"
`
	_, err := Create(script, MemStore{})
	require.True(t, ErrSyntax.Is(err), "got %v", err)
}
