// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package gfxset

import (
	"fmt"
	"strings"
)

// FileStore is where extraction puts BMP images and where creation reads
// them back. Implementations decide how names map onto storage; the CLI
// uses a directory, tests use memory.
type FileStore interface {
	WriteFile(name string, data []byte) error
	ReadFile(name string) ([]byte, error)
}

// MemStore is an in-memory FileStore.
type MemStore map[string][]byte

func (m MemStore) WriteFile(name string, data []byte) error {
	m[name] = data
	return nil
}

func (m MemStore) ReadFile(name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("no such file %q", name)
	}
	return data, nil
}

// formatObjectBlock renders the editable properties of an object header
// the way extraction writes them into the theme script.
func formatObjectBlock(sb *strings.Builder, h *ObjectHeader) {
	fmt.Fprintf(sb, "{\n")
	fmt.Fprintf(sb, "\tanimation_flags = %d\n", h.AnimationFlags)
	fmt.Fprintf(sb, "\tframes = (%d,%d)\n", h.FrameStart, h.FrameEnd)
	fmt.Fprintf(sb, "\ttrigger = (%d,%d,%d,%d)\n", h.TriggerX, h.TriggerY, h.TriggerW, h.TriggerH)
	fmt.Fprintf(sb, "\ttrigger_effect = %d\n", h.TriggerEffect)
	fmt.Fprintf(sb, "\tpreview_frame = %d\n", h.PreviewFrame)
	fmt.Fprintf(sb, "\ttrap_sound = %d\n", h.TrapSound)
	fmt.Fprintf(sb, "}")
}

// parseObjectBlock reads an object property block. Layout fields (sizes
// and offsets) are not part of the script; creation recomputes them from
// the images.
func parseObjectBlock(lex *Lexer) (*ObjectHeader, error) {
	h := &ObjectHeader{}
	if err := lex.ExpectSymbol('{'); err != nil {
		return nil, err
	}
	for {
		t, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, ErrSyntax.New(0, "unterminated object block")
		}
		if t.Kind == TokenSymbol && t.Symbol == '}' {
			return h, nil
		}
		if t.Kind != TokenIdent {
			return nil, ErrSyntax.New(t.Line, fmt.Sprintf("expected object property, got %s", t))
		}
		if err := lex.ExpectSymbol('='); err != nil {
			return nil, err
		}

		switch t.Ident {
		case "animation_flags":
			n, err := lex.IntLit()
			if err != nil {
				return nil, err
			}
			h.AnimationFlags = uint16(n)
		case "frames":
			vals, err := intTuple(lex, 2)
			if err != nil {
				return nil, err
			}
			h.FrameStart, h.FrameEnd = uint8(vals[0]), uint8(vals[1])
		case "trigger":
			vals, err := intTuple(lex, 4)
			if err != nil {
				return nil, err
			}
			h.TriggerX, h.TriggerY = uint16(vals[0]), uint16(vals[1])
			h.TriggerW, h.TriggerH = uint8(vals[2]), uint8(vals[3])
		case "trigger_effect":
			n, err := lex.IntLit()
			if err != nil {
				return nil, err
			}
			h.TriggerEffect = uint8(n)
		case "preview_frame":
			n, err := lex.IntLit()
			if err != nil {
				return nil, err
			}
			h.PreviewFrame = uint8(n)
		case "trap_sound":
			n, err := lex.IntLit()
			if err != nil {
				return nil, err
			}
			h.TrapSound = uint8(n)
		default:
			return nil, ErrSyntax.New(t.Line, fmt.Sprintf("unknown object property %s", t.Ident))
		}
	}
}

// intTuple parses "(a, b, ...)" with exactly n values.
func intTuple(lex *Lexer, n int) ([]int64, error) {
	if err := lex.ExpectSymbol('('); err != nil {
		return nil, err
	}
	vals := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		if i > 0 {
			if err := lex.ExpectSymbol(','); err != nil {
				return nil, err
			}
		}
		v, err := lex.IntLit()
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	if err := lex.ExpectSymbol(')'); err != nil {
		return nil, err
	}
	return vals, nil
}

// formatPalettes renders the palette block. EGA entries show their 2-bit
// channel values, VGA entries their 6-bit ones.
func formatPalettes(sb *strings.Builder, p *Palettes) {
	sb.WriteString("{")
	egaBlock := func(name string, vals [8]uint8) {
		fmt.Fprintf(sb, "\n\t%s = {", name)
		for i, v := range vals {
			term := byte(',')
			if i == len(vals)-1 {
				term = '}'
			}
			fmt.Fprintf(sb, "(%d, %d, %d)%c", (v>>4)&3, (v>>2)&3, v&3, term)
		}
	}
	vgaBlock := func(name string, vals [24]uint8) {
		fmt.Fprintf(sb, "\n\t%s = {", name)
		for i := 0; i < 8; i++ {
			term := byte(',')
			if i == 7 {
				term = '}'
			}
			fmt.Fprintf(sb, "(%d, %d, %d)%c", vals[i*3], vals[i*3+1], vals[i*3+2], term)
		}
	}
	egaBlock("ega_custom", p.EGACustom)
	egaBlock("ega_standard", p.EGAStandard)
	egaBlock("ega_preview", p.EGAPreview)
	vgaBlock("vga_custom", p.VGACustom)
	vgaBlock("vga_standard", p.VGAStandard)
	vgaBlock("vga_preview", p.VGAPreview)
	sb.WriteString("\n}")
}

// parsePalettes reads a palette block back.
func parsePalettes(lex *Lexer) (*Palettes, error) {
	p := &Palettes{}
	if err := lex.ExpectSymbol('{'); err != nil {
		return nil, err
	}

	egaBlock := func(out *[8]uint8) error {
		if err := lex.ExpectSymbol('{'); err != nil {
			return err
		}
		for i := 0; i < 8; i++ {
			vals, err := intTuple(lex, 3)
			if err != nil {
				return err
			}
			out[i] = uint8(vals[0])<<4 | uint8(vals[1])<<2 | uint8(vals[2])
			if i < 7 {
				if err := lex.ExpectSymbol(','); err != nil {
					return err
				}
			}
		}
		return lex.ExpectSymbol('}')
	}
	vgaBlock := func(out *[24]uint8) error {
		if err := lex.ExpectSymbol('{'); err != nil {
			return err
		}
		for i := 0; i < 8; i++ {
			vals, err := intTuple(lex, 3)
			if err != nil {
				return err
			}
			out[i*3], out[i*3+1], out[i*3+2] = uint8(vals[0]), uint8(vals[1]), uint8(vals[2])
			if i < 7 {
				if err := lex.ExpectSymbol(','); err != nil {
					return err
				}
			}
		}
		return lex.ExpectSymbol('}')
	}

	for {
		t, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, ErrSyntax.New(0, "unterminated palette block")
		}
		if t.Kind == TokenSymbol && t.Symbol == '}' {
			return p, nil
		}
		if t.Kind != TokenIdent {
			return nil, ErrSyntax.New(t.Line, fmt.Sprintf("expected palette name, got %s", t))
		}
		if err := lex.ExpectSymbol('='); err != nil {
			return nil, err
		}

		switch t.Ident {
		case "ega_custom":
			err = egaBlock(&p.EGACustom)
		case "ega_standard":
			err = egaBlock(&p.EGAStandard)
		case "ega_preview":
			err = egaBlock(&p.EGAPreview)
		case "vga_custom":
			err = vgaBlock(&p.VGACustom)
		case "vga_standard":
			err = vgaBlock(&p.VGAStandard)
		case "vga_preview":
			err = vgaBlock(&p.VGAPreview)
		default:
			err = ErrSyntax.New(t.Line, fmt.Sprintf("unknown palette %s", t.Ident))
		}
		if err != nil {
			return nil, err
		}
	}
}
