// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

// Package maindat unpacks and rebuilds the game's main asset container:
// the lemming sprite animations, skill masks, HUD panels, menu art and
// the PC speaker sound bank.
//
// Unlike the per-theme graphics sets, this container carries no headers
// at all; the game hardcodes every sprite's geometry and the order they
// appear in each section. The layout tables below are that knowledge,
// transcribed, and everything else in the package walks them.
package maindat

// AnimLayout is the fixed geometry of one filmstrip within a section.
type AnimLayout struct {
	Name   string
	Frames int
	Width  int
	Height int
	Planes int
}

// FrameSize returns the bytes one frame occupies in the section.
func (a AnimLayout) FrameSize() int {
	return ((a.Width + 7) / 8) * a.Height * a.Planes
}

// Anims is the lemming sprite section: every skill animation, in the
// order the game loads them.
var Anims = []AnimLayout{
	{"walk_r", 8, 16, 10, 2},
	{"jump_r", 1, 16, 10, 2},
	{"walk_l", 8, 16, 10, 2},
	{"jump_l", 1, 16, 10, 2},
	{"dig", 16, 16, 14, 3},
	{"climb_r", 8, 16, 12, 2},
	{"climb_l", 8, 16, 12, 2},
	{"drown", 16, 16, 10, 2},
	{"pullup_r", 8, 16, 12, 2},
	{"pullup_l", 8, 16, 12, 2},
	{"build_r", 16, 16, 13, 3},
	{"build_l", 16, 16, 13, 3},
	{"bash_r", 32, 16, 10, 3},
	{"bash_l", 32, 16, 10, 3},
	{"mine_r", 24, 16, 13, 3},
	{"mine_l", 24, 16, 13, 3},
	{"fall_r", 4, 16, 10, 2},
	{"fall_l", 4, 16, 10, 2},
	{"brolly_r", 4, 16, 16, 3},
	{"float_r", 4, 16, 16, 3},
	{"brolly_l", 4, 16, 16, 3},
	{"float_l", 4, 16, 16, 3},
	{"splat", 16, 16, 10, 2},
	{"exit", 8, 16, 13, 2},
	{"fry", 14, 16, 14, 4},
	{"block", 16, 16, 10, 2},
	{"shrug_r", 8, 16, 10, 2},
	{"shrug_l", 8, 16, 10, 2},
	{"ohno", 16, 16, 10, 2},
	{"boom", 1, 32, 32, 3},
}

// Masks is the terrain-destruction mask section: 1-plane stencils for the
// digging skills plus the countdown bomb art.
var Masks = []AnimLayout{
	{"bash_r", 4, 16, 10, 1},
	{"bash_l", 4, 16, 10, 1},
	{"mine_r", 2, 16, 13, 1},
	{"mine_l", 2, 16, 13, 1},
	{"bomb", 1, 16, 22, 1},
	{"bomb_font", 10, 8, 8, 1},
}

// InterfaceHi is the high-resolution in-game HUD section.
var InterfaceHi = []AnimLayout{
	{"skills_hi", 1, 320, 40, 4},
	{"skillcount", 20, 8, 8, 1},
	{"font_hi", 37, 8, 16, 3},
}

// MainMenu is the title screen art section.
var MainMenu = []AnimLayout{
	{"background", 1, 320, 104, 2},
	{"logo", 1, 632, 94, 4},
	{"oneplayer", 1, 120, 61, 4},
	{"newgame", 1, 120, 61, 4},
	{"sndbutton", 1, 120, 61, 4},
	{"rating", 1, 120, 61, 4},
	{"exittodos", 1, 120, 61, 4},
	{"controls", 1, 120, 61, 4},
	{"musicon", 1, 64, 31, 4},
	{"sfxicon", 1, 64, 31, 4},
}

// MenuAnim is the animated title screen element section.
var MenuAnim = []AnimLayout{
	{"blink1", 8, 32, 12, 4},
	{"blink2", 8, 32, 12, 4},
	{"blink3", 8, 32, 12, 4},
	{"blink4", 8, 32, 12, 4},
	{"blink5", 8, 32, 12, 4},
	{"blink6", 8, 32, 12, 4},
	{"blink7", 8, 32, 12, 4},
	{"scroll_l", 16, 48, 16, 4},
	{"scroll_r", 16, 48, 16, 4},
	{"reel", 1, 16, 16, 4},
	{"difficulty4", 1, 72, 27, 4},
	{"difficulty3", 1, 72, 27, 4},
	{"difficulty2", 1, 72, 27, 4},
	{"difficulty1", 1, 72, 27, 4},
	{"menufont", 93, 16, 16, 3},
}

// InterfaceLo is the low-resolution HUD section.
var InterfaceLo = []AnimLayout{
	{"skills_lo", 1, 320, 40, 4},
	{"font_lo", 37, 8, 16, 3},
}

// SoundFileName is the name the PC speaker sound bank is stored under
// when extracted. Its section is raw sample data, not graphics.
const SoundFileName = "pcspkr.snd"

// group ties a section index to its layout table, file name prefix and
// palette.
type group struct {
	section int
	prefix  string
	anims   []AnimLayout
	palette paletteKind
}

// Section order in the container. Section 5 is the sound bank and has no
// layout table.
var groups = []group{
	{0, "lemming", Anims, paletteSprites},
	{1, "mask", Masks, paletteSprites},
	{2, "interface_hi", InterfaceHi, paletteHiPerf},
	{3, "menu", MainMenu, paletteMenu},
	{4, "menuanim", MenuAnim, paletteMenu},
	{6, "interface_lo", InterfaceLo, paletteSprites},
}

const soundSection = 5

// NumSections is how many sections the container holds.
const NumSections = 7
