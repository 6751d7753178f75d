// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package maindat

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/sirupsen/logrus"
	"gopkg.in/src-d/go-errors.v1"

	"github.com/lemmod/lemdat"
	"github.com/lemmod/lemdat/planar"
)

// ErrBadMain is returned when the container does not hold what the layout
// tables require.
var ErrBadMain = errors.NewKind("main asset container inconsistent: %s")

// FileStore is where extracted filmstrips and the sound bank go, and where
// Create reads them back from.
type FileStore interface {
	WriteFile(name string, data []byte) error
	ReadFile(name string) ([]byte, error)
}

// Options adjusts extraction and creation.
type Options struct {
	// Xmas applies the holiday release's sprite palette. Layout is
	// unaffected; the holiday releases use the same container structure.
	Xmas bool
}

// Extract unpacks the main asset container into BMP filmstrips named
// <section>_<anim>.bmp plus the raw PC speaker sound bank.
func Extract(archiveData []byte, store FileStore, opts Options) error {
	a, err := lemdat.ReadArchive(archiveData)
	if err != nil {
		return err
	}
	if a.NumSections() < NumSections {
		return ErrBadMain.New(fmt.Sprintf("container has %d sections, need %d", a.NumSections(), NumSections))
	}

	for _, g := range groups {
		data, err := decompressTolerant(a, g.section)
		if err != nil {
			return err
		}
		if err := extractGroup(data, g, store, g.palette.palette(opts.Xmas)); err != nil {
			return err
		}
	}

	sound, err := decompressTolerant(a, soundSection)
	if err != nil {
		return err
	}
	return store.WriteFile(SoundFileName, sound)
}

// extractGroup walks one section's layout table, slicing consecutive
// frames into a filmstrip per animation.
func extractGroup(data []byte, g group, store FileStore, pal color.Palette) error {
	offset := 0
	for _, anim := range g.anims {
		logrus.WithFields(logrus.Fields{
			"section": g.prefix,
			"anim":    anim.Name,
			"frames":  anim.Frames,
		}).Debug("extracting filmstrip")

		strip, err := planar.New(anim.Width, anim.Height*anim.Frames, anim.Planes)
		if err != nil {
			return err
		}
		frameSize := anim.FrameSize()
		for frame := 0; frame < anim.Frames; frame++ {
			if offset+frameSize > len(data) {
				return ErrBadMain.New(fmt.Sprintf(
					"section %s ends inside %s frame %d", g.prefix, anim.Name, frame))
			}
			img, err := planar.FromContiguous(data[offset:offset+frameSize], anim.Width, anim.Height, anim.Planes)
			if err != nil {
				return err
			}
			offset += frameSize
			if err := strip.Blit(img, 0, frame*anim.Height); err != nil {
				return err
			}
		}

		var buf bytes.Buffer
		if err := planar.EncodeBMP(&buf, strip, pal); err != nil {
			return err
		}
		name := fmt.Sprintf("%s_%s.bmp", g.prefix, anim.Name)
		if err := store.WriteFile(name, buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// Create rebuilds the container from filmstrips and the sound bank
// previously written by Extract.
func Create(store FileStore, opts Options) ([]byte, error) {
	sections := make([][]byte, NumSections)

	for _, g := range groups {
		data, err := buildGroup(g, store)
		if err != nil {
			return nil, err
		}
		sections[g.section] = data
	}

	sound, err := store.ReadFile(SoundFileName)
	if err != nil {
		return nil, err
	}
	sections[soundSection] = sound

	logrus.WithField("sections", NumSections).Info("building main asset container")
	return lemdat.WriteArchive(sections)
}

// buildGroup reassembles one section from its filmstrips: frames in table
// order, planes contiguous within each frame.
func buildGroup(g group, store FileStore) ([]byte, error) {
	var data []byte
	for _, anim := range g.anims {
		name := fmt.Sprintf("%s_%s.bmp", g.prefix, anim.Name)
		raw, err := store.ReadFile(name)
		if err != nil {
			return nil, err
		}
		strip, _, err := planar.DecodeBMP(bytes.NewReader(raw), anim.Planes)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		if strip.Width != anim.Width || strip.Height != anim.Height*anim.Frames {
			return nil, ErrBadMain.New(fmt.Sprintf(
				"%s is %dx%d, need %dx%d", name, strip.Width, strip.Height, anim.Width, anim.Height*anim.Frames))
		}

		for frame := 0; frame < anim.Frames; frame++ {
			for plane := 0; plane < anim.Planes; plane++ {
				pd, err := strip.PlaneData(plane, 0, frame*anim.Height, anim.Width, anim.Height)
				if err != nil {
					return nil, err
				}
				data = append(data, pd...)
			}
		}
	}
	return data, nil
}

func decompressTolerant(a *lemdat.Archive, i int) ([]byte, error) {
	data, err := a.Decompress(i)
	if lemdat.ErrChecksumMismatch.Is(err) {
		logrus.WithField("section", i).WithError(err).
			Warn("checksum mismatch, continuing with decoded data")
		return data, nil
	}
	return data, err
}
