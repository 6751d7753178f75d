// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package command

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lemmod/lemdat/gfxset"
	"github.com/lemmod/lemdat/internal/fsutil"
)

const (
	ExtractSetDescription = "Extract a graphics set into BMP images and a theme script"
	ExtractSetHelp        = ExtractSetDescription + "\n\n" +
		"Reads ground<n>o.dat and vgagr<n>.dat, writes the terrain pieces and\n" +
		"object filmstrips as BMP files plus a theme<n>.txt script that\n" +
		"create-set can turn back into the pair of .dat files."
)

// ExtractSet represents the `extract-set` command of the lemdat cli tool.
type ExtractSet struct {
	loggingOptions
	Dir         string `long:"dir" default:"." description:"Directory holding the .dat files and receiving the output"`
	EGA         bool   `long:"ega" description:"Use the set's EGA palettes instead of the VGA ones"`
	FoldedMasks bool   `long:"folded-masks" description:"Fold each mask into the right half of its image instead of writing separate mask files"`

	Args struct {
		Set int `positional-arg-name:"n" description:"Graphics set number"`
	} `positional-args:"yes" required:"yes"`
}

// Execute extracts the set, it honors the go-flags.Commander interface.
func (c *ExtractSet) Execute(args []string) error {
	if err := c.setupLogging(); err != nil {
		return err
	}

	n := c.Args.Set
	headerName := fmt.Sprintf("ground%do.dat", n)
	dataName := fmt.Sprintf("vgagr%d.dat", n)

	store := fsutil.Dir(c.Dir)
	headerData, err := store.ReadFile(headerName)
	if err != nil {
		return err
	}
	archiveData, err := store.ReadFile(dataName)
	if err != nil {
		return err
	}

	opts := gfxset.ExtractOptions{
		TerrainPattern: fmt.Sprintf("set%d_terrain#.bmp", n),
		ObjectPattern:  fmt.Sprintf("set%d_obj#.bmp", n),
		EGA:            c.EGA,
	}
	if !c.FoldedMasks {
		opts.TerrainMaskPattern = fmt.Sprintf("set%d_terrain#_mask.bmp", n)
		opts.ObjectMaskPattern = fmt.Sprintf("set%d_obj#_mask.bmp", n)
	}

	script, err := gfxset.Extract(headerData, archiveData, store, opts)
	if err != nil {
		return err
	}

	// The script must name its inputs so create-set can find them again.
	var buf strings.Builder
	fmt.Fprintf(&buf, "HeaderFile %q\n", headerName)
	fmt.Fprintf(&buf, "DataFile %q\n\n", dataName)
	buf.WriteString(script)

	scriptName := fmt.Sprintf("theme%d.txt", n)
	if err := store.WriteFile(scriptName, []byte(buf.String())); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"set":    n,
		"script": scriptName,
	}).Info("graphics set extracted")
	return nil
}
