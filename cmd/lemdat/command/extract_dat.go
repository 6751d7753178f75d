// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/lemmod/lemdat"
	"github.com/lemmod/lemdat/internal/fsutil"
)

const (
	ExtractDatDescription = "Split a .dat container into its decompressed sections"
	ExtractDatHelp        = ExtractDatDescription + "\n\n" +
		"Each section of <name>.dat is decompressed and written out as\n" +
		"<name>.000, <name>.001 and so on, in container order. Sections with\n" +
		"a bad checksum are still written; a warning is logged."
)

// ExtractDat represents the `extract-dat` command of the lemdat cli tool.
type ExtractDat struct {
	loggingOptions
	Dir string `long:"dir" default:"." description:"Directory holding the container; the sections are written next to it"`

	Args struct {
		Name string `positional-arg-name:"name" description:"Container base name, without the .dat extension"`
	} `positional-args:"yes" required:"yes"`
}

// Execute splits the container, it honors the go-flags.Commander interface.
func (c *ExtractDat) Execute(args []string) error {
	if err := c.setupLogging(); err != nil {
		return err
	}

	path, err := fsutil.FindFile(c.Dir, c.Args.Name+".dat")
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	a, err := lemdat.ReadArchive(data)
	if err != nil {
		return err
	}

	for i := 0; i < a.NumSections(); i++ {
		section, err := a.Decompress(i)
		if lemdat.ErrChecksumMismatch.Is(err) {
			logrus.WithField("section", i).WithError(err).
				Warn("checksum mismatch, writing decoded data anyway")
		} else if err != nil {
			return err
		}

		out := filepath.Join(c.Dir, fmt.Sprintf("%s.%03d", c.Args.Name, i))
		if err := os.WriteFile(out, section, 0o644); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"section": i,
			"size":    len(section),
			"file":    out,
		}).Debug("section extracted")
	}

	logrus.WithField("sections", a.NumSections()).Info("container extracted")
	return nil
}
