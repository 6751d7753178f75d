// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package command

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/lemmod/lemdat/internal/fsutil"
	"github.com/lemmod/lemdat/maindat"
)

const (
	ExtractMainDescription = "Extract main.dat into BMP filmstrips and the sound bank"
	ExtractMainHelp        = ExtractMainDescription + "\n\n" +
		"Every animation, mask and interface element becomes a BMP filmstrip\n" +
		"with one frame per row; the PC speaker data is written as pcspkr.snd."
)

// ExtractMain represents the `extract-main` command of the lemdat cli tool.
type ExtractMain struct {
	loggingOptions
	Dir  string `long:"dir" default:"." description:"Directory holding main.dat and receiving the output"`
	Xmas bool   `long:"xmas" description:"Use the holiday release's sprite palette"`
}

// Execute extracts main.dat, it honors the go-flags.Commander interface.
func (c *ExtractMain) Execute(args []string) error {
	if err := c.setupLogging(); err != nil {
		return err
	}

	path, err := fsutil.FindFile(c.Dir, "main.dat")
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := maindat.Extract(data, fsutil.Dir(c.Dir), maindat.Options{Xmas: c.Xmas}); err != nil {
		return err
	}
	logrus.WithField("file", path).Info("main assets extracted")
	return nil
}
