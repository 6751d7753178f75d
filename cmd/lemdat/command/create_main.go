// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package command

import (
	"github.com/sirupsen/logrus"

	"github.com/lemmod/lemdat/internal/fsutil"
	"github.com/lemmod/lemdat/maindat"
)

const (
	CreateMainDescription = "Build main.dat from BMP filmstrips and the sound bank"
	CreateMainHelp        = CreateMainDescription + "\n\n" +
		"Reads the filmstrips and pcspkr.snd previously written by\n" +
		"extract-main and rebuilds the seven-section container."
)

// CreateMain represents the `create-main` command of the lemdat cli tool.
type CreateMain struct {
	loggingOptions
	Dir string `long:"dir" default:"." description:"Directory holding the filmstrips and receiving main.dat"`
}

// Execute builds main.dat, it honors the go-flags.Commander interface.
func (c *CreateMain) Execute(args []string) error {
	if err := c.setupLogging(); err != nil {
		return err
	}

	store := fsutil.Dir(c.Dir)
	container, err := maindat.Create(store, maindat.Options{})
	if err != nil {
		return err
	}

	if err := store.WriteFile("main.dat", container); err != nil {
		return err
	}
	logrus.WithField("size", len(container)).Info("main.dat written")
	return nil
}
