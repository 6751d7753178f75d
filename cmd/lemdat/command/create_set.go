// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package command

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/lemmod/lemdat/gfxset"
	"github.com/lemmod/lemdat/internal/fsutil"
)

const (
	CreateSetDescription = "Build a graphics set from a theme script"
	CreateSetHelp        = CreateSetDescription + "\n\n" +
		"Reads the theme script and the BMP images it references and writes\n" +
		"the ground header and data container named by its HeaderFile and\n" +
		"DataFile lines. The counterpart of extract-set."
)

// CreateSet represents the `create-set` command of the lemdat cli tool.
type CreateSet struct {
	loggingOptions
	Dir string `long:"dir" default:"." description:"Directory holding the BMP images and receiving the .dat files"`

	Args struct {
		Script string `positional-arg-name:"script" description:"Theme script file"`
	} `positional-args:"yes" required:"yes"`
}

// Execute builds the set, it honors the go-flags.Commander interface.
func (c *CreateSet) Execute(args []string) error {
	if err := c.setupLogging(); err != nil {
		return err
	}

	script, err := os.ReadFile(c.Args.Script)
	if err != nil {
		return err
	}

	store := fsutil.Dir(c.Dir)
	set, err := gfxset.Create(string(script), store)
	if err != nil {
		return err
	}

	if err := store.WriteFile(set.HeaderName, set.Header); err != nil {
		return err
	}
	if err := store.WriteFile(set.DataName, set.Data); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"header": set.HeaderName,
		"data":   set.DataName,
	}).Info("graphics set written")
	return nil
}
