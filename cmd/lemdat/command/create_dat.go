// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/lemmod/lemdat"
)

const (
	CreateDatDescription = "Build a .dat container from section files"
	CreateDatHelp        = CreateDatDescription + "\n\n" +
		"Reads <name>.000, <name>.001 and so on until a number is missing,\n" +
		"compresses each file as one section and writes <name>.dat. The\n" +
		"counterpart of extract-dat."
)

// CreateDat represents the `create-dat` command of the lemdat cli tool.
type CreateDat struct {
	loggingOptions
	Dir string `long:"dir" default:"." description:"Directory holding the section files; the container is written next to them"`

	Args struct {
		Name string `positional-arg-name:"name" description:"Container base name, without the .dat extension"`
	} `positional-args:"yes" required:"yes"`
}

// Execute builds the container, it honors the go-flags.Commander interface.
func (c *CreateDat) Execute(args []string) error {
	if err := c.setupLogging(); err != nil {
		return err
	}

	var sections [][]byte
	for i := 0; ; i++ {
		path := filepath.Join(c.Dir, fmt.Sprintf("%s.%03d", c.Args.Name, i))
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			break
		}
		if err != nil {
			return err
		}
		sections = append(sections, data)
	}
	if len(sections) == 0 {
		return fmt.Errorf("no section files matching %s.000 in %s", c.Args.Name, c.Dir)
	}

	container, err := lemdat.WriteArchive(sections)
	if err != nil {
		return err
	}

	out := filepath.Join(c.Dir, c.Args.Name+".dat")
	if err := os.WriteFile(out, container, 0o644); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"sections": len(sections),
		"size":     len(container),
		"file":     out,
	}).Info("container written")
	return nil
}
