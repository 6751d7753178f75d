// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package main

import (
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/lemmod/lemdat/cmd/lemdat/command"
)

const name = "lemdat"

var (
	version = "undefined"
	build   = "undefined"
)

func main() {
	parser := flags.NewNamedParser(name, flags.Default)

	parser.AddCommand("extract-dat", command.ExtractDatDescription, command.ExtractDatHelp,
		&command.ExtractDat{})

	parser.AddCommand("create-dat", command.CreateDatDescription, command.CreateDatHelp,
		&command.CreateDat{})

	parser.AddCommand("extract-set", command.ExtractSetDescription, command.ExtractSetHelp,
		&command.ExtractSet{})

	parser.AddCommand("create-set", command.CreateSetDescription, command.CreateSetHelp,
		&command.CreateSet{})

	parser.AddCommand("extract-main", command.ExtractMainDescription, command.ExtractMainHelp,
		&command.ExtractMain{})

	parser.AddCommand("create-main", command.CreateMainDescription, command.CreateMainHelp,
		&command.CreateMain{})

	parser.AddCommand("stats", command.StatsDescription, command.StatsHelp,
		&command.Stats{})

	parser.AddCommand("version", command.VersionDescription, command.VersionHelp,
		&command.Version{
			Name:    name,
			Version: version,
			Build:   build,
		})

	_, err := parser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrCommandRequired {
			parser.WriteHelp(os.Stdout)
		}

		os.Exit(1)
	}
}
