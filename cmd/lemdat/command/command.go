// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

// Package command holds the subcommands of the lemdat cli tool.
package command

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// loggingOptions are shared by every subcommand.
type loggingOptions struct {
	Verbose  bool   `short:"v" description:"Activates the verbose mode"`
	LogLevel string `long:"log-level" env:"LEMDAT_LOG_LEVEL" choice:"info" choice:"debug" choice:"warning" choice:"error" choice:"fatal" default:"info" description:"logging level"`
}

func (o loggingOptions) setupLogging() error {
	if o.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
		return nil
	}

	// info is the default log level
	if o.LogLevel != "info" {
		level, err := logrus.ParseLevel(o.LogLevel)
		if err != nil {
			return fmt.Errorf("cannot parse log level: %s", err.Error())
		}
		logrus.SetLevel(level)
	}
	return nil
}
