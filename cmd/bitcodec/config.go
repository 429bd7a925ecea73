// Copyright 2026, The bitarray Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"os"

	"github.com/kloczek/bitarray/bitvec"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	endianFlag = cli.StringFlag{
		Name:   "endian",
		Usage:  "Bit packing convention of decoded vectors (little|big)",
		Value:  "big",
		EnvVar: "BITCODEC_ENDIAN",
	}
	verbosityFlag = cli.StringFlag{
		Name:   "verbosity",
		Usage:  "Logging level (panic|fatal|error|warn|info|debug|trace)",
		Value:  "info",
		EnvVar: "BITCODEC_VERBOSITY",
	}
	logFormatFlag = cli.StringFlag{
		Name:  "log.format",
		Usage: "Log output format (text|json)",
		Value: "text",
	}
)

// config holds the settings shared by all commands.
type config struct {
	endian bitvec.Endian
	log    *logrus.Logger
}

func newConfig(ctx *cli.Context) (*config, error) {
	e, err := bitvec.ParseEndian(ctx.GlobalString(endianFlag.Name))
	if err != nil {
		return nil, err
	}
	lvl, err := logrus.ParseLevel(ctx.GlobalString(verbosityFlag.Name))
	if err != nil {
		return nil, errors.Wrap(err, "invalid verbosity")
	}

	log := logrus.New()
	log.SetLevel(lvl)
	log.Out = os.Stderr
	if ctx.App.ErrWriter != nil {
		log.Out = ctx.App.ErrWriter
	}
	switch f := ctx.GlobalString(logFormatFlag.Name); f {
	case "text":
		log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	case "json":
		log.Formatter = &logrus.JSONFormatter{DisableTimestamp: true}
	default:
		return nil, errors.Errorf("invalid log format %q", f)
	}
	return &config{endian: e, log: log}, nil
}
