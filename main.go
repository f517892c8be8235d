// constellation - an adaptive particle-field backdrop for the terminal
// and the desktop.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"os"

	"github.com/jeranaias/constellation/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args, err := cli.Parse()
	if err != nil {
		report(args, err)
	}

	if err := cli.Run(cmd, args); err != nil {
		report(args, err)
	}
}

func report(args cli.Args, err error) {
	if args.JSON {
		cli.DisplayErrorJSON(os.Stdout, err)
	} else {
		cli.DisplayError(os.Stderr, err)
	}
	os.Exit(cli.GetExitCode(err))
}
