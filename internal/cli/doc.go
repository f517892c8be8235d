// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the command handlers for
// constellation.
//
// # Key Types
//
//   - Command: Enumeration of the available commands
//   - Args: Parsed arguments with global flags and command options
//   - ArgParser: Flag and positional parsing shared by the commands
//
// # Usage
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdTUI:
//	    err = cli.HandleTUI(args)
//	case cli.CmdBench:
//	    err = cli.HandleBench(args)
//	// ... other commands
//	}
//
// # Commands Overview
//
// Hosts:
//   - tui: Full-screen terminal backdrop (default)
//   - window: Desktop window
//   - snapshot: Headless render to PNG
//
// Measurement:
//   - bench: Per-tier tick cost, stored in SQLite
//   - history: Stored benchmark runs
//   - tiers: Tier table and the tier this machine would get
//
// Housekeeping:
//   - config: show, path, init, get, set
//   - version, help
//
// Inspection commands accept --json.
package cli
