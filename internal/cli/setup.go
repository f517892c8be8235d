// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// setup.go - Config loading and log routing shared by the commands.

package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/constellation/internal/config"
	"github.com/jeranaias/constellation/internal/detect"
)

const probeTimeout = 3 * time.Second

// loadConfig loads the config file, applies the flag overrides and
// validates the result. An unreadable file is reported and replaced by
// defaults; an invalid override is an error.
func loadConfig(args Args) (*config.Config, error) {
	cfg, err := config.Load()
	if cfg == nil {
		return nil, NewCommandError("config", "load", err)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v (using defaults)\n", err)
	}

	args.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, NewValidationError("flags", "", err.Error())
	}
	return cfg, nil
}

// setupLogging routes the standard logger. The terminal host owns stdout,
// so it logs to a file only when debug is on. Other commands log to stderr
// with --verbose or --debug. The returned func releases the log file.
func setupLogging(cmd Command, args Args, cfg *config.Config) (func(), error) {
	noop := func() {}

	if cmd == CmdTUI {
		if !cfg.Log.Debug {
			log.SetOutput(io.Discard)
			return noop, nil
		}
		path, err := cfg.LogPath()
		if err != nil {
			return noop, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return noop, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := tea.LogToFile(path, "constellation")
		if err != nil {
			return noop, fmt.Errorf("failed to open debug log: %w", err)
		}
		return func() { f.Close() }, nil
	}

	if args.Verbose || cfg.Log.Debug {
		log.SetOutput(stderr)
		log.SetFlags(log.Ltime | log.Lmicroseconds)
	} else {
		log.SetOutput(io.Discard)
	}
	return noop, nil
}

// prepare loads the config and routes logging for a command.
func prepare(cmd Command, args Args) (*config.Config, func(), error) {
	cfg, err := loadConfig(args)
	if err != nil {
		return nil, nil, err
	}
	cleanup, err := setupLogging(cmd, args, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, cleanup, nil
}

// probe returns the device capabilities. Whatever a failed probe could not
// read stays unknown, which selects the medium tier.
func probe(ctx context.Context) detect.Capabilities {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	caps, err := detect.ProbeCached(ctx)
	if err != nil {
		log.Printf("PROBE_FAILED | err=%v", err)
	}
	return caps
}
