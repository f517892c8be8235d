// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui.go - The terminal backdrop and desktop window commands.

package cli

import (
	"context"
	"errors"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/constellation/internal/config"
	"github.com/jeranaias/constellation/internal/ui/scene"
	"github.com/jeranaias/constellation/internal/ui/window"
)

// configDebounce coalesces editor save bursts into one reload.
const configDebounce = 250 * time.Millisecond

// HandleTUI runs the full-screen terminal backdrop.
func HandleTUI(args Args) error {
	if err := RequiresTTY("run the terminal backdrop"); err != nil {
		return err
	}

	cfg, cleanup, err := prepare(CmdTUI, args)
	if err != nil {
		return err
	}
	defer cleanup()

	model, err := scene.New(scene.Options{
		Config:       cfg,
		Capabilities: probe(context.Background()),
		Overrides:    args.Apply,
	})
	if err != nil {
		return NewCommandError("tui", "start", err)
	}

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)

	// The watcher runs on its own goroutines; it only posts messages into
	// the program's event loop.
	watcher, err := config.NewWatcher(configDebounce, func(c *config.Config, err error) {
		p.Send(scene.ConfigReloadedMsg{Config: c, Err: err})
	})
	if err != nil {
		log.Printf("CONFIG_WATCH_FAILED | err=%v", err)
	} else {
		if err := watcher.Watch(); err != nil {
			log.Printf("CONFIG_WATCH_FAILED | err=%v", err)
		}
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		return NewCommandError("tui", "run", err)
	}
	return nil
}

// HandleWindow runs the desktop window host.
func HandleWindow(args Args) error {
	cfg, cleanup, err := prepare(CmdWindow, args)
	if err != nil {
		return err
	}
	defer cleanup()

	err = window.Run(window.Options{
		Config:       cfg,
		Capabilities: probe(context.Background()),
	})
	if errors.Is(err, window.ErrUnavailable) {
		return NewCommandError("window", "open", errors.New("this build has no window support (built with -tags nowindow)"))
	}
	return NewCommandError("window", "run", err)
}
