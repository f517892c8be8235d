// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scene

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/constellation/internal/config"
)

// FrameMsg is one scheduler callback.
type FrameMsg struct {
	Time time.Time
}

// ConfigReloadedMsg carries a configuration reloaded from disk. Err is set
// when the file could not be loaded; Config is then the defaults and is
// not applied.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// frameCmd schedules the next FrameMsg.
func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg{Time: t}
	})
}
