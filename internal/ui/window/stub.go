// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build nowindow

package window

// Run is unavailable without a window system.
func Run(opts Options) error {
	return ErrUnavailable
}
