// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package scene hosts the particle field as a full-screen terminal backdrop.

The Model is a Bubble Tea model. A tea.Tick at field.refresh_hz is the frame
scheduler: every FrameMsg runs one field callback, steps the confetti layer
and schedules the next FrameMsg, until the scene is disposed.

# Terminal mapping

A cell is field.cell_width_px × field.cell_height_px logical pixels (8×16 by
default). The raster has one column and two rows per cell, and the View
encodes each pair of rows as a "▀" half block whose foreground is the top
row and whose background is the bottom row.

# Events

	tea.WindowSizeMsg  re-initialize the field
	tea.MouseMsg       pointer move at the cell centre, left press bursts confetti
	tea.BlurMsg        pointer leave, field hidden
	tea.FocusMsg       field visible
	ConfigReloadedMsg  apply the reloaded config and re-initialize

Keys are listed by DefaultKeyMap.
*/
package scene
